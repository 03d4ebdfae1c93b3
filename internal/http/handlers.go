package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"saldo/internal/core"
	"saldo/internal/form"
	"saldo/internal/log"
	"saldo/internal/services"
	"saldo/internal/storage"
)

// TransactionService is what the handlers need from the business layer.
type TransactionService interface {
	CreateTransaction(ctx context.Context, p form.Payload) (core.Transaction, error)
	ListTransactions(ctx context.Context) ([]core.Transaction, error)
	Summary(ctx context.Context) (core.Summary, error)
	Register(ctx context.Context, p form.RegisterPayload) (storage.User, error)
}

// userResponse is the public view of a created account.
type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// summaryResponse mirrors core.Summary with amounts as plain numbers.
type summaryResponse struct {
	Income     core.Money            `json:"income"`
	Expense    core.Money            `json:"expense"`
	Balance    core.Money            `json:"balance"`
	Categories map[string]core.Money `json:"categories"`
}

// handleListTransactions serves GET /transactions as a bare JSON array.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}

	txs, err := s.svc.ListTransactions(r.Context())
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "List transactions failed", log.FieldOperation, log.OpList, log.FieldError, err)
		InternalServerError().Write(w)
		return
	}
	NewJSONResponse().Data(txs).Write(w)
}

// handleCreateTransaction serves POST /transaction.
func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}

	var p form.Payload
	if err := DecodeJSON(w, r, &p); err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	tx, err := s.svc.CreateTransaction(r.Context(), p)
	if err != nil {
		var ve *form.ValidationError
		if errors.As(err, &ve) {
			UnprocessableEntityError(ve.Error(), fieldErrors(ve.Fields)).Write(w)
			return
		}
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Create transaction failed",
			log.NewFields().WithOperation(log.OpCreate).WithTransaction(0, p.Type, p.Description, strconv.FormatFloat(p.Amount, 'f', -1, 64)).WithError(err).ToSlice()...)
		InternalServerError().Write(w)
		return
	}

	log.FromContext(r.Context()).InfoContext(r.Context(), "Transaction recorded",
		log.NewFields().WithTransaction(tx.ID, tx.Type, tx.Description, tx.Amount.String()).ToSlice()...)
	NewJSONResponse().Status(http.StatusCreated).Data(tx).Write(w)
}

// handleRegister serves POST /register.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}

	var p form.RegisterPayload
	if err := DecodeJSON(w, r, &p); err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	u, err := s.svc.Register(r.Context(), p)
	switch {
	case err == nil:
	case errors.Is(err, form.ErrIncompleteRegistration), errors.Is(err, services.ErrPasswordTooLong):
		BadRequestError(err.Error()).Write(w)
		return
	case errors.Is(err, storage.ErrUserExists):
		ConflictError(err.Error()).Write(w)
		return
	default:
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Register failed", log.FieldOperation, log.OpRegister, log.FieldError, err, "username", p.Username)
		InternalServerError().Write(w)
		return
	}

	NewJSONResponse().
		Status(http.StatusCreated).
		Data(userResponse{ID: u.ID, Username: u.Username, Email: u.Email}).
		Write(w)
}

// handleSummary serves GET /summary, the aggregate the client computes
// locally, for consumers that only want the totals.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}

	sum, err := s.svc.Summary(r.Context())
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Summary failed", log.FieldOperation, log.OpSummary, log.FieldError, err)
		InternalServerError().Write(w)
		return
	}

	cats := make(map[string]core.Money, len(core.Categories))
	for _, ca := range sum.ByCategory() {
		cats[string(ca.Category)] = ca.Amount
	}
	NewJSONResponse().Data(summaryResponse{
		Income:     sum.Income,
		Expense:    sum.Expense,
		Balance:    sum.Balance(),
		Categories: cats,
	}).Write(w)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse().Data(map[string]string{"status": "ok"}).Write(w)
}

func fieldErrors(e form.Errors) map[string]string {
	out := make(map[string]string, 3)
	for _, f := range []form.Field{form.FieldAmount, form.FieldType, form.FieldDescription} {
		if msg := e.Get(f); msg != "" {
			out[string(f)] = msg
		}
	}
	return out
}
