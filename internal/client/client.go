// Package client talks to the transactions service over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"saldo/internal/cache"
	"saldo/internal/core"
	"saldo/internal/form"
	"saldo/internal/log"
)

const (
	pathTransactions = "/transactions"
	pathTransaction  = "/transaction"
	pathRegister     = "/register"
	pathHealth       = "/healthz"

	// maxErrorBody bounds how much of a rejection body is read.
	maxErrorBody = 64 << 10

	listCacheKey = "transactions"
)

// Client calls the transactions service. Fetched lists are cached for a
// short TTL and dropped as soon as a new transaction is recorded, so the
// list shown after a successful submit is always fresh.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger
	list    *cache.LRUCache[[]core.Transaction]
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithCacheTTL sets how long a fetched list is reused. Zero disables caching.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		if ttl <= 0 {
			c.list = nil
			return
		}
		c.list = cache.NewLRUCache[[]core.Transaction](1, ttl)
	}
}

// New returns a client for the service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		logger:  log.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.WithComponent(log.ComponentClient)
	return c
}

// ListCache exposes the list cache for registration with a cache.Manager.
// It is nil when caching is disabled.
func (c *Client) ListCache() *cache.LRUCache[[]core.Transaction] {
	return c.list
}

// ListTransactions returns all transactions, from cache when fresh. The
// returned slice is the caller's to keep.
func (c *Client) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	if c.list != nil {
		if txs, ok := c.list.Get(listCacheKey); ok {
			c.logger.DebugContext(ctx, "Transactions cache hit", log.FieldCount, len(txs))
			return append([]core.Transaction(nil), txs...), nil
		}
	}
	return c.Refresh(ctx)
}

// Refresh fetches the list from the service, bypassing the cache.
func (c *Client) Refresh(ctx context.Context) ([]core.Transaction, error) {
	const op = "list transactions"

	resp, err := c.do(ctx, op, http.MethodGet, pathTransactions, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(op, resp, MsgListFailed); err != nil {
		return nil, err
	}

	var records []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, &DecodeError{Op: op, Err: err}
	}
	txs := make([]core.Transaction, 0, len(records))
	for i, rec := range records {
		tx, err := decodeTransaction(rec)
		if err != nil {
			c.logger.WarnContext(ctx, "Malformed transaction record, unreadable fields defaulted",
				"index", i, log.FieldTxID, tx.ID, log.FieldError, err)
		}
		txs = append(txs, tx)
	}
	if c.list != nil {
		c.list.Set(listCacheKey, append([]core.Transaction(nil), txs...))
	}
	c.logger.InfoContext(ctx, "Transactions fetched", log.FieldCount, len(txs))
	return txs, nil
}

// Summary fetches the transactions and aggregates them.
func (c *Client) Summary(ctx context.Context) (core.Summary, []core.Transaction, error) {
	txs, err := c.ListTransactions(ctx)
	if err != nil {
		return core.Summary{}, nil, err
	}
	return core.Aggregate(txs), txs, nil
}

// CreateTransaction records a validated payload. It implements form.Sender.
func (c *Client) CreateTransaction(ctx context.Context, p form.Payload) error {
	const op = "create transaction"

	resp, err := c.postJSON(ctx, op, pathTransaction, p)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(op, resp, MsgCreateFailed); err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))

	c.Invalidate()
	c.logger.InfoContext(ctx, "Transaction created", log.FieldTxType, p.Type, log.FieldTxDesc, p.Description)
	return nil
}

// Register creates an account with the given credentials, forwarded as is.
func (c *Client) Register(ctx context.Context, p form.RegisterPayload) error {
	const op = "register"

	resp, err := c.postJSON(ctx, op, pathRegister, p)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(op, resp, MsgRegisterFailed); err != nil {
		return err
	}
	c.logger.InfoContext(ctx, "Account registered", "username", p.Username)
	return nil
}

// Health checks that the service answers its health endpoint with 2xx.
func (c *Client) Health(ctx context.Context) error {
	const op = "health"

	resp, err := c.do(ctx, op, http.MethodGet, pathHealth, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
	return c.checkStatus(op, resp, MsgConnection)
}

// Invalidate drops the cached transaction list.
func (c *Client) Invalidate() {
	if c.list != nil {
		c.list.Delete(listCacheKey)
	}
}

// decodeTransaction decodes one list record. When the record does not
// decode as a whole, each field is read on its own and the unreadable ones
// keep their zero value; the original error is still returned.
func decodeTransaction(b []byte) (core.Transaction, error) {
	var tx core.Transaction
	err := json.Unmarshal(b, &tx)
	if err == nil {
		return tx, nil
	}

	tx = core.Transaction{}
	var fields map[string]json.RawMessage
	if json.Unmarshal(b, &fields) != nil {
		return tx, err
	}
	decodeField(fields["id"], &tx.ID)
	decodeField(fields["amount"], &tx.Amount)
	decodeField(fields["type"], &tx.Type)
	decodeField(fields["description"], &tx.Description)
	decodeField(fields["date"], &tx.Date)
	return tx, err
}

func decodeField[T any](raw json.RawMessage, dst *T) {
	if raw == nil {
		return
	}
	var v T
	if json.Unmarshal(raw, &v) == nil {
		*dst = v
	}
}

func (c *Client) postJSON(ctx context.Context, op, path string, body any) (*http.Response, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%s: encode request: %w", op, err)
	}
	return c.do(ctx, op, http.MethodPost, path, b)
}

func (c *Client) do(ctx context.Context, op, method, path string, body []byte) (*http.Response, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "Request failed", log.FieldOperation, op, log.FieldURL, req.URL.String(), log.FieldError, err)
		return nil, &NetworkError{Op: op, Err: err}
	}
	c.logger.DebugContext(ctx, "Request completed",
		log.FieldOperation, op,
		log.FieldStatusCode, resp.StatusCode,
		log.FieldDuration, time.Since(start).Milliseconds())
	return resp, nil
}

// checkStatus turns a non-2xx response into a *ServerRejection, reading the
// optional message field from a JSON body.
func (c *Client) checkStatus(op string, resp *http.Response, fallback string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	rej := &ServerRejection{Op: op, Status: resp.StatusCode, fallback: fallback}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxErrorBody)).Decode(&body); err == nil {
		rej.Message = body.Message
	}
	c.logger.Warn("Server rejected request", log.FieldOperation, op, log.FieldStatusCode, resp.StatusCode, "message", rej.Message)
	return rej
}
