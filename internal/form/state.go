package form

import (
	"context"
	"errors"
	"sync"

	"saldo/internal/log"
)

// State is a step of the submission lifecycle.
type State int

const (
	Idle State = iota
	Submitting
	Success
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Success:
		return "success"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrBusy is returned when Submit is called outside the Idle state.
var ErrBusy = errors.New("submission already in progress")

// DefaultFailureMessage is shown when an error carries no user message.
const DefaultFailureMessage = "could not connect to the server"

// SuccessMessage is the one-shot notification after a recorded transaction.
const SuccessMessage = "transaction recorded successfully"

// Sender delivers a validated payload to the data store.
type Sender interface {
	CreateTransaction(ctx context.Context, p Payload) error
}

// userMessager is implemented by errors that carry text fit for the user.
type userMessager interface {
	UserMessage() string
}

// FailureMessage returns the user-facing text for err.
func FailureMessage(err error) string {
	var um userMessager
	if errors.As(err, &um) {
		if msg := um.UserMessage(); msg != "" {
			return msg
		}
	}
	return DefaultFailureMessage
}

// Submitter runs the Idle → Submitting → Success|Failed lifecycle for one
// entry screen. A failure surfaces its message and returns to Idle; there
// is no automatic retry.
type Submitter struct {
	sender Sender
	logger *log.Logger

	// OnSuccess fires once after the transaction is recorded. The screen
	// shows the notification and navigates back.
	OnSuccess func(message string)
	// OnFailure receives the message to show when submission fails.
	OnFailure func(message string)

	mu       sync.Mutex
	state    State
	detached bool
}

// SubmitterOption configures a Submitter.
type SubmitterOption func(*Submitter)

// WithLogger sets the logger. Submitters log nothing by default.
func WithLogger(l *log.Logger) SubmitterOption {
	return func(s *Submitter) { s.logger = l }
}

// NewSubmitter returns an idle submitter that sends through s.
func NewSubmitter(s Sender, opts ...SubmitterOption) *Submitter {
	sub := &Submitter{sender: s, logger: log.Discard()}
	for _, opt := range opts {
		opt(sub)
	}
	sub.logger = sub.logger.WithComponent(log.ComponentForm)
	return sub
}

// State returns the current state.
func (s *Submitter) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Detach marks the owning screen as gone. A send still in flight completes,
// but its result no longer reaches the callbacks or the form.
func (s *Submitter) Detach() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detached = true
}

// Reset returns a finished submitter to Idle so the screen can be reused.
func (s *Submitter) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Submitting {
		s.state = Idle
	}
}

// Submit validates f and, if it is valid, sends it. Calling Submit while a
// previous call is still in flight, or after success, returns ErrBusy and
// does nothing. Invalid input leaves the submitter Idle with f.Errors set
// and returns a *ValidationError.
func (s *Submitter) Submit(ctx context.Context, f *Form) (State, error) {
	s.mu.Lock()
	if s.state != Idle {
		st := s.state
		s.mu.Unlock()
		return st, ErrBusy
	}
	payload, ok := f.Validate()
	if !ok {
		s.mu.Unlock()
		return Idle, f.Errors.Err()
	}
	s.state = Submitting
	s.mu.Unlock()

	err := s.sender.CreateTransaction(ctx, payload)

	s.mu.Lock()
	detached := s.detached
	if err == nil {
		s.state = Success
	} else {
		// Failed is transient: the screen is interactive again right away.
		s.state = Idle
	}
	s.mu.Unlock()

	if err != nil {
		msg := FailureMessage(err)
		s.logger.WarnContext(ctx, "Transaction submission failed", log.FieldError, err, "message", msg)
		if !detached && s.OnFailure != nil {
			s.OnFailure(msg)
		}
		return Failed, err
	}

	s.logger.InfoContext(ctx, "Transaction submitted", log.FieldTxType, payload.Type, log.FieldAmount, payload.Amount)
	if !detached {
		f.Reset()
		if s.OnSuccess != nil {
			s.OnSuccess(SuccessMessage)
		}
	}
	return Success, nil
}
