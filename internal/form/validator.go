// Package form validates user-entered transaction and registration data.
//
// Validation is a pure function over the raw strings the user typed. The
// Form type adds the screen-local bookkeeping around it: field edits clear
// that field's error straight away, and a full pass recomputes every error.
package form

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"saldo/internal/core"
)

// Error messages shown next to each field.
const (
	MsgRequired        = "required"
	MsgInvalidNumber   = "must be a valid number"
	MsgNotPositive     = "must be greater than 0"
	MsgTooLarge        = "amount too large"
	MsgTooPrecise      = "maximum 4 decimal places"
	MsgDescriptionLong = "maximum 100 characters"
)

// MaxDescriptionLength is counted in characters (runes), not bytes or
// UTF-16 code units, so an emoji counts once.
const MaxDescriptionLength = 100

type (
	// Submission is the form exactly as typed.
	Submission struct {
		Amount      string
		Type        string
		Description string
	}

	// Errors mirrors Submission; an empty string means the field is fine.
	Errors struct {
		Amount      string
		Type        string
		Description string
	}

	// Payload is the validated body sent to the transaction endpoint.
	Payload struct {
		Amount      float64 `json:"amount"`
		Type        string  `json:"type"`
		Description string  `json:"description"`
	}
)

// ValidationError carries the field errors of a failed pass.
type ValidationError struct {
	Fields Errors
}

func (e *ValidationError) Error() string {
	var parts []string
	if e.Fields.Amount != "" {
		parts = append(parts, "amount: "+e.Fields.Amount)
	}
	if e.Fields.Type != "" {
		parts = append(parts, "type: "+e.Fields.Type)
	}
	if e.Fields.Description != "" {
		parts = append(parts, "description: "+e.Fields.Description)
	}
	return "invalid transaction: " + strings.Join(parts, "; ")
}

var ErrInvalid = errors.New("invalid form")

func (e *ValidationError) Unwrap() error { return ErrInvalid }

// Empty reports whether no field has an error.
func (e Errors) Empty() bool {
	return e == Errors{}
}

// Err returns nil when e is empty and a *ValidationError otherwise.
func (e Errors) Err() error {
	if e.Empty() {
		return nil
	}
	return &ValidationError{Fields: e}
}

// Get returns the error for f.
func (e Errors) Get(f Field) string {
	switch f {
	case FieldAmount:
		return e.Amount
	case FieldType:
		return e.Type
	case FieldDescription:
		return e.Description
	default:
		return ""
	}
}

func (e *Errors) clear(f Field) {
	switch f {
	case FieldAmount:
		e.Amount = ""
	case FieldType:
		e.Type = ""
	case FieldDescription:
		e.Description = ""
	}
}

// Validate checks every field and reports all failures at once; within a
// field only the first failing rule is reported. On success the payload
// carries the parsed amount and the type and description untouched.
func Validate(s Submission) (Payload, Errors) {
	var errs Errors
	amount, msg := validateAmount(s.Amount)
	errs.Amount = msg
	errs.Description = validateDescription(s.Description)

	if !errs.Empty() {
		return Payload{}, errs
	}
	return Payload{
		Amount:      amount,
		Type:        s.Type,
		Description: s.Description,
	}, errs
}

var numberRe = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// ParseAmount parses a decimal amount the way the entry form accepts it:
// surrounding whitespace is ignored, a leading sign and an exponent are
// allowed, and grouping separators, hex, NaN and infinities are not. A
// literal that overflows float64, such as "1e400", is not a number here.
func ParseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if !numberRe.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func validateAmount(s string) (float64, string) {
	if strings.TrimSpace(s) == "" {
		return 0, MsgRequired
	}
	f, ok := ParseAmount(s)
	if !ok {
		return 0, MsgInvalidNumber
	}
	if f <= 0 {
		return 0, MsgNotPositive
	}
	switch _, err := core.MoneyFromFloat(f); {
	case errors.Is(err, core.ErrAmountTooLarge):
		return 0, MsgTooLarge
	case err != nil:
		return 0, MsgTooPrecise
	}
	return f, ""
}

func validateDescription(s string) string {
	if strings.TrimSpace(s) == "" {
		return MsgRequired
	}
	// runes, not UTF-16 units: an emoji counts once
	if utf8.RuneCountInString(s) > MaxDescriptionLength {
		return MsgDescriptionLong
	}
	return ""
}
