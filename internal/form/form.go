package form

import "saldo/internal/core"

// Field names a form input.
type Field string

const (
	FieldAmount      Field = "amount"
	FieldType        Field = "type"
	FieldDescription Field = "description"
)

// Form is the state of one entry screen: the values being typed and the
// errors currently shown. It is not safe for concurrent use; the screen
// that owns it drives it from a single goroutine.
type Form struct {
	Values Submission
	Errors Errors
}

// New returns an empty form with the default type selected.
func New() *Form {
	return &Form{Values: Submission{Type: core.DefaultType}}
}

// Set updates one field. If that field is showing an error, the error is
// cleared immediately, before any new validation pass.
func (f *Form) Set(field Field, value string) {
	switch field {
	case FieldAmount:
		f.Values.Amount = value
	case FieldType:
		f.Values.Type = value
	case FieldDescription:
		f.Values.Description = value
	default:
		return
	}
	if f.Errors.Get(field) != "" {
		f.Errors.clear(field)
	}
}

// Validate recomputes all errors and returns the payload when there are none.
func (f *Form) Validate() (Payload, bool) {
	p, errs := Validate(f.Values)
	f.Errors = errs
	return p, errs.Empty()
}

// Reset discards the entered values and errors.
func (f *Form) Reset() {
	*f = *New()
}
