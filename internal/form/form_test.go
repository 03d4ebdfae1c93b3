package form

import (
	"errors"
	"testing"
)

func TestNewFormDefaults(t *testing.T) {
	f := New()
	if f.Values.Type != "ingreso" || f.Values.Amount != "" || f.Values.Description != "" {
		t.Fatalf("unexpected defaults %+v", f.Values)
	}
	if !f.Errors.Empty() {
		t.Fatalf("new form should have no errors")
	}
}

func TestSetClearsOnlyEditedFieldError(t *testing.T) {
	f := New()
	if _, ok := f.Validate(); ok {
		t.Fatalf("empty form should not validate")
	}
	if f.Errors.Amount == "" || f.Errors.Description == "" {
		t.Fatalf("expected errors on both fields, got %+v", f.Errors)
	}

	f.Set(FieldAmount, "abc")
	if f.Errors.Amount != "" {
		t.Fatalf("editing amount should clear its error immediately")
	}
	if f.Errors.Description != MsgRequired {
		t.Fatalf("description error should be untouched, got %q", f.Errors.Description)
	}

	// the bad value only shows up again on the next full pass
	if _, ok := f.Validate(); ok {
		t.Fatalf("form should still be invalid")
	}
	if f.Errors.Amount != MsgInvalidNumber {
		t.Fatalf("expected %q, got %q", MsgInvalidNumber, f.Errors.Amount)
	}
}

func TestFormValidateAndReset(t *testing.T) {
	f := New()
	f.Set(FieldAmount, "15")
	f.Set(FieldType, "gasto")
	f.Set(FieldDescription, "cine")
	f.Set(Field("unknown"), "ignored")

	p, ok := f.Validate()
	if !ok {
		t.Fatalf("expected valid form, errors %+v", f.Errors)
	}
	if p != (Payload{Amount: 15, Type: "gasto", Description: "cine"}) {
		t.Fatalf("unexpected payload %+v", p)
	}

	f.Reset()
	if f.Values != New().Values {
		t.Fatalf("reset did not restore defaults: %+v", f.Values)
	}
}

func TestValidateRegistration(t *testing.T) {
	p, err := ValidateRegistration(Registration{Username: "  ana ", Email: " ana@example.com", Password: " secret "})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	want := RegisterPayload{Username: "ana", Email: "ana@example.com", Password: " secret "}
	if p != want {
		t.Fatalf("got %+v, want %+v", p, want)
	}

	bads := []Registration{
		{Username: "", Email: "a@b.c", Password: "x"},
		{Username: "a", Email: "  ", Password: "x"},
		{Username: "a", Email: "a@b.c", Password: "   "},
	}
	for i, r := range bads {
		if _, err := ValidateRegistration(r); !errors.Is(err, ErrIncompleteRegistration) {
			t.Fatalf("case %d: expected ErrIncompleteRegistration, got %v", i, err)
		}
	}
}
