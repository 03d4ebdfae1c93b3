package form

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateAllFieldsEmpty(t *testing.T) {
	_, errs := Validate(Submission{Amount: "", Type: "income", Description: ""})
	want := Errors{Amount: MsgRequired, Description: MsgRequired, Type: ""}
	if errs != want {
		t.Fatalf("got %+v, want %+v", errs, want)
	}
}

func TestValidateAmount(t *testing.T) {
	cases := []struct {
		amount string
		want   string
	}{
		{"", MsgRequired},
		{"   ", MsgRequired},
		{"abc", MsgInvalidNumber},
		{"1,5", MsgInvalidNumber},
		{"12.3.4", MsgInvalidNumber},
		{"NaN", MsgInvalidNumber},
		{"Inf", MsgInvalidNumber},
		{"0x10", MsgInvalidNumber},
		{"-5", MsgNotPositive},
		{"0", MsgNotPositive},
		{"0.00", MsgNotPositive},
		{"20.5", ""},
		{" 7 ", ""},
		{".5", ""},
		{"5.", ""},
		{"1e3", ""},
		{"+3", ""},
		{"0.004", ""},
		{"1e14", ""},
		{"1e400", MsgInvalidNumber},
		{"1e15", MsgTooLarge},
		{"0.00001", MsgTooPrecise},
	}
	for _, tc := range cases {
		_, errs := Validate(Submission{Amount: tc.amount, Type: "gasto", Description: "ok"})
		if errs.Amount != tc.want {
			t.Fatalf("amount %q: got %q, want %q", tc.amount, errs.Amount, tc.want)
		}
		if errs.Description != "" || errs.Type != "" {
			t.Fatalf("amount %q: unexpected errors %+v", tc.amount, errs)
		}
	}
}

func TestValidateDescription(t *testing.T) {
	cases := []struct {
		desc string
		want string
	}{
		{"", MsgRequired},
		{" \t ", MsgRequired},
		{"x", ""},
		{strings.Repeat("a", 100), ""},
		{strings.Repeat("a", 101), MsgDescriptionLong},
		{strings.Repeat("é", 100), ""},
		{strings.Repeat("\U0001F355", 100), ""},
	}
	for _, tc := range cases {
		_, errs := Validate(Submission{Amount: "1", Type: "gasto", Description: tc.desc})
		if errs.Description != tc.want {
			t.Fatalf("description of %d runes: got %q, want %q", len([]rune(tc.desc)), errs.Description, tc.want)
		}
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	_, errs := Validate(Submission{Amount: "-1", Type: "gasto", Description: strings.Repeat("b", 150)})
	if errs.Amount != MsgNotPositive || errs.Description != MsgDescriptionLong {
		t.Fatalf("expected both fields to fail, got %+v", errs)
	}
	err := errs.Err()
	var verr *ValidationError
	if !errors.As(err, &verr) || !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected *ValidationError wrapping ErrInvalid, got %v", err)
	}
	if verr.Fields != errs {
		t.Fatalf("validation error lost fields")
	}
}

func TestValidateSuccess(t *testing.T) {
	p, errs := Validate(Submission{Amount: "20.5", Type: "gasto", Description: "x"})
	if !errs.Empty() || errs.Err() != nil {
		t.Fatalf("unexpected errors %+v", errs)
	}
	want := Payload{Amount: 20.5, Type: "gasto", Description: "x"}
	if p != want {
		t.Fatalf("got %+v, want %+v", p, want)
	}
}

func TestValidateKeepsDescriptionUntrimmed(t *testing.T) {
	p, errs := Validate(Submission{Amount: "3", Type: "ingreso", Description: "  bono  "})
	if !errs.Empty() {
		t.Fatalf("unexpected errors %+v", errs)
	}
	if p.Description != "  bono  " {
		t.Fatalf("description was altered: %q", p.Description)
	}
}
