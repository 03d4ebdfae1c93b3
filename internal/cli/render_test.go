package cli

import (
	"bytes"
	"strings"
	"testing"

	"saldo/internal/core"
	"saldo/internal/form"
)

func sample() []core.Transaction {
	return []core.Transaction{
		{ID: 4, Amount: core.Cents(2000), Type: "gasto", Description: "taxi", Date: "2025-03-05T10:30:00Z"},
		{ID: 3, Amount: core.Cents(5000), Type: "gasto", Description: "comida"},
		{ID: 2, Amount: core.Cents(100000), Type: "ingreso", Description: "salary"},
		{ID: 1, Amount: core.Cents(700), Type: "transferencia", Description: "savings"},
	}
}

func TestTransactionsCollapsed(t *testing.T) {
	var buf bytes.Buffer
	r := &Renderer{Out: &buf}
	r.Transactions(sample(), false)

	out := buf.String()
	if strings.Contains(out, "savings") {
		t.Fatalf("fourth transaction should be hidden:\n%s", out)
	}
	if !strings.Contains(out, "1 more") {
		t.Fatalf("missing see-all hint:\n%s", out)
	}
	for _, want := range []string{"$20.00", "05 mar 2025", "[Transport]", "$1,000.00"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("colors must be off by default")
	}
}

func TestTransactionsShowAll(t *testing.T) {
	var buf bytes.Buffer
	r := &Renderer{Out: &buf}
	r.Transactions(sample(), true)

	if !strings.Contains(buf.String(), "savings") || strings.Contains(buf.String(), "more") {
		t.Fatalf("show all should list every row without a hint:\n%s", buf.String())
	}
}

func TestTransactionsEmpty(t *testing.T) {
	var buf bytes.Buffer
	(&Renderer{Out: &buf}).Transactions(nil, false)
	if !strings.Contains(buf.String(), "No transactions") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	r := &Renderer{Out: &buf, Color: true}
	r.Summary(core.Aggregate(sample()))

	out := buf.String()
	for _, want := range []string{"$1,000.00", "$70.00", "$930.00", "Food", "Uncategorized"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "\x1b[38;2;239;68;68m$70.00") {
		t.Fatalf("expense should be painted red:\n%q", out)
	}
}

func TestFieldErrors(t *testing.T) {
	var buf bytes.Buffer
	(&Renderer{Out: &buf}).FieldErrors(form.Errors{Amount: form.MsgInvalidNumber, Description: form.MsgRequired})
	want := "  amount: must be a valid number\n  description: required\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		r, g, b int
		ok      bool
	}{
		{core.ColorExpense, 239, 68, 68, true},
		{core.ColorIncome, 240, 161, 208, true},
		{"rgb(1, 2)", 0, 0, 0, false},
		{"#zzzzzz", 0, 0, 0, false},
		{"red", 0, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			r, g, b, ok := parseColor(tt.in)
			if ok != tt.ok || r != tt.r || g != tt.g || b != tt.b {
				t.Fatalf("parseColor(%q) = %d,%d,%d,%v", tt.in, r, g, b, ok)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("médico de cabecera", 6); got != "médic…" {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("pan", 6); got != "pan" {
		t.Fatalf("truncate = %q", got)
	}
}
