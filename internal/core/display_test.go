package core

import "testing"

func TestColorAndIcon(t *testing.T) {
	cases := []struct {
		typ   string
		color string
		icon  string
	}{
		{"income", ColorIncome, IconIncome},
		{"INGRESO", ColorIncome, IconIncome},
		{"Gasto", ColorExpense, IconExpense},
		{"expense", ColorExpense, IconExpense},
		{"transferencia", ColorTransfer, IconTransfer},
		{"", ColorNeutral, IconGeneric},
		{"refund", ColorNeutral, IconGeneric},
		{"transfer", ColorNeutral, IconGeneric},
		{" gasto", ColorNeutral, IconGeneric},
		{"ingreso ", ColorNeutral, IconGeneric},
	}
	for _, tc := range cases {
		if got := Color(tc.typ); got != tc.color {
			t.Fatalf("Color(%q) = %q, want %q", tc.typ, got, tc.color)
		}
		if got := Icon(tc.typ); got != tc.icon {
			t.Fatalf("Icon(%q) = %q, want %q", tc.typ, got, tc.icon)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		units int64
		want  string
	}{
		{0, "$0.00"},
		{500, "$0.05"},
		{125000, "$12.50"},
		{9999900, "$999.99"},
		{-30000, "-$3.00"},
		{40, "$0.00"},
		{50, "$0.01"},
		{1e18, "$100,000,000,000,000.00"},
	}
	for _, tc := range cases {
		if got := FormatAmount(Money{Units: tc.units}); got != tc.want {
			t.Fatalf("FormatAmount(%d) = %q, want %q", tc.units, got, tc.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"not a date", ""},
		{"2025-03-05", "05 mar 2025"},
		{"2024-12-31T10:00:00Z", "31 dic 2024"},
		{"2024-09-01T23:30:00+02:00", "01 sept 2024"},
		{"2024-01-15T08:00:00", "15 ene 2024"},
		{"2024-08-20T08:00:00.123456", "20 ago 2024"},
	}
	for _, tc := range cases {
		if got := FormatDate(tc.in); got != tc.want {
			t.Fatalf("FormatDate(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
