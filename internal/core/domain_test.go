package core

import "testing"

func TestParseKind(t *testing.T) {
	cases := []struct {
		in   string
		want Kind
	}{
		{"income", Income},
		{"Ingreso", Income},
		{"INCOME", Income},
		{" INCOME ", Unknown},
		{" gasto", Unknown},
		{"expense", Expense},
		{"GASTO", Expense},
		{"transferencia", Transfer},
		{"TransferenciA", Transfer},
		{"transfer", Unknown},
		{"", Unknown},
		{"loan", Unknown},
		{"ingresos", Unknown},
	}
	for _, tc := range cases {
		if got := ParseKind(tc.in); got != tc.want {
			t.Fatalf("ParseKind(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestKindIsValid(t *testing.T) {
	for _, k := range []Kind{Income, Expense, Transfer} {
		if !k.IsValid() {
			t.Fatalf("%v should be valid", k)
		}
	}
	if Unknown.IsValid() {
		t.Fatalf("unknown should not be valid")
	}
}

func TestTransactionCategory(t *testing.T) {
	tx := Transaction{Type: "gasto", Description: "Cena en restaurante"}
	if got := tx.Category(); got != CategoryFood {
		t.Fatalf("expected food, got %q", got)
	}
	tx.Type = "ingreso"
	if got := tx.Category(); got != CategoryNone {
		t.Fatalf("income should not be categorized, got %q", got)
	}
}

func TestRecent(t *testing.T) {
	txs := []Transaction{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}, {ID: 5}}

	got := Recent(txs, false)
	if len(got) != RecentLimit {
		t.Fatalf("expected %d recent, got %d", RecentLimit, len(got))
	}
	if got[0].ID != 1 || got[2].ID != 3 {
		t.Fatalf("recent should keep the leading order, got %+v", got)
	}
	got[0].ID = 99
	if txs[0].ID != 1 {
		t.Fatalf("Recent must not alias its input")
	}

	if all := Recent(txs, true); len(all) != len(txs) {
		t.Fatalf("show all returned %d items", len(all))
	}
	if short := Recent(txs[:2], false); len(short) != 2 {
		t.Fatalf("short list returned %d items", len(short))
	}
	if empty := Recent(nil, false); len(empty) != 0 {
		t.Fatalf("nil list returned %d items", len(empty))
	}
	if !HasMore(txs) || HasMore(txs[:3]) {
		t.Fatalf("HasMore mismatch")
	}
}
