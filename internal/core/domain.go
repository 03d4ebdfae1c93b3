package core

import (
	"strings"
)

const (
	Unknown Kind = iota
	Income
	Expense
	Transfer
)

type (
	// Kind is the normalized direction of a transaction.
	Kind int

	// Transaction is a record as served by the transactions endpoint.
	// Amount is always a magnitude; the direction lives in Type.
	Transaction struct {
		ID          int64  `json:"id"`
		Amount      Money  `json:"amount"`
		Type        string `json:"type"`
		Description string `json:"description"`
		Date        string `json:"date,omitempty"`
	}
)

// Type values offered by the entry form, in display order.
var TypeOptions = []TypeOption{
	{Value: "ingreso", Label: "Ingreso"},
	{Value: "gasto", Label: "Gasto"},
	{Value: "transferencia", Label: "Transferencia"},
}

// TypeOption is a selectable transaction type with its label.
type TypeOption struct {
	Value string
	Label string
}

// DefaultType is the type a new entry form starts with.
const DefaultType = "ingreso"

// ParseKind maps a raw type string to its Kind. Matching ignores case only:
// padded strings and the English "transfer" are Unknown.
func ParseKind(s string) Kind {
	switch strings.ToLower(s) {
	case "income", "ingreso":
		return Income
	case "expense", "gasto":
		return Expense
	case "transferencia":
		return Transfer
	default:
		return Unknown
	}
}

func (k Kind) String() string {
	switch k {
	case Income:
		return "income"
	case Expense:
		return "expense"
	case Transfer:
		return "transfer"
	default:
		return "unknown"
	}
}

// IsValid reports whether k is one of the three known kinds.
func (k Kind) IsValid() bool {
	return k == Income || k == Expense || k == Transfer
}

// Kind returns the normalized kind of the transaction's type string.
func (t Transaction) Kind() Kind {
	return ParseKind(t.Type)
}

// Category classifies the transaction with the default rules.
func (t Transaction) Category() Category {
	return Classify(t.Type, t.Description)
}

// HasDate reports whether the record carries a date.
func (t Transaction) HasDate() bool {
	return strings.TrimSpace(t.Date) != ""
}

// RecentLimit is how many transactions the collapsed recent list shows.
const RecentLimit = 3

// Recent returns the transactions to display in the recent list: all of
// them when showAll is set, otherwise at most RecentLimit. The input slice
// is never modified.
func Recent(txs []Transaction, showAll bool) []Transaction {
	n := len(txs)
	if !showAll && n > RecentLimit {
		n = RecentLimit
	}
	out := make([]Transaction, n)
	copy(out, txs[:n])
	return out
}

// HasMore reports whether the collapsed recent list hides transactions.
func HasMore(txs []Transaction) bool {
	return len(txs) > RecentLimit
}
