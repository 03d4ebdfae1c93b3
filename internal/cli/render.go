package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"saldo/internal/core"
	"saldo/internal/form"
)

// Renderer writes screens to a terminal. With Color set, amounts are
// painted with each type's display color using 24-bit ANSI escapes.
type Renderer struct {
	Out   io.Writer
	Color bool
}

var iconGlyphs = map[string]string{
	core.IconIncome:   "↓",
	core.IconExpense:  "↑",
	core.IconTransfer: "⇄",
	core.IconGeneric:  "$",
}

// Transactions renders the recent list: the first core.RecentLimit rows, or
// every row when showAll is set, followed by a "see all" hint when rows
// are hidden.
func (r *Renderer) Transactions(txs []core.Transaction, showAll bool) {
	if len(txs) == 0 {
		fmt.Fprintln(r.Out, "No transactions yet.")
		return
	}

	fmt.Fprintln(r.Out, "Recent transactions")
	for _, tx := range core.Recent(txs, showAll) {
		r.transaction(tx)
	}
	if !showAll && core.HasMore(txs) {
		fmt.Fprintf(r.Out, "  … %d more (use --all to see all)\n", len(txs)-core.RecentLimit)
	}
}

func (r *Renderer) transaction(tx core.Transaction) {
	amount := r.paint(core.Color(tx.Type), core.FormatAmount(tx.Amount))
	line := fmt.Sprintf("  %s %-30s %14s", iconGlyphs[core.Icon(tx.Type)], truncate(tx.Description, 30), amount)
	if d := core.FormatDate(tx.Date); d != "" {
		line += "  " + d
	}
	if c := tx.Category(); c != core.CategoryNone {
		line += "  [" + c.Label() + "]"
	}
	fmt.Fprintln(r.Out, line)
}

// Summary renders income, expense, balance and the expense categories.
func (r *Renderer) Summary(sum core.Summary) {
	fmt.Fprintln(r.Out, "Summary")
	fmt.Fprintf(r.Out, "  %-15s %14s\n", "Income", r.paint(core.ColorIncome, core.FormatAmount(sum.Income)))
	fmt.Fprintf(r.Out, "  %-15s %14s\n", "Expense", r.paint(core.ColorExpense, core.FormatAmount(sum.Expense)))
	fmt.Fprintf(r.Out, "  %-15s %14s\n", "Balance", core.FormatAmount(sum.Balance()))
	fmt.Fprintln(r.Out, "Expenses by category")
	for _, ca := range sum.ByCategory() {
		fmt.Fprintf(r.Out, "  %-15s %14s\n", ca.Category.Label(), core.FormatAmount(ca.Amount))
	}
}

// FieldErrors renders the messages shown under each invalid field.
func (r *Renderer) FieldErrors(errs form.Errors) {
	for _, f := range []form.Field{form.FieldAmount, form.FieldType, form.FieldDescription} {
		if msg := errs.Get(f); msg != "" {
			fmt.Fprintf(r.Out, "  %s: %s\n", f, msg)
		}
	}
}

// Message prints a one-line notification.
func (r *Renderer) Message(msg string) {
	fmt.Fprintln(r.Out, msg)
}

func (r *Renderer) paint(color, s string) string {
	if !r.Color {
		return s
	}
	red, green, blue, ok := parseColor(color)
	if !ok {
		return s
	}
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm%s\x1b[0m", red, green, blue, s)
}

// parseColor reads "#RRGGBB" and "rgb(r, g, b)".
func parseColor(c string) (r, g, b int, ok bool) {
	c = strings.TrimSpace(c)
	switch {
	case strings.HasPrefix(c, "#") && len(c) == 7:
		v, err := strconv.ParseUint(c[1:], 16, 32)
		if err != nil {
			return 0, 0, 0, false
		}
		return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
	case strings.HasPrefix(c, "rgb(") && strings.HasSuffix(c, ")"):
		parts := strings.Split(c[4:len(c)-1], ",")
		if len(parts) != 3 {
			return 0, 0, 0, false
		}
		var rgb [3]int
		for i, p := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil || n < 0 || n > 255 {
				return 0, 0, 0, false
			}
			rgb[i] = n
		}
		return rgb[0], rgb[1], rgb[2], true
	}
	return 0, 0, 0, false
}

func truncate(s string, n int) string {
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	return string(rs[:n-1]) + "…"
}
