package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"saldo/internal/core"
)

// WriteSummaryCSV writes the summary as a two-column report: one row per
// total, then one per expense category. Amounts are plain decimals so the
// file opens cleanly in a spreadsheet.
func WriteSummaryCSV(w io.Writer, sum core.Summary) error {
	rows := [][]string{
		{"item", "amount"},
		{"income", decimal(sum.Income)},
		{"expense", decimal(sum.Expense)},
		{"balance", decimal(sum.Balance())},
	}
	for _, ca := range sum.ByCategory() {
		rows = append(rows, []string{"expense:" + string(ca.Category), decimal(ca.Amount)})
	}

	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// WriteTransactionsCSV writes every transaction with its category.
func WriteTransactionsCSV(w io.Writer, txs []core.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "date", "type", "description", "amount", "category"}); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	for _, tx := range txs {
		row := []string{
			strconv.FormatInt(tx.ID, 10),
			tx.Date,
			tx.Type,
			tx.Description,
			decimal(tx.Amount),
			string(tx.Category()),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// decimal renders m exactly, with two to four fraction digits.
func decimal(m core.Money) string {
	u := m.Units
	sign := ""
	if u < 0 {
		sign = "-"
		u = -u
	}
	frac := strings.TrimRight(fmt.Sprintf("%04d", u%core.UnitsPerWhole), "0")
	for len(frac) < 2 {
		frac += "0"
	}
	return fmt.Sprintf("%s%d.%s", sign, u/core.UnitsPerWhole, frac)
}
