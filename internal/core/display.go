package core

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Display colors.
const (
	ColorIncome   = "rgb(240, 161, 208)"
	ColorExpense  = "#EF4444"
	ColorTransfer = "#8ab4f8"
	ColorNeutral  = "#000000"
)

// Icon names (Feather icon set).
const (
	IconIncome   = "arrow-down-circle"
	IconExpense  = "arrow-up-circle"
	IconTransfer = "repeat"
	IconGeneric  = "dollar-sign"
)

// CurrencySymbol prefixes every formatted amount.
const CurrencySymbol = "$"

// Color returns the display color for a raw type string.
func Color(typ string) string {
	switch ParseKind(typ) {
	case Income:
		return ColorIncome
	case Expense:
		return ColorExpense
	case Transfer:
		return ColorTransfer
	default:
		return ColorNeutral
	}
}

// Icon returns the icon name for a raw type string.
func Icon(typ string) string {
	switch ParseKind(typ) {
	case Income:
		return IconIncome
	case Expense:
		return IconExpense
	case Transfer:
		return IconTransfer
	default:
		return IconGeneric
	}
}

// FormatAmount renders m as "$1,234.50": en-US digit grouping and exactly
// two fraction digits. Sub-cent amounts round half away from zero.
func FormatAmount(m Money) string {
	u := m.Units
	neg := u < 0
	if neg {
		u = -u
	}
	cents := (u + unitsPerCent/2) / unitsPerCent
	p := message.NewPrinter(language.AmericanEnglish)
	s := CurrencySymbol + p.Sprintf("%d", cents/100) + "." + twoDigits(cents%100)
	if neg {
		return "-" + s
	}
	return s
}

func twoDigits(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}

var shortMonths = [...]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sept", "oct", "nov", "dic"}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FormatDate renders an ISO-8601 date as "05 mar 2025". An absent or
// unparseable date renders as the empty string.
func FormatDate(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return ""
	}
	return twoDigits(int64(t.Day())) + " " + shortMonths[t.Month()-1] + " " + strconv.Itoa(t.Year())
}

// ParseDate parses the date formats the transactions endpoint is known to
// emit. Zoned timestamps keep their own offset, so the calendar day shown is
// the one the server recorded.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
