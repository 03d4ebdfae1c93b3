// Package core provides money parsing and handling utilities.
//
// Amounts travel on the wire as JSON numbers but are held as integer
// ten-thousandths of a currency unit, parsed from the decimal text so the
// stored value is the one that was sent and sums do not depend on the order
// they are added in.
package core

import (
	"encoding/json"
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// UnitsPerWhole is the number of Money units in one currency unit.
const UnitsPerWhole = 10000

const (
	unitsPerCent = UnitsPerWhole / 100
	scaleDigits  = 4

	// MaxAmount is the largest magnitude Money accepts, in currency units.
	MaxAmount = 100_000_000_000_000
	maxUnits  = MaxAmount * UnitsPerWhole
)

var (
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrAmountTooLarge = errors.New("amount too large")
	ErrAmountTooFine  = errors.New("amount has more than four decimal places")
)

// Money is an amount in ten-thousandths of a currency unit.
type Money struct {
	Units int64
}

// Cents returns c hundredths of a currency unit.
func Cents(c int64) Money {
	return Money{Units: c * unitsPerCent}
}

// ParseMoney reads a decimal amount such as "12.5", "0.004" or "1e14". The
// sign is dropped: direction belongs to the transaction type. The value
// must be exact at four decimal places and no larger than MaxAmount.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) || strings.ContainsAny(s, "xXnN") {
		return Money{}, ErrInvalidAmount
	}
	if math.IsInf(f, 0) {
		return Money{}, ErrAmountTooLarge
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return Money{}, ErrInvalidAmount
	}
	r.Abs(r)
	r.Mul(r, big.NewRat(UnitsPerWhole, 1))
	if !r.IsInt() {
		return Money{}, ErrAmountTooFine
	}
	n := r.Num()
	if !n.IsInt64() || n.Int64() > maxUnits {
		return Money{}, ErrAmountTooLarge
	}
	return Money{Units: n.Int64()}, nil
}

// MoneyFromFloat converts f through its shortest decimal form, so 0.1 is
// exactly one tenth. NaN and infinities are invalid.
func MoneyFromFloat(f float64) (Money, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Money{}, ErrInvalidAmount
	}
	return ParseMoney(strconv.FormatFloat(f, 'g', -1, 64))
}

// Add returns m + o.
func (m Money) Add(o Money) Money {
	return Money{Units: m.Units + o.Units}
}

// Sub returns m - o. The result may be negative, e.g. for a balance.
func (m Money) Sub(o Money) Money {
	return Money{Units: m.Units - o.Units}
}

func (m Money) IsZero() bool {
	return m.Units == 0
}

func (m Money) Validate() error {
	if m.Units <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// String renders the exact decimal value with no trailing zeros, e.g.
// "12.5" or "-0.004".
func (m Money) String() string {
	u := m.Units
	sign := ""
	if u < 0 {
		sign = "-"
		u = -u
	}
	whole := strconv.FormatInt(u/UnitsPerWhole, 10)
	frac := u % UnitsPerWhole
	if frac == 0 {
		return sign + whole
	}
	f := strconv.FormatInt(frac, 10)
	f = strings.Repeat("0", scaleDigits-len(f)) + f
	return sign + whole + "." + strings.TrimRight(f, "0")
}

// MarshalJSON writes the amount as a plain JSON number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts a JSON number, a numeric string or null. Anything
// else is an error so that a broken payload is reported, not zeroed.
func (m *Money) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*m = Money{}
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		s = str
	}
	v, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}
