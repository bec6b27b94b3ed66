package core

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Currency is a closed set of supported currencies. Every command path
// in this repository only ever constructs JPY money, but the type keeps
// room for others without widening the zero value's meaning.
type Currency string

const (
	JPY Currency = "JPY"
)

// Money is an exact integer amount in the smallest unit the currency
// reports in (yen, for JPY — JPY has no subunit, so amount is whole yen).
type Money struct {
	Amount   int64
	Currency Currency
}

// NewMoney constructs a Money value. Negative amounts are rejected by
// callers that enforce PriceIsNegative; NewMoney itself is total.
func NewMoney(amount int64, currency Currency) Money {
	return Money{Amount: amount, Currency: currency}
}

// JPYAmount is a convenience constructor for the only currency this
// codebase's commands ever produce.
func JPYAmount(amount int64) Money {
	return Money{Amount: amount, Currency: JPY}
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.Amount < 0
}

// Add returns the sum of two Money values of the same currency.
func (m Money) Add(other Money) Money {
	return Money{Amount: m.Amount + other.Amount, Currency: m.Currency}
}

// Sub returns the difference, floored at zero.
func (m Money) Sub(other Money) Money {
	amt := m.Amount - other.Amount
	if amt < 0 {
		amt = 0
	}
	return Money{Amount: amt, Currency: m.Currency}
}

// String renders Money with the currency's symbol and thousands
// grouping. JPY groups digits in 3s with commas, Japanese-locale style:
// "¥1,000,000".
func (m Money) String() string {
	symbol := currencySymbol(m.Currency)
	sign := ""
	amt := m.Amount
	if amt < 0 {
		sign = "-"
		amt = -amt
	}
	return sign + symbol + groupThousands(strconv.FormatInt(amt, 10))
}

func currencySymbol(c Currency) string {
	switch c {
	case JPY:
		return "¥"
	default:
		return string(c) + " "
	}
}

// groupThousands inserts commas every three digits from the right. No
// pack example imports golang.org/x/text/message's number formatter, so
// this is done by hand rather than pulling in a dependency for one
// string-formatting concern.
func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	lead := n % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < n; i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// MarshalJSON encodes Money as {"amount":int,"currency":"JPY"} per the
// event body encoding rule.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`{"amount":%d,"currency":%q}`, m.Amount, m.Currency)), nil
}

// UnmarshalJSON decodes the {"amount":int,"currency":"JPY"} shape.
func (m *Money) UnmarshalJSON(data []byte) error {
	var raw struct {
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m.Amount = raw.Amount
	m.Currency = Currency(raw.Currency)
	return nil
}
