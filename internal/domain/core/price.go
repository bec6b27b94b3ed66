package core

// PriceUnit discriminates a one-time price from an hourly rate.
type PriceUnit string

const (
	OneTime PriceUnit = "OneTime"
	Hourly  PriceUnit = "Hourly"
)

// Price pairs a Money amount with the unit it is billed in.
type Price struct {
	Amount Money     `json:"amount"`
	Unit   PriceUnit `json:"unit"`
}

// NewPrice constructs a Price. Validation of non-negativity is the
// caller's responsibility (PriceIsNegative is a command-level error,
// not a constructor-level panic).
func NewPrice(amount Money, unit PriceUnit) Price {
	return Price{Amount: amount, Unit: unit}
}

// IsNegative reports whether the underlying amount is negative.
func (p Price) IsNegative() bool {
	return p.Amount.IsNegative()
}
