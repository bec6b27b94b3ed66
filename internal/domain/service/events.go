package service

import (
	"time"

	"github.com/kuraya-dely/dely/internal/domain/core"
)

// DiscountKind discriminates how a Discount reduces the base price.
type DiscountKind string

const (
	Amount     DiscountKind = "Amount"
	Percentage DiscountKind = "Percentage"
)

// Discount reduces the base price for date_times falling within Period.
// For Kind==Amount, AmountValue is the flat reduction; for
// Kind==Percentage, PercentageValue (0-100) is applied to the base.
type Discount struct {
	Period          core.Interval[time.Time] `json:"period"`
	Kind            DiscountKind             `json:"kind"`
	AmountValue     core.Money               `json:"amountValue,omitempty"`
	PercentageValue float64                  `json:"percentageValue,omitempty"`
}

// TimeBasedPrice overrides DefaultPrice for date_times whose
// time-of-day component falls within Period.
type TimeBasedPrice struct {
	Period core.Interval[core.TimeOfDay] `json:"period"`
	Price  core.Price                    `json:"price"`
}

type Created struct {
	ID              core.ServiceID
	Name            string
	Description     string
	DefaultPrice    core.Price
	ExtensionPrice  *core.Price
	TimeBasedPrices []TimeBasedPrice
	Discounts       []Discount
}

func (Created) EventType() string { return "ServiceCreated" }

type NameChanged struct {
	ID   core.ServiceID
	Name string
}

func (NameChanged) EventType() string { return "NameChanged" }

type DescriptionChanged struct {
	ID          core.ServiceID
	Description string
}

func (DescriptionChanged) EventType() string { return "DescriptionChanged" }

type DefaultPriceChanged struct {
	ID    core.ServiceID
	Price core.Price
}

func (DefaultPriceChanged) EventType() string { return "DefaultPriceChanged" }

type ExtensionPriceChanged struct {
	ID    core.ServiceID
	Price *core.Price
}

func (ExtensionPriceChanged) EventType() string { return "ExtensionPriceChanged" }

type TimeBasedPricesChanged struct {
	ID     core.ServiceID
	Prices []TimeBasedPrice
}

func (TimeBasedPricesChanged) EventType() string { return "TimeBasedPricesChanged" }

type DiscountsChanged struct {
	ID        core.ServiceID
	Discounts []Discount
}

func (DiscountsChanged) EventType() string { return "DiscountsChanged" }

type Deleted struct {
	ID core.ServiceID
}

func (Deleted) EventType() string { return "Deleted" }
