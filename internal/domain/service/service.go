// Package service implements the Service aggregate: a sellable menu
// item with a default price, optional time-of-day price brackets, an
// optional per-unit extension price, and date-scoped discounts.
package service

import (
	"strings"
	"time"

	"github.com/kuraya-dely/dely/internal/domain/core"
	"github.com/kuraya-dely/dely/internal/domain/kernel"
	"github.com/kuraya-dely/dely/internal/domainerr"
)

// Service is the aggregate root.
type Service struct {
	kernel.Queue

	id              core.ServiceID
	exists          bool
	deleted         bool
	name            string
	description     string
	defaultPrice    core.Price
	extensionPrice  *core.Price
	timeBasedPrices []TimeBasedPrice
	discounts       []Discount
}

// New returns a zero-value Service ready for replay or Create.
func New() *Service { return &Service{} }

func (s *Service) ID() core.ID                          { return core.ID(s.id) }
func (s *Service) TypedID() core.ServiceID               { return s.id }
func (s *Service) Name() string                          { return s.name }
func (s *Service) Description() string                   { return s.description }
func (s *Service) DefaultPrice() core.Price              { return s.defaultPrice }
func (s *Service) ExtensionPrice() *core.Price           { return s.extensionPrice }
func (s *Service) TimeBasedPrices() []TimeBasedPrice     { return append([]TimeBasedPrice(nil), s.timeBasedPrices...) }
func (s *Service) Discounts() []Discount                 { return append([]Discount(nil), s.discounts...) }
func (s *Service) Deleted() bool                          { return s.deleted }

func (s *Service) checkID(id core.ServiceID) error {
	if s.exists && id != s.id {
		return domainerr.New(domainerr.MismatchedId, "event id does not match aggregate id")
	}
	return nil
}

func validatePrices(defaultPrice core.Price, extensionPrice *core.Price, timeBasedPrices []TimeBasedPrice) error {
	if defaultPrice.IsNegative() {
		return domainerr.New(domainerr.PriceIsNegative, "default price must not be negative")
	}
	if extensionPrice != nil && extensionPrice.IsNegative() {
		return domainerr.New(domainerr.PriceIsNegative, "extension price must not be negative")
	}
	for _, tbp := range timeBasedPrices {
		if tbp.Price.IsNegative() {
			return domainerr.New(domainerr.PriceIsNegative, "time-based price must not be negative")
		}
	}
	return nil
}

// Validate checks a candidate event against current state.
func (s *Service) Validate(event kernel.Event) error {
	switch ev := event.(type) {
	case Created:
		if s.exists {
			return domainerr.New(domainerr.MismatchedId, "aggregate already created")
		}
		if strings.TrimSpace(ev.Name) == "" {
			return domainerr.New(domainerr.NameIsBlank, "name is blank")
		}
		return validatePrices(ev.DefaultPrice, ev.ExtensionPrice, ev.TimeBasedPrices)
	case NameChanged:
		if err := s.checkID(ev.ID); err != nil {
			return err
		}
		if strings.TrimSpace(ev.Name) == "" {
			return domainerr.New(domainerr.NameIsBlank, "name is blank")
		}
		return nil
	case DescriptionChanged:
		return s.checkID(ev.ID)
	case DefaultPriceChanged:
		if err := s.checkID(ev.ID); err != nil {
			return err
		}
		if ev.Price.IsNegative() {
			return domainerr.New(domainerr.PriceIsNegative, "default price must not be negative")
		}
		return nil
	case ExtensionPriceChanged:
		if err := s.checkID(ev.ID); err != nil {
			return err
		}
		if ev.Price != nil && ev.Price.IsNegative() {
			return domainerr.New(domainerr.PriceIsNegative, "extension price must not be negative")
		}
		return nil
	case TimeBasedPricesChanged:
		if err := s.checkID(ev.ID); err != nil {
			return err
		}
		for _, tbp := range ev.Prices {
			if tbp.Price.IsNegative() {
				return domainerr.New(domainerr.PriceIsNegative, "time-based price must not be negative")
			}
		}
		return nil
	case DiscountsChanged:
		return s.checkID(ev.ID)
	case Deleted:
		return s.checkID(ev.ID)
	default:
		return domainerr.Newf(domainerr.MismatchedId, "unknown event type %T", event)
	}
}

// Apply mutates state for event. Total; does not re-validate.
func (s *Service) Apply(event kernel.Event) {
	switch ev := event.(type) {
	case Created:
		s.id = ev.ID
		s.exists = true
		s.name = ev.Name
		s.description = ev.Description
		s.defaultPrice = ev.DefaultPrice
		s.extensionPrice = ev.ExtensionPrice
		s.timeBasedPrices = append([]TimeBasedPrice(nil), ev.TimeBasedPrices...)
		s.discounts = append([]Discount(nil), ev.Discounts...)
	case NameChanged:
		s.name = ev.Name
	case DescriptionChanged:
		s.description = ev.Description
	case DefaultPriceChanged:
		s.defaultPrice = ev.Price
	case ExtensionPriceChanged:
		s.extensionPrice = ev.Price
	case TimeBasedPricesChanged:
		s.timeBasedPrices = append([]TimeBasedPrice(nil), ev.Prices...)
	case DiscountsChanged:
		s.discounts = append([]Discount(nil), ev.Discounts...)
	case Deleted:
		s.deleted = true
	}
	s.Queue.Push(event)
}

func (s *Service) command(event kernel.Event) error {
	if err := s.Validate(event); err != nil {
		return err
	}
	s.Apply(event)
	return nil
}

func (s *Service) Create(id core.ServiceID, name, description string, defaultPrice core.Price, extensionPrice *core.Price, timeBasedPrices []TimeBasedPrice, discounts []Discount) error {
	return s.command(Created{ID: id, Name: name, Description: description, DefaultPrice: defaultPrice, ExtensionPrice: extensionPrice, TimeBasedPrices: timeBasedPrices, Discounts: discounts})
}

func (s *Service) ChangeName(name string) error {
	return s.command(NameChanged{ID: s.id, Name: name})
}

func (s *Service) ChangeDescription(description string) error {
	return s.command(DescriptionChanged{ID: s.id, Description: description})
}

func (s *Service) ChangeDefaultPrice(price core.Price) error {
	return s.command(DefaultPriceChanged{ID: s.id, Price: price})
}

func (s *Service) ChangeExtensionPrice(price *core.Price) error {
	return s.command(ExtensionPriceChanged{ID: s.id, Price: price})
}

func (s *Service) ChangeTimeBasedPrices(prices []TimeBasedPrice) error {
	return s.command(TimeBasedPricesChanged{ID: s.id, Prices: prices})
}

func (s *Service) ChangeDiscounts(discounts []Discount) error {
	return s.command(DiscountsChanged{ID: s.id, Discounts: discounts})
}

func (s *Service) Delete() error {
	return s.command(Deleted{ID: s.id})
}

// Replay feeds historical events through Apply then clears the queue.
func Replay(events []kernel.Event) *Service {
	s := New()
	for _, ev := range events {
		s.Apply(ev)
	}
	s.Clear()
	return s
}

// base resolves the price bracket whose time-of-day period contains
// at's time-of-day component, ties broken by the smallest start time;
// falls back to DefaultPrice when no bracket matches.
func (s *Service) base(at time.Time) core.Price {
	tod := core.TimeOfDayFromTime(at)
	var best *TimeBasedPrice
	for i := range s.timeBasedPrices {
		tbp := &s.timeBasedPrices[i]
		if !tbp.Period.Contains(tod) {
			continue
		}
		if best == nil || tbp.Period.Start.Before(best.Period.Start) {
			best = tbp
		}
	}
	if best != nil {
		return best.Price
	}
	return s.defaultPrice
}

// discountTotal sums matching discounts against base, percentage
// discounts applied before amount discounts, clamped so the total
// discount never exceeds base.
func (s *Service) discountTotal(at time.Time, base core.Money) core.Money {
	var percentageTotal, amountTotal int64
	for _, d := range s.discounts {
		if !d.Period.Contains(at) {
			continue
		}
		switch d.Kind {
		case Percentage:
			percentageTotal += base.Amount * int64(d.PercentageValue) / 100
		case Amount:
			amountTotal += d.AmountValue.Amount
		}
	}
	total := percentageTotal + amountTotal
	if total > base.Amount {
		total = base.Amount
	}
	return core.NewMoney(total, base.Currency)
}

// Quote computes the total charge for `units` billed units of this
// service at date_time at. units beyond the first are charged at
// ExtensionPrice per unit; a nil ExtensionPrice with units > 1 means no
// extension is sold, so additional units are not charged.
func (s *Service) Quote(at time.Time, units int) core.Money {
	base := s.base(at)
	discount := s.discountTotal(at, base.Amount)
	subtotal := base.Amount.Sub(discount)

	if units > 1 && s.extensionPrice != nil {
		extra := int64(units-1) * s.extensionPrice.Amount.Amount
		subtotal = subtotal.Add(core.NewMoney(extra, s.extensionPrice.Amount.Currency))
	}
	return subtotal
}
