// Package extraservice implements the ExtraService aggregate: an
// optional add-on service with a name, description and price.
package extraservice

import (
	"strings"

	"github.com/kuraya-dely/dely/internal/domain/core"
	"github.com/kuraya-dely/dely/internal/domain/kernel"
	"github.com/kuraya-dely/dely/internal/domainerr"
)

// ExtraService is the aggregate root.
type ExtraService struct {
	kernel.Queue

	id          core.ExtraServiceID
	exists      bool
	deleted     bool
	name        string
	description string
	price       core.Price
}

// New returns a zero-value ExtraService ready for replay or for Create.
func New() *ExtraService {
	return &ExtraService{}
}

func (e *ExtraService) ID() core.ID               { return core.ID(e.id) }
func (e *ExtraService) Name() string               { return e.name }
func (e *ExtraService) Description() string        { return e.description }
func (e *ExtraService) Price() core.Price          { return e.price }
func (e *ExtraService) Deleted() bool              { return e.deleted }
func (e *ExtraService) TypedID() core.ExtraServiceID { return e.id }

func nonBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}

// checkID rejects events whose id does not match this aggregate's
// established identity. Creation events are exempt: they establish it.
func (e *ExtraService) checkID(id core.ExtraServiceID) error {
	if e.exists && id != e.id {
		return domainerr.New(domainerr.MismatchedId, "event id does not match aggregate id")
	}
	return nil
}

// Validate checks a candidate event against current state without
// mutating it. Apply does not re-run these checks: callers on the
// command path must Validate first; replay trusts stored events.
func (e *ExtraService) Validate(event kernel.Event) error {
	switch ev := event.(type) {
	case Created:
		if e.exists {
			return domainerr.New(domainerr.MismatchedId, "aggregate already created")
		}
		if !nonBlank(ev.Name) {
			return domainerr.New(domainerr.NameIsBlank, "name is blank")
		}
		if ev.Price.IsNegative() {
			return domainerr.New(domainerr.PriceIsNegative, "price is negative")
		}
		return nil
	case NameChanged:
		if err := e.checkID(ev.ID); err != nil {
			return err
		}
		if !nonBlank(ev.Name) {
			return domainerr.New(domainerr.NameIsBlank, "name is blank")
		}
		return nil
	case DescriptionChanged:
		return e.checkID(ev.ID)
	case PriceChanged:
		if err := e.checkID(ev.ID); err != nil {
			return err
		}
		if ev.Price.IsNegative() {
			return domainerr.New(domainerr.PriceIsNegative, "price is negative")
		}
		return nil
	case Deleted:
		return e.checkID(ev.ID)
	default:
		return domainerr.Newf(domainerr.MismatchedId, "unknown event type %T", event)
	}
}

// Apply mutates state for event and appends it to the uncommitted
// queue. It is total: it does not re-validate, trusting the caller
// (command path) or replay (trusted history).
func (e *ExtraService) Apply(event kernel.Event) {
	switch ev := event.(type) {
	case Created:
		e.id = ev.ID
		e.exists = true
		e.name = ev.Name
		e.description = ev.Description
		e.price = ev.Price
	case NameChanged:
		e.name = ev.Name
	case DescriptionChanged:
		e.description = ev.Description
	case PriceChanged:
		e.price = ev.Price
	case Deleted:
		e.deleted = true
	}
	e.Queue.Push(event)
}

// command runs validate-then-apply and returns the validation error, if
// any, leaving state unchanged on failure.
func (e *ExtraService) command(event kernel.Event) error {
	if err := e.Validate(event); err != nil {
		return err
	}
	e.Apply(event)
	return nil
}

// Create establishes a new ExtraService.
func (e *ExtraService) Create(id core.ExtraServiceID, name, description string, price core.Price) error {
	return e.command(Created{ID: id, Name: name, Description: description, Price: price})
}

// ChangeName renames the service.
func (e *ExtraService) ChangeName(name string) error {
	return e.command(NameChanged{ID: e.id, Name: name})
}

// ChangeDescription edits the description.
func (e *ExtraService) ChangeDescription(description string) error {
	return e.command(DescriptionChanged{ID: e.id, Description: description})
}

// ChangePrice edits the price.
func (e *ExtraService) ChangePrice(price core.Price) error {
	return e.command(PriceChanged{ID: e.id, Price: price})
}

// Delete tombstones the service.
func (e *ExtraService) Delete() error {
	return e.command(Deleted{ID: e.id})
}

// Replay feeds historical events through Apply without producing new
// ones, then clears the queue so the caller's repository does not
// re-append history as if it were new.
func Replay(events []kernel.Event) *ExtraService {
	e := New()
	for _, ev := range events {
		e.Apply(ev)
	}
	e.Clear()
	return e
}
