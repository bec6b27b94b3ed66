// Package reservation implements the Reservation aggregate: a booking
// of one or more prostitutes over a time interval for a customer, with
// billable detail lines.
package reservation

import (
	"strings"
	"time"

	"github.com/kuraya-dely/dely/internal/domain/core"
	"github.com/kuraya-dely/dely/internal/domain/kernel"
	"github.com/kuraya-dely/dely/internal/domainerr"
)

// Reservation is the aggregate root.
type Reservation struct {
	kernel.Queue

	id            core.ReservationID
	exists        bool
	deleted       bool
	prostituteIDs []core.ProstituteID
	start         time.Time
	end           time.Time
	customer      Customer
	details       []Detail
}

// New returns a zero-value Reservation ready for replay or Create.
func New() *Reservation { return &Reservation{} }

func (r *Reservation) ID() core.ID                         { return core.ID(r.id) }
func (r *Reservation) TypedID() core.ReservationID         { return r.id }
func (r *Reservation) ProstituteIDs() []core.ProstituteID  { return append([]core.ProstituteID(nil), r.prostituteIDs...) }
func (r *Reservation) Start() time.Time                    { return r.start }
func (r *Reservation) End() time.Time                      { return r.end }
func (r *Reservation) Customer() Customer                  { return r.customer }
func (r *Reservation) Details() []Detail                   { return append([]Detail(nil), r.details...) }
func (r *Reservation) Deleted() bool                        { return r.deleted }

func (r *Reservation) checkID(id core.ReservationID) error {
	if r.exists && id != r.id {
		return domainerr.New(domainerr.MismatchedId, "event id does not match aggregate id")
	}
	return nil
}

func (r *Reservation) detailIndex(id core.ReservationDetailID) int {
	for i, d := range r.details {
		if d.ID == id {
			return i
		}
	}
	return -1
}

func validateCustomer(c Customer) error {
	switch {
	case c.Registered:
		return nil
	case c.Unregistered:
		if strings.TrimSpace(c.Name) == "" {
			return domainerr.New(domainerr.UnregisteredCustomerName, "unregistered customer name is required")
		}
		if strings.TrimSpace(c.Phone) == "" {
			return domainerr.New(domainerr.UnregisteredCustomerPhone, "unregistered customer phone is required")
		}
		return nil
	default:
		return domainerr.New(domainerr.AnonymousNotAllowed, "anonymous reservation is not allowed")
	}
}

func validateDetail(d Detail) error {
	if strings.TrimSpace(d.Name) == "" {
		return domainerr.New(domainerr.NameIsBlank, "detail name is blank")
	}
	if d.Quantity < 1 {
		return domainerr.New(domainerr.InvalidQuantity, "detail quantity must be at least 1")
	}
	if d.Price.IsNegative() {
		return domainerr.New(domainerr.PriceIsNegative, "detail price must not be negative")
	}
	return nil
}

// Validate checks a candidate event against current state.
func (r *Reservation) Validate(event kernel.Event) error {
	switch ev := event.(type) {
	case Created:
		if r.exists {
			return domainerr.New(domainerr.MismatchedId, "aggregate already created")
		}
		if len(ev.ProstituteIDs) == 0 {
			return domainerr.New(domainerr.InvalidQuantity, "at least one prostitute is required")
		}
		if !ev.Start.Before(ev.End) {
			return domainerr.New(domainerr.InvalidDuration, "reservation start must precede end")
		}
		return validateCustomer(ev.Customer)
	case DetailAdded:
		if err := r.checkID(ev.ID); err != nil {
			return err
		}
		if r.detailIndex(ev.Detail.ID) >= 0 {
			return domainerr.New(domainerr.DuplicateDetail, "detail id already present")
		}
		return validateDetail(ev.Detail)
	case DetailDeleted:
		if err := r.checkID(ev.ID); err != nil {
			return err
		}
		if r.detailIndex(ev.DetailID) < 0 {
			return domainerr.New(domainerr.DetailNotFound, "detail not found")
		}
		return nil
	case Deleted:
		return r.checkID(ev.ID)
	default:
		return domainerr.Newf(domainerr.MismatchedId, "unknown event type %T", event)
	}
}

// Apply mutates state for event. Total; does not re-validate.
func (r *Reservation) Apply(event kernel.Event) {
	switch ev := event.(type) {
	case Created:
		r.id = ev.ID
		r.exists = true
		r.prostituteIDs = append([]core.ProstituteID(nil), ev.ProstituteIDs...)
		r.start = ev.Start
		r.end = ev.End
		r.customer = ev.Customer
	case DetailAdded:
		r.details = append(r.details, ev.Detail)
	case DetailDeleted:
		idx := r.detailIndex(ev.DetailID)
		r.details = append(r.details[:idx], r.details[idx+1:]...)
	case Deleted:
		r.deleted = true
	}
	r.Queue.Push(event)
}

func (r *Reservation) command(event kernel.Event) error {
	if err := r.Validate(event); err != nil {
		return err
	}
	r.Apply(event)
	return nil
}

// Create establishes a new Reservation.
func (r *Reservation) Create(id core.ReservationID, prostituteIDs []core.ProstituteID, start, end time.Time, customer Customer) error {
	return r.command(Created{ID: id, ProstituteIDs: prostituteIDs, Start: start, End: end, Customer: customer})
}

func (r *Reservation) AddDetail(detail Detail) error {
	return r.command(DetailAdded{ID: r.id, Detail: detail})
}

func (r *Reservation) DeleteDetail(detailID core.ReservationDetailID) error {
	return r.command(DetailDeleted{ID: r.id, DetailID: detailID})
}

func (r *Reservation) Delete() error {
	return r.command(Deleted{ID: r.id})
}

// Replay feeds historical events through Apply then clears the queue.
func Replay(events []kernel.Event) *Reservation {
	r := New()
	for _, ev := range events {
		r.Apply(ev)
	}
	r.Clear()
	return r
}
