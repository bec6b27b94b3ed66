package reservation

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/kuraya-dely/dely/internal/domain/core"
	"github.com/kuraya-dely/dely/internal/domain/kernel"
	"github.com/kuraya-dely/dely/internal/eventstore"
)

// EntityKind is the stream-name prefix for this aggregate: "reservation-<id>".
const EntityKind = "reservation"

// wireCustomer is the JSON shape of Customer: a tagged union encoded
// as a kind discriminator plus the fields relevant to that kind.
type wireCustomer struct {
	Kind       string          `json:"kind"`
	CustomerID core.CustomerID `json:"customerId,omitempty"`
	Name       string          `json:"name,omitempty"`
	Phone      string          `json:"phone,omitempty"`
}

func toWireCustomer(c Customer) wireCustomer {
	switch {
	case c.Registered:
		return wireCustomer{Kind: "registered", CustomerID: c.CustomerID}
	case c.Unregistered:
		return wireCustomer{Kind: "unregistered", Name: c.Name, Phone: c.Phone}
	default:
		return wireCustomer{Kind: "anonymous"}
	}
}

func fromWireCustomer(w wireCustomer) Customer {
	switch w.Kind {
	case "registered":
		return RegisteredCustomer(w.CustomerID)
	case "unregistered":
		return UnregisteredCustomer(w.Name, w.Phone)
	default:
		return Customer{}
	}
}

// Codec implements eventstore.Codec for Reservation.
type Codec struct{}

var _ eventstore.Codec = Codec{}

func (Codec) EntityKind() string { return EntityKind }

func (Codec) Encode(event kernel.Event) (string, []byte, []byte, error) {
	switch ev := event.(type) {
	case Created:
		body, err := json.Marshal(struct {
			ProstituteIDs []core.ProstituteID `json:"prostituteIds"`
			Start         time.Time            `json:"start"`
			End           time.Time            `json:"end"`
			Customer      wireCustomer          `json:"customer"`
		}{ev.ProstituteIDs, ev.Start, ev.End, toWireCustomer(ev.Customer)})
		return ev.EventType(), body, nil, err
	case DetailAdded:
		body, err := json.Marshal(struct {
			Detail Detail `json:"detail"`
		}{ev.Detail})
		return ev.EventType(), body, nil, err
	case DetailDeleted:
		body, err := json.Marshal(struct {
			DetailID core.ReservationDetailID `json:"detailId"`
		}{ev.DetailID})
		return ev.EventType(), body, nil, err
	case Deleted:
		return ev.EventType(), []byte("{}"), nil, nil
	default:
		return "", nil, nil, fmt.Errorf("reservation: unknown event %T", event)
	}
}

func (Codec) Decode(eventType string, body []byte, _ []byte, id core.ID) (kernel.Event, error) {
	rid := core.ReservationID(id)
	switch eventType {
	case "ReservationCreated":
		var w struct {
			ProstituteIDs []core.ProstituteID `json:"prostituteIds"`
			Start         time.Time            `json:"start"`
			End           time.Time            `json:"end"`
			Customer      wireCustomer          `json:"customer"`
		}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, err
		}
		return Created{ID: rid, ProstituteIDs: w.ProstituteIDs, Start: w.Start, End: w.End, Customer: fromWireCustomer(w.Customer)}, nil
	case "ReservationDetailAdded":
		var w struct {
			Detail Detail `json:"detail"`
		}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, err
		}
		return DetailAdded{ID: rid, Detail: w.Detail}, nil
	case "ReservationDetailDeleted":
		var w struct {
			DetailID core.ReservationDetailID `json:"detailId"`
		}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, err
		}
		return DetailDeleted{ID: rid, DetailID: w.DetailID}, nil
	case "ReservationDeleted":
		return Deleted{ID: rid}, nil
	default:
		return nil, fmt.Errorf("reservation: unknown event type %q", eventType)
	}
}
