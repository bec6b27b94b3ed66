package reservation

import (
	"time"

	"github.com/kuraya-dely/dely/internal/domain/core"
)

// Customer is the party a Reservation is made for. The zero value is
// Anonymous, which is always rejected at validation.
type Customer struct {
	Registered   bool
	CustomerID   core.CustomerID
	Unregistered bool
	Name         string
	Phone        string
}

// RegisteredCustomer builds a Customer referencing an existing account.
func RegisteredCustomer(id core.CustomerID) Customer {
	return Customer{Registered: true, CustomerID: id}
}

// UnregisteredCustomer builds a walk-in Customer by name and phone.
func UnregisteredCustomer(name, phone string) Customer {
	return Customer{Unregistered: true, Name: name, Phone: phone}
}

// Detail is one billable line item of a Reservation.
type Detail struct {
	ID       core.ReservationDetailID `json:"id"`
	Name     string                   `json:"name"`
	Quantity uint32                   `json:"quantity"`
	Price    core.Price               `json:"price"`
}

type Created struct {
	ID            core.ReservationID
	ProstituteIDs []core.ProstituteID
	Start         time.Time
	End           time.Time
	Customer      Customer
}

func (Created) EventType() string { return "ReservationCreated" }

type DetailAdded struct {
	ID     core.ReservationID
	Detail Detail
}

func (DetailAdded) EventType() string { return "ReservationDetailAdded" }

type DetailDeleted struct {
	ID       core.ReservationID
	DetailID core.ReservationDetailID
}

func (DetailDeleted) EventType() string { return "ReservationDetailDeleted" }

type Deleted struct {
	ID core.ReservationID
}

func (Deleted) EventType() string { return "ReservationDeleted" }
