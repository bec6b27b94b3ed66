package extraservice

import "github.com/kuraya-dely/dely/internal/domain/core"

// Created is the creation event for an ExtraService stream. It is the
// only event allowed to establish identity: every other event on this
// stream presumes the aggregate already exists.
type Created struct {
	ID          core.ExtraServiceID
	Name        string
	Description string
	Price       core.Price
}

func (Created) EventType() string { return "ExtraServiceCreated" }

// NameChanged records a rename.
type NameChanged struct {
	ID   core.ExtraServiceID
	Name string
}

func (NameChanged) EventType() string { return "NameChanged" }

// DescriptionChanged records a description edit.
type DescriptionChanged struct {
	ID          core.ExtraServiceID
	Description string
}

func (DescriptionChanged) EventType() string { return "DescriptionChanged" }

// PriceChanged records a price edit.
type PriceChanged struct {
	ID    core.ExtraServiceID
	Price core.Price
}

func (PriceChanged) EventType() string { return "PriceChanged" }

// Deleted is the tombstone event.
type Deleted struct {
	ID core.ExtraServiceID
}

func (Deleted) EventType() string { return "Deleted" }
