package extraservice

import (
	"errors"
	"testing"

	"github.com/kuraya-dely/dely/internal/domain/core"
	"github.com/kuraya-dely/dely/internal/domainerr"
)

func TestCreateAndReplay(t *testing.T) {
	e := New()
	price := core.NewPrice(core.JPYAmount(10000), core.OneTime)
	if err := e.Create(30, "AF", "a description", price); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := e.ChangeName("AF改"); err != nil {
		t.Fatalf("ChangeName: %v", err)
	}

	events := e.Events()
	if len(events) != 2 {
		t.Fatalf("expected 2 queued events, got %d", len(events))
	}

	replayed := Replay(events)
	if replayed.Name() != "AF改" {
		t.Errorf("Name = %q, want AF改", replayed.Name())
	}
	if replayed.Price().Amount.Amount != 10000 {
		t.Errorf("Price.Amount = %d, want 10000", replayed.Price().Amount.Amount)
	}
	if len(replayed.Events()) != 0 {
		t.Errorf("replayed aggregate should have an empty queue after Clear, got %d", len(replayed.Events()))
	}
}

func TestMoneyString(t *testing.T) {
	m := core.JPYAmount(1_000_000)
	if got := m.String(); got != "¥1,000,000" {
		t.Errorf("String() = %q, want ¥1,000,000", got)
	}
}

func TestCreateRejectsBlankName(t *testing.T) {
	e := New()
	price := core.NewPrice(core.JPYAmount(1000), core.OneTime)
	err := e.Create(1, "   ", "desc", price)
	var derr *domainerr.Error
	if !errors.As(err, &derr) || derr.Kind != domainerr.NameIsBlank {
		t.Fatalf("expected NameIsBlank, got %v", err)
	}
	if len(e.Events()) != 0 {
		t.Errorf("failed command must not enqueue an event")
	}
}

func TestCreateRejectsNegativePrice(t *testing.T) {
	e := New()
	price := core.NewPrice(core.JPYAmount(-1), core.OneTime)
	err := e.Create(1, "name", "desc", price)
	var derr *domainerr.Error
	if !errors.As(err, &derr) || derr.Kind != domainerr.PriceIsNegative {
		t.Fatalf("expected PriceIsNegative, got %v", err)
	}
}

func TestMismatchedID(t *testing.T) {
	e := New()
	if err := e.Create(1, "name", "desc", core.NewPrice(core.JPYAmount(1), core.OneTime)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	err := e.Validate(NameChanged{ID: 2, Name: "other"})
	var derr *domainerr.Error
	if !errors.As(err, &derr) || derr.Kind != domainerr.MismatchedId {
		t.Fatalf("expected MismatchedId, got %v", err)
	}
}

func TestDeleteTombstones(t *testing.T) {
	e := New()
	if err := e.Create(1, "name", "desc", core.NewPrice(core.JPYAmount(1), core.OneTime)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	e.Clear()
	if err := e.Delete(); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !e.Deleted() {
		t.Errorf("expected Deleted() to be true")
	}
}
