package reservation

import (
	"errors"
	"testing"
	"time"

	"github.com/kuraya-dely/dely/internal/domain/core"
	"github.com/kuraya-dely/dely/internal/domainerr"
)

func interval() (time.Time, time.Time) {
	start := time.Date(2026, time.January, 1, 19, 0, 0, 0, time.UTC)
	return start, start.Add(2 * time.Hour)
}

func TestCreateRejectsEmptyProstituteIDs(t *testing.T) {
	r := New()
	start, end := interval()
	err := r.Create(1, nil, start, end, RegisteredCustomer(5))
	var derr *domainerr.Error
	if !errors.As(err, &derr) || derr.Kind != domainerr.InvalidQuantity {
		t.Fatalf("expected InvalidQuantity, got %v", err)
	}
}

func TestCreateRejectsBadInterval(t *testing.T) {
	r := New()
	start, end := interval()
	err := r.Create(1, []core.ProstituteID{10}, end, start, RegisteredCustomer(5))
	var derr *domainerr.Error
	if !errors.As(err, &derr) || derr.Kind != domainerr.InvalidDuration {
		t.Fatalf("expected InvalidDuration, got %v", err)
	}
}

func TestCreateRejectsAnonymous(t *testing.T) {
	r := New()
	start, end := interval()
	err := r.Create(1, []core.ProstituteID{10}, start, end, Customer{})
	var derr *domainerr.Error
	if !errors.As(err, &derr) || derr.Kind != domainerr.AnonymousNotAllowed {
		t.Fatalf("expected AnonymousNotAllowed, got %v", err)
	}
}

func TestCreateRejectsIncompleteUnregistered(t *testing.T) {
	r := New()
	start, end := interval()
	err := r.Create(1, []core.ProstituteID{10}, start, end, UnregisteredCustomer("", "090-0000-0000"))
	var derr *domainerr.Error
	if !errors.As(err, &derr) || derr.Kind != domainerr.UnregisteredCustomerName {
		t.Fatalf("expected UnregisteredCustomerName, got %v", err)
	}

	err = r.Create(1, []core.ProstituteID{10}, start, end, UnregisteredCustomer("Taro", ""))
	if !errors.As(err, &derr) || derr.Kind != domainerr.UnregisteredCustomerPhone {
		t.Fatalf("expected UnregisteredCustomerPhone, got %v", err)
	}
}

func TestAddDetailRejectsDuplicate(t *testing.T) {
	r := New()
	start, end := interval()
	if err := r.Create(1, []core.ProstituteID{10}, start, end, RegisteredCustomer(5)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	detail := Detail{ID: 1, Name: "nomination", Quantity: 1, Price: core.NewPrice(core.NewMoney(1000, core.JPY), core.OneTime)}
	if err := r.AddDetail(detail); err != nil {
		t.Fatalf("AddDetail: %v", err)
	}
	err := r.AddDetail(detail)
	var derr *domainerr.Error
	if !errors.As(err, &derr) || derr.Kind != domainerr.DuplicateDetail {
		t.Fatalf("expected DuplicateDetail, got %v", err)
	}
}

func TestDeleteDetailRejectsMissing(t *testing.T) {
	r := New()
	start, end := interval()
	_ = r.Create(1, []core.ProstituteID{10}, start, end, RegisteredCustomer(5))
	err := r.DeleteDetail(99)
	var derr *domainerr.Error
	if !errors.As(err, &derr) || derr.Kind != domainerr.DetailNotFound {
		t.Fatalf("expected DetailNotFound, got %v", err)
	}
}

func TestReplayRestoresCustomerAndDetails(t *testing.T) {
	r := New()
	start, end := interval()
	_ = r.Create(1, []core.ProstituteID{10, 20}, start, end, UnregisteredCustomer("Taro", "090-0000-0000"))
	detail := Detail{ID: 1, Name: "nomination", Quantity: 1, Price: core.NewPrice(core.NewMoney(1000, core.JPY), core.OneTime)}
	_ = r.AddDetail(detail)

	replayed := Replay(r.Events())
	if !replayed.Customer().Unregistered || replayed.Customer().Name != "Taro" {
		t.Fatalf("Customer = %+v, want unregistered Taro", replayed.Customer())
	}
	if len(replayed.Details()) != 1 {
		t.Fatalf("Details = %v, want 1 entry", replayed.Details())
	}
}
