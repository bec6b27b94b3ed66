package service

import (
	"errors"
	"testing"
	"time"

	"github.com/kuraya-dely/dely/internal/domain/core"
	"github.com/kuraya-dely/dely/internal/domainerr"
)

func price(yen int64) core.Price {
	return core.NewPrice(core.JPYAmount(yen), core.OneTime)
}

func newService(t *testing.T, tbp []TimeBasedPrice, discounts []Discount) *Service {
	t.Helper()
	s := New()
	ext := price(3000)
	if err := s.Create(1, "Standard Course", "90 minutes", price(20000), &ext, tbp, discounts); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return s
}

func TestCreateRejectsBlankName(t *testing.T) {
	s := New()
	err := s.Create(1, "  ", "", price(1000), nil, nil, nil)
	var derr *domainerr.Error
	if !errors.As(err, &derr) || derr.Kind != domainerr.NameIsBlank {
		t.Fatalf("expected NameIsBlank, got %v", err)
	}
}

func TestCreateRejectsNegativeDefaultPrice(t *testing.T) {
	s := New()
	err := s.Create(1, "Course", "", price(-1), nil, nil, nil)
	var derr *domainerr.Error
	if !errors.As(err, &derr) || derr.Kind != domainerr.PriceIsNegative {
		t.Fatalf("expected PriceIsNegative, got %v", err)
	}
}

func TestQuoteFallsBackToDefaultPrice(t *testing.T) {
	s := newService(t, nil, nil)
	at := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	got := s.Quote(at, 1)
	if got.Amount != 20000 {
		t.Errorf("Quote = %d, want 20000", got.Amount)
	}
}

func TestQuoteUsesMatchingTimeBasedBracket(t *testing.T) {
	night := core.Interval[core.TimeOfDay]{
		Start: core.TimeOfDay{Hour: 22},
		End:   core.TimeOfDay{Hour: 23, Minute: 59, Second: 59},
	}
	s := newService(t, []TimeBasedPrice{{Period: night, Price: price(25000)}}, nil)
	at := time.Date(2026, time.March, 1, 22, 30, 0, 0, time.UTC)
	got := s.Quote(at, 1)
	if got.Amount != 25000 {
		t.Errorf("Quote = %d, want 25000", got.Amount)
	}
}

func TestQuoteTieBreaksOnSmallestStart(t *testing.T) {
	wide := core.Interval[core.TimeOfDay]{Start: core.TimeOfDay{Hour: 9}, End: core.TimeOfDay{Hour: 23}}
	narrow := core.Interval[core.TimeOfDay]{Start: core.TimeOfDay{Hour: 12}, End: core.TimeOfDay{Hour: 18}}
	s := newService(t, []TimeBasedPrice{
		{Period: narrow, Price: price(30000)},
		{Period: wide, Price: price(20000)},
	}, nil)
	at := time.Date(2026, time.March, 1, 13, 0, 0, 0, time.UTC)
	got := s.Quote(at, 1)
	if got.Amount != 20000 {
		t.Errorf("Quote = %d, want 20000 (smallest-start bracket)", got.Amount)
	}
}

func TestQuoteAppliesExtensionForAdditionalUnits(t *testing.T) {
	s := newService(t, nil, nil)
	at := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	got := s.Quote(at, 3)
	if got.Amount != 20000+2*3000 {
		t.Errorf("Quote = %d, want %d", got.Amount, 20000+2*3000)
	}
}

func TestQuoteAppliesPercentageThenAmountDiscountClamped(t *testing.T) {
	period := core.Interval[time.Time]{
		Start: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
	}
	discounts := []Discount{
		{Period: period, Kind: Percentage, PercentageValue: 50},
		{Period: period, Kind: Amount, AmountValue: core.JPYAmount(100000)},
	}
	s := newService(t, nil, discounts)
	at := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	got := s.Quote(at, 1)
	if got.Amount != 0 {
		t.Errorf("Quote = %d, want 0 (discount clamped at base)", got.Amount)
	}
}

func TestQuoteIgnoresDiscountOutsidePeriod(t *testing.T) {
	period := core.Interval[time.Time]{
		Start: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
	}
	discounts := []Discount{{Period: period, Kind: Percentage, PercentageValue: 50}}
	s := newService(t, nil, discounts)
	at := time.Date(2026, time.April, 1, 10, 0, 0, 0, time.UTC)
	got := s.Quote(at, 1)
	if got.Amount != 20000 {
		t.Errorf("Quote = %d, want 20000 (discount out of period)", got.Amount)
	}
}
