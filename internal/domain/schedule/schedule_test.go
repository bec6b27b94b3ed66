package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/kuraya-dely/dely/internal/domain/core"
	"github.com/kuraya-dely/dely/internal/domainerr"
)

func t1(hour, minute int) time.Time {
	return time.Date(2026, time.January, 1, hour, minute, 0, 0, time.UTC)
}

func newSchedule(t *testing.T) *Schedule {
	t.Helper()
	s := New()
	if err := s.Create(1, 100); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return s
}

func TestShiftOverlapRejected(t *testing.T) {
	s := newSchedule(t)
	if err := s.AddShift(1, t1(10, 0), t1(12, 0), Editing); err != nil {
		t.Fatalf("AddShift: %v", err)
	}
	err := s.AddShift(2, t1(11, 0), t1(13, 0), Editing)
	var derr *domainerr.Error
	if !errors.As(err, &derr) || derr.Kind != domainerr.OverlappingShift {
		t.Fatalf("expected OverlappingShift, got %v", err)
	}
}

func TestAdjacentShiftAccepted(t *testing.T) {
	s := newSchedule(t)
	if err := s.AddShift(1, t1(10, 0), t1(12, 0), Editing); err != nil {
		t.Fatalf("AddShift: %v", err)
	}
	if err := s.AddShift(2, t1(12, 0), t1(13, 0), Editing); err != nil {
		t.Fatalf("adjacent shift should not overlap: %v", err)
	}
}

func TestShiftStatusConfirmedToReviewingRejected(t *testing.T) {
	s := newSchedule(t)
	_ = s.AddShift(1, t1(10, 0), t1(12, 0), Editing)
	if err := s.ChangeShiftStatus(1, Confirmed); err != nil {
		t.Fatalf("Editing -> Confirmed: %v", err)
	}
	err := s.ChangeShiftStatus(1, Reviewing)
	var derr *domainerr.Error
	if !errors.As(err, &derr) || derr.Kind != domainerr.InvalidStatusTransition {
		t.Fatalf("expected InvalidStatusTransition, got %v", err)
	}
}

func TestShiftStatusConfirmedToCanceledAccepted(t *testing.T) {
	s := newSchedule(t)
	_ = s.AddShift(1, t1(10, 0), t1(12, 0), Editing)
	_ = s.ChangeShiftStatus(1, Confirmed)
	if err := s.ChangeShiftStatus(1, Canceled); err != nil {
		t.Fatalf("Confirmed -> Canceled: %v", err)
	}
}

func TestDuplicateShiftRejected(t *testing.T) {
	s := newSchedule(t)
	_ = s.AddShift(1, t1(10, 0), t1(12, 0), Editing)
	err := s.AddShift(1, t1(14, 0), t1(15, 0), Editing)
	var derr *domainerr.Error
	if !errors.As(err, &derr) || derr.Kind != domainerr.DuplicateShift {
		t.Fatalf("expected DuplicateShift, got %v", err)
	}
}

func TestShiftTimeChangedExcludesSelfFromOverlap(t *testing.T) {
	s := newSchedule(t)
	_ = s.AddShift(1, t1(10, 0), t1(12, 0), Editing)
	if err := s.ChangeShiftTime(1, t1(10, 30), t1(12, 30)); err != nil {
		t.Fatalf("ChangeShiftTime should not overlap with itself: %v", err)
	}
}

func TestReplayPreservesShifts(t *testing.T) {
	s := newSchedule(t)
	_ = s.AddShift(1, t1(10, 0), t1(12, 0), Editing)
	_ = s.ChangeShiftStatus(1, Reviewing)
	replayed := Replay(s.Events())
	shifts := replayed.Shifts()
	if len(shifts) != 1 || shifts[0].Status != Reviewing {
		t.Fatalf("Shifts = %v, want one Reviewing shift", shifts)
	}
}

func TestDeleteShiftsRemovesThem(t *testing.T) {
	s := newSchedule(t)
	_ = s.AddShift(1, t1(10, 0), t1(12, 0), Editing)
	_ = s.AddShift(2, t1(13, 0), t1(14, 0), Editing)
	if err := s.DeleteShifts([]core.ShiftID{1}); err != nil {
		t.Fatalf("DeleteShifts: %v", err)
	}
	shifts := s.Shifts()
	if len(shifts) != 1 || shifts[0].ID != 2 {
		t.Fatalf("Shifts = %v, want only shift 2", shifts)
	}
}
