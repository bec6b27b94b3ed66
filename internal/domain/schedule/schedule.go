// Package schedule implements the Schedule aggregate: a prostitute's
// set of shifts, each carrying a non-overlapping time interval and a
// review-workflow status.
package schedule

import (
	"time"

	"github.com/kuraya-dely/dely/internal/domain/core"
	"github.com/kuraya-dely/dely/internal/domain/kernel"
	"github.com/kuraya-dely/dely/internal/domainerr"
)

// Shift is one interval of a Schedule.
type Shift struct {
	ID     core.ShiftID
	Start  time.Time
	End    time.Time
	Status ShiftStatus
}

func (s Shift) interval() core.Interval[time.Time] {
	return core.Interval[time.Time]{Start: s.Start, End: s.End}
}

// transitions is the authoritative allowed-transition table; all other
// from/to pairs fail InvalidStatusTransition.
var transitions = map[ShiftStatus]map[ShiftStatus]bool{
	Editing:   {Reviewing: true, Confirmed: true},
	Reviewing: {Editing: true, Confirmed: true, Canceled: true},
	Confirmed: {Editing: true, Canceled: true},
	Canceled:  {Editing: true},
}

func allowedTransition(from, to ShiftStatus) bool {
	return transitions[from][to]
}

// Schedule is the aggregate root.
type Schedule struct {
	kernel.Queue

	id           core.ScheduleID
	exists       bool
	deleted      bool
	prostituteID core.ProstituteID
	shifts       []Shift
}

// New returns a zero-value Schedule ready for replay or Create.
func New() *Schedule { return &Schedule{} }

func (s *Schedule) ID() core.ID                   { return core.ID(s.id) }
func (s *Schedule) TypedID() core.ScheduleID      { return s.id }
func (s *Schedule) ProstituteID() core.ProstituteID { return s.prostituteID }
func (s *Schedule) Deleted() bool                 { return s.deleted }
func (s *Schedule) Shifts() []Shift               { return append([]Shift(nil), s.shifts...) }

func (s *Schedule) checkID(id core.ScheduleID) error {
	if s.exists && id != s.id {
		return domainerr.New(domainerr.MismatchedId, "event id does not match aggregate id")
	}
	return nil
}

func (s *Schedule) shiftIndex(id core.ShiftID) int {
	for i, sh := range s.shifts {
		if sh.ID == id {
			return i
		}
	}
	return -1
}

// overlaps reports whether interval [start,end) intersects any shift
// other than excludeIdx (-1 to exclude none).
func (s *Schedule) overlaps(start, end time.Time, excludeIdx int) bool {
	candidate := core.Interval[time.Time]{Start: start, End: end}
	for i, sh := range s.shifts {
		if i == excludeIdx {
			continue
		}
		if candidate.Overlaps(sh.interval()) {
			return true
		}
	}
	return false
}

// Validate checks a candidate event against current state.
func (s *Schedule) Validate(event kernel.Event) error {
	switch ev := event.(type) {
	case ScheduleCreated:
		if s.exists {
			return domainerr.New(domainerr.MismatchedId, "aggregate already created")
		}
		return nil
	case ScheduleDeleted:
		return s.checkID(ev.ID)
	case ShiftAdded:
		if err := s.checkID(ev.ID); err != nil {
			return err
		}
		if !ev.Start.Before(ev.End) {
			return domainerr.New(domainerr.InvalidDuration, "shift start must precede end")
		}
		if s.shiftIndex(ev.ShiftID) >= 0 {
			return domainerr.New(domainerr.DuplicateShift, "shift id already present")
		}
		if s.overlaps(ev.Start, ev.End, -1) {
			return domainerr.New(domainerr.OverlappingShift, "shift interval overlaps an existing shift")
		}
		return nil
	case ShiftTimeChanged:
		if err := s.checkID(ev.ID); err != nil {
			return err
		}
		idx := s.shiftIndex(ev.ShiftID)
		if idx < 0 {
			return domainerr.New(domainerr.ShiftNotFound, "shift not found")
		}
		if !ev.Start.Before(ev.End) {
			return domainerr.New(domainerr.InvalidDuration, "shift start must precede end")
		}
		if s.overlaps(ev.Start, ev.End, idx) {
			return domainerr.New(domainerr.OverlappingShift, "shift interval overlaps an existing shift")
		}
		return nil
	case ShiftStatusChanged:
		if err := s.checkID(ev.ID); err != nil {
			return err
		}
		idx := s.shiftIndex(ev.ShiftID)
		if idx < 0 {
			return domainerr.New(domainerr.ShiftNotFound, "shift not found")
		}
		if !allowedTransition(s.shifts[idx].Status, ev.Status) {
			return domainerr.Newf(domainerr.InvalidStatusTransition, "%s -> %s not allowed", s.shifts[idx].Status, ev.Status)
		}
		return nil
	case ShiftsDeleted:
		if err := s.checkID(ev.ID); err != nil {
			return err
		}
		for _, id := range ev.ShiftIDs {
			if s.shiftIndex(id) < 0 {
				return domainerr.New(domainerr.ShiftNotFound, "shift not found")
			}
		}
		return nil
	default:
		return domainerr.Newf(domainerr.MismatchedId, "unknown event type %T", event)
	}
}

// Apply mutates state for event. Total; does not re-validate.
func (s *Schedule) Apply(event kernel.Event) {
	switch ev := event.(type) {
	case ScheduleCreated:
		s.id = ev.ID
		s.exists = true
		s.prostituteID = ev.ProstituteID
	case ScheduleDeleted:
		s.deleted = true
	case ShiftAdded:
		s.shifts = append(s.shifts, Shift{ID: ev.ShiftID, Start: ev.Start, End: ev.End, Status: ev.Status})
	case ShiftTimeChanged:
		idx := s.shiftIndex(ev.ShiftID)
		s.shifts[idx].Start = ev.Start
		s.shifts[idx].End = ev.End
	case ShiftStatusChanged:
		idx := s.shiftIndex(ev.ShiftID)
		s.shifts[idx].Status = ev.Status
	case ShiftsDeleted:
		remaining := s.shifts[:0]
		del := make(map[core.ShiftID]bool, len(ev.ShiftIDs))
		for _, id := range ev.ShiftIDs {
			del[id] = true
		}
		for _, sh := range s.shifts {
			if !del[sh.ID] {
				remaining = append(remaining, sh)
			}
		}
		s.shifts = remaining
	}
	s.Queue.Push(event)
}

func (s *Schedule) command(event kernel.Event) error {
	if err := s.Validate(event); err != nil {
		return err
	}
	s.Apply(event)
	return nil
}

// Create establishes a new Schedule for a prostitute.
func (s *Schedule) Create(id core.ScheduleID, prostituteID core.ProstituteID) error {
	return s.command(ScheduleCreated{ID: id, ProstituteID: prostituteID})
}

func (s *Schedule) Delete() error {
	return s.command(ScheduleDeleted{ID: s.id})
}

func (s *Schedule) AddShift(shiftID core.ShiftID, start, end time.Time, status ShiftStatus) error {
	return s.command(ShiftAdded{ID: s.id, ShiftID: shiftID, Start: start, End: end, Status: status})
}

func (s *Schedule) ChangeShiftTime(shiftID core.ShiftID, start, end time.Time) error {
	return s.command(ShiftTimeChanged{ID: s.id, ShiftID: shiftID, Start: start, End: end})
}

func (s *Schedule) ChangeShiftStatus(shiftID core.ShiftID, status ShiftStatus) error {
	return s.command(ShiftStatusChanged{ID: s.id, ShiftID: shiftID, Status: status})
}

func (s *Schedule) DeleteShifts(shiftIDs []core.ShiftID) error {
	return s.command(ShiftsDeleted{ID: s.id, ShiftIDs: shiftIDs})
}

// Replay feeds historical events through Apply then clears the queue.
func Replay(events []kernel.Event) *Schedule {
	s := New()
	for _, ev := range events {
		s.Apply(ev)
	}
	s.Clear()
	return s
}
