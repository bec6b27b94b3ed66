package schedule

import (
	"time"

	"github.com/kuraya-dely/dely/internal/domain/core"
)

// ShiftStatus is a Shift's position in the review workflow.
type ShiftStatus string

const (
	Editing    ShiftStatus = "Editing"
	Reviewing  ShiftStatus = "Reviewing"
	Confirmed  ShiftStatus = "Confirmed"
	Canceled   ShiftStatus = "Canceled"
)

type ScheduleCreated struct {
	ID           core.ScheduleID
	ProstituteID core.ProstituteID
}

func (ScheduleCreated) EventType() string { return "ScheduleCreated" }

type ScheduleDeleted struct {
	ID core.ScheduleID
}

func (ScheduleDeleted) EventType() string { return "ScheduleDeleted" }

type ShiftAdded struct {
	ID      core.ScheduleID
	ShiftID core.ShiftID
	Start   time.Time
	End     time.Time
	Status  ShiftStatus
}

func (ShiftAdded) EventType() string { return "ShiftAdded" }

type ShiftTimeChanged struct {
	ID      core.ScheduleID
	ShiftID core.ShiftID
	Start   time.Time
	End     time.Time
}

func (ShiftTimeChanged) EventType() string { return "ShiftTimeChanged" }

type ShiftStatusChanged struct {
	ID      core.ScheduleID
	ShiftID core.ShiftID
	Status  ShiftStatus
}

func (ShiftStatusChanged) EventType() string { return "ShiftStatusChanged" }

type ShiftsDeleted struct {
	ID       core.ScheduleID
	ShiftIDs []core.ShiftID
}

func (ShiftsDeleted) EventType() string { return "ShiftsDeleted" }
