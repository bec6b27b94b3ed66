package schedule

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/kuraya-dely/dely/internal/domain/core"
	"github.com/kuraya-dely/dely/internal/domain/kernel"
	"github.com/kuraya-dely/dely/internal/eventstore"
)

// EntityKind is the stream-name prefix for this aggregate: "schedule-<id>".
const EntityKind = "schedule"

// Codec implements eventstore.Codec for Schedule.
type Codec struct{}

var _ eventstore.Codec = Codec{}

func (Codec) EntityKind() string { return EntityKind }

func (Codec) Encode(event kernel.Event) (string, []byte, []byte, error) {
	switch ev := event.(type) {
	case ScheduleCreated:
		body, err := json.Marshal(struct {
			ProstituteID core.ProstituteID `json:"prostituteId"`
		}{ev.ProstituteID})
		return ev.EventType(), body, nil, err
	case ScheduleDeleted:
		return ev.EventType(), []byte("{}"), nil, nil
	case ShiftAdded:
		body, err := json.Marshal(struct {
			ShiftID core.ShiftID `json:"shiftId"`
			Start   time.Time    `json:"start"`
			End     time.Time    `json:"end"`
			Status  ShiftStatus  `json:"status"`
		}{ev.ShiftID, ev.Start, ev.End, ev.Status})
		return ev.EventType(), body, nil, err
	case ShiftTimeChanged:
		body, err := json.Marshal(struct {
			ShiftID core.ShiftID `json:"shiftId"`
			Start   time.Time    `json:"start"`
			End     time.Time    `json:"end"`
		}{ev.ShiftID, ev.Start, ev.End})
		return ev.EventType(), body, nil, err
	case ShiftStatusChanged:
		body, err := json.Marshal(struct {
			ShiftID core.ShiftID `json:"shiftId"`
			Status  ShiftStatus  `json:"status"`
		}{ev.ShiftID, ev.Status})
		return ev.EventType(), body, nil, err
	case ShiftsDeleted:
		body, err := json.Marshal(struct {
			ShiftIDs []core.ShiftID `json:"shiftIds"`
		}{ev.ShiftIDs})
		return ev.EventType(), body, nil, err
	default:
		return "", nil, nil, fmt.Errorf("schedule: unknown event %T", event)
	}
}

func (Codec) Decode(eventType string, body []byte, _ []byte, id core.ID) (kernel.Event, error) {
	sid := core.ScheduleID(id)
	switch eventType {
	case "ScheduleCreated":
		var w struct {
			ProstituteID core.ProstituteID `json:"prostituteId"`
		}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, err
		}
		return ScheduleCreated{ID: sid, ProstituteID: w.ProstituteID}, nil
	case "ScheduleDeleted":
		return ScheduleDeleted{ID: sid}, nil
	case "ShiftAdded":
		var w struct {
			ShiftID core.ShiftID `json:"shiftId"`
			Start   time.Time    `json:"start"`
			End     time.Time    `json:"end"`
			Status  ShiftStatus  `json:"status"`
		}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, err
		}
		return ShiftAdded{ID: sid, ShiftID: w.ShiftID, Start: w.Start, End: w.End, Status: w.Status}, nil
	case "ShiftTimeChanged":
		var w struct {
			ShiftID core.ShiftID `json:"shiftId"`
			Start   time.Time    `json:"start"`
			End     time.Time    `json:"end"`
		}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, err
		}
		return ShiftTimeChanged{ID: sid, ShiftID: w.ShiftID, Start: w.Start, End: w.End}, nil
	case "ShiftStatusChanged":
		var w struct {
			ShiftID core.ShiftID `json:"shiftId"`
			Status  ShiftStatus  `json:"status"`
		}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, err
		}
		return ShiftStatusChanged{ID: sid, ShiftID: w.ShiftID, Status: w.Status}, nil
	case "ShiftsDeleted":
		var w struct {
			ShiftIDs []core.ShiftID `json:"shiftIds"`
		}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, err
		}
		return ShiftsDeleted{ID: sid, ShiftIDs: w.ShiftIDs}, nil
	default:
		return nil, fmt.Errorf("schedule: unknown event type %q", eventType)
	}
}
