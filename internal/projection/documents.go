package projection

import (
	"time"

	"github.com/kuraya-dely/dely/internal/domain/core"
	"github.com/kuraya-dely/dely/internal/domain/prostitute"
	"github.com/kuraya-dely/dely/internal/domain/schedule"
)

// extraServiceDoc is the extra_service index's projected document.
type extraServiceDoc struct {
	ID          core.ExtraServiceID `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Price       core.Price          `json:"price"`
}

// mediaDoc is the media index's projected document. Media bytes never
// land in the index: only the mime type does, since Meilisearch holds
// searchable metadata, not blobs.
type mediaDoc struct {
	ID   core.MediaID `json:"id"`
	Mime string       `json:"mime"`
}

// prostituteDoc mirrors the aggregate minus the event queue, plus the
// derived `leaved` flag spec.md's projected-document note calls for.
type prostituteDoc struct {
	ID          core.ProstituteID    `json:"id"`
	Name        string               `json:"name"`
	Catchphrase string               `json:"catchphrase"`
	Profile     string               `json:"profile"`
	Message     string               `json:"message"`
	Figure      core.Figure          `json:"figure"`
	BloodType   *prostitute.BloodType `json:"bloodType,omitempty"`
	Birthday    *core.Birthday       `json:"birthday,omitempty"`
	Questions   []prostitute.Question `json:"questions"`
	Images      []core.MediaID       `json:"images"`
	Video       *core.MediaID        `json:"video,omitempty"`
	Leaved      bool                 `json:"leaved"`
}

// scheduleDoc is the schedule index's projected document: identity
// only, shifts live in the separate shift index per spec.md's
// query-pattern split.
type scheduleDoc struct {
	ID           core.ScheduleID    `json:"id"`
	ProstituteID core.ProstituteID  `json:"prostituteId"`
}

// shiftDoc is one row of the shift index.
type shiftDoc struct {
	ID         core.ShiftID          `json:"id"`
	ScheduleID core.ScheduleID       `json:"scheduleId"`
	Start      time.Time             `json:"start"`
	End        time.Time             `json:"end"`
	Status     schedule.ShiftStatus  `json:"status"`
}
