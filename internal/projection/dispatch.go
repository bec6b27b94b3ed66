package projection

import (
	"context"
	"fmt"

	"github.com/kuraya-dely/dely/internal/domain/core"
	"github.com/kuraya-dely/dely/internal/domain/extraservice"
	"github.com/kuraya-dely/dely/internal/domain/media"
	"github.com/kuraya-dely/dely/internal/domain/prostitute"
	"github.com/kuraya-dely/dely/internal/domain/schedule"
	"github.com/kuraya-dely/dely/internal/domain/kernel"
	"github.com/kuraya-dely/dely/internal/searchindex"
)

// dispatchFunc applies one decoded event to the search indexes. It
// returns the task id of the last index operation issued. The worker
// advances the checkpoint without waiting on it; the prostitute
// dispatches record it so a later read-modify-write step can drain it
// first.
type dispatchFunc func(ctx context.Context, idx *Indexes, event kernel.Event) (taskUID int64, err error)

// Indexes bundles the six named index handles the dispatch table
// writes to.
type Indexes struct {
	ExtraService indexHandle
	Media        indexHandle
	Prostitute   indexHandle
	Schedule     indexHandle
	Shift        indexHandle
	Version      indexHandle

	prostitutePending *pendingTask
}

// NewIndexes binds the six indexes from a searchindex.Client, following
// the fixed names spec.md §6 gives them.
func NewIndexes(c *searchindex.Client) *Indexes {
	idx := &Indexes{
		ExtraService: c.Index("extra_service"),
		Media:        c.Index("media"),
		Prostitute:   c.Index("prostitute"),
		Schedule:     c.Index("schedule"),
		Shift:        c.Index("shift"),
		Version:      c.Index(checkpointIndex),
	}
	idx.prostitutePending = newPendingTask(idx.Prostitute)
	return idx
}

// buildDispatchTable keys every entry on the same EntityKind constants
// the codecs register under, so the table can never drift from the
// stream-prefix the worker actually decodes (registry.Decode, via
// ParseStreamName, returns the codec's EntityKind, not a hand-typed
// package name).
func buildDispatchTable() map[string]dispatchFunc {
	return map[string]dispatchFunc{
		extraservice.EntityKind + ".ExtraServiceCreated": dispatchExtraServiceCreated,
		extraservice.EntityKind + ".NameChanged":         dispatchExtraServicePartial,
		extraservice.EntityKind + ".DescriptionChanged":  dispatchExtraServicePartial,
		extraservice.EntityKind + ".PriceChanged":        dispatchExtraServicePartial,
		extraservice.EntityKind + ".Deleted":             dispatchExtraServiceDeleted,

		media.EntityKind + ".MediaCreated": dispatchMediaCreated,
		media.EntityKind + ".Deleted":      dispatchMediaDeleted,

		prostitute.EntityKind + ".Joined":             dispatchProstituteJoined,
		prostitute.EntityKind + ".Rejoined":           dispatchProstituteLeavedFlag(false),
		prostitute.EntityKind + ".Leaved":             dispatchProstituteLeavedFlag(true),
		prostitute.EntityKind + ".NameChanged":        dispatchProstitutePartial,
		prostitute.EntityKind + ".CatchphraseChanged": dispatchProstitutePartial,
		prostitute.EntityKind + ".ProfileChanged":     dispatchProstitutePartial,
		prostitute.EntityKind + ".MessageChanged":     dispatchProstitutePartial,
		prostitute.EntityKind + ".FigureChanged":      dispatchProstitutePartial,
		prostitute.EntityKind + ".BloodTypeChanged":   dispatchProstitutePartial,
		prostitute.EntityKind + ".BirthdayChanged":    dispatchProstitutePartial,
		prostitute.EntityKind + ".VideoChanged":       dispatchProstitutePartial,
		prostitute.EntityKind + ".QuestionsChanged":   dispatchProstituteReadModifyWrite,
		prostitute.EntityKind + ".QuestionAdded":      dispatchProstituteReadModifyWrite,
		prostitute.EntityKind + ".QuestionDeleted":    dispatchProstituteReadModifyWrite,
		prostitute.EntityKind + ".QuestionSwapped":    dispatchProstituteReadModifyWrite,
		prostitute.EntityKind + ".ImagesChanged":      dispatchProstituteReadModifyWrite,
		prostitute.EntityKind + ".ImageAdded":         dispatchProstituteReadModifyWrite,
		prostitute.EntityKind + ".ImageDeleted":       dispatchProstituteReadModifyWrite,
		prostitute.EntityKind + ".ImageSwapped":       dispatchProstituteReadModifyWrite,
		prostitute.EntityKind + ".Deleted":            dispatchProstituteDeleted,

		schedule.EntityKind + ".ScheduleCreated":   dispatchScheduleCreated,
		schedule.EntityKind + ".ScheduleDeleted":   dispatchScheduleDeleted,
		schedule.EntityKind + ".ShiftAdded":        dispatchShiftAdded,
		schedule.EntityKind + ".ShiftTimeChanged":  dispatchShiftTimeChanged,
		schedule.EntityKind + ".ShiftStatusChanged": dispatchShiftStatusChanged,
		schedule.EntityKind + ".ShiftsDeleted":     dispatchShiftsDeleted,
	}
}

func dispatchExtraServiceCreated(ctx context.Context, idx *Indexes, event kernel.Event) (int64, error) {
	ev := event.(extraservice.Created)
	doc := extraServiceDoc{ID: ev.ID, Name: ev.Name, Description: ev.Description, Price: ev.Price}
	return idx.ExtraService.AddDocuments(ctx, []extraServiceDoc{doc}, "id")
}

func dispatchExtraServicePartial(ctx context.Context, idx *Indexes, event kernel.Event) (int64, error) {
	var id core.ExtraServiceID
	patch := map[string]any{}
	switch ev := event.(type) {
	case extraservice.NameChanged:
		id, patch["id"], patch["name"] = ev.ID, ev.ID, ev.Name
	case extraservice.DescriptionChanged:
		id, patch["id"], patch["description"] = ev.ID, ev.ID, ev.Description
	case extraservice.PriceChanged:
		id, patch["id"], patch["price"] = ev.ID, ev.ID, ev.Price
	default:
		return 0, fmt.Errorf("projection: unexpected extraservice event %T", event)
	}
	_ = id
	return idx.ExtraService.AddOrUpdate(ctx, []map[string]any{patch}, "id")
}

func dispatchExtraServiceDeleted(ctx context.Context, idx *Indexes, event kernel.Event) (int64, error) {
	ev := event.(extraservice.Deleted)
	return idx.ExtraService.DeleteDocument(ctx, ev.ID.String())
}

func dispatchMediaCreated(ctx context.Context, idx *Indexes, event kernel.Event) (int64, error) {
	ev := event.(media.Created)
	doc := mediaDoc{ID: ev.ID, Mime: ev.Mime.String()}
	return idx.Media.AddDocuments(ctx, []mediaDoc{doc}, "id")
}

func dispatchMediaDeleted(ctx context.Context, idx *Indexes, event kernel.Event) (int64, error) {
	ev := event.(media.Deleted)
	return idx.Media.DeleteDocument(ctx, ev.ID.String())
}

func dispatchProstituteJoined(ctx context.Context, idx *Indexes, event kernel.Event) (int64, error) {
	ev := event.(prostitute.Joined)
	doc := prostituteDoc{
		ID: ev.ID, Name: ev.Name, Catchphrase: ev.Catchphrase,
		Profile: ev.Profile, Message: ev.Message, Figure: ev.Figure,
		Questions: []prostitute.Question{}, Images: []core.MediaID{},
	}
	taskUID, err := idx.Prostitute.AddDocuments(ctx, []prostituteDoc{doc}, "id")
	if err == nil {
		idx.prostitutePending.set(taskUID)
	}
	return taskUID, err
}

// dispatchProstituteLeavedFlag returns a dispatchFunc that partially
// updates the `leaved` boolean, shared by Rejoined (leaved=false) and
// Leaved (leaved=true).
func dispatchProstituteLeavedFlag(leaved bool) dispatchFunc {
	return func(ctx context.Context, idx *Indexes, event kernel.Event) (int64, error) {
		id := prostituteEventID(event)
		patch := map[string]any{"id": id, "leaved": leaved}
		taskUID, err := idx.Prostitute.AddOrUpdate(ctx, []map[string]any{patch}, "id")
		if err == nil {
			idx.prostitutePending.set(taskUID)
		}
		return taskUID, err
	}
}

func dispatchProstitutePartial(ctx context.Context, idx *Indexes, event kernel.Event) (int64, error) {
	id := prostituteEventID(event)
	patch := map[string]any{"id": id}
	switch ev := event.(type) {
	case prostitute.NameChanged:
		patch["name"] = ev.Name
	case prostitute.CatchphraseChanged:
		patch["catchphrase"] = ev.Catchphrase
	case prostitute.ProfileChanged:
		patch["profile"] = ev.Profile
	case prostitute.MessageChanged:
		patch["message"] = ev.Message
	case prostitute.FigureChanged:
		patch["figure"] = ev.Figure
	case prostitute.BloodTypeChanged:
		patch["bloodType"] = ev.BloodType
	case prostitute.BirthdayChanged:
		patch["birthday"] = ev.Birthday
	case prostitute.VideoChanged:
		patch["video"] = ev.Video
	default:
		return 0, fmt.Errorf("projection: unexpected prostitute event %T", event)
	}
	taskUID, err := idx.Prostitute.AddOrUpdate(ctx, []map[string]any{patch}, "id")
	if err == nil {
		idx.prostitutePending.set(taskUID)
	}
	return taskUID, err
}

// dispatchProstituteReadModifyWrite handles the question/image ordering
// events, whose new state depends on the currently stored document: it
// drains any prior pending write on the prostitute index, fetches the
// document, replays the event's effect through the aggregate's Apply
// in isolation, then writes the result back.
func dispatchProstituteReadModifyWrite(ctx context.Context, idx *Indexes, event kernel.Event) (int64, error) {
	if err := idx.prostitutePending.drain(ctx); err != nil {
		return 0, fmt.Errorf("projection: draining prior prostitute task: %w", err)
	}
	id := prostituteEventID(event)

	var doc prostituteDoc
	if err := idx.Prostitute.GetDocument(ctx, id.String(), &doc); err != nil {
		return 0, fmt.Errorf("projection: fetching prostitute %s: %w", id, err)
	}

	applyProstituteCollectionEvent(&doc, event)

	taskUID, err := idx.Prostitute.AddOrUpdate(ctx, []prostituteDoc{doc}, "id")
	if err == nil {
		idx.prostitutePending.set(taskUID)
	}
	return taskUID, err
}

// applyProstituteCollectionEvent mutates doc's Questions/Images in
// place the same way prostitute.Prostitute.Apply does for these eight
// variants, so the index mirrors the aggregate's own reducer.
func applyProstituteCollectionEvent(doc *prostituteDoc, event kernel.Event) {
	switch ev := event.(type) {
	case prostitute.QuestionsChanged:
		doc.Questions = ev.Questions
	case prostitute.QuestionAdded:
		doc.Questions = append(doc.Questions, ev.Question)
	case prostitute.QuestionDeleted:
		doc.Questions = append(doc.Questions[:ev.Index], doc.Questions[ev.Index+1:]...)
	case prostitute.QuestionSwapped:
		doc.Questions[ev.I], doc.Questions[ev.J] = doc.Questions[ev.J], doc.Questions[ev.I]
	case prostitute.ImagesChanged:
		doc.Images = ev.Images
	case prostitute.ImageAdded:
		doc.Images = append(doc.Images, ev.ImageID)
	case prostitute.ImageDeleted:
		doc.Images = removeMediaID(doc.Images, ev.ImageID)
	case prostitute.ImageSwapped:
		ai, bi := indexOfMediaID(doc.Images, ev.A), indexOfMediaID(doc.Images, ev.B)
		if ai >= 0 && bi >= 0 {
			doc.Images[ai], doc.Images[bi] = doc.Images[bi], doc.Images[ai]
		}
	}
}

func removeMediaID(images []core.MediaID, id core.MediaID) []core.MediaID {
	i := indexOfMediaID(images, id)
	if i < 0 {
		return images
	}
	return append(images[:i], images[i+1:]...)
}

func indexOfMediaID(images []core.MediaID, id core.MediaID) int {
	for i, existing := range images {
		if existing == id {
			return i
		}
	}
	return -1
}

func dispatchProstituteDeleted(ctx context.Context, idx *Indexes, event kernel.Event) (int64, error) {
	ev := event.(prostitute.Deleted)
	return idx.Prostitute.DeleteDocument(ctx, ev.ID.String())
}

// prostituteEventID recovers the ProstituteID from the ID field of the
// prostitute event types listed below; any other type (Joined, Deleted)
// yields 0.
func prostituteEventID(event kernel.Event) core.ProstituteID {
	switch ev := event.(type) {
	case prostitute.Rejoined:
		return ev.ID
	case prostitute.Leaved:
		return ev.ID
	case prostitute.NameChanged:
		return ev.ID
	case prostitute.CatchphraseChanged:
		return ev.ID
	case prostitute.ProfileChanged:
		return ev.ID
	case prostitute.MessageChanged:
		return ev.ID
	case prostitute.FigureChanged:
		return ev.ID
	case prostitute.BloodTypeChanged:
		return ev.ID
	case prostitute.BirthdayChanged:
		return ev.ID
	case prostitute.VideoChanged:
		return ev.ID
	case prostitute.QuestionsChanged:
		return ev.ID
	case prostitute.QuestionAdded:
		return ev.ID
	case prostitute.QuestionDeleted:
		return ev.ID
	case prostitute.QuestionSwapped:
		return ev.ID
	case prostitute.ImagesChanged:
		return ev.ID
	case prostitute.ImageAdded:
		return ev.ID
	case prostitute.ImageDeleted:
		return ev.ID
	case prostitute.ImageSwapped:
		return ev.ID
	default:
		return 0
	}
}

func dispatchScheduleCreated(ctx context.Context, idx *Indexes, event kernel.Event) (int64, error) {
	ev := event.(schedule.ScheduleCreated)
	doc := scheduleDoc{ID: ev.ID, ProstituteID: ev.ProstituteID}
	return idx.Schedule.AddDocuments(ctx, []scheduleDoc{doc}, "id")
}

func dispatchScheduleDeleted(ctx context.Context, idx *Indexes, event kernel.Event) (int64, error) {
	ev := event.(schedule.ScheduleDeleted)
	return idx.Schedule.DeleteDocument(ctx, ev.ID.String())
}

func dispatchShiftAdded(ctx context.Context, idx *Indexes, event kernel.Event) (int64, error) {
	ev := event.(schedule.ShiftAdded)
	doc := shiftDoc{ID: ev.ShiftID, ScheduleID: ev.ID, Start: ev.Start, End: ev.End, Status: ev.Status}
	return idx.Shift.AddDocuments(ctx, []shiftDoc{doc}, "id")
}

func dispatchShiftTimeChanged(ctx context.Context, idx *Indexes, event kernel.Event) (int64, error) {
	ev := event.(schedule.ShiftTimeChanged)
	patch := map[string]any{"id": ev.ShiftID, "start": ev.Start, "end": ev.End}
	return idx.Shift.AddOrUpdate(ctx, []map[string]any{patch}, "id")
}

func dispatchShiftStatusChanged(ctx context.Context, idx *Indexes, event kernel.Event) (int64, error) {
	ev := event.(schedule.ShiftStatusChanged)
	patch := map[string]any{"id": ev.ShiftID, "status": ev.Status}
	return idx.Shift.AddOrUpdate(ctx, []map[string]any{patch}, "id")
}

func dispatchShiftsDeleted(ctx context.Context, idx *Indexes, event kernel.Event) (int64, error) {
	ev := event.(schedule.ShiftsDeleted)
	ids := make([]string, len(ev.ShiftIDs))
	for i, shiftID := range ev.ShiftIDs {
		ids[i] = shiftID.String()
	}
	return idx.Shift.DeleteDocuments(ctx, ids)
}
