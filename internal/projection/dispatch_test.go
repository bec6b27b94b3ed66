package projection

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/kuraya-dely/dely/internal/domain/core"
	"github.com/kuraya-dely/dely/internal/domain/extraservice"
	"github.com/kuraya-dely/dely/internal/domain/media"
	"github.com/kuraya-dely/dely/internal/domain/prostitute"
	"github.com/kuraya-dely/dely/internal/domain/schedule"
)

// fakeIndex is an in-memory stand-in for searchindex.Index, keyed by
// each document's "id" field after a JSON round-trip (mirroring how
// Meilisearch itself treats documents: opaque JSON keyed by primary
// key).
type fakeIndex struct {
	docs     map[string]map[string]any
	nextTask int64
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{docs: map[string]map[string]any{}}
}

func (f *fakeIndex) taskID() int64 {
	f.nextTask++
	return f.nextTask
}

func toDocs(documents any) ([]map[string]any, error) {
	raw, err := json.Marshal(documents)
	if err != nil {
		return nil, err
	}
	var docs []map[string]any
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func docKey(doc map[string]any) (string, error) {
	id, ok := doc["id"]
	if !ok {
		return "", fmt.Errorf("document missing id field")
	}
	return fmt.Sprintf("%v", id), nil
}

func (f *fakeIndex) AddDocuments(ctx context.Context, documents any, primaryKey string) (int64, error) {
	docs, err := toDocs(documents)
	if err != nil {
		return 0, err
	}
	for _, doc := range docs {
		key, err := docKey(doc)
		if err != nil {
			return 0, err
		}
		f.docs[key] = doc
	}
	return f.taskID(), nil
}

func (f *fakeIndex) AddOrUpdate(ctx context.Context, documents any, primaryKey string) (int64, error) {
	docs, err := toDocs(documents)
	if err != nil {
		return 0, err
	}
	for _, patch := range docs {
		key, err := docKey(patch)
		if err != nil {
			return 0, err
		}
		existing, ok := f.docs[key]
		if !ok {
			existing = map[string]any{}
		}
		for k, v := range patch {
			existing[k] = v
		}
		f.docs[key] = existing
	}
	return f.taskID(), nil
}

func (f *fakeIndex) GetDocument(ctx context.Context, id string, dst any) error {
	doc, ok := f.docs[id]
	if !ok {
		return fmt.Errorf("fakeIndex: no document %s", id)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

func (f *fakeIndex) DeleteDocument(ctx context.Context, id string) (int64, error) {
	delete(f.docs, id)
	return f.taskID(), nil
}

func (f *fakeIndex) DeleteDocuments(ctx context.Context, ids []string) (int64, error) {
	for _, id := range ids {
		delete(f.docs, id)
	}
	return f.taskID(), nil
}

func (f *fakeIndex) WaitForTask(ctx context.Context, taskUID int64) (bool, error) {
	return true, nil
}

func newTestIndexes() (*Indexes, *fakeIndex) {
	prostituteIdx := newFakeIndex()
	idx := &Indexes{
		ExtraService: newFakeIndex(),
		Media:        newFakeIndex(),
		Prostitute:   prostituteIdx,
		Schedule:     newFakeIndex(),
		Shift:        newFakeIndex(),
		Version:      newFakeIndex(),
	}
	idx.prostitutePending = newPendingTask(prostituteIdx)
	return idx, prostituteIdx
}

func TestDispatchExtraServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	table := buildDispatchTable()
	idx, _ := newTestIndexes()

	price := core.NewPrice(core.JPYAmount(5000), core.OneTime)
	created := extraservice.Created{ID: 1, Name: "course", Description: "desc", Price: price}
	if _, err := table[extraservice.EntityKind+"."+created.EventType()](ctx, idx, created); err != nil {
		t.Fatalf("dispatch Created: %v", err)
	}

	renamed := extraservice.NameChanged{ID: 1, Name: "renamed"}
	if _, err := table[extraservice.EntityKind+"."+renamed.EventType()](ctx, idx, renamed); err != nil {
		t.Fatalf("dispatch NameChanged: %v", err)
	}

	var doc extraServiceDoc
	if err := idx.ExtraService.GetDocument(ctx, "1", &doc); err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if doc.Name != "renamed" {
		t.Errorf("Name = %q, want renamed", doc.Name)
	}

	deleted := extraservice.Deleted{ID: 1}
	if _, err := table[extraservice.EntityKind+"."+deleted.EventType()](ctx, idx, deleted); err != nil {
		t.Fatalf("dispatch Deleted: %v", err)
	}
	if err := idx.ExtraService.GetDocument(ctx, "1", &doc); err == nil {
		t.Error("expected document to be gone after delete")
	}
}

func TestDispatchMediaCreatedAndDeleted(t *testing.T) {
	ctx := context.Background()
	table := buildDispatchTable()
	idx, _ := newTestIndexes()

	mime, err := core.ParseMime("image/webp")
	if err != nil {
		t.Fatalf("ParseMime: %v", err)
	}
	created := media.Created{ID: 9, Mime: mime}
	if _, err := table[media.EntityKind+"."+created.EventType()](ctx, idx, created); err != nil {
		t.Fatalf("dispatch Created: %v", err)
	}

	var doc mediaDoc
	if err := idx.Media.GetDocument(ctx, "9", &doc); err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if doc.Mime != "image/webp" {
		t.Errorf("Mime = %q, want image/webp", doc.Mime)
	}

	deleted := media.Deleted{ID: 9}
	if _, err := table[media.EntityKind+"."+deleted.EventType()](ctx, idx, deleted); err != nil {
		t.Fatalf("dispatch Deleted: %v", err)
	}
	if err := idx.Media.GetDocument(ctx, "9", &doc); err == nil {
		t.Error("expected document to be gone after delete")
	}
}

func TestDispatchProstituteQuestionReadModifyWrite(t *testing.T) {
	ctx := context.Background()
	table := buildDispatchTable()
	idx, _ := newTestIndexes()

	joined := prostitute.Joined{ID: 3, Name: "A", Figure: core.Figure{}}
	if _, err := table[prostitute.EntityKind+"."+joined.EventType()](ctx, idx, joined); err != nil {
		t.Fatalf("dispatch Joined: %v", err)
	}

	added := prostitute.QuestionAdded{ID: 3, Question: prostitute.Question{Question: "q", Answer: "a"}}
	if _, err := table[prostitute.EntityKind+"."+added.EventType()](ctx, idx, added); err != nil {
		t.Fatalf("dispatch QuestionAdded: %v", err)
	}

	var doc prostituteDoc
	if err := idx.Prostitute.GetDocument(ctx, "3", &doc); err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if len(doc.Questions) != 1 || doc.Questions[0].Answer != "a" {
		t.Fatalf("Questions = %+v, want one question with answer a", doc.Questions)
	}

	deleted := prostitute.QuestionDeleted{ID: 3, Index: 0}
	if _, err := table[prostitute.EntityKind+"."+deleted.EventType()](ctx, idx, deleted); err != nil {
		t.Fatalf("dispatch QuestionDeleted: %v", err)
	}
	if err := idx.Prostitute.GetDocument(ctx, "3", &doc); err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if len(doc.Questions) != 0 {
		t.Errorf("Questions = %+v, want empty after delete", doc.Questions)
	}
}

func TestDispatchProstituteImageSwapIsPositional(t *testing.T) {
	ctx := context.Background()
	table := buildDispatchTable()
	idx, _ := newTestIndexes()

	joined := prostitute.Joined{ID: 4, Name: "B", Figure: core.Figure{}}
	if _, err := table[prostitute.EntityKind+"."+joined.EventType()](ctx, idx, joined); err != nil {
		t.Fatalf("dispatch Joined: %v", err)
	}

	changed := prostitute.ImagesChanged{ID: 4, Images: []core.MediaID{10, 20, 30}}
	if _, err := table[prostitute.EntityKind+"."+changed.EventType()](ctx, idx, changed); err != nil {
		t.Fatalf("dispatch ImagesChanged: %v", err)
	}

	swap := prostitute.ImageSwapped{ID: 4, A: 10, B: 30}
	if _, err := table[prostitute.EntityKind+"."+swap.EventType()](ctx, idx, swap); err != nil {
		t.Fatalf("dispatch ImageSwapped: %v", err)
	}

	var doc prostituteDoc
	if err := idx.Prostitute.GetDocument(ctx, "4", &doc); err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	want := []core.MediaID{30, 20, 10}
	if len(doc.Images) != len(want) {
		t.Fatalf("Images = %v, want %v", doc.Images, want)
	}
	for i, id := range want {
		if doc.Images[i] != id {
			t.Errorf("Images[%d] = %v, want %v", i, doc.Images[i], id)
		}
	}
}

func TestDispatchScheduleAndShiftLifecycle(t *testing.T) {
	ctx := context.Background()
	table := buildDispatchTable()
	idx, _ := newTestIndexes()

	created := schedule.ScheduleCreated{ID: 5, ProstituteID: 3}
	if _, err := table[schedule.EntityKind+"."+created.EventType()](ctx, idx, created); err != nil {
		t.Fatalf("dispatch ScheduleCreated: %v", err)
	}

	added := schedule.ShiftAdded{ID: 5, ShiftID: 100}
	if _, err := table[schedule.EntityKind+"."+added.EventType()](ctx, idx, added); err != nil {
		t.Fatalf("dispatch ShiftAdded: %v", err)
	}

	var doc scheduleDoc
	if err := idx.Schedule.GetDocument(ctx, "5", &doc); err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if doc.ProstituteID != 3 {
		t.Errorf("ProstituteID = %v, want 3", doc.ProstituteID)
	}

	statusChanged := schedule.ShiftStatusChanged{ID: 5, ShiftID: 100, Status: schedule.Confirmed}
	if _, err := table[schedule.EntityKind+"."+statusChanged.EventType()](ctx, idx, statusChanged); err != nil {
		t.Fatalf("dispatch ShiftStatusChanged: %v", err)
	}

	var shiftDoc shiftDoc
	if err := idx.Shift.GetDocument(ctx, "100", &shiftDoc); err != nil {
		t.Fatalf("GetDocument shift: %v", err)
	}
	if shiftDoc.Status != schedule.Confirmed {
		t.Errorf("Status = %v, want %v", shiftDoc.Status, schedule.Confirmed)
	}
}
