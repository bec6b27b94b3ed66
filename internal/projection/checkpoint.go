package projection

import (
	"context"

	"github.com/kuraya-dely/dely/internal/eventstore"
)

// checkpointIndex and checkpointDocID are fixed: spec.md calls for a
// single document keyed "1" in the eventstore_version index.
const (
	checkpointIndex = "eventstore_version"
	checkpointDocID = "1"
)

type checkpointDoc struct {
	ID       string             `json:"id"`
	EventID  string             `json:"eventId"`
	Position eventstore.Position `json:"position"`
}

// loadCheckpoint reads the stored resume position. found is false when
// GetDocument fails for any reason, a missing document on first run
// included, and err is then nil; without a checkpoint the worker starts
// from the log's beginning.
func loadCheckpoint(ctx context.Context, idx indexHandle) (pos eventstore.Position, found bool, err error) {
	var doc checkpointDoc
	if gerr := idx.GetDocument(ctx, checkpointDocID, &doc); gerr != nil {
		return eventstore.Position{}, false, nil
	}
	return doc.Position, true, nil
}

// saveCheckpoint upserts the checkpoint document after an index
// operation for eventID/position has been accepted.
func saveCheckpoint(ctx context.Context, idx indexHandle, eventID string, pos eventstore.Position) error {
	doc := checkpointDoc{ID: checkpointDocID, EventID: eventID, Position: pos}
	taskUID, err := idx.AddOrUpdate(ctx, []checkpointDoc{doc}, "id")
	if err != nil {
		return err
	}
	_, err = idx.WaitForTask(ctx, taskUID)
	return err
}
