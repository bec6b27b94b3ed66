// Package projection maintains the denormalized Meilisearch view of
// the write-side event log: a single-threaded cooperative loop that
// resumes an all-streams subscription from a stored checkpoint,
// decodes each record, dispatches it to the matching index operation,
// and only then advances the checkpoint.
package projection

import (
	"context"
	"fmt"

	"github.com/kuraya-dely/dely/internal/eventstore"
	"github.com/kuraya-dely/dely/internal/kurrentdb"
	"github.com/kuraya-dely/dely/internal/logging"
	"github.com/kuraya-dely/dely/internal/metrics"
)

// Worker drives the projection loop described in this package's doc
// comment. It owns no business logic of its own: every effect is
// issued through the dispatch table built at construction.
type Worker struct {
	client   *kurrentdb.Client
	registry *eventstore.Registry
	indexes  *Indexes
	table    map[string]dispatchFunc
	log      *logging.Logger
}

// NewWorker wires a Worker from its collaborators.
func NewWorker(client *kurrentdb.Client, registry *eventstore.Registry, indexes *Indexes, log *logging.Logger) *Worker {
	return &Worker{client: client, registry: registry, indexes: indexes, table: buildDispatchTable(), log: log}
}

// Run executes the cooperative loop until ctx is canceled or the
// subscription terminates with an unrecoverable error.
func (w *Worker) Run(ctx context.Context) error {
	pos, resumed, err := loadCheckpoint(ctx, w.indexes.Version)
	if err != nil {
		return fmt.Errorf("projection: loading checkpoint: %w", err)
	}

	sub, err := subscribeFrom(ctx, w.client.DB(), pos, resumed)
	if err != nil {
		return fmt.Errorf("projection: opening all-streams subscription: %w", err)
	}
	defer sub.Close()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		rec, err := recv(sub)
		if err != nil {
			return fmt.Errorf("projection: receiving record: %w", err)
		}
		w.processOne(ctx, rec)
	}
}

// processOne decodes and dispatches a single record. Decode failures
// are treated as system/non-domain records: the checkpoint still
// advances past them. Dispatch failures are fatal for this record only:
// the checkpoint does NOT advance, so the record is retried on restart
// (spec's chosen resolution of the source's checkpoint-on-error bug).
func (w *Worker) processOne(ctx context.Context, rec record) {
	entityKind, id, event, err := w.registry.Decode(rec.Envelope)
	if err != nil {
		w.log.WithField("stream", rec.Envelope.Stream).WithField("error", err).
			Warn("projection: skipping undecodable record, advancing checkpoint")
		metrics.RecordEventProcessed("unknown", "unknown", "skipped")
		w.advanceCheckpoint(ctx, rec)
		return
	}

	key := entityKind + "." + event.EventType()
	dispatch, ok := w.table[key]
	if !ok {
		w.log.WithField("event", key).Warn("projection: no dispatch entry, advancing checkpoint")
		metrics.RecordEventProcessed(entityKind, event.EventType(), "skipped")
		w.advanceCheckpoint(ctx, rec)
		return
	}

	if _, err := dispatch(ctx, w.indexes, event); err != nil {
		w.log.WithField("event", key).WithField("id", id).WithField("error", err).
			Error("projection: index operation failed, checkpoint not advanced")
		metrics.RecordIndexError(entityKind, event.EventType())
		metrics.RecordEventProcessed(entityKind, event.EventType(), "failed")
		return
	}
	metrics.RecordEventProcessed(entityKind, event.EventType(), "applied")
	w.advanceCheckpoint(ctx, rec)
}

func (w *Worker) advanceCheckpoint(ctx context.Context, rec record) {
	eventID := rec.Envelope.ID.String()
	if err := saveCheckpoint(ctx, w.indexes.Version, eventID, rec.Envelope.Position); err != nil {
		w.log.WithField("event_id", eventID).WithField("error", err).Error("projection: failed to save checkpoint")
		return
	}
	metrics.RecordCheckpointPosition(rec.Envelope.Position.Commit)
}
