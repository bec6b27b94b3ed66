package kurrentdb

import (
	"context"
	"errors"
	"io"

	"github.com/EventStore/EventStore-Client-Go/v4/esdb"
	"github.com/google/uuid"
	"github.com/kuraya-dely/dely/internal/dataerr"
	"github.com/kuraya-dely/dely/internal/domain/core"
	"github.com/kuraya-dely/dely/internal/domain/kernel"
	"github.com/kuraya-dely/dely/internal/eventstore"
)

// Repository is a generic event-sourced store for a single aggregate
// type, backed by one KurrentDB stream per aggregate instance
// ("<entity>-<id>"). A is any aggregate root reachable through the
// shared Registry of per-aggregate codecs.
type Repository[A kernel.AggregateRoot] struct {
	client   *Client
	registry *eventstore.Registry
	newFn    func() A
}

// NewRepository builds a Repository for aggregate type A. newFn
// constructs a zero-value aggregate ready for replay (e.g.
// prostitute.New).
func NewRepository[A kernel.AggregateRoot](client *Client, registry *eventstore.Registry, newFn func() A) *Repository[A] {
	return &Repository[A]{client: client, registry: registry, newFn: newFn}
}

// FindByID reads an aggregate's stream from the start and replays every
// event through Apply. found is false when the stream does not exist,
// has been soft-deleted, or (degenerate) holds no events.
func (r *Repository[A]) FindByID(ctx context.Context, entityKind string, id core.ID) (agg A, found bool, err error) {
	agg = r.newFn()
	stream := eventstore.StreamName(entityKind, id)

	reader, rerr := r.client.DB().ReadStream(ctx, stream, esdb.ReadStreamOptions{
		From:      esdb.Start{},
		Direction: esdb.Forwards,
	}, ^uint64(0))
	if rerr != nil {
		if kind, ok := classifyErrorCode(rerr); ok && (kind == esdb.ErrorCodeResourceNotFound) {
			var zero A
			return zero, false, nil
		}
		var zero A
		return zero, false, mapError(rerr, "read stream "+stream)
	}
	defer reader.Close()

	n := 0
	for {
		resolved, recvErr := reader.Recv()
		if recvErr != nil {
			if recvErr == io.EOF {
				break
			}
			if kind, ok := classifyErrorCode(recvErr); ok && kind == esdb.ErrorCodeResourceNotFound {
				break
			}
			var zero A
			return zero, false, mapError(recvErr, "recv from stream "+stream)
		}
		if resolved.Event == nil {
			continue
		}
		env := eventstore.Envelope{
			Stream:    stream,
			EventType: resolved.Event.EventType,
			Data:      resolved.Event.Data,
			Metadata:  resolved.Event.UserMetadata,
			ID:        resolved.Event.EventID,
			Revision:  resolved.Event.EventNumber,
		}
		_, _, event, derr := r.registry.Decode(env)
		if derr != nil {
			var zero A
			return zero, false, mapError(derr, "decode event in stream "+stream)
		}
		agg.Apply(event)
		n++
	}
	agg.Clear()
	if n == 0 {
		var zero A
		return zero, false, nil
	}
	return agg, true, nil
}

// Save appends every event currently queued on agg to its stream in one
// atomic write, then clears the queue. ok is false when the queue was
// empty (nothing to save). The expected-revision guard is NoStream for
// a freshly created aggregate and StreamExists otherwise, so a
// concurrent writer racing to create or mutate the same aggregate loses
// with dataerr.WriteError rather than silently overwriting history.
func (r *Repository[A]) Save(ctx context.Context, entityKind string, id core.ID, agg A) (ok bool, err error) {
	queued := agg.Events()
	if len(queued) == 0 {
		return false, nil
	}
	stream := eventstore.StreamName(entityKind, id)

	creating := eventstore.IsCreationEventType(queued[0].EventType())
	eventsData := make([]esdb.EventData, 0, len(queued))
	for _, event := range queued {
		env, eerr := r.registry.Encode(entityKind, id, event)
		if eerr != nil {
			return false, mapError(eerr, "encode event for stream "+stream)
		}
		eventsData = append(eventsData, esdb.EventData{
			EventID:     uuid.New(),
			EventType:   env.EventType,
			ContentType: contentType(entityKind),
			Data:        env.Data,
			Metadata:    env.Metadata,
		})
	}

	opts := esdb.AppendToStreamOptions{ExpectedRevision: esdb.StreamExists{}}
	if creating {
		opts.ExpectedRevision = esdb.NoStream{}
	}

	if _, aerr := r.client.DB().AppendToStream(ctx, stream, opts, eventsData...); aerr != nil {
		if kind, ok := classifyErrorCode(aerr); ok && kind == esdb.ErrorCodeWrongExpectedVersion {
			return false, dataerr.New(dataerr.WriteError, "concurrent write to "+stream, aerr)
		}
		return false, mapError(aerr, "append to stream "+stream)
	}
	agg.PopAll()
	return true, nil
}

// Delete appends whichever tombstone event is already queued on agg
// (the caller calls the aggregate's own Delete command first, which
// validates and pushes it) under a StreamExists guard, so deleting a
// never-created aggregate fails loudly, then soft-deletes the stream.
// Soft delete keeps history recoverable; a hard (tombstone-scavenge)
// delete is never used here since spec data is append-only by design.
func (r *Repository[A]) Delete(ctx context.Context, entityKind string, id core.ID, agg A) error {
	queued := agg.Events()
	if len(queued) == 0 {
		return dataerr.New(dataerr.WriteError, "delete called with no queued tombstone event", nil)
	}
	stream := eventstore.StreamName(entityKind, id)

	eventsData := make([]esdb.EventData, 0, len(queued))
	for _, event := range queued {
		env, eerr := r.registry.Encode(entityKind, id, event)
		if eerr != nil {
			return mapError(eerr, "encode delete event for stream "+stream)
		}
		eventsData = append(eventsData, esdb.EventData{
			EventID:     uuid.New(),
			EventType:   env.EventType,
			ContentType: contentType(entityKind),
			Data:        env.Data,
			Metadata:    env.Metadata,
		})
	}

	if _, aerr := r.client.DB().AppendToStream(ctx, stream, esdb.AppendToStreamOptions{ExpectedRevision: esdb.StreamExists{}}, eventsData...); aerr != nil {
		if kind, ok := classifyErrorCode(aerr); ok && kind == esdb.ErrorCodeWrongExpectedVersion {
			return dataerr.New(dataerr.WriteError, "delete of nonexistent aggregate "+stream, aerr)
		}
		return mapError(aerr, "append tombstone to stream "+stream)
	}
	agg.PopAll()

	if _, derr := r.client.DB().DeleteStream(ctx, stream, esdb.DeleteStreamOptions{ExpectedRevision: esdb.Any{}}); derr != nil {
		return mapError(derr, "soft-delete stream "+stream)
	}
	return nil
}

// contentType picks Binary for media's raw-bytes body (its mime type
// rides along in Metadata instead) and Json for every other aggregate,
// whose Encode always produces a JSON document.
func contentType(entityKind string) esdb.ContentType {
	if entityKind == "media" {
		return esdb.ContentTypeBinary
	}
	return esdb.ContentTypeJson
}

// classifyErrorCode reports the esdb error code carried by err, if any.
// Only the three codes this codebase's commands actually branch on are
// named; everything else falls through to mapError's default QueryError.
func classifyErrorCode(err error) (esdb.ErrorCode, bool) {
	if esdbErr, ok := esdb.FromError(err); ok {
		return esdbErr.Code(), true
	}
	return 0, false
}

// mapError classifies a KurrentDB client failure into the data-access
// taxonomy. Connection-level failures (deadline exceeded, canceled
// context) map to ConnectionError; the three pack-demonstrated esdb
// error codes map to their matching Kind; everything else is QueryError
// rather than a guess at an esdb constant this codebase has never
// exercised.
func mapError(err error, msg string) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return dataerr.New(dataerr.ConnectionError, msg, err)
	}
	if kind, ok := classifyErrorCode(err); ok {
		switch kind {
		case esdb.ErrorCodeResourceNotFound:
			return dataerr.New(dataerr.ReadError, msg, err)
		case esdb.ErrorCodeResourceAlreadyExists, esdb.ErrorCodeWrongExpectedVersion:
			return dataerr.New(dataerr.WriteError, msg, err)
		}
	}
	return dataerr.New(dataerr.QueryError, msg, err)
}
