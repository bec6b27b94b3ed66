// Package eventstore defines the wire envelope every domain event is
// mapped to/from before it touches the log, independent of which log
// client backs it. internal/kurrentdb binds this to EventStoreDB.
package eventstore

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/kuraya-dely/dely/internal/domain/core"
	"github.com/kuraya-dely/dely/internal/domain/kernel"
)

// Position is a global, monotonic coordinate in the all-streams log,
// used as a projection checkpoint.
type Position struct {
	Commit  uint64 `json:"commit"`
	Prepare uint64 `json:"prepare"`
}

// Less reports whether p precedes other in log order.
func (p Position) Less(other Position) bool {
	if p.Commit != other.Commit {
		return p.Commit < other.Commit
	}
	return p.Prepare < other.Prepare
}

// Envelope is a decoded or about-to-be-encoded log record.
type Envelope struct {
	Stream    string
	EventType string
	Data      []byte
	Metadata  []byte
	ID        uuid.UUID
	Revision  uint64
	Position  Position
}

// ConvertError reports a failure to encode or decode an envelope:
// unrecognized entity kind or event-type, malformed JSON, or a stream
// name missing its id suffix.
type ConvertError struct {
	Reason string
}

func (e *ConvertError) Error() string {
	return "EventConvertError: " + e.Reason
}

func newConvertError(format string, args ...any) *ConvertError {
	return &ConvertError{Reason: fmt.Sprintf(format, args...)}
}

// StreamName formats the wire-visible stream id for an entity kind and
// aggregate id: "<entity>-<id>".
func StreamName(entityKind string, id core.ID) string {
	return entityKind + "-" + id.String()
}

// ParseStreamName splits a stream name into its entity kind and numeric
// id, recovering the id that event bodies omit.
func ParseStreamName(stream string) (entityKind string, id core.ID, err error) {
	idx := strings.LastIndexByte(stream, '-')
	if idx < 0 || idx == len(stream)-1 {
		return "", 0, newConvertError("stream name %q has no id suffix", stream)
	}
	entityKind = stream[:idx]
	id, perr := core.ParseID(stream[idx+1:])
	if perr != nil {
		return "", 0, newConvertError("stream name %q has non-numeric id suffix: %v", stream, perr)
	}
	return entityKind, id, nil
}

// Codec encodes an aggregate's event to an Envelope body (without the
// stream/id framing, which the caller supplies) and decodes an event
// body back into a kernel.Event given the entity's recovered id.
type Codec interface {
	// EntityKind is the stream-name prefix this codec owns, e.g.
	// "extra_service".
	EntityKind() string
	// Encode returns the event-type tag, JSON body (without "id"), and
	// binary metadata (nil for JSON-bodied events) for an event.
	Encode(event kernel.Event) (eventType string, body []byte, metadata []byte, err error)
	// Decode reconstructs a kernel.Event from its event-type tag, body,
	// metadata and the id recovered from the stream name.
	Decode(eventType string, body []byte, metadata []byte, id core.ID) (kernel.Event, error)
}

// Registry dispatches encode/decode calls to the Codec registered for a
// stream's entity-kind prefix, discriminating first by stream prefix as
// the design calls for.
type Registry struct {
	codecs map[string]Codec
}

// NewRegistry builds a Registry from a set of per-aggregate codecs.
func NewRegistry(codecs ...Codec) *Registry {
	r := &Registry{codecs: make(map[string]Codec, len(codecs))}
	for _, c := range codecs {
		r.codecs[c.EntityKind()] = c
	}
	return r
}

// Encode builds an Envelope carrying the stream name, event type, body
// and metadata for an event belonging to the given aggregate id; ID,
// Revision and Position are left zero.
func (r *Registry) Encode(entityKind string, id core.ID, event kernel.Event) (Envelope, error) {
	c, ok := r.codecs[entityKind]
	if !ok {
		return Envelope{}, newConvertError("unknown entity kind %q", entityKind)
	}
	eventType, body, metadata, err := c.Encode(event)
	if err != nil {
		return Envelope{}, newConvertError("encode %s event %T: %v", entityKind, event, err)
	}
	return Envelope{
		Stream:    StreamName(entityKind, id),
		EventType: eventType,
		Data:      body,
		Metadata:  metadata,
	}, nil
}

// Decode reconstructs a kernel.Event from a raw envelope, recovering
// the entity kind and id from the stream name first.
func (r *Registry) Decode(env Envelope) (entityKind string, id core.ID, event kernel.Event, err error) {
	entityKind, id, err = ParseStreamName(env.Stream)
	if err != nil {
		return "", 0, nil, err
	}
	c, ok := r.codecs[entityKind]
	if !ok {
		return "", 0, nil, newConvertError("unknown entity kind %q", entityKind)
	}
	event, err = c.Decode(env.EventType, env.Data, env.Metadata, id)
	if err != nil {
		return "", 0, nil, newConvertError("decode %s event %q: %v", entityKind, env.EventType, err)
	}
	return entityKind, id, event, nil
}

// IsCreationEventType reports whether an event type name is the
// creation variant for its aggregate (ExtraServiceCreated, Joined,
// MediaCreated, ScheduleCreated, ReservationCreated, ServiceCreated),
// which determines the expected-revision guard a repository uses on
// save.
func IsCreationEventType(eventType string) bool {
	switch eventType {
	case "ExtraServiceCreated", "Joined", "MediaCreated", "ScheduleCreated", "ReservationCreated", "ServiceCreated":
		return true
	default:
		return false
	}
}
