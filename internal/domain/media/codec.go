package media

import (
	"encoding/json"
	"fmt"

	"github.com/kuraya-dely/dely/internal/domain/core"
	"github.com/kuraya-dely/dely/internal/domain/kernel"
	"github.com/kuraya-dely/dely/internal/eventstore"
)

// EntityKind is the stream-name prefix for this aggregate: "media-<id>".
const EntityKind = "media"

// metadata is the binary-body sidecar JSON Media events carry.
type metadata struct {
	ContentType string `json:"contentType"`
}

// Codec implements eventstore.Codec for Media. Unlike every other
// aggregate, Created's body is the raw media bytes rather than a JSON
// document; the mime type rides in metadata instead.
type Codec struct{}

var _ eventstore.Codec = Codec{}

func (Codec) EntityKind() string { return EntityKind }

func (Codec) Encode(event kernel.Event) (string, []byte, []byte, error) {
	switch ev := event.(type) {
	case Created:
		meta, err := json.Marshal(metadata{ContentType: ev.Mime.String()})
		if err != nil {
			return "", nil, nil, err
		}
		return ev.EventType(), ev.Bytes, meta, nil
	case Deleted:
		return ev.EventType(), []byte("{}"), nil, nil
	default:
		return "", nil, nil, fmt.Errorf("media: unknown event %T", event)
	}
}

func (Codec) Decode(eventType string, body []byte, meta []byte, id core.ID) (kernel.Event, error) {
	mid := core.MediaID(id)
	switch eventType {
	case "MediaCreated":
		var m metadata
		if len(meta) > 0 {
			if err := json.Unmarshal(meta, &m); err != nil {
				return nil, err
			}
		}
		mt, err := core.ParseMime(m.ContentType)
		if err != nil {
			return nil, err
		}
		return Created{ID: mid, Mime: mt, Bytes: body}, nil
	case "Deleted":
		return Deleted{ID: mid}, nil
	default:
		return nil, fmt.Errorf("media: unknown event type %q", eventType)
	}
}
