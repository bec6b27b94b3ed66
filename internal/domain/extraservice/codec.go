package extraservice

import (
	"encoding/json"
	"fmt"

	"github.com/kuraya-dely/dely/internal/domain/core"
	"github.com/kuraya-dely/dely/internal/domain/kernel"
	"github.com/kuraya-dely/dely/internal/eventstore"
)

// EntityKind is the stream-name prefix for this aggregate: "extra_service-<id>".
const EntityKind = "extra_service"

// Codec implements eventstore.Codec for the ExtraService event sum.
type Codec struct{}

var _ eventstore.Codec = Codec{}

func (Codec) EntityKind() string { return EntityKind }

func (Codec) Encode(event kernel.Event) (string, []byte, []byte, error) {
	switch ev := event.(type) {
	case Created:
		body, err := json.Marshal(struct {
			Name        string     `json:"name"`
			Description string     `json:"description"`
			Price       core.Price `json:"price"`
		}{ev.Name, ev.Description, ev.Price})
		return ev.EventType(), body, nil, err
	case NameChanged:
		body, err := json.Marshal(struct {
			Name string `json:"name"`
		}{ev.Name})
		return ev.EventType(), body, nil, err
	case DescriptionChanged:
		body, err := json.Marshal(struct {
			Description string `json:"description"`
		}{ev.Description})
		return ev.EventType(), body, nil, err
	case PriceChanged:
		body, err := json.Marshal(struct {
			Price core.Price `json:"price"`
		}{ev.Price})
		return ev.EventType(), body, nil, err
	case Deleted:
		return ev.EventType(), []byte("{}"), nil, nil
	default:
		return "", nil, nil, fmt.Errorf("extraservice: unknown event %T", event)
	}
}

func (Codec) Decode(eventType string, body []byte, _ []byte, id core.ID) (kernel.Event, error) {
	eid := core.ExtraServiceID(id)
	switch eventType {
	case "ExtraServiceCreated":
		var v struct {
			Name        string     `json:"name"`
			Description string     `json:"description"`
			Price       core.Price `json:"price"`
		}
		if err := json.Unmarshal(body, &v); err != nil {
			return nil, err
		}
		return Created{ID: eid, Name: v.Name, Description: v.Description, Price: v.Price}, nil
	case "NameChanged":
		var v struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(body, &v); err != nil {
			return nil, err
		}
		return NameChanged{ID: eid, Name: v.Name}, nil
	case "DescriptionChanged":
		var v struct {
			Description string `json:"description"`
		}
		if err := json.Unmarshal(body, &v); err != nil {
			return nil, err
		}
		return DescriptionChanged{ID: eid, Description: v.Description}, nil
	case "PriceChanged":
		var v struct {
			Price core.Price `json:"price"`
		}
		if err := json.Unmarshal(body, &v); err != nil {
			return nil, err
		}
		return PriceChanged{ID: eid, Price: v.Price}, nil
	case "Deleted":
		return Deleted{ID: eid}, nil
	default:
		return nil, fmt.Errorf("extraservice: unknown event type %q", eventType)
	}
}
