package service

import (
	"encoding/json"
	"fmt"

	"github.com/kuraya-dely/dely/internal/domain/core"
	"github.com/kuraya-dely/dely/internal/domain/kernel"
	"github.com/kuraya-dely/dely/internal/eventstore"
)

// EntityKind is the stream-name prefix for this aggregate: "service-<id>".
const EntityKind = "service"

// Codec implements eventstore.Codec for Service.
type Codec struct{}

var _ eventstore.Codec = Codec{}

func (Codec) EntityKind() string { return EntityKind }

func (Codec) Encode(event kernel.Event) (string, []byte, []byte, error) {
	switch ev := event.(type) {
	case Created:
		body, err := json.Marshal(struct {
			Name            string           `json:"name"`
			Description     string           `json:"description"`
			DefaultPrice    core.Price       `json:"defaultPrice"`
			ExtensionPrice  *core.Price      `json:"extensionPrice,omitempty"`
			TimeBasedPrices []TimeBasedPrice `json:"timeBasedPrices"`
			Discounts       []Discount       `json:"discounts"`
		}{ev.Name, ev.Description, ev.DefaultPrice, ev.ExtensionPrice, ev.TimeBasedPrices, ev.Discounts})
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
	case DefaultPriceChanged:
		body, err := json.Marshal(struct {
			Price core.Price `json:"price"`
		}{ev.Price})
		return ev.EventType(), body, nil, err
	case ExtensionPriceChanged:
		body, err := json.Marshal(struct {
			Price *core.Price `json:"price,omitempty"`
		}{ev.Price})
		return ev.EventType(), body, nil, err
	case TimeBasedPricesChanged:
		body, err := json.Marshal(struct {
			Prices []TimeBasedPrice `json:"prices"`
		}{ev.Prices})
		return ev.EventType(), body, nil, err
	case DiscountsChanged:
		body, err := json.Marshal(struct {
			Discounts []Discount `json:"discounts"`
		}{ev.Discounts})
		return ev.EventType(), body, nil, err
	case Deleted:
		return ev.EventType(), []byte("{}"), nil, nil
	default:
		return "", nil, nil, fmt.Errorf("service: unknown event %T", event)
	}
}

func (Codec) Decode(eventType string, body []byte, _ []byte, id core.ID) (kernel.Event, error) {
	sid := core.ServiceID(id)
	switch eventType {
	case "ServiceCreated":
		var w struct {
			Name            string           `json:"name"`
			Description     string           `json:"description"`
			DefaultPrice    core.Price       `json:"defaultPrice"`
			ExtensionPrice  *core.Price      `json:"extensionPrice,omitempty"`
			TimeBasedPrices []TimeBasedPrice `json:"timeBasedPrices"`
			Discounts       []Discount       `json:"discounts"`
		}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, err
		}
		return Created{ID: sid, Name: w.Name, Description: w.Description, DefaultPrice: w.DefaultPrice, ExtensionPrice: w.ExtensionPrice, TimeBasedPrices: w.TimeBasedPrices, Discounts: w.Discounts}, nil
	case "NameChanged":
		var w struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, err
		}
		return NameChanged{ID: sid, Name: w.Name}, nil
	case "DescriptionChanged":
		var w struct {
			Description string `json:"description"`
		}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, err
		}
		return DescriptionChanged{ID: sid, Description: w.Description}, nil
	case "DefaultPriceChanged":
		var w struct {
			Price core.Price `json:"price"`
		}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, err
		}
		return DefaultPriceChanged{ID: sid, Price: w.Price}, nil
	case "ExtensionPriceChanged":
		var w struct {
			Price *core.Price `json:"price,omitempty"`
		}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, err
		}
		return ExtensionPriceChanged{ID: sid, Price: w.Price}, nil
	case "TimeBasedPricesChanged":
		var w struct {
			Prices []TimeBasedPrice `json:"prices"`
		}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, err
		}
		return TimeBasedPricesChanged{ID: sid, Prices: w.Prices}, nil
	case "DiscountsChanged":
		var w struct {
			Discounts []Discount `json:"discounts"`
		}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, err
		}
		return DiscountsChanged{ID: sid, Discounts: w.Discounts}, nil
	case "Deleted":
		return Deleted{ID: sid}, nil
	default:
		return nil, fmt.Errorf("service: unknown event type %q", eventType)
	}
}
