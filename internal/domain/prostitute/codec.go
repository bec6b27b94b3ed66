package prostitute

import (
	"encoding/json"
	"fmt"

	"github.com/kuraya-dely/dely/internal/domain/core"
	"github.com/kuraya-dely/dely/internal/domain/kernel"
	"github.com/kuraya-dely/dely/internal/eventstore"
)

// EntityKind is the stream-name prefix for this aggregate: "prostitute-<id>".
const EntityKind = "prostitute"

// Codec implements eventstore.Codec for Prostitute. The id field is
// always omitted from the wire body; it is recovered from the stream
// name by the registry.
type Codec struct{}

var _ eventstore.Codec = Codec{}

func (Codec) EntityKind() string { return EntityKind }

func (Codec) Encode(event kernel.Event) (string, []byte, []byte, error) {
	switch ev := event.(type) {
	case Joined:
		body, err := json.Marshal(struct {
			Name        string      `json:"name"`
			Catchphrase string      `json:"catchphrase"`
			Profile     string      `json:"profile"`
			Message     string      `json:"message"`
			Figure      core.Figure `json:"figure"`
		}{ev.Name, ev.Catchphrase, ev.Profile, ev.Message, ev.Figure})
		return ev.EventType(), body, nil, err
	case Rejoined:
		return ev.EventType(), []byte("{}"), nil, nil
	case Leaved:
		return ev.EventType(), []byte("{}"), nil, nil
	case NameChanged:
		body, err := json.Marshal(struct {
			Name string `json:"name"`
		}{ev.Name})
		return ev.EventType(), body, nil, err
	case CatchphraseChanged:
		body, err := json.Marshal(struct {
			Catchphrase string `json:"catchphrase"`
		}{ev.Catchphrase})
		return ev.EventType(), body, nil, err
	case ProfileChanged:
		body, err := json.Marshal(struct {
			Profile string `json:"profile"`
		}{ev.Profile})
		return ev.EventType(), body, nil, err
	case MessageChanged:
		body, err := json.Marshal(struct {
			Message string `json:"message"`
		}{ev.Message})
		return ev.EventType(), body, nil, err
	case FigureChanged:
		body, err := json.Marshal(struct {
			Figure core.Figure `json:"figure"`
		}{ev.Figure})
		return ev.EventType(), body, nil, err
	case BloodTypeChanged:
		body, err := json.Marshal(struct {
			BloodType BloodType `json:"bloodType"`
		}{ev.BloodType})
		return ev.EventType(), body, nil, err
	case BirthdayChanged:
		body, err := json.Marshal(struct {
			Birthday core.Birthday `json:"birthday"`
		}{ev.Birthday})
		return ev.EventType(), body, nil, err
	case QuestionsChanged:
		body, err := json.Marshal(struct {
			Questions []Question `json:"questions"`
		}{ev.Questions})
		return ev.EventType(), body, nil, err
	case QuestionAdded:
		body, err := json.Marshal(struct {
			Question Question `json:"question"`
		}{ev.Question})
		return ev.EventType(), body, nil, err
	case QuestionDeleted:
		body, err := json.Marshal(struct {
			Index int `json:"index"`
		}{ev.Index})
		return ev.EventType(), body, nil, err
	case QuestionSwapped:
		body, err := json.Marshal(struct {
			I int `json:"i"`
			J int `json:"j"`
		}{ev.I, ev.J})
		return ev.EventType(), body, nil, err
	case ImagesChanged:
		body, err := json.Marshal(struct {
			Images []core.MediaID `json:"images"`
		}{ev.Images})
		return ev.EventType(), body, nil, err
	case ImageAdded:
		body, err := json.Marshal(struct {
			ImageID core.MediaID `json:"imageId"`
		}{ev.ImageID})
		return ev.EventType(), body, nil, err
	case ImageDeleted:
		body, err := json.Marshal(struct {
			ImageID core.MediaID `json:"imageId"`
		}{ev.ImageID})
		return ev.EventType(), body, nil, err
	case ImageSwapped:
		body, err := json.Marshal(struct {
			A core.MediaID `json:"a"`
			B core.MediaID `json:"b"`
		}{ev.A, ev.B})
		return ev.EventType(), body, nil, err
	case VideoChanged:
		body, err := json.Marshal(struct {
			Video *core.MediaID `json:"video"`
		}{ev.Video})
		return ev.EventType(), body, nil, err
	case Deleted:
		return ev.EventType(), []byte("{}"), nil, nil
	default:
		return "", nil, nil, fmt.Errorf("prostitute: unknown event %T", event)
	}
}

func (Codec) Decode(eventType string, body []byte, _ []byte, id core.ID) (kernel.Event, error) {
	pid := core.ProstituteID(id)
	switch eventType {
	case "Joined":
		var w struct {
			Name        string      `json:"name"`
			Catchphrase string      `json:"catchphrase"`
			Profile     string      `json:"profile"`
			Message     string      `json:"message"`
			Figure      core.Figure `json:"figure"`
		}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, err
		}
		return Joined{ID: pid, Name: w.Name, Catchphrase: w.Catchphrase, Profile: w.Profile, Message: w.Message, Figure: w.Figure}, nil
	case "Rejoined":
		return Rejoined{ID: pid}, nil
	case "Leaved":
		return Leaved{ID: pid}, nil
	case "NameChanged":
		var w struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, err
		}
		return NameChanged{ID: pid, Name: w.Name}, nil
	case "CatchphraseChanged":
		var w struct {
			Catchphrase string `json:"catchphrase"`
		}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, err
		}
		return CatchphraseChanged{ID: pid, Catchphrase: w.Catchphrase}, nil
	case "ProfileChanged":
		var w struct {
			Profile string `json:"profile"`
		}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, err
		}
		return ProfileChanged{ID: pid, Profile: w.Profile}, nil
	case "MessageChanged":
		var w struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, err
		}
		return MessageChanged{ID: pid, Message: w.Message}, nil
	case "FigureChanged":
		var w struct {
			Figure core.Figure `json:"figure"`
		}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, err
		}
		return FigureChanged{ID: pid, Figure: w.Figure}, nil
	case "BloodTypeChanged":
		var w struct {
			BloodType BloodType `json:"bloodType"`
		}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, err
		}
		return BloodTypeChanged{ID: pid, BloodType: w.BloodType}, nil
	case "BirthdayChanged":
		var w struct {
			Birthday core.Birthday `json:"birthday"`
		}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, err
		}
		return BirthdayChanged{ID: pid, Birthday: w.Birthday}, nil
	case "QuestionsChanged":
		var w struct {
			Questions []Question `json:"questions"`
		}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, err
		}
		return QuestionsChanged{ID: pid, Questions: w.Questions}, nil
	case "QuestionAdded":
		var w struct {
			Question Question `json:"question"`
		}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, err
		}
		return QuestionAdded{ID: pid, Question: w.Question}, nil
	case "QuestionDeleted":
		var w struct {
			Index int `json:"index"`
		}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, err
		}
		return QuestionDeleted{ID: pid, Index: w.Index}, nil
	case "QuestionSwapped":
		var w struct {
			I int `json:"i"`
			J int `json:"j"`
		}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, err
		}
		return QuestionSwapped{ID: pid, I: w.I, J: w.J}, nil
	case "ImagesChanged":
		var w struct {
			Images []core.MediaID `json:"images"`
		}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, err
		}
		return ImagesChanged{ID: pid, Images: w.Images}, nil
	case "ImageAdded":
		var w struct {
			ImageID core.MediaID `json:"imageId"`
		}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, err
		}
		return ImageAdded{ID: pid, ImageID: w.ImageID}, nil
	case "ImageDeleted":
		var w struct {
			ImageID core.MediaID `json:"imageId"`
		}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, err
		}
		return ImageDeleted{ID: pid, ImageID: w.ImageID}, nil
	case "ImageSwapped":
		var w struct {
			A core.MediaID `json:"a"`
			B core.MediaID `json:"b"`
		}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, err
		}
		return ImageSwapped{ID: pid, A: w.A, B: w.B}, nil
	case "VideoChanged":
		var w struct {
			Video *core.MediaID `json:"video"`
		}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, err
		}
		return VideoChanged{ID: pid, Video: w.Video}, nil
	case "Deleted":
		return Deleted{ID: pid}, nil
	default:
		return nil, fmt.Errorf("prostitute: unknown event type %q", eventType)
	}
}
