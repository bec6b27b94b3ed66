// Package prostitute implements the Prostitute aggregate: a roster
// worker's profile, with join/leave/rejoin lifecycle, ordered questions
// and images, and an optional video.
package prostitute

import (
	"strings"

	"github.com/kuraya-dely/dely/internal/domain/core"
	"github.com/kuraya-dely/dely/internal/domain/kernel"
	"github.com/kuraya-dely/dely/internal/domainerr"
)

// Prostitute is the aggregate root.
type Prostitute struct {
	kernel.Queue

	id          core.ProstituteID
	exists      bool
	deleted     bool
	name        string
	catchphrase string
	profile     string
	message     string
	figure      core.Figure
	blood       *BloodType
	birthday    *core.Birthday
	questions   []Question
	images      []core.MediaID
	video       *core.MediaID
	left        bool
}

// New returns a zero-value Prostitute ready for replay or Join.
func New() *Prostitute { return &Prostitute{} }

func (p *Prostitute) ID() core.ID                { return core.ID(p.id) }
func (p *Prostitute) TypedID() core.ProstituteID { return p.id }
func (p *Prostitute) Name() string               { return p.name }
func (p *Prostitute) Catchphrase() string        { return p.catchphrase }
func (p *Prostitute) Profile() string            { return p.profile }
func (p *Prostitute) Message() string            { return p.message }
func (p *Prostitute) Figure() core.Figure        { return p.figure }
func (p *Prostitute) Blood() *BloodType          { return p.blood }
func (p *Prostitute) Birthday() *core.Birthday   { return p.birthday }
func (p *Prostitute) Questions() []Question      { return append([]Question(nil), p.questions...) }
func (p *Prostitute) Images() []core.MediaID     { return append([]core.MediaID(nil), p.images...) }
func (p *Prostitute) Video() *core.MediaID       { return p.video }
func (p *Prostitute) Left() bool                 { return p.left }
func (p *Prostitute) Deleted() bool              { return p.deleted }

func nonBlank(s string) bool { return strings.TrimSpace(s) != "" }

func (p *Prostitute) checkID(id core.ProstituteID) error {
	if p.exists && id != p.id {
		return domainerr.New(domainerr.MismatchedId, "event id does not match aggregate id")
	}
	return nil
}

func (p *Prostitute) imageIndex(id core.MediaID) int {
	for i, img := range p.images {
		if img == id {
			return i
		}
	}
	return -1
}

// Validate checks a candidate event against current state.
func (p *Prostitute) Validate(event kernel.Event) error {
	switch ev := event.(type) {
	case Joined:
		if p.exists {
			return domainerr.New(domainerr.MismatchedId, "aggregate already created")
		}
		if !nonBlank(ev.Name) {
			return domainerr.New(domainerr.NameIsBlank, "name is blank")
		}
		if !nonBlank(ev.Catchphrase) {
			return domainerr.New(domainerr.CatchphraseIsBlank, "catchphrase is blank")
		}
		return nil
	case Rejoined:
		if err := p.checkID(ev.ID); err != nil {
			return err
		}
		if !p.left {
			return domainerr.New(domainerr.AlreadyJoined, "already active")
		}
		return nil
	case Leaved:
		if err := p.checkID(ev.ID); err != nil {
			return err
		}
		if p.left {
			return domainerr.New(domainerr.AlreadyLeft, "already left")
		}
		return nil
	case NameChanged:
		if err := p.checkID(ev.ID); err != nil {
			return err
		}
		if !nonBlank(ev.Name) {
			return domainerr.New(domainerr.NameIsBlank, "name is blank")
		}
		return nil
	case CatchphraseChanged:
		if err := p.checkID(ev.ID); err != nil {
			return err
		}
		if !nonBlank(ev.Catchphrase) {
			return domainerr.New(domainerr.CatchphraseIsBlank, "catchphrase is blank")
		}
		return nil
	case ProfileChanged:
		return p.checkID(ev.ID)
	case MessageChanged:
		return p.checkID(ev.ID)
	case FigureChanged:
		return p.checkID(ev.ID)
	case BloodTypeChanged:
		return p.checkID(ev.ID)
	case BirthdayChanged:
		return p.checkID(ev.ID)
	case QuestionsChanged:
		return p.checkID(ev.ID)
	case QuestionAdded:
		return p.checkID(ev.ID)
	case QuestionDeleted:
		if err := p.checkID(ev.ID); err != nil {
			return err
		}
		if ev.Index < 0 || ev.Index >= len(p.questions) {
			return domainerr.New(domainerr.QuestionNotFound, "question index out of range")
		}
		return nil
	case QuestionSwapped:
		if err := p.checkID(ev.ID); err != nil {
			return err
		}
		if ev.I < 0 || ev.I >= len(p.questions) || ev.J < 0 || ev.J >= len(p.questions) {
			return domainerr.New(domainerr.QuestionNotFound, "question index out of range")
		}
		if ev.I == ev.J {
			return domainerr.New(domainerr.DuplicateQuestionIndex, "swap indexes must differ")
		}
		return nil
	case ImagesChanged:
		return p.checkID(ev.ID)
	case ImageAdded:
		if err := p.checkID(ev.ID); err != nil {
			return err
		}
		if p.imageIndex(ev.ImageID) >= 0 {
			return domainerr.New(domainerr.DuplicateImage, "image already present")
		}
		return nil
	case ImageDeleted:
		if err := p.checkID(ev.ID); err != nil {
			return err
		}
		if p.imageIndex(ev.ImageID) < 0 {
			return domainerr.New(domainerr.ImageNotFound, "image not present")
		}
		return nil
	case ImageSwapped:
		if err := p.checkID(ev.ID); err != nil {
			return err
		}
		if ev.A == ev.B {
			return domainerr.New(domainerr.DuplicateImageIndex, "swap images must differ")
		}
		if p.imageIndex(ev.A) < 0 || p.imageIndex(ev.B) < 0 {
			return domainerr.New(domainerr.ImageNotFound, "image not present")
		}
		return nil
	case VideoChanged:
		return p.checkID(ev.ID)
	case Deleted:
		return p.checkID(ev.ID)
	default:
		return domainerr.Newf(domainerr.MismatchedId, "unknown event type %T", event)
	}
}

// Apply mutates state for event. Total; does not re-validate.
func (p *Prostitute) Apply(event kernel.Event) {
	switch ev := event.(type) {
	case Joined:
		p.id = ev.ID
		p.exists = true
		p.name = ev.Name
		p.catchphrase = ev.Catchphrase
		p.profile = ev.Profile
		p.message = ev.Message
		p.figure = ev.Figure
		p.left = false
	case Rejoined:
		p.left = false
	case Leaved:
		p.left = true
	case NameChanged:
		p.name = ev.Name
	case CatchphraseChanged:
		p.catchphrase = ev.Catchphrase
	case ProfileChanged:
		p.profile = ev.Profile
	case MessageChanged:
		p.message = ev.Message
	case FigureChanged:
		p.figure = ev.Figure
	case BloodTypeChanged:
		bt := ev.BloodType
		p.blood = &bt
	case BirthdayChanged:
		bd := ev.Birthday
		p.birthday = &bd
	case QuestionsChanged:
		p.questions = append([]Question(nil), ev.Questions...)
	case QuestionAdded:
		p.questions = append(p.questions, ev.Question)
	case QuestionDeleted:
		p.questions = append(p.questions[:ev.Index], p.questions[ev.Index+1:]...)
	case QuestionSwapped:
		p.questions[ev.I], p.questions[ev.J] = p.questions[ev.J], p.questions[ev.I]
	case ImagesChanged:
		p.images = append([]core.MediaID(nil), ev.Images...)
	case ImageAdded:
		p.images = append(p.images, ev.ImageID)
	case ImageDeleted:
		idx := p.imageIndex(ev.ImageID)
		p.images = append(p.images[:idx], p.images[idx+1:]...)
	case ImageSwapped:
		ai, bi := p.imageIndex(ev.A), p.imageIndex(ev.B)
		p.images[ai], p.images[bi] = p.images[bi], p.images[ai]
	case VideoChanged:
		p.video = ev.Video
	case Deleted:
		p.deleted = true
	}
	p.Queue.Push(event)
}

func (p *Prostitute) command(event kernel.Event) error {
	if err := p.Validate(event); err != nil {
		return err
	}
	p.Apply(event)
	return nil
}

// Join establishes a new Prostitute.
func (p *Prostitute) Join(id core.ProstituteID, name, catchphrase, profile, message string, figure core.Figure) error {
	return p.command(Joined{ID: id, Name: name, Catchphrase: catchphrase, Profile: profile, Message: message, Figure: figure})
}

// Rejoin marks a left worker as active again.
func (p *Prostitute) Rejoin() error { return p.command(Rejoined{ID: p.id}) }

// Leave marks an active worker as having left.
func (p *Prostitute) Leave() error { return p.command(Leaved{ID: p.id}) }

func (p *Prostitute) ChangeName(name string) error {
	return p.command(NameChanged{ID: p.id, Name: name})
}

func (p *Prostitute) ChangeCatchphrase(catchphrase string) error {
	return p.command(CatchphraseChanged{ID: p.id, Catchphrase: catchphrase})
}

func (p *Prostitute) ChangeProfile(profile string) error {
	return p.command(ProfileChanged{ID: p.id, Profile: profile})
}

func (p *Prostitute) ChangeMessage(message string) error {
	return p.command(MessageChanged{ID: p.id, Message: message})
}

func (p *Prostitute) ChangeFigure(figure core.Figure) error {
	return p.command(FigureChanged{ID: p.id, Figure: figure})
}

func (p *Prostitute) ChangeBloodType(bt BloodType) error {
	return p.command(BloodTypeChanged{ID: p.id, BloodType: bt})
}

func (p *Prostitute) ChangeBirthday(bd core.Birthday) error {
	return p.command(BirthdayChanged{ID: p.id, Birthday: bd})
}

func (p *Prostitute) ChangeQuestions(questions []Question) error {
	return p.command(QuestionsChanged{ID: p.id, Questions: questions})
}

func (p *Prostitute) AddQuestion(q Question) error {
	return p.command(QuestionAdded{ID: p.id, Question: q})
}

func (p *Prostitute) DeleteQuestion(index int) error {
	return p.command(QuestionDeleted{ID: p.id, Index: index})
}

func (p *Prostitute) SwapQuestions(i, j int) error {
	return p.command(QuestionSwapped{ID: p.id, I: i, J: j})
}

func (p *Prostitute) ChangeImages(images []core.MediaID) error {
	return p.command(ImagesChanged{ID: p.id, Images: images})
}

func (p *Prostitute) AddImage(id core.MediaID) error {
	return p.command(ImageAdded{ID: p.id, ImageID: id})
}

func (p *Prostitute) DeleteImage(id core.MediaID) error {
	return p.command(ImageDeleted{ID: p.id, ImageID: id})
}

func (p *Prostitute) SwapImages(a, b core.MediaID) error {
	return p.command(ImageSwapped{ID: p.id, A: a, B: b})
}

func (p *Prostitute) ChangeVideo(video *core.MediaID) error {
	return p.command(VideoChanged{ID: p.id, Video: video})
}

func (p *Prostitute) Delete() error {
	return p.command(Deleted{ID: p.id})
}

// Replay feeds historical events through Apply then clears the queue.
func Replay(events []kernel.Event) *Prostitute {
	p := New()
	for _, ev := range events {
		p.Apply(ev)
	}
	p.Clear()
	return p
}
