package prostitute

import "github.com/kuraya-dely/dely/internal/domain/core"

// Question is a profile Q&A pair, grounded on original_source's
// Questions model (distilled spec.md names the field but not its
// shape).
type Question struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// BloodType is the ABO blood type, carried optionally per spec.md's
// `blood?` field and present in original_source as a four-value enum.
type BloodType string

const (
	BloodA  BloodType = "A"
	BloodB  BloodType = "B"
	BloodO  BloodType = "O"
	BloodAB BloodType = "AB"
)

// Joined is the creation event: a new worker joins the roster.
type Joined struct {
	ID          core.ProstituteID
	Name        string
	Catchphrase string
	Profile     string
	Message     string
	Figure      core.Figure
}

func (Joined) EventType() string { return "Joined" }

// Rejoined marks a previously-left worker as active again.
type Rejoined struct {
	ID core.ProstituteID
}

func (Rejoined) EventType() string { return "Rejoined" }

// Leaved marks a worker as having left.
type Leaved struct {
	ID core.ProstituteID
}

func (Leaved) EventType() string { return "Leaved" }

type NameChanged struct {
	ID   core.ProstituteID
	Name string
}

func (NameChanged) EventType() string { return "NameChanged" }

type CatchphraseChanged struct {
	ID          core.ProstituteID
	Catchphrase string
}

func (CatchphraseChanged) EventType() string { return "CatchphraseChanged" }

type ProfileChanged struct {
	ID      core.ProstituteID
	Profile string
}

func (ProfileChanged) EventType() string { return "ProfileChanged" }

type MessageChanged struct {
	ID      core.ProstituteID
	Message string
}

func (MessageChanged) EventType() string { return "MessageChanged" }

type FigureChanged struct {
	ID     core.ProstituteID
	Figure core.Figure
}

func (FigureChanged) EventType() string { return "FigureChanged" }

type BloodTypeChanged struct {
	ID        core.ProstituteID
	BloodType BloodType
}

func (BloodTypeChanged) EventType() string { return "BloodTypeChanged" }

type BirthdayChanged struct {
	ID       core.ProstituteID
	Birthday core.Birthday
}

func (BirthdayChanged) EventType() string { return "BirthdayChanged" }

type QuestionsChanged struct {
	ID        core.ProstituteID
	Questions []Question
}

func (QuestionsChanged) EventType() string { return "QuestionsChanged" }

type QuestionAdded struct {
	ID       core.ProstituteID
	Question Question
}

func (QuestionAdded) EventType() string { return "QuestionAdded" }

type QuestionDeleted struct {
	ID    core.ProstituteID
	Index int
}

func (QuestionDeleted) EventType() string { return "QuestionDeleted" }

type QuestionSwapped struct {
	ID core.ProstituteID
	I  int
	J  int
}

func (QuestionSwapped) EventType() string { return "QuestionSwapped" }

type ImagesChanged struct {
	ID     core.ProstituteID
	Images []core.MediaID
}

func (ImagesChanged) EventType() string { return "ImagesChanged" }

type ImageAdded struct {
	ID      core.ProstituteID
	ImageID core.MediaID
}

func (ImageAdded) EventType() string { return "ImageAdded" }

type ImageDeleted struct {
	ID      core.ProstituteID
	ImageID core.MediaID
}

func (ImageDeleted) EventType() string { return "ImageDeleted" }

// ImageSwapped exchanges the positions of the images whose media ids
// are A and B (the invariant that `images` has no duplicates means
// each id names exactly one position).
type ImageSwapped struct {
	ID core.ProstituteID
	A  core.MediaID
	B  core.MediaID
}

func (ImageSwapped) EventType() string { return "ImageSwapped" }

type VideoChanged struct {
	ID    core.ProstituteID
	Video *core.MediaID
}

func (VideoChanged) EventType() string { return "VideoChanged" }

type Deleted struct {
	ID core.ProstituteID
}

func (Deleted) EventType() string { return "Deleted" }
