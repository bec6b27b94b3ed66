package prostitute

import (
	"errors"
	"testing"

	"github.com/kuraya-dely/dely/internal/domain/core"
	"github.com/kuraya-dely/dely/internal/domainerr"
)

func figure() core.Figure {
	return core.Figure{HeightCM: 168, WeightKG: 60}
}

func TestJoinAndReplay(t *testing.T) {
	p := New()
	if err := p.Join(1, "Aya", "hello", "profile", "message", figure()); err != nil {
		t.Fatalf("Join: %v", err)
	}
	events := p.Events()
	replayed := Replay(events)
	if replayed.Name() != "Aya" {
		t.Errorf("Name = %q, want Aya", replayed.Name())
	}
	if replayed.Left() {
		t.Errorf("newly joined worker should not be left")
	}
	if len(replayed.Events()) != 0 {
		t.Errorf("replay should not leave pending events")
	}
}

func TestJoinRejectsBlankName(t *testing.T) {
	p := New()
	err := p.Join(1, "  ", "hello", "", "", figure())
	var derr *domainerr.Error
	if !errors.As(err, &derr) || derr.Kind != domainerr.NameIsBlank {
		t.Fatalf("expected NameIsBlank, got %v", err)
	}
}

func TestJoinRejectsBlankCatchphrase(t *testing.T) {
	p := New()
	err := p.Join(1, "Aya", "", "", "", figure())
	var derr *domainerr.Error
	if !errors.As(err, &derr) || derr.Kind != domainerr.CatchphraseIsBlank {
		t.Fatalf("expected CatchphraseIsBlank, got %v", err)
	}
}

// TestLeaveThenRejoinPushesRejoined guards against the source's bug of
// pushing a second Leaved event on rejoin instead of Rejoined.
func TestLeaveThenRejoinPushesRejoined(t *testing.T) {
	p := New()
	mustJoin(t, p)
	if err := p.Leave(); err != nil {
		t.Fatalf("Leave: %v", err)
	}
	if !p.Left() {
		t.Fatalf("expected left after Leave")
	}
	if err := p.Rejoin(); err != nil {
		t.Fatalf("Rejoin: %v", err)
	}
	if p.Left() {
		t.Fatalf("expected active after Rejoin")
	}
	events := p.Events()
	if len(events) != 3 {
		t.Fatalf("expected 3 events (Joined, Leaved, Rejoined), got %d", len(events))
	}
	if _, ok := events[2].(Rejoined); !ok {
		t.Fatalf("third event = %T, want Rejoined", events[2])
	}
}

func TestLeaveTwiceRejected(t *testing.T) {
	p := New()
	mustJoin(t, p)
	if err := p.Leave(); err != nil {
		t.Fatalf("Leave: %v", err)
	}
	err := p.Leave()
	var derr *domainerr.Error
	if !errors.As(err, &derr) || derr.Kind != domainerr.AlreadyLeft {
		t.Fatalf("expected AlreadyLeft, got %v", err)
	}
}

func TestRejoinWithoutLeavingRejected(t *testing.T) {
	p := New()
	mustJoin(t, p)
	err := p.Rejoin()
	var derr *domainerr.Error
	if !errors.As(err, &derr) || derr.Kind != domainerr.AlreadyJoined {
		t.Fatalf("expected AlreadyJoined, got %v", err)
	}
}

func TestAddImageRejectsDuplicate(t *testing.T) {
	p := New()
	mustJoin(t, p)
	if err := p.AddImage(10); err != nil {
		t.Fatalf("AddImage: %v", err)
	}
	err := p.AddImage(10)
	var derr *domainerr.Error
	if !errors.As(err, &derr) || derr.Kind != domainerr.DuplicateImage {
		t.Fatalf("expected DuplicateImage, got %v", err)
	}
}

func TestDeleteImageRejectsMissing(t *testing.T) {
	p := New()
	mustJoin(t, p)
	err := p.DeleteImage(99)
	var derr *domainerr.Error
	if !errors.As(err, &derr) || derr.Kind != domainerr.ImageNotFound {
		t.Fatalf("expected ImageNotFound, got %v", err)
	}
}

func TestSwapImagesPositional(t *testing.T) {
	p := New()
	mustJoin(t, p)
	_ = p.AddImage(1)
	_ = p.AddImage(2)
	_ = p.AddImage(3)
	if err := p.SwapImages(1, 3); err != nil {
		t.Fatalf("SwapImages: %v", err)
	}
	got := p.Images()
	want := []core.MediaID{3, 2, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Images = %v, want %v", got, want)
		}
	}
}

func TestSwapImagesRejectsSameImage(t *testing.T) {
	p := New()
	mustJoin(t, p)
	_ = p.AddImage(1)
	err := p.SwapImages(1, 1)
	var derr *domainerr.Error
	if !errors.As(err, &derr) || derr.Kind != domainerr.DuplicateImageIndex {
		t.Fatalf("expected DuplicateImageIndex, got %v", err)
	}
}

func TestQuestionDeleteOutOfRange(t *testing.T) {
	p := New()
	mustJoin(t, p)
	_ = p.AddQuestion(Question{Question: "q", Answer: "a"})
	err := p.DeleteQuestion(5)
	var derr *domainerr.Error
	if !errors.As(err, &derr) || derr.Kind != domainerr.QuestionNotFound {
		t.Fatalf("expected QuestionNotFound, got %v", err)
	}
}

func TestSwapQuestionsRejectsSameIndex(t *testing.T) {
	p := New()
	mustJoin(t, p)
	_ = p.AddQuestion(Question{Question: "q1", Answer: "a1"})
	err := p.SwapQuestions(0, 0)
	var derr *domainerr.Error
	if !errors.As(err, &derr) || derr.Kind != domainerr.DuplicateQuestionIndex {
		t.Fatalf("expected DuplicateQuestionIndex, got %v", err)
	}
}

func TestSwapQuestionsReorders(t *testing.T) {
	p := New()
	mustJoin(t, p)
	_ = p.AddQuestion(Question{Question: "q1", Answer: "a1"})
	_ = p.AddQuestion(Question{Question: "q2", Answer: "a2"})
	if err := p.SwapQuestions(0, 1); err != nil {
		t.Fatalf("SwapQuestions: %v", err)
	}
	got := p.Questions()
	if got[0].Question != "q2" || got[1].Question != "q1" {
		t.Fatalf("Questions = %v, want reversed order", got)
	}
}

func mustJoin(t *testing.T, p *Prostitute) {
	t.Helper()
	if err := p.Join(1, "Aya", "hello", "profile", "message", figure()); err != nil {
		t.Fatalf("Join: %v", err)
	}
}
