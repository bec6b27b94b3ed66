package media

import (
	"errors"
	"testing"

	"github.com/kuraya-dely/dely/internal/domain/core"
	"github.com/kuraya-dely/dely/internal/domainerr"
)

var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

func TestCreateSniffsMime(t *testing.T) {
	m := New()
	if err := m.Create(1, pngHeader); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got := m.Mime().String(); got != PNG {
		t.Errorf("Mime = %q, want %q", got, PNG)
	}
}

func TestCreateRejectsEmpty(t *testing.T) {
	m := New()
	err := m.Create(1, nil)
	var derr *domainerr.Error
	if !errors.As(err, &derr) || derr.Kind != domainerr.DataIsEmpty {
		t.Fatalf("expected DataIsEmpty, got %v", err)
	}
}

func TestCreateRejectsUnrecognized(t *testing.T) {
	m := New()
	err := m.Create(1, []byte("not a media file"))
	var derr *domainerr.Error
	if !errors.As(err, &derr) || derr.Kind != domainerr.UnsupportedFormat {
		t.Fatalf("expected UnsupportedFormat, got %v", err)
	}
}

func TestCodecRoundTrip(t *testing.T) {
	m := New()
	if err := m.Create(42, pngHeader); err != nil {
		t.Fatalf("Create: %v", err)
	}
	ev := m.Events()[0]

	c := Codec{}
	eventType, body, meta, err := c.Encode(ev)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := c.Decode(eventType, body, meta, core.ID(42))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	created, ok := decoded.(Created)
	if !ok {
		t.Fatalf("decoded type = %T, want Created", decoded)
	}
	if created.Mime.String() != PNG {
		t.Errorf("round-tripped mime = %q, want %q", created.Mime.String(), PNG)
	}
	if string(created.Bytes) != string(pngHeader) {
		t.Errorf("round-tripped bytes mismatch")
	}
}
