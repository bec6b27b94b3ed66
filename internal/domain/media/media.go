// Package media implements the Media aggregate: an immutable binary
// blob (image or video) identified by its sniffed content type.
package media

import (
	"bytes"
	"net/http"

	"github.com/kuraya-dely/dely/internal/domain/core"
	"github.com/kuraya-dely/dely/internal/domain/kernel"
	"github.com/kuraya-dely/dely/internal/domainerr"
)

// Recognized content types. WebP is special-cased because the stdlib
// sniffer (net/http.DetectContentType) only recognizes it from a full
// RIFF container, which every real WebP file has, so a lightweight
// magic-byte check is sufficient and avoids a dependency for one
// concern the stdlib almost already covers.
const (
	JPEG = "image/jpeg"
	PNG  = "image/png"
	GIF  = "image/gif"
	WebP = "image/webp"
	MP4  = "video/mp4"
)

// SniffMime detects the media type of bytes and rejects anything
// outside the recognized set.
func SniffMime(data []byte) (core.Mime, error) {
	if len(data) == 0 {
		return core.Mime{}, domainerr.New(domainerr.DataIsEmpty, "media bytes are empty")
	}

	detected := http.DetectContentType(data)
	switch detected {
	case JPEG, PNG, GIF:
		return core.ParseMime(detected)
	}
	if isWebP(data) {
		return core.ParseMime(WebP)
	}
	if isMP4(data) {
		return core.ParseMime(MP4)
	}
	return core.Mime{}, domainerr.Newf(domainerr.UnsupportedFormat, "unrecognized media format (sniffed %q)", detected)
}

func isWebP(data []byte) bool {
	return len(data) >= 12 &&
		bytes.Equal(data[0:4], []byte("RIFF")) &&
		bytes.Equal(data[8:12], []byte("WEBP"))
}

func isMP4(data []byte) bool {
	return len(data) >= 12 && bytes.Equal(data[4:8], []byte("ftyp"))
}

// Media is the aggregate root.
type Media struct {
	kernel.Queue

	id      core.MediaID
	exists  bool
	deleted bool
	mime    core.Mime
	bytes   []byte
}

// New returns a zero-value Media ready for replay or Create.
func New() *Media { return &Media{} }

func (m *Media) ID() core.ID          { return core.ID(m.id) }
func (m *Media) TypedID() core.MediaID { return m.id }
func (m *Media) Mime() core.Mime      { return m.mime }
func (m *Media) Bytes() []byte        { return m.bytes }
func (m *Media) Deleted() bool        { return m.deleted }

func (m *Media) checkID(id core.MediaID) error {
	if m.exists && id != m.id {
		return domainerr.New(domainerr.MismatchedId, "event id does not match aggregate id")
	}
	return nil
}

// Validate checks a candidate event against current state.
func (m *Media) Validate(event kernel.Event) error {
	switch ev := event.(type) {
	case Created:
		if m.exists {
			return domainerr.New(domainerr.MismatchedId, "aggregate already created")
		}
		if len(ev.Bytes) == 0 {
			return domainerr.New(domainerr.DataIsEmpty, "media bytes are empty")
		}
		return nil
	case Deleted:
		return m.checkID(ev.ID)
	default:
		return domainerr.Newf(domainerr.MismatchedId, "unknown event type %T", event)
	}
}

// Apply mutates state for event. Total; does not re-validate.
func (m *Media) Apply(event kernel.Event) {
	switch ev := event.(type) {
	case Created:
		m.id = ev.ID
		m.exists = true
		m.mime = ev.Mime
		m.bytes = ev.Bytes
	case Deleted:
		m.deleted = true
	}
	m.Queue.Push(event)
}

func (m *Media) command(event kernel.Event) error {
	if err := m.Validate(event); err != nil {
		return err
	}
	m.Apply(event)
	return nil
}

// Create sniffs the content type of data and establishes a new Media.
func (m *Media) Create(id core.MediaID, data []byte) error {
	mt, err := SniffMime(data)
	if err != nil {
		return err
	}
	return m.command(Created{ID: id, Mime: mt, Bytes: data})
}

// Delete tombstones the media.
func (m *Media) Delete() error {
	return m.command(Deleted{ID: m.id})
}

// Replay feeds historical events through Apply then clears the queue.
func Replay(events []kernel.Event) *Media {
	m := New()
	for _, ev := range events {
		m.Apply(ev)
	}
	m.Clear()
	return m
}
