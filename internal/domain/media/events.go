package media

import "github.com/kuraya-dely/dely/internal/domain/core"

// Created establishes a Media stream. Its body is stored as binary, not
// JSON: the raw bytes are the event payload and the sniffed mime type
// travels in envelope metadata.
type Created struct {
	ID    core.MediaID
	Mime  core.Mime
	Bytes []byte
}

func (Created) EventType() string { return "MediaCreated" }

// Deleted is the tombstone event.
type Deleted struct {
	ID core.MediaID
}

func (Deleted) EventType() string { return "Deleted" }
