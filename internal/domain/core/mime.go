package core

import (
	"mime"
	"strings"
)

// Mime is a parseable media type. The zero value's String form is the
// wildcard "*/*".
type Mime struct {
	typ    string
	subtyp string
}

// DefaultMime is the wildcard media type used when no more specific
// type is known.
var DefaultMime = Mime{typ: "*", subtyp: "*"}

// ParseMime parses a media type string such as "image/jpeg". No pack
// example supersedes the standard library's MIME parser, so this is a
// deliberate stdlib-only concern.
func ParseMime(s string) (Mime, error) {
	if s == "" {
		return DefaultMime, nil
	}
	typ, _, err := mime.ParseMediaType(s)
	if err != nil {
		return Mime{}, err
	}
	parts := strings.SplitN(typ, "/", 2)
	if len(parts) != 2 {
		return Mime{}, &mimeFormatError{typ}
	}
	return Mime{typ: parts[0], subtyp: parts[1]}, nil
}

type mimeFormatError struct{ value string }

func (e *mimeFormatError) Error() string {
	return "invalid media type: " + e.value
}

// String renders the media type as "type/subtype".
func (m Mime) String() string {
	if m.typ == "" {
		return DefaultMime.String()
	}
	return m.typ + "/" + m.subtyp
}

// MarshalJSON encodes the mime type as a bare string.
func (m Mime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON decodes a bare media-type string.
func (m *Mime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseMime(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
