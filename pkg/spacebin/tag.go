package spacebin

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Tag identifies a section. It is four raw bytes, not necessarily text.
type Tag [4]byte

// ParseTag converts a 4-byte string into a Tag.
func ParseTag(s string) (Tag, error) {
	var t Tag
	if len(s) != len(t) {
		return t, fmt.Errorf("tag %q must be exactly %d bytes", s, len(t))
	}
	copy(t[:], s)
	return t, nil
}

// MustTag is ParseTag for constants; it panics on a malformed tag.
func MustTag(s string) Tag {
	t, err := ParseTag(s)
	if err != nil {
		panic(err)
	}
	return t
}

// String renders each byte as its Latin-1 code point.
func (t Tag) String() string {
	return latin1String(t[:])
}

// Display is String for printable tags and an escaped, quoted form
// otherwise, so that control bytes never reach a terminal.
func (t Tag) Display() string {
	if t.Printable() {
		return t.String()
	}
	return strconv.QuoteToASCII(t.String())
}

// Printable reports whether all four bytes are printable ASCII.
func (t Tag) Printable() bool {
	for _, b := range t {
		if b < 0x20 || b > 0x7e {
			return false
		}
	}
	return true
}

// IsZero reports whether the tag is all zero bytes.
func (t Tag) IsZero() bool {
	return t == Tag{}
}

func latin1String(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, c := range b {
		sb.WriteRune(charmap.ISO8859_1.DecodeByte(c))
	}
	return sb.String()
}
