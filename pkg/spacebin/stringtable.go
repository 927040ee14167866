package spacebin

import (
	"iter"
	"strings"
)

// TagStaticGeometry is the static geometry section; its payload begins with
// a packed table of resource names.
var TagStaticGeometry = Tag{'B', 'W', 'S', 'G'}

const (
	// StringRecordSize is the size of one string-table record: a marker
	// byte followed by StringLength characters.
	StringRecordSize = 32
	StringLength     = StringRecordSize - 1
)

// StringTable is a decoded string table. Record i is Strings[i].
type StringTable struct {
	Strings []string
	// Markers holds the leading byte of each record.
	Markers []byte
}

// ParseStringTable reads len(region)/32 records. Each byte maps to one
// Latin-1 rune, so every string has exactly StringLength runes, including
// any NUL padding. Bytes past the last whole record are ignored.
func ParseStringTable(region []byte) *StringTable {
	n := len(region) / StringRecordSize
	t := &StringTable{
		Strings: make([]string, n),
		Markers: make([]byte, n),
	}
	for i := range n {
		rec := region[i*StringRecordSize : (i+1)*StringRecordSize]
		t.Markers[i] = rec[0]
		t.Strings[i] = latin1String(rec[1:])
	}
	return t
}

// DecodeStringTable decodes the BWSG string table from an archive buffer.
func DecodeStringTable(dir *Directory, buf []byte) (*StringTable, error) {
	region, _, err := Section(dir, buf, TagStaticGeometry)
	if err != nil {
		return nil, err
	}
	return ParseStringTable(region), nil
}

func (t *StringTable) Len() int {
	return len(t.Strings)
}

func (t *StringTable) Get(i int) (string, bool) {
	if i < 0 || i >= len(t.Strings) {
		return "", false
	}
	return t.Strings[i], true
}

// Trimmed returns record i without its trailing NUL padding.
func (t *StringTable) Trimmed(i int) (string, bool) {
	s, ok := t.Get(i)
	if !ok {
		return "", false
	}
	return strings.TrimRight(s, "\x00"), true
}

// All yields each record index and its string.
func (t *StringTable) All() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for i, s := range t.Strings {
			if !yield(i, s) {
				return
			}
		}
	}
}

// StringTableDecoder registers the BWSG string table.
type StringTableDecoder struct{}

func (StringTableDecoder) Tag() Tag { return TagStaticGeometry }

func (StringTableDecoder) Decode(dir *Directory, buf []byte) (any, error) {
	t, err := DecodeStringTable(dir, buf)
	if err != nil {
		return nil, err
	}
	return t, nil
}
