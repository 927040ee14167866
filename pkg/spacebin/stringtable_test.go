package spacebin

import (
	"bytes"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeStringTableHelloWorld(t *testing.T) {
	t.Parallel()

	buf := make([]byte, 100, 164)
	buf = append(buf, stringRecord(0x00, "Hello")...)
	buf = append(buf, stringRecord(0x00, "World")...)

	entries := make([]Descriptor, DirectoryEntries)
	entries[0] = Descriptor{Tag: TagStaticGeometry, Offset: 100, Length: 64}
	dir, err := NewDirectory(DefaultLayout, entries)
	require.NoError(t, err)

	table, err := DecodeStringTable(dir, buf)
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, []string{padded("Hello"), padded("World")}, table.Strings)

	s, ok := table.Trimmed(1)
	require.True(t, ok)
	assert.Equal(t, "World", s)
}

func TestParseStringTableRecordCounts(t *testing.T) {
	t.Parallel()

	for k := range 4 {
		var region []byte
		for i := range k {
			region = append(region, stringRecord(byte(i+1), string(rune('a'+i))+"-name")...)
		}

		for r := range StringRecordSize {
			tail := bytes.Repeat([]byte{0x7f}, r)
			table := ParseStringTable(append(bytes.Clone(region), tail...))

			require.Equal(t, k, table.Len(), "k=%d r=%d", k, r)
			for i, s := range table.All() {
				rec := region[i*StringRecordSize : (i+1)*StringRecordSize]
				assert.Equal(t, StringLength, utf8.RuneCountInString(s))
				assert.Equal(t, string(rec[1:]), s)
				assert.Equal(t, rec[0], table.Markers[i])
			}
		}
	}
}

func TestParseStringTableHighBytes(t *testing.T) {
	t.Parallel()

	rec := stringRecord(0xff, "")
	for i := 1; i < StringRecordSize; i++ {
		rec[i] = byte(0x80 + i)
	}
	table := ParseStringTable(rec)
	require.Equal(t, 1, table.Len())

	runes := []rune(table.Strings[0])
	require.Len(t, runes, StringLength)
	for i, r := range runes {
		assert.Equal(t, rune(0x80+i+1), r)
	}
}

func TestDecodeStringTableMissing(t *testing.T) {
	t.Parallel()

	data, _ := buildArchive(DefaultLayout, fixtureSection{tag: "CENT", data: []byte{1, 2, 3}})
	dir, err := ParseDirectory(NewCursor(data), DefaultLayout)
	require.NoError(t, err)

	// A nil buffer proves the lookup never reads section bytes.
	_, err = DecodeStringTable(dir, nil)
	require.ErrorIs(t, err, ErrSectionMissing)
	require.NotErrorIs(t, err, ErrSectionTruncated)
}

func TestDecodeStringTableTruncated(t *testing.T) {
	t.Parallel()

	cases := map[string]Descriptor{
		"past end":        {Tag: TagStaticGeometry, Offset: 100, Length: 65},
		"offset past end": {Tag: TagStaticGeometry, Offset: 1000, Length: 0},
		"negative offset": {Tag: TagStaticGeometry, Offset: -1, Length: 32},
		"negative length": {Tag: TagStaticGeometry, Offset: 100, Length: -32},
		"int32 overflow":  {Tag: TagStaticGeometry, Offset: 0x7fffffff, Length: 0x7fffffff},
	}
	buf := make([]byte, 164)
	for name, desc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			entries := make([]Descriptor, DirectoryEntries)
			entries[3] = desc
			dir, err := NewDirectory(DefaultLayout, entries)
			require.NoError(t, err)

			_, err = DecodeStringTable(dir, buf)
			require.ErrorIs(t, err, ErrSectionTruncated)
		})
	}
}

func TestDecodeStringTableRelativeOffsets(t *testing.T) {
	t.Parallel()

	l := Layout{Entries: DirectoryEntries, Stride: StrideCompact, Base: BaseDirectory}
	payload := append(stringRecord(1, "space/meshes/tree.model"), 0xee, 0xee)
	data, entries := buildArchive(l,
		fixtureSection{tag: "BWTB", data: []byte("table")},
		fixtureSection{tag: "BWSG", data: payload},
	)
	require.Equal(t, int32(5), entries[1].Offset)

	a, err := Parse(data, l)
	require.NoError(t, err)

	v, err := a.Decode(TagStaticGeometry)
	require.NoError(t, err)
	table, ok := v.(*StringTable)
	require.True(t, ok)
	s, _ := table.Trimmed(0)
	assert.Equal(t, "space/meshes/tree.model", s)
}

func TestStringTableGetBounds(t *testing.T) {
	t.Parallel()

	table := ParseStringTable(stringRecord(0, "x"))
	_, ok := table.Get(-1)
	assert.False(t, ok)
	_, ok = table.Get(1)
	assert.False(t, ok)
	_, ok = table.Trimmed(1)
	assert.False(t, ok)

	empty := ParseStringTable(nil)
	assert.Equal(t, 0, empty.Len())
}
