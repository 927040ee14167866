package spacebin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorReadsLittleEndian(t *testing.T) {
	t.Parallel()

	c := NewCursor([]byte{
		'B', 'W', 'S', 'G',
		0x78, 0x56, 0x34, 0x12,
		0xff, 0xff, 0xff, 0xff,
	})

	tag, err := c.ReadTag()
	require.NoError(t, err)
	assert.Equal(t, MustTag("BWSG"), tag)

	u, err := c.ReadU32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x12345678), u)

	i, err := c.ReadI32()
	require.NoError(t, err)
	assert.Equal(t, int32(-1), i)

	assert.Equal(t, 12, c.Pos())
	assert.Equal(t, 0, c.Remaining())
}

func TestCursorShortReads(t *testing.T) {
	t.Parallel()

	for n := range 4 {
		c := NewCursor(make([]byte, n))

		_, err := c.ReadTag()
		require.ErrorIs(t, err, ErrUnexpectedEnd)
		_, err = c.ReadU32()
		require.ErrorIs(t, err, ErrUnexpectedEnd)
		_, err = c.ReadI32()
		require.ErrorIs(t, err, ErrUnexpectedEnd)

		assert.Equal(t, 0, c.Pos(), "failed reads must not advance")
	}
}

func TestCursorSeekToAndSkip(t *testing.T) {
	t.Parallel()

	c := NewCursor(make([]byte, 8))

	require.NoError(t, c.SeekTo(8))
	assert.Equal(t, 8, c.Pos())
	_, err := c.ReadTag()
	require.ErrorIs(t, err, ErrUnexpectedEnd)

	require.ErrorIs(t, c.SeekTo(9), ErrOutOfRange)
	require.ErrorIs(t, c.SeekTo(-1), ErrOutOfRange)
	assert.Equal(t, 8, c.Pos())

	require.NoError(t, c.SeekTo(2))
	require.NoError(t, c.Skip(6))
	require.ErrorIs(t, c.Skip(1), ErrOutOfRange)
	require.ErrorIs(t, c.Skip(-1), ErrOutOfRange)
	assert.Equal(t, 8, c.Pos())
}

func TestCursorReadBytesAliases(t *testing.T) {
	t.Parallel()

	buf := []byte{1, 2, 3, 4, 5}
	c := NewCursor(buf)
	require.NoError(t, c.Skip(1))

	b, err := c.ReadBytes(3)
	require.NoError(t, err)
	assert.Equal(t, []byte{2, 3, 4}, b)
	assert.Equal(t, 3, cap(b), "sub-slice must not expose bytes past the read")

	_, err = c.ReadBytes(2)
	require.ErrorIs(t, err, ErrUnexpectedEnd)
	_, err = c.ReadBytes(-1)
	require.ErrorIs(t, err, ErrOutOfRange)
	assert.Equal(t, 4, c.Pos())
}

func TestTag(t *testing.T) {
	t.Parallel()

	tag, err := ParseTag("SpTr")
	require.NoError(t, err)
	assert.Equal(t, Tag{'S', 'p', 'T', 'r'}, tag)
	assert.Equal(t, "SpTr", tag.String())
	assert.True(t, tag.Printable())
	assert.False(t, tag.IsZero())

	_, err = ParseTag("BWS")
	require.Error(t, err)
	_, err = ParseTag("BWSGX")
	require.Error(t, err)

	raw := Tag{0x00, 0xe9, 'A', 0xff}
	assert.Equal(t, "\x00éAÿ", raw.String())
	assert.False(t, raw.Printable())
	assert.True(t, Tag{}.IsZero())

	assert.Equal(t, "SpTr", tag.Display())
	assert.Equal(t, `"\x00\u00e9A\u00ff"`, raw.Display())
	assert.Equal(t, `"\x00\x00\x00\x00"`, Tag{}.Display())
	assert.NotContains(t, Tag{0x1b, '[', '2', 'J'}.Display(), "\x1b", "escape bytes must not reach a terminal")
}
