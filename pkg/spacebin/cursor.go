package spacebin

import (
	"encoding/binary"
	"fmt"
)

// Cursor reads fixed-width little-endian values from an immutable buffer.
// A failed operation leaves the position unchanged.
type Cursor struct {
	buf []byte
	pos int
}

func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Pos returns the current absolute position.
func (c *Cursor) Pos() int {
	return c.pos
}

// Len returns the size of the underlying buffer.
func (c *Cursor) Len() int {
	return len(c.buf)
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.pos
}

// ReadBytes returns the next n bytes without copying.
// The returned slice aliases the cursor's buffer.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative read length %d", ErrOutOfRange, n)
	}
	if n > c.Remaining() {
		return nil, fmt.Errorf("%w: need %d bytes at %d, have %d", ErrUnexpectedEnd, n, c.pos, c.Remaining())
	}
	b := c.buf[c.pos : c.pos+n : c.pos+n]
	c.pos += n
	return b, nil
}

func (c *Cursor) ReadTag() (Tag, error) {
	var t Tag
	b, err := c.ReadBytes(len(t))
	if err != nil {
		return t, err
	}
	copy(t[:], b)
	return t, nil
}

func (c *Cursor) ReadU32() (uint32, error) {
	b, err := c.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *Cursor) ReadI32() (int32, error) {
	v, err := c.ReadU32()
	return int32(v), err
}

// SeekTo moves to an absolute offset. Seeking to the end of the buffer is
// allowed; any read from there fails.
func (c *Cursor) SeekTo(offset int64) error {
	if offset < 0 || offset > int64(len(c.buf)) {
		return fmt.Errorf("%w: seek to %d in %d bytes", ErrOutOfRange, offset, len(c.buf))
	}
	c.pos = int(offset)
	return nil
}

// Skip advances past n bytes.
func (c *Cursor) Skip(n int) error {
	if n < 0 || n > c.Remaining() {
		return fmt.Errorf("%w: skip %d at %d in %d bytes", ErrOutOfRange, n, c.pos, len(c.buf))
	}
	c.pos += n
	return nil
}
