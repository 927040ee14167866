package spacebin

import (
	"fmt"
	"iter"
	"slices"
)

// Descriptor is one directory record. Offset and Length are stored exactly
// as read; negative values are kept so that they can be reported.
type Descriptor struct {
	Tag    Tag
	Offset int32
	Length int32
}

// Valid reports whether neither field is negative.
func (d Descriptor) Valid() bool {
	return d.Offset >= 0 && d.Length >= 0
}

// Directory is the parsed, read-only section directory.
type Directory struct {
	layout  Layout
	start   int
	entries []Descriptor
}

// ParseDirectory reads layout.Entries records starting at the cursor's
// current position. Offsets and lengths are not checked against the buffer
// here; that happens when a section is resolved.
func ParseDirectory(c *Cursor, layout Layout) (*Directory, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	d := &Directory{
		layout:  layout,
		start:   c.Pos(),
		entries: make([]Descriptor, 0, layout.Entries),
	}
	for i := range layout.Entries {
		at := c.Pos()
		desc, err := readRecord(c, layout.Stride)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d at byte %d: %w", ErrTruncatedDirectory, i, at, err)
		}
		d.entries = append(d.entries, desc)
	}
	return d, nil
}

// NewDirectory builds a directory from descriptors that were obtained some
// other way, such as a test fixture or a converted archive.
func NewDirectory(layout Layout, entries []Descriptor) (*Directory, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	if len(entries) != layout.Entries {
		return nil, fmt.Errorf("%w: %d descriptors for %d entries", ErrInvalidLayout, len(entries), layout.Entries)
	}
	return &Directory{layout: layout, entries: slices.Clone(entries)}, nil
}

func readRecord(c *Cursor, stride int) (Descriptor, error) {
	var d Descriptor
	var err error
	if d.Tag, err = c.ReadTag(); err != nil {
		return d, err
	}
	if err = c.Skip(4); err != nil {
		return d, err
	}
	if d.Offset, err = c.ReadI32(); err != nil {
		return d, err
	}
	if err = c.Skip(4); err != nil {
		return d, err
	}
	if d.Length, err = c.ReadI32(); err != nil {
		return d, err
	}
	if err = c.Skip(stride - recordFields); err != nil {
		return d, err
	}
	return d, nil
}

// Get returns the first descriptor with the given tag.
func (d *Directory) Get(tag Tag) (Descriptor, bool) {
	for _, e := range d.entries {
		if e.Tag == tag {
			return e, true
		}
	}
	return Descriptor{}, false
}

// Entries returns a copy of the descriptors in on-disk order.
func (d *Directory) Entries() []Descriptor {
	return slices.Clone(d.entries)
}

// All yields descriptors with their on-disk index.
func (d *Directory) All() iter.Seq2[int, Descriptor] {
	return func(yield func(int, Descriptor) bool) {
		for i, e := range d.entries {
			if !yield(i, e) {
				return
			}
		}
	}
}

func (d *Directory) Len() int {
	return len(d.entries)
}

func (d *Directory) Layout() Layout {
	return d.layout
}

// Start is the absolute position the directory was read from.
func (d *Directory) Start() int {
	return d.start
}

// Size is the number of bytes the directory occupies.
func (d *Directory) Size() int {
	return d.layout.Size()
}

// End is the absolute position just past the directory.
func (d *Directory) End() int64 {
	return int64(d.start) + int64(d.Size())
}

// Bounds returns the absolute half-open byte range a descriptor names.
// The range is not checked against any buffer.
func (d *Directory) Bounds(desc Descriptor) (start, end int64) {
	start = int64(desc.Offset)
	if d.layout.Base == BaseDirectory {
		start += d.End()
	}
	return start, start + int64(desc.Length)
}
