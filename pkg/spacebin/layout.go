package spacebin

import (
	"fmt"
	"strings"
)

// OffsetBase says where descriptor offsets are measured from.
type OffsetBase uint8

const (
	// BaseAbsolute measures offsets from the start of the file.
	BaseAbsolute OffsetBase = iota
	// BaseDirectory measures offsets from the first byte after the directory.
	BaseDirectory
)

func (b OffsetBase) String() string {
	switch b {
	case BaseAbsolute:
		return "absolute"
	case BaseDirectory:
		return "directory"
	default:
		return fmt.Sprintf("base(%d)", uint8(b))
	}
}

// ParseOffsetBase accepts the names produced by OffsetBase.String.
func ParseOffsetBase(s string) (OffsetBase, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "absolute", "abs", "file":
		return BaseAbsolute, nil
	case "directory", "dir", "relative":
		return BaseDirectory, nil
	default:
		return 0, fmt.Errorf("%w: unknown offset base %q", ErrInvalidLayout, s)
	}
}

// Layout describes the on-disk shape of a directory. Known files disagree
// on stride and on the offset base, so neither is hard-coded.
type Layout struct {
	Entries int
	Stride  int
	Base    OffsetBase
}

// DefaultLayout matches the newest revision seen: 29 wide records with
// absolute offsets.
var DefaultLayout = Layout{
	Entries: DirectoryEntries,
	Stride:  StrideWide,
	Base:    BaseAbsolute,
}

// CandidateLayouts lists every revision DetectLayout considers.
func CandidateLayouts() []Layout {
	return []Layout{
		{Entries: DirectoryEntries, Stride: StrideWide, Base: BaseAbsolute},
		{Entries: DirectoryEntries, Stride: StrideCompact, Base: BaseAbsolute},
		{Entries: DirectoryEntries, Stride: StrideWide, Base: BaseDirectory},
		{Entries: DirectoryEntries, Stride: StrideCompact, Base: BaseDirectory},
	}
}

func (l Layout) Validate() error {
	if l.Entries < 1 {
		return fmt.Errorf("%w: %d entries", ErrInvalidLayout, l.Entries)
	}
	if l.Stride < recordFields {
		return fmt.Errorf("%w: stride %d is below the %d-byte record", ErrInvalidLayout, l.Stride, recordFields)
	}
	if l.Base != BaseAbsolute && l.Base != BaseDirectory {
		return fmt.Errorf("%w: %s", ErrInvalidLayout, l.Base)
	}
	return nil
}

// Size is the number of bytes the directory occupies.
func (l Layout) Size() int {
	return l.Entries * l.Stride
}

func (l Layout) String() string {
	return fmt.Sprintf("%dx%d/%s", l.Entries, l.Stride, l.Base)
}
