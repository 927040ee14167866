// Package spacebin reads BigWorld compiled space archives (space.bin).
//
// An archive starts with a fixed directory of section descriptors. Each
// descriptor carries a 4-byte tag and the offset and length of the section it
// names. Sections are decoded on demand by decoders registered per tag; the
// directory parser itself knows nothing about any particular tag.
package spacebin

// Format constants. They describe files already in the wild and must not
// change.
const (
	// DirectoryEntries is the number of descriptors in every directory.
	DirectoryEntries = 29

	// StrideCompact is the record size of the older directory revision:
	// tag, reserved, offset, reserved, length.
	StrideCompact = 20

	// StrideWide is the record size of the newer revision, which adds a
	// trailing reserved word.
	StrideWide = 24

	// recordFields is the number of bytes every record starts with,
	// independent of stride.
	recordFields = 20
)
