package spacebin

import "fmt"

// Section locates tag in the directory and returns its bytes from buf.
// The returned slice aliases buf. buf is not touched when the tag is absent.
func Section(dir *Directory, buf []byte, tag Tag) ([]byte, Descriptor, error) {
	desc, ok := dir.Get(tag)
	if !ok {
		return nil, Descriptor{}, fmt.Errorf("%w: %s", ErrSectionMissing, tag)
	}
	data, err := sectionData(dir, buf, desc)
	if err != nil {
		return nil, desc, err
	}
	return data, desc, nil
}

func sectionData(dir *Directory, buf []byte, desc Descriptor) ([]byte, error) {
	if !desc.Valid() {
		return nil, fmt.Errorf("%w: %s has offset=%d length=%d", ErrSectionTruncated, desc.Tag, desc.Offset, desc.Length)
	}
	start, end := dir.Bounds(desc)

	c := NewCursor(buf)
	if err := c.SeekTo(start); err != nil {
		return nil, fmt.Errorf("%w: %s [%d,%d) in %d bytes: %w", ErrSectionTruncated, desc.Tag, start, end, len(buf), err)
	}
	data, err := c.ReadBytes(int(desc.Length))
	if err != nil {
		return nil, fmt.Errorf("%w: %s [%d,%d) in %d bytes: %w", ErrSectionTruncated, desc.Tag, start, end, len(buf), err)
	}
	return data, nil
}
