package spacebin

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Archive is a loaded space file with its parsed directory.
type Archive struct {
	Data      []byte
	Directory *Directory
	mmapped   bool
}

// Open maps a space file read-only and parses its directory.
// If mmap is unavailable, it falls back to reading the whole file.
// The returned archive must be closed to release any mapping.
func Open(path string, layout Layout) (*Archive, error) {
	data, mmapped, err := load(path)
	if err != nil {
		return nil, err
	}
	a, err := parse(data, layout, mmapped)
	if err != nil {
		release(data, mmapped)
		return nil, err
	}
	return a, nil
}

// OpenDetected is Open with the layout chosen by DetectLayout.
func OpenDetected(path string) (*Archive, Detection, error) {
	data, mmapped, err := load(path)
	if err != nil {
		return nil, Detection{}, err
	}
	det, err := DetectLayout(data)
	if err != nil {
		release(data, mmapped)
		return nil, det, err
	}
	a, err := parse(data, det.Layout, mmapped)
	if err != nil {
		release(data, mmapped)
		return nil, det, err
	}
	return a, det, nil
}

func load(path string) ([]byte, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false, err
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, false, err
	}
	size, err := checkSize(stat.Size())
	if err != nil {
		return nil, false, err
	}

	if size > 0 {
		if data, err := mmapFile(f, size); err == nil {
			return data, true, nil
		}
	}
	data, err := readAllAt(f, size)
	return data, false, err
}

func release(data []byte, mmapped bool) {
	if mmapped {
		_ = munmap(data)
	}
}

// OpenReaderAt loads an archive from a random-access reader without mmap.
func OpenReaderAt(r io.ReaderAt, size int64, layout Layout) (*Archive, error) {
	n, err := checkSize(size)
	if err != nil {
		return nil, err
	}
	data, err := readAllAt(r, n)
	if err != nil {
		return nil, err
	}
	return Parse(data, layout)
}

// Parse wraps an in-memory archive. data is retained and must not be
// modified afterwards.
func Parse(data []byte, layout Layout) (*Archive, error) {
	return parse(data, layout, false)
}

func parse(data []byte, layout Layout, mmapped bool) (*Archive, error) {
	dir, err := ParseDirectory(NewCursor(data), layout)
	if err != nil {
		return nil, err
	}
	return &Archive{Data: data, Directory: dir, mmapped: mmapped}, nil
}

func checkSize(size int64) (int, error) {
	if size < 0 || size > int64(int(^uint(0)>>1)) {
		// cannot index this file safely as []byte on this architecture.
		return 0, fmt.Errorf("%w: file size %d", ErrOutOfRange, size)
	}
	return int(size), nil
}

func readAllAt(r io.ReaderAt, size int) ([]byte, error) {
	if size == 0 {
		return []byte{}, nil
	}
	out := make([]byte, size)
	var off int64
	for off < int64(size) {
		n, err := r.ReadAt(out[off:], off)
		off += int64(n)
		if err == nil {
			continue
		}
		if errors.Is(err, io.EOF) && off == int64(size) {
			break
		}
		return nil, err
	}
	return out, nil
}

// Section returns the bytes of the first section tagged tag.
// The slice is only valid until Close.
func (a *Archive) Section(tag Tag) ([]byte, Descriptor, error) {
	return Section(a.Directory, a.Data, tag)
}

// Decode runs the default registry's decoder for tag.
func (a *Archive) Decode(tag Tag) (any, error) {
	return Decode(a.Directory, a.Data, tag)
}

// Close releases the mapping, if any.
func (a *Archive) Close() error {
	if a == nil || a.Data == nil {
		return nil
	}
	var err error
	if a.mmapped {
		err = munmap(a.Data)
	}
	a.Data = nil
	a.Directory = nil
	a.mmapped = false
	return err
}
