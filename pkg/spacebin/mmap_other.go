//go:build !unix

package spacebin

import (
	"errors"
	"os"
)

var errNoMmap = errors.New("mmap not supported on this platform")

func mmapFile(*os.File, int) ([]byte, error) {
	return nil, errNoMmap
}

func munmap([]byte) error {
	return nil
}
