package spacebin

import "errors"

var (
	ErrUnexpectedEnd      = errors.New("spacebin: unexpected end of data")
	ErrOutOfRange         = errors.New("spacebin: position out of range")
	ErrTruncatedDirectory = errors.New("spacebin: truncated section directory")
	ErrSectionMissing     = errors.New("spacebin: section missing")
	ErrSectionTruncated   = errors.New("spacebin: section truncated")
	ErrInvalidLayout      = errors.New("spacebin: invalid directory layout")
	ErrDuplicateDecoder   = errors.New("spacebin: decoder already registered")
	ErrNoDecoder          = errors.New("spacebin: no decoder registered")
)
