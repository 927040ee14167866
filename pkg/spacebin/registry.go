package spacebin

import (
	"bytes"
	"context"
	"fmt"
	"runtime"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Decoder turns the bytes of one section into a structured value.
// Implementations find their own section with Section(dir, buf, d.Tag()).
type Decoder interface {
	Tag() Tag
	Decode(dir *Directory, buf []byte) (any, error)
}

type funcDecoder struct {
	tag Tag
	fn  func(*Directory, []byte) (any, error)
}

func (d funcDecoder) Tag() Tag { return d.tag }

func (d funcDecoder) Decode(dir *Directory, buf []byte) (any, error) {
	return d.fn(dir, buf)
}

// DecoderFunc wraps a plain function as a Decoder for tag.
func DecoderFunc(tag Tag, fn func(dir *Directory, buf []byte) (any, error)) Decoder {
	return funcDecoder{tag: tag, fn: fn}
}

// Decoded is one section produced by DecodeAll.
type Decoded struct {
	Index      int
	Descriptor Descriptor
	Value      any
}

// Registry maps tags to decoders. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	decoders map[Tag]Decoder
}

func NewRegistry(decoders ...Decoder) (*Registry, error) {
	r := &Registry{decoders: make(map[Tag]Decoder, len(decoders))}
	for _, d := range decoders {
		if err := r.Register(d); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds d. A tag can be registered only once.
func (r *Registry) Register(d Decoder) error {
	tag := d.Tag()
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.decoders[tag]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateDecoder, tag)
	}
	r.decoders[tag] = d
	return nil
}

func (r *Registry) Lookup(tag Tag) (Decoder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.decoders[tag]
	return d, ok
}

// Tags returns the registered tags in byte order.
func (r *Registry) Tags() []Tag {
	r.mu.RLock()
	tags := make([]Tag, 0, len(r.decoders))
	for t := range r.decoders {
		tags = append(tags, t)
	}
	r.mu.RUnlock()
	slices.SortFunc(tags, func(a, b Tag) int { return bytes.Compare(a[:], b[:]) })
	return tags
}

// Decode runs the decoder registered for tag.
func (r *Registry) Decode(dir *Directory, buf []byte, tag Tag) (any, error) {
	d, ok := r.Lookup(tag)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoDecoder, tag)
	}
	return d.Decode(dir, buf)
}

type decodeJob struct {
	index int
	desc  Descriptor
	dec   Decoder
}

// DecodeAll decodes every section that has a registered decoder. Sections
// are decoded concurrently; results come back in directory order and the
// first failure aborts the rest. Duplicate tags are decoded once.
func (r *Registry) DecodeAll(ctx context.Context, dir *Directory, buf []byte) ([]Decoded, error) {
	var jobs []decodeJob
	seen := make(map[Tag]bool)
	for i, desc := range dir.All() {
		if seen[desc.Tag] {
			continue
		}
		if dec, ok := r.Lookup(desc.Tag); ok {
			seen[desc.Tag] = true
			jobs = append(jobs, decodeJob{index: i, desc: desc, dec: dec})
		}
	}
	return r.run(ctx, dir, buf, jobs)
}

// DecodeTags is DecodeAll restricted to tags. Every tag must be present in
// dir and have a decoder; results come back in directory order.
func (r *Registry) DecodeTags(ctx context.Context, dir *Directory, buf []byte, tags ...Tag) ([]Decoded, error) {
	want := make(map[Tag]bool, len(tags))
	for _, tag := range tags {
		if _, ok := dir.Get(tag); !ok {
			return nil, fmt.Errorf("%w: %s", ErrSectionMissing, tag)
		}
		if _, ok := r.Lookup(tag); !ok {
			return nil, fmt.Errorf("%w: %s", ErrNoDecoder, tag)
		}
		want[tag] = true
	}

	var jobs []decodeJob
	for i, desc := range dir.All() {
		if !want[desc.Tag] {
			continue
		}
		delete(want, desc.Tag)
		dec, _ := r.Lookup(desc.Tag)
		jobs = append(jobs, decodeJob{index: i, desc: desc, dec: dec})
	}
	return r.run(ctx, dir, buf, jobs)
}

func (r *Registry) run(ctx context.Context, dir *Directory, buf []byte, jobs []decodeJob) ([]Decoded, error) {
	out := make([]Decoded, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			v, err := j.dec.Decode(dir, buf)
			if err != nil {
				return fmt.Errorf("decode %s: %w", j.desc.Tag, err)
			}
			out[i] = Decoded{Index: j.index, Descriptor: j.desc, Value: v}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

var defaultRegistry = mustRegistry(StringTableDecoder{})

func mustRegistry(decoders ...Decoder) *Registry {
	r, err := NewRegistry(decoders...)
	if err != nil {
		panic(err)
	}
	return r
}

// Register adds d to the default registry.
func Register(d Decoder) error {
	return defaultRegistry.Register(d)
}

// Decoders returns the default registry.
func Decoders() *Registry {
	return defaultRegistry
}

// Decode runs the default registry's decoder for tag.
func Decode(dir *Directory, buf []byte, tag Tag) (any, error) {
	return defaultRegistry.Decode(dir, buf, tag)
}

// DecodeAll runs every decoder in the default registry.
func DecodeAll(ctx context.Context, dir *Directory, buf []byte) ([]Decoded, error) {
	return defaultRegistry.DecodeAll(ctx, dir, buf)
}
