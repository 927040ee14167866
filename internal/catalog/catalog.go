// Package catalog holds human-readable names for known section tags.
// It is a presentation aid only; the decoder never consults it.
package catalog

import (
	_ "embed"
	"fmt"
	"iter"
	"slices"
	"sync"

	"github.com/elliotchance/orderedmap/v3"
	"gopkg.in/yaml.v3"

	"github.com/samcharles93/spacebin/pkg/spacebin"
)

//go:embed tags.yaml
var builtin []byte

type file struct {
	Tags []struct {
		Tag         string `yaml:"tag"`
		Description string `yaml:"description"`
	} `yaml:"tags"`
}

// Catalog maps tags to descriptions, keeping the order they were added in.
type Catalog struct {
	entries *orderedmap.OrderedMap[spacebin.Tag, string]
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := Parse(builtin)
	if err != nil {
		panic(fmt.Sprintf("catalog: builtin tags: %v", err))
	}
	return c
})

// Default returns the built-in catalog. Callers must not modify it; use With.
func Default() *Catalog {
	return defaultCatalog()
}

// Parse reads a catalog document. A tag listed twice keeps its first
// position and its last description.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	c := &Catalog{entries: orderedmap.NewOrderedMap[spacebin.Tag, string]()}
	for i, e := range f.Tags {
		tag, err := spacebin.ParseTag(e.Tag)
		if err != nil {
			return nil, fmt.Errorf("catalog: entry %d: %w", i, err)
		}
		c.entries.Set(tag, e.Description)
	}
	return c, nil
}

// With returns a copy of c extended with extra descriptions. Existing tags
// are overridden in place; new tags are appended in sorted order.
func (c *Catalog) With(extra map[string]string) (*Catalog, error) {
	out := &Catalog{entries: orderedmap.NewOrderedMap[spacebin.Tag, string]()}
	for tag, desc := range c.entries.AllFromFront() {
		out.entries.Set(tag, desc)
	}

	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		tag, err := spacebin.ParseTag(k)
		if err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
		out.entries.Set(tag, extra[k])
	}
	return out, nil
}

// Describe returns the description of tag. ok is false for unknown tags;
// a known tag may still have an empty description.
func (c *Catalog) Describe(tag spacebin.Tag) (desc string, ok bool) {
	return c.entries.Get(tag)
}

// Name renders tag with its description for display.
func (c *Catalog) Name(tag spacebin.Tag) string {
	desc, ok := c.Describe(tag)
	switch {
	case !ok:
		return tag.String() + " (unrecognised)"
	case desc == "":
		return tag.String() + " (unknown)"
	default:
		return tag.String() + " (" + desc + ")"
	}
}

func (c *Catalog) Len() int {
	return c.entries.Len()
}

// All yields tags in catalog order.
func (c *Catalog) All() iter.Seq2[spacebin.Tag, string] {
	return c.entries.AllFromFront()
}
