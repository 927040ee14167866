// Package report turns a parsed archive into something a person can read,
// either as aligned text or as JSON.
package report

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/samcharles93/spacebin/internal/catalog"
	"github.com/samcharles93/spacebin/pkg/spacebin"
)

// Order selects how sections are listed.
type Order string

const (
	OrderDisk   Order = "disk"
	OrderOffset Order = "offset"
)

func ParseOrder(s string) (Order, error) {
	switch Order(strings.ToLower(s)) {
	case OrderDisk, "":
		return OrderDisk, nil
	case OrderOffset:
		return OrderOffset, nil
	default:
		return "", fmt.Errorf("unknown sort order %q (want disk or offset)", s)
	}
}

type Options struct {
	Order Order
	// Trim drops trailing NUL padding from decoded strings.
	Trim bool
}

// Report describes one archive. TotalLength sums the non-negative section
// lengths; RawTotalLength adds every length as stored.
type Report struct {
	Path           string        `json:"path"`
	Size           int           `json:"size"`
	Layout         LayoutInfo    `json:"layout"`
	Detection      *Detection    `json:"detection,omitempty"`
	Sections       []Section     `json:"sections"`
	TotalLength    int64         `json:"total_length"`
	RawTotalLength int64         `json:"raw_total_length"`
	Decoded        []Decoded     `json:"decoded,omitempty"`
	Findings       []FindingInfo `json:"findings,omitempty"`

	opts Options
	cat  *catalog.Catalog
}

type LayoutInfo struct {
	Entries int    `json:"entries"`
	Stride  int    `json:"stride"`
	Base    string `json:"offset_base"`
}

type Detection struct {
	Ambiguous bool             `json:"ambiguous"`
	Score     int              `json:"score"`
	Scores    []CandidateScore `json:"candidates"`
}

type CandidateScore struct {
	Layout string `json:"layout"`
	Score  int    `json:"score"`
	Error  string `json:"error,omitempty"`
}

type Section struct {
	Index       int    `json:"index"`
	Tag         string `json:"tag"`
	Description string `json:"description,omitempty"`
	Known       bool   `json:"known"`
	Offset      int32  `json:"offset"`
	Length      int32  `json:"length"`
	Start       int64  `json:"start"`
	End         int64  `json:"end"`
	Decoder     bool   `json:"decoder"`

	label string
}

type Decoded struct {
	Index       int           `json:"index"`
	Tag         string        `json:"tag"`
	Description string        `json:"description,omitempty"`
	Strings     []StringEntry `json:"strings,omitempty"`
	Value       any           `json:"value,omitempty"`

	label string
}

type StringEntry struct {
	Index  int    `json:"index"`
	Marker byte   `json:"marker"`
	Text   string `json:"text"`
}

type FindingInfo struct {
	Index    int    `json:"index"`
	Tag      string `json:"tag"`
	Severity string `json:"severity"`
	Kind     string `json:"kind"`
	Detail   string `json:"detail"`

	label string
}

// New describes the directory of a. reg decides which sections are marked
// as decodable; it may be nil.
func New(path string, a *spacebin.Archive, cat *catalog.Catalog, reg *spacebin.Registry, opts Options) *Report {
	if cat == nil {
		cat = catalog.Default()
	}
	dir := a.Directory
	l := dir.Layout()
	r := &Report{
		Path: path,
		Size: len(a.Data),
		Layout: LayoutInfo{
			Entries: l.Entries,
			Stride:  l.Stride,
			Base:    l.Base.String(),
		},
		opts: opts,
		cat:  cat,
	}

	for i, d := range dir.All() {
		start, end := dir.Bounds(d)
		desc, known := cat.Describe(d.Tag)
		s := Section{
			Index:       i,
			Tag:         d.Tag.String(),
			Description: desc,
			Known:       known,
			Offset:      d.Offset,
			Length:      d.Length,
			Start:       start,
			End:         end,
			label:       d.Tag.Display(),
		}
		if reg != nil {
			_, s.Decoder = reg.Lookup(d.Tag)
		}
		r.RawTotalLength += int64(d.Length)
		if d.Length > 0 {
			r.TotalLength += int64(d.Length)
		}
		r.Sections = append(r.Sections, s)
	}

	if opts.Order == OrderOffset {
		slices.SortStableFunc(r.Sections, func(a, b Section) int {
			return cmp.Compare(a.Start, b.Start)
		})
	}
	return r
}

// SetDetection records how the layout was chosen.
func (r *Report) SetDetection(det spacebin.Detection) {
	d := &Detection{Ambiguous: det.Ambiguous, Score: det.Score}
	for _, s := range det.Scores {
		cs := CandidateScore{Layout: s.Layout.String(), Score: s.Score}
		if s.Err != nil {
			cs.Error = s.Err.Error()
		}
		d.Scores = append(d.Scores, cs)
	}
	r.Detection = d
}

// AddDecoded appends decoded sections. String tables are expanded into
// entries; any other value is reported as is.
func (r *Report) AddDecoded(ds ...spacebin.Decoded) {
	for _, d := range ds {
		desc, _ := r.cat.Describe(d.Descriptor.Tag)
		out := Decoded{
			Index:       d.Index,
			Tag:         d.Descriptor.Tag.String(),
			Description: desc,
			label:       d.Descriptor.Tag.Display(),
		}
		switch v := d.Value.(type) {
		case *spacebin.StringTable:
			out.Strings = make([]StringEntry, 0, v.Len())
			for i, s := range v.All() {
				if r.opts.Trim {
					s, _ = v.Trimmed(i)
				}
				out.Strings = append(out.Strings, StringEntry{Index: i, Marker: v.Markers[i], Text: s})
			}
		default:
			out.Value = v
		}
		r.Decoded = append(r.Decoded, out)
	}
}

func (r *Report) AddFindings(fs ...spacebin.Finding) {
	for _, f := range fs {
		r.Findings = append(r.Findings, FindingInfo{
			Index:    f.Index,
			Tag:      f.Tag.String(),
			Severity: f.Severity.String(),
			Kind:     string(f.Kind),
			Detail:   f.Detail,
			label:    f.Tag.Display(),
		})
	}
}
