package spacebin

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

type Severity uint8

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", uint8(s))
	}
}

type FindingKind string

const (
	FindingNegative          FindingKind = "negative"
	FindingOutOfBounds       FindingKind = "out_of_bounds"
	FindingOverlapsDirectory FindingKind = "overlaps_directory"
	FindingOverlapsSection   FindingKind = "overlaps_section"
	FindingDuplicateTag      FindingKind = "duplicate_tag"
	FindingUnprintableTag    FindingKind = "unprintable_tag"
)

// Finding is one problem with a directory entry.
type Finding struct {
	Index    int
	Tag      Tag
	Severity Severity
	Kind     FindingKind
	Detail   string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: #%d %s %s: %s", f.Severity, f.Index, f.Tag.Display(), f.Kind, f.Detail)
}

// Check validates every descriptor against a file of size bytes. Entries
// with an all-zero tag are treated as unused slots and skipped.
func Check(dir *Directory, size int) []Finding {
	var out []Finding
	add := func(i int, d Descriptor, sev Severity, kind FindingKind, format string, args ...any) {
		out = append(out, Finding{
			Index:    i,
			Tag:      d.Tag,
			Severity: sev,
			Kind:     kind,
			Detail:   fmt.Sprintf(format, args...),
		})
	}

	type span struct {
		index      int
		start, end int64
	}
	var spans []span
	first := make(map[Tag]int)

	for i, d := range dir.All() {
		if d.Tag.IsZero() {
			continue
		}
		if !d.Tag.Printable() {
			add(i, d, SeverityWarning, FindingUnprintableTag, "tag bytes % x", d.Tag[:])
		}
		if j, ok := first[d.Tag]; ok {
			add(i, d, SeverityWarning, FindingDuplicateTag, "shadowed by entry #%d", j)
		} else {
			first[d.Tag] = i
		}

		if !d.Valid() {
			add(i, d, SeverityError, FindingNegative, "offset=%d length=%d", d.Offset, d.Length)
			continue
		}
		start, end := dir.Bounds(d)
		if end > int64(size) {
			add(i, d, SeverityError, FindingOutOfBounds, "[%d,%d) past end of %d-byte file", start, end, size)
			continue
		}
		if d.Length > 0 && rangesOverlap(start, end, int64(dir.Start()), dir.End()) {
			add(i, d, SeverityError, FindingOverlapsDirectory, "[%d,%d) overlaps directory [%d,%d)", start, end, dir.Start(), dir.End())
			continue
		}
		if d.Length > 0 {
			spans = append(spans, span{index: i, start: start, end: end})
		}
	}

	slices.SortFunc(spans, func(a, b span) int {
		return cmp.Or(cmp.Compare(a.start, b.start), cmp.Compare(a.index, b.index))
	})
	// reach is the span ending furthest so far; smaller spans nested in it
	// do not hide it from later ones.
	if len(spans) > 0 {
		reach := spans[0]
		for _, cur := range spans[1:] {
			if cur.start < reach.end {
				d := dir.entries[cur.index]
				add(cur.index, d, SeverityWarning, FindingOverlapsSection, "[%d,%d) overlaps entry #%d [%d,%d)", cur.start, cur.end, reach.index, reach.start, reach.end)
			}
			if cur.end > reach.end {
				reach = cur
			}
		}
	}
	return out
}

// HasErrors reports whether any finding is an error.
func HasErrors(findings []Finding) bool {
	return slices.ContainsFunc(findings, func(f Finding) bool { return f.Severity == SeverityError })
}

func rangesOverlap(a0, a1, b0, b1 int64) bool {
	// half-open ranges [a0,a1) and [b0,b1)
	return a0 < b1 && b0 < a1
}

// LayoutScore is how well one candidate layout fits a file.
type LayoutScore struct {
	Layout Layout
	// Score counts used entries with a printable tag and no error findings.
	Score int
	Err   error
}

// Detection is the result of DetectLayout.
type Detection struct {
	Layout    Layout
	Score     int
	Ambiguous bool
	Scores    []LayoutScore
}

var errNoLayout = errors.New("no candidate layout fits")

// DetectLayout parses data with every candidate layout and picks the one
// whose descriptors look most plausible. When two candidates score the same
// the earlier one wins and Ambiguous is set; callers should surface that
// rather than trust the offsets.
func DetectLayout(data []byte) (Detection, error) {
	var det Detection
	best := -1
	for _, l := range CandidateLayouts() {
		ls := LayoutScore{Layout: l}
		dir, err := ParseDirectory(NewCursor(data), l)
		if err != nil {
			ls.Err = err
			det.Scores = append(det.Scores, ls)
			continue
		}
		ls.Score = plausible(dir, len(data))
		det.Scores = append(det.Scores, ls)

		switch {
		case ls.Score > best:
			best = ls.Score
			det.Layout = l
			det.Score = ls.Score
			det.Ambiguous = false
		case ls.Score == best:
			det.Ambiguous = true
		}
	}
	if best < 0 {
		return det, fmt.Errorf("%w: %w", ErrTruncatedDirectory, errNoLayout)
	}
	return det, nil
}

func plausible(dir *Directory, size int) int {
	bad := make(map[int]bool)
	for _, f := range Check(dir, size) {
		if f.Severity == SeverityError || f.Kind == FindingUnprintableTag {
			bad[f.Index] = true
		}
	}
	n := 0
	for i, d := range dir.All() {
		if !d.Tag.IsZero() && !bad[i] {
			n++
		}
	}
	return n
}
