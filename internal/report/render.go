package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
)

// WriteJSON writes r as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteText writes r as aligned, sectioned text.
func (r *Report) WriteText(w io.Writer) error {
	p := &printer{w: w}

	p.section("Archive")
	p.row("Path", r.Path)
	p.row("Size", formatBytes(uint64(r.Size)))
	p.row("Layout", fmt.Sprintf("%d entries x %d bytes, %s offsets", r.Layout.Entries, r.Layout.Stride, r.Layout.Base))
	if d := r.Detection; d != nil {
		verdict := "detected"
		if d.Ambiguous {
			verdict = "ambiguous, using first match"
		}
		p.row("Detection", fmt.Sprintf("%s (score %d/%d)", verdict, d.Score, r.Layout.Entries))
		for _, c := range d.Scores {
			if c.Error != "" {
				p.printf("  %-22s %s\n", c.Layout, c.Error)
				continue
			}
			p.printf("  %-22s %d\n", c.Layout, c.Score)
		}
	}

	title := "Sections"
	if len(r.Sections) > 0 && r.isOffsetOrder() {
		title = "Sections (by offset)"
	}
	p.section(title)
	p.printf("%-4s %-6s %-26s %12s %12s %12s\n", "#", "Tag", "Description", "Offset", "Length", "End")
	for _, s := range r.Sections {
		desc := s.Description
		switch {
		case !s.Known:
			desc = "(unrecognised)"
		case desc == "":
			desc = "(unknown)"
		}
		if s.Decoder {
			desc += " *"
		}
		p.printf("%-4d %-6s %-26s %12d %12d %12d\n", s.Index, s.label, truncate(desc, 26), s.Offset, s.Length, s.End)
	}
	p.row("Total length", fmt.Sprintf("%d (%s)", r.TotalLength, formatBytes(uint64(r.TotalLength))))
	if r.RawTotalLength != r.TotalLength {
		p.row("Raw total length", fmt.Sprintf("%d (negative lengths included)", r.RawTotalLength))
	}

	for _, d := range r.Decoded {
		name := d.label
		if d.Description != "" {
			name += " (" + d.Description + ")"
		}
		p.section(fmt.Sprintf("#%d %s", d.Index, name))
		if d.Strings != nil {
			p.row("Strings", fmt.Sprintf("%d", len(d.Strings)))
			for _, e := range d.Strings {
				p.printf("%6d  [%02x] %q\n", e.Index, e.Marker, e.Text)
			}
			continue
		}
		p.printf("%v\n", d.Value)
	}

	if len(r.Findings) > 0 {
		p.section("Findings")
		for _, f := range r.Findings {
			p.printf("%-7s #%-3d %-6s %-18s %s\n", f.Severity, f.Index, f.label, f.Kind, f.Detail)
		}
	}
	return p.err
}

func (r *Report) isOffsetOrder() bool {
	return r.opts.Order == OrderOffset
}

// printer remembers the first write error so rendering code can stay linear.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) section(title string) {
	line := strings.Repeat("-", len(title)+8)
	p.printf("\n%s\n--- %s ---\n%s\n", line, title, line)
}

func (p *printer) row(label, value string) {
	if value == "" {
		return
	}
	p.printf("%-24s %s\n", label+":", value)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func formatBytes(b uint64) string {
	const (
		kb = 1024
		mb = 1024 * kb
		gb = 1024 * mb
	)
	switch {
	case b >= gb:
		return fmt.Sprintf("%.2f GiB", float64(b)/float64(gb))
	case b >= mb:
		return fmt.Sprintf("%.2f MiB", float64(b)/float64(mb))
	case b >= kb:
		return fmt.Sprintf("%.2f KiB", float64(b)/float64(kb))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
