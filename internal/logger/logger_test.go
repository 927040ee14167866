package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestBuildFormats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format Format
		want   string
	}{
		{FormatJSON, `"path":"space.bin"`},
		{FormatText, `path=space.bin`},
		{FormatPretty, ` path=space.bin`},
		{"", ` path=space.bin`},
	}
	for _, tc := range tests {
		var buf bytes.Buffer
		log, err := Build(&buf, Options{Level: slog.LevelInfo, Format: tc.format})
		if err != nil {
			t.Fatalf("Build(%q): %v", tc.format, err)
		}
		log.Info("opened", "path", "space.bin")
		if !strings.Contains(buf.String(), tc.want) {
			t.Errorf("Build(%q): expected %q in %q", tc.format, tc.want, buf.String())
		}
	}

	if _, err := Build(&bytes.Buffer{}, Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestBuildLevelFiltering(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log, err := Build(&buf, Options{Level: slog.LevelWarn, Format: FormatJSON})
	if err != nil {
		t.Fatal(err)
	}
	log.Info("hidden")
	log.Debug("hidden too")
	if buf.Len() > 0 {
		t.Fatalf("expected no output below warn, got: %s", buf.String())
	}
	log.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("expected warn message, got: %s", buf.String())
	}
}

func TestDiscardAndDefault(t *testing.T) {
	t.Parallel()
	for _, log := range []Logger{Default(), Discard()} {
		if log == nil {
			t.Fatal("nil logger")
		}
		log.Debug("debug")
		log.With("k", "v").WithGroup("g").Info("info")
	}
}

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log, _ := Build(&buf, Options{Format: FormatJSON})

	if FromContext(context.Background()) == nil {
		t.Fatal("FromContext without logger returned nil")
	}

	FromContext(WithContext(context.Background(), log)).Info("roundtrip")
	if !strings.Contains(buf.String(), "roundtrip") {
		t.Fatalf("expected message via context logger, got: %s", buf.String())
	}
}

func TestWithAndGroup(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log, _ := Build(&buf, Options{Format: FormatJSON})
	log.With("component", "inspect").WithGroup("section").Info("decoded", "tag", "BWSG")

	out := buf.String()
	if !strings.Contains(out, `"component":"inspect"`) {
		t.Fatalf("missing component attr: %s", out)
	}
	if !strings.Contains(out, `"section":{"tag":"BWSG"}`) {
		t.Fatalf("missing grouped attr: %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"DEBUG", slog.LevelDebug, false},
		{"info", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{" Warning ", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}
	for _, tc := range tests {
		got, err := ParseLevel(tc.input)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseLevel(%q): err = %v, wantErr %v", tc.input, err, tc.wantErr)
		}
		if got != tc.want {
			t.Errorf("ParseLevel(%q): expected %v, got %v", tc.input, tc.want, got)
		}
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()
	if f, err := ParseFormat("JSON"); err != nil || f != FormatJSON {
		t.Fatalf("ParseFormat(JSON) = %q, %v", f, err)
	}
	if f, err := ParseFormat(""); err != nil || f != FormatPretty {
		t.Fatalf("ParseFormat(\"\") = %q, %v", f, err)
	}
	if _, err := ParseFormat("yaml"); err == nil {
		t.Fatal("expected error for yaml")
	}
}

func TestPrettyHandlerEnabled(t *testing.T) {
	t.Parallel()
	h := NewPrettyHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn}, false)

	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("expected info to be disabled at warn level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("expected error to be enabled at warn level")
	}
	if !NewPrettyHandler(&bytes.Buffer{}, nil, false).Enabled(context.Background(), slog.LevelInfo) {
		t.Error("expected info to be enabled by default")
	}
}

func TestPrettyNoColor(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	slog.New(NewPrettyHandler(&buf, nil, false)).Warn("overlap", "count", 2)

	out := buf.String()
	if strings.Contains(out, "\033[") {
		t.Fatalf("unexpected escape codes: %q", out)
	}
	if !strings.Contains(out, "WARN  overlap count=2") {
		t.Fatalf("unexpected line: %q", out)
	}
}

func TestPrettyColor(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	slog.New(NewPrettyHandler(&buf, nil, true)).Error("boom")
	if !strings.Contains(buf.String(), colorRed) {
		t.Fatalf("expected red level: %q", buf.String())
	}
}

func TestPrettyGroupsKeepTheirPrefix(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, nil, false).
		WithAttrs([]slog.Attr{slog.String("path", "a.bin")}).
		WithGroup("dir").
		WithGroup("entry")
	slog.New(h).Info("read", "tag", "BWSG", slog.Group("span", "start", 10, "end", 42))

	out := buf.String()
	for _, want := range []string{"path=a.bin", "dir.entry.tag=BWSG", "dir.entry.span.start=10", "dir.entry.span.end=42"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
	if strings.Contains(out, "dir.entry.path") {
		t.Errorf("attrs added before a group must not take its prefix: %q", out)
	}
}

func TestPrettyEmptyGroup(t *testing.T) {
	t.Parallel()
	h := NewPrettyHandler(&bytes.Buffer{}, nil, false)
	if h.WithGroup("") != slog.Handler(h) {
		t.Fatal("WithGroup(\"\") should return the same handler")
	}
}

func TestPrettyValues(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	slog.New(NewPrettyHandler(&buf, nil, false)).Info("v",
		"msg", "hello world",
		"plain", "simple",
		"err", errors.New("bad offset"),
		"empty", "",
	)

	out := buf.String()
	for _, want := range []string{`msg="hello world"`, "plain=simple", `err="bad offset"`, `empty=""`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
}

func TestPrettySource(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	slog.New(NewPrettyHandler(&buf, &slog.HandlerOptions{AddSource: true}, false)).Info("here")
	if !strings.Contains(buf.String(), "source=logger/logger_test.go:") {
		t.Fatalf("expected short source location, got %q", buf.String())
	}
}

func TestNeedsQuoting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"simple", false},
		{"has space", true},
		{"has\ttab", true},
		{"has\x00nul", true},
		{`has"quote`, true},
		{"k=v", true},
		{"", true},
		{"no-special-chars", false},
	}
	for _, tc := range tests {
		if got := needsQuoting(tc.input); got != tc.want {
			t.Errorf("needsQuoting(%q): expected %v, got %v", tc.input, tc.want, got)
		}
	}
}
