package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, c := range cases {
		got, err := ParseLevel(c.in)
		if err != nil || got != c.want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", c.in, got, err, c.want)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestNewFiltersByLevelAndFormatsTime(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, Config{Level: "warn"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	l.Info("patch.file", "key", "a.html")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered at warn, got %q", buf.String())
	}
	l.Warn("patch.target_missing", "key", "a.html")
	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("expected JSON line, got %q (%v)", buf.String(), err)
	}
	ts, _ := rec["time"].(string)
	if !strings.HasSuffix(ts, "Z") {
		t.Fatalf("expected UTC timestamp, got %q", ts)
	}
	if _, err := time.Parse(time.RFC3339Nano, ts); err != nil {
		t.Fatalf("expected RFC3339Nano timestamp: %v", err)
	}
	if rec["key"] != "a.html" || rec["msg"] != "patch.target_missing" {
		t.Fatalf("unexpected record %v", rec)
	}
}

func TestDebugForcesSource(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, Config{Level: "error", Debug: true})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	l.Debug("patch.step")
	if !strings.Contains(buf.String(), `"source"`) {
		t.Fatalf("expected debug record with source, got %q", buf.String())
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(&bytes.Buffer{}, Config{Level: "chatty"}); err == nil {
		t.Fatalf("expected error")
	}
}
