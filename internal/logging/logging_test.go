package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestInitText(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	Init(&buf, "info", "text")
	For("prefs").Info("hello", "key", "v")

	out := buf.String()
	if !strings.Contains(out, "msg=hello") || !strings.Contains(out, "component=prefs") {
		t.Fatalf("unexpected text output: %q", out)
	}
}

func TestInitJSON(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	Init(&buf, "debug", "json")
	For("securestore").Debug("opened")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if rec["component"] != "securestore" {
		t.Errorf("component: got %v", rec["component"])
	}
	SetLevel(slog.LevelInfo)
}

func TestInitFiltersBelowLevel(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)
	defer SetLevel(slog.LevelInfo)

	var buf bytes.Buffer
	Init(&buf, "warn", "text")
	For("x").Info("quiet")
	if buf.Len() != 0 {
		t.Fatalf("info should be filtered at warn level: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"DEBUG", slog.LevelDebug, false},
		{"info", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"  Error  ", slog.LevelError, false},
		{"", slog.LevelInfo, false},
		{"unknown", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q): err=%v, wantErr=%v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q): got %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestDynamicHandlerEnabled(t *testing.T) {
	defer SetLevel(slog.LevelInfo)

	c := CaptureForTest()
	defer c.Restore()
	SetLevel(slog.LevelWarn)

	h := &dynamicHandler{}
	if h.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug should not be enabled at warn level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("error should be enabled at warn level")
	}
}

func TestDynamicHandlerWithAttrs(t *testing.T) {
	c := CaptureForTest()
	defer c.Restore()

	logger := For("dprefs").With("store", "d_prefs")
	logger.Info("bound")

	if !c.HasAttr("bound", "component", "dprefs") {
		t.Error("component attribute missing")
	}
	if !c.HasAttr("bound", "store", "d_prefs") {
		t.Error("With attribute missing")
	}
}

func TestCaptureForTest(t *testing.T) {
	c := CaptureForTest()
	defer c.Restore()

	slog.Info("hello")
	slog.Warn("warning message")
	slog.Debug("debug detail")

	if n := len(c.Records()); n != 3 {
		t.Fatalf("expected 3 records, got %d", n)
	}
	if !c.Has(slog.LevelInfo, "hello") {
		t.Error("should have info 'hello'")
	}
	if !c.Has(slog.LevelWarn, "warning") {
		t.Error("should have warn 'warning'")
	}
	if c.Has(slog.LevelError, "hello") {
		t.Error("should not match error level")
	}
	if c.Count(slog.LevelDebug) != 1 {
		t.Errorf("expected 1 debug, got %d", c.Count(slog.LevelDebug))
	}
	if c.Count(slog.LevelError) != 0 {
		t.Errorf("expected 0 error, got %d", c.Count(slog.LevelError))
	}
}

func TestCaptureRestore(t *testing.T) {
	prev := slog.Default()
	c := CaptureForTest()
	c.Restore()

	if slog.Default() != prev {
		t.Error("default logger not restored")
	}
}

func TestForWithCapture(t *testing.T) {
	c := CaptureForTest()
	defer c.Restore()

	For("mycomp").Info("component log")

	if !c.Has(slog.LevelInfo, "component log") {
		t.Error("For() logger should use captured handler")
	}
}
