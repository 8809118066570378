package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestLevelFromString(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"err":     slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := levelFromString(in); got != want {
			t.Errorf("levelFromString(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestTagFilterHandlerEnabledTags(t *testing.T) {
	var buf bytes.Buffer
	base := slog.NewTextHandler(&buf, nil)
	h := newTagFilterHandler(base, Config{EnabledTags: []string{"buffer*"}})

	if !h.tagAllowed("buffer.open") {
		t.Error("buffer.open should match buffer*")
	}
	if h.tagAllowed("input") {
		t.Error("input should not match buffer* when EnabledTags is set")
	}
}

func TestTagFilterHandlerDisabledTagsOverride(t *testing.T) {
	h := newTagFilterHandler(slog.NewTextHandler(&bytes.Buffer{}, nil), Config{
		EnabledTags:  []string{"*"},
		DisabledTags: []string{"recover"},
	})

	if h.tagAllowed("recover") {
		t.Error("DisabledTags should override a matching EnabledTags pattern")
	}
	if !h.tagAllowed("input") {
		t.Error("input should remain allowed")
	}
}

func TestTagFilterHandlerNoFilterAllowsEverything(t *testing.T) {
	h := newTagFilterHandler(slog.NewTextHandler(&bytes.Buffer{}, nil), Config{})
	for _, tag := range []string{"input", "buffer", "recover", ""} {
		if !h.tagAllowed(tag) {
			t.Errorf("tagAllowed(%q) = false, want true with no filters configured", tag)
		}
	}
}

func TestTagFilterHandlerDropsRecordsSilently(t *testing.T) {
	var buf bytes.Buffer
	h := newTagFilterHandler(slog.NewTextHandler(&buf, nil), Config{EnabledTags: []string{"buffer*"}})

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "hello", 0)
	r.AddAttrs(slog.String("tag", "input"))
	if err := h.Handle(context.Background(), r); err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected filtered record to produce no output, got %q", buf.String())
	}

	r2 := slog.NewRecord(time.Now(), slog.LevelInfo, "hello", 0)
	r2.AddAttrs(slog.String("tag", "buffer.open"))
	if err := h.Handle(context.Background(), r2); err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("expected allowed record to be written, got %q", buf.String())
	}
}
