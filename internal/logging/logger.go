// Config shape (LogLevel, LogFilePath, EnabledTags/DisabledTags, falling
// back to stderr) and package-level default-logger-plus-Init pattern,
// trimmed to the tags Quill actually emits since internal/editor and
// cmd/quill are the only call sites.
//
// Tag patterns are glob expressions (tidwall/match) — the same
// wildcard-matching job internal/config's registry uses match for on
// setting paths (Registry.ByPathGlob).
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/tidwall/match"
)

// Config configures the package-level logger. The zero Config logs at Info
// level to stderr with no tag filtering.
type Config struct {
	// Level is one of "debug", "info", "warn", "error" (case-insensitive).
	// Unrecognized or empty defaults to "info".
	Level string

	// OutputPath is a file to log to; empty or "-" logs to stderr.
	OutputPath string

	// EnabledTags, if non-empty, logs only records whose tag matches one
	// of these glob patterns. DisabledTags overrides EnabledTags: a tag
	// matching a DisabledTags pattern is always dropped.
	EnabledTags  []string
	DisabledTags []string
}

var (
	initOnce sync.Once
	logger   *slog.Logger
	cfg      Config
)

// Init installs c as the package configuration. Only the first call takes
// effect; later calls are no-ops, guarding against re-initializing
// mid-run.
func Init(c Config) {
	initOnce.Do(func() {
		cfg = c
		logger = slog.New(newTagFilterHandler(baseHandler(c), c))
	})
}

func baseHandler(c Config) slog.Handler {
	var out io.Writer = os.Stderr
	if c.OutputPath != "" && c.OutputPath != "-" {
		if f, err := os.OpenFile(c.OutputPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			out = f
		}
	}
	return slog.NewTextHandler(out, &slog.HandlerOptions{Level: levelFromString(c.Level)})
}

func levelFromString(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func ensureInitialized() *slog.Logger {
	initOnce.Do(func() {
		cfg = Config{Level: "info"}
		logger = slog.New(newTagFilterHandler(baseHandler(cfg), cfg))
	})
	return logger
}

// tagFilterHandler wraps a slog.Handler, dropping records whose "tag"
// attribute fails the Config's EnabledTags/DisabledTags glob lists.
type tagFilterHandler struct {
	slog.Handler
	cfg Config
}

func newTagFilterHandler(h slog.Handler, c Config) *tagFilterHandler {
	return &tagFilterHandler{Handler: h, cfg: c}
}

func (h *tagFilterHandler) Handle(ctx context.Context, r slog.Record) error {
	tag := ""
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "tag" {
			tag = a.Value.String()
			return false
		}
		return true
	})
	if !h.tagAllowed(tag) {
		return nil
	}
	return h.Handler.Handle(ctx, r)
}

func (h *tagFilterHandler) tagAllowed(tag string) bool {
	for _, pattern := range h.cfg.DisabledTags {
		if match.Match(tag, pattern) {
			return false
		}
	}
	if len(h.cfg.EnabledTags) == 0 {
		return true
	}
	for _, pattern := range h.cfg.EnabledTags {
		if match.Match(tag, pattern) {
			return true
		}
	}
	return false
}

// Debug logs msg at Debug level tagged with tag.
func Debug(tag, msg string, args ...any) { logTagged(slog.LevelDebug, tag, msg, args...) }

// Info logs msg at Info level tagged with tag.
func Info(tag, msg string, args ...any) { logTagged(slog.LevelInfo, tag, msg, args...) }

// Warn logs msg at Warn level tagged with tag.
func Warn(tag, msg string, args ...any) { logTagged(slog.LevelWarn, tag, msg, args...) }

// Error logs msg at Error level tagged with tag.
func Error(tag, msg string, args ...any) { logTagged(slog.LevelError, tag, msg, args...) }

func logTagged(level slog.Level, tag, msg string, args ...any) {
	l := ensureInitialized()
	args = append(args, slog.String("tag", tag))
	l.Log(context.Background(), level, msg, args...)
}
