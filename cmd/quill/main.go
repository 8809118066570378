// Package main is the terminal entry point for Quill.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/quillx/quill/internal/config"
	"github.com/quillx/quill/internal/editor"
	"github.com/quillx/quill/internal/engine/cursor"
	"github.com/quillx/quill/internal/engine/position"
	"github.com/quillx/quill/internal/logging"
	"github.com/quillx/quill/internal/recovery"
	"github.com/quillx/quill/internal/render/theme"
	"github.com/quillx/quill/internal/renderer/backend"
	"github.com/quillx/quill/internal/renderer/core"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath string
	files      []string
	showHelp   bool
	version    bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()
	if opts.showHelp {
		flag.Usage()
		return 0
	}
	if opts.version {
		fmt.Printf("quill %s (%s, built %s)\n", version, commit, date)
		return 0
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		return 1
	}
	logging.Init(logging.Config{Level: cfg.LoggingLevel(), OutputPath: cfg.LoggingFile()})

	ed := editor.New()

	recoveryDir := resolveRecoveryDir(cfg)
	if recoveryDir != "" {
		restoreRecovered(ed, recoveryDir)
	}
	for _, path := range opts.files {
		openFile(ed, path)
	}

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := term.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}
	defer term.Shutdown()

	h := &host{
		editor:      ed,
		backend:     term,
		recoveryDir: recoveryDir,
		theme:       theme.DefaultDark(),
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		h.requestQuit()
	}()

	h.run()
	return 0
}

func parseFlags() options {
	var opts options
	flag.StringVar(&opts.configPath, "config", defaultConfigPath(), "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", defaultConfigPath(), "Path to configuration file (shorthand)")
	flag.BoolVar(&opts.showHelp, "help", false, "Show help message")
	flag.BoolVar(&opts.showHelp, "h", false, "Show help message (shorthand)")
	flag.BoolVar(&opts.version, "version", false, "Show version information")
	flag.BoolVar(&opts.version, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Quill - a modal, multi-buffer text editor core\n\n")
		fmt.Fprintf(os.Stderr, "Usage: quill [options] [files...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()
	opts.files = flag.Args()
	return opts
}

// resolveRecoveryDir implements registry.go's "recovery.directory ...
// empty uses the OS default" description: an explicit setting wins,
// otherwise recovery lives under the user's cache directory. A platform
// with no cache directory (and no explicit setting) disables recovery
// rather than erroring.
func resolveRecoveryDir(cfg *config.Config) string {
	if dir := cfg.RecoveryDirectory(); dir != "" {
		return dir
	}
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(cacheDir, "quill", "recovery")
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "quill", "quill.json")
}

// openFile reads path and delivers its content to the editor exactly the
// way a host answering a Cmd::LoadFile would: the core never touches the
// filesystem itself.
func openFile(ed *editor.Editor, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		logging.Warn("recover", "could not open file given on the command line", slog.String("path", path), slog.String("err", err.Error()))
		return
	}
	ed.Dispatch(editor.Input{Kind: editor.AddOrSelectBuffer, Path: path, Text: string(data)})
}

// restoreRecovered replays a prior crash-recovery snapshot into ed, one
// buffer per AddOrSelectBuffer input.
func restoreRecovered(ed *editor.Editor, dir string) {
	buffers, err := recovery.Load(dir)
	if err != nil {
		logging.Warn("recover", "failed to read recovery directory", slog.String("dir", dir), slog.String("err", err.Error()))
		return
	}
	for _, b := range buffers {
		ed.Dispatch(editor.Input{Kind: editor.AddOrSelectBuffer, Path: b.Name, Text: b.Text})
	}
}

// saveRecovery snapshots every open buffer to dir.
func saveRecovery(ed *editor.Editor, dir string) {
	if dir == "" {
		return
	}
	texts := ed.BufferTexts()
	buffers := make([]recovery.Buffer, len(texts))
	for i, t := range texts {
		buffers[i] = recovery.Buffer{Name: t.Name, Text: t.Text}
	}
	if err := recovery.Save(dir, buffers); err != nil {
		logging.Warn("recover", "failed to save recovery snapshot", slog.String("dir", dir), slog.String("err", err.Error()))
	}
}

// host drives the terminal event loop: it polls backend events on its own
// goroutine (PollEvent blocks) and, on the main goroutine, handles each
// event, re-renders after it, and saves a recovery snapshot on a ticker.
// The editor is called directly from the main goroutine; there is no
// channel pair between the host and the editor, so a slow Dispatch delays
// rendering and event handling until it returns.
type host struct {
	editor      *editor.Editor
	backend     backend.Backend
	recoveryDir string
	clipboard   string
	quit        bool
	theme       theme.Theme
}

func (h *host) requestQuit() {
	h.quit = true
	h.backend.PostEvent(backend.Event{Type: backend.EventNone})
}

func (h *host) run() {
	events := h.pollEvents()

	const recoveryInterval = 30 * time.Second
	recoveryTicker := time.NewTicker(recoveryInterval)
	defer recoveryTicker.Stop()

	h.render()
	for !h.quit {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			h.handleEvent(ev)
			if h.quit {
				saveRecovery(h.editor, h.recoveryDir)
				return
			}
			h.render()
		case <-recoveryTicker.C:
			saveRecovery(h.editor, h.recoveryDir)
		}
	}
}

// pollEvents starts a goroutine that blocks on backend.PollEvent and
// forwards events to the returned channel, so h.run never blocks the
// recovery-save ticker on terminal input.
func (h *host) pollEvents() <-chan backend.Event {
	out := make(chan backend.Event, 100)
	go func() {
		defer close(out)
		for {
			ev := h.backend.PollEvent()
			out <- ev
			if h.quit {
				return
			}
		}
	}()
	return out
}

func (h *host) handleEvent(ev backend.Event) {
	switch ev.Type {
	case backend.EventResize:
		// The next render() call reads the new size directly from the
		// backend; nothing to dispatch.
	case backend.EventKey:
		h.handleKey(ev)
	case backend.EventPaste:
		if ev.PasteText != "" {
			h.dispatch(editor.Input{Kind: editor.InsertText, Text: ev.PasteText})
		}
	default:
	}
}

func (h *host) handleKey(ev backend.Event) {
	in, ok := convertKeyToInput(ev)
	if !ok {
		return
	}
	h.dispatch(in)
}

func (h *host) dispatch(in editor.Input) {
	_, cmd := h.editor.Dispatch(in)
	switch cmd.Kind {
	case editor.NoCmd:
	case editor.SetClipboard:
		h.clipboard = cmd.Text
	case editor.LoadFileCmd:
		data, err := os.ReadFile(cmd.Path)
		if err != nil {
			logging.Warn("recover", "LoadFile request failed", slog.String("path", cmd.Path), slog.String("err", err.Error()))
			return
		}
		h.editor.Dispatch(editor.Input{Kind: editor.AddOrSelectBuffer, Path: cmd.Path, Text: string(data)})
	}
	if in.Kind == editor.Quit {
		h.quit = true
	}
}

// convertKeyToInput maps one terminal key event onto the editor's Input
// alphabet. Keys with no editor meaning (function keys, unmodified
// mouse-only gestures) return ok=false.
func convertKeyToInput(ev backend.Event) (editor.Input, bool) {
	target := editor.BufferKindMain

	if ev.Key == backend.KeyRune {
		return editor.Input{Kind: editor.InsertText, Target: target, Text: string(ev.Rune)}, true
	}

	switch ev.Key {
	case backend.KeyEnter:
		return editor.Input{Kind: editor.InsertText, Target: target, Text: "\n"}, true
	case backend.KeyTab:
		return editor.Input{Kind: editor.TabIn, Target: target}, true
	case backend.KeyBackspace:
		return editor.Input{Kind: editor.DeleteAtCursors, Target: target}, true
	case backend.KeyEscape:
		return editor.Input{Kind: editor.CloseMenu}, true
	case backend.KeyUp:
		return moveOrExtend(ev, cursor.Up), true
	case backend.KeyDown:
		return moveOrExtend(ev, cursor.Down), true
	case backend.KeyLeft:
		return moveOrExtend(ev, cursor.Left), true
	case backend.KeyRight:
		return moveOrExtend(ev, cursor.Right), true
	case backend.KeyHome:
		return moveOrExtend(ev, cursor.ToLineStart), true
	case backend.KeyEnd:
		return moveOrExtend(ev, cursor.ToLineEnd), true
	case backend.KeyCtrlA:
		return editor.Input{Kind: editor.SelectAll, Target: target}, true
	case backend.KeyCtrlC:
		return editor.Input{Kind: editor.Copy, Target: target}, true
	case backend.KeyCtrlX:
		return editor.Input{Kind: editor.Cut, Target: target}, true
	case backend.KeyCtrlZ:
		return editor.Input{Kind: editor.Undo, Target: target}, true
	case backend.KeyCtrlY:
		return editor.Input{Kind: editor.Redo, Target: target}, true
	case backend.KeyCtrlF:
		return editor.Input{Kind: editor.OpenFind}, true
	case backend.KeyCtrlS:
		return editor.Input{Kind: editor.SaveCurrentBuffer}, true
	case backend.KeyCtrlN:
		return editor.Input{Kind: editor.NewBuffer}, true
	case backend.KeyCtrlW:
		return editor.Input{Kind: editor.CloseCurrentBuffer}, true
	case backend.KeyCtrlQ:
		return editor.Input{Kind: editor.Quit}, true
	default:
		return editor.Input{}, false
	}
}

func moveOrExtend(ev backend.Event, m cursor.Move) editor.Input {
	kind := editor.MoveCursor
	if ev.Mod.Has(backend.ModShift) {
		kind = editor.ExtendSelection
	}
	return editor.Input{Kind: kind, Target: editor.BufferKindMain, Move: m}
}

// render draws the main buffer's visible lines and a one-line status bar,
// painting cells directly through backend.Backend rather than a separate
// layout/viewport pipeline.
func (h *host) render() {
	width, height := h.backend.Size()
	if height < 1 {
		return
	}
	textRows := height - 1
	main := h.editor.GetScrollableBufferMut(editor.BufferKindMain)

	h.backend.Clear()

	plain := core.NewStyle(h.theme.Foreground).WithBackground(h.theme.Background)
	selected := h.theme.SelectionStyle()
	ranges := main.Cursors.Ranges()

	topLine := main.Scroll.Y.ToUint()
	for row := 0; row < textRows; row++ {
		line := topLine + uint32(row)
		if line >= main.LineCount() {
			break
		}
		text := main.LineText(line)
		col := 0
		for _, r := range text {
			if col >= width {
				break
			}
			style := plain
			if inSelection(line, col, ranges) {
				style = selected
			}
			h.backend.SetCell(col, row, core.NewStyledCell(r, style))
			col++
		}
	}

	status := fmt.Sprintf(" %s  L%d:%d  %d lines", main.Name, main.Cursors.Primary().Position().Line+1, main.Cursors.Primary().Position().Offset+1, main.LineCount())
	h.drawStatusLine(status, textRows, width)

	primary := main.Cursors.Primary().Position()
	cursorRow := int(primary.Line) - int(topLine)
	if cursorRow >= 0 && cursorRow < textRows {
		h.backend.ShowCursor(int(primary.Offset), cursorRow)
	} else {
		h.backend.HideCursor()
	}

	h.backend.Show()
}

// inSelection reports whether (line, col) falls inside any of ranges,
// clipping each range to the line it's being tested against.
func inSelection(line uint32, col int, ranges []position.Range) bool {
	for _, r := range ranges {
		if line < r.Start.Line || line > r.End.Line {
			continue
		}
		start := 0
		if line == r.Start.Line {
			start = int(r.Start.Offset)
		}
		end := int(^uint(0) >> 1)
		if line == r.End.Line {
			end = int(r.End.Offset)
		}
		if col >= start && col < end {
			return true
		}
	}
	return false
}

func (h *host) drawStatusLine(status string, row, width int) {
	style := core.NewStyle(core.ColorBlack).WithBackground(core.ColorGray)
	col := 0
	for _, r := range status {
		if col >= width {
			break
		}
		h.backend.SetCell(col, row, core.NewStyledCell(r, style))
		col++
	}
	for ; col < width; col++ {
		h.backend.SetCell(col, row, core.Cell{Rune: ' ', Width: 1, Style: style})
	}
}
