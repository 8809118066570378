package editor

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/quillx/quill/internal/engine/buffer"
	"github.com/quillx/quill/internal/engine/collection"
	"github.com/quillx/quill/internal/engine/position"
	"github.com/quillx/quill/internal/engine/search"
	"github.com/quillx/quill/internal/logging"
)

// Editor is the top-level orchestrator: a collection of document buffers
// plus four independent menu sub-buffers, and the menu state machine that
// decides which one text input routes to.
type Editor struct {
	buffers *collection.Collection[*buffer.Buffer]

	find         *buffer.Buffer
	replace      *buffer.Buffer
	fileSwitcher *buffer.Buffer
	goToPosition *buffer.Buffer

	menu MenuMode
}

var scratchNamePattern = regexp.MustCompile(`^Scratch (\d+)$`)

func newScratchBuffer(existing func() []string) *buffer.Buffer {
	max := uint32(0)
	for _, name := range existing() {
		if m := scratchNamePattern.FindStringSubmatch(name); m != nil {
			if n, err := strconv.ParseUint(m[1], 10, 32); err == nil && uint32(n) > max {
				max = uint32(n)
			}
		}
	}
	return buffer.NewBuffer(buffer.WithName(fmt.Sprintf("Scratch %d", max+1)))
}

// New creates an Editor with a single empty scratch buffer selected.
func New() *Editor {
	e := &Editor{
		find:         buffer.NewBuffer(buffer.WithName("find")),
		replace:      buffer.NewBuffer(buffer.WithName("replace")),
		fileSwitcher: buffer.NewBuffer(buffer.WithName("file-switcher")),
		goToPosition: buffer.NewBuffer(buffer.WithName("go-to-position")),
	}

	first := buffer.NewBuffer(buffer.WithName("Scratch 1"))
	e.buffers = collection.New(first,
		func(b *buffer.Buffer) string { return b.Name },
		func() *buffer.Buffer {
			return newScratchBuffer(func() []string {
				var names []string
				for _, it := range e.buffers.All() {
					names = append(names, it.Item.Name)
				}
				return names
			})
		},
	)
	return e
}

// GetScrollableBufferMut returns the buffer kind addresses, independent of
// the current MenuMode: BufferKindMain always resolves to the real
// document buffer, never a menu field, even while a menu is open.
func (e *Editor) GetScrollableBufferMut(kind CurrentBufferKind) *buffer.Buffer {
	switch kind {
	case BufferKindFind:
		return e.find
	case BufferKindReplace:
		return e.replace
	case BufferKindFileSwitcher:
		return e.fileSwitcher
	case BufferKindGoToPosition:
		return e.goToPosition
	default:
		b, _ := e.buffers.Current()
		return b
	}
}

// Dispatch processes one Input to completion and returns the resulting
// View plus any side effect the host must perform.
func (e *Editor) Dispatch(in Input) (View, Cmd) {
	logging.Debug("input", "dispatch", slog.String("kind", in.Kind.String()))

	mainBefore, _ := e.buffers.Current()
	savedBefore := mainBefore.IsDirty()

	cmd := e.handle(in)

	mainAfter, _ := e.buffers.Current()
	savedAfter := mainAfter.IsDirty()
	transition := NoChange
	if !savedBefore && savedAfter {
		transition = ToEdited
	} else if savedBefore && !savedAfter {
		transition = ToUnedited
	}

	return e.view([]EditedTransition{transition}), cmd
}

func (e *Editor) handle(in Input) Cmd {
	switch in.Kind {
	case InsertText:
		if in.Text == "" {
			return Cmd{}
		}
		target := e.GetScrollableBufferMut(in.Target)
		target.InsertAtCursors(in.Text)
		e.afterMenuFieldEdit(in.Target)
		e.scrollIntoView(in.Target, in.Viewport)
	case DeleteAtCursors:
		e.GetScrollableBufferMut(in.Target).DeleteAtCursors()
		e.afterMenuFieldEdit(in.Target)
	case DeleteLines:
		e.GetScrollableBufferMut(in.Target).DeleteLines()
	case Cut:
		text := e.GetScrollableBufferMut(in.Target).Cut()
		if text == "" {
			return Cmd{}
		}
		return Cmd{Kind: SetClipboard, Text: text}
	case Copy:
		text := e.GetScrollableBufferMut(in.Target).Copy()
		if text == "" {
			return Cmd{}
		}
		return Cmd{Kind: SetClipboard, Text: text}
	case Paste:
		if in.Text == "" {
			return Cmd{}
		}
		e.GetScrollableBufferMut(in.Target).InsertAtCursors(in.Text)
		e.afterMenuFieldEdit(in.Target)
	case TabIn:
		e.GetScrollableBufferMut(in.Target).TabIn()
	case TabOut:
		e.GetScrollableBufferMut(in.Target).TabOut()
	case Undo:
		e.GetScrollableBufferMut(in.Target).Undo()
	case Redo:
		e.GetScrollableBufferMut(in.Target).Redo()
	case MoveCursor:
		e.GetScrollableBufferMut(in.Target).MoveAllCursors(in.Move)
		e.scrollIntoView(in.Target, in.Viewport)
	case ExtendSelection:
		e.GetScrollableBufferMut(in.Target).ExtendSelectionForAllCursors(in.Move)
		e.scrollIntoView(in.Target, in.Viewport)
	case SetCursor:
		e.GetScrollableBufferMut(in.Target).SetCursor(in.Position)
		e.scrollIntoView(in.Target, in.Viewport)
	case AddCursor:
		e.GetScrollableBufferMut(in.Target).AddCursor(in.Position)
	case Drag:
		e.GetScrollableBufferMut(in.Target).DragCursors(in.Position)
	case SelectAll:
		e.GetScrollableBufferMut(in.Target).SelectAll()
	case SelectWordAt:
		e.GetScrollableBufferMut(in.Target).SelectCharTypeGrouping(in.Position)

	case OpenFind:
		e.menu = MenuFind
	case OpenReplace:
		e.menu = MenuReplace
	case OpenFileSwitcher:
		e.menu = MenuFileSwitcher
	case OpenGoToPosition:
		e.menu = MenuGoToPosition
	case CloseMenu:
		e.menu = MenuHidden

	case FindNext:
		e.moveToMatch(true)
	case FindPrevious:
		e.moveToMatch(false)
	case ReplaceCurrent:
		e.replaceCurrent()
	case ReplaceAll:
		e.replaceAll()

	case ConfirmFileSwitcher:
		if idx, ok := e.buffers.IndexWithName(e.fileSwitcher.Text()); ok {
			e.switchTo(idx)
		} else {
			logging.Warn("recover", "file switcher confirmed with no matching buffer name", slog.String("query", e.fileSwitcher.Text()))
		}
		e.menu = MenuHidden
	case ConfirmGoToPosition:
		if p, ok := parseGoToPosition(e.goToPosition.Text()); ok {
			main, _ := e.buffers.Current()
			main.SetCursor(p)
			e.menu = MenuHidden
		}

	case NewBuffer:
		b := newScratchBuffer(e.bufferNames)
		e.buffers.PushAndSelectNew(b)
		logging.Info("buffer", "opened new buffer", slog.String("name", b.Name))
	case CloseCurrentBuffer:
		closed, _ := e.buffers.Current()
		e.buffers.RemoveIfPresent(e.buffers.CurrentIndex())
		logging.Info("buffer", "closed buffer", slog.String("name", closed.Name))
	case SwitchBuffer:
		if _, ok := e.buffers.Get(in.BufferID); ok {
			e.switchTo(in.BufferID)
		} else {
			logging.Warn("recover", "ignored SwitchBuffer to stale or unknown index", slog.String("index", in.BufferID.String()))
		}
	case SaveCurrentBuffer:
		main, _ := e.buffers.Current()
		main.MarkSaved()
		logging.Info("buffer", "saved buffer", slog.String("name", main.Name))
	case LoadFile:
		if in.Path == "" {
			return Cmd{}
		}
		logging.Info("buffer", "requested file load", slog.String("path", in.Path))
		return Cmd{Kind: LoadFileCmd, Path: in.Path}
	case AddOrSelectBuffer:
		e.addOrSelectBuffer(in.Path, in.Text)
	case OpenOrSelectBuffer:
		e.addOrSelectBuffer(in.Path, "")
	case SetBufferPath:
		if in.Path == "" {
			return Cmd{}
		}
		main, _ := e.buffers.Current()
		main.SetName(in.Path)
		logging.Info("buffer", "renamed buffer", slog.String("name", in.Path))
	case SavedAs:
		if in.Path == "" {
			return Cmd{}
		}
		main, _ := e.buffers.Current()
		main.SetName(in.Path)
		main.MarkSaved()
		logging.Info("buffer", "saved as", slog.String("name", in.Path))
	case InsertNumbersAtCursors:
		e.GetScrollableBufferMut(in.Target).InsertNumbersAtCursors(in.Start)
	case Quit:
		// The host owns the event loop's lifetime; Quit carries no editor
		// state change, it is a signal the host checks for on its own.
	}
	return Cmd{}
}

// addOrSelectBuffer is the host's response to a LoadFileCmd: if a buffer
// already has this path open, select it rather than clobbering any
// unsaved edits; otherwise create one seeded with text and select it.
// text is ignored (and strict UTF-8 decoding skipped) when path is
// already open.
func (e *Editor) addOrSelectBuffer(path, text string) {
	if idx, ok := e.buffers.IndexWithName(path); ok {
		e.switchTo(idx)
		return
	}

	b, err := buffer.NewBufferFromString(text, buffer.WithName(path))
	if err != nil {
		logging.Warn("recover", "file content was not valid UTF-8, opening empty", slog.String("path", path))
		b = buffer.NewBuffer(buffer.WithName(path))
	}
	b.MarkSaved()
	e.buffers.PushAndSelectNew(b)
	logging.Info("buffer", "opened buffer from path", slog.String("path", path))
}

// BufferText is a buffer's display name paired with its full text, for a
// host that wants to snapshot every open buffer (e.g. for crash recovery)
// without reaching into the editor's internals.
type BufferText struct {
	Name string
	Text string
}

// BufferTexts snapshots every open buffer's name and current text, in
// collection order.
func (e *Editor) BufferTexts() []BufferText {
	all := e.buffers.All()
	out := make([]BufferText, 0, len(all))
	for _, it := range all {
		out = append(out, BufferText{Name: it.Item.Name, Text: it.Item.Text()})
	}
	return out
}

func (e *Editor) bufferNames() []string {
	var names []string
	for _, it := range e.buffers.All() {
		names = append(names, it.Item.Name)
	}
	return names
}

// switchTo selects idx by stepping AdjustSelection(Next) at most Len()
// times; bounded since Next only ever cycles through live slots.
func (e *Editor) switchTo(idx collection.Index) {
	if _, ok := e.buffers.Get(idx); !ok {
		return
	}
	for i := 0; i < e.buffers.Len() && e.buffers.CurrentIndex() != idx; i++ {
		e.buffers.AdjustSelection(collection.Next)
	}
}

// afterMenuFieldEdit keeps the main buffer's SearchResults in sync with
// the find field's text, and does nothing for other targets.
func (e *Editor) afterMenuFieldEdit(target CurrentBufferKind) {
	if target != BufferKindFind {
		return
	}
	main, _ := e.buffers.Current()
	needle := e.find.Text()
	if needle == "" {
		main.SearchResults = nil
		return
	}
	results, err := search.Find(main.Rope(), needle)
	if err == nil {
		main.SearchResults = results
	}
}

func (e *Editor) moveToMatch(forward bool) {
	main, _ := e.buffers.Current()
	if main.SearchResults == nil {
		return
	}
	var match search.Match
	var ok bool
	if forward {
		match, ok = main.SearchResults.Next()
	} else {
		match, ok = main.SearchResults.Previous()
	}
	if !ok {
		return
	}
	main.SetCursor(match.Start)
}

func (e *Editor) replaceCurrent() {
	main, _ := e.buffers.Current()
	if main.SearchResults == nil {
		return
	}
	match, ok := main.SearchResults.Current()
	if !ok {
		return
	}
	main.SetCursor(match.Start)
	main.AddCursor(match.End)
	// The caret/highlight pair below select exactly [match.Start,
	// match.End), matching a find-replace field's "replace this
	// occurrence" gesture.
	main.DragCursors(match.End)
	main.InsertAtCursors(e.replace.Text())
	e.afterMenuFieldEdit(BufferKindFind)
}

func (e *Editor) replaceAll() {
	main, _ := e.buffers.Current()
	if main.SearchResults == nil || len(main.SearchResults.Ranges) == 0 {
		return
	}
	replacement := e.replace.Text()
	// Ranges are ascending; replacing back-to-front keeps earlier
	// ranges' positions valid as later ones are rewritten.
	ranges := main.SearchResults.Ranges
	for i := len(ranges) - 1; i >= 0; i-- {
		m := ranges[i]
		main.SetCursor(m.Start)
		main.DragCursors(m.End)
		main.InsertAtCursors(replacement)
	}
	e.afterMenuFieldEdit(BufferKindFind)
}

// scrollIntoView attempts to keep the target buffer's primary cursor
// visible: a generous apron first, then a tighter one.
// A zero Viewport (no CharDim) is a no-op, so callers that don't care
// about scrolling (tests, headless Dispatch) pay nothing.
func (e *Editor) scrollIntoView(target CurrentBufferKind, vp Viewport) {
	if vp.CharDim.Width == 0 {
		return
	}
	b := e.GetScrollableBufferMut(target)
	p := b.Cursors.Primary().Position()
	col := position.AbsPos(float64(p.Offset)) * vp.CharDim.Width
	row := position.AbsPos(float64(p.Line)) * vp.CharDim.Height
	textXY := position.AbsPos2{X: col, Y: row}

	generous := position.Apron{Left: 0.3, Top: 0.3, Right: 0.3, Bottom: 0.3}
	if position.AttemptToMakeXYVisible(&b.Scroll, vp.Outer, generous, textXY) {
		return
	}
	tight := position.Apron{Left: 0.02, Top: 0.02, Right: 0.02, Bottom: 0.02}
	position.AttemptToMakeXYVisible(&b.Scroll, vp.Outer, tight, textXY)
}

func (e *Editor) view(transitions []EditedTransition) View {
	main, _ := e.buffers.Current()

	var bufferViews []BufferView
	for _, it := range e.buffers.All() {
		bufferViews = append(bufferViews, BufferView{
			Index:       it.Index,
			Name:        it.Item.Name,
			IsDirty:     it.Item.IsDirty(),
			CursorCount: it.Item.Cursors.Count(),
			LineCount:   it.Item.LineCount(),
		})
	}

	menuView := MenuView{Mode: e.menu, FindText: e.find.Text(), ReplaceText: e.replace.Text(), FileSwitcherText: e.fileSwitcher.Text(), GoToPositionText: e.goToPosition.Text()}
	if main.SearchResults != nil {
		menuView.MatchCount = len(main.SearchResults.Ranges)
		menuView.CurrentMatch = main.SearchResults.CurrentRange
	}
	if e.menu == MenuFileSwitcher {
		menuView.FileSwitcherCandidates = e.fileSwitcherCandidates()
	}
	if e.menu == MenuGoToPosition {
		_, ok := parseGoToPosition(e.goToPosition.Text())
		menuView.GoToPositionError = e.goToPosition.Text() != "" && !ok
	}

	primary := main.Cursors.Primary().Position()
	return View{
		IndexState:        IndexState{Current: e.buffers.CurrentIndex(), Count: e.buffers.Len()},
		Buffers:           bufferViews,
		EditedTransitions: transitions,
		Menu:              menuView,
		Stats: Stats{
			LineCount:  main.LineCount(),
			CharCount:  int(main.Rope().LenChars()),
			CursorLine: primary.Line,
			CursorCol:  primary.Offset,
		},
		StatusLine: main.Name,
	}
}

func (e *Editor) fileSwitcherCandidates() []string {
	needle := strings.ToLower(e.fileSwitcher.Text())
	var out []string
	for _, it := range e.buffers.All() {
		if needle == "" || strings.Contains(strings.ToLower(it.Item.Name), needle) {
			out = append(out, it.Item.Name)
		}
	}
	return out
}
