package editor

import (
	"strconv"

	"github.com/quillx/quill/internal/engine/collection"
	"github.com/quillx/quill/internal/engine/cursor"
	"github.com/quillx/quill/internal/engine/position"
)

// InputKind tags the payload carried by Input.
type InputKind uint8

const (
	InsertText InputKind = iota
	DeleteAtCursors
	DeleteLines
	Cut
	Copy
	Paste
	TabIn
	TabOut
	Undo
	Redo
	MoveCursor
	ExtendSelection
	SetCursor
	AddCursor
	Drag
	SelectAll
	SelectWordAt
	OpenFind
	OpenReplace
	OpenFileSwitcher
	OpenGoToPosition
	CloseMenu
	FindNext
	FindPrevious
	ReplaceCurrent
	ReplaceAll
	ConfirmFileSwitcher
	ConfirmGoToPosition
	NewBuffer
	CloseCurrentBuffer
	SwitchBuffer
	SaveCurrentBuffer
	LoadFile
	AddOrSelectBuffer
	OpenOrSelectBuffer
	SetBufferPath
	SavedAs
	InsertNumbersAtCursors
	Quit
)

var inputKindNames = [...]string{
	"InsertText", "DeleteAtCursors", "DeleteLines", "Cut", "Copy", "Paste",
	"TabIn", "TabOut", "Undo", "Redo", "MoveCursor", "ExtendSelection",
	"SetCursor", "AddCursor", "Drag", "SelectAll", "SelectWordAt",
	"OpenFind", "OpenReplace", "OpenFileSwitcher", "OpenGoToPosition",
	"CloseMenu", "FindNext", "FindPrevious", "ReplaceCurrent", "ReplaceAll",
	"ConfirmFileSwitcher", "ConfirmGoToPosition", "NewBuffer",
	"CloseCurrentBuffer", "SwitchBuffer", "SaveCurrentBuffer", "LoadFile",
	"AddOrSelectBuffer", "OpenOrSelectBuffer", "SetBufferPath", "SavedAs",
	"InsertNumbersAtCursors", "Quit",
}

// String names the InputKind for logging; unrecognized values print their
// numeric form rather than panicking.
func (k InputKind) String() string {
	if int(k) < len(inputKindNames) {
		return inputKindNames[k]
	}
	return "InputKind(" + strconv.Itoa(int(k)) + ")"
}

// CurrentBufferKind names one of the editor's scrollable buffers: the main
// document, or one of the four menu input fields. GetScrollableBufferMut
// maps a CurrentBufferKind to its *buffer.Buffer deterministically,
// independent of the current MenuMode — Main always means the real
// document buffer, never a menu field, even while a menu is open.
type CurrentBufferKind uint8

const (
	BufferKindMain CurrentBufferKind = iota
	BufferKindFind
	BufferKindReplace
	BufferKindFileSwitcher
	BufferKindGoToPosition
)

// MenuMode is the editor's modal state: Hidden, or one of four mutually
// exclusive overlay modes. MenuFind and MenuReplace distinguish Find-only
// from Find+Replace.
type MenuMode uint8

const (
	MenuHidden MenuMode = iota
	MenuFind
	MenuReplace
	MenuFileSwitcher
	MenuGoToPosition
)

// Viewport carries the geometry Dispatch needs to attempt scrolling the
// main buffer's cursor into view (position.AttemptToMakeXYVisible). A zero
// Viewport (CharDim.Width == 0) disables the scroll-into-view attempt,
// which is harmless for callers (like tests) that don't care about scroll.
type Viewport struct {
	Outer   position.Rect
	CharDim position.CharDim
}

// Input is the tagged-union command the host sends to Dispatch.
type Input struct {
	Kind     InputKind
	Target   CurrentBufferKind
	Text     string
	Move     cursor.Move
	Position position.Position
	BufferID collection.Index
	Path     string
	Viewport Viewport
	// Start is the value InsertNumbersAtCursors assigns to the first cursor
	// in the set's descending stored order (the last one in the document);
	// each following cursor gets the next number.
	Start int
}

// CmdKind tags Cmd's payload.
type CmdKind uint8

const (
	NoCmd CmdKind = iota
	SetClipboard
	LoadFileCmd
)

// Cmd is a side effect Dispatch asks the host to perform; the host owns
// the clipboard and the filesystem, not the editor.
type Cmd struct {
	Kind CmdKind
	Text string
	Path string
}

// EditedTransition reports how a buffer's dirty state changed across one
// Dispatch call, by comparing SavedAtHistoryPosition before and after.
type EditedTransition uint8

const (
	NoChange EditedTransition = iota
	ToEdited
	ToUnedited
)

// BufferView is the read-only snapshot of one open buffer.
type BufferView struct {
	Index       collection.Index
	Name        string
	IsDirty     bool
	CursorCount int
	LineCount   uint32
}

// MenuView is the read-only snapshot of the current menu state.
type MenuView struct {
	Mode                   MenuMode
	FindText               string
	ReplaceText            string
	MatchCount             int
	CurrentMatch           int
	FileSwitcherText       string
	FileSwitcherCandidates []string
	GoToPositionText       string
	GoToPositionError      bool
}

// Stats reports cheap, frequently-displayed facts about the current
// buffer, for a status line.
type Stats struct {
	LineCount  uint32
	CharCount  int
	CursorLine uint32
	CursorCol  uint32
}

// IndexState reports which buffer is selected and how many are open.
type IndexState struct {
	Current collection.Index
	Count   int
}

// View is the per-call read snapshot Dispatch returns. Producing it is
// idempotent: calling View-producing code twice with no Input between
// yields equal values.
type View struct {
	IndexState        IndexState
	Buffers           []BufferView
	EditedTransitions []EditedTransition
	Menu              MenuView
	Stats             Stats
	StatusLine        string
}
