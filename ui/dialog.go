package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// BoxChars holds the characters used to draw dialog frames
type BoxChars struct {
	TopLeft     string
	TopRight    string
	BottomLeft  string
	BottomRight string
	Horizontal  string
	Vertical    string
	TeeLeft     string
	TeeRight    string
}

// UnicodeBox draws single-line frames
var UnicodeBox = BoxChars{
	TopLeft: "┌", TopRight: "┐", BottomLeft: "└", BottomRight: "┘",
	Horizontal: "─", Vertical: "│", TeeLeft: "├", TeeRight: "┤",
}

// ASCIIBox is the fallback for terminals without UTF-8
var ASCIIBox = BoxChars{
	TopLeft: "+", TopRight: "+", BottomLeft: "+", BottomRight: "+",
	Horizontal: "-", Vertical: "|", TeeLeft: "+", TeeRight: "+",
}

// Box returns the frame set for the terminal
func Box(ascii bool) BoxChars {
	if ascii {
		return ASCIIBox
	}
	return UnicodeBox
}

// DialogBuilder helps construct consistent dialogs
type DialogBuilder struct {
	box        BoxChars
	width      int      // Total box width including borders
	innerWidth int      // Width inside borders
	lines      []string // Built dialog lines
	base       string   // Dialog fg/bg escape
	selected   string   // Selected item fg/bg escape
	disabled   string   // Disabled item foreground escape
}

// NewDialogBuilder creates a new dialog builder
func NewDialogBuilder(width int, box BoxChars, styles Styles) *DialogBuilder {
	ui := styles.Theme.UI
	return &DialogBuilder{
		box:        box,
		width:      width,
		innerWidth: max(width-2, 0),
		base:       ColorToANSI(ui.DialogFg, ui.DialogBg),
		selected:   ColorToANSI(ui.DialogButtonFg, ui.DialogButton),
		disabled:   ColorToANSIFg(ui.DisabledFg),
	}
}

// AddTitleBorder adds the top border with an embedded title
func (db *DialogBuilder) AddTitleBorder(title string) {
	title = runewidth.Truncate(title, db.innerWidth, "")
	tw := runewidth.StringWidth(title)
	padLeft := (db.innerWidth - tw) / 2
	padRight := db.innerWidth - tw - padLeft
	db.lines = append(db.lines, db.box.TopLeft+
		strings.Repeat(db.box.Horizontal, padLeft)+
		title+
		strings.Repeat(db.box.Horizontal, padRight)+
		db.box.TopRight)
}

// AddBottomBorder adds the bottom border
func (db *DialogBuilder) AddBottomBorder() {
	db.lines = append(db.lines, db.box.BottomLeft+strings.Repeat(db.box.Horizontal, db.innerWidth)+db.box.BottomRight)
}

// AddEmptyLine adds an empty line with borders
func (db *DialogBuilder) AddEmptyLine() {
	db.lines = append(db.lines, db.box.Vertical+strings.Repeat(" ", db.innerWidth)+db.box.Vertical)
}

// AddText adds a line of text (left-aligned, padded)
func (db *DialogBuilder) AddText(text string) {
	db.lines = append(db.lines, db.box.Vertical+db.PadText(text)+db.box.Vertical)
}

// AddCenteredText adds a line of centered text
func (db *DialogBuilder) AddCenteredText(text string) {
	db.lines = append(db.lines, db.box.Vertical+db.CenterText(text)+db.box.Vertical)
}

// AddItem adds a list item. Selected items are highlighted and disabled
// items dimmed.
func (db *DialogBuilder) AddItem(text string, selected, disabled bool) {
	var line string
	switch {
	case selected:
		line = db.box.Vertical + db.selected + db.PadText(text) + db.base + db.box.Vertical
	case disabled:
		line = db.box.Vertical + db.disabled + db.PadText(text) + db.base + db.box.Vertical
	default:
		line = db.box.Vertical + db.PadText(text) + db.box.Vertical
	}
	db.lines = append(db.lines, line)
}

// AddSeparator adds a horizontal separator line
func (db *DialogBuilder) AddSeparator() {
	db.lines = append(db.lines, db.box.TeeLeft+strings.Repeat(db.box.Horizontal, db.innerWidth)+db.box.TeeRight)
}

// PadText pads text to innerWidth (left-aligned)
func (db *DialogBuilder) PadText(s string) string {
	sw := ansi.StringWidth(s)
	if sw > db.innerWidth {
		return ansi.Truncate(s, db.innerWidth, "")
	}
	return s + strings.Repeat(" ", db.innerWidth-sw)
}

// CenterText centers text within innerWidth
func (db *DialogBuilder) CenterText(s string) string {
	sw := ansi.StringWidth(s)
	if sw >= db.innerWidth {
		return ansi.Truncate(s, db.innerWidth, "")
	}
	padLeft := (db.innerWidth - sw) / 2
	return strings.Repeat(" ", padLeft) + s + strings.Repeat(" ", db.innerWidth-sw-padLeft)
}

// Height returns the current height of the dialog
func (db *DialogBuilder) Height() int {
	return len(db.lines)
}

// Width returns the total width
func (db *DialogBuilder) Width() int {
	return db.width
}

// InnerWidth returns the inner width (for external calculations)
func (db *DialogBuilder) InnerWidth() int {
	return db.innerWidth
}

// Lines returns the built dialog lines
func (db *DialogBuilder) Lines() []string {
	return db.lines
}

// Overlay renders the dialog centered on the given screen lines
func (db *DialogBuilder) Overlay(screen []string, screenWidth, screenHeight int) []string {
	pos := db.Position(screenWidth, screenHeight)
	out := make([]string, len(screen))
	copy(out, screen)
	for i, line := range db.lines {
		y := pos.StartY + i
		if y >= 0 && y < len(out) {
			out[y] = OverlayLineAt(db.base+line+resetSGR, out[y], pos.StartX)
		}
	}
	return out
}

// DialogPosition is where a dialog sits on screen, for mouse handling
type DialogPosition struct {
	StartX int
	StartY int
	Width  int
	Height int
}

// Position returns where Overlay places the dialog
func (db *DialogBuilder) Position(screenWidth, screenHeight int) DialogPosition {
	return DialogPosition{
		StartX: max((screenWidth-db.width)/2, 0),
		StartY: max((screenHeight-len(db.lines))/2, 0),
		Width:  db.width,
		Height: len(db.lines),
	}
}

// Contains checks if screen coordinates are inside the dialog and returns
// them relative to its top-left corner
func (dp DialogPosition) Contains(x, y int) (inside bool, relX, relY int) {
	relX = x - dp.StartX
	relY = y - dp.StartY
	inside = relX >= 0 && relX < dp.Width && relY >= 0 && relY < dp.Height
	return inside, relX, relY
}

// OverlayLineAt draws top over base starting at cell offset, keeping the
// styled base content on both sides.
func OverlayLineAt(top, base string, offset int) string {
	baseWidth := ansi.StringWidth(base)
	topWidth := ansi.StringWidth(top)

	var sb strings.Builder
	if offset > 0 {
		sb.WriteString(ansi.Truncate(base, offset, ""))
		if baseWidth < offset {
			sb.WriteString(strings.Repeat(" ", offset-baseWidth))
		}
		sb.WriteString(resetSGR)
	}
	sb.WriteString(top)
	if end := offset + topWidth; end < baseWidth {
		sb.WriteString(ansi.Cut(base, end, baseWidth))
	}
	return sb.String()
}
