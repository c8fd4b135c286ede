package ui

import (
	"fmt"

	"github.com/cornish/revu/versions"
)

// ChooserFocus is the part of the chooser that receives keys.
type ChooserFocus int

const (
	FocusBase ChooserFocus = iota
	FocusHead
	FocusButtons
)

// Chooser buttons, left to right.
const (
	ButtonBrowseBase = iota
	ButtonBrowseHead
	ButtonCompare
	buttonCount
)

const (
	chooserWidth    = 48
	chooserListRows = 6
)

// ChooserView is the keyboard-driven popover over a versions.Chooser.
type ChooserView struct {
	chooser *versions.Chooser
	focus   ChooserFocus
	cursor  [2]int // List cursors for FocusBase and FocusHead
	button  int
}

// NewChooserView wraps c.
func NewChooserView(c *versions.Chooser) *ChooserView {
	return &ChooserView{chooser: c, button: ButtonCompare}
}

// Chooser returns the wrapped chooser.
func (v *ChooserView) Chooser() *versions.Chooser {
	return v.chooser
}

// Reset focuses the old version list and puts the list cursors on the
// pending versions.
func (v *ChooserView) Reset() {
	v.focus = FocusBase
	v.button = ButtonCompare
	v.cursor[FocusBase] = selectedIndex(v.chooser.BaseOptions())
	v.cursor[FocusHead] = selectedIndex(v.chooser.HeadOptions())
}

func selectedIndex(opts []versions.Option) int {
	for i, o := range opts {
		if o.Selected {
			return i
		}
	}
	return 0
}

// Focus returns the focused part.
func (v *ChooserView) Focus() ChooserFocus {
	return v.focus
}

// Cursor returns the list cursor of the focused list.
func (v *ChooserView) Cursor() int {
	if v.focus == FocusButtons {
		return v.button
	}
	return v.cursor[v.focus]
}

// FocusNext cycles focus: old list, new list, buttons.
func (v *ChooserView) FocusNext() {
	v.focus = (v.focus + 1) % 3
}

// FocusPrev cycles focus backwards.
func (v *ChooserView) FocusPrev() {
	v.focus = (v.focus + 2) % 3
}

func (v *ChooserView) options(f ChooserFocus) []versions.Option {
	if f == FocusHead {
		return v.chooser.HeadOptions()
	}
	return v.chooser.BaseOptions()
}

// Move moves the cursor of the focused list, or the focused button.
func (v *ChooserView) Move(delta int) {
	if v.focus == FocusButtons {
		v.button = min(max(v.button+delta, 0), buttonCount-1)
		return
	}
	n := len(v.options(v.focus))
	if n == 0 {
		return
	}
	v.cursor[v.focus] = min(max(v.cursor[v.focus]+delta, 0), n-1)
}

// Activate acts on the focused element. For lists it picks the version
// under the cursor when it is selectable. For buttons it returns the route
// to navigate to; ok is false when the button is disabled.
func (v *ChooserView) Activate() (route string, ok bool) {
	switch v.focus {
	case FocusBase, FocusHead:
		opts := v.options(v.focus)
		idx := v.cursor[v.focus]
		if idx >= len(opts) || !opts[idx].Selectable {
			return "", false
		}
		if v.focus == FocusBase {
			v.chooser.SetBase(opts[idx].Item.ID)
		} else {
			v.chooser.SetHead(opts[idx].Item.ID)
		}
		return "", false
	default:
		switch v.button {
		case ButtonBrowseBase:
			return v.chooser.BrowseBase()
		case ButtonBrowseHead:
			return v.chooser.BrowseHead()
		default:
			return v.chooser.Submit()
		}
	}
}

func (v *ChooserView) buttonEnabled(b int) bool {
	base, head := v.chooser.Pending()
	switch b {
	case ButtonBrowseBase:
		return base != 0
	case ButtonBrowseHead:
		return head != 0
	default:
		return v.chooser.CanSubmit()
	}
}

// Dialog builds the popover.
func (v *ChooserView) Dialog(box BoxChars, styles Styles) *DialogBuilder {
	db := NewDialogBuilder(chooserWidth, box, styles)
	db.AddTitleBorder(" Compare versions ")

	if v.chooser.Loading() {
		db.AddEmptyLine()
		db.AddCenteredText("Loading versions…")
		db.AddEmptyLine()
		db.AddBottomBorder()
		return db
	}

	v.addList(db, FocusBase, " Old version")
	db.AddSeparator()
	v.addList(db, FocusHead, " New version")
	db.AddSeparator()

	labels := [buttonCount]string{"Browse old", "Browse new", "Compare"}
	row := ""
	for b, label := range labels {
		text := "[ " + label + " ]"
		switch {
		case v.focus == FocusButtons && v.button == b:
			text = db.selected + text + db.base
		case !v.buttonEnabled(b):
			text = db.disabled + text + db.base
		}
		if b > 0 {
			row += " "
		}
		row += text
	}
	db.AddCenteredText(row)
	db.AddCenteredText("Tab focus · Enter select · Esc close")
	db.AddBottomBorder()
	return db
}

func (v *ChooserView) addList(db *DialogBuilder, f ChooserFocus, title string) {
	db.AddText(title)
	opts := v.options(f)
	if len(opts) == 0 {
		db.AddText("   (no versions)")
		return
	}

	cursor := v.cursor[f]
	start := 0
	if cursor >= chooserListRows {
		start = cursor - chooserListRows + 1
	}
	end := min(start+chooserListRows, len(opts))

	for i := start; i < end; i++ {
		o := opts[i]
		mark := "  "
		if o.Selected {
			mark = "• "
		}
		text := fmt.Sprintf(" %s%s", mark, o.Item.Version)
		if o.Channel == versions.ChannelUnlisted {
			text += " (unlisted)"
		}
		db.AddItem(text, v.focus == f && i == cursor, !o.Selectable)
	}
}

// Overlay draws the chooser centered over screen.
func (v *ChooserView) Overlay(screen []string, width, height int, box BoxChars, styles Styles) []string {
	return v.Dialog(box, styles).Overlay(screen, width, height)
}
