package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/cornish/revu/config"
)

const helpWidth = 52

// HelpDialog lists every action with its keys.
func HelpDialog(kb *config.KeybindingsConfig, box BoxChars, styles Styles) *DialogBuilder {
	db := NewDialogBuilder(helpWidth, box, styles)
	db.AddTitleBorder(" Keyboard Shortcuts ")
	db.AddEmptyLine()

	nameWidth := 0
	for _, action := range config.AllActions() {
		nameWidth = max(nameWidth, runewidth.StringWidth(config.ActionNames[action]))
	}

	for _, action := range config.AllActions() {
		name := config.ActionNames[action]
		pad := nameWidth - runewidth.StringWidth(name)
		db.AddText("  " + name + strings.Repeat(" ", max(pad, 0)) + "  " + kb.GetBinding(action).DisplayString())
	}

	db.AddEmptyLine()
	db.AddCenteredText("MOUSE: click overview to jump, wheel scrolls")
	db.AddCenteredText("Press any key to continue...")
	db.AddBottomBorder()
	return db
}
