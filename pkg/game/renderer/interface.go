package renderer

import (
	"hexmath/pkg/game/puzzle"
)

// TextStyle represents different text styling options
type TextStyle int

const (
	StyleNormal TextStyle = iota
	StyleTile
	StyleTileSelected
	StyleTileUsed
	StyleTarget
	StyleFormula
	StyleCorrect
	StyleWrong
	StyleAction
	StyleActionShort
	StyleSubtle
)

// Renderer defines the interface for display backends
type Renderer interface {
	// Init initializes the renderer (colors, etc.)
	Init()

	// Clear clears the display
	Clear()

	// RenderFrame renders a complete frame: pyramid, formula, history,
	// messages and the input prompt
	RenderFrame(s puzzle.Snapshot, messages []string)

	// StyleText applies a style to text and returns the styled string
	StyleText(text string, style TextStyle) string

	// FormatText formats a message with the renderer's markup system
	FormatText(msg string, args ...any) string

	// ShowMessage displays a message to the user
	ShowMessage(msg string)
}
