// Package terminal queries the controlling terminal.
package terminal

import (
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// GetSize returns the width and height of the terminal behind f.
// Falls back to defaults if the size cannot be determined.
func GetSize(f *os.File) (width, height int) {
	width, height, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// GetWidth returns the current width of stdout.
func GetWidth() int {
	width, _ := GetSize(os.Stdout)
	return width
}

// IsInteractive reports whether f is attached to a terminal. Piped input is
// not echoed, so the game loop prints commands it reads from a pipe.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
