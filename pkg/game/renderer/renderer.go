// Package renderer turns puzzle events into messages and frames.
package renderer

import (
	"sync"

	"github.com/leonelquinteros/gotext"

	"hexmath/pkg/game/puzzle"
)

// MaxMessages is the number of messages kept for the messages pane
const MaxMessages = 5

// Display is the puzzle.Listener that keeps the message log and redraws the
// renderer when the engine changes outside of the input loop.
type Display struct {
	mu       sync.Mutex
	drawMu   sync.Mutex
	r        Renderer
	snapshot func() puzzle.Snapshot
	messages []string
}

// NewDisplay creates a display drawing with r
func NewDisplay(r Renderer) *Display {
	return &Display{
		r:        r,
		messages: make([]string, 0, MaxMessages),
	}
}

// Attach sets where frames get their state from
func (d *Display) Attach(snapshot func() puzzle.Snapshot) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.snapshot = snapshot
}

// OnEvent records a message for the event, if it deserves one
func (d *Display) OnEvent(e puzzle.Event) {
	var msg string

	switch e.Kind {
	case puzzle.EventLevelLoaded:
		d.ClearMessages()
		if e.Level != nil {
			msg = gotext.Get("Level %s: make %d with three tiles.", e.Level.Name, e.Level.Target)
		}
	case puzzle.EventAttemptFinished:
		if e.Correct {
			msg = "CORRECT{" + gotext.Get("Correct!") + "} " + e.Formula
		} else {
			msg = "WRONG{" + gotext.Get("Not quite.") + "} " + e.Formula
		}
	case puzzle.EventLevelCompleted:
		msg = gotext.Get("Level complete! Type ACTION{next} to continue.")
	case puzzle.EventAllLevelsCompleted:
		msg = gotext.Get("You have completed every level!")
	case puzzle.EventNoMoreLevels:
		msg = gotext.Get("This is the last level.")
	case puzzle.EventCooldownFinished:
		d.Redraw()
		return
	default:
		return
	}

	if msg != "" {
		d.AddMessage(msg)
	}
}

// AddMessage adds a message to the log, keeping only the most recent ones
func (d *Display) AddMessage(msg string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.messages = append(d.messages, msg)
	if len(d.messages) > MaxMessages {
		d.messages = d.messages[len(d.messages)-MaxMessages:]
	}
}

// ClearMessages clears all messages
func (d *Display) ClearMessages() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.messages = d.messages[:0]
}

// Messages returns a copy of the message log, oldest first
func (d *Display) Messages() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.messages...)
}

// Redraw clears the screen and renders a full frame
func (d *Display) Redraw() {
	d.mu.Lock()
	snapshot := d.snapshot
	messages := append([]string(nil), d.messages...)
	d.mu.Unlock()

	if snapshot == nil || d.r == nil {
		return
	}

	d.drawMu.Lock()
	defer d.drawMu.Unlock()
	d.r.Clear()
	d.r.RenderFrame(snapshot(), messages)
}
