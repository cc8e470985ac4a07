package puzzle

import (
	"hexmath/pkg/game/level"
)

// EventKind identifies what changed in the engine
type EventKind int

const (
	EventLevelLoaded       EventKind = iota // A level was (re)loaded
	EventFormulaChanged                     // The displayed formula changed
	EventAttemptFinished                    // Three tiles were evaluated
	EventHistoryAppended                    // An attempt was recorded in the history
	EventCooldownFinished                   // Used tiles were released
	EventLevelCompleted                     // The target was hit
	EventAllLevelsCompleted                 // The final level was completed
	EventNoMoreLevels                       // Advance was requested on the final level
)

// String returns the name of the event kind
func (k EventKind) String() string {
	switch k {
	case EventLevelLoaded:
		return "LevelLoaded"
	case EventFormulaChanged:
		return "FormulaChanged"
	case EventAttemptFinished:
		return "AttemptFinished"
	case EventHistoryAppended:
		return "HistoryAppended"
	case EventCooldownFinished:
		return "CooldownFinished"
	case EventLevelCompleted:
		return "LevelCompleted"
	case EventAllLevelsCompleted:
		return "AllLevelsCompleted"
	case EventNoMoreLevels:
		return "NoMoreLevels"
	default:
		return "Unknown"
	}
}

// Event is delivered to a Listener after the engine state has changed.
// Only the fields relevant to Kind are set.
type Event struct {
	Kind    EventKind
	Level   *level.Level
	Formula string  // FormulaChanged, AttemptFinished, HistoryAppended
	Result  float64 // AttemptFinished
	Correct bool    // AttemptFinished, HistoryAppended
}

// Listener receives engine events synchronously
type Listener interface {
	OnEvent(e Event)
}

// ListenerFunc adapts a function to the Listener interface
type ListenerFunc func(e Event)

// OnEvent calls f(e)
func (f ListenerFunc) OnEvent(e Event) {
	f(e)
}

// nopListener discards events
type nopListener struct{}

func (nopListener) OnEvent(Event) {}
