// Package puzzle implements the tile selection state machine: tiles are
// tapped into an expression, evaluated once three are chosen, and released
// again after a short cool-down.
package puzzle

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"hexmath/pkg/engine/logging"
	"hexmath/pkg/game/expr"
	"hexmath/pkg/game/history"
	"hexmath/pkg/game/level"
	"hexmath/pkg/game/tile"
)

// MaxMoves is the number of tiles in one expression
const MaxMoves = 3

// DefaultCooldown is how long used tiles stay locked after an attempt
const DefaultCooldown = time.Second

// State is the selection state of the engine
type State int

const (
	Idle       State = iota // Nothing selected
	Selecting               // One or two tiles selected
	Evaluating              // Third tile added, result being computed
	Locked                  // Attempt finished, waiting for the cool-down
)

// String returns the name of the state
func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Selecting:
		return "Selecting"
	case Evaluating:
		return "Evaluating"
	case Locked:
		return "Locked"
	default:
		return "Unknown"
	}
}

// TapResult describes what a tap did
type TapResult int

const (
	TapSelected         TapResult = iota // Tile added to the selection
	TapDeselected                        // Tile removed from the selection
	TapEvaluated                         // Tile added and the expression evaluated
	TapIgnoredNoLevel                    // No level is loaded
	TapIgnoredCompleted                  // The level is already solved
	TapIgnoredLocked                     // Cool-down in progress
	TapIgnoredUnknown                    // No tile at that position
	TapIgnoredUsed                       // Tile was used in the last attempt
	TapIgnoredFull                       // Selection is at capacity
)

// Ignored reports whether the tap left the engine unchanged
func (r TapResult) Ignored() bool {
	return r >= TapIgnoredNoLevel
}

// String returns a short description of the result
func (r TapResult) String() string {
	switch r {
	case TapSelected:
		return "selected"
	case TapDeselected:
		return "deselected"
	case TapEvaluated:
		return "evaluated"
	case TapIgnoredNoLevel:
		return "ignored: no level"
	case TapIgnoredCompleted:
		return "ignored: level completed"
	case TapIgnoredLocked:
		return "ignored: locked"
	case TapIgnoredUnknown:
		return "ignored: unknown tile"
	case TapIgnoredUsed:
		return "ignored: tile used"
	case TapIgnoredFull:
		return "ignored: selection full"
	default:
		return "unknown"
	}
}

// Snapshot is a copy of the engine state for display
type Snapshot struct {
	Level     *level.Level
	Tiles     []tile.Tile
	Selection []int
	Formula   string
	History   []history.Entry
	State     State
	Completed bool
}

// Engine owns the tiles, selection and history of the level being played.
// All methods are safe to call from the cool-down goroutine and the input
// loop at the same time. Events are dispatched after the lock is released.
type Engine struct {
	mu sync.Mutex

	listener  Listener
	scheduler Scheduler
	cooldown  time.Duration

	level     *level.Level
	tiles     *tile.Registry
	selection []int
	history   *history.History
	formula   string
	state     State
	completed bool

	pending    Timer
	generation uint64
}

// Option configures an Engine
type Option func(*Engine)

// WithScheduler replaces the wall-clock scheduler
func WithScheduler(s Scheduler) Option {
	return func(e *Engine) {
		e.scheduler = s
	}
}

// WithCooldown sets the locked duration after an attempt
func WithCooldown(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.cooldown = d
		}
	}
}

// NewEngine creates an engine with no level loaded
func NewEngine(listener Listener, opts ...Option) *Engine {
	if listener == nil {
		listener = nopListener{}
	}
	e := &Engine{
		listener:  listener,
		scheduler: RealScheduler{},
		cooldown:  DefaultCooldown,
		history:   history.New(),
		selection: make([]int, 0, MaxMoves),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load replaces the current level, discarding tiles, selection, history and
// any pending cool-down.
func (e *Engine) Load(lvl *level.Level) error {
	tiles, err := tile.NewRegistry(lvl)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.cancelCooldown()
	e.level = lvl
	e.tiles = tiles
	e.selection = e.selection[:0]
	e.history.Clear()
	e.formula = ""
	e.state = Idle
	e.completed = false
	events := []Event{
		{Kind: EventLevelLoaded, Level: lvl},
		{Kind: EventFormulaChanged, Level: lvl},
	}
	e.mu.Unlock()

	logging.Log.WithFields(logrus.Fields{
		"level":  lvl.Name,
		"target": lvl.Target,
	}).Info("level loaded")

	e.dispatch(events)
	return nil
}

// Tap handles a tap on the tile at position
func (e *Engine) Tap(position int) TapResult {
	e.mu.Lock()
	res, events := e.tap(position)
	e.mu.Unlock()

	if res.Ignored() {
		logging.Log.WithFields(logrus.Fields{
			"tile":   position,
			"reason": res.String(),
		}).Debug("tap ignored")
	}

	e.dispatch(events)
	return res
}

// TapLetter handles a tap on the tile carrying letter
func (e *Engine) TapLetter(letter string) TapResult {
	e.mu.Lock()
	if e.tiles == nil {
		e.mu.Unlock()
		return TapIgnoredNoLevel
	}
	t, ok := e.tiles.ByLetter(letter)
	e.mu.Unlock()

	if !ok {
		return TapIgnoredUnknown
	}
	return e.Tap(t.Position)
}

func (e *Engine) tap(position int) (TapResult, []Event) {
	if e.tiles == nil {
		return TapIgnoredNoLevel, nil
	}
	if e.completed {
		return TapIgnoredCompleted, nil
	}
	if e.state == Locked || e.state == Evaluating {
		return TapIgnoredLocked, nil
	}

	t, ok := e.tiles.Tile(position)
	if !ok {
		return TapIgnoredUnknown, nil
	}

	if idx := e.selectionIndex(position); idx >= 0 {
		e.selection = append(e.selection[:idx], e.selection[idx+1:]...)
		e.tiles.SetSelected(position, false)
		e.state = e.selectingState()
		e.formula = expr.Formula(e.terms())
		return TapDeselected, []Event{e.formulaEvent()}
	}

	if t.IsUsed() {
		return TapIgnoredUsed, nil
	}
	if len(e.selection) >= MaxMoves {
		return TapIgnoredFull, nil
	}

	e.selection = append(e.selection, position)
	e.tiles.SetSelected(position, true)
	e.state = e.selectingState()

	if len(e.selection) < MaxMoves {
		e.formula = expr.Formula(e.terms())
		return TapSelected, []Event{e.formulaEvent()}
	}

	return TapEvaluated, e.evaluate()
}

// evaluate scores the full selection, records it and locks the engine.
func (e *Engine) evaluate() []Event {
	e.state = Evaluating

	terms := e.terms()
	result := expr.Evaluate(terms)
	correct := expr.Matches(result, e.level.Target)
	e.formula = expr.FormulaWithResult(terms, result)

	events := []Event{
		e.formulaEvent(),
		{Kind: EventAttemptFinished, Level: e.level, Formula: e.formula, Result: result, Correct: correct},
	}

	e.history.Add(e.formula, correct)
	events = append(events, Event{Kind: EventHistoryAppended, Level: e.level, Formula: e.formula, Correct: correct})

	if correct {
		e.completed = true
		events = append(events, Event{Kind: EventLevelCompleted, Level: e.level, Formula: e.formula, Result: result, Correct: true})
	}

	logging.Log.WithFields(logrus.Fields{
		"level":    e.level.Name,
		"formula":  e.formula,
		"target":   e.level.Target,
		"correct":  correct,
		"attempts": e.history.Len(),
	}).Info("attempt finished")

	for _, p := range e.selection {
		e.tiles.SetUsed(p, true)
	}
	e.selection = e.selection[:0]
	e.state = Locked
	e.scheduleCooldown()

	return events
}

func (e *Engine) scheduleCooldown() {
	gen := e.generation
	e.pending = e.scheduler.AfterFunc(e.cooldown, func() {
		e.finishCooldown(gen)
	})
}

// cancelCooldown stops any pending cool-down. The generation bump makes a
// callback that has already started a no-op.
func (e *Engine) cancelCooldown() {
	if e.pending != nil {
		e.pending.Stop()
		e.pending = nil
	}
	e.generation++
}

func (e *Engine) finishCooldown(gen uint64) {
	e.mu.Lock()
	if gen != e.generation || e.state != Locked {
		e.mu.Unlock()
		logging.Log.WithField("generation", gen).Debug("stale cool-down dropped")
		return
	}

	e.pending = nil
	released := e.tiles.UsedPositions()
	e.tiles.Reset()
	e.formula = ""
	e.state = Idle
	events := []Event{
		e.formulaEvent(),
		{Kind: EventCooldownFinished, Level: e.level},
	}
	e.mu.Unlock()

	logging.Log.WithField("tiles", released).Debug("cool-down finished")
	e.dispatch(events)
}

func (e *Engine) dispatch(events []Event) {
	for _, ev := range events {
		e.listener.OnEvent(ev)
	}
}

func (e *Engine) formulaEvent() Event {
	return Event{Kind: EventFormulaChanged, Level: e.level, Formula: e.formula}
}

func (e *Engine) selectingState() State {
	if len(e.selection) == 0 {
		return Idle
	}
	return Selecting
}

func (e *Engine) selectionIndex(position int) int {
	for i, p := range e.selection {
		if p == position {
			return i
		}
	}
	return -1
}

func (e *Engine) terms() []expr.Term {
	terms := make([]expr.Term, 0, len(e.selection))
	for _, p := range e.selection {
		terms = append(terms, expr.Term{
			Op:    e.tiles.OperatorSymbol(p),
			Value: e.tiles.Value(p),
		})
	}
	return terms
}

// Close cancels any pending cool-down
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelCooldown()
}

// State returns the current selection state
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Completed returns whether the current level has been solved
func (e *Engine) Completed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.completed
}

// Level returns the level being played, or nil
func (e *Engine) Level() *level.Level {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.level
}

// Snapshot returns a copy of the engine state
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := Snapshot{
		Level:     e.level,
		Selection: append([]int(nil), e.selection...),
		Formula:   e.formula,
		History:   e.history.Entries(),
		State:     e.state,
		Completed: e.completed,
	}
	if e.tiles != nil {
		for _, t := range e.tiles.Tiles() {
			s.Tiles = append(s.Tiles, *t)
		}
	}
	return s
}
