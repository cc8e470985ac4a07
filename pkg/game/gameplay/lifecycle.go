// Package gameplay ties the level catalog to the puzzle engine and exposes
// the controls the player has: tapping tiles, resetting and advancing.
package gameplay

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"hexmath/pkg/engine/logging"
	"hexmath/pkg/game/level"
	"hexmath/pkg/game/puzzle"
)

// ErrNotStarted is returned by controls used before Start
var ErrNotStarted = errors.New("session not started")

// Session plays through the levels of a Source in order
type Session struct {
	source   level.Source
	listener puzzle.Listener
	engine   *puzzle.Engine

	mu      sync.Mutex
	index   int
	started bool
}

// NewSession creates a session. Engine options are passed through to the puzzle engine.
func NewSession(source level.Source, listener puzzle.Listener, opts ...puzzle.Option) *Session {
	s := &Session{
		source:   source,
		listener: listener,
	}
	s.engine = puzzle.NewEngine(puzzle.ListenerFunc(s.onEngineEvent), opts...)
	return s
}

// Start loads the level at index. On error the previous level, if any, stays in play.
func (s *Session) Start(index int) error {
	return s.load(index)
}

// ResetCurrentLevel reloads the current level from the source, clearing all state
func (s *Session) ResetCurrentLevel() error {
	s.mu.Lock()
	started, index := s.started, s.index
	s.mu.Unlock()

	if !started {
		return ErrNotStarted
	}
	logging.Log.WithField("index", index).Info("level reset")
	return s.load(index)
}

// AdvanceLevel moves to the next level. It returns false, without error,
// when the current level is the last one.
func (s *Session) AdvanceLevel() (bool, error) {
	s.mu.Lock()
	started, index := s.started, s.index
	s.mu.Unlock()

	if !started {
		return false, ErrNotStarted
	}
	if level.IsLast(s.source, index) {
		logging.Log.WithField("index", index).Info("no more levels")
		s.emit(puzzle.Event{Kind: puzzle.EventNoMoreLevels, Level: s.engine.Level()})
		return false, nil
	}
	if err := s.load(index + 1); err != nil {
		return false, err
	}
	return true, nil
}

// TapLetter taps the tile with the given letter
func (s *Session) TapLetter(letter string) puzzle.TapResult {
	return s.engine.TapLetter(letter)
}

// TapPosition taps the tile at the given pyramid position
func (s *Session) TapPosition(position int) puzzle.TapResult {
	return s.engine.Tap(position)
}

// Index returns the current level index
func (s *Session) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// LevelCount returns the number of levels in the source
func (s *Session) LevelCount() int {
	return s.source.Count()
}

// Snapshot returns the current engine state
func (s *Session) Snapshot() puzzle.Snapshot {
	return s.engine.Snapshot()
}

// Close stops any pending cool-down
func (s *Session) Close() {
	s.engine.Close()
}

func (s *Session) load(index int) error {
	lvl, err := s.source.Level(index)
	if err != nil {
		logging.Log.WithFields(logrus.Fields{
			"index": index,
			"error": err,
		}).Error("level failed to load")
		return fmt.Errorf("loading level %d: %w", index, err)
	}

	// The index must be current before LevelLoaded reaches the listener.
	s.mu.Lock()
	prevIndex, prevStarted := s.index, s.started
	s.index = index
	s.started = true
	s.mu.Unlock()

	if err := s.engine.Load(lvl); err != nil {
		s.mu.Lock()
		s.index, s.started = prevIndex, prevStarted
		s.mu.Unlock()
		return fmt.Errorf("loading level %d: %w", index, err)
	}
	return nil
}

func (s *Session) onEngineEvent(e puzzle.Event) {
	s.emit(e)

	if e.Kind != puzzle.EventLevelCompleted {
		return
	}
	s.mu.Lock()
	index := s.index
	s.mu.Unlock()
	if level.IsLast(s.source, index) {
		logging.Log.Info("all levels completed")
		s.emit(puzzle.Event{Kind: puzzle.EventAllLevelsCompleted, Level: e.Level})
	}
}

func (s *Session) emit(e puzzle.Event) {
	if s.listener != nil {
		s.listener.OnEvent(e)
	}
}
