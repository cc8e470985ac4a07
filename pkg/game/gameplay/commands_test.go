package gameplay

import (
	"strings"
	"testing"

	"hexmath/pkg/engine/input"
	"hexmath/pkg/game/puzzle"
)

type messageLog struct{ msgs []string }

func (m *messageLog) AddMessage(msg string) {
	m.msgs = append(m.msgs, msg)
}

func (m *messageLog) contains(sub string) bool {
	for _, msg := range m.msgs {
		if strings.Contains(msg, sub) {
			return true
		}
	}
	return false
}

func apply(s *Session, m Messenger, line string) bool {
	return s.Apply(input.MapToIntents(input.RawInput{Code: line}), m)
}

func startedSession(t *testing.T) (*Session, *kindRecorder) {
	t.Helper()
	s, _, rec := newSession(t, twoLevels)
	if err := s.Start(0); err != nil {
		t.Fatalf("Start(0) error = %v", err)
	}
	return s, rec
}

func TestApply_TapsInOrder(t *testing.T) {
	s, rec := startedSession(t)
	m := &messageLog{}

	if apply(s, m, "a c b") {
		t.Fatal("Apply() = quit, want false")
	}
	if !rec.has(puzzle.EventAttemptFinished) {
		t.Error("three taps did not finish an attempt")
	}
	snap := s.Snapshot()
	if len(snap.History) != 1 || snap.History[0].Formula != "5 x 2 - 3 = 7" {
		t.Errorf("History = %+v, want one entry 5 x 2 - 3 = 7", snap.History)
	}
}

func TestApply_TapByPosition(t *testing.T) {
	s, _ := startedSession(t)
	apply(s, &messageLog{}, "0 2")

	if got := s.Snapshot().Formula; got != "5 x 2" {
		t.Errorf("Formula = %q, want %q", got, "5 x 2")
	}
}

func TestApply_QuitStopsTheLine(t *testing.T) {
	s, _ := startedSession(t)
	if !apply(s, &messageLog{}, "q a") {
		t.Error("Apply(q a) = false, want quit")
	}
	if sel := s.Snapshot().Selection; len(sel) != 0 {
		t.Errorf("Selection = %v after quit, want empty", sel)
	}
}

func TestApply_Feedback(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"a+b", "Unknown command: a+b"},
		{"z", "There is no tile Z."},
		{"help", "ACTION{quit}"},
		{"?", "ACTION{reset}"},
	}

	for _, tt := range tests {
		s, _ := startedSession(t)
		m := &messageLog{}
		apply(s, m, tt.line)
		if !m.contains(tt.want) {
			t.Errorf("Apply(%q) messages = %q, want one containing %q", tt.line, m.msgs, tt.want)
		}
	}
}

func TestApply_TapWhileLocked(t *testing.T) {
	s, _ := startedSession(t)
	m := &messageLog{}
	apply(s, m, "acb d")

	if !m.contains("Wait for the tiles to reset.") {
		t.Errorf("messages = %q, want a locked notice", m.msgs)
	}
}

func TestApply_ResetAndNext(t *testing.T) {
	s, rec := startedSession(t)
	m := &messageLog{}

	apply(s, m, "a")
	apply(s, m, "reset")
	if sel := s.Snapshot().Selection; len(sel) != 0 {
		t.Errorf("Selection = %v after reset, want empty", sel)
	}

	apply(s, m, "next")
	if s.Index() != 1 {
		t.Errorf("Index() = %d after next, want 1", s.Index())
	}

	apply(s, m, "n")
	if s.Index() != 1 || !rec.has(puzzle.EventNoMoreLevels) {
		t.Errorf("next on the last level: index %d, NoMoreLevels %v", s.Index(), rec.has(puzzle.EventNoMoreLevels))
	}
}

func TestApply_BrokenNextLevel(t *testing.T) {
	s, _, _ := newSession(t, brokenSecond)
	if err := s.Start(0); err != nil {
		t.Fatal(err)
	}
	m := &messageLog{}
	apply(s, m, "next")

	if s.Index() != 0 {
		t.Errorf("Index() = %d, want 0", s.Index())
	}
	if !m.contains("Could not load the next level.") {
		t.Errorf("messages = %q, want a load failure", m.msgs)
	}
}

func TestHelpText(t *testing.T) {
	h := HelpText()
	for _, want := range []string{"ACTION{next}", "ACTION{n}", "ACTION{exit}", "GT{Quit}"} {
		if !strings.Contains(h, want) {
			t.Errorf("HelpText() = %q, missing %q", h, want)
		}
	}
}
