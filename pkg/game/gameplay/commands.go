package gameplay

import (
	"sort"
	"strings"

	"github.com/leonelquinteros/gotext"

	"hexmath/pkg/engine/input"
	"hexmath/pkg/game/puzzle"
)

// Messenger receives feedback that no engine event carries
type Messenger interface {
	AddMessage(msg string)
}

// Apply runs the intents of one input line in order and reports whether the
// player asked to quit. Intents after a quit are not run.
func (s *Session) Apply(intents []input.Intent, m Messenger) (quit bool) {
	for _, in := range intents {
		switch in.Action {
		case input.ActionTap:
			s.applyTap(in, m)
		case input.ActionResetLevel:
			if err := s.ResetCurrentLevel(); err != nil {
				m.AddMessage("WRONG{" + gotext.Get("Could not reset the level.") + "}")
			}
		case input.ActionNextLevel:
			s.applyNext(m)
		case input.ActionHelp:
			m.AddMessage(HelpText())
		case input.ActionQuit:
			return true
		default:
			m.AddMessage(gotext.Get("Unknown command: %s", in.Code))
		}
	}
	return false
}

func (s *Session) applyTap(in input.Intent, m Messenger) {
	var res puzzle.TapResult
	if in.Letter != "" {
		res = s.TapLetter(in.Letter)
	} else {
		res = s.TapPosition(in.Position)
	}

	switch res {
	case puzzle.TapIgnoredUnknown:
		m.AddMessage(gotext.Get("There is no tile %s.", strings.ToUpper(in.Code)))
	case puzzle.TapIgnoredUsed:
		m.AddMessage(gotext.Get("Tile %s was just used, wait a moment.", strings.ToUpper(in.Code)))
	case puzzle.TapIgnoredLocked:
		m.AddMessage(gotext.Get("Wait for the tiles to reset."))
	}
}

func (s *Session) applyNext(m Messenger) {
	if _, err := s.AdvanceLevel(); err != nil {
		m.AddMessage("WRONG{" + gotext.Get("Could not load the next level.") + "}")
	}
}

// HelpText lists the command words with their aliases
func HelpText() string {
	byAction := input.GetBindingsByAction()
	actions := make([]input.Action, 0, len(byAction))
	for a := range byAction {
		actions = append(actions, a)
	}
	sort.Slice(actions, func(i, j int) bool { return actions[i] < actions[j] })

	parts := []string{gotext.Get("Type tile letters to tap them.")}
	for _, a := range actions {
		words := make([]string, 0, len(byAction[a]))
		for _, code := range byAction[a] {
			words = append(words, "ACTION{"+code+"}")
		}
		parts = append(parts, "GT{"+input.ActionName(a)+"}: "+strings.Join(words, "/"))
	}
	return strings.Join(parts, " ")
}
