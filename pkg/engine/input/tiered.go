package input

import (
	"sort"
	"strings"
	"time"
	"unicode"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceTerminal
	DevicePipe
)

// Action represents a high‑level intent in the game.
type Action int

const (
	ActionNone Action = iota

	// Tiles
	ActionTap

	// Level lifecycle
	ActionResetLevel
	ActionNextLevel

	// Meta / UI
	ActionHelp
	ActionQuit
)

// Intent is the high‑level description of what the player wants to do.
// Tap intents carry either a Letter or a Position; Position is -1 when the
// tile was named by letter.
type Intent struct {
	Action   Action
	Letter   string
	Position int
	Code     string
}

// RawInput is one line of input as read from a device.
type RawInput struct {
	Device    Device
	Code      string
	Timestamp time.Time
}

// bindings maps command words to actions. The one-letter aliases must not
// collide with tile letters A-J.
var bindings = map[string]Action{
	"reset":   ActionResetLevel,
	"r":       ActionResetLevel,
	"restart": ActionResetLevel,

	"next": ActionNextLevel,
	"n":    ActionNextLevel,

	"help": ActionHelp,
	"?":    ActionHelp,

	"quit": ActionQuit,
	"exit": ActionQuit,
	"q":    ActionQuit,
}

// MapToIntents splits a line into tokens and maps each one. Command words
// produce a single intent; any other token of letters and digits taps one
// tile per character, so "ace" taps A, C and E in order.
func MapToIntents(raw RawInput) []Intent {
	var intents []Intent
	for _, token := range strings.Fields(strings.ToLower(raw.Code)) {
		if act, ok := bindings[token]; ok {
			intents = append(intents, Intent{Action: act, Code: token})
			continue
		}
		intents = append(intents, tapIntents(token)...)
	}
	return intents
}

func tapIntents(token string) []Intent {
	for _, r := range token {
		if !unicode.IsLetter(r) && !isDigit(r) {
			return []Intent{{Action: ActionNone, Position: -1, Code: token}}
		}
	}

	intents := make([]Intent, 0, len(token))
	for _, r := range token {
		if isDigit(r) {
			intents = append(intents, Intent{Action: ActionTap, Position: int(r - '0'), Code: string(r)})
			continue
		}
		intents = append(intents, Intent{
			Action:   ActionTap,
			Letter:   strings.ToUpper(string(r)),
			Position: -1,
			Code:     string(r),
		})
	}
	return intents
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	switch a {
	case ActionTap:
		return "Tap"
	case ActionResetLevel:
		return "Reset Level"
	case ActionNextLevel:
		return "Next Level"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "None"
	}
}

// GetBindingsByAction returns the command words grouped by action.
func GetBindingsByAction() map[Action][]string {
	result := make(map[Action][]string)
	for code, act := range bindings {
		result[act] = append(result[act], code)
	}
	// Stable ordering so the help screen doesn't reshuffle.
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}
