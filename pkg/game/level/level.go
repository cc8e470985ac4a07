// Package level defines puzzle levels and the catalog they are loaded from.
package level

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"hexmath/pkg/game/expr"
)

// TileCount is the fixed number of tiles in every level's pyramid.
const TileCount = 10

var (
	// ErrLevelIndex is returned when a level index does not exist.
	ErrLevelIndex = errors.New("level index out of range")
	// ErrMalformed is returned when level data cannot be turned into a playable level.
	ErrMalformed = errors.New("malformed level data")
)

// TileSpec is the immutable description of one tile.
type TileSpec struct {
	Letter   string
	Operator expr.Operator
	Operand  int
}

// Level is a validated, playable level.
type Level struct {
	Index  int
	Name   string
	Target int
	Tiles  [TileCount]TileSpec
}

// rawLevel mirrors one entry of the JSON level pack.
type rawLevel struct {
	LevelName    string        `json:"levelName"`
	TargetNumber *int          `json:"targetNumber"`
	Letters      []string      `json:"letters"`
	Operators    []string      `json:"operators"`
	Numbers      []json.Number `json:"numbers"`
}

// parse validates a single raw level. Every problem is reported as ErrMalformed.
func parse(index int, data []byte) (*Level, error) {
	var raw rawLevel
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: level %d: %v", ErrMalformed, index, err)
	}

	name := strings.TrimSpace(raw.LevelName)
	if name == "" {
		return nil, fmt.Errorf("%w: level %d: missing levelName", ErrMalformed, index)
	}
	if raw.TargetNumber == nil {
		return nil, fmt.Errorf("%w: level %d (%s): missing targetNumber", ErrMalformed, index, name)
	}

	for _, f := range []struct {
		field string
		n     int
	}{
		{"letters", len(raw.Letters)},
		{"operators", len(raw.Operators)},
		{"numbers", len(raw.Numbers)},
	} {
		if f.n != TileCount {
			return nil, fmt.Errorf("%w: level %d (%s): %s has %d entries, want %d",
				ErrMalformed, index, name, f.field, f.n, TileCount)
		}
	}

	lvl := &Level{
		Index:  index,
		Name:   name,
		Target: *raw.TargetNumber,
	}

	seen := make(map[string]int, TileCount)
	for i := 0; i < TileCount; i++ {
		letter := strings.TrimSpace(raw.Letters[i])
		if letter == "" {
			return nil, fmt.Errorf("%w: level %d (%s) tile %d: empty letter", ErrMalformed, index, name, i)
		}
		key := strings.ToUpper(letter)
		if prev, ok := seen[key]; ok {
			return nil, fmt.Errorf("%w: level %d (%s) tile %d: letter %q already used by tile %d",
				ErrMalformed, index, name, i, letter, prev)
		}
		seen[key] = i

		op, err := expr.ParseOperator(raw.Operators[i])
		if err != nil {
			return nil, fmt.Errorf("%w: level %d (%s) tile %d: %v", ErrMalformed, index, name, i, err)
		}

		operand, err := strconv.Atoi(raw.Numbers[i].String())
		if err != nil {
			return nil, fmt.Errorf("%w: level %d (%s) tile %d: operand %q is not an integer",
				ErrMalformed, index, name, i, raw.Numbers[i])
		}
		if operand < 0 {
			return nil, fmt.Errorf("%w: level %d (%s) tile %d: operand %d is negative",
				ErrMalformed, index, name, i, operand)
		}

		lvl.Tiles[i] = TileSpec{
			Letter:   letter,
			Operator: op,
			Operand:  operand,
		}
	}

	return lvl, nil
}
