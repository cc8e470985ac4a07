// Package tile holds the ten hexagon tiles of the level being played.
package tile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zyedidia/generic/mapset"

	"hexmath/pkg/game/expr"
	"hexmath/pkg/game/level"
)

// Tile is one hexagon in the pyramid
type Tile struct {
	Position int
	Letter   string
	Operator expr.Operator
	Operand  int

	selected bool
	used     bool
}

// IsSelected returns whether the tile is part of the expression being built
func (t *Tile) IsSelected() bool {
	return t.selected
}

// IsUsed returns whether the tile took part in the last attempt and is waiting for reset
func (t *Tile) IsUsed() bool {
	return t.used
}

// Label returns the operator and operand as printed on the tile, e.g. "x2"
func (t *Tile) Label() string {
	return fmt.Sprintf("%s%d", t.Operator, t.Operand)
}

// Row returns the pyramid row (0 at the top) of a tile position.
// Rows hold 1, 2, 3 and 4 tiles.
func Row(position int) int {
	switch {
	case position < 1:
		return 0
	case position < 3:
		return 1
	case position < 6:
		return 2
	default:
		return 3
	}
}

// Registry owns the tiles of the current level.
type Registry struct {
	tiles []*Tile
	used  mapset.Set[int]
}

// NewRegistry creates fresh, unselected and unused tiles for lvl in level data order.
func NewRegistry(lvl *level.Level) (*Registry, error) {
	if lvl == nil {
		return nil, fmt.Errorf("%w: nil level", level.ErrMalformed)
	}

	r := &Registry{
		tiles: make([]*Tile, 0, level.TileCount),
		used:  mapset.New[int](),
	}
	for i, spec := range lvl.Tiles {
		r.tiles = append(r.tiles, &Tile{
			Position: i,
			Letter:   spec.Letter,
			Operator: spec.Operator,
			Operand:  spec.Operand,
		})
	}
	return r, nil
}

// Tiles returns all tiles ordered by position
func (r *Registry) Tiles() []*Tile {
	return r.tiles
}

// Tile returns the tile at position
func (r *Registry) Tile(position int) (*Tile, bool) {
	if position < 0 || position >= len(r.tiles) {
		return nil, false
	}
	return r.tiles[position], true
}

// ByLetter finds a tile by its display letter, ignoring case
func (r *Registry) ByLetter(letter string) (*Tile, bool) {
	letter = strings.TrimSpace(letter)
	for _, t := range r.tiles {
		if strings.EqualFold(t.Letter, letter) {
			return t, true
		}
	}
	return nil, false
}

// Value returns the operand of the tile at position
func (r *Registry) Value(position int) int {
	if t, ok := r.Tile(position); ok {
		return t.Operand
	}
	return 0
}

// OperatorSymbol returns the operator of the tile at position
func (r *Registry) OperatorSymbol(position int) expr.Operator {
	if t, ok := r.Tile(position); ok {
		return t.Operator
	}
	return 0
}

// SetSelected sets the selected flag. Legality is the caller's concern.
func (r *Registry) SetSelected(position int, selected bool) {
	if t, ok := r.Tile(position); ok {
		t.selected = selected
	}
}

// SetUsed sets the used flag. Clearing it also clears selected.
func (r *Registry) SetUsed(position int, used bool) {
	t, ok := r.Tile(position)
	if !ok {
		return
	}
	t.used = used
	if used {
		r.used.Put(position)
		return
	}
	t.selected = false
	r.used.Remove(position)
}

// UsedPositions returns the positions of used tiles in ascending order
func (r *Registry) UsedPositions() []int {
	positions := make([]int, 0, r.used.Size())
	r.used.Each(func(p int) {
		positions = append(positions, p)
	})
	sort.Ints(positions)
	return positions
}

// Reset clears the selected and used flags of every tile
func (r *Registry) Reset() {
	for _, t := range r.tiles {
		r.SetUsed(t.Position, false)
	}
}
