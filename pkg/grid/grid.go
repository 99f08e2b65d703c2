// Package grid provides the tile map the raycast engine walks.
package grid

import (
	"errors"
	"fmt"
	"math"
)

// Tile is a tile identifier. 0 is empty, anything else is a wall material.
type Tile = uint8

// Empty is the tile id of a walkable cell.
const Empty Tile = 0

var (
	ErrEmpty      = errors.New("grid: map has no cells")
	ErrRagged     = errors.New("grid: rows have different lengths")
	ErrOpenBorder = errors.New("grid: border cell is empty")
)

// Map is a rows × cols grid of tiles, indexed [y][x]. It is read-only once
// built.
type Map struct {
	tiles [][]Tile
	rows  int
	cols  int
}

// New builds a map from rows of tiles. The input is copied.
func New(rows [][]Tile) (*Map, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmpty
	}
	cols := len(rows[0])
	tiles := make([][]Tile, len(rows))
	for y, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRagged, y, len(row), cols)
		}
		tiles[y] = append([]Tile(nil), row...)
	}
	return &Map{tiles: tiles, rows: len(rows), cols: cols}, nil
}

// MustNew is like New but panics on error. Intended for literals.
func MustNew(rows [][]Tile) *Map {
	m, err := New(rows)
	if err != nil {
		panic(err)
	}
	return m
}

// Rows returns the map height.
func (m *Map) Rows() int { return m.rows }

// Cols returns the map width.
func (m *Map) Cols() int { return m.cols }

// At returns the tile at column x, row y. It does not bounds check.
func (m *Map) At(x, y int) Tile {
	return m.tiles[y][x]
}

// InBounds reports whether (x, y) lies inside [0, cols) × [0, rows).
func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && x < m.cols && y >= 0 && y < m.rows
}

// Solid reports whether the cell containing the world point (x, y) is a wall.
// Points outside the map count as solid.
func (m *Map) Solid(x, y float64) bool {
	cx, cy := int(math.Floor(x)), int(math.Floor(y))
	if !m.InBounds(cx, cy) {
		return true
	}
	return m.tiles[cy][cx] != Empty
}

// Row returns a copy of row y.
func (m *Map) Row(y int) []Tile {
	return append([]Tile(nil), m.tiles[y]...)
}

// Validate checks that every border cell is a wall, which guarantees that
// every ray cast from an interior cell terminates inside the map.
func (m *Map) Validate() error {
	for x := 0; x < m.cols; x++ {
		if m.tiles[0][x] == Empty {
			return fmt.Errorf("%w at (%d, %d)", ErrOpenBorder, x, 0)
		}
		if m.tiles[m.rows-1][x] == Empty {
			return fmt.Errorf("%w at (%d, %d)", ErrOpenBorder, x, m.rows-1)
		}
	}
	for y := 0; y < m.rows; y++ {
		if m.tiles[y][0] == Empty {
			return fmt.Errorf("%w at (%d, %d)", ErrOpenBorder, 0, y)
		}
		if m.tiles[y][m.cols-1] == Empty {
			return fmt.Errorf("%w at (%d, %d)", ErrOpenBorder, m.cols-1, y)
		}
	}
	return nil
}

// Materials returns the distinct non-empty tile ids in ascending order.
func (m *Map) Materials() []Tile {
	var seen [256]bool
	for _, row := range m.tiles {
		for _, t := range row {
			seen[t] = true
		}
	}
	var out []Tile
	for id := 1; id < len(seen); id++ {
		if seen[id] {
			out = append(out, Tile(id))
		}
	}
	return out
}

// String renders the map in the text layout accepted by Parse. Tile ids
// above 9 have no digit and are written as '#', which parses back as 1, so
// only maps using ids 0-9 survive a round trip.
func (m *Map) String() string {
	buf := make([]byte, 0, m.rows*(m.cols+1))
	for _, row := range m.tiles {
		for _, t := range row {
			buf = append(buf, tileRune(t))
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}

func tileRune(t Tile) byte {
	switch {
	case t == Empty:
		return '.'
	case t <= 9:
		return '0' + t
	default:
		return '#'
	}
}
