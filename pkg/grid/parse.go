package grid

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Parse reads a text layout: one row per line, one character per cell.
// Digits are tile ids, '.' and ' ' are empty and '#' is tile 1. Blank lines
// and lines starting with "//" or ";" are skipped.
func Parse(r io.Reader) (*Map, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	return ParseRows(lines)
}

// ParseRows parses a layout given as a slice of row strings.
func ParseRows(lines []string) (*Map, error) {
	var rows [][]Tile
	for n, line := range lines {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "//") || strings.HasPrefix(line, ";") {
			continue
		}
		row := make([]Tile, 0, len(line))
		for _, ch := range line {
			t, ok := parseTile(ch)
			if !ok {
				return nil, fmt.Errorf("line %d col %d: invalid tile %q", n+1, len(row)+1, ch)
			}
			row = append(row, t)
		}
		rows = append(rows, row)
	}
	return New(rows)
}

func parseTile(ch rune) (Tile, bool) {
	switch {
	case ch >= '0' && ch <= '9':
		return Tile(ch - '0'), true
	case ch == '.' || ch == ' ':
		return Empty, true
	case ch == '#':
		return 1, true
	}
	return 0, false
}

// Load reads and validates a layout file.
func Load(path string) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open map: %w", err)
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse map %s: %w", path, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("validate map %s: %w", path, err)
	}
	return m, nil
}
