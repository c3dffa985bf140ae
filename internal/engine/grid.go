package engine

import (
	"strconv"

	"github.com/GillesH-web/Pythagore/internal/config"
)

// GridCell is one row of the inclusion grid.
type GridCell struct {
	Numeral int    `json:"number" yaml:"number"`
	Count   int    `json:"count" yaml:"count"`
	Glyph   string `json:"display" yaml:"display"`
}

// InclusionGrid tallies how often each numeral 1..9 occurs in a name.
// Index i holds numeral i+1.
type InclusionGrid [9]GridCell

// BuildInclusionGrid counts the numerals of every letter in the fields
// selected by v. Non-letters are dropped, not tallied.
func BuildInclusionGrid(n NameSet, v Variant) InclusionGrid {
	var counts [9]int
	for _, r := range v.letters(n) {
		if num := runeNumeral(r); num > 0 {
			counts[num-1]++
		}
	}

	var grid InclusionGrid
	for i, c := range counts {
		grid[i] = GridCell{Numeral: i + 1, Count: c, Glyph: glyph(c)}
	}
	return grid
}

func glyph(count int) string {
	if count == 0 {
		return config.GlyphAbsent
	}
	return strconv.Itoa(count)
}

// Total is the number of letters counted in the grid.
func (g InclusionGrid) Total() int {
	total := 0
	for _, c := range g {
		total += c.Count
	}
	return total
}

// Missing lists the numerals that never occur.
func (g InclusionGrid) Missing() []int {
	var out []int
	for _, c := range g {
		if c.Count == 0 {
			out = append(out, c.Numeral)
		}
	}
	return out
}
