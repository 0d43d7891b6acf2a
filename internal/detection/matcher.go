package detection

import "image"

// DefaultThreshold is the minimum number of agreeing cells, out of 9, for a
// window to match a pattern.
const DefaultThreshold = 7

// Match records a window that matched a library pattern.
type Match struct {
	Center  image.Point `json:"center"`
	Pattern string      `json:"pattern"`
}

// Rect returns the 3×3 hit rectangle anchored at the window's top-left cell.
func (m Match) Rect() Rect {
	return Rect{X: m.Center.X - 1, Y: m.Center.Y - 1, Width: PatternSize, Height: PatternSize}
}

// Agreement counts the cells on which a 3×3 window and a pattern agree, in
// either direction. It returns 0 for windows of any other size.
func Agreement(w Window, p Pattern) int {
	if w.Size != PatternSize || len(w.Cells) != PatternSize*PatternSize {
		return 0
	}
	same := 0
	for row := 0; row < PatternSize; row++ {
		for col := 0; col < PatternSize; col++ {
			if w.At(row, col) == p.Cells[row][col] {
				same++
			}
		}
	}
	return same
}

// Matcher compares 3×3 windows against an ordered template list using a loose
// agreement threshold.
type Matcher struct {
	Threshold int
	Patterns  []Pattern
}

// NewMatcher returns a Matcher over the standard library.
func NewMatcher(threshold int) *Matcher {
	return &Matcher{Threshold: threshold, Patterns: Library()}
}

// Match returns the first pattern, in order, whose agreement with w reaches the
// threshold. A window that fits several patterns is attributed to the earliest.
func (m *Matcher) Match(w Window) (Pattern, bool) {
	if w.Size != PatternSize {
		return Pattern{}, false
	}
	for _, p := range m.Patterns {
		if Agreement(w, p) >= m.Threshold {
			return p, true
		}
	}
	return Pattern{}, false
}
