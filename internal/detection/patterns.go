package detection

import "strings"

// PatternSize is the side length of every template in the library.
const PatternSize = 3

// Pattern names, in library order.
const (
	Vertical      = "Vertical"
	Horizontal    = "Horizontal"
	DiagonalRight = "DiagonalRight" // top-left to bottom-right
	DiagonalLeft  = "DiagonalLeft"  // top-right to bottom-left
)

// Pattern is a named 3×3 binary template. Cells[row][col] addresses image rows
// (y) then columns (x), so a Vertical pattern lights up the middle column.
type Pattern struct {
	Name  string                       `json:"name"`
	Cells [PatternSize][PatternSize]bool `json:"cells"`
}

var library = [...]Pattern{
	{Name: Vertical, Cells: [PatternSize][PatternSize]bool{
		{false, true, false},
		{false, true, false},
		{false, true, false},
	}},
	{Name: Horizontal, Cells: [PatternSize][PatternSize]bool{
		{false, false, false},
		{true, true, true},
		{false, false, false},
	}},
	{Name: DiagonalRight, Cells: [PatternSize][PatternSize]bool{
		{true, false, false},
		{false, true, false},
		{false, false, true},
	}},
	{Name: DiagonalLeft, Cells: [PatternSize][PatternSize]bool{
		{false, false, true},
		{false, true, false},
		{true, false, false},
	}},
}

// Library returns the four stroke templates in matching order:
// Vertical, Horizontal, DiagonalRight, DiagonalLeft.
//
// The returned slice is a fresh copy; callers may modify it freely.
func Library() []Pattern {
	out := make([]Pattern, len(library))
	copy(out, library[:])
	return out
}

// OnCells returns the number of true cells in the pattern.
func (p Pattern) OnCells() int {
	n := 0
	for _, row := range p.Cells {
		for _, c := range row {
			if c {
				n++
			}
		}
	}
	return n
}

// Rows renders the pattern as lines of space-separated "1"/"0" tokens.
func (p Pattern) Rows() []string {
	rows := make([]string, 0, PatternSize)
	for _, row := range p.Cells {
		rows = append(rows, formatRow(row[:]))
	}
	return rows
}

// String renders the pattern one row per line.
func (p Pattern) String() string {
	return p.Name + "\n" + strings.Join(p.Rows(), "\n")
}

func formatRow(cells []bool) string {
	var sb strings.Builder
	for i, c := range cells {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if c {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
