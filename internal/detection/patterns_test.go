package detection

import (
	"strings"
	"testing"
)

func TestLibrary_Order(t *testing.T) {
	want := []string{Vertical, Horizontal, DiagonalRight, DiagonalLeft}
	lib := Library()

	if len(lib) != len(want) {
		t.Fatalf("Library has %d patterns, want %d", len(lib), len(want))
	}
	for i, p := range lib {
		if p.Name != want[i] {
			t.Errorf("pattern %d: got %s, want %s", i, p.Name, want[i])
		}
	}
}

func TestLibrary_ThreeOnCells(t *testing.T) {
	for _, p := range Library() {
		if n := p.OnCells(); n != 3 {
			t.Errorf("%s has %d on cells, want 3", p.Name, n)
		}
	}
}

func TestLibrary_ReturnsCopy(t *testing.T) {
	lib := Library()
	lib[0].Cells[0][0] = true
	lib[0].Name = "changed"

	fresh := Library()
	if fresh[0].Name != Vertical || fresh[0].Cells[0][0] {
		t.Error("modifying a returned library must not affect later calls")
	}
}

func TestPattern_Rows(t *testing.T) {
	tests := []struct {
		name string
		want []string
	}{
		{Vertical, []string{"0 1 0", "0 1 0", "0 1 0"}},
		{Horizontal, []string{"0 0 0", "1 1 1", "0 0 0"}},
		{DiagonalRight, []string{"1 0 0", "0 1 0", "0 0 1"}},
		{DiagonalLeft, []string{"0 0 1", "0 1 0", "1 0 0"}},
	}

	lib := Library()
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := strings.Join(lib[i].Rows(), "|")
			if got != strings.Join(tt.want, "|") {
				t.Errorf("Rows: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPattern_String(t *testing.T) {
	s := Library()[0].String()
	if !strings.HasPrefix(s, "Vertical\n") {
		t.Errorf("String should start with the pattern name, got %q", s)
	}
	if strings.Count(s, "\n") != 3 {
		t.Errorf("String should have a name line plus 3 rows, got %q", s)
	}
}
