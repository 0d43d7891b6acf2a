package detection

import (
	"fmt"
	"io"
)

// DumpWriter writes scanned windows and pattern matches in a line-oriented text
// format for offline inspection:
//
//	=== Non-empty window dump for analysis ===
//
//	--- Testing window size: 3x3 ---
//	Center (12,40)
//	0 1 0
//	0 1 0
//	0 1 0
//	------
//	MATCH (Vertical) @ (12,40)
//	0 1 0
//	0 1 0
//	0 1 0
//	------
//
// Writing is best-effort. The first write error is remembered and every later
// write becomes a no-op. A nil *DumpWriter discards everything.
type DumpWriter struct {
	w   io.Writer
	err error
}

// NewDumpWriter returns a DumpWriter that writes to w and emits the header line.
func NewDumpWriter(w io.Writer) *DumpWriter {
	d := &DumpWriter{w: w}
	d.printf("=== Non-empty window dump for analysis ===\n")
	return d
}

// BeginSize starts the section for one window size.
func (d *DumpWriter) BeginSize(size int) {
	d.printf("\n--- Testing window size: %dx%d ---\n", size, size)
}

// Window records a scanned window.
func (d *DumpWriter) Window(w Window) {
	d.printf("Center (%d,%d)\n", w.Center.X, w.Center.Y)
	d.cells(w)
}

// Match records a window that matched pattern p.
func (d *DumpWriter) Match(w Window, p Pattern) {
	d.printf("MATCH (%s) @ (%d,%d)\n", p.Name, w.Center.X, w.Center.Y)
	d.cells(w)
}

// Err returns the first write error, if any.
func (d *DumpWriter) Err() error {
	if d == nil {
		return nil
	}
	return d.err
}

func (d *DumpWriter) cells(w Window) {
	for row := 0; row < w.Size; row++ {
		d.printf("%s\n", formatRow(w.Cells[row*w.Size:(row+1)*w.Size]))
	}
	d.printf("------\n")
}

func (d *DumpWriter) printf(format string, args ...any) {
	if d == nil || d.w == nil || d.err != nil {
		return
	}
	if _, err := fmt.Fprintf(d.w, format, args...); err != nil {
		d.err = err
	}
}
