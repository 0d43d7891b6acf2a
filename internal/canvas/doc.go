// Package canvas is an in-memory drawing surface for building test inputs to
// the segment detector.
//
// Clients place points, pair them into straight strokes with PaintLines, and
// run detection over the stroke buffer. Strokes are drawn without
// anti-aliasing so the buffer holds only the pen color and the background,
// which is what the red-dominance ink classifier expects.
//
// Points are paired in order: (0,1), (2,3), and so on. A trailing unpaired
// point is kept but not drawn.
//
// Detection stamps each merged region onto the stroke buffer as a dashed
// outline one pixel outside the region. Render adds solid outlines on the
// regions themselves, point markers, and optionally each region's index.
//
// A Canvas is safe for concurrent use.
package canvas
