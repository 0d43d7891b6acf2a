package canvas

import (
	"fmt"
	"image"
	"strconv"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/ironsheep/segment-tools-mcp/internal/detection"
	"github.com/ironsheep/segment-tools-mcp/internal/imaging"
)

// Canvas holds placed points, the stroke buffer and the regions found by the
// last detection run.
type Canvas struct {
	mu     sync.Mutex
	width  int
	height int
	style  Style
	points []image.Point
	buf    *image.NRGBA
	rects  []detection.Rect
	logger log.FieldLogger
}

// New creates a blank canvas. Non-positive dimensions fall back to
// DefaultWidth and DefaultHeight; zero style fields fall back to DefaultStyle.
func New(width, height int, style Style) *Canvas {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	style = style.withDefaults()
	return &Canvas{
		width:  width,
		height: height,
		style:  style,
		buf:    imaging.NewBlank(width, height, style.Background),
		logger: log.StandardLogger(),
	}
}

// SetLogger replaces the logger used for stroke and detection summaries.
func (c *Canvas) SetLogger(l log.FieldLogger) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if l != nil {
		c.logger = l
	}
}

// Size returns the canvas dimensions.
func (c *Canvas) Size() image.Point {
	return image.Pt(c.width, c.height)
}

// Style returns the drawing style in use.
func (c *Canvas) Style() Style {
	return c.style
}

// AddPoint appends a point and returns the new point count. Points must lie
// inside the canvas.
func (c *Canvas) AddPoint(p image.Point) (int, error) {
	if !p.In(image.Rect(0, 0, c.width, c.height)) {
		return 0, fmt.Errorf("point (%d,%d) outside canvas %dx%d", p.X, p.Y, c.width, c.height)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.points = append(c.points, p)
	return len(c.points), nil
}

// Points returns a copy of the placed points in insertion order.
func (c *Canvas) Points() []image.Point {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]image.Point(nil), c.points...)
}

// Clear drops all points, strokes and detected regions.
func (c *Canvas) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.points = nil
	c.rects = nil
	c.buf = imaging.NewBlank(c.width, c.height, c.style.Background)
}

// PaintLines redraws the stroke buffer from scratch, joining points (0,1),
// (2,3) and so on with straight strokes. It returns the number of strokes
// drawn. Previously detected regions are discarded.
func (c *Canvas) PaintLines() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.buf = imaging.NewBlank(c.width, c.height, c.style.Background)
	c.rects = nil

	n := 0
	for i := 0; i+1 < len(c.points); i += 2 {
		drawStroke(c.buf, c.points[i], c.points[i+1], c.style.PenWidth, c.style.Pen)
		n++
	}

	c.logger.WithFields(log.Fields{
		"points":  len(c.points),
		"strokes": n,
	}).Debug("painted strokes")
	return n
}

// DetectSegments runs d over the stroke buffer and keeps the merged regions
// for Render and Rects. Each region, grown by one pixel on every side, is then
// stamped onto the buffer as a dashed outline in the overlay color. The stamps
// stay until the next PaintLines or Clear.
func (c *Canvas) DetectSegments(d *detection.Detector) (*detection.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	res, err := d.Detect(c.buf)
	if err != nil {
		return nil, fmt.Errorf("canvas detection failed: %w", err)
	}
	c.rects = append([]detection.Rect(nil), res.Rects...)
	for _, r := range c.rects {
		imaging.DrawRectOutline(c.buf, r.Adjusted(-1, -1, 1, 1).Bounds(), c.style.Overlay, true)
	}

	c.logger.WithFields(log.Fields{
		"matches": res.Matches,
		"regions": res.Count,
	}).Debug("canvas detection finished")
	return res, nil
}

// Rects returns the regions from the last detection run.
func (c *Canvas) Rects() []detection.Rect {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]detection.Rect(nil), c.rects...)
}

// Buffer returns a copy of the stroke buffer, including any outlines stamped
// by DetectSegments.
func (c *Canvas) Buffer() *image.NRGBA {
	c.mu.Lock()
	defer c.mu.Unlock()
	return imaging.Snapshot(c.buf)
}

// RenderOptions selects the extras Render draws.
type RenderOptions struct {
	// Labels writes each region's 1-based index next to its outline.
	Labels bool
}

// Render returns the stroke buffer with point markers and solid region
// outlines drawn on top.
func (c *Canvas) Render(opts RenderOptions) *image.NRGBA {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := imaging.Snapshot(c.buf)
	for _, r := range c.rects {
		imaging.DrawRectOutline(out, r.Bounds(), c.style.Overlay, false)
	}
	for _, p := range c.points {
		imaging.FillDisc(out, p, c.style.PointRadius, c.style.Point)
	}
	if opts.Labels {
		for i, r := range c.rects {
			text := strconv.Itoa(i + 1)
			at := labelOrigin(r, imaging.LabelSize(text))
			imaging.DrawLabel(out, at.X, at.Y, text, c.style.Overlay, c.style.Background)
		}
	}
	return out
}

// labelOrigin places a label of the given size above r, clear of the stamped
// outline, or below r when there is no room above.
func labelOrigin(r detection.Rect, size image.Point) image.Point {
	if y := r.Y - size.Y; y >= 1 {
		return image.Pt(r.X, y)
	}
	return image.Pt(r.X, r.Y+r.Height+2)
}
