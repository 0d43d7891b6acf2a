package detection

import (
	"errors"
	"image"
	"io"
	"sort"

	log "github.com/sirupsen/logrus"
)

// DefaultWindowSizes are the window sizes scanned on every pass. Only size 3
// feeds the matcher; larger sizes are scanned for the diagnostic dump only.
var DefaultWindowSizes = []int{3, 5, 7}

// Options tunes a Detector.
type Options struct {
	// WindowSizes lists the odd window sizes to scan. Size 3 is always scanned.
	WindowSizes []int

	// Threshold is the minimum cell agreement (out of 9) for a match.
	Threshold int

	// Patterns is the ordered template list. Nil means Library().
	Patterns []Pattern
}

// DefaultOptions returns the standard detector configuration.
func DefaultOptions() Options {
	sizes := make([]int, len(DefaultWindowSizes))
	copy(sizes, DefaultWindowSizes)
	return Options{
		WindowSizes: sizes,
		Threshold:   DefaultThreshold,
		Patterns:    Library(),
	}
}

// Validate normalizes o in place: even or too-small window sizes and duplicates
// are dropped, size 3 is added if missing, sizes are sorted ascending, the
// threshold is clamped to [1, 9] (0 means the default), and a nil pattern list
// becomes the standard library.
func (o *Options) Validate() {
	seen := map[int]bool{PatternSize: true}
	sizes := []int{PatternSize}
	for _, s := range o.WindowSizes {
		if s < PatternSize || s%2 == 0 || seen[s] {
			continue
		}
		seen[s] = true
		sizes = append(sizes, s)
	}
	sort.Ints(sizes)
	o.WindowSizes = sizes

	switch {
	case o.Threshold == 0:
		o.Threshold = DefaultThreshold
	case o.Threshold < 1:
		o.Threshold = 1
	case o.Threshold > PatternSize*PatternSize:
		o.Threshold = PatternSize * PatternSize
	}

	if o.Patterns == nil {
		o.Patterns = Library()
	}
}

// Result is the outcome of one detection pass.
type Result struct {
	// Width and Height are the dimensions of the scanned raster.
	Width  int `json:"width"`
	Height int `json:"height"`

	// InkPixels is the number of raster cells classified as ink.
	InkPixels int `json:"ink_pixels"`

	// Rects are the merged hit rectangles, in merge order.
	Rects []Rect `json:"rects"`

	// Count is len(Rects).
	Count int `json:"count"`

	// Matches is the number of 3×3 windows that matched a pattern.
	Matches int `json:"matches"`

	// PatternCounts breaks Matches down by pattern name.
	PatternCounts map[string]int `json:"pattern_counts"`

	// Hits lists every individual match before merging.
	Hits []Match `json:"-"`
}

// Detector finds stroke motifs in a raster and reports merged bounding boxes.
//
// A Detector without a diagnostic writer holds no mutable state and may be
// shared between goroutines. With a diagnostic writer attached, calls must be
// serialized by the caller since they all write to the same stream.
type Detector struct {
	ink     InkClassifier
	opts    Options
	matcher *Matcher
	dump    io.Writer
	logger  log.FieldLogger
}

// NewDetector creates a detector using ink to classify pixels. A nil ink
// classifier means NewRedDominance().
func NewDetector(ink InkClassifier, opts Options) *Detector {
	if ink == nil {
		ink = NewRedDominance()
	}
	opts.Validate()
	return &Detector{
		ink:     ink,
		opts:    opts,
		matcher: &Matcher{Threshold: opts.Threshold, Patterns: opts.Patterns},
		logger:  log.StandardLogger(),
	}
}

// WithDiagnostics returns a copy of d that writes a window dump to w on every
// pass. A nil w disables the dump.
func (d *Detector) WithDiagnostics(w io.Writer) *Detector {
	c := *d
	c.dump = w
	return &c
}

// WithLogger returns a copy of d that logs through l.
func (d *Detector) WithLogger(l log.FieldLogger) *Detector {
	c := *d
	if l != nil {
		c.logger = l
	}
	return &c
}

// Options returns the validated options in use.
func (d *Detector) Options() Options {
	return d.opts
}

// Detect snapshots img into a BinaryRaster and runs one detection pass.
//
// Images smaller than a 3×3 window produce an empty result, not an error.
func (d *Detector) Detect(img image.Image) (*Result, error) {
	if img == nil {
		return nil, errors.New("detect segments: nil image")
	}
	return d.DetectRaster(NewBinaryRaster(img, d.ink)), nil
}

// DetectRaster runs one detection pass over an existing raster.
func (d *Detector) DetectRaster(r *BinaryRaster) *Result {
	var dump *DumpWriter
	if d.dump != nil {
		dump = NewDumpWriter(d.dump)
	}

	res := &Result{
		Width:         r.Width(),
		Height:        r.Height(),
		InkPixels:     r.Count(),
		PatternCounts: make(map[string]int),
	}

	var hits []Rect
	for _, size := range d.opts.WindowSizes {
		if size != PatternSize && dump == nil {
			continue
		}
		dump.BeginSize(size)

		Scan(r, size, func(w Window) {
			if !w.Empty() {
				dump.Window(w)
			}
			if size != PatternSize {
				return
			}
			p, ok := d.matcher.Match(w)
			if !ok {
				return
			}
			m := Match{Center: w.Center, Pattern: p.Name}
			res.Hits = append(res.Hits, m)
			res.PatternCounts[p.Name]++
			hits = append(hits, m.Rect())
			dump.Match(w, p)
		})
	}

	res.Matches = len(res.Hits)
	res.Rects = MergeRects(hits)
	res.Count = len(res.Rects)

	if err := dump.Err(); err != nil {
		d.logger.WithError(err).Warn("window dump incomplete")
	}
	d.logger.WithFields(log.Fields{
		"width":   res.Width,
		"height":  res.Height,
		"matches": res.Matches,
		"rects":   res.Count,
	}).Debug("segment detection pass complete")

	return res
}
