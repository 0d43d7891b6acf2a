package canvas

import (
	"image/color"

	"golang.org/x/image/colornames"
)

// Default canvas dimensions in pixels.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Style controls how strokes and overlays are drawn.
type Style struct {
	Pen        color.Color // stroke color
	Point      color.Color // marker color for placed points
	Overlay    color.Color // outline color for detected regions
	Background color.Color

	PenWidth    int
	PointRadius int
}

// DefaultStyle returns a red pen on white with blue point markers and
// magenta region outlines.
func DefaultStyle() Style {
	return Style{
		Pen:         colornames.Red,
		Point:       colornames.Blue,
		Overlay:     colornames.Magenta,
		Background:  colornames.White,
		PenWidth:    4,
		PointRadius: 3,
	}
}

// withDefaults fills zero fields from DefaultStyle.
func (s Style) withDefaults() Style {
	d := DefaultStyle()
	if s.Pen == nil {
		s.Pen = d.Pen
	}
	if s.Point == nil {
		s.Point = d.Point
	}
	if s.Overlay == nil {
		s.Overlay = d.Overlay
	}
	if s.Background == nil {
		s.Background = d.Background
	}
	if s.PenWidth <= 0 {
		s.PenWidth = d.PenWidth
	}
	if s.PointRadius <= 0 {
		s.PointRadius = d.PointRadius
	}
	return s
}
