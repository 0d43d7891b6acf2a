package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// coverageThreshold is the minimum mask alpha for a pixel to be painted.
const coverageThreshold = 0x80

// strokePath adds the outline of a square-capped stroke from p to q to z.
// The stroke is width pixels wide and extends width/2 past each end.
// A zero-length stroke becomes a width x width square centered on p.
//
// Odd widths are centered on the pixel center so axis-aligned strokes cover
// whole pixels; even widths are centered on the pixel corner.
func strokePath(z *vector.Rasterizer, p, q image.Point, width int) {
	half := float64(width) / 2
	off := float64(width%2) / 2

	dx, dy := float64(q.X-p.X), float64(q.Y-p.Y)
	length := math.Hypot(dx, dy)
	ux, uy := 1.0, 0.0
	if length > 0 {
		ux, uy = dx/length, dy/length
	}
	// Normal, rotated 90 degrees from the direction.
	nx, ny := -uy, ux

	px, py := float64(p.X)+off-ux*half, float64(p.Y)+off-uy*half
	qx, qy := float64(q.X)+off+ux*half, float64(q.Y)+off+uy*half

	z.MoveTo(float32(px+nx*half), float32(py+ny*half))
	z.LineTo(float32(qx+nx*half), float32(qy+ny*half))
	z.LineTo(float32(qx-nx*half), float32(qy-ny*half))
	z.LineTo(float32(px-nx*half), float32(py-ny*half))
	z.ClosePath()
}

// drawStroke paints the segment p-q onto dst in solid c. Pixels covered by at
// least half are painted; nothing is blended.
func drawStroke(dst draw.Image, p, q image.Point, width int, c color.Color) {
	b := dst.Bounds()
	mask := image.NewAlpha(image.Rect(0, 0, b.Dx(), b.Dy()))

	z := vector.NewRasterizer(b.Dx(), b.Dy())
	strokePath(z, p.Sub(b.Min), q.Sub(b.Min), width)
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			if mask.AlphaAt(x, y).A >= coverageThreshold {
				dst.Set(b.Min.X+x, b.Min.Y+y, c)
			}
		}
	}
}
