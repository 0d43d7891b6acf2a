package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/segment-tools-mcp/internal/detection"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSLColor represents a color in HSL space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorResult describes one sampled pixel and how the ink classifier sees it.
type ColorResult struct {
	X   int      `json:"x"`
	Y   int      `json:"y"`
	Hex string   `json:"hex"` // "#RRGGBB", alpha excluded
	RGB RGBColor `json:"rgb"`
	HSL HSLColor `json:"hsl"`
	Ink bool     `json:"ink"`
}

// SampleColor reads the pixel at (x, y) and classifies it with ink.
//
// Parameters:
//   - img: The source image.
//   - x, y: Absolute pixel coordinates inside img.Bounds().
//   - ink: Classifier to apply. Nil means red dominance.
//
// Returns an error if (x, y) lies outside the image.
func SampleColor(img image.Image, x, y int, ink detection.InkClassifier) (*ColorResult, error) {
	bounds := img.Bounds()
	if !(image.Point{X: x, Y: y}).In(bounds) {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}
	if ink == nil {
		ink = detection.NewRedDominance()
	}

	c := img.At(x, y)
	r, g, b, _ := c.RGBA()
	r8, g8, b8 := uint8(r>>8), uint8(g>>8), uint8(b>>8)

	h, s, l := colorful.Color{
		R: float64(r8) / 255,
		G: float64(g8) / 255,
		B: float64(b8) / 255,
	}.Hsl()
	if math.IsNaN(h) {
		h = 0
	}

	return &ColorResult{
		X:   x,
		Y:   y,
		Hex: fmt.Sprintf("#%02X%02X%02X", r8, g8, b8),
		RGB: RGBColor{R: r8, G: g8, B: b8},
		HSL: HSLColor{H: int(math.Round(h)), S: int(math.Round(s * 100)), L: int(math.Round(l * 100))},
		Ink: ink.IsInk(c),
	}, nil
}

// HueClassifier treats a pixel as ink when its hue lies within Tolerance
// degrees of Hue and it is saturated and bright enough.
//
// Unlike RedDominance it follows the stroke color around the color wheel, so
// it can be pointed at non-red pens.
type HueClassifier struct {
	Hue           float64 // target hue in degrees, 0-360
	Tolerance     float64 // accepted distance from Hue in degrees
	MinSaturation float64 // 0-1, HSV saturation
	MinValue      float64 // 0-1, HSV value
}

// NewHueClassifier returns a classifier for the given pen color with default
// tolerances.
func NewHueClassifier(pen color.Color) HueClassifier {
	c, _ := colorful.MakeColor(pen)
	h, _, _ := c.Hsv()
	return HueClassifier{Hue: h, Tolerance: 20, MinSaturation: 0.6, MinValue: 0.6}
}

// IsInk reports whether c is close enough to the target hue.
func (h HueClassifier) IsInk(c color.Color) bool {
	col, ok := colorful.MakeColor(c)
	if !ok {
		return false
	}
	hue, sat, val := col.Hsv()
	if sat < h.MinSaturation || val < h.MinValue {
		return false
	}
	return hueDistance(hue, h.Hue) <= h.Tolerance
}

// hueDistance returns the shortest angular distance between two hues.
func hueDistance(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}

// ParseHexColor parses "#RGB", "#RRGGBB" or "#RRGGBBAA" (the leading '#' is
// optional).
func ParseHexColor(hex string) (color.RGBA, error) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if hex == "" {
		return color.RGBA{}, fmt.Errorf("empty color string")
	}

	switch len(hex) {
	case 3, 6, 8:
	default:
		return color.RGBA{}, fmt.Errorf("invalid hex color length %d", len(hex))
	}

	alpha := uint8(255)
	if len(hex) == 8 {
		a, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid alpha in color %q: %w", hex, err)
		}
		alpha = uint8(a)
		hex = hex[:6]
	}

	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: alpha}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
