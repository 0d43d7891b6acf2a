package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/segment-tools-mcp/internal/detection"
)

// Crop extracts the region r (absolute coordinates) from img and scales it.
//
// Parameters:
//   - img: The source image.
//   - r: Region to extract, in img's coordinate space. Must lie inside
//     img.Bounds().
//   - scale: Resize factor. 0 or 1 leaves the size unchanged. Scaling uses
//     nearest-neighbor so ink stays crisp.
//
// Returns:
//   - *image.NRGBA: The cropped image, rebased to (0,0).
//   - error: Non-nil if the region or scale is invalid.
//
// # Errors
//
//   - Returns error if r extends outside the image bounds
//   - Returns error if r is empty
//   - Returns error if scale is negative
func Crop(img image.Image, r image.Rectangle, scale float64) (*image.NRGBA, error) {
	bounds := img.Bounds()

	if !r.In(bounds) {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			r.Min.X, r.Min.Y, r.Max.X, r.Max.Y, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if r.Empty() {
		return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}
	if scale < 0 {
		return nil, fmt.Errorf("invalid scale %g", scale)
	}

	cropped := imaging.Crop(img, r)

	if scale != 1.0 && scale > 0 {
		newWidth := int(float64(cropped.Bounds().Dx()) * scale)
		newHeight := int(float64(cropped.Bounds().Dy()) * scale)
		if newWidth < 1 {
			newWidth = 1
		}
		if newHeight < 1 {
			newHeight = 1
		}
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.NearestNeighbor)
	}

	return cropped, nil
}

// CropRect crops a detected region, grown by pad pixels on every side and
// clipped to the image. r is relative to the image origin, as produced by
// detection.
func CropRect(img image.Image, r detection.Rect, pad int, scale float64) (*image.NRGBA, error) {
	if r.Empty() {
		return nil, fmt.Errorf("empty region %v", r)
	}
	if pad < 0 {
		pad = 0
	}
	bounds := img.Bounds()
	region := r.Adjusted(-pad, -pad, pad, pad).Bounds().Add(bounds.Min).Intersect(bounds)
	if region.Empty() {
		return nil, fmt.Errorf("region %v does not overlap the image", r)
	}
	return Crop(img, region, scale)
}
