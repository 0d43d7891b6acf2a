package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"
)

// EncodedImage is a PNG rendition of an image ready to hand back to a client.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodePNGBase64 encodes img as PNG and base64.
func EncodePNGBase64(img image.Image) (*EncodedImage, error) {
	var buf bytes.Buffer
	if err := imgio.PNGEncoder()(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	b := img.Bounds()
	return &EncodedImage{
		Width:       b.Dx(),
		Height:      b.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// EncoderFor picks an encoder from the extension of path.
// Supported extensions: .png, .jpg, .jpeg, .bmp.
func EncoderFor(path string) (imgio.Encoder, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return imgio.PNGEncoder(), nil
	case ".jpg", ".jpeg":
		return imgio.JPEGEncoder(95), nil
	case ".bmp":
		return imgio.BMPEncoder(), nil
	default:
		return nil, fmt.Errorf("unsupported image extension %q", filepath.Ext(path))
	}
}

// SaveImage writes img to path, choosing the format from the extension.
//
// # Errors
//
//   - Returns error if the extension is not .png, .jpg, .jpeg or .bmp
//   - Returns error if the file cannot be created or encoded
func SaveImage(path string, img image.Image) error {
	enc, err := EncoderFor(path)
	if err != nil {
		return err
	}
	if err := imgio.Save(path, img, enc); err != nil {
		return fmt.Errorf("failed to save image %s: %w", path, err)
	}
	return nil
}

// NewBlank returns a width x height image filled with bg.
func NewBlank(width, height int, bg color.Color) *image.NRGBA {
	return imaging.New(width, height, bg)
}

// Snapshot returns an independent NRGBA copy of img, rebased to (0,0).
func Snapshot(img image.Image) *image.NRGBA {
	return imaging.Clone(img)
}
