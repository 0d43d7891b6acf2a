package imaging

import (
	"fmt"
	"image"
	_ "image/gif" // Register GIF format decoder
	"os"
	"sync"

	"github.com/anthonynsimon/bild/imgio"

	"github.com/ironsheep/segment-tools-mcp/internal/detection"
)

// ImageCache keeps decoded images keyed by path so repeated detection runs on
// the same file skip the disk.
//
// ImageCache is safe for concurrent use. Cached images are treated as read-only;
// detection snapshots them into a raster before scanning.
//
// # Memory Management
//
// Cached images stay in memory until evicted. The image_load tool evicts
// before loading so a file rewritten on disk is picked up again.
//
// # Example Usage
//
//	cache := imaging.NewImageCache()
//	img, err := cache.Load("/path/to/strokes.png")
//	if err != nil {
//	    return err
//	}
//	res, err := detector.Detect(img)
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageCache creates an empty image cache.
//
// The returned cache is ready for use and safe for concurrent access.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
	}
}

// Load returns the cached image for path, decoding it from disk on first use.
//
// Parameters:
//   - path: File path to the image. Supported formats are PNG, JPEG and GIF.
//
// Returns:
//   - image.Image: The decoded image. The concrete type depends on the file
//     (e.g., *image.NRGBA, *image.RGBA, *image.Paletted).
//   - error: Non-nil if the file cannot be opened or decoded.
//
// Images are keyed by the exact path string, so relative and absolute paths
// to one file are cached separately.
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns error if the file is not a valid PNG, JPEG or GIF image
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load image %s: %w", path, err)
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Evict drops path from the cache. It is a no-op for unknown paths.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Size returns the number of cached images.
func (c *ImageCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// ImageInfo describes an image file as seen by the detector.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the decoder name reported by the image package ("png", "jpeg", "gif").
	Format string `json:"format"`

	// FileSizeBytes is the size of the file on disk.
	FileSizeBytes int64 `json:"file_size_bytes"`

	// InkPixels is the number of pixels the classifier treats as ink.
	InkPixels int `json:"ink_pixels"`

	// InkPercent is InkPixels as a percentage of all pixels (0-100).
	InkPercent float64 `json:"ink_percent"`
}

// LoadImageInfo loads path through cache and reports its dimensions, format and
// how much of it the given classifier considers ink.
//
// Parameters:
//   - cache: The image cache to use. Must not be nil.
//   - path: Path to a PNG, JPEG or GIF file.
//   - ink: Classifier used to count ink pixels. Nil means red dominance.
//
// Returns:
//   - *ImageInfo: Metadata about the image.
//   - error: Non-nil if the file cannot be read or decoded.
//
// # Errors
//
//   - Returns error if Load fails
//   - Returns error if the file header cannot be re-read for the format name
func LoadImageInfo(cache *ImageCache, path string, ink detection.InkClassifier) (*ImageInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	_, format, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read image header: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	if ink == nil {
		ink = detection.NewRedDominance()
	}
	raster := detection.NewBinaryRaster(img, ink)
	inkPixels := raster.Count()

	total := raster.Width() * raster.Height()
	percent := 0.0
	if total > 0 {
		percent = float64(inkPixels) / float64(total) * 100
	}

	return &ImageInfo{
		Width:         raster.Width(),
		Height:        raster.Height(),
		Format:        format,
		FileSizeBytes: stat.Size(),
		InkPixels:     inkPixels,
		InkPercent:    round2(percent),
	}, nil
}
