// Package imaging holds the pixel-level helpers around segment detection:
// loading and caching images, sampling colors, alternative ink classifiers,
// cropping detected regions, drawing overlays and encoding results.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner, X
// increasing rightward and Y increasing downward. Regions use image.Rectangle
// semantics: Min is inclusive, Max is exclusive. detection.Rect values are
// relative to the image origin; CropRect translates them to absolute
// coordinates.
//
// # Ink Classifiers
//
// detection.RedDominance is the default. HueClassifier matches any pen color
// by hue distance in HSV space, which suits strokes drawn in colors other
// than red.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Drawing functions mutate their
// destination and must not run concurrently on the same image.
package imaging
