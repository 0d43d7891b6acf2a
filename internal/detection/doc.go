// Package detection finds short stroke motifs in a drawn raster and reports
// their bounding boxes.
//
// The package implements a small template-matching pipeline aimed at hand-drawn
// line segments (vertical, horizontal and both diagonals). It has no knowledge
// of where the pixels come from; callers hand it an image.Image and an ink
// classifier and get rectangles back.
//
// # Pipeline
//
//  1. Binarization: every pixel is classified as ink or background by an
//     InkClassifier (RedDominance by default) into a BinaryRaster snapshot.
//  2. Scanning: Scan slides a square window over every position where it fits
//     entirely inside the raster. No padding, no wraparound.
//  3. Matching: each 3×3 window is compared against the pattern library in
//     order. A match needs at least 7 of 9 cells to agree; the first matching
//     pattern wins.
//  4. Merging: every hit contributes a 3×3 rectangle. MergeRects folds them
//     into bounding boxes with one sorted sweep.
//
// # Loose Matching
//
// Each pattern has exactly 3 "on" cells. A window without any ink therefore
// agrees with every pattern on exactly 6 cells and never reaches the threshold
// of 7, so blank regions cannot match. Up to two disagreeing cells in either
// direction are tolerated, so one-pixel strokes stay detectable where they
// bend or break slightly. Strokes two or more pixels wide generally match
// only near their ends.
//
// # Window Sizes
//
// Sizes 5 and 7 can be scanned alongside 3, but only the 3×3 windows are ever
// matched. Larger windows are visited only when a diagnostic writer is
// attached, and appear only in the dump.
//
// # Coordinate System
//
// Raster coordinates start at (0, 0) at the top-left of the source image's
// bounds. X grows rightward and Y downward. Rect values use a top-left corner
// plus width and height.
//
// # Concurrency
//
// A detection pass is synchronous and runs to completion. Rasters and windows
// are owned by the pass that created them.
package detection
