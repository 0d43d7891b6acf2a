// Package server implements the MCP (Model Context Protocol) server for
// segment-pattern detection.
//
// The server exposes a headless drawing canvas and the detection engine as
// MCP tools, so a client can sketch strokes, run detection and inspect the
// merged regions, or run the same detection on image files.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Canvas:
//   - canvas_add_point: Place a point
//   - canvas_clear: Remove points, strokes and regions
//   - canvas_paint_lines: Join point pairs with strokes
//   - canvas_detect_segments: Detect segments on the strokes
//   - canvas_render: Render as PNG with optional region labels, optionally saving to disk
//   - canvas_info: Size, points and regions
//
// Images:
//   - image_load: Metadata and ink coverage
//   - image_sample_color: Color and ink classification of one pixel
//   - image_detect_segments: Detect segments in an image file
//   - image_detect_segments_batch: Detect segments in several files concurrently
//   - image_crop: Crop a detected region
//
// Engine:
//   - segment_patterns: The template library and threshold
//   - segment_merge_rects: Run the region merger on arbitrary rectangles
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// Logging goes to the configured logrus logger, never to stdout.
//
// # Usage
//
//	srv, err := server.New(cfg, log.StandardLogger())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
