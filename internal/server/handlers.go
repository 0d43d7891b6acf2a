package server

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"os"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/segment-tools-mcp/internal/canvas"
	"github.com/ironsheep/segment-tools-mcp/internal/detection"
	"github.com/ironsheep/segment-tools-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "canvas_add_point", "image_detect_segments").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.WithFields(log.Fields{"tool": params.Name}).WithError(err).Warn("tool failed")
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	// Tools without parameters may be called with no arguments at all.
	if len(args) == 0 || string(args) == "null" {
		args = json.RawMessage("{}")
	}

	switch name {
	// Canvas
	case "canvas_add_point":
		return s.handleCanvasAddPoint(args)
	case "canvas_clear":
		return s.handleCanvasClear(args)
	case "canvas_paint_lines":
		return s.handleCanvasPaintLines(args)
	case "canvas_detect_segments":
		return s.handleCanvasDetectSegments(args)
	case "canvas_render":
		return s.handleCanvasRender(args)
	case "canvas_info":
		return s.handleCanvasInfo(args)

	// Images
	case "image_load":
		return s.handleImageLoad(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_detect_segments":
		return s.handleImageDetectSegments(args)
	case "image_detect_segments_batch":
		return s.handleImageDetectSegmentsBatch(args)
	case "image_crop":
		return s.handleImageCrop(args)

	// Engine
	case "segment_patterns":
		return s.handleSegmentPatterns(args)
	case "segment_merge_rects":
		return s.handleSegmentMergeRects(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// newDetector builds a detector from the server configuration.
func (s *Server) newDetector() *detection.Detector {
	return detection.NewDetector(s.ink, s.opts).WithLogger(s.logger)
}

// DetectResult is the tool-facing form of a detection result.
type DetectResult struct {
	Path string `json:"path,omitempty"`
	*detection.Result
	Hits     []detection.Match `json:"hits,omitempty"`
	DumpPath string            `json:"dump_path,omitempty"`
}

// detectorWithDump returns a detector that writes its window dump to path
// when path is set. The returned close function must be called once
// detection has finished.
func (s *Server) detectorWithDump(path string) (*detection.Detector, func() error, error) {
	d := s.newDetector()
	if path == "" {
		return d, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create dump file: %w", err)
	}
	return d.WithDiagnostics(f), f.Close, nil
}

func newDetectResult(res *detection.Result, dumpPath string, includeHits bool) *DetectResult {
	out := &DetectResult{Result: res, DumpPath: dumpPath}
	if includeHits {
		out.Hits = res.Hits
	}
	return out
}

// detect runs detection over img, writing the window dump to dumpPath when set.
func (s *Server) detect(img image.Image, dumpPath string, includeHits bool) (*DetectResult, error) {
	d, closeDump, err := s.detectorWithDump(dumpPath)
	if err != nil {
		return nil, err
	}
	res, err := d.Detect(img)
	if cerr := closeDump(); cerr != nil && err == nil {
		err = fmt.Errorf("failed to close dump file: %w", cerr)
	}
	if err != nil {
		return nil, err
	}
	return newDetectResult(res, dumpPath, includeHits), nil
}

// === Canvas Handlers ===

type canvasAddPointArgs struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (s *Server) handleCanvasAddPoint(args json.RawMessage) (interface{}, error) {
	var a canvasAddPointArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	n, err := s.canvas.AddPoint(image.Pt(a.X, a.Y))
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"x":           a.X,
		"y":           a.Y,
		"point_count": n,
	}, nil
}

func (s *Server) handleCanvasClear(args json.RawMessage) (interface{}, error) {
	s.canvas.Clear()
	return map[string]interface{}{"cleared": true}, nil
}

func (s *Server) handleCanvasPaintLines(args json.RawMessage) (interface{}, error) {
	n := s.canvas.PaintLines()
	points := len(s.canvas.Points())
	return map[string]interface{}{
		"strokes":        n,
		"points":         points,
		"unpaired_point": points%2 == 1,
	}, nil
}

type detectArgs struct {
	Path        string `json:"path"`
	DumpPath    string `json:"dump_path"`
	IncludeHits bool   `json:"include_hits"`
}

func (s *Server) handleCanvasDetectSegments(args json.RawMessage) (interface{}, error) {
	var a detectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.DumpPath == "" {
		a.DumpPath = s.cfg.Diagnostics.DumpPath
	}

	d, closeDump, err := s.detectorWithDump(a.DumpPath)
	if err != nil {
		return nil, err
	}
	res, err := s.canvas.DetectSegments(d)
	if cerr := closeDump(); cerr != nil && err == nil {
		err = fmt.Errorf("failed to close dump file: %w", cerr)
	}
	if err != nil {
		return nil, err
	}
	return newDetectResult(res, a.DumpPath, a.IncludeHits), nil
}

type canvasRenderArgs struct {
	Overlay  *bool  `json:"overlay"`
	Labels   bool   `json:"labels"`
	SavePath string `json:"save_path"`
}

func (s *Server) handleCanvasRender(args json.RawMessage) (interface{}, error) {
	var a canvasRenderArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	var img image.Image
	if a.Overlay == nil || *a.Overlay {
		img = s.canvas.Render(canvas.RenderOptions{Labels: a.Labels})
	} else {
		img = s.canvas.Buffer()
	}

	if a.SavePath != "" {
		if err := imaging.SaveImage(a.SavePath, img); err != nil {
			return nil, err
		}
	}

	enc, err := imaging.EncodePNGBase64(img)
	if err != nil {
		return nil, err
	}
	return struct {
		*imaging.EncodedImage
		SavedPath string `json:"saved_path,omitempty"`
	}{enc, a.SavePath}, nil
}

type pointJSON struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (s *Server) handleCanvasInfo(args json.RawMessage) (interface{}, error) {
	size := s.canvas.Size()
	pts := s.canvas.Points()
	points := make([]pointJSON, len(pts))
	for i, p := range pts {
		points[i] = pointJSON{X: p.X, Y: p.Y}
	}
	rects := s.canvas.Rects()
	if rects == nil {
		rects = []detection.Rect{}
	}
	return map[string]interface{}{
		"width":   size.X,
		"height":  size.Y,
		"points":  points,
		"strokes": len(pts) / 2,
		"regions": rects,
	}, nil
}

// === Image Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	s.cache.Evict(a.Path)
	return imaging.LoadImageInfo(s.cache, a.Path, s.ink)
}

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y, s.ink)
}

func (s *Server) handleImageDetectSegments(args json.RawMessage) (interface{}, error) {
	var a detectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	res, err := s.detect(img, a.DumpPath, a.IncludeHits)
	if err != nil {
		return nil, err
	}
	res.Path = a.Path
	return res, nil
}

type imageBatchArgs struct {
	Paths []string `json:"paths"`
}

func (s *Server) handleImageDetectSegmentsBatch(args json.RawMessage) (interface{}, error) {
	var a imageBatchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if len(a.Paths) == 0 {
		return nil, fmt.Errorf("paths must not be empty")
	}

	results := make([]*DetectResult, len(a.Paths))
	g, ctx := errgroup.WithContext(context.Background())
	if n := s.cfg.Detection.BatchWorkers; n > 0 {
		g.SetLimit(n)
	}

	for i, path := range a.Paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := s.cache.Load(path)
			if err != nil {
				return err
			}
			res, err := s.detect(img, "", false)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			res.Path = path
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += r.Count
	}
	return map[string]interface{}{
		"results":       results,
		"images":        len(results),
		"total_regions": total,
	}, nil
}

type imageCropArgs struct {
	Path    string         `json:"path"`
	Rect    detection.Rect `json:"rect"`
	Padding int            `json:"padding"`
	Scale   float64        `json:"scale"`
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a imageCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	cropped, err := imaging.CropRect(img, a.Rect, a.Padding, a.Scale)
	if err != nil {
		return nil, err
	}
	return imaging.EncodePNGBase64(cropped)
}

// === Engine Handlers ===

type patternJSON struct {
	Name string   `json:"name"`
	Rows []string `json:"rows"`
	On   int      `json:"on_cells"`
}

func (s *Server) handleSegmentPatterns(args json.RawMessage) (interface{}, error) {
	patterns := make([]patternJSON, len(s.opts.Patterns))
	for i, p := range s.opts.Patterns {
		patterns[i] = patternJSON{Name: p.Name, Rows: p.Rows(), On: p.OnCells()}
	}
	return map[string]interface{}{
		"patterns":     patterns,
		"threshold":    s.opts.Threshold,
		"window_sizes": s.opts.WindowSizes,
	}, nil
}

type mergeRectsArgs struct {
	Rects []detection.Rect `json:"rects"`
}

func (s *Server) handleSegmentMergeRects(args json.RawMessage) (interface{}, error) {
	var a mergeRectsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	merged := detection.MergeRects(a.Rects)
	return map[string]interface{}{
		"rects": merged,
		"count": len(merged),
	}, nil
}
