package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var pathProperty = map[string]interface{}{
	"type":        "string",
	"description": "Absolute path to the image file",
}

var rectSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"x":      map[string]interface{}{"type": "integer"},
		"y":      map[string]interface{}{"type": "integer"},
		"width":  map[string]interface{}{"type": "integer"},
		"height": map[string]interface{}{"type": "integer"},
	},
	"required": []string{"x", "y", "width", "height"},
}

func noArgs() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Canvas
		{
			Name:        "canvas_add_point",
			Description: "Place a point on the drawing canvas. Consecutive points are paired into strokes by canvas_paint_lines: (1st,2nd), (3rd,4th), and so on.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, left edge is 0)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, top edge is 0)",
					},
				},
				"required": []string{"x", "y"},
			},
		},
		{
			Name:        "canvas_clear",
			Description: "Remove all points, strokes and detected regions from the canvas.",
			InputSchema: noArgs(),
		},
		{
			Name:        "canvas_paint_lines",
			Description: "Redraw the canvas, joining point pairs with straight red strokes. A trailing unpaired point is not drawn.",
			InputSchema: noArgs(),
		},
		{
			Name:        "canvas_detect_segments",
			Description: "Run segment-pattern detection over the painted strokes and return merged bounding rectangles.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"dump_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional file to receive a text dump of every non-empty window. Overrides the configured dump path.",
					},
					"include_hits": map[string]interface{}{
						"type":        "boolean",
						"description": "Include every individual 3x3 match in the result. Default false",
						"default":     false,
					},
				},
			},
		},
		{
			Name:        "canvas_render",
			Description: "Render the canvas as base64-encoded PNG with point markers and detected regions drawn on top.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"overlay": map[string]interface{}{
						"type":        "boolean",
						"description": "Draw point markers and region outlines. Default true",
						"default":     true,
					},
					"labels": map[string]interface{}{
						"type":        "boolean",
						"description": "Write each region's index above its outline. Ignored when overlay is false. Default false",
						"default":     false,
					},
					"save_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional file to also write the render to (.png, .jpg or .bmp)",
					},
				},
			},
		},
		{
			Name:        "canvas_info",
			Description: "Report canvas size, placed points and the regions from the last detection.",
			InputSchema: noArgs(),
		},

		// Images
		{
			Name:        "image_load",
			Description: "Load (or reload) an image file and return its dimensions, format and how many pixels count as ink.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_sample_color",
			Description: "Get the color of a pixel in hex, RGB and HSL, and whether it counts as ink.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "image_detect_segments",
			Description: "Run segment-pattern detection on an image file and return merged bounding rectangles.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"dump_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional file to receive a text dump of every non-empty window",
					},
					"include_hits": map[string]interface{}{
						"type":        "boolean",
						"description": "Include every individual 3x3 match in the result. Default false",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_detect_segments_batch",
			Description: "Run segment-pattern detection on several image files concurrently. Results are returned in input order.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"paths": map[string]interface{}{
						"type":        "array",
						"description": "Absolute paths to the image files",
						"items":       map[string]interface{}{"type": "string"},
					},
				},
				"required": []string{"paths"},
			},
		},
		{
			Name:        "image_crop",
			Description: "Crop a detected region from an image and return it as base64-encoded PNG. Use this to examine what a rectangle from image_detect_segments covers.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"rect": rectSchema,
					"padding": map[string]interface{}{
						"type":        "integer",
						"description": "Pixels added on every side, clipped to the image. Default 0",
						"default":     0,
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 4.0 to enlarge small regions). Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path", "rect"},
			},
		},

		// Engine
		{
			Name:        "segment_patterns",
			Description: "List the 3x3 templates used for matching, in matching order, with the match threshold.",
			InputSchema: noArgs(),
		},
		{
			Name:        "segment_merge_rects",
			Description: "Merge rectangles the same way detection does: sort, then combine each rectangle into the running one when they overlap or touch.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"rects": map[string]interface{}{
						"type":  "array",
						"items": rectSchema,
					},
				},
				"required": []string{"rects"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
