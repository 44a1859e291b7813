package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// Schema fragments shared by several tools.
var (
	pathProperty = map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}

	minAreaProperty = map[string]interface{}{
		"type":        "number",
		"description": "Contours with a smaller area (square pixels) are rejected. Default 300; 100-5000 is the usual range",
		"default":     300,
		"minimum":     0,
	}

	regionProperty = map[string]interface{}{
		"type":        "object",
		"description": "Optional region to analyze. Coordinates in the result still refer to the full image",
		"properties": map[string]interface{}{
			"x1": map[string]interface{}{"type": "integer", "description": "Left edge X coordinate (0-based)"},
			"y1": map[string]interface{}{"type": "integer", "description": "Top edge Y coordinate (0-based)"},
			"x2": map[string]interface{}{"type": "integer", "description": "Right edge X coordinate (exclusive)"},
			"y2": map[string]interface{}{"type": "integer", "description": "Bottom edge Y coordinate (exclusive)"},
		},
		"required": []string{"x1", "y1", "x2", "y2"},
	}
)

// imagePipelineSchema is the input schema for tools that analyze an image,
// with extra properties merged in.
func imagePipelineSchema(extra map[string]interface{}) map[string]interface{} {
	props := map[string]interface{}{
		"path":     pathProperty,
		"min_area": minAreaProperty,
		"region":   regionProperty,
	}
	for k, v := range extra {
		props[k] = v
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": props,
		"required":   []string{"path"},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format. The image is cached for subsequent shape analysis.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},

		// Shape Analysis
		{
			Name:        "shape_analyze",
			Description: "Find the dark objects on a light background and classify each outline as Circle, Ellipse, Polygon or Irregular. Returns per-object measurements, a shape distribution summary and the largest area.",
			InputSchema: imagePipelineSchema(map[string]interface{}{
				"include_descriptors": map[string]interface{}{
					"type":        "boolean",
					"description": "Include circularity, solidity, extent and ellipse fit for every object. Default false",
					"default":     false,
				},
				"save": map[string]interface{}{
					"type":        "boolean",
					"description": "Store the run in the history database. Default false",
					"default":     false,
				},
			}),
		},
		{
			Name:        "shape_classify_contour",
			Description: "Classify contours given as point lists, without an image. Each contour gets an outcome: accepted with its shape, rejected (below min_area) or degenerate.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"contours": map[string]interface{}{
						"type":        "array",
						"description": "Closed contours, each an ordered list of points",
						"items": map[string]interface{}{
							"type": "array",
							"items": map[string]interface{}{
								"type": "object",
								"properties": map[string]interface{}{
									"x": map[string]interface{}{"type": "number"},
									"y": map[string]interface{}{"type": "number"},
								},
								"required": []string{"x", "y"},
							},
						},
					},
					"min_area": minAreaProperty,
				},
				"required": []string{"contours"},
			},
		},
		{
			Name:        "shape_overlay",
			Description: "Return the image as base64-encoded PNG with every accepted object outlined in green and labelled with its shape in red.",
			InputSchema: imagePipelineSchema(nil),
		},
		{
			Name:        "shape_export_csv",
			Description: "Return the measurements table (Shape, Area, Perimeter, rounded to 2 decimals) as CSV text.",
			InputSchema: imagePipelineSchema(nil),
		},

		// History
		{
			Name:        "shape_history_list",
			Description: "List saved analysis runs, newest first.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"limit": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum number of runs to return. Default 20",
						"default":     20,
					},
				},
			},
		},
		{
			Name:        "shape_history_get",
			Description: "Get a saved analysis run and its measurements by id.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": map[string]interface{}{
						"type":        "string",
						"description": "Run id returned by shape_analyze with save=true",
					},
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "shape_history_delete",
			Description: "Delete a saved analysis run and its measurements.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": map[string]interface{}{
						"type":        "string",
						"description": "Run id to delete",
					},
				},
				"required": []string{"id"},
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
