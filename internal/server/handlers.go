package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/RitikaSubbaraj/shape-contour-analyzer/internal/analysis"
	"github.com/RitikaSubbaraj/shape-contour-analyzer/internal/history"
	"github.com/RitikaSubbaraj/shape-contour-analyzer/internal/imaging"
	"github.com/RitikaSubbaraj/shape-contour-analyzer/internal/report"
	"github.com/RitikaSubbaraj/shape-contour-analyzer/internal/shape"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "shape_analyze").
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
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.debugf("Tool %s failed: %v", params.Name, err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
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
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images from cache as needed
//  4. Runs the analysis pipeline or queries the history store
//  5. Returns the result or error
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Shape Analysis
	case "shape_analyze":
		return s.handleShapeAnalyze(ctx, args)
	case "shape_classify_contour":
		return s.handleShapeClassifyContour(ctx, args)
	case "shape_overlay":
		return s.handleShapeOverlay(ctx, args)
	case "shape_export_csv":
		return s.handleShapeExportCSV(ctx, args)

	// History
	case "shape_history_list":
		return s.handleShapeHistoryList(args)
	case "shape_history_get":
		return s.handleShapeHistoryGet(args)
	case "shape_history_delete":
		return s.handleShapeHistoryDelete(args)

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

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Shape Analysis Handlers ===

// shapeImageArgs are shared by every tool that runs the image pipeline.
type shapeImageArgs struct {
	Path    string          `json:"path"`
	MinArea *float64        `json:"min_area,omitempty"`
	Region  *imaging.Region `json:"region,omitempty"`
}

// minArea returns the requested threshold or the configured default.
func (s *Server) minArea(v *float64) float64 {
	if v == nil {
		return s.cfg.MinArea
	}
	return *v
}

// analyze loads the image and runs the pipeline over it.
func (s *Server) analyze(ctx context.Context, a shapeImageArgs, descriptors bool) (*analysis.Report, error) {
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	rep, err := s.analyzer.Run(ctx, img, analysis.Options{
		MinArea:            s.minArea(a.MinArea),
		Region:             a.Region,
		IncludeDescriptors: descriptors,
	})
	if err != nil {
		return nil, err
	}

	s.debugf("Analyzed %s: %d contours, %d objects, %d rejected, %d degenerate",
		a.Path, rep.ContoursFound, len(rep.Objects), rep.Rejected, rep.Degenerate)
	return rep, nil
}

type shapeAnalyzeArgs struct {
	shapeImageArgs
	IncludeDescriptors bool `json:"include_descriptors"`
	Save               bool `json:"save"`
}

// shapeAnalyzeResult is the analysis report plus the history id when saved.
type shapeAnalyzeResult struct {
	*analysis.Report
	RunID string `json:"run_id,omitempty"`
}

func (s *Server) handleShapeAnalyze(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a shapeAnalyzeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Save && s.history == nil {
		return nil, history.ErrDisabled
	}

	rep, err := s.analyze(ctx, a.shapeImageArgs, a.IncludeDescriptors)
	if err != nil {
		return nil, err
	}

	result := &shapeAnalyzeResult{Report: rep}
	if a.Save {
		run := history.NewRun(a.Path, rep.MinArea, rep.Summary, rep.Measurements)
		if err := s.history.Save(run); err != nil {
			return nil, fmt.Errorf("failed to save run: %w", err)
		}
		result.RunID = run.ID
	}
	return result, nil
}

type shapeClassifyContourArgs struct {
	Contours []shape.Contour `json:"contours"`
	MinArea  *float64        `json:"min_area,omitempty"`
}

func (s *Server) handleShapeClassifyContour(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a shapeClassifyContourArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if len(a.Contours) == 0 {
		return nil, errors.New("contours must contain at least one contour")
	}

	return s.analyzer.ClassifyContours(ctx, a.Contours, s.minArea(a.MinArea))
}

func (s *Server) handleShapeOverlay(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a shapeImageArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	rep, err := s.analyze(ctx, a, false)
	if err != nil {
		return nil, err
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.Overlay(img, rep.Outlines())
}

// CSVExportResult carries the measurements table as CSV text.
type CSVExportResult struct {
	CSV  string `json:"csv"`
	Rows int    `json:"rows"`
}

func (s *Server) handleShapeExportCSV(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a shapeImageArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	rep, err := s.analyze(ctx, a, false)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := report.WriteCSV(&buf, rep.Measurements); err != nil {
		return nil, err
	}
	return &CSVExportResult{CSV: buf.String(), Rows: len(rep.Measurements)}, nil
}

// === History Handlers ===

type shapeHistoryListArgs struct {
	Limit int `json:"limit"`
}

func (s *Server) handleShapeHistoryList(args json.RawMessage) (interface{}, error) {
	if s.history == nil {
		return nil, history.ErrDisabled
	}

	// Arguments are optional for listing
	var a shapeHistoryListArgs
	if len(args) > 0 {
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, err
		}
	}

	runs, err := s.history.List(a.Limit)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"runs":  runs,
		"count": len(runs),
	}, nil
}

type shapeHistoryIDArgs struct {
	ID string `json:"id"`
}

func (s *Server) historyID(args json.RawMessage) (string, error) {
	if s.history == nil {
		return "", history.ErrDisabled
	}

	var a shapeHistoryIDArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return "", err
	}
	if a.ID == "" {
		return "", errors.New("id is required")
	}
	return a.ID, nil
}

func (s *Server) handleShapeHistoryGet(args json.RawMessage) (interface{}, error) {
	id, err := s.historyID(args)
	if err != nil {
		return nil, err
	}
	return s.history.Get(id)
}

func (s *Server) handleShapeHistoryDelete(args json.RawMessage) (interface{}, error) {
	id, err := s.historyID(args)
	if err != nil {
		return nil, err
	}
	if err := s.history.Delete(id); err != nil {
		return nil, err
	}
	return map[string]interface{}{"deleted": id}, nil
}
