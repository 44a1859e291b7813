// Package server implements the MCP (Model Context Protocol) server for shape analysis tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the contour
// classification pipeline through the MCP protocol, so MCP-compatible
// clients can count and classify the objects in an image.
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
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Shape Analysis:
//   - shape_analyze: Classify every object as Circle, Ellipse, Polygon or Irregular
//   - shape_classify_contour: Classify caller-supplied point lists
//   - shape_overlay: Outlines and labels drawn over the image
//   - shape_export_csv: Measurements table as CSV
//
// History (requires a history database):
//   - shape_history_list: Saved runs, newest first
//   - shape_history_get: One saved run with its measurements
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded images. Images are cached
// by path and reused across multiple tool calls, avoiding redundant disk I/O.
// The cache persists for the lifetime of the server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.New(config.Load())
//	defer srv.Close()
//	if err := srv.Serve(ctx, os.Stdin, os.Stdout); err != nil {
//	    log.Printf("Server error: %v", err)
//	}
package server
