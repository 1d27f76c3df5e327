// Package server implements the MCP (Model Context Protocol) server for
// camber analysis.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - notifications/initialized: Client acknowledgment (no response)
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Camber Analysis:
//   - camber_analyze: Measure the stripe and write the annotated copy
//   - camber_mask: Show the stripe mask and contour counts
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Color Operations:
//   - image_sample_color: Get color at pixel, including stripe band membership
//
// Measurement Operations:
//   - image_grid_overlay: Add a labelled coordinate grid
//
// # Image Caching
//
// Inspection tools share an in-memory cache of decoded images keyed by
// path. camber_analyze always reads its input fresh and evicts the file it
// writes, so later inspection sees the annotated image.
//
// # Error Handling
//
// Errors are returned as JSON-RPC error responses:
//   - -32601: unknown method
//   - -32602: malformed params, missing arguments or unknown tool
//   - -32000: the tool ran and failed (unreadable image, bad coordinates)
//
// The error's data field carries the Go error string.
package server
