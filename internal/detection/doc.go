// Package detection extracts object outlines from binary masks.
//
// FindContours returns the outer boundary of every foreground region, ready
// for classification by the shape package. Holes, and anything inside a
// hole, are not reported.
//
// # Connectivity
//
// Foreground pixels are 8-connected and background pixels 4-connected, so
// two regions touching only at a corner form one object, and a diagonal
// gap in an outline does not leak into its interior. Pixels outside the
// mask count as background.
//
// # Tracing
//
// Each boundary is followed clockwise with Moore-neighbour tracing from the
// region's first pixel in raster order, and stops when it re-enters that
// pixel the same way it first left it. Runs of points moving in the same
// direction are collapsed to their end points, so an axis-aligned rectangle
// comes back as its four corners.
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//
// Contours are returned in raster order of their start pixel.
//
// # OpenCV
//
// Building with the gocv tag replaces the pure-Go tracer with OpenCV's
// findContours (external retrieval, simple chain approximation). Both
// return contours in the same order.
package detection
