// Package shape classifies closed 2D contours into geometric shape categories.
//
// The package has two stages that always run in order:
//
//  1. Descriptor Engine: ComputeDescriptors measures a contour (area, perimeter,
//     convex hull area, bounding box, best-fit ellipse) and derives the
//     normalized descriptors circularity, solidity, extent and ellipse ratio.
//  2. Shape Classifier: Classify applies an ordered rule table to the
//     descriptors and returns exactly one Label.
//
// Analyze runs both stages for a single contour and ClassifyAll maps a batch of
// contours over a fixed worker pool.
//
// # Coordinate System
//
// Contour points use image coordinates:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//
// Orientation of the point sequence does not matter; areas are absolute.
//
// # Rejections
//
// Two outcomes are not errors in the usual sense and are reported as sentinel
// values so batch callers can skip them:
//   - ErrRejected: the contour area is strictly below the minimum area
//   - ErrDegenerate: fewer than 3 points, or zero perimeter
//
// Neither ever aborts a batch. Callers must not assume one Result per input
// contour.
//
// # Classification Rules
//
// Rules are evaluated top to bottom, first match wins:
//
//	circularity > 0.82 && solidity > 0.9    -> Circle
//	ellipse ratio > 0.85 && solidity > 0.85 -> Ellipse
//	solidity < 0.8                          -> Irregular
//	otherwise                               -> Polygon
//
// The thresholds are fixed. No vertex counting is performed, so every convex
// straight-edged shape that is not caught by the first two rules is a Polygon.
//
// # Thread Safety
//
// All functions are pure and safe for concurrent use. Contours are only read.
package shape
