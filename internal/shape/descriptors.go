package shape

import (
	"errors"
	"math"
)

// epsilon guards every division by an area or a perimeter so tiny contours
// never divide by zero.
const epsilon = 1e-6

var (
	// ErrRejected is returned when a contour's area is below the minimum area.
	ErrRejected = errors.New("contour area below minimum")

	// ErrDegenerate is returned for contours with fewer than 3 points or zero
	// perimeter.
	ErrDegenerate = errors.New("degenerate contour")
)

// Descriptors holds the measurements and normalized shape descriptors of one
// contour.
type Descriptors struct {
	// Area is the absolute shoelace area in square pixels.
	Area float64 `json:"area"`

	// Perimeter is the closed polyline length in pixels.
	Perimeter float64 `json:"perimeter"`

	// Circularity is 4π·Area / Perimeter². 1 for a perfect circle; noisy or
	// self-intersecting contours may slightly exceed 1.
	Circularity float64 `json:"circularity"`

	// HullArea is the area of the convex hull of the contour points.
	HullArea float64 `json:"hull_area"`

	// Solidity is Area / HullArea. Small overshoot above 1 is tolerated.
	Solidity float64 `json:"solidity"`

	// Bounds is the axis-aligned bounding box.
	Bounds Rect `json:"bounds"`

	// Extent is Area / (Bounds.Width × Bounds.Height).
	Extent float64 `json:"extent"`

	// Ellipse is the best-fit ellipse, nil when the contour has fewer than
	// 5 points or no fit exists.
	Ellipse *Ellipse `json:"ellipse,omitempty"`

	// PointCount is the number of contour points.
	PointCount int `json:"point_count"`
}

// EllipseRatio returns the minor/major axis ratio of the fitted ellipse, or 0
// when no ellipse was fitted. Use Ellipse != nil to tell the two apart.
func (d Descriptors) EllipseRatio() float64 {
	if d.Ellipse == nil {
		return 0
	}
	return d.Ellipse.Ratio()
}

// ComputeDescriptors measures a contour.
//
// The area test runs first and short-circuits: a contour with
// Area < minArea returns ErrRejected without any further work. Equality is
// not rejected. A negative minArea behaves like 0.
//
// Contours with fewer than 3 points or zero perimeter return ErrDegenerate.
func ComputeDescriptors(c Contour, minArea float64) (Descriptors, error) {
	if len(c) < 3 {
		return Descriptors{}, ErrDegenerate
	}

	area := Area(c)
	if area < math.Max(minArea, 0) {
		return Descriptors{}, ErrRejected
	}

	perimeter := Perimeter(c)
	if perimeter == 0 {
		return Descriptors{}, ErrDegenerate
	}

	hullArea := Area(ConvexHull(c))
	bounds := BoundingRect(c)

	d := Descriptors{
		Area:        area,
		Perimeter:   perimeter,
		Circularity: 4 * math.Pi * area / (perimeter*perimeter + epsilon),
		HullArea:    hullArea,
		Solidity:    area / (hullArea + epsilon),
		Bounds:      bounds,
		Extent:      area / (float64(bounds.Area()) + epsilon),
		PointCount:  len(c),
	}

	if e, ok := FitEllipse(c); ok {
		d.Ellipse = &e
	}

	return d, nil
}
