package shape

import (
	"math"
	"sort"
)

// Point is a 2D coordinate in image space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Contour is an ordered, implicitly closed sequence of boundary points.
// The last point connects back to the first.
type Contour []Point

// Rect is an axis-aligned bounding box in pixel units.
//
// Width and Height count pixels inclusively, so a contour whose points span
// x = 10..19 has X = 10 and Width = 10.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Area returns Width × Height.
func (r Rect) Area() int {
	return r.Width * r.Height
}

// signedArea returns the shoelace area of the closed polygon. The sign is
// positive for counter-clockwise order in a y-up frame.
func signedArea(c Contour) float64 {
	n := len(c)
	if n < 3 {
		return 0
	}
	var sum float64
	prev := c[n-1]
	for _, p := range c {
		sum += prev.X*p.Y - p.X*prev.Y
		prev = p
	}
	return sum / 2
}

// Area returns the absolute polygon area of the contour.
func Area(c Contour) float64 {
	return math.Abs(signedArea(c))
}

// Perimeter returns the length of the closed polyline through all points.
func Perimeter(c Contour) float64 {
	n := len(c)
	if n < 2 {
		return 0
	}
	var sum float64
	prev := c[n-1]
	for _, p := range c {
		sum += math.Hypot(p.X-prev.X, p.Y-prev.Y)
		prev = p
	}
	return sum
}

// BoundingRect returns the pixel-inclusive bounding box of the contour.
func BoundingRect(c Contour) Rect {
	if len(c) == 0 {
		return Rect{}
	}
	minX, minY := c[0].X, c[0].Y
	maxX, maxY := minX, minY
	for _, p := range c[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	x := int(math.Floor(minX))
	y := int(math.Floor(minY))
	return Rect{
		X:      x,
		Y:      y,
		Width:  int(math.Floor(maxX)) - x + 1,
		Height: int(math.Floor(maxY)) - y + 1,
	}
}

// ConvexHull returns the convex hull of the points in counter-clockwise order
// (y-up frame) using Andrew's monotone chain. Collinear points on hull edges
// are dropped. Fewer than three distinct points are returned as-is.
func ConvexHull(points []Point) []Point {
	if len(points) < 3 {
		out := make([]Point, len(points))
		copy(out, points)
		return out
	}

	pts := make([]Point, len(points))
	copy(pts, points)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})

	hull := make([]Point, 0, 2*len(pts))

	// Lower hull
	for _, p := range pts {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}

	// Upper hull
	lower := len(hull) + 1
	for i := len(pts) - 2; i >= 0; i-- {
		p := pts[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}

	// Last point repeats the first
	return hull[:len(hull)-1]
}

// Centroid returns the area centroid of the polygon, or the mean of the points
// when the polygon has no area.
func Centroid(c Contour) Point {
	if len(c) == 0 {
		return Point{}
	}
	a := signedArea(c)
	if math.Abs(a) < epsilon {
		var sx, sy float64
		for _, p := range c {
			sx += p.X
			sy += p.Y
		}
		n := float64(len(c))
		return Point{X: sx / n, Y: sy / n}
	}

	var cx, cy float64
	prev := c[len(c)-1]
	for _, p := range c {
		f := prev.X*p.Y - p.X*prev.Y
		cx += (prev.X + p.X) * f
		cy += (prev.Y + p.Y) * f
		prev = p
	}
	return Point{X: cx / (6 * a), Y: cy / (6 * a)}
}

// cross computes the z component of (a-o) × (b-o).
func cross(o, a, b Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}
