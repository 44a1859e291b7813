package shape

import "math"

// circleContour returns n points evenly spaced on a circle.
func circleContour(cx, cy, r float64, n int) Contour {
	return ellipseContour(cx, cy, r, r, 0, n)
}

// ellipseContour returns n points evenly spaced in parameter on an ellipse with
// semi-axes a, b rotated by theta degrees.
func ellipseContour(cx, cy, a, b, theta float64, n int) Contour {
	rad := theta * math.Pi / 180
	cosT, sinT := math.Cos(rad), math.Sin(rad)
	c := make(Contour, n)
	for i := 0; i < n; i++ {
		t := 2 * math.Pi * float64(i) / float64(n)
		x := a * math.Cos(t)
		y := b * math.Sin(t)
		c[i] = Point{X: cx + x*cosT - y*sinT, Y: cy + x*sinT + y*cosT}
	}
	return c
}

// rectContour returns the four corners of an axis-aligned rectangle.
func rectContour(x, y, w, h float64) Contour {
	return Contour{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
}

// denseSquare returns a square outline sampled at every integer step.
func denseSquare(x, y, side int) Contour {
	c := make(Contour, 0, 4*side)
	for i := 0; i < side; i++ {
		c = append(c, Point{float64(x + i), float64(y)})
	}
	for i := 0; i < side; i++ {
		c = append(c, Point{float64(x + side), float64(y + i)})
	}
	for i := 0; i < side; i++ {
		c = append(c, Point{float64(x + side - i), float64(y + side)})
	}
	for i := 0; i < side; i++ {
		c = append(c, Point{float64(x), float64(y + side - i)})
	}
	return c
}

// notchedSquare returns a 100×100 square with a 60×60 notch cut from the top
// edge. Area 6400, hull area 10000.
func notchedSquare() Contour {
	return Contour{
		{0, 0}, {20, 0}, {20, 60}, {80, 60}, {80, 0},
		{100, 0}, {100, 100}, {0, 100},
	}
}

func equilateralTriangle(side float64) Contour {
	return Contour{{0, 0}, {side, 0}, {side / 2, side * math.Sqrt(3) / 2}}
}

func scaleContour(c Contour, k float64) Contour {
	out := make(Contour, len(c))
	for i, p := range c {
		out[i] = Point{X: p.X * k, Y: p.Y * k}
	}
	return out
}

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
