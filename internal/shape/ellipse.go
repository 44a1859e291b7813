package shape

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// minEllipsePoints is the smallest contour that gets an ellipse fit.
const minEllipsePoints = 5

// Ellipse is a best-fit ellipse for a contour.
//
// Major and Minor are full axis lengths (diameters), Major >= Minor.
// Angle is the direction of the major axis in degrees, measured from the
// positive X axis towards positive Y.
type Ellipse struct {
	Center Point   `json:"center"`
	Major  float64 `json:"major"`
	Minor  float64 `json:"minor"`
	Angle  float64 `json:"angle"`
}

// Ratio returns Minor / Major, in [0, 1].
func (e Ellipse) Ratio() float64 {
	if e.Major <= 0 {
		return 0
	}
	return math.Min(e.Minor, e.Major) / math.Max(e.Minor, e.Major)
}

// FitEllipse fits an ellipse to the contour points.
//
// The primary method is the direct least-squares conic fit of Fitzgibbon et al.
// in the numerically stable form of Halir and Flusser, computed on coordinates
// normalized to zero mean and unit RMS radius so the result does not depend on
// the contour's position or scale. When the best conic is not an ellipse, or
// the system is singular, the fit falls back to the ellipse with the same
// second-order central moments as the point set.
//
// Returns false when the contour has fewer than 5 points or all points
// coincide.
func FitEllipse(c Contour) (Ellipse, bool) {
	if len(c) < minEllipsePoints {
		return Ellipse{}, false
	}

	norm, mx, my, scale := normalize(c)
	if scale == 0 {
		return Ellipse{}, false
	}

	e, ok := fitConic(norm)
	if !ok {
		e, ok = fitMoments(norm)
		if !ok {
			return Ellipse{}, false
		}
	}

	return Ellipse{
		Center: Point{X: e.Center.X*scale + mx, Y: e.Center.Y*scale + my},
		Major:  e.Major * scale,
		Minor:  e.Minor * scale,
		Angle:  e.Angle,
	}, true
}

// normalize translates the points to zero mean and scales them to unit RMS
// distance from the mean.
func normalize(c Contour) ([]Point, float64, float64, float64) {
	n := float64(len(c))
	var mx, my float64
	for _, p := range c {
		mx += p.X
		my += p.Y
	}
	mx /= n
	my /= n

	var ss float64
	for _, p := range c {
		dx, dy := p.X-mx, p.Y-my
		ss += dx*dx + dy*dy
	}
	scale := math.Sqrt(ss / n)
	if scale < epsilon {
		return nil, mx, my, 0
	}

	out := make([]Point, len(c))
	for i, p := range c {
		out[i] = Point{X: (p.X - mx) / scale, Y: (p.Y - my) / scale}
	}
	return out, mx, my, scale
}

// fitConic solves for the conic a·x² + b·xy + c·y² + d·x + e·y + f = 0
// minimizing the algebraic distance subject to 4ac − b² = 1.
func fitConic(pts []Point) (Ellipse, bool) {
	n := len(pts)
	d1 := mat.NewDense(n, 3, nil)
	d2 := mat.NewDense(n, 3, nil)
	for i, p := range pts {
		d1.SetRow(i, []float64{p.X * p.X, p.X * p.Y, p.Y * p.Y})
		d2.SetRow(i, []float64{p.X, p.Y, 1})
	}

	var s1, s2, s3 mat.Dense
	s1.Mul(d1.T(), d1)
	s2.Mul(d1.T(), d2)
	s3.Mul(d2.T(), d2)

	// T = -S3⁻¹ S2ᵀ maps quadratic coefficients to linear ones
	var t mat.Dense
	if err := t.Solve(&s3, s2.T()); err != nil {
		return Ellipse{}, false
	}
	t.Scale(-1, &t)
	if !finite(&t) {
		return Ellipse{}, false
	}

	// Reduced scatter matrix M = S1 + S2 T
	var s2t, m mat.Dense
	s2t.Mul(&s2, &t)
	m.Add(&s1, &s2t)

	// Premultiply by the inverse of the constraint matrix
	// C1 = [[0 0 2] [0 -1 0] [2 0 0]]
	reduced := mat.NewDense(3, 3, nil)
	for j := 0; j < 3; j++ {
		reduced.Set(0, j, m.At(2, j)/2)
		reduced.Set(1, j, -m.At(1, j))
		reduced.Set(2, j, m.At(0, j)/2)
	}

	var eig mat.Eigen
	if !eig.Factorize(reduced, mat.EigenRight) {
		return Ellipse{}, false
	}
	values := eig.Values(nil)
	var vectors mat.CDense
	eig.VectorsTo(&vectors)

	best := Ellipse{}
	bestErr := math.Inf(1)
	found := false
	for i, v := range values {
		if math.Abs(imag(v)) > 1e-9*(1+math.Abs(real(v))) {
			continue
		}
		a1 := []float64{real(vectors.At(0, i)), real(vectors.At(1, i)), real(vectors.At(2, i))}
		cond := 4*a1[0]*a1[2] - a1[1]*a1[1]
		if cond <= 0 {
			continue
		}

		var a2 mat.VecDense
		a2.MulVec(&t, mat.NewVecDense(3, a1))
		coef := [6]float64{a1[0], a1[1], a1[2], a2.AtVec(0), a2.AtVec(1), a2.AtVec(2)}

		e, ok := conicToEllipse(coef)
		if !ok {
			continue
		}
		if r := algebraicError(pts, coef) / cond; r < bestErr {
			best, bestErr, found = e, r, true
		}
	}
	return best, found
}

// algebraicError sums the squared conic residuals over all points.
func algebraicError(pts []Point, k [6]float64) float64 {
	var sum float64
	for _, p := range pts {
		r := k[0]*p.X*p.X + k[1]*p.X*p.Y + k[2]*p.Y*p.Y + k[3]*p.X + k[4]*p.Y + k[5]
		sum += r * r
	}
	return sum
}

// conicToEllipse converts general conic coefficients to center, axes and
// orientation. Returns false when the conic is not a real ellipse.
func conicToEllipse(k [6]float64) (Ellipse, bool) {
	a, b, c, d, e, f := k[0], k[1], k[2], k[3], k[4], k[5]

	det := 4*a*c - b*b
	if det <= 0 {
		return Ellipse{}, false
	}
	x0 := (b*e - 2*c*d) / det
	y0 := (b*d - 2*a*e) / det
	f0 := f + (d*x0+e*y0)/2

	var eig mat.EigenSym
	if !eig.Factorize(mat.NewSymDense(2, []float64{a, b / 2, b / 2, c}), true) {
		return Ellipse{}, false
	}
	values := eig.Values(nil)
	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	// Both eigenvalues share a sign because det > 0
	l1, l2 := values[0], values[1]
	if l1 < 0 {
		l1, l2, f0 = -l2, -l1, -f0
	}
	if f0 >= 0 || l1 <= 0 {
		return Ellipse{}, false
	}

	// The smaller eigenvalue belongs to the major axis. After a sign flip the
	// order of the eigenvalues reverses, and with it the eigenvector column.
	col := 0
	if values[0] < 0 {
		col = 1
	}
	angle := math.Atan2(vectors.At(1, col), vectors.At(0, col)) * 180 / math.Pi

	return Ellipse{
		Center: Point{X: x0, Y: y0},
		Major:  2 * math.Sqrt(-f0/l1),
		Minor:  2 * math.Sqrt(-f0/l2),
		Angle:  normalizeAngle(angle),
	}, true
}

// fitMoments returns the ellipse whose second-order central moments match the
// point set's. Points sampled evenly around an ellipse with semi-axes a, b have
// variances a²/2 and b²/2 along the axes.
func fitMoments(pts []Point) (Ellipse, bool) {
	n := float64(len(pts))
	var mx, my float64
	for _, p := range pts {
		mx += p.X
		my += p.Y
	}
	mx /= n
	my /= n

	var sxx, sxy, syy float64
	for _, p := range pts {
		dx, dy := p.X-mx, p.Y-my
		sxx += dx * dx
		sxy += dx * dy
		syy += dy * dy
	}
	cov := mat.NewSymDense(2, []float64{sxx / n, sxy / n, sxy / n, syy / n})

	var eig mat.EigenSym
	if !eig.Factorize(cov, true) {
		return Ellipse{}, false
	}
	values := eig.Values(nil)
	if values[1] <= 0 {
		return Ellipse{}, false
	}
	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	angle := math.Atan2(vectors.At(1, 1), vectors.At(0, 1)) * 180 / math.Pi
	return Ellipse{
		Center: Point{X: mx, Y: my},
		Major:  2 * math.Sqrt(2*values[1]),
		Minor:  2 * math.Sqrt(2*math.Max(values[0], 0)),
		Angle:  normalizeAngle(angle),
	}, true
}

// normalizeAngle maps an axis direction in degrees to [0, 180).
func normalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 180)
	if deg < 0 {
		deg += 180
	}
	return deg
}

// finite reports whether every element of m is a finite number.
func finite(m mat.Matrix) bool {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := m.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}
