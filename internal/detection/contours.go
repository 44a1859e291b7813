//go:build !gocv

package detection

import (
	"image"

	"github.com/RitikaSubbaraj/shape-contour-analyzer/internal/shape"
)

// direction offsets, clockwise on screen starting East. Index 4 (West) is the
// initial backtrack of every trace.
var directions = [8]image.Point{
	{1, 0},   // E
	{1, 1},   // SE
	{0, 1},   // S
	{-1, 1},  // SW
	{-1, 0},  // W
	{-1, -1}, // NW
	{0, -1},  // N
	{1, -1},  // NE
}

const west = 4

// FindContours returns the outer boundary of every top-level foreground region
// in a binary mask.
//
// Any non-zero pixel is foreground. Regions are 8-connected and background is
// 4-connected; pixels outside the mask count as background. Regions that sit
// inside a hole of another region are skipped, so only the outermost boundary
// of each object is reported.
//
// Parameters:
//   - mask: Binary mask, typically the output of Binarize.
//
// Returns:
//   - []shape.Contour: One contour per top-level region, ordered by the raster
//     position (top to bottom, then left to right) of the region's first pixel.
//     Points are in mask coordinates with runs of collinear steps compressed to
//     their end points. A single isolated pixel yields a one-point contour.
//
// # Algorithm
//
//  1. Outer background: flood-fill the background from a one-pixel frame
//     around the mask using 4-connectivity
//  2. Labeling: flood-fill each foreground region using 8-connectivity
//  3. Tracing: for regions whose first pixel borders the outer background,
//     follow the boundary clockwise with Moore-neighbor tracing and
//     Jacob's stopping criterion
//  4. Compression: keep only points where the step direction changes
func FindContours(mask *image.Gray) []shape.Contour {
	b := mask.Bounds()
	g := newGrid(mask)

	outside := g.outerBackground()
	labeled := make([]bool, len(g.fg))

	contours := make([]shape.Contour, 0)
	for y := 1; y <= g.height; y++ {
		for x := 1; x <= g.width; x++ {
			i := g.index(x, y)
			if !g.fg[i] || labeled[i] {
				continue
			}
			floodFill(g, labeled, x, y)

			// The first pixel of a region in raster order always lies on its
			// outer boundary, with its west neighbor in the enclosing background.
			if !outside[g.index(x-1, y)] {
				continue
			}

			trace := compress(g.trace(image.Point{X: x, Y: y}))
			c := make(shape.Contour, len(trace))
			for k, p := range trace {
				c[k] = shape.Point{X: float64(p.X - 1 + b.Min.X), Y: float64(p.Y - 1 + b.Min.Y)}
			}
			contours = append(contours, c)
		}
	}

	return contours
}

// grid is the mask padded with a one-pixel background frame so neighbor
// lookups never leave the slice.
type grid struct {
	width, height int // unpadded size
	stride        int
	fg            []bool
}

func newGrid(mask *image.Gray) *grid {
	b := mask.Bounds()
	g := &grid{
		width:  b.Dx(),
		height: b.Dy(),
		stride: b.Dx() + 2,
	}
	g.fg = make([]bool, g.stride*(g.height+2))
	for y := 0; y < g.height; y++ {
		off := mask.PixOffset(b.Min.X, b.Min.Y+y)
		row := mask.Pix[off : off+g.width]
		for x, v := range row {
			g.fg[g.index(x+1, y+1)] = v != 0
		}
	}
	return g
}

func (g *grid) index(x, y int) int {
	return y*g.stride + x
}

func (g *grid) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width+2 && y < g.height+2
}

// outerBackground marks every background pixel 4-connected to the frame.
func (g *grid) outerBackground() []bool {
	outside := make([]bool, len(g.fg))
	stack := []image.Point{{X: 0, Y: 0}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !g.inside(p.X, p.Y) {
			continue
		}
		i := g.index(p.X, p.Y)
		if outside[i] || g.fg[i] {
			continue
		}
		outside[i] = true

		stack = append(stack,
			image.Point{X: p.X + 1, Y: p.Y},
			image.Point{X: p.X - 1, Y: p.Y},
			image.Point{X: p.X, Y: p.Y + 1},
			image.Point{X: p.X, Y: p.Y - 1},
		)
	}

	return outside
}

// floodFill marks the 8-connected foreground region containing (startX, startY).
//
// Uses an explicit stack rather than recursion so large regions cannot
// overflow the goroutine stack.
func floodFill(g *grid, labeled []bool, startX, startY int) {
	stack := []image.Point{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !g.inside(p.X, p.Y) {
			continue
		}
		i := g.index(p.X, p.Y)
		if labeled[i] || !g.fg[i] {
			continue
		}
		labeled[i] = true

		for _, d := range directions {
			stack = append(stack, p.Add(d))
		}
	}
}

// step finds the next boundary pixel clockwise around cur, starting after the
// backtrack direction. It returns the new pixel and the direction from it
// back to the last background pixel examined.
func (g *grid) step(cur image.Point, back int) (image.Point, int, bool) {
	for k := 1; k <= 8; k++ {
		d := (back + k) % 8
		n := cur.Add(directions[d])
		if !g.fg[g.index(n.X, n.Y)] {
			continue
		}
		prev := cur.Add(directions[(back+k-1)%8])
		return n, directionOf(prev.Sub(n)), true
	}
	return cur, back, false
}

// trace walks the outer boundary starting at s, whose west neighbor must be
// background. Pixels visited more than once, such as along one-pixel-wide
// lines, appear once per visit.
func (g *grid) trace(s image.Point) []image.Point {
	points := []image.Point{s}

	next, back, ok := g.step(s, west)
	if !ok {
		return points
	}
	first := next

	for {
		cur := next
		next, back, _ = g.step(cur, back)
		if cur == s && next == first {
			return points
		}
		points = append(points, cur)
	}
}

// directionOf maps a unit offset to its index in directions.
func directionOf(d image.Point) int {
	for i, v := range directions {
		if v == d {
			return i
		}
	}
	return west
}

// compress drops every point whose incoming and outgoing steps share a
// direction, leaving only the corners of the closed polyline.
func compress(points []image.Point) []image.Point {
	n := len(points)
	if n < 3 {
		return points
	}

	out := make([]image.Point, 0, n)
	for i, p := range points {
		in := p.Sub(points[(i+n-1)%n])
		next := points[(i+1)%n].Sub(p)
		if in != next {
			out = append(out, p)
		}
	}
	return out
}
