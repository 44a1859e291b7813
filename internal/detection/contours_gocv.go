//go:build gocv

package detection

import (
	"image"
	"sort"

	"gocv.io/x/gocv"

	"github.com/RitikaSubbaraj/shape-contour-analyzer/internal/shape"
)

// FindContours returns the outer boundary of every top-level foreground region
// in a binary mask using OpenCV's external retrieval mode with simple chain
// compression.
//
// Built with -tags gocv. Requires OpenCV 4 and its development headers.
// The pure Go tracer used by default follows the same conventions.
func FindContours(mask *image.Gray) []shape.Contour {
	b := mask.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return []shape.Contour{}
	}

	// OpenCV needs tightly packed rows
	pix := make([]byte, w*h)
	for y := 0; y < h; y++ {
		off := mask.PixOffset(b.Min.X, b.Min.Y+y)
		copy(pix[y*w:(y+1)*w], mask.Pix[off:off+w])
	}

	mat, err := gocv.NewMatFromBytes(h, w, gocv.MatTypeCV8UC1, pix)
	if err != nil {
		return []shape.Contour{}
	}
	defer mat.Close()

	found := gocv.FindContours(mat, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer found.Close()

	contours := make([]shape.Contour, 0, found.Size())
	for i := 0; i < found.Size(); i++ {
		pts := found.At(i).ToPoints()
		c := make(shape.Contour, len(pts))
		for k, p := range pts {
			c[k] = shape.Point{X: float64(p.X + b.Min.X), Y: float64(p.Y + b.Min.Y)}
		}
		contours = append(contours, c)
	}

	sortRaster(contours)
	return contours
}

// sortRaster orders contours by their starting point, top to bottom then left
// to right. OpenCV starts each outer contour at the region's first pixel in
// raster order but does not return the contours in that order.
func sortRaster(contours []shape.Contour) {
	sort.SliceStable(contours, func(i, j int) bool {
		a, b := contours[i][0], contours[j][0]
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
}
