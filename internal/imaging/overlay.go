package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/RitikaSubbaraj/shape-contour-analyzer/internal/shape"
)

const (
	outlineHex = "#00FF00"
	labelHex   = "#FF0000"

	// labelOffset lifts the label baseline above the bounding box.
	labelOffset = 5
)

// Outline is one labelled contour to draw on an overlay.
type Outline struct {
	Label   string
	Contour shape.Contour
	Bounds  shape.Rect
}

// OverlayResult contains the annotated image.
type OverlayResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
	Shapes      int    `json:"shapes"`
}

// Overlay draws each outline onto a copy of the image and returns it as a
// base64-encoded PNG.
//
// Contours are drawn as closed 2-pixel green polylines. Labels are drawn in
// red with their baseline 5 pixels above the top of the bounding box, using
// the 7×13 basic font. Anything falling outside the image is clipped.
func Overlay(img image.Image, outlines []Outline) (*OverlayResult, error) {
	bounds := img.Bounds()
	canvas := image.NewRGBA(bounds)
	draw.Draw(canvas, bounds, img, bounds.Min, draw.Src)

	stroke := hexColor(outlineHex)
	text := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(hexColor(labelHex)),
		Face: basicfont.Face7x13,
	}

	for _, o := range outlines {
		drawPolyline(canvas, o.Contour, stroke)

		text.Dot = fixed.P(o.Bounds.X, o.Bounds.Y-labelOffset)
		text.DrawString(o.Label)
	}

	encoded, err := encodePNG(canvas)
	if err != nil {
		return nil, err
	}

	return &OverlayResult{
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		ImageBase64: encoded,
		MimeType:    "image/png",
		Shapes:      len(outlines),
	}, nil
}

// hexColor parses a "#RRGGBB" string. Invalid input yields opaque black.
func hexColor(hex string) color.RGBA {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{A: 255}
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// drawPolyline strokes the closed polyline through c with a 2-pixel pen.
func drawPolyline(img *image.RGBA, c shape.Contour, col color.RGBA) {
	n := len(c)
	if n == 0 {
		return
	}
	if n == 1 {
		plot(img, int(c[0].X), int(c[0].Y), col)
		return
	}
	for i := range c {
		a, b := c[i], c[(i+1)%n]
		drawLine(img, int(a.X), int(a.Y), int(b.X), int(b.Y), col)
	}
}

// drawLine rasterizes a segment with Bresenham's algorithm.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		plot(img, x0, y0, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// plot paints a 2×2 pen at (x, y), clipped to the image.
func plot(img *image.RGBA, x, y int, col color.RGBA) {
	b := img.Bounds()
	for dy := 0; dy < 2; dy++ {
		for dx := 0; dx < 2; dx++ {
			if image.Pt(x+dx, y+dy).In(b) {
				img.SetRGBA(x+dx, y+dy, col)
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// encodePNG encodes img as PNG and returns it base64-encoded.
func encodePNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
