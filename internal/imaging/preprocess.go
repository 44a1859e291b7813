package imaging

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/convolution"
	"github.com/anthonynsimon/bild/effect"
	"github.com/ernyoke/imger/threshold"
)

// Gray weights for channels read in blue, green, red order: red takes the
// blue luma weight and blue the red one.
const (
	weightR = 0.114
	weightG = 0.587
	weightB = 0.299
)

// smoothingTaps is the 5-tap binomial Gaussian (sigma about 1.1), applied
// once per axis.
var smoothingTaps = []float64{1.0 / 16, 4.0 / 16, 6.0 / 16, 4.0 / 16, 1.0 / 16}

// BinarizeResult holds the foreground mask of an image.
type BinarizeResult struct {
	// Mask has value 255 for foreground pixels and 0 for background. It has
	// the same bounds as the source image.
	Mask *image.Gray

	// Gray is the smoothed gray image the mask was thresholded from.
	Gray *image.Gray

	// Threshold is the brightest gray level classified as foreground, so a
	// pixel is foreground exactly when its Gray value is <= Threshold.
	// It is -1 when nothing is foreground.
	Threshold int
}

// Binarize separates dark objects from a light background.
//
// Parameters:
//   - img: Source image in any color model.
//
// Returns:
//   - *BinarizeResult: The foreground mask and the gray image it came from.
//   - error: Non-nil if thresholding fails.
//
// # Pipeline
//
//  1. Grayscale conversion with BGR-order luma weights
//  2. 5×5 Gaussian smoothing to suppress pixel noise
//  3. Inverted Otsu threshold: the darker class becomes foreground
func Binarize(img image.Image) (*BinarizeResult, error) {
	gray := smoothGray(img)
	b := gray.Bounds()

	// Same pixels, origin at (0, 0)
	origin := &image.Gray{Pix: gray.Pix, Stride: gray.Stride, Rect: image.Rect(0, 0, b.Dx(), b.Dy())}
	inv, err := threshold.OtsuThreshold(origin, threshold.ThreshBinaryInv)
	if err != nil {
		return nil, fmt.Errorf("otsu threshold: %w", err)
	}

	ib := inv.Bounds()
	mask := image.NewGray(b)
	level := -1
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			if inv.GrayAt(ib.Min.X+x, ib.Min.Y+y).Y == 0 {
				continue
			}
			mask.Pix[mask.PixOffset(b.Min.X+x, b.Min.Y+y)] = 255
			if v := int(gray.GrayAt(b.Min.X+x, b.Min.Y+y).Y); v > level {
				level = v
			}
		}
	}

	return &BinarizeResult{Mask: mask, Gray: gray, Threshold: level}, nil
}

// smoothGray converts img to gray and applies the separable smoothing
// kernel, rounding after each pass. The result keeps img's bounds.
func smoothGray(img image.Image) *image.Gray {
	rgba := effect.GrayscaleWithWeights(img, weightR, weightG, weightB)

	k := convolution.NewKernel(len(smoothingTaps), 1)
	copy(k.Matrix, smoothingTaps)
	opts := &convolution.Options{Bias: 0.5, KeepAlpha: true}
	rgba = convolution.Convolve(rgba, k, opts)
	rgba = convolution.Convolve(rgba, k.Transposed(), opts)

	// All three channels carry the same level
	b := rgba.Bounds()
	gray := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			gray.Pix[gray.PixOffset(x, y)] = rgba.Pix[rgba.PixOffset(x, y)]
		}
	}
	return gray
}
