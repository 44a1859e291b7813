package imaging

import (
	"image"
	"image/color"
	"testing"
)

func mustBinarize(t *testing.T, img image.Image) *BinarizeResult {
	t.Helper()
	result, err := Binarize(img)
	if err != nil {
		t.Fatalf("Binarize failed: %v", err)
	}
	return result
}

// splitImage returns a 20×20 gray image with level left on the left half and
// right on the right half.
func splitImage(left, right uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			v := left
			if x >= 10 {
				v = right
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return img
}

func TestBinarize(t *testing.T) {
	img := shapesImage()
	result := mustBinarize(t, img)

	if result.Mask.Bounds() != img.Bounds() {
		t.Fatalf("Mask bounds: got %v, want %v", result.Mask.Bounds(), img.Bounds())
	}
	if result.Threshold <= 30 || result.Threshold >= 240 {
		t.Errorf("Threshold: got %d, want between ink and paper", result.Threshold)
	}

	tests := []struct {
		name string
		x, y int
		want uint8
	}{
		{"disk center", 50, 50, 255},
		{"square center", 150, 50, 255},
		{"background corner", 2, 2, 0},
		{"between shapes", 100, 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := result.Mask.GrayAt(tt.x, tt.y).Y; got != tt.want {
				t.Errorf("Mask at (%d,%d): got %d, want %d", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestBinarize_ThresholdPartitionsGray(t *testing.T) {
	tests := []struct {
		name string
		img  image.Image
	}{
		{"shapes", shapesImage()},
		{"adjacent levels", splitImage(10, 11)},
		{"two levels", splitImage(40, 200)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := mustBinarize(t, tt.img)
			b := result.Mask.Bounds()
			for y := b.Min.Y; y < b.Max.Y; y++ {
				for x := b.Min.X; x < b.Max.X; x++ {
					fg := result.Mask.GrayAt(x, y).Y == 255
					level := int(result.Gray.GrayAt(x, y).Y)
					if fg != (level <= result.Threshold) {
						t.Fatalf("pixel (%d,%d) level %d, threshold %d: got foreground %v",
							x, y, level, result.Threshold, fg)
					}
				}
			}
		})
	}
}

func TestBinarize_BrighterLevelIsBackground(t *testing.T) {
	result := mustBinarize(t, splitImage(10, 11))
	if got := result.Mask.GrayAt(19, 10).Y; got != 0 {
		t.Errorf("Mask at (19,10): got %d, want 0", got)
	}

	result = mustBinarize(t, splitImage(40, 200))
	if got := result.Mask.GrayAt(2, 10).Y; got != 255 {
		t.Errorf("Dark half: got %d, want 255", got)
	}
	if got := result.Mask.GrayAt(17, 10).Y; got != 0 {
		t.Errorf("Bright half: got %d, want 0", got)
	}
}

func TestBinarize_MaskIsBinary(t *testing.T) {
	result := mustBinarize(t, shapesImage())
	for i, v := range result.Mask.Pix {
		if v != 0 && v != 255 {
			t.Fatalf("Mask pixel %d: got %d, want 0 or 255", i, v)
		}
	}
}

func TestBinarize_UniformImage(t *testing.T) {
	result := mustBinarize(t, newCanvas(20, 20, paper))
	first := result.Mask.Pix[0]
	for i, v := range result.Mask.Pix {
		if v != first {
			t.Fatalf("Uniform image pixel %d: got %d, want %d", i, v, first)
		}
	}
	if empty := first == 0; empty != (result.Threshold == -1) {
		t.Errorf("Threshold: got %d with empty mask %v", result.Threshold, empty)
	}
}

func TestBinarize_ColoredObject(t *testing.T) {
	img := newCanvas(60, 60, color.RGBA{255, 255, 255, 255})
	drawBox(img, 20, 20, 39, 39, color.RGBA{255, 255, 0, 255})

	result := mustBinarize(t, img)
	if got := result.Mask.GrayAt(30, 30).Y; got != 255 {
		t.Errorf("Yellow square center: got %d, want 255", got)
	}
	if got := result.Mask.GrayAt(5, 5).Y; got != 0 {
		t.Errorf("White background: got %d, want 0", got)
	}
}

func TestBinarize_OffsetBounds(t *testing.T) {
	src := shapesImage().SubImage(image.Rect(100, 0, 200, 100))
	result := mustBinarize(t, src)

	if result.Mask.Bounds() != src.Bounds() {
		t.Fatalf("Mask bounds: got %v, want %v", result.Mask.Bounds(), src.Bounds())
	}
	if got := result.Mask.GrayAt(150, 50).Y; got != 255 {
		t.Errorf("Square center: got %d, want 255", got)
	}
	if got := result.Mask.GrayAt(105, 5).Y; got != 0 {
		t.Errorf("Background: got %d, want 0", got)
	}
}

func TestSmoothGray_Levels(t *testing.T) {
	tests := []struct {
		name  string
		c     color.RGBA
		want  uint8
		slack int
	}{
		{"white", color.RGBA{255, 255, 255, 255}, 255, 0},
		{"black", color.RGBA{0, 0, 0, 255}, 0, 0},
		{"yellow", color.RGBA{255, 255, 0, 255}, 179, 1},
		{"cyan", color.RGBA{0, 255, 255, 255}, 226, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gray := smoothGray(newCanvas(9, 9, tt.c))
			got := int(gray.GrayAt(4, 4).Y)
			if d := got - int(tt.want); d < -tt.slack || d > tt.slack {
				t.Errorf("Gray level: got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSmoothGray_Kernel(t *testing.T) {
	img := newCanvas(11, 11, color.RGBA{0, 0, 0, 255})
	img.Set(5, 5, color.RGBA{255, 255, 255, 255})
	gray := smoothGray(img)

	tests := []struct {
		name string
		x, y int
		want uint8
	}{
		{"center", 5, 5, 36},
		{"neighbor", 6, 5, 24},
		{"diagonal", 6, 6, 16},
		{"outside support", 8, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gray.GrayAt(tt.x, tt.y).Y; got != tt.want {
				t.Errorf("Gray at (%d,%d): got %d, want %d", tt.x, tt.y, got, tt.want)
			}
		})
	}
}
