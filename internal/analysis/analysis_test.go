package analysis

import (
	"context"
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/RitikaSubbaraj/shape-contour-analyzer/internal/imaging"
	"github.com/RitikaSubbaraj/shape-contour-analyzer/internal/shape"
)

const testMinArea = 300

var (
	paper = color.RGBA{245, 245, 245, 255}
	ink   = color.RGBA{20, 30, 120, 255}
)

func fillBox(img *image.RGBA, x1, y1, x2, y2 int) {
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			img.Set(x, y, ink)
		}
	}
}

// sceneImage draws a disk, a wide rectangle, a speck below the area
// threshold and an L-shaped bracket on a light canvas.
func sceneImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 360, 140))
	for y := 0; y < 140; y++ {
		for x := 0; x < 360; x++ {
			img.Set(x, y, paper)
		}
	}

	for y := 35; y <= 105; y++ {
		for x := 15; x <= 85; x++ {
			dx, dy := x-50, y-70
			if dx*dx+dy*dy <= 35*35 {
				img.Set(x, y, ink)
			}
		}
	}
	fillBox(img, 110, 55, 209, 84)  // rectangle
	fillBox(img, 230, 20, 234, 24)  // speck
	fillBox(img, 260, 20, 275, 120) // bracket upright
	fillBox(img, 260, 105, 340, 120)
	return img
}

func countLabels(objects []Object) map[shape.Label]int {
	counts := make(map[shape.Label]int)
	for _, o := range objects {
		counts[o.Shape]++
	}
	return counts
}

func TestRun(t *testing.T) {
	rep, err := New(2).Run(context.Background(), sceneImage(), Options{MinArea: testMinArea})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if rep.Width != 360 || rep.Height != 140 {
		t.Errorf("dimensions: got %dx%d, want 360x140", rep.Width, rep.Height)
	}
	if rep.ContoursFound != 4 {
		t.Errorf("ContoursFound: got %d, want 4", rep.ContoursFound)
	}
	if rep.Rejected != 1 {
		t.Errorf("Rejected: got %d, want 1", rep.Rejected)
	}
	if len(rep.Objects) != 3 {
		t.Fatalf("Objects: got %d, want 3", len(rep.Objects))
	}

	got := countLabels(rep.Objects)
	want := map[shape.Label]int{shape.LabelCircle: 1, shape.LabelPolygon: 1, shape.LabelIrregular: 1}
	for label, n := range want {
		if got[label] != n {
			t.Errorf("%s count: got %d, want %d (all: %v)", label, got[label], n, got)
		}
	}

	if rep.Summary.TotalObjects != 3 || rep.Summary.UniqueShapes != 3 {
		t.Errorf("Summary: got %+v", rep.Summary)
	}
	if len(rep.Measurements) != 3 {
		t.Errorf("Measurements: got %d rows, want 3", len(rep.Measurements))
	}

	for i, o := range rep.Objects {
		if o.ID != i+1 {
			t.Errorf("Object %d ID: got %d", i, o.ID)
		}
		if o.Descriptors != nil {
			t.Errorf("Object %d: descriptors should be omitted by default", i)
		}
		if o.Area < testMinArea {
			t.Errorf("Object %d area %v below minimum", i, o.Area)
		}
	}
}

func TestRun_ObjectDetails(t *testing.T) {
	rep, err := New(0).Run(context.Background(), sceneImage(), Options{MinArea: 300, IncludeDescriptors: true})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	var circle *Object
	for i := range rep.Objects {
		if rep.Objects[i].Shape == shape.LabelCircle {
			circle = &rep.Objects[i]
		}
	}
	if circle == nil {
		t.Fatal("no circle found")
	}

	if math.Abs(circle.Centroid.X-50) > 1 || math.Abs(circle.Centroid.Y-70) > 1 {
		t.Errorf("Centroid: got %+v, want ≈(50,70)", circle.Centroid)
	}
	if circle.FillColor != "#141E78" {
		t.Errorf("FillColor: got %s, want #141E78", circle.FillColor)
	}
	if circle.Descriptors == nil {
		t.Fatal("Descriptors should be included")
	}
	if circle.Descriptors.Circularity < 0.82 {
		t.Errorf("Circularity: got %v", circle.Descriptors.Circularity)
	}
	if circle.PointCount != len(circle.Contour) {
		t.Errorf("PointCount: got %d, want %d", circle.PointCount, len(circle.Contour))
	}
	if got := rep.Outlines(); len(got) != len(rep.Objects) || got[0].Label != string(rep.Objects[0].Shape) {
		t.Errorf("Outlines do not mirror objects: %d outlines", len(got))
	}
}

func TestRun_Region(t *testing.T) {
	region := &imaging.Region{X1: 100, Y1: 40, X2: 220, Y2: 100}
	rep, err := New(1).Run(context.Background(), sceneImage(), Options{MinArea: 300, Region: region})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(rep.Objects) != 1 {
		t.Fatalf("Objects: got %d, want 1", len(rep.Objects))
	}
	o := rep.Objects[0]
	if o.Shape != shape.LabelPolygon {
		t.Errorf("Shape: got %s, want %s", o.Shape, shape.LabelPolygon)
	}

	// Coordinates refer to the full image
	if abs(o.Bounds.X-110) > 2 || abs(o.Bounds.Y-55) > 2 {
		t.Errorf("Bounds origin: got (%d,%d), want ≈(110,55)", o.Bounds.X, o.Bounds.Y)
	}
	if abs(o.Bounds.Width-100) > 3 || abs(o.Bounds.Height-30) > 3 {
		t.Errorf("Bounds size: got %dx%d, want ≈100x30", o.Bounds.Width, o.Bounds.Height)
	}
}

func TestRun_InvalidRegion(t *testing.T) {
	region := &imaging.Region{X1: 300, Y1: 0, X2: 400, Y2: 50}
	if _, err := New(1).Run(context.Background(), sceneImage(), Options{MinArea: 300, Region: region}); err == nil {
		t.Error("Run should fail for a region outside the image")
	}
}

func TestRun_NegativeMinArea(t *testing.T) {
	_, err := New(1).Run(context.Background(), sceneImage(), Options{MinArea: -1})
	if !errors.Is(err, ErrNegativeMinArea) {
		t.Errorf("error: got %v, want %v", err, ErrNegativeMinArea)
	}
}

func TestRun_HighThresholdRejectsEverything(t *testing.T) {
	rep, err := New(1).Run(context.Background(), sceneImage(), Options{MinArea: 1e6})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(rep.Objects) != 0 {
		t.Errorf("Objects: got %d, want 0", len(rep.Objects))
	}
	if rep.Rejected != rep.ContoursFound {
		t.Errorf("Rejected %d != contours %d", rep.Rejected, rep.ContoursFound)
	}
	if rep.Summary.LargestArea != 0 {
		t.Errorf("LargestArea: got %v, want 0", rep.Summary.LargestArea)
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(1).Run(ctx, sceneImage(), Options{MinArea: 300})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error: got %v, want %v", err, context.Canceled)
	}
}

func TestClassifyContours(t *testing.T) {
	circle := make(shape.Contour, 100)
	for i := range circle {
		a := 2 * math.Pi * float64(i) / 100
		circle[i] = shape.Point{X: 100 + 50*math.Cos(a), Y: 100 + 50*math.Sin(a)}
	}

	contours := []shape.Contour{
		circle,
		{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},   // area 100
		{{X: 0, Y: 0}, {X: 5, Y: 5}},                                   // too few points
		{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 30}, {X: 0, Y: 30}}, // area 3000
		{{X: 7, Y: 7}, {X: 7, Y: 7}, {X: 7, Y: 7}},                     // no area, rejected first
	}

	rep, err := New(2).ClassifyContours(context.Background(), contours, 300)
	if err != nil {
		t.Fatalf("ClassifyContours failed: %v", err)
	}

	want := []struct {
		status string
		label  shape.Label
	}{
		{StatusAccepted, shape.LabelCircle},
		{StatusRejected, ""},
		{StatusDegenerate, ""},
		{StatusAccepted, shape.LabelPolygon},
		{StatusRejected, ""},
	}

	if len(rep.Outcomes) != len(want) {
		t.Fatalf("Outcomes: got %d, want %d", len(rep.Outcomes), len(want))
	}
	for i, w := range want {
		o := rep.Outcomes[i]
		if o.Index != i {
			t.Errorf("Outcome %d index: got %d", i, o.Index)
		}
		if o.Status != w.status || o.Shape != w.label {
			t.Errorf("Outcome %d: got (%s, %s), want (%s, %s)", i, o.Status, o.Shape, w.status, w.label)
		}
		if (o.Bounds != nil) != (w.status == StatusAccepted) {
			t.Errorf("Outcome %d: bounds presence %v", i, o.Bounds != nil)
		}
	}

	if rep.Summary.TotalObjects != 2 {
		t.Errorf("TotalObjects: got %d, want 2", rep.Summary.TotalObjects)
	}
	if rep.Outcomes[3].Area != 3000 || rep.Outcomes[3].Perimeter != 260 {
		t.Errorf("rectangle measurements: got %v / %v", rep.Outcomes[3].Area, rep.Outcomes[3].Perimeter)
	}
}

func TestClassifyContours_ZeroPerimeterIsDegenerate(t *testing.T) {
	rep, err := New(1).ClassifyContours(context.Background(), []shape.Contour{{{X: 7, Y: 7}, {X: 7, Y: 7}, {X: 7, Y: 7}}}, 0)
	if err != nil {
		t.Fatalf("ClassifyContours failed: %v", err)
	}
	if rep.Outcomes[0].Status != StatusDegenerate {
		t.Errorf("Status: got %s, want %s", rep.Outcomes[0].Status, StatusDegenerate)
	}
}

func TestClassifyContours_StatusFollowsClassifier(t *testing.T) {
	square := shape.Contour{{X: 0, Y: 0}, {X: 40, Y: 0}, {X: 40, Y: 40}, {X: 0, Y: 40}} // area 1600
	tests := []struct {
		name    string
		contour shape.Contour
		minArea float64
		want    string
	}{
		{"exactly at min area", square, 1600, StatusAccepted},
		{"just above min area", square, 1600.01, StatusRejected},
		{"zero area at zero min", shape.Contour{{X: 3, Y: 3}, {X: 3, Y: 3}, {X: 3, Y: 3}}, 0, StatusDegenerate},
		{"two points", shape.Contour{{X: 0, Y: 0}, {X: 9, Y: 9}}, 0, StatusDegenerate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep, err := New(1).ClassifyContours(context.Background(), []shape.Contour{tt.contour}, tt.minArea)
			if err != nil {
				t.Fatalf("ClassifyContours failed: %v", err)
			}
			_, wantErr := shape.Analyze(tt.contour, tt.minArea)
			if got := rep.Outcomes[0].Status; got != tt.want {
				t.Errorf("Status: got %s, want %s (Analyze error %v)", got, tt.want, wantErr)
			}
		})
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
