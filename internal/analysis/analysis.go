// Package analysis runs the shape pipeline over an image: segmentation,
// external contour tracing, classification and aggregation.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/RitikaSubbaraj/shape-contour-analyzer/internal/detection"
	"github.com/RitikaSubbaraj/shape-contour-analyzer/internal/imaging"
	"github.com/RitikaSubbaraj/shape-contour-analyzer/internal/report"
	"github.com/RitikaSubbaraj/shape-contour-analyzer/internal/shape"
)

// ErrNegativeMinArea is returned for a negative minimum area.
var ErrNegativeMinArea = errors.New("min_area must not be negative")

// Options control one analysis run.
type Options struct {
	// MinArea rejects contours with a smaller area, in square pixels.
	MinArea float64

	// Region restricts the analysis to part of the image. Nil analyzes the
	// whole image. Reported coordinates always refer to the full image.
	Region *imaging.Region

	// IncludeDescriptors attaches the full descriptor set to every object.
	IncludeDescriptors bool
}

// Object is one accepted, classified contour.
type Object struct {
	ID          int                `json:"id"`
	Shape       shape.Label        `json:"shape"`
	Area        float64            `json:"area"`
	Perimeter   float64            `json:"perimeter"`
	Bounds      shape.Rect         `json:"bounds"`
	Centroid    shape.Point        `json:"centroid"`
	PointCount  int                `json:"point_count"`
	FillColor   string             `json:"fill_color,omitempty"`
	Descriptors *shape.Descriptors `json:"descriptors,omitempty"`

	// Contour is kept for overlay rendering and not serialized.
	Contour shape.Contour `json:"-"`
}

// Report is the outcome of one analysis run.
type Report struct {
	Width         int                  `json:"width"`
	Height        int                  `json:"height"`
	MinArea       float64              `json:"min_area"`
	Threshold     int                  `json:"threshold"`
	ContoursFound int                  `json:"contours_found"`
	Rejected      int                  `json:"rejected"`
	Degenerate    int                  `json:"degenerate"`
	Objects       []Object             `json:"objects"`
	Summary       report.Summary       `json:"summary"`
	Measurements  []report.Measurement `json:"measurements"`
}

// Outlines returns the labelled contours of the report for overlay drawing.
func (r *Report) Outlines() []imaging.Outline {
	out := make([]imaging.Outline, len(r.Objects))
	for i, o := range r.Objects {
		out[i] = imaging.Outline{Label: string(o.Shape), Contour: o.Contour, Bounds: o.Bounds}
	}
	return out
}

// Analyzer runs the pipeline. The zero value is ready to use and classifies
// with one worker per CPU.
type Analyzer struct {
	// Workers is the classification pool size; <= 0 uses runtime.NumCPU().
	Workers int
}

// New creates an Analyzer with the given classification pool size.
func New(workers int) *Analyzer {
	return &Analyzer{Workers: workers}
}

// Run analyzes an image.
//
// Parameters:
//   - ctx: Cancels classification of a large batch.
//   - img: Source image. Dark objects on a light background are foreground.
//   - opts: Minimum area, optional region and output detail.
//
// Returns:
//   - *Report: Accepted objects in the tracer's raster order, with summary
//     and measurement table.
//   - error: Non-nil for a negative MinArea, an invalid region, or when ctx
//     is cancelled.
//
// # Pipeline
//
//  1. Crop to the region, if any
//  2. Binarize with an inverted Otsu threshold
//  3. Trace external contours and shift them back to image coordinates
//  4. Classify every contour concurrently, skipping rejected and
//     degenerate ones
//  5. Aggregate labels and measurements
func (a *Analyzer) Run(ctx context.Context, img image.Image, opts Options) (*Report, error) {
	if opts.MinArea < 0 {
		return nil, ErrNegativeMinArea
	}

	src := img
	var shift image.Point
	if opts.Region != nil {
		cropped, err := imaging.CropRegion(img, *opts.Region)
		if err != nil {
			return nil, err
		}
		src = cropped
		shift = image.Pt(opts.Region.X1, opts.Region.Y1)
	}

	bin, err := imaging.Binarize(src)
	if err != nil {
		return nil, fmt.Errorf("binarize: %w", err)
	}
	contours := detection.FindContours(bin.Mask)

	// A cropped region starts at (0, 0)
	if shift != (image.Point{}) {
		for _, c := range contours {
			for i := range c {
				c[i].X += float64(shift.X)
				c[i].Y += float64(shift.Y)
			}
		}
	}

	batch, err := shape.ClassifyAll(ctx, contours, opts.MinArea, a.Workers)
	if err != nil {
		return nil, fmt.Errorf("classification cancelled: %w", err)
	}

	b := img.Bounds()
	rep := &Report{
		Width:         b.Dx(),
		Height:        b.Dy(),
		MinArea:       opts.MinArea,
		Threshold:     bin.Threshold,
		ContoursFound: len(contours),
		Rejected:      batch.Rejected,
		Degenerate:    batch.Degenerate,
		Objects:       make([]Object, 0, len(batch.Results)),
		Summary:       report.Summarize(batch.Results),
		Measurements:  report.Measurements(batch.Results),
	}

	for i, r := range batch.Results {
		c := contours[batch.Index[i]]
		centroid := shape.Centroid(c)

		obj := Object{
			ID:         i + 1,
			Shape:      r.Label,
			Area:       report.Round2(r.Area),
			Perimeter:  report.Round2(r.Perimeter),
			Bounds:     r.Bounds,
			Centroid:   shape.Point{X: report.Round2(centroid.X), Y: report.Round2(centroid.Y)},
			PointCount: r.Descriptors.PointCount,
			FillColor:  imaging.FillColor(img, centroid.X, centroid.Y),
			Contour:    c,
		}
		if opts.IncludeDescriptors {
			d := r.Descriptors
			obj.Descriptors = &d
		}
		rep.Objects = append(rep.Objects, obj)
	}

	return rep, nil
}

// Outcome is the classification of one caller-supplied contour.
type Outcome struct {
	Index     int         `json:"index"`
	Status    string      `json:"status"`
	Shape     shape.Label `json:"shape,omitempty"`
	Area      float64     `json:"area,omitempty"`
	Perimeter float64     `json:"perimeter,omitempty"`
	Bounds    *shape.Rect `json:"bounds,omitempty"`
}

// Outcome statuses.
const (
	StatusAccepted   = "accepted"
	StatusRejected   = "rejected"
	StatusDegenerate = "degenerate"
)

// ContourReport is the outcome of classifying caller-supplied contours.
type ContourReport struct {
	Outcomes     []Outcome            `json:"outcomes"`
	Summary      report.Summary       `json:"summary"`
	Measurements []report.Measurement `json:"measurements"`
}

// ClassifyContours classifies contours that did not come from an image.
//
// Every input gets an Outcome in input order. Rejected contours are those
// below minArea; degenerate ones have fewer than 3 points or no perimeter.
func (a *Analyzer) ClassifyContours(ctx context.Context, contours []shape.Contour, minArea float64) (*ContourReport, error) {
	if minArea < 0 {
		return nil, ErrNegativeMinArea
	}

	batch, err := shape.ClassifyAll(ctx, contours, minArea, a.Workers)
	if err != nil {
		return nil, fmt.Errorf("classification cancelled: %w", err)
	}

	outcomes := make([]Outcome, len(contours))
	for i, err := range batch.Errs {
		outcomes[i] = Outcome{Index: i, Status: StatusAccepted}
		switch {
		case errors.Is(err, shape.ErrRejected):
			outcomes[i].Status = StatusRejected
		case err != nil:
			outcomes[i].Status = StatusDegenerate
		}
	}
	for i, r := range batch.Results {
		o := &outcomes[batch.Index[i]]
		bounds := r.Bounds
		o.Shape = r.Label
		o.Area = report.Round2(r.Area)
		o.Perimeter = report.Round2(r.Perimeter)
		o.Bounds = &bounds
	}

	return &ContourReport{
		Outcomes:     outcomes,
		Summary:      report.Summarize(batch.Results),
		Measurements: report.Measurements(batch.Results),
	}, nil
}
