// Package report aggregates classification results into the figures shown to
// users: a shape distribution summary and a per-object measurements table.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/RitikaSubbaraj/shape-contour-analyzer/internal/shape"
)

// CountOrder is the fixed order of Summary.Counts.
var CountOrder = []shape.Label{
	shape.LabelCircle,
	shape.LabelEllipse,
	shape.LabelPolygon,
	shape.LabelIrregular,
}

// CSVHeader is the first row of an exported measurements table.
var CSVHeader = []string{"Shape", "Area", "Perimeter"}

// Count is the number of objects carrying one label.
type Count struct {
	Shape shape.Label `json:"shape"`
	Count int         `json:"count"`
}

// Summary tallies the labels of one analysis run.
type Summary struct {
	// TotalObjects is the number of accepted contours.
	TotalObjects int `json:"total_objects"`

	// UniqueShapes is the number of distinct labels present.
	UniqueShapes int `json:"unique_shapes"`

	// LargestArea is the largest rounded area, 0 when nothing was accepted.
	LargestArea float64 `json:"largest_area"`

	// Distribution maps each present label to its count.
	Distribution map[shape.Label]int `json:"distribution"`

	// Counts lists the same figures in CountOrder, omitting zero counts.
	Counts []Count `json:"counts"`
}

// Measurement is one row of the measurements table.
type Measurement struct {
	Shape     shape.Label `json:"shape"`
	Area      float64     `json:"area"`
	Perimeter float64     `json:"perimeter"`
}

// Round2 rounds v to two decimal places, halves away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Measurements converts results into table rows with area and perimeter
// rounded to two decimals. Row order follows results.
func Measurements(results []shape.Result) []Measurement {
	rows := make([]Measurement, 0, len(results))
	for _, r := range results {
		rows = append(rows, Measurement{
			Shape:     r.Label,
			Area:      Round2(r.Area),
			Perimeter: Round2(r.Perimeter),
		})
	}
	return rows
}

// Summarize tallies results. An empty input yields zero counts, an empty
// distribution and LargestArea 0.
func Summarize(results []shape.Result) Summary {
	s := Summary{
		TotalObjects: len(results),
		Distribution: make(map[shape.Label]int),
		Counts:       make([]Count, 0, len(CountOrder)),
	}

	for _, r := range results {
		s.Distribution[r.Label]++
		if a := Round2(r.Area); a > s.LargestArea {
			s.LargestArea = a
		}
	}
	s.UniqueShapes = len(s.Distribution)

	for _, label := range CountOrder {
		if n := s.Distribution[label]; n > 0 {
			s.Counts = append(s.Counts, Count{Shape: label, Count: n})
		}
	}

	return s
}

// WriteCSV writes the measurements table with a header row.
func WriteCSV(w io.Writer, rows []Measurement) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, m := range rows {
		record := []string{
			string(m.Shape),
			formatFloat(m.Area),
			formatFloat(m.Perimeter),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// formatFloat prints the shortest representation of v. Whole numbers keep a
// trailing ".0" so every cell reads as a decimal.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
