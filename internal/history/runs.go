package history

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/RitikaSubbaraj/shape-contour-analyzer/internal/report"
	"github.com/RitikaSubbaraj/shape-contour-analyzer/internal/shape"
)

// DefaultListLimit is the number of runs List returns when limit <= 0.
const DefaultListLimit = 20

// Run is one saved analysis.
type Run struct {
	ID           string    `json:"id"`
	ImagePath    string    `json:"image_path"`
	MinArea      float64   `json:"min_area"`
	TotalObjects int       `json:"total_objects"`
	UniqueShapes int       `json:"unique_shapes"`
	LargestArea  float64   `json:"largest_area"`
	CreatedAt    time.Time `json:"created_at"`

	// Measurements is only populated by Get.
	Measurements []report.Measurement `json:"measurements,omitempty"`
}

// NewRun builds a run record from an analysis summary and its measurements.
func NewRun(imagePath string, minArea float64, summary report.Summary, rows []report.Measurement) *Run {
	return &Run{
		ImagePath:    imagePath,
		MinArea:      minArea,
		TotalObjects: summary.TotalObjects,
		UniqueShapes: summary.UniqueShapes,
		LargestArea:  summary.LargestArea,
		Measurements: rows,
	}
}

// Save inserts the run and its measurements in one transaction. A random
// UUID is assigned when ID is empty; CreatedAt is set to the current time.
func (s *Store) Save(r *Run) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	r.CreatedAt = time.Now().UTC()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (id, image_path, min_area, total_objects, unique_shapes, largest_area, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.ImagePath, r.MinArea, r.TotalObjects, r.UniqueShapes, r.LargestArea, r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for i, m := range r.Measurements {
		_, err := tx.Exec(
			`INSERT INTO run_measurements (run_id, seq, shape, area, perimeter)
			 VALUES (?, ?, ?, ?, ?)`,
			r.ID, i, string(m.Shape), m.Area, m.Perimeter,
		)
		if err != nil {
			return fmt.Errorf("failed to insert measurement %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// Get retrieves a run and its measurements by ID.
func (s *Store) Get(id string) (*Run, error) {
	r := &Run{}
	err := s.db.QueryRow(
		`SELECT id, image_path, min_area, total_objects, unique_shapes, largest_area, created_at
		 FROM runs WHERE id = ?`,
		id,
	).Scan(&r.ID, &r.ImagePath, &r.MinArea, &r.TotalObjects, &r.UniqueShapes, &r.LargestArea, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rows, err := s.db.Query(
		`SELECT shape, area, perimeter FROM run_measurements
		 WHERE run_id = ? ORDER BY seq`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	r.Measurements = make([]report.Measurement, 0)
	for rows.Next() {
		var m report.Measurement
		var label string
		if err := rows.Scan(&label, &m.Area, &m.Perimeter); err != nil {
			return nil, err
		}
		m.Shape = shape.Label(label)
		r.Measurements = append(r.Measurements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return r, nil
}

// List returns the most recent runs first, without measurements.
// A limit <= 0 uses DefaultListLimit.
func (s *Store) List(limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := s.db.Query(
		`SELECT id, image_path, min_area, total_objects, unique_shapes, largest_area, created_at
		 FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := make([]*Run, 0)
	for rows.Next() {
		r := &Run{}
		err := rows.Scan(&r.ID, &r.ImagePath, &r.MinArea, &r.TotalObjects, &r.UniqueShapes, &r.LargestArea, &r.CreatedAt)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return runs, nil
}

// Delete removes a run; its measurements are removed by cascade.
func (s *Store) Delete(id string) error {
	result, err := s.db.Exec(`DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
