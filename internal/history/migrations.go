package history

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Runs table - one row per saved analysis
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			image_path TEXT NOT NULL,
			min_area REAL NOT NULL,
			total_objects INTEGER NOT NULL,
			unique_shapes INTEGER NOT NULL,
			largest_area REAL NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Run measurements table - the measurements table of each run, in order
		`CREATE TABLE IF NOT EXISTS run_measurements (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			shape TEXT NOT NULL,
			area REAL NOT NULL,
			perimeter REAL NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_run_measurements_run_id ON run_measurements(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
