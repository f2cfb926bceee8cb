package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS appointments (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			client           TEXT NOT NULL,
			service          TEXT NOT NULL DEFAULT '',
			date             DATE NOT NULL,
			start_time       TIME NOT NULL,
			end_time         TIME NOT NULL,
			duration_minutes INTEGER NOT NULL CHECK(duration_minutes > 0),
			status           TEXT DEFAULT 'scheduled' CHECK(status IN ('scheduled', 'cancelled', 'rescheduled')),
			rescheduled_from INTEGER REFERENCES appointments(id),
			created_at       DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_appointments_date ON appointments(date);
		CREATE INDEX IF NOT EXISTS idx_appointments_status ON appointments(status);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating appointments table: %w", err)
	}

	return nil
}
