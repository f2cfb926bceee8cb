// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/turnogo/turnogo/internal/appointment"
	"github.com/turnogo/turnogo/internal/clocktime"
	"github.com/turnogo/turnogo/internal/dateutil"
)

// SQLite implements appointment.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

var _ appointment.Repository = (*SQLite)(nil)

const selectColumns = `
	SELECT id, client, service, date, start_time, duration_minutes,
	       status, rescheduled_from, created_at
	FROM appointments
`

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Create books a new appointment.
// Returns appointment.ErrSlotTaken if it overlaps a scheduled appointment.
func (s *SQLite) Create(ctx context.Context, a *appointment.Appointment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertTx(ctx, tx, a); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Get retrieves an appointment by ID.
func (s *SQLite) Get(ctx context.Context, id int64) (*appointment.Appointment, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)
	a, err := scanAppointment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("appointment %d: %w", id, appointment.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying appointment: %w", err)
	}
	return a, nil
}

// Cancel marks a scheduled appointment as cancelled. The status guard in the
// UPDATE makes the check and the write a single statement.
func (s *SQLite) Cancel(ctx context.Context, id int64) error {
	query := `UPDATE appointments SET status = ? WHERE id = ? AND status = ?`
	res, err := s.db.ExecContext(ctx, query, appointment.StatusCancelled, id, appointment.StatusScheduled)
	if err != nil {
		return fmt.Errorf("cancelling appointment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("cancelling appointment: %w", err)
	}
	if n > 0 {
		return nil
	}

	// Nothing changed: tell a missing row from one that is no longer active.
	var status string
	err = s.db.QueryRowContext(ctx, `SELECT status FROM appointments WHERE id = ?`, id).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("appointment %d: %w", id, appointment.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("querying appointment: %w", err)
	}
	return fmt.Errorf("appointment %d is %s: %w", id, status, appointment.ErrNotScheduled)
}

// Reschedule atomically marks the original as rescheduled and books a copy at
// the new date and start time, keeping client, service and duration.
func (s *SQLite) Reschedule(ctx context.Context, id int64, newDate time.Time, newStart string) (*appointment.Appointment, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)
	original, err := scanAppointment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("appointment %d: %w", id, appointment.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying original appointment: %w", err)
	}
	if !original.IsScheduled() {
		return nil, fmt.Errorf("appointment %d is %s: %w", id, original.Status, appointment.ErrNotScheduled)
	}
	if err := appointment.ValidateWindow(newStart, original.DurationMinutes); err != nil {
		return nil, err
	}

	// Free the original slot first so moving within its own window works.
	query := `UPDATE appointments SET status = ? WHERE id = ?`
	if _, err := tx.ExecContext(ctx, query, appointment.StatusRescheduled, id); err != nil {
		return nil, fmt.Errorf("marking original as rescheduled: %w", err)
	}

	moved := &appointment.Appointment{
		Client:          original.Client,
		Service:         original.Service,
		Date:            dateutil.TruncateToDay(newDate),
		Start:           newStart,
		DurationMinutes: original.DurationMinutes,
		Status:          appointment.StatusScheduled,
		RescheduledFrom: &original.ID,
		CreatedAt:       time.Now(),
	}
	if err := insertTx(ctx, tx, moved); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}
	return moved, nil
}

// ListByDateRange returns all appointments within the date range (inclusive).
func (s *SQLite) ListByDateRange(ctx context.Context, start, end time.Time) ([]*appointment.Appointment, error) {
	query := selectColumns + `
		WHERE date >= ? AND date <= ?
		ORDER BY date, start_time, id
	`

	rows, err := s.db.QueryContext(ctx, query, start.Format(dateutil.Layout), end.Format(dateutil.Layout))
	if err != nil {
		return nil, fmt.Errorf("querying appointments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var appts []*appointment.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning appointment: %w", err)
		}
		appts = append(appts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating appointments: %w", err)
	}

	return appts, nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func insertTx(ctx context.Context, tx *sql.Tx, a *appointment.Appointment) error {
	if err := appointment.ValidateWindow(a.Start, a.DurationMinutes); err != nil {
		return err
	}
	end := endKey(a.Start, a.DurationMinutes)

	if err := checkOverlapTx(ctx, tx, a.Date, a.Start, end); err != nil {
		return err
	}

	query := `
		INSERT INTO appointments (
			client, service, date, start_time, end_time, duration_minutes,
			status, rescheduled_from, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query,
		a.Client,
		a.Service,
		a.Date.Format(dateutil.Layout),
		a.Start,
		end,
		a.DurationMinutes,
		a.Status,
		a.RescheduledFrom,
		a.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting appointment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	a.ID = id
	return nil
}

// checkOverlapTx returns ErrSlotTaken if [start, end) intersects a scheduled
// appointment on date. Comparison is lexical on "HH:MM".
func checkOverlapTx(ctx context.Context, tx *sql.Tx, date time.Time, start, end string) error {
	query := `
		SELECT id, start_time, end_time, client
		FROM appointments
		WHERE date = ?
		  AND status = ?
		  AND start_time < ?
		  AND end_time > ?
		LIMIT 1
	`

	var (
		id         int64
		existStart string
		existEnd   string
		client     string
	)

	err := tx.QueryRowContext(ctx, query,
		date.Format(dateutil.Layout),
		appointment.StatusScheduled,
		end,
		start,
	).Scan(&id, &existStart, &existEnd, &client)

	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("checking overlap: %w", err)
	}

	return fmt.Errorf("%w: #%d %s %s-%s", appointment.ErrSlotTaken, id, client, existStart, existEnd)
}

// endKey returns the stored end time. An appointment finishing exactly at
// midnight is stored as "24:00" so it still sorts after its start.
func endKey(start string, durationMinutes int) string {
	st, err := clocktime.Parse(start)
	if err != nil {
		return start
	}
	if st.Minutes()+durationMinutes == clocktime.MinutesPerDay {
		return "24:00"
	}
	return st.Add(durationMinutes).String()
}

func scanAppointment(row scanner) (*appointment.Appointment, error) {
	var (
		a               appointment.Appointment
		date            string
		createdAt       string
		rescheduledFrom sql.NullInt64
	)

	if err := row.Scan(
		&a.ID,
		&a.Client,
		&a.Service,
		&date,
		&a.Start,
		&a.DurationMinutes,
		&a.Status,
		&rescheduledFrom,
		&createdAt,
	); err != nil {
		return nil, err
	}

	var err error
	a.Date, err = parseDate(date)
	if err != nil {
		return nil, fmt.Errorf("parsing date: %w", err)
	}

	a.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}

	if rescheduledFrom.Valid {
		a.RescheduledFrom = &rescheduledFrom.Int64
	}

	return &a, nil
}

func parseDate(s string) (time.Time, error) {
	// Date-only values are local midnight so they compare equal to
	// dates derived from time.Now().
	if t, err := time.ParseInLocation(dateutil.Layout, s, time.Local); err == nil {
		return t, nil
	}

	// The driver may hand DATE columns back as "2006-01-02T00:00:00Z".
	if len(s) == 20 && s[10] == 'T' && s[19] == 'Z' {
		if t, err := time.ParseInLocation(dateutil.Layout, s[:10], time.Local); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date format: %s", s)
}
