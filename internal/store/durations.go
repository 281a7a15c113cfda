package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// TaskRecord is one row of the task_durations table.
type TaskRecord struct {
	TaskKey           string
	FirstSeenDate     string // YYYY-MM-DD
	LastSeenDate      string // YYYY-MM-DD
	TotalBusinessDays int
}

// RecordObservation upserts the record for taskKey. On first observation the
// record is created with a duration of one day. On re-observation the last
// seen date moves to day and the business-day count is recomputed over
// [first_seen_date, last_seen_date]. Returns the current count.
//
// The whole read-modify-write runs under the store mutex so two concurrent
// observations of the same key cannot compute from the same stale row.
func (s *Store) RecordObservation(ctx context.Context, taskKey string, day time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := day.Format(dateLayout)
	now := time.Now().UnixMilli()

	var firstSeen string
	err := s.db.QueryRowContext(ctx,
		`SELECT first_seen_date FROM task_durations WHERE task_key = ?`, taskKey,
	).Scan(&firstSeen)

	if err == sql.ErrNoRows {
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO task_durations (task_key, first_seen_date, last_seen_date, total_business_days, created_at, updated_at)
			VALUES (?, ?, ?, 1, ?, ?)`,
			taskKey, today, today, now, now,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert task record: %w", err)
		}
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query task record: %w", err)
	}

	first, err := time.Parse(dateLayout, firstSeen)
	if err != nil {
		return 0, fmt.Errorf("%w: first_seen_date %q for %s", ErrInvalidDate, firstSeen, taskKey)
	}

	days := BusinessDays(first, day)
	_, err = s.db.ExecContext(ctx, `
		UPDATE task_durations SET last_seen_date = ?, total_business_days = ?, updated_at = ?
		WHERE task_key = ?`,
		today, days, now, taskKey,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update task record: %w", err)
	}
	return days, nil
}

// GetRecord retrieves the record for taskKey. Returns ErrNotFound when the key
// has never been observed.
func (s *Store) GetRecord(ctx context.Context, taskKey string) (*TaskRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := &TaskRecord{}
	err := s.db.QueryRowContext(ctx, `
		SELECT task_key, first_seen_date, last_seen_date, total_business_days
		FROM task_durations WHERE task_key = ?`, taskKey,
	).Scan(&r.TaskKey, &r.FirstSeenDate, &r.LastSeenDate, &r.TotalBusinessDays)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task record: %w", err)
	}
	return r, nil
}

// CountRecords returns the number of task records currently stored.
func (s *Store) CountRecords(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM task_durations`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count task records: %w", err)
	}
	return count, nil
}

// GetDuration returns the accumulated business-day count for taskKey.
// A missing record is day one, never an error.
func (s *Store) GetDuration(ctx context.Context, taskKey string) (int, error) {
	r, err := s.GetRecord(ctx, taskKey)
	if err == ErrNotFound {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return r.TotalBusinessDays, nil
}
