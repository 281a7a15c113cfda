package store

import (
	"context"
	"fmt"
	"time"
)

// DefaultRetentionDays is how long a task record survives without being
// re-observed before the sweep removes it.
const DefaultRetentionDays = 30

// SweepStale deletes every record whose last_seen_date is strictly older than
// ref minus retentionDays. Idempotent. The cutoff compares against
// last_seen_date, which is only ever written by completed observations, so an
// in-flight observation for the same key cannot lose its record.
// Returns the number of records removed.
func (s *Store) SweepStale(ctx context.Context, ref time.Time, retentionDays int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if retentionDays <= 0 {
		retentionDays = DefaultRetentionDays
	}
	cutoff := ref.AddDate(0, 0, -retentionDays).Format(dateLayout)

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM task_durations WHERE last_seen_date < ?`, cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep stale task records: %w", err)
	}
	removed, _ := res.RowsAffected()
	if removed > 0 {
		s.logger.Info().Int64("removed", removed).Str("cutoff", cutoff).Msg("swept stale task records")
	}
	return removed, nil
}
