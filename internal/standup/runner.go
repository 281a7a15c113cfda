// Package standup orchestrates one daily report run: fetch pull requests,
// synthesize the report, rewrite it, deliver it, and sweep stale task
// records.
package standup

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/relaymesh/standup-agent/internal/ai"
	"github.com/relaymesh/standup-agent/internal/metrics"
	"github.com/relaymesh/standup-agent/internal/notify"
	"github.com/relaymesh/standup-agent/internal/report"
)

// PullRequestSource fetches one day's pull requests.
type PullRequestSource interface {
	PullRequestsCreatedOn(ctx context.Context, day time.Time) (report.Batch, error)
}

// DurationSweeper removes stale task records after a run.
type DurationSweeper interface {
	SweepStale(ctx context.Context, ref time.Time, retentionDays int) (int64, error)
	CountRecords(ctx context.Context) (int, error)
}

// Runner executes the daily standup pipeline.
type Runner struct {
	source        PullRequestSource
	synth         *report.Synthesizer
	summarizer    ai.Summarizer
	notifier      notify.Notifier
	sweeper       DurationSweeper
	metrics       *metrics.Metrics
	retentionDays int
	logger        zerolog.Logger
}

// NewRunner wires the pipeline collaborators together.
func NewRunner(
	source PullRequestSource,
	synth *report.Synthesizer,
	summarizer ai.Summarizer,
	notifier notify.Notifier,
	sweeper DurationSweeper,
	m *metrics.Metrics,
	retentionDays int,
	logger zerolog.Logger,
) *Runner {
	return &Runner{
		source:        source,
		synth:         synth,
		summarizer:    summarizer,
		notifier:      notifier,
		sweeper:       sweeper,
		metrics:       m,
		retentionDays: retentionDays,
		logger:        logger.With().Str("component", "runner").Logger(),
	}
}

// Run executes one pipeline pass for the UTC calendar day of now and returns
// the delivered report text. A failed AI rewrite falls back to the
// deterministic report; a failed delivery is an error but does not roll back
// recorded durations.
func (r *Runner) Run(ctx context.Context, now time.Time) (string, error) {
	day := now.UTC()
	runID := uuid.New().String()
	logger := r.logger.With().Str("run_id", runID).Logger()

	r.metrics.RunsTotal.WithLabelValues("started").Inc()

	batch, err := r.source.PullRequestsCreatedOn(ctx, day)
	if err != nil {
		r.metrics.RunsTotal.WithLabelValues("failed").Inc()
		return "", fmt.Errorf("fetching pull requests: %w", err)
	}
	logger.Info().Int("pull_requests", len(batch.PullRequests)).Msg("fetched today's pull requests")
	r.metrics.PullRequestsTotal.Add(float64(len(batch.PullRequests)))

	rawReport := r.synth.Synthesize(ctx, batch, day)

	finalReport, err := r.summarizer.Summarize(ctx, rawReport)
	if err != nil {
		logger.Warn().Err(err).Msg("AI rewrite failed, delivering deterministic report")
		finalReport = rawReport
	}

	deliveryErr := r.notifier.Send(ctx, finalReport)
	if deliveryErr != nil {
		logger.Error().Err(deliveryErr).Msg("report delivery failed")
		r.metrics.DeliveryFailures.Inc()
	}

	r.sweep(ctx, day, logger)

	if deliveryErr != nil {
		r.metrics.RunsTotal.WithLabelValues("failed").Inc()
		return finalReport, fmt.Errorf("delivering report: %w", deliveryErr)
	}
	r.metrics.RunsTotal.WithLabelValues("succeeded").Inc()
	logger.Info().Msg("standup report generated and delivered")
	return finalReport, nil
}

// sweep applies the retention policy; failures are logged, never fatal to
// the run that already delivered.
func (r *Runner) sweep(ctx context.Context, day time.Time, logger zerolog.Logger) {
	if _, err := r.sweeper.SweepStale(ctx, day, r.retentionDays); err != nil {
		logger.Warn().Err(err).Msg("stale record sweep failed")
	}
	if count, err := r.sweeper.CountRecords(ctx); err == nil {
		r.metrics.TrackedTasks.Set(float64(count))
	}
}
