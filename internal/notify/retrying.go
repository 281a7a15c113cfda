package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/relaymesh/standup-agent/internal/retry"
)

// Retrying wraps a Notifier with exponential backoff. Webhook endpoints
// drop requests often enough that a single attempt loses reports.
type Retrying struct {
	inner  Notifier
	cfg    retry.Config
	logger zerolog.Logger
}

// WithRetry decorates n with the default retry policy.
func WithRetry(n Notifier, logger zerolog.Logger) *Retrying {
	return &Retrying{
		inner:  n,
		cfg:    retry.DefaultConfig(),
		logger: logger.With().Str("component", "notify").Logger(),
	}
}

func (r *Retrying) Send(ctx context.Context, reportText string) error {
	attempt := 0
	return retry.Do(ctx, r.cfg, func(ctx context.Context) error {
		attempt++
		err := r.inner.Send(ctx, reportText)
		if err != nil && attempt < r.cfg.MaxAttempts {
			r.logger.Warn().Err(err).Int("attempt", attempt).Msg("delivery failed, retrying")
		}
		return err
	})
}
