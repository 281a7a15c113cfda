// Package notify delivers finished reports to chat targets.
package notify

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// Notifier delivers one report to one target.
type Notifier interface {
	Send(ctx context.Context, reportText string) error
}

// Multi fans a report out to several targets. Every target is attempted;
// failures are joined and returned together.
type Multi []Notifier

func (m Multi) Send(ctx context.Context, reportText string) error {
	var errs []error
	for _, n := range m {
		if err := n.Send(ctx, reportText); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogNotifier writes the report to the log. Used when no delivery target is
// configured, so a run is never silently discarded.
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With().Str("component", "notify").Logger()}
}

func (l *LogNotifier) Send(_ context.Context, reportText string) error {
	l.logger.Info().Str("report", reportText).Msg("no delivery target configured, logging report")
	return nil
}
