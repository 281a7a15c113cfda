package workday

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Decision is the gate's run/skip verdict for a day.
type Decision struct {
	Run bool
	// Degraded marks a run decision taken without a usable day-type signal.
	Degraded bool
	DayType  DayType
	Reason   string
}

// Signal obtains a day type for a date; failures trigger the run-anyway
// fallback.
type Signal interface {
	Lookup(ctx context.Context, date string) (DayType, error)
}

// Gate converts the external day-type signal into a run/skip decision.
// The date is evaluated in the business time zone; this is the only place
// that conversion happens.
type Gate struct {
	signal Signal
	loc    *time.Location
	logger zerolog.Logger
}

// NewGate creates a Gate evaluating dates in loc.
func NewGate(signal Signal, loc *time.Location, logger zerolog.Logger) *Gate {
	return &Gate{
		signal: signal,
		loc:    loc,
		logger: logger.With().Str("component", "gate").Logger(),
	}
}

// Decide returns the run/skip decision for the business-zone date of now.
// Ordinary and compensatory workdays run; weekends, holidays and unknown
// codes skip. A failed lookup runs anyway, flagged as degraded.
func (g *Gate) Decide(ctx context.Context, now time.Time) Decision {
	date := now.In(g.loc).Format("2006-01-02")

	dayType, err := g.signal.Lookup(ctx, date)
	if err != nil {
		g.logger.Warn().Err(err).Str("date", date).Msg("day-type signal unavailable, running anyway")
		return Decision{
			Run:      true,
			Degraded: true,
			Reason:   "day-type signal unavailable: " + err.Error(),
		}
	}

	switch dayType {
	case DayTypeWorkday, DayTypeMakeup:
		return Decision{Run: true, DayType: dayType, Reason: dayType.String()}
	case DayTypeWeekend, DayTypeHoliday:
		return Decision{Run: false, DayType: dayType, Reason: dayType.String()}
	default:
		g.logger.Warn().Int("status", int(dayType)).Str("date", date).Msg("unknown day type, treating as non-workday")
		return Decision{Run: false, DayType: dayType, Reason: dayType.String()}
	}
}
