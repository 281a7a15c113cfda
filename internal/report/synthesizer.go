package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DurationRecorder is the slice of the task-duration store the synthesizer
// needs.
type DurationRecorder interface {
	RecordObservation(ctx context.Context, taskKey string, day time.Time) (int, error)
}

// StoreErrorCounter counts degraded duration observations. Satisfied by
// prometheus.Counter.
type StoreErrorCounter interface {
	Inc()
}

// Synthesizer composes the daily report from a batch of pull requests,
// advancing task durations for every recognized task reference.
type Synthesizer struct {
	durations   DurationRecorder
	rules       Rules
	storeErrors StoreErrorCounter
	logger      zerolog.Logger
}

// NewSynthesizer creates a Synthesizer backed by the given duration store.
func NewSynthesizer(durations DurationRecorder, rules Rules, logger zerolog.Logger) *Synthesizer {
	return &Synthesizer{
		durations: durations,
		rules:     rules,
		logger:    logger.With().Str("component", "synthesizer").Logger(),
	}
}

// InstrumentStoreErrors attaches a counter incremented on every failed
// duration observation.
func (s *Synthesizer) InstrumentStoreErrors(c StoreErrorCounter) {
	s.storeErrors = c
}

const noWorkSentence = "No pull requests were created today; there may be no finished code work to report."

// reportTrailer tells the downstream summarizer what to produce. It is
// appended verbatim to every report and never parsed by this system.
const reportTrailer = `## Formatting Instructions

Write today's standup report from the pull request data above.

Line format:
- With a linked task: [days]project#task-description
- Without a linked task: [days]description
- [days] is the number of business days accumulated on that task so far.

Examples:
[2]zenAsk#3-reworked the login flow
[1]ktv#15-feature complete, ready for testing
[3]studying Flutter and Dart

Rules:
1. Keep each line short; skip work that took under an hour.
2. Infer progress from PR status: done = finished, in progress = ongoing,
   closed = likely cancelled or restarted.
3. Strip organizational noise from project codes (org prefixes, platform
   suffixes): Acme-International-Corp/Widget_flutter becomes Widget.
4. Do not upper-case project codes.
5. Plain text only, no markdown, nothing confidential.`

// Synthesize produces the textual report for one day's batch. Block order
// equals input order; each PR yields exactly one block even when task keys
// repeat. Store failures degrade the single affected block to day one and
// never abort the rest of the report.
func (s *Synthesizer) Synthesize(ctx context.Context, batch Batch, day time.Time) string {
	var b strings.Builder

	b.WriteString("=== Daily Standup Report Data ===\n\n")
	b.WriteString("## GitHub PR Summary\n")
	fmt.Fprintf(&b, "- PRs created today: %d\n", len(batch.PullRequests))
	fmt.Fprintf(&b, "- Data completeness: %s\n\n", completeness(batch.Incomplete))

	if len(batch.PullRequests) == 0 {
		b.WriteString(noWorkSentence)
		b.WriteString("\n\n")
		b.WriteString(reportTrailer)
		return b.String()
	}

	b.WriteString("## PR Details\n\n")
	for i, pr := range batch.PullRequests {
		s.writeBlock(ctx, &b, i+1, pr, day)
	}

	b.WriteString(reportTrailer)
	return b.String()
}

func (s *Synthesizer) writeBlock(ctx context.Context, b *strings.Builder, n int, pr PullRequest, day time.Time) {
	fmt.Fprintf(b, "### PR #%d\n", n)
	fmt.Fprintf(b, "- Title: %s\n", pr.Title)
	fmt.Fprintf(b, "- Repository: %s\n", RepositoryPath(pr.RepositoryURL))

	ref, found := ExtractTaskRef(pr.Title, pr.Body)
	code := ResolveProjectCode(ref, pr.RepositoryURL)
	if code != "" {
		fmt.Fprintf(b, "- Project: %s\n", code)
	}
	fmt.Fprintf(b, "- Status: %s\n", pr.Status())

	if found {
		if code == "" {
			// No project namespace at all: report the reference but a task
			// key cannot be formed, so no duration is recorded.
			fmt.Fprintf(b, "- Task: %s\n", ref.Label())
		} else {
			taskKey := code + "#" + ref.TaskID
			days, err := s.durations.RecordObservation(ctx, taskKey, day)
			if err != nil {
				s.logger.Warn().Err(err).Str("task_key", taskKey).Msg("duration store unavailable, reporting day one")
				if s.storeErrors != nil {
					s.storeErrors.Inc()
				}
				fmt.Fprintf(b, "- Task: %s [1]\n", ref.Label())
				b.WriteString("- Note: duration tracking degraded for this task\n")
			} else {
				fmt.Fprintf(b, "- Task: %s [%d]\n", ref.Label(), days)
			}
		}
	}

	if summary := ExtractWorkSummary(pr.Body, s.rules); summary != "" {
		fmt.Fprintf(b, "- Summary: %s\n", summary)
	}
	fmt.Fprintf(b, "- Created: %s\n", pr.CreatedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(b, "- Link: %s\n\n", pr.HTMLURL)
}

func completeness(incomplete bool) string {
	if incomplete {
		return "partial"
	}
	return "complete"
}
