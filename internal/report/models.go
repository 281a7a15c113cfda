package report

import "time"

// PullRequest is the subset of a pull request the synthesizer needs. It lives
// only for the duration of one report-generation call.
type PullRequest struct {
	Title         string
	Body          string
	RepositoryURL string
	State         string // open | closed
	Merged        bool
	CreatedAt     time.Time
	HTMLURL       string
}

// Status maps the PR lifecycle to a report status word.
func (pr PullRequest) Status() string {
	switch {
	case pr.Merged:
		return "done"
	case pr.State == "closed":
		return "closed"
	default:
		return "in progress"
	}
}

// Batch is one day's worth of pull requests, in API order.
type Batch struct {
	PullRequests []PullRequest
	// Incomplete is set when the search API reported partial results.
	Incomplete bool
}
