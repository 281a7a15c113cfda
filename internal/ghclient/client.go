// Package ghclient fetches the author's pull-request activity from the GitHub
// search API and maps it into report views.
package ghclient

import (
	"context"
	"fmt"
	"time"

	gh "github.com/google/go-github/v60/github"
	"github.com/rs/zerolog"

	"github.com/relaymesh/standup-agent/internal/report"
)

// Client wraps the go-github search surface used by the pipeline.
type Client struct {
	gh     *gh.Client
	login  string
	logger zerolog.Logger
}

// New creates a Client authenticated with a personal access token. An empty
// login searches as the token owner ("@me").
func New(token, login string, logger zerolog.Logger) *Client {
	return &Client{
		gh:     gh.NewClient(nil).WithAuthToken(token),
		login:  login,
		logger: logger.With().Str("component", "ghclient").Logger(),
	}
}

// Ping verifies the GitHub API is reachable with the configured token. The
// rate-limit endpoint is free: it does not consume search quota.
func (c *Client) Ping(ctx context.Context) error {
	if _, _, err := c.gh.RateLimit.Get(ctx); err != nil {
		return fmt.Errorf("github rate limit probe: %w", err)
	}
	return nil
}

// PullRequestsCreatedOn returns the author's PRs created on the given UTC
// calendar day, in search-result order.
func (c *Client) PullRequestsCreatedOn(ctx context.Context, day time.Time) (report.Batch, error) {
	author := "@me"
	if c.login != "" {
		author = c.login
	}
	query := fmt.Sprintf("is:pr author:%s created:%s", author, day.UTC().Format("2006-01-02"))

	var batch report.Batch
	opts := &gh.SearchOptions{
		Sort:        "created",
		Order:       "asc",
		ListOptions: gh.ListOptions{PerPage: 100},
	}

	for {
		result, resp, err := c.gh.Search.Issues(ctx, query, opts)
		if err != nil {
			return report.Batch{}, fmt.Errorf("searching pull requests: %w", err)
		}
		if result.GetIncompleteResults() {
			batch.Incomplete = true
		}
		for _, issue := range result.Issues {
			batch.PullRequests = append(batch.PullRequests, mapIssue(issue))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	c.logger.Debug().
		Int("count", len(batch.PullRequests)).
		Str("query", query).
		Msg("fetched pull requests")
	return batch, nil
}

// mapIssue converts a search-API issue (PRs come back as issues with PR
// links) into the view the synthesizer consumes.
func mapIssue(issue *gh.Issue) report.PullRequest {
	merged := false
	if links := issue.GetPullRequestLinks(); links != nil && links.MergedAt != nil {
		merged = true
	}
	return report.PullRequest{
		Title:         issue.GetTitle(),
		Body:          issue.GetBody(),
		RepositoryURL: issue.GetRepositoryURL(),
		State:         issue.GetState(),
		Merged:        merged,
		CreatedAt:     issue.GetCreatedAt().Time,
		HTMLURL:       issue.GetHTMLURL(),
	}
}
