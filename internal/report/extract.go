package report

import (
	"regexp"
	"strings"
)

// Extraction is pure string matching with no shared state. Priority order:
// an issue-tracker task URL beats a bare #N token, and within each pattern
// the first match in document order (title before body) wins.

var (
	trackerTaskRe = regexp.MustCompile(`https://[^\s/]+/project/([^/\s]+)/task/(\d+)`)
	bareRefRe     = regexp.MustCompile(`#(\d+)`)
)

// TaskRef is a task reference extracted from PR text.
type TaskRef struct {
	// ProjectSlug is the tracker project namespace. Empty for bare #N
	// references, where the project must come from the repository instead.
	ProjectSlug string
	// TaskID is the numeric task identifier as written.
	TaskID string
}

// Label renders the reference for display, e.g. "#41".
func (r TaskRef) Label() string {
	return "#" + r.TaskID
}

// ExtractTaskRef finds a task reference in the combined title and body text.
// Returns false when nothing matches; callers must not invent a reference.
func ExtractTaskRef(title, body string) (TaskRef, bool) {
	combined := title + "\n" + body

	if m := trackerTaskRe.FindStringSubmatch(combined); m != nil {
		return TaskRef{ProjectSlug: m[1], TaskID: m[2]}, true
	}
	if m := bareRefRe.FindStringSubmatch(combined); m != nil {
		return TaskRef{TaskID: m[1]}, true
	}
	return TaskRef{}, false
}

// ResolveProjectCode derives the short project label for a PR. The tracker
// slug is the authoritative namespace when the reference carries one;
// otherwise the repository name is used. Casing is preserved as-is.
func ResolveProjectCode(ref TaskRef, repositoryURL string) string {
	if ref.ProjectSlug != "" {
		return ref.ProjectSlug
	}
	return RepositoryCode(repositoryURL)
}

// RepositoryCode extracts the repository name (last path segment) from a
// repository URL, dropping the organizational prefix.
func RepositoryCode(repositoryURL string) string {
	trimmed := strings.TrimRight(repositoryURL, "/")
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		return trimmed[idx+1:]
	}
	return trimmed
}

// RepositoryPath strips the GitHub API prefix from a repository URL, leaving
// the owner/name pair for display.
func RepositoryPath(repositoryURL string) string {
	return strings.TrimPrefix(repositoryURL, "https://api.github.com/repos/")
}

// ExtractWorkSummary pulls a single-line excerpt from the PR body. A line
// matching one of the heading keywords promotes the following substantive
// line; otherwise the first substantive line longer than ten characters is
// used. Returns empty when nothing qualifies — callers omit the summary line
// rather than emit a placeholder.
func ExtractWorkSummary(body string, rules Rules) string {
	if body == "" {
		return ""
	}
	lines := strings.Split(body, "\n")

	for i, line := range lines {
		if !containsKeyword(line, rules.HeadingKeywords) {
			continue
		}
		for _, next := range lines[i+1:] {
			trimmed := strings.TrimSpace(next)
			if trimmed == "" {
				continue
			}
			if strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "*") {
				break
			}
			return truncateRunes(trimmed, rules.SummaryMaxRunes)
		}
		break
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" ||
			strings.HasPrefix(trimmed, "#") ||
			strings.HasPrefix(trimmed, "-") ||
			strings.HasPrefix(trimmed, "*") ||
			strings.HasPrefix(trimmed, "```") ||
			strings.HasPrefix(trimmed, "http") {
			continue
		}
		if len([]rune(trimmed)) > 10 {
			return truncateRunes(trimmed, rules.SummaryMaxRunes)
		}
	}
	return ""
}

func containsKeyword(line string, keywords []string) bool {
	lower := strings.ToLower(line)
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// truncateRunes bounds s to max characters, with an ellipsis when truncated.
func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
