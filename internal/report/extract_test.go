package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTaskRefTrackerURL(t *testing.T) {
	ref, ok := ExtractTaskRef("Fix login", "See https://tree.example.io/project/zen-soraka/task/41 for details")
	assert.True(t, ok)
	assert.Equal(t, "zen-soraka", ref.ProjectSlug)
	assert.Equal(t, "41", ref.TaskID)
	assert.Equal(t, "#41", ref.Label())
}

func TestExtractTaskRefBareNumber(t *testing.T) {
	ref, ok := ExtractTaskRef("Quick patch", "Fixes #12")
	assert.True(t, ok)
	assert.Empty(t, ref.ProjectSlug)
	assert.Equal(t, "12", ref.TaskID)
}

func TestExtractTaskRefTrackerBeatsBare(t *testing.T) {
	body := "Closes #99 and https://tree.example.io/project/acme/task/7"
	ref, ok := ExtractTaskRef("t", body)
	assert.True(t, ok)
	assert.Equal(t, "acme", ref.ProjectSlug)
	assert.Equal(t, "7", ref.TaskID)
}

func TestExtractTaskRefFirstMatchWins(t *testing.T) {
	// Title is scanned before body
	ref, ok := ExtractTaskRef("Part of #3", "also touches #8 and #9")
	assert.True(t, ok)
	assert.Equal(t, "3", ref.TaskID)
}

func TestExtractTaskRefNone(t *testing.T) {
	_, ok := ExtractTaskRef("Refactor config loading", "no tracker links here")
	assert.False(t, ok)
}

func TestResolveProjectCodeTrackerPriority(t *testing.T) {
	ref := TaskRef{ProjectSlug: "zen-soraka", TaskID: "41"}
	code := ResolveProjectCode(ref, "https://api.github.com/repos/acme-corp/WidgetApp")
	assert.Equal(t, "zen-soraka", code)
}

func TestResolveProjectCodeFromRepository(t *testing.T) {
	code := ResolveProjectCode(TaskRef{TaskID: "12"}, "https://api.github.com/repos/acme-corp/WidgetApp")
	// Org prefix stripped, natural casing preserved
	assert.Equal(t, "WidgetApp", code)
}

func TestRepositoryPath(t *testing.T) {
	assert.Equal(t, "acme/widget", RepositoryPath("https://api.github.com/repos/acme/widget"))
	assert.Equal(t, "plain/name", RepositoryPath("plain/name"))
}

func TestExtractWorkSummaryHeading(t *testing.T) {
	body := "## Summary\n\nReworked the session refresh flow.\n\nMore text."
	got := ExtractWorkSummary(body, DefaultRules())
	assert.Equal(t, "Reworked the session refresh flow.", got)
}

func TestExtractWorkSummaryHeadingSkipsMarkers(t *testing.T) {
	// The line after the heading is a list marker, so the heading path yields
	// nothing and the fallback applies.
	body := "## Description\n- bullet item\nThis sentence is long enough to qualify."
	got := ExtractWorkSummary(body, DefaultRules())
	assert.Equal(t, "This sentence is long enough to qualify.", got)
}

func TestExtractWorkSummaryFallbackFirstSubstantiveLine(t *testing.T) {
	body := "# Heading\n```\ncode\n```\nhttps://example.com/link\nshort\nA real explanation of what changed here."
	got := ExtractWorkSummary(body, DefaultRules())
	assert.Equal(t, "A real explanation of what changed here.", got)
}

func TestExtractWorkSummaryTruncation(t *testing.T) {
	long := strings.Repeat("a", 80)
	got := ExtractWorkSummary(long, DefaultRules())
	assert.Equal(t, strings.Repeat("a", 50)+"...", got)
}

func TestExtractWorkSummaryMultibyteTruncation(t *testing.T) {
	long := strings.Repeat("变", 60)
	got := ExtractWorkSummary(long, DefaultRules())
	runes := []rune(got)
	// 50 characters plus the three-dot suffix, never a split rune
	assert.Len(t, runes, 53)
	assert.Equal(t, strings.Repeat("变", 50)+"...", got)
}

func TestExtractWorkSummaryEmpty(t *testing.T) {
	assert.Empty(t, ExtractWorkSummary("", DefaultRules()))
	assert.Empty(t, ExtractWorkSummary("short\n# only\n```", DefaultRules()))
}

func TestLoadRulesMissingFile(t *testing.T) {
	rules, err := LoadRules("does-not-exist.yaml")
	assert.Error(t, err)
	// Defaults still come back so callers can proceed
	assert.Equal(t, DefaultRules().SummaryMaxRunes, rules.SummaryMaxRunes)
}
