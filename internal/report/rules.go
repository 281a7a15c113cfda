package report

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rules tune the free-text extraction heuristics. The zero value is unusable;
// start from DefaultRules.
type Rules struct {
	// HeadingKeywords mark a line whose following line holds the work summary.
	// Matched case-insensitively as substrings.
	HeadingKeywords []string `yaml:"heading_keywords"`

	// SummaryMaxRunes bounds the extracted summary, measured in characters so
	// multi-byte text is never split.
	SummaryMaxRunes int `yaml:"summary_max_runes"`
}

// DefaultRules returns the built-in heuristics.
func DefaultRules() Rules {
	return Rules{
		HeadingKeywords: []string{
			"summary", "main changes", "description",
			"简介", "主要改动", "变更内容",
		},
		SummaryMaxRunes: 50,
	}
}

// LoadRules reads a YAML rules file, filling omitted fields from the defaults.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	data, err := os.ReadFile(path)
	if err != nil {
		return rules, fmt.Errorf("reading rules file: %w", err)
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return rules, fmt.Errorf("parsing rules file %s: %w", path, err)
	}
	if rules.SummaryMaxRunes <= 0 {
		rules.SummaryMaxRunes = DefaultRules().SummaryMaxRunes
	}
	if len(rules.HeadingKeywords) == 0 {
		rules.HeadingKeywords = DefaultRules().HeadingKeywords
	}
	return rules, nil
}
