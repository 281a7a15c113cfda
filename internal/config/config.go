package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration loaded from environment variables.
// It is constructed once in main and passed into every collaborator; no other
// component reads the environment directly.
type Config struct {
	// General
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	HTTPPort    int    `envconfig:"HTTP_PORT" default:"8080"`

	// GitHub
	GitHubToken string `envconfig:"GITHUB_TOKEN"`
	// GitHubLogin overrides the search author. Empty means "@me" (the token owner).
	GitHubLogin string `envconfig:"GITHUB_LOGIN"`

	// AI rewrite (optional — the deterministic report is delivered as-is without it)
	OpenAIAPIKey  string `envconfig:"OPENAI_API_KEY"`
	OpenAIBaseURL string `envconfig:"OPENAI_BASE_URL" default:"https://api.openai.com/v1"`
	OpenAIModel   string `envconfig:"OPENAI_MODEL" default:"gpt-3.5-turbo"`

	// Delivery targets. Without any configured target the report is only logged.
	FeishuWebhookURL string `envconfig:"FEISHU_WEBHOOK_URL"`
	SlackBotToken    string `envconfig:"SLACK_BOT_TOKEN"`
	SlackChannel     string `envconfig:"SLACK_CHANNEL"`

	// Task duration store
	DBPath        string `envconfig:"DB_PATH" default:"standup.db"`
	RetentionDays int    `envconfig:"RETENTION_DAYS" default:"30"`

	// Scheduling. The business time zone is where "is today a workday" is
	// evaluated; store and GitHub dates stay in UTC.
	BusinessTimezone string `envconfig:"BUSINESS_TIMEZONE" default:"Asia/Shanghai"`
	HolidayAPIURL    string `envconfig:"HOLIDAY_API_URL" default:"http://api.haoshenqi.top/holiday"`
	// CronSpec uses the six-field (seconds-first) format and is evaluated in
	// the business time zone. The default fires every day: weekends and
	// holidays are skipped by the workday gate, not by the schedule, because
	// compensatory workdays fall on weekend dates.
	CronSpec string `envconfig:"CRON_SPEC" default:"0 30 9 * * *"`

	// Optional YAML file overriding report extraction rules
	// (heading keywords, summary length).
	RulesPath string `envconfig:"RULES_PATH"`
}

// AIEnabled returns true if an OpenAI-compatible API key is configured.
func (c *Config) AIEnabled() bool {
	return c.OpenAIAPIKey != ""
}

// FeishuEnabled returns true if a Feishu webhook URL is configured.
func (c *Config) FeishuEnabled() bool {
	return c.FeishuWebhookURL != ""
}

// SlackEnabled returns true if Slack delivery is fully configured.
func (c *Config) SlackEnabled() bool {
	return c.SlackBotToken != "" && c.SlackChannel != ""
}

// Location resolves the configured business time zone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.BusinessTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid business timezone %q: %w", c.BusinessTimezone, err)
	}
	return loc, nil
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}
