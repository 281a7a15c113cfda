package config

import (
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "Asia/Shanghai", cfg.BusinessTimezone)
	assert.Equal(t, 30, cfg.RetentionDays)
	assert.Equal(t, "standup.db", cfg.DBPath)
	assert.Equal(t, "0 30 9 * * *", cfg.CronSpec)
	assert.False(t, cfg.AIEnabled())
}

func TestDefaultCronSpecFiresOnWeekends(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	sched, err := parser.Parse(cfg.CronSpec)
	require.NoError(t, err)

	// Compensatory workdays fall on weekend dates, so the trigger must fire
	// on Saturdays and Sundays and leave the skip decision to the gate.
	fri := time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)
	sat := sched.Next(fri)
	assert.Equal(t, time.Saturday, sat.Weekday())
	assert.Equal(t, time.Sunday, sched.Next(sat).Weekday())
}

func TestEnabledHelpers(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("FEISHU_WEBHOOK_URL", "https://open.feishu.cn/hook/abc")
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.AIEnabled())
	assert.True(t, cfg.FeishuEnabled())
	// Slack needs both a token and a channel
	assert.False(t, cfg.SlackEnabled())

	t.Setenv("SLACK_CHANNEL", "C123")
	cfg, err = Load()
	require.NoError(t, err)
	assert.True(t, cfg.SlackEnabled())
}

func TestLocation(t *testing.T) {
	cfg := &Config{BusinessTimezone: "Asia/Shanghai"}
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Shanghai", loc.String())

	cfg.BusinessTimezone = "Not/AZone"
	_, err = cfg.Location()
	assert.Error(t, err)
}
