package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/slack-go/slack"

	"github.com/relaymesh/standup-agent/internal/ai"
	"github.com/relaymesh/standup-agent/internal/config"
	"github.com/relaymesh/standup-agent/internal/ghclient"
	"github.com/relaymesh/standup-agent/internal/health"
	"github.com/relaymesh/standup-agent/internal/metrics"
	"github.com/relaymesh/standup-agent/internal/notify"
	"github.com/relaymesh/standup-agent/internal/report"
	"github.com/relaymesh/standup-agent/internal/server"
	"github.com/relaymesh/standup-agent/internal/standup"
	"github.com/relaymesh/standup-agent/internal/store"
	"github.com/relaymesh/standup-agent/internal/workday"
)

func main() {
	// Setup structured logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(os.Stdout).With().Timestamp().Caller().Logger()

	if os.Getenv("ENVIRONMENT") == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	log.Logger = logger

	// .env is optional; real deployments use the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	if cfg.GitHubToken == "" {
		logger.Fatal().Msg("GITHUB_TOKEN is not set; create a token at https://github.com/settings/tokens with repo read access")
	}

	loc, err := cfg.Location()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to resolve business timezone")
	}

	logger.Info().
		Str("environment", cfg.Environment).
		Int("http_port", cfg.HTTPPort).
		Str("timezone", cfg.BusinessTimezone).
		Bool("ai_enabled", cfg.AIEnabled()).
		Bool("feishu_enabled", cfg.FeishuEnabled()).
		Bool("slack_enabled", cfg.SlackEnabled()).
		Msg("starting standup agent")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Task duration store
	durations, err := store.New(cfg.DBPath, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open duration store")
	}
	defer durations.Close()

	// Extraction rules
	rules := report.DefaultRules()
	if cfg.RulesPath != "" {
		rules, err = report.LoadRules(cfg.RulesPath)
		if err != nil {
			logger.Warn().Err(err).Str("path", cfg.RulesPath).Msg("failed to load rules file, using defaults")
		}
	}

	// Collaborators
	m := metrics.New()
	github := ghclient.New(cfg.GitHubToken, cfg.GitHubLogin, logger)
	synth := report.NewSynthesizer(durations, rules, logger)
	synth.InstrumentStoreErrors(m.StoreErrorsTotal)

	var summarizer ai.Summarizer = ai.NoopSummarizer{}
	if cfg.AIEnabled() {
		summarizer = ai.NewOpenAISummarizer(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, logger)
		logger.Info().Str("model", cfg.OpenAIModel).Msg("AI rewrite enabled")
	} else {
		logger.Info().Msg("AI not configured, delivering deterministic reports")
	}

	var targets notify.Multi
	if cfg.FeishuEnabled() {
		targets = append(targets, notify.WithRetry(notify.NewFeishuWebhook(cfg.FeishuWebhookURL, logger), logger))
	}
	if cfg.SlackEnabled() {
		targets = append(targets, notify.WithRetry(notify.NewSlackNotifier(slack.New(cfg.SlackBotToken), cfg.SlackChannel, logger), logger))
	}
	var notifier notify.Notifier = targets
	if len(targets) == 0 {
		logger.Warn().Msg("no delivery target configured, reports will only be logged")
		notifier = notify.NewLogNotifier(logger)
	}

	runner := standup.NewRunner(github, synth, summarizer, notifier, durations, m, cfg.RetentionDays, logger)

	// Scheduling gate
	holidays := workday.NewHolidayClient(cfg.HolidayAPIURL, logger)
	gate := workday.NewGate(holidays, loc, logger)

	// Health checks
	checker := health.NewChecker(logger)
	checker.Register("store", func(ctx context.Context) health.Status {
		if err := durations.Ping(); err != nil {
			return health.StatusDown
		}
		return health.StatusOK
	})
	checker.Register("github", func(ctx context.Context) health.Status {
		// Degraded, not down: the agent keeps serving and the next run
		// surfaces the real error.
		if err := github.Ping(ctx); err != nil {
			return health.StatusDegraded
		}
		return health.StatusOK
	})

	// Cron schedule, evaluated in the business zone: gate first, then run
	scheduler := cron.New(cron.WithSeconds(), cron.WithLocation(loc))
	_, err = scheduler.AddFunc(cfg.CronSpec, func() {
		decision := gate.Decide(ctx, nowIn(loc))
		if !decision.Run {
			logger.Info().Str("reason", decision.Reason).Msg("skipping today's report")
			m.RunsTotal.WithLabelValues("skipped").Inc()
			return
		}
		if decision.Degraded {
			logger.Warn().Str("reason", decision.Reason).Msg("running with degraded scheduling confidence")
		}
		if _, err := runner.Run(ctx, nowIn(loc)); err != nil {
			logger.Error().Err(err).Msg("scheduled run failed")
		}
	})
	if err != nil {
		logger.Fatal().Err(err).Str("spec", cfg.CronSpec).Msg("invalid cron spec")
	}
	scheduler.Start()
	logger.Info().Str("spec", cfg.CronSpec).Msg("scheduler started")

	// HTTP server
	srv := server.New(runner, gate, checker, m.Handler(), logger)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := srv.Listen(addr); err != nil {
			logger.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	<-sigCh
	logger.Info().Msg("shutting down")

	scheduler.Stop()
	if err := srv.Shutdown(); err != nil {
		logger.Error().Err(err).Msg("HTTP shutdown error")
	}
	cancel()
}

func nowIn(loc *time.Location) time.Time {
	return time.Now().In(loc)
}
