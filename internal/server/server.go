// Package server exposes the agent's HTTP surface: health, manual trigger,
// workday check, and metrics.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/rs/zerolog"

	"github.com/relaymesh/standup-agent/internal/health"
	"github.com/relaymesh/standup-agent/internal/workday"
)

// Trigger runs one report pipeline pass.
type Trigger interface {
	Run(ctx context.Context, now time.Time) (string, error)
}

// Decider answers the workday question.
type Decider interface {
	Decide(ctx context.Context, now time.Time) workday.Decision
}

// Server wraps the Fiber app and its dependencies.
type Server struct {
	app     *fiber.App
	trigger Trigger
	decider Decider
	checker *health.Checker
	logger  zerolog.Logger
}

// New builds the HTTP server. metricsHandler may be nil to disable /metrics.
func New(trigger Trigger, decider Decider, checker *health.Checker, metricsHandler http.Handler, logger zerolog.Logger) *Server {
	s := &Server{
		app: fiber.New(fiber.Config{
			DisableStartupMessage: true,
			ReadTimeout:           10 * time.Second,
		}),
		trigger: trigger,
		decider: decider,
		checker: checker,
		logger:  logger.With().Str("component", "server").Logger(),
	}

	s.app.Get("/health", s.handleHealth)
	s.app.Post("/manual-trigger", s.handleManualTrigger)
	s.app.Get("/check-working-day", s.handleCheckWorkingDay)
	if metricsHandler != nil {
		s.app.Get("/metrics", adaptor.HTTPHandler(metricsHandler))
	}
	return s
}

// Listen serves on addr until Shutdown.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App returns the underlying Fiber app (for tests).
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	results := s.checker.RunAll(c.Context())
	status := fiber.StatusOK
	overall := "ok"
	for _, st := range results {
		if st == health.StatusDown {
			status = fiber.StatusServiceUnavailable
			overall = "down"
			break
		}
	}
	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": results,
	})
}

// handleManualTrigger runs the pipeline immediately, bypassing the workday
// gate.
func (s *Server) handleManualTrigger(c *fiber.Ctx) error {
	reportText, err := s.trigger.Run(c.Context(), time.Now())
	if err != nil {
		s.logger.Error().Err(err).Msg("manual trigger failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"report":  reportText,
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "standup report generated and delivered",
		"report":  reportText,
	})
}

func (s *Server) handleCheckWorkingDay(c *fiber.Ctx) error {
	decision := s.decider.Decide(c.Context(), time.Now())
	return c.JSON(fiber.Map{
		"success":        true,
		"is_working_day": decision.Run,
		"degraded":       decision.Degraded,
		"reason":         decision.Reason,
	})
}
