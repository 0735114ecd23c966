package api

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"priority-scheduler/config"
	"priority-scheduler/internal/metrics"
	"priority-scheduler/internal/requests"
	"priority-scheduler/internal/workspace"
)

// NewApp builds the fiber app with every route registered. gatherer backs
// the /metrics endpoint.
func NewApp(cfg *config.SchedulerConfig, store *workspace.Store, collector *metrics.Collector, gatherer prometheus.Gatherer) *fiber.App {
	app := fiber.New(fiber.Config{AppName: "prisched"})
	app.Use(recover.New())
	app.Use(logger.New())

	handler := NewSchedulerHandlerImpl(cfg, store, collector)
	RegisterRoutes(app, handler)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	return app
}

func RegisterRoutes(app *fiber.App, handler *SchedulerHandlerImpl) {
	api := app.Group("/api")

	v1 := api.Group("/v1")
	{
		v1.Post("/schedule", handler.Priority)
		v1.Post("/schedule/csv", handler.PriorityCSV)
		v1.Post("/fcfs", handler.FirstComeFirstServe)
		v1.Post("/sjf", handler.ShortestJobFirst)
		v1.Get("/health", handler.Health)
	}

	sessions := v1.Group("/sessions")
	{
		sessions.Post("/", handler.CreateSession)
		sessions.Get("/:id", handler.GetSession)
		sessions.Delete("/:id", handler.DeleteSession)

		sessions.Post("/:id/processes", handler.AddProcess)
		sessions.Delete("/:id/processes", handler.ResetProcesses)
		sessions.Put("/:id/processes/:pid", handler.UpdateProcess)
		sessions.Delete("/:id/processes/:pid", handler.RemoveProcess)

		sessions.Post("/:id/priorities/auto", handler.AutoAssignPriorities)
		sessions.Put("/:id/tie-break", handler.SetTieBreak)
		sessions.Post("/:id/mode", handler.RequestModeSwitch)
		sessions.Post("/:id/mode/confirm", handler.ConfirmModeSwitch)

		sessions.Get("/:id/schedule", handler.SessionSchedule)
		sessions.Get("/:id/schedule/csv", handler.SessionScheduleCSV)
		sessions.Get("/:id/solution/:pid", handler.SessionSolution)
	}
}

// Serve wires the store and the default Prometheus registry, then blocks
// listening on cfg.Port.
func Serve(cfg *config.SchedulerConfig) error {
	store := workspace.NewStore(cfg.MaxSessions, requests.Mode(cfg.DefaultMode), requests.TieBreak(cfg.DefaultTieBreak))
	app := NewApp(cfg, store, metrics.NewCollector(), prometheus.DefaultGatherer)

	log.Println("listening on port", cfg.Port)
	return app.Listen(fmt.Sprintf(":%d", cfg.Port))
}
