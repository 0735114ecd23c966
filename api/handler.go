package api

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"priority-scheduler/config"
	"priority-scheduler/internal/metrics"
	"priority-scheduler/internal/report"
	"priority-scheduler/internal/requests"
	"priority-scheduler/internal/responses"
	"priority-scheduler/internal/schedulers"
	"priority-scheduler/internal/workspace"
)

type SchedulerHandler interface {
	Priority(ctx *fiber.Ctx) error
	PriorityCSV(ctx *fiber.Ctx) error
	FirstComeFirstServe(ctx *fiber.Ctx) error
	ShortestJobFirst(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
}

type scheduleFunc func(requests.ScheduleRequest) (responses.ScheduleResponse, error)

type SchedulerHandlerImpl struct {
	config  *config.SchedulerConfig
	store   *workspace.Store
	metrics *metrics.Collector
}

func NewSchedulerHandlerImpl(config *config.SchedulerConfig, store *workspace.Store, collector *metrics.Collector) *SchedulerHandlerImpl {
	return &SchedulerHandlerImpl{config: config, store: store, metrics: collector}
}

func (s *SchedulerHandlerImpl) Priority(ctx *fiber.Ctx) error {
	return s.schedule(ctx, "priority", schedulers.SchedulePriority)
}

func (s *SchedulerHandlerImpl) FirstComeFirstServe(ctx *fiber.Ctx) error {
	return s.schedule(ctx, "fcfs", schedulers.ScheduleFirstComeFirstServe)
}

func (s *SchedulerHandlerImpl) ShortestJobFirst(ctx *fiber.Ctx) error {
	return s.schedule(ctx, "sjf", schedulers.ScheduleShortestJobFirst)
}

func (s *SchedulerHandlerImpl) PriorityCSV(ctx *fiber.Ctx) error {
	var request requests.ScheduleRequest
	if err := ctx.BodyParser(&request); err != nil {
		return invalidFormat(ctx)
	}
	response, err := s.run("priority", request, schedulers.SchedulePriority)
	if err != nil {
		return respondError(ctx, err)
	}
	return writeCSV(ctx, response)
}

func (s *SchedulerHandlerImpl) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"status": "ok", "sessions": s.store.Len()})
}

func (s *SchedulerHandlerImpl) schedule(ctx *fiber.Ctx, algorithm string, fn scheduleFunc) error {
	var request requests.ScheduleRequest
	if err := ctx.BodyParser(&request); err != nil {
		return invalidFormat(ctx)
	}
	response, err := s.run(algorithm, request, fn)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(response)
}

// run applies configured defaults and limits, then calls the algorithm.
func (s *SchedulerHandlerImpl) run(algorithm string, request requests.ScheduleRequest, fn scheduleFunc) (responses.ScheduleResponse, error) {
	if request.Mode == "" {
		request.Mode = requests.Mode(s.config.DefaultMode)
	}
	if request.TieBreak == "" {
		request.TieBreak = requests.TieBreak(s.config.DefaultTieBreak)
	}

	var response responses.ScheduleResponse
	err := schedulers.Validate(request, s.config.MaxProcesses)
	if err == nil {
		log.Println("running", algorithm, "algorithm with mode =", request.Mode, "tie_break =", request.TieBreak, "processes =", len(request.Processes))
		response, err = fn(request)
	}
	if err != nil {
		log.Println(algorithm, "request rejected:", err)
	}
	s.metrics.ObserveSchedule(algorithm, string(request.Mode), string(request.TieBreak), len(request.Processes), response.TotalTime, err)
	return response, err
}

func writeCSV(ctx *fiber.Ctx, response responses.ScheduleResponse) error {
	ctx.Attachment(report.CSVFilename)
	ctx.Set(fiber.HeaderContentType, "text/csv")
	if err := report.WriteCSV(ctx, response.Details); err != nil {
		return respondError(ctx, err)
	}
	return nil
}

func invalidFormat(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "invalid request format",
	})
}

// respondError maps domain errors to status codes.
func respondError(ctx *fiber.Ctx, err error) error {
	var verr *schedulers.ValidationErrors
	switch {
	case errors.As(err, &verr):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation failed", "fields": verr.Fields})
	case errors.Is(err, workspace.ErrSessionNotFound), errors.Is(err, workspace.ErrProcessNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, workspace.ErrNoPendingMode):
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, workspace.ErrUnknownAction), errors.Is(err, schedulers.ErrUnknownMode), errors.Is(err, schedulers.ErrUnknownTieBreak):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		log.Println("request failed:", err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "can not proccess request"})
	}
}
