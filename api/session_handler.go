package api

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"priority-scheduler/internal/requests"
	"priority-scheduler/internal/schedulers"
	"priority-scheduler/internal/workspace"
)

type SessionHandler interface {
	CreateSession(ctx *fiber.Ctx) error
	GetSession(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
	AddProcess(ctx *fiber.Ctx) error
	UpdateProcess(ctx *fiber.Ctx) error
	RemoveProcess(ctx *fiber.Ctx) error
	ResetProcesses(ctx *fiber.Ctx) error
	AutoAssignPriorities(ctx *fiber.Ctx) error
	SetTieBreak(ctx *fiber.Ctx) error
	RequestModeSwitch(ctx *fiber.Ctx) error
	ConfirmModeSwitch(ctx *fiber.Ctx) error
	SessionSchedule(ctx *fiber.Ctx) error
	SessionScheduleCSV(ctx *fiber.Ctx) error
	SessionSolution(ctx *fiber.Ctx) error
}

type tieBreakBody struct {
	TieBreak requests.TieBreak `json:"tie_break"`
}

type modeBody struct {
	Mode requests.Mode `json:"mode"`
}

type confirmBody struct {
	Action workspace.ConfirmAction `json:"action"`
}

func (s *SchedulerHandlerImpl) CreateSession(ctx *fiber.Ctx) error {
	session := s.store.Create()
	s.metrics.SetSessions(s.store.Len())
	log.Println("session:", session.ID, "created")
	return ctx.Status(fiber.StatusCreated).JSON(session)
}

func (s *SchedulerHandlerImpl) GetSession(ctx *fiber.Ctx) error {
	return respondSession(ctx)(s.store.Get(ctx.Params("id")))
}

func (s *SchedulerHandlerImpl) DeleteSession(ctx *fiber.Ctx) error {
	if err := s.store.Delete(ctx.Params("id")); err != nil {
		return respondError(ctx, err)
	}
	s.metrics.SetSessions(s.store.Len())
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (s *SchedulerHandlerImpl) AddProcess(ctx *fiber.Ctx) error {
	var in workspace.ProcessInput
	if err := ctx.BodyParser(&in); err != nil {
		return invalidFormat(ctx)
	}
	session, err := s.store.AddProcess(ctx.Params("id"), in)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(session)
}

func (s *SchedulerHandlerImpl) UpdateProcess(ctx *fiber.Ctx) error {
	pid, err := ctx.ParamsInt("pid")
	if err != nil {
		return invalidFormat(ctx)
	}
	var in workspace.ProcessInput
	if err := ctx.BodyParser(&in); err != nil {
		return invalidFormat(ctx)
	}
	return respondSession(ctx)(s.store.UpdateProcess(ctx.Params("id"), pid, in))
}

func (s *SchedulerHandlerImpl) RemoveProcess(ctx *fiber.Ctx) error {
	pid, err := ctx.ParamsInt("pid")
	if err != nil {
		return invalidFormat(ctx)
	}
	return respondSession(ctx)(s.store.RemoveProcess(ctx.Params("id"), pid))
}

func (s *SchedulerHandlerImpl) ResetProcesses(ctx *fiber.Ctx) error {
	return respondSession(ctx)(s.store.Reset(ctx.Params("id")))
}

func (s *SchedulerHandlerImpl) AutoAssignPriorities(ctx *fiber.Ctx) error {
	return respondSession(ctx)(s.store.AutoAssignPriorities(ctx.Params("id")))
}

func (s *SchedulerHandlerImpl) SetTieBreak(ctx *fiber.Ctx) error {
	var body tieBreakBody
	if err := ctx.BodyParser(&body); err != nil {
		return invalidFormat(ctx)
	}
	return respondSession(ctx)(s.store.SetTieBreak(ctx.Params("id"), body.TieBreak))
}

func (s *SchedulerHandlerImpl) RequestModeSwitch(ctx *fiber.Ctx) error {
	var body modeBody
	if err := ctx.BodyParser(&body); err != nil {
		return invalidFormat(ctx)
	}
	return respondSession(ctx)(s.store.RequestModeSwitch(ctx.Params("id"), body.Mode))
}

func (s *SchedulerHandlerImpl) ConfirmModeSwitch(ctx *fiber.Ctx) error {
	var body confirmBody
	if err := ctx.BodyParser(&body); err != nil {
		return invalidFormat(ctx)
	}
	return respondSession(ctx)(s.store.ConfirmModeSwitch(ctx.Params("id"), body.Action))
}

func (s *SchedulerHandlerImpl) SessionSchedule(ctx *fiber.Ctx) error {
	session, err := s.store.Get(ctx.Params("id"))
	if err != nil {
		return respondError(ctx, err)
	}
	response, err := s.store.Schedule(session.ID, s.config.MaxProcesses)
	if errors.Is(err, workspace.ErrSessionNotFound) {
		return respondError(ctx, err)
	}
	s.metrics.ObserveSchedule("priority", string(session.Mode), string(session.TieBreak), len(session.Processes), response.TotalTime, err)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(response)
}

func (s *SchedulerHandlerImpl) SessionScheduleCSV(ctx *fiber.Ctx) error {
	response, err := s.store.Schedule(ctx.Params("id"), s.config.MaxProcesses)
	if err != nil {
		return respondError(ctx, err)
	}
	return writeCSV(ctx, response)
}

func (s *SchedulerHandlerImpl) SessionSolution(ctx *fiber.Ctx) error {
	pid, err := ctx.ParamsInt("pid")
	if err != nil {
		return invalidFormat(ctx)
	}
	response, err := s.store.Schedule(ctx.Params("id"), s.config.MaxProcesses)
	if err != nil {
		return respondError(ctx, err)
	}
	solution, ok := schedulers.ProcessSolution(response, pid)
	if !ok {
		return respondError(ctx, workspace.ErrProcessNotFound)
	}
	return ctx.JSON(solution)
}

func respondSession(ctx *fiber.Ctx) func(workspace.Session, error) error {
	return func(session workspace.Session, err error) error {
		if err != nil {
			return respondError(ctx, err)
		}
		return ctx.JSON(session)
	}
}
