package planning

import (
	"errors"
	"strings"

	"go-crm-admin/internal/session"
	"go-crm-admin/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type PlanningController struct {
	service PlanningService
}

func NewPlanningController(service PlanningService) *PlanningController {
	return &PlanningController{service: service}
}

func actorFrom(ctx *fiber.Ctx) Actor {
	claims, ok := ctx.Locals(utils.UserClaimsKey).(*utils.UserClaims)
	if !ok {
		return Actor{}
	}
	return Actor{
		UserID: claims.UserID,
		Admin:  strings.EqualFold(claims.RoleName, session.AdminRole),
	}
}

func respondErr(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrPermissionDenied):
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrStateConflict), errors.Is(err, ErrWindowClosed):
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrValidation):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}

func (c *PlanningController) Create(ctx *fiber.Ctx) error {
	var req CreatePlanningRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	doc, err := c.service.Create(ctx.Context(), actorFrom(ctx), req)
	if err != nil {
		return respondErr(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(doc)
}

func (c *PlanningController) List(ctx *fiber.Ctx) error {
	docs, err := c.service.List(ctx.Context(), actorFrom(ctx))
	if err != nil {
		return respondErr(ctx, err)
	}
	return ctx.JSON(fiber.Map{"data": docs})
}

func (c *PlanningController) Get(ctx *fiber.Ctx) error {
	doc, err := c.service.Get(ctx.Context(), actorFrom(ctx), ctx.Params("id"))
	if err != nil {
		return respondErr(ctx, err)
	}
	return ctx.JSON(doc)
}

func (c *PlanningController) Window(ctx *fiber.Ctx) error {
	return ctx.JSON(c.service.Window())
}

func (c *PlanningController) AddActivity(ctx *fiber.Ctx) error {
	var req ActivityRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	doc, err := c.service.AddActivity(ctx.Context(), actorFrom(ctx), ctx.Params("id"), req)
	if err != nil {
		return respondErr(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(doc)
}

func (c *PlanningController) UpdateActivity(ctx *fiber.Ctx) error {
	var req ActivityRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	doc, err := c.service.UpdateActivity(ctx.Context(), actorFrom(ctx), ctx.Params("id"), ctx.Params("activityId"), req)
	if err != nil {
		return respondErr(ctx, err)
	}
	return ctx.JSON(doc)
}

func (c *PlanningController) RemoveActivity(ctx *fiber.Ctx) error {
	doc, err := c.service.RemoveActivity(ctx.Context(), actorFrom(ctx), ctx.Params("id"), ctx.Params("activityId"))
	if err != nil {
		return respondErr(ctx, err)
	}
	return ctx.JSON(doc)
}

func (c *PlanningController) AssignEmployee(ctx *fiber.Ctx) error {
	var cmd AssignEmployeeCommand
	if err := ctx.BodyParser(&cmd); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	doc, err := c.service.AssignEmployee(ctx.Context(), actorFrom(ctx), ctx.Params("id"), cmd)
	if err != nil {
		return respondErr(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(doc)
}

func (c *PlanningController) RemoveAssignment(ctx *fiber.Ctx) error {
	doc, err := c.service.RemoveAssignment(ctx.Context(), actorFrom(ctx), ctx.Params("id"), ctx.Params("assignmentId"))
	if err != nil {
		return respondErr(ctx, err)
	}
	return ctx.JSON(doc)
}

func (c *PlanningController) SetAssignmentState(ctx *fiber.Ctx) error {
	var req struct {
		State       AssignmentState `json:"state"`
		HoursWorked *float64        `json:"hours_worked"`
	}
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	doc, err := c.service.SetAssignmentState(ctx.Context(), actorFrom(ctx), ctx.Params("id"), ctx.Params("assignmentId"), req.State, req.HoursWorked)
	if err != nil {
		return respondErr(ctx, err)
	}
	return ctx.JSON(doc)
}

func (c *PlanningController) Submit(ctx *fiber.Ctx) error {
	doc, err := c.service.Submit(ctx.Context(), actorFrom(ctx), ctx.Params("id"))
	if err != nil {
		return respondErr(ctx, err)
	}
	return ctx.JSON(doc)
}

func (c *PlanningController) Approve(ctx *fiber.Ctx) error {
	var req DecisionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	doc, err := c.service.Approve(ctx.Context(), actorFrom(ctx), ctx.Params("id"), req)
	if err != nil {
		return respondErr(ctx, err)
	}
	return ctx.JSON(doc)
}

func (c *PlanningController) Reject(ctx *fiber.Ctx) error {
	var req DecisionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	doc, err := c.service.Reject(ctx.Context(), actorFrom(ctx), ctx.Params("id"), req)
	if err != nil {
		return respondErr(ctx, err)
	}
	return ctx.JSON(doc)
}
