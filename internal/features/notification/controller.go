package notification

import (
	"github.com/gofiber/fiber/v2"
)

type NotificationController struct {
	service NotificationService
}

func NewNotificationController(service NotificationService) *NotificationController {
	return &NotificationController{service: service}
}

func (c *NotificationController) List(ctx *fiber.Ctx) error {
	area := ctx.Query("area")
	if area == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "area query parameter is required"})
	}

	items, err := c.service.ListByArea(ctx.Context(), area)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"data": items})
}

func (c *NotificationController) UnreadCount(ctx *fiber.Ctx) error {
	area := ctx.Query("area")
	if area == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "area query parameter is required"})
	}

	count, err := c.service.UnreadCount(ctx.Context(), area)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"count": count})
}

func (c *NotificationController) MarkRead(ctx *fiber.Ctx) error {
	if err := c.service.MarkRead(ctx.Context(), ctx.Params("id")); err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Notification not found"})
	}
	return ctx.JSON(fiber.Map{"status": "success"})
}

func (c *NotificationController) CreateRule(ctx *fiber.Ctx) error {
	var req CreateRuleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	rule, err := c.service.CreateRule(ctx.Context(), req)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusCreated).JSON(rule)
}

func (c *NotificationController) ListRules(ctx *fiber.Ctx) error {
	rules, err := c.service.ListRules(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"data": rules})
}

func (c *NotificationController) DeleteRule(ctx *fiber.Ctx) error {
	if err := c.service.DeleteRule(ctx.Context(), ctx.Params("id")); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"status": "success"})
}
