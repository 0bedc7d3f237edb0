package employee

import (
	"github.com/gofiber/fiber/v2"
)

type EmployeeController struct {
	repo EmployeeRepository
	sync *SyncService
}

func NewEmployeeController(repo EmployeeRepository, sync *SyncService) *EmployeeController {
	return &EmployeeController{repo: repo, sync: sync}
}

func (c *EmployeeController) List(ctx *fiber.Ctx) error {
	if plant := ctx.Query("plant"); plant != "" {
		employees, err := c.repo.ListByPlant(ctx.Context(), plant)
		if err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return ctx.JSON(fiber.Map{"data": employees})
	}

	employees, err := c.repo.List(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"data": employees})
}

func (c *EmployeeController) Sync(ctx *fiber.Ctx) error {
	if !c.sync.Enabled() {
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "HR sync is not configured"})
	}

	count, err := c.sync.Run(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"status": "success", "synced": count})
}
