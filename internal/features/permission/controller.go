package permission

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type PermissionController struct {
	service PermissionService
}

func NewPermissionController(service PermissionService) *PermissionController {
	return &PermissionController{service: service}
}

func (c *PermissionController) Create(ctx *fiber.Ctx) error {
	var req CreatePermissionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	perm, err := c.service.CreatePermission(ctx.Context(), req)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(perm)
}

func (c *PermissionController) List(ctx *fiber.Ctx) error {
	perms, err := c.service.ListPermissions(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"data": perms})
}

func (c *PermissionController) Tree(ctx *fiber.Ctx) error {
	tree, err := c.service.ListModuleTree(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"data": tree})
}

func (c *PermissionController) Update(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid permission id"})
	}

	var req CreatePermissionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	perm, err := c.service.UpdatePermission(ctx.Context(), id, req)
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(perm)
}

func (c *PermissionController) Delete(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid permission id"})
	}

	if err := c.service.DeletePermission(ctx.Context(), id); err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"status": "success"})
}
