package role

import (
	"github.com/gofiber/fiber/v2"
)

type RoleController struct {
	service RoleService
}

func NewRoleController(service RoleService) *RoleController {
	return &RoleController{service: service}
}

func (c *RoleController) Create(ctx *fiber.Ctx) error {
	var req CreateRoleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	role, err := c.service.CreateRole(ctx.Context(), req)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusCreated).JSON(role)
}

func (c *RoleController) List(ctx *fiber.Ctx) error {
	roles, err := c.service.ListRoles(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"data": roles})
}

func (c *RoleController) Get(ctx *fiber.Ctx) error {
	role, err := c.service.GetRole(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Role not found"})
	}
	return ctx.JSON(role)
}

func (c *RoleController) Update(ctx *fiber.Ctx) error {
	var req CreateRoleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	role, err := c.service.UpdateRole(ctx.Context(), ctx.Params("id"), req)
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(role)
}

func (c *RoleController) Delete(ctx *fiber.Ctx) error {
	if err := c.service.DeleteRole(ctx.Context(), ctx.Params("id")); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"status": "success"})
}

// SavePermissions replaces the role's whole permission set in one write.
func (c *RoleController) SavePermissions(ctx *fiber.Ctx) error {
	var req SavePermissionsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	role, err := c.service.SavePermissions(ctx.Context(), ctx.Params("id"), req)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(role)
}

func (c *RoleController) TogglePermission(ctx *fiber.Ctx) error {
	var req ToggleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	role, err := c.service.TogglePermission(ctx.Context(), ctx.Params("id"), req)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(role)
}
