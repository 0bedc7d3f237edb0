package role

import (
	"go-crm-admin/internal/common/api"
	"go-crm-admin/internal/config"
	"go-crm-admin/internal/features/permission"
	"go-crm-admin/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type RoleApi struct {
	controller *RoleController
	checker    middleware.CapabilityChecker
	config     *config.Config
}

func NewRoleApi(controller *RoleController, checker middleware.CapabilityChecker, config *config.Config) api.Route {
	return &RoleApi{
		controller: controller,
		checker:    checker,
		config:     config,
	}
}

func (a *RoleApi) Setup(app *fiber.App) {
	group := app.Group("/api/roles", middleware.AuthMiddleware(a.config.SkipAuth))

	group.Get("/", middleware.RequireCapability(a.checker, "roles", permission.BitRead), a.controller.List)
	group.Get("/:id", middleware.RequireCapability(a.checker, "roles", permission.BitRead), a.controller.Get)
	group.Post("/", middleware.RequireCapability(a.checker, "roles", permission.BitCreate), a.controller.Create)
	group.Put("/:id", middleware.RequireCapability(a.checker, "roles", permission.BitUpdate), a.controller.Update)
	group.Delete("/:id", middleware.RequireCapability(a.checker, "roles", permission.BitDelete), a.controller.Delete)

	group.Post("/:id/permisos", middleware.RequireCapability(a.checker, "roles", permission.BitUpdate), a.controller.SavePermissions)
	group.Post("/:id/permisos/toggle", middleware.RequireCapability(a.checker, "roles", permission.BitUpdate), a.controller.TogglePermission)
}
