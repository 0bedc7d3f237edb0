package employee

import (
	"go-crm-admin/internal/common/api"
	"go-crm-admin/internal/config"
	"go-crm-admin/internal/features/permission"
	"go-crm-admin/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type EmployeeApi struct {
	controller *EmployeeController
	checker    middleware.CapabilityChecker
	config     *config.Config
}

func NewEmployeeApi(controller *EmployeeController, checker middleware.CapabilityChecker, config *config.Config) api.Route {
	return &EmployeeApi{
		controller: controller,
		checker:    checker,
		config:     config,
	}
}

func (a *EmployeeApi) Setup(app *fiber.App) {
	group := app.Group("/api/empleados", middleware.AuthMiddleware(a.config.SkipAuth))

	group.Get("/", middleware.RequireCapability(a.checker, "empleados", permission.BitRead), a.controller.List)
	group.Post("/sync", middleware.RequireCapability(a.checker, "empleados", permission.BitUpdate), a.controller.Sync)
}
