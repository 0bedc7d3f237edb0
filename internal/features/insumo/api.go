package insumo

import (
	"go-crm-admin/internal/common/api"
	"go-crm-admin/internal/config"
	"go-crm-admin/internal/features/permission"
	"go-crm-admin/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type InsumoApi struct {
	controller *InsumoController
	checker    middleware.CapabilityChecker
	config     *config.Config
}

func NewInsumoApi(controller *InsumoController, checker middleware.CapabilityChecker, config *config.Config) api.Route {
	return &InsumoApi{
		controller: controller,
		checker:    checker,
		config:     config,
	}
}

func (a *InsumoApi) Setup(app *fiber.App) {
	group := app.Group("/api/insumos", middleware.AuthMiddleware(a.config.SkipAuth))

	group.Get("/", middleware.RequireCapability(a.checker, "explosion-insumos", permission.BitRead), a.controller.List)
	group.Post("/import", middleware.RequireCapability(a.checker, "explosion-insumos", permission.BitCreate), a.controller.Import)
	group.Get("/export", middleware.RequireCapability(a.checker, "explosion-insumos", permission.BitRead), a.controller.Export)
}
