package permission

import (
	"go-crm-admin/internal/common/api"
	"go-crm-admin/internal/config"
	"go-crm-admin/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type PermissionApi struct {
	controller *PermissionController
	config     *config.Config
}

func NewPermissionApi(controller *PermissionController, config *config.Config) api.Route {
	return &PermissionApi{
		controller: controller,
		config:     config,
	}
}

func (a *PermissionApi) Setup(app *fiber.App) {
	group := app.Group("/api/permisos", middleware.AuthMiddleware(a.config.SkipAuth))

	group.Get("/", a.controller.List)
	group.Get("/tree", a.controller.Tree)
	group.Post("/", a.controller.Create)
	group.Put("/:id", a.controller.Update)
	group.Delete("/:id", a.controller.Delete)
}
