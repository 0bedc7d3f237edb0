package user

import (
	"go-crm-admin/internal/common/api"
	"go-crm-admin/internal/config"
	"go-crm-admin/internal/features/permission"
	"go-crm-admin/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type UserApi struct {
	controller *UserController
	checker    middleware.CapabilityChecker
	config     *config.Config
}

func NewUserApi(controller *UserController, checker middleware.CapabilityChecker, config *config.Config) api.Route {
	return &UserApi{
		controller: controller,
		checker:    checker,
		config:     config,
	}
}

func (a *UserApi) Setup(app *fiber.App) {
	group := app.Group("/api/usuarios", middleware.AuthMiddleware(a.config.SkipAuth))

	group.Get("/", middleware.RequireCapability(a.checker, "usuarios", permission.BitRead), a.controller.List)
	group.Get("/:id", middleware.RequireCapability(a.checker, "usuarios", permission.BitRead), a.controller.Get)
	group.Post("/", middleware.RequireCapability(a.checker, "usuarios", permission.BitCreate), a.controller.Create)
	group.Put("/:id", middleware.RequireCapability(a.checker, "usuarios", permission.BitUpdate), a.controller.Update)
	group.Delete("/:id", middleware.RequireCapability(a.checker, "usuarios", permission.BitDelete), a.controller.Delete)
}
