package notification

import (
	"go-crm-admin/internal/common/api"
	"go-crm-admin/internal/config"
	"go-crm-admin/internal/features/permission"
	"go-crm-admin/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type NotificationApi struct {
	controller *NotificationController
	checker    middleware.CapabilityChecker
	config     *config.Config
}

func NewNotificationApi(controller *NotificationController, checker middleware.CapabilityChecker, config *config.Config) api.Route {
	return &NotificationApi{
		controller: controller,
		checker:    checker,
		config:     config,
	}
}

func (a *NotificationApi) Setup(app *fiber.App) {
	group := app.Group("/api/notificaciones", middleware.AuthMiddleware(a.config.SkipAuth))

	group.Get("/", middleware.RequireCapability(a.checker, "notificaciones", permission.BitRead), a.controller.List)
	group.Get("/unread-count", middleware.RequireCapability(a.checker, "notificaciones", permission.BitRead), a.controller.UnreadCount)
	group.Put("/:id/read", middleware.RequireCapability(a.checker, "notificaciones", permission.BitUpdate), a.controller.MarkRead)

	group.Get("/reglas", middleware.RequireCapability(a.checker, "notificaciones", permission.BitRead), a.controller.ListRules)
	group.Post("/reglas", middleware.RequireCapability(a.checker, "notificaciones", permission.BitCreate), a.controller.CreateRule)
	group.Delete("/reglas/:id", middleware.RequireCapability(a.checker, "notificaciones", permission.BitDelete), a.controller.DeleteRule)
}
