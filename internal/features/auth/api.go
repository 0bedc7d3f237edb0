package auth

import (
	"go-crm-admin/internal/common/api"
	"go-crm-admin/internal/config"
	"go-crm-admin/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AuthApi struct {
	controller *AuthController
	config     *config.Config
}

func NewAuthApi(controller *AuthController, config *config.Config) api.Route {
	return &AuthApi{
		controller: controller,
		config:     config,
	}
}

func (a *AuthApi) Setup(app *fiber.App) {
	group := app.Group("/api/auth")

	group.Post("/login", a.controller.Login)
	group.Post("/logout", a.controller.Logout)
	group.Get("/me", middleware.AuthMiddleware(a.config.SkipAuth), a.controller.Me)
}
