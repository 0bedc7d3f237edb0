package pages

import (
	"go-crm-admin/internal/common/api"
	"go-crm-admin/internal/config"
	"go-crm-admin/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type PagesApi struct {
	controller *PagesController
	config     *config.Config
	log        *zap.Logger
}

func NewPagesApi(controller *PagesController, config *config.Config, log *zap.Logger) api.Route {
	return &PagesApi{
		controller: controller,
		config:     config,
		log:        log,
	}
}

// Setup mounts the page shell. The session gate wraps every page route,
// including the public ones: the gate itself decides what is public and
// where an authenticated user bounces to.
func (a *PagesApi) Setup(app *fiber.App) {
	gate := middleware.SessionGate(a.config, a.log)

	app.Get("/", gate, a.controller.Landing)
	app.Get(middleware.LoginPath, gate, a.controller.Login)
	app.Get(middleware.UnauthorizedPath, gate, a.controller.Unauthorized)

	root := a.config.DashboardRoot
	app.Get(root, gate, a.controller.Dashboard)
	app.Get(root+"/*", gate, a.controller.Dashboard)
}
