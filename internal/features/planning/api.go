package planning

import (
	"go-crm-admin/internal/common/api"
	"go-crm-admin/internal/config"
	"go-crm-admin/internal/features/permission"
	"go-crm-admin/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type PlanningApi struct {
	controller *PlanningController
	checker    middleware.CapabilityChecker
	config     *config.Config
}

func NewPlanningApi(controller *PlanningController, checker middleware.CapabilityChecker, config *config.Config) api.Route {
	return &PlanningApi{
		controller: controller,
		checker:    checker,
		config:     config,
	}
}

func (a *PlanningApi) Setup(app *fiber.App) {
	group := app.Group("/api/planeaciones", middleware.AuthMiddleware(a.config.SkipAuth))

	group.Get("/window", a.controller.Window)

	group.Get("/", middleware.RequireCapability(a.checker, "planeacion", permission.BitRead), a.controller.List)
	group.Get("/:id", middleware.RequireCapability(a.checker, "planeacion", permission.BitRead), a.controller.Get)
	group.Post("/", middleware.RequireCapability(a.checker, "planeacion", permission.BitCreate), a.controller.Create)

	group.Post("/:id/activities", middleware.RequireCapability(a.checker, "planeacion", permission.BitUpdate), a.controller.AddActivity)
	group.Put("/:id/activities/:activityId", middleware.RequireCapability(a.checker, "planeacion", permission.BitUpdate), a.controller.UpdateActivity)
	group.Delete("/:id/activities/:activityId", middleware.RequireCapability(a.checker, "planeacion", permission.BitUpdate), a.controller.RemoveActivity)

	group.Post("/:id/assignments", middleware.RequireCapability(a.checker, "planeacion", permission.BitUpdate), a.controller.AssignEmployee)
	group.Put("/:id/assignments/:assignmentId", middleware.RequireCapability(a.checker, "planeacion", permission.BitUpdate), a.controller.SetAssignmentState)
	group.Delete("/:id/assignments/:assignmentId", middleware.RequireCapability(a.checker, "planeacion", permission.BitUpdate), a.controller.RemoveAssignment)

	group.Post("/:id/submit", middleware.RequireCapability(a.checker, "planeacion", permission.BitUpdate), a.controller.Submit)
	group.Post("/:id/approve", middleware.RequireCapability(a.checker, "planeacion", permission.BitUpdate), a.controller.Approve)
	group.Post("/:id/reject", middleware.RequireCapability(a.checker, "planeacion", permission.BitUpdate), a.controller.Reject)
}
