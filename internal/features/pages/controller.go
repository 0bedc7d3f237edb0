package pages

import (
	"strings"

	"go-crm-admin/internal/session"

	"github.com/gofiber/fiber/v2"
)

// PagesController serves the page shell. Pages are thin JSON descriptors the
// frontend hydrates; what matters server-side is that every dashboard path
// goes through the session gate before reaching a handler.
type PagesController struct{}

func NewPagesController() *PagesController {
	return &PagesController{}
}

func (c *PagesController) Landing(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"page": "landing"})
}

func (c *PagesController) Login(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"page": "login"})
}

func (c *PagesController) Unauthorized(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"page": "unauthorized"})
}

// Dashboard answers any path the gate let through. The allowed navigation is
// echoed back so the shell can render its menu from the same snapshot the
// gate used.
func (c *PagesController) Dashboard(ctx *fiber.Ctx) error {
	resp := fiber.Map{
		"page": "dashboard",
		"path": ctx.Path(),
	}

	if snap, ok := ctx.Locals("session").(*session.Session); ok {
		var nav []string
		for _, grant := range snap.Permissions {
			if grant.Value > 0 {
				nav = append(nav, grant.Endpoint)
			}
		}
		resp["user"] = snap.Name
		resp["navigation"] = nav
	}

	// Module segment, when present, for the shell's breadcrumb.
	segments := strings.Split(strings.Trim(ctx.Path(), "/"), "/")
	if len(segments) > 1 {
		resp["module"] = segments[1]
	}

	return ctx.JSON(resp)
}
