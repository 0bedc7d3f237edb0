package middleware

import (
	"context"

	"go-crm-admin/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

// CapabilityChecker resolves whether a role carries a capability bit on a
// catalog entry. Implemented by the role service; declared here so feature
// APIs can hand it in without an import cycle.
type CapabilityChecker interface {
	RoleHasCapability(ctx context.Context, roleID, endpoint string, bit int) (bool, error)
}

// RequireCapability checks the caller's role against the permisos catalog
// before letting the handler run. This is the authoritative check; the cookie
// gate on the page shell is advisory only.
func RequireCapability(checker CapabilityChecker, endpoint string, bit int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals(utils.UserClaimsKey).(*utils.UserClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		allowed, err := checker.RoleHasCapability(c.Context(), claims.RoleID, endpoint, bit)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Internal Server Error",
			})
		}
		if !allowed {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden: Insufficient permissions",
			})
		}

		return c.Next()
	}
}
