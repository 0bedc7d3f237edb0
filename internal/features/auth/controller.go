package auth

import (
	"time"

	"go-crm-admin/internal/config"
	"go-crm-admin/internal/session"
	"go-crm-admin/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthController struct {
	service AuthService
	config  *config.Config
	log     *zap.Logger
}

func NewAuthController(service AuthService, config *config.Config, log *zap.Logger) *AuthController {
	return &AuthController{service: service, config: config, log: log}
}

// Login verifies credentials and establishes the session: a signed JWT in the
// token cookie and the permission snapshot in the usuario cookie, both with
// the same lifetime.
func (c *AuthController) Login(ctx *fiber.Ctx) error {
	var req LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	ttl := time.Duration(c.config.SessionDays) * 24 * time.Hour
	result, err := c.service.Login(ctx.Context(), req, ttl)
	if err != nil {
		c.log.Warn("login failed",
			zap.String("email", req.Email),
			zap.String("ip", ctx.IP()))
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	raw, err := result.Snapshot.Serialize()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to serialize session"})
	}

	expires := time.Now().Add(ttl)
	secure := c.config.Environment == "production"

	ctx.Cookie(&fiber.Cookie{
		Name:     session.TokenCookie,
		Value:    result.Token,
		Expires:  expires,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	// The snapshot stays readable client-side so the shell can render
	// navigation without a round trip.
	ctx.Cookie(&fiber.Cookie{
		Name:     session.UserCookie,
		Value:    raw,
		Expires:  expires,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	c.log.Info("login",
		zap.String("userID", result.Snapshot.UserID),
		zap.String("ip", ctx.IP()))

	return ctx.JSON(fiber.Map{
		"token": result.Token,
		"user":  result.Snapshot,
	})
}

func (c *AuthController) Logout(ctx *fiber.Ctx) error {
	for _, name := range []string{session.TokenCookie, session.UserCookie} {
		ctx.Cookie(&fiber.Cookie{
			Name:    name,
			Value:   "",
			Expires: time.Now().Add(-time.Hour),
		})
	}
	return ctx.JSON(fiber.Map{"status": "success"})
}

// Me echoes the authenticated claims. Useful for the shell to re-check who is
// logged in without parsing the usuario cookie.
func (c *AuthController) Me(ctx *fiber.Ctx) error {
	claims, ok := ctx.Locals(utils.UserClaimsKey).(*utils.UserClaims)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	return ctx.JSON(fiber.Map{
		"user_id":   claims.UserID,
		"name":      claims.Name,
		"email":     claims.Email,
		"role_id":   claims.RoleID,
		"role_name": claims.RoleName,
	})
}
