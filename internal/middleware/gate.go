package middleware

import (
	"regexp"
	"slices"
	"strings"
	"time"

	"go-crm-admin/internal/config"
	"go-crm-admin/internal/session"
	"go-crm-admin/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	LoginPath        = "/login"
	UnauthorizedPath = "/unauthorized"
)

// publicPaths are reachable without a session.
var publicPaths = map[string]bool{
	"/":              true,
	LoginPath:        true,
	UnauthorizedPath: true,
}

// actionKeywords are fixed sub-route segments (creation and edit forms)
// allowed under any granted parent path.
var actionKeywords = map[string]bool{
	"create": true,
	"nuevo":  true,
	"editar": true,
}

// slugPattern accepts entity ids and slugs as the trailing segment of a
// granted path. It matches nearly any segment; tightening it is an open
// product decision, so it is kept as-is rather than silently narrowed.
var slugPattern = regexp.MustCompile(`^[\w-]+$`)

// SessionGate guards the page shell using the token and usuario cookies.
//
// This gate decodes the JWT without verifying its signature: it exists to
// route the browser quickly (login vs dashboard vs unauthorized), not to
// enforce anything. Authorization is enforced per-request on the API by
// AuthMiddleware + RequireCapability.
//
// Every failure resolves to a redirect. A snapshot that fails to parse is
// self-healing: both cookies are cleared and the user lands on login.
func SessionGate(cfg *config.Config, log *zap.Logger) fiber.Handler {
	root := cfg.DashboardRoot

	return func(c *fiber.Ctx) error {
		path := c.Path()
		token := c.Cookies(session.TokenCookie)
		rawUser := c.Cookies(session.UserCookie)

		// Unauthenticated check.
		if token == "" || rawUser == "" {
			if publicPaths[path] {
				return c.Next()
			}
			return c.Redirect(LoginPath, fiber.StatusFound)
		}

		// Snapshot integrity check.
		snap, err := session.Parse(rawUser)
		if err != nil {
			log.Warn("clearing corrupt session snapshot", zap.String("ip", c.IP()))
			clearSessionCookies(c)
			return c.Redirect(LoginPath, fiber.StatusFound)
		}

		// Expiry check (unverified decode, advisory only).
		claims, err := utils.DecodeUnverified(token)
		if err != nil || claims.IsExpired(time.Now()) {
			clearSessionCookies(c)
			return c.Redirect(LoginPath, fiber.StatusFound)
		}

		// Already authenticated: login and the landing root bounce to the dashboard.
		if path == LoginPath || path == "/" {
			return c.Redirect(root, fiber.StatusFound)
		}

		// Permission check for paths under the protected root.
		if path == root || strings.HasPrefix(path, root+"/") {
			if len(snap.Permissions) == 0 {
				return c.Redirect(UnauthorizedPath, fiber.StatusFound)
			}

			allowed := session.BuildAllowList(root, snap.Permissions)
			if pathAllowed(path, allowed) {
				c.Locals("session", snap)
				return c.Next()
			}

			if pathDepth(path) > 2 {
				log.Info("route denied",
					zap.String("path", path),
					zap.String("userID", snap.UserID))
				return c.Redirect(UnauthorizedPath, fiber.StatusFound)
			}
		}

		// Default allow. Fail-open is the recorded product behavior for paths
		// that match no structural rule; see DESIGN.md before changing it.
		c.Locals("session", snap)
		return c.Next()
	}
}

// pathAllowed reports whether path is reachable under the allow-list. Beyond
// exact matches, a deeper path is reachable when its parent is and the final
// segment is an action keyword or an id/slug. The parent check applies the
// same rule, so /dashboard/almacen/inventario/create passes with only
// /dashboard/almacen granted.
func pathAllowed(path string, allowed []string) bool {
	if slices.Contains(allowed, path) {
		return true
	}

	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) <= 2 {
		return false
	}

	parent := "/" + strings.Join(segments[:len(segments)-1], "/")
	if !pathAllowed(parent, allowed) {
		return false
	}

	last := segments[len(segments)-1]
	return actionKeywords[last] || slugPattern.MatchString(last)
}

func pathDepth(path string) int {
	return len(strings.Split(strings.Trim(path, "/"), "/"))
}

func clearSessionCookies(c *fiber.Ctx) {
	for _, name := range []string{session.TokenCookie, session.UserCookie} {
		c.Cookie(&fiber.Cookie{
			Name:    name,
			Value:   "",
			Expires: time.Now().Add(-time.Hour),
		})
	}
}
