package main

import (
	"context"
	"fmt"
	"log"

	common_api "go-crm-admin/internal/common/api"
	"go-crm-admin/internal/config"
	"go-crm-admin/internal/database"
	"go-crm-admin/internal/features/auth"
	"go-crm-admin/internal/features/employee"
	"go-crm-admin/internal/features/insumo"
	"go-crm-admin/internal/features/notification"
	"go-crm-admin/internal/features/pages"
	"go-crm-admin/internal/features/permission"
	"go-crm-admin/internal/features/planning"
	"go-crm-admin/internal/features/role"
	"go-crm-admin/internal/features/user"
	"go-crm-admin/internal/logger"
	"go-crm-admin/internal/middleware"
	"go-crm-admin/internal/scheduler"
	"go-crm-admin/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	for _, route := range routes {
		route.Setup(app)
	}
	log.Printf("Registered %d routes\n", len(routes))
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			utils.SetSecret(cfg.JWTSecret)
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Logger
			logger.NewLogger,

			// Initialize Fiber Server
			NewFiberServer,

			// Initialize Database
			database.NewDatabase,

			// Initialize Repository
			permission.NewPermissionRepository,
			role.NewRoleRepository,
			user.NewUserRepository,
			planning.NewPlanningRepository,
			notification.NewNotificationRepository,
			employee.NewEmployeeRepository,
			insumo.NewInsumoRepository,

			permission.NewPermissionService,
			role.NewRoleService,
			user.NewUserService,
			auth.NewAuthService,
			planning.NewPlanningService,
			notification.NewNotificationService,
			insumo.NewInsumoService,
			employee.NewSyncService,
			notification.NewSweeper,

			// The role service is the authority behind the capability checks.
			func(s role.RoleService) middleware.CapabilityChecker { return s },

			// Initialize Controller
			auth.NewAuthController,
			user.NewUserController,
			role.NewRoleController,
			permission.NewPermissionController,
			planning.NewPlanningController,
			notification.NewNotificationController,
			employee.NewEmployeeController,
			insumo.NewInsumoController,
			pages.NewPagesController,

			// Initialize API Routes
			AsRoute(auth.NewAuthApi),
			AsRoute(user.NewUserApi),
			AsRoute(role.NewRoleApi),
			AsRoute(permission.NewPermissionApi),
			AsRoute(planning.NewPlanningApi),
			AsRoute(notification.NewNotificationApi),
			AsRoute(employee.NewEmployeeApi),
			AsRoute(insumo.NewInsumoApi),
			AsRoute(pages.NewPagesApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			// Register Routes & Start
			RegisterAllRoutesWithAnnotation,
			StartServer,
			scheduler.NewScheduler,
		),
	)

	app.Run()
}
