package main

import (
	"context"
	"time"

	"go-crm-admin/internal/config"
	"go-crm-admin/internal/database"
	"go-crm-admin/internal/features/permission"
	"go-crm-admin/internal/features/role"
	"go-crm-admin/internal/features/user"
	"go-crm-admin/internal/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type seedEntry struct {
	id       int
	name     string
	endpoint string
	parent   int
}

// catalog is the permisos tree: módulos at parent 0, sub-permisos under them.
var catalog = []seedEntry{
	{1, "Usuarios", "usuarios", 0},
	{2, "Roles", "roles", 0},
	{3, "Planeación", "planeacion", 0},
	{4, "Notificaciones", "notificaciones", 0},

	{5, "Almacén", "almacen", 0},
	{6, "Inventario", "inventario", 5},
	{7, "Explosión de insumos", "explosion-insumos", 5},

	{8, "Nóminas", "nominas", 0},
	{9, "Empleados", "empleados", 8},
	{10, "Periodos", "periodos", 8},

	{11, "Proyectos", "proyectos", 0},
	{12, "Levantamientos", "levantamientos", 11},
	{13, "Cotizaciones", "cotizaciones", 11},
	{14, "Órdenes de compra", "ordenes-compra", 11},
}

// Seed writes the permisos catalog, the two base roles and the initial admin
// account. Everything is idempotent: existing documents are left alone.
func Seed(
	lc fx.Lifecycle,
	permissionRepo permission.PermissionRepository,
	roleRepo role.RoleRepository,
	userRepo user.UserRepository,
	log *zap.Logger,
	shutdowner fx.Shutdowner,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				defer func() {
					if err := shutdowner.Shutdown(); err != nil {
						log.Error("Failed to shutdown", zap.Error(err))
					}
				}()

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := seedCatalog(ctx, permissionRepo, log); err != nil {
					log.Error("catalog seed failed", zap.Error(err))
					return
				}
				adminRole, err := seedRoles(ctx, roleRepo, log)
				if err != nil {
					log.Error("role seed failed", zap.Error(err))
					return
				}
				if err := seedAdminUser(ctx, userRepo, adminRole, log); err != nil {
					log.Error("admin user seed failed", zap.Error(err))
					return
				}
				log.Info("seeding complete")
			}()
			return nil
		},
	})
}

func seedCatalog(ctx context.Context, repo permission.PermissionRepository, log *zap.Logger) error {
	for _, e := range catalog {
		if _, err := repo.FindByID(ctx, e.id); err == nil {
			continue
		}
		p := &permission.Permission{
			ID:       e.id,
			Name:     e.name,
			Endpoint: e.endpoint,
			ParentID: e.parent,
			Active:   true,
		}
		if err := repo.Create(ctx, p); err != nil {
			return err
		}
		log.Info("seeded permiso", zap.String("endpoint", e.endpoint))
	}
	return nil
}

func seedRoles(ctx context.Context, repo role.RoleRepository, log *zap.Logger) (*role.Role, error) {
	admin, err := repo.FindByName(ctx, "administrador")
	if err == mongo.ErrNoDocuments {
		perms := make([]role.RolePermission, 0, len(catalog))
		for _, e := range catalog {
			perms = append(perms, role.RolePermission{PermissionID: e.id, Value: permission.BitAll})
		}
		now := time.Now()
		admin = &role.Role{
			ID:          primitive.NewObjectID(),
			Name:        "administrador",
			Description: "Acceso total",
			Permissions: perms,
			IsSystem:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := repo.Create(ctx, admin); err != nil {
			return nil, err
		}
		log.Info("seeded role", zap.String("name", admin.Name))
	} else if err != nil {
		return nil, err
	}

	if _, err := repo.FindByName(ctx, "ingeniero"); err == mongo.ErrNoDocuments {
		now := time.Now()
		engineer := &role.Role{
			ID:          primitive.NewObjectID(),
			Name:        "ingeniero",
			Description: "Planeación semanal y consulta",
			Permissions: []role.RolePermission{
				{PermissionID: 3, Value: permission.BitAll},
				{PermissionID: 4, Value: permission.BitRead},
				{PermissionID: 5, Value: permission.BitRead},
				{PermissionID: 6, Value: permission.Inherit},
				{PermissionID: 7, Value: permission.Inherit},
				{PermissionID: 9, Value: permission.BitRead},
			},
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := repo.Create(ctx, engineer); err != nil {
			return nil, err
		}
		log.Info("seeded role", zap.String("name", engineer.Name))
	} else if err != nil {
		return nil, err
	}

	return admin, nil
}

func seedAdminUser(ctx context.Context, repo user.UserRepository, adminRole *role.Role, log *zap.Logger) error {
	const email = "admin@example.com"

	if _, err := repo.FindByEmail(ctx, email); err == nil {
		return nil
	} else if err != mongo.ErrNoDocuments {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("cambiame-ya"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now()
	admin := &user.User{
		ID:           primitive.NewObjectID(),
		Name:         "Administrador",
		Email:        email,
		PasswordHash: string(hash),
		RoleID:       adminRole.ID,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := repo.Create(ctx, admin); err != nil {
		return err
	}
	log.Info("seeded admin user", zap.String("email", email))
	return nil
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			database.NewDatabase,

			permission.NewPermissionRepository,
			role.NewRoleRepository,
			user.NewUserRepository,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(Seed),
	)

	app.Run()
}
