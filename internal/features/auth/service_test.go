package auth

import (
	"context"
	"testing"
	"time"

	"go-crm-admin/internal/features/permission"
	"go-crm-admin/internal/features/role"
	"go-crm-admin/internal/features/user"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users map[string]*user.User
}

func (f *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	f.users[u.Email] = u
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*user.User, error) {
	for _, u := range f.users {
		if u.ID.Hex() == id {
			return u, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return u, nil
}

func (f *fakeUserRepo) List(_ context.Context) ([]user.User, error) { return nil, nil }

func (f *fakeUserRepo) Update(_ context.Context, _ string, u *user.User) error {
	f.users[u.Email] = u
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, _ string) error { return nil }

type fakeRoleRepo struct {
	role *role.Role
}

func (f *fakeRoleRepo) Create(_ context.Context, _ *role.Role) error { return nil }

func (f *fakeRoleRepo) FindByID(_ context.Context, id string) (*role.Role, error) {
	if f.role != nil && f.role.ID.Hex() == id {
		return f.role, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeRoleRepo) FindByName(_ context.Context, _ string) (*role.Role, error) {
	return nil, mongo.ErrNoDocuments
}

func (f *fakeRoleRepo) List(_ context.Context) ([]role.Role, error)            { return nil, nil }
func (f *fakeRoleRepo) Update(_ context.Context, _ string, _ *role.Role) error { return nil }
func (f *fakeRoleRepo) Delete(_ context.Context, _ string) error               { return nil }

type fakePermissionRepo struct {
	catalog []permission.Permission
}

func (f *fakePermissionRepo) Create(_ context.Context, _ *permission.Permission) error { return nil }

func (f *fakePermissionRepo) FindByID(_ context.Context, id int) (*permission.Permission, error) {
	for i := range f.catalog {
		if f.catalog[i].ID == id {
			return &f.catalog[i], nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakePermissionRepo) List(_ context.Context) ([]permission.Permission, error) {
	return f.catalog, nil
}

func (f *fakePermissionRepo) ListChildren(_ context.Context, parentID int) ([]permission.Permission, error) {
	var out []permission.Permission
	for _, p := range f.catalog {
		if p.ParentID == parentID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePermissionRepo) Update(_ context.Context, _ int, _ *permission.Permission) error {
	return nil
}
func (f *fakePermissionRepo) Delete(_ context.Context, _ int) error { return nil }
func (f *fakePermissionRepo) NextID(_ context.Context) (int, error) { return len(f.catalog) + 1, nil }

func loginFixture(t *testing.T, perms []role.RolePermission) (AuthService, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	r := &role.Role{ID: primitive.NewObjectID(), Name: "ingeniero", Permissions: perms}
	u := &user.User{
		ID:           primitive.NewObjectID(),
		Name:         "Ana",
		Email:        "ana@example.com",
		PasswordHash: string(hash),
		RoleID:       r.ID,
		Active:       true,
	}

	users := &fakeUserRepo{users: map[string]*user.User{u.Email: u}}
	permRepo := &fakePermissionRepo{catalog: []permission.Permission{
		{ID: 1, Name: "Almacén", Endpoint: "almacen", ParentID: 0, Active: true},
		{ID: 2, Name: "Inventario", Endpoint: "inventario", ParentID: 1, Active: true},
		{ID: 3, Name: "Explosión de insumos", Endpoint: "explosion-insumos", ParentID: 1, Active: true},
		{ID: 4, Name: "Roles", Endpoint: "roles", ParentID: 0, Active: true},
	}}

	return NewAuthService(users, &fakeRoleRepo{role: r}, permRepo), u.ID.Hex()
}

func TestLoginBuildsSnapshotFromRole(t *testing.T) {
	svc, userID := loginFixture(t, []role.RolePermission{
		{PermissionID: 1, Value: 5},
		{PermissionID: 2, Value: permission.Inherit},
		{PermissionID: 3, Value: 1},
	})

	result, err := svc.Login(context.Background(), LoginRequest{
		Email:    "Ana@Example.com",
		Password: "hunter2hunter2",
	}, time.Hour)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token == "" {
		t.Fatal("empty token")
	}
	if result.Snapshot.UserID != userID {
		t.Fatalf("snapshot user = %s, want %s", result.Snapshot.UserID, userID)
	}

	almacen, ok := result.Snapshot.Permissions["almacen"]
	if !ok {
		t.Fatal("almacen grant missing")
	}
	if almacen.Value != 5 {
		t.Fatalf("almacen value = %d, want 5", almacen.Value)
	}
	// Inherit on a sub-permiso resolves to the módulo value.
	if got := almacen.SubPermisos["inventario"].Value; got != 5 {
		t.Fatalf("inventario value = %d, want inherited 5", got)
	}
	if got := almacen.SubPermisos["explosion-insumos"].Value; got != 1 {
		t.Fatalf("explosion-insumos value = %d, want 1", got)
	}
	// Módulos with no entry still appear, denied.
	if got := result.Snapshot.Permissions["roles"].Value; got != 0 {
		t.Fatalf("roles value = %d, want 0", got)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := loginFixture(t, nil)

	cases := []LoginRequest{
		{Email: "ana@example.com", Password: "wrong-password"},
		{Email: "nobody@example.com", Password: "hunter2hunter2"},
		{Email: "", Password: ""},
	}
	for i, req := range cases {
		if _, err := svc.Login(context.Background(), req, time.Hour); err == nil {
			t.Fatalf("case %d: expected error", i)
		}
	}
}

func TestLoginRejectsDisabledAccount(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	r := &role.Role{ID: primitive.NewObjectID(), Name: "ingeniero"}
	u := &user.User{
		ID:           primitive.NewObjectID(),
		Email:        "off@example.com",
		PasswordHash: string(hash),
		RoleID:       r.ID,
		Active:       false,
	}
	svc := NewAuthService(
		&fakeUserRepo{users: map[string]*user.User{u.Email: u}},
		&fakeRoleRepo{role: r},
		&fakePermissionRepo{},
	)

	if _, err := svc.Login(context.Background(), LoginRequest{
		Email:    "off@example.com",
		Password: "hunter2hunter2",
	}, time.Hour); err == nil {
		t.Fatal("expected error for disabled account")
	}
}
