package role

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-crm-admin/internal/features/permission"
	"go-crm-admin/internal/session"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RoleService interface {
	CreateRole(ctx context.Context, req CreateRoleRequest) (*Role, error)
	GetRole(ctx context.Context, id string) (*Role, error)
	ListRoles(ctx context.Context) ([]Role, error)
	UpdateRole(ctx context.Context, id string, req CreateRoleRequest) (*Role, error)
	DeleteRole(ctx context.Context, id string) error
	SavePermissions(ctx context.Context, id string, req SavePermissionsRequest) (*Role, error)
	TogglePermission(ctx context.Context, id string, req ToggleRequest) (*Role, error)
	RoleHasCapability(ctx context.Context, roleID, endpoint string, bit int) (bool, error)
}

type RoleServiceImpl struct {
	RoleRepo       RoleRepository
	PermissionRepo permission.PermissionRepository
}

func NewRoleService(roleRepo RoleRepository, permissionRepo permission.PermissionRepository) RoleService {
	return &RoleServiceImpl{
		RoleRepo:       roleRepo,
		PermissionRepo: permissionRepo,
	}
}

func (s *RoleServiceImpl) CreateRole(ctx context.Context, req CreateRoleRequest) (*Role, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("role name is required")
	}

	now := time.Now()
	role := &Role{
		ID:          primitive.NewObjectID(),
		Name:        req.Name,
		Description: req.Description,
		Permissions: []RolePermission{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.RoleRepo.Create(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

func (s *RoleServiceImpl) GetRole(ctx context.Context, id string) (*Role, error) {
	return s.RoleRepo.FindByID(ctx, id)
}

func (s *RoleServiceImpl) ListRoles(ctx context.Context) ([]Role, error) {
	return s.RoleRepo.List(ctx)
}

func (s *RoleServiceImpl) UpdateRole(ctx context.Context, id string, req CreateRoleRequest) (*Role, error) {
	role, err := s.RoleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		role.Name = req.Name
	}
	if req.Description != "" {
		role.Description = req.Description
	}
	role.UpdatedAt = time.Now()

	if err := s.RoleRepo.Update(ctx, id, role); err != nil {
		return nil, err
	}
	return role, nil
}

func (s *RoleServiceImpl) DeleteRole(ctx context.Context, id string) error {
	role, err := s.RoleRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if role.IsSystem {
		return fmt.Errorf("system role %q cannot be deleted", role.Name)
	}
	return s.RoleRepo.Delete(ctx, id)
}

// SavePermissions replaces the role's entire permission set. Values are
// validated against the bitmask domain and ids against the catalog before
// anything is written.
func (s *RoleServiceImpl) SavePermissions(ctx context.Context, id string, req SavePermissionsRequest) (*Role, error) {
	role, err := s.RoleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	catalog, err := s.PermissionRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	known := make(map[int]bool, len(catalog))
	for _, p := range catalog {
		known[p.ID] = true
	}

	for _, rp := range req.Permissions {
		if !permission.ValidValue(rp.Value) {
			return nil, fmt.Errorf("invalid permission value %d for permission %d", rp.Value, rp.PermissionID)
		}
		if !known[rp.PermissionID] {
			return nil, fmt.Errorf("unknown permission id %d", rp.PermissionID)
		}
	}

	role.Permissions = req.Permissions
	role.UpdatedAt = time.Now()

	if err := s.RoleRepo.Update(ctx, id, role); err != nil {
		return nil, err
	}
	return role, nil
}

// TogglePermission flips one bit on one catalog entry. A toggle on a módulo
// cascades to its sub-permisos (one-shot; later per-child toggles may
// override it). An id outside the catalog leaves the role untouched.
func (s *RoleServiceImpl) TogglePermission(ctx context.Context, id string, req ToggleRequest) (*Role, error) {
	role, err := s.RoleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	target, err := s.PermissionRepo.FindByID(ctx, req.PermissionID)
	if err != nil {
		// Unknown permission id is a no-op, not a failure.
		return role, nil
	}

	values := make(map[int]int, len(role.Permissions))
	for _, rp := range role.Permissions {
		values[rp.PermissionID] = rp.Value
	}

	newValue := permission.ToggleCapability(values[target.ID], req.Bit)
	values[target.ID] = newValue

	if target.IsModule() {
		children, err := s.PermissionRepo.ListChildren(ctx, target.ID)
		if err != nil {
			return nil, err
		}
		for childID, v := range permission.CascadeToChildren(newValue, req.Bit, children, values) {
			values[childID] = v
		}
	}

	role.Permissions = role.Permissions[:0]
	catalog, err := s.PermissionRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range catalog {
		if v, ok := values[p.ID]; ok {
			role.Permissions = append(role.Permissions, RolePermission{PermissionID: p.ID, Value: v})
		}
	}
	role.UpdatedAt = time.Now()

	if err := s.RoleRepo.Update(ctx, id, role); err != nil {
		return nil, err
	}
	return role, nil
}

// RoleHasCapability is the authoritative API-side permission check. The
// administrador role bypasses the catalog.
func (s *RoleServiceImpl) RoleHasCapability(ctx context.Context, roleID, endpoint string, bit int) (bool, error) {
	role, err := s.RoleRepo.FindByID(ctx, roleID)
	if err != nil {
		return false, err
	}
	if strings.EqualFold(role.Name, session.AdminRole) {
		return true, nil
	}

	catalog, err := s.PermissionRepo.List(ctx)
	if err != nil {
		return false, err
	}

	for _, p := range catalog {
		if p.Endpoint != endpoint || !p.Active {
			continue
		}
		value := resolveValue(role, &p, catalog)
		if value <= 0 {
			return false, nil
		}
		return permission.HasCapability(value, bit), nil
	}
	return false, nil
}

// resolveValue applies the same Inherit resolution the login snapshot uses:
// a sub-permiso at Inherit takes its módulo's value, a módulo at Inherit
// resolves to Deny.
func resolveValue(role *Role, p *permission.Permission, catalog []permission.Permission) int {
	value := role.Value(p.ID)
	if value != permission.Inherit {
		return value
	}
	if p.IsModule() {
		return permission.Deny
	}
	for i := range catalog {
		if catalog[i].ID == p.ParentID {
			if parent := role.Value(catalog[i].ID); parent != permission.Inherit {
				return parent
			}
			break
		}
	}
	return permission.Deny
}
