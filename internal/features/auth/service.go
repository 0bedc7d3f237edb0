package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-crm-admin/internal/features/permission"
	"go-crm-admin/internal/features/role"
	"go-crm-admin/internal/features/user"
	"go-crm-admin/internal/session"
	"go-crm-admin/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult carries everything the controller needs to establish the
// session: the signed token for the token cookie and the snapshot for the
// usuario cookie.
type LoginResult struct {
	Token    string
	Snapshot *session.Session
	User     *user.User
}

type AuthService interface {
	Login(ctx context.Context, req LoginRequest, ttl time.Duration) (*LoginResult, error)
}

type AuthServiceImpl struct {
	UserRepo       user.UserRepository
	RoleRepo       role.RoleRepository
	PermissionRepo permission.PermissionRepository
}

func NewAuthService(userRepo user.UserRepository, roleRepo role.RoleRepository, permissionRepo permission.PermissionRepository) AuthService {
	return &AuthServiceImpl{
		UserRepo:       userRepo,
		RoleRepo:       roleRepo,
		PermissionRepo: permissionRepo,
	}
}

func (s *AuthServiceImpl) Login(ctx context.Context, req LoginRequest, ttl time.Duration) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	u, err := s.UserRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	if !u.Active {
		return nil, fmt.Errorf("account is disabled")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	r, err := s.RoleRepo.FindByID(ctx, u.RoleID.Hex())
	if err != nil {
		return nil, fmt.Errorf("role not found for user")
	}

	catalog, err := s.PermissionRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	token, err := utils.GenerateToken(u.ID, u.Name, u.Email, r.ID.Hex(), r.Name, ttl)
	if err != nil {
		return nil, err
	}

	snap := &session.Session{
		UserID:      u.ID.Hex(),
		Name:        u.Name,
		Email:       u.Email,
		RoleID:      r.ID.Hex(),
		RoleName:    r.Name,
		Permissions: buildGrants(r, catalog),
		ExpiresAt:   time.Now().Add(ttl),
	}

	return &LoginResult{Token: token, Snapshot: snap, User: u}, nil
}

// buildGrants flattens the role's bitmask values onto the permisos catalog.
// Inherit on a sub-permiso resolves to the módulo's value; Inherit on a
// módulo resolves to Deny since there is nothing above it.
func buildGrants(r *role.Role, catalog []permission.Permission) map[string]session.ModuleGrant {
	grants := make(map[string]session.ModuleGrant)

	for _, p := range catalog {
		if !p.IsModule() || !p.Active {
			continue
		}
		value := r.Value(p.ID)
		if value == permission.Inherit {
			value = permission.Deny
		}
		grants[p.Endpoint] = session.ModuleGrant{
			Endpoint:    p.Endpoint,
			Value:       value,
			SubPermisos: map[string]session.SubGrant{},
		}
	}

	for _, p := range catalog {
		if p.IsModule() || !p.Active {
			continue
		}
		parent := findByID(catalog, p.ParentID)
		if parent == nil {
			continue
		}
		grant, ok := grants[parent.Endpoint]
		if !ok {
			continue
		}
		value := r.Value(p.ID)
		if value == permission.Inherit {
			value = grant.Value
		}
		grant.SubPermisos[p.Endpoint] = session.SubGrant{Endpoint: p.Endpoint, Value: value}
		grants[parent.Endpoint] = grant
	}

	return grants
}

func findByID(catalog []permission.Permission, id int) *permission.Permission {
	for i := range catalog {
		if catalog[i].ID == id {
			return &catalog[i]
		}
	}
	return nil
}
