package permission

import (
	"context"
	"fmt"

	"go-crm-admin/pkg/utils"
)

type PermissionService interface {
	CreatePermission(ctx context.Context, req CreatePermissionRequest) (*Permission, error)
	GetPermissionByID(ctx context.Context, id int) (*Permission, error)
	ListPermissions(ctx context.Context) ([]Permission, error)
	ListModuleTree(ctx context.Context) ([]ModuleTree, error)
	UpdatePermission(ctx context.Context, id int, req CreatePermissionRequest) (*Permission, error)
	DeactivatePermission(ctx context.Context, id int) error
	DeletePermission(ctx context.Context, id int) error
}

type PermissionServiceImpl struct {
	Repo PermissionRepository
}

func NewPermissionService(repo PermissionRepository) PermissionService {
	return &PermissionServiceImpl{Repo: repo}
}

func (s *PermissionServiceImpl) CreatePermission(ctx context.Context, req CreatePermissionRequest) (*Permission, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	if req.ParentID != 0 {
		parent, err := s.Repo.FindByID(ctx, req.ParentID)
		if err != nil {
			return nil, fmt.Errorf("parent permission %d not found", req.ParentID)
		}
		// Depth is capped at módulo -> sub-permiso.
		if !parent.IsModule() {
			return nil, fmt.Errorf("permission %d is a sub-permiso and cannot have children", parent.ID)
		}
	}

	endpoint := req.Endpoint
	if endpoint == "" {
		endpoint = utils.Slugify(req.Name)
	}

	id, err := s.Repo.NextID(ctx)
	if err != nil {
		return nil, err
	}

	perm := &Permission{
		ID:       id,
		Name:     req.Name,
		Endpoint: endpoint,
		ParentID: req.ParentID,
		Active:   true,
	}

	if err := s.Repo.Create(ctx, perm); err != nil {
		return nil, err
	}
	return perm, nil
}

func (s *PermissionServiceImpl) GetPermissionByID(ctx context.Context, id int) (*Permission, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *PermissionServiceImpl) ListPermissions(ctx context.Context) ([]Permission, error) {
	return s.Repo.List(ctx)
}

func (s *PermissionServiceImpl) ListModuleTree(ctx context.Context) ([]ModuleTree, error) {
	all, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}

	byParent := make(map[int][]Permission)
	for _, p := range all {
		if !p.IsModule() {
			byParent[p.ParentID] = append(byParent[p.ParentID], p)
		}
	}

	var tree []ModuleTree
	for _, p := range all {
		if p.IsModule() {
			tree = append(tree, ModuleTree{Permission: p, Children: byParent[p.ID]})
		}
	}
	return tree, nil
}

func (s *PermissionServiceImpl) UpdatePermission(ctx context.Context, id int, req CreatePermissionRequest) (*Permission, error) {
	perm, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		perm.Name = req.Name
	}
	if req.Endpoint != "" {
		perm.Endpoint = utils.Slugify(req.Endpoint)
	}

	if err := s.Repo.Update(ctx, id, perm); err != nil {
		return nil, err
	}
	return perm, nil
}

func (s *PermissionServiceImpl) DeactivatePermission(ctx context.Context, id int) error {
	perm, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	perm.Active = false
	return s.Repo.Update(ctx, id, perm)
}

func (s *PermissionServiceImpl) DeletePermission(ctx context.Context, id int) error {
	if _, err := s.Repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, id)
}
