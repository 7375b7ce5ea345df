package service

import (
	"context"

	"go-pos-admin/internal/apperror"
	"go-pos-admin/internal/model"
	"go-pos-admin/internal/repository"
)

// RoleView is a role with its default permission keys.
type RoleView struct {
	ID                 uint     `json:"id"`
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	IsSuperRole        bool     `json:"is_super_role"`
	DefaultPermissions []string `json:"default_permissions"`
}

type RolesPermissions struct {
	Roles       []RoleView              `json:"roles"`
	Permissions []model.PermissionGroup `json:"permissions"`
}

type RoleService interface {
	RolesPermissions(ctx context.Context, caller *model.Staff) (*RolesPermissions, error)
}

type roleService struct {
	roleRepo repository.RoleRepository
	catalog  *Catalog
}

func NewRoleService(roleRepo repository.RoleRepository, catalog *Catalog) RoleService {
	return &roleService{roleRepo: roleRepo, catalog: catalog}
}

// RolesPermissions is open to any active staff member.
func (s *roleService) RolesPermissions(ctx context.Context, caller *model.Staff) (*RolesPermissions, error) {
	if err := Authorize(caller); err != nil {
		return nil, err
	}
	roles, err := s.roleRepo.FindAll(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	out := &RolesPermissions{
		Roles:       make([]RoleView, len(roles)),
		Permissions: s.catalog.Groups(),
	}
	for i, r := range roles {
		out.Roles[i] = RoleView{
			ID:                 r.ID,
			Name:               r.Name,
			Description:        r.Description,
			IsSuperRole:        r.IsSuperRole,
			DefaultPermissions: model.PermissionKeys(r.DefaultPermissions),
		}
	}
	return out, nil
}
