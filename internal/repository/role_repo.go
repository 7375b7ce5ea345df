package repository

import (
	"context"
	"errors"

	"go-pos-admin/internal/model"

	"gorm.io/gorm"
)

type RoleRepository interface {
	FindAll(ctx context.Context) ([]model.Role, error)
	FindByID(ctx context.Context, id uint) (*model.Role, error)
	FindByName(ctx context.Context, name string) (*model.Role, error)
	SeedDefaults(ctx context.Context) error
}

type roleRepo struct {
	db *gorm.DB
}

func NewRoleRepo(db *gorm.DB) RoleRepository {
	return &roleRepo{db: db}
}

func (r *roleRepo) FindAll(ctx context.Context) ([]model.Role, error) {
	var roles []model.Role
	err := r.db.WithContext(ctx).Preload("DefaultPermissions").Order("id").Find(&roles).Error
	return roles, err
}

func (r *roleRepo) FindByID(ctx context.Context, id uint) (*model.Role, error) {
	var role model.Role
	if err := r.db.WithContext(ctx).Preload("DefaultPermissions").First(&role, id).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepo) FindByName(ctx context.Context, name string) (*model.Role, error) {
	var role model.Role
	if err := r.db.WithContext(ctx).Preload("DefaultPermissions").Where("name = ?", name).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// SeedDefaults find-or-creates every default role. A role that is created gets
// its default permission set; an existing role is left as the operator edited it.
// Permissions must be seeded first.
func (r *roleRepo) SeedDefaults(ctx context.Context) error {
	db := r.db.WithContext(ctx)
	for _, def := range model.DefaultRoles {
		var existing model.Role
		err := db.Where("name = ?", def.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var perms []model.Permission
		if err := db.Where(map[string]any{"key": def.Permissions}).Find(&perms).Error; err != nil {
			return err
		}
		role := model.Role{
			Name:               def.Name,
			Description:        def.Description,
			IsSuperRole:        def.IsSuperRole,
			DefaultPermissions: perms,
		}
		if err := db.Create(&role).Error; err != nil {
			return err
		}
	}
	return nil
}
