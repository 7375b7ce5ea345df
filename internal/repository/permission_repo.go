package repository

import (
	"context"
	"errors"

	"go-pos-admin/internal/model"

	"gorm.io/gorm"
)

type PermissionRepository interface {
	FindByKeys(ctx context.Context, keys []string) ([]model.Permission, error)
	FindAll(ctx context.Context) ([]model.Permission, error)
	SeedDefaults(ctx context.Context) error
}

type permissionRepo struct {
	db *gorm.DB
}

func NewPermissionRepo(db *gorm.DB) PermissionRepository {
	return &permissionRepo{db}
}

func (r *permissionRepo) FindByKeys(ctx context.Context, keys []string) ([]model.Permission, error) {
	var perms []model.Permission
	if len(keys) == 0 {
		return perms, nil
	}
	if err := r.db.WithContext(ctx).Where(map[string]any{"key": keys}).Order("id").Find(&perms).Error; err != nil {
		return nil, err
	}
	return perms, nil
}

func (r *permissionRepo) FindAll(ctx context.Context) ([]model.Permission, error) {
	var perms []model.Permission
	if err := r.db.WithContext(ctx).Order("id").Find(&perms).Error; err != nil {
		return nil, err
	}
	return perms, nil
}

// SeedDefaults creates missing catalog permissions. Existing rows are kept.
func (r *permissionRepo) SeedDefaults(ctx context.Context) error {
	db := r.db.WithContext(ctx)
	for _, p := range model.DefaultPermissions() {
		var existing model.Permission
		err := db.Where(map[string]any{"key": p.Key}).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&p).Error; err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}
