package repository

import (
	"context"

	"go-pos-admin/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OwnerRepository interface {
	FindByEmail(ctx context.Context, email string) (*model.Owner, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Owner, error)
	Create(ctx context.Context, owner *model.Owner) error
}

type ownerRepo struct {
	db *gorm.DB
}

func NewOwnerRepo(db *gorm.DB) OwnerRepository {
	return &ownerRepo{db}
}

func (r *ownerRepo) FindByEmail(ctx context.Context, email string) (*model.Owner, error) {
	var owner model.Owner
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&owner).Error; err != nil {
		return nil, err
	}
	return &owner, nil
}

func (r *ownerRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Owner, error) {
	var owner model.Owner
	if err := r.db.WithContext(ctx).First(&owner, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &owner, nil
}

func (r *ownerRepo) Create(ctx context.Context, owner *model.Owner) error {
	return r.db.WithContext(ctx).Create(owner).Error
}
