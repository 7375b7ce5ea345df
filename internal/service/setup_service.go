package service

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"

	"go-pos-admin/internal/apperror"
	"go-pos-admin/internal/model"
	"go-pos-admin/internal/repository"
	"go-pos-admin/pkg/config"
	"go-pos-admin/pkg/validator"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type SetupRequest struct {
	SuperEmail    string          `json:"super_email" validate:"required"`
	SuperPassword string          `json:"super_password" validate:"required"`
	SuperPin      string          `json:"super_pin" validate:"required"`
	Owner         SetupOwner      `json:"ownerData" validate:"required"`
	Brand         json.RawMessage `json:"brandData" validate:"required"`
	Staff         SetupStaff      `json:"staffData" validate:"required"`
}

type SetupOwner struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone"`
}

type SetupStaff struct {
	Password string `json:"password" validate:"required,min=6"`
	Pin      string `json:"pin" validate:"required,numeric,min=4,max=8"`
}

type SetupResult struct {
	Owner *model.Owner        `json:"owner"`
	Brand *model.Brand        `json:"brand"`
	Staff model.StaffResponse `json:"staff"`
}

// SetupService provisions the first owner, brand and administrator.
type SetupService interface {
	Run(ctx context.Context, req *SetupRequest) (*SetupResult, error)
}

type setupService struct {
	db     *gorm.DB
	secret config.SetupConfig
	log    zerolog.Logger
}

func NewSetupService(db *gorm.DB, secret config.SetupConfig, log zerolog.Logger) SetupService {
	return &setupService{db: db, secret: secret, log: log}
}

func (s *setupService) authorized(req *SetupRequest) bool {
	return equal(req.SuperEmail, s.secret.Email) &
		equal(req.SuperPassword, s.secret.Password) &
		equal(req.SuperPin, s.secret.PIN) == 1
}

func equal(a, b string) int {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b))
}

// Run find-or-creates every record, so repeating it with the same input
// changes nothing.
func (s *setupService) Run(ctx context.Context, req *SetupRequest) (*SetupResult, error) {
	if !s.secret.Enabled() {
		return nil, apperror.Forbidden("setup is disabled")
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.Validation(validator.Fields(errs))
	}
	if !s.authorized(req) {
		return nil, apperror.Unauthenticated("invalid super admin credentials")
	}

	res := &SetupResult{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owner, err := s.owner(ctx, tx, req)
		if err != nil {
			return err
		}
		role, err := s.adminRole(ctx, tx)
		if err != nil {
			return err
		}
		brand, err := s.brand(ctx, tx, req.Brand, owner)
		if err != nil {
			return err
		}
		staff, err := s.staff(ctx, tx, req, owner, role, brand)
		if err != nil {
			return err
		}
		res.Owner, res.Brand, res.Staff = owner, brand, staff.ToResponse()
		return nil
	})
	if err != nil {
		return nil, apperror.From(err)
	}
	s.log.Info().
		Str("owner_id", res.Owner.ID.String()).
		Str("brand_id", res.Brand.ID.String()).
		Str("staff_id", res.Staff.ID.String()).
		Msg("setup completed")
	return res, nil
}

func (s *setupService) owner(ctx context.Context, tx *gorm.DB, req *SetupRequest) (*model.Owner, error) {
	owners := repository.NewOwnerRepo(tx)
	owner, err := owners.FindByEmail(ctx, req.Owner.Email)
	if err == nil {
		return owner, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Internal(err)
	}

	owner = &model.Owner{
		Name:   req.Owner.Name,
		Email:  req.Owner.Email,
		Phone:  req.Owner.Phone,
		Status: model.StatusActive,
	}
	if err := owner.SetPassword(req.Staff.Password); err != nil {
		return nil, apperror.Internal(err)
	}
	owner.Stamp(actorName(nil), true)
	if err := owners.Create(ctx, owner); err != nil {
		return nil, apperror.Internal(err)
	}
	return owner, nil
}

func (s *setupService) adminRole(ctx context.Context, tx *gorm.DB) (*model.Role, error) {
	roles := repository.NewRoleRepo(tx)
	role, err := roles.FindByName(ctx, model.RoleAdmin)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := repository.NewPermissionRepo(tx).SeedDefaults(ctx); err != nil {
			return nil, apperror.Internal(err)
		}
		if err := roles.SeedDefaults(ctx); err != nil {
			return nil, apperror.Internal(err)
		}
		role, err = roles.FindByName(ctx, model.RoleAdmin)
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return role, nil
}

func (s *setupService) brand(ctx context.Context, tx *gorm.DB, payload json.RawMessage, owner *model.Owner) (*model.Brand, error) {
	brand := &model.Brand{}
	if err := decodeInto(payload, brand); err != nil {
		return nil, err
	}

	var existing model.Brand
	err := tx.WithContext(ctx).Where("short_name = ?", brand.ShortName).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Internal(err)
	}

	brand.OwnerID = &owner.ID
	if err := prepare(brand); err != nil {
		return nil, err
	}
	if err := checkUnique(ctx, tx, repository.BrandConstraints, brand, uuid.Nil, nil); err != nil {
		return nil, err
	}
	brand.Stamp(actorName(nil), true)
	if err := tx.WithContext(ctx).Create(brand).Error; err != nil {
		return nil, storageError(ctx, tx, repository.BrandConstraints, brand, uuid.Nil, "brand", err)
	}
	return brand, nil
}

func (s *setupService) staff(ctx context.Context, tx *gorm.DB, req *SetupRequest, owner *model.Owner, role *model.Role, brand *model.Brand) (*model.Staff, error) {
	staffRepo := repository.NewStaffRepo(tx)
	staff, err := staffRepo.FindByEmail(ctx, owner.Email)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		staff = &model.Staff{
			Name:    owner.Name,
			Email:   owner.Email,
			Phone:   owner.Phone,
			Status:  model.StatusActive,
			OwnerID: &owner.ID,
			RoleID:  role.ID,
		}
		if err := staff.SetPassword(req.Staff.Password); err != nil {
			return nil, apperror.Internal(err)
		}
		if err := staff.SetPin(req.Staff.Pin); err != nil {
			return nil, apperror.Internal(err)
		}
		staff.Stamp(actorName(nil), true)
		scope := repository.StaffScope{
			Permissions: role.DefaultPermissions,
			BrandIDs:    []uuid.UUID{},
			OutletIDs:   []uuid.UUID{},
		}
		if err := staffRepo.Create(ctx, staff, scope); err != nil {
			return nil, staffStorageError(err)
		}
	case err != nil:
		return nil, apperror.Internal(err)
	}

	if err := staffRepo.GrantBrand(tx.WithContext(ctx), brand.ID, staff.ID); err != nil {
		return nil, apperror.Internal(err)
	}
	identity, err := staffRepo.FindIdentity(ctx, staff.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return identity, nil
}
