package service

import (
	"context"
	"errors"

	"go-pos-admin/internal/apperror"
	"go-pos-admin/internal/model"
	"go-pos-admin/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type BrandService interface {
	Create(ctx context.Context, caller *model.Staff, payload []byte) (*model.Brand, error)
	Update(ctx context.Context, caller *model.Staff, id uuid.UUID, payload []byte) (*model.Brand, error)
	Delete(ctx context.Context, caller *model.Staff, id uuid.UUID) error
	List(ctx context.Context, caller *model.Staff, q ListQuery) ([]*model.Brand, error)
	Get(ctx context.Context, caller *model.Staff, id uuid.UUID) (*model.Brand, error)
}

type brandService struct {
	db        *gorm.DB
	store     *repository.Store[*model.Brand]
	staffRepo repository.StaffRepository
	pub       Publisher
	log       zerolog.Logger
}

func NewBrandService(db *gorm.DB, staffRepo repository.StaffRepository, pub Publisher, log zerolog.Logger) BrandService {
	if pub == nil {
		pub = NopPublisher{}
	}
	return &brandService{
		db:        db,
		store:     repository.NewStore(db, func() *model.Brand { return &model.Brand{} }),
		staffRepo: staffRepo,
		pub:       pub,
		log:       log,
	}
}

// Create stores the brand under the caller's owner and grants it to the
// caller and to every super-role staff of that owner.
func (s *brandService) Create(ctx context.Context, caller *model.Staff, payload []byte) (*model.Brand, error) {
	if err := Authorize(caller, model.PermBrandManage); err != nil {
		return nil, err
	}
	brand := &model.Brand{}
	if err := decodeInto(payload, brand); err != nil {
		return nil, err
	}
	brand.OwnerID = caller.OwnerID
	if err := prepare(brand); err != nil {
		return nil, err
	}
	if err := checkUnique(ctx, s.db, repository.BrandConstraints, brand, uuid.Nil, nil); err != nil {
		return nil, err
	}

	ids, err := s.staffRepo.SuperStaffIDs(ctx, brand.OwnerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	ids = append(ids, caller.ID)

	// The brand and its grants commit together.
	brand.Stamp(actorName(caller), true)
	var insertErr error
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if insertErr = s.store.With(tx).Insert(ctx, brand); insertErr != nil {
			return insertErr
		}
		return s.staffRepo.GrantBrand(tx, brand.ID, ids...)
	})
	if insertErr != nil {
		return nil, storageError(ctx, s.db, repository.BrandConstraints, brand, uuid.Nil, "brand", insertErr)
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	s.log.Info().Str("brand_id", brand.ID.String()).Int("staff", len(ids)).Msg("brand granted")

	s.pub.Publish(changeEvent("brand", "created", brand, caller))
	return brand, nil
}

// List returns the brands the caller is granted.
func (s *brandService) List(ctx context.Context, caller *model.Staff, q ListQuery) ([]*model.Brand, error) {
	if err := Authorize(caller, model.PermBrandManage); err != nil {
		return nil, err
	}
	ids := ScopeOf(caller).BrandIDs()
	if len(ids) == 0 {
		return []*model.Brand{}, nil
	}
	filters := []repository.Filter{repository.Where("id IN ?", ids)}
	if q.BrandID != nil {
		filters = append(filters, repository.ByID(*q.BrandID))
	}
	if q.Status != "" {
		filters = append(filters, repository.Where("status = ?", q.Status))
	}
	rows, err := s.store.Find(ctx, filters...)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return rows, nil
}

func (s *brandService) load(ctx context.Context, caller *model.Staff, id uuid.UUID) (*model.Brand, error) {
	if !ScopeOf(caller).HasBrand(id) {
		return nil, apperror.NotFound("brand")
	}
	brand, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("brand")
		}
		return nil, apperror.Internal(err)
	}
	return brand, nil
}

func (s *brandService) Get(ctx context.Context, caller *model.Staff, id uuid.UUID) (*model.Brand, error) {
	if err := Authorize(caller, model.PermBrandManage); err != nil {
		return nil, err
	}
	return s.load(ctx, caller, id)
}

func (s *brandService) Update(ctx context.Context, caller *model.Staff, id uuid.UUID, payload []byte) (*model.Brand, error) {
	if err := Authorize(caller, model.PermBrandManage); err != nil {
		return nil, err
	}
	brand, err := s.load(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	before, err := naturalKeys(s.db, repository.BrandConstraints, brand)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	owner := brand.OwnerID
	if err := decodeInto(payload, brand); err != nil {
		return nil, err
	}
	brand.OwnerID = owner
	if err := prepare(brand); err != nil {
		return nil, err
	}
	if err := checkUnique(ctx, s.db, repository.BrandConstraints, brand, id, before); err != nil {
		return nil, err
	}

	brand.Stamp(actorName(caller), false)
	if err := s.store.UpdateByID(ctx, id, brand); err != nil {
		return nil, storageError(ctx, s.db, repository.BrandConstraints, brand, id, "brand", err)
	}
	s.pub.Publish(changeEvent("brand", "updated", brand, caller))
	fresh, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return fresh, nil
}

// Delete removes a brand without outlets together with its grants.
func (s *brandService) Delete(ctx context.Context, caller *model.Staff, id uuid.UUID) error {
	if err := Authorize(caller, model.PermBrandManage); err != nil {
		return err
	}
	brand, err := s.load(ctx, caller, id)
	if err != nil {
		return err
	}
	deps := []Dependent{{Label: "outlets", Model: &model.Outlet{}, Column: "brand_id"}}
	if err := checkDependents(ctx, s.db, "brand", id, deps); err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.staffRepo.RevokeBrand(tx, id); err != nil {
			return err
		}
		res := tx.Delete(&model.Brand{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return storageError(ctx, s.db, repository.BrandConstraints, brand, id, "brand", err)
	}
	s.pub.Publish(changeEvent("brand", "deleted", brand, caller))
	return nil
}
