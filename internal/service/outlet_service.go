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

type OutletService interface {
	Create(ctx context.Context, caller *model.Staff, payload []byte) (*model.Outlet, error)
	Update(ctx context.Context, caller *model.Staff, id uuid.UUID, payload []byte) (*model.Outlet, error)
	Delete(ctx context.Context, caller *model.Staff, id uuid.UUID) error
	List(ctx context.Context, caller *model.Staff, q ListQuery) ([]*model.Outlet, error)
	Get(ctx context.Context, caller *model.Staff, id uuid.UUID) (*model.Outlet, error)
}

type outletService struct {
	db        *gorm.DB
	store     *repository.Store[*model.Outlet]
	brands    *repository.Store[*model.Brand]
	staffRepo repository.StaffRepository
	pub       Publisher
	log       zerolog.Logger
}

func NewOutletService(db *gorm.DB, staffRepo repository.StaffRepository, pub Publisher, log zerolog.Logger) OutletService {
	if pub == nil {
		pub = NopPublisher{}
	}
	return &outletService{
		db:        db,
		store:     repository.NewStore(db, func() *model.Outlet { return &model.Outlet{} }, "Brand"),
		brands:    repository.NewStore(db, func() *model.Brand { return &model.Brand{} }),
		staffRepo: staffRepo,
		pub:       pub,
		log:       log,
	}
}

// Create stores the outlet under an in-scope brand and grants it to the caller
// and to every super-role staff of the brand's owner.
func (s *outletService) Create(ctx context.Context, caller *model.Staff, payload []byte) (*model.Outlet, error) {
	if err := Authorize(caller, model.PermOutletManage); err != nil {
		return nil, err
	}
	outlet := &model.Outlet{}
	if err := decodeInto(payload, outlet); err != nil {
		return nil, err
	}
	outlet.Brand = nil
	if err := prepare(outlet); err != nil {
		return nil, err
	}
	if !ScopeOf(caller).HasBrand(outlet.BrandID) {
		return nil, apperror.Forbidden("brand is outside your scope")
	}
	brand, err := s.brands.FindByID(ctx, outlet.BrandID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Validation(map[string]string{"brand_id": "unknown"})
		}
		return nil, apperror.Internal(err)
	}
	if err := checkUnique(ctx, s.db, repository.OutletConstraints, outlet, uuid.Nil, nil); err != nil {
		return nil, err
	}

	ids, err := s.staffRepo.SuperStaffIDs(ctx, brand.OwnerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	ids = append(ids, caller.ID)

	outlet.Stamp(actorName(caller), true)
	var insertErr error
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if insertErr = s.store.With(tx).Insert(ctx, outlet); insertErr != nil {
			return insertErr
		}
		return s.staffRepo.GrantOutlet(tx, outlet.ID, ids...)
	})
	if insertErr != nil {
		return nil, storageError(ctx, s.db, repository.OutletConstraints, outlet, uuid.Nil, "outlet", insertErr)
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	s.log.Info().Str("outlet_id", outlet.ID.String()).Int("staff", len(ids)).Msg("outlet granted")

	s.pub.Publish(changeEvent("outlet", "created", outlet, caller))
	return s.reload(ctx, outlet.ID)
}

// List returns the granted outlets of granted brands.
func (s *outletService) List(ctx context.Context, caller *model.Staff, q ListQuery) ([]*model.Outlet, error) {
	if err := Authorize(caller, model.PermOutletManage); err != nil {
		return nil, err
	}
	scope := ScopeOf(caller)
	if scope.Empty() {
		return []*model.Outlet{}, nil
	}
	filters := []repository.Filter{
		repository.Where("id IN ? AND brand_id IN ?", scope.OutletIDs(), scope.BrandIDs()),
	}
	if q.BrandID != nil {
		filters = append(filters, repository.Where("brand_id = ?", *q.BrandID))
	}
	if q.OutletID != nil {
		filters = append(filters, repository.ByID(*q.OutletID))
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

func (s *outletService) load(ctx context.Context, caller *model.Staff, id uuid.UUID) (*model.Outlet, error) {
	outlet, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("outlet")
		}
		return nil, apperror.Internal(err)
	}
	if !ScopeOf(caller).Admits(outlet.Tenant(), false) {
		return nil, apperror.NotFound("outlet")
	}
	return outlet, nil
}

func (s *outletService) Get(ctx context.Context, caller *model.Staff, id uuid.UUID) (*model.Outlet, error) {
	if err := Authorize(caller, model.PermOutletManage); err != nil {
		return nil, err
	}
	return s.load(ctx, caller, id)
}

// Update merges payload onto the outlet. An outlet never moves to another brand.
func (s *outletService) Update(ctx context.Context, caller *model.Staff, id uuid.UUID, payload []byte) (*model.Outlet, error) {
	if err := Authorize(caller, model.PermOutletManage); err != nil {
		return nil, err
	}
	outlet, err := s.load(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	before, err := naturalKeys(s.db, repository.OutletConstraints, outlet)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	brandID := outlet.BrandID
	if err := decodeInto(payload, outlet); err != nil {
		return nil, err
	}
	outlet.BrandID = brandID
	outlet.Brand = nil
	if err := prepare(outlet); err != nil {
		return nil, err
	}
	if err := checkUnique(ctx, s.db, repository.OutletConstraints, outlet, id, before); err != nil {
		return nil, err
	}

	outlet.Stamp(actorName(caller), false)
	if err := s.store.UpdateByID(ctx, id, outlet); err != nil {
		return nil, storageError(ctx, s.db, repository.OutletConstraints, outlet, id, "outlet", err)
	}
	s.pub.Publish(changeEvent("outlet", "updated", outlet, caller))
	return s.reload(ctx, id)
}

// Delete removes an outlet no scoped record references, together with its grants.
func (s *outletService) Delete(ctx context.Context, caller *model.Staff, id uuid.UUID) error {
	if err := Authorize(caller, model.PermOutletManage); err != nil {
		return err
	}
	outlet, err := s.load(ctx, caller, id)
	if err != nil {
		return err
	}
	if err := checkDependents(ctx, s.db, "outlet", id, outletDependents); err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.staffRepo.RevokeOutlet(tx, id); err != nil {
			return err
		}
		res := tx.Delete(&model.Outlet{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return storageError(ctx, s.db, repository.OutletConstraints, outlet, id, "outlet", err)
	}
	s.pub.Publish(changeEvent("outlet", "deleted", outlet, caller))
	return nil
}

func (s *outletService) reload(ctx context.Context, id uuid.UUID) (*model.Outlet, error) {
	outlet, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return outlet, nil
}
