package service_test

import (
	"context"
	"errors"
	"testing"

	"go-pos-admin/internal/apperror"
	"go-pos-admin/internal/model"
	"go-pos-admin/internal/repository"
	"go-pos-admin/internal/service"
	"go-pos-admin/internal/testutil"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func brandPayload(short string) map[string]any {
	return map[string]any{
		"full_name":      short + " Hospitality",
		"short_name":     short,
		"email":          short + "@brands.test",
		"phone":          "ph-" + short,
		"gst_no":         "GST-" + short,
		"license_no":     "LIC-" + short,
		"food_license":   "FL-" + short,
		"city":           "Chandigarh",
		"state":          "CH",
		"country":        "IN",
		"postal_code":    "160017",
		"street_address": "SCO 1",
	}
}

func outletPayload(brandID uuid.UUID, name string) map[string]any {
	return map[string]any{
		"brand_id":     brandID,
		"name":         name,
		"code":         "C-" + name,
		"email":        name + "@outlets.test",
		"phone":        "ph-" + name,
		"timezone":     "Asia/Kolkata",
		"opening_time": "08:00",
		"closing_time": "22:30",
		"street":       "Plaza",
		"city":         "Chandigarh",
		"state":        "CH",
		"country":      "IN",
	}
}

func TestBrandService_CreateGrantsCreatorAndSuperStaff(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	staffRepo := repository.NewStaffRepo(e.db)
	svc := service.NewBrandService(e.db, staffRepo, nil, zerolog.Nop())

	secondAdmin := e.staff(t, testutil.StaffOpts{Role: model.RoleAdmin})
	manager := e.staff(t, testutil.StaffOpts{
		Role:        model.RoleManager,
		Permissions: []string{model.PermBrandManage},
		Brands:      []*model.Brand{e.brand},
	})
	outsider := e.staff(t, testutil.StaffOpts{Role: model.RoleCashier})

	brand, err := svc.Create(ctx, manager, body(t, brandPayload("sector22")))
	require.NoError(t, err)
	assert.Equal(t, &e.owner.ID, brand.OwnerID)

	assert.Contains(t, identity(t, e.db, manager.ID).BrandIDs(), brand.ID)
	assert.Contains(t, identity(t, e.db, e.admin.ID).BrandIDs(), brand.ID)
	assert.Contains(t, identity(t, e.db, secondAdmin.ID).BrandIDs(), brand.ID)
	assert.NotContains(t, identity(t, e.db, outsider.ID).BrandIDs(), brand.ID)

	// Repeating the grant leaves a single membership.
	require.NoError(t, staffRepo.GrantBrand(e.db.WithContext(ctx), brand.ID, e.admin.ID))
	assert.ElementsMatch(t, []uuid.UUID{e.brand.ID, brand.ID}, identity(t, e.db, e.admin.ID).BrandIDs())

	_, err = svc.Create(ctx, manager, body(t, brandPayload("sector22")))
	require.ErrorIs(t, err, apperror.ErrConflict)
	assert.Contains(t, apperror.From(err).Fields, "short_name")
}

func TestBrandService_ScopeAndDelete(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := service.NewBrandService(e.db, repository.NewStaffRepo(e.db), nil, zerolog.Nop())

	brands, err := svc.List(ctx, e.admin, service.ListQuery{})
	require.NoError(t, err)
	require.Len(t, brands, 1)
	assert.Equal(t, e.brand.ID, brands[0].ID)

	foreign := testutil.CreateBrand(t, e.db, nil, "foreign")
	_, err = svc.Get(ctx, e.admin, foreign.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	updated, err := svc.Update(ctx, e.admin, e.brand.ID, body(t, map[string]any{"city": "Mohali", "owner_id": uuid.New()}))
	require.NoError(t, err)
	assert.Equal(t, "Mohali", updated.City)
	assert.Equal(t, &e.owner.ID, updated.OwnerID)

	err = svc.Delete(ctx, e.admin, e.brand.ID)
	require.ErrorIs(t, err, apperror.ErrConflict)
	assert.Contains(t, apperror.From(err).Fields, "outlets")

	created, err := svc.Create(ctx, e.admin, body(t, brandPayload("empty")))
	require.NoError(t, err)
	admin := identity(t, e.db, e.admin.ID)
	require.NoError(t, svc.Delete(ctx, admin, created.ID))
	assert.NotContains(t, identity(t, e.db, e.admin.ID).BrandIDs(), created.ID)
}

func TestOutletService_CreateUnderBrand(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	rec := &recorder{}
	svc := service.NewOutletService(e.db, repository.NewStaffRepo(e.db), rec, zerolog.Nop())
	otherAdmin := e.staff(t, testutil.StaffOpts{Role: model.RoleAdmin, Brands: []*model.Brand{e.brand}})

	payload := outletPayload(e.brand.ID, "Uptown")
	payload["apply_on_all_outlets"] = false
	outlet, err := svc.Create(ctx, e.admin, body(t, payload))
	require.NoError(t, err)
	assert.Equal(t, e.brand.ID, outlet.BrandID)
	require.NotNil(t, outlet.Brand)
	assert.Equal(t, "sector17", outlet.Brand.ShortName)

	assert.Contains(t, identity(t, e.db, e.admin.ID).OutletIDs(), outlet.ID)
	assert.Contains(t, identity(t, e.db, otherAdmin.ID).OutletIDs(), outlet.ID)
	require.Len(t, rec.Events(), 1)
	assert.Equal(t, "outlet", rec.Events()[0].Resource)

	_, err = svc.Create(ctx, e.admin, body(t, outletPayload(e.brand.ID, "Uptown")))
	require.ErrorIs(t, err, apperror.ErrConflict)
	assert.Contains(t, apperror.From(err).Fields, "name")

	foreign := testutil.CreateBrand(t, e.db, nil, "foreign")
	_, err = svc.Create(ctx, e.admin, body(t, outletPayload(foreign.ID, "Elsewhere")))
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	bad := outletPayload(e.brand.ID, "Midtown")
	bad["opening_time"] = "25:00"
	_, err = svc.Create(ctx, e.admin, body(t, bad))
	require.ErrorIs(t, err, apperror.ErrValidation)
	assert.Contains(t, apperror.From(err).Fields, "opening_time")
}

func TestOutletService_DeleteRestrictedByScopedRecords(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := service.NewOutletService(e.db, repository.NewStaffRepo(e.db), nil, zerolog.Nop())
	floors := service.NewResourceService(e.db, service.FloorKind, nil)

	floor, err := floors.Create(ctx, e.admin, body(t, map[string]any{
		"brand_id": e.brand.ID, "outlet_id": e.outlet.ID, "floor_name": "Ground",
	}))
	require.NoError(t, err)

	err = svc.Delete(ctx, e.admin, e.outlet.ID)
	require.ErrorIs(t, err, apperror.ErrConflict)
	assert.Contains(t, apperror.From(err).Fields, "floors")

	require.NoError(t, floors.Delete(ctx, e.admin, floor.ID))
	require.NoError(t, svc.Delete(ctx, e.admin, e.outlet.ID))
	assert.Empty(t, identity(t, e.db, e.admin.ID).OutletIDs())
}

func TestOutletService_UpdateKeepsBrand(t *testing.T) {
	e := newEnv(t)
	svc := service.NewOutletService(e.db, repository.NewStaffRepo(e.db), nil, zerolog.Nop())
	other := testutil.CreateBrand(t, e.db, e.owner, "annex")

	updated, err := svc.Update(context.Background(), e.admin, e.outlet.ID, body(t, map[string]any{
		"brand_id": other.ID, "closing_time": "23:59",
	}))
	require.NoError(t, err)
	assert.Equal(t, e.brand.ID, updated.BrandID)
	assert.Equal(t, "23:59", updated.ClosingTime)
}

// failingGrants is a staff repository whose grants always fail.
type failingGrants struct {
	repository.StaffRepository
}

func (failingGrants) GrantBrand(*gorm.DB, uuid.UUID, ...uuid.UUID) error {
	return errors.New("grant failed")
}

func (failingGrants) GrantOutlet(*gorm.DB, uuid.UUID, ...uuid.UUID) error {
	return errors.New("grant failed")
}

func TestCreate_FailedGrantLeavesNoRecord(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	staffRepo := failingGrants{repository.NewStaffRepo(e.db)}

	brands := service.NewBrandService(e.db, staffRepo, nil, zerolog.Nop())
	_, err := brands.Create(ctx, e.admin, body(t, brandPayload("sector22")))
	require.ErrorIs(t, err, apperror.ErrInternal)

	var n int64
	require.NoError(t, e.db.Model(&model.Brand{}).Where("short_name = ?", "sector22").Count(&n).Error)
	assert.Zero(t, n)

	outlets := service.NewOutletService(e.db, staffRepo, nil, zerolog.Nop())
	_, err = outlets.Create(ctx, e.admin, body(t, outletPayload(e.brand.ID, "Uptown")))
	require.ErrorIs(t, err, apperror.ErrInternal)

	require.NoError(t, e.db.Model(&model.Outlet{}).Where("name = ?", "Uptown").Count(&n).Error)
	assert.Zero(t, n)
}
