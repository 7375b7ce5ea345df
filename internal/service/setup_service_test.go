package service_test

import (
	"context"
	"testing"

	"go-pos-admin/internal/apperror"
	"go-pos-admin/internal/model"
	"go-pos-admin/internal/service"
	"go-pos-admin/internal/testutil"
	"go-pos-admin/pkg/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var setupSecret = config.SetupConfig{Email: "root@pos.test", Password: "root-pass", PIN: "0000"}

func setupRequest(t *testing.T) *service.SetupRequest {
	return &service.SetupRequest{
		SuperEmail:    setupSecret.Email,
		SuperPassword: setupSecret.Password,
		SuperPin:      setupSecret.PIN,
		Owner:         service.SetupOwner{Name: "Harpreet", Email: "owner@sector17.test", Phone: "98765"},
		Brand:         body(t, brandPayload("sector17")),
		Staff:         service.SetupStaff{Password: "first-pass", Pin: "2468"},
	}
}

func TestSetupService_IsIdempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	svc := service.NewSetupService(db, setupSecret, zerolog.Nop())

	first, err := svc.Run(ctx, setupRequest(t))
	require.NoError(t, err)
	assert.Equal(t, "owner@sector17.test", first.Staff.Email)
	assert.Equal(t, model.RoleAdmin, first.Staff.Role.Name)
	assert.ElementsMatch(t, model.AllPermissionKeys(), first.Staff.Permissions)
	assert.Equal(t, first.Brand.ID, first.Staff.Brands[0])
	assert.Equal(t, &first.Owner.ID, first.Brand.OwnerID)

	second, err := svc.Run(ctx, setupRequest(t))
	require.NoError(t, err)
	assert.Equal(t, first.Owner.ID, second.Owner.ID)
	assert.Equal(t, first.Brand.ID, second.Brand.ID)
	assert.Equal(t, first.Staff.ID, second.Staff.ID)
	assert.Len(t, second.Staff.Brands, 1)

	for _, m := range []any{&model.Owner{}, &model.Brand{}, &model.Staff{}} {
		var n int64
		require.NoError(t, db.Model(m).Count(&n).Error)
		assert.EqualValues(t, 1, n)
	}

	admin := identity(t, db, first.Staff.ID)
	assert.True(t, admin.IsSuper())
}

func TestSetupService_RejectsWrongSecret(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := service.NewSetupService(db, setupSecret, zerolog.Nop())

	req := setupRequest(t)
	req.SuperPin = "9999"
	_, err := svc.Run(context.Background(), req)
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)

	disabled := service.NewSetupService(db, config.SetupConfig{}, zerolog.Nop())
	_, err = disabled.Run(context.Background(), setupRequest(t))
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	var n int64
	require.NoError(t, db.Model(&model.Owner{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestSetupService_InvalidBrand(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := service.NewSetupService(db, setupSecret, zerolog.Nop())

	req := setupRequest(t)
	brand := brandPayload("sector17")
	delete(brand, "gst_no")
	req.Brand = body(t, brand)

	_, err := svc.Run(context.Background(), req)
	require.ErrorIs(t, err, apperror.ErrValidation)
	assert.Contains(t, apperror.From(err).Fields, "gst_no")

	var n int64
	require.NoError(t, db.Model(&model.Owner{}).Count(&n).Error)
	assert.Zero(t, n, "owner creation rolls back with the failed brand")
}
