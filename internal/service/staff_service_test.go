package service_test

import (
	"context"
	"testing"

	"go-pos-admin/internal/apperror"
	"go-pos-admin/internal/model"
	"go-pos-admin/internal/repository"
	"go-pos-admin/internal/service"
	"go-pos-admin/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newStaffService(t *testing.T, db *gorm.DB) service.StaffService {
	t.Helper()
	permRepo := repository.NewPermissionRepo(db)
	catalog, err := service.LoadCatalog(context.Background(), permRepo)
	require.NoError(t, err)
	return service.NewStaffService(db, repository.NewStaffRepo(db), repository.NewRoleRepo(db), permRepo, catalog, nil)
}

func roleID(t *testing.T, db *gorm.DB, name string) uint {
	t.Helper()
	role, err := repository.NewRoleRepo(db).FindByName(context.Background(), name)
	require.NoError(t, err)
	return role.ID
}

func ptr[T any](v T) *T { return &v }

func TestStaffService_CreateDefaultsToRolePermissions(t *testing.T) {
	e := newEnv(t)
	svc := newStaffService(t, e.db)

	resp, err := svc.Create(context.Background(), e.admin, &service.CreateStaffRequest{
		Name:        "Cashier One",
		Email:       "cashier@sector17.test",
		Password:    "secret-pass",
		PosLoginPin: "1234",
		RoleID:      roleID(t, e.db, model.RoleCashier),
		Brands:      []uuid.UUID{e.brand.ID},
		Outlets:     []uuid.UUID{e.outlet.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusActive, resp.Status)
	assert.True(t, resp.HasPin)
	assert.Contains(t, resp.Permissions, model.PermOrdersView)
	assert.Equal(t, []uuid.UUID{e.brand.ID}, resp.Brands)
	assert.Equal(t, []uuid.UUID{e.outlet.ID}, resp.Outlets)
	assert.Equal(t, &e.owner.ID, resp.OwnerID)

	full, err := repository.NewStaffRepo(e.db).FindByEmail(context.Background(), "cashier@sector17.test")
	require.NoError(t, err)
	assert.True(t, full.CheckPassword("secret-pass"))
	assert.True(t, full.CheckPin("1234"))
}

func TestStaffService_CreateRejects(t *testing.T) {
	e := newEnv(t)
	svc := newStaffService(t, e.db)
	foreign := testutil.CreateBrand(t, e.db, nil, "foreign")

	base := func() *service.CreateStaffRequest {
		return &service.CreateStaffRequest{
			Name:     "New Staff",
			Email:    "new@sector17.test",
			Password: "secret-pass",
			RoleID:   roleID(t, e.db, model.RoleStaff),
			Brands:   []uuid.UUID{e.brand.ID},
		}
	}

	tests := []struct {
		name   string
		mutate func(r *service.CreateStaffRequest)
		want   error
		field  string
	}{
		{"duplicate email", func(r *service.CreateStaffRequest) { r.Email = e.admin.Email }, apperror.ErrConflict, "email"},
		{"unknown permission", func(r *service.CreateStaffRequest) { r.Permissions = []string{"sales_create"} }, apperror.ErrValidation, "permissions"},
		{"unknown role", func(r *service.CreateStaffRequest) { r.RoleID = 9999 }, apperror.ErrValidation, "role_id"},
		{"short password", func(r *service.CreateStaffRequest) { r.Password = "123" }, apperror.ErrValidation, "password"},
		{"brand outside scope", func(r *service.CreateStaffRequest) { r.Brands = []uuid.UUID{foreign.ID} }, apperror.ErrForbidden, ""},
		{"outlet without its brand", func(r *service.CreateStaffRequest) {
			r.Brands = []uuid.UUID{}
			r.Outlets = []uuid.UUID{e.outlet.ID}
		}, apperror.ErrValidation, "outlets"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base()
			tt.mutate(req)
			_, err := svc.Create(context.Background(), e.admin, req)
			require.ErrorIs(t, err, tt.want)
			if tt.field != "" {
				assert.Contains(t, apperror.From(err).Fields, tt.field)
			}
		})
	}
}

func TestStaffService_OnlySuperStaffAssignSuperRole(t *testing.T) {
	e := newEnv(t)
	svc := newStaffService(t, e.db)
	manager := e.staff(t, testutil.StaffOpts{
		Role:        model.RoleManager,
		Permissions: []string{model.PermStaffManage},
		Brands:      []*model.Brand{e.brand},
		Outlets:     []*model.Outlet{e.outlet},
	})

	_, err := svc.Create(context.Background(), manager, &service.CreateStaffRequest{
		Name:     "Sneaky Admin",
		Email:    "sneaky@sector17.test",
		Password: "secret-pass",
		RoleID:   roleID(t, e.db, model.RoleAdmin),
	})
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestStaffService_AdminSelfEditKeepsRoleAndScope(t *testing.T) {
	e := newEnv(t)
	svc := newStaffService(t, e.db)
	other := testutil.CreateBrand(t, e.db, e.owner, "annex")

	resp, err := svc.Update(context.Background(), e.admin, e.admin.ID, &service.UpdateStaffRequest{
		Name:        ptr("New Name"),
		RoleID:      ptr(roleID(t, e.db, model.RoleCashier)),
		Permissions: []string{model.PermOrdersView},
		Brands:      []uuid.UUID{other.ID},
		Outlets:     []uuid.UUID{},
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", resp.Name)
	assert.Equal(t, e.admin.RoleID, resp.RoleID)
	assert.ElementsMatch(t, e.admin.PermissionKeys(), resp.Permissions)
	assert.Equal(t, []uuid.UUID{e.brand.ID}, resp.Brands)
	assert.Equal(t, []uuid.UUID{e.outlet.ID}, resp.Outlets)
}

func TestStaffService_SelfEditWithoutStaffManageIsProfileOnly(t *testing.T) {
	e := newEnv(t)
	svc := newStaffService(t, e.db)
	cashier := e.staff(t, testutil.StaffOpts{
		Role:    model.RoleCashier,
		Brands:  []*model.Brand{e.brand},
		Outlets: []*model.Outlet{e.outlet},
	})

	resp, err := svc.Update(context.Background(), cashier, cashier.ID, &service.UpdateStaffRequest{
		Phone:       ptr("999"),
		Permissions: model.AllPermissionKeys(),
	})
	require.NoError(t, err)
	assert.Equal(t, "999", resp.Phone)
	assert.ElementsMatch(t, cashier.PermissionKeys(), resp.Permissions)

	_, err = svc.Update(context.Background(), cashier, e.admin.ID, &service.UpdateStaffRequest{Name: ptr("Hacked")})
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestStaffService_UpdateOtherStaff(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := newStaffService(t, e.db)
	target := e.staff(t, testutil.StaffOpts{Role: model.RoleStaff, Brands: []*model.Brand{e.brand}})

	resp, err := svc.Update(ctx, e.admin, target.ID, &service.UpdateStaffRequest{
		Status:      ptr(model.StatusInactive),
		Password:    ptr("another-pass"),
		Permissions: []string{model.PermMenuManage, model.PermCategoryManage},
		Outlets:     []uuid.UUID{e.outlet.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusInactive, resp.Status)
	assert.ElementsMatch(t, []string{model.PermCategoryManage, model.PermMenuManage}, resp.Permissions)
	assert.Equal(t, []uuid.UUID{e.brand.ID}, resp.Brands)
	assert.Equal(t, []uuid.UUID{e.outlet.ID}, resp.Outlets)

	full, err := repository.NewStaffRepo(e.db).FindByID(ctx, target.ID)
	require.NoError(t, err)
	assert.True(t, full.CheckPassword("another-pass"))
	assert.True(t, full.CheckPin(testutil.TestPin))

	_, err = svc.Update(ctx, e.admin, target.ID, &service.UpdateStaffRequest{Email: ptr(e.admin.Email)})
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestStaffService_StaffOfOtherBrandsIsHidden(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := newStaffService(t, e.db)
	foreign := testutil.CreateBrand(t, e.db, nil, "foreign")
	stranger := testutil.CreateStaff(t, e.db, testutil.StaffOpts{Brands: []*model.Brand{foreign}})
	colleague := e.staff(t, testutil.StaffOpts{Brands: []*model.Brand{e.brand}, Outlets: []*model.Outlet{e.outlet}})

	_, err := svc.Get(ctx, e.admin, stranger.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	_, err = svc.Update(ctx, e.admin, stranger.ID, &service.UpdateStaffRequest{Name: ptr("x")})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, e.admin, stranger.ID), apperror.ErrNotFound)

	list, err := svc.List(ctx, e.admin, service.ListQuery{})
	require.NoError(t, err)
	var ids []uuid.UUID
	for _, s := range list {
		ids = append(ids, s.ID)
	}
	assert.ElementsMatch(t, []uuid.UUID{e.admin.ID, colleague.ID}, ids)

	byOutlet, err := svc.List(ctx, e.admin, service.ListQuery{OutletID: &e.outlet.ID})
	require.NoError(t, err)
	assert.Len(t, byOutlet, 2)
}

func TestStaffService_ReplacePermissionsAndDelete(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := newStaffService(t, e.db)
	target := e.staff(t, testutil.StaffOpts{Brands: []*model.Brand{e.brand}})

	resp, err := svc.ReplacePermissions(ctx, e.admin, target.ID, []string{model.PermTaxManage})
	require.NoError(t, err)
	assert.Equal(t, []string{model.PermTaxManage}, resp.Permissions)

	_, err = svc.ReplacePermissions(ctx, e.admin, e.admin.ID, nil)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	assert.ErrorIs(t, svc.Delete(ctx, e.admin, e.admin.ID), apperror.ErrForbidden)
	require.NoError(t, svc.Delete(ctx, e.admin, target.ID))
	_, err = svc.Get(ctx, e.admin, target.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestStaffService_ManagerCannotReachAdministrators(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := newStaffService(t, e.db)
	manager := e.staff(t, testutil.StaffOpts{
		Role:    model.RoleManager,
		Brands:  []*model.Brand{e.brand},
		Outlets: []*model.Outlet{e.outlet},
	})

	_, err := svc.Update(ctx, manager, e.admin.ID, &service.UpdateStaffRequest{
		Password: ptr("taken-over"),
		Status:   ptr(model.StatusBanned),
	})
	assert.ErrorIs(t, err, apperror.ErrForbidden)
	_, err = svc.ReplacePermissions(ctx, manager, e.admin.ID, []string{model.PermOrdersView})
	assert.ErrorIs(t, err, apperror.ErrForbidden)
	assert.ErrorIs(t, svc.Delete(ctx, manager, e.admin.ID), apperror.ErrForbidden)

	admin, err := repository.NewStaffRepo(e.db).FindByID(ctx, e.admin.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusActive, admin.Status)
	assert.True(t, admin.CheckPassword(testutil.TestPassword))
}

func TestStaffService_ManagerSelfEditKeepsPermissions(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := newStaffService(t, e.db)
	manager := e.staff(t, testutil.StaffOpts{
		Role:    model.RoleManager,
		Brands:  []*model.Brand{e.brand},
		Outlets: []*model.Outlet{e.outlet},
	})

	resp, err := svc.Update(ctx, manager, manager.ID, &service.UpdateStaffRequest{
		Name:        ptr("Still Manager"),
		RoleID:      ptr(roleID(t, e.db, model.RoleInventoryManager)),
		Permissions: []string{model.PermBrandManage, model.PermTaxManage, model.PermOrdersDelete},
	})
	require.NoError(t, err)
	assert.Equal(t, "Still Manager", resp.Name)
	assert.Equal(t, manager.RoleID, resp.RoleID)
	assert.ElementsMatch(t, manager.PermissionKeys(), resp.Permissions)

	colleague := e.staff(t, testutil.StaffOpts{Brands: []*model.Brand{e.brand}})
	_, err = svc.ReplacePermissions(ctx, manager, colleague.ID, []string{model.PermBrandManage})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	granted, err := svc.ReplacePermissions(ctx, manager, colleague.ID, []string{model.PermMenuManage})
	require.NoError(t, err)
	assert.Equal(t, []string{model.PermMenuManage}, granted.Permissions)
}
