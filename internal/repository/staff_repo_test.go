package repository_test

import (
	"context"
	"sync"
	"testing"

	"go-pos-admin/internal/model"
	"go-pos-admin/internal/repository"
	"go-pos-admin/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaffRepo_FindIdentityOmitsHashes(t *testing.T) {
	db := testutil.NewTestDB(t)
	brand := testutil.CreateBrand(t, db, nil, "sector17")
	staff := testutil.CreateStaff(t, db, testutil.StaffOpts{Role: model.RoleCashier, Brands: []*model.Brand{brand}})

	assert.Empty(t, staff.Password)
	assert.Empty(t, staff.PosPin)
	assert.True(t, staff.ToResponse().HasPin)
	require.NotNil(t, staff.Role)
	assert.Equal(t, model.RoleCashier, staff.Role.Name)
	assert.Contains(t, staff.PermissionKeys(), model.PermOrdersView)
	assert.Equal(t, []uuid.UUID{brand.ID}, staff.BrandIDs())

	full, err := repository.NewStaffRepo(db).FindByEmail(context.Background(), staff.Email)
	require.NoError(t, err)
	assert.True(t, full.CheckPassword(testutil.TestPassword))
	assert.True(t, full.CheckPin(testutil.TestPin))
}

func TestStaffRepo_GrantBrandIsAddToSet(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := repository.NewStaffRepo(db)
	existing := testutil.CreateBrand(t, db, nil, "sector17")
	staff := testutil.CreateStaff(t, db, testutil.StaffOpts{Brands: []*model.Brand{existing}})
	brand := testutil.CreateBrand(t, db, nil, "sector22")

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.GrantBrand(db.WithContext(ctx), brand.ID, staff.ID, staff.ID))
		}()
	}
	wg.Wait()

	got, err := repo.FindIdentity(ctx, staff.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{existing.ID, brand.ID}, got.BrandIDs())
}

func TestStaffRepo_SuperStaffIDs(t *testing.T) {
	db := testutil.NewTestDB(t)
	owner := testutil.CreateOwner(t, db, "owner@test")
	otherOwner := testutil.CreateOwner(t, db, "other@test")
	admin := testutil.CreateStaff(t, db, testutil.StaffOpts{Role: model.RoleAdmin, Owner: owner})
	testutil.CreateStaff(t, db, testutil.StaffOpts{Role: model.RoleManager, Owner: owner})
	testutil.CreateStaff(t, db, testutil.StaffOpts{Role: model.RoleAdmin, Owner: otherOwner})

	ids, err := repository.NewStaffRepo(db).SuperStaffIDs(context.Background(), &owner.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{admin.ID}, ids)
}

func TestStaffRepo_UpdateReplacesScope(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := repository.NewStaffRepo(db)
	b1 := testutil.CreateBrand(t, db, nil, "b1")
	b2 := testutil.CreateBrand(t, db, nil, "b2")
	o1 := testutil.CreateOutlet(t, db, b1, "o1")
	staff := testutil.CreateStaff(t, db, testutil.StaffOpts{Brands: []*model.Brand{b1}, Outlets: []*model.Outlet{o1}})

	full, err := repo.FindByID(ctx, staff.ID)
	require.NoError(t, err)
	full.Name = "Renamed"
	require.NoError(t, repo.Update(ctx, full, repository.StaffScope{BrandIDs: []uuid.UUID{b2.ID}}))

	got, err := repo.FindIdentity(ctx, staff.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, []uuid.UUID{b2.ID}, got.BrandIDs())
	// outlets untouched when not supplied
	assert.Equal(t, []uuid.UUID{o1.ID}, got.OutletIDs())
}

func TestStaffRepo_DeleteClearsGrants(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := repository.NewStaffRepo(db)
	brand := testutil.CreateBrand(t, db, nil, "b1")
	staff := testutil.CreateStaff(t, db, testutil.StaffOpts{Brands: []*model.Brand{brand}})

	require.NoError(t, repo.Delete(ctx, staff.ID))

	var n int64
	require.NoError(t, db.Model(&model.StaffBrand{}).Where("staff_id = ?", staff.ID).Count(&n).Error)
	assert.Zero(t, n)
}

func TestSeedDefaults_IsIdempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	require.NoError(t, repository.NewPermissionRepo(db).SeedDefaults(ctx))
	require.NoError(t, repository.NewRoleRepo(db).SeedDefaults(ctx))

	perms, err := repository.NewPermissionRepo(db).FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, perms, len(model.AllPermissionKeys()))

	roles, err := repository.NewRoleRepo(db).FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, len(model.DefaultRoles))

	admin, err := repository.NewRoleRepo(db).FindByName(ctx, model.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, admin.IsSuperRole)
	assert.Len(t, admin.DefaultPermissions, len(model.AllPermissionKeys()))
}
