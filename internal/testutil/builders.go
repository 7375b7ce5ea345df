package testutil

import (
	"context"
	"testing"

	"go-pos-admin/internal/model"
	"go-pos-admin/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const TestPassword = "secret-pass"
const TestPin = "4321"

func CreateOwner(t *testing.T, db *gorm.DB, email string) *model.Owner {
	t.Helper()
	owner := &model.Owner{Name: "Owner " + email, Email: email, Status: model.StatusActive}
	require.NoError(t, owner.SetPassword(TestPassword))
	require.NoError(t, db.Create(owner).Error)
	return owner
}

// CreateBrand derives every unique brand field from shortName.
func CreateBrand(t *testing.T, db *gorm.DB, owner *model.Owner, shortName string) *model.Brand {
	t.Helper()
	brand := &model.Brand{
		FullName:      shortName + " Restaurants",
		ShortName:     shortName,
		Email:         shortName + "@brand.test",
		Phone:         "p-" + shortName,
		GstNo:         "gst-" + shortName,
		LicenseNo:     "lic-" + shortName,
		FoodLicense:   "food-" + shortName,
		City:          "Chandigarh",
		State:         "CH",
		Country:       "IN",
		PostalCode:    "160017",
		StreetAddress: "Sector 17",
		Status:        model.StatusActive,
	}
	if owner != nil {
		brand.OwnerID = &owner.ID
	}
	require.NoError(t, db.Create(brand).Error)
	return brand
}

func CreateOutlet(t *testing.T, db *gorm.DB, brand *model.Brand, name string) *model.Outlet {
	t.Helper()
	outlet := &model.Outlet{
		BrandID:     brand.ID,
		Name:        name,
		Code:        "code-" + name,
		Email:       name + "@outlet.test",
		Phone:       "p-" + name,
		Timezone:    "Asia/Kolkata",
		OpeningTime: "09:00",
		ClosingTime: "23:00",
		Street:      "Main",
		City:        "Chandigarh",
		State:       "CH",
		Country:     "IN",
		Status:      model.StatusActive,
	}
	require.NoError(t, db.Omit("Brand").Create(outlet).Error)
	return outlet
}

type StaffOpts struct {
	Email       string
	Role        string
	Permissions []string // nil means the role defaults
	Owner       *model.Owner
	Brands      []*model.Brand
	Outlets     []*model.Outlet
	Status      string
	NoPin       bool
}

// CreateStaff persists a staff member and returns its authenticated projection.
func CreateStaff(t *testing.T, db *gorm.DB, opts StaffOpts) *model.Staff {
	t.Helper()
	ctx := context.Background()

	if opts.Role == "" {
		opts.Role = model.RoleStaff
	}
	if opts.Email == "" {
		opts.Email = uuid.NewString() + "@staff.test"
	}
	if opts.Status == "" {
		opts.Status = model.StatusActive
	}

	role, err := repository.NewRoleRepo(db).FindByName(ctx, opts.Role)
	require.NoError(t, err)

	perms := role.DefaultPermissions
	if opts.Permissions != nil {
		perms, err = repository.NewPermissionRepo(db).FindByKeys(ctx, opts.Permissions)
		require.NoError(t, err)
		require.Len(t, perms, len(opts.Permissions), "unknown permission key in fixture")
	}

	staff := &model.Staff{
		Name:   "Staff " + opts.Email,
		Email:  opts.Email,
		Phone:  "555",
		Status: opts.Status,
		RoleID: role.ID,
	}
	if opts.Owner != nil {
		staff.OwnerID = &opts.Owner.ID
	}
	require.NoError(t, staff.SetPassword(TestPassword))
	if !opts.NoPin {
		require.NoError(t, staff.SetPin(TestPin))
	}

	scope := repository.StaffScope{Permissions: perms, BrandIDs: []uuid.UUID{}, OutletIDs: []uuid.UUID{}}
	for _, b := range opts.Brands {
		scope.BrandIDs = append(scope.BrandIDs, b.ID)
	}
	for _, o := range opts.Outlets {
		scope.OutletIDs = append(scope.OutletIDs, o.ID)
	}

	repo := repository.NewStaffRepo(db)
	require.NoError(t, repo.Create(ctx, staff, scope))

	identity, err := repo.FindIdentity(ctx, staff.ID)
	require.NoError(t, err)
	return identity
}
