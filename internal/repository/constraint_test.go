package repository_test

import (
	"context"
	"testing"

	"go-pos-admin/internal/model"
	"go-pos-admin/internal/repository"
	"go-pos-admin/internal/testutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func taken[T any](t *testing.T, db *gorm.DB, cs []repository.Constraint[T], rec T, exclude uuid.UUID) []string {
	t.Helper()
	var hit []string
	for _, c := range cs {
		ok, err := c.Taken(context.Background(), db, rec, exclude)
		require.NoError(t, err)
		if ok {
			hit = append(hit, c.Name)
		}
	}
	return hit
}

func TestMenuConstraints_FlagGated(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	brand := testutil.CreateBrand(t, db, nil, "sector17")
	a := testutil.CreateOutlet(t, db, brand, "a")
	b := testutil.CreateOutlet(t, db, brand, "b")
	store := repository.NewStore(db, func() *model.Menu { return &model.Menu{} })

	require.NoError(t, store.Insert(ctx, newMenu(brand, a, "Lunch")))

	assert.Equal(t, []string{"outlet_name"}, taken(t, db, repository.MenuConstraints, newMenu(brand, a, "Lunch"), uuid.Nil))
	assert.Empty(t, taken(t, db, repository.MenuConstraints, newMenu(brand, b, "Lunch"), uuid.Nil))
	// bound and all-outlets menus live under different keys
	assert.Empty(t, taken(t, db, repository.MenuConstraints, newMenu(brand, nil, "Lunch"), uuid.Nil))

	require.NoError(t, store.Insert(ctx, newMenu(brand, nil, "Dinner")))
	assert.Equal(t, []string{"brand_name"}, taken(t, db, repository.MenuConstraints, newMenu(brand, nil, "Dinner"), uuid.Nil))
}

func TestConstraint_ExcludesSelf(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	brand := testutil.CreateBrand(t, db, nil, "sector17")
	outlet := testutil.CreateOutlet(t, db, brand, "a")
	store := repository.NewStore(db, func() *model.Category { return &model.Category{} })

	cat := &model.Category{BrandID: brand.ID, OutletID: outlet.ID, Name: "Beverages", Status: model.StatusActive}
	require.NoError(t, store.Insert(ctx, cat))

	assert.Empty(t, taken(t, db, repository.CategoryConstraints, cat, cat.ID))
	assert.Equal(t, []string{"outlet_name"}, taken(t, db, repository.CategoryConstraints, cat, uuid.Nil))
}

func TestStorageIndex_IsAuthoritative(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	brand := testutil.CreateBrand(t, db, nil, "sector17")
	outlet := testutil.CreateOutlet(t, db, brand, "a")
	store := repository.NewStore(db, func() *model.Category { return &model.Category{} })

	require.NoError(t, store.Insert(ctx, &model.Category{BrandID: brand.ID, OutletID: outlet.ID, Name: "Beverages", Status: model.StatusActive}))
	err := store.Insert(ctx, &model.Category{BrandID: brand.ID, OutletID: outlet.ID, Name: "Beverages", Status: model.StatusActive})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestTaxConstraints_OnlyActiveTaxIsUnique(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	brand := testutil.CreateBrand(t, db, nil, "sector17")
	outlet := testutil.CreateOutlet(t, db, brand, "a")
	store := repository.NewStore(db, func() *model.Tax { return &model.Tax{} })

	tax := func(name, status string) *model.Tax {
		return &model.Tax{
			BrandID: brand.ID, OutletID: outlet.ID, TaxName: name, DisplayTaxName: name,
			TaxValue: decimal.NewFromInt(5), Status: status,
		}
	}
	require.NoError(t, store.Insert(ctx, tax("GST", model.StatusActive)))
	require.NoError(t, store.Insert(ctx, tax("Old VAT", model.StatusInactive)))

	assert.Equal(t, []string{"outlet_active"}, taken(t, db, repository.TaxConstraints, tax("Service", model.StatusActive), uuid.Nil))
	assert.Empty(t, taken(t, db, repository.TaxConstraints, tax("Service", model.StatusInactive), uuid.Nil))

	err := store.Insert(ctx, tax("Service", model.StatusActive))
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
