package service_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"go-pos-admin/internal/model"
	"go-pos-admin/internal/repository"
	"go-pos-admin/internal/testutil"
	"go-pos-admin/internal/ws"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// env is one owner with a brand, an outlet and an administrator holding both.
type env struct {
	db     *gorm.DB
	owner  *model.Owner
	brand  *model.Brand
	outlet *model.Outlet
	admin  *model.Staff
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := testutil.NewTestDB(t)
	owner := testutil.CreateOwner(t, db, "owner@sector17.test")
	brand := testutil.CreateBrand(t, db, owner, "sector17")
	outlet := testutil.CreateOutlet(t, db, brand, "downtown")
	admin := testutil.CreateStaff(t, db, testutil.StaffOpts{
		Email:   "admin@sector17.test",
		Role:    model.RoleAdmin,
		Owner:   owner,
		Brands:  []*model.Brand{brand},
		Outlets: []*model.Outlet{outlet},
	})
	return &env{db: db, owner: owner, brand: brand, outlet: outlet, admin: admin}
}

// staff creates a staff member of the env's owner.
func (e *env) staff(t *testing.T, opts testutil.StaffOpts) *model.Staff {
	t.Helper()
	if opts.Owner == nil {
		opts.Owner = e.owner
	}
	return testutil.CreateStaff(t, e.db, opts)
}

// identity reloads the authenticated projection, picking up new grants.
func identity(t *testing.T, db *gorm.DB, id uuid.UUID) *model.Staff {
	t.Helper()
	staff, err := repository.NewStaffRepo(db).FindIdentity(context.Background(), id)
	require.NoError(t, err)
	return staff
}

func body(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

type recorder struct {
	mu     sync.Mutex
	events []ws.Event
}

func (r *recorder) Publish(e ws.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) Events() []ws.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ws.Event(nil), r.events...)
}
