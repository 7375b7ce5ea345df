package service_test

import (
	"testing"

	"go-pos-admin/internal/apperror"
	"go-pos-admin/internal/model"
	"go-pos-admin/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func staffWith(role *model.Role, status string, perms ...string) *model.Staff {
	s := &model.Staff{Status: status, Role: role}
	for _, p := range perms {
		s.Permissions = append(s.Permissions, model.Permission{Key: p})
	}
	return s
}

func TestAuthorize(t *testing.T) {
	super := &model.Role{Name: model.RoleAdmin, IsSuperRole: true}
	plain := &model.Role{Name: model.RoleCashier}

	tests := []struct {
		name  string
		staff *model.Staff
		perms []string
		want  error
	}{
		{"anonymous", nil, []string{model.PermOrdersView}, apperror.ErrUnauthenticated},
		{"inactive", staffWith(plain, model.StatusInactive, model.PermOrdersView), []string{model.PermOrdersView}, apperror.ErrForbidden},
		{"inactive super", staffWith(super, model.StatusBanned), nil, apperror.ErrForbidden},
		{"holds permission", staffWith(plain, model.StatusActive, model.PermOrdersView), []string{model.PermOrdersView}, nil},
		{"holds one of", staffWith(plain, model.StatusActive, model.PermOrdersEdit), []string{model.PermOrdersView, model.PermOrdersEdit}, nil},
		{"missing permission", staffWith(plain, model.StatusActive, model.PermOrdersView), []string{model.PermOrdersDelete}, apperror.ErrForbidden},
		{"super role", staffWith(super, model.StatusActive), []string{model.PermOrdersDelete}, nil},
		{"no requirement", staffWith(plain, model.StatusActive), nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.Authorize(tt.staff, tt.perms...)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestTenantScope(t *testing.T) {
	b1, b2 := uuid.New(), uuid.New()
	o1, o2 := uuid.New(), uuid.New()
	staff := &model.Staff{
		Brands:  []model.Brand{{BaseModel: model.BaseModel{ID: b1}}},
		Outlets: []model.Outlet{{BaseModel: model.BaseModel{ID: o1}}},
	}
	scope := service.ScopeOf(staff)

	assert.False(t, scope.Empty())
	assert.True(t, scope.Admits(model.Tenant{BrandID: b1, OutletID: &o1}, false))
	assert.False(t, scope.Admits(model.Tenant{BrandID: b1, OutletID: &o2}, true))
	assert.False(t, scope.Admits(model.Tenant{BrandID: b2, OutletID: &o1}, false))
	assert.True(t, scope.Admits(model.Tenant{BrandID: b1}, true))
	assert.False(t, scope.Admits(model.Tenant{BrandID: b1}, false))
	assert.False(t, scope.Admits(model.Tenant{BrandID: b2}, true))

	staff.Outlets = nil
	assert.True(t, service.ScopeOf(staff).Empty())
	assert.True(t, service.ScopeOf(nil).Empty())
}

func TestCatalog(t *testing.T) {
	catalog := service.NewCatalog(model.DefaultPermissions())

	assert.NoError(t, catalog.Check([]string{model.PermMenuManage, model.PermOrdersView}))
	err := catalog.Check([]string{"sales_create", model.PermMenuManage, "inventory_edit"})
	assert.ErrorIs(t, err, apperror.ErrValidation)
	assert.Equal(t, "unknown: inventory_edit, sales_create", apperror.From(err).Fields["permissions"])

	groups := catalog.Groups()
	assert.Len(t, groups, len(model.DefaultPermissionGroups))
	assert.Equal(t, model.DefaultPermissionGroups[0].Category, groups[0].Category)
}
