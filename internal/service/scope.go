package service

import (
	"go-pos-admin/internal/model"

	"github.com/google/uuid"
)

// TenantScope is the set of brands and outlets a staff member may act on.
type TenantScope struct {
	brands  map[uuid.UUID]struct{}
	outlets map[uuid.UUID]struct{}
}

// ScopeOf resolves the scope from the staff's own grants. Holding the super
// role does not widen it.
func ScopeOf(staff *model.Staff) TenantScope {
	s := TenantScope{
		brands:  map[uuid.UUID]struct{}{},
		outlets: map[uuid.UUID]struct{}{},
	}
	if staff == nil {
		return s
	}
	for _, b := range staff.Brands {
		s.brands[b.ID] = struct{}{}
	}
	for _, o := range staff.Outlets {
		s.outlets[o.ID] = struct{}{}
	}
	return s
}

func (s TenantScope) BrandIDs() []uuid.UUID {
	return keys(s.brands)
}

func (s TenantScope) OutletIDs() []uuid.UUID {
	return keys(s.outlets)
}

func (s TenantScope) HasBrand(id uuid.UUID) bool {
	_, ok := s.brands[id]
	return ok
}

func (s TenantScope) HasOutlet(id uuid.UUID) bool {
	_, ok := s.outlets[id]
	return ok
}

// Empty is true when either set is empty. Scoped listings are then empty.
func (s TenantScope) Empty() bool {
	return len(s.brands) == 0 || len(s.outlets) == 0
}

// EmptyFor is Empty for a listing of brandWide rows: without outlet grants
// those still match on brand alone.
func (s TenantScope) EmptyFor(brandWide bool) bool {
	if !brandWide {
		return s.Empty()
	}
	return len(s.brands) == 0
}

// Admits reports whether a record at t is visible. A record without an outlet
// is admitted on its brand alone only when brandWide is set.
func (s TenantScope) Admits(t model.Tenant, brandWide bool) bool {
	if !s.HasBrand(t.BrandID) {
		return false
	}
	if t.OutletID == nil {
		return brandWide
	}
	return s.HasOutlet(*t.OutletID)
}

func keys(m map[uuid.UUID]struct{}) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	return out
}
