package model

import (
	"bytes"
	"encoding/json"

	"github.com/google/uuid"
)

// Tenant locates a record inside the Owner > Brand > Outlet hierarchy. OutletID
// is nil for records that apply to every outlet of the brand.
type Tenant struct {
	BrandID  uuid.UUID
	OutletID *uuid.UUID
}

// Scoped is implemented by every tenant-owned record.
type Scoped interface {
	GetID() uuid.UUID
	Base() *BaseModel
	Tenant() Tenant
}

// Normalizer is implemented by records with defaults to fill and cross-field
// rules to enforce before a write. It returns field errors keyed by JSON name.
type Normalizer interface {
	Normalize() map[string]string
}

// Scope is the "applies to all" or "applies to these ids" choice used by menus,
// discounts, offers and addons.
type Scope[T comparable] struct {
	All bool `json:"all"`
	IDs []T  `json:"ids,omitempty"`
}

// UnmarshalJSON replaces the whole scope, so merging a partial payload onto a
// stored record never mixes "all" with a stale id list.
func (s *Scope[T]) UnmarshalJSON(b []byte) error {
	var v struct {
		All bool `json:"all"`
		IDs []T  `json:"ids"`
	}
	if !bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
	}
	s.All, s.IDs = v.All, v.IDs
	return nil
}

// IsEmpty is true when the scope selects nothing.
func (s Scope[T]) IsEmpty() bool {
	return !s.All && len(s.IDs) == 0
}

// normalize drops explicit ids from an "all" scope.
func (s *Scope[T]) normalize() {
	if s.All {
		s.IDs = nil
	}
}

// OutletBinding is embedded by resources that are either bound to one outlet
// or apply to every outlet of their brand.
type OutletBinding struct {
	ApplyOnAllOutlets bool       `gorm:"not null;default:false" json:"apply_on_all_outlets"`
	OutletID          *uuid.UUID `gorm:"type:uuid;index" json:"outlet_id"`
}

// check enforces "outlet required unless all outlets" and clears the outlet
// of an all-outlets record.
func (b *OutletBinding) check(errs map[string]string) {
	if b.ApplyOnAllOutlets {
		b.OutletID = nil
		return
	}
	if b.OutletID == nil || *b.OutletID == uuid.Nil {
		errs["outlet_id"] = "required_unless_apply_on_all_outlets"
	}
}

func defaultStatus(status *string) {
	if *status == "" {
		*status = StatusActive
	}
}

func nilIfEmpty(errs map[string]string) map[string]string {
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func outletTenant(brandID, outletID uuid.UUID) Tenant {
	return Tenant{BrandID: brandID, OutletID: &outletID}
}
