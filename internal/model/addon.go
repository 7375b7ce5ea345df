package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Addon struct {
	BaseModel
	BrandID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"brand_id" validate:"uuid_required"`
	OutletID   uuid.UUID        `gorm:"type:uuid;not null;index" json:"outlet_id" validate:"uuid_required"`
	Name       string           `gorm:"type:varchar(100);not null" json:"name" validate:"required,min=2,max=100"`
	Price      decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"price"`
	Status     string           `gorm:"type:varchar(20);not null;default:active" json:"status" validate:"omitempty,oneof=active inactive"`
	Menus      Scope[uuid.UUID] `gorm:"serializer:json" json:"menus" validate:"-"`
	Categories Scope[uuid.UUID] `gorm:"serializer:json" json:"categories" validate:"-"`
	Items      Scope[uuid.UUID] `gorm:"serializer:json" json:"items" validate:"-"`
}

func (a *Addon) Tenant() Tenant {
	return outletTenant(a.BrandID, a.OutletID)
}

func (a *Addon) Normalize() map[string]string {
	errs := map[string]string{}
	defaultStatus(&a.Status)
	if a.Price.IsNegative() {
		errs["price"] = "min=0"
	}
	for field, s := range map[string]*Scope[uuid.UUID]{"menus": &a.Menus, "categories": &a.Categories, "items": &a.Items} {
		s.normalize()
		if s.IsEmpty() {
			errs[field] = "required_unless_all"
		}
	}
	return nilIfEmpty(errs)
}
