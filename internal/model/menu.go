package model

import "github.com/google/uuid"

type Menu struct {
	BaseModel
	BrandID uuid.UUID `gorm:"type:uuid;not null;index" json:"brand_id" validate:"uuid_required"`
	OutletBinding
	Name       string           `gorm:"type:varchar(50);not null" json:"name" validate:"required,min=3,max=50"`
	Status     string           `gorm:"type:varchar(20);not null;default:active" json:"status" validate:"omitempty,oneof=active inactive"`
	OrderTypes Scope[uuid.UUID] `gorm:"serializer:json" json:"order_types" validate:"-"`
}

func (m *Menu) Tenant() Tenant {
	return Tenant{BrandID: m.BrandID, OutletID: m.OutletID}
}

func (m *Menu) Normalize() map[string]string {
	errs := map[string]string{}
	defaultStatus(&m.Status)
	m.OutletBinding.check(errs)
	m.OrderTypes.normalize()
	return nilIfEmpty(errs)
}
