package model

import "github.com/google/uuid"

// OrderTypeDineIn is the category whose orders must name a floor and a table.
const OrderTypeDineIn = "dine-in"

type OrderType struct {
	BaseModel
	BrandID  uuid.UUID `gorm:"type:uuid;not null;index" json:"brand_id" validate:"uuid_required"`
	OutletID uuid.UUID `gorm:"type:uuid;not null;index" json:"outlet_id" validate:"uuid_required"`
	Name     string    `gorm:"type:varchar(50);not null" json:"name" validate:"required,min=3,max=50"`
	Category string    `gorm:"type:varchar(20);not null" json:"category" validate:"required,oneof=pickup dine-in quick-service delivery third-party"`
	Status   string    `gorm:"type:varchar(20);not null;default:active" json:"status" validate:"omitempty,oneof=active inactive"`
}

func (t *OrderType) Tenant() Tenant {
	return outletTenant(t.BrandID, t.OutletID)
}

func (t *OrderType) Normalize() map[string]string {
	defaultStatus(&t.Status)
	return nil
}
