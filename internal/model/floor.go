package model

import "github.com/google/uuid"

type Floor struct {
	BaseModel
	BrandID   uuid.UUID `gorm:"type:uuid;not null;index" json:"brand_id" validate:"uuid_required"`
	OutletID  uuid.UUID `gorm:"type:uuid;not null;index" json:"outlet_id" validate:"uuid_required"`
	FloorName string    `gorm:"type:varchar(100);not null" json:"floor_name" validate:"required,max=100"`
	Status    string    `gorm:"type:varchar(20);not null;default:active" json:"status" validate:"omitempty,oneof=active inactive"`
}

func (f *Floor) Tenant() Tenant {
	return outletTenant(f.BrandID, f.OutletID)
}

func (f *Floor) Normalize() map[string]string {
	defaultStatus(&f.Status)
	return nil
}
