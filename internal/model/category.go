package model

import "github.com/google/uuid"

// Category groups items of an outlet, optionally restricted to a day window.
type Category struct {
	BaseModel
	BrandID   uuid.UUID `gorm:"type:uuid;not null;index" json:"brand_id" validate:"uuid_required"`
	OutletID  uuid.UUID `gorm:"type:uuid;not null;index" json:"outlet_id" validate:"uuid_required"`
	Name      string    `gorm:"type:varchar(50);not null" json:"name" validate:"required,min=3,max=50"`
	Day       string    `gorm:"type:varchar(20)" json:"day" validate:"omitempty,weekday"`
	StartTime string    `gorm:"type:varchar(5)" json:"start_time" validate:"omitempty,hhmm"`
	EndTime   string    `gorm:"type:varchar(5)" json:"end_time" validate:"omitempty,hhmm"`
	Status    string    `gorm:"type:varchar(20);not null;default:active" json:"status" validate:"omitempty,oneof=active inactive"`
}

func (Category) TableName() string {
	return "categories"
}

func (c *Category) Tenant() Tenant {
	return outletTenant(c.BrandID, c.OutletID)
}

func (c *Category) Normalize() map[string]string {
	defaultStatus(&c.Status)
	return nil
}
