package model

import "github.com/google/uuid"

// Outlet is a physical location of a brand.
type Outlet struct {
	BaseModel
	BrandID     uuid.UUID `gorm:"type:uuid;not null;index" json:"brand_id" validate:"uuid_required"`
	Brand       *Brand    `gorm:"foreignKey:BrandID" json:"brand,omitempty" validate:"-"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name" validate:"required,max=255"`
	Code        string    `gorm:"type:varchar(50);not null" json:"code" validate:"required,max=50"`
	Email       string    `gorm:"type:varchar(255);not null" json:"email" validate:"required,email"`
	Phone       string    `gorm:"type:varchar(20);not null" json:"phone" validate:"required,max=20"`
	Timezone    string    `gorm:"type:varchar(64);not null" json:"timezone" validate:"required"`
	OpeningTime string    `gorm:"type:varchar(5);not null" json:"opening_time" validate:"required,hhmm"`
	ClosingTime string    `gorm:"type:varchar(5);not null" json:"closing_time" validate:"required,hhmm"`
	Website     string    `gorm:"type:varchar(255)" json:"website" validate:"omitempty,url"`
	Street      string    `gorm:"type:varchar(255)" json:"street" validate:"required"`
	City        string    `gorm:"type:varchar(100)" json:"city" validate:"required"`
	State       string    `gorm:"type:varchar(100)" json:"state" validate:"required"`
	Country     string    `gorm:"type:varchar(100)" json:"country" validate:"required"`
	PostalCode  string    `gorm:"type:varchar(20)" json:"postal_code"`
	Status      string    `gorm:"type:varchar(20);not null;default:active" json:"status" validate:"omitempty,oneof=active inactive"`
}

func (o *Outlet) Tenant() Tenant {
	id := o.ID
	return Tenant{BrandID: o.BrandID, OutletID: &id}
}

func (o *Outlet) Normalize() map[string]string {
	defaultStatus(&o.Status)
	return nil
}
