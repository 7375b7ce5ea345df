package model

import "github.com/google/uuid"

// Brand belongs to an Owner and groups outlets.
type Brand struct {
	BaseModel
	FullName      string     `gorm:"type:varchar(255);not null" json:"full_name" validate:"required,max=255"`
	ShortName     string     `gorm:"type:varchar(100);not null" json:"short_name" validate:"required,max=100"`
	Email         string     `gorm:"type:varchar(255);not null" json:"email" validate:"required,email"`
	Phone         string     `gorm:"type:varchar(20);not null" json:"phone" validate:"required,max=20"`
	OwnerID       *uuid.UUID `gorm:"type:uuid;index" json:"owner_id,omitempty"`
	Status        string     `gorm:"type:varchar(20);not null;default:active;index" json:"status" validate:"omitempty,oneof=active inactive"`
	GstNo         string     `gorm:"type:varchar(64);not null" json:"gst_no" validate:"required"`
	LicenseNo     string     `gorm:"type:varchar(64);not null" json:"license_no" validate:"required"`
	FoodLicense   string     `gorm:"type:varchar(64);not null" json:"food_license" validate:"required"`
	Website       string     `gorm:"type:varchar(255)" json:"website" validate:"omitempty,url"`
	City          string     `gorm:"type:varchar(100);index" json:"city" validate:"required"`
	State         string     `gorm:"type:varchar(100)" json:"state" validate:"required"`
	Country       string     `gorm:"type:varchar(100)" json:"country" validate:"required"`
	PostalCode    string     `gorm:"type:varchar(20)" json:"postal_code" validate:"required"`
	StreetAddress string     `gorm:"type:varchar(255)" json:"street_address" validate:"required"`
}

func (b *Brand) Tenant() Tenant {
	return Tenant{BrandID: b.ID}
}

func (b *Brand) Normalize() map[string]string {
	defaultStatus(&b.Status)
	return nil
}
