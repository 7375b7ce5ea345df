package model

import "github.com/google/uuid"

type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip,omitempty"`
	Country string `json:"country,omitempty"`
}

// Customer belongs to a brand and optionally to the outlet that registered it.
type Customer struct {
	BaseModel
	BrandID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"brand_id" validate:"uuid_required"`
	OutletID        *uuid.UUID `gorm:"type:uuid;index" json:"outlet_id"`
	Name            string     `gorm:"type:varchar(100);not null" json:"name" validate:"required,min=2,max=100"`
	Email           string     `gorm:"type:varchar(255)" json:"email" validate:"omitempty,email"`
	Phone           string     `gorm:"type:varchar(20);not null;default:''" json:"phone" validate:"max=20"`
	CountryCode     string     `gorm:"type:varchar(8);not null" json:"country_code" validate:"required,max=8"`
	DOB             string     `gorm:"type:varchar(8)" json:"dob" validate:"omitempty,datetime=01/02/06"`
	AnniversaryDate string     `gorm:"type:varchar(8)" json:"anniversary_date" validate:"omitempty,datetime=01/02/06"`
	Address         Address    `gorm:"serializer:json" json:"address" validate:"-"`
	Status          string     `gorm:"type:varchar(20);not null;default:active" json:"status" validate:"omitempty,oneof=active inactive banned"`
}

func (c *Customer) Tenant() Tenant {
	return Tenant{BrandID: c.BrandID, OutletID: c.OutletID}
}

func (c *Customer) Normalize() map[string]string {
	defaultStatus(&c.Status)
	if c.Address.Country == "" {
		c.Address.Country = "Canada"
	}
	return nil
}
