package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tax is a percentage applied at an outlet. An outlet has at most one active tax.
type Tax struct {
	BaseModel
	BrandID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"brand_id" validate:"uuid_required"`
	OutletID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"outlet_id" validate:"uuid_required"`
	TaxName        string          `gorm:"type:varchar(50);not null" json:"tax_name" validate:"required,min=3,max=50"`
	DisplayTaxName string          `gorm:"type:varchar(50);not null" json:"display_tax_name" validate:"required"`
	TaxValue       decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"tax_value"`
	Status         string          `gorm:"type:varchar(20);not null;default:active" json:"status" validate:"omitempty,oneof=active inactive"`
}

func (Tax) TableName() string {
	return "taxes"
}

func (t *Tax) Tenant() Tenant {
	return outletTenant(t.BrandID, t.OutletID)
}

func (t *Tax) Normalize() map[string]string {
	defaultStatus(&t.Status)
	if t.TaxValue.IsNegative() || t.TaxValue.GreaterThan(decimal.NewFromInt(100)) {
		return map[string]string{"tax_value": "range=0..100"}
	}
	return nil
}
