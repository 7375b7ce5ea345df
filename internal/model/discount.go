package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Discount apply types.
const (
	ApplyDiscount    = "discount"
	ApplyCoupon      = "coupon"
	ApplyExtraCharge = "extra_charge"
)

// Discount covers plain discounts, coupons and extra charges. Coupons carry a
// code that is unique within the brand.
type Discount struct {
	BaseModel
	BrandID uuid.UUID `gorm:"type:uuid;not null;index" json:"brand_id" validate:"uuid_required"`
	OutletBinding
	Name       string           `gorm:"type:varchar(100);not null" json:"name" validate:"required,min=3,max=100"`
	ApplyType  string           `gorm:"type:varchar(20);not null;default:discount" json:"apply_type" validate:"omitempty,oneof=discount coupon extra_charge"`
	CouponCode *string          `gorm:"type:varchar(50)" json:"coupon_code"`
	Rate       decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"rate"`
	RateType   string           `gorm:"type:varchar(20);not null" json:"type" validate:"required,oneof=fixed percentage"`
	Day        string           `gorm:"type:varchar(20);not null" json:"day" validate:"required,weekday"`
	StartTime  string           `gorm:"type:varchar(5);not null" json:"start_time" validate:"required,hhmm"`
	EndTime    string           `gorm:"type:varchar(5);not null" json:"end_time" validate:"required,hhmm"`
	Status     string           `gorm:"type:varchar(20);not null;default:active" json:"status" validate:"omitempty,oneof=active inactive"`
	OrderTypes Scope[uuid.UUID] `gorm:"serializer:json" json:"order_types" validate:"-"`
	Menus      Scope[uuid.UUID] `gorm:"serializer:json" json:"menus" validate:"-"`
	Categories Scope[uuid.UUID] `gorm:"serializer:json" json:"categories" validate:"-"`
	Items      Scope[uuid.UUID] `gorm:"serializer:json" json:"items" validate:"-"`
}

func (d *Discount) Tenant() Tenant {
	return Tenant{BrandID: d.BrandID, OutletID: d.OutletID}
}

func (d *Discount) IsCoupon() bool {
	return d.ApplyType == ApplyCoupon
}

func (d *Discount) Normalize() map[string]string {
	errs := map[string]string{}
	defaultStatus(&d.Status)
	if d.ApplyType == "" {
		d.ApplyType = ApplyDiscount
	}
	d.OutletBinding.check(errs)
	if d.IsCoupon() {
		if d.CouponCode == nil || *d.CouponCode == "" {
			errs["coupon_code"] = "required_for_coupon"
		}
	} else {
		d.CouponCode = nil
	}
	if d.Rate.IsNegative() {
		errs["rate"] = "min=0"
	}
	if d.RateType == "percentage" && d.Rate.GreaterThan(decimal.NewFromInt(100)) {
		errs["rate"] = "max=100"
	}
	for _, s := range []*Scope[uuid.UUID]{&d.OrderTypes, &d.Menus, &d.Categories, &d.Items} {
		s.normalize()
	}
	return nilIfEmpty(errs)
}
