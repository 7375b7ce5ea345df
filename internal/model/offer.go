package model

import "github.com/google/uuid"

// BuyXGetYOffer grants GetQuantity of GetItems when BuyQuantity of the buy
// scope is ordered.
type BuyXGetYOffer struct {
	BaseModel
	BrandID uuid.UUID `gorm:"type:uuid;not null;index" json:"brand_id" validate:"uuid_required"`
	OutletBinding
	Name          string           `gorm:"type:varchar(100);not null" json:"name" validate:"required,min=3,max=100"`
	BuyQuantity   int              `gorm:"not null" json:"buy_quantity" validate:"required,min=1"`
	BuyItems      Scope[uuid.UUID] `gorm:"serializer:json" json:"buy_items" validate:"-"`
	BuyCategories Scope[uuid.UUID] `gorm:"serializer:json" json:"buy_categories" validate:"-"`
	BuyMenus      Scope[uuid.UUID] `gorm:"serializer:json" json:"buy_menus" validate:"-"`
	GetQuantity   int              `gorm:"not null" json:"get_quantity" validate:"required,min=1"`
	GetItems      []uuid.UUID      `gorm:"serializer:json" json:"get_items" validate:"required,min=1"`
	OrderTypes    Scope[uuid.UUID] `gorm:"serializer:json" json:"order_types" validate:"-"`
	Day           string           `gorm:"type:varchar(20);not null" json:"day" validate:"required,weekday"`
	StartTime     string           `gorm:"type:varchar(5);not null" json:"start_time" validate:"required,hhmm"`
	EndTime       string           `gorm:"type:varchar(5);not null" json:"end_time" validate:"required,hhmm"`
	Status        string           `gorm:"type:varchar(20);not null;default:active" json:"status" validate:"omitempty,oneof=active inactive"`
}

func (BuyXGetYOffer) TableName() string {
	return "buy_x_get_y_offers"
}

func (o *BuyXGetYOffer) Tenant() Tenant {
	return Tenant{BrandID: o.BrandID, OutletID: o.OutletID}
}

func (o *BuyXGetYOffer) Normalize() map[string]string {
	errs := map[string]string{}
	defaultStatus(&o.Status)
	o.OutletBinding.check(errs)
	for field, s := range map[string]*Scope[uuid.UUID]{
		"buy_items": &o.BuyItems, "buy_categories": &o.BuyCategories, "buy_menus": &o.BuyMenus,
	} {
		s.normalize()
		if s.IsEmpty() {
			errs[field] = "required_unless_all"
		}
	}
	o.OrderTypes.normalize()
	return nilIfEmpty(errs)
}
