package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ItemImage struct {
	URL     string `json:"url"`
	AltText string `json:"alt_text,omitempty"`
}

// Item is a sellable product of a menu. Category is referenced by name.
type Item struct {
	BaseModel
	MenuID  uuid.UUID `gorm:"type:uuid;not null;index" json:"menu_id" validate:"uuid_required"`
	Menu    *Menu     `gorm:"foreignKey:MenuID" json:"menu,omitempty" validate:"-"`
	BrandID uuid.UUID `gorm:"type:uuid;not null;index" json:"brand_id" validate:"uuid_required"`
	OutletBinding
	Category    string           `gorm:"type:varchar(50);not null" json:"category" validate:"required,max=50"`
	Name        string           `gorm:"type:varchar(100);not null" json:"name" validate:"required,min=2,max=100"`
	Description string           `gorm:"type:varchar(500)" json:"description" validate:"max=500"`
	Price       decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"price"`
	FoodType    string           `gorm:"type:varchar(20);not null" json:"food_type" validate:"required,oneof=veg non-veg vegan"`
	Status      string           `gorm:"type:varchar(20);not null;default:active" json:"status" validate:"omitempty,oneof=active inactive"`
	OrderTypes  Scope[uuid.UUID] `gorm:"serializer:json" json:"order_types" validate:"-"`
	Addons      []uuid.UUID      `gorm:"serializer:json" json:"addons" validate:"-"`
	Images      []ItemImage      `gorm:"serializer:json" json:"images" validate:"-"`
}

func (i *Item) Tenant() Tenant {
	return Tenant{BrandID: i.BrandID, OutletID: i.OutletID}
}

func (i *Item) Normalize() map[string]string {
	errs := map[string]string{}
	defaultStatus(&i.Status)
	i.OutletBinding.check(errs)
	i.OrderTypes.normalize()
	if i.Price.IsNegative() {
		errs["price"] = "min=0"
	}
	return nilIfEmpty(errs)
}
