package model

import "github.com/google/uuid"

// Table is a seating place on a floor.
type Table struct {
	BaseModel
	BrandID   uuid.UUID `gorm:"type:uuid;not null;index" json:"brand_id" validate:"uuid_required"`
	OutletID  uuid.UUID `gorm:"type:uuid;not null;index" json:"outlet_id" validate:"uuid_required"`
	FloorID   uuid.UUID `gorm:"type:uuid;not null;index" json:"floor_id" validate:"uuid_required"`
	Floor     *Floor    `gorm:"foreignKey:FloorID" json:"floor,omitempty" validate:"-"`
	Name      string    `gorm:"column:table_name;type:varchar(100);not null" json:"table_name" validate:"required,max=100"`
	Sitting   int       `gorm:"not null" json:"sitting" validate:"required,min=1"`
	Type      string    `gorm:"type:varchar(20);not null" json:"type" validate:"required,oneof=square rectangle circle other"`
	Status    string    `gorm:"type:varchar(20);not null;default:active" json:"status" validate:"omitempty,oneof=active inactive"`
}

func (t *Table) Tenant() Tenant {
	return outletTenant(t.BrandID, t.OutletID)
}

func (t *Table) Normalize() map[string]string {
	defaultStatus(&t.Status)
	return nil
}
