package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel handles ID (UUID) and the audit trail. Records are hard-deleted.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Audit User Tracking
	CreatedBy string `gorm:"type:varchar(64)" json:"created_by"`
	UpdatedBy string `gorm:"type:varchar(64)" json:"updated_by"`
}

// BeforeCreate assigns a UUID unless the caller already chose one.
func (base *BaseModel) BeforeCreate(tx *gorm.DB) (err error) {
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
	return
}

func (base *BaseModel) GetID() uuid.UUID {
	return base.ID
}

// Base exposes the embedded audit block to generic code.
func (base *BaseModel) Base() *BaseModel {
	return base
}

// Stamp sets the audit columns for a write made by actor.
func (base *BaseModel) Stamp(actor string, creating bool) {
	if creating {
		base.CreatedBy = actor
	}
	base.UpdatedBy = actor
}

// Record statuses shared by every resource with an active/inactive lifecycle.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusBanned   = "banned"
)
