package model

import "github.com/google/uuid"

// WhatsAppCredential configures the messaging API for an outlet. The access
// token is write-only.
type WhatsAppCredential struct {
	BaseModel
	BrandID           uuid.UUID `gorm:"type:uuid;not null;index" json:"brand_id" validate:"uuid_required"`
	OutletID          uuid.UUID `gorm:"type:uuid;not null;index" json:"outlet_id" validate:"uuid_required"`
	Name              string    `gorm:"type:varchar(100);not null" json:"name" validate:"required,max=100"`
	APIURL            string    `gorm:"column:api_url;type:varchar(255);not null" json:"api_url" validate:"omitempty,url"`
	AccessToken       string    `gorm:"type:text;not null" json:"access_token,omitempty" validate:"required"`
	PhoneNumberID     string    `gorm:"type:varchar(64);not null" json:"phone_number_id" validate:"required"`
	BusinessAccountID string    `gorm:"type:varchar(64);not null" json:"business_account_id" validate:"required"`
	Status            string    `gorm:"type:varchar(20);not null;default:active" json:"status" validate:"omitempty,oneof=active inactive"`
}

const DefaultWhatsAppAPIURL = "https://graph.facebook.com/v17.0"

func (w *WhatsAppCredential) Tenant() Tenant {
	return outletTenant(w.BrandID, w.OutletID)
}

func (w *WhatsAppCredential) Normalize() map[string]string {
	defaultStatus(&w.Status)
	if w.APIURL == "" {
		w.APIURL = DefaultWhatsAppAPIURL
	}
	return nil
}

// Redacted returns a copy safe to send back to clients.
func (w *WhatsAppCredential) Redacted() *WhatsAppCredential {
	c := *w
	c.AccessToken = ""
	return &c
}
