package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order lifecycle values.
const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderPreparing = "preparing"
	OrderReady     = "ready"
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"

	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

type OrderLine struct {
	ItemID   uuid.UUID       `json:"item_id"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Addons   []uuid.UUID     `json:"addons,omitempty"`
}

// Order is a placed ticket. Amounts are recomputed from the lines on every write.
type Order struct {
	BaseModel
	BrandID           uuid.UUID       `gorm:"type:uuid;not null;index" json:"brand_id" validate:"uuid_required"`
	OutletID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"outlet_id" validate:"uuid_required"`
	CustomerID        *uuid.UUID      `gorm:"type:uuid;index" json:"customer_id"`
	OrderTypeID       uuid.UUID       `gorm:"type:uuid;not null" json:"order_type_id" validate:"uuid_required"`
	PaymentTypeID     uuid.UUID       `gorm:"type:uuid;not null" json:"payment_type_id" validate:"uuid_required"`
	TableID           *uuid.UUID      `gorm:"type:uuid" json:"table_id"`
	FloorID           *uuid.UUID      `gorm:"type:uuid" json:"floor_id"`
	Lines             []OrderLine     `gorm:"serializer:json" json:"items" validate:"-"`
	DiscountID        *uuid.UUID      `gorm:"type:uuid" json:"discount_id"`
	DiscountAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"discount_amount"`
	ExtraChargeID     *uuid.UUID      `gorm:"type:uuid" json:"extra_charge_id"`
	ExtraChargeAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"extra_charge_amount"`
	Subtotal          decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	TotalAmount       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	PaymentStatus     string          `gorm:"type:varchar(20);not null;default:pending" json:"payment_status" validate:"omitempty,oneof=pending paid failed refunded"`
	OrderStatus       string          `gorm:"type:varchar(20);not null;default:pending;index" json:"order_status" validate:"omitempty,oneof=pending confirmed preparing ready completed cancelled"`
	Notes             string          `gorm:"type:varchar(500)" json:"notes" validate:"max=500"`
	PlacedAt          time.Time       `json:"placed_at"`
	CompletedAt       *time.Time      `json:"completed_at,omitempty"`
	CancelledAt       *time.Time      `json:"cancelled_at,omitempty"`
}

func (o *Order) Tenant() Tenant {
	return outletTenant(o.BrandID, o.OutletID)
}

func (o *Order) Normalize() map[string]string {
	errs := map[string]string{}
	if o.PaymentStatus == "" {
		o.PaymentStatus = PaymentPending
	}
	if o.OrderStatus == "" {
		o.OrderStatus = OrderPending
	}
	now := time.Now()
	if o.PlacedAt.IsZero() {
		o.PlacedAt = now
	}
	switch o.OrderStatus {
	case OrderCompleted:
		if o.CompletedAt == nil {
			o.CompletedAt = &now
		}
	case OrderCancelled:
		if o.CancelledAt == nil {
			o.CancelledAt = &now
		}
	}

	if len(o.Lines) == 0 {
		errs["items"] = "min=1"
	}
	subtotal := decimal.Zero
	for _, l := range o.Lines {
		if l.Quantity < 1 || l.Price.IsNegative() || l.ItemID == uuid.Nil {
			errs["items"] = "invalid_line"
			continue
		}
		subtotal = subtotal.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	if o.DiscountAmount.IsNegative() {
		errs["discount_amount"] = "min=0"
	}
	if o.ExtraChargeAmount.IsNegative() {
		errs["extra_charge_amount"] = "min=0"
	}
	o.Subtotal = subtotal
	o.TotalAmount = subtotal.Sub(o.DiscountAmount).Add(o.ExtraChargeAmount)
	if o.TotalAmount.IsNegative() {
		errs["total_amount"] = "min=0"
	}
	return nilIfEmpty(errs)
}
