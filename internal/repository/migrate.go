package repository

import (
	"go-pos-admin/internal/model"

	"gorm.io/gorm"
)

// Migrate creates the schema, the staff join tables and every natural-key index.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&model.Staff{}, "Brands", &model.StaffBrand{}); err != nil {
		return err
	}
	if err := db.SetupJoinTable(&model.Staff{}, "Outlets", &model.StaffOutlet{}); err != nil {
		return err
	}

	err := db.AutoMigrate(
		&model.Permission{},
		&model.Role{},
		&model.Owner{},
		&model.Brand{},
		&model.Outlet{},
		&model.Staff{},
		&model.StaffBrand{},
		&model.StaffOutlet{},
		&model.Menu{},
		&model.Category{},
		&model.Item{},
		&model.Addon{},
		&model.Discount{},
		&model.BuyXGetYOffer{},
		&model.OrderType{},
		&model.PaymentType{},
		&model.Tax{},
		&model.Floor{},
		&model.Table{},
		&model.Order{},
		&model.Customer{},
		&model.WhatsAppCredential{},
	)
	if err != nil {
		return err
	}

	return firstErr(
		ensureIndexes(db, &model.Brand{}, BrandConstraints),
		ensureIndexes(db, &model.Outlet{}, OutletConstraints),
		ensureIndexes(db, &model.Menu{}, MenuConstraints),
		ensureIndexes(db, &model.Category{}, CategoryConstraints),
		ensureIndexes(db, &model.Item{}, ItemConstraints),
		ensureIndexes(db, &model.Addon{}, AddonConstraints),
		ensureIndexes(db, &model.Discount{}, DiscountConstraints),
		ensureIndexes(db, &model.BuyXGetYOffer{}, OfferConstraints),
		ensureIndexes(db, &model.OrderType{}, OrderTypeConstraints),
		ensureIndexes(db, &model.PaymentType{}, PaymentTypeConstraints),
		ensureIndexes(db, &model.Tax{}, TaxConstraints),
		ensureIndexes(db, &model.Floor{}, FloorConstraints),
		ensureIndexes(db, &model.Table{}, TableConstraints),
		ensureIndexes(db, &model.Customer{}, CustomerConstraints),
		ensureIndexes(db, &model.WhatsAppCredential{}, WhatsAppCredentialConstraints),
	)
}

func ensureIndexes[T any](db *gorm.DB, rec T, cs []Constraint[T]) error {
	for _, c := range cs {
		if err := c.EnsureIndex(db, rec); err != nil {
			return err
		}
	}
	return nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
