package service

import (
	"context"

	"go-pos-admin/internal/model"
	"go-pos-admin/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func need(keys ...string) []string { return keys }

// exists reports whether a row of m matches conds.
func exists(ctx context.Context, db *gorm.DB, m any, query string, args ...any) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(m).Where(query, args...).Count(&n).Error
	return n > 0, err
}

var MenuKind = Kind[*model.Menu]{
	Name:        "menu",
	New:         func() *model.Menu { return &model.Menu{} },
	EditPerms:   need(model.PermMenuManage),
	DeletePerms: need(model.PermMenuManage),
	BrandWide:   true,
	Constraints: repository.MenuConstraints,
	Dependents:  []Dependent{{Label: "items", Model: &model.Item{}, Column: "menu_id"}},
}

var CategoryKind = Kind[*model.Category]{
	Name:        "category",
	New:         func() *model.Category { return &model.Category{} },
	EditPerms:   need(model.PermCategoryManage),
	DeletePerms: need(model.PermCategoryManage),
	Constraints: repository.CategoryConstraints,
}

var ItemKind = Kind[*model.Item]{
	Name:        "item",
	New:         func() *model.Item { return &model.Item{} },
	EditPerms:   need(model.PermMenuManage),
	DeletePerms: need(model.PermMenuManage),
	BrandWide:   true,
	Constraints: repository.ItemConstraints,
	Preload:     []string{"Menu"},
	References: []ReferenceCheck[*model.Item]{
		func(ctx context.Context, db *gorm.DB, it *model.Item) (map[string]string, error) {
			ok, err := exists(ctx, db, &model.Menu{}, "id = ? AND brand_id = ?", it.MenuID, it.BrandID)
			if err != nil || ok {
				return nil, err
			}
			return map[string]string{"menu_id": "not_in_brand"}, nil
		},
	},
}

var AddonKind = Kind[*model.Addon]{
	Name:        "addon",
	New:         func() *model.Addon { return &model.Addon{} },
	EditPerms:   need(model.PermAddonManage),
	DeletePerms: need(model.PermAddonManage),
	Constraints: repository.AddonConstraints,
}

var DiscountKind = Kind[*model.Discount]{
	Name:        "discount",
	New:         func() *model.Discount { return &model.Discount{} },
	EditPerms:   need(model.PermDiscountManage),
	DeletePerms: need(model.PermDiscountManage),
	BrandWide:   true,
	Constraints: repository.DiscountConstraints,
}

var OfferKind = Kind[*model.BuyXGetYOffer]{
	Name:        "buyxgety_offer",
	New:         func() *model.BuyXGetYOffer { return &model.BuyXGetYOffer{} },
	EditPerms:   need(model.PermBuyXGetYManage),
	DeletePerms: need(model.PermBuyXGetYManage),
	BrandWide:   true,
	Constraints: repository.OfferConstraints,
}

var OrderTypeKind = Kind[*model.OrderType]{
	Name:        "order_type",
	New:         func() *model.OrderType { return &model.OrderType{} },
	EditPerms:   need(model.PermOrderTypeManage),
	DeletePerms: need(model.PermOrderTypeManage),
	Constraints: repository.OrderTypeConstraints,
}

var PaymentTypeKind = Kind[*model.PaymentType]{
	Name:        "payment_type",
	New:         func() *model.PaymentType { return &model.PaymentType{} },
	EditPerms:   need(model.PermPaymentTypeManage),
	DeletePerms: need(model.PermPaymentTypeManage),
	Constraints: repository.PaymentTypeConstraints,
}

var TaxKind = Kind[*model.Tax]{
	Name:        "tax",
	New:         func() *model.Tax { return &model.Tax{} },
	EditPerms:   need(model.PermTaxManage),
	DeletePerms: need(model.PermTaxManage),
	Constraints: repository.TaxConstraints,
}

var FloorKind = Kind[*model.Floor]{
	Name:        "floor",
	New:         func() *model.Floor { return &model.Floor{} },
	EditPerms:   need(model.PermFloorManage),
	DeletePerms: need(model.PermFloorManage),
	Constraints: repository.FloorConstraints,
	Dependents:  []Dependent{{Label: "tables", Model: &model.Table{}, Column: "floor_id"}},
}

var TableKind = Kind[*model.Table]{
	Name:        "table",
	New:         func() *model.Table { return &model.Table{} },
	EditPerms:   need(model.PermTableManage),
	DeletePerms: need(model.PermTableManage),
	Constraints: repository.TableConstraints,
	Preload:     []string{"Floor"},
	References: []ReferenceCheck[*model.Table]{
		func(ctx context.Context, db *gorm.DB, t *model.Table) (map[string]string, error) {
			ok, err := exists(ctx, db, &model.Floor{}, "id = ? AND outlet_id = ?", t.FloorID, t.OutletID)
			if err != nil || ok {
				return nil, err
			}
			return map[string]string{"floor_id": "not_in_outlet"}, nil
		},
	},
}

var OrderKind = Kind[*model.Order]{
	Name:        "order",
	New:         func() *model.Order { return &model.Order{} },
	ViewPerms:   need(model.PermOrdersView),
	EditPerms:   need(model.PermOrdersEdit),
	DeletePerms: need(model.PermOrdersDelete),
	References:  []ReferenceCheck[*model.Order]{orderReferences},
}

var CustomerKind = Kind[*model.Customer]{
	Name:        "customer",
	New:         func() *model.Customer { return &model.Customer{} },
	ViewPerms:   need(model.PermCustomersView),
	EditPerms:   need(model.PermCustomersEdit),
	DeletePerms: need(model.PermCustomersDelete),
	BrandWide:   true,
	Constraints: repository.CustomerConstraints,
}

var WhatsAppCredentialKind = Kind[*model.WhatsAppCredential]{
	Name:        "whatsapp_credential",
	New:         func() *model.WhatsAppCredential { return &model.WhatsAppCredential{} },
	EditPerms:   need(model.PermWhatsAppManage),
	DeletePerms: need(model.PermWhatsAppManage),
	Constraints: repository.WhatsAppCredentialConstraints,
	Present:     (*model.WhatsAppCredential).Redacted,
}

// orderReferences requires every referenced record to live in the order's
// brand, and a floor and table on that floor for dine-in orders.
func orderReferences(ctx context.Context, db *gorm.DB, o *model.Order) (map[string]string, error) {
	refs := []struct {
		field string
		model any
		id    *uuid.UUID
	}{
		{"order_type_id", &model.OrderType{}, &o.OrderTypeID},
		{"payment_type_id", &model.PaymentType{}, &o.PaymentTypeID},
		{"customer_id", &model.Customer{}, o.CustomerID},
		{"table_id", &model.Table{}, o.TableID},
		{"floor_id", &model.Floor{}, o.FloorID},
		{"discount_id", &model.Discount{}, o.DiscountID},
		{"extra_charge_id", &model.Discount{}, o.ExtraChargeID},
	}
	errs := map[string]string{}
	for _, r := range refs {
		if r.id == nil {
			continue
		}
		ok, err := exists(ctx, db, r.model, "id = ? AND brand_id = ?", *r.id, o.BrandID)
		if err != nil {
			return nil, err
		}
		if !ok {
			errs[r.field] = "not_in_brand"
		}
	}
	if _, bad := errs["order_type_id"]; bad {
		return errs, nil
	}

	var orderType model.OrderType
	if err := db.WithContext(ctx).Select("category").First(&orderType, "id = ?", o.OrderTypeID).Error; err != nil {
		return nil, err
	}
	if orderType.Category != model.OrderTypeDineIn {
		return errs, nil
	}
	if o.FloorID == nil {
		errs["floor_id"] = "required_for_dine_in"
	}
	if o.TableID == nil {
		errs["table_id"] = "required_for_dine_in"
	}
	if len(errs) > 0 {
		return errs, nil
	}
	onFloor, err := exists(ctx, db, &model.Table{}, "id = ? AND floor_id = ?", *o.TableID, *o.FloorID)
	if err != nil {
		return nil, err
	}
	if !onFloor {
		errs["table_id"] = "not_on_floor"
	}
	return errs, nil
}

// outletDependents lists every collection keyed by outlet_id. An outlet cannot
// be deleted while any of them references it.
var outletDependents = []Dependent{
	{Label: "menus", Model: &model.Menu{}, Column: "outlet_id"},
	{Label: "categories", Model: &model.Category{}, Column: "outlet_id"},
	{Label: "items", Model: &model.Item{}, Column: "outlet_id"},
	{Label: "addons", Model: &model.Addon{}, Column: "outlet_id"},
	{Label: "discounts", Model: &model.Discount{}, Column: "outlet_id"},
	{Label: "buyxgety_offers", Model: &model.BuyXGetYOffer{}, Column: "outlet_id"},
	{Label: "order_types", Model: &model.OrderType{}, Column: "outlet_id"},
	{Label: "payment_types", Model: &model.PaymentType{}, Column: "outlet_id"},
	{Label: "taxes", Model: &model.Tax{}, Column: "outlet_id"},
	{Label: "floors", Model: &model.Floor{}, Column: "outlet_id"},
	{Label: "tables", Model: &model.Table{}, Column: "outlet_id"},
	{Label: "orders", Model: &model.Order{}, Column: "outlet_id"},
	{Label: "customers", Model: &model.Customer{}, Column: "outlet_id"},
	{Label: "whatsapp_credentials", Model: &model.WhatsAppCredential{}, Column: "outlet_id"},
}

// Resources bundles one service per scoped resource type.
type Resources struct {
	Menus               *ResourceService[*model.Menu]
	Categories          *ResourceService[*model.Category]
	Items               *ResourceService[*model.Item]
	Addons              *ResourceService[*model.Addon]
	Discounts           *ResourceService[*model.Discount]
	Offers              *ResourceService[*model.BuyXGetYOffer]
	OrderTypes          *ResourceService[*model.OrderType]
	PaymentTypes        *ResourceService[*model.PaymentType]
	Taxes               *ResourceService[*model.Tax]
	Floors              *ResourceService[*model.Floor]
	Tables              *ResourceService[*model.Table]
	Orders              *ResourceService[*model.Order]
	Customers           *ResourceService[*model.Customer]
	WhatsAppCredentials *ResourceService[*model.WhatsAppCredential]
}

func NewResources(db *gorm.DB, pub Publisher) *Resources {
	return &Resources{
		Menus:               NewResourceService(db, MenuKind, pub),
		Categories:          NewResourceService(db, CategoryKind, pub),
		Items:               NewResourceService(db, ItemKind, pub),
		Addons:              NewResourceService(db, AddonKind, pub),
		Discounts:           NewResourceService(db, DiscountKind, pub),
		Offers:              NewResourceService(db, OfferKind, pub),
		OrderTypes:          NewResourceService(db, OrderTypeKind, pub),
		PaymentTypes:        NewResourceService(db, PaymentTypeKind, pub),
		Taxes:               NewResourceService(db, TaxKind, pub),
		Floors:              NewResourceService(db, FloorKind, pub),
		Tables:              NewResourceService(db, TableKind, pub),
		Orders:              NewResourceService(db, OrderKind, pub),
		Customers:           NewResourceService(db, CustomerKind, pub),
		WhatsAppCredentials: NewResourceService(db, WhatsAppCredentialKind, pub),
	}
}
