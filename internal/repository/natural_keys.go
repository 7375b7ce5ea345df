package repository

import "go-pos-admin/internal/model"

const (
	whereBoundOutlet = "apply_on_all_outlets = false"
	whereAllOutlets  = "apply_on_all_outlets = true"
)

var BrandConstraints = []Constraint[*model.Brand]{
	{Name: "full_name", Columns: []string{"full_name"}},
	{Name: "short_name", Columns: []string{"short_name"}},
	{Name: "email", Columns: []string{"email"}},
	{Name: "phone", Columns: []string{"phone"}},
	{Name: "gst_no", Columns: []string{"gst_no"}},
	{Name: "license_no", Columns: []string{"license_no"}},
	{Name: "food_license", Columns: []string{"food_license"}},
}

var OutletConstraints = []Constraint[*model.Outlet]{
	{Name: "brand_name", Columns: []string{"brand_id", "name"}, Fields: []string{"name"}},
	{Name: "brand_code", Columns: []string{"brand_id", "code"}, Fields: []string{"code"}},
	{Name: "brand_email", Columns: []string{"brand_id", "email"}, Fields: []string{"email"}},
	{Name: "brand_phone", Columns: []string{"brand_id", "phone"}, Fields: []string{"phone"}},
}

var MenuConstraints = []Constraint[*model.Menu]{
	{
		Name: "outlet_name", Columns: []string{"brand_id", "outlet_id", "name"}, Fields: []string{"name"},
		Where: whereBoundOutlet, Applies: func(m *model.Menu) bool { return !m.ApplyOnAllOutlets },
	},
	{
		Name: "brand_name", Columns: []string{"brand_id", "name"}, Fields: []string{"name"},
		Where: whereAllOutlets, Applies: func(m *model.Menu) bool { return m.ApplyOnAllOutlets },
	},
}

var CategoryConstraints = []Constraint[*model.Category]{
	{Name: "outlet_name", Columns: []string{"outlet_id", "name"}, Fields: []string{"name"}},
}

var ItemConstraints = []Constraint[*model.Item]{
	{Name: "menu_name", Columns: []string{"menu_id", "name"}, Fields: []string{"name"}},
}

var AddonConstraints = []Constraint[*model.Addon]{
	{Name: "outlet_name", Columns: []string{"outlet_id", "name"}, Fields: []string{"name"}},
}

var DiscountConstraints = []Constraint[*model.Discount]{
	{
		Name: "outlet_name_day", Columns: []string{"brand_id", "outlet_id", "name", "day"}, Fields: []string{"name", "day"},
		Where: whereBoundOutlet, Applies: func(d *model.Discount) bool { return !d.ApplyOnAllOutlets },
	},
	{
		Name: "brand_name_day", Columns: []string{"brand_id", "name", "day"}, Fields: []string{"name", "day"},
		Where: whereAllOutlets, Applies: func(d *model.Discount) bool { return d.ApplyOnAllOutlets },
	},
	{
		Name: "coupon_code", Columns: []string{"brand_id", "coupon_code"}, Fields: []string{"coupon_code"},
		Where: "apply_type = 'coupon'", Applies: (*model.Discount).IsCoupon,
	},
}

var OfferConstraints = []Constraint[*model.BuyXGetYOffer]{
	{
		Name: "outlet_name_day", Columns: []string{"brand_id", "outlet_id", "name", "day"}, Fields: []string{"name", "day"},
		Where: whereBoundOutlet, Applies: func(o *model.BuyXGetYOffer) bool { return !o.ApplyOnAllOutlets },
	},
	{
		Name: "brand_name_day", Columns: []string{"brand_id", "name", "day"}, Fields: []string{"name", "day"},
		Where: whereAllOutlets, Applies: func(o *model.BuyXGetYOffer) bool { return o.ApplyOnAllOutlets },
	},
}

var OrderTypeConstraints = []Constraint[*model.OrderType]{
	{Name: "outlet_category", Columns: []string{"outlet_id", "category"}, Fields: []string{"category"}},
	{Name: "brand_name", Columns: []string{"brand_id", "name"}, Fields: []string{"name"}},
}

var PaymentTypeConstraints = []Constraint[*model.PaymentType]{
	{Name: "outlet_name", Columns: []string{"outlet_id", "name"}, Fields: []string{"name"}},
}

var TaxConstraints = []Constraint[*model.Tax]{
	{
		Name: "outlet_active", Columns: []string{"outlet_id"}, Fields: []string{"outlet_id"},
		Where: "status = 'active'", Applies: func(t *model.Tax) bool { return t.Status == model.StatusActive },
	},
	{Name: "brand_tax_name", Columns: []string{"brand_id", "tax_name"}, Fields: []string{"tax_name"}},
}

var FloorConstraints = []Constraint[*model.Floor]{
	{Name: "outlet_floor_name", Columns: []string{"outlet_id", "floor_name"}, Fields: []string{"floor_name"}},
}

var TableConstraints = []Constraint[*model.Table]{
	{Name: "floor_table_name", Columns: []string{"floor_id", "table_name"}, Fields: []string{"table_name"}},
}

var CustomerConstraints = []Constraint[*model.Customer]{
	{
		Name: "brand_phone", Columns: []string{"brand_id", "phone"}, Fields: []string{"phone"},
		Where: "phone <> ''", Applies: func(c *model.Customer) bool { return c.Phone != "" },
	},
}

var WhatsAppCredentialConstraints = []Constraint[*model.WhatsAppCredential]{
	{Name: "outlet_name", Columns: []string{"outlet_id", "name"}, Fields: []string{"name"}},
	{Name: "outlet", Columns: []string{"outlet_id"}, Fields: []string{"outlet_id"}},
}
