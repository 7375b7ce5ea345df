package model

// Permission is a capability key from the fixed catalog.
type Permission struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Key      string `gorm:"type:varchar(64);uniqueIndex;not null" json:"key"`
	Category string `gorm:"type:varchar(64);not null" json:"category"`
}

// Permission keys.
const (
	PermDashboardView = "dashboard_view"

	PermBrandManage       = "brand_manage"
	PermStaffManage       = "staff_manage"
	PermOutletManage      = "outlet_manage"
	PermOrderTypeManage   = "order_type_manage"
	PermPaymentTypeManage = "payment_type_manage"

	PermTaxManage      = "tax_manage"
	PermFloorManage    = "floor_manage"
	PermTableManage    = "table_manage"
	PermDiscountManage = "discount_manage"
	PermBuyXGetYManage = "buyxgety_manage"

	PermCategoryManage = "category_manage"
	PermMenuManage     = "menu_manage"
	PermAddonManage    = "addon_manage"

	PermCustomersView   = "customers_view"
	PermCustomersEdit   = "customers_edit"
	PermCustomersDelete = "customers_delete"
	PermOrdersView      = "orders_view"
	PermOrdersEdit      = "orders_edit"
	PermOrdersDelete    = "orders_delete"
	PermWhatsAppManage  = "whatsapp_manage"
)

// PermissionGroup is one category of the catalog.
type PermissionGroup struct {
	Category string   `json:"category"`
	Keys     []string `json:"keys"`
}

// DefaultPermissionGroups is the catalog seeded at bootstrap.
var DefaultPermissionGroups = []PermissionGroup{
	{Category: "Dashboard", Keys: []string{PermDashboardView}},
	{Category: "Brand Configuration", Keys: []string{
		PermBrandManage, PermStaffManage, PermOutletManage, PermOrderTypeManage, PermPaymentTypeManage,
	}},
	{Category: "Master Configuration", Keys: []string{
		PermTaxManage, PermFloorManage, PermTableManage, PermDiscountManage, PermBuyXGetYManage,
	}},
	{Category: "Menu Configuration", Keys: []string{
		PermCategoryManage, PermMenuManage, PermAddonManage,
	}},
	{Category: "CRM", Keys: []string{
		PermCustomersView, PermCustomersEdit, PermCustomersDelete,
		PermOrdersView, PermOrdersEdit, PermOrdersDelete,
		PermWhatsAppManage,
	}},
}

// DefaultPermissions flattens DefaultPermissionGroups.
func DefaultPermissions() []Permission {
	var out []Permission
	for _, g := range DefaultPermissionGroups {
		for _, k := range g.Keys {
			out = append(out, Permission{Key: k, Category: g.Category})
		}
	}
	return out
}

// AllPermissionKeys lists every catalog key in catalog order.
func AllPermissionKeys() []string {
	var keys []string
	for _, g := range DefaultPermissionGroups {
		keys = append(keys, g.Keys...)
	}
	return keys
}

// PermissionKeys extracts the keys of a permission list.
func PermissionKeys(perms []Permission) []string {
	keys := make([]string, len(perms))
	for i, p := range perms {
		keys[i] = p.Key
	}
	return keys
}
