package model

// Role is a named bundle of default permission keys. IsSuperRole marks the
// administrative role: it passes every permission check, receives new brands
// and outlets of its owner, and cannot rescope itself through self-edit.
type Role struct {
	ID                 uint         `gorm:"primaryKey" json:"id"`
	Name               string       `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description        string       `gorm:"type:text" json:"description"`
	IsSuperRole        bool         `gorm:"not null;default:false" json:"is_super_role"`
	DefaultPermissions []Permission `gorm:"many2many:role_permissions;" json:"default_permissions,omitempty"`
}

// Role names as constants
const (
	RoleAdmin            = "Admin"
	RoleManager          = "Manager"
	RoleCashier          = "Cashier"
	RoleInventoryManager = "Inventory Manager"
	RoleStaff            = "Staff"
)

// RoleDefinition describes a seeded role and its default permission keys.
type RoleDefinition struct {
	Name        string
	Description string
	IsSuperRole bool
	Permissions []string
}

// DefaultRoles defines the roles seeded at bootstrap.
var DefaultRoles = []RoleDefinition{
	{
		Name:        RoleAdmin,
		Description: "Full brand administration",
		IsSuperRole: true,
		Permissions: AllPermissionKeys(),
	},
	{
		Name:        RoleManager,
		Description: "Outlet operations and configuration",
		Permissions: []string{
			PermDashboardView,
			PermStaffManage, PermOutletManage, PermOrderTypeManage, PermPaymentTypeManage,
			PermFloorManage, PermTableManage, PermDiscountManage,
			PermCategoryManage, PermMenuManage,
			PermCustomersView, PermCustomersEdit,
			PermOrdersView, PermOrdersEdit,
			PermWhatsAppManage,
		},
	},
	{
		Name:        RoleCashier,
		Description: "Point of sale",
		Permissions: []string{
			PermDashboardView,
			PermOrdersView, PermOrdersEdit,
			PermCustomersView,
		},
	},
	{
		Name:        RoleInventoryManager,
		Description: "Menu and floor configuration",
		Permissions: []string{
			PermCategoryManage, PermMenuManage, PermAddonManage,
			PermFloorManage, PermTableManage, PermTaxManage,
			PermBuyXGetYManage,
		},
	},
	{
		Name:        RoleStaff,
		Description: "Read-only floor staff",
		Permissions: []string{
			PermDashboardView,
			PermOrdersView,
			PermCustomersView,
		},
	},
}

// FindRoleDefinition looks up a seeded role by name.
func FindRoleDefinition(name string) (RoleDefinition, bool) {
	for _, r := range DefaultRoles {
		if r.Name == name {
			return r, true
		}
	}
	return RoleDefinition{}, false
}
