package handler

import (
	"go-pos-admin/internal/middleware"
	"go-pos-admin/internal/model"
	"go-pos-admin/internal/service"
	"go-pos-admin/internal/ws"

	"github.com/gofiber/fiber/v2"
)

// Deps is everything the HTTP surface is wired to.
type Deps struct {
	Cookie    CookieConfig
	Auth      service.AuthService
	Staff     service.StaffService
	Brands    service.BrandService
	Outlets   service.OutletService
	Roles     service.RoleService
	Setup     service.SetupService
	Dashboard service.DashboardService
	Resources *service.Resources
	Hub       *ws.Hub
}

// RegisterRoutes mounts the API under /api/v1 and the live feed under /ws.
func RegisterRoutes(app *fiber.App, d Deps) {
	authHandler := NewAuthHandler(d.Auth, d.Cookie)
	staffHandler := NewStaffHandler(d.Staff)
	roleHandler := NewRoleHandler(d.Roles)
	setupHandler := NewSetupHandler(d.Setup)
	dashHandler := NewDashboardHandler(d.Dashboard)
	requireAuth := middleware.RequireAuth(d.Auth, d.Cookie.Name)

	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/pin-login", authHandler.PinLogin)
	auth.Post("/logout", authHandler.Logout)
	api.Post("/setup", setupHandler.Setup)

	// ============ PROTECTED ROUTES ============
	auth.Get("/me", requireAuth, authHandler.Me)
	auth.Post("/change-password", requireAuth, authHandler.ChangePassword)
	auth.Post("/heartbeat", requireAuth, authHandler.Heartbeat)

	protected := api.Group("", requireAuth)

	protected.Get("/roles-permissions", roleHandler.GetRolesPermissions)

	protected.Get("/dashboard/stats", middleware.RequirePermission(model.PermDashboardView), dashHandler.GetDashboardStats)
	protected.Get("/dashboard/order-movement", middleware.RequirePermission(model.PermDashboardView), dashHandler.GetOrderMovement)

	// Self-edit and self-fetch only need an active account; the service
	// enforces staff_manage for everything else.
	protected.Get("/staff", staffHandler.GetStaffList)
	protected.Get("/staff/:id", staffHandler.GetStaff)
	protected.Post("/staff", middleware.RequirePermission(model.PermStaffManage), staffHandler.CreateStaff)
	protected.Put("/staff/:id", staffHandler.UpdateStaff)
	protected.Put("/staff/:id/permissions", middleware.RequirePermission(model.PermStaffManage), staffHandler.UpdateStaffPermissions)
	protected.Delete("/staff/:id", middleware.RequirePermission(model.PermStaffManage), staffHandler.DeleteStaff)

	brands := protected.Group("/brands", middleware.RequirePermission(model.PermBrandManage))
	NewResourceHandler[*model.Brand]("Brand", d.Brands).Mount(brands, false)
	outlets := protected.Group("/outlets", middleware.RequirePermission(model.PermOutletManage))
	NewResourceHandler[*model.Outlet]("Outlet", d.Outlets).Mount(outlets, false)

	r := d.Resources
	NewResourceHandler[*model.Menu]("Menu", r.Menus).Mount(protected.Group("/menus"), false)
	NewResourceHandler[*model.Category]("Category", r.Categories).Mount(protected.Group("/categories"), false)
	NewResourceHandler[*model.Item]("Item", r.Items).Mount(protected.Group("/items"), true)
	NewResourceHandler[*model.Addon]("Addon", r.Addons).Mount(protected.Group("/addons"), false)
	NewResourceHandler[*model.Discount]("Discount", r.Discounts).Mount(protected.Group("/discounts"), false)
	NewResourceHandler[*model.BuyXGetYOffer]("Offer", r.Offers).Mount(protected.Group("/buyxgety-offers"), false)
	NewResourceHandler[*model.OrderType]("Order type", r.OrderTypes).Mount(protected.Group("/order-types"), false)
	NewResourceHandler[*model.PaymentType]("Payment type", r.PaymentTypes).Mount(protected.Group("/payment-types"), false)
	NewResourceHandler[*model.Tax]("Tax", r.Taxes).Mount(protected.Group("/taxes"), false)
	NewResourceHandler[*model.Floor]("Floor", r.Floors).Mount(protected.Group("/floors"), false)
	NewResourceHandler[*model.Table]("Table", r.Tables).Mount(protected.Group("/tables"), false)
	NewResourceHandler[*model.Order]("Order", r.Orders).Mount(protected.Group("/orders"), false)
	NewResourceHandler[*model.Customer]("Customer", r.Customers).Mount(protected.Group("/customers"), true)
	NewResourceHandler[*model.WhatsAppCredential]("WhatsApp credential", r.WhatsAppCredentials).Mount(protected.Group("/whatsapp-credentials"), false)

	// WebSocket Route
	if d.Hub != nil {
		wsHandler := NewWSHandler(d.Hub)
		app.Get("/ws", requireAuth, wsHandler.Upgrade, wsHandler.Serve())
	}
}
