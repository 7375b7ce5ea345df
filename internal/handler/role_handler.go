package handler

import (
	"go-pos-admin/internal/middleware"
	"go-pos-admin/internal/service"

	"github.com/gofiber/fiber/v2"
)

type RoleHandler struct {
	roleService service.RoleService
}

func NewRoleHandler(roleService service.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

// GetRolesPermissions returns the roles with their default permissions and
// the permission catalog grouped by category
// GET /api/v1/roles-permissions
func (h *RoleHandler) GetRolesPermissions(c *fiber.Ctx) error {
	out, err := h.roleService.RolesPermissions(c.UserContext(), middleware.CurrentStaff(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}
