package handler

import (
	"go-pos-admin/internal/middleware"
	"go-pos-admin/internal/service"

	"github.com/gofiber/fiber/v2"
)

type StaffHandler struct {
	staffService service.StaffService
}

func NewStaffHandler(staffService service.StaffService) *StaffHandler {
	return &StaffHandler{staffService: staffService}
}

// CreateStaff handles staff creation
// POST /api/v1/staff
func (h *StaffHandler) CreateStaff(c *fiber.Ctx) error {
	var req service.CreateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody()
	}

	staff, err := h.staffService.Create(c.UserContext(), middleware.CurrentStaff(c), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Staff created successfully",
		"data":    staff,
	})
}

// GetStaffList returns staff sharing a brand with the caller
// GET /api/v1/staff
func (h *StaffHandler) GetStaffList(c *fiber.Ctx) error {
	q, err := listQuery(c)
	if err != nil {
		return err
	}
	list, err := h.staffService.List(c.UserContext(), middleware.CurrentStaff(c), q)
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// GetStaff returns a single staff member
// GET /api/v1/staff/:id
func (h *StaffHandler) GetStaff(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	staff, err := h.staffService.Get(c.UserContext(), middleware.CurrentStaff(c), id)
	if err != nil {
		return err
	}
	return c.JSON(staff)
}

// UpdateStaff handles partial staff update
// PUT /api/v1/staff/:id
func (h *StaffHandler) UpdateStaff(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req service.UpdateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody()
	}

	staff, err := h.staffService.Update(c.UserContext(), middleware.CurrentStaff(c), id, &req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Staff updated successfully",
		"data":    staff,
	})
}

// UpdateStaffPermissions replaces the permission set
// PUT /api/v1/staff/:id/permissions
func (h *StaffHandler) UpdateStaffPermissions(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req struct {
		Permissions []string `json:"permissions"`
	}
	if err := c.BodyParser(&req); err != nil {
		return invalidBody()
	}

	staff, err := h.staffService.ReplacePermissions(c.UserContext(), middleware.CurrentStaff(c), id, req.Permissions)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Permissions updated successfully",
		"data":    staff,
	})
}

// DeleteStaff
// DELETE /api/v1/staff/:id
func (h *StaffHandler) DeleteStaff(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.staffService.Delete(c.UserContext(), middleware.CurrentStaff(c), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Staff deleted successfully"})
}
