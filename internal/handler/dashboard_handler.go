package handler

import (
	"strconv"

	"go-pos-admin/internal/middleware"
	"go-pos-admin/internal/service"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultMovementDays = 7
	maxMovementDays     = 366
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetOrderMovement returns per-day order counts and revenue for charts
// Query params: days (default 7)
func (h *DashboardHandler) GetOrderMovement(c *fiber.Ctx) error {
	days, err := strconv.Atoi(c.Query("days", strconv.Itoa(defaultMovementDays)))
	if err != nil || days <= 0 {
		days = defaultMovementDays
	}
	if days > maxMovementDays {
		days = maxMovementDays
	}

	data, err := h.service.GetOrderMovement(c.UserContext(), middleware.CurrentStaff(c), days)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"period": days,
		"data":   data,
	})
}

// GetDashboardStats returns overview statistics
func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.service.GetDashboardStats(c.UserContext(), middleware.CurrentStaff(c))
	if err != nil {
		return err
	}

	return c.JSON(stats)
}
