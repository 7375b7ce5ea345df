package handler

import (
	"go-pos-admin/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SetupHandler struct {
	setupService service.SetupService
}

func NewSetupHandler(setupService service.SetupService) *SetupHandler {
	return &SetupHandler{setupService: setupService}
}

// Setup provisions the first owner, brand and admin staff
// POST /api/v1/setup
func (h *SetupHandler) Setup(c *fiber.Ctx) error {
	var req service.SetupRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody()
	}

	res, err := h.setupService.Run(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Setup completed",
		"data":    res,
	})
}
