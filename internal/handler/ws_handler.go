package handler

import (
	"go-pos-admin/internal/middleware"
	"go-pos-admin/internal/model"
	"go-pos-admin/internal/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

type WSHandler struct {
	hub *ws.Hub
}

func NewWSHandler(hub *ws.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

// Upgrade lets only authenticated websocket handshakes through and hands the
// staff to the connection.
func (h *WSHandler) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	c.Locals("ws_staff", middleware.CurrentStaff(c))
	return c.Next()
}

// Serve registers the connection with the hub scoped to the staff's brands
// GET /ws
func (h *WSHandler) Serve() fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		staff, _ := c.Locals("ws_staff").(*model.Staff)
		if staff == nil {
			_ = c.Close()
			return
		}

		h.hub.Register(c, staff.ID, staff.BrandIDs())
		defer h.hub.Unregister(c)

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	})
}
