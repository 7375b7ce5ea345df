package handler

import (
	"go-pos-admin/internal/apperror"
	"go-pos-admin/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func paramID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, apperror.Validation(map[string]string{"id": "invalid"})
	}
	return id, nil
}

// listQuery reads the optional brand_id, outlet_id and status filters.
func listQuery(c *fiber.Ctx) (service.ListQuery, error) {
	q := service.ListQuery{Status: c.Query("status")}
	for name, dst := range map[string]**uuid.UUID{"brand_id": &q.BrandID, "outlet_id": &q.OutletID} {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return q, apperror.Validation(map[string]string{name: "invalid"})
		}
		*dst = &id
	}
	return q, nil
}
