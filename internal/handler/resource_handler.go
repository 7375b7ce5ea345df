package handler

import (
	"context"
	"encoding/json"

	"go-pos-admin/internal/middleware"
	"go-pos-admin/internal/model"
	"go-pos-admin/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CRUDService is the shape shared by the brand, outlet and scoped resource
// services. Payloads are raw JSON merged onto the stored record.
type CRUDService[T any] interface {
	Create(ctx context.Context, caller *model.Staff, payload []byte) (T, error)
	Update(ctx context.Context, caller *model.Staff, id uuid.UUID, payload []byte) (T, error)
	Delete(ctx context.Context, caller *model.Staff, id uuid.UUID) error
	List(ctx context.Context, caller *model.Staff, q service.ListQuery) ([]T, error)
	Get(ctx context.Context, caller *model.Staff, id uuid.UUID) (T, error)
}

// BulkService is implemented by resources with a bulk upsert endpoint.
type BulkService interface {
	BulkUpsert(ctx context.Context, caller *model.Staff, elems []json.RawMessage) (*service.BulkResult, error)
}

type ResourceHandler[T any] struct {
	label string
	svc   CRUDService[T]
}

// NewResourceHandler serves svc. label names the resource in messages.
func NewResourceHandler[T any](label string, svc CRUDService[T]) *ResourceHandler[T] {
	return &ResourceHandler[T]{label: label, svc: svc}
}

// Mount registers list, fetch, create, update and delete on r, plus
// POST /bulk when bulk is set and the service supports it.
func (h *ResourceHandler[T]) Mount(r fiber.Router, bulk bool) {
	if _, ok := h.svc.(BulkService); ok && bulk {
		r.Post("/bulk", h.Bulk)
	}
	r.Get("", h.List)
	r.Post("", h.Create)
	r.Get("/:id", h.Get)
	r.Put("/:id", h.Update)
	r.Patch("/:id", h.Update)
	r.Delete("/:id", h.Delete)
}

func (h *ResourceHandler[T]) List(c *fiber.Ctx) error {
	q, err := listQuery(c)
	if err != nil {
		return err
	}
	list, err := h.svc.List(c.UserContext(), middleware.CurrentStaff(c), q)
	if err != nil {
		return err
	}
	return c.JSON(list)
}

func (h *ResourceHandler[T]) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	rec, err := h.svc.Get(c.UserContext(), middleware.CurrentStaff(c), id)
	if err != nil {
		return err
	}
	return c.JSON(rec)
}

func (h *ResourceHandler[T]) Create(c *fiber.Ctx) error {
	rec, err := h.svc.Create(c.UserContext(), middleware.CurrentStaff(c), c.Body())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": h.label + " created successfully",
		"data":    rec,
	})
}

func (h *ResourceHandler[T]) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	rec, err := h.svc.Update(c.UserContext(), middleware.CurrentStaff(c), id, c.Body())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": h.label + " updated successfully",
		"data":    rec,
	})
}

func (h *ResourceHandler[T]) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.UserContext(), middleware.CurrentStaff(c), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": h.label + " deleted successfully"})
}

// Bulk upserts a JSON array. Per-element failures are part of a 200 response.
func (h *ResourceHandler[T]) Bulk(c *fiber.Ctx) error {
	bulk, ok := h.svc.(BulkService)
	if !ok {
		return fiber.ErrNotFound
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(c.Body(), &elems); err != nil {
		return invalidBody()
	}
	res, err := bulk.BulkUpsert(c.UserContext(), middleware.CurrentStaff(c), elems)
	if err != nil {
		return err
	}
	return c.JSON(res)
}
