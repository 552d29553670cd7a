package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/telvana/streampanel/internal/service"
	"github.com/telvana/streampanel/internal/transfer"
)

type CatalogHandler struct {
	s service.CatalogService
}

func NewCatalogHandler(service service.CatalogService) *CatalogHandler {
	return &CatalogHandler{s: service}
}

func (h *CatalogHandler) ListCatalog(c *fiber.Ctx) error {
	id := c.QueryInt("id", 0)
	if id != 0 {
		item, err := h.s.Get(c.Context(), int64(id))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"item": item,
		})
	}

	items, err := h.s.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"items": items,
	})
}

func (h *CatalogHandler) CreateCatalogItem(c *fiber.Ctx) error {
	var req transfer.CatalogItemRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	item, err := h.s.Create(c.Context(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"item": item,
	})
}

func (h *CatalogHandler) UpdateCatalogItem(c *fiber.Ctx) error {
	var req transfer.CatalogItemRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	item, err := h.s.Update(c.Context(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"item": item,
	})
}

func (h *CatalogHandler) DeleteCatalogItem(c *fiber.Ctx) error {
	id := c.QueryInt("id", 0)

	if _, err := h.s.Remove(c.Context(), int64(id)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Catalog item deleted",
	})
}
