package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/telvana/streampanel/internal/service"
	"github.com/telvana/streampanel/internal/transfer"
)

type GiftCardHandler struct {
	s service.GiftCardService
}

func NewGiftCardHandler(service service.GiftCardService) *GiftCardHandler {
	return &GiftCardHandler{s: service}
}

func (h *GiftCardHandler) CreateGiftCards(c *fiber.Ctx) error {
	var req transfer.CreateGiftCardRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	cards, err := h.s.Generate(c.Context(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"gift_cards": cards,
	})
}

func (h *GiftCardHandler) ListGiftCards(c *fiber.Ctx) error {
	cards, err := h.s.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"gift_cards": cards,
	})
}

func (h *GiftCardHandler) DeleteGiftCard(c *fiber.Ctx) error {
	id := c.QueryInt("id", 0)

	if err := h.s.Remove(c.Context(), int64(id)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Gift card deleted",
	})
}

func (h *GiftCardHandler) RedeemGiftCard(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var req transfer.RedeemGiftCardRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	user, err := h.s.Redeem(c.Context(), userID, req.Code)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Gift card redeemed",
		"user":    user,
	})
}
