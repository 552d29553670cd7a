package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/telvana/streampanel/internal/service"
	"github.com/telvana/streampanel/internal/transfer"
)

type SubscriptionHandler struct {
	s service.SubscriptionService
}

func NewSubscriptionHandler(service service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{s: service}
}

func (h *SubscriptionHandler) CreateSubscription(c *fiber.Ctx) error {
	var req transfer.CreateSubscriptionRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	subscription, err := h.s.Create(c.Context(), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"subscription": subscription,
	})
}

func (h *SubscriptionHandler) ListSubscriptions(c *fiber.Ctx) error {
	id := c.QueryInt("id", 0)
	if id != 0 {
		subscription, err := h.s.Get(c.Context(), int64(id))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"subscription": subscription,
		})
	}

	channelID := c.QueryInt("channelId", 0)
	subscriptions, err := h.s.List(c.Context(), int64(channelID))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"subscriptions": subscriptions,
	})
}

func (h *SubscriptionHandler) UpdateSubscription(c *fiber.Ctx) error {
	var req transfer.UpdateSubscriptionRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	subscription, err := h.s.Update(c.Context(), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"subscription": subscription,
	})
}

func (h *SubscriptionHandler) DeleteSubscription(c *fiber.Ctx) error {
	id := c.QueryInt("id", 0)
	code := c.Query("code")

	if err := h.s.Delete(c.Context(), int64(id), code); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Subscription deleted",
	})
}
