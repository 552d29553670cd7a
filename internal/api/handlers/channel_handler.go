package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/telvana/streampanel/internal/service"
	"github.com/telvana/streampanel/internal/transfer"
)

type ChannelHandler struct {
	s service.ChannelService
}

func NewChannelHandler(service service.ChannelService) *ChannelHandler {
	return &ChannelHandler{s: service}
}

func (h *ChannelHandler) ListChannels(c *fiber.Ctx) error {
	id := c.QueryInt("id", 0)
	if id != 0 {
		channel, err := h.s.Get(c.Context(), int64(id))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"channel": channel,
		})
	}

	channels, err := h.s.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"channels": channels,
	})
}

func (h *ChannelHandler) CreateChannel(c *fiber.Ctx) error {
	var req transfer.ChannelRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	channel, err := h.s.Create(c.Context(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"channel": channel,
	})
}

func (h *ChannelHandler) UpdateChannel(c *fiber.Ctx) error {
	var req transfer.ChannelRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	channel, err := h.s.Update(c.Context(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"channel": channel,
	})
}

func (h *ChannelHandler) DeleteChannel(c *fiber.Ctx) error {
	id := c.QueryInt("id", 0)

	if _, err := h.s.Remove(c.Context(), int64(id)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Channel deleted",
	})
}
