package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/telvana/streampanel/internal/service"
	"github.com/telvana/streampanel/internal/transfer"
)

type UserHandler struct {
	s service.UserService
}

func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{s: service}
}

func (h *UserHandler) GetUserInfo(c *fiber.Ctx) error {
	userId := GetUserID(c)

	userInfo, err := h.s.GetUserInfo(c.Context(), userId)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(userInfo)
}

func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.s.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"users": users,
	})
}

func (h *UserHandler) AddCredits(c *fiber.Ctx) error {
	var req transfer.AddCreditsRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	user, err := h.s.AddCredits(c.Context(), req.UserID, req.Credits)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"user": user,
	})
}

func (h *UserHandler) RemoveUser(c *fiber.Ctx) error {
	id := c.QueryInt("id", 0)

	err := h.s.RemoveUser(c.Context(), int64(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "User removed",
	})
}
