package handlers

import (
	"encoding/base64"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/telvana/streampanel/internal/queue"
	"github.com/telvana/streampanel/internal/service"
	"github.com/telvana/streampanel/internal/transfer"
)

type UploadHandler struct {
	cdn         *service.CDNService
	AsynqClient *asynq.Client
}

func NewUploadHandler(cdn *service.CDNService, asynqClient *asynq.Client) *UploadHandler {
	return &UploadHandler{cdn: cdn, AsynqClient: asynqClient}
}

func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	var req transfer.UploadRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	// Accept both raw base64 and data URIs.
	raw := req.Data
	if i := strings.Index(raw, ";base64,"); i != -1 {
		raw = raw[i+len(";base64,"):]
	}
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Data must be base64 encoded",
		})
	}

	result, err := h.cdn.Upload(c.Context(), req.FileName, data)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// DeleteUpload enqueues deletion instead of calling the CDN inline; listing
// the bucket to resolve a file name can be slow and is retried by the worker
// on transient failures.
func (h *UploadHandler) DeleteUpload(c *fiber.Ctx) error {
	key := c.Query("key")
	fileName := c.Query("fileName")

	if key == "" && fileName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "key or fileName is required",
		})
	}

	err := queue.EnqueueAssetDeletion(h.AsynqClient, queue.DeleteAssetPayload{
		Key:      key,
		FileName: fileName,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error scheduling deletion",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Deletion scheduled",
	})
}
