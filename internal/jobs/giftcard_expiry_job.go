package job

import (
	"context"
	"log/slog"

	"github.com/telvana/streampanel/internal/service"
)

type GiftCardExpiryJob struct {
	g service.GiftCardService
}

func NewGiftCardExpiryJob(g service.GiftCardService) *GiftCardExpiryJob {
	return &GiftCardExpiryJob{
		g: g,
	}
}

// ExpireGiftCards demotes overdue AVAILABLE gift cards to EXPIRED. It runs
// on the hourly cron schedule set up in main.
func (c *GiftCardExpiryJob) ExpireGiftCards() {
	ctx := context.Background()

	expired, err := c.g.ExpireOverdue(ctx)
	if err != nil {
		slog.Info(err.Error())
		return
	}
	if expired > 0 {
		slog.Info("expired gift cards", "count", expired)
	}
}
