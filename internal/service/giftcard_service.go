package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/telvana/streampanel/internal/apperrors"
	"github.com/telvana/streampanel/internal/models"
	"github.com/telvana/streampanel/internal/repository"
	"github.com/telvana/streampanel/internal/transfer"
)

const (
	defaultGiftCardValidity = 365 * 24 * time.Hour
	maxGiftCardBatch        = 100
)

type GiftCardService interface {
	Generate(ctx context.Context, req *transfer.CreateGiftCardRequest) ([]*models.GiftCard, error)
	List(ctx context.Context) ([]*models.GiftCard, error)
	Remove(ctx context.Context, id int64) error
	Redeem(ctx context.Context, userID int64, code string) (*models.User, error)
	ExpireOverdue(ctx context.Context) (int, error)
}

type giftCardService struct {
	g repository.GiftCardRepository
	u repository.UserRepository

	now      func() time.Time
	generate func() (string, error)
}

func NewGiftCardService(g repository.GiftCardRepository, u repository.UserRepository) GiftCardService {
	return &giftCardService{
		g:        g,
		u:        u,
		now:      time.Now,
		generate: newCode,
	}
}

func (s *giftCardService) Generate(ctx context.Context, req *transfer.CreateGiftCardRequest) ([]*models.GiftCard, error) {
	if req.Credits <= 0 {
		return nil, apperrors.Validationf("credits must be a positive number")
	}
	count := req.Count
	if count <= 0 {
		count = 1
	}
	if count > maxGiftCardBatch {
		return nil, apperrors.Validationf("at most %d gift cards per batch", maxGiftCardBatch)
	}

	expiresAt := s.now().Add(defaultGiftCardValidity)
	if req.ExpiresInDays > 0 {
		expiresAt = s.now().AddDate(0, 0, req.ExpiresInDays)
	}

	cards := make([]*models.GiftCard, 0, count)
	for i := 0; i < count; i++ {
		code, err := s.unusedCode(ctx)
		if err != nil {
			return nil, err
		}
		card := &models.GiftCard{
			Code:      code,
			Credits:   req.Credits,
			Status:    models.GiftCardStatusAvailable,
			ExpiresAt: expiresAt,
		}
		id, err := s.g.Create(ctx, card)
		if err != nil {
			return nil, err
		}
		card.ID = id
		cards = append(cards, card)
	}
	return cards, nil
}

func (s *giftCardService) unusedCode(ctx context.Context) (string, error) {
	var code string
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		candidate, err := s.generate()
		if err != nil {
			slog.Info(err.Error())
			return "", err
		}
		code = candidate

		_, exists, err := s.g.GetByCode(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return code, nil
}

func (s *giftCardService) List(ctx context.Context) ([]*models.GiftCard, error) {
	return s.g.List(ctx)
}

func (s *giftCardService) Remove(ctx context.Context, id int64) error {
	_, found, err := s.g.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return apperrors.NotFoundf("gift card %d", id)
	}
	return s.g.Remove(ctx, id)
}

func (s *giftCardService) Redeem(ctx context.Context, userID int64, code string) (*models.User, error) {
	if code == "" {
		return nil, apperrors.Validationf("code is required")
	}

	card, found, err := s.g.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.NotFoundf("gift card %s", code)
	}

	if card.Status != models.GiftCardStatusAvailable {
		return nil, apperrors.Validationf("gift card has already been redeemed or expired")
	}

	now := s.now()
	if card.ExpiresAt.Before(now) {
		card.Status = models.GiftCardStatusExpired
		if err := s.g.Update(ctx, card); err != nil {
			slog.Info(err.Error())
		}
		return nil, apperrors.Validationf("gift card has expired")
	}

	user, found, err := s.u.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.NotFoundf("user %d", userID)
	}

	card.Status = models.GiftCardStatusRedeemed
	card.RedeemedBy = &user.ID
	card.RedeemedAt = &now
	if err := s.g.Update(ctx, card); err != nil {
		return nil, err
	}

	if err := s.u.AddCredits(ctx, user.ID, card.Credits); err != nil {
		return nil, err
	}
	user.Credits += card.Credits
	return user, nil
}

// ExpireOverdue demotes AVAILABLE cards whose expiry date has passed. It is
// run from the hourly cron job; nothing equivalent exists for subscriptions,
// whose end date is informational only.
func (s *giftCardService) ExpireOverdue(ctx context.Context) (int, error) {
	cards, err := s.g.ListExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, card := range cards {
		card.Status = models.GiftCardStatusExpired
		if err := s.g.Update(ctx, card); err != nil {
			slog.Info(err.Error())
			continue
		}
		expired++
	}
	return expired, nil
}
