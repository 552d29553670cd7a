package service

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/telvana/streampanel/internal/apperrors"
	"github.com/telvana/streampanel/internal/models"
	"github.com/telvana/streampanel/internal/repository"
	"github.com/telvana/streampanel/internal/transfer"
)

const (
	codeAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength      = 10
	maxCodeAttempts = 5
)

type SubscriptionService interface {
	Create(ctx context.Context, req *transfer.CreateSubscriptionRequest) (*models.Subscription, error)
	Get(ctx context.Context, id int64) (*models.Subscription, error)
	List(ctx context.Context, channelID int64) ([]*models.Subscription, error)
	Update(ctx context.Context, req *transfer.UpdateSubscriptionRequest) (*models.Subscription, error)
	Delete(ctx context.Context, id int64, code string) error
}

type subscriptionService struct {
	u repository.UserRepository
	c repository.ChannelRepository
	s repository.SubscriptionRepository

	// overridable in tests
	now      func() time.Time
	generate func() (string, error)
}

func NewSubscriptionService(u repository.UserRepository, c repository.ChannelRepository, s repository.SubscriptionRepository) SubscriptionService {
	return &subscriptionService{
		u:        u,
		c:        c,
		s:        s,
		now:      time.Now,
		generate: newCode,
	}
}

func newCode() (string, error) {
	return gonanoid.Generate(codeAlphabet, codeLength)
}

func (s *subscriptionService) Create(ctx context.Context, req *transfer.CreateSubscriptionRequest) (*models.Subscription, error) {
	if req.ChannelID == nil || *req.ChannelID <= 0 {
		return nil, apperrors.Validationf("channelId is required")
	}

	months := 1.0
	if req.DurationMonths != nil {
		months = *req.DurationMonths
		if months <= 0 || math.IsNaN(months) || math.IsInf(months, 0) {
			return nil, apperrors.Validationf("durationMonths must be a positive number")
		}
	}

	channel, found, err := s.c.GetByID(ctx, *req.ChannelID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.NotFoundf("channel %d", *req.ChannelID)
	}

	startDate := s.now()
	if req.StartDate != "" {
		startDate, err = parseDate(req.StartDate)
		if err != nil {
			return nil, apperrors.Validationf("startDate must be an ISO date")
		}
	}
	// Calendar-month arithmetic: the end date follows Go's month overflow
	// behavior (Jan 31 + 1 month = Mar 2/3), not fixed 30-day periods.
	endDate := startDate.AddDate(0, int(months), 0)

	code := strings.TrimSpace(req.Code)
	if code == "" {
		code, err = s.resolveCode(ctx)
		if err != nil {
			return nil, err
		}
	}

	user, err := s.resolveUser(ctx, req)
	if err != nil {
		return nil, err
	}

	subscription := &models.Subscription{
		UserID:    user.ID,
		ChannelID: channel.ID,
		Code:      code,
		Duration:  models.PlanForMonths(months),
		Credits:   req.Credit,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    models.SubscriptionStatusActive,
	}

	id, err := s.s.Create(ctx, subscription)
	if err != nil {
		return nil, err
	}
	subscription.ID = id
	subscription.User = user
	subscription.Channel = channel

	return subscription, nil
}

// resolveCode generates activation codes until one does not collide with an
// existing subscription, bounded at maxCodeAttempts. The final candidate is
// kept even if it still collides; the unique index on the code column is the
// backstop at that point.
func (s *subscriptionService) resolveCode(ctx context.Context) (string, error) {
	var code string
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		candidate, err := s.generate()
		if err != nil {
			slog.Info(err.Error())
			return "", err
		}
		code = candidate

		exists, err := s.s.ExistsByCode(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return code, nil
}

func (s *subscriptionService) resolveUser(ctx context.Context, req *transfer.CreateSubscriptionRequest) (*models.User, error) {
	if req.UserID != nil {
		user, found, err := s.u.GetByID(ctx, *req.UserID)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, apperrors.NotFoundf("user %d", *req.UserID)
		}
		return user, nil
	}

	email := strings.TrimSpace(req.UserEmail)
	if email == "" {
		return nil, apperrors.Validationf("identify a user with userId or userEmail")
	}

	user, found, err := s.u.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if found {
		return user, nil
	}

	name := req.UserName
	if name == "" {
		name = emailLocalPart(email)
	}
	newUser := &models.User{
		Email:    email,
		Username: emailLocalPart(email),
		Name:     name,
		Role:     models.RoleCustomer,
		Credits:  0,
	}
	id, err := s.u.Create(ctx, newUser)
	if err != nil {
		return nil, err
	}
	newUser.ID = id
	return newUser, nil
}

func (s *subscriptionService) Get(ctx context.Context, id int64) (*models.Subscription, error) {
	subscription, found, err := s.s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.NotFoundf("subscription %d", id)
	}
	return subscription, nil
}

func (s *subscriptionService) List(ctx context.Context, channelID int64) ([]*models.Subscription, error) {
	if channelID != 0 {
		return s.s.ListByChannel(ctx, channelID)
	}
	return s.s.List(ctx)
}

func (s *subscriptionService) Update(ctx context.Context, req *transfer.UpdateSubscriptionRequest) (*models.Subscription, error) {
	if req.ID == 0 {
		return nil, apperrors.Validationf("id is required")
	}

	subscription, found, err := s.s.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.NotFoundf("subscription %d", req.ID)
	}

	if req.Code != nil && strings.TrimSpace(*req.Code) != "" {
		subscription.Code = strings.TrimSpace(*req.Code)
	}
	if req.Credit != nil {
		subscription.Credits = *req.Credit
	}
	if req.StartDate != nil {
		startDate, err := parseDate(*req.StartDate)
		if err != nil {
			return nil, apperrors.Validationf("startDate must be an ISO date")
		}
		subscription.StartDate = startDate
	}
	if req.DurationMonths != nil {
		months := *req.DurationMonths
		if months <= 0 || math.IsNaN(months) || math.IsInf(months, 0) {
			return nil, apperrors.Validationf("durationMonths must be a positive number")
		}
		// A new duration always counts from now, not from the original
		// start date.
		subscription.EndDate = s.now().AddDate(0, int(months), 0)
		subscription.Duration = models.PlanForMonths(months)
	}
	if req.Status != nil && *req.Status != "" {
		subscription.Status = *req.Status
	}

	if err := s.s.Update(ctx, subscription); err != nil {
		return nil, err
	}
	return subscription, nil
}

func (s *subscriptionService) Delete(ctx context.Context, id int64, code string) error {
	if id != 0 {
		_, found, err := s.s.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !found {
			return apperrors.NotFoundf("subscription %d", id)
		}
		return s.s.Remove(ctx, id)
	}

	if code != "" {
		subscription, found, err := s.s.GetByCode(ctx, code)
		if err != nil {
			return err
		}
		if !found {
			return apperrors.NotFoundf("subscription code %s", code)
		}
		return s.s.Remove(ctx, subscription.ID)
	}

	return apperrors.Validationf("id or code is required")
}
