package service

import (
	"context"
	"fmt"

	"github.com/telvana/streampanel/internal/apperrors"
	"github.com/telvana/streampanel/internal/models"
	"github.com/telvana/streampanel/internal/repository"
)

type UserService interface {
	GetUserInfo(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	AddCredits(ctx context.Context, id int64, delta float64) (*models.User, error)
	RemoveUser(ctx context.Context, userID int64) error
}

type userService struct {
	u repository.UserRepository
}

func NewUserService(u repository.UserRepository) UserService {
	return &userService{
		u: u,
	}
}

func (s *userService) GetUserInfo(ctx context.Context, id int64) (*models.User, error) {
	user, isExist, err := s.u.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("Error getting user info")
	}

	if !isExist {
		return nil, apperrors.NotFoundf("user %d", id)
	}

	return user, nil
}

func (s *userService) List(ctx context.Context) ([]*models.User, error) {
	return s.u.List(ctx)
}

func (s *userService) AddCredits(ctx context.Context, id int64, delta float64) (*models.User, error) {
	_, isExist, err := s.u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isExist {
		return nil, apperrors.NotFoundf("user %d", id)
	}

	if err := s.u.AddCredits(ctx, id, delta); err != nil {
		return nil, err
	}

	user, _, err := s.u.GetByID(ctx, id)
	return user, err
}

func (s *userService) RemoveUser(ctx context.Context, userID int64) error {
	err := s.u.Remove(ctx, userID)
	if err != nil {
		return err
	}
	return nil
}
