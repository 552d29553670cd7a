package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/telvana/streampanel/internal/apperrors"
	"github.com/telvana/streampanel/internal/models"
	"github.com/telvana/streampanel/internal/repository"
	"github.com/telvana/streampanel/internal/transfer"
	"github.com/telvana/streampanel/pkg/utils"
)

type AuthService interface {
	Register(ctx context.Context, req *transfer.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *transfer.LoginRequest) (*models.User, error)
}

type authService struct {
	u repository.UserRepository
}

func NewAuthService(u repository.UserRepository) AuthService {
	return &authService{u: u}
}

func (s *authService) Register(ctx context.Context, req *transfer.RegisterRequest) (*models.User, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperrors.Validationf("a valid email is required")
	}
	if len(req.Password) < 8 {
		return nil, apperrors.Validationf("password must be at least 8 characters")
	}

	_, exists, err := s.u.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Validationf("email is already registered")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	username := req.Username
	if username == "" {
		username = emailLocalPart(email)
	}
	name := req.Name
	if name == "" {
		name = username
	}

	user := &models.User{
		Email:        email,
		Username:     username,
		Name:         name,
		PasswordHash: hash,
		Role:         models.RoleCustomer,
		Credits:      0,
	}
	id, err := s.u.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id
	return user, nil
}

func (s *authService) Login(ctx context.Context, req *transfer.LoginRequest) (*models.User, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	user, found, err := s.u.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !found || !utils.CheckPassword(user.PasswordHash, req.Password) {
		// Same answer for unknown email and wrong password.
		return nil, apperrors.Validationf("invalid email or password")
	}

	return user, nil
}
