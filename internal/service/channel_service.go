package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/telvana/streampanel/internal/apperrors"
	"github.com/telvana/streampanel/internal/cache"
	"github.com/telvana/streampanel/internal/models"
	"github.com/telvana/streampanel/internal/repository"
	"github.com/telvana/streampanel/internal/transfer"
)

const (
	channelListKey = "channels:all"
	ttlChannelList = 1 * time.Minute
)

type ChannelService interface {
	Get(ctx context.Context, id int64) (*models.Channel, error)
	List(ctx context.Context) ([]*models.Channel, error)
	Create(ctx context.Context, req *transfer.ChannelRequest) (*models.Channel, error)
	Update(ctx context.Context, req *transfer.ChannelRequest) (*models.Channel, error)
	Remove(ctx context.Context, id int64) (*models.Channel, error)
}

type channelService struct {
	c     repository.ChannelRepository
	cache *cache.Redis
}

func NewChannelService(c repository.ChannelRepository, rc *cache.Redis) ChannelService {
	return &channelService{c: c, cache: rc}
}

func (s *channelService) Get(ctx context.Context, id int64) (*models.Channel, error) {
	channel, found, err := s.c.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.NotFoundf("channel %d", id)
	}
	return channel, nil
}

func (s *channelService) List(ctx context.Context) ([]*models.Channel, error) {
	if v, err := cache.Get[[]*models.Channel](ctx, s.cache, channelListKey); err == nil {
		return v, nil
	}
	channels, err := s.c.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := cache.Set(ctx, s.cache, channelListKey, channels, ttlChannelList); err != nil {
		slog.Info(err.Error())
	}
	return channels, nil
}

func (s *channelService) Create(ctx context.Context, req *transfer.ChannelRequest) (*models.Channel, error) {
	if req.Name == "" || req.URL == "" {
		return nil, apperrors.Validationf("name and url are required")
	}

	channel := &models.Channel{
		Name:     req.Name,
		URL:      req.URL,
		Logo:     req.Logo,
		Category: req.Category,
		Cost:     req.Cost,
	}
	id, err := s.c.Create(ctx, channel)
	if err != nil {
		return nil, err
	}
	channel.ID = id
	s.invalidate(ctx)
	return channel, nil
}

func (s *channelService) Update(ctx context.Context, req *transfer.ChannelRequest) (*models.Channel, error) {
	channel, err := s.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		channel.Name = req.Name
	}
	if req.URL != "" {
		channel.URL = req.URL
	}
	if req.Logo != "" {
		channel.Logo = req.Logo
	}
	if req.Category != "" {
		channel.Category = req.Category
	}
	if req.Cost != 0 {
		channel.Cost = req.Cost
	}

	if err := s.c.Update(ctx, channel); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return channel, nil
}

func (s *channelService) Remove(ctx context.Context, id int64) (*models.Channel, error) {
	channel, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.c.Remove(ctx, id); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return channel, nil
}

func (s *channelService) invalidate(ctx context.Context) {
	if err := cache.Delete(ctx, s.cache, channelListKey); err != nil {
		slog.Info(err.Error())
	}
}
