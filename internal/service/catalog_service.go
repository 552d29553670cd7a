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
	catalogListKey = "catalog:all"
	ttlCatalogList = 5 * time.Minute
)

type CatalogService interface {
	Get(ctx context.Context, id int64) (*models.CatalogItem, error)
	List(ctx context.Context) ([]*models.CatalogItem, error)
	Create(ctx context.Context, req *transfer.CatalogItemRequest) (*models.CatalogItem, error)
	Update(ctx context.Context, req *transfer.CatalogItemRequest) (*models.CatalogItem, error)
	Remove(ctx context.Context, id int64) (*models.CatalogItem, error)
}

type catalogService struct {
	r     repository.CatalogRepository
	cache *cache.Redis
}

func NewCatalogService(r repository.CatalogRepository, rc *cache.Redis) CatalogService {
	return &catalogService{r: r, cache: rc}
}

func (s *catalogService) Get(ctx context.Context, id int64) (*models.CatalogItem, error) {
	item, found, err := s.r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.NotFoundf("catalog item %d", id)
	}
	return item, nil
}

func (s *catalogService) List(ctx context.Context) ([]*models.CatalogItem, error) {
	if v, err := cache.Get[[]*models.CatalogItem](ctx, s.cache, catalogListKey); err == nil {
		return v, nil
	}
	items, err := s.r.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := cache.Set(ctx, s.cache, catalogListKey, items, ttlCatalogList); err != nil {
		slog.Info(err.Error())
	}
	return items, nil
}

func (s *catalogService) Create(ctx context.Context, req *transfer.CatalogItemRequest) (*models.CatalogItem, error) {
	if req.Title == "" {
		return nil, apperrors.Validationf("title is required")
	}
	mediaType := req.MediaType
	if mediaType == "" {
		mediaType = models.MediaTypeLivestream
	}
	switch mediaType {
	case models.MediaTypeLivestream, models.MediaTypeMovie, models.MediaTypeSeries:
	default:
		return nil, apperrors.Validationf("unknown media_type %q", mediaType)
	}

	item := &models.CatalogItem{
		Title:       req.Title,
		Description: req.Description,
		Poster:      req.Poster,
		MediaType:   mediaType,
		Category:    req.Category,
	}
	id, err := s.r.Create(ctx, item)
	if err != nil {
		return nil, err
	}
	item.ID = id
	s.invalidate(ctx)
	return item, nil
}

func (s *catalogService) Update(ctx context.Context, req *transfer.CatalogItemRequest) (*models.CatalogItem, error) {
	item, err := s.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		item.Title = req.Title
	}
	if req.Description != "" {
		item.Description = req.Description
	}
	if req.Poster != "" {
		item.Poster = req.Poster
	}
	if req.MediaType != "" {
		item.MediaType = req.MediaType
	}
	if req.Category != "" {
		item.Category = req.Category
	}

	if err := s.r.Update(ctx, item); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return item, nil
}

func (s *catalogService) Remove(ctx context.Context, id int64) (*models.CatalogItem, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.r.Remove(ctx, id); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return item, nil
}

func (s *catalogService) invalidate(ctx context.Context) {
	if err := cache.Delete(ctx, s.cache, catalogListKey); err != nil {
		slog.Info(err.Error())
	}
}
