package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/telvana/streampanel/internal/models"
)

type CatalogRepository interface {
	GetByID(ctx context.Context, id int64) (*models.CatalogItem, bool, error)
	List(ctx context.Context) ([]*models.CatalogItem, error)
	Create(ctx context.Context, item *models.CatalogItem) (int64, error)
	Update(ctx context.Context, item *models.CatalogItem) error
	Remove(ctx context.Context, id int64) error
}

type catalogRepository struct {
	db *sql.DB
}

func NewCatalogRepository(db *sql.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) GetByID(ctx context.Context, id int64) (*models.CatalogItem, bool, error) {
	var item models.CatalogItem
	query := "SELECT id, title, description, poster, media_type, category, created_at FROM catalog_items WHERE id = $1"
	err := r.db.QueryRowContext(ctx, query, id).Scan(&item.ID, &item.Title, &item.Description, &item.Poster, &item.MediaType, &item.Category, &item.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return &item, true, nil
}

func (r *catalogRepository) List(ctx context.Context) ([]*models.CatalogItem, error) {
	query := "SELECT id, title, description, poster, media_type, category, created_at FROM catalog_items ORDER BY title"
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var items []*models.CatalogItem
	for rows.Next() {
		var item models.CatalogItem
		err := rows.Scan(&item.ID, &item.Title, &item.Description, &item.Poster, &item.MediaType, &item.Category, &item.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

func (r *catalogRepository) Create(ctx context.Context, item *models.CatalogItem) (int64, error) {
	query := "INSERT INTO catalog_items (title, description, poster, media_type, category) VALUES ($1, $2, $3, $4, $5) RETURNING id"
	var id int64
	err := r.db.QueryRowContext(ctx, query, item.Title, item.Description, item.Poster, item.MediaType, item.Category).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *catalogRepository) Update(ctx context.Context, item *models.CatalogItem) error {
	query := `
		UPDATE catalog_items
		SET title = $1,
			description = $2,
			poster = $3,
			media_type = $4,
			category = $5
		WHERE id = $6
	`
	_, err := r.db.ExecContext(ctx, query, item.Title, item.Description, item.Poster, item.MediaType, item.Category, item.ID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *catalogRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM catalog_items WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
