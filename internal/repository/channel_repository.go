package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/telvana/streampanel/internal/models"
)

type ChannelRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Channel, bool, error)
	List(ctx context.Context) ([]*models.Channel, error)
	Create(ctx context.Context, channel *models.Channel) (int64, error)
	Update(ctx context.Context, channel *models.Channel) error
	Remove(ctx context.Context, id int64) error
}

type channelRepository struct {
	db *sql.DB
}

func NewChannelRepository(db *sql.DB) ChannelRepository {
	return &channelRepository{db: db}
}

func (r *channelRepository) GetByID(ctx context.Context, id int64) (*models.Channel, bool, error) {
	var channel models.Channel
	query := "SELECT id, name, url, logo, category, cost, created_at, updated_at FROM channels WHERE id = $1"
	err := r.db.QueryRowContext(ctx, query, id).Scan(&channel.ID, &channel.Name, &channel.URL, &channel.Logo, &channel.Category, &channel.Cost, &channel.CreatedAt, &channel.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return &channel, true, nil
}

func (r *channelRepository) List(ctx context.Context) ([]*models.Channel, error) {
	query := "SELECT id, name, url, logo, category, cost, created_at, updated_at FROM channels ORDER BY name"
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var channels []*models.Channel
	for rows.Next() {
		var channel models.Channel
		err := rows.Scan(&channel.ID, &channel.Name, &channel.URL, &channel.Logo, &channel.Category, &channel.Cost, &channel.CreatedAt, &channel.UpdatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		channels = append(channels, &channel)
	}
	return channels, rows.Err()
}

func (r *channelRepository) Create(ctx context.Context, channel *models.Channel) (int64, error) {
	query := "INSERT INTO channels (name, url, logo, category, cost) VALUES ($1, $2, $3, $4, $5) RETURNING id"
	var id int64
	err := r.db.QueryRowContext(ctx, query, channel.Name, channel.URL, channel.Logo, channel.Category, channel.Cost).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *channelRepository) Update(ctx context.Context, channel *models.Channel) error {
	query := `
		UPDATE channels
		SET name = $1,
			url = $2,
			logo = $3,
			category = $4,
			cost = $5,
			updated_at = $6
		WHERE id = $7
	`
	_, err := r.db.ExecContext(ctx, query, channel.Name, channel.URL, channel.Logo, channel.Category, channel.Cost, time.Now(), channel.ID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *channelRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM channels WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
