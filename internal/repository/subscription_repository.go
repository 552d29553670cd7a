package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/telvana/streampanel/internal/models"
)

type SubscriptionRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Subscription, bool, error)
	GetByCode(ctx context.Context, code string) (*models.Subscription, bool, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	List(ctx context.Context) ([]*models.Subscription, error)
	ListByChannel(ctx context.Context, channelID int64) ([]*models.Subscription, error)
	Create(ctx context.Context, subscription *models.Subscription) (int64, error)
	Update(ctx context.Context, subscription *models.Subscription) error
	Remove(ctx context.Context, id int64) error
}

type subscriptionRepository struct {
	db *sql.DB
}

func NewSubscriptionRepository(db *sql.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

const subscriptionColumns = "id, user_id, channel_id, code, duration, credits, start_date, end_date, status, created_at, updated_at"

func scanSubscription(row interface{ Scan(...any) error }) (*models.Subscription, error) {
	var s models.Subscription
	err := row.Scan(&s.ID, &s.UserID, &s.ChannelID, &s.Code, &s.Duration, &s.Credits, &s.StartDate, &s.EndDate, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *subscriptionRepository) GetByID(ctx context.Context, id int64) (*models.Subscription, bool, error) {
	query := "SELECT " + subscriptionColumns + " FROM subscriptions WHERE id = $1"
	s, err := scanSubscription(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return s, true, nil
}

func (r *subscriptionRepository) GetByCode(ctx context.Context, code string) (*models.Subscription, bool, error) {
	query := "SELECT " + subscriptionColumns + " FROM subscriptions WHERE code = $1"
	s, err := scanSubscription(r.db.QueryRowContext(ctx, query, code))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return s, true, nil
}

func (r *subscriptionRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	query := "SELECT 1 FROM subscriptions WHERE code = $1"
	var result int
	err := r.db.QueryRowContext(ctx, query, code).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}
	return true, nil
}

func (r *subscriptionRepository) List(ctx context.Context) ([]*models.Subscription, error) {
	query := "SELECT " + subscriptionColumns + " FROM subscriptions ORDER BY id"
	return r.queryList(ctx, query)
}

func (r *subscriptionRepository) ListByChannel(ctx context.Context, channelID int64) ([]*models.Subscription, error) {
	query := "SELECT " + subscriptionColumns + " FROM subscriptions WHERE channel_id = $1 ORDER BY id"
	return r.queryList(ctx, query, channelID)
}

func (r *subscriptionRepository) queryList(ctx context.Context, query string, args ...any) ([]*models.Subscription, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var subscriptions []*models.Subscription
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		subscriptions = append(subscriptions, s)
	}
	return subscriptions, rows.Err()
}

func (r *subscriptionRepository) Create(ctx context.Context, subscription *models.Subscription) (int64, error) {
	query := `
		INSERT INTO subscriptions (user_id, channel_id, code, duration, credits, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		subscription.UserID, subscription.ChannelID, subscription.Code, subscription.Duration,
		subscription.Credits, subscription.StartDate, subscription.EndDate, subscription.Status).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *subscriptionRepository) Update(ctx context.Context, subscription *models.Subscription) error {
	query := `
		UPDATE subscriptions
		SET code = $1,
			duration = $2,
			credits = $3,
			start_date = $4,
			end_date = $5,
			status = $6,
			updated_at = $7
		WHERE id = $8
	`
	_, err := r.db.ExecContext(ctx, query,
		subscription.Code, subscription.Duration, subscription.Credits,
		subscription.StartDate, subscription.EndDate, subscription.Status,
		time.Now(), subscription.ID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *subscriptionRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM subscriptions WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
