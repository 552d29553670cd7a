package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/telvana/streampanel/internal/models"
)

type GiftCardRepository interface {
	GetByID(ctx context.Context, id int64) (*models.GiftCard, bool, error)
	GetByCode(ctx context.Context, code string) (*models.GiftCard, bool, error)
	List(ctx context.Context) ([]*models.GiftCard, error)
	ListExpired(ctx context.Context, now time.Time) ([]*models.GiftCard, error)
	Create(ctx context.Context, card *models.GiftCard) (int64, error)
	Update(ctx context.Context, card *models.GiftCard) error
	Remove(ctx context.Context, id int64) error
}

type giftCardRepository struct {
	db *sql.DB
}

func NewGiftCardRepository(db *sql.DB) GiftCardRepository {
	return &giftCardRepository{db: db}
}

const giftCardColumns = "id, code, credits, status, redeemed_by, expires_at, redeemed_at, created_at, updated_at"

func scanGiftCard(row interface{ Scan(...any) error }) (*models.GiftCard, error) {
	var card models.GiftCard
	err := row.Scan(&card.ID, &card.Code, &card.Credits, &card.Status, &card.RedeemedBy, &card.ExpiresAt, &card.RedeemedAt, &card.CreatedAt, &card.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *giftCardRepository) GetByID(ctx context.Context, id int64) (*models.GiftCard, bool, error) {
	query := "SELECT " + giftCardColumns + " FROM gift_cards WHERE id = $1"
	card, err := scanGiftCard(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return card, true, nil
}

func (r *giftCardRepository) GetByCode(ctx context.Context, code string) (*models.GiftCard, bool, error) {
	query := "SELECT " + giftCardColumns + " FROM gift_cards WHERE code = $1"
	card, err := scanGiftCard(r.db.QueryRowContext(ctx, query, code))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return card, true, nil
}

func (r *giftCardRepository) List(ctx context.Context) ([]*models.GiftCard, error) {
	query := "SELECT " + giftCardColumns + " FROM gift_cards ORDER BY id"
	return r.queryList(ctx, query)
}

func (r *giftCardRepository) ListExpired(ctx context.Context, now time.Time) ([]*models.GiftCard, error) {
	query := "SELECT " + giftCardColumns + " FROM gift_cards WHERE status = $1 AND expires_at < $2"
	return r.queryList(ctx, query, models.GiftCardStatusAvailable, now)
}

func (r *giftCardRepository) queryList(ctx context.Context, query string, args ...any) ([]*models.GiftCard, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var cards []*models.GiftCard
	for rows.Next() {
		card, err := scanGiftCard(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, rows.Err()
}

func (r *giftCardRepository) Create(ctx context.Context, card *models.GiftCard) (int64, error) {
	query := "INSERT INTO gift_cards (code, credits, status, expires_at) VALUES ($1, $2, $3, $4) RETURNING id"
	var id int64
	err := r.db.QueryRowContext(ctx, query, card.Code, card.Credits, card.Status, card.ExpiresAt).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *giftCardRepository) Update(ctx context.Context, card *models.GiftCard) error {
	query := `
		UPDATE gift_cards
		SET credits = $1,
			status = $2,
			redeemed_by = $3,
			redeemed_at = $4,
			expires_at = $5,
			updated_at = $6
		WHERE id = $7
	`
	_, err := r.db.ExecContext(ctx, query, card.Credits, card.Status, card.RedeemedBy, card.RedeemedAt, card.ExpiresAt, time.Now(), card.ID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *giftCardRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM gift_cards WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
