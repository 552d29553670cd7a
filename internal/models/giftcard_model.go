package models

import "time"

const (
	GiftCardStatusAvailable = "AVAILABLE"
	GiftCardStatusRedeemed  = "REDEEMED"
	GiftCardStatusExpired   = "EXPIRED"
)

type GiftCard struct {
	ID         int64      `db:"id" json:"id"`
	Code       string     `db:"code" json:"code"`
	Credits    float64    `db:"credits" json:"credits"`
	Status     string     `db:"status" json:"status"`
	RedeemedBy *int64     `db:"redeemed_by" json:"redeemed_by,omitempty"`
	ExpiresAt  time.Time  `db:"expires_at" json:"expires_at"`
	RedeemedAt *time.Time `db:"redeemed_at" json:"redeemed_at,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}
