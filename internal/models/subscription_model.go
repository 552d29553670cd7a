package models

import (
	"time"
)

// Plan buckets stored alongside the precise end date. The bucket is a
// billing-tier label only; end_date always reflects the literal month count
// that was requested.
const (
	PlanOneMonth     = "ONE_MONTH"
	PlanThreeMonths  = "THREE_MONTHS"
	PlanSixMonths    = "SIX_MONTHS"
	PlanTwelveMonths = "TWELVE_MONTHS"
)

const (
	SubscriptionStatusActive   = "ACTIVE"
	SubscriptionStatusDisabled = "DISABLED"
	SubscriptionStatusExpired  = "EXPIRED"
)

type Subscription struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	ChannelID int64     `db:"channel_id" json:"channel_id"`
	Code      string    `db:"code" json:"code"`
	Duration  string    `db:"duration" json:"duration"`
	Credits   float64   `db:"credits" json:"credits"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	User    *User    `db:"-" json:"user,omitempty"`
	Channel *Channel `db:"-" json:"channel,omitempty"`
}

// PlanForMonths maps a requested month count to its billing bucket.
// Anything above six months is sold as a yearly plan.
func PlanForMonths(months float64) string {
	switch {
	case months <= 1:
		return PlanOneMonth
	case months <= 3:
		return PlanThreeMonths
	case months <= 6:
		return PlanSixMonths
	default:
		return PlanTwelveMonths
	}
}
