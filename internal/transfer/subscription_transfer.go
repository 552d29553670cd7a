package transfer

// CreateSubscriptionRequest is the admin/storefront purchase body. Either
// UserID or UserEmail identifies the buyer; UserEmail upserts a user on
// first purchase.
type CreateSubscriptionRequest struct {
	UserID         *int64   `json:"userId"`
	UserEmail      string   `json:"userEmail"`
	UserName       string   `json:"userName"`
	ChannelID      *int64   `json:"channelId"`
	DurationMonths *float64 `json:"durationMonths"`
	Credit         float64  `json:"credit"`
	Code           string   `json:"code"`
	StartDate      string   `json:"startDate"`
}

// UpdateSubscriptionRequest carries a partial patch; nil fields are left
// untouched. DurationMonths recomputes the end date from now.
type UpdateSubscriptionRequest struct {
	ID             int64    `json:"id"`
	Code           *string  `json:"code"`
	Credit         *float64 `json:"credit"`
	DurationMonths *float64 `json:"durationMonths"`
	StartDate      *string  `json:"startDate"`
	Status         *string  `json:"status"`
}
