package transfer

type CreateGiftCardRequest struct {
	Credits       float64 `json:"credits"`
	Count         int     `json:"count"`
	ExpiresInDays int     `json:"expires_in_days"`
}

type RedeemGiftCardRequest struct {
	Code string `json:"code"`
}

type AddCreditsRequest struct {
	UserID  int64   `json:"user_id"`
	Credits float64 `json:"credits"`
}
