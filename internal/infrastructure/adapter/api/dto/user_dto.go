package dto

// InitRequest carries the mini-app bootstrap payload
type InitRequest struct {
	InitData     string `json:"initData"`
	ReferralCode string `json:"referral_code"`
}

// UserInfo is the identity block echoed back to the mini-app
type UserInfo struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	Username  string `json:"username"`
	PhotoURL  string `json:"photo_url,omitempty"`
}

// InitResponse is the bootstrap response: the resolved account plus its
// current standing
type InitResponse struct {
	Success      bool     `json:"success"`
	User         UserInfo `json:"user"`
	Balance      string   `json:"balance"`
	IsVerified   bool     `json:"is_verified"`
	ReferralCode string   `json:"referral_code"`
	IsTelegram   bool     `json:"is_telegram"`
}

// NextLevelInfo describes the next loyalty bracket for progress displays
type NextLevelInfo struct {
	Threshold string  `json:"threshold"`
	Percent   float64 `json:"percent"`
	Name      string  `json:"name"`
}

// OrderSummary is one row of the profile's order history
type OrderSummary struct {
	ID             uint64 `json:"id"`
	TotalAmount    string `json:"total_amount"`
	CashbackEarned string `json:"cashback_earned"`
	DeliveryType   string `json:"delivery_type"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at"`
}

// ProfileResponse aggregates the account view shown in the mini-app
type ProfileResponse struct {
	Balance      string         `json:"balance"`
	FirstName    string         `json:"first_name"`
	Username     string         `json:"username"`
	IsVerified   bool           `json:"is_verified"`
	ReferralCode string         `json:"referral_code"`
	TotalSpent   string         `json:"total_spent"`
	TotalOrders  uint64         `json:"total_orders"`
	TotalInvited uint64         `json:"total_invited"`
	LoyaltyLevel string         `json:"loyalty_level"`
	LoyaltyRate  float64        `json:"loyalty_rate"`
	NextLevel    *NextLevelInfo `json:"next_level,omitempty"`
	Orders       []OrderSummary `json:"orders"`
}
