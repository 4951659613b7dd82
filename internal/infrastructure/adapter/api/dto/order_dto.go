package dto

// CreateOrderRequest finalizes the caller's cart into an order. The
// idempotency key is optional; clients that send one can retry the request
// safely.
type CreateOrderRequest struct {
	CustomerName     string `json:"customer_name"`
	CustomerPhone    string `json:"customer_phone"`
	DeliveryType     string `json:"delivery_type"`
	DeliveryCity     string `json:"delivery_city"`
	PickupLocationID uint64 `json:"pickup_location_id"`
	DeliveryAddress  string `json:"delivery_address"`
	UseBalance       bool   `json:"use_balance"`
	IdempotencyKey   string `json:"idempotency_key"`
}

// CreateOrderResponse reports a finalized order
type CreateOrderResponse struct {
	Success        bool    `json:"success"`
	OrderID        uint64  `json:"order_id,omitempty"`
	TotalAmount    string  `json:"total_amount,omitempty"`
	CashbackEarned string  `json:"cashback_earned,omitempty"`
	LoyaltyLevel   string  `json:"loyalty_level,omitempty"`
	LoyaltyRate    float64 `json:"loyalty_rate,omitempty"`
	Message        string  `json:"message,omitempty"`
	Error          string  `json:"error,omitempty"`
}

// UpdateOrderStatusRequest transitions an order's status (admin action)
type UpdateOrderStatusRequest struct {
	OrderID uint64 `json:"order_id"`
	Status  string `json:"status"`
}
