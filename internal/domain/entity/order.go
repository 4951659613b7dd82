package entity

import (
	"fmt"
	"time"

	errs "github.com/podmarket/shop-backend/internal/domain/error"
)

// DeliveryType identifies how an order is handed over
type DeliveryType string

// Delivery types
const (
	DeliveryPickup  DeliveryType = "pickup"
	DeliveryCourier DeliveryType = "delivery"
)

// OrderStatus defines possible status values for an order
type OrderStatus string

// Order statuses. An order is immutable once created except for this field,
// which is driven externally (admin action).
const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order records a finalized cart. Delivery facts are snapshotted at creation
// time, so later changes to the location catalog never alter history.
type Order struct {
	ID             uint64
	UserID         uint64
	IdempotencyKey string // Client-generated token guarding against double commit
	TotalAmount    int64  // items total + delivery price, kopecks
	CashbackEarned int64  // kopecks
	CustomerName   string
	CustomerPhone  string
	PickupLocation string // Human-readable delivery snapshot
	DeliveryType   DeliveryType
	DeliveryCity   string
	DeliveryAddress string
	DeliveryPrice  int64 // kopecks
	Status         OrderStatus
	CreatedAt      time.Time
}

// IsValidDeliveryType validates if the delivery type is allowed
func IsValidDeliveryType(deliveryType string) bool {
	return deliveryType == string(DeliveryPickup) || deliveryType == string(DeliveryCourier)
}

// IsValidOrderStatus validates if the status is allowed
func IsValidOrderStatus(status string) bool {
	return status == string(OrderStatusPending) ||
		status == string(OrderStatusCompleted) ||
		status == string(OrderStatusCancelled)
}

// FormattedTotal returns the order total with 2 decimal places
func (o *Order) FormattedTotal() string {
	return FormatAmount(o.TotalAmount)
}

// FormattedCashback returns the earned cashback with 2 decimal places
func (o *Order) FormattedCashback() string {
	return FormatAmount(o.CashbackEarned)
}

// TransitionStatus moves the order to a new status. Pending orders can move
// to completed or cancelled; terminal statuses never change.
func (o *Order) TransitionStatus(status OrderStatus) error {
	if !IsValidOrderStatus(string(status)) {
		return fmt.Errorf("%w: unknown order status %q", errs.ErrValidation, status)
	}
	if o.Status != OrderStatusPending {
		return fmt.Errorf("%w: order %d is already %s", errs.ErrValidation, o.ID, o.Status)
	}
	if status == OrderStatusPending {
		return fmt.Errorf("%w: order %d is already pending", errs.ErrValidation, o.ID)
	}
	o.Status = status
	return nil
}
