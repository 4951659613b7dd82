package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	errs "github.com/podmarket/shop-backend/internal/domain/error"
)

func TestIsValidDeliveryType(t *testing.T) {
	assert.True(t, IsValidDeliveryType("pickup"))
	assert.True(t, IsValidDeliveryType("delivery"))
	assert.False(t, IsValidDeliveryType("courier"))
	assert.False(t, IsValidDeliveryType(""))
}

func TestIsValidOrderStatus(t *testing.T) {
	assert.True(t, IsValidOrderStatus("pending"))
	assert.True(t, IsValidOrderStatus("completed"))
	assert.True(t, IsValidOrderStatus("cancelled"))
	assert.False(t, IsValidOrderStatus("shipped"))
	assert.False(t, IsValidOrderStatus(""))
}

func TestOrderFormatting(t *testing.T) {
	order := &Order{TotalAmount: 250050, CashbackEarned: 2501}
	assert.Equal(t, "2500.50", order.FormattedTotal())
	assert.Equal(t, "25.01", order.FormattedCashback())
}

func TestOrderTransitionStatus(t *testing.T) {
	t.Run("Pending moves to completed", func(t *testing.T) {
		order := &Order{ID: 1, Status: OrderStatusPending}
		err := order.TransitionStatus(OrderStatusCompleted)
		assert.NoError(t, err)
		assert.Equal(t, OrderStatusCompleted, order.Status)
	})

	t.Run("Pending moves to cancelled", func(t *testing.T) {
		order := &Order{ID: 1, Status: OrderStatusPending}
		err := order.TransitionStatus(OrderStatusCancelled)
		assert.NoError(t, err)
		assert.Equal(t, OrderStatusCancelled, order.Status)
	})

	t.Run("Terminal statuses never change", func(t *testing.T) {
		testCases := []struct {
			from OrderStatus
			to   OrderStatus
		}{
			{OrderStatusCompleted, OrderStatusCancelled},
			{OrderStatusCancelled, OrderStatusCompleted},
			{OrderStatusCompleted, OrderStatusPending},
		}

		for _, tc := range testCases {
			order := &Order{ID: 1, Status: tc.from}
			err := order.TransitionStatus(tc.to)
			assert.ErrorIs(t, err, errs.ErrValidation)
			assert.Equal(t, tc.from, order.Status)
		}
	})

	t.Run("Pending to pending is rejected", func(t *testing.T) {
		order := &Order{ID: 1, Status: OrderStatusPending}
		err := order.TransitionStatus(OrderStatusPending)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("Unknown status is rejected", func(t *testing.T) {
		order := &Order{ID: 1, Status: OrderStatusPending}
		err := order.TransitionStatus(OrderStatus("shipped"))
		assert.ErrorIs(t, err, errs.ErrValidation)
		assert.Equal(t, OrderStatusPending, order.Status)
	})
}

func TestNewCartItem(t *testing.T) {
	t.Run("Valid line", func(t *testing.T) {
		item, err := NewCartItem(1, 2, 3)
		assert.NoError(t, err)
		assert.Equal(t, uint64(1), item.UserID)
		assert.Equal(t, uint64(2), item.ProductID)
		assert.Equal(t, uint32(3), item.Quantity)
	})

	t.Run("Rejects missing identifiers and zero quantity", func(t *testing.T) {
		testCases := []struct {
			description string
			userID      uint64
			productID   uint64
			quantity    uint32
		}{
			{"Missing user", 0, 2, 1},
			{"Missing product", 1, 0, 1},
			{"Zero quantity", 1, 2, 0},
		}

		for _, tc := range testCases {
			t.Run(tc.description, func(t *testing.T) {
				_, err := NewCartItem(tc.userID, tc.productID, tc.quantity)
				assert.ErrorIs(t, err, errs.ErrValidation)
			})
		}
	})
}
