package order

import (
	"fmt"
	"strings"

	"github.com/podmarket/shop-backend/internal/domain/entity"
	errs "github.com/podmarket/shop-backend/internal/domain/error"
)

// Validator provides cheap, side-effect-free validation of finalization
// requests before any transaction is opened
type Validator struct{}

// NewValidator creates a new request validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateFinalizeRequest validates all request fields
func (v *Validator) ValidateFinalizeRequest(req FinalizeRequest) error {
	if req.UserID == 0 {
		return fmt.Errorf("%w: user id is required", errs.ErrValidation)
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		return fmt.Errorf("%w: не заполнено поле: customer_name", errs.ErrValidation)
	}
	if strings.TrimSpace(req.CustomerPhone) == "" {
		return fmt.Errorf("%w: не заполнено поле: customer_phone", errs.ErrValidation)
	}
	if strings.TrimSpace(req.DeliveryType) == "" {
		return fmt.Errorf("%w: не заполнено поле: delivery_type", errs.ErrValidation)
	}
	if !entity.IsValidDeliveryType(req.DeliveryType) {
		return fmt.Errorf("%w: delivery_type must be pickup or delivery", errs.ErrValidation)
	}
	if strings.TrimSpace(req.DeliveryCity) == "" {
		return fmt.Errorf("%w: не заполнено поле: delivery_city", errs.ErrValidation)
	}
	if entity.DeliveryType(req.DeliveryType) == entity.DeliveryCourier &&
		strings.TrimSpace(req.DeliveryAddress) == "" {
		return fmt.Errorf("%w: не заполнено поле: delivery_address", errs.ErrValidation)
	}
	return nil
}
