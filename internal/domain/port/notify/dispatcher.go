package notify

import "context"

// OrderFacts carries the finalized-order data handed to the dispatcher after
// commit. Everything here is already durable; the dispatcher can only fail to
// tell someone about it.
type OrderFacts struct {
	OrderID       uint64
	CustomerName  string
	CustomerPhone string
	Username      string
	TotalAmount   string
	Cashback      string
	LoyaltyLevel  string
	DeliveryType  string
	DeliveryInfo  string
}

// Dispatcher sends outbound notifications about finalized orders. Invoked
// strictly after commit; a returned error is logged by the caller and never
// rolls back the order.
type Dispatcher interface {
	DispatchOrderCreated(ctx context.Context, facts OrderFacts) error
}
