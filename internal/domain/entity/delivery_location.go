package entity

// LocationType distinguishes pickup points from courier delivery zones
type LocationType string

// Location types
const (
	LocationPickup   LocationType = "pickup"
	LocationDelivery LocationType = "delivery"
)

// DeliveryLocation is a pickup point or a courier delivery zone with its
// configured price. Orders snapshot the resolved info instead of referencing
// rows here.
type DeliveryLocation struct {
	ID            uint64
	Name          string
	Address       string
	City          string
	LocationType  LocationType
	DeliveryPrice int64 // kopecks, zero for pickup points
	IsActive      bool
}
