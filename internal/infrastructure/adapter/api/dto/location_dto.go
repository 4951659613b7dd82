package dto

// LocationDTO is one pickup point or delivery zone
type LocationDTO struct {
	ID            uint64 `json:"id"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	City          string `json:"city"`
	LocationType  string `json:"location_type"`
	DeliveryPrice string `json:"delivery_price"`
}
