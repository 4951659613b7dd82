package model

// DeliveryLocation represents the database model for pickup points and
// courier delivery zones
type DeliveryLocation struct {
	ID            uint64 `gorm:"primaryKey;autoIncrement"`
	Name          string `gorm:"not null;size:255"`
	Address       string `gorm:"not null;size:512"`
	City          string `gorm:"size:255;index"`
	LocationType  string `gorm:"not null;size:32;default:pickup;index"`
	DeliveryPrice int64  `gorm:"not null;default:0"` // Kopecks
	IsActive      bool   `gorm:"not null"` // no column default: gorm drops IsActive=false on insert when one is set
}

// TableName specifies the table name for DeliveryLocation
func (DeliveryLocation) TableName() string {
	return "delivery_locations"
}
