package entity

import "time"

// Product is the authoritative price source. Catalog management lives
// elsewhere; order finalization only reads price and active status.
type Product struct {
	ID        uint64
	Name      string
	Price     int64 // kopecks
	IsActive  bool
	CreatedAt time.Time
}

// FormattedPrice returns the price as a string with 2 decimal places
func (p *Product) FormattedPrice() string {
	return FormatAmount(p.Price)
}
