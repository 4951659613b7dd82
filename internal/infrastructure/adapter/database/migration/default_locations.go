package migration

import (
	"gorm.io/gorm"

	coreport "github.com/podmarket/shop-backend/internal/domain/port/core"
	"github.com/podmarket/shop-backend/internal/infrastructure/adapter/model"
)

// Default delivery catalog. Prices are in kopecks.
var defaultLocations = []model.DeliveryLocation{
	{Name: "Пункт выдачи 1", Address: "ул. Ленина, д. 10", City: "Москва", LocationType: "pickup", DeliveryPrice: 0, IsActive: true},
	{Name: "Пункт выдачи 2", Address: "пр. Мира, д. 25", City: "Санкт-Петербург", LocationType: "pickup", DeliveryPrice: 0, IsActive: true},
	{Name: "Пункт выдачи 3", Address: "ул. Советская, д. 5", City: "Новосибирск", LocationType: "pickup", DeliveryPrice: 0, IsActive: true},
	{Name: "Доставка по городу", Address: "Доставка курьером", City: "Москва", LocationType: "delivery", DeliveryPrice: 30000, IsActive: true},
	{Name: "Доставка по городу", Address: "Доставка курьером", City: "Санкт-Петербург", LocationType: "delivery", DeliveryPrice: 25000, IsActive: true},
	{Name: "Доставка по городу", Address: "Доставка курьером", City: "Новосибирск", LocationType: "delivery", DeliveryPrice: 20000, IsActive: true},
}

// SeedDefaultLocations inserts the starter delivery catalog when the table is
// empty. Idempotent across restarts.
func SeedDefaultLocations(db *gorm.DB, logger coreport.Logger) error {
	var count int64
	if err := db.Model(&model.DeliveryLocation{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if err := db.Create(&defaultLocations).Error; err != nil {
		logger.Error("Failed to seed delivery locations", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	logger.Info("Seeded default delivery locations", map[string]any{
		"count": len(defaultLocations),
	})
	return nil
}
