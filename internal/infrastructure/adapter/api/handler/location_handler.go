package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/podmarket/shop-backend/internal/domain/entity"
	coreport "github.com/podmarket/shop-backend/internal/domain/port/core"
	"github.com/podmarket/shop-backend/internal/domain/port/persistence"
	"github.com/podmarket/shop-backend/internal/infrastructure/adapter/api/dto"
)

// LocationHandler serves the delivery catalog reads
type LocationHandler struct {
	locations persistence.LocationRepository
	logger    coreport.Logger
}

// NewLocationHandler creates a new location handler instance
func NewLocationHandler(locations persistence.LocationRepository, logger coreport.Logger) *LocationHandler {
	return &LocationHandler{
		locations: locations,
		logger:    logger,
	}
}

// Cities handles GET /api/cities: the distinct cities with courier delivery
func (h *LocationHandler) Cities(c *gin.Context) {
	cities, err := h.locations.ListCities(c.Request.Context())
	if err != nil {
		h.logger.Error("City list read failed", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusOK, []string{})
		return
	}
	c.JSON(http.StatusOK, cities)
}

// Locations handles GET /api/pickup-locations?type=&city=
func (h *LocationHandler) Locations(c *gin.Context) {
	locationType := entity.LocationType(c.DefaultQuery("type", string(entity.LocationPickup)))
	city := c.Query("city")

	locations, err := h.locations.ListByType(c.Request.Context(), locationType, city)
	if err != nil {
		h.logger.Error("Location list read failed", map[string]any{
			"type":  string(locationType),
			"error": err.Error(),
		})
		c.JSON(http.StatusOK, []dto.LocationDTO{})
		return
	}

	resp := make([]dto.LocationDTO, 0, len(locations))
	for _, loc := range locations {
		resp = append(resp, dto.LocationDTO{
			ID:            loc.ID,
			Name:          loc.Name,
			Address:       loc.Address,
			City:          loc.City,
			LocationType:  string(loc.LocationType),
			DeliveryPrice: entity.FormatAmount(loc.DeliveryPrice),
		})
	}
	c.JSON(http.StatusOK, resp)
}
