package controllers

import (
	"net/http"

	"accel-erp-backend/config"
	"accel-erp-backend/models"
	"accel-erp-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetLocations lists active stock locations. Locations are managed outside
// the API.
func GetLocations(c *gin.Context) {
	query := config.DB.Where("is_active = ?", true)
	if t := c.Query("type"); t != "" {
		query = query.Where("type = ?", t)
	}

	var locations []models.StockLocation
	if err := query.Order("name").Find(&locations).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve locations")
		return
	}

	c.JSON(http.StatusOK, locations)
}

func GetLocation(c *gin.Context) {
	locationID, ok := parseID(c, "location")
	if !ok {
		return
	}

	var location models.StockLocation
	if err := config.DB.Where("id = ?", locationID).First(&location).Error; err != nil {
		respondLoadError(c, err, "Location")
		return
	}

	c.JSON(http.StatusOK, location)
}
