package controllers

import (
	"errors"
	"net/http"

	"accel-erp-backend/config"
	"accel-erp-backend/models"
	"accel-erp-backend/services"
	"accel-erp-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StockQuery struct {
	LocationID string `form:"location" binding:"omitempty,uuid"`
	Search     string `form:"search" binding:"max=100"`
	Category   string `form:"category" binding:"omitempty,oneof=genset spare_part accessory service"`
	LowStock   bool   `form:"lowStock"`
}

type StockAdjustInput struct {
	ProductID     string `json:"product" binding:"required,uuid"`
	LocationID    string `json:"location" binding:"required,uuid"`
	Delta         int    `json:"delta" binding:"required,ne=0"`
	Reason        string `json:"reason" binding:"required,oneof=purchase sale return adjustment damage transfer"`
	ReferenceType string `json:"referenceType" binding:"omitempty,oneof=invoice purchase_order quotation manual"`
	ReferenceID   string `json:"referenceId" binding:"max=64"`
	Notes         string `json:"notes" binding:"max=1000"`
}

func (StockAdjustInput) ValidationMessages() map[string]string {
	return map[string]string{
		"delta.required": "Quantity change is required",
		"delta.ne":       "Quantity change cannot be 0",
		"reason.oneof":   "Invalid adjustment reason",
	}
}

type StockTransactionQuery struct {
	ProductID  string `form:"product" binding:"omitempty,uuid"`
	LocationID string `form:"location" binding:"omitempty,uuid"`
	Reason     string `form:"reason" binding:"omitempty,oneof=purchase sale return adjustment damage transfer"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

// loadStockLevels reads levels with product and location, filtered in the
// database by location and category and in memory by search term.
func loadStockLevels(q StockQuery) ([]models.StockLevel, error) {
	query := config.DB.Preload("Product").Preload("Location").
		Joins("JOIN products ON products.id = stock_levels.product_id AND products.deleted_at IS NULL")
	if q.LocationID != "" {
		query = query.Where("stock_levels.location_id = ?", q.LocationID)
	}
	if q.Category != "" {
		query = query.Where("products.category = ?", q.Category)
	}

	var levels []models.StockLevel
	if err := query.Find(&levels).Error; err != nil {
		return nil, err
	}
	return services.FilterStockLevels(levels, q.Search), nil
}

// GetStock lists stock levels per product and location
func GetStock(c *gin.Context) {
	var q StockQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondWithBindError(c, err, &q)
		return
	}

	levels, err := loadStockLevels(q)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve stock")
		return
	}
	if q.LowStock {
		filtered := levels[:0]
		for _, lvl := range levels {
			if lvl.Available() <= lvl.Product.MinStockLevel {
				filtered = append(filtered, lvl)
			}
		}
		levels = filtered
	}

	c.JSON(http.StatusOK, levels)
}

// GetStockSummary aggregates stock per product across locations
func GetStockSummary(c *gin.Context) {
	var q StockQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondWithBindError(c, err, &q)
		return
	}

	levels, err := loadStockLevels(q)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve stock")
		return
	}

	summary := services.AggregateStock(levels)
	if q.LowStock {
		filtered := summary[:0]
		for _, s := range summary {
			if s.LowStock {
				filtered = append(filtered, s)
			}
		}
		summary = filtered
	}

	c.JSON(http.StatusOK, summary)
}

// AdjustStock applies a ledgered quantity change at one location
func AdjustStock(c *gin.Context) {
	var input StockAdjustInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithBindError(c, err, &input)
		return
	}

	var level models.StockLevel
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Where("id = ?", input.ProductID).First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errBadReference{"Product not found"}
			}
			return err
		}
		var location models.StockLocation
		if err := tx.Where("id = ? AND is_active = ?", input.LocationID, true).First(&location).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errBadReference{"Location not found"}
			}
			return err
		}

		var err error
		level, err = services.AdjustStock(tx, services.StockAdjustment{
			ProductID:     product.ID,
			LocationID:    location.ID,
			Delta:         input.Delta,
			Reason:        input.Reason,
			ReferenceType: input.ReferenceType,
			ReferenceID:   input.ReferenceID,
			Notes:         input.Notes,
		})
		level.Product = product
		level.Location = location
		return err
	})
	if errors.Is(err, services.ErrInsufficientStock) {
		utils.RespondWithError(c, http.StatusConflict, "Insufficient stock for this adjustment")
		return
	}
	if err != nil {
		respondLoadError(c, err, "Stock level")
		return
	}

	c.JSON(http.StatusOK, level)
}

// GetStockTransactions lists the stock ledger, newest first
func GetStockTransactions(c *gin.Context) {
	var q StockTransactionQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondWithBindError(c, err, &q)
		return
	}

	query := config.DB.Model(&models.StockTransaction{})
	if q.ProductID != "" {
		query = query.Where("product_id = ?", uuid.MustParse(q.ProductID))
	}
	if q.LocationID != "" {
		query = query.Where("location_id = ?", uuid.MustParse(q.LocationID))
	}
	if q.Reason != "" {
		query = query.Where("reason = ?", q.Reason)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count stock transactions")
		return
	}
	page := utils.NewPagination(q.Page, q.Limit, total)

	var entries []models.StockTransaction
	if err := query.Order("created_at DESC").Offset(page.Offset()).Limit(page.Limit).
		Find(&entries).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve stock transactions")
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": entries, "pagination": page})
}
