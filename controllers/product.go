package controllers

import (
	"net/http"
	"strings"

	"accel-erp-backend/config"
	"accel-erp-backend/models"
	"accel-erp-backend/utils"

	"github.com/gin-gonic/gin"
)

type CreateProductInput struct {
	Name          string   `json:"name" binding:"required,max=200"`
	PartNo        string   `json:"partNo" binding:"max=50"`
	HSNNumber     string   `json:"hsnNumber" binding:"omitempty,numeric,min=4,max=8"`
	Category      string   `json:"category" binding:"omitempty,oneof=genset spare_part accessory service"`
	Brand         string   `json:"brand" binding:"max=100"`
	UOM           string   `json:"uom" binding:"max=20"`
	Price         float64  `json:"price" binding:"min=0"`
	GSTRate       *float64 `json:"gstRate" binding:"omitempty,min=0,max=100"`
	MinStockLevel int      `json:"minStockLevel" binding:"min=0"`
}

type UpdateProductInput struct {
	Name          *string  `json:"name" binding:"omitempty,min=1,max=200"`
	PartNo        *string  `json:"partNo" binding:"omitempty,max=50"`
	HSNNumber     *string  `json:"hsnNumber" binding:"omitempty,numeric,min=4,max=8"`
	Category      *string  `json:"category" binding:"omitempty,oneof=genset spare_part accessory service"`
	Brand         *string  `json:"brand" binding:"omitempty,max=100"`
	UOM           *string  `json:"uom" binding:"omitempty,max=20"`
	Price         *float64 `json:"price" binding:"omitempty,min=0"`
	GSTRate       *float64 `json:"gstRate" binding:"omitempty,min=0,max=100"`
	MinStockLevel *int     `json:"minStockLevel" binding:"omitempty,min=0"`
	IsActive      *bool    `json:"isActive"`
}

type ProductListQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search" binding:"max=100"`
	Category string `form:"category" binding:"omitempty,oneof=genset spare_part accessory service"`
	Active   *bool  `form:"active"`
}

func CreateProduct(c *gin.Context) {
	var input CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithBindError(c, err, &input)
		return
	}

	product := models.Product{
		Name:          strings.TrimSpace(input.Name),
		PartNo:        strings.TrimSpace(input.PartNo),
		HSNNumber:     input.HSNNumber,
		Category:      models.ProductCategorySparePart,
		Brand:         input.Brand,
		UOM:           "nos",
		Price:         input.Price,
		GSTRate:       loadSettings(config.DB).DefaultGSTRate,
		MinStockLevel: input.MinStockLevel,
		IsActive:      true,
	}
	if input.Category != "" {
		product.Category = input.Category
	}
	if input.UOM != "" {
		product.UOM = input.UOM
	}
	if input.GSTRate != nil {
		product.GSTRate = *input.GSTRate
	}

	if err := config.DB.Create(&product).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create product")
		return
	}

	c.JSON(http.StatusCreated, product)
}

func GetProducts(c *gin.Context) {
	var q ProductListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondWithBindError(c, err, &q)
		return
	}

	query := config.DB.Model(&models.Product{})
	if strings.TrimSpace(q.Search) != "" {
		pattern := likePattern(q.Search)
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(part_no) LIKE ? OR hsn_number LIKE ? OR LOWER(brand) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
	if q.Category != "" {
		query = query.Where("category = ?", q.Category)
	}
	if q.Active != nil {
		query = query.Where("is_active = ?", *q.Active)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count products")
		return
	}
	page := utils.NewPagination(q.Page, q.Limit, total)

	var products []models.Product
	if err := query.Order("name").Offset(page.Offset()).Limit(page.Limit).
		Find(&products).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve products")
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products, "pagination": page})
}

func GetProduct(c *gin.Context) {
	productID, ok := parseID(c, "product")
	if !ok {
		return
	}

	var product models.Product
	if err := config.DB.Where("id = ?", productID).First(&product).Error; err != nil {
		respondLoadError(c, err, "Product")
		return
	}

	c.JSON(http.StatusOK, product)
}

func UpdateProduct(c *gin.Context) {
	productID, ok := parseID(c, "product")
	if !ok {
		return
	}

	var input UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithBindError(c, err, &input)
		return
	}

	var product models.Product
	if err := config.DB.Where("id = ?", productID).First(&product).Error; err != nil {
		respondLoadError(c, err, "Product")
		return
	}

	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.PartNo != nil {
		product.PartNo = strings.TrimSpace(*input.PartNo)
	}
	if input.HSNNumber != nil {
		product.HSNNumber = *input.HSNNumber
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Brand != nil {
		product.Brand = *input.Brand
	}
	if input.UOM != nil {
		product.UOM = *input.UOM
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.GSTRate != nil {
		product.GSTRate = *input.GSTRate
	}
	if input.MinStockLevel != nil {
		product.MinStockLevel = *input.MinStockLevel
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&product).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update product")
		return
	}

	c.JSON(http.StatusOK, product)
}

// DeleteProduct soft deletes a product. Documents keep their copied lines.
func DeleteProduct(c *gin.Context) {
	productID, ok := parseID(c, "product")
	if !ok {
		return
	}

	result := config.DB.Where("id = ?", productID).Delete(&models.Product{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Product not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
