package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"accel-erp-backend/models"
	"accel-erp-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AddressInput is a billing or shipping address on a request.
type AddressInput struct {
	ID       string `json:"id" binding:"max=64"`
	Address  string `json:"address" binding:"max=500"`
	District string `json:"district" binding:"max=100"`
	State    string `json:"state" binding:"max=100"`
	Pincode  string `json:"pincode" binding:"omitempty,len=6,numeric"`
	GSTIN    string `json:"gstNumber" binding:"omitempty,gstin"`
}

func (a *AddressInput) toModel() models.Address {
	if a == nil {
		return models.Address{}
	}
	return models.Address{
		ID:       a.ID,
		Address:  strings.TrimSpace(a.Address),
		District: a.District,
		State:    a.State,
		Pincode:  a.Pincode,
		GSTIN:    strings.ToUpper(a.GSTIN),
	}
}

// LineItemInput is one priced line on a document request. Either a product
// or a description must be given. Unit price and tax rate default to the
// product's when left out.
type LineItemInput struct {
	ProductID   string   `json:"product" binding:"omitempty,uuid"`
	Description string   `json:"description" binding:"required_without=ProductID,max=500"`
	HSNNumber   string   `json:"hsnNumber" binding:"max=20"`
	UOM         string   `json:"uom" binding:"max=20"`
	Quantity    float64  `json:"quantity" binding:"min=0"`
	UnitPrice   *float64 `json:"unitPrice" binding:"omitempty,min=0"`
	Discount    float64  `json:"discount" binding:"min=0,max=100"`
	TaxRate     *float64 `json:"taxRate" binding:"omitempty,min=0,max=100"`
}

// lineMessages returns the line rule messages for a list of lines sent
// under key.
func lineMessages(key string) map[string]string {
	return map[string]string{
		key + ".product.uuid":                 "Product must be a valid ID",
		key + ".description.required_without": "Description is required when no product is selected",
		key + ".quantity.min":                 "Quantity cannot be negative",
		key + ".unitPrice.min":                "Unit price cannot be negative",
		key + ".discount.min":                 "Discount cannot be negative",
		key + ".discount.max":                 "Discount cannot exceed 100%",
		key + ".taxRate.min":                  "Tax rate cannot be negative",
		key + ".taxRate.max":                  "Tax rate cannot exceed 100%",
	}
}

// lineItemMessages are shared by every request that carries items under
// the "items" key.
var lineItemMessages = mergeMessages(lineMessages("items"), map[string]string{
	"items.required": "Items are required",
	"items.min":      "At least one item is required",
})

func mergeMessages(maps ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

// errBadReference marks a request that points at a record that does not
// exist. Handlers answer it with 400.
type errBadReference struct{ msg string }

func (e errBadReference) Error() string { return e.msg }

// resolveLines builds document lines from the request, filling description,
// HSN, unit, unit price and GST rate defaults from the referenced product.
func resolveLines(db *gorm.DB, inputs []LineItemInput) ([]models.LineItem, error) {
	lines := make([]models.LineItem, 0, len(inputs))
	for i, in := range inputs {
		line := models.LineItem{
			Position:    i + 1,
			Description: strings.TrimSpace(in.Description),
			HSNNumber:   in.HSNNumber,
			UOM:         in.UOM,
			Quantity:    in.Quantity,
			Discount:    in.Discount,
		}
		if in.UnitPrice != nil {
			line.UnitPrice = *in.UnitPrice
		}
		if in.TaxRate != nil {
			line.TaxRate = *in.TaxRate
		}

		if in.ProductID != "" {
			productID := uuid.MustParse(in.ProductID)
			var product models.Product
			if err := db.Where("id = ?", productID).First(&product).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, errBadReference{"Product not found: " + in.ProductID}
				}
				return nil, err
			}
			line.ProductID = &productID
			if line.Description == "" {
				line.Description = product.Name
			}
			if line.HSNNumber == "" {
				line.HSNNumber = product.HSNNumber
			}
			if line.UOM == "" {
				line.UOM = product.UOM
			}
			if in.UnitPrice == nil {
				line.UnitPrice = product.Price
			}
			if in.TaxRate == nil {
				line.TaxRate = product.GSTRate
			}
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func byPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}

// findCustomer loads a customer for a document. A missing customer is a
// bad reference.
func findCustomer(db *gorm.DB, id string) (models.Customer, error) {
	var customer models.Customer
	if err := db.Where("id = ?", id).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return customer, errBadReference{"Customer not found"}
		}
		return customer, err
	}
	return customer, nil
}

// addressOrDefault prefers the requested address and falls back to def.
func addressOrDefault(in *AddressInput, def models.Address) datatypes.JSONType[models.Address] {
	if in != nil && strings.TrimSpace(in.Address) != "" {
		return datatypes.NewJSONType(in.toModel())
	}
	return datatypes.NewJSONType(def)
}

func loadSettings(db *gorm.DB) models.GeneralSettings {
	settings := models.GeneralSettings{
		InvoicePrefix:   "INV",
		QuotationPrefix: "QTN",
		POPrefix:        "PO",
		DefaultGSTRate:  18,
	}
	var stored models.GeneralSettings
	res := db.Order("created_at").Limit(1).Find(&stored)
	if res.Error != nil {
		log.Printf("[SETTINGS] falling back to defaults: %v", res.Error)
		return settings
	}
	if res.RowsAffected > 0 {
		if stored.InvoicePrefix == "" {
			stored.InvoicePrefix = settings.InvoicePrefix
		}
		if stored.QuotationPrefix == "" {
			stored.QuotationPrefix = settings.QuotationPrefix
		}
		if stored.POPrefix == "" {
			stored.POPrefix = settings.POPrefix
		}
		return stored
	}
	return settings
}

// respondLoadError answers a failed lookup of the record named by what.
func respondLoadError(c *gin.Context, err error, what string) {
	var bad errBadReference
	switch {
	case errors.As(err, &bad):
		utils.RespondWithError(c, http.StatusBadRequest, bad.msg)
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.RespondWithError(c, http.StatusNotFound, what+" not found")
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
	}
}

// parseID reads the :id path parameter.
func parseID(c *gin.Context, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid %s ID format", what))
		return uuid.Nil, false
	}
	return id, true
}

func respondFieldError(c *gin.Context, field, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"error":   "Validation failed",
		"details": []utils.FieldError{{Field: field, Message: message}},
	})
}

// likePattern returns a lower-cased LIKE pattern for a search term.
func likePattern(term string) string {
	term = strings.ToLower(strings.TrimSpace(term))
	term = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(term)
	return "%" + term + "%"
}

// orderClause maps an API sort key onto a column.
func orderClause(columns map[string]string, sortBy, sortOrder, def string) string {
	col, ok := columns[sortBy]
	if !ok {
		col = def
	}
	if sortOrder == "asc" {
		return col + " ASC"
	}
	return col + " DESC"
}
