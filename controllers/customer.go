package controllers

import (
	"errors"
	"net/http"
	"strings"

	"accel-erp-backend/config"
	"accel-erp-backend/models"
	"accel-erp-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CreateCustomerInput defines the expected JSON structure for creating a customer
type CreateCustomerInput struct {
	Name              string         `json:"name" binding:"required,max=200"`
	ContactPerson     string         `json:"contactPerson" binding:"max=100"`
	Phone             string         `json:"phone" binding:"required,phone"`
	Email             string         `json:"email" binding:"omitempty,email"`
	GSTIN             string         `json:"gstNumber" binding:"omitempty,gstin"`
	CustomerType      string         `json:"customerType" binding:"omitempty,oneof=retail telecom ev dg corporate"`
	BillingAddress    *AddressInput  `json:"billingAddress"`
	ShippingAddresses []AddressInput `json:"shippingAddresses" binding:"omitempty,max=20,dive"`
	Notes             string         `json:"notes" binding:"max=2000"`
}

// UpdateCustomerInput defines the expected JSON structure for updating a customer
type UpdateCustomerInput struct {
	Name              *string         `json:"name" binding:"omitempty,min=1,max=200"`
	ContactPerson     *string         `json:"contactPerson" binding:"omitempty,max=100"`
	Phone             *string         `json:"phone" binding:"omitempty,phone"`
	Email             *string         `json:"email" binding:"omitempty,email"`
	GSTIN             *string         `json:"gstNumber" binding:"omitempty,gstin"`
	CustomerType      *string         `json:"customerType" binding:"omitempty,oneof=retail telecom ev dg corporate"`
	BillingAddress    *AddressInput   `json:"billingAddress"`
	ShippingAddresses *[]AddressInput `json:"shippingAddresses" binding:"omitempty,max=20,dive"`
	Notes             *string         `json:"notes" binding:"omitempty,max=2000"`
	IsActive          *bool           `json:"isActive"`
}

type CustomerListQuery struct {
	Page         int    `form:"page" binding:"omitempty,min=1"`
	Limit        int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search       string `form:"search" binding:"max=100"`
	CustomerType string `form:"customerType" binding:"omitempty,oneof=retail telecom ev dg corporate"`
	Active       *bool  `form:"active"`
}

func shippingAddresses(in []AddressInput) datatypes.JSONSlice[models.Address] {
	out := make(datatypes.JSONSlice[models.Address], 0, len(in))
	for i := range in {
		out = append(out, in[i].toModel())
	}
	return out
}

// phoneTaken reports whether another customer already uses phone.
func phoneTaken(db *gorm.DB, phone, exceptID string) (bool, error) {
	var existing models.Customer
	query := db.Where("phone = ?", phone)
	if exceptID != "" {
		query = query.Where("id <> ?", exceptID)
	}
	err := query.First(&existing).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

// CreateCustomer creates a new customer
func CreateCustomer(c *gin.Context) {
	var input CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithBindError(c, err, &input)
		return
	}

	// Check if phone already exists
	phone := utils.NormalizePhone(input.Phone, config.CountryCode)
	taken, err := phoneTaken(config.DB, phone, "")
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if taken {
		utils.RespondWithError(c, http.StatusConflict, "Customer with this phone number already exists")
		return
	}

	customer := models.Customer{
		Name:              strings.TrimSpace(input.Name),
		ContactPerson:     input.ContactPerson,
		Phone:             phone,
		Email:             strings.ToLower(input.Email),
		GSTIN:             strings.ToUpper(input.GSTIN),
		CustomerType:      models.CustomerTypeRetail,
		BillingAddress:    datatypes.NewJSONType(input.BillingAddress.toModel()),
		ShippingAddresses: shippingAddresses(input.ShippingAddresses),
		Notes:             input.Notes,
		IsActive:          true,
	}
	if input.CustomerType != "" {
		customer.CustomerType = input.CustomerType
	}

	if err := config.DB.Create(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create customer")
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// GetCustomers lists customers with search and pagination
func GetCustomers(c *gin.Context) {
	var q CustomerListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondWithBindError(c, err, &q)
		return
	}

	query := config.DB.Model(&models.Customer{})
	if strings.TrimSpace(q.Search) != "" {
		pattern := likePattern(q.Search)
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(contact_person) LIKE ? OR phone LIKE ? OR LOWER(gstin) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
	if q.CustomerType != "" {
		query = query.Where("customer_type = ?", q.CustomerType)
	}
	if q.Active != nil {
		query = query.Where("is_active = ?", *q.Active)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count customers")
		return
	}
	page := utils.NewPagination(q.Page, q.Limit, total)

	var customers []models.Customer
	if err := query.Order("name").Offset(page.Offset()).Limit(page.Limit).
		Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	c.JSON(http.StatusOK, gin.H{"customers": customers, "pagination": page})
}

// GetCustomer retrieves a specific customer by ID
func GetCustomer(c *gin.Context) {
	customerID, ok := parseID(c, "customer")
	if !ok {
		return
	}

	var customer models.Customer
	if err := config.DB.Where("id = ?", customerID).First(&customer).Error; err != nil {
		respondLoadError(c, err, "Customer")
		return
	}

	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer updates an existing customer
func UpdateCustomer(c *gin.Context) {
	customerID, ok := parseID(c, "customer")
	if !ok {
		return
	}

	var input UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithBindError(c, err, &input)
		return
	}

	// Retrieve existing customer
	var customer models.Customer
	if err := config.DB.Where("id = ?", customerID).First(&customer).Error; err != nil {
		respondLoadError(c, err, "Customer")
		return
	}

	// Update fields if provided
	if input.Name != nil {
		customer.Name = strings.TrimSpace(*input.Name)
	}
	if input.Phone != nil {
		// Check if phone is being changed to another existing customer
		phone := utils.NormalizePhone(*input.Phone, config.CountryCode)
		if phone != customer.Phone {
			taken, err := phoneTaken(config.DB, phone, customer.ID.String())
			if err != nil {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
				return
			}
			if taken {
				utils.RespondWithError(c, http.StatusConflict, "Another customer with this phone number already exists")
				return
			}
			customer.Phone = phone
		}
	}
	if input.ContactPerson != nil {
		customer.ContactPerson = *input.ContactPerson
	}
	if input.Email != nil {
		customer.Email = strings.ToLower(*input.Email)
	}
	if input.GSTIN != nil {
		customer.GSTIN = strings.ToUpper(*input.GSTIN)
	}
	if input.CustomerType != nil {
		customer.CustomerType = *input.CustomerType
	}
	if input.BillingAddress != nil {
		customer.BillingAddress = datatypes.NewJSONType(input.BillingAddress.toModel())
	}
	if input.ShippingAddresses != nil {
		customer.ShippingAddresses = shippingAddresses(*input.ShippingAddresses)
	}
	if input.Notes != nil {
		customer.Notes = *input.Notes
	}
	if input.IsActive != nil {
		customer.IsActive = *input.IsActive
	}

	// Save updated customer
	if err := config.DB.Save(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer")
		return
	}

	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer soft deletes a customer without open documents
func DeleteCustomer(c *gin.Context) {
	customerID, ok := parseID(c, "customer")
	if !ok {
		return
	}

	var customer models.Customer
	if err := config.DB.Where("id = ?", customerID).First(&customer).Error; err != nil {
		respondLoadError(c, err, "Customer")
		return
	}

	var openInvoices int64
	if err := config.DB.Model(&models.Invoice{}).
		Where("customer_id = ? AND status IN ?", customer.ID,
			[]string{models.InvoiceStatusDraft, models.InvoiceStatusSent, models.InvoiceStatusOverdue}).
		Count(&openInvoices).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if openInvoices > 0 {
		utils.RespondWithError(c, http.StatusConflict, "Customer has open invoices and cannot be deleted")
		return
	}

	if err := config.DB.Delete(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete customer")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}
