package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"accel-erp-backend/config"
	"accel-erp-backend/models"
	"accel-erp-backend/services"
	"accel-erp-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CreatePurchaseOrderInput struct {
	CustomerID           string          `json:"customer" binding:"required,uuid"`
	QuotationID          string          `json:"quotation" binding:"omitempty,uuid"`
	CustomerPONumber     string          `json:"customerPoNumber" binding:"max=50"`
	PODate               *time.Time      `json:"poDate"`
	ExpectedDeliveryDate *time.Time      `json:"expectedDeliveryDate"`
	BillingAddress       *AddressInput   `json:"billingAddress"`
	ShippingAddress      *AddressInput   `json:"shippingAddress"`
	Department           string          `json:"department" binding:"required,oneof=retail corporate industrial_marketing telecom ev dg_sales service"`
	Priority             string          `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	PaymentStatus        string          `json:"paymentStatus" binding:"omitempty,oneof=pending partial paid"`
	PaymentTerms         string          `json:"paymentTerms" binding:"max=500"`
	AdvanceAmount        float64         `json:"advanceAmount" binding:"min=0"`
	Items                []LineItemInput `json:"items" binding:"required,min=1,dive"`
	Notes                string          `json:"notes" binding:"max=2000"`
}

func (CreatePurchaseOrderInput) ValidationMessages() map[string]string {
	return mergeMessages(lineItemMessages, map[string]string{
		"customer.required":   "Customer is required",
		"customer.uuid":       "Customer must be a valid ID",
		"department.required": "Department is required",
		"department.oneof":    "Invalid department",
		"priority.oneof":      "Priority must be one of: low, medium, high, urgent",
		"paymentStatus.oneof": "Invalid payment status",
		"advanceAmount.min":   "Advance amount cannot be negative",
	})
}

type UpdatePurchaseOrderInput struct {
	CustomerID           *string          `json:"customer" binding:"omitempty,uuid"`
	CustomerPONumber     *string          `json:"customerPoNumber" binding:"omitempty,max=50"`
	PODate               *time.Time       `json:"poDate"`
	ExpectedDeliveryDate *time.Time       `json:"expectedDeliveryDate"`
	BillingAddress       *AddressInput    `json:"billingAddress"`
	ShippingAddress      *AddressInput    `json:"shippingAddress"`
	Department           *string          `json:"department" binding:"omitempty,oneof=retail corporate industrial_marketing telecom ev dg_sales service"`
	Priority             *string          `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	PaymentStatus        *string          `json:"paymentStatus" binding:"omitempty,oneof=pending partial paid"`
	PaymentTerms         *string          `json:"paymentTerms" binding:"omitempty,max=500"`
	AdvanceAmount        *float64         `json:"advanceAmount" binding:"omitempty,min=0"`
	Items                *[]LineItemInput `json:"items" binding:"omitempty,min=1,dive"`
	Notes                *string          `json:"notes" binding:"omitempty,max=2000"`
}

func (UpdatePurchaseOrderInput) ValidationMessages() map[string]string {
	return CreatePurchaseOrderInput{}.ValidationMessages()
}

type PurchaseOrderListQuery struct {
	Page          int       `form:"page" binding:"omitempty,min=1"`
	Limit         int       `form:"limit" binding:"omitempty,min=1,max=100"`
	Search        string    `form:"search" binding:"max=100"`
	Status        string    `form:"status" binding:"omitempty,oneof=draft sent_to_customer customer_approved in_production ready_for_delivery delivered cancelled"`
	PaymentStatus string    `form:"paymentStatus" binding:"omitempty,oneof=pending partial paid"`
	Department    string    `form:"department" binding:"omitempty,oneof=retail corporate industrial_marketing telecom ev dg_sales service"`
	Priority      string    `form:"priority" binding:"omitempty,oneof=low medium high urgent"`
	CustomerID    string    `form:"customer" binding:"omitempty,uuid"`
	DateFrom      time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo        time.Time `form:"dateTo" time_format:"2006-01-02" binding:"omitempty,gtefield=DateFrom"`
	SortBy        string    `form:"sortBy" binding:"omitempty,oneof=poNumber poDate expectedDeliveryDate grandTotal status createdAt"`
	SortOrder     string    `form:"sortOrder" binding:"omitempty,oneof=asc desc"`
}

func (PurchaseOrderListQuery) ValidationMessages() map[string]string {
	return map[string]string{
		"limit.max":           "Limit cannot exceed 100",
		"dateTo.gtefield":     "End date must be on or after start date",
		"status.oneof":        "Invalid purchase order status",
		"paymentStatus.oneof": "Invalid payment status",
		"department.oneof":    "Invalid department",
		"priority.oneof":      "Invalid priority",
	}
}

type UpdatePurchaseOrderStatusInput struct {
	Status string `json:"status" binding:"required,oneof=draft sent_to_customer customer_approved in_production ready_for_delivery delivered cancelled"`
}

var poSortColumns = map[string]string{
	"poNumber":             "po_number",
	"poDate":               "po_date",
	"expectedDeliveryDate": "expected_delivery_date",
	"grandTotal":           "grand_total",
	"status":               "status",
	"createdAt":            "created_at",
}

func CreatePurchaseOrder(c *gin.Context) {
	var input CreatePurchaseOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithBindError(c, err, &input)
		return
	}

	poDate := time.Now()
	if input.PODate != nil {
		poDate = *input.PODate
	}
	if input.ExpectedDeliveryDate != nil && input.ExpectedDeliveryDate.Before(utils.BeginningOfDay(poDate)) {
		respondFieldError(c, "expectedDeliveryDate", "Expected delivery date must not be before PO date")
		return
	}

	customer, err := findCustomer(config.DB, input.CustomerID)
	if err != nil {
		respondLoadError(c, err, "Customer")
		return
	}

	lines, err := resolveLines(config.DB, input.Items)
	if err != nil {
		respondLoadError(c, err, "Product")
		return
	}

	po := models.PurchaseOrder{
		CustomerID:           customer.ID,
		CustomerPONumber:     input.CustomerPONumber,
		PODate:               poDate,
		ExpectedDeliveryDate: input.ExpectedDeliveryDate,
		BillingAddress:       addressOrDefault(input.BillingAddress, customer.BillingAddress.Data()),
		ShippingAddress:      addressOrDefault(input.ShippingAddress, defaultShipping(customer)),
		Department:           input.Department,
		Priority:             "medium",
		Status:               models.POStatusDraft,
		PaymentStatus:        "pending",
		PaymentTerms:         input.PaymentTerms,
		AdvanceAmount:        input.AdvanceAmount,
		Notes:                input.Notes,
	}
	if input.Priority != "" {
		po.Priority = input.Priority
	}
	if input.PaymentStatus != "" {
		po.PaymentStatus = input.PaymentStatus
	}
	if input.QuotationID != "" {
		var q models.Quotation
		if err := config.DB.Select("id").Where("id = ?", input.QuotationID).First(&q).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				err = errBadReference{"Quotation not found"}
			}
			respondLoadError(c, err, "Quotation")
			return
		}
		po.QuotationID = &q.ID
	}
	for _, line := range lines {
		po.Items = append(po.Items, models.PurchaseOrderItem{LineItem: line})
	}
	services.RecalculatePurchaseOrder(&po)
	if po.AdvanceAmount > po.GrandTotal {
		respondFieldError(c, "advanceAmount", "Advance amount cannot exceed the order total")
		return
	}
	po.PONumber = utils.DocumentNumber(loadSettings(config.DB).POPrefix, poDate)

	if err := config.DB.Omit("Customer").Create(&po).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create purchase order")
		return
	}

	po.Customer = &customer
	c.JSON(http.StatusCreated, po)
}

func purchaseOrderQuery(db *gorm.DB, q PurchaseOrderListQuery) *gorm.DB {
	query := db.Model(&models.PurchaseOrder{})
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}
	if q.PaymentStatus != "" {
		query = query.Where("payment_status = ?", q.PaymentStatus)
	}
	if q.Department != "" {
		query = query.Where("department = ?", q.Department)
	}
	if q.Priority != "" {
		query = query.Where("priority = ?", q.Priority)
	}
	if q.CustomerID != "" {
		query = query.Where("customer_id = ?", q.CustomerID)
	}
	if !q.DateFrom.IsZero() {
		query = query.Where("po_date >= ?", utils.BeginningOfDay(q.DateFrom))
	}
	if !q.DateTo.IsZero() {
		query = query.Where("po_date <= ?", utils.EndOfDay(q.DateTo))
	}
	if strings.TrimSpace(q.Search) != "" {
		pattern := likePattern(q.Search)
		query = query.Where(
			"LOWER(po_number) LIKE ? OR LOWER(customer_po_number) LIKE ? OR customer_id IN (?)",
			pattern, pattern,
			db.Model(&models.Customer{}).Select("id").Where("LOWER(name) LIKE ?", pattern),
		)
	}
	return query
}

func GetPurchaseOrders(c *gin.Context) {
	var q PurchaseOrderListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondWithBindError(c, err, &q)
		return
	}

	var total int64
	if err := purchaseOrderQuery(config.DB, q).Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count purchase orders")
		return
	}
	page := utils.NewPagination(q.Page, q.Limit, total)

	var orders []models.PurchaseOrder
	if err := purchaseOrderQuery(config.DB, q).
		Preload("Customer").
		Order(orderClause(poSortColumns, q.SortBy, q.SortOrder, "po_date")).
		Offset(page.Offset()).Limit(page.Limit).
		Find(&orders).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve purchase orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{"purchaseOrders": orders, "pagination": page})
}

func ExportPurchaseOrders(c *gin.Context) {
	var q PurchaseOrderListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondWithBindError(c, err, &q)
		return
	}

	var orders []models.PurchaseOrder
	if err := purchaseOrderQuery(config.DB, q).
		Preload("Customer").
		Order(orderClause(poSortColumns, q.SortBy, q.SortOrder, "po_date")).
		Limit(exportLimit).
		Find(&orders).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve purchase orders")
		return
	}

	rows := make([][]string, 0, len(orders))
	for i := range orders {
		rows = append(rows, purchaseOrderCSVRow(&orders[i]))
	}
	if err := utils.WriteCSV(c, utils.ExportFilename("purchase-orders", time.Now()), purchaseOrderCSVHeader, rows); err != nil {
		log.Printf("[EXPORT] purchase orders: %v", err)
	}
}

var purchaseOrderCSVHeader = []string{
	"PO Number", "PO Date", "Expected Delivery", "Customer", "Customer PO",
	"Department", "Priority", "Status", "Payment Status", "Advance",
	"Subtotal", "Discount", "Tax", "Grand Total",
}

func purchaseOrderCSVRow(po *models.PurchaseOrder) []string {
	var name string
	if po.Customer != nil {
		name = po.Customer.Name
	}
	return []string{
		po.PONumber,
		utils.FormatDate(&po.PODate),
		utils.FormatDate(po.ExpectedDeliveryDate),
		name,
		po.CustomerPONumber,
		po.Department,
		po.Priority,
		po.Status,
		po.PaymentStatus,
		utils.FormatAmount(po.AdvanceAmount),
		utils.FormatAmount(po.Subtotal),
		utils.FormatAmount(po.TotalDiscount),
		utils.FormatAmount(po.TotalTax),
		utils.FormatAmount(po.GrandTotal),
	}
}

func loadPurchaseOrder(db *gorm.DB, id uuid.UUID) (models.PurchaseOrder, error) {
	var po models.PurchaseOrder
	err := db.Preload("Items", byPosition).Preload("Customer").
		Where("id = ?", id).
		First(&po).Error
	return po, err
}

func GetPurchaseOrder(c *gin.Context) {
	poID, ok := parseID(c, "purchase order")
	if !ok {
		return
	}

	po, err := loadPurchaseOrder(config.DB, poID)
	if err != nil {
		respondLoadError(c, err, "Purchase order")
		return
	}

	c.JSON(http.StatusOK, po)
}

func UpdatePurchaseOrder(c *gin.Context) {
	poID, ok := parseID(c, "purchase order")
	if !ok {
		return
	}

	var input UpdatePurchaseOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithBindError(c, err, &input)
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	po, err := loadPurchaseOrder(tx.Clauses(clause.Locking{Strength: "UPDATE"}), poID)
	if err != nil {
		tx.Rollback()
		respondLoadError(c, err, "Purchase order")
		return
	}
	if models.POIsTerminal(po.Status) {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusConflict, fmt.Sprintf("Purchase order is %s and cannot be edited", po.Status))
		return
	}

	if input.CustomerID != nil {
		customer, err := findCustomer(tx, *input.CustomerID)
		if err != nil {
			tx.Rollback()
			respondLoadError(c, err, "Customer")
			return
		}
		po.CustomerID = customer.ID
		po.Customer = &customer
	}
	if input.CustomerPONumber != nil {
		po.CustomerPONumber = *input.CustomerPONumber
	}
	if input.PODate != nil {
		po.PODate = *input.PODate
	}
	if input.ExpectedDeliveryDate != nil {
		po.ExpectedDeliveryDate = input.ExpectedDeliveryDate
	}
	if po.ExpectedDeliveryDate != nil && po.ExpectedDeliveryDate.Before(utils.BeginningOfDay(po.PODate)) {
		tx.Rollback()
		respondFieldError(c, "expectedDeliveryDate", "Expected delivery date must not be before PO date")
		return
	}
	if input.BillingAddress != nil {
		po.BillingAddress = datatypes.NewJSONType(input.BillingAddress.toModel())
	}
	if input.ShippingAddress != nil {
		po.ShippingAddress = datatypes.NewJSONType(input.ShippingAddress.toModel())
	}
	if input.Department != nil {
		po.Department = *input.Department
	}
	if input.Priority != nil {
		po.Priority = *input.Priority
	}
	if input.PaymentStatus != nil {
		po.PaymentStatus = *input.PaymentStatus
	}
	if input.PaymentTerms != nil {
		po.PaymentTerms = *input.PaymentTerms
	}
	if input.AdvanceAmount != nil {
		po.AdvanceAmount = *input.AdvanceAmount
	}
	if input.Notes != nil {
		po.Notes = *input.Notes
	}

	if input.Items != nil {
		lines, err := resolveLines(tx, *input.Items)
		if err != nil {
			tx.Rollback()
			respondLoadError(c, err, "Product")
			return
		}
		if err := tx.Where("purchase_order_id = ?", po.ID).Delete(&models.PurchaseOrderItem{}).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to clear existing items")
			return
		}
		po.Items = po.Items[:0]
		for _, line := range lines {
			po.Items = append(po.Items, models.PurchaseOrderItem{PurchaseOrderID: po.ID, LineItem: line})
		}
		services.RecalculatePurchaseOrder(&po)
		if err := tx.Create(&po.Items).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save purchase order items")
			return
		}
	}
	if po.AdvanceAmount > po.GrandTotal {
		tx.Rollback()
		respondFieldError(c, "advanceAmount", "Advance amount cannot exceed the order total")
		return
	}

	if err := tx.Omit(clause.Associations).Save(&po).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update purchase order")
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update purchase order")
		return
	}

	c.JSON(http.StatusOK, po)
}

// UpdatePurchaseOrderStatus advances the order one workflow step or cancels it.
func UpdatePurchaseOrderStatus(c *gin.Context) {
	poID, ok := parseID(c, "purchase order")
	if !ok {
		return
	}

	var input UpdatePurchaseOrderStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithBindError(c, err, &input)
		return
	}

	var po models.PurchaseOrder
	if err := config.DB.Where("id = ?", poID).First(&po).Error; err != nil {
		respondLoadError(c, err, "Purchase order")
		return
	}
	if !models.POCanTransition(po.Status, input.Status) {
		utils.RespondWithError(c, http.StatusConflict,
			fmt.Sprintf("Cannot change purchase order status from %s to %s", po.Status, input.Status))
		return
	}

	po.Status = input.Status
	if err := config.DB.Model(&po).Update("status", po.Status).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update purchase order status")
		return
	}

	log.Printf("[PO] %s moved to %s", po.PONumber, po.Status)
	c.JSON(http.StatusOK, po)
}

func DeletePurchaseOrder(c *gin.Context) {
	poID, ok := parseID(c, "purchase order")
	if !ok {
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var po models.PurchaseOrder
	if err := tx.Where("id = ?", poID).First(&po).Error; err != nil {
		tx.Rollback()
		respondLoadError(c, err, "Purchase order")
		return
	}
	if po.Status != models.POStatusDraft && po.Status != models.POStatusCancelled {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusConflict, "Only draft or cancelled purchase orders can be deleted")
		return
	}

	if err := tx.Where("purchase_order_id = ?", po.ID).Delete(&models.PurchaseOrderItem{}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete purchase order items")
		return
	}
	if err := tx.Delete(&po).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete purchase order")
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete purchase order")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Purchase order deleted successfully"})
}
