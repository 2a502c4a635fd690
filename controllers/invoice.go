// controllers/invoice.go
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

const exportLimit = 10000

// InvoiceItemInput is one invoice line. Service charge lines are billed
// alongside the charges; a battery buy-back line is deducted from the total.
type InvoiceItemInput struct {
	Kind        string   `json:"kind" binding:"omitempty,oneof=item service_charge battery_buyback"`
	ProductID   string   `json:"product" binding:"omitempty,uuid"`
	Description string   `json:"description" binding:"required_without=ProductID,max=500"`
	HSNNumber   string   `json:"hsnNumber" binding:"max=20"`
	UOM         string   `json:"uom" binding:"max=20"`
	Quantity    float64  `json:"quantity" binding:"min=0"`
	UnitPrice   *float64 `json:"unitPrice" binding:"omitempty,min=0"`
	Discount    float64  `json:"discount" binding:"min=0,max=100"`
	TaxRate     *float64 `json:"taxRate" binding:"omitempty,min=0,max=100"`
}

func (in InvoiceItemInput) lineInput() LineItemInput {
	return LineItemInput{
		ProductID:   in.ProductID,
		Description: in.Description,
		HSNNumber:   in.HSNNumber,
		UOM:         in.UOM,
		Quantity:    in.Quantity,
		UnitPrice:   in.UnitPrice,
		Discount:    in.Discount,
		TaxRate:     in.TaxRate,
	}
}

func (in InvoiceItemInput) kind() string {
	if in.Kind == "" {
		return models.ItemKindItem
	}
	return in.Kind
}

// errTooManyBuyBacks is answered with a field error on items.
var errTooManyBuyBacks = errors.New("only one battery buy-back line is allowed")

// invoiceItems resolves the request lines keeping their kinds.
func invoiceItems(db *gorm.DB, inputs []InvoiceItemInput) ([]models.InvoiceItem, error) {
	lineInputs := make([]LineItemInput, len(inputs))
	buyBacks := 0
	for i, in := range inputs {
		lineInputs[i] = in.lineInput()
		if in.kind() == models.ItemKindBatteryBuyBack {
			buyBacks++
		}
	}
	if buyBacks > 1 {
		return nil, errTooManyBuyBacks
	}
	lines, err := resolveLines(db, lineInputs)
	if err != nil {
		return nil, err
	}
	items := make([]models.InvoiceItem, len(lines))
	for i, line := range lines {
		items[i] = models.InvoiceItem{Kind: inputs[i].kind(), LineItem: line}
	}
	return items, nil
}

// respondItemsError answers a failed invoiceItems call.
func respondItemsError(c *gin.Context, err error) {
	if errors.Is(err, errTooManyBuyBacks) {
		respondFieldError(c, "items", "Only one battery buy-back line is allowed")
		return
	}
	respondLoadError(c, err, "Product")
}

// CreateInvoiceInput defines the expected JSON structure for creating an invoice
type CreateInvoiceInput struct {
	CustomerID        string             `json:"customer" binding:"required,uuid"`
	QuotationID       string             `json:"quotation" binding:"omitempty,uuid"`
	PONumber          string             `json:"poNumber" binding:"max=50"`
	InvoiceDate       *time.Time         `json:"invoiceDate"`
	DueDate           *time.Time         `json:"dueDate"`
	BillingAddress    *AddressInput      `json:"billingAddress"`
	ShippingAddress   *AddressInput      `json:"shippingAddress"`
	Items             []InvoiceItemInput `json:"items" binding:"required,min=1,dive"`
	AdditionalCharges float64            `json:"additionalCharges" binding:"min=0"`
	TransportCharges  float64            `json:"transportCharges" binding:"min=0"`
	TaxRate           *float64           `json:"taxRate" binding:"omitempty,min=0,max=100"`
	Status            string             `json:"status" binding:"omitempty,oneof=Draft Sent"`
	PaymentMethod     string             `json:"paymentMethod" binding:"omitempty,oneof=cash cheque bank_transfer upi card other"`
	IRN               string             `json:"irn" binding:"max=64"`
	AckNumber         string             `json:"ackNumber" binding:"max=32"`
	AckDate           *time.Time         `json:"ackDate"`
	QRCode            string             `json:"qrCode"`
	Notes             string             `json:"notes" binding:"max=2000"`
	Terms             string             `json:"terms" binding:"max=2000"`
}

func (CreateInvoiceInput) ValidationMessages() map[string]string {
	return mergeMessages(lineItemMessages, map[string]string{
		"items.kind.oneof":           "Item kind must be one of: item, service_charge, battery_buyback",
		"customer.required":          "Customer is required",
		"customer.uuid":              "Customer must be a valid ID",
		"additionalCharges.min":      "Additional charges cannot be negative",
		"transportCharges.min":       "Transport charges cannot be negative",
		"status.oneof":               "Status must be Draft or Sent",
		"paymentMethod.oneof":        "Invalid payment method",
		"billingAddress.pincode.len": "Pincode must be 6 digits",
	})
}

// UpdateInvoiceInput defines the expected JSON structure for updating an invoice
type UpdateInvoiceInput struct {
	CustomerID        *string             `json:"customer" binding:"omitempty,uuid"`
	PONumber          *string             `json:"poNumber" binding:"omitempty,max=50"`
	InvoiceDate       *time.Time          `json:"invoiceDate"`
	DueDate           *time.Time          `json:"dueDate"`
	BillingAddress    *AddressInput       `json:"billingAddress"`
	ShippingAddress   *AddressInput       `json:"shippingAddress"`
	Items             *[]InvoiceItemInput `json:"items" binding:"omitempty,min=1,dive"`
	AdditionalCharges *float64            `json:"additionalCharges" binding:"omitempty,min=0"`
	TransportCharges  *float64            `json:"transportCharges" binding:"omitempty,min=0"`
	TaxRate           *float64            `json:"taxRate" binding:"omitempty,min=0,max=100"`
	PaymentMethod     *string             `json:"paymentMethod" binding:"omitempty,oneof=cash cheque bank_transfer upi card other"`
	IRN               *string             `json:"irn" binding:"omitempty,max=64"`
	AckNumber         *string             `json:"ackNumber" binding:"omitempty,max=32"`
	AckDate           *time.Time          `json:"ackDate"`
	QRCode            *string             `json:"qrCode"`
	Notes             *string             `json:"notes" binding:"omitempty,max=2000"`
	Terms             *string             `json:"terms" binding:"omitempty,max=2000"`
}

func (UpdateInvoiceInput) ValidationMessages() map[string]string {
	return CreateInvoiceInput{}.ValidationMessages()
}

// InvoiceListQuery is shared by the list and export endpoints. Export
// ignores page and limit.
type InvoiceListQuery struct {
	Page          int       `form:"page" binding:"omitempty,min=1"`
	Limit         int       `form:"limit" binding:"omitempty,min=1,max=100"`
	Search        string    `form:"search" binding:"max=100"`
	Status        string    `form:"status" binding:"omitempty,oneof=Draft Sent Paid Overdue Cancelled"`
	PaymentStatus string    `form:"paymentStatus" binding:"omitempty,oneof=Pending Partial Paid"`
	CustomerID    string    `form:"customer" binding:"omitempty,uuid"`
	DateFrom      time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo        time.Time `form:"dateTo" time_format:"2006-01-02" binding:"omitempty,gtefield=DateFrom"`
	SortBy        string    `form:"sortBy" binding:"omitempty,oneof=invoiceNumber invoiceDate dueDate grandTotal status createdAt"`
	SortOrder     string    `form:"sortOrder" binding:"omitempty,oneof=asc desc"`
}

func (InvoiceListQuery) ValidationMessages() map[string]string {
	return map[string]string{
		"limit.max":           "Limit cannot exceed 100",
		"dateTo.gtefield":     "End date must be on or after start date",
		"status.oneof":        "Invalid invoice status",
		"paymentStatus.oneof": "Invalid payment status",
	}
}

// RecordPaymentInput is a payment received against an invoice.
type RecordPaymentInput struct {
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	Method    string  `json:"method" binding:"required,oneof=cash cheque bank_transfer upi card other"`
	Reference string  `json:"reference" binding:"max=100"`
}

func (RecordPaymentInput) ValidationMessages() map[string]string {
	return map[string]string{
		"amount.required": "Payment amount is required",
		"amount.gt":       "Payment amount must be greater than 0",
		"method.oneof":    "Invalid payment method",
	}
}

type UpdateInvoiceStatusInput struct {
	Status string `json:"status" binding:"required,oneof=Draft Sent Paid Overdue Cancelled"`
}

var invoiceSortColumns = map[string]string{
	"invoiceNumber": "invoice_number",
	"invoiceDate":   "invoice_date",
	"dueDate":       "due_date",
	"grandTotal":    "grand_total",
	"status":        "status",
	"createdAt":     "created_at",
}

// CreateInvoice creates a new invoice from line items and charges
func CreateInvoice(c *gin.Context) {
	var input CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithBindError(c, err, &input)
		return
	}

	invoiceDate := time.Now()
	if input.InvoiceDate != nil {
		invoiceDate = *input.InvoiceDate
	}
	if input.DueDate != nil && input.DueDate.Before(utils.BeginningOfDay(invoiceDate)) {
		respondFieldError(c, "dueDate", "Due date must not be before invoice date")
		return
	}

	customer, err := findCustomer(config.DB, input.CustomerID)
	if err != nil {
		respondLoadError(c, err, "Customer")
		return
	}

	items, err := invoiceItems(config.DB, input.Items)
	if err != nil {
		respondItemsError(c, err)
		return
	}

	settings := loadSettings(config.DB)
	taxRate := settings.DefaultGSTRate
	if input.TaxRate != nil {
		taxRate = *input.TaxRate
	}

	invoice := models.Invoice{
		CustomerID:        customer.ID,
		PONumber:          input.PONumber,
		InvoiceDate:       invoiceDate,
		DueDate:           input.DueDate,
		BillingAddress:    addressOrDefault(input.BillingAddress, customer.BillingAddress.Data()),
		ShippingAddress:   addressOrDefault(input.ShippingAddress, defaultShipping(customer)),
		AdditionalCharges: input.AdditionalCharges,
		TransportCharges:  input.TransportCharges,
		TaxRate:           taxRate,
		Status:            models.InvoiceStatusDraft,
		PaymentMethod:     input.PaymentMethod,
		IRN:               input.IRN,
		AckNumber:         input.AckNumber,
		AckDate:           input.AckDate,
		QRCode:            input.QRCode,
		Notes:             input.Notes,
		Terms:             input.Terms,
	}
	if input.Status != "" {
		invoice.Status = input.Status
	}
	invoice.Items = items
	services.RecalculateInvoice(&invoice)
	invoice.InvoiceNumber = utils.DocumentNumber(settings.InvoicePrefix, invoiceDate)

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if input.QuotationID == "" {
			return tx.Omit("Customer").Create(&invoice).Error
		}
		q, err := claimableQuotation(tx, input.QuotationID)
		if err != nil {
			return err
		}
		invoice.QuotationID = &q.ID
		if err := tx.Omit("Customer").Create(&invoice).Error; err != nil {
			return err
		}
		return tx.Model(&models.Quotation{}).Where("id = ?", q.ID).
			Update("invoice_id", invoice.ID).Error
	})
	var bad errBadReference
	switch {
	case err == nil:
	case errors.Is(err, services.ErrAlreadyInvoiced):
		utils.RespondWithError(c, http.StatusConflict, "Quotation has already been invoiced")
		return
	case errors.As(err, &bad):
		utils.RespondWithError(c, http.StatusBadRequest, bad.msg)
		return
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create invoice")
		return
	}

	invoice.Customer = &customer
	c.JSON(http.StatusCreated, invoice)
}

// claimableQuotation locks the quotation an invoice is raised against. A
// quotation backs at most one live invoice.
func claimableQuotation(tx *gorm.DB, id string) (models.Quotation, error) {
	var q models.Quotation
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&q).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return q, errBadReference{"Quotation not found"}
	case err != nil:
		return q, err
	case q.InvoiceID != nil:
		return q, services.ErrAlreadyInvoiced
	}
	return q, nil
}

func defaultShipping(customer models.Customer) models.Address {
	if len(customer.ShippingAddresses) > 0 {
		return customer.ShippingAddresses[0]
	}
	return customer.BillingAddress.Data()
}

// invoiceQuery applies the list filters shared by GetInvoices and
// ExportInvoices.
func invoiceQuery(db *gorm.DB, q InvoiceListQuery) *gorm.DB {
	query := db.Model(&models.Invoice{})
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}
	if q.PaymentStatus != "" {
		query = query.Where("payment_status = ?", q.PaymentStatus)
	}
	if q.CustomerID != "" {
		query = query.Where("customer_id = ?", q.CustomerID)
	}
	if !q.DateFrom.IsZero() {
		query = query.Where("invoice_date >= ?", utils.BeginningOfDay(q.DateFrom))
	}
	if !q.DateTo.IsZero() {
		query = query.Where("invoice_date <= ?", utils.EndOfDay(q.DateTo))
	}
	if strings.TrimSpace(q.Search) != "" {
		pattern := likePattern(q.Search)
		query = query.Where(
			"LOWER(invoice_number) LIKE ? OR LOWER(po_number) LIKE ? OR customer_id IN (?)",
			pattern, pattern,
			db.Model(&models.Customer{}).Select("id").Where("LOWER(name) LIKE ?", pattern),
		)
	}
	return query
}

// GetInvoices lists invoices with filters and pagination
func GetInvoices(c *gin.Context) {
	var q InvoiceListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondWithBindError(c, err, &q)
		return
	}

	var total int64
	if err := invoiceQuery(config.DB, q).Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count invoices")
		return
	}
	page := utils.NewPagination(q.Page, q.Limit, total)

	var invoices []models.Invoice
	if err := invoiceQuery(config.DB, q).
		Preload("Customer").
		Order(orderClause(invoiceSortColumns, q.SortBy, q.SortOrder, "invoice_date")).
		Offset(page.Offset()).Limit(page.Limit).
		Find(&invoices).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve invoices")
		return
	}

	c.JSON(http.StatusOK, gin.H{"invoices": invoices, "pagination": page})
}

// ExportInvoices downloads the filtered invoices as CSV
func ExportInvoices(c *gin.Context) {
	var q InvoiceListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondWithBindError(c, err, &q)
		return
	}

	var invoices []models.Invoice
	if err := invoiceQuery(config.DB, q).
		Preload("Customer").
		Order(orderClause(invoiceSortColumns, q.SortBy, q.SortOrder, "invoice_date")).
		Limit(exportLimit).
		Find(&invoices).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve invoices")
		return
	}

	rows := make([][]string, 0, len(invoices))
	for i := range invoices {
		rows = append(rows, invoiceCSVRow(&invoices[i]))
	}
	if err := utils.WriteCSV(c, utils.ExportFilename("invoices", time.Now()), invoiceCSVHeader, rows); err != nil {
		log.Printf("[EXPORT] invoices: %v", err)
	}
}

var invoiceCSVHeader = []string{
	"Invoice Number", "Invoice Date", "Due Date", "Customer", "GSTIN", "PO Number",
	"Status", "Payment Status", "Subtotal", "Discount", "Tax", "Grand Total",
	"Paid", "Outstanding",
}

func invoiceCSVRow(inv *models.Invoice) []string {
	var name, gstin string
	if inv.Customer != nil {
		name, gstin = inv.Customer.Name, inv.Customer.GSTIN
	}
	return []string{
		inv.InvoiceNumber,
		utils.FormatDate(&inv.InvoiceDate),
		utils.FormatDate(inv.DueDate),
		name,
		gstin,
		inv.PONumber,
		inv.Status,
		inv.PaymentStatus,
		utils.FormatAmount(inv.Subtotal),
		utils.FormatAmount(inv.TotalDiscount),
		utils.FormatAmount(inv.TotalTax),
		utils.FormatAmount(inv.GrandTotal),
		utils.FormatAmount(inv.PaidAmount),
		utils.FormatAmount(services.Outstanding(inv)),
	}
}

func loadInvoice(db *gorm.DB, id uuid.UUID) (models.Invoice, error) {
	var invoice models.Invoice
	err := db.Preload("Items", byPosition).Preload("Customer").
		Where("id = ?", id).
		First(&invoice).Error
	return invoice, err
}

// GetInvoice retrieves a specific invoice by ID
func GetInvoice(c *gin.Context) {
	invoiceID, ok := parseID(c, "invoice")
	if !ok {
		return
	}

	invoice, err := loadInvoice(config.DB, invoiceID)
	if err != nil {
		respondLoadError(c, err, "Invoice")
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// UpdateInvoice updates an existing invoice and recomputes its totals
func UpdateInvoice(c *gin.Context) {
	invoiceID, ok := parseID(c, "invoice")
	if !ok {
		return
	}

	var input UpdateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithBindError(c, err, &input)
		return
	}

	// Start transaction
	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	invoice, err := loadInvoice(tx.Clauses(clause.Locking{Strength: "UPDATE"}), invoiceID)
	if err != nil {
		tx.Rollback()
		respondLoadError(c, err, "Invoice")
		return
	}
	if invoice.Status == models.InvoiceStatusCancelled || invoice.Status == models.InvoiceStatusPaid {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusConflict, fmt.Sprintf("%s invoices cannot be edited", invoice.Status))
		return
	}

	if input.CustomerID != nil {
		customer, err := findCustomer(tx, *input.CustomerID)
		if err != nil {
			tx.Rollback()
			respondLoadError(c, err, "Customer")
			return
		}
		invoice.CustomerID = customer.ID
		invoice.Customer = &customer
	}
	if input.PONumber != nil {
		invoice.PONumber = *input.PONumber
	}
	if input.InvoiceDate != nil {
		invoice.InvoiceDate = *input.InvoiceDate
	}
	if input.DueDate != nil {
		invoice.DueDate = input.DueDate
	}
	if invoice.DueDate != nil && invoice.DueDate.Before(utils.BeginningOfDay(invoice.InvoiceDate)) {
		tx.Rollback()
		respondFieldError(c, "dueDate", "Due date must not be before invoice date")
		return
	}
	if input.BillingAddress != nil {
		invoice.BillingAddress = datatypes.NewJSONType(input.BillingAddress.toModel())
	}
	if input.ShippingAddress != nil {
		invoice.ShippingAddress = datatypes.NewJSONType(input.ShippingAddress.toModel())
	}
	if input.AdditionalCharges != nil {
		invoice.AdditionalCharges = *input.AdditionalCharges
	}
	if input.TransportCharges != nil {
		invoice.TransportCharges = *input.TransportCharges
	}
	if input.TaxRate != nil {
		invoice.TaxRate = *input.TaxRate
	}
	if input.PaymentMethod != nil {
		invoice.PaymentMethod = *input.PaymentMethod
	}
	if input.IRN != nil {
		invoice.IRN = *input.IRN
	}
	if input.AckNumber != nil {
		invoice.AckNumber = *input.AckNumber
	}
	if input.AckDate != nil {
		invoice.AckDate = input.AckDate
	}
	if input.QRCode != nil {
		invoice.QRCode = *input.QRCode
	}
	if input.Notes != nil {
		invoice.Notes = *input.Notes
	}
	if input.Terms != nil {
		invoice.Terms = *input.Terms
	}

	// If items are being updated, replace them
	if input.Items != nil {
		items, err := invoiceItems(tx, *input.Items)
		if err != nil {
			tx.Rollback()
			respondItemsError(c, err)
			return
		}
		if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&models.InvoiceItem{}).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to clear existing items")
			return
		}
		for i := range items {
			items[i].InvoiceID = invoice.ID
		}
		invoice.Items = items
		services.RecalculateInvoice(&invoice)
		if err := tx.Create(&invoice.Items).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save invoice items")
			return
		}
	} else {
		services.RecalculateInvoice(&invoice)
	}

	if invoice.PaidAmount > invoice.GrandTotal+0.005 {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusConflict, "Invoice total cannot be less than the amount already paid")
		return
	}

	if err := tx.Omit(clause.Associations).Save(&invoice).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update invoice")
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update invoice")
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// RecordInvoicePayment adds a payment and derives the payment status
func RecordInvoicePayment(c *gin.Context) {
	invoiceID, ok := parseID(c, "invoice")
	if !ok {
		return
	}

	var input RecordPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithBindError(c, err, &input)
		return
	}

	var invoice models.Invoice
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", invoiceID).First(&invoice).Error; err != nil {
			return err
		}
		if err := services.ApplyPayment(&invoice, input.Amount, input.Method); err != nil {
			return err
		}
		return tx.Model(&invoice).Updates(map[string]interface{}{
			"paid_amount":    invoice.PaidAmount,
			"payment_status": invoice.PaymentStatus,
			"payment_method": invoice.PaymentMethod,
			"status":         invoice.Status,
		}).Error
	})
	switch {
	case err == nil:
	case errors.Is(err, services.ErrInvoiceCancelled):
		utils.RespondWithError(c, http.StatusConflict, "Cannot record a payment on a cancelled invoice")
		return
	case errors.Is(err, services.ErrInvoiceDraft):
		utils.RespondWithError(c, http.StatusConflict, "Invoice must be sent before recording payments")
		return
	case errors.Is(err, services.ErrOverpayment):
		utils.RespondWithError(c, http.StatusBadRequest,
			"Payment exceeds outstanding balance of "+utils.FormatAmount(services.Outstanding(&invoice)))
		return
	default:
		respondLoadError(c, err, "Invoice")
		return
	}

	log.Printf("[PAYMENT] invoice %s: %s via %s (ref %q), now %s",
		invoice.InvoiceNumber, utils.FormatAmount(input.Amount), input.Method, input.Reference, invoice.PaymentStatus)
	c.JSON(http.StatusOK, gin.H{
		"invoice":     invoice,
		"outstanding": services.Outstanding(&invoice),
	})
}

// UpdateInvoiceStatus moves an invoice along its status workflow
func UpdateInvoiceStatus(c *gin.Context) {
	invoiceID, ok := parseID(c, "invoice")
	if !ok {
		return
	}

	var input UpdateInvoiceStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithBindError(c, err, &input)
		return
	}

	var invoice models.Invoice
	if err := config.DB.Where("id = ?", invoiceID).First(&invoice).Error; err != nil {
		respondLoadError(c, err, "Invoice")
		return
	}
	if !models.InvoiceCanTransition(invoice.Status, input.Status) {
		utils.RespondWithError(c, http.StatusConflict,
			fmt.Sprintf("Cannot change invoice status from %s to %s", invoice.Status, input.Status))
		return
	}

	invoice.Status = input.Status
	if input.Status == models.InvoiceStatusPaid {
		invoice.PaidAmount = invoice.GrandTotal
		invoice.PaymentStatus = models.PaymentStatusPaid
	}
	if err := config.DB.Model(&invoice).Select("status", "paid_amount", "payment_status").
		Updates(&invoice).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update invoice status")
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// DeleteInvoice soft deletes an invoice and its items
func DeleteInvoice(c *gin.Context) {
	invoiceID, ok := parseID(c, "invoice")
	if !ok {
		return
	}

	// Start transaction
	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var invoice models.Invoice
	if err := tx.Where("id = ?", invoiceID).First(&invoice).Error; err != nil {
		tx.Rollback()
		respondLoadError(c, err, "Invoice")
		return
	}
	if invoice.Status == models.InvoiceStatusPaid {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusConflict, "Paid invoices cannot be deleted")
		return
	}

	// Delete invoice items
	if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&models.InvoiceItem{}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete invoice items")
		return
	}

	// Delete invoice
	if err := tx.Delete(&invoice).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete invoice")
		return
	}

	// Release the quotation if this invoice is the one holding it
	if invoice.QuotationID != nil {
		if err := tx.Model(&models.Quotation{}).
			Where("id = ? AND invoice_id = ?", *invoice.QuotationID, invoice.ID).
			Update("invoice_id", nil).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update quotation")
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete invoice")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invoice deleted successfully"})
}
