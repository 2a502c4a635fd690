package controllers

import (
	"errors"
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

// OfferItemInput is an AMC offer line for one generator set.
type OfferItemInput struct {
	ProductID    string  `json:"product" binding:"omitempty,uuid"`
	Description  string  `json:"description" binding:"required_without=ProductID,max=500"`
	HSNNumber    string  `json:"hsnNumber" binding:"max=20"`
	UOM          string  `json:"uom" binding:"max=20"`
	EngineSlNo   string  `json:"engineSlNo" binding:"max=50"`
	DGRatingKVA  float64 `json:"dgRatingKVA" binding:"min=0"`
	TypeOfVisits string  `json:"typeOfVisits" binding:"max=50"`
	Quantity     float64  `json:"quantity" binding:"min=0"`
	UnitPrice    *float64 `json:"unitPrice" binding:"omitempty,min=0"`
	Discount     float64  `json:"discount" binding:"min=0,max=100"`
	TaxRate      *float64 `json:"taxRate" binding:"omitempty,min=0,max=100"`
}

func (o OfferItemInput) lineInput() LineItemInput {
	return LineItemInput{
		ProductID:   o.ProductID,
		Description: o.Description,
		HSNNumber:   o.HSNNumber,
		UOM:         o.UOM,
		Quantity:    o.Quantity,
		UnitPrice:   o.UnitPrice,
		Discount:    o.Discount,
		TaxRate:     o.TaxRate,
	}
}

// QuotationLinesInput groups the priced sections of a quotation.
type QuotationLinesInput struct {
	Items          []LineItemInput
	ServiceCharges []LineItemInput
	BatteryBuyBack *LineItemInput
	OfferItems     []OfferItemInput
	SparesItems    []LineItemInput
}

func (l QuotationLinesInput) count() int {
	n := len(l.Items) + len(l.ServiceCharges) + len(l.OfferItems) + len(l.SparesItems)
	if l.BatteryBuyBack != nil {
		n++
	}
	return n
}

type CreateQuotationInput struct {
	Type              string        `json:"quotationType" binding:"required,oneof=service spare amc"`
	AMCType           string        `json:"amcType" binding:"omitempty,oneof=AMC CAMC"`
	CustomerID        string        `json:"customer" binding:"required,uuid"`
	EngineerID        string        `json:"engineer" binding:"omitempty,uuid"`
	LocationID        string        `json:"location" binding:"omitempty,uuid"`
	QuotationDate     *time.Time    `json:"quotationDate"`
	ValidUntil        *time.Time    `json:"validUntil"`
	Subject           string        `json:"subject" binding:"max=200"`
	BillingAddress    *AddressInput `json:"billingAddress"`
	ShippingAddress   *AddressInput `json:"shippingAddress"`
	OverallDiscount   float64       `json:"overallDiscount" binding:"min=0,max=100"`
	ContractStartDate *time.Time    `json:"contractStartDate"`
	ContractEndDate   *time.Time    `json:"contractEndDate"`
	NumberOfVisits    int           `json:"numberOfVisits" binding:"min=0,max=52"`
	NumberOfCallouts  int           `json:"numberOfCallouts" binding:"min=0"`
	Notes             string        `json:"notes" binding:"max=2000"`
	Terms             string        `json:"terms" binding:"max=4000"`

	Items          []LineItemInput  `json:"items" binding:"omitempty,dive"`
	ServiceCharges []LineItemInput  `json:"serviceCharges" binding:"omitempty,dive"`
	BatteryBuyBack *LineItemInput   `json:"batteryBuyBack"`
	OfferItems     []OfferItemInput `json:"offerItems" binding:"omitempty,dive"`
	SparesItems    []LineItemInput  `json:"sparesItems" binding:"omitempty,dive"`
}

func (in CreateQuotationInput) lines() QuotationLinesInput {
	return QuotationLinesInput{
		Items:          in.Items,
		ServiceCharges: in.ServiceCharges,
		BatteryBuyBack: in.BatteryBuyBack,
		OfferItems:     in.OfferItems,
		SparesItems:    in.SparesItems,
	}
}

// missingAMCField names the first contract field an AMC quotation lacks.
func (in CreateQuotationInput) missingAMCField() (string, string) {
	if in.Type != models.QuotationTypeAMC {
		return "", ""
	}
	switch {
	case in.AMCType == "":
		return "amcType", "AMC type is required for AMC quotations"
	case in.ContractStartDate == nil:
		return "contractStartDate", "Contract start date is required for AMC quotations"
	case in.ContractEndDate == nil:
		return "contractEndDate", "Contract end date is required for AMC quotations"
	}
	return "", ""
}

var quotationMessages = mergeMessages(
	lineMessages("items"),
	lineMessages("serviceCharges"),
	lineMessages("batteryBuyBack"),
	lineMessages("offerItems"),
	lineMessages("sparesItems"),
	map[string]string{
		"quotationType.required": "Quotation type is required",
		"quotationType.oneof":    "Quotation type must be one of: service, spare, amc",
		"amcType.oneof":          "AMC type must be AMC or CAMC",
		"customer.required":      "Customer is required",
		"customer.uuid":          "Customer must be a valid ID",
		"overallDiscount.min":    "Overall discount cannot be negative",
		"overallDiscount.max":    "Overall discount cannot exceed 100%",
		"status.oneof":           "Invalid quotation status",
	},
)

func (CreateQuotationInput) ValidationMessages() map[string]string {
	return quotationMessages
}

type UpdateQuotationInput struct {
	CustomerID        *string       `json:"customer" binding:"omitempty,uuid"`
	AMCType           *string       `json:"amcType" binding:"omitempty,oneof=AMC CAMC"`
	EngineerID        *string       `json:"engineer" binding:"omitempty,uuid"`
	LocationID        *string       `json:"location" binding:"omitempty,uuid"`
	QuotationDate     *time.Time    `json:"quotationDate"`
	ValidUntil        *time.Time    `json:"validUntil"`
	Status            *string       `json:"status" binding:"omitempty,oneof=draft sent accepted rejected expired"`
	Subject           *string       `json:"subject" binding:"omitempty,max=200"`
	BillingAddress    *AddressInput `json:"billingAddress"`
	ShippingAddress   *AddressInput `json:"shippingAddress"`
	OverallDiscount   *float64      `json:"overallDiscount" binding:"omitempty,min=0,max=100"`
	ContractStartDate *time.Time    `json:"contractStartDate"`
	ContractEndDate   *time.Time    `json:"contractEndDate"`
	NumberOfVisits    *int          `json:"numberOfVisits" binding:"omitempty,min=0,max=52"`
	NumberOfCallouts  *int          `json:"numberOfCallouts" binding:"omitempty,min=0"`
	Notes             *string       `json:"notes" binding:"omitempty,max=2000"`
	Terms             *string       `json:"terms" binding:"omitempty,max=4000"`

	// Sending any line section replaces all lines of the quotation.
	Items          *[]LineItemInput  `json:"items" binding:"omitempty,dive"`
	ServiceCharges *[]LineItemInput  `json:"serviceCharges" binding:"omitempty,dive"`
	BatteryBuyBack *LineItemInput    `json:"batteryBuyBack"`
	OfferItems     *[]OfferItemInput `json:"offerItems" binding:"omitempty,dive"`
	SparesItems    *[]LineItemInput  `json:"sparesItems" binding:"omitempty,dive"`
}

// lines returns nil when no line section was sent.
func (in UpdateQuotationInput) lines() *QuotationLinesInput {
	if in.Items == nil && in.ServiceCharges == nil && in.BatteryBuyBack == nil &&
		in.OfferItems == nil && in.SparesItems == nil {
		return nil
	}
	out := QuotationLinesInput{BatteryBuyBack: in.BatteryBuyBack}
	if in.Items != nil {
		out.Items = *in.Items
	}
	if in.ServiceCharges != nil {
		out.ServiceCharges = *in.ServiceCharges
	}
	if in.OfferItems != nil {
		out.OfferItems = *in.OfferItems
	}
	if in.SparesItems != nil {
		out.SparesItems = *in.SparesItems
	}
	return &out
}

func (UpdateQuotationInput) ValidationMessages() map[string]string {
	return quotationMessages
}

type QuotationListQuery struct {
	Page       int       `form:"page" binding:"omitempty,min=1"`
	Limit      int       `form:"limit" binding:"omitempty,min=1,max=100"`
	Search     string    `form:"search" binding:"max=100"`
	Type       string    `form:"type" binding:"omitempty,oneof=service spare amc"`
	Status     string    `form:"status" binding:"omitempty,oneof=draft sent accepted rejected expired"`
	CustomerID string    `form:"customer" binding:"omitempty,uuid"`
	EngineerID string    `form:"engineer" binding:"omitempty,uuid"`
	DateFrom   time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo     time.Time `form:"dateTo" time_format:"2006-01-02" binding:"omitempty,gtefield=DateFrom"`
	SortBy     string    `form:"sortBy" binding:"omitempty,oneof=quotationNumber quotationDate validUntil grandTotal status createdAt"`
	SortOrder  string    `form:"sortOrder" binding:"omitempty,oneof=asc desc"`
}

func (QuotationListQuery) ValidationMessages() map[string]string {
	return map[string]string{
		"limit.max":       "Limit cannot exceed 100",
		"dateTo.gtefield": "End date must be on or after start date",
		"type.oneof":      "Quotation type must be one of: service, spare, amc",
		"status.oneof":    "Invalid quotation status",
	}
}

var quotationSortColumns = map[string]string{
	"quotationNumber": "quotation_number",
	"quotationDate":   "quotation_date",
	"validUntil":      "valid_until",
	"grandTotal":      "grand_total",
	"status":          "status",
	"createdAt":       "created_at",
}

// quotationItems resolves every section into stored lines in section order.
func quotationItems(db *gorm.DB, in QuotationLinesInput) ([]models.QuotationItem, error) {
	var out []models.QuotationItem
	add := func(kind string, inputs []LineItemInput) error {
		lines, err := resolveLines(db, inputs)
		if err != nil {
			return err
		}
		for _, l := range lines {
			out = append(out, models.QuotationItem{Kind: kind, LineItem: l})
		}
		return nil
	}

	if err := add(models.ItemKindItem, in.Items); err != nil {
		return nil, err
	}
	if err := add(models.ItemKindServiceCharge, in.ServiceCharges); err != nil {
		return nil, err
	}
	if err := add(models.ItemKindSpares, in.SparesItems); err != nil {
		return nil, err
	}
	if in.BatteryBuyBack != nil {
		if err := add(models.ItemKindBatteryBuyBack, []LineItemInput{*in.BatteryBuyBack}); err != nil {
			return nil, err
		}
	}

	offers := make([]LineItemInput, len(in.OfferItems))
	for i, o := range in.OfferItems {
		offers[i] = o.lineInput()
	}
	start := len(out)
	if err := add(models.ItemKindOffer, offers); err != nil {
		return nil, err
	}
	for i, o := range in.OfferItems {
		out[start+i].EngineSlNo = o.EngineSlNo
		out[start+i].DGRatingKVA = o.DGRatingKVA
		out[start+i].TypeOfVisits = o.TypeOfVisits
	}

	for i := range out {
		out[i].Position = i + 1
	}
	return out, nil
}

// checkReferences verifies the optional engineer and location exist.
func checkReferences(db *gorm.DB, engineerID, locationID *uuid.UUID) error {
	if engineerID != nil {
		var engineer models.User
		if err := db.Where("id = ?", *engineerID).First(&engineer).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errBadReference{"Engineer not found"}
			}
			return err
		}
	}
	if locationID != nil {
		var location models.StockLocation
		if err := db.Where("id = ?", *locationID).First(&location).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errBadReference{"Location not found"}
			}
			return err
		}
	}
	return nil
}

func optionalID(s string) *uuid.UUID {
	if s == "" {
		return nil
	}
	id := uuid.MustParse(s)
	return &id
}

func checkQuotationDates(c *gin.Context, q *models.Quotation) bool {
	if q.ValidUntil != nil && q.ValidUntil.Before(utils.BeginningOfDay(q.QuotationDate)) {
		respondFieldError(c, "validUntil", "Valid until must not be before quotation date")
		return false
	}
	if q.ContractStartDate != nil && q.ContractEndDate != nil && q.ContractEndDate.Before(*q.ContractStartDate) {
		respondFieldError(c, "contractEndDate", "Contract end date must not be before start date")
		return false
	}
	return true
}

func CreateQuotation(c *gin.Context) {
	var input CreateQuotationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithBindError(c, err, &input)
		return
	}
	if input.lines().count() == 0 {
		respondFieldError(c, "items", "At least one item is required")
		return
	}
	if field, msg := input.missingAMCField(); field != "" {
		respondFieldError(c, field, msg)
		return
	}

	quotationDate := time.Now()
	if input.QuotationDate != nil {
		quotationDate = *input.QuotationDate
	}

	customer, err := findCustomer(config.DB, input.CustomerID)
	if err != nil {
		respondLoadError(c, err, "Customer")
		return
	}

	q := models.Quotation{
		Type:            input.Type,
		CustomerID:      customer.ID,
		EngineerID:      optionalID(input.EngineerID),
		LocationID:      optionalID(input.LocationID),
		QuotationDate:   quotationDate,
		ValidUntil:      input.ValidUntil,
		Status:          models.QuotationStatusDraft,
		Subject:         input.Subject,
		BillingAddress:  addressOrDefault(input.BillingAddress, customer.BillingAddress.Data()),
		ShippingAddress: addressOrDefault(input.ShippingAddress, defaultShipping(customer)),
		OverallDiscount: input.OverallDiscount,
		Notes:           input.Notes,
		Terms:           input.Terms,
	}
	if input.Type == models.QuotationTypeAMC {
		q.AMCType = input.AMCType
		q.ContractStartDate = input.ContractStartDate
		q.ContractEndDate = input.ContractEndDate
		q.NumberOfVisits = input.NumberOfVisits
		q.NumberOfCallouts = input.NumberOfCallouts
	}
	if !checkQuotationDates(c, &q) {
		return
	}

	if err := checkReferences(config.DB, q.EngineerID, q.LocationID); err != nil {
		respondLoadError(c, err, "Reference")
		return
	}

	items, err := quotationItems(config.DB, input.lines())
	if err != nil {
		respondLoadError(c, err, "Product")
		return
	}
	q.Items = items
	services.RecalculateQuotation(&q)
	q.QuotationNumber = utils.DocumentNumber(loadSettings(config.DB).QuotationPrefix, quotationDate)

	if err := config.DB.Omit("Customer", "Engineer").Create(&q).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create quotation")
		return
	}

	q.Customer = &customer
	c.JSON(http.StatusCreated, q)
}

func quotationQuery(db *gorm.DB, q QuotationListQuery) *gorm.DB {
	query := db.Model(&models.Quotation{})
	if q.Type != "" {
		query = query.Where("type = ?", q.Type)
	}
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}
	if q.CustomerID != "" {
		query = query.Where("customer_id = ?", q.CustomerID)
	}
	if q.EngineerID != "" {
		query = query.Where("engineer_id = ?", q.EngineerID)
	}
	if !q.DateFrom.IsZero() {
		query = query.Where("quotation_date >= ?", utils.BeginningOfDay(q.DateFrom))
	}
	if !q.DateTo.IsZero() {
		query = query.Where("quotation_date <= ?", utils.EndOfDay(q.DateTo))
	}
	if strings.TrimSpace(q.Search) != "" {
		pattern := likePattern(q.Search)
		query = query.Where(
			"LOWER(quotation_number) LIKE ? OR LOWER(subject) LIKE ? OR customer_id IN (?)",
			pattern, pattern,
			db.Model(&models.Customer{}).Select("id").Where("LOWER(name) LIKE ?", pattern),
		)
	}
	return query
}

func GetQuotations(c *gin.Context) {
	var q QuotationListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondWithBindError(c, err, &q)
		return
	}

	var total int64
	if err := quotationQuery(config.DB, q).Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count quotations")
		return
	}
	page := utils.NewPagination(q.Page, q.Limit, total)

	var quotations []models.Quotation
	if err := quotationQuery(config.DB, q).
		Preload("Customer").Preload("Engineer").
		Order(orderClause(quotationSortColumns, q.SortBy, q.SortOrder, "quotation_date")).
		Offset(page.Offset()).Limit(page.Limit).
		Find(&quotations).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve quotations")
		return
	}

	c.JSON(http.StatusOK, gin.H{"quotations": quotations, "pagination": page})
}

func loadQuotation(db *gorm.DB, id uuid.UUID) (models.Quotation, error) {
	var q models.Quotation
	err := db.Preload("Items", byPosition).Preload("Customer").Preload("Engineer").
		Where("id = ?", id).
		First(&q).Error
	return q, err
}

func GetQuotation(c *gin.Context) {
	quotationID, ok := parseID(c, "quotation")
	if !ok {
		return
	}

	q, err := loadQuotation(config.DB, quotationID)
	if err != nil {
		respondLoadError(c, err, "Quotation")
		return
	}

	c.JSON(http.StatusOK, q)
}

func UpdateQuotation(c *gin.Context) {
	quotationID, ok := parseID(c, "quotation")
	if !ok {
		return
	}

	var input UpdateQuotationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithBindError(c, err, &input)
		return
	}
	lines := input.lines()
	if lines != nil && lines.count() == 0 {
		respondFieldError(c, "items", "At least one item is required")
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	q, err := loadQuotation(tx.Clauses(clause.Locking{Strength: "UPDATE"}), quotationID)
	if err != nil {
		tx.Rollback()
		respondLoadError(c, err, "Quotation")
		return
	}
	if q.InvoiceID != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusConflict, "Invoiced quotations cannot be edited")
		return
	}

	if input.CustomerID != nil {
		customer, err := findCustomer(tx, *input.CustomerID)
		if err != nil {
			tx.Rollback()
			respondLoadError(c, err, "Customer")
			return
		}
		q.CustomerID = customer.ID
		q.Customer = &customer
	}
	if input.EngineerID != nil {
		q.EngineerID = optionalID(*input.EngineerID)
		q.Engineer = nil
	}
	if input.LocationID != nil {
		q.LocationID = optionalID(*input.LocationID)
	}
	if err := checkReferences(tx, q.EngineerID, q.LocationID); err != nil {
		tx.Rollback()
		respondLoadError(c, err, "Reference")
		return
	}
	if input.QuotationDate != nil {
		q.QuotationDate = *input.QuotationDate
	}
	if input.ValidUntil != nil {
		q.ValidUntil = input.ValidUntil
	}
	if input.Status != nil {
		q.Status = *input.Status
	}
	if input.Subject != nil {
		q.Subject = *input.Subject
	}
	if input.BillingAddress != nil {
		q.BillingAddress = datatypes.NewJSONType(input.BillingAddress.toModel())
	}
	if input.ShippingAddress != nil {
		q.ShippingAddress = datatypes.NewJSONType(input.ShippingAddress.toModel())
	}
	if input.OverallDiscount != nil {
		q.OverallDiscount = *input.OverallDiscount
	}
	if input.Notes != nil {
		q.Notes = *input.Notes
	}
	if input.Terms != nil {
		q.Terms = *input.Terms
	}
	if q.Type == models.QuotationTypeAMC {
		if input.AMCType != nil {
			q.AMCType = *input.AMCType
		}
		if input.ContractStartDate != nil {
			q.ContractStartDate = input.ContractStartDate
		}
		if input.ContractEndDate != nil {
			q.ContractEndDate = input.ContractEndDate
		}
		if input.NumberOfVisits != nil {
			q.NumberOfVisits = *input.NumberOfVisits
		}
		if input.NumberOfCallouts != nil {
			q.NumberOfCallouts = *input.NumberOfCallouts
		}
	}
	if !checkQuotationDates(c, &q) {
		tx.Rollback()
		return
	}

	if lines != nil {
		items, err := quotationItems(tx, *lines)
		if err != nil {
			tx.Rollback()
			respondLoadError(c, err, "Product")
			return
		}
		if err := tx.Where("quotation_id = ?", q.ID).Delete(&models.QuotationItem{}).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to clear existing items")
			return
		}
		for i := range items {
			items[i].QuotationID = q.ID
		}
		q.Items = items
		services.RecalculateQuotation(&q)
		if err := tx.Create(&q.Items).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save quotation items")
			return
		}
	} else {
		services.RecalculateQuotation(&q)
	}

	if err := tx.Omit(clause.Associations).Save(&q).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update quotation")
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update quotation")
		return
	}

	c.JSON(http.StatusOK, q)
}

func DeleteQuotation(c *gin.Context) {
	quotationID, ok := parseID(c, "quotation")
	if !ok {
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var q models.Quotation
	if err := tx.Where("id = ?", quotationID).First(&q).Error; err != nil {
		tx.Rollback()
		respondLoadError(c, err, "Quotation")
		return
	}
	if q.InvoiceID != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusConflict, "Invoiced quotations cannot be deleted")
		return
	}

	if err := tx.Where("quotation_id = ?", q.ID).Delete(&models.QuotationItem{}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete quotation items")
		return
	}
	if err := tx.Delete(&q).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete quotation")
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete quotation")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Quotation deleted successfully"})
}

// ConvertQuotationToInvoice raises a Draft invoice from an accepted quotation.
func ConvertQuotationToInvoice(c *gin.Context) {
	quotationID, ok := parseID(c, "quotation")
	if !ok {
		return
	}

	var invoice models.Invoice
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		q, err := loadQuotation(tx.Clauses(clause.Locking{Strength: "UPDATE"}), quotationID)
		if err != nil {
			return err
		}
		settings := loadSettings(tx)
		now := time.Now()

		invoice, err = services.InvoiceFromQuotation(&q, now)
		if err != nil {
			return err
		}
		invoice.TaxRate = settings.DefaultGSTRate
		invoice.InvoiceNumber = utils.DocumentNumber(settings.InvoicePrefix, now)
		if err := tx.Omit("Customer").Create(&invoice).Error; err != nil {
			return err
		}
		return tx.Model(&models.Quotation{}).Where("id = ?", q.ID).
			Update("invoice_id", invoice.ID).Error
	})
	switch {
	case err == nil:
	case errors.Is(err, services.ErrQuotationNotAccepted), errors.Is(err, services.ErrAlreadyInvoiced):
		utils.RespondWithError(c, http.StatusConflict, capitalize(err.Error()))
		return
	default:
		respondLoadError(c, err, "Quotation")
		return
	}

	log.Printf("[QUOTATION] %s invoiced as %s", quotationID, invoice.InvoiceNumber)
	c.JSON(http.StatusCreated, invoice)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
