// controllers/report.go
package controllers

import (
	"net/http"
	"time"

	"accel-erp-backend/config"
	"accel-erp-backend/models"
	"accel-erp-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ReportController handles all reporting functions
type ReportController struct{}

// billedStatuses are the invoice statuses that count as revenue.
var billedStatuses = []string{models.InvoiceStatusSent, models.InvoiceStatusPaid, models.InvoiceStatusOverdue}

// AnalyticsSummary represents the Analytics data
type AnalyticsSummary struct {
	CurrentMonthRevenue   float64           `json:"currentMonthRevenue"`
	MonthGrowth           float64           `json:"monthGrowth"`
	CurrentQuarterRevenue float64           `json:"currentQuarterRevenue"`
	QuarterGrowth         float64           `json:"quarterGrowth"`
	CurrentYearRevenue    float64           `json:"currentYearRevenue"`
	YearGrowth            float64           `json:"yearGrowth"`
	TopProducts           []ProductSummary  `json:"topProducts"`
	TopCustomers          []CustomerSummary `json:"topCustomers"`
	QuickStats            QuickStatistics   `json:"quickStats"`
}

type ProductSummary struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

type CustomerSummary struct {
	Name     string  `json:"name"`
	Invoices int     `json:"invoices"`
	Billed   float64 `json:"billed"`
}

type QuickStatistics struct {
	TotalCustomers      int     `json:"totalCustomers"`
	TotalInvoices       int     `json:"totalInvoices"`
	AvgMonthlyInvoices  float64 `json:"avgMonthlyInvoices"`
	AvgInvoiceValue     float64 `json:"avgInvoiceValue"`
	Outstanding         float64 `json:"outstanding"`
	QuotationConversion float64 `json:"quotationConversion"`
}

type ReportQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=20"`
}

// GetReportAnalytics returns revenue with growth and the top lists for the
// current month
func (rc *ReportController) GetReportAnalytics(c *gin.Context) {
	var q ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondWithBindError(c, err, &q)
		return
	}
	limit := q.Limit
	if limit == 0 {
		limit = 5
	}

	// Get current time
	now := time.Now()
	currentYear, currentMonth, _ := now.Date()
	currentLocation := now.Location()

	// Calculate date ranges
	firstOfMonth := time.Date(currentYear, currentMonth, 1, 0, 0, 0, 0, currentLocation)
	lastOfMonth := firstOfMonth.AddDate(0, 1, 0).Add(-time.Nanosecond)
	firstOfYear := time.Date(currentYear, 1, 1, 0, 0, 0, 0, currentLocation)
	lastOfYear := firstOfYear.AddDate(1, 0, 0).Add(-time.Nanosecond)

	periods := []struct {
		start, end time.Time
		what       string
	}{
		{firstOfMonth, lastOfMonth, "monthly"},
		{firstOfMonth.AddDate(0, -1, 0), firstOfMonth.Add(-time.Nanosecond), "last month"},
		{utils.QuarterStart(now), utils.QuarterEnd(now), "quarterly"},
		{utils.QuarterStart(now).AddDate(0, -3, 0), utils.QuarterStart(now).Add(-time.Nanosecond), "last quarter"},
		{firstOfYear, lastOfYear, "yearly"},
		{firstOfYear.AddDate(-1, 0, 0), firstOfYear.Add(-time.Nanosecond), "last year"},
	}
	revenue := make([]float64, len(periods))
	for i, p := range periods {
		r, err := rc.getRevenue(p.start, p.end)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get "+p.what+" revenue")
			return
		}
		revenue[i] = r
	}

	// Get top products
	topProducts, err := rc.getTopProducts(firstOfMonth, lastOfMonth, limit)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get top products")
		return
	}

	// Get top customers
	topCustomers, err := rc.getTopCustomers(firstOfMonth, lastOfMonth, limit)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get top customers")
		return
	}

	// Get quick statistics
	quickStats, err := rc.getQuickStatistics(now)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get quick statistics")
		return
	}

	summary := AnalyticsSummary{
		CurrentMonthRevenue:   revenue[0],
		MonthGrowth:           growthPercentage(revenue[0], revenue[1]),
		CurrentQuarterRevenue: revenue[2],
		QuarterGrowth:         growthPercentage(revenue[2], revenue[3]),
		CurrentYearRevenue:    revenue[4],
		YearGrowth:            growthPercentage(revenue[4], revenue[5]),
		TopProducts:           topProducts,
		TopCustomers:          topCustomers,
		QuickStats:            quickStats,
	}

	c.JSON(http.StatusOK, summary)
}

// Helper functions for reports

func (rc *ReportController) getRevenue(start, end time.Time) (float64, error) {
	var total float64
	err := config.DB.Model(&models.Invoice{}).
		Where("status IN ? AND invoice_date BETWEEN ? AND ?", billedStatuses, start, end).
		Select("COALESCE(SUM(grand_total), 0)").
		Scan(&total).Error
	return total, err
}

// growthPercentage is the change from previous to current in percent,
// rounded to 2 decimals. Growth from nothing counts as 100%.
func growthPercentage(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	cur, prev := decimal.NewFromFloat(current), decimal.NewFromFloat(previous)
	return cur.Sub(prev).Div(prev.Abs()).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
}

func (rc *ReportController) getTopProducts(start, end time.Time, limit int) ([]ProductSummary, error) {
	var products []ProductSummary

	err := config.DB.Table("invoice_items").
		Select("invoice_items.description as name, SUM(invoice_items.quantity) as quantity, SUM(invoice_items.total_price) as revenue").
		Joins("JOIN invoices ON invoices.id = invoice_items.invoice_id").
		Where("invoices.status IN ? AND invoices.invoice_date BETWEEN ? AND ? AND invoices.deleted_at IS NULL AND invoice_items.deleted_at IS NULL AND invoice_items.kind <> ?",
			billedStatuses, start, end, models.ItemKindBatteryBuyBack).
		Group("invoice_items.description").
		Order("revenue DESC").
		Limit(limit).
		Scan(&products).Error

	return products, err
}

func (rc *ReportController) getTopCustomers(start, end time.Time, limit int) ([]CustomerSummary, error) {
	var customers []CustomerSummary

	err := config.DB.Table("invoices").
		Select("customers.name, COUNT(invoices.id) as invoices, SUM(invoices.grand_total) as billed").
		Joins("JOIN customers ON customers.id = invoices.customer_id").
		Where("invoices.status IN ? AND invoices.invoice_date BETWEEN ? AND ? AND invoices.deleted_at IS NULL AND customers.deleted_at IS NULL",
			billedStatuses, start, end).
		Group("customers.name").
		Order("billed DESC").
		Limit(limit).
		Scan(&customers).Error

	return customers, err
}

// averagePerMonth is the mean number of dates per calendar month, counting
// only months that have at least one date.
func averagePerMonth(dates []time.Time) float64 {
	if len(dates) == 0 {
		return 0
	}
	months := make(map[string]int)
	for _, d := range dates {
		months[d.Format("2006-01")]++
	}
	avg := decimal.NewFromInt(int64(len(dates))).Div(decimal.NewFromInt(int64(len(months))))
	return avg.Round(2).InexactFloat64()
}

func (rc *ReportController) getQuickStatistics(now time.Time) (QuickStatistics, error) {
	var stats QuickStatistics

	// Total Customers
	var totalCustomers int64
	if err := config.DB.Model(&models.Customer{}).Count(&totalCustomers).Error; err != nil {
		return stats, err
	}
	stats.TotalCustomers = int(totalCustomers)

	// Billed invoices
	var totals struct {
		Count       int64
		Revenue     float64
		Outstanding float64
	}
	if err := config.DB.Model(&models.Invoice{}).
		Where("status IN ?", billedStatuses).
		Select("COUNT(*) as count, COALESCE(SUM(grand_total), 0) as revenue, COALESCE(SUM(grand_total - paid_amount), 0) as outstanding").
		Scan(&totals).Error; err != nil {
		return stats, err
	}
	stats.TotalInvoices = int(totals.Count)
	stats.Outstanding = decimal.NewFromFloat(totals.Outstanding).Round(2).InexactFloat64()
	if totals.Count > 0 {
		stats.AvgInvoiceValue = decimal.NewFromFloat(totals.Revenue).
			Div(decimal.NewFromInt(totals.Count)).Round(2).InexactFloat64()
	}

	// Average monthly invoices over the last 12 months
	var dates []time.Time
	if err := config.DB.Model(&models.Invoice{}).
		Where("status IN ? AND invoice_date >= ?", billedStatuses, now.AddDate(-1, 0, 0)).
		Pluck("invoice_date", &dates).Error; err != nil {
		return stats, err
	}
	stats.AvgMonthlyInvoices = averagePerMonth(dates)

	// Share of decided quotations that were accepted
	var decided, accepted int64
	if err := config.DB.Model(&models.Quotation{}).
		Where("status IN ?", []string{models.QuotationStatusAccepted, models.QuotationStatusRejected, models.QuotationStatusExpired}).
		Count(&decided).Error; err != nil {
		return stats, err
	}
	if err := config.DB.Model(&models.Quotation{}).
		Where("status = ?", models.QuotationStatusAccepted).
		Count(&accepted).Error; err != nil {
		return stats, err
	}
	if decided > 0 {
		stats.QuotationConversion = decimal.NewFromInt(accepted).Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(decided)).Round(2).InexactFloat64()
	}

	return stats, nil
}
