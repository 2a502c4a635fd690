package controllers

import (
	"fmt"
	"net/http"
	"time"

	"accel-erp-backend/config"
	"accel-erp-backend/models"
	"accel-erp-backend/services"
	"accel-erp-backend/utils"

	"github.com/gin-gonic/gin"
)

type DashboardOverview struct {
	TotalCustomers    int64           `json:"totalCustomers"`
	OpenQuotations    int64           `json:"openQuotations"`
	POsInProduction   int64           `json:"posInProduction"`
	OverdueInvoices   int64           `json:"overdueInvoices"`
	LowStockProducts  int             `json:"lowStockProducts"`
	MonthlyRevenue    float64         `json:"monthlyRevenue"`
	Outstanding       float64         `json:"outstanding"`
	RecentInvoices    []RecentInvoice `json:"recentInvoices"`
	UpcomingAMCVisits []UpcomingVisit `json:"upcomingAmcVisits"`
}

type RecentInvoice struct {
	InvoiceNumber string  `json:"invoiceNumber"`
	Customer      string  `json:"customer"`
	GrandTotal    float64 `json:"grandTotal"`
	Status        string  `json:"status"`
	Date          string  `json:"date"` // e.g. "Today", "Yesterday"
}

type UpcomingVisit struct {
	QuotationNumber string `json:"quotationNumber"`
	Customer        string `json:"customer"`
	VisitDate       string `json:"visitDate"`
	Due             string `json:"due"` // e.g. "Tomorrow", "3 days"
}

// relativeDay labels day relative to today, looking back when past.
func relativeDay(day, today time.Time) string {
	days := utils.DaysBetween(day, today)
	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days == -1:
		return "Tomorrow"
	case days > 1:
		return fmt.Sprintf("%d days ago", days)
	default:
		return fmt.Sprintf("%d days", -days)
	}
}

func GetDashboardOverview(c *gin.Context) {
	var overview DashboardOverview
	now := time.Now()

	counts := []struct {
		model any
		where string
		args  []any
		dst   *int64
	}{
		{&models.Customer{}, "is_active = ?", []any{true}, &overview.TotalCustomers},
		{&models.Quotation{}, "status IN ?", []any{[]string{models.QuotationStatusDraft, models.QuotationStatusSent}}, &overview.OpenQuotations},
		{&models.PurchaseOrder{}, "status = ?", []any{models.POStatusInProduction}, &overview.POsInProduction},
		{&models.Invoice{}, "status = ?", []any{models.InvoiceStatusOverdue}, &overview.OverdueInvoices},
	}
	for _, q := range counts {
		if err := config.DB.Model(q.model).Where(q.where, q.args...).Count(q.dst).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load dashboard counts")
			return
		}
	}

	// Low stock across all locations
	var levels []models.StockLevel
	if err := config.DB.Preload("Product").Preload("Location").Find(&levels).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load stock")
		return
	}
	for _, s := range services.AggregateStock(levels) {
		if s.LowStock {
			overview.LowStockProducts++
		}
	}

	// This month's revenue and what is still owed
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if err := config.DB.Model(&models.Invoice{}).
		Where("status IN ? AND invoice_date >= ?", billedStatuses, firstOfMonth).
		Select("COALESCE(SUM(grand_total), 0)").Scan(&overview.MonthlyRevenue).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load revenue")
		return
	}
	if err := config.DB.Model(&models.Invoice{}).
		Where("status IN ?", billedStatuses).
		Select("COALESCE(SUM(grand_total - paid_amount), 0)").Scan(&overview.Outstanding).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load receivables")
		return
	}

	// Recent invoices
	var invoices []models.Invoice
	if err := config.DB.Preload("Customer").Order("invoice_date DESC").Limit(5).Find(&invoices).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load recent invoices")
		return
	}
	overview.RecentInvoices = make([]RecentInvoice, 0, len(invoices))
	for _, inv := range invoices {
		ri := RecentInvoice{
			InvoiceNumber: inv.InvoiceNumber,
			GrandTotal:    inv.GrandTotal,
			Status:        inv.Status,
			Date:          relativeDay(inv.InvoiceDate, now),
		}
		if inv.Customer != nil {
			ri.Customer = inv.Customer.Name
		}
		overview.RecentInvoices = append(overview.RecentInvoices, ri)
	}

	// AMC visits in the next 7 days
	var contracts []models.Quotation
	if err := config.DB.Preload("Customer").
		Where("type = ? AND status = ? AND contract_end_date >= ?",
			models.QuotationTypeAMC, models.QuotationStatusAccepted, utils.BeginningOfDay(now)).
		Find(&contracts).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load AMC contracts")
		return
	}
	overview.UpcomingAMCVisits = upcomingVisits(contracts, now, 7)

	c.JSON(http.StatusOK, overview)
}

// upcomingVisits lists contract visits falling within the next days days,
// soonest first.
func upcomingVisits(contracts []models.Quotation, now time.Time, days int) []UpcomingVisit {
	today := utils.BeginningOfDay(now)
	horizon := today.AddDate(0, 0, days)

	out := []UpcomingVisit{}
	for _, q := range contracts {
		if q.ContractStartDate == nil || q.ContractEndDate == nil {
			continue
		}
		for _, visit := range services.VisitSchedule(*q.ContractStartDate, *q.ContractEndDate, q.NumberOfVisits) {
			visitDay := utils.BeginningOfDay(visit)
			if visitDay.Before(today) || visitDay.After(horizon) {
				continue
			}
			uv := UpcomingVisit{
				QuotationNumber: q.QuotationNumber,
				VisitDate:       visitDay.Format("2006-01-02"),
				Due:             relativeDay(visitDay, today),
			}
			if q.Customer != nil {
				uv.Customer = q.Customer.Name
			}
			out = append(out, uv)
		}
	}
	sortVisits(out)
	return out
}

func sortVisits(v []UpcomingVisit) {
	for i := 1; i < len(v); i++ {
		for j := i; j > 0 && v[j].VisitDate < v[j-1].VisitDate; j-- {
			v[j], v[j-1] = v[j-1], v[j]
		}
	}
}
