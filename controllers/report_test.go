package controllers

import (
	"testing"
	"time"

	"accel-erp-backend/models"
	"accel-erp-backend/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrowthPercentage(t *testing.T) {
	assert.Equal(t, 0.0, growthPercentage(0, 0))
	assert.Equal(t, 100.0, growthPercentage(2500, 0))
	assert.Equal(t, 50.0, growthPercentage(1500, 1000))
	assert.Equal(t, -25.0, growthPercentage(750, 1000))
	assert.Equal(t, 33.33, growthPercentage(400, 300))
}

func TestAveragePerMonth(t *testing.T) {
	assert.Equal(t, 0.0, averagePerMonth(nil))

	dates := []time.Time{
		time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 11, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, 1.33, averagePerMonth(dates))
}

func TestRelativeDay(t *testing.T) {
	today := time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "Today", relativeDay(today.Add(-2*time.Hour), today))
	assert.Equal(t, "Yesterday", relativeDay(today.AddDate(0, 0, -1), today))
	assert.Equal(t, "5 days ago", relativeDay(today.AddDate(0, 0, -5), today))
	assert.Equal(t, "Tomorrow", relativeDay(today.AddDate(0, 0, 1), today))
	assert.Equal(t, "3 days", relativeDay(today.AddDate(0, 0, 3), today))
}

func TestUpcomingVisits(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	later := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	laterEnd := time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC)

	contracts := []models.Quotation{
		// quarterly visits land on Feb 15, May 17, Aug 16, Nov 15
		{QuotationNumber: "QTN-A", Customer: &models.Customer{Name: "Acme"}, ContractStartDate: &start, ContractEndDate: &end, NumberOfVisits: 4},
		// one visit on May 16
		{QuotationNumber: "QTN-B", ContractStartDate: &later, ContractEndDate: &laterEnd, NumberOfVisits: 1},
		{QuotationNumber: "QTN-C", NumberOfVisits: 2},
	}

	got := upcomingVisits(contracts, time.Date(2026, 5, 12, 9, 0, 0, 0, time.UTC), 7)

	require.Len(t, got, 2)
	assert.Equal(t, UpcomingVisit{QuotationNumber: "QTN-B", VisitDate: "2026-05-16", Due: "4 days"}, got[0])
	assert.Equal(t, UpcomingVisit{QuotationNumber: "QTN-A", Customer: "Acme", VisitDate: "2026-05-17", Due: "5 days"}, got[1])
}

func TestGetTopProducts_SkipsBuyBack(t *testing.T) {
	db := testdb.Install(t)
	customer := seedCustomer(t, db)
	at := time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC)

	inv := models.Invoice{
		InvoiceNumber: "INV-20261005-TOP001",
		CustomerID:    customer.ID,
		InvoiceDate:   at,
		Status:        models.InvoiceStatusSent,
		Items: []models.InvoiceItem{
			{Kind: models.ItemKindItem, LineItem: models.LineItem{Description: "Fuel filter", Quantity: 2, UnitPrice: 850, TotalPrice: 2006}},
			{Kind: models.ItemKindBatteryBuyBack, LineItem: models.LineItem{Description: "Old battery", Quantity: 1, UnitPrice: 3000, TotalPrice: 3000}},
		},
	}
	require.NoError(t, db.Create(&inv).Error)

	rc := ReportController{}
	got, err := rc.getTopProducts(at.AddDate(0, 0, -4), at.AddDate(0, 0, 20), 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, ProductSummary{Name: "Fuel filter", Quantity: 2, Revenue: 2006}, got[0])
}
