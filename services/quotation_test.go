package services

import (
	"testing"
	"time"

	"accel-erp-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombineDiscounts(t *testing.T) {
	assert.Equal(t, 0.0, CombineDiscounts(0, 0))
	assert.Equal(t, 10.0, CombineDiscounts(10, 0))
	assert.Equal(t, 10.0, CombineDiscounts(0, 10))
	assert.Equal(t, 19.0, CombineDiscounts(10, 10))
	assert.Equal(t, 100.0, CombineDiscounts(100, 50))
}

func TestInvoiceFromQuotation(t *testing.T) {
	q := &models.Quotation{
		Status:     models.QuotationStatusAccepted,
		CustomerID: uuid.New(),
		Notes:      "Site visit included",
		Items: []models.QuotationItem{
			{Kind: models.ItemKindItem, LineItem: line(2, 100, 10, 18)},
			{Kind: models.ItemKindServiceCharge, LineItem: line(1, 500, 0, 18)},
			{Kind: models.ItemKindBatteryBuyBack, LineItem: line(1, 1000, 0, 0)},
		},
	}
	q.ID = uuid.New()
	at := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	inv, err := InvoiceFromQuotation(q, at)
	require.NoError(t, err)

	require.Len(t, inv.Items, 3)
	assert.Equal(t, models.InvoiceStatusDraft, inv.Status)
	assert.Equal(t, q.CustomerID, inv.CustomerID)
	require.NotNil(t, inv.QuotationID)
	assert.Equal(t, q.ID, *inv.QuotationID)
	assert.Equal(t, at, inv.InvoiceDate)
	assert.Equal(t, "Site visit included", inv.Notes)

	assert.Equal(t, models.ItemKindItem, inv.Items[0].Kind)
	assert.Equal(t, models.ItemKindServiceCharge, inv.Items[1].Kind)
	assert.Equal(t, models.ItemKindBatteryBuyBack, inv.Items[2].Kind)
	assert.Equal(t, "Battery buy-back", inv.Items[2].Description)
	assert.Equal(t, 1000.0, inv.Items[2].UnitPrice)
	assert.Equal(t, 3, inv.Items[2].Position)
	assert.Equal(t, 1000.0, inv.BatteryBuyBackAmount)

	RecalculateQuotation(q)
	assert.Equal(t, q.GrandTotal, inv.GrandTotal)

	// Lines read back from the invoice recalculate to the same total
	again := models.Invoice{Items: append([]models.InvoiceItem(nil), inv.Items...)}
	RecalculateInvoice(&again)
	assert.Equal(t, inv.GrandTotal, again.GrandTotal)
}

func TestInvoiceFromQuotation_OverallDiscountFolded(t *testing.T) {
	q := &models.Quotation{
		Status:          models.QuotationStatusAccepted,
		OverallDiscount: 10,
		Items: []models.QuotationItem{
			{Kind: models.ItemKindSpares, LineItem: line(1, 1000, 10, 0)},
		},
	}

	inv, err := InvoiceFromQuotation(q, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 19.0, inv.Items[0].Discount)
	assert.Equal(t, 810.0, inv.GrandTotal)
}

func TestInvoiceFromQuotation_Rejects(t *testing.T) {
	_, err := InvoiceFromQuotation(&models.Quotation{Status: models.QuotationStatusSent}, time.Now())
	assert.ErrorIs(t, err, ErrQuotationNotAccepted)

	invoiceID := uuid.New()
	_, err = InvoiceFromQuotation(&models.Quotation{
		Status:    models.QuotationStatusAccepted,
		InvoiceID: &invoiceID,
	}, time.Now())
	assert.ErrorIs(t, err, ErrAlreadyInvoiced)
}
