package services

import (
	"testing"

	"accel-erp-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(qty, price, disc, tax float64) models.LineItem {
	return models.LineItem{Quantity: qty, UnitPrice: price, Discount: disc, TaxRate: tax}
}

func TestRecalculateInvoice_ChargesAtInvoiceRate(t *testing.T) {
	inv := &models.Invoice{
		AdditionalCharges: 100,
		TransportCharges:  200,
		TaxRate:           18,
		Items:             []models.InvoiceItem{{LineItem: line(2, 100, 10, 18)}},
	}

	RecalculateInvoice(inv)

	assert.Equal(t, 180.0, inv.Items[0].DiscountedAmount)
	assert.Equal(t, 32.4, inv.Items[0].TaxAmount)
	assert.Equal(t, 212.4, inv.Items[0].TotalPrice)
	assert.Equal(t, 500.0, inv.Subtotal)
	assert.Equal(t, 86.4, inv.TotalTax)
	assert.Equal(t, 566.4, inv.GrandTotal)
	assert.Equal(t, models.PaymentStatusPending, inv.PaymentStatus)
}

func TestRecalculateInvoice_Kinds(t *testing.T) {
	inv := &models.Invoice{
		TransportCharges: 100,
		TaxRate:          18,
		Items: []models.InvoiceItem{
			{Kind: models.ItemKindItem, LineItem: line(2, 100, 10, 18)},
			{Kind: models.ItemKindBatteryBuyBack, LineItem: line(1, 150, 0, 0)},
			{Kind: models.ItemKindServiceCharge, LineItem: line(1, 500, 0, 18)},
			{Kind: models.ItemKindBatteryBuyBack, LineItem: line(1, 99999, 0, 0)},
		},
	}

	RecalculateInvoice(inv)

	assert.Equal(t, 212.4, inv.Items[0].TotalPrice)
	assert.Equal(t, 150.0, inv.Items[1].TotalPrice)
	assert.Equal(t, 590.0, inv.Items[2].TotalPrice)
	assert.Equal(t, 0.0, inv.Items[3].TotalPrice)
	assert.Equal(t, 150.0, inv.BatteryBuyBackAmount)
	assert.Equal(t, 770.4, inv.GrandTotal)
}

func TestRecalculatePurchaseOrder(t *testing.T) {
	po := &models.PurchaseOrder{
		Items: []models.PurchaseOrderItem{
			{LineItem: line(1, 450000, 2, 18)},
			{LineItem: line(4, 1250, 0, 28)},
		},
	}

	RecalculatePurchaseOrder(po)

	assert.Equal(t, 520380.0, po.Items[0].TotalPrice)
	assert.Equal(t, 6400.0, po.Items[1].TotalPrice)
	assert.Equal(t, 455000.0, po.Subtotal)
	assert.Equal(t, 9000.0, po.TotalDiscount)
	assert.Equal(t, 526780.0, po.GrandTotal)
}

func TestRecalculateQuotation_Kinds(t *testing.T) {
	q := &models.Quotation{
		OverallDiscount: 0,
		Items: []models.QuotationItem{
			{Kind: models.ItemKindItem, LineItem: line(2, 100, 10, 18)},
			{Kind: models.ItemKindServiceCharge, LineItem: line(1, 500, 0, 18)},
			{Kind: models.ItemKindBatteryBuyBack, LineItem: line(1, 1000, 0, 0)},
			{Kind: models.ItemKindSpares, LineItem: line(1, 50, 0, 18)},
			{Kind: models.ItemKindBatteryBuyBack, LineItem: line(1, 99999, 0, 0)},
		},
	}

	RecalculateQuotation(q)

	require.Len(t, q.Items, 5)
	assert.Equal(t, 212.4, q.Items[0].TotalPrice)
	assert.Equal(t, 590.0, q.Items[1].TotalPrice)
	assert.Equal(t, 1000.0, q.Items[2].TotalPrice)
	assert.Equal(t, 59.0, q.Items[3].TotalPrice)
	assert.Equal(t, 0.0, q.Items[4].TotalPrice)
	assert.Equal(t, 1000.0, q.BatteryBuyBackAmount)
	assert.Equal(t, -138.6, q.GrandTotal)
}

func TestApplyPayment(t *testing.T) {
	inv := &models.Invoice{Status: models.InvoiceStatusSent, GrandTotal: 1000}

	require.NoError(t, ApplyPayment(inv, 400, "upi"))
	assert.Equal(t, 400.0, inv.PaidAmount)
	assert.Equal(t, models.PaymentStatusPartial, inv.PaymentStatus)
	assert.Equal(t, models.InvoiceStatusSent, inv.Status)
	assert.Equal(t, 600.0, Outstanding(inv))

	assert.ErrorIs(t, ApplyPayment(inv, 600.01, "upi"), ErrOverpayment)
	assert.Equal(t, 400.0, inv.PaidAmount)

	require.NoError(t, ApplyPayment(inv, 600, "cash"))
	assert.Equal(t, models.PaymentStatusPaid, inv.PaymentStatus)
	assert.Equal(t, models.InvoiceStatusPaid, inv.Status)
	assert.Equal(t, "cash", inv.PaymentMethod)
	assert.Equal(t, 0.0, Outstanding(inv))
}

func TestApplyPayment_Cancelled(t *testing.T) {
	inv := &models.Invoice{Status: models.InvoiceStatusCancelled, GrandTotal: 1000}

	assert.ErrorIs(t, ApplyPayment(inv, 10, "cash"), ErrInvoiceCancelled)
}

func TestApplyPayment_Draft(t *testing.T) {
	inv := &models.Invoice{Status: models.InvoiceStatusDraft, GrandTotal: 1000}

	assert.ErrorIs(t, ApplyPayment(inv, 1000, "cash"), ErrInvoiceDraft)
	assert.Equal(t, models.InvoiceStatusDraft, inv.Status)
	assert.Zero(t, inv.PaidAmount)
}

func TestApplyPayment_Overdue(t *testing.T) {
	inv := &models.Invoice{Status: models.InvoiceStatusOverdue, GrandTotal: 1000}

	require.NoError(t, ApplyPayment(inv, 1000, "bank_transfer"))
	assert.Equal(t, models.InvoiceStatusPaid, inv.Status)
}
