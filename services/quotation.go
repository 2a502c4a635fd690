package services

import (
	"errors"
	"time"

	"accel-erp-backend/models"
)

var (
	ErrQuotationNotAccepted = errors.New("only accepted quotations can be invoiced")
	ErrAlreadyInvoiced      = errors.New("quotation has already been invoiced")
)

// CombineDiscounts folds an overall discount into a line discount so that
// applying the result once equals applying both in turn.
func CombineDiscounts(line, overall float64) float64 {
	l, o := num(line), num(overall)
	combined := l.Add(o).Sub(l.Mul(o).Div(hundred))
	return combined.Round(4).InexactFloat64()
}

// InvoiceFromQuotation builds a Draft invoice carrying the quotation's
// lines. The overall discount is folded into each item and service line;
// the battery buy-back is carried as a buy-back line, still deducted.
func InvoiceFromQuotation(q *models.Quotation, at time.Time) (models.Invoice, error) {
	if q.Status != models.QuotationStatusAccepted {
		return models.Invoice{}, ErrQuotationNotAccepted
	}
	if q.InvoiceID != nil {
		return models.Invoice{}, ErrAlreadyInvoiced
	}

	quotationID := q.ID
	inv := models.Invoice{
		CustomerID:      q.CustomerID,
		QuotationID:     &quotationID,
		InvoiceDate:     at,
		BillingAddress:  q.BillingAddress,
		ShippingAddress: q.ShippingAddress,
		Status:          models.InvoiceStatusDraft,
		Notes:           q.Notes,
		Terms:           q.Terms,
	}

	var buyBack *models.LineItem
	for _, it := range q.Items {
		line := it.LineItem
		kind := models.ItemKindItem
		switch it.Kind {
		case models.ItemKindBatteryBuyBack:
			if buyBack == nil {
				buyBack = &line
			}
			continue
		case models.ItemKindServiceCharge:
			kind = models.ItemKindServiceCharge
		}
		line.Discount = CombineDiscounts(line.Discount, q.OverallDiscount)
		inv.Items = append(inv.Items, models.InvoiceItem{Kind: kind, LineItem: line})
	}
	if buyBack != nil {
		line := *buyBack
		if line.Description == "" {
			line.Description = "Battery buy-back"
		}
		inv.Items = append(inv.Items, models.InvoiceItem{Kind: models.ItemKindBatteryBuyBack, LineItem: line})
	}
	for i := range inv.Items {
		inv.Items[i].Position = i + 1
	}

	RecalculateInvoice(&inv)
	return inv, nil
}
