package services

import (
	"errors"

	"accel-erp-backend/models"

	"github.com/shopspring/decimal"
)

var (
	ErrInvoiceCancelled = errors.New("invoice is cancelled")
	ErrInvoiceDraft     = errors.New("invoice must be sent before recording payments")
	ErrOverpayment      = errors.New("payment exceeds outstanding balance")
)

// Outstanding is what remains to be paid on the invoice, never negative.
func Outstanding(inv *models.Invoice) float64 {
	due := decimal.NewFromFloat(inv.GrandTotal).Sub(decimal.NewFromFloat(inv.PaidAmount))
	if due.IsNegative() {
		return 0
	}
	return due.Round(2).InexactFloat64()
}

// ApplyPayment records amount against the invoice and derives its payment
// status. Only Sent and Overdue invoices take payments; a fully paid one
// moves to Paid.
func ApplyPayment(inv *models.Invoice, amount float64, method string) error {
	switch inv.Status {
	case models.InvoiceStatusCancelled:
		return ErrInvoiceCancelled
	case models.InvoiceStatusDraft:
		return ErrInvoiceDraft
	}
	paid := decimal.NewFromFloat(inv.PaidAmount).Add(decimal.NewFromFloat(amount)).Round(2)
	if paid.GreaterThan(decimal.NewFromFloat(inv.GrandTotal).Round(2)) {
		return ErrOverpayment
	}

	inv.PaidAmount = paid.InexactFloat64()
	inv.PaymentStatus = models.PaymentStatusFor(inv.GrandTotal, inv.PaidAmount)
	if method != "" {
		inv.PaymentMethod = method
	}
	if inv.PaymentStatus == models.PaymentStatusPaid {
		inv.Status = models.InvoiceStatusPaid
	}
	return nil
}

// invoiceLines splits the invoice's lines by kind for the calculator.
// Service charge lines come first in ServiceCharges, followed by the
// additional and transport charges at the invoice tax rate. Only the first
// battery buy-back line is deducted.
type invoiceLines struct {
	in                  TotalsInput
	itemIdx, serviceIdx []int
	buyBackIdx          int
}

func splitInvoice(inv *models.Invoice) invoiceLines {
	out := invoiceLines{buyBackIdx: -1}
	for i, it := range inv.Items {
		switch it.Kind {
		case models.ItemKindServiceCharge:
			out.in.ServiceCharges = append(out.in.ServiceCharges, lineFrom(it.LineItem))
			out.serviceIdx = append(out.serviceIdx, i)
		case models.ItemKindBatteryBuyBack:
			if out.buyBackIdx < 0 {
				l := lineFrom(it.LineItem)
				out.in.BatteryBuyBack = &l
				out.buyBackIdx = i
			}
		default:
			out.in.Items = append(out.in.Items, lineFrom(it.LineItem))
			out.itemIdx = append(out.itemIdx, i)
		}
	}
	for _, amount := range []float64{inv.AdditionalCharges, inv.TransportCharges} {
		if amount > 0 {
			out.in.ServiceCharges = append(out.in.ServiceCharges, Line{Quantity: 1, UnitPrice: amount, TaxRate: inv.TaxRate})
		}
	}
	return out
}

// ApplyInvoiceTotals copies calculator output onto the invoice and its
// lines. t must come from InvoiceTotalsInput on the same invoice.
func ApplyInvoiceTotals(inv *models.Invoice, t Totals) {
	split := splitInvoice(inv)
	for n, i := range split.itemIdx {
		if n < len(t.Items) {
			setLineTotals(&inv.Items[i].LineItem, t.Items[n])
		}
	}
	for n, i := range split.serviceIdx {
		if n < len(t.ServiceCharges) {
			setLineTotals(&inv.Items[i].LineItem, t.ServiceCharges[n])
		}
	}
	if split.buyBackIdx >= 0 && t.BatteryBuyBack != nil {
		setLineTotals(&inv.Items[split.buyBackIdx].LineItem, *t.BatteryBuyBack)
	}
	inv.Subtotal = t.Subtotal
	inv.TotalDiscount = t.TotalDiscount
	inv.TotalTax = t.TotalTax
	inv.BatteryBuyBackAmount = t.BatteryBuyBackAmount
	inv.GrandTotal = t.GrandTotal
	inv.RoundOff = t.RoundOff
	inv.PaymentStatus = models.PaymentStatusFor(inv.GrandTotal, inv.PaidAmount)
}

// InvoiceTotalsInput gathers the invoice's lines and charges for the
// calculator.
func InvoiceTotalsInput(inv *models.Invoice) TotalsInput {
	return splitInvoice(inv).in
}

// RecalculateInvoice recomputes every derived amount on the invoice.
func RecalculateInvoice(inv *models.Invoice) {
	ApplyInvoiceTotals(inv, CalculateTotals(InvoiceTotalsInput(inv)))
}
