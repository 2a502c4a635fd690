package services

import (
	"accel-erp-backend/models"
)

func lineFrom(l models.LineItem) Line {
	return Line{
		Quantity:  l.Quantity,
		UnitPrice: l.UnitPrice,
		Discount:  l.Discount,
		TaxRate:   l.TaxRate,
	}
}

func setLineTotals(l *models.LineItem, t LineTotals) {
	l.DiscountAmount = t.DiscountAmount
	l.DiscountedAmount = t.DiscountedAmount
	l.TaxAmount = t.TaxAmount
	l.TotalPrice = t.TotalPrice
}

// RecalculatePurchaseOrder recomputes every derived amount on the order.
func RecalculatePurchaseOrder(po *models.PurchaseOrder) {
	items := make([]Line, len(po.Items))
	for i, it := range po.Items {
		items[i] = lineFrom(it.LineItem)
	}
	t := CalculateTotals(TotalsInput{Items: items})
	for i := range po.Items {
		setLineTotals(&po.Items[i].LineItem, t.Items[i])
	}
	po.Subtotal = t.Subtotal
	po.TotalDiscount = t.TotalDiscount
	po.TotalTax = t.TotalTax
	po.GrandTotal = t.GrandTotal
	po.RoundOff = t.RoundOff
}

// RecalculateQuotation recomputes every derived amount on the quotation.
// Product, offer and spares lines are items; service charges add; the
// first battery buy-back line is deducted and any further ones are
// ignored.
func RecalculateQuotation(q *models.Quotation) {
	var (
		in                  TotalsInput
		itemIdx, serviceIdx []int
		buyBackIdx          = -1
	)
	for i, it := range q.Items {
		switch it.Kind {
		case models.ItemKindServiceCharge:
			in.ServiceCharges = append(in.ServiceCharges, lineFrom(it.LineItem))
			serviceIdx = append(serviceIdx, i)
		case models.ItemKindBatteryBuyBack:
			if buyBackIdx < 0 {
				l := lineFrom(it.LineItem)
				in.BatteryBuyBack = &l
				buyBackIdx = i
			}
		default:
			in.Items = append(in.Items, lineFrom(it.LineItem))
			itemIdx = append(itemIdx, i)
		}
	}
	in.OverallDiscount = q.OverallDiscount

	t := CalculateTotals(in)
	for n, i := range itemIdx {
		setLineTotals(&q.Items[i].LineItem, t.Items[n])
	}
	for n, i := range serviceIdx {
		setLineTotals(&q.Items[i].LineItem, t.ServiceCharges[n])
	}
	if buyBackIdx >= 0 && t.BatteryBuyBack != nil {
		setLineTotals(&q.Items[buyBackIdx].LineItem, *t.BatteryBuyBack)
	}

	q.Subtotal = t.Subtotal
	q.TotalDiscount = t.TotalDiscount
	q.OverallDiscountAmount = t.OverallDiscountAmount
	q.TotalTax = t.TotalTax
	q.BatteryBuyBackAmount = t.BatteryBuyBackAmount
	q.GrandTotal = t.GrandTotal
	q.RoundOff = t.RoundOff
}
