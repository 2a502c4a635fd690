package services

import (
	"math"

	"github.com/shopspring/decimal"
)

// Line is one priced row fed to the calculator. Discount and TaxRate are
// percentages.
type Line struct {
	Quantity  float64
	UnitPrice float64
	Discount  float64
	TaxRate   float64
}

// LineTotals are the derived amounts of a single Line, each rounded to 2
// decimals.
type LineTotals struct {
	Subtotal         float64 `json:"subtotal"`
	DiscountAmount   float64 `json:"discountAmount"`
	DiscountedAmount float64 `json:"discountedAmount"`
	TaxAmount        float64 `json:"taxAmount"`
	TotalPrice       float64 `json:"totalPrice"`
}

// TotalsInput is everything a document contributes to its totals.
// BatteryBuyBack, when set, is deducted from the grand total.
type TotalsInput struct {
	Items           []Line
	ServiceCharges  []Line
	BatteryBuyBack  *Line
	OverallDiscount float64
}

type Totals struct {
	Items          []LineTotals `json:"items"`
	ServiceCharges []LineTotals `json:"serviceCharges"`
	BatteryBuyBack *LineTotals  `json:"batteryBuyBack,omitempty"`

	Subtotal              float64 `json:"subtotal"`
	TotalDiscount         float64 `json:"totalDiscount"`
	OverallDiscountAmount float64 `json:"overallDiscountAmount"`
	TotalTax              float64 `json:"totalTax"`
	BatteryBuyBackAmount  float64 `json:"batteryBuyBackAmount"`
	GrandTotal            float64 `json:"grandTotal"`
	RoundOff              float64 `json:"roundOff"`
}

var hundred = decimal.NewFromInt(100)

// num turns a possibly missing or non-finite input into a decimal, treating
// NaN and ±Inf as 0.
func num(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

type lineCalc struct {
	rounded LineTotals
	exact   decimal.Decimal
}

func calcLine(l Line) lineCalc {
	sub := num(l.Quantity).Mul(num(l.UnitPrice))
	disc := sub.Mul(num(l.Discount)).Div(hundred)
	discounted := sub.Sub(disc)
	tax := discounted.Mul(num(l.TaxRate)).Div(hundred)
	exact := discounted.Add(tax)

	return lineCalc{
		rounded: LineTotals{
			Subtotal:         sub.Round(2).InexactFloat64(),
			DiscountAmount:   disc.Round(2).InexactFloat64(),
			DiscountedAmount: discounted.Round(2).InexactFloat64(),
			TaxAmount:        tax.Round(2).InexactFloat64(),
			TotalPrice:       exact.Round(2).InexactFloat64(),
		},
		exact: exact,
	}
}

// CalculateLine returns the derived amounts of a single line.
func CalculateLine(l Line) LineTotals {
	return calcLine(l).rounded
}

// CalculateTotals computes per-line amounts and document totals. The grand
// total is built from the currency-rounded line totals; RoundOff is the
// difference to the same sum over unrounded amounts.
func CalculateTotals(in TotalsInput) Totals {
	var (
		out                     Totals
		subtotal, discount, tax decimal.Decimal
		roundedSum, exactSum    decimal.Decimal
	)

	add := func(lc lineCalc) {
		subtotal = subtotal.Add(decimal.NewFromFloat(lc.rounded.Subtotal))
		discount = discount.Add(decimal.NewFromFloat(lc.rounded.DiscountAmount))
		tax = tax.Add(decimal.NewFromFloat(lc.rounded.TaxAmount))
		roundedSum = roundedSum.Add(decimal.NewFromFloat(lc.rounded.TotalPrice))
		exactSum = exactSum.Add(lc.exact)
	}

	out.Items = make([]LineTotals, 0, len(in.Items))
	for _, l := range in.Items {
		lc := calcLine(l)
		add(lc)
		out.Items = append(out.Items, lc.rounded)
	}
	out.ServiceCharges = make([]LineTotals, 0, len(in.ServiceCharges))
	for _, l := range in.ServiceCharges {
		lc := calcLine(l)
		add(lc)
		out.ServiceCharges = append(out.ServiceCharges, lc.rounded)
	}

	overallRate := num(in.OverallDiscount)
	overallExact := exactSum.Mul(overallRate).Div(hundred)
	overallRounded := roundedSum.Mul(overallRate).Div(hundred).Round(2)
	discount = discount.Add(overallRounded)

	grand := roundedSum.Sub(overallRounded)
	exact := exactSum.Sub(overallExact)

	if in.BatteryBuyBack != nil {
		lc := calcLine(*in.BatteryBuyBack)
		bb := lc.rounded
		out.BatteryBuyBack = &bb
		out.BatteryBuyBackAmount = bb.TotalPrice
		grand = grand.Sub(decimal.NewFromFloat(bb.TotalPrice))
		exact = exact.Sub(lc.exact)
	}

	grand = grand.Round(2)

	out.Subtotal = subtotal.Round(2).InexactFloat64()
	out.TotalDiscount = discount.Round(2).InexactFloat64()
	out.OverallDiscountAmount = overallRounded.InexactFloat64()
	out.TotalTax = tax.Round(2).InexactFloat64()
	out.GrandTotal = grand.InexactFloat64()
	out.RoundOff = grand.Sub(exact).Round(2).InexactFloat64()
	return out
}
