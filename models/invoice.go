package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	InvoiceStatusDraft     = "Draft"
	InvoiceStatusSent      = "Sent"
	InvoiceStatusPaid      = "Paid"
	InvoiceStatusOverdue   = "Overdue"
	InvoiceStatusCancelled = "Cancelled"

	PaymentStatusPending = "Pending"
	PaymentStatusPartial = "Partial"
	PaymentStatusPaid    = "Paid"
)

var invoiceTransitions = map[string][]string{
	InvoiceStatusDraft:   {InvoiceStatusSent, InvoiceStatusCancelled},
	InvoiceStatusSent:    {InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusCancelled},
	InvoiceStatusOverdue: {InvoiceStatusPaid, InvoiceStatusCancelled},
}

// InvoiceCanTransition reports whether an invoice may move from one status
// to another. Paid and Cancelled are terminal.
func InvoiceCanTransition(from, to string) bool {
	for _, s := range invoiceTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// PaymentStatusFor derives the payment status from what has been paid
// against a total.
func PaymentStatusFor(total, paid float64) string {
	switch {
	case paid <= 0:
		return PaymentStatusPending
	case paid+0.005 >= total:
		return PaymentStatusPaid
	default:
		return PaymentStatusPartial
	}
}

type Invoice struct {
	Base

	InvoiceNumber string     `gorm:"uniqueIndex;not null" json:"invoiceNumber"`
	CustomerID    uuid.UUID  `gorm:"type:char(36);index;not null" json:"customerId"`
	Customer      *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	QuotationID   *uuid.UUID `gorm:"type:char(36);index" json:"quotationId,omitempty"`
	PONumber      string     `gorm:"column:po_number" json:"poNumber"`
	InvoiceDate   time.Time  `gorm:"index;not null" json:"invoiceDate"`
	DueDate       *time.Time `gorm:"index" json:"dueDate,omitempty"`

	BillingAddress  datatypes.JSONType[Address] `json:"billingAddress"`
	ShippingAddress datatypes.JSONType[Address] `json:"shippingAddress"`

	AdditionalCharges float64 `gorm:"type:decimal(12,2);default:0" json:"additionalCharges"`
	TransportCharges  float64 `gorm:"type:decimal(12,2);default:0" json:"transportCharges"`
	TaxRate           float64 `gorm:"type:decimal(5,2);default:0" json:"taxRate"`

	Subtotal      float64 `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	TotalDiscount float64 `gorm:"type:decimal(12,2);default:0" json:"totalDiscount"`
	TotalTax      float64 `gorm:"type:decimal(12,2);default:0" json:"totalTax"`
	GrandTotal    float64 `gorm:"type:decimal(12,2);not null" json:"grandTotal"`
	RoundOff      float64 `gorm:"type:decimal(12,2);default:0" json:"roundOff"`

	BatteryBuyBackAmount float64 `gorm:"type:decimal(12,2);default:0" json:"batteryBuyBackAmount"`

	Status        string  `gorm:"type:varchar(20);index;default:'Draft'" json:"status"`
	PaymentStatus string  `gorm:"type:varchar(20);index;default:'Pending'" json:"paymentStatus"`
	PaidAmount    float64 `gorm:"type:decimal(12,2);default:0" json:"paidAmount"`
	PaymentMethod string  `gorm:"type:varchar(20)" json:"paymentMethod"`

	// GST e-invoice
	IRN       string     `gorm:"column:irn" json:"irn"`
	AckNumber string     `json:"ackNumber"`
	AckDate   *time.Time `json:"ackDate,omitempty"`
	QRCode    string     `gorm:"column:qr_code;type:text" json:"qrCode"`

	Notes string `gorm:"type:text" json:"notes"`
	Terms string `gorm:"type:text" json:"terms"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items"`
}

type InvoiceItem struct {
	Base
	InvoiceID uuid.UUID `gorm:"type:char(36);index;not null" json:"invoiceId"`
	Kind      string    `gorm:"type:varchar(20);not null;default:'item'" json:"kind"`
	LineItem  `gorm:"embedded"`
}
