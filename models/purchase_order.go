package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	POStatusDraft            = "draft"
	POStatusSentToCustomer   = "sent_to_customer"
	POStatusCustomerApproved = "customer_approved"
	POStatusInProduction     = "in_production"
	POStatusReadyForDelivery = "ready_for_delivery"
	POStatusDelivered        = "delivered"
	POStatusCancelled        = "cancelled"
)

// poWorkflow lists the forward step for each status. Every non-terminal
// status may also be cancelled.
var poWorkflow = map[string]string{
	POStatusDraft:            POStatusSentToCustomer,
	POStatusSentToCustomer:   POStatusCustomerApproved,
	POStatusCustomerApproved: POStatusInProduction,
	POStatusInProduction:     POStatusReadyForDelivery,
	POStatusReadyForDelivery: POStatusDelivered,
}

// POCanTransition reports whether a purchase order may move from one status
// to another.
func POCanTransition(from, to string) bool {
	next, ok := poWorkflow[from]
	if !ok {
		return false
	}
	return to == next || to == POStatusCancelled
}

// POIsTerminal reports whether no further transition is possible.
func POIsTerminal(status string) bool {
	_, ok := poWorkflow[status]
	return !ok
}

type PurchaseOrder struct {
	Base

	PONumber             string     `gorm:"column:po_number;uniqueIndex;not null" json:"poNumber"`
	CustomerID           uuid.UUID  `gorm:"type:char(36);index;not null" json:"customerId"`
	Customer             *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	QuotationID          *uuid.UUID `gorm:"type:char(36);index" json:"quotationId,omitempty"`
	CustomerPONumber     string     `gorm:"column:customer_po_number" json:"customerPoNumber"`
	PODate               time.Time  `gorm:"column:po_date;index;not null" json:"poDate"`
	ExpectedDeliveryDate *time.Time `json:"expectedDeliveryDate,omitempty"`

	BillingAddress  datatypes.JSONType[Address] `json:"billingAddress"`
	ShippingAddress datatypes.JSONType[Address] `json:"shippingAddress"`

	Department    string  `gorm:"type:varchar(30);index" json:"department"`
	Priority      string  `gorm:"type:varchar(10);default:'medium'" json:"priority"`
	Status        string  `gorm:"type:varchar(30);index;default:'draft'" json:"status"`
	PaymentStatus string  `gorm:"type:varchar(10);default:'pending'" json:"paymentStatus"`
	PaymentTerms  string  `json:"paymentTerms"`
	AdvanceAmount float64 `gorm:"type:decimal(12,2);default:0" json:"advanceAmount"`

	Subtotal      float64 `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	TotalDiscount float64 `gorm:"type:decimal(12,2);default:0" json:"totalDiscount"`
	TotalTax      float64 `gorm:"type:decimal(12,2);default:0" json:"totalTax"`
	GrandTotal    float64 `gorm:"type:decimal(12,2);not null" json:"grandTotal"`
	RoundOff      float64 `gorm:"type:decimal(12,2);default:0" json:"roundOff"`

	Notes string `gorm:"type:text" json:"notes"`

	Items []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID" json:"items"`
}

type PurchaseOrderItem struct {
	Base
	PurchaseOrderID uuid.UUID `gorm:"type:char(36);index;not null" json:"purchaseOrderId"`
	LineItem        `gorm:"embedded"`
}
