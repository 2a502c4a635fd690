package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	QuotationTypeService = "service"
	QuotationTypeSpare   = "spare"
	QuotationTypeAMC     = "amc"

	AMCTypeAMC  = "AMC"
	AMCTypeCAMC = "CAMC"

	QuotationStatusDraft    = "draft"
	QuotationStatusSent     = "sent"
	QuotationStatusAccepted = "accepted"
	QuotationStatusRejected = "rejected"
	QuotationStatusExpired  = "expired"
)

// Kinds of quotation lines. Battery buy-back is a deduction.
const (
	ItemKindItem           = "item"
	ItemKindServiceCharge  = "service_charge"
	ItemKindBatteryBuyBack = "battery_buyback"
	ItemKindOffer          = "offer"
	ItemKindSpares         = "spares"
)

type Quotation struct {
	Base

	QuotationNumber string     `gorm:"uniqueIndex;not null" json:"quotationNumber"`
	Type            string     `gorm:"type:varchar(10);index;not null" json:"quotationType"`
	AMCType         string     `gorm:"column:amc_type;type:varchar(4)" json:"amcType,omitempty"`
	CustomerID      uuid.UUID  `gorm:"type:char(36);index;not null" json:"customerId"`
	Customer        *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	EngineerID      *uuid.UUID `gorm:"type:char(36);index" json:"engineerId,omitempty"`
	Engineer        *User      `gorm:"foreignKey:EngineerID" json:"engineer,omitempty"`
	LocationID      *uuid.UUID `gorm:"type:char(36);index" json:"locationId,omitempty"`
	QuotationDate   time.Time  `gorm:"index;not null" json:"quotationDate"`
	ValidUntil      *time.Time `json:"validUntil,omitempty"`
	Status          string     `gorm:"type:varchar(10);index;default:'draft'" json:"status"`
	Subject         string     `json:"subject"`

	BillingAddress  datatypes.JSONType[Address] `json:"billingAddress"`
	ShippingAddress datatypes.JSONType[Address] `json:"shippingAddress"`

	OverallDiscount       float64 `gorm:"type:decimal(5,2);default:0" json:"overallDiscount"`
	Subtotal              float64 `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	TotalDiscount         float64 `gorm:"type:decimal(12,2);default:0" json:"totalDiscount"`
	OverallDiscountAmount float64 `gorm:"type:decimal(12,2);default:0" json:"overallDiscountAmount"`
	TotalTax              float64 `gorm:"type:decimal(12,2);default:0" json:"totalTax"`
	BatteryBuyBackAmount  float64 `gorm:"type:decimal(12,2);default:0" json:"batteryBuyBackAmount"`
	GrandTotal            float64 `gorm:"type:decimal(12,2);not null" json:"grandTotal"`
	RoundOff              float64 `gorm:"type:decimal(12,2);default:0" json:"roundOff"`

	// AMC contracts
	ContractStartDate *time.Time `json:"contractStartDate,omitempty"`
	ContractEndDate   *time.Time `json:"contractEndDate,omitempty"`
	NumberOfVisits    int        `gorm:"default:0" json:"numberOfVisits"`
	NumberOfCallouts  int        `gorm:"default:0" json:"numberOfCallouts"`

	Notes     string     `gorm:"type:text" json:"notes"`
	Terms     string     `gorm:"type:text" json:"terms"`
	InvoiceID *uuid.UUID `gorm:"type:char(36)" json:"invoiceId,omitempty"`

	Items []QuotationItem `gorm:"foreignKey:QuotationID" json:"items"`
}

type QuotationItem struct {
	Base
	QuotationID uuid.UUID `gorm:"type:char(36);index;not null" json:"quotationId"`
	Kind        string    `gorm:"type:varchar(20);not null;default:'item'" json:"kind"`
	LineItem    `gorm:"embedded"`

	// AMC offer lines
	EngineSlNo   string  `json:"engineSlNo,omitempty"`
	DGRatingKVA  float64 `gorm:"column:dg_rating_kva;type:decimal(8,2);default:0" json:"dgRatingKVA,omitempty"`
	TypeOfVisits string  `json:"typeOfVisits,omitempty"`
}

// ItemsOfKind returns the lines of one kind in their stored order.
func (q *Quotation) ItemsOfKind(kind string) []QuotationItem {
	var out []QuotationItem
	for _, it := range q.Items {
		if it.Kind == kind {
			out = append(out, it)
		}
	}
	return out
}

// ContractActive reports whether the AMC contract covers day.
func (q *Quotation) ContractActive(day time.Time) bool {
	if q.ContractStartDate == nil || q.ContractEndDate == nil {
		return false
	}
	return !day.Before(*q.ContractStartDate) && !day.After(*q.ContractEndDate)
}
