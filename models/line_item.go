package models

import (
	"github.com/google/uuid"
)

// LineItem is embedded in every document item table. The derived amounts
// are always computed server-side.
type LineItem struct {
	Position    int        `gorm:"not null;default:0" json:"position"`
	ProductID   *uuid.UUID `gorm:"type:char(36);index" json:"productId,omitempty"`
	Description string     `json:"description"`
	HSNNumber   string     `gorm:"column:hsn_number" json:"hsnNumber"`
	UOM         string     `gorm:"column:uom" json:"uom"`
	Quantity    float64    `gorm:"type:decimal(12,3);not null" json:"quantity"`
	UnitPrice   float64    `gorm:"type:decimal(12,2);not null" json:"unitPrice"`
	Discount    float64    `gorm:"type:decimal(7,4);default:0" json:"discount"`
	TaxRate     float64    `gorm:"type:decimal(5,2);default:0" json:"taxRate"`

	DiscountAmount   float64 `gorm:"type:decimal(12,2);default:0" json:"discountAmount"`
	DiscountedAmount float64 `gorm:"type:decimal(12,2);default:0" json:"discountedAmount"`
	TaxAmount        float64 `gorm:"type:decimal(12,2);default:0" json:"taxAmount"`
	TotalPrice       float64 `gorm:"type:decimal(12,2);default:0" json:"totalPrice"`
}
