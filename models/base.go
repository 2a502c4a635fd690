package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base replaces gorm.Model with a UUID key that works on both postgres and
// mysql.
type Base struct {
	ID        uuid.UUID      `gorm:"type:char(36);primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Initialize UUID before creating
func (b *Base) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}

// All lists every table the server migrates.
func All() []any {
	return []any{
		&User{},
		&Customer{},
		&Product{},
		&StockLocation{},
		&StockLevel{},
		&StockTransaction{},
		&GeneralSettings{},
		&Invoice{},
		&InvoiceItem{},
		&PurchaseOrder{},
		&PurchaseOrderItem{},
		&Quotation{},
		&QuotationItem{},
		&NotificationLog{},
	}
}

// Address is stored as a JSON column on customers and documents.
type Address struct {
	ID       string `json:"id,omitempty"`
	Address  string `json:"address"`
	District string `json:"district,omitempty"`
	State    string `json:"state,omitempty"`
	Pincode  string `json:"pincode,omitempty"`
	GSTIN    string `json:"gstNumber,omitempty"`
}
