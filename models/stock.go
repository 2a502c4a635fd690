package models

import (
	"github.com/google/uuid"
)

const (
	LocationTypeMainOffice    = "main_office"
	LocationTypeWarehouse     = "warehouse"
	LocationTypeServiceCenter = "service_center"
)

// StockLocation is reference data; the API only reads it.
type StockLocation struct {
	Base

	Name     string `gorm:"not null;uniqueIndex" json:"name"`
	Type     string `gorm:"type:varchar(20);not null" json:"type"`
	Address  string `json:"address"`
	IsActive bool   `gorm:"default:true" json:"isActive"`
}

type StockLevel struct {
	Base

	ProductID        uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_stock_product_location" json:"productId"`
	LocationID       uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_stock_product_location" json:"locationId"`
	Quantity         int       `gorm:"not null;default:0" json:"quantity"`
	ReservedQuantity int       `gorm:"not null;default:0" json:"reservedQuantity"`

	Product  Product       `gorm:"foreignKey:ProductID" json:"product"`
	Location StockLocation `gorm:"foreignKey:LocationID" json:"location"`
}

// Available is the quantity that can still be promised.
func (s StockLevel) Available() int {
	return s.Quantity - s.ReservedQuantity
}

type StockTransaction struct {
	Base

	ProductID     uuid.UUID `gorm:"type:char(36);index;not null" json:"productId"`
	LocationID    uuid.UUID `gorm:"type:char(36);index;not null" json:"locationId"`
	Delta         int       `gorm:"not null" json:"delta"`
	BalanceAfter  int       `gorm:"not null" json:"balanceAfter"`
	Reason        string    `gorm:"type:varchar(20);not null" json:"reason"`
	ReferenceType string    `gorm:"type:varchar(30)" json:"referenceType"`
	ReferenceID   string    `gorm:"type:varchar(64)" json:"referenceId"`
	Notes         string    `gorm:"type:text" json:"notes"`
}
