package models

import (
	"gorm.io/datatypes"
)

const (
	CustomerTypeRetail    = "retail"
	CustomerTypeTelecom   = "telecom"
	CustomerTypeEV        = "ev"
	CustomerTypeDG        = "dg"
	CustomerTypeCorporate = "corporate"
)

type Customer struct {
	Base

	Name              string                       `gorm:"not null;index" json:"name"`
	ContactPerson     string                       `json:"contactPerson"`
	Phone             string                       `gorm:"not null;index" json:"phone"`
	Email             string                       `json:"email"`
	GSTIN             string                       `gorm:"column:gstin;type:varchar(15)" json:"gstNumber"`
	CustomerType      string                       `gorm:"type:varchar(20);default:'retail'" json:"customerType"`
	BillingAddress    datatypes.JSONType[Address]  `json:"billingAddress"`
	ShippingAddresses datatypes.JSONSlice[Address] `json:"shippingAddresses"`
	Notes             string                       `gorm:"type:text" json:"notes"`
	IsActive          bool                         `gorm:"default:true" json:"isActive"`
}
