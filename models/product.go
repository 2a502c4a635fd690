package models

const (
	ProductCategoryGenset    = "genset"
	ProductCategorySparePart = "spare_part"
	ProductCategoryAccessory = "accessory"
	ProductCategoryService   = "service"
)

type Product struct {
	Base

	Name          string  `gorm:"not null;index" json:"name"`
	PartNo        string  `gorm:"index" json:"partNo"`
	HSNNumber     string  `gorm:"column:hsn_number" json:"hsnNumber"`
	Category      string  `gorm:"type:varchar(20);default:'spare_part'" json:"category"`
	Brand         string  `json:"brand"`
	UOM           string  `gorm:"column:uom;default:'nos'" json:"uom"`
	Price         float64 `gorm:"type:decimal(12,2);not null" json:"price"`
	GSTRate       float64 `gorm:"column:gst_rate;type:decimal(5,2);default:18" json:"gstRate"`
	MinStockLevel int     `gorm:"default:0" json:"minStockLevel"`
	IsActive      bool    `gorm:"default:true" json:"isActive"`
}
