package models

// GeneralSettings is a single-row table holding company details and
// document numbering.
type GeneralSettings struct {
	Base

	CompanyName     string  `json:"companyName"`
	CompanyAddress  string  `gorm:"type:text" json:"companyAddress"`
	CompanyPhone    string  `json:"companyPhone"`
	CompanyEmail    string  `json:"companyEmail"`
	CompanyGSTIN    string  `gorm:"column:company_gstin;type:varchar(15)" json:"companyGstin"`
	CompanyPAN      string  `gorm:"column:company_pan" json:"companyPan"`
	BankName        string  `json:"bankName"`
	BankAccountNo   string  `json:"bankAccountNo"`
	BankIFSC        string  `gorm:"column:bank_ifsc" json:"bankIfsc"`
	BankBranch      string  `json:"bankBranch"`
	InvoicePrefix   string  `gorm:"default:'INV'" json:"invoicePrefix"`
	QuotationPrefix string  `gorm:"default:'QTN'" json:"quotationPrefix"`
	POPrefix        string  `gorm:"column:po_prefix;default:'PO'" json:"poPrefix"`
	DefaultGSTRate  float64 `gorm:"column:default_gst_rate;type:decimal(5,2);default:18" json:"defaultGstRate"`
}
