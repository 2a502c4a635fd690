package controllers

import (
	"net/http"
	"strings"

	"accel-erp-backend/config"
	"accel-erp-backend/utils"

	"github.com/gin-gonic/gin"
)

type UpdateSettingsInput struct {
	CompanyName     *string  `json:"companyName" binding:"omitempty,max=200"`
	CompanyAddress  *string  `json:"companyAddress" binding:"omitempty,max=1000"`
	CompanyPhone    *string  `json:"companyPhone" binding:"omitempty,phone"`
	CompanyEmail    *string  `json:"companyEmail" binding:"omitempty,email"`
	CompanyGSTIN    *string  `json:"companyGstin" binding:"omitempty,gstin"`
	CompanyPAN      *string  `json:"companyPan" binding:"omitempty,len=10,alphanum"`
	BankName        *string  `json:"bankName" binding:"omitempty,max=100"`
	BankAccountNo   *string  `json:"bankAccountNo" binding:"omitempty,numeric,min=6,max=20"`
	BankIFSC        *string  `json:"bankIfsc" binding:"omitempty,len=11,alphanum"`
	BankBranch      *string  `json:"bankBranch" binding:"omitempty,max=100"`
	InvoicePrefix   *string  `json:"invoicePrefix" binding:"omitempty,min=1,max=10,alphanum"`
	QuotationPrefix *string  `json:"quotationPrefix" binding:"omitempty,min=1,max=10,alphanum"`
	POPrefix        *string  `json:"poPrefix" binding:"omitempty,min=1,max=10,alphanum"`
	DefaultGSTRate  *float64 `json:"defaultGstRate" binding:"omitempty,min=0,max=100"`
}

func GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, loadSettings(config.DB))
}

// UpdateSettings writes the single settings row, creating it on first save
func UpdateSettings(c *gin.Context) {
	var input UpdateSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithBindError(c, err, &input)
		return
	}

	settings := loadSettings(config.DB)

	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&settings.CompanyName, input.CompanyName)
	set(&settings.CompanyAddress, input.CompanyAddress)
	set(&settings.CompanyPhone, input.CompanyPhone)
	set(&settings.CompanyEmail, input.CompanyEmail)
	set(&settings.CompanyGSTIN, input.CompanyGSTIN)
	set(&settings.CompanyPAN, input.CompanyPAN)
	set(&settings.BankName, input.BankName)
	set(&settings.BankAccountNo, input.BankAccountNo)
	set(&settings.BankIFSC, input.BankIFSC)
	set(&settings.BankBranch, input.BankBranch)
	set(&settings.InvoicePrefix, input.InvoicePrefix)
	set(&settings.QuotationPrefix, input.QuotationPrefix)
	set(&settings.POPrefix, input.POPrefix)
	if input.DefaultGSTRate != nil {
		settings.DefaultGSTRate = *input.DefaultGSTRate
	}
	settings.CompanyGSTIN = strings.ToUpper(settings.CompanyGSTIN)
	settings.CompanyPAN = strings.ToUpper(settings.CompanyPAN)
	settings.BankIFSC = strings.ToUpper(settings.BankIFSC)

	if err := config.DB.Save(&settings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update settings")
		return
	}

	c.JSON(http.StatusOK, settings)
}
