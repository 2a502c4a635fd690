package utils

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidatePhone("+91 98450 12345"))
	assert.True(t, ValidatePhone("98450-12345"))
	assert.False(t, ValidatePhone("0"))
	assert.False(t, ValidatePhone("phone"))
}

func TestValidateGSTIN(t *testing.T) {
	assert.True(t, ValidateGSTIN("29ABCDE1234F1Z5"))
	assert.True(t, ValidateGSTIN(" 29abcde1234f1z5 "))
	assert.False(t, ValidateGSTIN("29ABCDE1234F1X5"))
	assert.False(t, ValidateGSTIN("29ABCDE1234F1Z"))
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+919845012345", NormalizePhone("09845 012345", "+91"))
	assert.Equal(t, "+919845012345", NormalizePhone("98450-12345", "+91"))
	assert.Equal(t, "+14155550100", NormalizePhone("+1 (415) 555-0100", "+91"))
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(0, 0, 45)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 0, p.Offset())

	p = NewPagination(3, 10, 25)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 20, p.Offset())
}

func TestDocumentNumber(t *testing.T) {
	at := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)

	n := DocumentNumber("inv-", at)
	assert.Regexp(t, `^INV-20261014-[A-Z2-9]{6}$`, n)
	assert.Regexp(t, `^DOC-20261014-`, DocumentNumber("", at))
}

func TestQuarterBounds(t *testing.T) {
	at := time.Date(2026, 8, 20, 15, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), QuarterStart(at))
	assert.Equal(t, time.Date(2026, 9, 30, 23, 59, 59, 999999999, time.UTC), QuarterEnd(at))
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), QuarterStart(time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)))
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2026, 2, 27, 22, 0, 0, 0, time.UTC)
	b := time.Date(2026, 3, 2, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 3, DaysBetween(a, b))
	assert.Equal(t, -3, DaysBetween(b, a))
}

func TestWriteCSV(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	err := WriteCSV(c, ExportFilename("invoices", time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)),
		[]string{"Invoice", "Customer", "Total"},
		[][]string{{"INV-1", "Acme, Ltd", FormatAmount(566.4)}})
	require.NoError(t, err)

	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="invoices-20261014.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "Invoice,Customer,Total\nINV-1,\"Acme, Ltd\",566.40\n", w.Body.String())
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2026, 3, 9, 18, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-09", FormatDate(&d))
	assert.Equal(t, "", FormatDate(nil))
	assert.Equal(t, "", FormatDate(&time.Time{}))
}

func TestFieldErrors_Overrides(t *testing.T) {
	type line struct {
		Quantity float64 `json:"quantity" binding:"min=0"`
	}
	type doc struct {
		Name  string `json:"name" binding:"required"`
		Items []line `json:"items" binding:"dive"`
	}
	err := ValidateStruct(doc{Items: []line{{Quantity: 1}, {Quantity: -2}}})
	require.Error(t, err)

	got := FieldErrors(err, nil)
	require.Len(t, got, 2)
	assert.Equal(t, FieldError{Field: "name", Message: "Name is required"}, got[0])
	assert.Equal(t, FieldError{Field: "items[1].quantity", Message: "Quantity must be at least 0"}, got[1])

	assert.Nil(t, FieldErrors(assert.AnError, nil))
}

func TestLabel(t *testing.T) {
	cases := map[string]string{
		"billingAddress":   "Billing address",
		"gstNumber":        "GSTIN",
		"companyGstin":     "Company GSTIN",
		"defaultGstRate":   "Default GST rate",
		"bankIfsc":         "Bank IFSC",
		"customerPoNumber": "Customer PO number",
		"hsnNumber":        "HSN number",
		"customerId":       "Customer ID",
		"qrCode":           "QR code",
		"DateFrom":         "Date from",
		"dgRatingKVA":      "DG rating (kVA)",
	}
	for field, want := range cases {
		assert.Equal(t, want, label(field), field)
	}
}

func TestFieldErrors_GSTINMessage(t *testing.T) {
	type customer struct {
		GSTIN string `json:"gstNumber" binding:"omitempty,gstin"`
	}
	got := FieldErrors(ValidateStruct(customer{GSTIN: "29ABCDE1234F1X5"}), nil)
	require.Len(t, got, 1)
	assert.Equal(t, "GSTIN must be a valid 15 character GST identification number", got[0].Message)
}
