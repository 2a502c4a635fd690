package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"accel-erp-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const someID = "3f1c1d8e-6a0b-4c8e-9a52-5d0f3c2b7a11"

type errorBody struct {
	Error   string             `json:"error"`
	Details []utils.FieldError `json:"details"`
}

func init() {
	gin.SetMode(gin.TestMode)
	binding.Validator = utils.GinValidator{}
}

// perform runs one request against handler mounted at pattern.
func perform(t *testing.T, method, pattern, target string, handler gin.HandlerFunc, body any) (*httptest.ResponseRecorder, errorBody) {
	t.Helper()

	r := gin.New()
	r.Handle(method, pattern, handler)

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out errorBody
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func detail(t *testing.T, body errorBody, field string) string {
	t.Helper()
	for _, d := range body.Details {
		if d.Field == field {
			return d.Message
		}
	}
	t.Fatalf("no validation detail for %q in %+v", field, body.Details)
	return ""
}

func ptr[T any](v T) *T { return &v }

func validLine() map[string]any {
	return map[string]any{"description": "Fuel filter", "quantity": 2, "unitPrice": 850, "discount": 0, "taxRate": 18}
}

func TestCreateInvoice_MissingItems(t *testing.T) {
	w, body := perform(t, http.MethodPost, "/invoices", "/invoices", CreateInvoice,
		map[string]any{"customer": someID})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Validation failed", body.Error)
	assert.Equal(t, "Items are required", detail(t, body, "items"))
}

func TestCreateInvoice_EmptyItems(t *testing.T) {
	w, body := perform(t, http.MethodPost, "/invoices", "/invoices", CreateInvoice,
		map[string]any{"customer": someID, "items": []any{}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "At least one item is required", detail(t, body, "items"))
}

func TestCreateInvoice_LineRules(t *testing.T) {
	negative := validLine()
	negative["quantity"] = -1
	overDiscount := validLine()
	overDiscount["discount"] = 101
	noDescription := validLine()
	delete(noDescription, "description")

	w, body := perform(t, http.MethodPost, "/invoices", "/invoices", CreateInvoice, map[string]any{
		"customer":         "not-a-uuid",
		"items":            []any{validLine(), negative, overDiscount, noDescription},
		"transportCharges": -5,
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Customer must be a valid ID", detail(t, body, "customer"))
	assert.Equal(t, "Quantity cannot be negative", detail(t, body, "items[1].quantity"))
	assert.Equal(t, "Discount cannot exceed 100%", detail(t, body, "items[2].discount"))
	assert.Equal(t, "Description is required when no product is selected", detail(t, body, "items[3].description"))
	assert.Equal(t, "Transport charges cannot be negative", detail(t, body, "transportCharges"))
}

func TestCreateInvoice_BadStatus(t *testing.T) {
	w, body := perform(t, http.MethodPost, "/invoices", "/invoices", CreateInvoice, map[string]any{
		"customer": someID,
		"items":    []any{validLine()},
		"status":   "Paid",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Status must be Draft or Sent", detail(t, body, "status"))
}

func TestLineItemInput_Boundaries(t *testing.T) {
	for _, pct := range []float64{0, 100} {
		in := LineItemInput{Description: "Service visit", Quantity: 0, UnitPrice: ptr(0.0), Discount: pct, TaxRate: ptr(pct)}
		assert.NoError(t, utils.ValidateStruct(in), "pct=%v", pct)
	}
	assert.Error(t, utils.ValidateStruct(LineItemInput{Description: "x", TaxRate: ptr(100.01)}))
	assert.Error(t, utils.ValidateStruct(LineItemInput{Description: "x", UnitPrice: ptr(-1.0)}))
	assert.NoError(t, utils.ValidateStruct(LineItemInput{ProductID: someID, Quantity: 1}))
}

func TestRecordInvoicePayment_Validation(t *testing.T) {
	w, body := perform(t, http.MethodPost, "/invoices/:id/payments", "/invoices/"+someID+"/payments",
		RecordInvoicePayment, map[string]any{"amount": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, detail(t, body, "amount"))

	w, body = perform(t, http.MethodPost, "/invoices/:id/payments", "/invoices/nope/payments",
		RecordInvoicePayment, map[string]any{"amount": 10})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid invoice ID format", body.Error)
}

func TestUpdateInvoiceStatus_UnknownStatus(t *testing.T) {
	w, body := perform(t, http.MethodPatch, "/invoices/:id/status", "/invoices/"+someID+"/status",
		UpdateInvoiceStatus, map[string]any{"status": "Archived"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, detail(t, body, "status"))
}

func TestGetInvoices_QueryRules(t *testing.T) {
	w, body := perform(t, http.MethodGet, "/invoices", "/invoices?limit=101", GetInvoices, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, detail(t, body, "limit"))

	w, body = perform(t, http.MethodGet, "/invoices", "/invoices?dateFrom=2026-10-14&dateTo=2026-10-01", GetInvoices, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, detail(t, body, "dateTo"))
}

func TestCreatePurchaseOrder_Department(t *testing.T) {
	w, body := perform(t, http.MethodPost, "/purchase-orders", "/purchase-orders", CreatePurchaseOrder, map[string]any{
		"customer": someID,
		"items":    []any{validLine()},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Department is required", detail(t, body, "department"))

	w, body = perform(t, http.MethodPost, "/purchase-orders", "/purchase-orders", CreatePurchaseOrder, map[string]any{
		"customer":   someID,
		"department": "marketing",
		"priority":   "asap",
		"items":      []any{validLine()},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid department", detail(t, body, "department"))
	assert.Equal(t, "Priority must be one of: low, medium, high, urgent", detail(t, body, "priority"))
}

func TestGetPurchaseOrders_BadStatus(t *testing.T) {
	w, body := perform(t, http.MethodGet, "/purchase-orders", "/purchase-orders?status=shipped", GetPurchaseOrders, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid purchase order status", detail(t, body, "status"))
}

func TestCreateQuotation_Rules(t *testing.T) {
	w, body := perform(t, http.MethodPost, "/quotations", "/quotations", CreateQuotation, map[string]any{
		"quotationType": "service",
		"customer":      someID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "At least one item is required", detail(t, body, "items"))

	w, body = perform(t, http.MethodPost, "/quotations", "/quotations", CreateQuotation, map[string]any{
		"quotationType": "amc",
		"customer":      someID,
		"offerItems":    []any{validLine()},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "AMC type is required for AMC quotations", detail(t, body, "amcType"))

	buyBack := validLine()
	buyBack["unitPrice"] = -100
	w, body = perform(t, http.MethodPost, "/quotations", "/quotations", CreateQuotation, map[string]any{
		"quotationType":   "warranty",
		"customer":        someID,
		"overallDiscount": 120,
		"batteryBuyBack":  buyBack,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Quotation type must be one of: service, spare, amc", detail(t, body, "quotationType"))
	assert.Equal(t, "Overall discount cannot exceed 100%", detail(t, body, "overallDiscount"))
	assert.Equal(t, "Unit price cannot be negative", detail(t, body, "batteryBuyBack.unitPrice"))
}

func TestAdjustStock_Validation(t *testing.T) {
	w, body := perform(t, http.MethodPost, "/stock/adjust", "/stock/adjust", AdjustStock, map[string]any{
		"product":  someID,
		"location": someID,
		"delta":    0,
		"reason":   "theft",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Quantity change is required", detail(t, body, "delta"))
	assert.NotEmpty(t, detail(t, body, "reason"))
}

func TestCreateCustomer_Validation(t *testing.T) {
	w, body := perform(t, http.MethodPost, "/customers", "/customers", CreateCustomer, map[string]any{
		"name":      "Acme Towers",
		"phone":     "call me",
		"gstNumber": "29ABCDE1234F1X5",
		"billingAddress": map[string]any{
			"pincode": "56001",
		},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Phone must be a valid phone number", detail(t, body, "phone"))
	assert.Equal(t, "GSTIN must be a valid 15 character GST identification number", detail(t, body, "gstNumber"))
	assert.NotEmpty(t, detail(t, body, "billingAddress.pincode"))
}

func TestGetNotifications_BadFilters(t *testing.T) {
	w, body := perform(t, http.MethodGet, "/notifications", "/notifications?status=queued&dateFrom=14-10-2026", GetNotifications, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Status must be one of: sent, failed, skipped", detail(t, body, "status"))
	assert.Equal(t, "Date from must be a date in YYYY-MM-DD format", detail(t, body, "dateFrom"))
}

func TestRunReminders_BadDate(t *testing.T) {
	w, body := perform(t, http.MethodPost, "/notifications/run", "/notifications/run", RunReminders(nil),
		map[string]any{"date": "tomorrow"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, detail(t, body, "date"))
}

func TestGetReportAnalytics_Limit(t *testing.T) {
	rc := ReportController{}
	w, body := perform(t, http.MethodGet, "/reports", "/reports?limit=50", rc.GetReportAnalytics, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Limit cannot exceed 20", detail(t, body, "limit"))
}
