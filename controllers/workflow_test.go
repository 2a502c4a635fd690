package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"accel-erp-backend/models"
	"accel-erp-backend/testdb"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func seedCustomer(t *testing.T, db *gorm.DB) models.Customer {
	t.Helper()
	c := models.Customer{Name: "Acme Towers", Phone: "+919845012345", IsActive: true}
	require.NoError(t, db.Create(&c).Error)
	return c
}

// seedAcceptedQuotation stores a service quotation with one spare, one
// service charge and a battery buy-back.
func seedAcceptedQuotation(t *testing.T, db *gorm.DB, customer models.Customer) models.Quotation {
	t.Helper()
	q := models.Quotation{
		QuotationNumber: "QTN-20261001-ABC123",
		Type:            models.QuotationTypeService,
		CustomerID:      customer.ID,
		QuotationDate:   time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		Status:          models.QuotationStatusAccepted,
		Items: []models.QuotationItem{
			{Kind: models.ItemKindItem, LineItem: models.LineItem{Position: 1, Description: "Fuel filter", Quantity: 2, UnitPrice: 850, TaxRate: 18}},
			{Kind: models.ItemKindServiceCharge, LineItem: models.LineItem{Position: 2, Description: "Labour", Quantity: 1, UnitPrice: 500, TaxRate: 18}},
			{Kind: models.ItemKindBatteryBuyBack, LineItem: models.LineItem{Position: 3, Description: "Old battery", Quantity: 1, UnitPrice: 300}},
		},
	}
	require.NoError(t, db.Create(&q).Error)
	return q
}

func quotationInvoiceID(t *testing.T, db *gorm.DB, id uuid.UUID) *uuid.UUID {
	t.Helper()
	var q models.Quotation
	require.NoError(t, db.First(&q, "id = ?", id).Error)
	return q.InvoiceID
}

func convert(t *testing.T, id uuid.UUID) *httptest.ResponseRecorder {
	t.Helper()
	w, _ := perform(t, http.MethodPost, "/quotations/:id/convert-to-invoice",
		"/quotations/"+id.String()+"/convert-to-invoice", ConvertQuotationToInvoice, nil)
	return w
}

func deleteInvoice(t *testing.T, id uuid.UUID) (*httptest.ResponseRecorder, errorBody) {
	t.Helper()
	return perform(t, http.MethodDelete, "/invoices/:id", "/invoices/"+id.String(), DeleteInvoice, nil)
}

func TestQuotationBacksOneInvoice(t *testing.T) {
	db := testdb.Install(t)
	customer := seedCustomer(t, db)
	q := seedAcceptedQuotation(t, db, customer)

	w := convert(t, q.ID)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	converted := decode[models.Invoice](t, w)
	require.NotNil(t, quotationInvoiceID(t, db, q.ID))
	assert.Equal(t, converted.ID, *quotationInvoiceID(t, db, q.ID))

	// Neither a second conversion nor a direct invoice may reuse it
	assert.Equal(t, http.StatusConflict, convert(t, q.ID).Code)
	w, body := perform(t, http.MethodPost, "/invoices", "/invoices", CreateInvoice, map[string]any{
		"customer":  customer.ID.String(),
		"quotation": q.ID.String(),
		"items":     []any{validLine()},
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Quotation has already been invoiced", body.Error)

	// Deleting an invoice that merely points at the quotation keeps the link
	stale := models.Invoice{InvoiceNumber: "INV-STALE", CustomerID: customer.ID, QuotationID: &q.ID, InvoiceDate: time.Now()}
	require.NoError(t, db.Create(&stale).Error)
	w, _ = deleteInvoice(t, stale.ID)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, converted.ID, *quotationInvoiceID(t, db, q.ID))

	// Deleting the holder frees it for a direct invoice
	w, _ = deleteInvoice(t, converted.ID)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, quotationInvoiceID(t, db, q.ID))

	w, _ = perform(t, http.MethodPost, "/invoices", "/invoices", CreateInvoice, map[string]any{
		"customer":  customer.ID.String(),
		"quotation": q.ID.String(),
		"items":     []any{validLine()},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	direct := decode[models.Invoice](t, w)
	assert.Equal(t, direct.ID, *quotationInvoiceID(t, db, q.ID))
	assert.Equal(t, http.StatusConflict, convert(t, q.ID).Code)
}

func TestCreateInvoice_UnknownQuotation(t *testing.T) {
	db := testdb.Install(t)
	customer := seedCustomer(t, db)

	w, body := perform(t, http.MethodPost, "/invoices", "/invoices", CreateInvoice, map[string]any{
		"customer":  customer.ID.String(),
		"quotation": someID,
		"items":     []any{validLine()},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Quotation not found", body.Error)

	var count int64
	require.NoError(t, db.Model(&models.Invoice{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestConvertedInvoice_LinesResubmit(t *testing.T) {
	db := testdb.Install(t)
	q := seedAcceptedQuotation(t, db, seedCustomer(t, db))

	w := convert(t, q.ID)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	inv := decode[models.Invoice](t, w)
	require.Len(t, inv.Items, 3)
	assert.Equal(t, models.ItemKindBatteryBuyBack, inv.Items[2].Kind)
	assert.Equal(t, 300.0, inv.Items[2].UnitPrice)
	assert.Equal(t, 300.0, inv.BatteryBuyBackAmount)
	assert.Equal(t, 2296.0, inv.GrandTotal)

	items := make([]map[string]any, len(inv.Items))
	for i, it := range inv.Items {
		items[i] = map[string]any{
			"kind":        it.Kind,
			"description": it.Description,
			"quantity":    it.Quantity,
			"unitPrice":   it.UnitPrice,
			"discount":    it.Discount,
			"taxRate":     it.TaxRate,
		}
	}
	w, _ = perform(t, http.MethodPut, "/invoices/:id", "/invoices/"+inv.ID.String(), UpdateInvoice,
		map[string]any{"items": items})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, inv.GrandTotal, decode[models.Invoice](t, w).GrandTotal)

	twoBuyBacks := append(items, items[2])
	w, body := perform(t, http.MethodPut, "/invoices/:id", "/invoices/"+inv.ID.String(), UpdateInvoice,
		map[string]any{"items": twoBuyBacks})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Only one battery buy-back line is allowed", detail(t, body, "items"))
}

func TestCreateInvoice_ProductDefaults(t *testing.T) {
	db := testdb.Install(t)
	customer := seedCustomer(t, db)
	product := models.Product{Name: "Fuel filter", HSNNumber: "8421", UOM: "nos", Price: 850, GSTRate: 18}
	require.NoError(t, db.Create(&product).Error)

	w, _ := perform(t, http.MethodPost, "/invoices", "/invoices", CreateInvoice, map[string]any{
		"customer": customer.ID.String(),
		"items": []any{
			map[string]any{"product": product.ID.String(), "quantity": 2},
			map[string]any{"product": product.ID.String(), "quantity": 1, "unitPrice": 800, "taxRate": 0},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	inv := decode[models.Invoice](t, w)
	require.Len(t, inv.Items, 2)
	assert.Equal(t, "Fuel filter", inv.Items[0].Description)
	assert.Equal(t, "8421", inv.Items[0].HSNNumber)
	assert.Equal(t, 850.0, inv.Items[0].UnitPrice)
	assert.Equal(t, 18.0, inv.Items[0].TaxRate)
	assert.Equal(t, 2006.0, inv.Items[0].TotalPrice)
	assert.Equal(t, 800.0, inv.Items[1].UnitPrice)
	assert.Equal(t, 0.0, inv.Items[1].TaxRate)
	assert.Equal(t, 2806.0, inv.GrandTotal)
}

func seedInvoice(t *testing.T, db *gorm.DB, customer models.Customer, status string, total float64) models.Invoice {
	t.Helper()
	inv := models.Invoice{
		InvoiceNumber: "INV-" + uuid.NewString()[:8],
		CustomerID:    customer.ID,
		InvoiceDate:   time.Now(),
		Status:        status,
		PaymentStatus: models.PaymentStatusPending,
		Subtotal:      total,
		GrandTotal:    total,
	}
	require.NoError(t, db.Create(&inv).Error)
	return inv
}

func pay(t *testing.T, id uuid.UUID, amount float64) (*httptest.ResponseRecorder, errorBody) {
	t.Helper()
	return perform(t, http.MethodPost, "/invoices/:id/payments", "/invoices/"+id.String()+"/payments",
		RecordInvoicePayment, map[string]any{"amount": amount, "method": "upi"})
}

func TestRecordInvoicePayment_Rules(t *testing.T) {
	db := testdb.Install(t)
	customer := seedCustomer(t, db)

	draft := seedInvoice(t, db, customer, models.InvoiceStatusDraft, 1000)
	w, body := pay(t, draft.ID, 1000)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Invoice must be sent before recording payments", body.Error)

	sent := seedInvoice(t, db, customer, models.InvoiceStatusSent, 1000)
	w, body = pay(t, sent.ID, 1000.01)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Payment exceeds outstanding balance of 1000.00", body.Error)

	w, _ = pay(t, sent.ID, 1000)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var stored models.Invoice
	require.NoError(t, db.First(&stored, "id = ?", sent.ID).Error)
	assert.Equal(t, models.InvoiceStatusPaid, stored.Status)
	assert.Equal(t, models.PaymentStatusPaid, stored.PaymentStatus)

	w, body = deleteInvoice(t, sent.ID)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Paid invoices cannot be deleted", body.Error)
	require.NoError(t, db.First(&stored, "id = ?", sent.ID).Error)
}

func TestCreatePurchaseOrder_References(t *testing.T) {
	db := testdb.Install(t)
	customer := seedCustomer(t, db)

	w, body := perform(t, http.MethodPost, "/purchase-orders", "/purchase-orders", CreatePurchaseOrder, map[string]any{
		"customer":      customer.ID.String(),
		"department":    "service",
		"advanceAmount": 5000,
		"items":         []any{validLine()},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Advance amount cannot exceed the order total", detail(t, body, "advanceAmount"))

	w, body = perform(t, http.MethodPost, "/purchase-orders", "/purchase-orders", CreatePurchaseOrder, map[string]any{
		"customer":   customer.ID.String(),
		"department": "service",
		"quotation":  someID,
		"items":      []any{validLine()},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Quotation not found", body.Error)

	q := seedAcceptedQuotation(t, db, customer)
	w, _ = perform(t, http.MethodPost, "/purchase-orders", "/purchase-orders", CreatePurchaseOrder, map[string]any{
		"customer":      customer.ID.String(),
		"department":    "service",
		"quotation":     q.ID.String(),
		"advanceAmount": 2006,
		"items":         []any{validLine()},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	po := decode[models.PurchaseOrder](t, w)
	require.NotNil(t, po.QuotationID)
	assert.Equal(t, q.ID, *po.QuotationID)

	w, _ = perform(t, http.MethodDelete, "/purchase-orders/:id", "/purchase-orders/"+po.ID.String(), DeletePurchaseOrder, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteCustomer_OpenInvoices(t *testing.T) {
	db := testdb.Install(t)
	customer := seedCustomer(t, db)
	seedInvoice(t, db, customer, models.InvoiceStatusSent, 1000)

	w, body := perform(t, http.MethodDelete, "/customers/:id", "/customers/"+customer.ID.String(), DeleteCustomer, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Customer has open invoices and cannot be deleted", body.Error)

	require.NoError(t, db.Model(&models.Invoice{}).Where("customer_id = ?", customer.ID).
		Update("status", models.InvoiceStatusPaid).Error)
	w, _ = perform(t, http.MethodDelete, "/customers/:id", "/customers/"+customer.ID.String(), DeleteCustomer, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateCustomer_DuplicatePhone(t *testing.T) {
	db := testdb.Install(t)

	w, _ := perform(t, http.MethodPost, "/customers", "/customers", CreateCustomer, map[string]any{
		"name":  "Acme Towers",
		"phone": "+91 98450 12345",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[models.Customer](t, w)
	assert.Equal(t, "+919845012345", created.Phone)

	for _, phone := range []string{"+919845012345", "09845012345", "98450-12345"} {
		w, body := perform(t, http.MethodPost, "/customers", "/customers", CreateCustomer, map[string]any{
			"name":  "Acme Towers Annex",
			"phone": phone,
		})
		assert.Equal(t, http.StatusConflict, w.Code, phone)
		assert.Equal(t, "Customer with this phone number already exists", body.Error, phone)
	}

	other := models.Customer{Name: "Blue Dart", Phone: "+918012345678", IsActive: true}
	require.NoError(t, db.Create(&other).Error)
	w, body := perform(t, http.MethodPut, "/customers/:id", "/customers/"+other.ID.String(), UpdateCustomer,
		map[string]any{"phone": "098450 12345"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Another customer with this phone number already exists", body.Error)
}

func TestLoadSettings(t *testing.T) {
	db := testdb.Install(t)

	got := loadSettings(db)
	assert.Equal(t, "INV", got.InvoicePrefix)
	assert.Equal(t, "QTN", got.QuotationPrefix)
	assert.Equal(t, "PO", got.POPrefix)
	assert.Equal(t, 18.0, got.DefaultGSTRate)

	require.NoError(t, db.Create(&models.GeneralSettings{CompanyName: "Accel", InvoicePrefix: "ACC", DefaultGSTRate: 28}).Error)
	got = loadSettings(db)
	assert.Equal(t, "ACC", got.InvoicePrefix)
	assert.Equal(t, "QTN", got.QuotationPrefix)
	assert.Equal(t, 28.0, got.DefaultGSTRate)
}

func TestDeletes_CommitChanges(t *testing.T) {
	db := testdb.Install(t)
	customer := seedCustomer(t, db)

	engineer := models.User{Name: "Ravi", Email: "ravi@example.com", Role: models.RoleFieldEngineer, IsActive: true}
	require.NoError(t, db.Create(&engineer).Error)
	q := seedAcceptedQuotation(t, db, customer)
	q.Status = models.QuotationStatusSent
	q.EngineerID = &engineer.ID
	require.NoError(t, db.Model(&q).Select("status", "engineer_id").Updates(&q).Error)

	w, _ := perform(t, http.MethodDelete, "/users/:id", "/users/"+engineer.ID.String(), DeleteUser, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var stored models.Quotation
	require.NoError(t, db.First(&stored, "id = ?", q.ID).Error)
	assert.Nil(t, stored.EngineerID)
	assert.ErrorIs(t, db.First(&models.User{}, "id = ?", engineer.ID).Error, gorm.ErrRecordNotFound)

	w, _ = perform(t, http.MethodDelete, "/quotations/:id", "/quotations/"+q.ID.String(), DeleteQuotation, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.ErrorIs(t, db.First(&models.Quotation{}, "id = ?", q.ID).Error, gorm.ErrRecordNotFound)
	var items int64
	require.NoError(t, db.Model(&models.QuotationItem{}).Where("quotation_id = ?", q.ID).Count(&items).Error)
	assert.Zero(t, items)

	inv := seedInvoice(t, db, customer, models.InvoiceStatusDraft, 100)
	w, _ = deleteInvoice(t, inv.ID)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.ErrorIs(t, db.First(&models.Invoice{}, "id = ?", inv.ID).Error, gorm.ErrRecordNotFound)
}
