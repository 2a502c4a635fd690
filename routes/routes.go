package routes

import (
	"net/http"
	"time"

	"accel-erp-backend/config"
	"accel-erp-backend/controllers"
	"accel-erp-backend/services"
	"accel-erp-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

func SetupRouter(cfg config.Config, reminders *services.ReminderService) *gin.Engine {
	binding.Validator = utils.GinValidator{}

	r := gin.Default()

	allowed := make(map[string]bool, len(cfg.CORSOrigins))
	for _, o := range cfg.CORSOrigins {
		allowed[o] = true
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) bool {
			return allowed[origin]
		},
	}))

	r.Use(config.PerformanceLogger(time.Duration(cfg.SlowRequestMs) * time.Millisecond))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		// Customer routes
		customers := api.Group("/customers")
		{
			customers.POST("", controllers.CreateCustomer)
			customers.GET("", controllers.GetCustomers)
			customers.GET("/:id", controllers.GetCustomer)
			customers.PUT("/:id", controllers.UpdateCustomer)
			customers.DELETE("/:id", controllers.DeleteCustomer)
		}

		// Product routes
		products := api.Group("/products")
		{
			products.POST("", controllers.CreateProduct)
			products.GET("", controllers.GetProducts)
			products.GET("/:id", controllers.GetProduct)
			products.PUT("/:id", controllers.UpdateProduct)
			products.DELETE("/:id", controllers.DeleteProduct)
		}

		// Stock routes
		stock := api.Group("/stock")
		{
			stock.GET("", controllers.GetStock)
			stock.GET("/summary", controllers.GetStockSummary)
			stock.POST("/adjust", controllers.AdjustStock)
			stock.GET("/transactions", controllers.GetStockTransactions)
		}

		locations := api.Group("/locations")
		{
			locations.GET("", controllers.GetLocations)
			locations.GET("/:id", controllers.GetLocation)
		}

		users := api.Group("/users")
		{
			users.GET("", controllers.GetUsers)
			users.POST("", controllers.CreateUser)
			users.GET("/:id", controllers.GetUser)
			users.PUT("/:id", controllers.UpdateUser)
			users.DELETE("/:id", controllers.DeleteUser)
		}

		// Invoice routes
		invoices := api.Group("/invoices")
		{
			invoices.POST("", controllers.CreateInvoice)
			invoices.GET("", controllers.GetInvoices)
			invoices.GET("/export", controllers.ExportInvoices)
			invoices.GET("/:id", controllers.GetInvoice)
			invoices.PUT("/:id", controllers.UpdateInvoice)
			invoices.PATCH("/:id/status", controllers.UpdateInvoiceStatus)
			invoices.POST("/:id/payments", controllers.RecordInvoicePayment)
			invoices.DELETE("/:id", controllers.DeleteInvoice)
		}

		// Purchase order routes
		purchaseOrders := api.Group("/purchase-orders")
		{
			purchaseOrders.POST("", controllers.CreatePurchaseOrder)
			purchaseOrders.GET("", controllers.GetPurchaseOrders)
			purchaseOrders.GET("/export", controllers.ExportPurchaseOrders)
			purchaseOrders.GET("/:id", controllers.GetPurchaseOrder)
			purchaseOrders.PUT("/:id", controllers.UpdatePurchaseOrder)
			purchaseOrders.PATCH("/:id/status", controllers.UpdatePurchaseOrderStatus)
			purchaseOrders.DELETE("/:id", controllers.DeletePurchaseOrder)
		}

		// Quotation routes
		quotations := api.Group("/quotations")
		{
			quotations.POST("", controllers.CreateQuotation)
			quotations.GET("", controllers.GetQuotations)
			quotations.GET("/:id", controllers.GetQuotation)
			quotations.PUT("/:id", controllers.UpdateQuotation)
			quotations.DELETE("/:id", controllers.DeleteQuotation)
			quotations.POST("/:id/convert-to-invoice", controllers.ConvertQuotationToInvoice)
		}

		// Settings routes
		api.GET("/general-settings", controllers.GetSettings)
		api.PUT("/general-settings", controllers.UpdateSettings)

		//Reports routes
		reportController := controllers.ReportController{}
		api.GET("/reports", reportController.GetReportAnalytics)

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)

		notifications := api.Group("/notifications")
		{
			notifications.GET("", controllers.GetNotifications)
			notifications.POST("/run", controllers.RunReminders(reminders))
		}
	}

	return r
}
