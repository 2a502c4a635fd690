package main

import (
	"accel-erp-backend/models"

	"gorm.io/gorm"
)

// seedDevData fills empty reference tables so a fresh database is usable.
// Tables that already hold rows are left alone.
func seedDevData(db *gorm.DB) error {
	var cnt int64
	if err := db.Model(&models.StockLocation{}).Count(&cnt).Error; err != nil {
		return err
	}
	if cnt == 0 {
		locations := []models.StockLocation{
			{Name: "Head Office", Type: models.LocationTypeMainOffice, IsActive: true},
			{Name: "Central Warehouse", Type: models.LocationTypeWarehouse, IsActive: true},
			{Name: "Service Center", Type: models.LocationTypeServiceCenter, IsActive: true},
		}
		if err := db.Create(&locations).Error; err != nil {
			return err
		}
	}

	if err := db.Model(&models.GeneralSettings{}).Count(&cnt).Error; err != nil {
		return err
	}
	if cnt == 0 {
		settings := models.GeneralSettings{
			CompanyName:     "Accel Power Systems",
			InvoicePrefix:   "INV",
			QuotationPrefix: "QTN",
			POPrefix:        "PO",
			DefaultGSTRate:  18,
		}
		if err := db.Create(&settings).Error; err != nil {
			return err
		}
	}

	if err := db.Model(&models.Product{}).Count(&cnt).Error; err != nil {
		return err
	}
	if cnt == 0 {
		products := []models.Product{
			{Name: "62.5 kVA Silent DG Set", PartNo: "DG-62-S", HSNNumber: "85021100", Category: models.ProductCategoryGenset, UOM: "nos", Price: 520380, GSTRate: 18, MinStockLevel: 1, IsActive: true},
			{Name: "Fuel Filter", PartNo: "FF-5052", HSNNumber: "84212300", Category: models.ProductCategorySparePart, UOM: "nos", Price: 850, GSTRate: 18, MinStockLevel: 10, IsActive: true},
			{Name: "Lube Oil 15W40 (20L)", PartNo: "LO-1540", HSNNumber: "27101980", Category: models.ProductCategorySparePart, UOM: "can", Price: 6400, GSTRate: 18, MinStockLevel: 5, IsActive: true},
			{Name: "12V Battery 150Ah", PartNo: "BT-150", HSNNumber: "85071000", Category: models.ProductCategoryAccessory, UOM: "nos", Price: 11500, GSTRate: 28, MinStockLevel: 2, IsActive: true},
			{Name: "Preventive Maintenance Visit", Category: models.ProductCategoryService, UOM: "visit", Price: 2500, GSTRate: 18, IsActive: true},
		}
		if err := db.Create(&products).Error; err != nil {
			return err
		}
	}

	if err := db.Model(&models.User{}).Count(&cnt).Error; err != nil {
		return err
	}
	if cnt == 0 {
		users := []models.User{
			{Name: "Admin", Email: "admin@example.com", Role: models.RoleAdmin, IsActive: true},
			{Name: "Field Engineer", Email: "engineer@example.com", Phone: "+919800000001", Role: models.RoleFieldEngineer, Designation: "Service Engineer", IsActive: true},
		}
		if err := db.Create(&users).Error; err != nil {
			return err
		}
	}

	return nil
}
