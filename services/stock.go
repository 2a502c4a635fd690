package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"accel-erp-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrInsufficientStock = errors.New("insufficient stock")

type LocationStock struct {
	LocationID   uuid.UUID `json:"locationId"`
	LocationName string    `json:"locationName"`
	Quantity     int       `json:"quantity"`
	Reserved     int       `json:"reservedQuantity"`
	Available    int       `json:"availableQuantity"`
}

// StockSummary is one product's stock across every location.
type StockSummary struct {
	ProductID         uuid.UUID       `json:"productId"`
	ProductName       string          `json:"productName"`
	PartNo            string          `json:"partNo"`
	HSNNumber         string          `json:"hsnNumber"`
	Category          string          `json:"category"`
	TotalQuantity     int             `json:"totalQuantity"`
	ReservedQuantity  int             `json:"reservedQuantity"`
	AvailableQuantity int             `json:"availableQuantity"`
	MinStockLevel     int             `json:"minStockLevel"`
	LowStock          bool            `json:"lowStock"`
	Locations         []LocationStock `json:"locations"`
}

// AggregateStock groups stock levels by product. Levels must have Product
// and Location preloaded. Output is sorted by product name.
func AggregateStock(levels []models.StockLevel) []StockSummary {
	byProduct := make(map[uuid.UUID]*StockSummary)
	var order []uuid.UUID

	for _, lvl := range levels {
		s, ok := byProduct[lvl.ProductID]
		if !ok {
			s = &StockSummary{
				ProductID:     lvl.ProductID,
				ProductName:   lvl.Product.Name,
				PartNo:        lvl.Product.PartNo,
				HSNNumber:     lvl.Product.HSNNumber,
				Category:      lvl.Product.Category,
				MinStockLevel: lvl.Product.MinStockLevel,
			}
			byProduct[lvl.ProductID] = s
			order = append(order, lvl.ProductID)
		}
		s.TotalQuantity += lvl.Quantity
		s.ReservedQuantity += lvl.ReservedQuantity
		s.AvailableQuantity += lvl.Available()
		s.Locations = append(s.Locations, LocationStock{
			LocationID:   lvl.LocationID,
			LocationName: lvl.Location.Name,
			Quantity:     lvl.Quantity,
			Reserved:     lvl.ReservedQuantity,
			Available:    lvl.Available(),
		})
	}

	out := make([]StockSummary, 0, len(order))
	for _, id := range order {
		s := byProduct[id]
		s.LowStock = s.AvailableQuantity <= s.MinStockLevel
		out = append(out, *s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].ProductName) < strings.ToLower(out[j].ProductName)
	})
	return out
}

// MatchesProduct is a case-insensitive match on name, part number, HSN and
// brand. An empty term matches everything.
func MatchesProduct(p models.Product, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, f := range []string{p.Name, p.PartNo, p.HSNNumber, p.Brand} {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// FilterStockLevels keeps the levels whose product matches term.
func FilterStockLevels(levels []models.StockLevel, term string) []models.StockLevel {
	out := make([]models.StockLevel, 0, len(levels))
	for _, lvl := range levels {
		if MatchesProduct(lvl.Product, term) {
			out = append(out, lvl)
		}
	}
	return out
}

// StockAdjustment describes a single ledgered change to a stock level.
type StockAdjustment struct {
	ProductID     uuid.UUID
	LocationID    uuid.UUID
	Delta         int
	Reason        string
	ReferenceType string
	ReferenceID   string
	Notes         string
}

// AdjustStock applies the change inside tx, creating the level row on first
// use, and records it in the stock ledger. The quantity never goes below 0.
func AdjustStock(tx *gorm.DB, adj StockAdjustment) (models.StockLevel, error) {
	var level models.StockLevel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id = ? AND location_id = ?", adj.ProductID, adj.LocationID).
		First(&level).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		level = models.StockLevel{ProductID: adj.ProductID, LocationID: adj.LocationID}
	} else if err != nil {
		return level, fmt.Errorf("load stock level: %w", err)
	}

	next := level.Quantity + adj.Delta
	if next < 0 || next < level.ReservedQuantity {
		return level, ErrInsufficientStock
	}
	level.Quantity = next

	if err := tx.Omit(clause.Associations).Save(&level).Error; err != nil {
		return level, fmt.Errorf("save stock level: %w", err)
	}

	entry := models.StockTransaction{
		ProductID:     adj.ProductID,
		LocationID:    adj.LocationID,
		Delta:         adj.Delta,
		BalanceAfter:  level.Quantity,
		Reason:        adj.Reason,
		ReferenceType: adj.ReferenceType,
		ReferenceID:   adj.ReferenceID,
		Notes:         adj.Notes,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return level, fmt.Errorf("record stock transaction: %w", err)
	}
	return level, nil
}
