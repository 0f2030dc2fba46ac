package persistence

import (
	"context"
	"errors"

	appsales "github.com/mfg/backend/internal/application/sales"
	"github.com/mfg/backend/internal/domain/finance"
	"github.com/mfg/backend/internal/domain/sales"
	"github.com/mfg/backend/internal/domain/shared"
	"github.com/mfg/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSaleProcessingStore persists a processed sale atomically: the stock
// deduction, the sale record and the revenue cashflow commit in one
// transaction. The inventory row is locked with SELECT ... FOR UPDATE and
// the quantity re-checked under the lock, so two concurrent sales against
// the same batch cannot oversell it.
type GormSaleProcessingStore struct {
	db *gorm.DB
}

// NewGormSaleProcessingStore creates a new GormSaleProcessingStore
func NewGormSaleProcessingStore(db *gorm.DB) *GormSaleProcessingStore {
	return &GormSaleProcessingStore{db: db}
}

// ProcessSale deducts stock, inserts the sale and books the revenue entry
// in a single transaction
func (s *GormSaleProcessingStore) ProcessSale(ctx context.Context, sale *sales.Sale, revenueEntry *finance.Cashflow) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var itemModel models.InventoryItemModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("tenant_id = ? AND batch_id = ?", sale.TenantID, sale.BatchID).
			First(&itemModel).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// a batch with no stock record has nothing to sell
				return shared.NewDomainError("INSUFFICIENT_STOCK", "No stock available for batch")
			}
			return err
		}

		item := itemModel.ToDomain()
		if err := item.Deduct(sale.Quantity); err != nil {
			return err
		}

		updated := models.InventoryItemModelFromDomain(item)
		result := tx.Model(&models.InventoryItemModel{}).
			Where("id = ? AND version = ?", item.ID, item.Version).
			Updates(map[string]interface{}{
				"quantity_on_hand": updated.QuantityOnHand,
				"quantity_sold":    updated.QuantitySold,
				"total_value":      updated.TotalValue,
				"last_updated":     updated.LastUpdated,
				"version":          item.Version + 1,
				"updated_at":       updated.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}

		if err := tx.Create(models.SaleModelFromDomain(sale)).Error; err != nil {
			return err
		}
		return tx.Create(models.CashflowModelFromDomain(revenueEntry)).Error
	})
}

// Ensure GormSaleProcessingStore implements SaleProcessingStore
var _ appsales.SaleProcessingStore = (*GormSaleProcessingStore)(nil)
