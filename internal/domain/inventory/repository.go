package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/mfg/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InventoryFilter defines filtering options for inventory queries
type InventoryFilter struct {
	shared.Filter
	ProductID *uuid.UUID // Filter by product
	InStock   *bool      // Only items with quantity on hand
}

// InventoryItemRepository defines the interface for inventory persistence
type InventoryItemRepository interface {
	// FindByID finds an inventory item by ID
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryItem, error)

	// FindByBatchID finds the inventory item produced by a batch.
	// Returns nil without error when the batch has no stock record.
	FindByBatchID(ctx context.Context, tenantID, batchID uuid.UUID) (*InventoryItem, error)

	// FindAllForTenant finds all inventory items for a tenant with filtering
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter InventoryFilter) ([]InventoryItem, error)

	// Save creates or updates an inventory item
	Save(ctx context.Context, item *InventoryItem) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, item *InventoryItem) error

	// Delete soft deletes an inventory item for a tenant
	Delete(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts inventory items for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter InventoryFilter) (int64, error)

	// SumTotalValue sums the total value of all stock for a tenant
	SumTotalValue(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error)
}
