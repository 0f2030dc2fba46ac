package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/mfg/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InventoryItem represents finished goods stock produced by one batch.
// The identifier within a tenant is the producing BatchID.
// TotalValue always equals QuantityOnHand times UnitCost.
type InventoryItem struct {
	shared.TenantAggregateRoot
	ProductID      uuid.UUID       `json:"product_id"`
	ProductName    string          `json:"product_name"`
	BatchID        uuid.UUID       `json:"batch_id"`
	QuantityOnHand decimal.Decimal `json:"quantity_on_hand"`
	QuantitySold   decimal.Decimal `json:"quantity_sold"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	TotalValue     decimal.Decimal `json:"total_value"`
	LastUpdated    time.Time       `json:"last_updated"`
}

// NewInventoryItem creates inventory stock for a completed batch
func NewInventoryItem(
	tenantID uuid.UUID,
	productID uuid.UUID,
	productName string,
	batchID uuid.UUID,
	quantity decimal.Decimal,
	unitCost decimal.Decimal,
) (*InventoryItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if batchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BATCH", "Batch ID cannot be empty")
	}
	if quantity.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}

	return &InventoryItem{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ProductID:           productID,
		ProductName:         productName,
		BatchID:             batchID,
		QuantityOnHand:      quantity,
		QuantitySold:        decimal.Zero,
		UnitCost:            unitCost,
		TotalValue:          quantity.Mul(unitCost),
		LastUpdated:         time.Now(),
	}, nil
}

// RestockFromBatch resets the stock figures from a recalculated batch.
// Quantity sold is preserved.
func (i *InventoryItem) RestockFromBatch(quantity, unitCost decimal.Decimal) error {
	if quantity.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	if unitCost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}

	i.QuantityOnHand = quantity
	i.UnitCost = unitCost
	i.TotalValue = quantity.Mul(unitCost)
	i.LastUpdated = time.Now()
	i.UpdatedAt = i.LastUpdated
	return nil
}

// Deduct removes sold quantity from stock.
// Fails with INSUFFICIENT_STOCK when the quantity on hand cannot cover it.
func (i *InventoryItem) Deduct(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Deduction quantity must be positive")
	}
	if i.QuantityOnHand.LessThan(quantity) {
		return shared.NewDomainError("INSUFFICIENT_STOCK", "Insufficient quantity on hand")
	}

	i.QuantityOnHand = i.QuantityOnHand.Sub(quantity)
	i.QuantitySold = i.QuantitySold.Add(quantity)
	i.TotalValue = i.QuantityOnHand.Mul(i.UnitCost)
	i.LastUpdated = time.Now()
	i.UpdatedAt = i.LastUpdated
	return nil
}

// CanFulfill returns true if the quantity on hand covers the requested quantity
func (i *InventoryItem) CanFulfill(quantity decimal.Decimal) bool {
	return i.QuantityOnHand.GreaterThanOrEqual(quantity)
}

// HasStock returns true if there is any quantity on hand
func (i *InventoryItem) HasStock() bool {
	return i.QuantityOnHand.GreaterThan(decimal.Zero)
}
