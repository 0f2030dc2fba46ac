package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/mfg/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// InventoryItemModel is the persistence model for the InventoryItem aggregate root.
// A batch produces at most one stock record per tenant.
type InventoryItemModel struct {
	TenantAggregateModel
	ProductID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName    string          `gorm:"type:varchar(200);not null"`
	BatchID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	QuantityOnHand decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	QuantitySold   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UnitCost       decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0"`
	TotalValue     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	LastUpdated    time.Time       `gorm:"type:timestamptz;not null"`
}

// TableName returns the table name for GORM
func (InventoryItemModel) TableName() string {
	return "inventory_items"
}

// ToDomain converts the persistence model to a domain InventoryItem entity.
func (m *InventoryItemModel) ToDomain() *inventory.InventoryItem {
	item := &inventory.InventoryItem{
		ProductID:      m.ProductID,
		ProductName:    m.ProductName,
		BatchID:        m.BatchID,
		QuantityOnHand: m.QuantityOnHand,
		QuantitySold:   m.QuantitySold,
		UnitCost:       m.UnitCost,
		TotalValue:     m.TotalValue,
		LastUpdated:    m.LastUpdated,
	}
	m.PopulateTenantAggregateRoot(&item.TenantAggregateRoot)
	return item
}

// FromDomain populates the persistence model from a domain InventoryItem entity.
func (m *InventoryItemModel) FromDomain(i *inventory.InventoryItem) {
	m.FromDomainTenantAggregateRoot(i.TenantAggregateRoot)
	m.ProductID = i.ProductID
	m.ProductName = i.ProductName
	m.BatchID = i.BatchID
	m.QuantityOnHand = i.QuantityOnHand
	m.QuantitySold = i.QuantitySold
	m.UnitCost = i.UnitCost
	m.TotalValue = i.TotalValue
	m.LastUpdated = i.LastUpdated
}

// InventoryItemModelFromDomain creates a new persistence model from a domain InventoryItem entity.
func InventoryItemModelFromDomain(i *inventory.InventoryItem) *InventoryItemModel {
	m := &InventoryItemModel{}
	m.FromDomain(i)
	return m
}
