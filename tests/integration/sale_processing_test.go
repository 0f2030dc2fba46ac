package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mfg/backend/internal/domain/finance"
	"github.com/mfg/backend/internal/domain/inventory"
	"github.com/mfg/backend/internal/domain/production"
	"github.com/mfg/backend/internal/domain/sales"
	"github.com/mfg/backend/internal/domain/shared"
	"github.com/mfg/backend/internal/domain/shared/valueobject"
	"github.com/mfg/backend/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// seedBatchWithStock persists a completed batch and its finished-goods stock.
func seedBatchWithStock(t *testing.T, tdb *TestDB, tenantID uuid.UUID, quantity decimal.Decimal) (*production.Batch, *inventory.InventoryItem) {
	t.Helper()

	ctx := context.Background()
	batchRepo := persistence.NewGormBatchRepository(tdb.DB)
	invRepo := persistence.NewGormInventoryItemRepository(tdb.DB)

	batch, err := production.NewBatch(
		tenantID,
		"BATCH-2026-"+uuid.NewString()[:8],
		uuid.New(),
		"Chili Paste 250g",
		quantity,
		production.StageGrowth,
	)
	require.NoError(t, err)

	material, err := production.NewDirectCost(
		production.CostTypeMaterial, "Dried chili", quantity, decimal.NewFromFloat(4.50))
	require.NoError(t, err)
	require.NoError(t, batch.AddDirectCost(material))

	require.NoError(t, batch.Start(time.Now().AddDate(0, 0, -2)))
	require.NoError(t, batch.SubmitQualityCheck(quantity, decimal.NewFromInt(8)))
	batch.ApplyCosts(batch.TotalMaterialCost, decimal.Zero, decimal.Zero)
	require.NoError(t, batch.Complete(time.Now().AddDate(0, 0, -1)))
	require.NoError(t, batchRepo.Save(ctx, batch))

	item, err := inventory.NewInventoryItem(
		tenantID, batch.ProductID, batch.ProductName, batch.ID, quantity, batch.CostPerUnit)
	require.NoError(t, err)
	require.NoError(t, invRepo.Save(ctx, item))

	return batch, item
}

func buildSaleWithRevenue(t *testing.T, tenantID uuid.UUID, batch *production.Batch, quantity decimal.Decimal) (*sales.Sale, *finance.Cashflow) {
	t.Helper()

	sale, err := sales.NewSale(
		tenantID,
		"SALE-2026-"+uuid.NewString()[:8],
		"Kedai Runcit Maju",
		batch.ProductID,
		batch.ProductName,
		batch.ID,
		time.Now(),
		quantity,
		decimal.NewFromFloat(12.00),
		batch.CostPerUnit,
		nil,
		sales.PaymentMethodCash,
	)
	require.NoError(t, err)

	entry, err := finance.NewCashflow(
		tenantID,
		sale.SaleDate,
		finance.CashflowTypeRevenue,
		finance.CategorySales,
		"Sale "+sale.SaleNumber,
		valueobject.NewMoneyMYR(sale.TotalRevenue),
		finance.PaymentMethodCash,
		nil,
	)
	require.NoError(t, err)

	return sale, entry
}

func TestSaleProcessingStore_CommitsSaleAtomically(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewSharedTestDB(t)
	ctx := context.Background()
	store := persistence.NewGormSaleProcessingStore(tdb.DB)
	saleRepo := persistence.NewGormSaleRepository(tdb.DB)
	invRepo := persistence.NewGormInventoryItemRepository(tdb.DB)
	cashflowRepo := persistence.NewGormCashflowRepository(tdb.DB)

	tenantID := uuid.New()
	batch, _ := seedBatchWithStock(t, tdb, tenantID, decimal.NewFromInt(100))

	sale, entry := buildSaleWithRevenue(t, tenantID, batch, decimal.NewFromInt(20))
	require.NoError(t, store.ProcessSale(ctx, sale, entry))

	item, err := invRepo.FindByBatchID(ctx, tenantID, batch.ID)
	require.NoError(t, err)
	require.NotNil(t, item)
	require.Equal(t, "80", item.QuantityOnHand.String())
	require.Equal(t, "20", item.QuantitySold.String())

	persisted, err := saleRepo.FindByIDForTenant(ctx, tenantID, sale.ID)
	require.NoError(t, err)
	require.NotNil(t, persisted)
	require.Equal(t, "240", persisted.TotalRevenue.String())
	require.Equal(t, sales.PaymentStatusPaid, persisted.PaymentStatus)

	count, err := cashflowRepo.CountForTenant(ctx, tenantID, finance.CashflowFilter{})
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

func TestSaleProcessingStore_InsufficientStockRollsBack(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewSharedTestDB(t)
	ctx := context.Background()
	store := persistence.NewGormSaleProcessingStore(tdb.DB)
	saleRepo := persistence.NewGormSaleRepository(tdb.DB)
	invRepo := persistence.NewGormInventoryItemRepository(tdb.DB)
	cashflowRepo := persistence.NewGormCashflowRepository(tdb.DB)

	tenantID := uuid.New()
	batch, _ := seedBatchWithStock(t, tdb, tenantID, decimal.NewFromInt(5))

	sale, entry := buildSaleWithRevenue(t, tenantID, batch, decimal.NewFromInt(10))
	err := store.ProcessSale(ctx, sale, entry)
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)

	// Nothing was written and the stock is untouched
	persisted, err := saleRepo.FindByIDForTenant(ctx, tenantID, sale.ID)
	require.NoError(t, err)
	require.Nil(t, persisted)

	count, err := cashflowRepo.CountForTenant(ctx, tenantID, finance.CashflowFilter{})
	require.NoError(t, err)
	require.Equal(t, int64(0), count)

	item, err := invRepo.FindByBatchID(ctx, tenantID, batch.ID)
	require.NoError(t, err)
	require.Equal(t, "5", item.QuantityOnHand.String())
	require.True(t, item.QuantitySold.IsZero())
}

func TestSaleProcessingStore_MissingStockRecord(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewSharedTestDB(t)
	ctx := context.Background()
	store := persistence.NewGormSaleProcessingStore(tdb.DB)

	tenantID := uuid.New()
	phantom := &production.Batch{}
	phantom.TenantAggregateRoot = shared.NewTenantAggregateRoot(tenantID)
	phantom.ProductID = uuid.New()
	phantom.ProductName = "Chili Paste 250g"
	phantom.CostPerUnit = decimal.NewFromFloat(4.50)

	sale, entry := buildSaleWithRevenue(t, tenantID, phantom, decimal.NewFromInt(1))

	err := store.ProcessSale(ctx, sale, entry)
	require.Error(t, err)

	// a batch that was never stocked is an oversell, not a missing resource
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
}
