package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mfg/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SaleFilter defines filtering options for sale queries
type SaleFilter struct {
	shared.Filter
	ProductID     *uuid.UUID     // Filter by product
	BatchID       *uuid.UUID     // Filter by producing batch
	PaymentStatus *PaymentStatus // Filter by payment status
	FromDate      *time.Time     // Filter by sale date range start
	ToDate        *time.Time     // Filter by sale date range end
}

// SalesSummary aggregates sales figures over a period
type SalesSummary struct {
	SaleCount            int64           `json:"sale_count"`
	TotalQuantity        decimal.Decimal `json:"total_quantity"`
	TotalRevenue         decimal.Decimal `json:"total_revenue"`
	TotalCOGS            decimal.Decimal `json:"total_cogs"`
	TotalGrossProfit     decimal.Decimal `json:"total_gross_profit"`
	AverageMarginPercent decimal.Decimal `json:"average_margin_percent"`
}

// SaleRepository defines the interface for sale persistence
type SaleRepository interface {
	// FindByID finds a sale by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)

	// FindByIDForTenant finds a sale by ID for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Sale, error)

	// FindAllForTenant finds all sales for a tenant with filtering
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter SaleFilter) ([]Sale, error)

	// Save creates or updates a sale
	Save(ctx context.Context, sale *Sale) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, sale *Sale) error

	// Delete soft deletes a sale for a tenant
	Delete(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts sales for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter SaleFilter) (int64, error)

	// Summarize aggregates sales figures over a period
	Summarize(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (*SalesSummary, error)

	// SumOutstandingAsOf sums amount due over pending and partial sales
	// dated on or before the given time
	SumOutstandingAsOf(ctx context.Context, tenantID uuid.UUID, asOf time.Time) (decimal.Decimal, error)

	// GenerateSaleNumber generates a unique sale number for a tenant
	GenerateSaleNumber(ctx context.Context, tenantID uuid.UUID) (string, error)
}
