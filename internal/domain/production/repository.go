package production

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mfg/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BatchFilter defines filtering options for batch queries
type BatchFilter struct {
	shared.Filter
	ProductID *uuid.UUID   // Filter by product
	Status    *BatchStatus // Filter by status
	FromDate  *time.Time   // Filter by completion date range start
	ToDate    *time.Time   // Filter by completion date range end
}

// CostTotals aggregates batch cost figures across a tenant
type CostTotals struct {
	TotalCost    decimal.Decimal
	MaterialCost decimal.Decimal
	LaborCost    decimal.Decimal
	OverheadCost decimal.Decimal
}

// BatchRepository defines the interface for batch persistence
type BatchRepository interface {
	// FindByID finds a batch by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Batch, error)

	// FindByIDForTenant finds a batch by ID for a specific tenant,
	// direct cost lines included
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Batch, error)

	// FindByBatchNumber finds a batch by batch number for a tenant
	FindByBatchNumber(ctx context.Context, tenantID uuid.UUID, batchNumber string) (*Batch, error)

	// FindAllForTenant finds all batches for a tenant with filtering
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter BatchFilter) ([]Batch, error)

	// FindCompletedInPeriod finds completed batches whose completion date
	// falls inside the given period
	FindCompletedInPeriod(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]Batch, error)

	// FindRecent finds the most recently updated batches for a tenant
	FindRecent(ctx context.Context, tenantID uuid.UUID, limit int) ([]Batch, error)

	// Save creates or updates a batch together with its direct cost lines
	Save(ctx context.Context, batch *Batch) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, batch *Batch) error

	// Delete soft deletes a batch for a tenant
	Delete(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts batches for a tenant with optional filters
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter BatchFilter) (int64, error)

	// SumCostsForTenant sums the derived cost figures over all batches
	SumCostsForTenant(ctx context.Context, tenantID uuid.UUID) (*CostTotals, error)

	// SumActualQuantityInPeriod sums actual quantities of completed batches
	// in the given period
	SumActualQuantityInPeriod(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (decimal.Decimal, error)

	// GenerateBatchNumber generates a unique batch number for a tenant
	GenerateBatchNumber(ctx context.Context, tenantID uuid.UUID) (string, error)
}

// OverheadRateFilter defines filtering options for overhead rate queries
type OverheadRateFilter struct {
	shared.Filter
	Stage    *OverheadStage // Filter by applicable stage
	IsActive *bool          // Filter by active flag
}

// OverheadRateRepository defines the interface for overhead rate persistence
type OverheadRateRepository interface {
	// FindByID finds an overhead rate by ID
	FindByID(ctx context.Context, id uuid.UUID) (*OverheadRate, error)

	// FindByIDForTenant finds an overhead rate by ID for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*OverheadRate, error)

	// FindAllForTenant finds all overhead rates for a tenant with filtering
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter OverheadRateFilter) ([]OverheadRate, error)

	// FindBestEffectiveRate finds the applicable rate for a stage at a point
	// in time: active, effective window covering the time, stage matching
	// the given stage or "all", highest rate-per-unit wins
	FindBestEffectiveRate(ctx context.Context, tenantID uuid.UUID, stage LifecycleStage, at time.Time) (*OverheadRate, error)

	// Save creates or updates an overhead rate
	Save(ctx context.Context, rate *OverheadRate) error

	// Delete soft deletes an overhead rate for a tenant
	Delete(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts overhead rates for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter OverheadRateFilter) (int64, error)
}
