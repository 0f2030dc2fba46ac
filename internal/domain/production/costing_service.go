package production

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mfg/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CostBreakdown is the result of a batch cost calculation
type CostBreakdown struct {
	BatchID           uuid.UUID       `json:"batch_id"`
	BatchNumber       string          `json:"batch_number"`
	Quantity          decimal.Decimal `json:"quantity"`
	TotalMaterialCost decimal.Decimal `json:"total_material_cost"`
	TotalLaborCost    decimal.Decimal `json:"total_labor_cost"`
	TotalOverheadCost decimal.Decimal `json:"total_overhead_cost"`
	TotalCost         decimal.Decimal `json:"total_cost"`
	CostPerUnit       decimal.Decimal `json:"cost_per_unit"`
	OverheadRateID    *uuid.UUID      `json:"overhead_rate_id"`
	OverheadRateName  string          `json:"overhead_rate_name"`
}

// CostingService computes the derived cost figures of production batches.
// Calculations are idempotent: repeated runs replace previous figures.
type CostingService struct {
	batchRepo    BatchRepository
	overheadRepo OverheadRateRepository
}

// NewCostingService creates a new costing service
func NewCostingService(batchRepo BatchRepository, overheadRepo OverheadRateRepository) *CostingService {
	return &CostingService{
		batchRepo:    batchRepo,
		overheadRepo: overheadRepo,
	}
}

// ResolveOverheadRate selects the overhead rate applicable to a batch stage
// at the given time. Returns nil without error when no rate qualifies.
func (s *CostingService) ResolveOverheadRate(ctx context.Context, tenantID uuid.UUID, stage LifecycleStage, at time.Time) (*OverheadRate, error) {
	return s.overheadRepo.FindBestEffectiveRate(ctx, tenantID, stage.OrDefault(), at)
}

// CalculateBatchCosts recomputes and persists the cost figures of a batch
func (s *CostingService) CalculateBatchCosts(ctx context.Context, tenantID, batchID uuid.UUID) (*CostBreakdown, error) {
	batch, err := s.batchRepo.FindByIDForTenant(ctx, tenantID, batchID)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Batch not found")
	}

	breakdown, rate, err := s.computeBreakdown(ctx, batch)
	if err != nil {
		return nil, err
	}

	batch.ApplyCosts(breakdown.TotalMaterialCost, breakdown.TotalLaborCost, breakdown.TotalOverheadCost)
	batch.AddDomainEvent(NewBatchCostsCalculatedEvent(batch))

	if err := s.batchRepo.SaveWithLock(ctx, batch); err != nil {
		return nil, err
	}

	breakdown.TotalCost = batch.TotalCost
	breakdown.CostPerUnit = batch.CostPerUnit
	if rate != nil {
		breakdown.OverheadRateID = &rate.ID
		breakdown.OverheadRateName = rate.Name
	}
	return breakdown, nil
}

// CalculateCostsFor recomputes the cost figures on an already loaded batch
// without saving it. Used by workflows that persist the batch themselves.
func (s *CostingService) CalculateCostsFor(ctx context.Context, batch *Batch) (*CostBreakdown, error) {
	breakdown, rate, err := s.computeBreakdown(ctx, batch)
	if err != nil {
		return nil, err
	}

	batch.ApplyCosts(breakdown.TotalMaterialCost, breakdown.TotalLaborCost, breakdown.TotalOverheadCost)
	batch.AddDomainEvent(NewBatchCostsCalculatedEvent(batch))

	breakdown.TotalCost = batch.TotalCost
	breakdown.CostPerUnit = batch.CostPerUnit
	if rate != nil {
		breakdown.OverheadRateID = &rate.ID
		breakdown.OverheadRateName = rate.Name
	}
	return breakdown, nil
}

func (s *CostingService) computeBreakdown(ctx context.Context, batch *Batch) (*CostBreakdown, *OverheadRate, error) {
	material, labor := batch.DirectCostTotals()
	qty := batch.EffectiveQuantity()

	rate, err := s.ResolveOverheadRate(ctx, batch.TenantID, batch.LifecycleStage, time.Now())
	if err != nil {
		return nil, nil, err
	}

	overhead := decimal.Zero
	if rate != nil {
		overhead = rate.AmountFor(qty, batch.ProductionHours)
	}

	return &CostBreakdown{
		BatchID:           batch.ID,
		BatchNumber:       batch.BatchNumber,
		Quantity:          qty,
		TotalMaterialCost: material,
		TotalLaborCost:    labor,
		TotalOverheadCost: overhead,
	}, rate, nil
}
