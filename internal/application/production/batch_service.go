package production

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mfg/backend/internal/domain/inventory"
	"github.com/mfg/backend/internal/domain/production"
	"github.com/mfg/backend/internal/domain/shared"
	"github.com/mfg/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BatchService provides application-level batch operations
type BatchService struct {
	batchRepo     production.BatchRepository
	inventoryRepo inventory.InventoryItemRepository
	costing       *production.CostingService
	eventBus      shared.EventBus
	logger        *zap.Logger
}

// NewBatchService creates a new BatchService
func NewBatchService(
	batchRepo production.BatchRepository,
	inventoryRepo inventory.InventoryItemRepository,
	costing *production.CostingService,
	eventBus shared.EventBus,
	logger *zap.Logger,
) *BatchService {
	return &BatchService{
		batchRepo:     batchRepo,
		inventoryRepo: inventoryRepo,
		costing:       costing,
		eventBus:      eventBus,
		logger:        logger,
	}
}

// BatchResponse represents a batch in API responses
type BatchResponse struct {
	ID                uuid.UUID            `json:"id"`
	TenantID          uuid.UUID            `json:"tenant_id"`
	BatchNumber       string               `json:"batch_number"`
	ProductID         uuid.UUID            `json:"product_id"`
	ProductName       string               `json:"product_name"`
	LifecycleStage    string               `json:"lifecycle_stage"`
	Status            string               `json:"status"`
	PlannedQuantity   decimal.Decimal      `json:"planned_quantity"`
	ActualQuantity    decimal.Decimal      `json:"actual_quantity"`
	ProductionHours   decimal.Decimal      `json:"production_hours"`
	StartDate         *time.Time           `json:"start_date,omitempty"`
	CompletionDate    *time.Time           `json:"completion_date,omitempty"`
	TotalMaterialCost decimal.Decimal      `json:"total_material_cost"`
	TotalLaborCost    decimal.Decimal      `json:"total_labor_cost"`
	TotalOverheadCost decimal.Decimal      `json:"total_overhead_cost"`
	TotalCost         decimal.Decimal      `json:"total_cost"`
	CostPerUnit       decimal.Decimal      `json:"cost_per_unit"`
	Notes             string               `json:"notes,omitempty"`
	DirectCosts       []DirectCostResponse `json:"direct_costs,omitempty"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
	Version           int                  `json:"version"`
}

// DirectCostResponse represents a direct cost line in API responses
type DirectCostResponse struct {
	ID          uuid.UUID       `json:"id"`
	CostType    string          `json:"cost_type"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	TotalCost   decimal.Decimal `json:"total_cost"`
}

// CreateBatchRequest represents a request to create a batch
type CreateBatchRequest struct {
	ProductID       uuid.UUID       `json:"product_id" binding:"required"`
	ProductName     string          `json:"product_name" binding:"required"`
	PlannedQuantity decimal.Decimal `json:"planned_quantity" binding:"required"`
	LifecycleStage  string          `json:"lifecycle_stage"`
	Notes           string          `json:"notes"`
}

// AddDirectCostRequest represents a request to record a direct cost line
type AddDirectCostRequest struct {
	CostType    string          `json:"cost_type" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitCost    decimal.Decimal `json:"unit_cost" binding:"required"`
}

// SubmitQualityCheckRequest carries the recorded production outcome
type SubmitQualityCheckRequest struct {
	ActualQuantity  decimal.Decimal `json:"actual_quantity" binding:"required"`
	ProductionHours decimal.Decimal `json:"production_hours"`
}

// BatchListFilter defines filtering options for batch list queries
type BatchListFilter struct {
	Status    string     `form:"status"`
	ProductID *uuid.UUID `form:"product_id"`
	FromDate  *time.Time `form:"from_date"`
	ToDate    *time.Time `form:"to_date"`
	Page      int        `form:"page"`
	PageSize  int        `form:"page_size"`
}

// CreateBatch creates a new production batch
func (s *BatchService) CreateBatch(ctx context.Context, tenantID uuid.UUID, req CreateBatchRequest) (*BatchResponse, error) {
	batchNumber, err := s.batchRepo.GenerateBatchNumber(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	batch, err := production.NewBatch(
		tenantID,
		batchNumber,
		req.ProductID,
		req.ProductName,
		req.PlannedQuantity,
		production.LifecycleStage(req.LifecycleStage),
	)
	if err != nil {
		return nil, err
	}
	batch.Notes = req.Notes

	if err := s.batchRepo.Save(ctx, batch); err != nil {
		return nil, err
	}

	s.logger.Info("batch created",
		zap.String("batch_number", batch.BatchNumber),
		zap.String("tenant_id", tenantID.String()))

	return toBatchResponse(batch), nil
}

// GetBatchByID gets a batch by ID
func (s *BatchService) GetBatchByID(ctx context.Context, tenantID, id uuid.UUID) (*BatchResponse, error) {
	batch, err := s.batchRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Batch not found")
	}
	return toBatchResponse(batch), nil
}

// ListBatches lists batches with filtering
func (s *BatchService) ListBatches(ctx context.Context, tenantID uuid.UUID, filter BatchListFilter) ([]BatchResponse, int64, error) {
	domainFilter := production.BatchFilter{
		ProductID: filter.ProductID,
		FromDate:  filter.FromDate,
		ToDate:    filter.ToDate,
	}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize

	if filter.Status != "" {
		status := production.BatchStatus(filter.Status)
		domainFilter.Status = &status
	}

	batches, err := s.batchRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.batchRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]BatchResponse, len(batches))
	for i, b := range batches {
		responses[i] = *toBatchResponse(&b)
	}
	return responses, total, nil
}

// AddDirectCost records a material or labor cost line against a batch
func (s *BatchService) AddDirectCost(ctx context.Context, tenantID, batchID uuid.UUID, req AddDirectCostRequest) (*BatchResponse, error) {
	batch, err := s.batchRepo.FindByIDForTenant(ctx, tenantID, batchID)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Batch not found")
	}

	cost, err := production.NewDirectCost(
		production.CostType(req.CostType),
		req.Description,
		req.Quantity,
		req.UnitCost,
	)
	if err != nil {
		return nil, err
	}

	if err := batch.AddDirectCost(cost); err != nil {
		return nil, err
	}

	if err := s.batchRepo.SaveWithLock(ctx, batch); err != nil {
		return nil, err
	}

	return toBatchResponse(batch), nil
}

// StartBatch moves a batch into production
func (s *BatchService) StartBatch(ctx context.Context, tenantID, batchID uuid.UUID) (*BatchResponse, error) {
	batch, err := s.batchRepo.FindByIDForTenant(ctx, tenantID, batchID)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Batch not found")
	}

	if err := batch.Start(time.Now()); err != nil {
		return nil, err
	}

	if err := s.batchRepo.SaveWithLock(ctx, batch); err != nil {
		return nil, err
	}
	return toBatchResponse(batch), nil
}

// SubmitQualityCheck moves a batch into quality check with its recorded outcome
func (s *BatchService) SubmitQualityCheck(ctx context.Context, tenantID, batchID uuid.UUID, req SubmitQualityCheckRequest) (*BatchResponse, error) {
	batch, err := s.batchRepo.FindByIDForTenant(ctx, tenantID, batchID)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Batch not found")
	}

	if err := batch.SubmitQualityCheck(req.ActualQuantity, req.ProductionHours); err != nil {
		return nil, err
	}

	if err := s.batchRepo.SaveWithLock(ctx, batch); err != nil {
		return nil, err
	}
	return toBatchResponse(batch), nil
}

// CalculateCosts recomputes the derived cost figures of a batch
func (s *BatchService) CalculateCosts(ctx context.Context, tenantID, batchID uuid.UUID) (*production.CostBreakdown, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "costing", "calculate_batch_costs")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrBatchID, batchID.String())

	breakdown, err := s.costing.CalculateBatchCosts(ctx, tenantID, batchID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetOK(span)

	s.logger.Info("batch costs calculated",
		zap.String("batch_id", batchID.String()),
		zap.String("total_cost", breakdown.TotalCost.String()))

	return breakdown, nil
}

// CompleteBatch runs the completion workflow: final costing, state
// transition and finished goods stocking, then event publication.
func (s *BatchService) CompleteBatch(ctx context.Context, tenantID, batchID uuid.UUID) (*BatchResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "batch", "complete")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrBatchID, batchID.String())

	batch, err := s.batchRepo.FindByIDForTenant(ctx, tenantID, batchID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if batch == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Batch not found")
	}
	if !batch.Status.CanComplete() {
		return nil, shared.NewDomainError("INVALID_STATE", "Only batches in quality check can be completed")
	}

	if _, err := s.costing.CalculateCostsFor(ctx, batch); err != nil {
		return nil, err
	}

	if err := batch.Complete(time.Now()); err != nil {
		return nil, err
	}

	if err := s.batchRepo.SaveWithLock(ctx, batch); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.stockFinishedGoods(ctx, batch); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttribute(span, telemetry.SpanAttrBatchNumber, batch.BatchNumber)
	telemetry.SetOK(span)

	events := batch.GetDomainEvents()
	if len(events) > 0 {
		if err := s.eventBus.Publish(ctx, events...); err != nil {
			s.logger.Error("failed to publish batch events", zap.Error(err))
		}
		batch.ClearDomainEvents()
	}

	s.logger.Info("batch completed",
		zap.String("batch_number", batch.BatchNumber),
		zap.String("cost_per_unit", batch.CostPerUnit.String()))

	return toBatchResponse(batch), nil
}

// stockFinishedGoods upserts the inventory record produced by the batch
func (s *BatchService) stockFinishedGoods(ctx context.Context, batch *production.Batch) error {
	item, err := s.inventoryRepo.FindByBatchID(ctx, batch.TenantID, batch.ID)
	if err != nil {
		return err
	}

	qty := batch.EffectiveQuantity()
	if item == nil {
		item, err = inventory.NewInventoryItem(
			batch.TenantID,
			batch.ProductID,
			batch.ProductName,
			batch.ID,
			qty,
			batch.CostPerUnit,
		)
		if err != nil {
			return err
		}
		return s.inventoryRepo.Save(ctx, item)
	}

	if err := item.RestockFromBatch(qty, batch.CostPerUnit); err != nil {
		return err
	}
	return s.inventoryRepo.SaveWithLock(ctx, item)
}

func toBatchResponse(batch *production.Batch) *BatchResponse {
	costs := make([]DirectCostResponse, len(batch.DirectCosts))
	for i, c := range batch.DirectCosts {
		costs[i] = DirectCostResponse{
			ID:          c.ID,
			CostType:    c.CostType.String(),
			Description: c.Description,
			Quantity:    c.Quantity,
			UnitCost:    c.UnitCost,
			TotalCost:   c.TotalCost,
		}
	}

	return &BatchResponse{
		ID:                batch.ID,
		TenantID:          batch.TenantID,
		BatchNumber:       batch.BatchNumber,
		ProductID:         batch.ProductID,
		ProductName:       batch.ProductName,
		LifecycleStage:    batch.LifecycleStage.String(),
		Status:            batch.Status.String(),
		PlannedQuantity:   batch.PlannedQuantity,
		ActualQuantity:    batch.ActualQuantity,
		ProductionHours:   batch.ProductionHours,
		StartDate:         batch.StartDate,
		CompletionDate:    batch.CompletionDate,
		TotalMaterialCost: batch.TotalMaterialCost,
		TotalLaborCost:    batch.TotalLaborCost,
		TotalOverheadCost: batch.TotalOverheadCost,
		TotalCost:         batch.TotalCost,
		CostPerUnit:       batch.CostPerUnit,
		Notes:             batch.Notes,
		DirectCosts:       costs,
		CreatedAt:         batch.CreatedAt,
		UpdatedAt:         batch.UpdatedAt,
		Version:           batch.Version,
	}
}
