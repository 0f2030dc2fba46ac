package production

import (
	"github.com/google/uuid"
	"github.com/mfg/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BatchCompletedEvent is raised when a batch finishes production
type BatchCompletedEvent struct {
	shared.BaseDomainEvent
	BatchID        uuid.UUID       `json:"batch_id"`
	BatchNumber    string          `json:"batch_number"`
	ProductID      uuid.UUID       `json:"product_id"`
	ActualQuantity decimal.Decimal `json:"actual_quantity"`
	TotalCost      decimal.Decimal `json:"total_cost"`
	CostPerUnit    decimal.Decimal `json:"cost_per_unit"`
}

// EventType returns the event type name
func (e *BatchCompletedEvent) EventType() string {
	return "BatchCompleted"
}

// NewBatchCompletedEvent creates a new BatchCompletedEvent
func NewBatchCompletedEvent(batch *Batch) *BatchCompletedEvent {
	return &BatchCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("BatchCompleted", "Batch", batch.ID, batch.TenantID),
		BatchID:         batch.ID,
		BatchNumber:     batch.BatchNumber,
		ProductID:       batch.ProductID,
		ActualQuantity:  batch.ActualQuantity,
		TotalCost:       batch.TotalCost,
		CostPerUnit:     batch.CostPerUnit,
	}
}

// BatchCostsCalculatedEvent is raised after the costing service recomputes
// the derived cost figures of a batch
type BatchCostsCalculatedEvent struct {
	shared.BaseDomainEvent
	BatchID           uuid.UUID       `json:"batch_id"`
	BatchNumber       string          `json:"batch_number"`
	TotalMaterialCost decimal.Decimal `json:"total_material_cost"`
	TotalLaborCost    decimal.Decimal `json:"total_labor_cost"`
	TotalOverheadCost decimal.Decimal `json:"total_overhead_cost"`
	TotalCost         decimal.Decimal `json:"total_cost"`
	CostPerUnit       decimal.Decimal `json:"cost_per_unit"`
}

// EventType returns the event type name
func (e *BatchCostsCalculatedEvent) EventType() string {
	return "BatchCostsCalculated"
}

// NewBatchCostsCalculatedEvent creates a new BatchCostsCalculatedEvent
func NewBatchCostsCalculatedEvent(batch *Batch) *BatchCostsCalculatedEvent {
	return &BatchCostsCalculatedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent("BatchCostsCalculated", "Batch", batch.ID, batch.TenantID),
		BatchID:           batch.ID,
		BatchNumber:       batch.BatchNumber,
		TotalMaterialCost: batch.TotalMaterialCost,
		TotalLaborCost:    batch.TotalLaborCost,
		TotalOverheadCost: batch.TotalOverheadCost,
		TotalCost:         batch.TotalCost,
		CostPerUnit:       batch.CostPerUnit,
	}
}
