package production

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mfg/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BatchStatus represents the production status of a batch
type BatchStatus string

const (
	BatchStatusPlanned      BatchStatus = "planned"
	BatchStatusInProduction BatchStatus = "in_production"
	BatchStatusQualityCheck BatchStatus = "quality_check"
	BatchStatusCompleted    BatchStatus = "completed"
)

// IsValid checks if the status is a valid BatchStatus
func (s BatchStatus) IsValid() bool {
	switch s {
	case BatchStatusPlanned, BatchStatusInProduction, BatchStatusQualityCheck, BatchStatusCompleted:
		return true
	}
	return false
}

// String returns the string representation of BatchStatus
func (s BatchStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the batch is in a terminal state
func (s BatchStatus) IsTerminal() bool {
	return s == BatchStatusCompleted
}

// CanStart returns true if production can start
func (s BatchStatus) CanStart() bool {
	return s == BatchStatusPlanned
}

// CanSubmitQualityCheck returns true if the batch can move to quality check
func (s BatchStatus) CanSubmitQualityCheck() bool {
	return s == BatchStatusInProduction
}

// CanComplete returns true if the batch can be completed
func (s BatchStatus) CanComplete() bool {
	return s == BatchStatusQualityCheck
}

// LifecycleStage represents the product lifecycle stage a batch belongs to
type LifecycleStage string

const (
	StageIntroduction LifecycleStage = "introduction"
	StageGrowth       LifecycleStage = "growth"
	StageMaturity     LifecycleStage = "maturity"
	StageDecline      LifecycleStage = "decline"
)

// DefaultLifecycleStage is assumed when a batch carries no stage
const DefaultLifecycleStage = StageGrowth

// IsValid checks if the stage is a valid LifecycleStage
func (s LifecycleStage) IsValid() bool {
	switch s {
	case StageIntroduction, StageGrowth, StageMaturity, StageDecline:
		return true
	}
	return false
}

// String returns the string representation of LifecycleStage
func (s LifecycleStage) String() string {
	return string(s)
}

// OrDefault returns the stage, falling back to DefaultLifecycleStage when empty
func (s LifecycleStage) OrDefault() LifecycleStage {
	if s == "" {
		return DefaultLifecycleStage
	}
	return s
}

// Batch represents a production batch aggregate root.
// Cost figures are derived and only written by the costing service.
type Batch struct {
	shared.TenantAggregateRoot
	BatchNumber       string          `json:"batch_number"`
	ProductID         uuid.UUID       `json:"product_id"`
	ProductName       string          `json:"product_name"`
	ProductSKU        string          `json:"product_sku"`
	LifecycleStage    LifecycleStage  `json:"lifecycle_stage"`
	Status            BatchStatus     `json:"status"`
	PlannedQuantity   decimal.Decimal `json:"planned_quantity"`
	ActualQuantity    decimal.Decimal `json:"actual_quantity"`
	ProductionHours   decimal.Decimal `json:"production_hours"`
	StartDate         *time.Time      `json:"start_date"`
	CompletionDate    *time.Time      `json:"completion_date"`
	TotalMaterialCost decimal.Decimal `json:"total_material_cost"`
	TotalLaborCost    decimal.Decimal `json:"total_labor_cost"`
	TotalOverheadCost decimal.Decimal `json:"total_overhead_cost"`
	TotalCost         decimal.Decimal `json:"total_cost"`
	CostPerUnit       decimal.Decimal `json:"cost_per_unit"`
	Notes             string          `json:"notes"`
	DirectCosts       []DirectCost    `json:"direct_costs"`
}

// NewBatch creates a new production batch in planned status
func NewBatch(
	tenantID uuid.UUID,
	batchNumber string,
	productID uuid.UUID,
	productName string,
	plannedQuantity decimal.Decimal,
	stage LifecycleStage,
) (*Batch, error) {
	if batchNumber == "" {
		return nil, shared.NewDomainError("INVALID_BATCH_NUMBER", "Batch number cannot be empty")
	}
	if len(batchNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_BATCH_NUMBER", "Batch number cannot exceed 50 characters")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if plannedQuantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Planned quantity must be positive")
	}
	if stage != "" && !stage.IsValid() {
		return nil, shared.NewDomainError("INVALID_STAGE", "Lifecycle stage is not valid")
	}

	return &Batch{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		BatchNumber:         batchNumber,
		ProductID:           productID,
		ProductName:         productName,
		LifecycleStage:      stage,
		Status:              BatchStatusPlanned,
		PlannedQuantity:     plannedQuantity,
	}, nil
}

// Start moves the batch into production
func (b *Batch) Start(startDate time.Time) error {
	if !b.Status.CanStart() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot start batch in %s status", b.Status))
	}
	b.Status = BatchStatusInProduction
	b.StartDate = &startDate
	b.UpdatedAt = time.Now()
	return nil
}

// SubmitQualityCheck moves the batch into quality check
func (b *Batch) SubmitQualityCheck(actualQuantity, productionHours decimal.Decimal) error {
	if !b.Status.CanSubmitQualityCheck() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot submit batch in %s status for quality check", b.Status))
	}
	if actualQuantity.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Actual quantity cannot be negative")
	}
	if productionHours.IsNegative() {
		return shared.NewDomainError("INVALID_HOURS", "Production hours cannot be negative")
	}
	b.Status = BatchStatusQualityCheck
	b.ActualQuantity = actualQuantity
	b.ProductionHours = productionHours
	b.UpdatedAt = time.Now()
	return nil
}

// Complete marks the batch as completed.
// The completion date is only set when it has not been set before.
func (b *Batch) Complete(completedAt time.Time) error {
	if !b.Status.CanComplete() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot complete batch in %s status", b.Status))
	}
	b.Status = BatchStatusCompleted
	if b.CompletionDate == nil {
		b.CompletionDate = &completedAt
	}
	b.UpdatedAt = time.Now()

	b.AddDomainEvent(NewBatchCompletedEvent(b))

	return nil
}

// AddDirectCost attaches a direct cost line to the batch.
// Costs can only be recorded before the batch is completed.
func (b *Batch) AddDirectCost(cost *DirectCost) error {
	if b.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot add direct costs to a completed batch")
	}
	cost.BatchID = b.ID
	b.DirectCosts = append(b.DirectCosts, *cost)
	b.UpdatedAt = time.Now()
	return nil
}

// EffectiveQuantity returns the quantity used for costing:
// actual quantity when recorded, planned quantity otherwise.
func (b *Batch) EffectiveQuantity() decimal.Decimal {
	if b.ActualQuantity.IsPositive() {
		return b.ActualQuantity
	}
	return b.PlannedQuantity
}

// DirectCostTotals sums the direct cost lines by type
func (b *Batch) DirectCostTotals() (material, labor decimal.Decimal) {
	for _, c := range b.DirectCosts {
		switch c.CostType {
		case CostTypeMaterial:
			material = material.Add(c.TotalCost)
		case CostTypeLabor:
			labor = labor.Add(c.TotalCost)
		}
	}
	return material, labor
}

// ApplyCosts overwrites the derived cost figures.
// Repeated application replaces previous results, it never accumulates.
func (b *Batch) ApplyCosts(material, labor, overhead decimal.Decimal) {
	b.TotalMaterialCost = material
	b.TotalLaborCost = labor
	b.TotalOverheadCost = overhead
	b.TotalCost = material.Add(labor).Add(overhead)

	qty := b.EffectiveQuantity()
	if qty.IsPositive() {
		b.CostPerUnit = b.TotalCost.Div(qty)
	} else {
		b.CostPerUnit = decimal.Zero
	}
	b.UpdatedAt = time.Now()
}

// IsCompleted returns true if the batch is completed
func (b *Batch) IsCompleted() bool {
	return b.Status == BatchStatusCompleted
}
