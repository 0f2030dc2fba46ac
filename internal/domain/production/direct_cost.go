package production

import (
	"github.com/google/uuid"
	"github.com/mfg/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CostType classifies a direct cost line
type CostType string

const (
	CostTypeMaterial CostType = "material"
	CostTypeLabor    CostType = "labor"
)

// IsValid checks if the cost type is valid
func (t CostType) IsValid() bool {
	return t == CostTypeMaterial || t == CostTypeLabor
}

// String returns the string representation of CostType
func (t CostType) String() string {
	return string(t)
}

// DirectCost is a material or labor cost line recorded against a batch
type DirectCost struct {
	shared.BaseEntity
	BatchID     uuid.UUID       `json:"batch_id"`
	CostType    CostType        `json:"cost_type"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	TotalCost   decimal.Decimal `json:"total_cost"`
}

// NewDirectCost creates a direct cost line.
// The total is always quantity times unit cost.
func NewDirectCost(
	costType CostType,
	description string,
	quantity decimal.Decimal,
	unitCost decimal.Decimal,
) (*DirectCost, error) {
	if !costType.IsValid() {
		return nil, shared.NewDomainError("INVALID_COST_TYPE", "Cost type must be material or labor")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_UNIT_COST", "Unit cost cannot be negative")
	}

	return &DirectCost{
		BaseEntity:  shared.NewBaseEntity(),
		CostType:    costType,
		Description: description,
		Quantity:    quantity,
		UnitCost:    unitCost,
		TotalCost:   quantity.Mul(unitCost),
	}, nil
}
