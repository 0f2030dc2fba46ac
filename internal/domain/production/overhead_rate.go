package production

import (
	"time"

	"github.com/google/uuid"
	"github.com/mfg/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OverheadStage is the lifecycle stage an overhead rate applies to.
// The special value "all" matches every stage.
type OverheadStage string

const (
	OverheadStageIntroduction OverheadStage = "introduction"
	OverheadStageGrowth       OverheadStage = "growth"
	OverheadStageMaturity     OverheadStage = "maturity"
	OverheadStageDecline      OverheadStage = "decline"
	OverheadStageAll          OverheadStage = "all"
)

// IsValid checks if the stage is a valid OverheadStage
func (s OverheadStage) IsValid() bool {
	switch s {
	case OverheadStageIntroduction, OverheadStageGrowth, OverheadStageMaturity,
		OverheadStageDecline, OverheadStageAll:
		return true
	}
	return false
}

// String returns the string representation of OverheadStage
func (s OverheadStage) String() string {
	return string(s)
}

// Matches returns true if the rate stage covers the given batch stage
func (s OverheadStage) Matches(stage LifecycleStage) bool {
	return s == OverheadStageAll || string(s) == string(stage)
}

// OverheadRate represents an overhead absorption rate aggregate root.
// An open-ended rate has a nil EffectiveTo.
type OverheadRate struct {
	shared.TenantAggregateRoot
	Name            string          `json:"name"`
	RatePerUnit     decimal.Decimal `json:"rate_per_unit"`
	RatePerHour     decimal.Decimal `json:"rate_per_hour"`
	ApplicableStage OverheadStage   `json:"applicable_stage"`
	IsActive        bool            `json:"is_active"`
	EffectiveFrom   time.Time       `json:"effective_from"`
	EffectiveTo     *time.Time      `json:"effective_to"`
}

// NewOverheadRate creates a new overhead rate
func NewOverheadRate(
	tenantID uuid.UUID,
	name string,
	ratePerUnit decimal.Decimal,
	ratePerHour decimal.Decimal,
	stage OverheadStage,
	effectiveFrom time.Time,
	effectiveTo *time.Time,
) (*OverheadRate, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Overhead rate name cannot be empty")
	}
	if ratePerUnit.IsNegative() || ratePerHour.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "Overhead rates cannot be negative")
	}
	if !stage.IsValid() {
		return nil, shared.NewDomainError("INVALID_STAGE", "Applicable stage is not valid")
	}
	if effectiveTo != nil && effectiveTo.Before(effectiveFrom) {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Effective-to date cannot precede effective-from date")
	}

	return &OverheadRate{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		RatePerUnit:         ratePerUnit,
		RatePerHour:         ratePerHour,
		ApplicableStage:     stage,
		IsActive:            true,
		EffectiveFrom:       effectiveFrom,
		EffectiveTo:         effectiveTo,
	}, nil
}

// IsEffectiveAt returns true if the rate is active and covers the given time
func (r *OverheadRate) IsEffectiveAt(at time.Time) bool {
	if !r.IsActive {
		return false
	}
	if r.EffectiveFrom.After(at) {
		return false
	}
	return r.EffectiveTo == nil || !r.EffectiveTo.Before(at)
}

// AmountFor computes the overhead absorbed by a batch:
// rate-per-unit times quantity, plus rate-per-hour times hours when
// hours are tracked.
func (r *OverheadRate) AmountFor(quantity, hours decimal.Decimal) decimal.Decimal {
	amount := r.RatePerUnit.Mul(quantity)
	if hours.IsPositive() {
		amount = amount.Add(r.RatePerHour.Mul(hours))
	}
	return amount
}

// Deactivate retires the rate
func (r *OverheadRate) Deactivate() {
	r.IsActive = false
	r.UpdatedAt = time.Now()
}
