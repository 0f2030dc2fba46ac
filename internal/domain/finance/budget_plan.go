package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/mfg/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BudgetFigures groups the six planned/recorded dimensions of a budget period
type BudgetFigures struct {
	Revenue          decimal.Decimal `json:"revenue"`
	DirectMaterial   decimal.Decimal `json:"direct_material"`
	DirectLabor      decimal.Decimal `json:"direct_labor"`
	FixedOverhead    decimal.Decimal `json:"fixed_overhead"`
	VariableOverhead decimal.Decimal `json:"variable_overhead"`
	Units            decimal.Decimal `json:"units"`
}

// TotalExpenses sums the four expense dimensions
func (f BudgetFigures) TotalExpenses() decimal.Decimal {
	return f.DirectMaterial.Add(f.DirectLabor).Add(f.FixedOverhead).Add(f.VariableOverhead)
}

// Profit is revenue minus total expenses
func (f BudgetFigures) Profit() decimal.Decimal {
	return f.Revenue.Sub(f.TotalExpenses())
}

// BudgetPlan represents a budget for a production period.
// Budgeted figures are authored externally; actual figures are recomputed
// from cashflows and completed batches in the period.
type BudgetPlan struct {
	shared.TenantAggregateRoot
	PlanName    string        `json:"plan_name"`
	PeriodStart time.Time     `json:"period_start"`
	PeriodEnd   time.Time     `json:"period_end"`
	Budgeted    BudgetFigures `json:"budgeted" gorm:"embedded;embeddedPrefix:budgeted_"`
	Actual      BudgetFigures `json:"actual" gorm:"embedded;embeddedPrefix:actual_"`
	Notes       string        `json:"notes"`
}

// NewBudgetPlan creates a new budget plan
func NewBudgetPlan(
	tenantID uuid.UUID,
	planName string,
	periodStart, periodEnd time.Time,
	budgeted BudgetFigures,
) (*BudgetPlan, error) {
	if planName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Plan name cannot be empty")
	}
	if periodEnd.Before(periodStart) {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Period end cannot precede period start")
	}
	if budgeted.Revenue.IsNegative() || budgeted.DirectMaterial.IsNegative() ||
		budgeted.DirectLabor.IsNegative() || budgeted.FixedOverhead.IsNegative() ||
		budgeted.VariableOverhead.IsNegative() || budgeted.Units.IsNegative() {
		return nil, shared.NewDomainError("INVALID_BUDGET", "Budgeted figures cannot be negative")
	}

	return &BudgetPlan{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		PlanName:            planName,
		PeriodStart:         periodStart,
		PeriodEnd:           periodEnd,
		Budgeted:            budgeted,
	}, nil
}

// SetActuals overwrites the actual figures for the period
func (p *BudgetPlan) SetActuals(actual BudgetFigures) {
	p.Actual = actual
	p.UpdatedAt = time.Now()
}

// UpdateBudget replaces the budgeted figures
func (p *BudgetPlan) UpdateBudget(budgeted BudgetFigures) error {
	if budgeted.Revenue.IsNegative() || budgeted.DirectMaterial.IsNegative() ||
		budgeted.DirectLabor.IsNegative() || budgeted.FixedOverhead.IsNegative() ||
		budgeted.VariableOverhead.IsNegative() || budgeted.Units.IsNegative() {
		return shared.NewDomainError("INVALID_BUDGET", "Budgeted figures cannot be negative")
	}
	p.Budgeted = budgeted
	p.UpdatedAt = time.Now()
	return nil
}

// VarianceLine compares one budget dimension against its actual figure.
// The variance percent is zero when the budgeted figure is zero.
type VarianceLine struct {
	Budgeted        decimal.Decimal `json:"budgeted"`
	Actual          decimal.Decimal `json:"actual"`
	Variance        decimal.Decimal `json:"variance"`
	VariancePercent decimal.Decimal `json:"variance_percent"`
}

func newVarianceLine(budgeted, actual decimal.Decimal) VarianceLine {
	variance := actual.Sub(budgeted)
	percent := decimal.Zero
	if !budgeted.IsZero() {
		percent = variance.Div(budgeted).Mul(decimal.NewFromInt(100))
	}
	return VarianceLine{
		Budgeted:        budgeted,
		Actual:          actual,
		Variance:        variance,
		VariancePercent: percent,
	}
}

// VarianceReport holds the variance analysis of a budget plan
type VarianceReport struct {
	PlanID           uuid.UUID    `json:"plan_id"`
	PlanName         string       `json:"plan_name"`
	Revenue          VarianceLine `json:"revenue"`
	DirectMaterial   VarianceLine `json:"direct_material"`
	DirectLabor      VarianceLine `json:"direct_labor"`
	FixedOverhead    VarianceLine `json:"fixed_overhead"`
	VariableOverhead VarianceLine `json:"variable_overhead"`
	Units            VarianceLine `json:"units"`
	TotalExpenses    VarianceLine `json:"total_expenses"`
	Profit           VarianceLine `json:"profit"`
}

// Variances compares every budget dimension against the recorded actuals
func (p *BudgetPlan) Variances() *VarianceReport {
	return &VarianceReport{
		PlanID:           p.ID,
		PlanName:         p.PlanName,
		Revenue:          newVarianceLine(p.Budgeted.Revenue, p.Actual.Revenue),
		DirectMaterial:   newVarianceLine(p.Budgeted.DirectMaterial, p.Actual.DirectMaterial),
		DirectLabor:      newVarianceLine(p.Budgeted.DirectLabor, p.Actual.DirectLabor),
		FixedOverhead:    newVarianceLine(p.Budgeted.FixedOverhead, p.Actual.FixedOverhead),
		VariableOverhead: newVarianceLine(p.Budgeted.VariableOverhead, p.Actual.VariableOverhead),
		Units:            newVarianceLine(p.Budgeted.Units, p.Actual.Units),
		TotalExpenses:    newVarianceLine(p.Budgeted.TotalExpenses(), p.Actual.TotalExpenses()),
		Profit:           newVarianceLine(p.Budgeted.Profit(), p.Actual.Profit()),
	}
}

// BreakEvenResult holds a break-even analysis over the budgeted figures.
// Business conditions that make the analysis impossible are reported in
// the Error field, they are not operational failures.
type BreakEvenResult struct {
	PlanID                    uuid.UUID       `json:"plan_id"`
	SellingPricePerUnit       decimal.Decimal `json:"selling_price_per_unit"`
	VariableCostPerUnit       decimal.Decimal `json:"variable_cost_per_unit"`
	ContributionMarginPerUnit decimal.Decimal `json:"contribution_margin_per_unit"`
	ContributionMarginRatio   decimal.Decimal `json:"contribution_margin_ratio"`
	FixedCosts                decimal.Decimal `json:"fixed_costs"`
	BreakEvenUnits            decimal.Decimal `json:"break_even_units"`
	BreakEvenRevenue          decimal.Decimal `json:"break_even_revenue"`
	MarginOfSafetyUnits       decimal.Decimal `json:"margin_of_safety_units"`
	MarginOfSafetyPercent     decimal.Decimal `json:"margin_of_safety_percent"`
	Error                     string          `json:"error,omitempty"`
}

// BreakEven computes the break-even point from the budgeted figures.
// Variable costs are direct material, direct labor and variable overhead;
// fixed costs are the fixed overhead. Break-even units are rounded up to
// whole units.
func (p *BudgetPlan) BreakEven() *BreakEvenResult {
	result := &BreakEvenResult{
		PlanID:     p.ID,
		FixedCosts: p.Budgeted.FixedOverhead,
	}

	if !p.Budgeted.Units.IsPositive() {
		result.Error = "Budgeted units must be greater than zero for break-even analysis"
		return result
	}

	price := p.Budgeted.Revenue.Div(p.Budgeted.Units)
	variableCosts := p.Budgeted.DirectMaterial.Add(p.Budgeted.DirectLabor).Add(p.Budgeted.VariableOverhead)
	variablePerUnit := variableCosts.Div(p.Budgeted.Units)
	margin := price.Sub(variablePerUnit)

	result.SellingPricePerUnit = price
	result.VariableCostPerUnit = variablePerUnit
	result.ContributionMarginPerUnit = margin
	if price.IsPositive() {
		result.ContributionMarginRatio = margin.Div(price).Mul(decimal.NewFromInt(100))
	}

	if !margin.IsPositive() {
		result.Error = "Contribution margin is zero or negative; the break-even point cannot be reached"
		return result
	}

	breakEvenUnits := p.Budgeted.FixedOverhead.Div(margin).Ceil()
	result.BreakEvenUnits = breakEvenUnits
	result.BreakEvenRevenue = breakEvenUnits.Mul(price)
	result.MarginOfSafetyUnits = p.Budgeted.Units.Sub(breakEvenUnits)
	result.MarginOfSafetyPercent = result.MarginOfSafetyUnits.Div(p.Budgeted.Units).Mul(decimal.NewFromInt(100))

	return result
}
