package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mfg/backend/internal/domain/finance"
	"github.com/mfg/backend/internal/domain/production"
	"github.com/mfg/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BudgetService provides application-level budget plan operations
type BudgetService struct {
	budgetRepo   finance.BudgetPlanRepository
	cashflowRepo finance.CashflowRepository
	batchRepo    production.BatchRepository
	logger       *zap.Logger
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(
	budgetRepo finance.BudgetPlanRepository,
	cashflowRepo finance.CashflowRepository,
	batchRepo production.BatchRepository,
	logger *zap.Logger,
) *BudgetService {
	return &BudgetService{
		budgetRepo:   budgetRepo,
		cashflowRepo: cashflowRepo,
		batchRepo:    batchRepo,
		logger:       logger,
	}
}

// BudgetFiguresPayload mirrors the six budget dimensions in requests and
// responses
type BudgetFiguresPayload struct {
	Revenue          decimal.Decimal `json:"revenue"`
	DirectMaterial   decimal.Decimal `json:"direct_material"`
	DirectLabor      decimal.Decimal `json:"direct_labor"`
	FixedOverhead    decimal.Decimal `json:"fixed_overhead"`
	VariableOverhead decimal.Decimal `json:"variable_overhead"`
	Units            decimal.Decimal `json:"units"`
}

func (p BudgetFiguresPayload) toDomain() finance.BudgetFigures {
	return finance.BudgetFigures{
		Revenue:          p.Revenue,
		DirectMaterial:   p.DirectMaterial,
		DirectLabor:      p.DirectLabor,
		FixedOverhead:    p.FixedOverhead,
		VariableOverhead: p.VariableOverhead,
		Units:            p.Units,
	}
}

func fromDomainFigures(f finance.BudgetFigures) BudgetFiguresPayload {
	return BudgetFiguresPayload{
		Revenue:          f.Revenue,
		DirectMaterial:   f.DirectMaterial,
		DirectLabor:      f.DirectLabor,
		FixedOverhead:    f.FixedOverhead,
		VariableOverhead: f.VariableOverhead,
		Units:            f.Units,
	}
}

// BudgetPlanResponse represents a budget plan in API responses
type BudgetPlanResponse struct {
	ID          uuid.UUID            `json:"id"`
	TenantID    uuid.UUID            `json:"tenant_id"`
	PlanName    string               `json:"plan_name"`
	PeriodStart time.Time            `json:"period_start"`
	PeriodEnd   time.Time            `json:"period_end"`
	Budgeted    BudgetFiguresPayload `json:"budgeted"`
	Actual      BudgetFiguresPayload `json:"actual"`
	Notes       string               `json:"notes,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// CreateBudgetPlanRequest represents a request to create a budget plan
type CreateBudgetPlanRequest struct {
	PlanName    string               `json:"plan_name" binding:"required"`
	PeriodStart time.Time            `json:"period_start" binding:"required"`
	PeriodEnd   time.Time            `json:"period_end" binding:"required"`
	Budgeted    BudgetFiguresPayload `json:"budgeted" binding:"required"`
	Notes       string               `json:"notes"`
}

// UpdateBudgetPlanRequest represents a request to replace budgeted figures
type UpdateBudgetPlanRequest struct {
	Budgeted BudgetFiguresPayload `json:"budgeted" binding:"required"`
	Notes    string               `json:"notes"`
}

// BudgetPlanListFilter defines filtering options for budget plan queries
type BudgetPlanListFilter struct {
	ActiveAt *time.Time `form:"active_at"`
	Page     int        `form:"page"`
	PageSize int        `form:"page_size"`
}

// CreateBudgetPlan creates a new budget plan
func (s *BudgetService) CreateBudgetPlan(ctx context.Context, tenantID uuid.UUID, req CreateBudgetPlanRequest) (*BudgetPlanResponse, error) {
	plan, err := finance.NewBudgetPlan(tenantID, req.PlanName, req.PeriodStart, req.PeriodEnd, req.Budgeted.toDomain())
	if err != nil {
		return nil, err
	}
	plan.Notes = req.Notes

	if err := s.budgetRepo.Save(ctx, plan); err != nil {
		return nil, err
	}
	return toBudgetPlanResponse(plan), nil
}

// GetBudgetPlanByID gets a budget plan by ID
func (s *BudgetService) GetBudgetPlanByID(ctx context.Context, tenantID, id uuid.UUID) (*BudgetPlanResponse, error) {
	plan, err := s.findPlan(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toBudgetPlanResponse(plan), nil
}

// ListBudgetPlans lists budget plans with filtering
func (s *BudgetService) ListBudgetPlans(ctx context.Context, tenantID uuid.UUID, filter BudgetPlanListFilter) ([]BudgetPlanResponse, int64, error) {
	domainFilter := finance.BudgetPlanFilter{ActiveAt: filter.ActiveAt}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize

	plans, err := s.budgetRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.budgetRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]BudgetPlanResponse, len(plans))
	for i, plan := range plans {
		responses[i] = *toBudgetPlanResponse(&plan)
	}
	return responses, total, nil
}

// UpdateBudgetPlan replaces the budgeted figures of a plan
func (s *BudgetService) UpdateBudgetPlan(ctx context.Context, tenantID, id uuid.UUID, req UpdateBudgetPlanRequest) (*BudgetPlanResponse, error) {
	plan, err := s.findPlan(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := plan.UpdateBudget(req.Budgeted.toDomain()); err != nil {
		return nil, err
	}
	plan.Notes = req.Notes

	if err := s.budgetRepo.SaveWithLock(ctx, plan); err != nil {
		return nil, err
	}
	return toBudgetPlanResponse(plan), nil
}

// DeleteBudgetPlan removes a budget plan
func (s *BudgetService) DeleteBudgetPlan(ctx context.Context, tenantID, id uuid.UUID) error {
	plan, err := s.findPlan(ctx, tenantID, id)
	if err != nil {
		return err
	}
	return s.budgetRepo.DeleteForTenant(ctx, tenantID, plan.ID)
}

// UpdateActuals recomputes the actual figures of a plan from scratch:
// revenue from sales cashflows, expenses from expense cashflows per
// category, units from completed batches in the period. Repeated runs
// yield the same figures. Returns the variance report against the
// refreshed actuals.
func (s *BudgetService) UpdateActuals(ctx context.Context, tenantID, id uuid.UUID) (*finance.VarianceReport, error) {
	plan, err := s.findPlan(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	revenue, err := s.cashflowRepo.SumSalesRevenueInPeriod(ctx, tenantID, plan.PeriodStart, plan.PeriodEnd)
	if err != nil {
		return nil, err
	}

	expenses, err := s.cashflowRepo.SumExpensesByCategoryInPeriod(ctx, tenantID, plan.PeriodStart, plan.PeriodEnd)
	if err != nil {
		return nil, err
	}

	units, err := s.batchRepo.SumActualQuantityInPeriod(ctx, tenantID, plan.PeriodStart, plan.PeriodEnd)
	if err != nil {
		return nil, err
	}

	plan.SetActuals(finance.BudgetFigures{
		Revenue:          revenue,
		DirectMaterial:   expenses[finance.CategoryMaterialPurchase],
		DirectLabor:      expenses[finance.CategoryLaborPayment],
		FixedOverhead:    expenses[finance.CategoryOverheadFixed],
		VariableOverhead: expenses[finance.CategoryOverheadVariable],
		Units:            units,
	})

	if err := s.budgetRepo.SaveWithLock(ctx, plan); err != nil {
		return nil, err
	}

	s.logger.Info("budget actuals updated",
		zap.String("plan_id", plan.ID.String()),
		zap.String("revenue", revenue.String()))

	return plan.Variances(), nil
}

// GetVariances computes the variance report of a plan
func (s *BudgetService) GetVariances(ctx context.Context, tenantID, id uuid.UUID) (*finance.VarianceReport, error) {
	plan, err := s.findPlan(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return plan.Variances(), nil
}

// GetBreakEven computes the break-even analysis of a plan
func (s *BudgetService) GetBreakEven(ctx context.Context, tenantID, id uuid.UUID) (*finance.BreakEvenResult, error) {
	plan, err := s.findPlan(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return plan.BreakEven(), nil
}

func (s *BudgetService) findPlan(ctx context.Context, tenantID, id uuid.UUID) (*finance.BudgetPlan, error) {
	plan, err := s.budgetRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Budget plan not found")
	}
	return plan, nil
}

func toBudgetPlanResponse(plan *finance.BudgetPlan) *BudgetPlanResponse {
	return &BudgetPlanResponse{
		ID:          plan.ID,
		TenantID:    plan.TenantID,
		PlanName:    plan.PlanName,
		PeriodStart: plan.PeriodStart,
		PeriodEnd:   plan.PeriodEnd,
		Budgeted:    fromDomainFigures(plan.Budgeted),
		Actual:      fromDomainFigures(plan.Actual),
		Notes:       plan.Notes,
		CreatedAt:   plan.CreatedAt,
		UpdatedAt:   plan.UpdatedAt,
	}
}
