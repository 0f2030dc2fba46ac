package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mfg/backend/internal/domain/finance"
	"github.com/mfg/backend/internal/domain/shared"
	"github.com/mfg/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormBudgetPlanRepository implements BudgetPlanRepository using GORM
type GormBudgetPlanRepository struct {
	db *gorm.DB
}

// NewGormBudgetPlanRepository creates a new GormBudgetPlanRepository
func NewGormBudgetPlanRepository(db *gorm.DB) *GormBudgetPlanRepository {
	return &GormBudgetPlanRepository{db: db}
}

// FindByID finds a budget plan by its ID
func (r *GormBudgetPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.BudgetPlan, error) {
	var model models.BudgetPlanModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds a budget plan by ID within a tenant
func (r *GormBudgetPlanRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.BudgetPlan, error) {
	var model models.BudgetPlanModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds all budget plans for a tenant with filtering
func (r *GormBudgetPlanRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.BudgetPlanFilter) ([]finance.BudgetPlan, error) {
	var planModels []models.BudgetPlanModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.BudgetPlanModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&planModels).Error; err != nil {
		return nil, err
	}

	plans := make([]finance.BudgetPlan, len(planModels))
	for i, model := range planModels {
		plans[i] = *model.ToDomain()
	}
	return plans, nil
}

// Save creates or updates a budget plan
func (r *GormBudgetPlanRepository) Save(ctx context.Context, plan *finance.BudgetPlan) error {
	model := models.BudgetPlanModelFromDomain(plan)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves a budget plan with optimistic locking (version check)
func (r *GormBudgetPlanRepository) SaveWithLock(ctx context.Context, plan *finance.BudgetPlan) error {
	model := models.BudgetPlanModelFromDomain(plan)
	result := r.db.WithContext(ctx).
		Model(&models.BudgetPlanModel{}).
		Where("id = ? AND tenant_id = ? AND version = ?", plan.ID, plan.TenantID, plan.Version).
		Updates(map[string]interface{}{
			"plan_name":                  model.PlanName,
			"period_start":               model.PeriodStart,
			"period_end":                 model.PeriodEnd,
			"budgeted_revenue":           model.Budgeted.Revenue,
			"budgeted_direct_material":   model.Budgeted.DirectMaterial,
			"budgeted_direct_labor":      model.Budgeted.DirectLabor,
			"budgeted_fixed_overhead":    model.Budgeted.FixedOverhead,
			"budgeted_variable_overhead": model.Budgeted.VariableOverhead,
			"budgeted_units":             model.Budgeted.Units,
			"actual_revenue":             model.Actual.Revenue,
			"actual_direct_material":     model.Actual.DirectMaterial,
			"actual_direct_labor":        model.Actual.DirectLabor,
			"actual_fixed_overhead":      model.Actual.FixedOverhead,
			"actual_variable_overhead":   model.Actual.VariableOverhead,
			"actual_units":               model.Actual.Units,
			"notes":                      model.Notes,
			"version":                    plan.Version + 1,
			"updated_at":                 model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// DeleteForTenant soft deletes a budget plan within a tenant
func (r *GormBudgetPlanRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.BudgetPlanModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForTenant counts budget plans for a tenant
func (r *GormBudgetPlanRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.BudgetPlanFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.BudgetPlanModel{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormBudgetPlanRepository) applyFilter(query *gorm.DB, filter finance.BudgetPlanFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, BudgetPlanSortFields, "period_start")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormBudgetPlanRepository) applyFilterWithoutPagination(query *gorm.DB, filter finance.BudgetPlanFilter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("plan_name ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.ActiveAt != nil {
		query = query.Where("period_start <= ? AND period_end >= ?", *filter.ActiveAt, *filter.ActiveAt)
	}
	return query
}

// Ensure GormBudgetPlanRepository implements BudgetPlanRepository
var _ finance.BudgetPlanRepository = (*GormBudgetPlanRepository)(nil)
