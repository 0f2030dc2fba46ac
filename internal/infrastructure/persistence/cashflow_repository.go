package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mfg/backend/internal/domain/finance"
	"github.com/mfg/backend/internal/domain/shared"
	"github.com/mfg/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormCashflowRepository implements CashflowRepository using GORM
type GormCashflowRepository struct {
	db *gorm.DB
}

// NewGormCashflowRepository creates a new GormCashflowRepository
func NewGormCashflowRepository(db *gorm.DB) *GormCashflowRepository {
	return &GormCashflowRepository{db: db}
}

// FindByID finds a cashflow entry by its ID
func (r *GormCashflowRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Cashflow, error) {
	var model models.CashflowModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds a cashflow entry by ID within a tenant
func (r *GormCashflowRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.Cashflow, error) {
	var model models.CashflowModel
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

// FindAllForTenant finds all cashflow entries for a tenant with filtering
func (r *GormCashflowRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.CashflowFilter) ([]finance.Cashflow, error) {
	var cashflowModels []models.CashflowModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.CashflowModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&cashflowModels).Error; err != nil {
		return nil, err
	}

	entries := make([]finance.Cashflow, len(cashflowModels))
	for i, model := range cashflowModels {
		entries[i] = *model.ToDomain()
	}
	return entries, nil
}

// Save creates or updates a cashflow entry
func (r *GormCashflowRepository) Save(ctx context.Context, cf *finance.Cashflow) error {
	model := models.CashflowModelFromDomain(cf)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves a cashflow entry with optimistic locking (version check)
func (r *GormCashflowRepository) SaveWithLock(ctx context.Context, cf *finance.Cashflow) error {
	model := models.CashflowModelFromDomain(cf)
	result := r.db.WithContext(ctx).
		Model(&models.CashflowModel{}).
		Where("id = ? AND tenant_id = ? AND version = ?", cf.ID, cf.TenantID, cf.Version).
		Updates(map[string]interface{}{
			"transaction_date": model.TransactionDate,
			"type":             model.Type,
			"category":         model.Category,
			"description":      model.Description,
			"amount":           model.Amount,
			"payment_method":   model.PaymentMethod,
			"owner_id":         model.OwnerID,
			"customer_name":    model.CustomerName,
			"invoice_number":   model.InvoiceNumber,
			"is_paid":          model.IsPaid,
			"version":          cf.Version + 1,
			"updated_at":       model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// DeleteForTenant soft deletes a cashflow entry within a tenant
func (r *GormCashflowRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CashflowModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForTenant counts cashflow entries for a tenant
func (r *GormCashflowRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.CashflowFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.CashflowModel{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumByTypeAsOf sums entry amounts of a flow type dated on or before the
// given time. A nil asOf means no upper bound.
func (r *GormCashflowRepository) SumByTypeAsOf(ctx context.Context, tenantID uuid.UUID, flowType finance.CashflowType, asOf *time.Time) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).
		Model(&models.CashflowModel{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("tenant_id = ? AND type = ?", tenantID, flowType)
	if asOf != nil {
		query = query.Where("transaction_date <= ?", *asOf)
	}

	var total decimal.Decimal
	if err := query.Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// SumOwnerInvestment sums all owner investment entries of one owner
func (r *GormCashflowRepository) SumOwnerInvestment(ctx context.Context, tenantID, ownerID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.db.WithContext(ctx).
		Model(&models.CashflowModel{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("tenant_id = ? AND owner_id = ? AND type = ?",
			tenantID, ownerID, finance.CashflowTypeOwnerInvestment).
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// SumSalesRevenueInPeriod sums revenue entries in the sales category inside
// the given period
func (r *GormCashflowRepository) SumSalesRevenueInPeriod(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.db.WithContext(ctx).
		Model(&models.CashflowModel{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("tenant_id = ? AND type = ? AND category = ? AND transaction_date >= ? AND transaction_date <= ?",
			tenantID, finance.CashflowTypeRevenue, finance.CategorySales, from, to).
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// SumExpensesByCategoryInPeriod sums expense entries per category inside the
// given period
func (r *GormCashflowRepository) SumExpensesByCategoryInPeriod(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (map[finance.CashflowCategory]decimal.Decimal, error) {
	var rows []struct {
		Category string
		Total    decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&models.CashflowModel{}).
		Select("category, COALESCE(SUM(amount), 0) AS total").
		Where("tenant_id = ? AND type = ? AND transaction_date >= ? AND transaction_date <= ?",
			tenantID, finance.CashflowTypeExpense, from, to).
		Group("category").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	totals := make(map[finance.CashflowCategory]decimal.Decimal, len(rows))
	for _, row := range rows {
		totals[finance.CashflowCategory(row.Category)] = row.Total
	}
	return totals, nil
}

// SumUnpaidExpensesAsOf sums unsettled expense entries dated on or before
// the given time
func (r *GormCashflowRepository) SumUnpaidExpensesAsOf(ctx context.Context, tenantID uuid.UUID, asOf time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.db.WithContext(ctx).
		Model(&models.CashflowModel{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("tenant_id = ? AND type = ? AND is_paid = ? AND transaction_date <= ?",
			tenantID, finance.CashflowTypeExpense, false, asOf).
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// applyFilter applies filter options to the query
func (r *GormCashflowRepository) applyFilter(query *gorm.DB, filter finance.CashflowFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, CashflowSortFields, "transaction_date")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormCashflowRepository) applyFilterWithoutPagination(query *gorm.DB, filter finance.CashflowFilter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("description ILIKE ? OR customer_name ILIKE ? OR invoice_number ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}
	if filter.FromDate != nil {
		query = query.Where("transaction_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("transaction_date <= ?", *filter.ToDate)
	}
	if filter.IsPaid != nil {
		query = query.Where("is_paid = ?", *filter.IsPaid)
	}
	return query
}

// Ensure GormCashflowRepository implements CashflowRepository
var _ finance.CashflowRepository = (*GormCashflowRepository)(nil)
