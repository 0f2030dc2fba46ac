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

// GormZakatRecordRepository implements ZakatRecordRepository using GORM
type GormZakatRecordRepository struct {
	db *gorm.DB
}

// NewGormZakatRecordRepository creates a new GormZakatRecordRepository
func NewGormZakatRecordRepository(db *gorm.DB) *GormZakatRecordRepository {
	return &GormZakatRecordRepository{db: db}
}

// FindByID finds a zakat record by its ID
func (r *GormZakatRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.ZakatRecord, error) {
	var model models.ZakatRecordModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds a zakat record by ID within a tenant
func (r *GormZakatRecordRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.ZakatRecord, error) {
	var model models.ZakatRecordModel
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

// FindAllForTenant finds all zakat records for a tenant, most recent
// calculation first
func (r *GormZakatRecordRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.ZakatRecordFilter) ([]finance.ZakatRecord, error) {
	var recordModels []models.ZakatRecordModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.ZakatRecordModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&recordModels).Error; err != nil {
		return nil, err
	}

	records := make([]finance.ZakatRecord, len(recordModels))
	for i, model := range recordModels {
		records[i] = *model.ToDomain()
	}
	return records, nil
}

// Save creates or updates a zakat record
func (r *GormZakatRecordRepository) Save(ctx context.Context, record *finance.ZakatRecord) error {
	model := models.ZakatRecordModelFromDomain(record)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves a zakat record with optimistic locking (version check)
func (r *GormZakatRecordRepository) SaveWithLock(ctx context.Context, record *finance.ZakatRecord) error {
	model := models.ZakatRecordModelFromDomain(record)
	result := r.db.WithContext(ctx).
		Model(&models.ZakatRecordModel{}).
		Where("id = ? AND tenant_id = ? AND version = ?", record.ID, record.TenantID, record.Version).
		Updates(map[string]interface{}{
			"calculation_date":     model.CalculationDate,
			"gregorian_year":       model.GregorianYear,
			"cash":                 model.Cash,
			"receivables":          model.Receivables,
			"inventory":            model.Inventory,
			"liabilities":          model.Liabilities,
			"zakatable_assets":     model.ZakatableAssets,
			"net_zakatable_assets": model.NetZakatableAssets,
			"nisab_threshold":      model.NisabThreshold,
			"zakat_rate":           model.ZakatRate,
			"is_above_nisab":       model.IsAboveNisab,
			"calculated_amount":    model.CalculatedAmount,
			"paid_amount":          model.PaidAmount,
			"remaining_amount":     model.RemainingAmount,
			"payment_date":         model.PaymentDate,
			"status":               model.Status,
			"notes":                model.Notes,
			"version":              record.Version + 1,
			"updated_at":           model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// DeleteForTenant soft deletes a zakat record within a tenant
func (r *GormZakatRecordRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ZakatRecordModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForTenant counts zakat records for a tenant
func (r *GormZakatRecordRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.ZakatRecordFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ZakatRecordModel{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormZakatRecordRepository) applyFilter(query *gorm.DB, filter finance.ZakatRecordFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ZakatRecordSortFields, "calculation_date")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormZakatRecordRepository) applyFilterWithoutPagination(query *gorm.DB, filter finance.ZakatRecordFilter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("notes ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.Year != nil {
		query = query.Where("gregorian_year = ?", *filter.Year)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	return query
}

// Ensure GormZakatRecordRepository implements ZakatRecordRepository
var _ finance.ZakatRecordRepository = (*GormZakatRecordRepository)(nil)
