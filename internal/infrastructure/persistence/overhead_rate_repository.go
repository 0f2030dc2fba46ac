package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mfg/backend/internal/domain/production"
	"github.com/mfg/backend/internal/domain/shared"
	"github.com/mfg/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOverheadRateRepository implements OverheadRateRepository using GORM
type GormOverheadRateRepository struct {
	db *gorm.DB
}

// NewGormOverheadRateRepository creates a new GormOverheadRateRepository
func NewGormOverheadRateRepository(db *gorm.DB) *GormOverheadRateRepository {
	return &GormOverheadRateRepository{db: db}
}

// FindByID finds an overhead rate by its ID
func (r *GormOverheadRateRepository) FindByID(ctx context.Context, id uuid.UUID) (*production.OverheadRate, error) {
	var model models.OverheadRateModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds an overhead rate by ID within a tenant
func (r *GormOverheadRateRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*production.OverheadRate, error) {
	var model models.OverheadRateModel
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

// FindAllForTenant finds all overhead rates for a tenant with filtering
func (r *GormOverheadRateRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter production.OverheadRateFilter) ([]production.OverheadRate, error) {
	var rateModels []models.OverheadRateModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.OverheadRateModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&rateModels).Error; err != nil {
		return nil, err
	}

	rates := make([]production.OverheadRate, len(rateModels))
	for i, model := range rateModels {
		rates[i] = *model.ToDomain()
	}
	return rates, nil
}

// FindBestEffectiveRate finds the applicable rate for a stage at a point in
// time: active, effective window covering the time, stage matching the given
// stage or "all", highest rate-per-unit wins
func (r *GormOverheadRateRepository) FindBestEffectiveRate(ctx context.Context, tenantID uuid.UUID, stage production.LifecycleStage, at time.Time) (*production.OverheadRate, error) {
	var model models.OverheadRateModel
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND is_active = ?", tenantID, true).
		Where("applicable_stage IN ?", []string{stage.String(), production.OverheadStageAll.String()}).
		Where("effective_from <= ?", at).
		Where("effective_to IS NULL OR effective_to >= ?", at).
		Order("rate_per_unit DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates an overhead rate
func (r *GormOverheadRateRepository) Save(ctx context.Context, rate *production.OverheadRate) error {
	model := models.OverheadRateModelFromDomain(rate)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete soft deletes an overhead rate within a tenant
func (r *GormOverheadRateRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.OverheadRateModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForTenant counts overhead rates for a tenant
func (r *GormOverheadRateRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter production.OverheadRateFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.OverheadRateModel{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormOverheadRateRepository) applyFilter(query *gorm.DB, filter production.OverheadRateFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, OverheadRateSortFields, "effective_from")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormOverheadRateRepository) applyFilterWithoutPagination(query *gorm.DB, filter production.OverheadRateFilter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.Stage != nil {
		query = query.Where("applicable_stage = ?", *filter.Stage)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	return query
}

// Ensure GormOverheadRateRepository implements OverheadRateRepository
var _ production.OverheadRateRepository = (*GormOverheadRateRepository)(nil)
