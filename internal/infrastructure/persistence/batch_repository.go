package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mfg/backend/internal/domain/production"
	"github.com/mfg/backend/internal/domain/shared"
	"github.com/mfg/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormBatchRepository implements BatchRepository using GORM
type GormBatchRepository struct {
	db *gorm.DB
}

// NewGormBatchRepository creates a new GormBatchRepository
func NewGormBatchRepository(db *gorm.DB) *GormBatchRepository {
	return &GormBatchRepository{db: db}
}

// FindByID finds a batch by its ID
func (r *GormBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*production.Batch, error) {
	var model models.BatchModel
	if err := r.db.WithContext(ctx).
		Preload("DirectCosts").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds a batch by ID within a tenant, direct cost lines included
func (r *GormBatchRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*production.Batch, error) {
	var model models.BatchModel
	if err := r.db.WithContext(ctx).
		Preload("DirectCosts").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByBatchNumber finds a batch by its batch number within a tenant
func (r *GormBatchRepository) FindByBatchNumber(ctx context.Context, tenantID uuid.UUID, batchNumber string) (*production.Batch, error) {
	var model models.BatchModel
	if err := r.db.WithContext(ctx).
		Preload("DirectCosts").
		Where("tenant_id = ? AND batch_number = ?", tenantID, strings.ToUpper(batchNumber)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds all batches for a tenant with filtering
func (r *GormBatchRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter production.BatchFilter) ([]production.Batch, error) {
	var batchModels []models.BatchModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.BatchModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&batchModels).Error; err != nil {
		return nil, err
	}

	batches := make([]production.Batch, len(batchModels))
	for i, model := range batchModels {
		batches[i] = *model.ToDomain()
	}
	return batches, nil
}

// FindCompletedInPeriod finds completed batches whose completion date falls
// inside the given period
func (r *GormBatchRepository) FindCompletedInPeriod(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]production.Batch, error) {
	var batchModels []models.BatchModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status = ? AND completion_date >= ? AND completion_date <= ?",
			tenantID, production.BatchStatusCompleted, from, to).
		Order("completion_date ASC").
		Find(&batchModels).Error; err != nil {
		return nil, err
	}

	batches := make([]production.Batch, len(batchModels))
	for i, model := range batchModels {
		batches[i] = *model.ToDomain()
	}
	return batches, nil
}

// FindRecent finds the most recently updated batches for a tenant
func (r *GormBatchRepository) FindRecent(ctx context.Context, tenantID uuid.UUID, limit int) ([]production.Batch, error) {
	if limit <= 0 {
		return []production.Batch{}, nil
	}

	var batchModels []models.BatchModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("updated_at DESC").
		Limit(limit).
		Find(&batchModels).Error; err != nil {
		return nil, err
	}

	batches := make([]production.Batch, len(batchModels))
	for i, model := range batchModels {
		batches[i] = *model.ToDomain()
	}
	return batches, nil
}

// Save creates or updates a batch together with its direct cost lines
func (r *GormBatchRepository) Save(ctx context.Context, batch *production.Batch) error {
	model := models.BatchModelFromDomain(batch)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves a batch with optimistic locking (version check).
// New direct cost lines are upserted inside the same transaction.
func (r *GormBatchRepository) SaveWithLock(ctx context.Context, batch *production.Batch) error {
	model := models.BatchModelFromDomain(batch)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.BatchModel{}).
			Where("id = ? AND tenant_id = ? AND version = ?", batch.ID, batch.TenantID, batch.Version).
			Updates(map[string]interface{}{
				"batch_number":        model.BatchNumber,
				"product_id":          model.ProductID,
				"product_name":        model.ProductName,
				"product_sku":         model.ProductSKU,
				"lifecycle_stage":     model.LifecycleStage,
				"status":              model.Status,
				"planned_quantity":    model.PlannedQuantity,
				"actual_quantity":     model.ActualQuantity,
				"production_hours":    model.ProductionHours,
				"start_date":          model.StartDate,
				"completion_date":     model.CompletionDate,
				"total_material_cost": model.TotalMaterialCost,
				"total_labor_cost":    model.TotalLaborCost,
				"total_overhead_cost": model.TotalOverheadCost,
				"total_cost":          model.TotalCost,
				"cost_per_unit":       model.CostPerUnit,
				"notes":               model.Notes,
				"version":             batch.Version + 1,
				"updated_at":          model.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}

		if len(model.DirectCosts) > 0 {
			if err := tx.Save(&model.DirectCosts).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete soft deletes a batch within a tenant
func (r *GormBatchRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.BatchModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForTenant counts batches for a tenant
func (r *GormBatchRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter production.BatchFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.BatchModel{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumCostsForTenant sums the derived cost figures over all batches
func (r *GormBatchRepository) SumCostsForTenant(ctx context.Context, tenantID uuid.UUID) (*production.CostTotals, error) {
	var row struct {
		TotalCost    decimal.Decimal
		MaterialCost decimal.Decimal
		LaborCost    decimal.Decimal
		OverheadCost decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&models.BatchModel{}).
		Select("COALESCE(SUM(total_cost), 0) AS total_cost, " +
			"COALESCE(SUM(total_material_cost), 0) AS material_cost, " +
			"COALESCE(SUM(total_labor_cost), 0) AS labor_cost, " +
			"COALESCE(SUM(total_overhead_cost), 0) AS overhead_cost").
		Where("tenant_id = ?", tenantID).
		Scan(&row).Error; err != nil {
		return nil, err
	}
	return &production.CostTotals{
		TotalCost:    row.TotalCost,
		MaterialCost: row.MaterialCost,
		LaborCost:    row.LaborCost,
		OverheadCost: row.OverheadCost,
	}, nil
}

// SumActualQuantityInPeriod sums actual quantities of completed batches in the period
func (r *GormBatchRepository) SumActualQuantityInPeriod(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.db.WithContext(ctx).
		Model(&models.BatchModel{}).
		Select("COALESCE(SUM(actual_quantity), 0)").
		Where("tenant_id = ? AND status = ? AND completion_date >= ? AND completion_date <= ?",
			tenantID, production.BatchStatusCompleted, from, to).
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// GenerateBatchNumber generates a unique batch number for a tenant
// Format: BTH-YYYYMM-NNNNN (e.g., BTH-202608-00001)
func (r *GormBatchRepository) GenerateBatchNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	prefix := fmt.Sprintf("BTH-%s-", time.Now().Format("200601"))

	// Get the highest batch number for this month
	var lastBatch models.BatchModel
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND batch_number LIKE ?", tenantID, prefix+"%").
		Order("batch_number DESC").
		First(&lastBatch).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && lastBatch.BatchNumber != "" {
		parts := strings.Split(lastBatch.BatchNumber, "-")
		if len(parts) == 3 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	batchNumber := fmt.Sprintf("%s%05d", prefix, nextNum)

	// Verify uniqueness
	exists, err := r.existsByBatchNumber(ctx, tenantID, batchNumber)
	if err != nil {
		return "", err
	}
	if exists {
		for i := 0; i < 100; i++ {
			nextNum++
			batchNumber = fmt.Sprintf("%s%05d", prefix, nextNum)
			exists, err = r.existsByBatchNumber(ctx, tenantID, batchNumber)
			if err != nil {
				return "", err
			}
			if !exists {
				break
			}
		}
		if exists {
			return "", shared.NewDomainError("NUMBER_GENERATION_FAILED", "Unable to generate a unique batch number")
		}
	}

	return batchNumber, nil
}

func (r *GormBatchRepository) existsByBatchNumber(ctx context.Context, tenantID uuid.UUID, batchNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.BatchModel{}).
		Where("tenant_id = ? AND batch_number = ?", tenantID, batchNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormBatchRepository) applyFilter(query *gorm.DB, filter production.BatchFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, BatchSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormBatchRepository) applyFilterWithoutPagination(query *gorm.DB, filter production.BatchFilter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("batch_number ILIKE ? OR product_name ILIKE ? OR product_sku ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.FromDate != nil {
		query = query.Where("completion_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("completion_date <= ?", *filter.ToDate)
	}
	return query
}

// Ensure GormBatchRepository implements BatchRepository
var _ production.BatchRepository = (*GormBatchRepository)(nil)
