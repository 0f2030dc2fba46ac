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
	"gorm.io/gorm/clause"
)

// GormOwnerRepository implements OwnerRepository using GORM
type GormOwnerRepository struct {
	db *gorm.DB
}

// NewGormOwnerRepository creates a new GormOwnerRepository
func NewGormOwnerRepository(db *gorm.DB) *GormOwnerRepository {
	return &GormOwnerRepository{db: db}
}

// FindByID finds an owner by its ID
func (r *GormOwnerRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Owner, error) {
	var model models.OwnerModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds an owner by ID within a tenant
func (r *GormOwnerRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.Owner, error) {
	var model models.OwnerModel
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

// FindAllForTenant finds all owners for a tenant with filtering
func (r *GormOwnerRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.OwnerFilter) ([]finance.Owner, error) {
	var ownerModels []models.OwnerModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.OwnerModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&ownerModels).Error; err != nil {
		return nil, err
	}

	owners := make([]finance.Owner, len(ownerModels))
	for i, model := range ownerModels {
		owners[i] = *model.ToDomain()
	}
	return owners, nil
}

// Save creates or updates an owner
func (r *GormOwnerRepository) Save(ctx context.Context, owner *finance.Owner) error {
	model := models.OwnerModelFromDomain(owner)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteForTenant soft deletes an owner within a tenant
func (r *GormOwnerRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.OwnerModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForTenant counts owners for a tenant
func (r *GormOwnerRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.OwnerFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.OwnerModel{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// RecalculateTotalInvestment overwrites the owner's total investment with
// the sum of the owner's investment cashflows. The owner row is locked for
// the duration of the transaction so concurrent recalculations serialize.
func (r *GormOwnerRepository) RecalculateTotalInvestment(ctx context.Context, tenantID, ownerID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ownerModel models.OwnerModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("tenant_id = ? AND id = ?", tenantID, ownerID).
			First(&ownerModel).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		if err := tx.Model(&models.CashflowModel{}).
			Select("COALESCE(SUM(amount), 0)").
			Where("tenant_id = ? AND owner_id = ? AND type = ?",
				tenantID, ownerID, finance.CashflowTypeOwnerInvestment).
			Scan(&total).Error; err != nil {
			return err
		}

		return tx.Model(&models.OwnerModel{}).
			Where("tenant_id = ? AND id = ?", tenantID, ownerID).
			Updates(map[string]interface{}{
				"total_investment": total,
				"updated_at":       time.Now(),
			}).Error
	})
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// applyFilter applies filter options to the query
func (r *GormOwnerRepository) applyFilter(query *gorm.DB, filter finance.OwnerFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, OwnerSortFields, "owner_name")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormOwnerRepository) applyFilterWithoutPagination(query *gorm.DB, filter finance.OwnerFilter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("owner_name ILIKE ? OR email ILIKE ? OR phone ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}
	return query
}

// Ensure GormOwnerRepository implements OwnerRepository
var _ finance.OwnerRepository = (*GormOwnerRepository)(nil)
