package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mfg/backend/internal/domain/sales"
	"github.com/mfg/backend/internal/domain/shared"
	"github.com/mfg/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormSaleRepository implements SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByID finds a sale by its ID
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	var model models.SaleModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds a sale by ID within a tenant
func (r *GormSaleRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*sales.Sale, error) {
	var model models.SaleModel
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

// FindAllForTenant finds all sales for a tenant with filtering
func (r *GormSaleRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter sales.SaleFilter) ([]sales.Sale, error) {
	var saleModels []models.SaleModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.SaleModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&saleModels).Error; err != nil {
		return nil, err
	}

	found := make([]sales.Sale, len(saleModels))
	for i, model := range saleModels {
		found[i] = *model.ToDomain()
	}
	return found, nil
}

// Save creates or updates a sale
func (r *GormSaleRepository) Save(ctx context.Context, sale *sales.Sale) error {
	model := models.SaleModelFromDomain(sale)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves a sale with optimistic locking (version check)
func (r *GormSaleRepository) SaveWithLock(ctx context.Context, sale *sales.Sale) error {
	model := models.SaleModelFromDomain(sale)
	result := r.db.WithContext(ctx).
		Model(&models.SaleModel{}).
		Where("id = ? AND tenant_id = ? AND version = ?", sale.ID, sale.TenantID, sale.Version).
		Updates(map[string]interface{}{
			"sale_number":            model.SaleNumber,
			"invoice_number":         model.InvoiceNumber,
			"customer_name":          model.CustomerName,
			"product_id":             model.ProductID,
			"product_name":           model.ProductName,
			"batch_id":               model.BatchID,
			"sale_date":              model.SaleDate,
			"quantity":               model.Quantity,
			"selling_price_per_unit": model.SellingPricePerUnit,
			"total_revenue":          model.TotalRevenue,
			"cost_per_unit":          model.CostPerUnit,
			"total_cogs":             model.TotalCOGS,
			"gross_profit":           model.GrossProfit,
			"gross_margin_percent":   model.GrossMarginPercent,
			"amount_paid":            model.AmountPaid,
			"amount_due":             model.AmountDue,
			"payment_status":         model.PaymentStatus,
			"payment_method":         model.PaymentMethod,
			"notes":                  model.Notes,
			"version":                sale.Version + 1,
			"updated_at":             model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete soft deletes a sale within a tenant
func (r *GormSaleRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.SaleModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForTenant counts sales for a tenant
func (r *GormSaleRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter sales.SaleFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.SaleModel{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Summarize aggregates sales figures over a period. The average margin is
// revenue-weighted, not a mean of per-sale percentages.
func (r *GormSaleRepository) Summarize(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (*sales.SalesSummary, error) {
	var row struct {
		SaleCount        int64
		TotalQuantity    decimal.Decimal
		TotalRevenue     decimal.Decimal
		TotalCOGS        decimal.Decimal
		TotalGrossProfit decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&models.SaleModel{}).
		Select("COUNT(*) AS sale_count, "+
			"COALESCE(SUM(quantity), 0) AS total_quantity, "+
			"COALESCE(SUM(total_revenue), 0) AS total_revenue, "+
			"COALESCE(SUM(total_cogs), 0) AS total_cogs, "+
			"COALESCE(SUM(gross_profit), 0) AS total_gross_profit").
		Where("tenant_id = ? AND sale_date >= ? AND sale_date <= ?", tenantID, from, to).
		Scan(&row).Error; err != nil {
		return nil, err
	}

	summary := &sales.SalesSummary{
		SaleCount:        row.SaleCount,
		TotalQuantity:    row.TotalQuantity,
		TotalRevenue:     row.TotalRevenue,
		TotalCOGS:        row.TotalCOGS,
		TotalGrossProfit: row.TotalGrossProfit,
	}
	if row.TotalRevenue.IsPositive() {
		summary.AverageMarginPercent = row.TotalGrossProfit.
			Div(row.TotalRevenue).
			Mul(decimal.NewFromInt(100)).
			Round(4)
	}
	return summary, nil
}

// SumOutstandingAsOf sums amount due over pending and partial sales dated on
// or before the given time
func (r *GormSaleRepository) SumOutstandingAsOf(ctx context.Context, tenantID uuid.UUID, asOf time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.db.WithContext(ctx).
		Model(&models.SaleModel{}).
		Select("COALESCE(SUM(amount_due), 0)").
		Where("tenant_id = ? AND sale_date <= ? AND payment_status IN ?",
			tenantID, asOf, []string{sales.PaymentStatusPending.String(), sales.PaymentStatusPartial.String()}).
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// GenerateSaleNumber generates a unique sale number for a tenant
// Format: SL-YYYYMM-NNNNN (e.g., SL-202608-00001)
func (r *GormSaleRepository) GenerateSaleNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	prefix := fmt.Sprintf("SL-%s-", time.Now().Format("200601"))

	// Get the highest sale number for this month
	var lastSale models.SaleModel
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND sale_number LIKE ?", tenantID, prefix+"%").
		Order("sale_number DESC").
		First(&lastSale).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && lastSale.SaleNumber != "" {
		parts := strings.Split(lastSale.SaleNumber, "-")
		if len(parts) == 3 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	saleNumber := fmt.Sprintf("%s%05d", prefix, nextNum)

	// Verify uniqueness
	exists, err := r.existsBySaleNumber(ctx, tenantID, saleNumber)
	if err != nil {
		return "", err
	}
	if exists {
		for i := 0; i < 100; i++ {
			nextNum++
			saleNumber = fmt.Sprintf("%s%05d", prefix, nextNum)
			exists, err = r.existsBySaleNumber(ctx, tenantID, saleNumber)
			if err != nil {
				return "", err
			}
			if !exists {
				break
			}
		}
		if exists {
			return "", shared.NewDomainError("NUMBER_GENERATION_FAILED", "Unable to generate a unique sale number")
		}
	}

	return saleNumber, nil
}

func (r *GormSaleRepository) existsBySaleNumber(ctx context.Context, tenantID uuid.UUID, saleNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SaleModel{}).
		Where("tenant_id = ? AND sale_number = ?", tenantID, saleNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormSaleRepository) applyFilter(query *gorm.DB, filter sales.SaleFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, SaleSortFields, "sale_date")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormSaleRepository) applyFilterWithoutPagination(query *gorm.DB, filter sales.SaleFilter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("sale_number ILIKE ? OR invoice_number ILIKE ? OR customer_name ILIKE ? OR product_name ILIKE ?",
			searchPattern, searchPattern, searchPattern, searchPattern)
	}
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.BatchID != nil {
		query = query.Where("batch_id = ?", *filter.BatchID)
	}
	if filter.PaymentStatus != nil {
		query = query.Where("payment_status = ?", *filter.PaymentStatus)
	}
	if filter.FromDate != nil {
		query = query.Where("sale_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("sale_date <= ?", *filter.ToDate)
	}
	return query
}

// Ensure GormSaleRepository implements SaleRepository
var _ sales.SaleRepository = (*GormSaleRepository)(nil)
