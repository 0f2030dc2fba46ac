package production

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mfg/backend/internal/domain/production"
	"github.com/mfg/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OverheadRateService provides application-level overhead rate operations
type OverheadRateService struct {
	overheadRepo production.OverheadRateRepository
}

// NewOverheadRateService creates a new OverheadRateService
func NewOverheadRateService(overheadRepo production.OverheadRateRepository) *OverheadRateService {
	return &OverheadRateService{overheadRepo: overheadRepo}
}

// OverheadRateResponse represents an overhead rate in API responses
type OverheadRateResponse struct {
	ID              uuid.UUID       `json:"id"`
	TenantID        uuid.UUID       `json:"tenant_id"`
	Name            string          `json:"name"`
	RatePerUnit     decimal.Decimal `json:"rate_per_unit"`
	RatePerHour     decimal.Decimal `json:"rate_per_hour"`
	ApplicableStage string          `json:"applicable_stage"`
	IsActive        bool            `json:"is_active"`
	EffectiveFrom   time.Time       `json:"effective_from"`
	EffectiveTo     *time.Time      `json:"effective_to,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// CreateOverheadRateRequest represents a request to create an overhead rate
type CreateOverheadRateRequest struct {
	Name            string          `json:"name" binding:"required"`
	RatePerUnit     decimal.Decimal `json:"rate_per_unit"`
	RatePerHour     decimal.Decimal `json:"rate_per_hour"`
	ApplicableStage string          `json:"applicable_stage" binding:"required"`
	EffectiveFrom   time.Time       `json:"effective_from" binding:"required"`
	EffectiveTo     *time.Time      `json:"effective_to"`
}

// OverheadRateListFilter defines filtering options for overhead rate queries
type OverheadRateListFilter struct {
	Stage    string `form:"stage"`
	IsActive *bool  `form:"is_active"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// CreateOverheadRate creates a new overhead rate
func (s *OverheadRateService) CreateOverheadRate(ctx context.Context, tenantID uuid.UUID, req CreateOverheadRateRequest) (*OverheadRateResponse, error) {
	rate, err := production.NewOverheadRate(
		tenantID,
		req.Name,
		req.RatePerUnit,
		req.RatePerHour,
		production.OverheadStage(req.ApplicableStage),
		req.EffectiveFrom,
		req.EffectiveTo,
	)
	if err != nil {
		return nil, err
	}

	if err := s.overheadRepo.Save(ctx, rate); err != nil {
		return nil, err
	}
	return toOverheadRateResponse(rate), nil
}

// GetOverheadRateByID gets an overhead rate by ID
func (s *OverheadRateService) GetOverheadRateByID(ctx context.Context, tenantID, id uuid.UUID) (*OverheadRateResponse, error) {
	rate, err := s.overheadRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if rate == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Overhead rate not found")
	}
	return toOverheadRateResponse(rate), nil
}

// ListOverheadRates lists overhead rates with filtering
func (s *OverheadRateService) ListOverheadRates(ctx context.Context, tenantID uuid.UUID, filter OverheadRateListFilter) ([]OverheadRateResponse, int64, error) {
	domainFilter := production.OverheadRateFilter{
		IsActive: filter.IsActive,
	}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize

	if filter.Stage != "" {
		stage := production.OverheadStage(filter.Stage)
		domainFilter.Stage = &stage
	}

	rates, err := s.overheadRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.overheadRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]OverheadRateResponse, len(rates))
	for i, r := range rates {
		responses[i] = *toOverheadRateResponse(&r)
	}
	return responses, total, nil
}

// DeactivateOverheadRate retires an overhead rate
func (s *OverheadRateService) DeactivateOverheadRate(ctx context.Context, tenantID, id uuid.UUID) (*OverheadRateResponse, error) {
	rate, err := s.overheadRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if rate == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Overhead rate not found")
	}

	rate.Deactivate()
	if err := s.overheadRepo.Save(ctx, rate); err != nil {
		return nil, err
	}
	return toOverheadRateResponse(rate), nil
}

func toOverheadRateResponse(rate *production.OverheadRate) *OverheadRateResponse {
	return &OverheadRateResponse{
		ID:              rate.ID,
		TenantID:        rate.TenantID,
		Name:            rate.Name,
		RatePerUnit:     rate.RatePerUnit,
		RatePerHour:     rate.RatePerHour,
		ApplicableStage: rate.ApplicableStage.String(),
		IsActive:        rate.IsActive,
		EffectiveFrom:   rate.EffectiveFrom,
		EffectiveTo:     rate.EffectiveTo,
		CreatedAt:       rate.CreatedAt,
		UpdatedAt:       rate.UpdatedAt,
	}
}
