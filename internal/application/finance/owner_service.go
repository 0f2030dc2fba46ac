package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mfg/backend/internal/domain/finance"
	"github.com/mfg/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OwnerService provides application-level owner operations
type OwnerService struct {
	ownerRepo finance.OwnerRepository
	logger    *zap.Logger
}

// NewOwnerService creates a new OwnerService
func NewOwnerService(ownerRepo finance.OwnerRepository, logger *zap.Logger) *OwnerService {
	return &OwnerService{
		ownerRepo: ownerRepo,
		logger:    logger,
	}
}

// OwnerResponse represents an owner in API responses
type OwnerResponse struct {
	ID              uuid.UUID       `json:"id"`
	TenantID        uuid.UUID       `json:"tenant_id"`
	OwnerName       string          `json:"owner_name"`
	Email           string          `json:"email,omitempty"`
	Phone           string          `json:"phone,omitempty"`
	TotalInvestment decimal.Decimal `json:"total_investment"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// CreateOwnerRequest represents a request to register an owner
type CreateOwnerRequest struct {
	OwnerName string `json:"owner_name" binding:"required"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// UpdateOwnerRequest represents a request to update owner details
type UpdateOwnerRequest struct {
	OwnerName string `json:"owner_name" binding:"required"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// OwnerListFilter defines filtering options for owner list queries
type OwnerListFilter struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

// CreateOwner registers a new owner
func (s *OwnerService) CreateOwner(ctx context.Context, tenantID uuid.UUID, req CreateOwnerRequest) (*OwnerResponse, error) {
	owner, err := finance.NewOwner(tenantID, req.OwnerName)
	if err != nil {
		return nil, err
	}
	owner.SetContact(req.Email, req.Phone)

	if err := s.ownerRepo.Save(ctx, owner); err != nil {
		return nil, err
	}
	return toOwnerResponse(owner), nil
}

// GetOwnerByID gets an owner by ID
func (s *OwnerService) GetOwnerByID(ctx context.Context, tenantID, id uuid.UUID) (*OwnerResponse, error) {
	owner, err := s.ownerRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Owner not found")
	}
	return toOwnerResponse(owner), nil
}

// ListOwners lists owners
func (s *OwnerService) ListOwners(ctx context.Context, tenantID uuid.UUID, filter OwnerListFilter) ([]OwnerResponse, int64, error) {
	domainFilter := finance.OwnerFilter{}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize

	owners, err := s.ownerRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.ownerRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]OwnerResponse, len(owners))
	for i, owner := range owners {
		responses[i] = *toOwnerResponse(&owner)
	}
	return responses, total, nil
}

// UpdateOwner updates owner details. The total investment is derived and
// cannot be set here.
func (s *OwnerService) UpdateOwner(ctx context.Context, tenantID, id uuid.UUID, req UpdateOwnerRequest) (*OwnerResponse, error) {
	owner, err := s.ownerRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Owner not found")
	}

	if req.OwnerName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Owner name cannot be empty")
	}
	owner.OwnerName = req.OwnerName
	owner.SetContact(req.Email, req.Phone)

	if err := s.ownerRepo.Save(ctx, owner); err != nil {
		return nil, err
	}
	return toOwnerResponse(owner), nil
}

// DeleteOwner removes an owner
func (s *OwnerService) DeleteOwner(ctx context.Context, tenantID, id uuid.UUID) error {
	owner, err := s.ownerRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if owner == nil {
		return shared.NewDomainError("NOT_FOUND", "Owner not found")
	}
	return s.ownerRepo.DeleteForTenant(ctx, tenantID, id)
}

// RecalculateInvestment forces a rescan of the owner's investment cashflows
func (s *OwnerService) RecalculateInvestment(ctx context.Context, tenantID, id uuid.UUID) (*OwnerResponse, error) {
	owner, err := s.ownerRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Owner not found")
	}

	total, err := s.ownerRepo.RecalculateTotalInvestment(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	owner.TotalInvestment = total

	s.logger.Info("owner investment recalculated",
		zap.String("owner_id", id.String()),
		zap.String("total", total.String()))

	return toOwnerResponse(owner), nil
}

func toOwnerResponse(owner *finance.Owner) *OwnerResponse {
	return &OwnerResponse{
		ID:              owner.ID,
		TenantID:        owner.TenantID,
		OwnerName:       owner.OwnerName,
		Email:           owner.Email,
		Phone:           owner.Phone,
		TotalInvestment: owner.TotalInvestment,
		CreatedAt:       owner.CreatedAt,
		UpdatedAt:       owner.UpdatedAt,
	}
}
