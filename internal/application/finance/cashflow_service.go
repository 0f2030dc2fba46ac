package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mfg/backend/internal/domain/finance"
	"github.com/mfg/backend/internal/domain/shared"
	"github.com/mfg/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CashflowService provides application-level cashflow operations
type CashflowService struct {
	cashflowRepo finance.CashflowRepository
	eventBus     shared.EventBus
	logger       *zap.Logger
}

// NewCashflowService creates a new CashflowService
func NewCashflowService(
	cashflowRepo finance.CashflowRepository,
	eventBus shared.EventBus,
	logger *zap.Logger,
) *CashflowService {
	return &CashflowService{
		cashflowRepo: cashflowRepo,
		eventBus:     eventBus,
		logger:       logger,
	}
}

// CashflowResponse represents a cashflow entry in API responses
type CashflowResponse struct {
	ID              uuid.UUID       `json:"id"`
	TenantID        uuid.UUID       `json:"tenant_id"`
	TransactionDate time.Time       `json:"transaction_date"`
	Type            string          `json:"type"`
	Category        string          `json:"category"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentMethod   string          `json:"payment_method"`
	OwnerID         *uuid.UUID      `json:"owner_id,omitempty"`
	CustomerName    string          `json:"customer_name,omitempty"`
	InvoiceNumber   string          `json:"invoice_number,omitempty"`
	IsPaid          bool            `json:"is_paid"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// CreateCashflowRequest represents a request to record a cashflow entry
type CreateCashflowRequest struct {
	TransactionDate time.Time       `json:"transaction_date" binding:"required"`
	Type            string          `json:"type" binding:"required"`
	Category        string          `json:"category" binding:"required"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethod   string          `json:"payment_method"`
	OwnerID         *uuid.UUID      `json:"owner_id"`
}

// UpdateCashflowRequest represents a request to modify a cashflow entry
type UpdateCashflowRequest struct {
	TransactionDate time.Time       `json:"transaction_date" binding:"required"`
	Type            string          `json:"type" binding:"required"`
	Category        string          `json:"category" binding:"required"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethod   string          `json:"payment_method"`
	OwnerID         *uuid.UUID      `json:"owner_id"`
}

// CashflowListFilter defines filtering options for cashflow list queries
type CashflowListFilter struct {
	Type     string     `form:"type"`
	Category string     `form:"category"`
	OwnerID  *uuid.UUID `form:"owner_id"`
	FromDate *time.Time `form:"from_date"`
	ToDate   *time.Time `form:"to_date"`
	IsPaid   *bool      `form:"is_paid"`
	Page     int        `form:"page"`
	PageSize int        `form:"page_size"`
}

// CreateCashflow records a new cashflow entry
func (s *CashflowService) CreateCashflow(ctx context.Context, tenantID uuid.UUID, req CreateCashflowRequest) (*CashflowResponse, error) {
	cf, err := finance.NewCashflow(
		tenantID,
		req.TransactionDate,
		finance.CashflowType(req.Type),
		finance.CashflowCategory(req.Category),
		req.Description,
		valueobject.NewMoneyMYR(req.Amount),
		finance.PaymentMethod(req.PaymentMethod),
		req.OwnerID,
	)
	if err != nil {
		return nil, err
	}

	if err := s.cashflowRepo.Save(ctx, cf); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, cf)

	s.logger.Info("cashflow recorded",
		zap.String("type", cf.Type.String()),
		zap.String("amount", cf.Amount.String()))

	return toCashflowResponse(cf), nil
}

// GetCashflowByID gets a cashflow entry by ID
func (s *CashflowService) GetCashflowByID(ctx context.Context, tenantID, id uuid.UUID) (*CashflowResponse, error) {
	cf, err := s.cashflowRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if cf == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Cashflow entry not found")
	}
	return toCashflowResponse(cf), nil
}

// ListCashflows lists cashflow entries with filtering
func (s *CashflowService) ListCashflows(ctx context.Context, tenantID uuid.UUID, filter CashflowListFilter) ([]CashflowResponse, int64, error) {
	domainFilter := finance.CashflowFilter{
		OwnerID:  filter.OwnerID,
		FromDate: filter.FromDate,
		ToDate:   filter.ToDate,
		IsPaid:   filter.IsPaid,
	}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize

	if filter.Type != "" {
		flowType := finance.CashflowType(filter.Type)
		domainFilter.Type = &flowType
	}
	if filter.Category != "" {
		category := finance.CashflowCategory(filter.Category)
		domainFilter.Category = &category
	}

	entries, err := s.cashflowRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.cashflowRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CashflowResponse, len(entries))
	for i, cf := range entries {
		responses[i] = *toCashflowResponse(&cf)
	}
	return responses, total, nil
}

// UpdateCashflow modifies a cashflow entry. Owner aggregation reacts to
// the raised event and recomputes both the previous and the new owner.
func (s *CashflowService) UpdateCashflow(ctx context.Context, tenantID, id uuid.UUID, req UpdateCashflowRequest) (*CashflowResponse, error) {
	cf, err := s.cashflowRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if cf == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Cashflow entry not found")
	}

	if err := cf.Update(
		req.TransactionDate,
		finance.CashflowType(req.Type),
		finance.CashflowCategory(req.Category),
		req.Description,
		valueobject.NewMoneyMYR(req.Amount),
		finance.PaymentMethod(req.PaymentMethod),
		req.OwnerID,
	); err != nil {
		return nil, err
	}

	if err := s.cashflowRepo.SaveWithLock(ctx, cf); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, cf)

	return toCashflowResponse(cf), nil
}

// DeleteCashflow removes a cashflow entry. The entry is loaded first so
// the deletion event carries the owner to recompute.
func (s *CashflowService) DeleteCashflow(ctx context.Context, tenantID, id uuid.UUID) error {
	cf, err := s.cashflowRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if cf == nil {
		return shared.NewDomainError("NOT_FOUND", "Cashflow entry not found")
	}

	if err := s.cashflowRepo.DeleteForTenant(ctx, tenantID, id); err != nil {
		return err
	}

	if err := s.eventBus.Publish(ctx, finance.NewCashflowDeletedEvent(cf)); err != nil {
		s.logger.Error("failed to publish cashflow deleted event", zap.Error(err))
	}

	return nil
}

func (s *CashflowService) publishEvents(ctx context.Context, cf *finance.Cashflow) {
	events := cf.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventBus.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish cashflow events", zap.Error(err))
	}
	cf.ClearDomainEvents()
}

func toCashflowResponse(cf *finance.Cashflow) *CashflowResponse {
	return &CashflowResponse{
		ID:              cf.ID,
		TenantID:        cf.TenantID,
		TransactionDate: cf.TransactionDate,
		Type:            cf.Type.String(),
		Category:        cf.Category.String(),
		Description:     cf.Description,
		Amount:          cf.Amount,
		PaymentMethod:   string(cf.PaymentMethod),
		OwnerID:         cf.OwnerID,
		CustomerName:    cf.CustomerName,
		InvoiceNumber:   cf.InvoiceNumber,
		IsPaid:          cf.IsPaid,
		CreatedAt:       cf.CreatedAt,
		UpdatedAt:       cf.UpdatedAt,
	}
}
