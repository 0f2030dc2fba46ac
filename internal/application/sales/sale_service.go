package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mfg/backend/internal/domain/finance"
	"github.com/mfg/backend/internal/domain/production"
	"github.com/mfg/backend/internal/domain/sales"
	"github.com/mfg/backend/internal/domain/shared"
	"github.com/mfg/backend/internal/domain/shared/valueobject"
	"github.com/mfg/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SaleProcessingStore persists a processed sale atomically: the inventory
// deduction, the sale record and the revenue cashflow commit in one
// transaction. The inventory row is re-read under a row lock and the
// quantity re-checked inside the transaction; on failure nothing is
// written.
type SaleProcessingStore interface {
	ProcessSale(ctx context.Context, sale *sales.Sale, revenueEntry *finance.Cashflow) error
}

// SaleService provides application-level sale operations
type SaleService struct {
	saleRepo  sales.SaleRepository
	batchRepo production.BatchRepository
	store     SaleProcessingStore
	eventBus  shared.EventBus
	logger    *zap.Logger
}

// NewSaleService creates a new SaleService
func NewSaleService(
	saleRepo sales.SaleRepository,
	batchRepo production.BatchRepository,
	store SaleProcessingStore,
	eventBus shared.EventBus,
	logger *zap.Logger,
) *SaleService {
	return &SaleService{
		saleRepo:  saleRepo,
		batchRepo: batchRepo,
		store:     store,
		eventBus:  eventBus,
		logger:    logger,
	}
}

// SaleResponse represents a sale in API responses
type SaleResponse struct {
	ID                  uuid.UUID       `json:"id"`
	TenantID            uuid.UUID       `json:"tenant_id"`
	SaleNumber          string          `json:"sale_number"`
	InvoiceNumber       string          `json:"invoice_number"`
	CustomerName        string          `json:"customer_name"`
	ProductID           uuid.UUID       `json:"product_id"`
	ProductName         string          `json:"product_name"`
	BatchID             uuid.UUID       `json:"batch_id"`
	SaleDate            time.Time       `json:"sale_date"`
	Quantity            decimal.Decimal `json:"quantity"`
	SellingPricePerUnit decimal.Decimal `json:"selling_price_per_unit"`
	TotalRevenue        decimal.Decimal `json:"total_revenue"`
	CostPerUnit         decimal.Decimal `json:"cost_per_unit"`
	TotalCOGS           decimal.Decimal `json:"total_cogs"`
	GrossProfit         decimal.Decimal `json:"gross_profit"`
	GrossMarginPercent  decimal.Decimal `json:"gross_margin_percent"`
	AmountPaid          decimal.Decimal `json:"amount_paid"`
	AmountDue           decimal.Decimal `json:"amount_due"`
	PaymentStatus       string          `json:"payment_status"`
	PaymentMethod       string          `json:"payment_method"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// CreateSaleRequest represents a request to process a sale
type CreateSaleRequest struct {
	BatchID             uuid.UUID        `json:"batch_id" binding:"required"`
	CustomerName        string           `json:"customer_name" binding:"required"`
	SaleDate            time.Time        `json:"sale_date" binding:"required"`
	Quantity            decimal.Decimal  `json:"quantity" binding:"required"`
	SellingPricePerUnit decimal.Decimal  `json:"selling_price_per_unit" binding:"required"`
	AmountPaid          *decimal.Decimal `json:"amount_paid"`
	PaymentMethod       string           `json:"payment_method"`
}

// RecordSalePaymentRequest represents a payment against an outstanding sale
type RecordSalePaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// SaleListFilter defines filtering options for sale list queries
type SaleListFilter struct {
	BatchID       *uuid.UUID `form:"batch_id"`
	ProductID     *uuid.UUID `form:"product_id"`
	PaymentStatus string     `form:"payment_status"`
	FromDate      *time.Time `form:"from_date"`
	ToDate        *time.Time `form:"to_date"`
	Page          int        `form:"page"`
	PageSize      int        `form:"page_size"`
}

// ProcessSale records a sale against a batch: derives revenue and margin
// figures from the batch cost, deducts finished goods stock and books the
// revenue cashflow, all atomically.
func (s *SaleService) ProcessSale(ctx context.Context, tenantID uuid.UUID, req CreateSaleRequest) (*SaleResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sale", "process")
	defer span.End()

	telemetry.SetAttributes(span,
		telemetry.SpanAttrBatchID, req.BatchID.String(),
		telemetry.SpanAttrCustomerName, req.CustomerName,
		telemetry.SpanAttrQuantity, req.Quantity.String(),
	)

	batch, err := s.batchRepo.FindByIDForTenant(ctx, tenantID, req.BatchID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if batch == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Batch not found")
	}

	saleNumber, err := s.saleRepo.GenerateSaleNumber(ctx, tenantID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttribute(span, telemetry.SpanAttrSaleNumber, saleNumber)

	sale, err := sales.NewSale(
		tenantID,
		saleNumber,
		req.CustomerName,
		batch.ProductID,
		batch.ProductName,
		batch.ID,
		req.SaleDate,
		req.Quantity,
		req.SellingPricePerUnit,
		batch.CostPerUnit,
		req.AmountPaid,
		sales.PaymentMethod(req.PaymentMethod),
	)
	if err != nil {
		return nil, err
	}
	sale.SetInvoiceNumber(fmt.Sprintf("INV-%s", saleNumber))

	revenueEntry, err := finance.NewCashflow(
		tenantID,
		req.SaleDate,
		finance.CashflowTypeRevenue,
		finance.CategorySales,
		fmt.Sprintf("Sale %s to %s", saleNumber, req.CustomerName),
		valueobject.NewMoneyMYR(sale.TotalRevenue),
		finance.PaymentMethod(req.PaymentMethod),
		nil,
	)
	if err != nil {
		return nil, err
	}
	revenueEntry.SetCustomer(req.CustomerName, sale.InvoiceNumber)
	if sale.IsOutstanding() {
		revenueEntry.MarkUnpaid()
	}

	if err := s.store.ProcessSale(ctx, sale, revenueEntry); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetOK(span)

	events := revenueEntry.GetDomainEvents()
	if len(events) > 0 {
		if err := s.eventBus.Publish(ctx, events...); err != nil {
			s.logger.Error("failed to publish cashflow events", zap.Error(err))
		}
		revenueEntry.ClearDomainEvents()
	}

	s.logger.Info("sale processed",
		zap.String("sale_number", sale.SaleNumber),
		zap.String("total_revenue", sale.TotalRevenue.String()))

	return toSaleResponse(sale), nil
}

// GetSaleByID gets a sale by ID
func (s *SaleService) GetSaleByID(ctx context.Context, tenantID, id uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Sale not found")
	}
	return toSaleResponse(sale), nil
}

// ListSales lists sales with filtering
func (s *SaleService) ListSales(ctx context.Context, tenantID uuid.UUID, filter SaleListFilter) ([]SaleResponse, int64, error) {
	domainFilter := sales.SaleFilter{
		BatchID:   filter.BatchID,
		ProductID: filter.ProductID,
		FromDate:  filter.FromDate,
		ToDate:    filter.ToDate,
	}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize

	if filter.PaymentStatus != "" {
		status := sales.PaymentStatus(filter.PaymentStatus)
		domainFilter.PaymentStatus = &status
	}

	found, err := s.saleRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.saleRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]SaleResponse, len(found))
	for i, sale := range found {
		responses[i] = *toSaleResponse(&sale)
	}
	return responses, total, nil
}

// RecordPayment applies a received payment to an outstanding sale
func (s *SaleService) RecordPayment(ctx context.Context, tenantID, saleID uuid.UUID, req RecordSalePaymentRequest) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByIDForTenant(ctx, tenantID, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Sale not found")
	}

	if err := sale.RecordPayment(req.Amount); err != nil {
		return nil, err
	}

	if err := s.saleRepo.SaveWithLock(ctx, sale); err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// GetSummary aggregates sales figures over a period
func (s *SaleService) GetSummary(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (*sales.SalesSummary, error) {
	return s.saleRepo.Summarize(ctx, tenantID, from, to)
}

func toSaleResponse(sale *sales.Sale) *SaleResponse {
	return &SaleResponse{
		ID:                  sale.ID,
		TenantID:            sale.TenantID,
		SaleNumber:          sale.SaleNumber,
		InvoiceNumber:       sale.InvoiceNumber,
		CustomerName:        sale.CustomerName,
		ProductID:           sale.ProductID,
		ProductName:         sale.ProductName,
		BatchID:             sale.BatchID,
		SaleDate:            sale.SaleDate,
		Quantity:            sale.Quantity,
		SellingPricePerUnit: sale.SellingPricePerUnit,
		TotalRevenue:        sale.TotalRevenue,
		CostPerUnit:         sale.CostPerUnit,
		TotalCOGS:           sale.TotalCOGS,
		GrossProfit:         sale.GrossProfit,
		GrossMarginPercent:  sale.GrossMarginPercent,
		AmountPaid:          sale.AmountPaid,
		AmountDue:           sale.AmountDue,
		PaymentStatus:       sale.PaymentStatus.String(),
		PaymentMethod:       string(sale.PaymentMethod),
		CreatedAt:           sale.CreatedAt,
		UpdatedAt:           sale.UpdatedAt,
	}
}
