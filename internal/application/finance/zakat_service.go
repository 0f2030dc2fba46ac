package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mfg/backend/internal/domain/finance"
	"github.com/mfg/backend/internal/domain/inventory"
	"github.com/mfg/backend/internal/domain/sales"
	"github.com/mfg/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ZakatService provides application-level zakat operations.
// Every calculation produces a new immutable record; payments are applied
// to existing records without touching the asset snapshot.
type ZakatService struct {
	zakatRepo      finance.ZakatRecordRepository
	cashflowRepo   finance.CashflowRepository
	saleRepo       sales.SaleRepository
	inventoryRepo  inventory.InventoryItemRepository
	nisabThreshold decimal.Decimal
	zakatRate      decimal.Decimal
	logger         *zap.Logger
}

// NewZakatService creates a new ZakatService
func NewZakatService(
	zakatRepo finance.ZakatRecordRepository,
	cashflowRepo finance.CashflowRepository,
	saleRepo sales.SaleRepository,
	inventoryRepo inventory.InventoryItemRepository,
	nisabThreshold decimal.Decimal,
	zakatRate decimal.Decimal,
	logger *zap.Logger,
) *ZakatService {
	return &ZakatService{
		zakatRepo:      zakatRepo,
		cashflowRepo:   cashflowRepo,
		saleRepo:       saleRepo,
		inventoryRepo:  inventoryRepo,
		nisabThreshold: nisabThreshold,
		zakatRate:      zakatRate,
		logger:         logger,
	}
}

// ZakatRecordResponse represents a zakat record in API responses
type ZakatRecordResponse struct {
	ID                 uuid.UUID       `json:"id"`
	TenantID           uuid.UUID       `json:"tenant_id"`
	CalculationDate    time.Time       `json:"calculation_date"`
	GregorianYear      int             `json:"gregorian_year"`
	Cash               decimal.Decimal `json:"cash"`
	Receivables        decimal.Decimal `json:"receivables"`
	Inventory          decimal.Decimal `json:"inventory"`
	Liabilities        decimal.Decimal `json:"liabilities"`
	ZakatableAssets    decimal.Decimal `json:"zakatable_assets"`
	NetZakatableAssets decimal.Decimal `json:"net_zakatable_assets"`
	NisabThreshold     decimal.Decimal `json:"nisab_threshold"`
	ZakatRate          decimal.Decimal `json:"zakat_rate"`
	IsAboveNisab       bool            `json:"is_above_nisab"`
	CalculatedAmount   decimal.Decimal `json:"calculated_amount"`
	PaidAmount         decimal.Decimal `json:"paid_amount"`
	RemainingAmount    decimal.Decimal `json:"remaining_amount"`
	PaymentDate        *time.Time      `json:"payment_date,omitempty"`
	Status             string          `json:"status"`
	Notes              string          `json:"notes,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// CalculateZakatRequest represents a request to run a zakat calculation
type CalculateZakatRequest struct {
	CalculationDate time.Time `json:"calculation_date" binding:"required"`
	Notes           string    `json:"notes"`
}

// RecordZakatPaymentRequest represents a zakat payment
type RecordZakatPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate time.Time       `json:"payment_date" binding:"required"`
}

// ZakatListFilter defines filtering options for zakat record queries
type ZakatListFilter struct {
	Year     *int   `form:"year"`
	Status   string `form:"status"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// Calculate runs a zakat calculation against the books as of the given
// date. Cash is revenue net of expenses, receivables are outstanding
// sale balances, inventory is stock at cost and liabilities are
// unsettled expense entries. Owner capital injections are not trading
// proceeds and stay out of the cash base.
func (s *ZakatService) Calculate(ctx context.Context, tenantID uuid.UUID, req CalculateZakatRequest) (*ZakatRecordResponse, error) {
	asOf := req.CalculationDate

	assets, err := s.snapshotAssets(ctx, tenantID, asOf)
	if err != nil {
		return nil, err
	}

	record, err := finance.NewZakatRecord(tenantID, asOf, *assets, s.nisabThreshold, s.zakatRate)
	if err != nil {
		return nil, err
	}
	record.Notes = req.Notes

	if err := s.zakatRepo.Save(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("zakat calculated",
		zap.Int("year", record.GregorianYear),
		zap.Bool("above_nisab", record.IsAboveNisab),
		zap.String("amount", record.CalculatedAmount.String()))

	return toZakatRecordResponse(record), nil
}

// GetZakatRecordByID gets a zakat record by ID
func (s *ZakatService) GetZakatRecordByID(ctx context.Context, tenantID, id uuid.UUID) (*ZakatRecordResponse, error) {
	record, err := s.zakatRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Zakat record not found")
	}
	return toZakatRecordResponse(record), nil
}

// ListZakatRecords lists zakat records, most recent calculation first
func (s *ZakatService) ListZakatRecords(ctx context.Context, tenantID uuid.UUID, filter ZakatListFilter) ([]ZakatRecordResponse, int64, error) {
	domainFilter := finance.ZakatRecordFilter{Year: filter.Year}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize

	if filter.Status != "" {
		status := finance.ZakatStatus(filter.Status)
		domainFilter.Status = &status
	}

	records, err := s.zakatRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.zakatRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ZakatRecordResponse, len(records))
	for i, record := range records {
		responses[i] = *toZakatRecordResponse(&record)
	}
	return responses, total, nil
}

// RecordPayment applies a payment to a zakat record. Zakat payments are a
// religious obligation settled outside the operating books, so no expense
// cashflow is created.
func (s *ZakatService) RecordPayment(ctx context.Context, tenantID, id uuid.UUID, req RecordZakatPaymentRequest) (*ZakatRecordResponse, error) {
	record, err := s.zakatRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Zakat record not found")
	}

	if err := record.ApplyPayment(req.Amount, req.PaymentDate); err != nil {
		return nil, err
	}

	if err := s.zakatRepo.SaveWithLock(ctx, record); err != nil {
		return nil, err
	}
	return toZakatRecordResponse(record), nil
}

func (s *ZakatService) snapshotAssets(ctx context.Context, tenantID uuid.UUID, asOf time.Time) (*finance.ZakatAssets, error) {
	revenue, err := s.cashflowRepo.SumByTypeAsOf(ctx, tenantID, finance.CashflowTypeRevenue, &asOf)
	if err != nil {
		return nil, err
	}
	expenses, err := s.cashflowRepo.SumByTypeAsOf(ctx, tenantID, finance.CashflowTypeExpense, &asOf)
	if err != nil {
		return nil, err
	}

	receivables, err := s.saleRepo.SumOutstandingAsOf(ctx, tenantID, asOf)
	if err != nil {
		return nil, err
	}

	// stock is valued as it stands; inventory rows carry no history to
	// reconstruct a past position from
	stockValue, err := s.inventoryRepo.SumTotalValue(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	liabilities, err := s.cashflowRepo.SumUnpaidExpensesAsOf(ctx, tenantID, asOf)
	if err != nil {
		return nil, err
	}

	return &finance.ZakatAssets{
		Cash:        revenue.Sub(expenses),
		Receivables: receivables,
		Inventory:   stockValue,
		Liabilities: liabilities,
	}, nil
}

func toZakatRecordResponse(record *finance.ZakatRecord) *ZakatRecordResponse {
	return &ZakatRecordResponse{
		ID:                 record.ID,
		TenantID:           record.TenantID,
		CalculationDate:    record.CalculationDate,
		GregorianYear:      record.GregorianYear,
		Cash:               record.Cash,
		Receivables:        record.Receivables,
		Inventory:          record.Inventory,
		Liabilities:        record.Liabilities,
		ZakatableAssets:    record.ZakatableAssets,
		NetZakatableAssets: record.NetZakatableAssets,
		NisabThreshold:     record.NisabThreshold,
		ZakatRate:          record.ZakatRate,
		IsAboveNisab:       record.IsAboveNisab,
		CalculatedAmount:   record.CalculatedAmount,
		PaidAmount:         record.PaidAmount,
		RemainingAmount:    record.RemainingAmount,
		PaymentDate:        record.PaymentDate,
		Status:             record.Status.String(),
		Notes:              record.Notes,
		CreatedAt:          record.CreatedAt,
		UpdatedAt:          record.UpdatedAt,
	}
}
