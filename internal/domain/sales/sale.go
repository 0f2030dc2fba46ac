package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/mfg/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents how much of a sale has been collected
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPending PaymentStatus = "pending"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPaid, PaymentStatusPartial, PaymentStatusPending:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// PaymentMethod represents how a sale is settled
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodEWallet      PaymentMethod = "e_wallet"
	PaymentMethodCredit       PaymentMethod = "credit"
)

// IsValid checks if the method is a valid PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodEWallet, PaymentMethodCredit:
		return true
	}
	return false
}

// Sale represents a sale of finished goods from a batch.
// Revenue, COGS and margin figures are derived at creation time from the
// batch cost per unit and never recomputed afterwards.
type Sale struct {
	shared.TenantAggregateRoot
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
	PaymentStatus       PaymentStatus   `json:"payment_status"`
	PaymentMethod       PaymentMethod   `json:"payment_method"`
	Notes               string          `json:"notes"`
}

// NewSale creates a sale and derives its revenue and profitability figures.
// A nil amountPaid means the sale is settled in full at creation.
func NewSale(
	tenantID uuid.UUID,
	saleNumber string,
	customerName string,
	productID uuid.UUID,
	productName string,
	batchID uuid.UUID,
	saleDate time.Time,
	quantity decimal.Decimal,
	sellingPricePerUnit decimal.Decimal,
	costPerUnit decimal.Decimal,
	amountPaid *decimal.Decimal,
	paymentMethod PaymentMethod,
) (*Sale, error) {
	if saleNumber == "" {
		return nil, shared.NewDomainError("INVALID_SALE_NUMBER", "Sale number cannot be empty")
	}
	if batchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BATCH", "Batch ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if sellingPricePerUnit.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Selling price cannot be negative")
	}
	if paymentMethod != "" && !paymentMethod.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method is not valid")
	}

	revenue := sellingPricePerUnit.Mul(quantity)
	cogs := costPerUnit.Mul(quantity)
	profit := revenue.Sub(cogs)

	margin := decimal.Zero
	if revenue.IsPositive() {
		margin = profit.Div(revenue).Mul(decimal.NewFromInt(100))
	}

	paid := revenue
	if amountPaid != nil {
		if amountPaid.IsNegative() {
			return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount paid cannot be negative")
		}
		paid = *amountPaid
	}

	sale := &Sale{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		SaleNumber:          saleNumber,
		CustomerName:        customerName,
		ProductID:           productID,
		ProductName:         productName,
		BatchID:             batchID,
		SaleDate:            saleDate,
		Quantity:            quantity,
		SellingPricePerUnit: sellingPricePerUnit,
		TotalRevenue:        revenue,
		CostPerUnit:         costPerUnit,
		TotalCOGS:           cogs,
		GrossProfit:         profit,
		GrossMarginPercent:  margin,
		AmountPaid:          paid,
		PaymentMethod:       paymentMethod,
	}
	sale.applyPaymentFigures()

	return sale, nil
}

// RecordPayment adds a received amount to the sale
func (s *Sale) RecordPayment(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if s.PaymentStatus == PaymentStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Sale is already fully paid")
	}

	s.AmountPaid = s.AmountPaid.Add(amount)
	s.applyPaymentFigures()
	s.UpdatedAt = time.Now()
	return nil
}

// applyPaymentFigures derives AmountDue and PaymentStatus from AmountPaid
func (s *Sale) applyPaymentFigures() {
	s.AmountDue = s.TotalRevenue.Sub(s.AmountPaid)
	if s.AmountDue.IsNegative() {
		s.AmountDue = decimal.Zero
	}

	switch {
	case s.AmountPaid.GreaterThanOrEqual(s.TotalRevenue):
		s.PaymentStatus = PaymentStatusPaid
	case s.AmountPaid.IsPositive():
		s.PaymentStatus = PaymentStatusPartial
	default:
		s.PaymentStatus = PaymentStatusPending
	}
}

// SetInvoiceNumber records the invoice issued for the sale
func (s *Sale) SetInvoiceNumber(invoiceNumber string) {
	s.InvoiceNumber = invoiceNumber
	s.UpdatedAt = time.Now()
}

// IsOutstanding returns true if money is still owed on the sale
func (s *Sale) IsOutstanding() bool {
	return s.PaymentStatus != PaymentStatusPaid
}
