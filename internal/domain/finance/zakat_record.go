package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/mfg/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ZakatStatus represents the payment state of a zakat record
type ZakatStatus string

const (
	ZakatStatusCalculated    ZakatStatus = "calculated"
	ZakatStatusPartiallyPaid ZakatStatus = "partially_paid"
	ZakatStatusFullyPaid     ZakatStatus = "fully_paid"
)

// IsValid checks if the status is a valid ZakatStatus
func (s ZakatStatus) IsValid() bool {
	switch s {
	case ZakatStatusCalculated, ZakatStatusPartiallyPaid, ZakatStatusFullyPaid:
		return true
	}
	return false
}

// String returns the string representation of ZakatStatus
func (s ZakatStatus) String() string {
	return string(s)
}

// ZakatAssets is the snapshot of zakatable assets at calculation time
type ZakatAssets struct {
	Cash        decimal.Decimal `json:"cash"`
	Receivables decimal.Decimal `json:"receivables"`
	Inventory   decimal.Decimal `json:"inventory"`
	Liabilities decimal.Decimal `json:"liabilities"`
}

// Zakatable is the gross asset base: cash plus receivables plus inventory
func (a ZakatAssets) Zakatable() decimal.Decimal {
	return a.Cash.Add(a.Receivables).Add(a.Inventory)
}

// Net is the zakatable base after deducting liabilities
func (a ZakatAssets) Net() decimal.Decimal {
	return a.Zakatable().Sub(a.Liabilities)
}

// ZakatRecord represents one zakat calculation aggregate root.
// The asset snapshot is immutable after creation; payments only mutate
// the payment fields and status.
type ZakatRecord struct {
	shared.TenantAggregateRoot
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
	PaymentDate        *time.Time      `json:"payment_date"`
	Status             ZakatStatus     `json:"status"`
	Notes              string          `json:"notes"`
}

// NewZakatRecord computes a zakat record from an asset snapshot.
// Zakat is due only when the net zakatable assets reach the nisab
// threshold; the amount is then the net base times the rate.
func NewZakatRecord(
	tenantID uuid.UUID,
	calculationDate time.Time,
	assets ZakatAssets,
	nisabThreshold decimal.Decimal,
	zakatRate decimal.Decimal,
) (*ZakatRecord, error) {
	if nisabThreshold.IsNegative() {
		return nil, shared.NewDomainError("INVALID_NISAB", "Nisab threshold cannot be negative")
	}
	if zakatRate.IsNegative() || zakatRate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, shared.NewDomainError("INVALID_RATE", "Zakat rate must be between 0 and 1")
	}

	net := assets.Net()
	aboveNisab := net.GreaterThanOrEqual(nisabThreshold)

	amount := decimal.Zero
	if aboveNisab {
		amount = net.Mul(zakatRate)
	}

	return &ZakatRecord{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		CalculationDate:     calculationDate,
		GregorianYear:       calculationDate.Year(),
		Cash:                assets.Cash,
		Receivables:         assets.Receivables,
		Inventory:           assets.Inventory,
		Liabilities:         assets.Liabilities,
		ZakatableAssets:     assets.Zakatable(),
		NetZakatableAssets:  net,
		NisabThreshold:      nisabThreshold,
		ZakatRate:           zakatRate,
		IsAboveNisab:        aboveNisab,
		CalculatedAmount:    amount,
		PaidAmount:          decimal.Zero,
		RemainingAmount:     amount,
		Status:              ZakatStatusCalculated,
	}, nil
}

// ApplyPayment records a zakat payment.
// The remaining amount never goes below zero.
func (z *ZakatRecord) ApplyPayment(amount decimal.Decimal, paymentDate time.Time) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if z.Status == ZakatStatusFullyPaid {
		return shared.NewDomainError("INVALID_STATE", "Zakat record is already fully paid")
	}

	z.PaidAmount = z.PaidAmount.Add(amount)
	z.RemainingAmount = z.CalculatedAmount.Sub(z.PaidAmount)
	if z.RemainingAmount.IsNegative() {
		z.RemainingAmount = decimal.Zero
	}

	switch {
	case !z.RemainingAmount.IsPositive():
		z.Status = ZakatStatusFullyPaid
	case z.PaidAmount.IsPositive():
		z.Status = ZakatStatusPartiallyPaid
	}

	z.PaymentDate = &paymentDate
	z.UpdatedAt = time.Now()
	return nil
}
