package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/mfg/backend/internal/domain/shared"
	"github.com/mfg/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// CashflowType classifies the direction of a cashflow entry
type CashflowType string

const (
	CashflowTypeRevenue         CashflowType = "revenue"
	CashflowTypeExpense         CashflowType = "expense"
	CashflowTypeOwnerInvestment CashflowType = "owner_investment"
)

// IsValid checks if the type is a valid CashflowType
func (t CashflowType) IsValid() bool {
	switch t {
	case CashflowTypeRevenue, CashflowTypeExpense, CashflowTypeOwnerInvestment:
		return true
	}
	return false
}

// String returns the string representation of CashflowType
func (t CashflowType) String() string {
	return string(t)
}

// CashflowCategory classifies what a cashflow entry was for
type CashflowCategory string

const (
	CategorySales            CashflowCategory = "sales"
	CategoryMaterialPurchase CashflowCategory = "material_purchase"
	CategoryLaborPayment     CashflowCategory = "labor_payment"
	CategoryOverheadFixed    CashflowCategory = "overhead_fixed"
	CategoryOverheadVariable CashflowCategory = "overhead_variable"
	CategoryOwnerInvestment  CashflowCategory = "owner_investment"
	CategoryOther            CashflowCategory = "other"
)

// IsValid checks if the category is a valid CashflowCategory
func (c CashflowCategory) IsValid() bool {
	switch c {
	case CategorySales, CategoryMaterialPurchase, CategoryLaborPayment,
		CategoryOverheadFixed, CategoryOverheadVariable, CategoryOwnerInvestment,
		CategoryOther:
		return true
	}
	return false
}

// String returns the string representation of CashflowCategory
func (c CashflowCategory) String() string {
	return string(c)
}

// PaymentMethod represents how a cashflow entry was settled
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

// Cashflow represents a single money movement aggregate root
type Cashflow struct {
	shared.TenantAggregateRoot
	TransactionDate time.Time        `json:"transaction_date"`
	Type            CashflowType     `json:"type"`
	Category        CashflowCategory `json:"category"`
	Description     string           `json:"description"`
	Amount          decimal.Decimal  `json:"amount"`
	PaymentMethod   PaymentMethod    `json:"payment_method"`
	OwnerID         *uuid.UUID       `json:"owner_id"`
	CustomerName    string           `json:"customer_name"`
	InvoiceNumber   string           `json:"invoice_number"`
	IsPaid          bool             `json:"is_paid"`
}

// NewCashflow creates a new cashflow entry
func NewCashflow(
	tenantID uuid.UUID,
	transactionDate time.Time,
	flowType CashflowType,
	category CashflowCategory,
	description string,
	amount valueobject.Money,
	paymentMethod PaymentMethod,
	ownerID *uuid.UUID,
) (*Cashflow, error) {
	if !flowType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Cashflow type is not valid")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Cashflow category is not valid")
	}
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if paymentMethod != "" && !paymentMethod.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method is not valid")
	}
	if flowType == CashflowTypeOwnerInvestment && ownerID == nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner investment requires an owner")
	}

	cf := &Cashflow{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		TransactionDate:     transactionDate,
		Type:                flowType,
		Category:            category,
		Description:         description,
		Amount:              amount.Amount(),
		PaymentMethod:       paymentMethod,
		OwnerID:             ownerID,
		IsPaid:              true,
	}

	cf.AddDomainEvent(NewCashflowCreatedEvent(cf))

	return cf, nil
}

// Update modifies the cashflow entry.
// The previous owner is captured so downstream aggregation can recompute
// both the old and the new owner.
func (c *Cashflow) Update(
	transactionDate time.Time,
	flowType CashflowType,
	category CashflowCategory,
	description string,
	amount valueobject.Money,
	paymentMethod PaymentMethod,
	ownerID *uuid.UUID,
) error {
	if !flowType.IsValid() {
		return shared.NewDomainError("INVALID_TYPE", "Cashflow type is not valid")
	}
	if !category.IsValid() {
		return shared.NewDomainError("INVALID_CATEGORY", "Cashflow category is not valid")
	}
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if paymentMethod != "" && !paymentMethod.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method is not valid")
	}
	if flowType == CashflowTypeOwnerInvestment && ownerID == nil {
		return shared.NewDomainError("INVALID_OWNER", "Owner investment requires an owner")
	}

	previousOwnerID := c.OwnerID

	c.TransactionDate = transactionDate
	c.Type = flowType
	c.Category = category
	c.Description = description
	c.Amount = amount.Amount()
	c.PaymentMethod = paymentMethod
	c.OwnerID = ownerID
	c.UpdatedAt = time.Now()

	c.AddDomainEvent(NewCashflowUpdatedEvent(c, previousOwnerID))

	return nil
}

// MarkUnpaid flags the entry as not yet settled
func (c *Cashflow) MarkUnpaid() {
	c.IsPaid = false
	c.UpdatedAt = time.Now()
}

// MarkPaid flags the entry as settled
func (c *Cashflow) MarkPaid() {
	c.IsPaid = true
	c.UpdatedAt = time.Now()
}

// SetCustomer records the customer and invoice references
func (c *Cashflow) SetCustomer(customerName, invoiceNumber string) {
	c.CustomerName = customerName
	c.InvoiceNumber = invoiceNumber
	c.UpdatedAt = time.Now()
}

// GetAmountMoney returns the amount as Money
func (c *Cashflow) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyMYR(c.Amount)
}

// IsOwnerInvestment returns true for owner investment entries
func (c *Cashflow) IsOwnerInvestment() bool {
	return c.Type == CashflowTypeOwnerInvestment
}
