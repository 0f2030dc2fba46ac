package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mfg/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CashflowFilter defines filtering options for cashflow queries
type CashflowFilter struct {
	shared.Filter
	Type     *CashflowType     // Filter by flow type
	Category *CashflowCategory // Filter by category
	OwnerID  *uuid.UUID        // Filter by owner
	FromDate *time.Time        // Filter by transaction date range start
	ToDate   *time.Time        // Filter by transaction date range end
	IsPaid   *bool             // Filter by settlement flag
}

// CashflowRepository defines the interface for cashflow persistence
type CashflowRepository interface {
	// FindByID finds a cashflow entry by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Cashflow, error)

	// FindByIDForTenant finds a cashflow entry by ID for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Cashflow, error)

	// FindAllForTenant finds all cashflow entries for a tenant with filtering
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter CashflowFilter) ([]Cashflow, error)

	// Save creates or updates a cashflow entry
	Save(ctx context.Context, cf *Cashflow) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, cf *Cashflow) error

	// DeleteForTenant soft deletes a cashflow entry for a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts cashflow entries for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter CashflowFilter) (int64, error)

	// SumByTypeAsOf sums entry amounts of a flow type dated on or before
	// the given time. A nil asOf means no upper bound.
	SumByTypeAsOf(ctx context.Context, tenantID uuid.UUID, flowType CashflowType, asOf *time.Time) (decimal.Decimal, error)

	// SumOwnerInvestment sums all owner investment entries of one owner
	SumOwnerInvestment(ctx context.Context, tenantID, ownerID uuid.UUID) (decimal.Decimal, error)

	// SumSalesRevenueInPeriod sums revenue entries in the sales category
	// inside the given period
	SumSalesRevenueInPeriod(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (decimal.Decimal, error)

	// SumExpensesByCategoryInPeriod sums expense entries per category
	// inside the given period
	SumExpensesByCategoryInPeriod(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (map[CashflowCategory]decimal.Decimal, error)

	// SumUnpaidExpensesAsOf sums unsettled expense entries dated on or
	// before the given time
	SumUnpaidExpensesAsOf(ctx context.Context, tenantID uuid.UUID, asOf time.Time) (decimal.Decimal, error)
}

// OwnerFilter defines filtering options for owner queries
type OwnerFilter struct {
	shared.Filter
}

// OwnerRepository defines the interface for owner persistence
type OwnerRepository interface {
	// FindByID finds an owner by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Owner, error)

	// FindByIDForTenant finds an owner by ID for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Owner, error)

	// FindAllForTenant finds all owners for a tenant with filtering
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter OwnerFilter) ([]Owner, error)

	// Save creates or updates an owner
	Save(ctx context.Context, owner *Owner) error

	// DeleteForTenant soft deletes an owner for a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts owners for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter OwnerFilter) (int64, error)

	// RecalculateTotalInvestment overwrites the owner's total investment
	// with the sum of the owner's investment cashflows, inside a
	// row-locked transaction
	RecalculateTotalInvestment(ctx context.Context, tenantID, ownerID uuid.UUID) (decimal.Decimal, error)
}

// BudgetPlanFilter defines filtering options for budget plan queries
type BudgetPlanFilter struct {
	shared.Filter
	ActiveAt *time.Time // Plans whose period covers the given time
}

// BudgetPlanRepository defines the interface for budget plan persistence
type BudgetPlanRepository interface {
	// FindByID finds a budget plan by ID
	FindByID(ctx context.Context, id uuid.UUID) (*BudgetPlan, error)

	// FindByIDForTenant finds a budget plan by ID for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*BudgetPlan, error)

	// FindAllForTenant finds all budget plans for a tenant with filtering
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter BudgetPlanFilter) ([]BudgetPlan, error)

	// Save creates or updates a budget plan
	Save(ctx context.Context, plan *BudgetPlan) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, plan *BudgetPlan) error

	// DeleteForTenant soft deletes a budget plan for a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts budget plans for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter BudgetPlanFilter) (int64, error)
}

// ZakatRecordFilter defines filtering options for zakat record queries
type ZakatRecordFilter struct {
	shared.Filter
	Year   *int         // Filter by gregorian year
	Status *ZakatStatus // Filter by payment status
}

// ZakatRecordRepository defines the interface for zakat record persistence
type ZakatRecordRepository interface {
	// FindByID finds a zakat record by ID
	FindByID(ctx context.Context, id uuid.UUID) (*ZakatRecord, error)

	// FindByIDForTenant finds a zakat record by ID for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ZakatRecord, error)

	// FindAllForTenant finds all zakat records for a tenant, most recent
	// calculation first
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter ZakatRecordFilter) ([]ZakatRecord, error)

	// Save creates or updates a zakat record
	Save(ctx context.Context, record *ZakatRecord) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, record *ZakatRecord) error

	// DeleteForTenant soft deletes a zakat record for a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts zakat records for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter ZakatRecordFilter) (int64, error)
}
