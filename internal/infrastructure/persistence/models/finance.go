package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/mfg/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// CashflowModel is the persistence model for the Cashflow aggregate root.
type CashflowModel struct {
	TenantAggregateModel
	TransactionDate time.Time       `gorm:"type:timestamptz;not null;index"`
	Type            string          `gorm:"type:varchar(20);not null;index"`
	Category        string          `gorm:"type:varchar(30);not null;index"`
	Description     string          `gorm:"type:varchar(500)"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PaymentMethod   string          `gorm:"type:varchar(20)"`
	OwnerID         *uuid.UUID      `gorm:"type:uuid;index"`
	CustomerName    string          `gorm:"type:varchar(200)"`
	InvoiceNumber   string          `gorm:"type:varchar(50)"`
	IsPaid          bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (CashflowModel) TableName() string {
	return "cashflows"
}

// ToDomain converts the persistence model to a domain Cashflow entity.
func (m *CashflowModel) ToDomain() *finance.Cashflow {
	cf := &finance.Cashflow{
		TransactionDate: m.TransactionDate,
		Type:            finance.CashflowType(m.Type),
		Category:        finance.CashflowCategory(m.Category),
		Description:     m.Description,
		Amount:          m.Amount,
		PaymentMethod:   finance.PaymentMethod(m.PaymentMethod),
		OwnerID:         m.OwnerID,
		CustomerName:    m.CustomerName,
		InvoiceNumber:   m.InvoiceNumber,
		IsPaid:          m.IsPaid,
	}
	m.PopulateTenantAggregateRoot(&cf.TenantAggregateRoot)
	return cf
}

// FromDomain populates the persistence model from a domain Cashflow entity.
func (m *CashflowModel) FromDomain(cf *finance.Cashflow) {
	m.FromDomainTenantAggregateRoot(cf.TenantAggregateRoot)
	m.TransactionDate = cf.TransactionDate
	m.Type = cf.Type.String()
	m.Category = cf.Category.String()
	m.Description = cf.Description
	m.Amount = cf.Amount
	m.PaymentMethod = string(cf.PaymentMethod)
	m.OwnerID = cf.OwnerID
	m.CustomerName = cf.CustomerName
	m.InvoiceNumber = cf.InvoiceNumber
	m.IsPaid = cf.IsPaid
}

// CashflowModelFromDomain creates a new persistence model from a domain Cashflow entity.
func CashflowModelFromDomain(cf *finance.Cashflow) *CashflowModel {
	m := &CashflowModel{}
	m.FromDomain(cf)
	return m
}

// OwnerModel is the persistence model for the Owner aggregate root.
type OwnerModel struct {
	TenantAggregateModel
	OwnerName       string          `gorm:"type:varchar(100);not null"`
	Email           string          `gorm:"type:varchar(255)"`
	Phone           string          `gorm:"type:varchar(50)"`
	TotalInvestment decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (OwnerModel) TableName() string {
	return "owners"
}

// ToDomain converts the persistence model to a domain Owner entity.
func (m *OwnerModel) ToDomain() *finance.Owner {
	owner := &finance.Owner{
		OwnerName:       m.OwnerName,
		Email:           m.Email,
		Phone:           m.Phone,
		TotalInvestment: m.TotalInvestment,
	}
	m.PopulateTenantAggregateRoot(&owner.TenantAggregateRoot)
	return owner
}

// FromDomain populates the persistence model from a domain Owner entity.
func (m *OwnerModel) FromDomain(o *finance.Owner) {
	m.FromDomainTenantAggregateRoot(o.TenantAggregateRoot)
	m.OwnerName = o.OwnerName
	m.Email = o.Email
	m.Phone = o.Phone
	m.TotalInvestment = o.TotalInvestment
}

// OwnerModelFromDomain creates a new persistence model from a domain Owner entity.
func OwnerModelFromDomain(o *finance.Owner) *OwnerModel {
	m := &OwnerModel{}
	m.FromDomain(o)
	return m
}

// BudgetFiguresModel groups the six budget dimensions as embedded columns.
type BudgetFiguresModel struct {
	Revenue          decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	DirectMaterial   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	DirectLabor      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	FixedOverhead    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	VariableOverhead decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Units            decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// ToDomain converts the embedded columns to domain BudgetFigures
func (f BudgetFiguresModel) ToDomain() finance.BudgetFigures {
	return finance.BudgetFigures{
		Revenue:          f.Revenue,
		DirectMaterial:   f.DirectMaterial,
		DirectLabor:      f.DirectLabor,
		FixedOverhead:    f.FixedOverhead,
		VariableOverhead: f.VariableOverhead,
		Units:            f.Units,
	}
}

// budgetFiguresModelFromDomain maps domain BudgetFigures to embedded columns
func budgetFiguresModelFromDomain(f finance.BudgetFigures) BudgetFiguresModel {
	return BudgetFiguresModel{
		Revenue:          f.Revenue,
		DirectMaterial:   f.DirectMaterial,
		DirectLabor:      f.DirectLabor,
		FixedOverhead:    f.FixedOverhead,
		VariableOverhead: f.VariableOverhead,
		Units:            f.Units,
	}
}

// BudgetPlanModel is the persistence model for the BudgetPlan aggregate root.
type BudgetPlanModel struct {
	TenantAggregateModel
	PlanName    string             `gorm:"type:varchar(100);not null"`
	PeriodStart time.Time          `gorm:"type:timestamptz;not null;index"`
	PeriodEnd   time.Time          `gorm:"type:timestamptz;not null;index"`
	Budgeted    BudgetFiguresModel `gorm:"embedded;embeddedPrefix:budgeted_"`
	Actual      BudgetFiguresModel `gorm:"embedded;embeddedPrefix:actual_"`
	Notes       string             `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (BudgetPlanModel) TableName() string {
	return "budget_plans"
}

// ToDomain converts the persistence model to a domain BudgetPlan entity.
func (m *BudgetPlanModel) ToDomain() *finance.BudgetPlan {
	plan := &finance.BudgetPlan{
		PlanName:    m.PlanName,
		PeriodStart: m.PeriodStart,
		PeriodEnd:   m.PeriodEnd,
		Budgeted:    m.Budgeted.ToDomain(),
		Actual:      m.Actual.ToDomain(),
		Notes:       m.Notes,
	}
	m.PopulateTenantAggregateRoot(&plan.TenantAggregateRoot)
	return plan
}

// FromDomain populates the persistence model from a domain BudgetPlan entity.
func (m *BudgetPlanModel) FromDomain(p *finance.BudgetPlan) {
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	m.PlanName = p.PlanName
	m.PeriodStart = p.PeriodStart
	m.PeriodEnd = p.PeriodEnd
	m.Budgeted = budgetFiguresModelFromDomain(p.Budgeted)
	m.Actual = budgetFiguresModelFromDomain(p.Actual)
	m.Notes = p.Notes
}

// BudgetPlanModelFromDomain creates a new persistence model from a domain BudgetPlan entity.
func BudgetPlanModelFromDomain(p *finance.BudgetPlan) *BudgetPlanModel {
	m := &BudgetPlanModel{}
	m.FromDomain(p)
	return m
}

// ZakatRecordModel is the persistence model for the ZakatRecord aggregate root.
type ZakatRecordModel struct {
	TenantAggregateModel
	CalculationDate    time.Time       `gorm:"type:timestamptz;not null;index"`
	GregorianYear      int             `gorm:"not null;index"`
	Cash               decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Receivables        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Inventory          decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Liabilities        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	ZakatableAssets    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	NetZakatableAssets decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	NisabThreshold     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	ZakatRate          decimal.Decimal `gorm:"type:decimal(8,5);not null"`
	IsAboveNisab       bool            `gorm:"not null;default:false"`
	CalculatedAmount   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	PaidAmount         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	RemainingAmount    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	PaymentDate        *time.Time      `gorm:"type:timestamptz"`
	Status             string          `gorm:"type:varchar(20);not null;index"`
	Notes              string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ZakatRecordModel) TableName() string {
	return "zakat_records"
}

// ToDomain converts the persistence model to a domain ZakatRecord entity.
func (m *ZakatRecordModel) ToDomain() *finance.ZakatRecord {
	record := &finance.ZakatRecord{
		CalculationDate:    m.CalculationDate,
		GregorianYear:      m.GregorianYear,
		Cash:               m.Cash,
		Receivables:        m.Receivables,
		Inventory:          m.Inventory,
		Liabilities:        m.Liabilities,
		ZakatableAssets:    m.ZakatableAssets,
		NetZakatableAssets: m.NetZakatableAssets,
		NisabThreshold:     m.NisabThreshold,
		ZakatRate:          m.ZakatRate,
		IsAboveNisab:       m.IsAboveNisab,
		CalculatedAmount:   m.CalculatedAmount,
		PaidAmount:         m.PaidAmount,
		RemainingAmount:    m.RemainingAmount,
		PaymentDate:        m.PaymentDate,
		Status:             finance.ZakatStatus(m.Status),
		Notes:              m.Notes,
	}
	m.PopulateTenantAggregateRoot(&record.TenantAggregateRoot)
	return record
}

// FromDomain populates the persistence model from a domain ZakatRecord entity.
func (m *ZakatRecordModel) FromDomain(z *finance.ZakatRecord) {
	m.FromDomainTenantAggregateRoot(z.TenantAggregateRoot)
	m.CalculationDate = z.CalculationDate
	m.GregorianYear = z.GregorianYear
	m.Cash = z.Cash
	m.Receivables = z.Receivables
	m.Inventory = z.Inventory
	m.Liabilities = z.Liabilities
	m.ZakatableAssets = z.ZakatableAssets
	m.NetZakatableAssets = z.NetZakatableAssets
	m.NisabThreshold = z.NisabThreshold
	m.ZakatRate = z.ZakatRate
	m.IsAboveNisab = z.IsAboveNisab
	m.CalculatedAmount = z.CalculatedAmount
	m.PaidAmount = z.PaidAmount
	m.RemainingAmount = z.RemainingAmount
	m.PaymentDate = z.PaymentDate
	m.Status = z.Status.String()
	m.Notes = z.Notes
}

// ZakatRecordModelFromDomain creates a new persistence model from a domain ZakatRecord entity.
func ZakatRecordModelFromDomain(z *finance.ZakatRecord) *ZakatRecordModel {
	m := &ZakatRecordModel{}
	m.FromDomain(z)
	return m
}
