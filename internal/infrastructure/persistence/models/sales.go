package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/mfg/backend/internal/domain/sales"
	"github.com/shopspring/decimal"
)

// SaleModel is the persistence model for the Sale aggregate root.
type SaleModel struct {
	TenantAggregateModel
	SaleNumber          string          `gorm:"type:varchar(50);not null;index"`
	InvoiceNumber       string          `gorm:"type:varchar(50)"`
	CustomerName        string          `gorm:"type:varchar(200);not null"`
	ProductID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName         string          `gorm:"type:varchar(200);not null"`
	BatchID             uuid.UUID       `gorm:"type:uuid;not null;index"`
	SaleDate            time.Time       `gorm:"type:timestamptz;not null;index"`
	Quantity            decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	SellingPricePerUnit decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalRevenue        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CostPerUnit         decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0"`
	TotalCOGS           decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	GrossProfit         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	GrossMarginPercent  decimal.Decimal `gorm:"type:decimal(8,4);not null;default:0"`
	AmountPaid          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	AmountDue           decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PaymentStatus       string          `gorm:"type:varchar(20);not null;index"`
	PaymentMethod       string          `gorm:"type:varchar(20)"`
	Notes               string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string {
	return "sales"
}

// ToDomain converts the persistence model to a domain Sale entity.
func (m *SaleModel) ToDomain() *sales.Sale {
	sale := &sales.Sale{
		SaleNumber:          m.SaleNumber,
		InvoiceNumber:       m.InvoiceNumber,
		CustomerName:        m.CustomerName,
		ProductID:           m.ProductID,
		ProductName:         m.ProductName,
		BatchID:             m.BatchID,
		SaleDate:            m.SaleDate,
		Quantity:            m.Quantity,
		SellingPricePerUnit: m.SellingPricePerUnit,
		TotalRevenue:        m.TotalRevenue,
		CostPerUnit:         m.CostPerUnit,
		TotalCOGS:           m.TotalCOGS,
		GrossProfit:         m.GrossProfit,
		GrossMarginPercent:  m.GrossMarginPercent,
		AmountPaid:          m.AmountPaid,
		AmountDue:           m.AmountDue,
		PaymentStatus:       sales.PaymentStatus(m.PaymentStatus),
		PaymentMethod:       sales.PaymentMethod(m.PaymentMethod),
		Notes:               m.Notes,
	}
	m.PopulateTenantAggregateRoot(&sale.TenantAggregateRoot)
	return sale
}

// FromDomain populates the persistence model from a domain Sale entity.
func (m *SaleModel) FromDomain(s *sales.Sale) {
	m.FromDomainTenantAggregateRoot(s.TenantAggregateRoot)
	m.SaleNumber = s.SaleNumber
	m.InvoiceNumber = s.InvoiceNumber
	m.CustomerName = s.CustomerName
	m.ProductID = s.ProductID
	m.ProductName = s.ProductName
	m.BatchID = s.BatchID
	m.SaleDate = s.SaleDate
	m.Quantity = s.Quantity
	m.SellingPricePerUnit = s.SellingPricePerUnit
	m.TotalRevenue = s.TotalRevenue
	m.CostPerUnit = s.CostPerUnit
	m.TotalCOGS = s.TotalCOGS
	m.GrossProfit = s.GrossProfit
	m.GrossMarginPercent = s.GrossMarginPercent
	m.AmountPaid = s.AmountPaid
	m.AmountDue = s.AmountDue
	m.PaymentStatus = s.PaymentStatus.String()
	m.PaymentMethod = string(s.PaymentMethod)
	m.Notes = s.Notes
}

// SaleModelFromDomain creates a new persistence model from a domain Sale entity.
func SaleModelFromDomain(s *sales.Sale) *SaleModel {
	m := &SaleModel{}
	m.FromDomain(s)
	return m
}
