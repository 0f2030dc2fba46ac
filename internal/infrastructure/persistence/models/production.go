package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/mfg/backend/internal/domain/production"
	"github.com/shopspring/decimal"
)

// BatchModel is the persistence model for the Batch aggregate root.
type BatchModel struct {
	TenantAggregateModel
	BatchNumber       string          `gorm:"type:varchar(50);not null;index"`
	ProductID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName       string          `gorm:"type:varchar(200);not null"`
	ProductSKU        string          `gorm:"type:varchar(100)"`
	LifecycleStage    string          `gorm:"type:varchar(20)"`
	Status            string          `gorm:"type:varchar(20);not null;index"`
	PlannedQuantity   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ActualQuantity    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ProductionHours   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	StartDate         *time.Time      `gorm:"type:timestamptz"`
	CompletionDate    *time.Time      `gorm:"type:timestamptz;index"`
	TotalMaterialCost decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalLaborCost    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalOverheadCost decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalCost         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CostPerUnit       decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0"`
	Notes             string          `gorm:"type:text"`
	// Associations
	DirectCosts []DirectCostModel `gorm:"foreignKey:BatchID;references:ID"`
}

// TableName returns the table name for GORM
func (BatchModel) TableName() string {
	return "production_batches"
}

// ToDomain converts the persistence model to a domain Batch entity.
func (m *BatchModel) ToDomain() *production.Batch {
	batch := &production.Batch{
		BatchNumber:       m.BatchNumber,
		ProductID:         m.ProductID,
		ProductName:       m.ProductName,
		ProductSKU:        m.ProductSKU,
		LifecycleStage:    production.LifecycleStage(m.LifecycleStage),
		Status:            production.BatchStatus(m.Status),
		PlannedQuantity:   m.PlannedQuantity,
		ActualQuantity:    m.ActualQuantity,
		ProductionHours:   m.ProductionHours,
		StartDate:         m.StartDate,
		CompletionDate:    m.CompletionDate,
		TotalMaterialCost: m.TotalMaterialCost,
		TotalLaborCost:    m.TotalLaborCost,
		TotalOverheadCost: m.TotalOverheadCost,
		TotalCost:         m.TotalCost,
		CostPerUnit:       m.CostPerUnit,
		Notes:             m.Notes,
		DirectCosts:       make([]production.DirectCost, len(m.DirectCosts)),
	}
	m.PopulateTenantAggregateRoot(&batch.TenantAggregateRoot)
	for i, cost := range m.DirectCosts {
		batch.DirectCosts[i] = *cost.ToDomain()
	}
	return batch
}

// FromDomain populates the persistence model from a domain Batch entity.
func (m *BatchModel) FromDomain(b *production.Batch) {
	m.FromDomainTenantAggregateRoot(b.TenantAggregateRoot)
	m.BatchNumber = b.BatchNumber
	m.ProductID = b.ProductID
	m.ProductName = b.ProductName
	m.ProductSKU = b.ProductSKU
	m.LifecycleStage = b.LifecycleStage.String()
	m.Status = b.Status.String()
	m.PlannedQuantity = b.PlannedQuantity
	m.ActualQuantity = b.ActualQuantity
	m.ProductionHours = b.ProductionHours
	m.StartDate = b.StartDate
	m.CompletionDate = b.CompletionDate
	m.TotalMaterialCost = b.TotalMaterialCost
	m.TotalLaborCost = b.TotalLaborCost
	m.TotalOverheadCost = b.TotalOverheadCost
	m.TotalCost = b.TotalCost
	m.CostPerUnit = b.CostPerUnit
	m.Notes = b.Notes
	m.DirectCosts = make([]DirectCostModel, len(b.DirectCosts))
	for i := range b.DirectCosts {
		m.DirectCosts[i] = *DirectCostModelFromDomain(&b.DirectCosts[i])
	}
}

// BatchModelFromDomain creates a new persistence model from a domain Batch entity.
func BatchModelFromDomain(b *production.Batch) *BatchModel {
	m := &BatchModel{}
	m.FromDomain(b)
	return m
}

// DirectCostModel is the persistence model for the DirectCost entity.
type DirectCostModel struct {
	BaseModel
	BatchID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	CostType    string          `gorm:"type:varchar(20);not null"`
	Description string          `gorm:"type:varchar(255);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitCost    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalCost   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (DirectCostModel) TableName() string {
	return "batch_direct_costs"
}

// ToDomain converts the persistence model to a domain DirectCost entity.
func (m *DirectCostModel) ToDomain() *production.DirectCost {
	return &production.DirectCost{
		BaseEntity:  m.BaseModel.ToDomain(),
		BatchID:     m.BatchID,
		CostType:    production.CostType(m.CostType),
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitCost:    m.UnitCost,
		TotalCost:   m.TotalCost,
	}
}

// DirectCostModelFromDomain creates a new persistence model from a domain DirectCost entity.
func DirectCostModelFromDomain(c *production.DirectCost) *DirectCostModel {
	m := &DirectCostModel{
		BatchID:     c.BatchID,
		CostType:    c.CostType.String(),
		Description: c.Description,
		Quantity:    c.Quantity,
		UnitCost:    c.UnitCost,
		TotalCost:   c.TotalCost,
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// OverheadRateModel is the persistence model for the OverheadRate aggregate root.
type OverheadRateModel struct {
	TenantAggregateModel
	Name            string          `gorm:"type:varchar(100);not null"`
	RatePerUnit     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	RatePerHour     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ApplicableStage string          `gorm:"type:varchar(20);not null;index"`
	IsActive        bool            `gorm:"not null;default:true;index"`
	EffectiveFrom   time.Time       `gorm:"type:timestamptz;not null"`
	EffectiveTo     *time.Time      `gorm:"type:timestamptz"`
}

// TableName returns the table name for GORM
func (OverheadRateModel) TableName() string {
	return "overhead_rates"
}

// ToDomain converts the persistence model to a domain OverheadRate entity.
func (m *OverheadRateModel) ToDomain() *production.OverheadRate {
	rate := &production.OverheadRate{
		Name:            m.Name,
		RatePerUnit:     m.RatePerUnit,
		RatePerHour:     m.RatePerHour,
		ApplicableStage: production.OverheadStage(m.ApplicableStage),
		IsActive:        m.IsActive,
		EffectiveFrom:   m.EffectiveFrom,
		EffectiveTo:     m.EffectiveTo,
	}
	m.PopulateTenantAggregateRoot(&rate.TenantAggregateRoot)
	return rate
}

// FromDomain populates the persistence model from a domain OverheadRate entity.
func (m *OverheadRateModel) FromDomain(r *production.OverheadRate) {
	m.FromDomainTenantAggregateRoot(r.TenantAggregateRoot)
	m.Name = r.Name
	m.RatePerUnit = r.RatePerUnit
	m.RatePerHour = r.RatePerHour
	m.ApplicableStage = r.ApplicableStage.String()
	m.IsActive = r.IsActive
	m.EffectiveFrom = r.EffectiveFrom
	m.EffectiveTo = r.EffectiveTo
}

// OverheadRateModelFromDomain creates a new persistence model from a domain OverheadRate entity.
func OverheadRateModelFromDomain(r *production.OverheadRate) *OverheadRateModel {
	m := &OverheadRateModel{}
	m.FromDomain(r)
	return m
}
