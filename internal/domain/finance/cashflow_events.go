package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/mfg/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CashflowCreatedEvent is raised when a cashflow entry is created
type CashflowCreatedEvent struct {
	shared.BaseDomainEvent
	CashflowID      uuid.UUID        `json:"cashflow_id"`
	FlowType        CashflowType     `json:"flow_type"`
	Category        CashflowCategory `json:"category"`
	Amount          decimal.Decimal  `json:"amount"`
	OwnerID         *uuid.UUID       `json:"owner_id"`
	TransactionDate time.Time        `json:"transaction_date"`
}

// EventType returns the event type name
func (e *CashflowCreatedEvent) EventType() string {
	return "CashflowCreated"
}

// NewCashflowCreatedEvent creates a new CashflowCreatedEvent
func NewCashflowCreatedEvent(cf *Cashflow) *CashflowCreatedEvent {
	return &CashflowCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("CashflowCreated", "Cashflow", cf.ID, cf.TenantID),
		CashflowID:      cf.ID,
		FlowType:        cf.Type,
		Category:        cf.Category,
		Amount:          cf.Amount,
		OwnerID:         cf.OwnerID,
		TransactionDate: cf.TransactionDate,
	}
}

// CashflowUpdatedEvent is raised when a cashflow entry is modified.
// It carries the owner before the change so both owners can be recomputed
// after a reassignment.
type CashflowUpdatedEvent struct {
	shared.BaseDomainEvent
	CashflowID      uuid.UUID        `json:"cashflow_id"`
	FlowType        CashflowType     `json:"flow_type"`
	Category        CashflowCategory `json:"category"`
	Amount          decimal.Decimal  `json:"amount"`
	OwnerID         *uuid.UUID       `json:"owner_id"`
	PreviousOwnerID *uuid.UUID       `json:"previous_owner_id"`
	TransactionDate time.Time        `json:"transaction_date"`
}

// EventType returns the event type name
func (e *CashflowUpdatedEvent) EventType() string {
	return "CashflowUpdated"
}

// NewCashflowUpdatedEvent creates a new CashflowUpdatedEvent
func NewCashflowUpdatedEvent(cf *Cashflow, previousOwnerID *uuid.UUID) *CashflowUpdatedEvent {
	return &CashflowUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("CashflowUpdated", "Cashflow", cf.ID, cf.TenantID),
		CashflowID:      cf.ID,
		FlowType:        cf.Type,
		Category:        cf.Category,
		Amount:          cf.Amount,
		OwnerID:         cf.OwnerID,
		PreviousOwnerID: previousOwnerID,
		TransactionDate: cf.TransactionDate,
	}
}

// CashflowDeletedEvent is raised when a cashflow entry is deleted
type CashflowDeletedEvent struct {
	shared.BaseDomainEvent
	CashflowID uuid.UUID       `json:"cashflow_id"`
	FlowType   CashflowType    `json:"flow_type"`
	Amount     decimal.Decimal `json:"amount"`
	OwnerID    *uuid.UUID      `json:"owner_id"`
}

// EventType returns the event type name
func (e *CashflowDeletedEvent) EventType() string {
	return "CashflowDeleted"
}

// NewCashflowDeletedEvent creates a new CashflowDeletedEvent
func NewCashflowDeletedEvent(cf *Cashflow) *CashflowDeletedEvent {
	return &CashflowDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("CashflowDeleted", "Cashflow", cf.ID, cf.TenantID),
		CashflowID:      cf.ID,
		FlowType:        cf.Type,
		Amount:          cf.Amount,
		OwnerID:         cf.OwnerID,
	}
}
