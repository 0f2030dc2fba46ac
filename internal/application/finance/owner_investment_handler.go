package finance

import (
	"context"

	"github.com/google/uuid"
	"github.com/mfg/backend/internal/domain/finance"
	"github.com/mfg/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// OwnerInvestmentHandler keeps owner totals consistent with the cashflow
// ledger. Every cashflow mutation triggers a full rescan of the affected
// owners; an update that moved the entry between owners recomputes both.
type OwnerInvestmentHandler struct {
	ownerRepo finance.OwnerRepository
	logger    *zap.Logger
}

// NewOwnerInvestmentHandler creates a new OwnerInvestmentHandler
func NewOwnerInvestmentHandler(ownerRepo finance.OwnerRepository, logger *zap.Logger) *OwnerInvestmentHandler {
	return &OwnerInvestmentHandler{
		ownerRepo: ownerRepo,
		logger:    logger,
	}
}

// EventTypes returns the event types this handler subscribes to
func (h *OwnerInvestmentHandler) EventTypes() []string {
	return []string{"CashflowCreated", "CashflowUpdated", "CashflowDeleted"}
}

// Handle processes a cashflow event
func (h *OwnerInvestmentHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *finance.CashflowCreatedEvent:
		return h.recalculate(ctx, e.TenantID(), e.OwnerID)
	case *finance.CashflowUpdatedEvent:
		if err := h.recalculate(ctx, e.TenantID(), e.PreviousOwnerID); err != nil {
			return err
		}
		return h.recalculate(ctx, e.TenantID(), e.OwnerID)
	case *finance.CashflowDeletedEvent:
		return h.recalculate(ctx, e.TenantID(), e.OwnerID)
	}
	return nil
}

func (h *OwnerInvestmentHandler) recalculate(ctx context.Context, tenantID uuid.UUID, ownerID *uuid.UUID) error {
	if ownerID == nil {
		return nil
	}

	owner, err := h.ownerRepo.FindByIDForTenant(ctx, tenantID, *ownerID)
	if err != nil {
		return err
	}
	if owner == nil {
		// Owner was removed; nothing to recompute.
		return nil
	}

	total, err := h.ownerRepo.RecalculateTotalInvestment(ctx, tenantID, *ownerID)
	if err != nil {
		return err
	}

	h.logger.Debug("owner investment recomputed",
		zap.String("owner_id", ownerID.String()),
		zap.String("total", total.String()))

	return nil
}
