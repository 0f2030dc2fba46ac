package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/mfg/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Owner represents a business owner whose capital injections are tracked.
// TotalInvestment is derived: it is always recomputed as the sum of the
// owner's investment cashflows, never adjusted incrementally.
type Owner struct {
	shared.TenantAggregateRoot
	OwnerName       string          `json:"owner_name"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	TotalInvestment decimal.Decimal `json:"total_investment"`
}

// NewOwner creates a new owner
func NewOwner(tenantID uuid.UUID, ownerName string) (*Owner, error) {
	if ownerName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Owner name cannot be empty")
	}
	if len(ownerName) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Owner name cannot exceed 100 characters")
	}

	return &Owner{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		OwnerName:           ownerName,
		TotalInvestment:     decimal.Zero,
	}, nil
}

// SetContact sets the contact details
func (o *Owner) SetContact(email, phone string) {
	o.Email = email
	o.Phone = phone
	o.UpdatedAt = time.Now()
}
