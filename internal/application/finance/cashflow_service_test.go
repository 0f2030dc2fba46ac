package finance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mfg/backend/internal/domain/finance"
	"github.com/mfg/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCashflowService_CreateCashflow(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	ownerID := uuid.New()

	mockRepo := new(MockCashflowRepository)
	mockBus := new(MockEventBus)
	mockRepo.On("Save", ctx, mock.AnythingOfType("*finance.Cashflow")).Return(nil)
	mockBus.On("Publish", ctx, mock.Anything).Return(nil)

	svc := NewCashflowService(mockRepo, mockBus, newTestLogger())

	resp, err := svc.CreateCashflow(ctx, tenantID, CreateCashflowRequest{
		TransactionDate: time.Now(),
		Type:            "owner_investment",
		Category:        "owner_investment",
		Description:     "initial capital",
		Amount:          decimal.NewFromInt(50000),
		PaymentMethod:   "bank_transfer",
		OwnerID:         &ownerID,
	})
	require.NoError(t, err)

	assert.Equal(t, "owner_investment", resp.Type)
	assert.True(t, resp.Amount.Equal(decimal.NewFromInt(50000)))
	assert.True(t, resp.IsPaid)
	mockRepo.AssertExpectations(t)
	mockBus.AssertExpectations(t)
}

func TestCashflowService_CreateCashflow_InvalidType(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockCashflowRepository)
	svc := NewCashflowService(mockRepo, new(MockEventBus), newTestLogger())

	_, err := svc.CreateCashflow(ctx, uuid.New(), CreateCashflowRequest{
		TransactionDate: time.Now(),
		Type:            "transfer",
		Category:        "other",
		Amount:          decimal.NewFromInt(100),
	})
	require.Error(t, err)
	mockRepo.AssertNotCalled(t, "Save")
}

func TestCashflowService_UpdateCashflow(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	ownerID := uuid.New()
	newOwnerID := uuid.New()

	cf, err := finance.NewCashflow(tenantID, time.Now(), finance.CashflowTypeOwnerInvestment,
		finance.CategoryOwnerInvestment, "capital", valueobject.NewMoneyMYRFromFloat(1000),
		finance.PaymentMethodCash, &ownerID)
	require.NoError(t, err)
	cf.ClearDomainEvents()

	mockRepo := new(MockCashflowRepository)
	mockBus := new(MockEventBus)
	mockRepo.On("FindByIDForTenant", ctx, tenantID, cf.ID).Return(cf, nil)
	mockRepo.On("SaveWithLock", ctx, cf).Return(nil)
	mockBus.On("Publish", ctx, mock.Anything).Return(nil)

	svc := NewCashflowService(mockRepo, mockBus, newTestLogger())

	resp, err := svc.UpdateCashflow(ctx, tenantID, cf.ID, UpdateCashflowRequest{
		TransactionDate: time.Now(),
		Type:            "owner_investment",
		Category:        "owner_investment",
		Description:     "reassigned",
		Amount:          decimal.NewFromInt(1200),
		PaymentMethod:   "cash",
		OwnerID:         &newOwnerID,
	})
	require.NoError(t, err)

	assert.True(t, resp.Amount.Equal(decimal.NewFromInt(1200)))
	require.NotNil(t, resp.OwnerID)
	assert.Equal(t, newOwnerID, *resp.OwnerID)
	mockRepo.AssertExpectations(t)
	mockBus.AssertExpectations(t)
}

func TestCashflowService_DeleteCashflow(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	ownerID := uuid.New()

	cf, err := finance.NewCashflow(tenantID, time.Now(), finance.CashflowTypeOwnerInvestment,
		finance.CategoryOwnerInvestment, "capital", valueobject.NewMoneyMYRFromFloat(1000),
		finance.PaymentMethodCash, &ownerID)
	require.NoError(t, err)

	mockRepo := new(MockCashflowRepository)
	mockBus := new(MockEventBus)
	mockRepo.On("FindByIDForTenant", ctx, tenantID, cf.ID).Return(cf, nil)
	mockRepo.On("DeleteForTenant", ctx, tenantID, cf.ID).Return(nil)
	mockBus.On("Publish", ctx, mock.Anything).Return(nil)

	svc := NewCashflowService(mockRepo, mockBus, newTestLogger())

	err = svc.DeleteCashflow(ctx, tenantID, cf.ID)
	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockBus.AssertExpectations(t)
}

func TestCashflowService_DeleteCashflow_NotFound(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	id := uuid.New()

	mockRepo := new(MockCashflowRepository)
	mockRepo.On("FindByIDForTenant", ctx, tenantID, id).Return(nil, nil)

	svc := NewCashflowService(mockRepo, new(MockEventBus), newTestLogger())

	err := svc.DeleteCashflow(ctx, tenantID, id)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	mockRepo.AssertNotCalled(t, "DeleteForTenant")
}
