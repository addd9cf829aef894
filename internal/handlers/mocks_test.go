package handlers

import (
	"context"

	"github.com/partnerhub/backend/internal/models"
	"github.com/partnerhub/backend/internal/services"
	"github.com/stretchr/testify/mock"
)

type MockBidService struct {
	mock.Mock
}

func (m *MockBidService) SubmitBid(ctx context.Context, callerID, partnerID string, req services.SubmitBidRequest) (*models.AdBid, error) {
	args := m.Called(ctx, callerID, partnerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AdBid), args.Error(1)
}

func (m *MockBidService) ListBids(ctx context.Context, callerID, partnerID, weekKey string) ([]models.AdBid, error) {
	args := m.Called(ctx, callerID, partnerID, weekKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AdBid), args.Error(1)
}

func (m *MockBidService) ListPlacements(ctx context.Context, weekKey, category, regionKey string) ([]models.AdPlacement, error) {
	args := m.Called(ctx, weekKey, category, regionKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AdPlacement), args.Error(1)
}

type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) GetBalance(ctx context.Context, partnerID string) (*models.PartnerBalance, error) {
	args := m.Called(ctx, partnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PartnerBalance), args.Error(1)
}

func (m *MockLedger) ListEntries(ctx context.Context, partnerID string, limit, offset int) ([]models.LedgerEntry, error) {
	args := m.Called(ctx, partnerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LedgerEntry), args.Error(1)
}

func (m *MockLedger) OpenAccount(ctx context.Context, partnerID string) error {
	return m.Called(ctx, partnerID).Error(0)
}

func (m *MockLedger) Reconcile(ctx context.Context, partnerID string) (*models.ReconciliationReport, error) {
	args := m.Called(ctx, partnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReconciliationReport), args.Error(1)
}

type MockCharger struct {
	mock.Mock
}

func (m *MockCharger) ChargeCash(ctx context.Context, callerID, partnerID string, req services.CashChargeRequest) (*models.LedgerEntry, error) {
	args := m.Called(ctx, callerID, partnerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LedgerEntry), args.Error(1)
}

func (m *MockCharger) ChargeTickets(ctx context.Context, callerID, partnerID string, req services.TicketChargeRequest) (*models.LedgerEntry, error) {
	args := m.Called(ctx, callerID, partnerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LedgerEntry), args.Error(1)
}

func (m *MockCharger) ChargeQuoteFee(ctx context.Context, callerID, partnerID, requestID, payWith string) (*models.LedgerEntry, error) {
	args := m.Called(ctx, callerID, partnerID, requestID, payWith)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LedgerEntry), args.Error(1)
}

type MockSubscriptions struct {
	mock.Mock
}

func (m *MockSubscriptions) Get(ctx context.Context, callerID, partnerID string) (*models.Partner, error) {
	args := m.Called(ctx, callerID, partnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Partner), args.Error(1)
}

func (m *MockSubscriptions) Start(ctx context.Context, callerID, partnerID string, req services.StartSubscriptionRequest) (*models.Partner, error) {
	args := m.Called(ctx, callerID, partnerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Partner), args.Error(1)
}

func (m *MockSubscriptions) Cancel(ctx context.Context, callerID, partnerID string) (*models.Partner, error) {
	args := m.Called(ctx, callerID, partnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Partner), args.Error(1)
}

type MockSettler struct {
	mock.Mock
}

func (m *MockSettler) SettleWeek(ctx context.Context, weekKey string) (*models.SettlementRun, error) {
	args := m.Called(ctx, weekKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SettlementRun), args.Error(1)
}

func (m *MockSettler) ListRuns(ctx context.Context, limit int) ([]models.SettlementRun, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SettlementRun), args.Error(1)
}
