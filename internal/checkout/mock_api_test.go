package checkout

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Awais417/passwordreset/internal/premiumapi"
)

// MockAPI is a mock implementation of the PremiumAPI interface
type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) CreateCheckoutSession(ctx context.Context, req premiumapi.CreateCheckoutSessionRequest) (*premiumapi.CreateCheckoutSessionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*premiumapi.CreateCheckoutSessionResponse), args.Error(1)
}

func (m *MockAPI) ValidateCoupon(ctx context.Context, code string) (*premiumapi.ValidateCouponResponse, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*premiumapi.ValidateCouponResponse), args.Error(1)
}

func (m *MockAPI) GetPaymentStatus(ctx context.Context, userID string) (*premiumapi.PaymentStatusResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*premiumapi.PaymentStatusResponse), args.Error(1)
}

func (m *MockAPI) VerifySession(ctx context.Context, sessionID string) (*premiumapi.VerifySessionResponse, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*premiumapi.VerifySessionResponse), args.Error(1)
}
