package mocks

import (
	"context"
	"time"

	"github.com/you/quezi/domain"
)

// MockOTPService implements domain.OTPService interface for testing
type MockOTPService struct {
	GenerateFunc  func(ctx context.Context, channel domain.VerificationChannel, target string, userID uint) (*domain.VerificationCode, error)
	VerifyFunc    func(ctx context.Context, channel domain.VerificationChannel, code string, userID uint) (bool, error)
	CanResendFunc func(ctx context.Context, channel domain.VerificationChannel, userID uint) (bool, int64, error)
}

// NewMockOTPService creates a new MockOTPService with default behaviors
func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

// Generate issues a code for the target
func (m *MockOTPService) Generate(ctx context.Context, channel domain.VerificationChannel, target string, userID uint) (*domain.VerificationCode, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, channel, target, userID)
	}
	// Default behavior: return a fixed code
	return &domain.VerificationCode{
		Channel:   channel,
		Target:    target,
		Code:      "123456",
		UserID:    userID,
		ExpiresAt: time.Now().Add(5 * time.Minute),
	}, nil
}

// Verify accepts "123456" by default
func (m *MockOTPService) Verify(ctx context.Context, channel domain.VerificationChannel, code string, userID uint) (bool, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, channel, code, userID)
	}
	return code == "123456", nil
}

// CanResend allows resending with no wait by default
func (m *MockOTPService) CanResend(ctx context.Context, channel domain.VerificationChannel, userID uint) (bool, int64, error) {
	if m.CanResendFunc != nil {
		return m.CanResendFunc(ctx, channel, userID)
	}
	return true, 0, nil
}

// Compile-time interface compliance verification
var _ domain.OTPService = (*MockOTPService)(nil)
