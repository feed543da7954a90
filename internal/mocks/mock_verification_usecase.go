package mocks

import (
	"context"

	"github.com/you/quezi/domain"
)

// MockVerificationUseCase implements domain.VerificationUseCase for testing
type MockVerificationUseCase struct {
	SendCodeFunc   func(ctx context.Context, userID uint, channel domain.VerificationChannel) error
	VerifyCodeFunc func(ctx context.Context, userID uint, channel domain.VerificationChannel, code string) error
}

func NewMockVerificationUseCase() *MockVerificationUseCase {
	return &MockVerificationUseCase{}
}

func (m *MockVerificationUseCase) SendCode(ctx context.Context, userID uint, channel domain.VerificationChannel) error {
	if m.SendCodeFunc != nil {
		return m.SendCodeFunc(ctx, userID, channel)
	}
	return nil
}

func (m *MockVerificationUseCase) VerifyCode(ctx context.Context, userID uint, channel domain.VerificationChannel, code string) error {
	if m.VerifyCodeFunc != nil {
		return m.VerifyCodeFunc(ctx, userID, channel, code)
	}
	return nil
}

var _ domain.VerificationUseCase = (*MockVerificationUseCase)(nil)
