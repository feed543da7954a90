package mocks

import (
	"context"

	"github.com/you/quezi/domain"
)

// MockRatingCache implements domain.RatingCache for testing
type MockRatingCache struct {
	GetFunc        func(ctx context.Context, professionalID uint) (*domain.RatingSummary, error)
	SetFunc        func(ctx context.Context, summary *domain.RatingSummary) error
	InvalidateFunc func(ctx context.Context, professionalID uint) error
}

func NewMockRatingCache() *MockRatingCache {
	return &MockRatingCache{}
}

// Get always misses unless configured
func (m *MockRatingCache) Get(ctx context.Context, professionalID uint) (*domain.RatingSummary, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, professionalID)
	}
	return nil, domain.ErrCacheMiss
}

func (m *MockRatingCache) Set(ctx context.Context, summary *domain.RatingSummary) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, summary)
	}
	return nil
}

func (m *MockRatingCache) Invalidate(ctx context.Context, professionalID uint) error {
	if m.InvalidateFunc != nil {
		return m.InvalidateFunc(ctx, professionalID)
	}
	return nil
}

var _ domain.RatingCache = (*MockRatingCache)(nil)
