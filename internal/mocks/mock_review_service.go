package mocks

import (
	"context"

	"github.com/you/quezi/domain"
)

// MockReviewService implements domain.ReviewService for testing
type MockReviewService struct {
	CreateFunc              func(ctx context.Context, authorID uint, input domain.ReviewInput) (*domain.Review, error)
	DeleteFunc              func(ctx context.Context, actor domain.Actor, id uint) error
	ListForProfessionalFunc func(ctx context.Context, professionalID uint, page domain.Page) ([]domain.Review, int64, error)
	SummaryFunc             func(ctx context.Context, professionalID uint) (*domain.RatingSummary, error)
}

func NewMockReviewService() *MockReviewService {
	return &MockReviewService{}
}

func (m *MockReviewService) Create(ctx context.Context, authorID uint, input domain.ReviewInput) (*domain.Review, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, authorID, input)
	}
	return &domain.Review{
		ID:             1,
		AppointmentID:  input.AppointmentID,
		ProfessionalID: input.ProfessionalID,
		AuthorID:       authorID,
		Rating:         input.Rating,
		Comment:        input.Comment,
	}, nil
}

func (m *MockReviewService) Delete(ctx context.Context, actor domain.Actor, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, actor, id)
	}
	return nil
}

func (m *MockReviewService) ListForProfessional(ctx context.Context, professionalID uint, page domain.Page) ([]domain.Review, int64, error) {
	if m.ListForProfessionalFunc != nil {
		return m.ListForProfessionalFunc(ctx, professionalID, page)
	}
	return []domain.Review{}, 0, nil
}

func (m *MockReviewService) Summary(ctx context.Context, professionalID uint) (*domain.RatingSummary, error) {
	if m.SummaryFunc != nil {
		return m.SummaryFunc(ctx, professionalID)
	}
	return &domain.RatingSummary{ProfessionalID: professionalID}, nil
}

var _ domain.ReviewService = (*MockReviewService)(nil)
