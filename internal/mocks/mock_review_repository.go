package mocks

import (
	"context"

	"github.com/you/quezi/domain"
)

// MockReviewRepository implements domain.ReviewRepository for testing
type MockReviewRepository struct {
	CreateFunc               func(ctx context.Context, review *domain.Review) error
	FindByIDFunc             func(ctx context.Context, id uint) (*domain.Review, error)
	ExistsForAppointmentFunc func(ctx context.Context, appointmentID string) (bool, error)
	DeleteFunc               func(ctx context.Context, id uint) error
	ListByProfessionalFunc   func(ctx context.Context, professionalID uint, page domain.Page) ([]domain.Review, int64, error)
	SummaryFunc              func(ctx context.Context, professionalID uint) (*domain.RatingSummary, error)
}

func NewMockReviewRepository() *MockReviewRepository {
	return &MockReviewRepository{}
}

func (m *MockReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, review)
	}
	return nil
}

func (m *MockReviewRepository) FindByID(ctx context.Context, id uint) (*domain.Review, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrReviewNotFound
}

func (m *MockReviewRepository) ExistsForAppointment(ctx context.Context, appointmentID string) (bool, error) {
	if m.ExistsForAppointmentFunc != nil {
		return m.ExistsForAppointmentFunc(ctx, appointmentID)
	}
	return false, nil
}

func (m *MockReviewRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockReviewRepository) ListByProfessional(ctx context.Context, professionalID uint, page domain.Page) ([]domain.Review, int64, error) {
	if m.ListByProfessionalFunc != nil {
		return m.ListByProfessionalFunc(ctx, professionalID, page)
	}
	return []domain.Review{}, 0, nil
}

// Summary returns an empty summary by default
func (m *MockReviewRepository) Summary(ctx context.Context, professionalID uint) (*domain.RatingSummary, error) {
	if m.SummaryFunc != nil {
		return m.SummaryFunc(ctx, professionalID)
	}
	return &domain.RatingSummary{ProfessionalID: professionalID}, nil
}

var _ domain.ReviewRepository = (*MockReviewRepository)(nil)
