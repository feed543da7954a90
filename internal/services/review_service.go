package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/you/quezi/domain"
	"github.com/you/quezi/internal/infrastructure/observability"
)

// ReviewServiceImpl implements domain.ReviewService
type ReviewServiceImpl struct {
	reviewRepo domain.ReviewRepository
	userRepo   domain.UserRepository
	cache      domain.RatingCache
	publisher  domain.EventPublisher
	logger     *zap.Logger
}

func NewReviewService(
	reviewRepo domain.ReviewRepository,
	userRepo domain.UserRepository,
	cache domain.RatingCache,
	publisher domain.EventPublisher,
	logger *zap.Logger,
) domain.ReviewService {
	return &ReviewServiceImpl{
		reviewRepo: reviewRepo,
		userRepo:   userRepo,
		cache:      cache,
		publisher:  publisher,
		logger:     logger.Named("reviews"),
	}
}

// Create stores one review per appointment
func (s *ReviewServiceImpl) Create(ctx context.Context, authorID uint, input domain.ReviewInput) (*domain.Review, error) {
	ctx, span := observability.Tracer().Start(ctx, "ReviewService.Create")
	defer span.End()
	span.SetAttributes(attribute.Int64("professional.id", int64(input.ProfessionalID)))

	if input.Rating < 1 || input.Rating > 5 {
		return nil, domain.ErrInvalidRating
	}
	if authorID == input.ProfessionalID {
		return nil, domain.ErrSelfReview
	}

	professional, err := s.userRepo.FindByID(ctx, input.ProfessionalID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrProfessionalNotFound
		}
		return nil, err
	}
	if professional.UserType != domain.UserTypeProfessional {
		return nil, domain.ErrProfessionalNotFound
	}

	appointmentID := strings.TrimSpace(input.AppointmentID)
	exists, err := s.reviewRepo.ExistsForAppointment(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check appointment: %w", err)
	}
	if exists {
		return nil, domain.ErrReviewAlreadyExists
	}

	now := time.Now()
	review := &domain.Review{
		AppointmentID:  appointmentID,
		ProfessionalID: input.ProfessionalID,
		AuthorID:       authorID,
		Rating:         input.Rating,
		Comment:        strings.TrimSpace(input.Comment),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, domain.ErrReviewAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	s.invalidate(ctx, review.ProfessionalID)
	publish(ctx, s.publisher, s.logger, domain.NewEvent(domain.ReviewCreatedEvent, authorID).
		WithPayload(domain.ReviewCreated{
			ReviewID:       review.ID,
			ProfessionalID: review.ProfessionalID,
			AuthorID:       review.AuthorID,
			Rating:         review.Rating,
			AppointmentID:  review.AppointmentID,
		}))
	return review, nil
}

// Delete is allowed to the author and platform admins
func (s *ReviewServiceImpl) Delete(ctx context.Context, actor domain.Actor, id uint) error {
	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if review.AuthorID != actor.UserID && !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	if err := s.reviewRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, review.ProfessionalID)
	publish(ctx, s.publisher, s.logger, domain.NewEvent(domain.ReviewDeletedEvent, actor.UserID).
		WithMetadata("review_id", review.ID).
		WithMetadata("professional_id", review.ProfessionalID))
	return nil
}

func (s *ReviewServiceImpl) ListForProfessional(ctx context.Context, professionalID uint, page domain.Page) ([]domain.Review, int64, error) {
	return s.reviewRepo.ListByProfessional(ctx, professionalID, page)
}

// Summary serves the rating from cache and recomputes it on a miss
func (s *ReviewServiceImpl) Summary(ctx context.Context, professionalID uint) (*domain.RatingSummary, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, professionalID)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, domain.ErrCacheMiss) {
			s.logger.Warn("rating cache read failed", zap.Uint("professional_id", professionalID), zap.Error(err))
		}
	}

	summary, err := s.reviewRepo.Summary(ctx, professionalID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute rating: %w", err)
	}
	summary.ProfessionalID = professionalID
	summary.Average = math.Round(summary.Average*10) / 10

	if s.cache != nil {
		if err := s.cache.Set(ctx, summary); err != nil {
			s.logger.Warn("rating cache write failed", zap.Uint("professional_id", professionalID), zap.Error(err))
		}
	}
	return summary, nil
}

func (s *ReviewServiceImpl) invalidate(ctx context.Context, professionalID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, professionalID); err != nil {
		s.logger.Warn("rating cache invalidation failed", zap.Uint("professional_id", professionalID), zap.Error(err))
	}
}
