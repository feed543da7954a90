package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/you/quezi/domain"
)

// ReviewRepositoryImpl implements domain.ReviewRepository using GORM
type ReviewRepositoryImpl struct {
	db *gorm.DB
}

// DBReview is the reviews table. One review per appointment.
type DBReview struct {
	ID             uint      `gorm:"primaryKey"`
	AppointmentID  string    `gorm:"uniqueIndex;size:64;not null"`
	ProfessionalID uint      `gorm:"index;not null"`
	AuthorID       uint      `gorm:"index;not null"`
	Rating         int       `gorm:"not null"`
	Comment        string    `gorm:"size:1000"`
	CreatedAt      time.Time `gorm:"index"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (DBReview) TableName() string {
	return "reviews"
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *gorm.DB) domain.ReviewRepository {
	return &ReviewRepositoryImpl{db: db}
}

// Create implements domain.ReviewRepository
func (r *ReviewRepositoryImpl) Create(ctx context.Context, review *domain.Review) error {
	row := &DBReview{
		AppointmentID:  review.AppointmentID,
		ProfessionalID: review.ProfessionalID,
		AuthorID:       review.AuthorID,
		Rating:         review.Rating,
		Comment:        review.Comment,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if isDuplicate(err) {
			return domain.ErrReviewAlreadyExists
		}
		return err
	}
	review.ID = row.ID
	review.CreatedAt = row.CreatedAt
	review.UpdatedAt = row.UpdatedAt
	return nil
}

// FindByID implements domain.ReviewRepository
func (r *ReviewRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Review, error) {
	var row DBReview
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if notFound(err) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, err
	}
	return reviewToDomain(&row), nil
}

// ExistsForAppointment implements domain.ReviewRepository
func (r *ReviewRepositoryImpl) ExistsForAppointment(ctx context.Context, appointmentID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&DBReview{}).Where("appointment_id = ?", appointmentID).Count(&n).Error
	return n > 0, err
}

// Delete implements domain.ReviewRepository
func (r *ReviewRepositoryImpl) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&DBReview{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}

// ListByProfessional returns a professional's reviews, newest first
func (r *ReviewRepositoryImpl) ListByProfessional(ctx context.Context, professionalID uint, page domain.Page) ([]domain.Review, int64, error) {
	q := r.db.WithContext(ctx).Model(&DBReview{}).Where("professional_id = ?", professionalID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []DBReview
	if err := q.Scopes(paginate(page)).Order("created_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	reviews := make([]domain.Review, 0, len(rows))
	for i := range rows {
		reviews = append(reviews, *reviewToDomain(&rows[i]))
	}
	return reviews, total, nil
}

// Summary computes the average rating and review count of a professional
func (r *ReviewRepositoryImpl) Summary(ctx context.Context, professionalID uint) (*domain.RatingSummary, error) {
	var agg struct {
		Average float64
		Count   int64
	}
	err := r.db.WithContext(ctx).Model(&DBReview{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("professional_id = ?", professionalID).
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}
	return &domain.RatingSummary{
		ProfessionalID: professionalID,
		Average:        agg.Average,
		Count:          agg.Count,
	}, nil
}

func reviewToDomain(row *DBReview) *domain.Review {
	return &domain.Review{
		ID:             row.ID,
		AppointmentID:  row.AppointmentID,
		ProfessionalID: row.ProfessionalID,
		AuthorID:       row.AuthorID,
		Rating:         row.Rating,
		Comment:        row.Comment,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}
