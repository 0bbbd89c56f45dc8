package service

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"nexfolio_backend/internal/model"
)

type CreateReviewInput struct {
	BookingID uint
	Rating    int
	Comment   *string
}

type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// Create stores the client's review of a completed booking and refreshes the
// provider's averageRating and totalBookings in the same transaction.
func (s *ReviewService) Create(ctx context.Context, userID uint, in CreateReviewInput) (*model.Review, error) {
	const failMsg = "Failed to create review"

	if in.Rating < 1 || in.Rating > 5 {
		return nil, Validation("Rating must be between 1 and 5")
	}

	var review model.Review
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profile, err := loadProfile(ctx, tx, userID, "Profile not found", failMsg)
		if err != nil {
			return err
		}

		var booking model.Booking
		err = tx.First(&booking, in.BookingID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFound("Booking not found")
		}
		if err != nil {
			return Internal(failMsg, err)
		}

		if booking.ClientID != profile.ID {
			return Forbidden("Unauthorized")
		}
		if booking.Status != model.BookingCompleted {
			return Validation("Can only review completed bookings")
		}

		var existing int64
		if err := tx.Model(&model.Review{}).Where("booking_id = ?", booking.ID).Count(&existing).Error; err != nil {
			return Internal(failMsg, err)
		}
		if existing > 0 {
			return Conflict("Booking already reviewed")
		}

		if err := lockProvider(tx, booking.ProviderID); err != nil {
			return Internal(failMsg, err)
		}

		review = model.Review{
			BookingID:  booking.ID,
			ProviderID: booking.ProviderID,
			ClientID:   profile.ID,
			Rating:     in.Rating,
			Comment:    in.Comment,
		}
		if err := tx.Create(&review).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return Conflict("Booking already reviewed")
			}
			return Internal(failMsg, err)
		}

		if err := refreshRating(tx, booking.ProviderID); err != nil {
			return Internal(failMsg, err)
		}
		return nil
	})
	if err != nil {
		return nil, asServiceError(err, failMsg)
	}
	return &review, nil
}

// lockProvider takes a row lock on PostgreSQL. SQLite serializes writers on
// its own.
func lockProvider(tx *gorm.DB, providerID uint) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	var p model.Provider
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&p, providerID).Error
}

// refreshRating sets averageRating to the plain mean of every rating the
// provider has and counts one more completed booking.
func refreshRating(tx *gorm.DB, providerID uint) error {
	var agg struct {
		Total float64
		Count int64
	}
	err := tx.Model(&model.Review{}).
		Select("COALESCE(SUM(rating), 0) AS total, COUNT(*) AS count").
		Where("provider_id = ?", providerID).
		Scan(&agg).Error
	if err != nil {
		return err
	}

	var avg float64
	if agg.Count > 0 {
		avg = agg.Total / float64(agg.Count)
	}

	return tx.Model(&model.Provider{}).
		Where("id = ?", providerID).
		Updates(map[string]interface{}{
			"average_rating": avg,
			"total_bookings": gorm.Expr("total_bookings + ?", 1),
		}).Error
}
