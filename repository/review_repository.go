package repository

import (
	"fmt"

	"gorm.io/gorm"

	"campus-errand-api/models"
)

type ReviewRepository interface {
	// SubmitWithRatingRecompute inserts the review and recomputes the
	// target's rating for the reviewed role in a single transaction.
	SubmitWithRatingRecompute(review *models.Review) error
	Exists(orderID, reviewerID string) (bool, error)
}

type gormReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &gormReviewRepository{db: db}
}

func (r *gormReviewRepository) SubmitWithRatingRecompute(review *models.Review) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Review{}).
			Where("order_id = ? AND reviewer_id = ?", review.OrderID, review.ReviewerID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: order %s by %s", models.ErrDuplicateReview, review.OrderID, review.ReviewerID)
		}
		if err := tx.Create(review).Error; err != nil {
			return err
		}

		// Source of truth for ratings is the full review set: the average
		// is recomputed from scratch, not adjusted incrementally.
		column := "rating_as_requester"
		if review.Role == models.RoleRunner {
			column = "rating_as_runner"
		}
		return tx.Exec(
			"UPDATE users SET "+column+" = (SELECT AVG(rating) FROM reviews WHERE target_id = ? AND role = ?) WHERE id = ?",
			review.TargetID, review.Role, review.TargetID,
		).Error
	})
}

func (r *gormReviewRepository) Exists(orderID, reviewerID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Review{}).
		Where("order_id = ? AND reviewer_id = ?", orderID, reviewerID).
		Count(&count).Error
	return count > 0, err
}
