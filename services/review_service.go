package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"campus-errand-api/models"
	"campus-errand-api/repository"
)

// ReviewService records reviews and keeps per-role rating averages current.
type ReviewService struct {
	reviews repository.ReviewRepository
	orders  repository.OrderRepository
	users   repository.UserRepository
	log     *logrus.Logger
}

func NewReviewService(reviews repository.ReviewRepository, orders repository.OrderRepository, users repository.UserRepository, log *logrus.Logger) *ReviewService {
	return &ReviewService{reviews: reviews, orders: orders, users: users, log: log}
}

type SubmitReviewInput struct {
	OrderID    string
	ReviewerID string
	TargetID   string
	Role       models.Role
	Rating     int
	Comment    string
}

// Submit inserts the review and recomputes the target's rating for the
// reviewed role. Insert and recompute share one transaction, so a review
// can never exist alongside a stale average.
func (s *ReviewService) Submit(in SubmitReviewInput) (*models.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", models.ErrValidation)
	}
	if !models.ValidRole(in.Role) {
		return nil, fmt.Errorf("%w: role must be requester or runner", models.ErrValidation)
	}
	if _, err := s.orders.GetByID(in.OrderID); err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(in.TargetID); err != nil {
		return nil, err
	}

	review := &models.Review{
		ID:         uuid.NewString(),
		OrderID:    in.OrderID,
		ReviewerID: in.ReviewerID,
		TargetID:   in.TargetID,
		Role:       in.Role,
		Rating:     in.Rating,
		Comment:    in.Comment,
	}
	if err := s.reviews.SubmitWithRatingRecompute(review); err != nil {
		return nil, err
	}
	return review, nil
}

// HasReviewed reports whether the user already reviewed the given order.
func (s *ReviewService) HasReviewed(orderID, userID string) (bool, error) {
	return s.reviews.Exists(orderID, userID)
}
