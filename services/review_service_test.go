package services

import (
	"errors"
	"math"
	"testing"

	"campus-errand-api/models"
)

func TestRatingIsExactMeanPerRole(t *testing.T) {
	env := newTestEnv(t)
	requester := env.createUser(t, "requester", "")
	runner := env.createUser(t, "runner", "")

	ratings := []int{5, 4, 4}
	for _, rating := range ratings {
		order := env.createOrder(t, requester.ID, models.TypeTakeout, 10)
		if _, err := env.reviews.Submit(SubmitReviewInput{
			OrderID:    order.ID,
			ReviewerID: requester.ID,
			TargetID:   runner.ID,
			Role:       models.RoleRunner,
			Rating:     rating,
			Comment:    "很快",
		}); err != nil {
			t.Fatalf("submit review: %v", err)
		}
	}

	got, err := env.userRepo.GetByID(runner.ID)
	if err != nil {
		t.Fatalf("get runner: %v", err)
	}
	want := 13.0 / 3.0
	if math.Abs(got.RatingAsRunner-want) > 1e-9 {
		t.Fatalf("expected runner rating %v, got %v", want, got.RatingAsRunner)
	}
	// the other role's rating is independent and untouched
	if got.RatingAsRequester != 5.0 {
		t.Fatalf("requester rating should be untouched, got %v", got.RatingAsRequester)
	}
}

func TestRatingsIndependentPerRole(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice", "")
	bob := env.createUser(t, "bob", "")
	orderA := env.createOrder(t, alice.ID, models.TypeExpress, 10)
	orderB := env.createOrder(t, bob.ID, models.TypeExpress, 10)

	// bob reviews alice as requester, alice reviews bob as runner
	if _, err := env.reviews.Submit(SubmitReviewInput{
		OrderID: orderA.ID, ReviewerID: bob.ID, TargetID: alice.ID,
		Role: models.RoleRequester, Rating: 2,
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := env.reviews.Submit(SubmitReviewInput{
		OrderID: orderB.ID, ReviewerID: alice.ID, TargetID: bob.ID,
		Role: models.RoleRunner, Rating: 3,
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	gotAlice, _ := env.userRepo.GetByID(alice.ID)
	if gotAlice.RatingAsRequester != 2.0 || gotAlice.RatingAsRunner != 5.0 {
		t.Fatalf("alice ratings wrong: %v / %v", gotAlice.RatingAsRequester, gotAlice.RatingAsRunner)
	}
	gotBob, _ := env.userRepo.GetByID(bob.ID)
	if gotBob.RatingAsRunner != 3.0 || gotBob.RatingAsRequester != 5.0 {
		t.Fatalf("bob ratings wrong: %v / %v", gotBob.RatingAsRequester, gotBob.RatingAsRunner)
	}
}

func TestDuplicateReviewRejected(t *testing.T) {
	env := newTestEnv(t)
	requester := env.createUser(t, "requester", "")
	runner := env.createUser(t, "runner", "")
	order := env.createOrder(t, requester.ID, models.TypeTakeout, 10)

	first := SubmitReviewInput{
		OrderID:    order.ID,
		ReviewerID: requester.ID,
		TargetID:   runner.ID,
		Role:       models.RoleRunner,
		Rating:     4,
	}
	if _, err := env.reviews.Submit(first); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	second := first
	second.Rating = 1
	if _, err := env.reviews.Submit(second); !errors.Is(err, models.ErrDuplicateReview) {
		t.Fatalf("expected ErrDuplicateReview, got %v", err)
	}

	// the first review's effect is unchanged
	got, err := env.userRepo.GetByID(runner.ID)
	if err != nil {
		t.Fatalf("get runner: %v", err)
	}
	if got.RatingAsRunner != 4.0 {
		t.Fatalf("rating must stay at 4.0 after rejected duplicate, got %v", got.RatingAsRunner)
	}
}

func TestSubmitValidation(t *testing.T) {
	env := newTestEnv(t)
	requester := env.createUser(t, "requester", "")
	runner := env.createUser(t, "runner", "")
	order := env.createOrder(t, requester.ID, models.TypeTakeout, 10)

	base := SubmitReviewInput{
		OrderID:    order.ID,
		ReviewerID: requester.ID,
		TargetID:   runner.ID,
		Role:       models.RoleRunner,
		Rating:     3,
	}

	tooLow := base
	tooLow.Rating = 0
	if _, err := env.reviews.Submit(tooLow); !errors.Is(err, models.ErrValidation) {
		t.Fatalf("expected ErrValidation for rating 0, got %v", err)
	}

	tooHigh := base
	tooHigh.Rating = 6
	if _, err := env.reviews.Submit(tooHigh); !errors.Is(err, models.ErrValidation) {
		t.Fatalf("expected ErrValidation for rating 6, got %v", err)
	}

	badRole := base
	badRole.Role = "observer"
	if _, err := env.reviews.Submit(badRole); !errors.Is(err, models.ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown role, got %v", err)
	}

	noOrder := base
	noOrder.OrderID = "missing"
	if _, err := env.reviews.Submit(noOrder); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown order, got %v", err)
	}
}

func TestHasReviewed(t *testing.T) {
	env := newTestEnv(t)
	requester := env.createUser(t, "requester", "")
	runner := env.createUser(t, "runner", "")
	order := env.createOrder(t, requester.ID, models.TypeTakeout, 10)

	reviewed, err := env.reviews.HasReviewed(order.ID, requester.ID)
	if err != nil {
		t.Fatalf("has reviewed: %v", err)
	}
	if reviewed {
		t.Fatalf("expected no review yet")
	}

	if _, err := env.reviews.Submit(SubmitReviewInput{
		OrderID: order.ID, ReviewerID: requester.ID, TargetID: runner.ID,
		Role: models.RoleRunner, Rating: 5,
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	reviewed, err = env.reviews.HasReviewed(order.ID, requester.ID)
	if err != nil {
		t.Fatalf("has reviewed: %v", err)
	}
	if !reviewed {
		t.Fatalf("expected review to be recorded")
	}
	// the other party has not reviewed yet
	reviewed, err = env.reviews.HasReviewed(order.ID, runner.ID)
	if err != nil {
		t.Fatalf("has reviewed: %v", err)
	}
	if reviewed {
		t.Fatalf("runner has not reviewed this order")
	}
}
