package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campus-errand-api/models"
	"campus-errand-api/services"
)

type ReviewHandler struct {
	reviews *services.ReviewService
}

func NewReviewHandler(reviews *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

type SubmitReviewRequest struct {
	OrderID    string      `json:"order_id" binding:"required"`
	ReviewerID string      `json:"reviewer_id" binding:"required"`
	TargetID   string      `json:"target_id" binding:"required"`
	Role       models.Role `json:"role" binding:"required"`
	Rating     int         `json:"rating" binding:"required,min=1,max=5"`
	Comment    string      `json:"comment"`
}

// Submit records a review and updates the target's average rating
func (h *ReviewHandler) Submit(c *gin.Context) {
	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := h.reviews.Submit(services.SubmitReviewInput{
		OrderID:    req.OrderID,
		ReviewerID: req.ReviewerID,
		TargetID:   req.TargetID,
		Role:       req.Role,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Status reports whether the user already reviewed the order
func (h *ReviewHandler) Status(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user_id"})
		return
	}
	reviewed, err := h.reviews.HasReviewed(c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hasReviewed": reviewed})
}
