package models

import (
	"time"

	"gorm.io/datatypes"
)

// Role identifies which side of an order a user acted on
type Role string

const (
	RoleRequester Role = "requester"
	RoleRunner    Role = "runner"
)

// ValidRole reports whether r is one of the two known roles
func ValidRole(r Role) bool {
	return r == RoleRequester || r == RoleRunner
}

type User struct {
	ID                string         `json:"id" gorm:"primaryKey"`
	OpenID            string         `json:"openid" gorm:"column:openid;uniqueIndex;not null"`
	Nickname          string         `json:"nickname" gorm:"not null"`
	AvatarURL         string         `json:"avatar_url"`
	RatingAsRequester float64        `json:"rating_as_requester" gorm:"default:5"`
	RatingAsRunner    float64        `json:"rating_as_runner" gorm:"default:5"`
	Preferences       datatypes.JSON `json:"preferences"` // legacy tag array or structured object, see matching package
	CreatedAt         time.Time      `json:"created_at"`

	// Derived per request from orders/reviews, never stored
	RequesterOrderCount  int64 `json:"requester_order_count" gorm:"-"`
	RunnerOrderCount     int64 `json:"runner_order_count" gorm:"-"`
	RequesterReviewCount int64 `json:"requester_review_count" gorm:"-"`
	RunnerReviewCount    int64 `json:"runner_review_count" gorm:"-"`
}

// UserSummary is the trimmed shape returned by user listings
type UserSummary struct {
	ID        string `json:"id"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatar_url"`
}
