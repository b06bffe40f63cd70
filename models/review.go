package models

import "time"

// Review records one user's rating of the other party on a finished order.
// At most one review may exist per (order, reviewer) pair.
type Review struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	OrderID    string    `json:"order_id" gorm:"not null;uniqueIndex:idx_order_reviewer"`
	Order      *Order    `json:"-" gorm:"foreignKey:OrderID"`
	ReviewerID string    `json:"reviewer_id" gorm:"not null;uniqueIndex:idx_order_reviewer"`
	Reviewer   *User     `json:"-" gorm:"foreignKey:ReviewerID"`
	TargetID   string    `json:"target_id" gorm:"not null;index"`
	Target     *User     `json:"-" gorm:"foreignKey:TargetID"`
	Role       Role      `json:"role" gorm:"not null"` // role the target played on the order
	Rating     int       `json:"rating" gorm:"not null"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}
