package models

import "time"

// OrderStatus represents all possible states of an errand order
type OrderStatus string

const (
	StatusPending           OrderStatus = "pending"
	StatusAccepted          OrderStatus = "accepted"
	StatusCompletedByRunner OrderStatus = "completed_by_runner"
	StatusConfirmed         OrderStatus = "confirmed"
	StatusCancelled         OrderStatus = "cancelled"
)

// OrderType is the closed set of errand categories
type OrderType string

const (
	TypeTakeout OrderType = "takeout"
	TypeExpress OrderType = "express"
	TypeSend    OrderType = "send"
	TypeErrand  OrderType = "errand"
	TypeOther   OrderType = "other"
)

// ValidOrderType reports whether t is a known errand category
func ValidOrderType(t OrderType) bool {
	switch t {
	case TypeTakeout, TypeExpress, TypeSend, TypeErrand, TypeOther:
		return true
	}
	return false
}

type Order struct {
	ID               string      `json:"id" gorm:"primaryKey"`
	RequesterID      string      `json:"requester_id" gorm:"not null;index"`
	Requester        *User       `json:"-" gorm:"foreignKey:RequesterID"`
	RunnerID         *string     `json:"runner_id" gorm:"index"`
	Runner           *User       `json:"-" gorm:"foreignKey:RunnerID"`
	Type             OrderType   `json:"type" gorm:"not null"`
	Description      string      `json:"description" gorm:"not null"`
	PickupLocation   string      `json:"pickup_location" gorm:"not null"`
	DeliveryLocation string      `json:"delivery_location" gorm:"not null"`
	Price            float64     `json:"price" gorm:"not null"`
	RequesterWechat  string      `json:"requester_wechat" gorm:"not null"`
	Status           OrderStatus `json:"status" gorm:"not null;default:'pending';index"`
	TimeRequirement  string      `json:"time_requirement,omitempty"`
	ExtraNeeds       string      `json:"extra_needs,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// OrderListItem is an order row joined with the requester's display fields
type OrderListItem struct {
	Order
	RequesterName   string `json:"requester_name"`
	RequesterAvatar string `json:"requester_avatar"`
}
