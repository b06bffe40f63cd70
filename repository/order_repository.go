package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"campus-errand-api/models"
)

// OrderFilter narrows order listings. Role and UserID only apply together.
type OrderFilter struct {
	Status models.OrderStatus
	Role   models.Role
	UserID string
}

type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id string) (*models.Order, error)
	List(filter OrderFilter) ([]models.OrderListItem, error)
	// Accept assigns the runner and moves the order to accepted in one
	// conditional update. When two runners race, exactly one wins; the
	// loser gets ErrConflict.
	Accept(orderID, runnerID string) error
	// UpdateStatusFrom moves the order from an expected prior status to the
	// next one, failing with ErrConflict if the row has moved on.
	UpdateStatusFrom(orderID string, from []models.OrderStatus, to models.OrderStatus) error
	// ReleaseAcceptance clears the runner and resets the order to pending.
	// Fails with ErrUnauthorized when the caller is not the assigned runner.
	ReleaseAcceptance(orderID, runnerID string) error
}

type gormOrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &gormOrderRepository{db: db}
}

func (r *gormOrderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

func (r *gormOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Where("id = ?", id).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %s", models.ErrNotFound, id)
		}
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) List(filter OrderFilter) ([]models.OrderListItem, error) {
	query := r.db.Table("orders").
		Select("orders.*, users.nickname AS requester_name, users.avatar_url AS requester_avatar").
		Joins("JOIN users ON users.id = orders.requester_id")

	if filter.Status != "" {
		query = query.Where("orders.status = ?", filter.Status)
	}
	switch {
	case filter.Role == models.RoleRequester && filter.UserID != "":
		query = query.Where("orders.requester_id = ?", filter.UserID)
	case filter.Role == models.RoleRunner && filter.UserID != "":
		query = query.Where("orders.runner_id = ?", filter.UserID)
	}

	var items []models.OrderListItem
	err := query.Order("orders.created_at desc").Scan(&items).Error
	return items, err
}

func (r *gormOrderRepository) Accept(orderID, runnerID string) error {
	res := r.db.Model(&models.Order{}).
		Where("id = ? AND status = ? AND runner_id IS NULL", orderID, models.StatusPending).
		Updates(map[string]interface{}{
			"status":    models.StatusAccepted,
			"runner_id": runnerID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.missReason(orderID, models.ErrConflict)
	}
	return nil
}

func (r *gormOrderRepository) UpdateStatusFrom(orderID string, from []models.OrderStatus, to models.OrderStatus) error {
	res := r.db.Model(&models.Order{}).
		Where("id = ? AND status IN ?", orderID, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.missReason(orderID, models.ErrConflict)
	}
	return nil
}

func (r *gormOrderRepository) ReleaseAcceptance(orderID, runnerID string) error {
	res := r.db.Model(&models.Order{}).
		Where("id = ? AND runner_id = ?", orderID, runnerID).
		Updates(map[string]interface{}{
			"status":    models.StatusPending,
			"runner_id": nil,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.missReason(orderID, models.ErrUnauthorized)
	}
	return nil
}

// missReason distinguishes "row gone" from "row no longer in the expected
// state" after a zero-row conditional update.
func (r *gormOrderRepository) missReason(orderID string, stateErr error) error {
	var count int64
	if err := r.db.Model(&models.Order{}).Where("id = ?", orderID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: order %s", models.ErrNotFound, orderID)
	}
	return fmt.Errorf("%w: order %s", stateErr, orderID)
}
