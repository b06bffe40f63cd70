// Package repository routes all store access through narrow per-entity
// interfaces so the lifecycle and matching logic stay storage-agnostic.
package repository

import (
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"campus-errand-api/models"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	// First returns any existing user; used by the mock-identity fallback.
	First() (*models.User, error)
	ListRecent(limit int) ([]models.UserSummary, error)
	// ListCandidates returns every user except the given one, with their
	// preference blobs, for the notification fan-out.
	ListCandidates(excludeID string) ([]models.User, error)
	UpdateProfile(id, nickname, avatarURL string) error
	UpdatePreferences(id string, prefs datatypes.JSON) error
	// LoadStats fills the derived order/review counts on the user.
	LoadStats(user *models.User) error
}

type gormUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

func (r *gormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *gormUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", models.ErrNotFound, id)
		}
		return nil, err
	}
	return &user, nil
}

func (r *gormUserRepository) First() (*models.User, error) {
	var user models.User
	if err := r.db.Order("created_at asc").First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no users", models.ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

func (r *gormUserRepository) ListRecent(limit int) ([]models.UserSummary, error) {
	var users []models.UserSummary
	err := r.db.Model(&models.User{}).
		Select("id, nickname, avatar_url").
		Order("created_at desc").
		Limit(limit).
		Scan(&users).Error
	return users, err
}

func (r *gormUserRepository) ListCandidates(excludeID string) ([]models.User, error) {
	var users []models.User
	err := r.db.
		Select("id", "nickname", "preferences").
		Where("id <> ?", excludeID).
		Find(&users).Error
	return users, err
}

func (r *gormUserRepository) UpdateProfile(id, nickname, avatarURL string) error {
	res := r.db.Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"nickname": nickname, "avatar_url": avatarURL})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: user %s", models.ErrNotFound, id)
	}
	return nil
}

func (r *gormUserRepository) UpdatePreferences(id string, prefs datatypes.JSON) error {
	res := r.db.Model(&models.User{}).
		Where("id = ?", id).
		Update("preferences", prefs)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: user %s", models.ErrNotFound, id)
	}
	return nil
}

// LoadStats recomputes derived counts from the order and review sets on
// every read instead of maintaining stored counters. Write paths stay
// simpler and the counts can never drift; reads pay four aggregate queries.
func (r *gormUserRepository) LoadStats(user *models.User) error {
	if err := r.db.Model(&models.Order{}).
		Where("requester_id = ?", user.ID).
		Count(&user.RequesterOrderCount).Error; err != nil {
		return err
	}
	if err := r.db.Model(&models.Order{}).
		Where("runner_id = ? AND status IN ?", user.ID,
			[]models.OrderStatus{models.StatusCompletedByRunner, models.StatusConfirmed}).
		Count(&user.RunnerOrderCount).Error; err != nil {
		return err
	}
	if err := r.db.Model(&models.Review{}).
		Where("target_id = ? AND role = ?", user.ID, models.RoleRequester).
		Count(&user.RequesterReviewCount).Error; err != nil {
		return err
	}
	return r.db.Model(&models.Review{}).
		Where("target_id = ? AND role = ?", user.ID, models.RoleRunner).
		Count(&user.RunnerReviewCount).Error
}
