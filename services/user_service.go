package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"campus-errand-api/matching"
	"campus-errand-api/models"
	"campus-errand-api/repository"
)

// Avatar seeds mirror the mock identities the client ships with.
var avatarSeeds = []string{"Felix", "Aneka", "Zoe", "Jack", "Bella", "Charlie"}

// UserService manages mock identities, profiles and preferences. Real
// authentication is out of scope; identity works like the original MVP's
// user switcher.
type UserService struct {
	users repository.UserRepository
	log   *logrus.Logger
}

func NewUserService(users repository.UserRepository, log *logrus.Logger) *UserService {
	return &UserService{users: users, log: log}
}

// GetOrCreateMock resolves the current user: by id when given, otherwise
// the oldest existing user, otherwise a freshly created default. Derived
// order/review counts are attached to the result.
func (s *UserService) GetOrCreateMock(id string) (*models.User, error) {
	var user *models.User
	if id != "" {
		u, err := s.users.GetByID(id)
		switch {
		case err == nil:
			user = u
		case !errors.Is(err, models.ErrNotFound):
			return nil, err
		}
	}
	if user == nil {
		u, err := s.users.First()
		switch {
		case err == nil:
			user = u
		case errors.Is(err, models.ErrNotFound):
			user = newMockUser("CampusGoUser", "Felix")
			if err := s.users.Create(user); err != nil {
				return nil, err
			}
		default:
			return nil, err
		}
	}
	if err := s.users.LoadStats(user); err != nil {
		return nil, err
	}
	return user, nil
}

// SwitchUser creates a new random mock identity for testing.
func (s *UserService) SwitchUser() (*models.User, error) {
	seed := fmt.Sprintf("%s%d", avatarSeeds[rand.Intn(len(avatarSeeds))], time.Now().UnixMilli())
	user := newMockUser(fmt.Sprintf("User_%d", rand.Intn(1000)), seed)
	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func newMockUser(nickname, avatarSeed string) *models.User {
	return &models.User{
		ID:                uuid.NewString(),
		OpenID:            fmt.Sprintf("mock_openid_%d", time.Now().UnixNano()),
		Nickname:          nickname,
		AvatarURL:         "https://api.dicebear.com/7.x/avataaars/svg?seed=" + avatarSeed,
		RatingAsRequester: 5.0,
		RatingAsRunner:    5.0,
		Preferences:       datatypes.JSON([]byte("[]")),
	}
}

func (s *UserService) ListRecent() ([]models.UserSummary, error) {
	return s.users.ListRecent(10)
}

// UpdatePreferences stores a new preference blob. The payload is parsed
// first so malformed data is rejected at write time instead of silently
// breaking matching later.
func (s *UserService) UpdatePreferences(id string, raw json.RawMessage) error {
	if id == "" {
		return fmt.Errorf("%w: id is required", models.ErrValidation)
	}
	if _, err := matching.Parse(raw); err != nil {
		return fmt.Errorf("%w: %v", models.ErrValidation, err)
	}
	return s.users.UpdatePreferences(id, datatypes.JSON(raw))
}

func (s *UserService) UpdateProfile(id, nickname, avatarURL string) error {
	if id == "" {
		return fmt.Errorf("%w: id is required", models.ErrValidation)
	}
	if nickname == "" {
		return fmt.Errorf("%w: nickname is required", models.ErrValidation)
	}
	return s.users.UpdateProfile(id, nickname, avatarURL)
}
