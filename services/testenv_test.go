package services

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"campus-errand-api/config"
	"campus-errand-api/models"
	"campus-errand-api/repository"
)

// testEnv wires the full service stack over a throwaway sqlite database.
type testEnv struct {
	userRepo         repository.UserRepository
	orderRepo        repository.OrderRepository
	reviewRepo       repository.ReviewRepository
	notificationRepo repository.NotificationRepository

	notifications *NotificationService
	orders        *OrderService
	reviews       *ReviewService
	users         *UserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := config.InitDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	env := &testEnv{
		userRepo:         repository.NewUserRepository(db),
		orderRepo:        repository.NewOrderRepository(db),
		reviewRepo:       repository.NewReviewRepository(db),
		notificationRepo: repository.NewNotificationRepository(db),
	}
	env.notifications = NewNotificationService(env.notificationRepo, log)
	env.orders = NewOrderService(env.orderRepo, env.userRepo, env.notifications, log)
	env.reviews = NewReviewService(env.reviewRepo, env.orderRepo, env.userRepo, log)
	env.users = NewUserService(env.userRepo, log)
	return env
}

func (e *testEnv) createUser(t *testing.T, nickname, preferences string) *models.User {
	t.Helper()
	user := &models.User{
		ID:                uuid.NewString(),
		OpenID:            "openid_" + uuid.NewString(),
		Nickname:          nickname,
		RatingAsRequester: 5.0,
		RatingAsRunner:    5.0,
	}
	if preferences != "" {
		user.Preferences = datatypes.JSON([]byte(preferences))
	}
	if err := e.userRepo.Create(user); err != nil {
		t.Fatalf("create user %s: %v", nickname, err)
	}
	return user
}

func (e *testEnv) createOrder(t *testing.T, requesterID string, orderType models.OrderType, price float64) *models.Order {
	t.Helper()
	order, err := e.orders.Create(CreateOrderInput{
		RequesterID:      requesterID,
		Type:             orderType,
		Description:      "帮我带一份黄焖鸡",
		PickupLocation:   "二食堂",
		DeliveryLocation: "宿舍楼 3 栋",
		Price:            price,
		RequesterWechat:  "wx_test",
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	return order
}

// notificationTitles returns the titles of all notifications for a user.
func (e *testEnv) notificationTitles(t *testing.T, userID string) []string {
	t.Helper()
	notifications, err := e.notificationRepo.ListByUser(userID)
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	titles := make([]string, 0, len(notifications))
	for _, n := range notifications {
		titles = append(titles, n.Title)
	}
	return titles
}

func hasTitle(titles []string, want string) bool {
	for _, title := range titles {
		if strings.Contains(title, want) {
			return true
		}
	}
	return false
}
