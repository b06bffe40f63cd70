package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"campus-errand-api/matching"
	"campus-errand-api/models"
	"campus-errand-api/repository"
	"campus-errand-api/statemachine"
)

// OrderService drives the errand order lifecycle and the notification
// fan-out attached to each transition.
type OrderService struct {
	orders        repository.OrderRepository
	users         repository.UserRepository
	notifications *NotificationService
	log           *logrus.Logger
}

func NewOrderService(orders repository.OrderRepository, users repository.UserRepository, notifications *NotificationService, log *logrus.Logger) *OrderService {
	return &OrderService{orders: orders, users: users, notifications: notifications, log: log}
}

type CreateOrderInput struct {
	RequesterID      string
	Type             models.OrderType
	Description      string
	PickupLocation   string
	DeliveryLocation string
	Price            float64
	RequesterWechat  string
	TimeRequirement  string
	ExtraNeeds       string
}

// Create publishes a new order, notifies the requester, and fans out
// recommendation notifications to every runner whose preferences match.
func (s *OrderService) Create(in CreateOrderInput) (*models.Order, error) {
	if err := s.validateCreate(in); err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(in.RequesterID); err != nil {
		return nil, err
	}

	order := &models.Order{
		ID:               uuid.NewString(),
		RequesterID:      in.RequesterID,
		Type:             in.Type,
		Description:      in.Description,
		PickupLocation:   in.PickupLocation,
		DeliveryLocation: in.DeliveryLocation,
		Price:            in.Price,
		RequesterWechat:  in.RequesterWechat,
		Status:           models.StatusPending,
		TimeRequirement:  in.TimeRequirement,
		ExtraNeeds:       in.ExtraNeeds,
	}
	if err := s.orders.Create(order); err != nil {
		return nil, err
	}

	s.notifications.Notify(order.RequesterID, "发布成功",
		fmt.Sprintf("您的订单 \"%s\" 已发布，请耐心等待接单。", order.Description))
	s.notifyMatchingRunners(order)

	return order, nil
}

func (s *OrderService) validateCreate(in CreateOrderInput) error {
	switch {
	case in.RequesterID == "":
		return fmt.Errorf("%w: requester_id is required", models.ErrValidation)
	case !models.ValidOrderType(in.Type):
		return fmt.Errorf("%w: unknown order type %q", models.ErrValidation, in.Type)
	case in.Description == "":
		return fmt.Errorf("%w: description is required", models.ErrValidation)
	case in.PickupLocation == "" || in.DeliveryLocation == "":
		return fmt.Errorf("%w: pickup and delivery locations are required", models.ErrValidation)
	case in.Price <= 0:
		return fmt.Errorf("%w: price must be positive", models.ErrValidation)
	case in.RequesterWechat == "":
		return fmt.Errorf("%w: requester_wechat is required", models.ErrValidation)
	}
	return nil
}

// notifyMatchingRunners evaluates every other user's preferences against the
// new order. Matching is best-effort per candidate: a malformed preference
// blob skips that candidate only.
func (s *OrderService) notifyMatchingRunners(order *models.Order) {
	candidates, err := s.users.ListCandidates(order.RequesterID)
	if err != nil {
		s.log.WithError(err).WithField("order_id", order.ID).Error("failed to load candidate runners")
		return
	}
	for i := range candidates {
		prefs, err := matching.Parse(candidates[i].Preferences)
		if err != nil {
			s.log.WithError(err).WithField("user_id", candidates[i].ID).Warn("skipping candidate with malformed preferences")
			continue
		}
		if !prefs.Matches(order) {
			continue
		}
		s.notifications.Notify(candidates[i].ID, "新任务推荐", "有你感兴趣的订单发布了："+order.Description)
	}
}

func (s *OrderService) Get(orderID string) (*models.Order, error) {
	return s.orders.GetByID(orderID)
}

func (s *OrderService) List(filter repository.OrderFilter) ([]models.OrderListItem, error) {
	return s.orders.List(filter)
}

// UpdateStatus dispatches a requested transition to its lifecycle operation.
func (s *OrderService) UpdateStatus(orderID string, status models.OrderStatus, runnerID string) (*models.Order, error) {
	switch status {
	case models.StatusAccepted:
		return s.Accept(orderID, runnerID)
	case models.StatusCompletedByRunner:
		return s.Complete(orderID)
	case models.StatusConfirmed:
		return s.Confirm(orderID)
	case models.StatusCancelled:
		return s.Cancel(orderID)
	default:
		return nil, fmt.Errorf("%w: unknown target status %q", models.ErrValidation, status)
	}
}

// Accept assigns a runner to a pending order. The accept-race is resolved by
// the conditional update in the repository: when two runners race, exactly
// one row change happens and the loser sees ErrConflict.
func (s *OrderService) Accept(orderID, runnerID string) (*models.Order, error) {
	if runnerID == "" {
		return nil, fmt.Errorf("%w: runner_id is required to accept", models.ErrValidation)
	}
	runner, err := s.users.GetByID(runnerID)
	if err != nil {
		return nil, err
	}
	// No pre-check here: once two runners race, only the conditional
	// update can be trusted to pick the winner.
	if err := s.orders.Accept(orderID, runnerID); err != nil {
		return nil, err
	}
	order, err := s.orders.GetByID(orderID)
	if err != nil {
		return nil, err
	}

	s.notifications.Notify(order.RequesterID, "订单被接单",
		fmt.Sprintf("您的订单已被 %s 接单。", runner.Nickname))

	return order, nil
}

// Complete marks an accepted order as delivered by the runner.
func (s *OrderService) Complete(orderID string) (*models.Order, error) {
	order, err := s.orders.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if err := statemachine.CanTransition(order.Status, models.StatusCompletedByRunner, statemachine.ActorRunner); err != nil {
		return nil, err
	}
	if err := s.orders.UpdateStatusFrom(orderID,
		[]models.OrderStatus{models.StatusAccepted}, models.StatusCompletedByRunner); err != nil {
		return nil, err
	}

	s.notifications.Notify(order.RequesterID, "订单已送达", "接单人已确认送达，请您确认完成。")

	return s.orders.GetByID(orderID)
}

// Confirm lets the requester close out a delivered order.
func (s *OrderService) Confirm(orderID string) (*models.Order, error) {
	order, err := s.orders.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if err := statemachine.CanTransition(order.Status, models.StatusConfirmed, statemachine.ActorRequester); err != nil {
		return nil, err
	}
	if err := s.orders.UpdateStatusFrom(orderID,
		[]models.OrderStatus{models.StatusCompletedByRunner}, models.StatusConfirmed); err != nil {
		return nil, err
	}

	if order.RunnerID != nil {
		s.notifications.Notify(*order.RunnerID, "订单已完成", "下单人已确认完成，请自行联系结算赏金。")
	}

	return s.orders.GetByID(orderID)
}

// Cancel terminates a pending or accepted order, notifying both parties.
func (s *OrderService) Cancel(orderID string) (*models.Order, error) {
	order, err := s.orders.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if err := statemachine.CanTransition(order.Status, models.StatusCancelled, statemachine.ActorRequester); err != nil {
		return nil, err
	}
	if err := s.orders.UpdateStatusFrom(orderID,
		[]models.OrderStatus{models.StatusPending, models.StatusAccepted}, models.StatusCancelled); err != nil {
		return nil, err
	}

	if order.RunnerID != nil {
		s.notifications.Notify(*order.RunnerID, "订单已取消", "下单人取消了订单。")
	}
	s.notifications.Notify(order.RequesterID, "订单已取消", "订单已成功取消。")

	return s.orders.GetByID(orderID)
}

// CancelAcceptance lets the assigned runner abandon an accepted order,
// returning it to the lobby. Any other caller gets ErrUnauthorized.
func (s *OrderService) CancelAcceptance(orderID, runnerID string) (*models.Order, error) {
	if runnerID == "" {
		return nil, fmt.Errorf("%w: runner_id is required", models.ErrValidation)
	}
	order, err := s.orders.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if err := statemachine.CanTransition(order.Status, models.StatusPending, statemachine.ActorRunner); err != nil {
		return nil, err
	}
	if err := s.orders.ReleaseAcceptance(orderID, runnerID); err != nil {
		return nil, err
	}

	s.notifications.Notify(order.RequesterID, "接单人取消", "接单人取消了接单，您的订单已重新回到任务大厅。")

	return s.orders.GetByID(orderID)
}
