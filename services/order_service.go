package services

import (
	"context"
	"errors"
	"time"

	"restaurant-service/apperrors"
	"restaurant-service/auth"
	"restaurant-service/kafka"
	"restaurant-service/models"
	"restaurant-service/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OrderService defines the business logic for orders, including the
// cart-to-order commit workflow.
type OrderService interface {
	CommitOrder(ctx context.Context, id *auth.Identity, req *models.CreateOrderRequest) (*models.Order, *apperrors.Error)
	ListOrders(ctx context.Context, id *auth.Identity, page, limit int) (*models.OrderListResponse, *apperrors.Error)
	GetOrder(ctx context.Context, id *auth.Identity, orderID uuid.UUID) (*models.Order, *apperrors.Error)
	UpdateOrder(ctx context.Context, id *auth.Identity, orderID uuid.UUID, req *models.UpdateOrderRequest) (*models.Order, *apperrors.Error)
	DeleteOrder(ctx context.Context, id *auth.Identity, orderID uuid.UUID) *apperrors.Error
}

type orderServiceImpl struct {
	orders     repository.OrderRepository
	users      repository.UserRepository
	commitLock repository.CommitLock
	producer   kafka.ProducerAPI
	logger     *zap.Logger
}

// NewOrderService creates a new OrderService. The producer may be nil when
// event publishing is disabled.
func NewOrderService(
	orders repository.OrderRepository,
	users repository.UserRepository,
	commitLock repository.CommitLock,
	producer kafka.ProducerAPI,
	logger *zap.Logger,
) OrderService {
	return &orderServiceImpl{
		orders:     orders,
		users:      users,
		commitLock: commitLock,
		producer:   producer,
		logger:     logger,
	}
}

// CommitOrder converts the caller's cart into an immutable order. The total
// is always server-computed from the cart snapshot, so a client can never
// tamper with pricing. Committing an empty cart is rejected. A per-user lock
// turns overlapping commits into a conflict instead of a double-billed race.
func (s *orderServiceImpl) CommitOrder(ctx context.Context, id *auth.Identity, req *models.CreateOrderRequest) (*models.Order, *apperrors.Error) {
	if authErr := auth.Authorize(id, auth.ActionWrite, auth.ResourceOrder); authErr != nil {
		return nil, authErr
	}

	acquired, err := s.commitLock.Acquire(ctx, id.UserID)
	if err != nil {
		s.logger.Error("Commit lock failed", zap.Error(err))
		return nil, apperrors.Internal("Failed to create order", err)
	}
	if !acquired {
		return nil, apperrors.Conflict("Another order is already being committed")
	}
	defer func() {
		if err := s.commitLock.Release(ctx, id.UserID); err != nil {
			s.logger.Warn("Commit lock release failed", zap.Error(err))
		}
	}()

	date := models.Today()
	if req != nil && req.Date != nil {
		date = *req.Date
	}

	order := &models.Order{
		OrderNumber: newOrderNumber(),
		UserID:      id.UserID,
		Status:      models.OrderStatusPending,
		Date:        date,
	}

	if err := s.orders.CreateFromCart(ctx, order); err != nil {
		if errors.Is(err, repository.ErrEmptyCart) {
			return nil, apperrors.Validation("Cannot commit an empty cart")
		}
		s.logger.Error("Order commit failed", zap.String("user_id", id.UserID.String()), zap.Error(err))
		return nil, apperrors.Internal("Failed to create order", err)
	}

	s.logger.Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.String("user_id", id.UserID.String()),
		zap.Float64("total", order.Total),
		zap.Int("items", len(order.OrderItems)),
	)

	s.publishOrderCreated(ctx, order)
	return order, nil
}

// ListOrders returns the caller's orders; Managers see every order.
func (s *orderServiceImpl) ListOrders(ctx context.Context, id *auth.Identity, page, limit int) (*models.OrderListResponse, *apperrors.Error) {
	if authErr := auth.Authorize(id, auth.ActionRead, auth.ResourceOrder); authErr != nil {
		return nil, authErr
	}

	var (
		orders []models.Order
		total  int64
		err    error
	)
	if id.IsManager() {
		orders, total, err = s.orders.FindAll(ctx, page, limit)
	} else {
		orders, total, err = s.orders.FindByUserID(ctx, id.UserID, page, limit)
	}
	if err != nil {
		s.logger.Error("Failed to list orders", zap.Error(err))
		return nil, apperrors.Internal("Failed to fetch orders", err)
	}

	return &models.OrderListResponse{
		Orders: orders,
		Meta: models.MetaData{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: calculateTotalPages(total, limit),
			HasMore:    total > int64(page*limit),
		},
	}, nil
}

// GetOrder returns a single order, visible to its owner, the assigned
// delivery crew member, and Managers.
func (s *orderServiceImpl) GetOrder(ctx context.Context, id *auth.Identity, orderID uuid.UUID) (*models.Order, *apperrors.Error) {
	if authErr := auth.Authorize(id, auth.ActionRead, auth.ResourceOrder); authErr != nil {
		return nil, authErr
	}

	order, svcErr := s.loadOrder(ctx, orderID)
	if svcErr != nil {
		return nil, svcErr
	}
	if !id.IsManager() && order.UserID != id.UserID && !assignedTo(order, id) {
		return nil, apperrors.Forbidden("Not your order")
	}
	return order, nil
}

// UpdateOrder changes an order's status or delivery crew assignment.
// Managers may change both; the assigned delivery crew member may change
// status only. The order's line items and total stay frozen, so an owner's
// update carries nothing updatable and fails validation rather than access.
func (s *orderServiceImpl) UpdateOrder(ctx context.Context, id *auth.Identity, orderID uuid.UUID, req *models.UpdateOrderRequest) (*models.Order, *apperrors.Error) {
	if authErr := auth.Authorize(id, auth.ActionWrite, auth.ResourceOrder); authErr != nil {
		return nil, authErr
	}

	order, svcErr := s.loadOrder(ctx, orderID)
	if svcErr != nil {
		return nil, svcErr
	}

	switch {
	case id.IsManager():
		if req.DeliveryCrewID != nil {
			crew, err := s.users.FindByID(ctx, *req.DeliveryCrewID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, apperrors.NotFound("Delivery crew user not found")
				}
				return nil, apperrors.Internal("Failed to update order", err)
			}
			if !crew.InGroup(models.GroupDeliveryCrew) {
				return nil, apperrors.Validation("Assignee is not in the Delivery-crew group")
			}
			order.DeliveryCrewID = req.DeliveryCrewID
		}
		if req.Status != nil {
			order.Status = *req.Status
		}

	case assignedTo(order, id):
		if req.DeliveryCrewID != nil {
			return nil, apperrors.Forbidden("Delivery crew cannot reassign orders")
		}
		if req.Status != nil {
			order.Status = *req.Status
		}

	case order.UserID == id.UserID:
		return nil, apperrors.Validation("Orders cannot be changed after commit")

	default:
		return nil, apperrors.Forbidden("Not allowed to modify this order")
	}

	if err := s.orders.Update(ctx, order); err != nil {
		s.logger.Error("Failed to update order", zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, apperrors.Internal("Failed to update order", err)
	}
	return order, nil
}

// DeleteOrder removes an order. Manager only.
func (s *orderServiceImpl) DeleteOrder(ctx context.Context, id *auth.Identity, orderID uuid.UUID) *apperrors.Error {
	if authErr := auth.Authorize(id, auth.ActionWrite, auth.ResourceOrder); authErr != nil {
		return authErr
	}
	if !id.IsManager() {
		return apperrors.Forbidden("Manager role required")
	}

	if err := s.orders.Delete(ctx, orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Order not found")
		}
		s.logger.Error("Failed to delete order", zap.String("order_id", orderID.String()), zap.Error(err))
		return apperrors.Internal("Failed to delete order", err)
	}
	return nil
}

func (s *orderServiceImpl) loadOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, *apperrors.Error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Order not found")
		}
		s.logger.Error("Failed to fetch order", zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, apperrors.Internal("Failed to fetch order", err)
	}
	return order, nil
}

// publishOrderCreated emits the order.created event. Best-effort: a publish
// failure is logged, never surfaced to the caller.
func (s *orderServiceImpl) publishOrderCreated(ctx context.Context, order *models.Order) {
	if s.producer == nil {
		return
	}

	items := make([]models.OrderCreatedItem, 0, len(order.OrderItems))
	for _, item := range order.OrderItems {
		items = append(items, models.OrderCreatedItem{
			MenuItemID: item.MenuItemID.String(),
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			Price:      item.Price,
		})
	}
	event := models.OrderCreatedEvent{
		Event:       "order.created",
		OrderID:     order.ID.String(),
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID.String(),
		Total:       order.Total,
		Items:       items,
		Timestamp:   time.Now(),
	}

	if err := s.producer.SendOrderCreated(ctx, event); err != nil {
		s.logger.Warn("order.created publish failed", zap.String("order_id", event.OrderID), zap.Error(err))
	}
}

// assignedTo reports whether the identity is the delivery crew member
// assigned to the order.
func assignedTo(order *models.Order, id *auth.Identity) bool {
	return id.IsDeliveryCrew() && order.DeliveryCrewID != nil && *order.DeliveryCrewID == id.UserID
}

func newOrderNumber() string {
	return "ORD-" + time.Now().Format("20060102-150405") + "-" + uuid.New().String()[:8]
}

func calculateTotalPages(total int64, limit int) int64 {
	if limit == 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}
