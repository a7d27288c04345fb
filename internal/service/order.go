package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/velmart/storefront/internal/events"
	"github.com/velmart/storefront/internal/models"
	"github.com/velmart/storefront/internal/repo"
	"github.com/velmart/storefront/internal/transport"
)

type OrderService struct {
	Repo     *repo.GormRepo
	Producer *events.Producer
}

// PlaceOrder prices the cart against the catalog and persists the order.
// Prices are read once up front and the order plus its line items land in
// one transaction, so a dangling product reference leaves nothing behind.
// The owner always comes from the verified token, never the body.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uint, req transport.PlaceOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: order items required", ErrValidation)
	}
	if req.Address == "" || req.City == "" || req.Phone == "" {
		return nil, fmt.Errorf("%w: address, city and phone are required", ErrValidation)
	}

	ids := make([]uint, 0, len(req.Items))
	for _, item := range req.Items {
		if item.ProductID == 0 {
			return nil, fmt.Errorf("%w: product id required", ErrValidation)
		}
		if item.Quantity == 0 {
			return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
		}
		ids = append(ids, item.ProductID)
	}

	products, err := s.Repo.ProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	var total float64
	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		product, ok := products[item.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: product %d not found", ErrBadReference, item.ProductID)
		}
		total += product.Price * float64(item.Quantity)
		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	status := req.Status
	if status == "" {
		status = "Pending"
	}

	order := &models.Order{
		Items:      items,
		Address:    req.Address,
		City:       req.City,
		Phone:      req.Phone,
		Status:     status,
		TotalPrice: total,
		UserID:     userID,
	}
	if err := s.Repo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	s.Producer.Publish(ctx, events.TopicOrderEvents, fmt.Sprint(userID), map[string]any{
		"type":    "order_created",
		"orderID": order.ID,
		"userID":  userID,
		"total":   order.TotalPrice,
	})

	return order, nil
}

// MyOrders returns the order history of requestedID, but only to that
// same identity.
func (s *OrderService) MyOrders(ctx context.Context, tokenUserID, requestedID uint) ([]models.Order, error) {
	if tokenUserID != requestedID {
		return nil, ErrForbidden
	}
	return s.Repo.OrdersByUser(ctx, requestedID)
}

func (s *OrderService) Order(ctx context.Context, id uint) (*models.Order, error) {
	order, err := s.Repo.OrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *OrderService) Orders(ctx context.Context) ([]models.Order, error) {
	return s.Repo.Orders(ctx)
}

func (s *OrderService) CountOrders(ctx context.Context) (int64, error) {
	return s.Repo.CountOrders(ctx)
}

// UpdateStatus is the only mutation an order allows after creation.
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, status string) (*models.Order, error) {
	if status == "" {
		return nil, fmt.Errorf("%w: status required", ErrValidation)
	}

	order, err := s.Repo.OrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	order.Status = status
	if err := s.Repo.SaveOrder(ctx, order); err != nil {
		return nil, err
	}

	s.Producer.Publish(ctx, events.TopicOrderEvents, fmt.Sprint(order.UserID), map[string]any{
		"type":    "order_status_changed",
		"orderID": order.ID,
		"status":  order.Status,
	})

	return order, nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteOrder(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.Producer.Publish(ctx, events.TopicOrderEvents, fmt.Sprint(id), map[string]any{
		"type":    "order_deleted",
		"orderID": id,
	})

	return nil
}
