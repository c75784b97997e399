package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prasadvm/storekart/internal/logging"
	"github.com/prasadvm/storekart/internal/models"
	"github.com/prasadvm/storekart/internal/repo"
)

// totalTolerance absorbs float rounding between the client's arithmetic and
// ours; anything larger is a mismatched order and is rejected.
const totalTolerance = 0.01

type OrderService struct {
	Repo *repo.GormRepo
}

type OrderLineInput struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  uint      `json:"quantity"`
}

type CreateOrderInput struct {
	UserID          uuid.UUID
	Items           []OrderLineInput
	TotalAmount     float64
	ShippingAddress models.ShippingAddress
}

// CreateOrder snapshots the current name/price/image of every line into the
// order, so later product edits or deletes never alter order history. The
// declared total is verified against the snapshot sum.
func (s *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	if in.UserID == uuid.Nil {
		return nil, fmt.Errorf("%w: userId required", ErrValidation)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: items required", ErrValidation)
	}
	for _, line := range in.Items {
		if line.ProductID == uuid.Nil {
			return nil, fmt.Errorf("%w: productId required", ErrValidation)
		}
		if line.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
		}
	}
	ship := in.ShippingAddress
	if ship.Name == "" || ship.Mobile == "" || ship.Address == "" ||
		ship.City == "" || ship.State == "" || ship.Pincode == "" {
		return nil, fmt.Errorf("%w: shippingAddress required", ErrValidation)
	}

	var computed float64
	items := make([]models.OrderItem, 0, len(in.Items))
	for _, line := range in.Items {
		product, err := s.Repo.GetProduct(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: product %s not found", ErrNotFound, line.ProductID)
			}
			return nil, err
		}
		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  line.Quantity,
			Image:     product.Image,
		})
		computed += product.Price * float64(line.Quantity)
	}

	if math.Abs(computed-in.TotalAmount) > totalTolerance {
		return nil, fmt.Errorf("%w: totalAmount %.2f does not match order items total %.2f", ErrValidation, in.TotalAmount, computed)
	}

	order := models.Order{
		UserID:          in.UserID,
		Items:           items,
		TotalAmount:     in.TotalAmount,
		ShippingAddress: in.ShippingAddress,
		Status:          models.OrderStatusPending,
		PaymentStatus:   models.PaymentStatusPending,
		OrderDate:       time.Now().UTC(),
	}
	if err := s.Repo.CreateOrder(ctx, &order); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info("order_created", "order_id", order.ID, "user_id", order.UserID, "total", order.TotalAmount)
	return &order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order", ErrNotFound)
		}
		return nil, err
	}
	return order, nil
}

func (s *OrderService) ListUserOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	return s.Repo.ListOrdersByUser(ctx, userID)
}

// UpdateStatus validates the target literal only; any status may move to any
// other.
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: invalid status", ErrValidation)
	}
	order, err := s.Repo.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order", ErrNotFound)
		}
		return nil, err
	}
	logging.FromContext(ctx).Info("order_status_updated", "order_id", id, "status", status)
	return order, nil
}

type SellerOrder struct {
	models.Order
	SellerTotal float64 `json:"sellerTotal"`
}

// SellerOrders returns orders containing at least one of the seller's
// products, with each order's item list filtered down to the seller's lines.
func (s *OrderService) SellerOrders(ctx context.Context, sellerID uuid.UUID) ([]SellerOrder, error) {
	productIDs, err := s.Repo.SellerProductIDs(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	orders, err := s.Repo.ListOrdersWithProducts(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	owned := make(map[uuid.UUID]bool, len(productIDs))
	for _, id := range productIDs {
		owned[id] = true
	}

	result := make([]SellerOrder, 0, len(orders))
	for _, order := range orders {
		var lines []models.OrderItem
		var sellerTotal float64
		for _, item := range order.Items {
			if owned[item.ProductID] {
				lines = append(lines, item)
				sellerTotal += item.Price * float64(item.Quantity)
			}
		}
		if len(lines) == 0 {
			continue
		}
		order.Items = lines
		result = append(result, SellerOrder{Order: order, SellerTotal: sellerTotal})
	}
	return result, nil
}
