package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prasadvm/storekart/internal/models"
)

func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Create(order).Error
}

func (r *GormRepo) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").
		Where("user_id = ?", userID).
		Order("order_date DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// ListOrdersWithProducts returns orders containing at least one line for any
// of the given product ids, newest first.
func (r *GormRepo) ListOrdersWithProducts(ctx context.Context, productIDs []uuid.UUID) ([]models.Order, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}
	sub := r.DB.Model(&models.OrderItem{}).
		Select("order_id").
		Where("product_id IN ?", productIDs)

	var orders []models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").
		Where("id IN (?)", sub).
		Order("order_date DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error) {
	res := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetOrder(ctx, id)
}
