package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/prasadvm/storekart/internal/models"
)

func (r *GormRepo) CreateSeller(ctx context.Context, seller *models.Seller) error {
	return r.DB.WithContext(ctx).Create(seller).Error
}

func (r *GormRepo) GetSeller(ctx context.Context, id uuid.UUID) (*models.Seller, error) {
	var seller models.Seller
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&seller).Error; err != nil {
		return nil, err
	}
	return &seller, nil
}

func (r *GormRepo) FindSellerByMobile(ctx context.Context, mobile string) (*models.Seller, error) {
	var seller models.Seller
	if err := r.DB.WithContext(ctx).Where("mobile = ?", mobile).First(&seller).Error; err != nil {
		return nil, err
	}
	return &seller, nil
}
