package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prasadvm/storekart/internal/models"
)

func (r *GormRepo) CreateAddress(ctx context.Context, address *models.Address) error {
	return r.DB.WithContext(ctx).Create(address).Error
}

func (r *GormRepo) GetAddress(ctx context.Context, id, userID uuid.UUID) (*models.Address, error) {
	var address models.Address
	if err := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&address).Error; err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *GormRepo) ListAddresses(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {
	var addresses []models.Address
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&addresses).Error; err != nil {
		return nil, err
	}
	return addresses, nil
}

func (r *GormRepo) SaveAddress(ctx context.Context, address *models.Address) error {
	return r.DB.WithContext(ctx).Save(address).Error
}

func (r *GormRepo) DeleteAddress(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	res := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Address{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ClearDefaults unsets isDefault on every address of the user except the one
// given. Callers run it inside the same transaction as the set.
func (r *GormRepo) ClearDefaults(ctx context.Context, userID, exceptID uuid.UUID) error {
	return r.DB.WithContext(ctx).Model(&models.Address{}).
		Where("user_id = ? AND id <> ? AND is_default = ?", userID, exceptID, true).
		Update("is_default", false).Error
}

func (r *GormRepo) SetDefault(ctx context.Context, id, userID uuid.UUID) error {
	res := r.DB.WithContext(ctx).Model(&models.Address{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_default", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
