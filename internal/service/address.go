package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prasadvm/storekart/internal/models"
	"github.com/prasadvm/storekart/internal/repo"
)

// AddressService keeps the invariant that at most one address per user has
// isDefault set. Clear-siblings-then-set always runs in one transaction.
type AddressService struct {
	Repo *repo.GormRepo
}

type AddressInput struct {
	Name      string `json:"name"`
	Mobile    string `json:"mobile"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Pincode   string `json:"pincode"`
	IsDefault bool   `json:"isDefault"`
}

func (in *AddressInput) validate() error {
	if in.Name == "" || in.Mobile == "" || in.Address == "" ||
		in.City == "" || in.State == "" || in.Pincode == "" {
		return fmt.Errorf("%w: all fields are required", ErrValidation)
	}
	return nil
}

func (s *AddressService) Add(ctx context.Context, userID uuid.UUID, in AddressInput) (*models.Address, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	address := models.Address{
		UserID:    userID,
		Name:      in.Name,
		Mobile:    in.Mobile,
		Address:   in.Address,
		City:      in.City,
		State:     in.State,
		Pincode:   in.Pincode,
		IsDefault: in.IsDefault,
	}

	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		if err := tx.CreateAddress(ctx, &address); err != nil {
			return err
		}
		if address.IsDefault {
			return tx.ClearDefaults(ctx, userID, address.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &address, nil
}

func (s *AddressService) List(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {
	return s.Repo.ListAddresses(ctx, userID)
}

func (s *AddressService) Update(ctx context.Context, userID, id uuid.UUID, in AddressInput) (*models.Address, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var updated *models.Address
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		address, err := tx.GetAddress(ctx, id, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: address", ErrNotFound)
			}
			return err
		}

		address.Name = in.Name
		address.Mobile = in.Mobile
		address.Address = in.Address
		address.City = in.City
		address.State = in.State
		address.Pincode = in.Pincode
		address.IsDefault = in.IsDefault

		if err := tx.SaveAddress(ctx, address); err != nil {
			return err
		}
		if address.IsDefault {
			if err := tx.ClearDefaults(ctx, userID, address.ID); err != nil {
				return err
			}
		}
		updated = address
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *AddressService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	deleted, err := s.Repo.DeleteAddress(ctx, id, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: address", ErrNotFound)
	}
	return nil
}

// SetDefault atomically clears every other default and sets the target.
func (s *AddressService) SetDefault(ctx context.Context, userID, id uuid.UUID) (*models.Address, error) {
	var address *models.Address
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		if err := tx.SetDefault(ctx, id, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: address", ErrNotFound)
			}
			return err
		}
		if err := tx.ClearDefaults(ctx, userID, id); err != nil {
			return err
		}
		var err error
		address, err = tx.GetAddress(ctx, id, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return address, nil
}
