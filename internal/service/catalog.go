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

type CatalogService struct {
	Repo *repo.GormRepo
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product", ErrNotFound)
		}
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.Repo.ListProducts(ctx)
}

func (s *CatalogService) ListByCategory(ctx context.Context, category string) ([]models.Product, error) {
	return s.Repo.ListProductsByCategory(ctx, category)
}

func (s *CatalogService) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]models.Product, error) {
	return s.Repo.ListProductsBySeller(ctx, sellerID)
}

func (s *CatalogService) CreateProduct(ctx context.Context, product *models.Product) error {
	if product.Name == "" {
		return fmt.Errorf("%w: name required", ErrValidation)
	}
	if product.Price < 0 {
		return fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	return s.Repo.CreateProduct(ctx, product)
}

// UpdateProduct enforces ownership: only the owning seller may touch a
// product.
func (s *CatalogService) UpdateProduct(ctx context.Context, sellerID, productID uuid.UUID, apply func(*models.Product)) (*models.Product, error) {
	product, err := s.Repo.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product", ErrNotFound)
		}
		return nil, err
	}
	if product.SellerID != sellerID {
		return nil, fmt.Errorf("%w: you can only update your own products", ErrForbidden)
	}

	apply(product)
	if product.Price < 0 {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	if err := s.Repo.SaveProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, sellerID, productID uuid.UUID) error {
	product, err := s.Repo.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product", ErrNotFound)
		}
		return err
	}
	if product.SellerID != sellerID {
		return fmt.Errorf("%w: you can only delete your own products", ErrForbidden)
	}
	return s.Repo.DeleteProduct(ctx, productID)
}
