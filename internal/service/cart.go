package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prasadvm/storekart/internal/config"
	"github.com/prasadvm/storekart/internal/logging"
	"github.com/prasadvm/storekart/internal/models"
	"github.com/prasadvm/storekart/internal/repo"
)

// CartService recomputes the cart total from live catalog prices on every
// access. Prices stored on a line item are never trusted; price drift between
// add-to-cart and checkout display is accepted.
type CartService struct {
	Repo          *repo.GormRepo
	MissingPolicy config.MissingProductPolicy
}

type CartLine struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"productId"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Image       string    `json:"image"`
	Quantity    uint      `json:"quantity"`
	Subtotal    float64   `json:"subtotal"`
	Unavailable bool      `json:"unavailable,omitempty"`
}

type CartView struct {
	Items         []CartLine `json:"items"`
	TotalAmount   float64    `json:"totalAmount"`
	TotalQuantity uint       `json:"totalQuantity"`
}

// GetCart lazily creates the cart, recomputes the total and applies the
// missing-product policy to lines whose product has been deleted.
func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*CartView, error) {
	var view *CartView
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		cart, err := tx.GetOrCreateCart(ctx, userID)
		if err != nil {
			return err
		}
		view, err = s.refresh(ctx, tx, cart, s.MissingPolicy == config.PruneMissing)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *CartService) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity uint) (*CartView, error) {
	if productID == uuid.Nil {
		return nil, fmt.Errorf("%w: product id required", ErrValidation)
	}
	if quantity == 0 {
		quantity = 1
	}

	var view *CartView
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		if _, err := tx.GetProduct(ctx, productID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: product", ErrNotFound)
			}
			return err
		}

		cart, err := tx.GetOrCreateCart(ctx, userID)
		if err != nil {
			return err
		}

		found := false
		for i := range cart.Items {
			if cart.Items[i].ProductID == productID {
				cart.Items[i].Quantity += quantity
				if err := tx.SaveCartItem(ctx, &cart.Items[i]); err != nil {
					return err
				}
				found = true
				break
			}
		}
		if !found {
			item := models.CartItem{CartID: cart.ID, ProductID: productID, Quantity: quantity}
			if err := tx.CreateCartItem(ctx, &item); err != nil {
				return err
			}
		}

		view, err = s.reload(ctx, tx, cart.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info("cart_item_added", "user_id", userID, "product_id", productID)
	return view, nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, quantity uint) (*CartView, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}

	var view *CartView
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		cart, err := tx.GetCartByUser(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: cart", ErrNotFound)
			}
			return err
		}

		found := false
		for i := range cart.Items {
			if cart.Items[i].ProductID == productID {
				cart.Items[i].Quantity = quantity
				if err := tx.SaveCartItem(ctx, &cart.Items[i]); err != nil {
					return err
				}
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: item not in cart", ErrNotFound)
		}

		view, err = s.reload(ctx, tx, cart.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// RemoveItem filters out the matching line. Removing an absent line is a
// silent no-op, not an error.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*CartView, error) {
	var view *CartView
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		cart, err := tx.GetCartByUser(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: cart", ErrNotFound)
			}
			return err
		}

		if _, err := tx.DeleteCartItem(ctx, cart.ID, productID); err != nil {
			return err
		}

		view, err = s.reload(ctx, tx, cart.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) (*CartView, error) {
	var view *CartView
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		cart, err := tx.GetCartByUser(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: cart", ErrNotFound)
			}
			return err
		}
		if err := tx.ClearCartItems(ctx, cart.ID); err != nil {
			return err
		}
		if err := tx.SetCartTotal(ctx, cart.ID, 0); err != nil {
			return err
		}
		view = &CartView{Items: []CartLine{}}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *CartService) reload(ctx context.Context, tx *repo.GormRepo, cartID uuid.UUID) (*CartView, error) {
	cart, err := tx.GetCartByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	// Mutations never prune: the read path owns the missing-product policy.
	return s.refresh(ctx, tx, cart, false)
}

// refresh recomputes totalAmount = Σ(livePrice × quantity) over the cart's
// lines, persists it, and builds the enriched view. Lines whose product no
// longer exists are dropped when prune is set, otherwise returned flagged
// unavailable and excluded from the total.
func (s *CartService) refresh(ctx context.Context, tx *repo.GormRepo, cart *models.Cart, prune bool) (*CartView, error) {
	view := &CartView{Items: make([]CartLine, 0, len(cart.Items))}

	for i := range cart.Items {
		item := &cart.Items[i]
		product, err := tx.GetProduct(ctx, item.ProductID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			if prune {
				if _, err := tx.DeleteCartItem(ctx, cart.ID, item.ProductID); err != nil {
					return nil, err
				}
				continue
			}
			view.Items = append(view.Items, CartLine{
				ID:          item.ID,
				ProductID:   item.ProductID,
				Quantity:    item.Quantity,
				Unavailable: true,
			})
			continue
		}

		subtotal := product.Price * float64(item.Quantity)
		view.Items = append(view.Items, CartLine{
			ID:        item.ID,
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Image:     product.Image,
			Quantity:  item.Quantity,
			Subtotal:  subtotal,
		})
		view.TotalAmount += subtotal
		view.TotalQuantity += item.Quantity
	}

	if err := tx.SetCartTotal(ctx, cart.ID, view.TotalAmount); err != nil {
		return nil, err
	}
	return view, nil
}
