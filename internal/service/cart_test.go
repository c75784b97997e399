package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/prasadvm/storekart/internal/config"
	"github.com/prasadvm/storekart/internal/models"
)

func TestAddItemIncrementsExistingLine(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r, MissingPolicy: config.PruneMissing}
	userID := uuid.New()
	product := seedProduct(t, r, uuid.New(), "lamp", 40)

	_, err := svc.AddItem(context.Background(), userID, product.ID, 2)
	require.NoError(t, err)

	view, err := svc.AddItem(context.Background(), userID, product.ID, 3)
	require.NoError(t, err)

	require.Len(t, view.Items, 1)
	require.Equal(t, uint(5), view.Items[0].Quantity)
	require.Equal(t, float64(200), view.TotalAmount)
	require.Equal(t, uint(5), view.TotalQuantity)
}

func TestAddItemDefaultsQuantityToOne(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r, MissingPolicy: config.PruneMissing}
	product := seedProduct(t, r, uuid.New(), "mug", 7.5)

	view, err := svc.AddItem(context.Background(), uuid.New(), product.ID, 0)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	require.Equal(t, uint(1), view.Items[0].Quantity)
	require.Equal(t, 7.5, view.TotalAmount)
}

func TestAddItemUnknownProduct(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r, MissingPolicy: config.PruneMissing}

	_, err := svc.AddItem(context.Background(), uuid.New(), uuid.New(), 1)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateQuantityRejectsZero(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r, MissingPolicy: config.PruneMissing}

	_, err := svc.UpdateQuantity(context.Background(), uuid.New(), uuid.New(), 0)
	require.ErrorIs(t, err, ErrValidation)
}

func TestUpdateQuantityAbsentLine(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r, MissingPolicy: config.PruneMissing}
	userID := uuid.New()
	product := seedProduct(t, r, uuid.New(), "chair", 100)

	_, err := svc.AddItem(context.Background(), userID, product.ID, 1)
	require.NoError(t, err)

	_, err = svc.UpdateQuantity(context.Background(), userID, uuid.New(), 2)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateQuantityOverwrites(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r, MissingPolicy: config.PruneMissing}
	userID := uuid.New()
	product := seedProduct(t, r, uuid.New(), "desk", 250)

	_, err := svc.AddItem(context.Background(), userID, product.ID, 4)
	require.NoError(t, err)

	view, err := svc.UpdateQuantity(context.Background(), userID, product.ID, 2)
	require.NoError(t, err)
	require.Equal(t, uint(2), view.Items[0].Quantity)
	require.Equal(t, float64(500), view.TotalAmount)
}

func TestRemoveAbsentLineIsNoOp(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r, MissingPolicy: config.PruneMissing}
	userID := uuid.New()

	_, err := svc.GetCart(context.Background(), userID)
	require.NoError(t, err)

	view, err := svc.RemoveItem(context.Background(), userID, uuid.New())
	require.NoError(t, err)
	require.Empty(t, view.Items)
}

func TestCartTotalTracksLivePrice(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r, MissingPolicy: config.PruneMissing}
	userID := uuid.New()
	product := seedProduct(t, r, uuid.New(), "monitor", 300)

	_, err := svc.AddItem(context.Background(), userID, product.ID, 2)
	require.NoError(t, err)

	product.Price = 250
	require.NoError(t, r.SaveProduct(context.Background(), product))

	view, err := svc.GetCart(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, float64(500), view.TotalAmount)
	require.Equal(t, float64(250), view.Items[0].Price)

	var stored models.Cart
	require.NoError(t, r.DB.Where("user_id = ?", userID).First(&stored).Error)
	require.Equal(t, float64(500), stored.TotalAmount)
}

func TestMissingProductPruned(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r, MissingPolicy: config.PruneMissing}
	userID := uuid.New()
	kept := seedProduct(t, r, uuid.New(), "keyboard", 80)
	gone := seedProduct(t, r, uuid.New(), "mouse", 20)

	_, err := svc.AddItem(context.Background(), userID, kept.ID, 1)
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), userID, gone.ID, 1)
	require.NoError(t, err)

	require.NoError(t, r.DeleteProduct(context.Background(), gone.ID))

	view, err := svc.GetCart(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	require.Equal(t, kept.ID, view.Items[0].ProductID)
	require.Equal(t, float64(80), view.TotalAmount)

	var count int64
	require.NoError(t, r.DB.Model(&models.CartItem{}).Where("product_id = ?", gone.ID).Count(&count).Error)
	require.Zero(t, count)
}

func TestMissingProductKeptWhenConfigured(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r, MissingPolicy: config.KeepMissing}
	userID := uuid.New()
	gone := seedProduct(t, r, uuid.New(), "cable", 10)

	_, err := svc.AddItem(context.Background(), userID, gone.ID, 3)
	require.NoError(t, err)
	require.NoError(t, r.DeleteProduct(context.Background(), gone.ID))

	view, err := svc.GetCart(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	require.True(t, view.Items[0].Unavailable)
	require.Zero(t, view.TotalAmount)
}

func TestClearCart(t *testing.T) {
	r := newTestRepo(t)
	svc := &CartService{Repo: r, MissingPolicy: config.PruneMissing}
	userID := uuid.New()
	product := seedProduct(t, r, uuid.New(), "shelf", 60)

	_, err := svc.AddItem(context.Background(), userID, product.ID, 2)
	require.NoError(t, err)

	view, err := svc.Clear(context.Background(), userID)
	require.NoError(t, err)
	require.Empty(t, view.Items)
	require.Zero(t, view.TotalAmount)

	view, err = svc.GetCart(context.Background(), userID)
	require.NoError(t, err)
	require.Empty(t, view.Items)
}
