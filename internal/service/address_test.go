package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/prasadvm/storekart/internal/models"
)

func addressInput(name string, isDefault bool) AddressInput {
	return AddressInput{
		Name:      name,
		Mobile:    "9876543210",
		Address:   "12 Main St",
		City:      "Pune",
		State:     "MH",
		Pincode:   "411001",
		IsDefault: isDefault,
	}
}

func countDefaults(t *testing.T, svc *AddressService, userID uuid.UUID) int {
	t.Helper()
	var n int64
	require.NoError(t, svc.Repo.DB.Model(&models.Address{}).
		Where("user_id = ? AND is_default = ?", userID, true).Count(&n).Error)
	return int(n)
}

func TestAddAddressValidation(t *testing.T) {
	r := newTestRepo(t)
	svc := &AddressService{Repo: r}

	in := addressInput("Asha", false)
	in.Pincode = ""
	_, err := svc.Add(context.Background(), uuid.New(), in)
	require.ErrorIs(t, err, ErrValidation)
}

func TestDefaultAddressInvariant(t *testing.T) {
	r := newTestRepo(t)
	svc := &AddressService{Repo: r}
	userID := uuid.New()

	first, err := svc.Add(context.Background(), userID, addressInput("Home", true))
	require.NoError(t, err)
	require.True(t, first.IsDefault)

	second, err := svc.Add(context.Background(), userID, addressInput("Office", true))
	require.NoError(t, err)
	require.True(t, second.IsDefault)
	require.Equal(t, 1, countDefaults(t, svc, userID))

	// toggling via update keeps the invariant
	_, err = svc.Update(context.Background(), userID, first.ID, addressInput("Home", true))
	require.NoError(t, err)
	require.Equal(t, 1, countDefaults(t, svc, userID))

	got, err := svc.SetDefault(context.Background(), userID, second.ID)
	require.NoError(t, err)
	require.True(t, got.IsDefault)
	require.Equal(t, 1, countDefaults(t, svc, userID))
}

func TestSetDefaultDoesNotLeakAcrossUsers(t *testing.T) {
	r := newTestRepo(t)
	svc := &AddressService{Repo: r}
	alice := uuid.New()
	bob := uuid.New()

	_, err := svc.Add(context.Background(), alice, addressInput("Home", true))
	require.NoError(t, err)
	_, err = svc.Add(context.Background(), bob, addressInput("Home", true))
	require.NoError(t, err)

	require.Equal(t, 1, countDefaults(t, svc, alice))
	require.Equal(t, 1, countDefaults(t, svc, bob))
}

func TestAddressOwnership(t *testing.T) {
	r := newTestRepo(t)
	svc := &AddressService{Repo: r}
	owner := uuid.New()

	address, err := svc.Add(context.Background(), owner, addressInput("Home", false))
	require.NoError(t, err)

	stranger := uuid.New()
	_, err = svc.Update(context.Background(), stranger, address.ID, addressInput("Hacked", false))
	require.ErrorIs(t, err, ErrNotFound)

	err = svc.Delete(context.Background(), stranger, address.ID)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.SetDefault(context.Background(), stranger, address.ID)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.Delete(context.Background(), owner, address.ID))
	list, err := svc.List(context.Background(), owner)
	require.NoError(t, err)
	require.Empty(t, list)
}
