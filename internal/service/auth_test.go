package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prasadvm/storekart/internal/tokens"
)

func TestRegisterUser(t *testing.T) {
	r := newTestRepo(t)
	svc := &AuthService{Repo: r, JWTSecret: []byte("test-secret")}

	user, err := svc.RegisterUser(context.Background(), "Asha", "9876543210", "password")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.NotEqual(t, "password", user.PasswordHash)

	_, err = svc.RegisterUser(context.Background(), "Other", "9876543210", "password")
	require.ErrorIs(t, err, ErrConflict)

	_, err = svc.RegisterUser(context.Background(), "", "123", "password")
	require.ErrorIs(t, err, ErrValidation)
}

func TestCheckUser(t *testing.T) {
	r := newTestRepo(t)
	svc := &AuthService{Repo: r, JWTSecret: []byte("test-secret")}

	action, err := svc.CheckUser(context.Background(), "9876543210")
	require.NoError(t, err)
	require.Equal(t, ActionSignup, action)

	_, err = svc.RegisterUser(context.Background(), "Asha", "9876543210", "password")
	require.NoError(t, err)

	action, err = svc.CheckUser(context.Background(), "9876543210")
	require.NoError(t, err)
	require.Equal(t, ActionLogin, action)
}

func TestLoginUser(t *testing.T) {
	r := newTestRepo(t)
	secret := []byte("test-secret")
	svc := &AuthService{Repo: r, JWTSecret: secret}

	registered, err := svc.RegisterUser(context.Background(), "Asha", "9876543210", "password")
	require.NoError(t, err)

	token, user, err := svc.LoginUser(context.Background(), "9876543210", "password")
	require.NoError(t, err)
	require.Equal(t, registered.ID, user.ID)

	parsed, err := tokens.ParseUserToken(token, secret)
	require.NoError(t, err)
	require.Equal(t, registered.ID, parsed)

	_, _, err = svc.LoginUser(context.Background(), "9876543210", "wrong")
	require.ErrorIs(t, err, ErrUnauthorized)

	_, _, err = svc.LoginUser(context.Background(), "0000000000", "password")
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestSellerFlow(t *testing.T) {
	r := newTestRepo(t)
	secret := []byte("test-secret")
	svc := &AuthService{Repo: r, JWTSecret: secret}

	action, id, err := svc.CheckSeller(context.Background(), "9000000001")
	require.NoError(t, err)
	require.Equal(t, ActionSignup, action)
	require.Empty(t, id)

	seller, err := svc.RegisterSeller(context.Background(), "Acme", "Ravi", "Pune", "9000000001", "password")
	require.NoError(t, err)

	_, err = svc.RegisterSeller(context.Background(), "Acme2", "Ravi", "Pune", "9000000001", "password")
	require.ErrorIs(t, err, ErrConflict)

	action, id, err = svc.CheckSeller(context.Background(), "9000000001")
	require.NoError(t, err)
	require.Equal(t, ActionLogin, action)
	require.Equal(t, seller.ID, id)

	token, got, err := svc.LoginSeller(context.Background(), "9000000001", "password")
	require.NoError(t, err)
	require.Equal(t, seller.ID, got.ID)

	parsed, err := tokens.ParseSellerToken(token, secret)
	require.NoError(t, err)
	require.Equal(t, seller.ID, parsed)

	// a seller token must not pass the user gate
	_, err = tokens.ParseUserToken(token, secret)
	require.Error(t, err)
}
