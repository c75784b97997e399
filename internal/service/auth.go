package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prasadvm/storekart/internal/hash"
	"github.com/prasadvm/storekart/internal/logging"
	"github.com/prasadvm/storekart/internal/models"
	"github.com/prasadvm/storekart/internal/repo"
	"github.com/prasadvm/storekart/internal/tokens"
)

// Probe results for the check endpoints: the client decides whether to show
// the signup or the password form.
const (
	ActionSignup = "signup"
	ActionLogin  = "login"
)

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
}

func (s *AuthService) RegisterUser(ctx context.Context, name, mobile, password string) (*models.User, error) {
	if name == "" || mobile == "" || password == "" {
		return nil, fmt.Errorf("%w: name, mobile and password required", ErrValidation)
	}

	if _, err := s.Repo.FindUserByMobile(ctx, mobile); err == nil {
		return nil, fmt.Errorf("%w: user with this number already exists", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{Name: name, Mobile: mobile, PasswordHash: pwHash}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info("user_registered", "user_id", user.ID)
	return &user, nil
}

func (s *AuthService) CheckUser(ctx context.Context, mobile string) (string, error) {
	if mobile == "" {
		return "", fmt.Errorf("%w: mobile required", ErrValidation)
	}
	if _, err := s.Repo.FindUserByMobile(ctx, mobile); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ActionSignup, nil
		}
		return "", err
	}
	return ActionLogin, nil
}

func (s *AuthService) LoginUser(ctx context.Context, mobile, password string) (string, *models.User, error) {
	if mobile == "" || password == "" {
		return "", nil, fmt.Errorf("%w: mobile and password required", ErrValidation)
	}

	user, err := s.Repo.FindUserByMobile(ctx, mobile)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
		}
		return "", nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return "", nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	token, err := tokens.SignUserToken(user.ID, s.JWTSecret)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.Repo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) RegisterSeller(ctx context.Context, companyName, owner, operatingCity, mobile, password string) (*models.Seller, error) {
	if companyName == "" || owner == "" || mobile == "" || password == "" {
		return nil, fmt.Errorf("%w: companyname, owner, mobile and password required", ErrValidation)
	}

	if _, err := s.Repo.FindSellerByMobile(ctx, mobile); err == nil {
		return nil, fmt.Errorf("%w: seller with this number already exists", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	seller := models.Seller{
		CompanyName:   companyName,
		Owner:         owner,
		OperatingCity: operatingCity,
		Mobile:        mobile,
		PasswordHash:  pwHash,
	}
	if err := s.Repo.CreateSeller(ctx, &seller); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info("seller_registered", "seller_id", seller.ID)
	return &seller, nil
}

// CheckSeller also returns the seller id on a hit so the client can carry it
// into the login step.
func (s *AuthService) CheckSeller(ctx context.Context, mobile string) (string, uuid.UUID, error) {
	if mobile == "" {
		return "", uuid.Nil, fmt.Errorf("%w: mobile required", ErrValidation)
	}
	seller, err := s.Repo.FindSellerByMobile(ctx, mobile)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ActionSignup, uuid.Nil, nil
		}
		return "", uuid.Nil, err
	}
	return ActionLogin, seller.ID, nil
}

func (s *AuthService) LoginSeller(ctx context.Context, mobile, password string) (string, *models.Seller, error) {
	if mobile == "" || password == "" {
		return "", nil, fmt.Errorf("%w: mobile and password required", ErrValidation)
	}

	seller, err := s.Repo.FindSellerByMobile(ctx, mobile)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
		}
		return "", nil, err
	}
	if !hash.CheckPassword(seller.PasswordHash, password) {
		return "", nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	token, err := tokens.SignSellerToken(seller.ID, s.JWTSecret)
	if err != nil {
		return "", nil, err
	}
	return token, seller, nil
}
