package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// HeaderName is the non-standard bearer header the clients send.
const HeaderName = "auth-token"

// TokenTTL is fixed: tokens are self-contained with no revocation, a
// compromised token stays valid until natural expiry.
const TokenTTL = 30 * 24 * time.Hour

var ErrInvalidClaims = errors.New("invalid token claims")

type Subject struct {
	ID uuid.UUID `json:"id"`
}

type UserClaims struct {
	User Subject `json:"user"`
	jwt.RegisteredClaims
}

type SellerClaims struct {
	Seller Subject `json:"seller"`
	jwt.RegisteredClaims
}

func SignUserToken(userID uuid.UUID, secret []byte) (string, error) {
	claims := UserClaims{
		User: Subject{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

func SignSellerToken(sellerID uuid.UUID, secret []byte) (string, error) {
	claims := SellerClaims{
		Seller: Subject{ID: sellerID},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

func ParseUserToken(tokenStr string, secret []byte) (uuid.UUID, error) {
	var claims UserClaims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return secret, nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	if !tkn.Valid {
		return uuid.Nil, jwt.ErrTokenUnverifiable
	}
	if claims.User.ID == uuid.Nil {
		return uuid.Nil, ErrInvalidClaims
	}
	return claims.User.ID, nil
}

func ParseSellerToken(tokenStr string, secret []byte) (uuid.UUID, error) {
	var claims SellerClaims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return secret, nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	if !tkn.Valid {
		return uuid.Nil, jwt.ErrTokenUnverifiable
	}
	if claims.Seller.ID == uuid.Nil {
		return uuid.Nil, ErrInvalidClaims
	}
	return claims.Seller.ID, nil
}
