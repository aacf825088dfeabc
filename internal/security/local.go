package security

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UserClaims is the local development token payload.
type UserClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

type localVerifier struct {
	secret []byte
}

// NewLocalVerifier builds an HS256 verifier for development setups that have
// no Firebase project. The subject claim carries the user id.
func NewLocalVerifier(secret string) TokenVerifier {
	return &localVerifier{secret: []byte(secret)}
}

func (v *localVerifier) Verify(_ context.Context, tokenString string) (*AuthUser, error) {
	claims := &UserClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &AuthUser{UID: claims.Subject, Email: claims.Email}, nil
}

// GenerateLocalToken mints a development token. Used by tooling and tests,
// never in the firebase auth mode.
func GenerateLocalToken(secret, uid, email string, ttl time.Duration) (string, error) {
	claims := UserClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
