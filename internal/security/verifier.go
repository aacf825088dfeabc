package security

import (
	"context"
	"errors"
	"fmt"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// AuthUser is the verified identity attached to a request.
type AuthUser struct {
	UID   string
	Email string
}

// TokenVerifier turns a bearer token into an identity. The firebase
// implementation verifies Firebase ID tokens; the local implementation
// validates HS256 JWTs for development without Firebase credentials.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*AuthUser, error)
}

type firebaseVerifier struct {
	client *fbauth.Client
}

// NewFirebaseVerifier builds a verifier from the shared Firebase app.
func NewFirebaseVerifier(ctx context.Context, app *firebase.App) (TokenVerifier, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase auth: %w", err)
	}
	return &firebaseVerifier{client: client}, nil
}

func (v *firebaseVerifier) Verify(ctx context.Context, token string) (*AuthUser, error) {
	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	email, _ := decoded.Claims["email"].(string)
	return &AuthUser{UID: decoded.UID, Email: email}, nil
}
