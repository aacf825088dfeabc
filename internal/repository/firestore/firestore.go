package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"depanku-backend/internal/repository"
)

const (
	opportunitiesCollection = "opportunities"
	applicationsCollection  = "applications"
)

// Store bundles the Firestore-backed repositories.
type Store struct {
	client *firestore.Client

	OpportunityRepository repository.OpportunityRepository
	ApplicationRepository repository.ApplicationRepository
}

// NewStore opens a Firestore client from the shared Firebase app.
func NewStore(ctx context.Context, app *firebase.App) (*Store, error) {
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open firestore client: %w", err)
	}
	return &Store{
		client:                client,
		OpportunityRepository: newOpportunityRepository(client),
		ApplicationRepository: newApplicationRepository(client),
	}, nil
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

// isNotFound reports whether err is Firestore's missing-document signal.
func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}
