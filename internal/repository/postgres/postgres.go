package postgres

import (
	"database/sql"

	"depanku-backend/internal/repository"
)

// Store bundles the PostgreSQL-backed repositories.
type Store struct {
	OpportunityRepository repository.OpportunityRepository
	ApplicationRepository repository.ApplicationRepository
}

// NewStore creates repositories sharing one database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{
		OpportunityRepository: NewOpportunityRepository(db),
		ApplicationRepository: NewApplicationRepository(db),
	}
}
