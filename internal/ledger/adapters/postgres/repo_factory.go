package postgres

import (
	"finledger/internal/ledger/ports/repositories"
)

// RepositoryFactory builds the Postgres repositories over one pool.
type RepositoryFactory struct {
	entryRepo repositories.EntryRepository
	userRepo  repositories.UserRepository
}

// NewRepositoryFactory creates the repositories sharing pool.
func NewRepositoryFactory(pool PgxPoolInterface) *RepositoryFactory {
	return &RepositoryFactory{
		entryRepo: NewEntryRepository(pool),
		userRepo:  NewUserRepository(pool),
	}
}

// EntryRepository returns the entry repository.
func (f *RepositoryFactory) EntryRepository() repositories.EntryRepository {
	return f.entryRepo
}

// UserRepository returns the user repository.
func (f *RepositoryFactory) UserRepository() repositories.UserRepository {
	return f.userRepo
}
