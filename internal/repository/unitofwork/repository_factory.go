package unitofwork

import "context"

// RepositoryFactory hands out fresh units of work. Services depend on this
// instead of *gorm.DB so tests can substitute in-memory repositories.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
