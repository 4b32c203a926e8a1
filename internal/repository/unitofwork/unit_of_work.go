package unitofwork

import (
	"context"

	"training-builder-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	SessionRepository() contract.SessionRepository
	TemplateRepository() contract.TemplateRepository
	CorpusRepository() contract.CorpusRepository
}
