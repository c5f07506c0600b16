package unitofwork

import (
	"context"

	"nagrik-mitra-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	SchemeRepository() contract.SchemeRepository
	SchemeEmbeddingRepository() contract.SchemeEmbeddingRepository
	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
}
