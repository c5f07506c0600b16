package contract

import (
	"context"

	"nagrik-mitra-be/internal/entity"
	"nagrik-mitra-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	DeleteByChatSessionId(ctx context.Context, chatSessionId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	// FindRecent returns at most limit messages for the session, oldest first.
	FindRecent(ctx context.Context, chatSessionId uuid.UUID, limit int) ([]*entity.ChatMessage, error)
}
