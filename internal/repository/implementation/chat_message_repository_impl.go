package implementation

import (
	"context"

	"nagrik-mitra-be/internal/entity"
	"nagrik-mitra-be/internal/mapper"
	"nagrik-mitra-be/internal/model"
	"nagrik-mitra-be/internal/repository/contract"
	"nagrik-mitra-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatMessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewChatMessageRepository(db *gorm.DB) contract.ChatMessageRepository {
	return &ChatMessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *ChatMessageRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChatMessageRepositoryImpl) Create(ctx context.Context, message *entity.ChatMessage) error {
	m := r.mapper.MessageToModel(message)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*message = *r.mapper.MessageToEntity(m)
	return nil
}

func (r *ChatMessageRepositoryImpl) DeleteByChatSessionId(ctx context.Context, chatSessionId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("chat_session_id = ?", chatSessionId).Delete(&model.ChatMessage{}).Error
}

func (r *ChatMessageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	var models []*model.ChatMessage
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	messages := make([]*entity.ChatMessage, len(models))
	for i, m := range models {
		messages[i] = r.mapper.MessageToEntity(m)
	}
	return messages, nil
}

// FindRecent fetches the newest messages then reverses so callers get them
// oldest first, ready to feed the prompt builder.
func (r *ChatMessageRepositoryImpl) FindRecent(ctx context.Context, chatSessionId uuid.UUID, limit int) ([]*entity.ChatMessage, error) {
	if limit <= 0 {
		limit = 5
	}
	var models []*model.ChatMessage
	err := r.db.WithContext(ctx).
		Where("chat_session_id = ?", chatSessionId).
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	messages := make([]*entity.ChatMessage, len(models))
	for i, m := range models {
		messages[len(models)-1-i] = r.mapper.MessageToEntity(m)
	}
	return messages, nil
}
