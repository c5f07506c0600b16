package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type SchemeEmbedding struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SchemeId       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	ContentHash    string          `gorm:"type:varchar(64);not null"`
	Document       string          `gorm:"type:text"`
	EmbeddingValue pgvector.Vector `gorm:"type:vector(768)"` // Gemini text-embedding-004 uses 768 dimensions
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
	UpdatedAt      *time.Time      `gorm:"autoUpdateTime"`
}

func (SchemeEmbedding) TableName() string {
	return "scheme_embeddings"
}
