package contract

import (
	"context"

	"nagrik-mitra-be/internal/entity"
	"nagrik-mitra-be/internal/repository/specification"

	"github.com/google/uuid"
)

type SchemeEmbeddingRepository interface {
	// Upsert inserts the embedding or replaces the existing row for the same
	// scheme. One cached vector per scheme.
	Upsert(ctx context.Context, embedding *entity.SchemeEmbedding) error
	DeleteBySchemeId(ctx context.Context, schemeId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SchemeEmbedding, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SchemeEmbedding, error)
	// FindBySchemeIds fetches the cached rows for a scheme set in one query.
	// Schemes without a cached row are simply absent from the result.
	FindBySchemeIds(ctx context.Context, schemeIds []uuid.UUID) ([]*entity.SchemeEmbedding, error)
}
