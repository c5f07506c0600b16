package contract

import (
	"context"

	"nagrik-mitra-be/internal/entity"
	"nagrik-mitra-be/internal/repository/specification"

	"github.com/google/uuid"
)

type SchemeRepository interface {
	Create(ctx context.Context, scheme *entity.Scheme) error
	CreateBulk(ctx context.Context, schemes []*entity.Scheme) error
	Update(ctx context.Context, scheme *entity.Scheme) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Scheme, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Scheme, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
