package contract

import (
	"context"

	"nagrik-mitra-be/internal/entity"
	"nagrik-mitra-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// UpdateProfileFields writes only the given canonical profile fields,
	// leaving every other column untouched. Unknown field names are skipped.
	UpdateProfileFields(ctx context.Context, userId uuid.UUID, fields map[string]string) (*entity.User, error)
	UpdatePassword(ctx context.Context, userId uuid.UUID, hash string) error

	// Token Management
	CreatePasswordResetToken(ctx context.Context, token *entity.PasswordResetToken) error
	FindPasswordResetToken(ctx context.Context, specs ...specification.Specification) (*entity.PasswordResetToken, error)
	MarkTokenUsed(ctx context.Context, id uuid.UUID) error
}
