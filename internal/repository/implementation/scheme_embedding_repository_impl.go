package implementation

import (
	"context"
	"errors"

	"nagrik-mitra-be/internal/entity"
	"nagrik-mitra-be/internal/mapper"
	"nagrik-mitra-be/internal/model"
	"nagrik-mitra-be/internal/repository/contract"
	"nagrik-mitra-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SchemeEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SchemeEmbeddingMapper
}

func NewSchemeEmbeddingRepository(db *gorm.DB) contract.SchemeEmbeddingRepository {
	return &SchemeEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewSchemeEmbeddingMapper(),
	}
}

func (r *SchemeEmbeddingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SchemeEmbeddingRepositoryImpl) Upsert(ctx context.Context, embedding *entity.SchemeEmbedding) error {
	m := r.mapper.ToModel(embedding)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "scheme_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"content_hash", "document", "embedding_value", "updated_at"}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*embedding = *r.mapper.ToEntity(m)
	return nil
}

func (r *SchemeEmbeddingRepositoryImpl) DeleteBySchemeId(ctx context.Context, schemeId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("scheme_id = ?", schemeId).Delete(&model.SchemeEmbedding{}).Error
}

func (r *SchemeEmbeddingRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SchemeEmbedding, error) {
	var m model.SchemeEmbedding
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SchemeEmbeddingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SchemeEmbedding, error) {
	var models []*model.SchemeEmbedding
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.SchemeEmbedding, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *SchemeEmbeddingRepositoryImpl) FindBySchemeIds(ctx context.Context, schemeIds []uuid.UUID) ([]*entity.SchemeEmbedding, error) {
	if len(schemeIds) == 0 {
		return nil, nil
	}
	return r.FindAll(ctx, specification.BySchemeIDs{SchemeIDs: schemeIds})
}
