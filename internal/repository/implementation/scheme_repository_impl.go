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
)

type SchemeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SchemeMapper
}

func NewSchemeRepository(db *gorm.DB) contract.SchemeRepository {
	return &SchemeRepositoryImpl{
		db:     db,
		mapper: mapper.NewSchemeMapper(),
	}
}

func (r *SchemeRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SchemeRepositoryImpl) Create(ctx context.Context, scheme *entity.Scheme) error {
	m := r.mapper.ToModel(scheme)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*scheme = *r.mapper.ToEntity(m)
	return nil
}

func (r *SchemeRepositoryImpl) CreateBulk(ctx context.Context, schemes []*entity.Scheme) error {
	if len(schemes) == 0 {
		return nil
	}
	models := make([]*model.Scheme, len(schemes))
	for i, s := range schemes {
		models[i] = r.mapper.ToModel(s)
	}
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*schemes[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *SchemeRepositoryImpl) Update(ctx context.Context, scheme *entity.Scheme) error {
	m := r.mapper.ToModel(scheme)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*scheme = *r.mapper.ToEntity(m)
	return nil
}

func (r *SchemeRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Scheme{}).Error
}

func (r *SchemeRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Scheme, error) {
	var m model.Scheme
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SchemeRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Scheme, error) {
	var models []*model.Scheme
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *SchemeRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Scheme{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
