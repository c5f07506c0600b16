package mapper

import (
	"nagrik-mitra-be/internal/entity"
	"nagrik-mitra-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type SchemeMapper struct{}

func NewSchemeMapper() *SchemeMapper {
	return &SchemeMapper{}
}

func (m *SchemeMapper) ToEntity(s *model.Scheme) *entity.Scheme {
	if s == nil {
		return nil
	}
	return &entity.Scheme{
		Id:                s.Id,
		Title:             s.Title,
		Description:       s.Description,
		Category:          s.Category,
		Eligibility:       s.Eligibility,
		Benefits:          s.Benefits,
		Link:              s.Link,
		EligibilityFields: jsonToStrings(s.EligibilityFields),
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

func (m *SchemeMapper) ToModel(s *entity.Scheme) *model.Scheme {
	if s == nil {
		return nil
	}
	return &model.Scheme{
		Id:                s.Id,
		Title:             s.Title,
		Description:       s.Description,
		Category:          s.Category,
		Eligibility:       s.Eligibility,
		Benefits:          s.Benefits,
		Link:              s.Link,
		EligibilityFields: stringsToJSON(s.EligibilityFields),
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

func (m *SchemeMapper) ToEntities(models []*model.Scheme) []*entity.Scheme {
	entities := make([]*entity.Scheme, 0, len(models))
	for _, ms := range models {
		entities = append(entities, m.ToEntity(ms))
	}
	return entities
}

type SchemeEmbeddingMapper struct{}

func NewSchemeEmbeddingMapper() *SchemeEmbeddingMapper {
	return &SchemeEmbeddingMapper{}
}

func (m *SchemeEmbeddingMapper) ToEntity(e *model.SchemeEmbedding) *entity.SchemeEmbedding {
	if e == nil {
		return nil
	}
	return &entity.SchemeEmbedding{
		Id:             e.Id,
		SchemeId:       e.SchemeId,
		ContentHash:    e.ContentHash,
		Document:       e.Document,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func (m *SchemeEmbeddingMapper) ToModel(e *entity.SchemeEmbedding) *model.SchemeEmbedding {
	if e == nil {
		return nil
	}
	return &model.SchemeEmbedding{
		Id:             e.Id,
		SchemeId:       e.SchemeId,
		ContentHash:    e.ContentHash,
		Document:       e.Document,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}
