package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}

type BySchemeID struct {
	SchemeID uuid.UUID
}

func (s BySchemeID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("scheme_id = ?", s.SchemeID)
}

type BySchemeIDs struct {
	SchemeIDs []uuid.UUID
}

func (s BySchemeIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("scheme_id IN ?", s.SchemeIDs)
}
