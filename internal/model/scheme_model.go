package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Scheme struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text;not null"`
	Category    string    `gorm:"type:varchar(100);index"`
	Eligibility string    `gorm:"type:text"`
	Benefits    string    `gorm:"type:text"`
	Link        string    `gorm:"type:text"`

	// Optional explicit list of required profile attributes; JSON array of
	// field names. Null means "infer from eligibility text".
	EligibilityFields datatypes.JSON `gorm:"type:jsonb"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt *time.Time     `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Scheme) TableName() string {
	return "schemes"
}
