package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSchemeRequest struct {
	Title             string   `json:"title" validate:"required,max=255"`
	Description       string   `json:"description" validate:"required"`
	Category          string   `json:"category" validate:"max=100"`
	Eligibility       string   `json:"eligibility"`
	Benefits          string   `json:"benefits"`
	Link              string   `json:"link"`
	EligibilityFields []string `json:"eligibility_fields,omitempty"`
}

type UpdateSchemeRequest struct {
	Id                uuid.UUID `json:"-"`
	Title             string    `json:"title" validate:"required,max=255"`
	Description       string    `json:"description" validate:"required"`
	Category          string    `json:"category" validate:"max=100"`
	Eligibility       string    `json:"eligibility"`
	Benefits          string    `json:"benefits"`
	Link              string    `json:"link"`
	EligibilityFields []string  `json:"eligibility_fields,omitempty"`
}

// BulkCreateSchemesRequest carries pre-parsed import rows. CSV parsing and
// validation happen client-side before upload.
type BulkCreateSchemesRequest struct {
	Schemes []CreateSchemeRequest `json:"schemes" validate:"required,min=1,dive"`
}

type SchemeResponse struct {
	Id                uuid.UUID  `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Category          string     `json:"category"`
	Eligibility       string     `json:"eligibility"`
	Benefits          string     `json:"benefits"`
	Link              string     `json:"link"`
	EligibilityFields []string   `json:"eligibility_fields,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty"`
}

type BulkCreateSchemesResponse struct {
	Created int `json:"created"`
}

// PublishEmbedSchemeMessage is the watermill payload asking the consumer to
// (re)compute a scheme's summary embedding.
type PublishEmbedSchemeMessage struct {
	SchemeId uuid.UUID `json:"scheme_id"`
}
