package dto

import (
	"time"

	"github.com/google/uuid"
)

type ProfileResponse struct {
	Id                   uuid.UUID         `json:"id"`
	Email                string            `json:"email"`
	FullName             string            `json:"full_name"`
	Fields               map[string]string `json:"fields"`
	InterestedCategories []string          `json:"interested_categories,omitempty"`
	Languages            []string          `json:"languages,omitempty"`
	CreatedAt            time.Time         `json:"created_at"`
}

// UpdateProfileRequest is a partial field map: only the keys present are
// written. Unknown field names are rejected by the service.
type UpdateProfileRequest struct {
	Fields map[string]string `json:"fields" validate:"required,min=1"`
}
