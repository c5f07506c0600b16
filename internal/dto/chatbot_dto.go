package dto

import (
	"time"

	"github.com/google/uuid"
)

// SlotFillingDTO mirrors the client-held pending-slot state. The client echoes
// back whatever the previous response carried; the server treats it as the
// authoritative dialogue state for the turn.
type SlotFillingDTO struct {
	Field    string     `json:"field"`
	SchemeId *uuid.UUID `json:"scheme_id,omitempty"`
}

type CreateChatSessionRequest struct {
	Title string `json:"title" validate:"max=255"`
}

type UpdateChatSessionRequest struct {
	Title string `json:"title" validate:"required,max=255"`
}

type SendChatRequest struct {
	ChatSessionId *uuid.UUID      `json:"chat_session_id"`
	Chat          string          `json:"chat" validate:"required"`
	SlotFilling   *SlotFillingDTO `json:"slot_filling,omitempty"`
}

type MatchedSchemeDTO struct {
	Name            string `json:"name"`
	Category        string `json:"category"`
	Description     string `json:"description"`
	Eligibility     string `json:"eligibility"`
	Benefits        string `json:"benefits"`
	ApplicationLink string `json:"applicationLink,omitempty"`
}

type SendChatResponse struct {
	ChatSessionId    uuid.UUID          `json:"chat_session_id"`
	Output           string             `json:"output"`
	NeedsProfileField string            `json:"needs_profile_field,omitempty"`
	SlotFilling      *SlotFillingDTO    `json:"slot_filling,omitempty"`
	Schemes          []MatchedSchemeDTO `json:"schemes,omitempty"`
}

type ChatSessionResponse struct {
	Id        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatMessageResponse struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Chat      string    `json:"chat"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatHistoryResponse struct {
	ChatSessionId uuid.UUID             `json:"chat_session_id"`
	Messages      []ChatMessageResponse `json:"messages"`
}
