package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Scheme is a government welfare/benefit program. Immutable during a
// dialogue turn; edited only through the admin endpoints.
type Scheme struct {
	Id          uuid.UUID
	Title       string
	Description string
	Category    string
	Eligibility string
	Benefits    string
	Link        string

	// EligibilityFields optionally lists the profile attributes needed to
	// assess this scheme. When empty the dialogue policy infers them from
	// the eligibility text.
	EligibilityFields []string

	CreatedAt time.Time
	UpdatedAt *time.Time
}

// SummaryText is the document that gets embedded for semantic matching.
func (s *Scheme) SummaryText() string {
	var b strings.Builder
	b.WriteString("Title: ")
	b.WriteString(s.Title)
	b.WriteString("\nDescription: ")
	b.WriteString(s.Description)
	b.WriteString("\nCategory: ")
	b.WriteString(s.Category)
	b.WriteString("\nEligibility: ")
	b.WriteString(s.Eligibility)
	return b.String()
}

// SchemeEmbedding caches the embedding of a scheme's summary text, keyed by
// scheme id plus a hash of the summary. A stale hash means the scheme was
// edited and the vector must be recomputed.
type SchemeEmbedding struct {
	Id             uuid.UUID
	SchemeId       uuid.UUID
	ContentHash    string
	Document       string
	EmbeddingValue []float32
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}
