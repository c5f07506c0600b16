package store

// PendingSlot is the one profile attribute the assistant is currently
// waiting for. At most one slot is pending per session.
type PendingSlot struct {
	Field    string `json:"field"`
	SchemeId string `json:"scheme_id,omitempty"`
}

// Session mirrors the dialogue state for an active chat session. The client
// echoes the same state back on every turn; this copy only serves reconnects
// where the echo was lost.
type Session struct {
	ID     string `json:"id"` // ChatSessionID
	UserID string `json:"user_id"`

	PendingSlot *PendingSlot `json:"pending_slot"`

	LastQuery    string `json:"last_query"`
	LastLanguage string `json:"last_language"` // "english" | "hindi" | "hinglish"
}
