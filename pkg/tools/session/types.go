package session

// InitializeArgs starts a session. SessionID is optional; one is generated
// when it is empty, and supplying an existing id re-announces that session
// without touching its freshness records.
type InitializeArgs struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"description=Optional session identifier to adopt. A new one is generated when empty."`
}

// InitializeResponse carries the id every later tool call must pass.
type InitializeResponse struct {
	Success   bool   `json:"success"`
	SessionID string `json:"session_id"`
}

// ResetArgs drops every freshness record a session holds. Files on disk are
// untouched; the session simply has to read before it can edit again.
type ResetArgs struct {
	SessionID string `json:"session_id" jsonschema:"required,description=The session identifier whose freshness records are discarded." validate:"required"`
}

// ResetResponse reports how many records were dropped.
type ResetResponse struct {
	Success bool `json:"success"`
	Dropped int  `json:"dropped"`
}
