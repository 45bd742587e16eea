package models

// SessionState is the serialized payload kept server-side for a session id. Only the
// user id is stored; the User is re-read from storage on every request.
type SessionState struct {
	UserID int64 `json:"userId"`
}
