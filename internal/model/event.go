package model

import "github.com/google/uuid"

// Session events mirror row mutations of the backing store. The notifier
// fans them out to subscribed clients; the store itself stays the single
// source of truth.
const (
	EventStatusChanged     = "STATUS_CHANGED"
	EventParticipantJoined = "PARTICIPANT_JOINED"
	EventParticipantLeft   = "PARTICIPANT_LEFT"
	EventSelectionsUpdated = "SELECTIONS_UPDATED"
	EventMoviesReady       = "MOVIES_READY"
	EventMatchFound        = "MATCH_FOUND"
	EventSessionDeleted    = "SESSION_DELETED"
)

type SessionEvent struct {
	SessionID uuid.UUID      `json:"session_id"`
	Type      string         `json:"type"`
	Payload   map[string]any `json:"payload,omitempty"`
}
