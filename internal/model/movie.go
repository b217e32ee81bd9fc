package model

import "github.com/google/uuid"

// SessionMovie is one candidate of a session's materialized list. Rows are
// written once by the materializer; Position fixes the shared ordering
// (first-seen order across catalog pages).
type SessionMovie struct {
	SessionID   uuid.UUID
	MovieID     int64
	Title       string
	PosterPath  string
	Overview    string
	ReleaseDate string
	Genres      []int64
	Rating      float64
	Position    int
}
