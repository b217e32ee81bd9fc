package model

import (
	"time"

	"github.com/google/uuid"
)

// Response is a single like/dislike. At most one per (session, user, movie);
// never updated, removed only by cascade.
type Response struct {
	ID        uuid.UUID
	SessionID uuid.UUID
	UserID    uuid.UUID
	MovieID   int64
	Liked     bool
	CreatedAt time.Time
}

// VoteOutcome tells the caller whether its cursor may advance and whether the
// vote completed a match.
type VoteOutcome struct {
	Advanced bool
	Matched  bool
}
