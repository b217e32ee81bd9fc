package model

import (
	"time"

	"github.com/google/uuid"
)

type Status = string

const (
	StatusWaiting     Status = "waiting"
	StatusConfiguring Status = "configuring"
	StatusMatching    Status = "matching"
	StatusCompleted   Status = "completed"
)

// legalTransitions holds the only edges of the session state machine.
// matching -> completed is per-user and implicit; it never touches the row.
var legalTransitions = map[Status]Status{
	StatusWaiting:     StatusConfiguring,
	StatusConfiguring: StatusMatching,
}

func IsLegalTransition(from, to Status) bool {
	next, ok := legalTransitions[from]
	return ok && next == to
}

type Session struct {
	ID                 uuid.UUID
	OwnerID            uuid.UUID
	Status             Status
	JoinCode           string
	PlatformSelections SelectionSet
	GenreSelections    SelectionSet
	SelectionsVersion  int64
	MoviesFetched      bool
	Matches            []int64
	CreatedAt          time.Time
}

type Participant struct {
	ID        uuid.UUID
	SessionID uuid.UUID
	UserID    uuid.UUID
	JoinedAt  time.Time
}
