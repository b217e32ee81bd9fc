package usecase_vote

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mkrogh/reelmatch/internal/model"
)

var (
	ErrInternal         = errors.New("internal error")
	ErrResourceNotFound = errors.New("no such resource")
)

// A movie matches when everyone who voted on it liked it, and at least this
// many did. Unanimity is over voters-so-far, not the whole roster, so a slow
// or departed participant never deadlocks the session.
const minMatchLikes = 2

//go:generate mockery --name=ResponseRepository --output=./mocks/repository --filename=repository.go
type ResponseRepository interface {
	// Insert records the vote; inserted=false means the (session, user, movie)
	// response already existed and nothing was written.
	Insert(ctx context.Context, response model.Response) (inserted bool, err error)
	// VoteCounts returns distinct likers and distinct responders for one movie.
	VoteCounts(ctx context.Context, sessionID uuid.UUID, movieID int64) (likes, total int, err error)
	// UnvotedRemaining counts list items the user has not voted on yet.
	UnvotedRemaining(ctx context.Context, sessionID, userID uuid.UUID) (int, error)
}

//go:generate mockery --name=MatchRepository --output=./mocks/matches --filename=matches.go
type MatchRepository interface {
	// AppendMatch adds movieID to the session's match list if absent, in a
	// single conditional write. appended=false means it was already there.
	AppendMatch(ctx context.Context, sessionID uuid.UUID, movieID int64) (appended bool, err error)
	Matches(ctx context.Context, sessionID uuid.UUID) ([]int64, error)
}

//go:generate mockery --name=Notifier --output=./mocks/notifier --filename=notifier.go
type Notifier interface {
	Publish(ctx context.Context, event model.SessionEvent) error
}

type Usecase struct {
	responses ResponseRepository
	matches   MatchRepository
	notifier  Notifier
}

func New(responses ResponseRepository, matches MatchRepository, notifier Notifier) *Usecase {
	return &Usecase{
		responses: responses,
		matches:   matches,
		notifier:  notifier,
	}
}

// Vote records one like/dislike and re-evaluates the match predicate for the
// movie. A repeated vote is a soft conflict: nothing is written, no match
// check runs, but the caller's cursor still advances.
func (u *Usecase) Vote(ctx context.Context, sessionID, userID uuid.UUID, movieID int64, liked bool) (model.VoteOutcome, error) {
	inserted, err := u.responses.Insert(ctx, model.Response{
		ID:        uuid.New(),
		SessionID: sessionID,
		UserID:    userID,
		MovieID:   movieID,
		Liked:     liked,
	})
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return model.VoteOutcome{}, ErrResourceNotFound
		}
		return model.VoteOutcome{}, errors.Join(ErrInternal, err)
	}

	outcome := model.VoteOutcome{}

	if inserted && liked {
		matched, err := u.evaluateMatch(ctx, sessionID, movieID)
		if err != nil {
			return model.VoteOutcome{}, err
		}
		outcome.Matched = matched
	}

	remaining, err := u.responses.UnvotedRemaining(ctx, sessionID, userID)
	if err != nil {
		return model.VoteOutcome{}, errors.Join(ErrInternal, err)
	}
	outcome.Advanced = remaining > 0

	return outcome, nil
}

// evaluateMatch applies the L >= 2 && L == T rule. The predicate is monotonic
// and order-independent, so re-running it on every liked vote is safe; the
// append itself re-checks presence so a double evaluation cannot duplicate.
func (u *Usecase) evaluateMatch(ctx context.Context, sessionID uuid.UUID, movieID int64) (bool, error) {
	likes, total, err := u.responses.VoteCounts(ctx, sessionID, movieID)
	if err != nil {
		return false, errors.Join(ErrInternal, err)
	}
	if likes < minMatchLikes || likes != total {
		return false, nil
	}

	appended, err := u.matches.AppendMatch(ctx, sessionID, movieID)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return false, ErrResourceNotFound
		}
		return false, errors.Join(ErrInternal, err)
	}
	if appended {
		_ = u.notifier.Publish(ctx, model.SessionEvent{
			SessionID: sessionID,
			Type:      model.EventMatchFound,
			Payload:   map[string]any{"movie_id": movieID},
		})
	}
	return true, nil
}

func (u *Usecase) Matches(ctx context.Context, sessionID uuid.UUID) ([]int64, error) {
	matches, err := u.matches.Matches(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, errors.Join(ErrInternal, err)
	}
	return matches, nil
}
