package usecase_selection

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mkrogh/reelmatch/internal/model"
)

var (
	ErrInternal         = errors.New("internal error")
	ErrResourceNotFound = errors.New("no such resource")
	ErrVersionConflict  = errors.New("selections version conflict")
	ErrValidation       = errors.New("validation failed")
)

//go:generate mockery --name=SelectionRepository --output=./mocks/repository --filename=repository.go
type SelectionRepository interface {
	Selections(ctx context.Context, sessionID uuid.UUID) (platform, genre model.SelectionSet, version int64, err error)
	// CompareAndSetSelections persists both rich sets and their flattened id
	// projections in one update, conditional on the version read before the
	// merge. ErrVersionConflict means another writer got there first.
	CompareAndSetSelections(ctx context.Context, sessionID uuid.UUID, version int64, platform, genre model.SelectionSet) error
}

//go:generate mockery --name=Notifier --output=./mocks/notifier --filename=notifier.go
type Notifier interface {
	Publish(ctx context.Context, event model.SessionEvent) error
}

type Usecase struct {
	repository SelectionRepository
	notifier   Notifier
	now        func() time.Time
}

func New(repository SelectionRepository, notifier Notifier) *Usecase {
	return &Usecase{
		repository: repository,
		notifier:   notifier,
		now:        time.Now,
	}
}

// Toggles on a stale read retry against the fresh set instead of clobbering
// concurrent edits.
const casRetries = 5

// Toggle flips membership of itemID in the session's provider or genre set.
// Membership is keyed on the item id alone, so any participant removes an
// item regardless of who added it. Returns both sets after the write.
func (u *Usecase) Toggle(
	ctx context.Context,
	sessionID uuid.UUID,
	kind model.SelectionKind,
	itemID int64,
	userID uuid.UUID,
	username string,
) (platform, genre model.SelectionSet, err error) {
	if kind != model.SelectionProvider && kind != model.SelectionGenre {
		return nil, nil, errors.Join(ErrValidation, errors.New("unknown selection kind"))
	}

	for attempt := 0; attempt < casRetries; attempt++ {
		platform, genre, version, err := u.repository.Selections(ctx, sessionID)
		if err != nil {
			if errors.Is(err, ErrResourceNotFound) {
				return nil, nil, ErrResourceNotFound
			}
			return nil, nil, errors.Join(ErrInternal, err)
		}

		switch kind {
		case model.SelectionProvider:
			platform = platform.Toggle(itemID, userID, username, u.now())
		case model.SelectionGenre:
			genre = genre.Toggle(itemID, userID, username, u.now())
		}

		err = u.repository.CompareAndSetSelections(ctx, sessionID, version, platform, genre)
		if err == nil {
			_ = u.notifier.Publish(ctx, model.SessionEvent{
				SessionID: sessionID,
				Type:      model.EventSelectionsUpdated,
				Payload: map[string]any{
					"kind":    kind,
					"item_id": itemID,
					"by":      username,
				},
			})
			return platform, genre, nil
		}
		if errors.Is(err, ErrVersionConflict) {
			continue
		}
		if errors.Is(err, ErrResourceNotFound) {
			return nil, nil, ErrResourceNotFound
		}
		return nil, nil, errors.Join(ErrInternal, err)
	}
	return nil, nil, errors.Join(ErrInternal, ErrVersionConflict)
}

func (u *Usecase) Selections(ctx context.Context, sessionID uuid.UUID) (platform, genre model.SelectionSet, err error) {
	platform, genre, _, err = u.repository.Selections(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return nil, nil, ErrResourceNotFound
		}
		return nil, nil, errors.Join(ErrInternal, err)
	}
	return platform, genre, nil
}
