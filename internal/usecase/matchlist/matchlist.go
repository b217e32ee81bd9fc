package usecase_matchlist

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
	ErrNotOwner         = errors.New("actor is not the session owner")
	ErrValidation       = errors.New("validation failed")
	ErrUpstream         = errors.New("catalog gateway failed")
)

//go:generate mockery --name=MovieRepository --output=./mocks/repository --filename=repository.go
type MovieRepository interface {
	Exists(ctx context.Context, sessionID uuid.UUID) (bool, error)
	// Upsert tolerates items repeated across pages via the
	// (session_id, movie_id) key; last write wins on position.
	Upsert(ctx context.Context, movies []model.SessionMovie) error
	BySession(ctx context.Context, sessionID uuid.UUID) ([]model.SessionMovie, error)
	// FeedFor returns the session list minus movies the user already voted on,
	// position ascending.
	FeedFor(ctx context.Context, sessionID, userID uuid.UUID) ([]model.SessionMovie, error)
}

//go:generate mockery --name=SessionRepository --output=./mocks/session --filename=session.go
type SessionRepository interface {
	ByID(ctx context.Context, id uuid.UUID) (model.Session, error)
	MarkMoviesFetched(ctx context.Context, id uuid.UUID) error
}

//go:generate mockery --name=CatalogGateway --output=./mocks/catalog --filename=catalog.go
type CatalogGateway interface {
	Discover(ctx context.Context, filters model.DiscoverFilters) ([]model.CatalogMovie, error)
}

//go:generate mockery --name=Notifier --output=./mocks/notifier --filename=notifier.go
type Notifier interface {
	Publish(ctx context.Context, event model.SessionEvent) error
	Subscribe(ctx context.Context, sessionID uuid.UUID) (<-chan model.SessionEvent, func(), error)
}

type Usecase struct {
	movies   MovieRepository
	sessions SessionRepository
	catalog  CatalogGateway
	notifier Notifier

	pages        int
	pollInterval time.Duration
}

func New(
	movies MovieRepository,
	sessions SessionRepository,
	catalog CatalogGateway,
	notifier Notifier,
	pages int,
	pollInterval time.Duration,
) *Usecase {
	if pages <= 0 {
		pages = 4
	}
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}
	return &Usecase{
		movies:       movies,
		sessions:     sessions,
		catalog:      catalog,
		notifier:     notifier,
		pages:        pages,
		pollInterval: pollInterval,
	}
}

// Materialize fetches the session's candidate list from the catalog exactly
// once. The guarantee is keyed on "rows already exist", not on a lock: a host
// retry or reload short-circuits to the stored list, and a mid-fetch failure
// leaves already persisted pages behind so the retry converges through the
// upsert key.
func (u *Usecase) Materialize(ctx context.Context, sessionID, actorID uuid.UUID) ([]model.SessionMovie, error) {
	session, err := u.sessions.ByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, errors.Join(ErrInternal, err)
	}
	if session.OwnerID != actorID {
		return nil, ErrNotOwner
	}
	if session.Status != model.StatusMatching {
		return nil, errors.Join(ErrValidation, errors.New("session is not in matching status"))
	}

	exists, err := u.movies.Exists(ctx, sessionID)
	if err != nil {
		return nil, errors.Join(ErrInternal, err)
	}

	if !exists {
		if err := u.fetchAndPersist(ctx, session); err != nil {
			return nil, err
		}
	}

	if !session.MoviesFetched {
		if err := u.sessions.MarkMoviesFetched(ctx, sessionID); err != nil {
			return nil, errors.Join(ErrInternal, err)
		}
		_ = u.notifier.Publish(ctx, model.SessionEvent{
			SessionID: sessionID,
			Type:      model.EventMoviesReady,
		})
	}

	return u.Movies(ctx, sessionID)
}

// fetchAndPersist walks a fixed page window, numbering items continuously
// across pages in first-seen order. Pages persist one by one so a retry after
// an upstream failure resumes from a consistent store.
func (u *Usecase) fetchAndPersist(ctx context.Context, session model.Session) error {
	position := 0
	for page := 1; page <= u.pages; page++ {
		results, err := u.catalog.Discover(ctx, model.DiscoverFilters{
			ProviderIDs: session.PlatformSelections.Keys(),
			GenreIDs:    session.GenreSelections.Keys(),
			Page:        page,
		})
		if err != nil {
			return errors.Join(ErrUpstream, err)
		}

		movies := make([]model.SessionMovie, 0, len(results))
		for _, item := range results {
			movies = append(movies, model.SessionMovie{
				SessionID:   session.ID,
				MovieID:     item.ID,
				Title:       item.Title,
				PosterPath:  item.PosterPath,
				Overview:    item.Overview,
				ReleaseDate: item.ReleaseDate,
				Genres:      item.GenreIDs,
				Rating:      item.Rating,
				Position:    position,
			})
			position++
		}

		if len(movies) == 0 {
			continue
		}
		if err := u.movies.Upsert(ctx, movies); err != nil {
			return errors.Join(ErrInternal, err)
		}
	}
	return nil
}

// Movies returns the whole materialized list, position ascending.
func (u *Usecase) Movies(ctx context.Context, sessionID uuid.UUID) ([]model.SessionMovie, error) {
	movies, err := u.movies.BySession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, errors.Join(ErrInternal, err)
	}
	return movies, nil
}

// Feed returns the caller's view of the list: shared ordering minus the
// movies this user already voted on.
func (u *Usecase) Feed(ctx context.Context, sessionID, userID uuid.UUID) ([]model.SessionMovie, error) {
	movies, err := u.movies.FeedFor(ctx, sessionID, userID)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, errors.Join(ErrInternal, err)
	}
	return movies, nil
}

// WaitForMovies blocks a non-host until the host's materialization lands.
// It prefers the notifier's push; the fixed-interval poll stays as a fallback
// for missed events. Returns ctx.Err() when the caller gives up.
func (u *Usecase) WaitForMovies(ctx context.Context, sessionID uuid.UUID) error {
	fetched, err := u.moviesFetched(ctx, sessionID)
	if err != nil {
		return err
	}
	if fetched {
		return nil
	}

	events, cancel, err := u.notifier.Subscribe(ctx, sessionID)
	if err != nil {
		return errors.Join(ErrInternal, err)
	}
	defer cancel()

	ticker := time.NewTicker(u.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-events:
			if !ok {
				// Subscription dropped; the poll keeps us correct.
				events = nil
				continue
			}
			if event.Type == model.EventMoviesReady {
				return nil
			}
		case <-ticker.C:
			fetched, err := u.moviesFetched(ctx, sessionID)
			if err != nil {
				return err
			}
			if fetched {
				return nil
			}
		}
	}
}

func (u *Usecase) moviesFetched(ctx context.Context, sessionID uuid.UUID) (bool, error) {
	session, err := u.sessions.ByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return false, ErrResourceNotFound
		}
		return false, errors.Join(ErrInternal, err)
	}
	return session.MoviesFetched, nil
}
