package usecase_matchlist

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mkrogh/reelmatch/internal/model"
	catalog_mocks "github.com/mkrogh/reelmatch/internal/usecase/matchlist/mocks/catalog"
	notifier_mocks "github.com/mkrogh/reelmatch/internal/usecase/matchlist/mocks/notifier"
	repo_mocks "github.com/mkrogh/reelmatch/internal/usecase/matchlist/mocks/repository"
	session_mocks "github.com/mkrogh/reelmatch/internal/usecase/matchlist/mocks/session"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type UsecaseMatchlistUnitSuite struct {
	suite.Suite
}

type resources struct {
	usecase  *Usecase
	movies   *repo_mocks.MovieRepository
	sessions *session_mocks.SessionRepository
	catalog  *catalog_mocks.CatalogGateway
	notifier *notifier_mocks.Notifier
	ctx      context.Context
}

func initResources(t provider.T, pages int) *resources {
	movies := repo_mocks.NewMovieRepository(t)
	sessions := session_mocks.NewSessionRepository(t)
	catalog := catalog_mocks.NewCatalogGateway(t)
	notifier := notifier_mocks.NewNotifier(t)
	usecase := New(movies, sessions, catalog, notifier, pages, 10*time.Millisecond)

	return &resources{
		usecase:  usecase,
		movies:   movies,
		sessions: sessions,
		catalog:  catalog,
		notifier: notifier,
		ctx:      context.Background(),
	}
}

func matchingSession(owner uuid.UUID) model.Session {
	return model.Session{
		ID:                 uuid.New(),
		OwnerID:            owner,
		Status:             model.StatusMatching,
		PlatformSelections: model.SelectionSet{{Key: 8}},
		GenreSelections:    model.SelectionSet{{Key: 35}},
	}
}

func catalogPage(ids ...int64) []model.CatalogMovie {
	page := make([]model.CatalogMovie, 0, len(ids))
	for _, id := range ids {
		page = append(page, model.CatalogMovie{ID: id, Title: "title"})
	}
	return page
}

func (suite *UsecaseMatchlistUnitSuite) TestMaterialize(t provider.T) {
	t.Parallel()

	t.Run("Should reject non-owner", func(t provider.T) {
		r := initResources(t, 2)
		session := matchingSession(uuid.New())

		r.sessions.On("ByID", r.ctx, session.ID).Return(session, nil).Once()

		_, err := r.usecase.Materialize(r.ctx, session.ID, uuid.New())

		assert.ErrorIs(t, err, ErrNotOwner)
		r.sessions.AssertExpectations(t)
	})

	t.Run("Should reject a session outside matching status", func(t provider.T) {
		r := initResources(t, 2)
		ownerID := uuid.New()
		session := matchingSession(ownerID)
		session.Status = model.StatusConfiguring

		r.sessions.On("ByID", r.ctx, session.ID).Return(session, nil).Once()

		_, err := r.usecase.Materialize(r.ctx, session.ID, ownerID)

		assert.ErrorIs(t, err, ErrValidation)
		r.sessions.AssertExpectations(t)
	})

	t.Run("Should fetch pages once with continuous positions", func(t provider.T) {
		r := initResources(t, 2)
		ownerID := uuid.New()
		session := matchingSession(ownerID)

		r.sessions.On("ByID", r.ctx, session.ID).Return(session, nil).Once()
		r.movies.On("Exists", r.ctx, session.ID).Return(false, nil).Once()
		r.catalog.On("Discover", r.ctx, model.DiscoverFilters{
			ProviderIDs: []int64{8}, GenreIDs: []int64{35}, Page: 1,
		}).Return(catalogPage(101, 102), nil).Once()
		r.catalog.On("Discover", r.ctx, model.DiscoverFilters{
			ProviderIDs: []int64{8}, GenreIDs: []int64{35}, Page: 2,
		}).Return(catalogPage(103), nil).Once()

		var persisted []model.SessionMovie
		r.movies.On("Upsert", r.ctx, mock.AnythingOfType("[]model.SessionMovie")).
			Run(func(args mock.Arguments) {
				persisted = append(persisted, args.Get(1).([]model.SessionMovie)...)
			}).
			Return(nil).Times(2)
		r.sessions.On("MarkMoviesFetched", r.ctx, session.ID).Return(nil).Once()
		r.notifier.On("Publish", r.ctx, mock.MatchedBy(func(e model.SessionEvent) bool {
			return e.Type == model.EventMoviesReady
		})).Return(nil).Once()
		r.movies.On("BySession", r.ctx, session.ID).
			Return(func(ctx context.Context, id uuid.UUID) ([]model.SessionMovie, error) {
				return persisted, nil
			}).Once()

		_, err := r.usecase.Materialize(r.ctx, session.ID, ownerID)

		assert.NoError(t, err)
		assert.Len(t, persisted, 3)
		for i, m := range persisted {
			assert.Equal(t, i, m.Position)
		}
		r.movies.AssertExpectations(t)
		r.catalog.AssertExpectations(t)
	})

	t.Run("Should short-circuit when the list already exists", func(t provider.T) {
		r := initResources(t, 2)
		ownerID := uuid.New()
		session := matchingSession(ownerID)
		session.MoviesFetched = true

		r.sessions.On("ByID", r.ctx, session.ID).Return(session, nil).Once()
		r.movies.On("Exists", r.ctx, session.ID).Return(true, nil).Once()
		r.movies.On("BySession", r.ctx, session.ID).
			Return([]model.SessionMovie{{MovieID: 101}}, nil).Once()

		movies, err := r.usecase.Materialize(r.ctx, session.ID, ownerID)

		assert.NoError(t, err)
		assert.Len(t, movies, 1)
		r.catalog.AssertNotCalled(t, "Discover")
		r.movies.AssertExpectations(t)
	})

	t.Run("Should surface upstream failure and keep persisted pages", func(t provider.T) {
		r := initResources(t, 2)
		ownerID := uuid.New()
		session := matchingSession(ownerID)

		r.sessions.On("ByID", r.ctx, session.ID).Return(session, nil).Once()
		r.movies.On("Exists", r.ctx, session.ID).Return(false, nil).Once()
		r.catalog.On("Discover", r.ctx, mock.MatchedBy(func(f model.DiscoverFilters) bool {
			return f.Page == 1
		})).Return(catalogPage(101), nil).Once()
		r.movies.On("Upsert", r.ctx, mock.AnythingOfType("[]model.SessionMovie")).
			Return(nil).Once()
		r.catalog.On("Discover", r.ctx, mock.MatchedBy(func(f model.DiscoverFilters) bool {
			return f.Page == 2
		})).Return(nil, assert.AnError).Once()

		_, err := r.usecase.Materialize(r.ctx, session.ID, ownerID)

		assert.ErrorIs(t, err, ErrUpstream)
		r.sessions.AssertNotCalled(t, "MarkMoviesFetched", r.ctx, session.ID)
		r.movies.AssertExpectations(t)
	})
}

func (suite *UsecaseMatchlistUnitSuite) TestWaitForMovies(t provider.T) {
	t.Parallel()

	t.Run("Should return immediately when the flag is set", func(t provider.T) {
		r := initResources(t, 2)
		session := matchingSession(uuid.New())
		session.MoviesFetched = true

		r.sessions.On("ByID", r.ctx, session.ID).Return(session, nil).Once()

		err := r.usecase.WaitForMovies(r.ctx, session.ID)

		assert.NoError(t, err)
		r.sessions.AssertExpectations(t)
	})

	t.Run("Should wake up on the movies-ready event", func(t provider.T) {
		r := initResources(t, 2)
		session := matchingSession(uuid.New())

		events := make(chan model.SessionEvent, 1)
		events <- model.SessionEvent{SessionID: session.ID, Type: model.EventMoviesReady}

		r.sessions.On("ByID", r.ctx, session.ID).Return(session, nil).Once()
		r.notifier.On("Subscribe", r.ctx, session.ID).
			Return((<-chan model.SessionEvent)(events), func() {}, nil).Once()

		err := r.usecase.WaitForMovies(r.ctx, session.ID)

		assert.NoError(t, err)
		r.notifier.AssertExpectations(t)
	})

	t.Run("Should fall back to polling when events are missed", func(t provider.T) {
		r := initResources(t, 2)
		session := matchingSession(uuid.New())
		fetched := session
		fetched.MoviesFetched = true

		events := make(chan model.SessionEvent)

		r.sessions.On("ByID", r.ctx, session.ID).Return(session, nil).Once()
		r.notifier.On("Subscribe", r.ctx, session.ID).
			Return((<-chan model.SessionEvent)(events), func() {}, nil).Once()
		r.sessions.On("ByID", r.ctx, session.ID).Return(fetched, nil).Once()

		err := r.usecase.WaitForMovies(r.ctx, session.ID)

		assert.NoError(t, err)
		r.sessions.AssertExpectations(t)
	})

	t.Run("Should stop when the caller gives up", func(t provider.T) {
		r := initResources(t, 2)
		session := matchingSession(uuid.New())

		ctx, cancel := context.WithCancel(context.Background())
		events := make(chan model.SessionEvent)

		r.sessions.On("ByID", ctx, session.ID).Return(session, nil).Maybe()
		r.notifier.On("Subscribe", ctx, session.ID).
			Return((<-chan model.SessionEvent)(events), func() {}, nil).Once()

		cancel()
		err := r.usecase.WaitForMovies(ctx, session.ID)

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func (suite *UsecaseMatchlistUnitSuite) TestFeed(t provider.T) {
	t.Parallel()

	t.Run("Should return the user's filtered view", func(t provider.T) {
		r := initResources(t, 2)
		sessionID := uuid.New()
		userID := uuid.New()

		r.movies.On("FeedFor", r.ctx, sessionID, userID).
			Return([]model.SessionMovie{{MovieID: 102, Position: 1}}, nil).Once()

		feed, err := r.usecase.Feed(r.ctx, sessionID, userID)

		assert.NoError(t, err)
		assert.Len(t, feed, 1)
		assert.Equal(t, int64(102), feed[0].MovieID)
		r.movies.AssertExpectations(t)
	})
}

func TestUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseMatchlistUnitSuite))
}
