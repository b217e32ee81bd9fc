package usecase_session

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/mkrogh/reelmatch/internal/model"
	notifier_mocks "github.com/mkrogh/reelmatch/internal/usecase/session/mocks/notifier"
	repo_mocks "github.com/mkrogh/reelmatch/internal/usecase/session/mocks/repository"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type UsecaseSessionUnitSuite struct {
	suite.Suite
}

type resources struct {
	usecase  *Usecase
	repo     *repo_mocks.SessionRepository
	notifier *notifier_mocks.Notifier
	ctx      context.Context
}

func initResources(t provider.T) *resources {
	repo := repo_mocks.NewSessionRepository(t)
	notifier := notifier_mocks.NewNotifier(t)
	usecase := New(repo, notifier)

	return &resources{
		usecase:  usecase,
		repo:     repo,
		notifier: notifier,
		ctx:      context.Background(),
	}
}

func validSession(owner uuid.UUID, status model.Status) model.Session {
	return model.Session{
		ID:       uuid.New(),
		OwnerID:  owner,
		Status:   status,
		JoinCode: "ABC123",
		Matches:  []int64{},
	}
}

func sessionWithSelections(owner uuid.UUID) model.Session {
	s := validSession(owner, model.StatusConfiguring)
	s.PlatformSelections = model.SelectionSet{{Key: 8}}
	s.GenreSelections = model.SelectionSet{{Key: 35}}
	return s
}

func (suite *UsecaseSessionUnitSuite) TestBuildJoinCode(t provider.T) {
	t.Parallel()

	t.Run("Should build 6-char codes from the safe alphabet", func(t provider.T) {
		for i := 0; i < 200; i++ {
			code := buildJoinCode()

			assert.Len(t, code, 6)
			for _, r := range code {
				assert.Contains(t, codeAlphabet, string(r))
			}
			assert.NotContains(t, code, "O")
			assert.NotContains(t, code, "0")
		}
	})
}

func (suite *UsecaseSessionUnitSuite) TestCreate(t provider.T) {
	t.Parallel()

	t.Run("Should create session in waiting status", func(t provider.T) {
		r := initResources(t)
		ownerID := uuid.New()

		var created model.Session
		r.repo.On("Create", r.ctx, mock.AnythingOfType("model.Session")).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(model.Session)
			}).
			Return(nil).Once()
		r.repo.On("ByID", r.ctx, mock.AnythingOfType("uuid.UUID")).
			Return(func(ctx context.Context, id uuid.UUID) (model.Session, error) {
				return created, nil
			}).Once()

		session, err := r.usecase.Create(r.ctx, ownerID)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusWaiting, session.Status)
		assert.Equal(t, ownerID, session.OwnerID)
		assert.Len(t, session.JoinCode, 6)
		r.repo.AssertExpectations(t)
	})

	t.Run("Should retry with a fresh code on conflict", func(t provider.T) {
		r := initResources(t)

		r.repo.On("Create", r.ctx, mock.AnythingOfType("model.Session")).
			Return(ErrCodeConflict).Once()
		r.repo.On("Create", r.ctx, mock.AnythingOfType("model.Session")).
			Return(nil).Once()
		r.repo.On("ByID", r.ctx, mock.AnythingOfType("uuid.UUID")).
			Return(validSession(uuid.New(), model.StatusWaiting), nil).Once()

		_, err := r.usecase.Create(r.ctx, uuid.New())

		assert.NoError(t, err)
		r.repo.AssertExpectations(t)
	})

	t.Run("Should give up after exhausting retries", func(t provider.T) {
		r := initResources(t)

		r.repo.On("Create", r.ctx, mock.AnythingOfType("model.Session")).
			Return(ErrCodeConflict).Times(3)

		_, err := r.usecase.Create(r.ctx, uuid.New())

		assert.ErrorIs(t, err, ErrCodesUnavailable)
		r.repo.AssertExpectations(t)
	})
}

func (suite *UsecaseSessionUnitSuite) TestByJoinCode(t provider.T) {
	t.Parallel()

	t.Run("Should uppercase and trim the input", func(t provider.T) {
		r := initResources(t)
		session := validSession(uuid.New(), model.StatusWaiting)

		r.repo.On("ByJoinCode", r.ctx, "ABC123").Return(session, nil).Once()

		found, err := r.usecase.ByJoinCode(r.ctx, "  abc123 ")

		assert.NoError(t, err)
		assert.Equal(t, session.ID, found.ID)
		r.repo.AssertExpectations(t)
	})

	t.Run("Should reject empty code", func(t provider.T) {
		r := initResources(t)

		_, err := r.usecase.ByJoinCode(r.ctx, "   ")

		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("Should reject a completed session", func(t provider.T) {
		r := initResources(t)
		session := validSession(uuid.New(), model.StatusCompleted)

		r.repo.On("ByJoinCode", r.ctx, "ABC123").Return(session, nil).Once()

		_, err := r.usecase.ByJoinCode(r.ctx, "abc123")

		assert.ErrorIs(t, err, ErrValidation)
		r.repo.AssertExpectations(t)
	})
}

func (suite *UsecaseSessionUnitSuite) TestJoin(t provider.T) {
	t.Parallel()

	t.Run("Should add participant and publish event", func(t provider.T) {
		r := initResources(t)
		session := validSession(uuid.New(), model.StatusWaiting)
		userID := uuid.New()

		r.repo.On("ByID", r.ctx, session.ID).Return(session, nil).Once()
		r.repo.On("AddParticipant", r.ctx, mock.AnythingOfType("model.Participant")).
			Return(nil).Once()
		r.notifier.On("Publish", r.ctx, mock.MatchedBy(func(e model.SessionEvent) bool {
			return e.Type == model.EventParticipantJoined && e.SessionID == session.ID
		})).Return(nil).Once()

		err := r.usecase.Join(r.ctx, session.ID, userID)

		assert.NoError(t, err)
		r.repo.AssertExpectations(t)
		r.notifier.AssertExpectations(t)
	})

	t.Run("Should reject joining a completed session", func(t provider.T) {
		r := initResources(t)
		session := validSession(uuid.New(), model.StatusCompleted)

		r.repo.On("ByID", r.ctx, session.ID).Return(session, nil).Once()

		err := r.usecase.Join(r.ctx, session.ID, uuid.New())

		assert.ErrorIs(t, err, ErrValidation)
		r.repo.AssertExpectations(t)
	})
}

func (suite *UsecaseSessionUnitSuite) TestTransition(t provider.T) {
	t.Parallel()

	t.Run("Should move waiting to configuring", func(t provider.T) {
		r := initResources(t)
		ownerID := uuid.New()
		session := validSession(ownerID, model.StatusWaiting)

		r.repo.On("ByID", r.ctx, session.ID).Return(session, nil).Once()
		r.repo.On("SetStatus", r.ctx, session.ID, model.StatusConfiguring).Return(nil).Once()
		r.notifier.On("Publish", r.ctx, mock.MatchedBy(func(e model.SessionEvent) bool {
			return e.Type == model.EventStatusChanged
		})).Return(nil).Once()

		err := r.usecase.Transition(r.ctx, session.ID, ownerID, model.StatusConfiguring)

		assert.NoError(t, err)
		r.repo.AssertExpectations(t)
	})

	t.Run("Should reject non-owner", func(t provider.T) {
		r := initResources(t)
		session := validSession(uuid.New(), model.StatusWaiting)

		r.repo.On("ByID", r.ctx, session.ID).Return(session, nil).Once()

		err := r.usecase.Transition(r.ctx, session.ID, uuid.New(), model.StatusConfiguring)

		assert.ErrorIs(t, err, ErrNotOwner)
		r.repo.AssertExpectations(t)
	})

	t.Run("Should reject skipping a stage", func(t provider.T) {
		r := initResources(t)
		ownerID := uuid.New()
		session := validSession(ownerID, model.StatusWaiting)

		r.repo.On("ByID", r.ctx, session.ID).Return(session, nil).Once()

		err := r.usecase.Transition(r.ctx, session.ID, ownerID, model.StatusMatching)

		assert.ErrorIs(t, err, ErrInvalidTransition)
		r.repo.AssertExpectations(t)
	})

	t.Run("Should reject moving backwards", func(t provider.T) {
		r := initResources(t)
		ownerID := uuid.New()
		session := sessionWithSelections(ownerID)

		r.repo.On("ByID", r.ctx, session.ID).Return(session, nil).Once()

		err := r.usecase.Transition(r.ctx, session.ID, ownerID, model.StatusWaiting)

		assert.ErrorIs(t, err, ErrInvalidTransition)
		r.repo.AssertExpectations(t)
	})

	t.Run("Should require selections before matching", func(t provider.T) {
		r := initResources(t)
		ownerID := uuid.New()
		session := validSession(ownerID, model.StatusConfiguring)

		r.repo.On("ByID", r.ctx, session.ID).Return(session, nil).Once()

		err := r.usecase.Transition(r.ctx, session.ID, ownerID, model.StatusMatching)

		assert.ErrorIs(t, err, ErrValidation)
		r.repo.AssertExpectations(t)
	})

	t.Run("Should move configuring to matching when both sets are non-empty", func(t provider.T) {
		r := initResources(t)
		ownerID := uuid.New()
		session := sessionWithSelections(ownerID)

		r.repo.On("ByID", r.ctx, session.ID).Return(session, nil).Once()
		r.repo.On("SetStatus", r.ctx, session.ID, model.StatusMatching).Return(nil).Once()
		r.notifier.On("Publish", r.ctx, mock.AnythingOfType("model.SessionEvent")).
			Return(nil).Once()

		err := r.usecase.Transition(r.ctx, session.ID, ownerID, model.StatusMatching)

		assert.NoError(t, err)
		r.repo.AssertExpectations(t)
	})
}

func (suite *UsecaseSessionUnitSuite) TestDelete(t provider.T) {
	t.Parallel()

	t.Run("Should delete when actor owns the session", func(t provider.T) {
		r := initResources(t)
		ownerID := uuid.New()
		session := validSession(ownerID, model.StatusWaiting)

		r.repo.On("ByID", r.ctx, session.ID).Return(session, nil).Once()
		r.repo.On("Delete", r.ctx, session.ID).Return(nil).Once()
		r.notifier.On("Publish", r.ctx, mock.MatchedBy(func(e model.SessionEvent) bool {
			return e.Type == model.EventSessionDeleted
		})).Return(nil).Once()

		err := r.usecase.Delete(r.ctx, session.ID, ownerID)

		assert.NoError(t, err)
		r.repo.AssertExpectations(t)
	})

	t.Run("Should reject non-owner", func(t provider.T) {
		r := initResources(t)
		session := validSession(uuid.New(), model.StatusWaiting)

		r.repo.On("ByID", r.ctx, session.ID).Return(session, nil).Once()

		err := r.usecase.Delete(r.ctx, session.ID, uuid.New())

		assert.ErrorIs(t, err, ErrNotOwner)
		r.repo.AssertExpectations(t)
	})
}

func TestCodeAlphabet(t *testing.T) {
	if strings.ContainsAny(codeAlphabet, "O0") {
		t.Fatalf("alphabet must not contain O or 0: %q", codeAlphabet)
	}
}

func TestUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseSessionUnitSuite))
}
