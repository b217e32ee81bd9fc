package usecase_vote

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/mkrogh/reelmatch/internal/model"
	matches_mocks "github.com/mkrogh/reelmatch/internal/usecase/vote/mocks/matches"
	notifier_mocks "github.com/mkrogh/reelmatch/internal/usecase/vote/mocks/notifier"
	repo_mocks "github.com/mkrogh/reelmatch/internal/usecase/vote/mocks/repository"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type UsecaseVoteUnitSuite struct {
	suite.Suite
}

type resources struct {
	usecase   *Usecase
	responses *repo_mocks.ResponseRepository
	matches   *matches_mocks.MatchRepository
	notifier  *notifier_mocks.Notifier
	ctx       context.Context
}

func initResources(t provider.T) *resources {
	responses := repo_mocks.NewResponseRepository(t)
	matches := matches_mocks.NewMatchRepository(t)
	notifier := notifier_mocks.NewNotifier(t)
	usecase := New(responses, matches, notifier)

	return &resources{
		usecase:   usecase,
		responses: responses,
		matches:   matches,
		notifier:  notifier,
		ctx:       context.Background(),
	}
}

func (suite *UsecaseVoteUnitSuite) TestVote(t provider.T) {
	t.Parallel()

	t.Run("Should record a dislike without running the match check", func(t provider.T) {
		r := initResources(t)
		sessionID := uuid.New()
		userID := uuid.New()

		r.responses.On("Insert", r.ctx, mock.AnythingOfType("model.Response")).
			Return(true, nil).Once()
		r.responses.On("UnvotedRemaining", r.ctx, sessionID, userID).
			Return(3, nil).Once()

		outcome, err := r.usecase.Vote(r.ctx, sessionID, userID, 101, false)

		assert.NoError(t, err)
		assert.True(t, outcome.Advanced)
		assert.False(t, outcome.Matched)
		r.responses.AssertNotCalled(t, "VoteCounts")
		r.responses.AssertExpectations(t)
	})

	t.Run("Should treat a repeated vote as a soft no-op", func(t provider.T) {
		r := initResources(t)
		sessionID := uuid.New()
		userID := uuid.New()

		r.responses.On("Insert", r.ctx, mock.AnythingOfType("model.Response")).
			Return(false, nil).Once()
		r.responses.On("UnvotedRemaining", r.ctx, sessionID, userID).
			Return(2, nil).Once()

		outcome, err := r.usecase.Vote(r.ctx, sessionID, userID, 101, true)

		assert.NoError(t, err)
		assert.True(t, outcome.Advanced)
		assert.False(t, outcome.Matched)
		r.responses.AssertNotCalled(t, "VoteCounts")
		r.responses.AssertExpectations(t)
	})

	t.Run("Should not match while a disliker is among the voters", func(t provider.T) {
		r := initResources(t)
		sessionID := uuid.New()
		userID := uuid.New()

		r.responses.On("Insert", r.ctx, mock.AnythingOfType("model.Response")).
			Return(true, nil).Once()
		r.responses.On("VoteCounts", r.ctx, sessionID, int64(101)).
			Return(2, 3, nil).Once()
		r.responses.On("UnvotedRemaining", r.ctx, sessionID, userID).
			Return(1, nil).Once()

		outcome, err := r.usecase.Vote(r.ctx, sessionID, userID, 101, true)

		assert.NoError(t, err)
		assert.False(t, outcome.Matched)
		r.matches.AssertNotCalled(t, "AppendMatch")
		r.responses.AssertExpectations(t)
	})

	t.Run("Should not match a single like", func(t provider.T) {
		r := initResources(t)
		sessionID := uuid.New()
		userID := uuid.New()

		r.responses.On("Insert", r.ctx, mock.AnythingOfType("model.Response")).
			Return(true, nil).Once()
		r.responses.On("VoteCounts", r.ctx, sessionID, int64(101)).
			Return(1, 1, nil).Once()
		r.responses.On("UnvotedRemaining", r.ctx, sessionID, userID).
			Return(4, nil).Once()

		outcome, err := r.usecase.Vote(r.ctx, sessionID, userID, 101, true)

		assert.NoError(t, err)
		assert.False(t, outcome.Matched)
		r.matches.AssertNotCalled(t, "AppendMatch")
		r.responses.AssertExpectations(t)
	})

	t.Run("Should match when all voters liked and publish once", func(t provider.T) {
		r := initResources(t)
		sessionID := uuid.New()
		userID := uuid.New()

		r.responses.On("Insert", r.ctx, mock.AnythingOfType("model.Response")).
			Return(true, nil).Once()
		r.responses.On("VoteCounts", r.ctx, sessionID, int64(101)).
			Return(2, 2, nil).Once()
		r.matches.On("AppendMatch", r.ctx, sessionID, int64(101)).
			Return(true, nil).Once()
		r.notifier.On("Publish", r.ctx, mock.MatchedBy(func(e model.SessionEvent) bool {
			return e.Type == model.EventMatchFound
		})).Return(nil).Once()
		r.responses.On("UnvotedRemaining", r.ctx, sessionID, userID).
			Return(0, nil).Once()

		outcome, err := r.usecase.Vote(r.ctx, sessionID, userID, 101, true)

		assert.NoError(t, err)
		assert.True(t, outcome.Matched)
		assert.False(t, outcome.Advanced)
		r.matches.AssertExpectations(t)
		r.notifier.AssertExpectations(t)
	})

	t.Run("Should not publish when the movie already matched", func(t provider.T) {
		r := initResources(t)
		sessionID := uuid.New()
		userID := uuid.New()

		r.responses.On("Insert", r.ctx, mock.AnythingOfType("model.Response")).
			Return(true, nil).Once()
		r.responses.On("VoteCounts", r.ctx, sessionID, int64(101)).
			Return(3, 3, nil).Once()
		r.matches.On("AppendMatch", r.ctx, sessionID, int64(101)).
			Return(false, nil).Once()
		r.responses.On("UnvotedRemaining", r.ctx, sessionID, userID).
			Return(1, nil).Once()

		outcome, err := r.usecase.Vote(r.ctx, sessionID, userID, 101, true)

		assert.NoError(t, err)
		assert.True(t, outcome.Matched)
		r.notifier.AssertNotCalled(t, "Publish")
		r.matches.AssertExpectations(t)
	})

	t.Run("Should return not found when the session is gone", func(t provider.T) {
		r := initResources(t)

		r.responses.On("Insert", r.ctx, mock.AnythingOfType("model.Response")).
			Return(false, ErrResourceNotFound).Once()

		_, err := r.usecase.Vote(r.ctx, uuid.New(), uuid.New(), 101, true)

		assert.ErrorIs(t, err, ErrResourceNotFound)
		r.responses.AssertExpectations(t)
	})
}

func (suite *UsecaseVoteUnitSuite) TestMatches(t provider.T) {
	t.Parallel()

	t.Run("Should return the match list", func(t provider.T) {
		r := initResources(t)
		sessionID := uuid.New()

		r.matches.On("Matches", r.ctx, sessionID).
			Return([]int64{101, 205}, nil).Once()

		matches, err := r.usecase.Matches(r.ctx, sessionID)

		assert.NoError(t, err)
		assert.Equal(t, []int64{101, 205}, matches)
		r.matches.AssertExpectations(t)
	})

	t.Run("Should return error when repository fails", func(t provider.T) {
		r := initResources(t)
		sessionID := uuid.New()

		r.matches.On("Matches", r.ctx, sessionID).
			Return(nil, ErrResourceNotFound).Once()

		_, err := r.usecase.Matches(r.ctx, sessionID)

		assert.ErrorIs(t, err, ErrResourceNotFound)
		r.matches.AssertExpectations(t)
	})
}

func TestUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseVoteUnitSuite))
}
