package usecase_identity

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/mkrogh/reelmatch/internal/model"
	repo_mocks "github.com/mkrogh/reelmatch/internal/usecase/identity/mocks/repository"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type UsecaseIdentityUnitSuite struct {
	suite.Suite
}

func (suite *UsecaseIdentityUnitSuite) TestRegister(t provider.T) {
	t.Parallel()

	t.Run("Should create a user with a generated name", func(t provider.T) {
		repo := repo_mocks.NewUserRepository(t)
		usecase := New(repo)
		ctx := context.Background()

		repo.On("Create", ctx, mock.AnythingOfType("model.User")).Return(nil).Once()

		user, err := usecase.Register(ctx)

		assert.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.NotEmpty(t, user.Username)
		repo.AssertExpectations(t)
	})

	t.Run("Should return error when repository fails", func(t provider.T) {
		repo := repo_mocks.NewUserRepository(t)
		usecase := New(repo)
		ctx := context.Background()

		repo.On("Create", ctx, mock.AnythingOfType("model.User")).
			Return(assert.AnError).Once()

		_, err := usecase.Register(ctx)

		assert.ErrorIs(t, err, ErrInternal)
		repo.AssertExpectations(t)
	})
}

func (suite *UsecaseIdentityUnitSuite) TestRename(t provider.T) {
	t.Parallel()

	t.Run("Should trim and persist the new name", func(t provider.T) {
		repo := repo_mocks.NewUserRepository(t)
		usecase := New(repo)
		ctx := context.Background()
		userID := uuid.New()

		repo.On("Rename", ctx, userID, "movie-night-host").Return(nil).Once()

		err := usecase.Rename(ctx, userID, "  movie-night-host ")

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Should reject a blank name", func(t provider.T) {
		repo := repo_mocks.NewUserRepository(t)
		usecase := New(repo)

		err := usecase.Rename(context.Background(), uuid.New(), "   ")

		assert.ErrorIs(t, err, ErrValidation)
	})
}

func (suite *UsecaseIdentityUnitSuite) TestByID(t provider.T) {
	t.Parallel()

	t.Run("Should return the user", func(t provider.T) {
		repo := repo_mocks.NewUserRepository(t)
		usecase := New(repo)
		ctx := context.Background()
		expected := model.User{ID: uuid.New(), Username: "witty-otter"}

		repo.On("ByID", ctx, expected.ID).Return(expected, nil).Once()

		user, err := usecase.ByID(ctx, expected.ID)

		assert.NoError(t, err)
		assert.Equal(t, expected, user)
		repo.AssertExpectations(t)
	})

	t.Run("Should return not found", func(t provider.T) {
		repo := repo_mocks.NewUserRepository(t)
		usecase := New(repo)
		ctx := context.Background()
		userID := uuid.New()

		repo.On("ByID", ctx, userID).Return(model.User{}, ErrResourceNotFound).Once()

		_, err := usecase.ByID(ctx, userID)

		assert.ErrorIs(t, err, ErrResourceNotFound)
		repo.AssertExpectations(t)
	})
}

func TestRandomUsername(t *testing.T) {
	for i := 0; i < 50; i++ {
		name := RandomUsername()

		parts := strings.Split(name, "-")
		if len(parts) != 2 {
			t.Fatalf("expected adjective-animal, got %q", name)
		}
		if parts[0] == "" || parts[1] == "" {
			t.Fatalf("empty name component in %q", name)
		}
	}
}

func TestUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseIdentityUnitSuite))
}
