package usecase_identity

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/mkrogh/reelmatch/internal/model"
)

var (
	ErrInternal         = errors.New("internal error")
	ErrResourceNotFound = errors.New("no such resource")
	ErrValidation       = errors.New("validation failed")
)

//go:generate mockery --name=UserRepository --output=./mocks/repository --filename=repository.go
type UserRepository interface {
	Create(ctx context.Context, user model.User) error
	ByID(ctx context.Context, id uuid.UUID) (model.User, error)
	Rename(ctx context.Context, id uuid.UUID, username string) error
}

// Usecase issues device-scoped identities. No verification happens here: the
// id is the whole credential, so real authentication can replace this service
// behind the same interface later.
type Usecase struct {
	repository UserRepository
	generate   func() string
}

func New(repository UserRepository) *Usecase {
	return &Usecase{
		repository: repository,
		generate:   RandomUsername,
	}
}

// Register creates a fresh identity with a generated display name.
func (u *Usecase) Register(ctx context.Context) (model.User, error) {
	user := model.User{
		ID:       uuid.New(),
		Username: u.generate(),
	}
	if err := u.repository.Create(ctx, user); err != nil {
		return model.User{}, errors.Join(ErrInternal, err)
	}
	return user, nil
}

func (u *Usecase) ByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	user, err := u.repository.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return model.User{}, ErrResourceNotFound
		}
		return model.User{}, errors.Join(ErrInternal, err)
	}
	return user, nil
}

func (u *Usecase) Rename(ctx context.Context, id uuid.UUID, username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return errors.Join(ErrValidation, errors.New("username cannot be empty"))
	}

	if err := u.repository.Rename(ctx, id, username); err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return ErrResourceNotFound
		}
		return errors.Join(ErrInternal, err)
	}
	return nil
}
