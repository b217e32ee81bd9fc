package usecase_session

import (
	"context"
	"errors"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"github.com/mkrogh/reelmatch/internal/model"
)

var (
	ErrInternal          = errors.New("internal error")
	ErrResourceNotFound  = errors.New("no such resource")
	ErrCodeConflict      = errors.New("code conflict")
	ErrCodesUnavailable  = errors.New("no available join codes")
	ErrNotOwner          = errors.New("actor is not the session owner")
	ErrInvalidTransition = errors.New("illegal status transition")
	ErrValidation        = errors.New("validation failed")
)

//go:generate mockery --name=SessionRepository --output=./mocks/repository --filename=repository.go
type SessionRepository interface {
	Create(ctx context.Context, session model.Session) error
	ByID(ctx context.Context, id uuid.UUID) (model.Session, error)
	ByJoinCode(ctx context.Context, code string) (model.Session, error)
	ByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Session, error)
	SetStatus(ctx context.Context, id uuid.UUID, status model.Status) error
	Delete(ctx context.Context, id uuid.UUID) error

	AddParticipant(ctx context.Context, p model.Participant) error
	RemoveParticipant(ctx context.Context, sessionID, userID uuid.UUID) error
	Participants(ctx context.Context, sessionID uuid.UUID) ([]model.Participant, error)
	IsParticipant(ctx context.Context, sessionID, userID uuid.UUID) (bool, error)
}

//go:generate mockery --name=Notifier --output=./mocks/notifier --filename=notifier.go
type Notifier interface {
	Publish(ctx context.Context, event model.SessionEvent) error
}

type Usecase struct {
	repository SessionRepository
	notifier   Notifier
}

func New(repository SessionRepository, notifier Notifier) *Usecase {
	return &Usecase{
		repository: repository,
		notifier:   notifier,
	}
}

// Join codes skip O and 0: they are read aloud and typed by hand.
const codeAlphabet = "ABCDEFGHIJKLMNPQRSTUVWXYZ123456789"

func buildJoinCode() string {
	const codeLen = 6
	var builder strings.Builder
	builder.Grow(codeLen)

	for i := 0; i < codeLen; i++ {
		builder.WriteByte(codeAlphabet[rand.Intn(len(codeAlphabet))])
	}

	return builder.String()
}

// Create books a new session in waiting status. Codes can collide with live
// sessions, so creation retries with a fresh code a few times.
func (u *Usecase) Create(ctx context.Context, ownerID uuid.UUID) (model.Session, error) {
	var retries = 3
	for retries > 0 {
		session := model.Session{
			ID:       uuid.New(),
			OwnerID:  ownerID,
			Status:   model.StatusWaiting,
			JoinCode: buildJoinCode(),
			Matches:  []int64{},
		}
		if err := u.repository.Create(ctx, session); err != nil {
			if errors.Is(err, ErrCodeConflict) {
				retries--
				continue
			}
			return model.Session{}, errors.Join(ErrInternal, err)
		}
		return u.ByID(ctx, session.ID)
	}
	return model.Session{}, ErrCodesUnavailable
}

func (u *Usecase) ByID(ctx context.Context, id uuid.UUID) (model.Session, error) {
	session, err := u.repository.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return model.Session{}, ErrResourceNotFound
		}
		return model.Session{}, errors.Join(ErrInternal, err)
	}
	return session, nil
}

// ByJoinCode resolves a human-entered code. Input is uppercased; completed
// sessions are not joinable and resolve as a validation failure.
func (u *Usecase) ByJoinCode(ctx context.Context, code string) (model.Session, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return model.Session{}, errors.Join(ErrValidation, errors.New("empty join code"))
	}

	session, err := u.repository.ByJoinCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return model.Session{}, ErrResourceNotFound
		}
		return model.Session{}, errors.Join(ErrInternal, err)
	}
	if session.Status == model.StatusCompleted {
		return model.Session{}, errors.Join(ErrValidation, errors.New("session already ended"))
	}
	return session, nil
}

func (u *Usecase) ByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Session, error) {
	sessions, err := u.repository.ByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.Join(ErrInternal, err)
	}
	return sessions, nil
}

// Join adds the user to the roster. Joining twice is a no-op; the repository
// swallows the duplicate-key conflict.
func (u *Usecase) Join(ctx context.Context, sessionID, userID uuid.UUID) error {
	session, err := u.ByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.Status == model.StatusCompleted {
		return errors.Join(ErrValidation, errors.New("session already ended"))
	}

	if err := u.repository.AddParticipant(ctx, model.Participant{
		ID:        uuid.New(),
		SessionID: sessionID,
		UserID:    userID,
	}); err != nil {
		return errors.Join(ErrInternal, err)
	}

	_ = u.notifier.Publish(ctx, model.SessionEvent{
		SessionID: sessionID,
		Type:      model.EventParticipantJoined,
		Payload:   map[string]any{"user_id": userID.String()},
	})
	return nil
}

// Leave removes the participant row. Votes already committed stay valid.
func (u *Usecase) Leave(ctx context.Context, sessionID, userID uuid.UUID) error {
	if err := u.repository.RemoveParticipant(ctx, sessionID, userID); err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return ErrResourceNotFound
		}
		return errors.Join(ErrInternal, err)
	}

	_ = u.notifier.Publish(ctx, model.SessionEvent{
		SessionID: sessionID,
		Type:      model.EventParticipantLeft,
		Payload:   map[string]any{"user_id": userID.String()},
	})
	return nil
}

func (u *Usecase) Participants(ctx context.Context, sessionID uuid.UUID) ([]model.Participant, error) {
	participants, err := u.repository.Participants(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, errors.Join(ErrInternal, err)
	}
	return participants, nil
}

// Transition moves the session along the state machine. Only the owner may
// trigger it; an illegal edge is rejected without touching the row, and
// configuring -> matching additionally requires at least one provider and one
// genre selection.
func (u *Usecase) Transition(ctx context.Context, sessionID, actorID uuid.UUID, next model.Status) error {
	session, err := u.ByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.OwnerID != actorID {
		return ErrNotOwner
	}
	if !model.IsLegalTransition(session.Status, next) {
		return ErrInvalidTransition
	}
	if next == model.StatusMatching &&
		(len(session.PlatformSelections) == 0 || len(session.GenreSelections) == 0) {
		return errors.Join(ErrValidation, errors.New("select at least one provider and one genre"))
	}

	if err := u.repository.SetStatus(ctx, sessionID, next); err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return ErrResourceNotFound
		}
		return errors.Join(ErrInternal, err)
	}

	_ = u.notifier.Publish(ctx, model.SessionEvent{
		SessionID: sessionID,
		Type:      model.EventStatusChanged,
		Payload:   map[string]any{"status": next},
	})
	return nil
}

// Delete ends the session for everyone. Participants, movie list and
// responses go with it through FK cascade.
func (u *Usecase) Delete(ctx context.Context, sessionID, actorID uuid.UUID) error {
	session, err := u.ByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.OwnerID != actorID {
		return ErrNotOwner
	}

	if err := u.repository.Delete(ctx, sessionID); err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return ErrResourceNotFound
		}
		return errors.Join(ErrInternal, err)
	}

	_ = u.notifier.Publish(ctx, model.SessionEvent{
		SessionID: sessionID,
		Type:      model.EventSessionDeleted,
	})
	return nil
}

func (u *Usecase) IsOwner(ctx context.Context, sessionID, userID uuid.UUID) (bool, error) {
	session, err := u.ByID(ctx, sessionID)
	if err != nil {
		return false, err
	}
	return session.OwnerID == userID, nil
}

func (u *Usecase) IsParticipant(ctx context.Context, sessionID, userID uuid.UUID) (bool, error) {
	ok, err := u.repository.IsParticipant(ctx, sessionID, userID)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return false, ErrResourceNotFound
		}
		return false, errors.Join(ErrInternal, err)
	}
	return ok, nil
}
