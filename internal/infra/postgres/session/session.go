package infra_postgres_session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mkrogh/reelmatch/internal/model"
	usecase_session "github.com/mkrogh/reelmatch/internal/usecase/session"
)

type Driver struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Driver {
	return &Driver{db: db}
}

type sessionDTO struct {
	ID                 uuid.UUID     `db:"id"`
	OwnerID            uuid.UUID     `db:"owner_id"`
	Status             string        `db:"status"`
	JoinCode           string        `db:"join_code"`
	PlatformSelections []byte        `db:"platform_selections"`
	GenreSelections    []byte        `db:"genre_selections"`
	SelectionsVersion  int64         `db:"selections_version"`
	MoviesFetched      bool          `db:"movies_fetched"`
	Matches            pq.Int64Array `db:"matches"`
	CreatedAt          time.Time     `db:"created_at"`
}

const sessionColumns = `
	id, owner_id, status, join_code,
	platform_selections, genre_selections, selections_version,
	movies_fetched, matches, created_at
`

func (dto sessionDTO) toModel() (model.Session, error) {
	var platform, genre model.SelectionSet
	if len(dto.PlatformSelections) > 0 {
		if err := json.Unmarshal(dto.PlatformSelections, &platform); err != nil {
			return model.Session{}, fmt.Errorf("decode platform selections: %w", err)
		}
	}
	if len(dto.GenreSelections) > 0 {
		if err := json.Unmarshal(dto.GenreSelections, &genre); err != nil {
			return model.Session{}, fmt.Errorf("decode genre selections: %w", err)
		}
	}

	return model.Session{
		ID:                 dto.ID,
		OwnerID:            dto.OwnerID,
		Status:             dto.Status,
		JoinCode:           dto.JoinCode,
		PlatformSelections: platform,
		GenreSelections:    genre,
		SelectionsVersion:  dto.SelectionsVersion,
		MoviesFetched:      dto.MoviesFetched,
		Matches:            []int64(dto.Matches),
		CreatedAt:          dto.CreatedAt,
	}, nil
}

func (d *Driver) Create(ctx context.Context, session model.Session) error {
	query := `
		INSERT INTO sessions (id, owner_id, status, join_code, platform_selections, genre_selections, matches)
		VALUES ($1, $2, $3, $4, '[]'::jsonb, '[]'::jsonb, '{}')
	`

	_, err := d.db.ExecContext(ctx, query,
		session.ID,
		session.OwnerID,
		session.Status,
		session.JoinCode,
	)
	if err != nil {
		if strings.Contains(err.Error(), "unique constraint") ||
			strings.Contains(err.Error(), "duplicate key") {
			return usecase_session.ErrCodeConflict
		}
		return err
	}
	return nil
}

func (d *Driver) ByID(ctx context.Context, id uuid.UUID) (model.Session, error) {
	var dto sessionDTO

	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1`

	err := d.db.GetContext(ctx, &dto, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.Session{}, usecase_session.ErrResourceNotFound
		}
		return model.Session{}, err
	}

	return dto.toModel()
}

func (d *Driver) ByJoinCode(ctx context.Context, code string) (model.Session, error) {
	var dto sessionDTO

	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE join_code = $1`

	err := d.db.GetContext(ctx, &dto, query, code)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.Session{}, usecase_session.ErrResourceNotFound
		}
		return model.Session{}, err
	}

	return dto.toModel()
}

func (d *Driver) ByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Session, error) {
	var dtos []sessionDTO

	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE owner_id = $1 ORDER BY created_at DESC`

	err := d.db.SelectContext(ctx, &dtos, query, ownerID)
	if err != nil {
		return nil, err
	}

	sessions := make([]model.Session, 0, len(dtos))
	for _, dto := range dtos {
		session, err := dto.toModel()
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

func (d *Driver) SetStatus(ctx context.Context, id uuid.UUID, status model.Status) error {
	query := `UPDATE sessions SET status = $1 WHERE id = $2`

	result, err := d.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return usecase_session.ErrResourceNotFound
	}
	return nil
}

// Delete cascades to participants, movie list and responses through FKs.
func (d *Driver) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM sessions WHERE id = $1`

	result, err := d.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return usecase_session.ErrResourceNotFound
	}
	return nil
}

// AddParticipant is idempotent: the (session_id, user_id) key swallows a
// duplicate join.
func (d *Driver) AddParticipant(ctx context.Context, p model.Participant) error {
	query := `
		INSERT INTO session_users (id, session_id, user_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_id, user_id) DO NOTHING
	`

	_, err := d.db.ExecContext(ctx, query, p.ID, p.SessionID, p.UserID)
	if err != nil {
		if strings.Contains(err.Error(), "foreign key") {
			return usecase_session.ErrResourceNotFound
		}
		return err
	}
	return nil
}

func (d *Driver) RemoveParticipant(ctx context.Context, sessionID, userID uuid.UUID) error {
	query := `DELETE FROM session_users WHERE session_id = $1 AND user_id = $2`

	result, err := d.db.ExecContext(ctx, query, sessionID, userID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return usecase_session.ErrResourceNotFound
	}
	return nil
}

type participantDTO struct {
	ID        uuid.UUID `db:"id"`
	SessionID uuid.UUID `db:"session_id"`
	UserID    uuid.UUID `db:"user_id"`
	JoinedAt  time.Time `db:"joined_at"`
}

func (d *Driver) Participants(ctx context.Context, sessionID uuid.UUID) ([]model.Participant, error) {
	var dtos []participantDTO

	query := `
		SELECT id, session_id, user_id, joined_at
		FROM session_users
		WHERE session_id = $1
		ORDER BY joined_at
	`

	err := d.db.SelectContext(ctx, &dtos, query, sessionID)
	if err != nil {
		return nil, err
	}

	participants := make([]model.Participant, 0, len(dtos))
	for _, dto := range dtos {
		participants = append(participants, model.Participant{
			ID:        dto.ID,
			SessionID: dto.SessionID,
			UserID:    dto.UserID,
			JoinedAt:  dto.JoinedAt,
		})
	}
	return participants, nil
}

func (d *Driver) IsParticipant(ctx context.Context, sessionID, userID uuid.UUID) (bool, error) {
	var exists bool

	query := `SELECT EXISTS(SELECT 1 FROM session_users WHERE session_id = $1 AND user_id = $2)`

	err := d.db.GetContext(ctx, &exists, query, sessionID, userID)
	if err != nil {
		return false, err
	}
	return exists, nil
}
