package infra_postgres_movie

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mkrogh/reelmatch/internal/model"
	usecase_matchlist "github.com/mkrogh/reelmatch/internal/usecase/matchlist"
)

// Driver backs the materializer: session_movies plus the two session-row
// reads the matchlist usecase needs.
type Driver struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Driver {
	return &Driver{db: db}
}

type sessionMovieDTO struct {
	SessionID   uuid.UUID      `db:"session_id"`
	MovieID     int64          `db:"movie_id"`
	Title       string         `db:"title"`
	PosterPath  sql.NullString `db:"poster_path"`
	Overview    sql.NullString `db:"overview"`
	ReleaseDate sql.NullString `db:"release_date"`
	Genres      pq.Int64Array  `db:"genres"`
	Rating      float64        `db:"rating"`
	Position    int            `db:"position"`
}

func (dto sessionMovieDTO) toModel() model.SessionMovie {
	return model.SessionMovie{
		SessionID:   dto.SessionID,
		MovieID:     dto.MovieID,
		Title:       dto.Title,
		PosterPath:  dto.PosterPath.String,
		Overview:    dto.Overview.String,
		ReleaseDate: dto.ReleaseDate.String,
		Genres:      []int64(dto.Genres),
		Rating:      dto.Rating,
		Position:    dto.Position,
	}
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (d *Driver) Exists(ctx context.Context, sessionID uuid.UUID) (bool, error) {
	var exists bool

	query := `SELECT EXISTS(SELECT 1 FROM session_movies WHERE session_id = $1)`

	err := d.db.GetContext(ctx, &exists, query, sessionID)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// Upsert tolerates items the catalog repeats across pages: the
// (session_id, movie_id) key dedups, last write wins on position.
func (d *Driver) Upsert(ctx context.Context, movies []model.SessionMovie) error {
	if len(movies) == 0 {
		return nil
	}

	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO session_movies (session_id, movie_id, title, poster_path, overview, release_date, genres, rating, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (session_id, movie_id)
		DO UPDATE SET position = EXCLUDED.position
	`

	for _, m := range movies {
		_, err := tx.ExecContext(ctx, query,
			m.SessionID,
			m.MovieID,
			m.Title,
			nullable(m.PosterPath),
			nullable(m.Overview),
			nullable(m.ReleaseDate),
			pq.Int64Array(m.Genres),
			m.Rating,
			m.Position,
		)
		if err != nil {
			if strings.Contains(err.Error(), "foreign key") {
				return usecase_matchlist.ErrResourceNotFound
			}
			return err
		}
	}

	return tx.Commit()
}

func (d *Driver) BySession(ctx context.Context, sessionID uuid.UUID) ([]model.SessionMovie, error) {
	var dtos []sessionMovieDTO

	query := `
		SELECT session_id, movie_id, title, poster_path, overview, release_date, genres, rating, position
		FROM session_movies
		WHERE session_id = $1
		ORDER BY position
	`

	err := d.db.SelectContext(ctx, &dtos, query, sessionID)
	if err != nil {
		return nil, err
	}

	movies := make([]model.SessionMovie, 0, len(dtos))
	for _, dto := range dtos {
		movies = append(movies, dto.toModel())
	}
	return movies, nil
}

// FeedFor keeps the shared position ordering and drops movies the user
// already voted on.
func (d *Driver) FeedFor(ctx context.Context, sessionID, userID uuid.UUID) ([]model.SessionMovie, error) {
	var dtos []sessionMovieDTO

	query := `
		SELECT sm.session_id, sm.movie_id, sm.title, sm.poster_path, sm.overview, sm.release_date, sm.genres, sm.rating, sm.position
		FROM session_movies sm
		WHERE sm.session_id = $1
		  AND NOT EXISTS (
			SELECT 1 FROM responses r
			WHERE r.session_id = sm.session_id
			  AND r.movie_id = sm.movie_id
			  AND r.user_id = $2
		  )
		ORDER BY sm.position
	`

	err := d.db.SelectContext(ctx, &dtos, query, sessionID, userID)
	if err != nil {
		return nil, err
	}

	movies := make([]model.SessionMovie, 0, len(dtos))
	for _, dto := range dtos {
		movies = append(movies, dto.toModel())
	}
	return movies, nil
}

type sessionDTO struct {
	ID            uuid.UUID     `db:"id"`
	OwnerID       uuid.UUID     `db:"owner_id"`
	Status        string        `db:"status"`
	PlatformIDs   pq.Int64Array `db:"platform_ids"`
	GenreIDs      pq.Int64Array `db:"genre_ids"`
	MoviesFetched bool          `db:"movies_fetched"`
}

// ByID reads the slice of the session row the materializer cares about:
// owner, status, flattened filter ids and the fetched flag.
func (d *Driver) ByID(ctx context.Context, id uuid.UUID) (model.Session, error) {
	var dto sessionDTO

	query := `
		SELECT id, owner_id, status, platform_ids, genre_ids, movies_fetched
		FROM sessions
		WHERE id = $1
	`

	err := d.db.GetContext(ctx, &dto, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.Session{}, usecase_matchlist.ErrResourceNotFound
		}
		return model.Session{}, err
	}

	platform := make(model.SelectionSet, 0, len(dto.PlatformIDs))
	for _, id := range dto.PlatformIDs {
		platform = append(platform, model.Selection{Key: id})
	}
	genre := make(model.SelectionSet, 0, len(dto.GenreIDs))
	for _, id := range dto.GenreIDs {
		genre = append(genre, model.Selection{Key: id})
	}

	return model.Session{
		ID:                 dto.ID,
		OwnerID:            dto.OwnerID,
		Status:             dto.Status,
		PlatformSelections: platform,
		GenreSelections:    genre,
		MoviesFetched:      dto.MoviesFetched,
	}, nil
}

// MarkMoviesFetched flips the one-way flag; running it again is a no-op.
func (d *Driver) MarkMoviesFetched(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE sessions SET movies_fetched = true WHERE id = $1`

	result, err := d.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return usecase_matchlist.ErrResourceNotFound
	}
	return nil
}
