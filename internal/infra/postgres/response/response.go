package infra_postgres_response

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mkrogh/reelmatch/internal/model"
	usecase_vote "github.com/mkrogh/reelmatch/internal/usecase/vote"
)

// Driver backs the vote engine: the responses table and the session's
// matches array.
type Driver struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Driver {
	return &Driver{db: db}
}

// Insert records the vote once. The (session_id, user_id, movie_id) key turns
// a repeat into a no-op; rowsAffected tells the two apart.
func (d *Driver) Insert(ctx context.Context, response model.Response) (bool, error) {
	query := `
		INSERT INTO responses (id, session_id, user_id, movie_id, liked)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (session_id, user_id, movie_id) DO NOTHING
	`

	result, err := d.db.ExecContext(ctx, query,
		response.ID,
		response.SessionID,
		response.UserID,
		response.MovieID,
		response.Liked,
	)
	if err != nil {
		if strings.Contains(err.Error(), "foreign key") {
			return false, usecase_vote.ErrResourceNotFound
		}
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}

// VoteCounts returns L (distinct likers) and T (distinct responders) for one
// movie, the two counts the match rule compares.
func (d *Driver) VoteCounts(ctx context.Context, sessionID uuid.UUID, movieID int64) (int, int, error) {
	var counts struct {
		Likes int `db:"likes"`
		Total int `db:"total"`
	}

	query := `
		SELECT
			COUNT(DISTINCT user_id) FILTER (WHERE liked) AS likes,
			COUNT(DISTINCT user_id) AS total
		FROM responses
		WHERE session_id = $1 AND movie_id = $2
	`

	err := d.db.GetContext(ctx, &counts, query, sessionID, movieID)
	if err != nil {
		return 0, 0, err
	}
	return counts.Likes, counts.Total, nil
}

func (d *Driver) UnvotedRemaining(ctx context.Context, sessionID, userID uuid.UUID) (int, error) {
	var remaining int

	query := `
		SELECT COUNT(*)
		FROM session_movies sm
		WHERE sm.session_id = $1
		  AND NOT EXISTS (
			SELECT 1 FROM responses r
			WHERE r.session_id = sm.session_id
			  AND r.movie_id = sm.movie_id
			  AND r.user_id = $2
		  )
	`

	err := d.db.GetContext(ctx, &remaining, query, sessionID, userID)
	if err != nil {
		return 0, err
	}
	return remaining, nil
}

// AppendMatch appends the movie to the session's match list in one
// conditional statement: the presence check and the write cannot interleave
// with a concurrent evaluator, so the list never picks up duplicates.
func (d *Driver) AppendMatch(ctx context.Context, sessionID uuid.UUID, movieID int64) (bool, error) {
	query := `
		UPDATE sessions
		SET matches = array_append(matches, $2)
		WHERE id = $1 AND NOT ($2 = ANY(matches))
	`

	result, err := d.db.ExecContext(ctx, query, sessionID, movieID)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if rowsAffected > 0 {
		return true, nil
	}

	var exists bool
	existsQuery := `SELECT EXISTS(SELECT 1 FROM sessions WHERE id = $1)`
	if err := d.db.GetContext(ctx, &exists, existsQuery, sessionID); err != nil {
		return false, err
	}
	if !exists {
		return false, usecase_vote.ErrResourceNotFound
	}
	return false, nil
}

func (d *Driver) Matches(ctx context.Context, sessionID uuid.UUID) ([]int64, error) {
	var matches pq.Int64Array

	query := `SELECT matches FROM sessions WHERE id = $1`

	err := d.db.GetContext(ctx, &matches, query, sessionID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, usecase_vote.ErrResourceNotFound
		}
		return nil, err
	}
	return []int64(matches), nil
}
