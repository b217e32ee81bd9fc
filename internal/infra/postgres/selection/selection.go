package infra_postgres_selection

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mkrogh/reelmatch/internal/model"
	usecase_selection "github.com/mkrogh/reelmatch/internal/usecase/selection"
)

type Driver struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Driver {
	return &Driver{db: db}
}

type selectionsDTO struct {
	PlatformSelections []byte `db:"platform_selections"`
	GenreSelections    []byte `db:"genre_selections"`
	SelectionsVersion  int64  `db:"selections_version"`
}

func (d *Driver) Selections(ctx context.Context, sessionID uuid.UUID) (model.SelectionSet, model.SelectionSet, int64, error) {
	var dto selectionsDTO

	query := `
		SELECT platform_selections, genre_selections, selections_version
		FROM sessions
		WHERE id = $1
	`

	err := d.db.GetContext(ctx, &dto, query, sessionID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, 0, usecase_selection.ErrResourceNotFound
		}
		return nil, nil, 0, err
	}

	var platform, genre model.SelectionSet
	if len(dto.PlatformSelections) > 0 {
		if err := json.Unmarshal(dto.PlatformSelections, &platform); err != nil {
			return nil, nil, 0, fmt.Errorf("decode platform selections: %w", err)
		}
	}
	if len(dto.GenreSelections) > 0 {
		if err := json.Unmarshal(dto.GenreSelections, &genre); err != nil {
			return nil, nil, 0, fmt.Errorf("decode genre selections: %w", err)
		}
	}

	return platform, genre, dto.SelectionsVersion, nil
}

// CompareAndSetSelections writes the merged sets plus their flattened id
// projections, guarded by the version read before the merge. A lost race
// bumps nothing and surfaces as ErrVersionConflict so the caller re-merges
// against the fresh set.
func (d *Driver) CompareAndSetSelections(
	ctx context.Context,
	sessionID uuid.UUID,
	version int64,
	platform, genre model.SelectionSet,
) error {
	platformJSON, err := json.Marshal(platform)
	if err != nil {
		return fmt.Errorf("encode platform selections: %w", err)
	}
	genreJSON, err := json.Marshal(genre)
	if err != nil {
		return fmt.Errorf("encode genre selections: %w", err)
	}

	query := `
		UPDATE sessions
		SET
			platform_selections = $1,
			genre_selections = $2,
			platform_ids = $3,
			genre_ids = $4,
			selections_version = selections_version + 1
		WHERE id = $5 AND selections_version = $6
	`

	result, err := d.db.ExecContext(ctx, query,
		platformJSON,
		genreJSON,
		pq.Int64Array(platform.Keys()),
		pq.Int64Array(genre.Keys()),
		sessionID,
		version,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected > 0 {
		return nil
	}

	var exists bool
	existsQuery := `SELECT EXISTS(SELECT 1 FROM sessions WHERE id = $1)`
	if err := d.db.GetContext(ctx, &exists, existsQuery, sessionID); err != nil {
		return err
	}
	if !exists {
		return usecase_selection.ErrResourceNotFound
	}
	return usecase_selection.ErrVersionConflict
}
