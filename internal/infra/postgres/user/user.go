package infra_postgres_user

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/mkrogh/reelmatch/internal/model"
	usecase_identity "github.com/mkrogh/reelmatch/internal/usecase/identity"
)

type Driver struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Driver {
	return &Driver{db: db}
}

type userDTO struct {
	ID       uuid.UUID `db:"id"`
	Username string    `db:"username"`
}

func (d *Driver) Create(ctx context.Context, user model.User) error {
	query := `INSERT INTO users (id, username) VALUES ($1, $2)`

	_, err := d.db.ExecContext(ctx, query, user.ID, user.Username)
	return err
}

func (d *Driver) ByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	var dto userDTO

	query := `SELECT id, username FROM users WHERE id = $1`

	err := d.db.GetContext(ctx, &dto, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.User{}, usecase_identity.ErrResourceNotFound
		}
		return model.User{}, err
	}

	return model.User{ID: dto.ID, Username: dto.Username}, nil
}

func (d *Driver) Rename(ctx context.Context, id uuid.UUID, username string) error {
	query := `UPDATE users SET username = $1 WHERE id = $2`

	result, err := d.db.ExecContext(ctx, query, username, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return usecase_identity.ErrResourceNotFound
	}
	return nil
}
