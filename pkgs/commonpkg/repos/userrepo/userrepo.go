package userrepo

import (
	"context"
	"database/sql"

	"github.com/WangWilly/xConvo/pkgs/commonpkg/model"
	"github.com/jmoiron/sqlx"
)

const userColumns = `username, user_id, full_description, description, followers, following, favorites, tweet_count`

type userRow struct {
	RunId string `db:"run_id"`
	model.User
}

type Repo struct{}

func New() *Repo {
	return &Repo{}
}

func (r *Repo) Create(ctx context.Context, db sqlx.ExtContext, runId string, usr *model.User) error {
	_, err := sqlx.NamedExecContext(ctx, db, insertStmt, userRow{RunId: runId, User: *usr})
	return err
}

func (r *Repo) CreateMany(ctx context.Context, tx *sqlx.Tx, runId string, users model.UserTable) error {
	prepared, err := tx.PrepareNamedContext(ctx, insertStmt)
	if err != nil {
		return err
	}
	defer prepared.Close()

	for _, usr := range users {
		if _, err := prepared.ExecContext(ctx, userRow{RunId: runId, User: usr}); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repo) GetByUsername(ctx context.Context, db *sqlx.DB, runId string, username string) (*model.User, error) {
	stmt := db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE run_id=? AND username=?`)
	result := &model.User{}
	err := db.GetContext(ctx, result, stmt, runId, username)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *Repo) ListByRun(ctx context.Context, db *sqlx.DB, runId string) (model.UserTable, error) {
	stmt := db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE run_id=? ORDER BY id`)
	results := make(model.UserTable, 0)
	if err := db.SelectContext(ctx, &results, stmt, runId); err != nil {
		return nil, err
	}
	return results, nil
}

const insertStmt = `INSERT INTO users(run_id, ` + userColumns + `) VALUES(:run_id, :username, :user_id, :full_description, :description, :followers, :following, :favorites, :tweet_count)`
