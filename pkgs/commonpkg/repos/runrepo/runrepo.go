package runrepo

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/WangWilly/xConvo/pkgs/commonpkg/model"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repo struct{}

func New() *Repo {
	return &Repo{}
}

// Create records a new run of ticker under a fresh uuid
func (r *Repo) Create(ctx context.Context, db sqlx.ExtContext, ticker string) (*model.Run, error) {
	run := &model.Run{
		Id:        uuid.NewString(),
		Ticker:    strings.ToUpper(strings.TrimPrefix(ticker, "$")),
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}

	stmt := `INSERT INTO runs(id, ticker, created_at) VALUES(:id, :ticker, :created_at)`
	if _, err := sqlx.NamedExecContext(ctx, db, stmt, run); err != nil {
		return nil, err
	}
	return run, nil
}

func (r *Repo) GetById(ctx context.Context, db *sqlx.DB, id string) (*model.Run, error) {
	stmt := db.Rebind(`SELECT id, ticker, created_at FROM runs WHERE id=?`)
	result := &model.Run{}
	err := db.GetContext(ctx, result, stmt, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListByTicker returns the runs of ticker, newest first
func (r *Repo) ListByTicker(ctx context.Context, db *sqlx.DB, ticker string) ([]model.Run, error) {
	stmt := db.Rebind(`SELECT id, ticker, created_at FROM runs WHERE ticker=? ORDER BY created_at DESC, id`)
	results := make([]model.Run, 0)
	if err := db.SelectContext(ctx, &results, stmt, strings.ToUpper(strings.TrimPrefix(ticker, "$"))); err != nil {
		return nil, err
	}
	return results, nil
}
