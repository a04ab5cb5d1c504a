package postrepo

import (
	"context"

	"github.com/WangWilly/xConvo/pkgs/commonpkg/model"
	"github.com/jmoiron/sqlx"
)

const postColumns = `post_id, username, user_id, raw_text, clean_text, favorites, retweets, followers, following, polarity, subjectivity, composite_rank`

type postRow struct {
	RunId string `db:"run_id"`
	model.Post
}

type Repo struct{}

func New() *Repo {
	return &Repo{}
}

// CreateMany stores posts of a run inside tx, keeping their order
func (r *Repo) CreateMany(ctx context.Context, tx *sqlx.Tx, runId string, posts model.PostTable) error {
	stmt := `INSERT INTO posts(run_id, ` + postColumns + `) VALUES(:run_id, :post_id, :username, :user_id, :raw_text, :clean_text, :favorites, :retweets, :followers, :following, :polarity, :subjectivity, :composite_rank)`

	prepared, err := tx.PrepareNamedContext(ctx, stmt)
	if err != nil {
		return err
	}
	defer prepared.Close()

	for _, post := range posts {
		if _, err := prepared.ExecContext(ctx, postRow{RunId: runId, Post: post}); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repo) ListByRun(ctx context.Context, db *sqlx.DB, runId string) (model.PostTable, error) {
	stmt := db.Rebind(`SELECT ` + postColumns + ` FROM posts WHERE run_id=? ORDER BY id`)
	results := make(model.PostTable, 0)
	if err := db.SelectContext(ctx, &results, stmt, runId); err != nil {
		return nil, err
	}
	return results, nil
}
