package replyrepo

import (
	"context"

	"github.com/WangWilly/xConvo/pkgs/commonpkg/model"
	"github.com/jmoiron/sqlx"
)

const replyColumns = `post_id, reply_id, username, user_id, raw_text, clean_text, favorites, retweets, followers, following, polarity, subjectivity, composite_rank`

type replyRow struct {
	RunId string `db:"run_id"`
	model.Reply
}

type Repo struct{}

func New() *Repo {
	return &Repo{}
}

func (r *Repo) CreateMany(ctx context.Context, tx *sqlx.Tx, runId string, replies model.ReplyTable) error {
	stmt := `INSERT INTO replies(run_id, ` + replyColumns + `) VALUES(:run_id, :post_id, :reply_id, :username, :user_id, :raw_text, :clean_text, :favorites, :retweets, :followers, :following, :polarity, :subjectivity, :composite_rank)`

	prepared, err := tx.PrepareNamedContext(ctx, stmt)
	if err != nil {
		return err
	}
	defer prepared.Close()

	for _, reply := range replies {
		if _, err := prepared.ExecContext(ctx, replyRow{RunId: runId, Reply: reply}); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repo) ListByRun(ctx context.Context, db *sqlx.DB, runId string) (model.ReplyTable, error) {
	stmt := db.Rebind(`SELECT ` + replyColumns + ` FROM replies WHERE run_id=? ORDER BY id`)
	results := make(model.ReplyTable, 0)
	if err := db.SelectContext(ctx, &results, stmt, runId); err != nil {
		return nil, err
	}
	return results, nil
}

// ListByPost returns the replies of one post in a run
func (r *Repo) ListByPost(ctx context.Context, db *sqlx.DB, runId string, postId uint64) (model.ReplyTable, error) {
	stmt := db.Rebind(`SELECT ` + replyColumns + ` FROM replies WHERE run_id=? AND reply_id=? ORDER BY id`)
	results := make(model.ReplyTable, 0)
	if err := db.SelectContext(ctx, &results, stmt, runId, postId); err != nil {
		return nil, err
	}
	return results, nil
}
