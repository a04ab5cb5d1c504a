package wordcountrepo

import (
	"context"

	"github.com/WangWilly/xConvo/pkgs/commonpkg/model"
	"github.com/jmoiron/sqlx"
)

// corpus names
const (
	CORPUS_POSTS        = "posts"
	CORPUS_REPLIES      = "replies"
	CORPUS_DESCRIPTIONS = "descriptions"
)

type wordCountRow struct {
	RunId  string `db:"run_id"`
	Corpus string `db:"corpus"`
	N      int    `db:"n"`
	model.WordCount
}

type Repo struct{}

func New() *Repo {
	return &Repo{}
}

// CreateMany stores the n-gram table of one corpus in a run inside tx
func (r *Repo) CreateMany(ctx context.Context, tx *sqlx.Tx, runId string, corpus string, n int, words model.WordCountTable) error {
	stmt := `INSERT INTO word_counts(run_id, corpus, n, word, count, avg_net_influence) VALUES(:run_id, :corpus, :n, :word, :count, :avg_net_influence)`

	prepared, err := tx.PrepareNamedContext(ctx, stmt)
	if err != nil {
		return err
	}
	defer prepared.Close()

	for _, w := range words {
		row := wordCountRow{RunId: runId, Corpus: corpus, N: n, WordCount: w}
		if _, err := prepared.ExecContext(ctx, row); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repo) ListByRun(ctx context.Context, db *sqlx.DB, runId string, corpus string, n int) (model.WordCountTable, error) {
	stmt := db.Rebind(`SELECT word, count, avg_net_influence FROM word_counts WHERE run_id=? AND corpus=? AND n=? ORDER BY id`)
	results := make(model.WordCountTable, 0)
	if err := db.SelectContext(ctx, &results, stmt, runId, corpus, n); err != nil {
		return nil, err
	}
	return results, nil
}
