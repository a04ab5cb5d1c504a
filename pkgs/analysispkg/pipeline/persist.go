package pipeline

import (
	"context"

	"github.com/WangWilly/xConvo/pkgs/commonpkg/database"
	"github.com/WangWilly/xConvo/pkgs/commonpkg/model"
	"github.com/WangWilly/xConvo/pkgs/commonpkg/repos/postrepo"
	"github.com/WangWilly/xConvo/pkgs/commonpkg/repos/replyrepo"
	"github.com/WangWilly/xConvo/pkgs/commonpkg/repos/runrepo"
	"github.com/WangWilly/xConvo/pkgs/commonpkg/repos/userrepo"
	"github.com/WangWilly/xConvo/pkgs/commonpkg/repos/wordcountrepo"
	"github.com/jmoiron/sqlx"
	log "github.com/sirupsen/logrus"
)

const (
	CORPUS_POSTS        = wordcountrepo.CORPUS_POSTS
	CORPUS_REPLIES      = wordcountrepo.CORPUS_REPLIES
	CORPUS_DESCRIPTIONS = wordcountrepo.CORPUS_DESCRIPTIONS
)

////////////////////////////////////////////////////////////////////////////////

// Recorder stores the results of a run in a database
type Recorder struct {
	db            *sqlx.DB
	runRepo       *runrepo.Repo
	postRepo      *postrepo.Repo
	replyRepo     *replyrepo.Repo
	userRepo      *userrepo.Repo
	wordCountRepo *wordcountrepo.Repo
}

func NewRecorder(db *sqlx.DB) *Recorder {
	return &Recorder{
		db:            db,
		runRepo:       runrepo.New(),
		postRepo:      postrepo.New(),
		replyRepo:     replyrepo.New(),
		userRepo:      userrepo.New(),
		wordCountRepo: wordcountrepo.New(),
	}
}

// Record inserts ds and res under a new run in one transaction, so a failed
// insert leaves no partial run behind. res may be nil.
func (r *Recorder) Record(ctx context.Context, ds *Dataset, res *Analysis) (*model.Run, error) {
	var run *model.Run
	err := stage(STAGE_PERSIST, func() error {
		return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
			var err error
			if run, err = r.runRepo.Create(ctx, tx, ds.Ticker); err != nil {
				return err
			}
			if err = r.postRepo.CreateMany(ctx, tx, run.Id, ds.Posts); err != nil {
				return err
			}
			if err = r.replyRepo.CreateMany(ctx, tx, run.Id, ds.Replies); err != nil {
				return err
			}
			if err = r.userRepo.CreateMany(ctx, tx, run.Id, ds.Users); err != nil {
				return err
			}
			if res == nil {
				return nil
			}

			for _, n := range NGRAM_SIZES {
				if err = r.wordCountRepo.CreateMany(ctx, tx, run.Id, CORPUS_POSTS, n, res.PostWords[n]); err != nil {
					return err
				}
				if err = r.wordCountRepo.CreateMany(ctx, tx, run.Id, CORPUS_REPLIES, n, res.ReplyWords[n]); err != nil {
					return err
				}
			}
			return r.wordCountRepo.CreateMany(ctx, tx, run.Id, CORPUS_DESCRIPTIONS, 1, res.DescriptionWords)
		})
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"caller": "Recorder.Record",
		"run":    run.Id,
		"ticker": run.Ticker,
	}).Infoln("run recorded")
	return run, nil
}
