package pipeline

import (
	"context"
	"time"

	"github.com/WangWilly/xConvo/pkgs/analysispkg/joiner"
	"github.com/WangWilly/xConvo/pkgs/analysispkg/ranker"
	"github.com/WangWilly/xConvo/pkgs/analysispkg/recordbuilder"
	"github.com/WangWilly/xConvo/pkgs/analysispkg/sentiment"
	"github.com/WangWilly/xConvo/pkgs/commonpkg/dtos/rawpostdto"
	"github.com/WangWilly/xConvo/pkgs/commonpkg/metrics"
	"github.com/WangWilly/xConvo/pkgs/commonpkg/model"
	log "github.com/sirupsen/logrus"
)

////////////////////////////////////////////////////////////////////////////////

// Fetcher retrieves raw posts about a ticker and replies to a single post
type Fetcher interface {
	FetchPosts(ctx context.Context, ticker string, maxCount int) (posts, replies []rawpostdto.RawPost, err error)
	FetchRepliesTo(ctx context.Context, postId uint64, username string) ([]rawpostdto.RawPost, error)
}

type Config struct {
	MaxPosts           int
	TopN               int
	TopWords           int
	FetchThreadReplies bool
}

// Default Values
const (
	DEFAULT_MAX_POSTS = 500
	DEFAULT_TOP_WORDS = 25
)

var NGRAM_SIZES = []int{1, 2, 3}

type Pipeline struct {
	fetcher   Fetcher
	annotator sentiment.Annotator
	cfg       Config
}

func New(fetcher Fetcher, annotator sentiment.Annotator, cfg Config) *Pipeline {
	if cfg.MaxPosts <= 0 {
		cfg.MaxPosts = DEFAULT_MAX_POSTS
	}
	if cfg.TopN <= 0 {
		cfg.TopN = ranker.DEFAULT_TOP_N
	}
	if cfg.TopWords <= 0 {
		cfg.TopWords = DEFAULT_TOP_WORDS
	}
	return &Pipeline{fetcher: fetcher, annotator: annotator, cfg: cfg}
}

// Dataset is the ranked view of one ticker: the top posts, the replies
// answering them and their authors.
type Dataset struct {
	Ticker     string
	RawPosts   []rawpostdto.RawPost
	RawReplies []rawpostdto.RawPost
	Posts      model.PostTable
	Replies    model.ReplyTable
	Users      model.UserTable
	Stats      recordbuilder.Stats
}

////////////////////////////////////////////////////////////////////////////////

// Build fetches the posts of ticker and assembles its dataset
func (p *Pipeline) Build(ctx context.Context, ticker string) (*Dataset, error) {
	var rawPosts, rawReplies []rawpostdto.RawPost
	err := stage(STAGE_FETCH, func() error {
		var err error
		rawPosts, rawReplies, err = p.fetcher.FetchPosts(ctx, ticker, p.cfg.MaxPosts)
		return err
	})
	if err != nil {
		return nil, err
	}
	metrics.PostsFetched.Add(float64(len(rawPosts) + len(rawReplies)))

	return p.assemble(ctx, ticker, rawPosts, rawReplies, p.cfg.FetchThreadReplies)
}

// BuildFromRaw assembles a dataset from records saved by an earlier fetch.
// No request is made.
func (p *Pipeline) BuildFromRaw(ctx context.Context, ticker string, rawPosts, rawReplies []rawpostdto.RawPost) (*Dataset, error) {
	return p.assemble(ctx, ticker, rawPosts, rawReplies, false)
}

func (p *Pipeline) assemble(ctx context.Context, ticker string, rawPosts, rawReplies []rawpostdto.RawPost, lookupThreads bool) (*Dataset, error) {
	logger := log.WithFields(log.Fields{
		"caller": "Pipeline.assemble",
		"ticker": ticker,
	})
	builder := recordbuilder.New(p.annotator)

	var posts model.PostTable
	err := stage(STAGE_BUILD_POSTS, func() error {
		var err error
		posts, err = builder.BuildPosts(ctx, rawPosts)
		return err
	})
	if err != nil {
		return nil, err
	}

	var ranked model.PostTable
	timeStage(STAGE_RANK, func() {
		ranked = ranker.Rank(posts, p.cfg.TopN)
	})
	logger.Infof("ranked %d of %d posts", len(ranked), len(posts))

	allReplies := append([]rawpostdto.RawPost{}, rawReplies...)
	if lookupThreads {
		err = stage(STAGE_FETCH_REPLIES, func() error {
			for _, post := range ranked {
				more, err := p.fetcher.FetchRepliesTo(ctx, post.Id, post.Username)
				if err != nil {
					return err
				}
				allReplies = append(allReplies, more...)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	var replies model.ReplyTable
	err = stage(STAGE_BUILD_REPLIES, func() error {
		built, err := builder.BuildReplies(ctx, allReplies)
		if err != nil {
			return err
		}
		replies = joiner.FilterRepliesToRanked(joiner.DedupReplies(built), ranked)
		return nil
	})
	if err != nil {
		return nil, err
	}

	var users model.UserTable
	err = stage(STAGE_BUILD_USERS, func() error {
		built, err := builder.BuildUsers(rawPosts, nil)
		if err != nil {
			return err
		}
		users = joiner.FilterUsersToRanked(built, ranked)
		return nil
	})
	if err != nil {
		return nil, err
	}

	stats := builder.Stats()
	metrics.AddDropped(metrics.TABLE_POSTS, stats.DroppedPosts)
	metrics.AddDropped(metrics.TABLE_REPLIES, stats.DroppedReplies)
	logger.WithFields(log.Fields{
		"replies":         len(replies),
		"users":           len(users),
		"dropped_posts":   stats.DroppedPosts,
		"dropped_replies": stats.DroppedReplies,
	}).Infoln("dataset assembled")

	return &Dataset{
		Ticker:     ticker,
		RawPosts:   rawPosts,
		RawReplies: allReplies,
		Posts:      ranked,
		Replies:    replies,
		Users:      users,
		Stats:      stats,
	}, nil
}

////////////////////////////////////////////////////////////////////////////////

// stage times fn and tags its error with name
func stage(name string, fn func() error) error {
	defer metrics.ObserveStage(name, time.Now())
	if err := fn(); err != nil {
		return &StageError{Stage: name, Err: err}
	}
	return nil
}

// timeStage times a stage that cannot fail
func timeStage(name string, fn func()) {
	defer metrics.ObserveStage(name, time.Now())
	fn()
}
