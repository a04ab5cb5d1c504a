package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/WangWilly/xConvo/pkgs/analysispkg/sentiment"
	"github.com/WangWilly/xConvo/pkgs/commonpkg/database"
	"github.com/WangWilly/xConvo/pkgs/commonpkg/dtos/rawpostdto"
	"github.com/WangWilly/xConvo/pkgs/commonpkg/metrics"
	"github.com/WangWilly/xConvo/pkgs/commonpkg/model"
	"github.com/WangWilly/xConvo/pkgs/commonpkg/repos/postrepo"
	"github.com/WangWilly/xConvo/pkgs/commonpkg/repos/runrepo"
	"github.com/WangWilly/xConvo/pkgs/commonpkg/repos/wordcountrepo"
	"github.com/WangWilly/xConvo/pkgs/commonpkg/storage"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

////////////////////////////////////////////////////////////////////////////////

func post(id, userId uint64, name, text string, retweets, favorites, followers int) rawpostdto.RawPost {
	return rawpostdto.New([]byte(fmt.Sprintf(
		`{"id_str":"%d","full_text":%q,"retweet_count":%d,"favorite_count":%d,"user":{"id_str":"%d","screen_name":%q,"followers_count":%d,"friends_count":0,"favourites_count":3,"statuses_count":40,"description":"options trader"}}`,
		id, text, retweets, favorites, userId, name, followers,
	)))
}

func reply(id, parent uint64, text string) rawpostdto.RawPost {
	return rawpostdto.New([]byte(fmt.Sprintf(
		`{"id_str":"%d","full_text":%q,"in_reply_to_status_id_str":"%d","retweet_count":0,"favorite_count":1,"user":{"id_str":"900","screen_name":"replier","followers_count":2,"friends_count":8,"favourites_count":0,"statuses_count":5,"description":null}}`,
		id, text, parent,
	)))
}

type fakeFetcher struct {
	posts   []rawpostdto.RawPost
	replies []rawpostdto.RawPost
	threads map[uint64][]rawpostdto.RawPost
	err     error

	lookups []uint64
}

func (f *fakeFetcher) FetchPosts(_ context.Context, _ string, _ int) ([]rawpostdto.RawPost, []rawpostdto.RawPost, error) {
	return f.posts, f.replies, f.err
}

func (f *fakeFetcher) FetchRepliesTo(_ context.Context, postId uint64, _ string) ([]rawpostdto.RawPost, error) {
	f.lookups = append(f.lookups, postId)
	return f.threads[postId], nil
}

func sampleFetcher() *fakeFetcher {
	return &fakeFetcher{
		posts: []rawpostdto.RawPost{
			post(3, 30, "carol", "$ABC sideways again", 1, 1, 1),
			post(1, 10, "alice", "$ABC to the moon", 10, 5, 100),
			post(2, 20, "bob", "$ABC buy the dip", 5, 10, 50),
		},
		replies: []rawpostdto.RawPost{
			reply(101, 1, "moon soon"),
			reply(199, 77, "unrelated thread"),
		},
		threads: map[uint64][]rawpostdto.RawPost{
			1: {reply(101, 1, "moon soon"), reply(102, 1, "great call")},
		},
	}
}

func newPipeline(f Fetcher, threads bool) *Pipeline {
	return New(f, sentiment.NewLexiconAnnotator(), Config{TopN: 10, TopWords: 5, FetchThreadReplies: threads})
}

////////////////////////////////////////////////////////////////////////////////

func TestBuildRanksPosts(t *testing.T) {
	ds, err := newPipeline(sampleFetcher(), false).Build(context.Background(), "ABC")
	require.NoError(t, err)

	require.Len(t, ds.Posts, 3)
	ids := []uint64{ds.Posts[0].Id, ds.Posts[1].Id, ds.Posts[2].Id}
	assert.Equal(t, []uint64{1, 2, 3}, ids)
	assert.Greater(t, ds.Posts[0].Rank, ds.Posts[1].Rank)
	assert.Greater(t, ds.Posts[1].Rank, ds.Posts[2].Rank)

	// the reply to an unranked post is dropped
	require.Len(t, ds.Replies, 1)
	assert.EqualValues(t, 101, ds.Replies[0].Id)
	assert.Len(t, ds.Users, 3)
}

func TestBuildLooksUpThreads(t *testing.T) {
	f := sampleFetcher()
	ds, err := newPipeline(f, true).Build(context.Background(), "ABC")
	require.NoError(t, err)

	assert.Equal(t, []uint64{1, 2, 3}, f.lookups)
	ids := make([]uint64, 0, len(ds.Replies))
	for _, r := range ds.Replies {
		ids = append(ids, r.Id)
	}
	assert.Equal(t, []uint64{101, 102}, ids)
}

func TestBuildTopN(t *testing.T) {
	p := New(sampleFetcher(), sentiment.NewLexiconAnnotator(), Config{TopN: 1})
	ds, err := p.Build(context.Background(), "ABC")
	require.NoError(t, err)

	require.Len(t, ds.Posts, 1)
	assert.EqualValues(t, 1, ds.Posts[0].Id)
	require.Len(t, ds.Users, 1)
	assert.Equal(t, "alice", ds.Users[0].Username)
}

func TestBuildFetchError(t *testing.T) {
	boom := errors.New("boom")
	_, err := newPipeline(&fakeFetcher{err: boom}, false).Build(context.Background(), "ABC")

	var stageErr *StageError
	require.True(t, errors.As(err, &stageErr))
	assert.Equal(t, STAGE_FETCH, stageErr.Stage)
	assert.ErrorIs(t, err, boom)
}

func TestBuildFromRawSkipsThreads(t *testing.T) {
	f := sampleFetcher()
	ds, err := newPipeline(f, true).BuildFromRaw(context.Background(), "ABC", f.posts, f.replies)
	require.NoError(t, err)
	assert.Empty(t, f.lookups)
	assert.Len(t, ds.Posts, 3)
}

func TestAnalyze(t *testing.T) {
	p := newPipeline(sampleFetcher(), false)
	ds, err := p.Build(context.Background(), "ABC")
	require.NoError(t, err)

	res, err := p.Analyze(context.Background(), "$ABC", ds)
	require.NoError(t, err)

	for _, n := range NGRAM_SIZES {
		assert.Contains(t, res.PostWords, n)
		assert.Contains(t, res.ReplyWords, n)
	}
	for _, w := range res.PostWords[1] {
		assert.NotEqual(t, "abc", w.Word)
	}

	require.NotEmpty(t, res.DescriptionWords)
	assert.LessOrEqual(t, len(res.DescriptionWords), 5)
	for _, w := range res.DescriptionWords {
		assert.True(t, w.AvgNetInfluence.Valid, w.Word)
	}
	assert.InDelta(t, 0, res.PostSentiment.Polarity, 1)
}

////////////////////////////////////////////////////////////////////////////////

func TestSaveAndLoadDataset(t *testing.T) {
	p := newPipeline(sampleFetcher(), false)
	ds, err := p.Build(context.Background(), "ABC")
	require.NoError(t, err)
	res, err := p.Analyze(context.Background(), "ABC", ds)
	require.NoError(t, err)

	dp, err := storage.NewDatasetPath(t.TempDir(), "ABC")
	require.NoError(t, err)
	require.NoError(t, SaveDataset(dp, ds))
	require.NoError(t, SaveAnalysis(dp, res))

	loaded, err := LoadDataset(dp)
	require.NoError(t, err)
	assert.Equal(t, ds.Posts, loaded.Posts)
	assert.Equal(t, ds.Replies, loaded.Replies)
	assert.Equal(t, ds.Users, loaded.Users)

	raw, err := LoadRaw(dp)
	require.NoError(t, err)
	assert.Len(t, raw.RawPosts, 3)
	assert.Len(t, raw.RawReplies, 2)

	words, err := storage.LoadWordCounts(dp.WordCounts(CORPUS_POSTS, 2))
	require.NoError(t, err)
	assert.Equal(t, len(res.PostWords[2]), len(words))
}

func TestLoadDatasetMissing(t *testing.T) {
	dp, err := storage.NewDatasetPath(t.TempDir(), "ABC")
	require.NoError(t, err)

	_, err = LoadDataset(dp)
	var stageErr *StageError
	require.True(t, errors.As(err, &stageErr))
	assert.Equal(t, STAGE_LOAD, stageErr.Stage)
}

func opentmpdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.ConnectWithConfig(database.DatabaseConfig{
		Type: database.DATABASE_TYPE_SQLITE,
		Path: filepath.Join(t.TempDir(), "run.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRecorder(t *testing.T) {
	db := opentmpdb(t)
	ctx := context.Background()
	p := newPipeline(sampleFetcher(), false)
	ds, err := p.Build(ctx, "ABC")
	require.NoError(t, err)
	res, err := p.Analyze(ctx, "ABC", ds)
	require.NoError(t, err)

	run, err := NewRecorder(db).Record(ctx, ds, res)
	require.NoError(t, err)
	assert.Equal(t, "ABC", run.Ticker)

	posts, err := postrepo.New().ListByRun(ctx, db, run.Id)
	require.NoError(t, err)
	assert.Len(t, posts, 3)

	words, err := wordcountrepo.New().ListByRun(ctx, db, run.Id, CORPUS_DESCRIPTIONS, 1)
	require.NoError(t, err)
	assert.Equal(t, res.DescriptionWords, words)
}

func TestRecorderRollsBack(t *testing.T) {
	db := opentmpdb(t)
	ctx := context.Background()
	p := newPipeline(sampleFetcher(), false)
	ds, err := p.Build(ctx, "ABC")
	require.NoError(t, err)
	require.NotEmpty(t, ds.Replies)

	// the second reply violates the (run_id, post_id) constraint after the
	// run and its posts are already inserted
	r := ds.Replies[0]
	ds.Replies = model.ReplyTable{r, r}

	_, err = NewRecorder(db).Record(ctx, ds, nil)
	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, STAGE_PERSIST, stageErr.Stage)

	runs, err := runrepo.New().ListByTicker(ctx, db, "ABC")
	require.NoError(t, err)
	assert.Empty(t, runs)

	var posts int
	require.NoError(t, db.GetContext(ctx, &posts, `SELECT COUNT(*) FROM posts`))
	assert.Zero(t, posts)
}

func TestTimeStage(t *testing.T) {
	before := testutil.CollectAndCount(metrics.StageDuration)

	ran := false
	timeStage("timed_only", func() { ran = true })

	assert.True(t, ran)
	assert.Equal(t, before+1, testutil.CollectAndCount(metrics.StageDuration))
}
