package storage

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/WangWilly/xConvo/pkgs/commonpkg/dtos/rawpostdto"
	"github.com/WangWilly/xConvo/pkgs/commonpkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

////////////////////////////////////////////////////////////////////////////////

func samplePosts() model.PostTable {
	return model.PostTable{
		{
			Id: 1445078208190291973, Username: "trader", UserId: 42,
			RawText: "$ABC to the moon, \"really\"\nnext line", CleanText: "ABC to the moon really next line",
			Favorites: 10, Retweets: 3, Followers: 100, Following: 7,
			Polarity: 0.1 + 0.2, Subjectivity: 1.0 / 3.0, Rank: 7.5,
		},
		{
			Id: 2, Username: "NaN", UserId: 43,
			RawText: " leading space", CleanText: "NaN",
			Polarity: -0.35,
		},
		{
			Id: 3, Username: "", UserId: 0,
			RawText: "", CleanText: "x",
		},
		{
			Id: 4, Username: "crlf", UserId: 44,
			RawText: "line1\r\nline2\rend", CleanText: `C:\\dir\r not a carriage return \`,
		},
	}
}

func TestPostsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FILE_POSTS)
	posts := samplePosts()

	require.NoError(t, SavePosts(path, posts))
	got, err := LoadPosts(path)
	require.NoError(t, err)
	assert.Equal(t, posts, got)
}

func TestRepliesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FILE_REPLIES)
	replies := model.ReplyTable{}
	for i, p := range samplePosts() {
		replies = append(replies, model.Reply{Post: p, ReplyId: uint64(100 + i)})
	}

	require.NoError(t, SaveReplies(path, replies))
	got, err := LoadReplies(path)
	require.NoError(t, err)
	assert.Equal(t, replies, got)
}

func TestCarriageReturnEscaped(t *testing.T) {
	path := filepath.Join(t.TempDir(), FILE_POSTS)
	require.NoError(t, SavePosts(path, samplePosts()[3:]))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "\r")
	assert.Contains(t, string(raw), `line1\r`)

	// a hand written file without escapes keeps its backslashes
	plain := filepath.Join(t.TempDir(), "plain.csv")
	require.NoError(t, os.WriteFile(plain, []byte("word,count,avg_net_influence\n\"C:\\new\",1,\n"), 0644))
	words, err := LoadWordCounts(plain)
	require.NoError(t, err)
	assert.Equal(t, `C:\new`, words[0].Word)
}

func TestUsersRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FILE_USERS)
	users := model.UserTable{
		{Username: "a", UserId: 1, FullDescription: "Options, trader 📈", Description: "Options trader", Followers: 5, Following: 9, Favorites: 2, TweetCount: 1000},
		{Username: "b", UserId: 2, FullDescription: "first\r\nsecond"},
	}

	require.NoError(t, SaveUsers(path, users))
	got, err := LoadUsers(path)
	require.NoError(t, err)
	assert.Equal(t, users, got)
}

func TestWordCountsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.csv")
	words := model.WordCountTable{
		{Word: "buy the dip", Count: 4, AvgNetInfluence: sql.NullFloat64{Float64: -12.25, Valid: true}},
		{Word: "moon", Count: 1},
		{Word: "zero", Count: 1, AvgNetInfluence: sql.NullFloat64{Float64: 0, Valid: true}},
	}

	require.NoError(t, SaveWordCounts(path, words))
	got, err := LoadWordCounts(path)
	require.NoError(t, err)
	assert.Equal(t, words, got)
}

func TestNetInfluenceWrittenButIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), FILE_POSTS)
	content := "id,username,user_id,raw_text,clean_text,favorites,retweets,followers,following,polarity,subjectivity,rank,net_influence\n" +
		"9,u,1,raw,clean,0,0,50,10,0,0,0,999\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	got, err := LoadPosts(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.EqualValues(t, 40, got[0].NetInfluence())

	require.NoError(t, SavePosts(path, got))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), ",50,10,0,0,0,40\n")
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadPosts(filepath.Join(dir, "absent.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	missing := filepath.Join(dir, "missing.csv")
	require.NoError(t, os.WriteFile(missing, []byte("id,username\n1,a\n"), 0644))
	_, err = LoadPosts(missing)
	assert.ErrorIs(t, err, ErrMissingColumn)

	empty := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	_, err = LoadUsers(empty)
	assert.ErrorIs(t, err, ErrMissingColumn)

	bad := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("word,count,avg_net_influence\nmoon,many,\n"), 0644))
	_, err = LoadWordCounts(bad)
	assert.ErrorContains(t, err, "column count")
}

func TestEmptyTableRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FILE_POSTS)
	require.NoError(t, SavePosts(path, model.PostTable{}))

	got, err := LoadPosts(path)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

////////////////////////////////////////////////////////////////////////////////

func TestRawDumpRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FILE_RAW_POSTS)
	raws := []rawpostdto.RawPost{
		rawpostdto.New([]byte(`{"id_str":"11","full_text":"hello $ABC","user":{"screen_name":"a"}}`)),
		rawpostdto.New([]byte(`{"id_str":"12","full_text":"bye","in_reply_to_status_id_str":"11"}`)),
	}

	require.NoError(t, DumpRaw(path, raws))
	got, err := LoadRaw(path)
	require.NoError(t, err)
	require.Len(t, got, 2)

	id, ok := got[0].Id()
	require.True(t, ok)
	assert.EqualValues(t, 11, id)
	text, _ := got[0].Text()
	assert.Equal(t, "hello $ABC", text)
	assert.True(t, got[1].IsReply())

	require.NoError(t, DumpRaw(path, nil))
	none, err := LoadRaw(path)
	require.NoError(t, err)
	assert.Empty(t, none)
}

////////////////////////////////////////////////////////////////////////////////

func TestStorePath(t *testing.T) {
	root := filepath.Join(t.TempDir(), "app")
	ph, err := NewStorePath(root)
	require.NoError(t, err)

	for _, dir := range []string{ph.Root, ph.Datasets, ph.Data} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
	assert.Equal(t, filepath.Join(root, ".data", FILE_DB), ph.DB)

	// idempotent
	_, err = NewStorePath(root)
	require.NoError(t, err)

	dp, err := ph.Dataset("$tsla")
	require.NoError(t, err)
	assert.Equal(t, "TSLA", dp.Ticker)
	assert.Equal(t, filepath.Join(ph.Datasets, "TSLA", FILE_POSTS), dp.Posts)
	assert.Equal(t, filepath.Join(dp.Dir, "words_replies_2.csv"), dp.WordCounts("replies", 2))
	info, err := os.Stat(dp.Html)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestTickerDir(t *testing.T) {
	name, err := TickerDir(" aapl ")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", name)

	for _, bad := range []string{"", "$", "..", "a/b", `a\b`} {
		_, err := TickerDir(bad)
		assert.ErrorIs(t, err, ErrInvalidTicker, bad)
	}
}
