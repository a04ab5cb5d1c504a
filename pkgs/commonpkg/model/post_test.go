package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetInfluence(t *testing.T) {
	tests := []struct {
		name      string
		followers int64
		following int64
		want      int64
	}{
		{"more followers", 150, 50, 100},
		{"more following", 10, 40, -30},
		{"zero", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Post{Followers: tt.followers, Following: tt.following}
			assert.Equal(t, tt.want, p.NetInfluence())
			assert.Equal(t, p.NetInfluence(), p.NetInfluence())

			u := User{Followers: tt.followers, Following: tt.following}
			assert.Equal(t, tt.want, u.NetInfluence())
		})
	}
}

func TestNetInfluenceFollowsCounts(t *testing.T) {
	p := Post{Followers: 10, Following: 3}
	require.Equal(t, int64(7), p.NetInfluence())

	p.Following = 12
	assert.Equal(t, int64(-2), p.NetInfluence())
}

func TestPostTableColumn(t *testing.T) {
	table := PostTable{
		{Id: 1, Username: "alice", RawText: "Hello @bob", CleanText: "Hello"},
		{Id: 2, Username: "carol", RawText: "$ABC up", CleanText: "ABC up"},
	}

	col, err := table.Column(COL_CLEAN_TEXT)
	require.NoError(t, err)
	assert.Equal(t, []string{"Hello", "ABC up"}, col)

	_, err = table.Column("nope")
	assert.True(t, errors.Is(err, ErrUnknownColumn))
}

func TestPostTableIdSets(t *testing.T) {
	table := PostTable{
		{Id: 1, UserId: 10},
		{Id: 2, UserId: 10},
		{Id: 3, UserId: 11},
	}

	assert.Len(t, table.Ids(), 3)
	assert.Equal(t, map[uint64]struct{}{10: {}, 11: {}}, table.UserIds())
}

func TestReplyTable(t *testing.T) {
	table := ReplyTable{
		{Post: Post{Id: 5, CleanText: "agreed"}, ReplyId: 1},
	}

	col, err := table.Column(COL_CLEAN_TEXT)
	require.NoError(t, err)
	assert.Equal(t, []string{"agreed"}, col)
	assert.Equal(t, PostTable{{Id: 5, CleanText: "agreed"}}, table.Posts())
}

func TestUserTableColumn(t *testing.T) {
	table := UserTable{
		{Username: "alice", Description: "trader", FullDescription: "Trader!"},
	}

	col, err := table.Column(COL_DESCRIPTION)
	require.NoError(t, err)
	assert.Equal(t, []string{"trader"}, col)

	_, err = table.Column(COL_CLEAN_TEXT)
	assert.ErrorIs(t, err, ErrUnknownColumn)
}
