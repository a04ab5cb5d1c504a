package model

import (
	"errors"
	"fmt"
)

////////////////////////////////////////////////////////////////////////////////

// text column names
const (
	COL_USERNAME         = "username"
	COL_RAW_TEXT         = "raw_text"
	COL_CLEAN_TEXT       = "clean_text"
	COL_FULL_DESCRIPTION = "full_description"
	COL_DESCRIPTION      = "description"
)

var ErrUnknownColumn = errors.New("unknown column")

////////////////////////////////////////////////////////////////////////////////

// Post is one retained post of a ticker search
type Post struct {
	Id           uint64  `db:"post_id"`
	Username     string  `db:"username"`
	UserId       uint64  `db:"user_id"`
	RawText      string  `db:"raw_text"`
	CleanText    string  `db:"clean_text"`
	Favorites    int64   `db:"favorites"`
	Retweets     int64   `db:"retweets"`
	Followers    int64   `db:"followers"`
	Following    int64   `db:"following"`
	Polarity     float64 `db:"polarity"`
	Subjectivity float64 `db:"subjectivity"`
	// Rank is the composite rank, zero until the post went through the ranker
	Rank float64 `db:"composite_rank"`
}

// NetInfluence is followers minus following, always derived from the counts
func (p *Post) NetInfluence() int64 {
	return p.Followers - p.Following
}

func (p *Post) textColumn(name string) (string, error) {
	switch name {
	case COL_USERNAME:
		return p.Username, nil
	case COL_RAW_TEXT:
		return p.RawText, nil
	case COL_CLEAN_TEXT:
		return p.CleanText, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
}

// Reply is a post answering another post, ReplyId references Post.Id
type Reply struct {
	Post
	ReplyId uint64 `db:"reply_id"`
}

////////////////////////////////////////////////////////////////////////////////

type PostTable []Post

func (t PostTable) Column(name string) ([]string, error) {
	res := make([]string, 0, len(t))
	for i := range t {
		v, err := t[i].textColumn(name)
		if err != nil {
			return nil, err
		}
		res = append(res, v)
	}
	return res, nil
}

func (t PostTable) Ids() map[uint64]struct{} {
	set := make(map[uint64]struct{}, len(t))
	for _, p := range t {
		set[p.Id] = struct{}{}
	}
	return set
}

func (t PostTable) UserIds() map[uint64]struct{} {
	set := make(map[uint64]struct{}, len(t))
	for _, p := range t {
		set[p.UserId] = struct{}{}
	}
	return set
}

////////////////////////////////////////////////////////////////////////////////

type ReplyTable []Reply

func (t ReplyTable) Column(name string) ([]string, error) {
	res := make([]string, 0, len(t))
	for i := range t {
		v, err := t[i].textColumn(name)
		if err != nil {
			return nil, err
		}
		res = append(res, v)
	}
	return res, nil
}

// Posts drops the reply reference of every row
func (t ReplyTable) Posts() PostTable {
	res := make(PostTable, 0, len(t))
	for _, r := range t {
		res = append(res, r.Post)
	}
	return res
}
