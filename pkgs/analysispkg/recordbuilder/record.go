package recordbuilder

import (
	"github.com/WangWilly/xConvo/pkgs/commonpkg/dtos/rawpostdto"
	"github.com/tidwall/gjson"
)

////////////////////////////////////////////////////////////////////////////////

// author is the fixed field set read from the user object of a raw post
type author struct {
	id          uint64
	screenName  string
	followers   int64
	following   int64
	description string
	favorites   int64
	tweetCount  int64
}

type record struct {
	id        uint64
	text      string
	favorites int64
	retweets  int64
	author    author
}

////////////////////////////////////////////////////////////////////////////////

type fieldReader struct {
	raw   rawpostdto.RawPost
	index int
	err   error
}

func (r *fieldReader) fail(field string) {
	if r.err == nil {
		r.err = &MissingFieldError{Index: r.index, Field: field}
	}
}

func (r *fieldReader) id(paths ...string) uint64 {
	v, ok := r.raw.LookupUint(paths...)
	if !ok {
		r.fail(paths[0])
	}
	return v
}

func (r *fieldReader) count(path string) int64 {
	res, ok := r.raw.Field(path)
	if !ok || res.Type != gjson.Number {
		r.fail(path)
		return 0
	}
	return res.Int()
}

func (r *fieldReader) str(path string) string {
	v, ok := r.raw.LookupString(path)
	if !ok {
		r.fail(path)
	}
	return v
}

////////////////////////////////////////////////////////////////////////////////

func readAuthor(r *fieldReader) author {
	a := author{
		id:         r.id(rawpostdto.PATH_USER_ID_STR, rawpostdto.PATH_USER_ID),
		screenName: r.str(rawpostdto.PATH_USER_SCREEN_NAME),
		followers:  r.count(rawpostdto.PATH_USER_FOLLOWERS),
		following:  r.count(rawpostdto.PATH_USER_FRIENDS),
	}
	// accounts without a bio come back with a null description
	a.description, _ = r.raw.LookupString(rawpostdto.PATH_USER_DESCRIPTION)
	return a
}

// readRecord reads everything but the text, which the caller checks first
func readRecord(raw rawpostdto.RawPost, index int, text string) (record, error) {
	r := &fieldReader{raw: raw, index: index}
	rec := record{
		id:        r.id(rawpostdto.PATH_ID_STR, rawpostdto.PATH_ID),
		text:      text,
		favorites: r.count(rawpostdto.PATH_FAVORITE_COUNT),
		retweets:  r.count(rawpostdto.PATH_RETWEET_COUNT),
		author:    readAuthor(r),
	}
	return rec, r.err
}

func readUser(raw rawpostdto.RawPost, index int) (author, error) {
	r := &fieldReader{raw: raw, index: index}
	a := readAuthor(r)
	a.favorites = r.count(rawpostdto.PATH_USER_FAVOURITES)
	a.tweetCount = r.count(rawpostdto.PATH_USER_STATUSES)
	return a, r.err
}
