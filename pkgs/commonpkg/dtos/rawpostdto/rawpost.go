package rawpostdto

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

////////////////////////////////////////////////////////////////////////////////

// v1.1 status paths
const (
	PATH_ID_STR          = "id_str"
	PATH_ID              = "id"
	PATH_FULL_TEXT       = "full_text"
	PATH_TEXT            = "text"
	PATH_FAVORITE_COUNT  = "favorite_count"
	PATH_RETWEET_COUNT   = "retweet_count"
	PATH_RETWEETED       = "retweeted"
	PATH_RETWEETED_FROM  = "retweeted_status"
	PATH_REPLY_TO_ID_STR = "in_reply_to_status_id_str"
	PATH_REPLY_TO_ID     = "in_reply_to_status_id"

	PATH_USER_ID_STR      = "user.id_str"
	PATH_USER_ID          = "user.id"
	PATH_USER_SCREEN_NAME = "user.screen_name"
	PATH_USER_FOLLOWERS   = "user.followers_count"
	PATH_USER_FRIENDS     = "user.friends_count"
	PATH_USER_DESCRIPTION = "user.description"
	PATH_USER_FAVOURITES  = "user.favourites_count"
	PATH_USER_STATUSES    = "user.statuses_count"
)

////////////////////////////////////////////////////////////////////////////////

// RawPost is one status object exactly as the search api returned it
type RawPost struct {
	gjson.Result
}

func New(raw []byte) RawPost {
	return RawPost{Result: gjson.ParseBytes(raw)}
}

func FromResult(res gjson.Result) RawPost {
	return RawPost{Result: res}
}

func (p RawPost) MarshalJSON() ([]byte, error) {
	if p.Raw == "" {
		return []byte("null"), nil
	}
	return []byte(p.Raw), nil
}

func (p *RawPost) UnmarshalJSON(data []byte) error {
	p.Result = gjson.Parse(string(data))
	return nil
}

////////////////////////////////////////////////////////////////////////////////

// Field returns the value at path, treating json null as missing
func (p RawPost) Field(path string) (gjson.Result, bool) {
	res := p.Get(path)
	if !res.Exists() || res.Type == gjson.Null {
		return res, false
	}
	return res, true
}

// LookupUint reads the first present path as an unsigned id or count
func (p RawPost) LookupUint(paths ...string) (uint64, bool) {
	for _, path := range paths {
		res, ok := p.Field(path)
		if !ok {
			continue
		}
		if res.Type == gjson.String {
			v, err := strconv.ParseUint(res.Str, 10, 64)
			if err != nil {
				continue
			}
			return v, true
		}
		if res.Type == gjson.Number {
			return res.Uint(), true
		}
	}
	return 0, false
}

func (p RawPost) LookupString(paths ...string) (string, bool) {
	for _, path := range paths {
		if res, ok := p.Field(path); ok {
			return res.String(), true
		}
	}
	return "", false
}

////////////////////////////////////////////////////////////////////////////////

func (p RawPost) Id() (uint64, bool) {
	return p.LookupUint(PATH_ID_STR, PATH_ID)
}

func (p RawPost) Text() (string, bool) {
	return p.LookupString(PATH_FULL_TEXT, PATH_TEXT)
}

func (p RawPost) ScreenName() string {
	name, _ := p.LookupString(PATH_USER_SCREEN_NAME)
	return name
}

// InReplyTo is the id of the post this one answers
func (p RawPost) InReplyTo() (uint64, bool) {
	id, ok := p.LookupUint(PATH_REPLY_TO_ID_STR, PATH_REPLY_TO_ID)
	if !ok || id == 0 {
		return 0, false
	}
	return id, true
}

func (p RawPost) IsReply() bool {
	_, ok := p.InReplyTo()
	return ok
}

// IsRetweet covers both flagged retweets and manual "RT" quotes
func (p RawPost) IsRetweet() bool {
	if p.Get(PATH_RETWEETED).Bool() {
		return true
	}
	if _, ok := p.Field(PATH_RETWEETED_FROM); ok {
		return true
	}
	text, _ := p.Text()
	return strings.HasPrefix(text, "RT")
}
