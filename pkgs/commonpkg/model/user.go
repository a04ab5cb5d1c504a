package model

import "fmt"

// User is one distinct author of the fetched posts
type User struct {
	Username        string `db:"username"`
	UserId          uint64 `db:"user_id"`
	FullDescription string `db:"full_description"`
	Description     string `db:"description"`
	Followers       int64  `db:"followers"`
	Following       int64  `db:"following"`
	Favorites       int64  `db:"favorites"`
	TweetCount      int64  `db:"tweet_count"`
}

func (u *User) NetInfluence() int64 {
	return u.Followers - u.Following
}

////////////////////////////////////////////////////////////////////////////////

type UserTable []User

func (t UserTable) Column(name string) ([]string, error) {
	res := make([]string, 0, len(t))
	for _, u := range t {
		switch name {
		case COL_USERNAME:
			res = append(res, u.Username)
		case COL_FULL_DESCRIPTION:
			res = append(res, u.FullDescription)
		case COL_DESCRIPTION:
			res = append(res, u.Description)
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
		}
	}
	return res, nil
}
