package xclient

import (
	"context"
	"strings"

	"github.com/WangWilly/xConvo/pkgs/commonpkg/dtos/rawpostdto"
)

////////////////////////////////////////////////////////////////////////////////

// FetchRepliesTo looks up replies to a single post by searching mentions of
// its author newer than the post itself.
func (c *Client) FetchRepliesTo(ctx context.Context, postId uint64, username string) ([]rawpostdto.RawPost, error) {
	username = strings.TrimPrefix(strings.TrimSpace(username), "@")
	if username == "" || postId == 0 {
		return []rawpostdto.RawPost{}, nil
	}

	raws, err := c.SearchPosts(ctx, "@"+username, DEFAULT_REPLY_SEARCH_SIZE, postId)
	if err != nil {
		return nil, err
	}

	res := make([]rawpostdto.RawPost, 0)
	for _, raw := range raws {
		if raw.IsRetweet() {
			continue
		}
		if parent, ok := raw.InReplyTo(); ok && parent == postId {
			res = append(res, raw)
		}
	}
	return res, nil
}
