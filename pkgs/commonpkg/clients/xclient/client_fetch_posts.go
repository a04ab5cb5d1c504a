package xclient

import (
	"context"
	"strings"

	"github.com/WangWilly/xConvo/pkgs/commonpkg/dtos/rawpostdto"
	log "github.com/sirupsen/logrus"
)

////////////////////////////////////////////////////////////////////////////////

// CashtagQuery turns a ticker into the "$TICKER" search term
func CashtagQuery(ticker string) string {
	ticker = strings.TrimSpace(ticker)
	if strings.HasPrefix(ticker, "$") {
		return ticker
	}
	return "$" + ticker
}

// FetchPosts searches the cashtag of ticker and splits the hits into
// primary posts and replies. Reposts are dropped.
func (c *Client) FetchPosts(ctx context.Context, ticker string, maxCount int) (posts, replies []rawpostdto.RawPost, err error) {
	logger := log.WithFields(log.Fields{
		"caller": "Client.FetchPosts",
		"ticker": ticker,
	})

	if maxCount <= 0 {
		maxCount = DEFAULT_MAX_POSTS
	}

	raws, err := c.SearchPosts(ctx, CashtagQuery(ticker), maxCount, 0)
	if err != nil {
		return nil, nil, err
	}

	posts, replies = SplitPosts(raws)
	logger.Infof("fetched %d posts and %d replies out of %d results", len(posts), len(replies), len(raws))
	return posts, replies, nil
}

// SplitPosts separates replies from primary posts, skipping reposts
func SplitPosts(raws []rawpostdto.RawPost) (posts, replies []rawpostdto.RawPost) {
	posts = make([]rawpostdto.RawPost, 0, len(raws))
	replies = make([]rawpostdto.RawPost, 0)
	for _, raw := range raws {
		if raw.IsRetweet() {
			continue
		}
		if raw.IsReply() {
			replies = append(replies, raw)
			continue
		}
		posts = append(posts, raw)
	}
	return posts, replies
}
