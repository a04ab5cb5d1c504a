package xclient

import (
	"context"
	"fmt"
	"strconv"

	"github.com/WangWilly/xConvo/pkgs/commonpkg/dtos/rawpostdto"
	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

////////////////////////////////////////////////////////////////////////////////

// SearchPosts pages backwards through recent results for query until
// maxCount posts were collected or the search runs dry. sinceId of zero
// means no lower bound.
func (c *Client) SearchPosts(ctx context.Context, query string, maxCount int, sinceId uint64) ([]rawpostdto.RawPost, error) {
	logger := log.WithFields(log.Fields{
		"caller": "Client.SearchPosts",
		"query":  query,
	})

	results := make([]rawpostdto.RawPost, 0)
	var maxId uint64

	for len(results) < maxCount {
		pageSize := min(DEFAULT_PAGE_SIZE, maxCount-len(results))
		page, err := c.searchPage(ctx, query, pageSize, sinceId, maxId)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}

		lowest := uint64(0)
		for _, post := range page {
			if len(results) >= maxCount {
				break
			}
			results = append(results, post)
			if id, ok := post.Id(); ok && (lowest == 0 || id < lowest) {
				lowest = id
			}
		}
		logger.Debugf("collected %d posts", len(results))

		if lowest <= 1 {
			break
		}
		maxId = lowest - 1
	}

	return results, nil
}

func (c *Client) searchPage(ctx context.Context, query string, count int, sinceId, maxId uint64) ([]rawpostdto.RawPost, error) {
	req := c.restyClient.R().SetContext(ctx).SetQueryParams(map[string]string{
		"q":           query,
		"count":       strconv.Itoa(count),
		"tweet_mode":  "extended",
		"result_type": "recent",
	})
	if sinceId > 0 {
		req.SetQueryParam("since_id", strconv.FormatUint(sinceId, 10))
	}
	if maxId > 0 {
		req.SetQueryParam("max_id", strconv.FormatUint(maxId, 10))
	}

	resp, err := req.Get(API_SEARCH_TWEETS)
	if err != nil {
		return nil, err
	}

	return parseSearchResponse(resp.Body())
}

func parseSearchResponse(body []byte) ([]rawpostdto.RawPost, error) {
	statuses := gjson.GetBytes(body, PATH_STATUSES)
	if !statuses.IsArray() {
		return nil, fmt.Errorf("%w: no %s array", ErrUnexpectedResponse, PATH_STATUSES)
	}

	res := make([]rawpostdto.RawPost, 0, len(statuses.Array()))
	for _, status := range statuses.Array() {
		res = append(res, rawpostdto.FromResult(status))
	}
	return res, nil
}
