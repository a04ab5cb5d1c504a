package xclient

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/WangWilly/xConvo/pkgs/commonpkg/utils"
	"github.com/go-resty/resty/v2"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

////////////////////////////////////////////////////////////////////////////////

type Client struct {
	restyClient *resty.Client
	limiter     *rate.Limiter
}

type Config struct {
	BearerToken       string
	BaseUrl           string
	RequestsPerSecond float64
	Burst             int
	RetryWait         time.Duration
	RetryMaxWait      time.Duration
}

func DefaultConfig(bearerToken string) Config {
	return Config{
		BearerToken:       bearerToken,
		BaseUrl:           API_HOST,
		RequestsPerSecond: DEFAULT_REQUESTS_PER_SECOND,
		Burst:             DEFAULT_BURST,
		RetryWait:         DEFAULT_RETRY_WAIT,
		RetryMaxWait:      DEFAULT_RETRY_MAX_WAIT,
	}
}

func New(cfg Config) *Client {
	if cfg.BaseUrl == "" {
		cfg.BaseUrl = API_HOST
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DEFAULT_REQUESTS_PER_SECOND
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DEFAULT_BURST
	}

	c := &Client{
		restyClient: resty.New(),
		limiter:     rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
	}

	c.restyClient.SetBaseURL(cfg.BaseUrl)
	c.restyClient.SetAuthToken(cfg.BearerToken)
	c.restyClient.SetHeader("Accept", "application/json")
	c.restyClient.SetTimeout(DEFAULT_TIMEOUT)

	c.configurePacing()
	c.configureErrorHandling()
	c.configureRetryLogic(cfg.RetryWait, cfg.RetryMaxWait)
	return c
}

////////////////////////////////////////////////////////////////////////////////

func (c *Client) SetLogger(logger *log.Logger) {
	c.restyClient.SetLogger(logger)
}

// OnRetry registers fn to run before every retried request
func (c *Client) OnRetry(fn func()) {
	c.restyClient.AddRetryHook(func(_ *resty.Response, _ error) {
		fn()
	})
}

////////////////////////////////////////////////////////////////////////////////

// configurePacing holds every outgoing request behind the token bucket
func (c *Client) configurePacing() {
	c.restyClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return c.limiter.Wait(req.Context())
	})
}

func (c *Client) configureErrorHandling() {
	c.restyClient.OnAfterResponse(func(_ *resty.Client, r *resty.Response) error {
		if err := CheckApiResp(r.Body()); err != nil {
			return err
		}
		return utils.CheckRespStatus(r)
	})
}

func (c *Client) configureRetryLogic(wait, maxWait time.Duration) {
	c.restyClient.SetRetryCount(DEFAULT_RETRY_COUNT)
	if wait > 0 {
		c.restyClient.SetRetryWaitTime(wait)
	}
	if maxWait > 0 {
		c.restyClient.SetRetryMaxWaitTime(maxWait)
	}
	c.restyClient.SetRetryAfter(retryAfter)

	c.restyClient.AddRetryCondition(func(r *resty.Response, err error) bool {
		// For TCP Error
		return err != nil && !isKnownError(err)
	})

	c.restyClient.AddRetryCondition(func(r *resty.Response, err error) bool {
		var apiErr *ApiError
		return errors.As(err, &apiErr) && apiErr.Retryable()
	})

	c.restyClient.AddRetryCondition(func(r *resty.Response, err error) bool {
		// For Http 429 and 5xx
		return utils.IsRetryableStatus(err)
	})
}

func isKnownError(err error) bool {
	var apiErr *ApiError
	var httpErr *utils.HttpStatusError
	return errors.As(err, &apiErr) || errors.As(err, &httpErr)
}

// retryAfter waits out the window the server announced. Returning zero lets
// resty fall back to its jittered backoff.
func retryAfter(_ *resty.Client, resp *resty.Response) (time.Duration, error) {
	if resp == nil || resp.RawResponse == nil {
		return 0, nil
	}
	if resp.StatusCode() != http.StatusTooManyRequests {
		return 0, nil
	}

	if secs, err := strconv.ParseInt(resp.Header().Get(HEADER_RETRY_AFTER), 10, 64); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second, nil
	}
	if reset, err := strconv.ParseInt(resp.Header().Get(HEADER_RATE_LIMIT_RESET), 10, 64); err == nil {
		if wait := time.Until(time.Unix(reset, 0)); wait > 0 {
			return wait, nil
		}
	}
	return 0, nil
}
