package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
)

////////////////////////////////////////////////////////////////////////////////

type HttpStatusError struct {
	Code int
	Msg  string
}

func (err *HttpStatusError) Error() string {
	return fmt.Sprintf("%d %s", err.Code, err.Msg)
}

// CheckRespStatus turns any non-2xx response into a *HttpStatusError
func CheckRespStatus(resp *resty.Response) error {
	if resp.StatusCode() >= 200 && resp.StatusCode() < 300 {
		return nil
	}
	msg := resp.String()
	if msg == "" {
		msg = http.StatusText(resp.StatusCode())
	}
	return &HttpStatusError{Code: resp.StatusCode(), Msg: msg}
}

func IsStatusCode(err error, code int) bool {
	var e *HttpStatusError
	if !errors.As(err, &e) {
		return false
	}
	return e.Code == code
}

// IsRetryableStatus reports 429 and 5xx errors
func IsRetryableStatus(err error) bool {
	var e *HttpStatusError
	if !errors.As(err, &e) {
		return false
	}
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}
