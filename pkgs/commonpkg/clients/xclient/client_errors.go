package xclient

import (
	"errors"

	"github.com/tidwall/gjson"
)

////////////////////////////////////////////////////////////////////////////////

// v1.1 error codes worth another attempt
const (
	ErrCodeRateLimited  = 88
	ErrCodeOverCapacity = 130
	ErrCodeInternal     = 131
)

var ErrUnexpectedResponse = errors.New("unexpected search response")

////////////////////////////////////////////////////////////////////////////////

// CheckApiResp reports the first entry of an "errors" array in body
func CheckApiResp(body []byte) error {
	errs := gjson.GetBytes(body, "errors")
	if !errs.Exists() || !errs.IsArray() || len(errs.Array()) == 0 {
		return nil
	}

	code := -1
	if codej := errs.Get("0.code"); codej.Exists() {
		code = int(codej.Int())
	}
	return NewApiError(code, errs.Get("0.message").String(), string(body))
}

type ApiError struct {
	Code    int
	Message string
	raw     string
}

func (err *ApiError) Error() string {
	return err.raw
}

func NewApiError(code int, message, raw string) *ApiError {
	return &ApiError{Code: code, Message: message, raw: raw}
}

func (err *ApiError) Retryable() bool {
	switch err.Code {
	case ErrCodeRateLimited, ErrCodeOverCapacity, ErrCodeInternal:
		return true
	}
	return false
}
