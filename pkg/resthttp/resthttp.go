package resthttp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	// HeaderKeyRequestID request id header key
	headerKeyRequestID = "X-Request-Id"
)

// ResponseError non 2xx provider response
type ResponseError struct {
	StatusCode int
	Body       string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Body)
}

// New resty client bound to endpoint
func New(endpoint string, timeout time.Duration) *resty.Client {
	c := resty.New().
		SetHostURL(endpoint).
		SetHeader("Content-Type", "application/json").
		SetHeader("Charset", "utf-8")

	if timeout > 0 {
		c.SetTimeout(timeout)
	}

	return c
}

// Request new resty request
func Request(ctx context.Context, client *resty.Client) *resty.Request {
	return client.R().SetContext(ctx)
}

// WithRequestID resty request with request id
func WithRequestID(ctx context.Context, client *resty.Client, requestID string) *resty.Request {
	r := Request(ctx, client)
	if requestID != "" {
		r.SetHeader(headerKeyRequestID, requestID)
	}

	return r
}

// ParseResponse decode a successful response body into obj
func ParseResponse(r *resty.Response, obj interface{}) error {
	if !r.IsSuccess() {
		return &ResponseError{StatusCode: r.StatusCode(), Body: string(r.Body())}
	}

	if obj == nil {
		return nil
	}

	if err := json.Unmarshal(r.Body(), obj); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
