package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/authdemo/internal/client/models"
	"github.com/dmitrijs2005/authdemo/internal/logging"
	"github.com/google/uuid"
)

// RequestIDHeader carries a per-request uuid so client and server logs can
// be matched up.
const RequestIDHeader = "X-Request-ID"

type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger
}

// NewHTTPClient builds a client for baseURL. jar supplies the session
// cookies on every request; timeout 0 means no timeout.
func NewHTTPClient(baseURL string, jar http.CookieJar, timeout time.Duration, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Jar: jar, Timeout: timeout},
		log:     log,
	}
}

func (c *HTTPClient) Do(ctx context.Context, method, endpoint string, body any) (*Response, error) {
	requestID := uuid.NewString()
	log := c.log.With("request_id", requestID, "method", method, "endpoint", endpoint)

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncodeBody, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	started := time.Now()
	log.Debug(ctx, "request started")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	log = log.With("status", resp.StatusCode, "duration", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		log.Warn(ctx, "request rejected")
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn(ctx, "reading response failed", "error", err)
		return nil, &TransportError{Err: err}
	}

	payload, err := models.ParsePayload(raw)
	if err != nil {
		log.Warn(ctx, "response is not JSON", "error", err)
		return nil, &DecodeError{StatusCode: resp.StatusCode, Err: err}
	}

	log.Info(ctx, "request completed")
	return &Response{StatusCode: resp.StatusCode, Payload: payload}, nil
}
