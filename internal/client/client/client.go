package client

import (
	"context"

	"github.com/dmitrijs2005/authdemo/internal/client/models"
)

// Response is a successful (2xx) reply whose body parsed as JSON.
type Response struct {
	StatusCode int
	Payload    models.Payload
}

// Client sends one request to the auth API. endpoint is appended verbatim
// to the base URL ("/signup", "/5", or "" for the collection itself). A nil
// body sends no body.
type Client interface {
	Do(ctx context.Context, method, endpoint string, body any) (*Response, error)
}
