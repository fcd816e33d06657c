package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// ErrNotFound indicates the requested record does not exist on the server.
var ErrNotFound = errors.New("record not found")

// APIError is a non-2xx response from the BuenaVida API, carrying the
// server-provided message when one was present.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// IsValidation reports whether the server rejected the request payload.
func (e *APIError) IsValidation() bool {
	return e.Status == http.StatusBadRequest || e.Status == http.StatusUnprocessableEntity
}

// Client issues the HTTP calls for every entity of the record-management
// API. Calls never retry automatically: every operation is either
// user-interactive or a non-idempotent mutation.
type Client struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// New creates a gateway client for the given API root.
func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		httpClient: client,
		logger:     logger,
	}
}

// errorEnvelope is the loosely-typed error body the server returns. Some
// endpoints use {message}, others {success,message} or {error}.
type errorEnvelope struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// apiError maps a non-2xx response to ErrNotFound or an *APIError with the
// server message when one can be decoded.
func (c *Client) apiError(resp *resty.Response, op string) error {
	if resp.StatusCode() == http.StatusNotFound {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	message := ""
	var env errorEnvelope
	if err := json.Unmarshal(resp.Body(), &env); err == nil {
		if env.Message != "" {
			message = env.Message
		} else if env.Error != "" {
			message = env.Error
		}
	}
	if message == "" {
		message = "request failed"
	}

	c.logger.Error("API call failed",
		zap.String("op", op),
		zap.Int("status_code", resp.StatusCode()),
		zap.String("message", message),
	)

	return &APIError{Status: resp.StatusCode(), Message: message}
}

// listEnvelope wraps the unpaginated {data:[...]} responses.
type listEnvelope[T any] struct {
	Data []T `json:"data"`
}
