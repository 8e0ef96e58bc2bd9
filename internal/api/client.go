package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ganeshlonare/lms-client/internal/app/models/dto"
	"github.com/ganeshlonare/lms-client/internal/pkg/apperrors"
	"github.com/ganeshlonare/lms-client/internal/pkg/logger"
)

// Options configures the API client
type Options struct {
	// BaseURL is the address every relative path is resolved against
	BaseURL string
	// Timeout bounds each request end to end
	Timeout time.Duration
	// Jar carries the backend's session cookie between requests and,
	// when backed by storage, between process runs
	Jar http.CookieJar
}

// Client wraps the REST backend behind typed request/response calls.
// Every request goes out with the session cookie and a JSON content
// type unless overridden per request.
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

// RequestOption mutates an outgoing request before it is sent
type RequestOption func(*http.Request)

// WithHeader overrides or adds a request header
func WithHeader(key, value string) RequestOption {
	return func(req *http.Request) {
		req.Header.Set(key, value)
	}
}

// New creates an API client for the configured base address
func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	base, err := url.Parse(strings.TrimSuffix(opts.BaseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
			Jar:     opts.Jar,
		},
	}, nil
}

// Send issues a JSON request against a path relative to the base URL
// and decodes the body into out. A nil body sends no payload; a nil
// out discards the body after status classification.
func (c *Client) Send(ctx context.Context, method, path string, body interface{}, out interface{}, opts ...RequestOption) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := c.newRequest(ctx, method, path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for _, opt := range opts {
		opt(req)
	}

	return c.do(req, out)
}

// SendMultipart issues a multipart form POST, used by signup to attach
// an optional avatar image to the text fields.
func (c *Client) SendMultipart(ctx context.Context, path string, fields map[string]string, fileField, filePath string, out interface{}) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return fmt.Errorf("failed to write form field %s: %w", key, err)
		}
	}

	if filePath != "" {
		file, err := os.Open(filePath)
		if err != nil {
			return fmt.Errorf("failed to open file %s: %w", filePath, err)
		}
		defer file.Close()

		part, err := writer.CreateFormFile(fileField, filepath.Base(filePath))
		if err != nil {
			return fmt.Errorf("failed to create file part: %w", err)
		}
		if _, err := io.Copy(part, file); err != nil {
			return fmt.Errorf("failed to copy file into form: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.do(req, out)
}

// newRequest resolves path against the base URL and builds the request
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	ref, err := url.Parse(strings.TrimPrefix(path, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid request path %q: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.ResolveReference(ref).String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	return req, nil
}

// do sends the request and classifies the outcome: transport failures
// become ErrNetwork, error statuses become StatusError with the
// server's message, and schema mismatches become ErrMalformedResponse.
// The underlying failure is always kept in the chain, never swallowed.
func (c *Client) do(req *http.Request, out interface{}) error {
	requestID := uuid.NewString()
	logger.Debug().
		Str("requestId", requestID).
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Msg("API request")

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Debug().
			Str("requestId", requestID).
			Err(err).
			Msg("API request failed before a response was received")
		return fmt.Errorf("%w: %w", apperrors.ErrNetwork, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response body: %w", apperrors.ErrNetwork, err)
	}

	logger.Debug().
		Str("requestId", requestID).
		Int("status", resp.StatusCode).
		Msg("API response")

	if resp.StatusCode >= 400 {
		var errBody dto.ErrorBody
		// Best effort: a non-JSON error body still yields a StatusError
		_ = json.Unmarshal(raw, &errBody)
		return apperrors.NewStatusError(resp.StatusCode, errBody.Message)
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrMalformedResponse, err)
	}

	return nil
}
