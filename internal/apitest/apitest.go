// Package apitest provides a typed HTTP client for exercising a handler
// in tests.
package apitest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bjaus/petdocs/internal/rest"
)

// Client sends requests to a handler served by an httptest.Server.
type Client struct {
	Server *httptest.Server
}

// NewClient serves h for the duration of the test.
func NewClient(t testing.TB, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return &Client{Server: srv}
}

// Option adjusts an outgoing request.
type Option func(*http.Request)

// WithHeader sets a request header.
func WithHeader(key, value string) Option {
	return func(r *http.Request) {
		r.Header.Set(key, value)
	}
}

// Response is a decoded response. Problem is set instead of Body when the
// server answered with a problem details document.
type Response[T any] struct {
	Status  int
	Headers http.Header
	Body    *T
	Problem *rest.ProblemDetail
	Raw     []byte
}

// Get sends a GET request.
func Get[Resp any](t testing.TB, c *Client, path string, opts ...Option) *Response[Resp] {
	t.Helper()
	return do[Resp](t, c, http.MethodGet, path, nil, opts)
}

// Post sends a POST request with a JSON body.
func Post[Req, Resp any](t testing.TB, c *Client, path string, body *Req, opts ...Option) *Response[Resp] {
	t.Helper()
	return do[Resp](t, c, http.MethodPost, path, body, opts)
}

// Put sends a PUT request with a JSON body.
func Put[Req, Resp any](t testing.TB, c *Client, path string, body *Req, opts ...Option) *Response[Resp] {
	t.Helper()
	return do[Resp](t, c, http.MethodPut, path, body, opts)
}

// Delete sends a DELETE request.
func Delete[Resp any](t testing.TB, c *Client, path string, opts ...Option) *Response[Resp] {
	t.Helper()
	return do[Resp](t, c, http.MethodDelete, path, nil, opts)
}

// Text sends a GET request and returns the body verbatim.
func Text(t testing.TB, c *Client, path string, opts ...Option) *Response[string] {
	t.Helper()
	resp, raw := send(t, c, http.MethodGet, path, nil, opts)
	body := string(raw)
	return &Response[string]{
		Status:  resp.StatusCode,
		Headers: resp.Header,
		Body:    &body,
		Raw:     raw,
	}
}

func do[Resp any](t testing.TB, c *Client, method, path string, body any, opts []Option) *Response[Resp] {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("apitest: marshal request body: %v", err)
		}
		reqBody = bytes.NewReader(b)
		opts = append([]Option{WithHeader("Content-Type", "application/json")}, opts...)
	}

	resp, raw := send(t, c, method, path, reqBody, opts)
	result := &Response[Resp]{
		Status:  resp.StatusCode,
		Headers: resp.Header,
		Raw:     raw,
	}
	if len(raw) == 0 {
		return result
	}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	switch mediaType {
	case "application/problem+json":
		var pd rest.ProblemDetail
		if err := json.Unmarshal(raw, &pd); err != nil {
			t.Fatalf("apitest: decode problem: %v", err)
		}
		result.Problem = &pd
	case "application/json":
		var decoded Resp
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("apitest: decode response: %v", err)
		}
		result.Body = &decoded
	}
	return result
}

func send(t testing.TB, c *Client, method, path string, body io.Reader, opts []Option) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequestWithContext(context.Background(), method, c.Server.URL+path, body)
	if err != nil {
		t.Fatalf("apitest: create request: %v", err)
	}
	for _, opt := range opts {
		opt(req)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("apitest: execute request: %v", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			t.Errorf("apitest: close body: %v", closeErr)
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("apitest: read body: %v", err)
	}
	return resp, raw
}
