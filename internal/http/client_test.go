// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	stdhttp "net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/wneessen/ambience/internal/logger"
	"github.com/wneessen/ambience/internal/testhelper"
)

type testType struct {
	String string  `json:"string"`
	Int    int     `json:"int"`
	Float  float64 `json:"float"`
	Bool   bool    `json:"bool"`
}

const testFile = "../../testdata/testtype.json"

func TestNew(t *testing.T) {
	t.Run("new client without breaker", func(t *testing.T) {
		client := New(logger.Discard())
		if client == nil {
			t.Fatal("expected client to be non-nil")
		}
		if client.breaker != nil {
			t.Error("expected no circuit breaker")
		}
		if client.Timeout != DefaultTimeout {
			t.Errorf("expected timeout %s, got %s", DefaultTimeout, client.Timeout)
		}
	})
	t.Run("new client with breaker", func(t *testing.T) {
		client := New(logger.Discard(), WithCircuitBreaker("test"))
		if client.breaker == nil {
			t.Fatal("expected circuit breaker to be set")
		}
		if client.breaker.Name() != "test" {
			t.Errorf("expected breaker name %q, got %q", "test", client.breaker.Name())
		}
	})
}

func TestClient_Get(t *testing.T) {
	t.Run("getting and serializing JSON should work", func(t *testing.T) {
		var request *stdhttp.Request
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			request = req
			return testhelper.FileResponse(t, 200, testFile)(req)
		}

		client := New(logger.Discard())
		client.Transport = testhelper.MockRoundTripper{Fn: rtFn}
		query := url.Values{"key": {"value"}}
		headers := map[string]string{"X-Custom-Header": "custom-value"}

		target := new(testType)
		response, err := client.Get(t.Context(), "https://example.com", target, query, headers)
		if err != nil {
			t.Fatalf("failed to get JSON response: %s", err)
		}
		if request.URL.Query().Get("key") != "value" {
			t.Errorf("expected query to be forwarded, got %q", request.URL.RawQuery)
		}
		if request.Header.Get("X-Custom-Header") != "custom-value" {
			t.Errorf("expected custom header to be set, got %q", request.Header.Get("X-Custom-Header"))
		}
		if !strings.Contains(request.Header.Get("User-Agent"), "ambience/") {
			t.Errorf("expected ambience user agent, got %q", request.Header.Get("User-Agent"))
		}

		if response != 200 {
			t.Errorf("expected status code 200, got %d", response)
		}
		if target.String != "test" {
			t.Errorf("expected target string to be 'test', got %s", target.String)
		}
		if target.Int != 123 {
			t.Errorf("expected target int to be 123, got %d", target.Int)
		}
		if target.Float != 123.456 {
			t.Errorf("expected target float to be 123.456, got %f", target.Float)
		}
		if !target.Bool {
			t.Error("expected target bool to be true")
		}
	})
	t.Run("unmarshalling into non-pointer should fail", func(t *testing.T) {
		client := New(logger.New(slog.LevelInfo))
		var target testType
		_, err := client.Get(t.Context(), "https://example.com", target, nil, nil)
		if err == nil {
			t.Fatal("expected get to fail")
		}
		if !errors.Is(err, ErrNonPointerTarget) {
			t.Errorf("expected error to be %s, got %s", ErrNonPointerTarget, err)
		}
	})
	t.Run("parsing an invalid url should fail", func(t *testing.T) {
		client := New(logger.New(slog.LevelInfo))
		target := new(testType)
		_, err := client.Get(t.Context(), "http://example.com/xyz%", target, nil, nil)
		if err == nil {
			t.Fatal("expected get to fail")
		}
		if !strings.Contains(err.Error(), "failed to parse URL") {
			t.Errorf("expected error to contain 'failed to parse URL', got %s", err)
		}
	})
	t.Run("get request fails", func(t *testing.T) {
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			return nil, errors.New("intentionally failing")
		}

		client := New(logger.New(slog.LevelInfo))
		client.Transport = testhelper.MockRoundTripper{Fn: rtFn}

		target := new(testType)
		_, err := client.Get(t.Context(), "https://example.com", target, nil, nil)
		if err == nil {
			t.Fatal("expected get request to fail")
		}
	})
	t.Run("getting a nil response", func(t *testing.T) {
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			return &stdhttp.Response{
				StatusCode: 200,
				Body:       &failReadCloser{},
				Header:     make(stdhttp.Header),
			}, nil
		}

		client := New(logger.NewLogger(slog.LevelInfo, io.Discard))
		client.Transport = testhelper.MockRoundTripper{Fn: rtFn}

		target := new(testType)
		_, err := client.Get(t.Context(), "https://example.com", target, nil, nil)
		if err == nil {
			t.Fatal("expected get request to fail")
		}
	})
}

func TestClient_GetWithTimeout(t *testing.T) {
	t.Run("get request fails on context cancel", func(t *testing.T) {
		testhelper.PerformIntegrationTests(t)
		client := New(logger.New(slog.LevelInfo))
		ctx, cancel := context.WithTimeout(t.Context(), time.Millisecond)
		defer cancel()

		target := new(testType)
		_, err := client.GetWithTimeout(ctx, testhelper.TestOnlineAPIURL, target, nil, nil, time.Second*5)
		if err == nil {
			t.Fatal("expected get request to fail")
		}
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("expected error to be %s, got %s", context.DeadlineExceeded, err)
		}
	})
}

func TestClient_CircuitBreaker(t *testing.T) {
	t.Run("server errors open the breaker", func(t *testing.T) {
		calls := 0
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			calls++
			return &stdhttp.Response{
				StatusCode: stdhttp.StatusBadGateway,
				Body:       io.NopCloser(strings.NewReader(`{}`)),
				Header:     make(stdhttp.Header),
			}, nil
		}

		client := New(logger.NewLogger(slog.LevelInfo, io.Discard), WithCircuitBreaker("test"))
		client.Transport = testhelper.MockRoundTripper{Fn: rtFn}

		for i := 0; i < breakerTripAfter; i++ {
			_, err := client.Get(t.Context(), "https://example.com", new(testType), nil, nil)
			if !errors.Is(err, ErrServerError) {
				t.Fatalf("expected error to be %s, got %s", ErrServerError, err)
			}
		}
		_, err := client.Get(t.Context(), "https://example.com", new(testType), nil, nil)
		if !errors.Is(err, ErrCircuitOpen) {
			t.Fatalf("expected error to be %s, got %s", ErrCircuitOpen, err)
		}
		if calls != breakerTripAfter {
			t.Errorf("expected %d transport calls, got %d", breakerTripAfter, calls)
		}
	})
	t.Run("client errors pass through a closed breaker", func(t *testing.T) {
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			return &stdhttp.Response{
				StatusCode: stdhttp.StatusUnauthorized,
				Body:       io.NopCloser(strings.NewReader(`{"string":"denied"}`)),
				Header:     make(stdhttp.Header),
			}, nil
		}

		client := New(logger.NewLogger(slog.LevelInfo, io.Discard), WithCircuitBreaker("test"))
		client.Transport = testhelper.MockRoundTripper{Fn: rtFn}

		for i := 0; i < breakerTripAfter+1; i++ {
			target := new(testType)
			code, err := client.Get(t.Context(), "https://example.com", target, nil, nil)
			if err != nil {
				t.Fatalf("expected request to succeed, got %s", err)
			}
			if code != stdhttp.StatusUnauthorized {
				t.Errorf("expected status code 401, got %d", code)
			}
			if target.String != "denied" {
				t.Errorf("expected target string to be 'denied', got %s", target.String)
			}
		}
	})
	t.Run("successful requests go through the breaker", func(t *testing.T) {
		client := New(logger.New(slog.LevelInfo), WithCircuitBreaker("test"))
		client.Transport = testhelper.MockRoundTripper{Fn: testhelper.FileResponse(t, 200, testFile)}

		target := new(testType)
		if _, err := client.Get(t.Context(), "https://example.com", target, nil, nil); err != nil {
			t.Fatalf("failed to get JSON response: %s", err)
		}
		if target.Int != 123 {
			t.Errorf("expected target int to be 123, got %d", target.Int)
		}
	})
}

type failReadCloser struct{}

func (failReadCloser) Read(p []byte) (int, error) { return len(p), nil }
func (failReadCloser) Close() error               { return errors.New("failed to close") }
