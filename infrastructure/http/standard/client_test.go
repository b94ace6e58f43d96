package standard

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStandardHTTPClient(t *testing.T) {
	timeout := 10 * time.Second
	client := NewStandardHTTPClient(timeout)

	if client == nil {
		t.Fatal("NewStandardHTTPClient returned nil")
	}

	if client.client.Timeout != timeout {
		t.Errorf("Client timeout = %v, want %v", client.client.Timeout, timeout)
	}
	if client.maxRetries != 0 {
		t.Errorf("maxRetries = %d, want 0", client.maxRetries)
	}
}

func TestStandardHTTPClient_Get_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("Expected GET request, got %s", r.Method)
		}

		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("dmxlc3M6Ly9hYmNAMS4xLjEuMTo0NDM/eD0xI0hL"))
	}))
	defer server.Close()

	client := NewStandardHTTPClient(10 * time.Second)

	resp, err := client.Get(context.Background(), server.URL)
	require.NoError(t, err)
	require.NotNil(t, resp)
	defer resp.Body().Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, "text/plain", resp.Header("content-type"))

	body, err := io.ReadAll(resp.Body())
	require.NoError(t, err)
	assert.Equal(t, "dmxlc3M6Ly9hYmNAMS4xLjEuMTo0NDM/eD0xI0hL", string(body))
}

func TestStandardHTTPClient_Get_UserAgent(t *testing.T) {
	var capturedUserAgent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedUserAgent = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewStandardHTTPClient(10 * time.Second)

	resp, err := client.Get(context.Background(), server.URL)
	require.NoError(t, err)
	resp.Body().Close()

	assert.True(t, strings.HasPrefix(capturedUserAgent, "LinkfeedAggregator/"), "User-Agent = %s", capturedUserAgent)
}

func TestStandardHTTPClient_Get_ContextTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewStandardHTTPClient(10 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	resp, err := client.Get(ctx, server.URL)
	if err == nil {
		resp.Body().Close()
		t.Fatal("Get should return error for context timeout")
	}
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestStandardHTTPClient_Get_InvalidURL(t *testing.T) {
	client := NewStandardHTTPClient(10 * time.Second)

	resp, err := client.Get(context.Background(), "://missing-scheme")
	if err == nil {
		resp.Body().Close()
		t.Error("Get should return error for invalid URL")
	}
}

func TestStandardHTTPClient_Get_NoRetryByDefault(t *testing.T) {
	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewStandardHTTPClient(10 * time.Second)

	resp, err := client.Get(context.Background(), server.URL)
	require.NoError(t, err)
	resp.Body().Close()

	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode())
}

func TestStandardHTTPClient_Get_Retry503(t *testing.T) {
	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := NewStandardHTTPClientWithOptions(Options{Timeout: 10 * time.Second, MaxRetries: 2})
	require.NoError(t, err)

	resp, err := client.Get(context.Background(), server.URL)
	require.NoError(t, err)
	resp.Body().Close()

	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
	assert.Equal(t, http.StatusOK, resp.StatusCode())
}

func TestStandardHTTPClient_Get_MaxRetries(t *testing.T) {
	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client, err := NewStandardHTTPClientWithOptions(Options{Timeout: 10 * time.Second, MaxRetries: 2})
	require.NoError(t, err)

	resp, err := client.Get(context.Background(), server.URL)
	require.NoError(t, err)
	resp.Body().Close()

	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode())
}

func TestStandardHTTPClient_Get_NoRetryOn4xx(t *testing.T) {
	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client, err := NewStandardHTTPClientWithOptions(Options{Timeout: 10 * time.Second, MaxRetries: 3})
	require.NoError(t, err)

	resp, err := client.Get(context.Background(), server.URL)
	require.NoError(t, err)
	resp.Body().Close()

	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
}

func TestStandardHTTPClient_Get_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := NewStandardHTTPClientWithOptions(Options{Timeout: 10 * time.Second, RateLimit: 10})
	require.NoError(t, err)
	require.NotNil(t, client.limiter)

	// burst of 10 is spent immediately, the 11th request waits ~100ms
	start := time.Now()
	for i := 0; i < 11; i++ {
		resp, err := client.Get(context.Background(), server.URL)
		require.NoError(t, err)
		resp.Body().Close()
	}

	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestStandardHTTPClient_Get_RateLimitHonoursContext(t *testing.T) {
	client, err := NewStandardHTTPClientWithOptions(Options{Timeout: time.Second, RateLimit: 0.001})
	require.NoError(t, err)
	// drain the single token
	client.limiter.Allow()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = client.Get(ctx, "http://127.0.0.1:1/")
	assert.Error(t, err)
}

func TestNewStandardHTTPClientWithOptions_Proxy(t *testing.T) {
	client, err := NewStandardHTTPClientWithOptions(Options{Timeout: time.Second, ProxyAddress: "127.0.0.1:1080"})
	require.NoError(t, err)

	transport, ok := client.client.Transport.(*http.Transport)
	require.True(t, ok)
	assert.NotNil(t, transport.DialContext)
	assert.Nil(t, transport.Proxy)
}

func TestHTTPResponse_Header(t *testing.T) {
	resp := &httpResponse{
		headers: http.Header{
			"Content-Type": []string{"text/plain"},
		},
	}

	assert.Equal(t, "text/plain", resp.Header("content-type"))
	assert.Equal(t, "", resp.Header("Non-Existent"))
}
