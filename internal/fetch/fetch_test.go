package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><title>Hello</title></html>"))
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Contains(t, result.HTML, "Hello")
}

func TestURL_InvalidURL(t *testing.T) {
	tests := []string{"not a url", "", "relative/path", "://missing-scheme"}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := URL(context.Background(), input, nil)
			assert.Error(t, err)
		})
	}
}

func TestURL_NotFoundIsNotRetried(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := URL(context.Background(), server.URL, nil)
	assert.Error(t, err)
	assert.Equal(t, 1, calls, "4xx responses should not be retried")
}

func TestURL_TransientErrorIsRetried(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("recovered"))
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Contains(t, result.HTML, "recovered")
	assert.Equal(t, 2, calls)
}

func TestProxy_FirstSuccessWins(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("proxied content"))
	}))
	defer good.Close()
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer bad.Close()

	proxy := NewProxy([]string{bad.URL + "/?url=", good.URL + "/?url="}, nil, nil)
	result, err := proxy.Fetch(context.Background(), "https://example.com/jobs/1")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/jobs/1", result.URL)
	assert.Equal(t, "proxied content", result.HTML)
}

func TestProxy_AllMirrorsFail(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer bad.Close()

	proxy := NewProxy([]string{bad.URL + "/?url="}, nil, nil)
	_, err := proxy.Fetch(context.Background(), "https://example.com/jobs/1")
	assert.Error(t, err)
}

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser(""))
	assert.True(t, ShouldUseBrowser("<html></html>"))
	long := make([]byte, MinContentLength+1)
	for i := range long {
		long[i] = 'x'
	}
	assert.False(t, ShouldUseBrowser(string(long)))
}

func TestCacheTTL(t *testing.T) {
	cache, err := NewCache(0)
	require.NoError(t, err)
	assert.Equal(t, DefaultCacheTTL, cache.TTL())

	cache, err = NewCache(time.Minute)
	require.NoError(t, err)
	assert.Equal(t, time.Minute, cache.TTL())
}
