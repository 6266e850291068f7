package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMailer(t *testing.T, handler http.HandlerFunc) *ResendMailer {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	m, err := NewResendMailer("re_test_key", "noreply@becandidature.app")
	require.NoError(t, err)
	m.endpoint = server.URL
	return m
}

func TestSend(t *testing.T) {
	var got sendRequest
	m := newTestMailer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer re_test_key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	})

	err := m.Send(context.Background(), "user@example.com", "Suivi de candidature", "<p>Bonjour</p>")
	require.NoError(t, err)
	assert.Equal(t, "noreply@becandidature.app", got.From)
	assert.Equal(t, []string{"user@example.com"}, got.To)
	assert.Equal(t, "Suivi de candidature", got.Subject)
}

func TestSend_ClientErrorNotRetried(t *testing.T) {
	var calls int
	m := newTestMailer(t, func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnprocessableEntity)
	})

	err := m.Send(context.Background(), "user@example.com", "s", "b")
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestSend_ServerErrorRetried(t *testing.T) {
	var calls int
	m := newTestMailer(t, func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	err := m.Send(context.Background(), "user@example.com", "s", "b")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestNewResendMailer_Validation(t *testing.T) {
	_, err := NewResendMailer("", "from@x.fr")
	assert.Error(t, err)

	_, err = NewResendMailer("key", "")
	assert.Error(t, err)
}
