// Package mailer provides transactional email delivery.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/codeGROOVE-dev/retry"
)

// Mailer sends transactional email.
type Mailer interface {
	Send(ctx context.Context, to, subject, html string) error
}

// defaultEndpoint is the Resend email API.
const defaultEndpoint = "https://api.resend.com/emails"

// ResendMailer sends email through the Resend HTTP API.
type ResendMailer struct {
	apiKey   string
	from     string
	endpoint string
	client   *http.Client
}

// NewResendMailer creates a mailer using the given API key and sender address.
func NewResendMailer(apiKey, from string) (*ResendMailer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if from == "" {
		return nil, fmt.Errorf("sender address is required")
	}
	return &ResendMailer{
		apiKey:   apiKey,
		from:     from,
		endpoint: defaultEndpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
	}, nil
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Send delivers one email. Transient API failures (429, 5xx) are retried a
// couple of times; 4xx responses are not.
func (m *ResendMailer) Send(ctx context.Context, to, subject, html string) error {
	payload, err := json.Marshal(sendRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return fmt.Errorf("failed to encode email: %w", err)
	}

	return retry.Do(
		func() error { return m.post(ctx, payload) },
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
		retry.MaxJitter(250*time.Millisecond),
		retry.Context(ctx),
		retry.RetryIf(isRetryable),
		retry.LastErrorOnly(true),
	)
}

func (m *ResendMailer) post(ctx context.Context, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call email API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &apiError{status: resp.StatusCode, body: string(body)}
	}
	return nil
}

type apiError struct {
	status int
	body   string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("email API returned %d: %s", e.status, e.body)
}

func isRetryable(err error) bool {
	if apiErr, ok := err.(*apiError); ok {
		return apiErr.status == http.StatusTooManyRequests || apiErr.status >= 500
	}
	// Network errors are worth one more try.
	return true
}
