package candidature

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"marie.dupont@example.com", true},
		{"a@b.co", true},
		{"recrutement@entreprise.fr", true},
		{"no-at-sign", false},
		{"missing@tld", false},
		{"two words@example.com", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidEmail(tt.input))
		})
	}
}

func TestValidateRecord(t *testing.T) {
	now := time.Date(2025, 11, 20, 15, 30, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)

	tests := []struct {
		name    string
		company string
		title   string
		date    time.Time
		status  Status
		email   string
		wantErr bool
	}{
		{"valid record", "Google France", "Développeur Full Stack", yesterday, StatusPending, "marie@example.com", false},
		{"dated today is valid", "Acme", "Engineer", now, StatusInterview, "", false},
		{"empty email is valid", "Acme", "Engineer", yesterday, StatusRejected, "", false},
		{"missing company", "", "Engineer", yesterday, StatusPending, "", true},
		{"missing title", "Acme", "  ", yesterday, StatusPending, "", true},
		{"future date", "Acme", "Engineer", now.AddDate(0, 0, 2), StatusPending, "", true},
		{"unknown status", "Acme", "Engineer", yesterday, Status("maybe"), "", true},
		{"malformed email", "Acme", "Engineer", yesterday, StatusPending, "not-an-email", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRecord(tt.company, tt.title, tt.date, tt.status, tt.email, now)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDraftEmpty(t *testing.T) {
	assert.True(t, Draft{}.Empty())
	assert.False(t, Draft{Company: "Acme"}.Empty())
	assert.False(t, Draft{Status: StatusPending}.Empty())
}
