package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateUserRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateUserRequest
		wantErr bool
	}{
		{"valid", CreateUserRequest{Name: "Marie", Email: "marie@example.com", Password: "longenough"}, false},
		{"missing name", CreateUserRequest{Email: "marie@example.com", Password: "longenough"}, true},
		{"bad email", CreateUserRequest{Name: "Marie", Email: "nope", Password: "longenough"}, true},
		{"short password", CreateUserRequest{Name: "Marie", Email: "marie@example.com", Password: "short"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateCandidatureRequestValidate(t *testing.T) {
	valid := CreateCandidatureRequest{
		Company:         "Google France",
		Title:           "Développeur Full Stack",
		ApplicationDate: "2025-05-15",
		Email:           "marie@google.com",
		Link:            "https://example.com/jobs/1",
	}
	assert.NoError(t, valid.Validate())

	date, ok := valid.ParsedDate()
	assert.True(t, ok)
	assert.Equal(t, "2025-05-15", date.Format("2006-01-02"))

	missingTitle := valid
	missingTitle.Title = ""
	assert.Error(t, missingTitle.Validate())

	badLink := valid
	badLink.Link = "not a url"
	assert.Error(t, badLink.Validate())
}

func TestCreateRelanceRequestValidate(t *testing.T) {
	assert.NoError(t, (&CreateRelanceRequest{Type: "email"}).Validate())
	assert.NoError(t, (&CreateRelanceRequest{Type: "linkedin", Note: "ping"}).Validate())
	assert.Error(t, (&CreateRelanceRequest{Type: "pigeon"}).Validate())
	assert.Error(t, (&CreateRelanceRequest{}).Validate())
}
