package ai

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Beviryon/BeCandidature-sub000/internal/candidature"
)

type fakeClient struct {
	response string
	err      error
	prompt   string
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

func (f *fakeClient) Close() error { return nil }

func sampleInput() RelanceInput {
	return RelanceInput{
		Company:         "Google France",
		Title:           "Développeur Full Stack",
		Contact:         "Marie Dupont",
		ApplicationDate: time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC),
		Status:          candidature.StatusPending,
		RelanceCount:    1,
	}
}

func TestDraftRelance(t *testing.T) {
	client := &fakeClient{response: `{"subject": "Suivi de ma candidature", "body": "Bonjour Marie Dupont, ..."}`}
	drafter := NewDrafter(client)

	msg, err := drafter.DraftRelance(context.Background(), sampleInput())
	require.NoError(t, err)
	assert.Equal(t, "Suivi de ma candidature", msg.Subject)
	assert.Contains(t, msg.Body, "Marie Dupont")

	assert.Contains(t, client.prompt, "Google France")
	assert.Contains(t, client.prompt, "2025-05-15")
	assert.Contains(t, client.prompt, "French")
}

func TestDraftRelance_SchemaRejects(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"missing body", `{"subject": "Suivi"}`},
		{"extra field", `{"subject": "s", "body": "b", "cc": "x"}`},
		{"empty subject", `{"subject": "", "body": "b"}`},
		{"not an object", `["subject", "body"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			drafter := NewDrafter(&fakeClient{response: tt.response})
			_, err := drafter.DraftRelance(context.Background(), sampleInput())
			assert.Error(t, err)
		})
	}
}

func TestBuildRelancePrompt_Language(t *testing.T) {
	input := sampleInput()
	input.Language = "en"
	input.Tone = "friendly"

	prompt := BuildRelancePrompt(input)
	assert.Contains(t, prompt, "English")
	assert.Contains(t, prompt, "friendly")
}

func TestCleanJSONBlock(t *testing.T) {
	assert.Equal(t, `{"subject":"s"}`, cleanJSONBlock("```json\n{\"subject\":\"s\"}\n```"))
	assert.Equal(t, `{"subject":"s"}`, cleanJSONBlock(`{"subject":"s"}`))
}
