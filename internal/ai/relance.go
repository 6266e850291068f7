package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"github.com/Beviryon/BeCandidature-sub000/internal/candidature"
)

// relanceSchema constrains the model output: a subject and a body, nothing
// else, both non-empty.
const relanceSchema = `{
  "type": "object",
  "required": ["subject", "body"],
  "additionalProperties": false,
  "properties": {
    "subject": {"type": "string", "minLength": 1, "maxLength": 200},
    "body": {"type": "string", "minLength": 1, "maxLength": 4000}
  }
}`

// RelanceInput describes the candidature a follow-up message is drafted for.
type RelanceInput struct {
	Company         string
	Title           string
	Contact         string
	ApplicationDate time.Time
	Status          candidature.Status
	RelanceCount    int    // follow-ups already sent
	Tone            string // formal, neutral, friendly
	Language        string // fr, en
}

// RelanceMessage is a validated drafted follow-up message.
type RelanceMessage struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Drafter drafts follow-up messages for candidatures.
type Drafter struct {
	client Client
}

// NewDrafter creates a Drafter on top of a generation client.
func NewDrafter(client Client) *Drafter {
	return &Drafter{client: client}
}

// DraftRelance asks the model for a follow-up message and validates the
// output against the message schema before returning it.
func (d *Drafter) DraftRelance(ctx context.Context, input RelanceInput) (*RelanceMessage, error) {
	raw, err := d.client.GenerateJSON(ctx, BuildRelancePrompt(input))
	if err != nil {
		return nil, fmt.Errorf("failed to draft relance: %w", err)
	}
	return ParseRelanceMessage(raw)
}

// ParseRelanceMessage validates raw model output against the message schema
// and decodes it.
func ParseRelanceMessage(raw string) (*RelanceMessage, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(relanceSchema),
		gojsonschema.NewStringLoader(raw),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to validate drafted message: %w", err)
	}
	if !result.Valid() {
		var details []string
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return nil, fmt.Errorf("drafted message rejected by schema: %s", strings.Join(details, "; "))
	}

	var msg RelanceMessage
	if err := json.Unmarshal([]byte(raw), &msg); err != nil {
		return nil, fmt.Errorf("failed to decode drafted message: %w", err)
	}
	return &msg, nil
}

// BuildRelancePrompt constructs the drafting prompt.
func BuildRelancePrompt(input RelanceInput) string {
	tone := input.Tone
	if tone == "" {
		tone = "neutral"
	}
	language := "French"
	if input.Language == "en" {
		language = "English"
	}

	var sb strings.Builder
	sb.WriteString("You write short, professional follow-up emails for job applications.\n\n")
	fmt.Fprintf(&sb, "Application: %s at %s, submitted on %s.\n",
		input.Title, input.Company, input.ApplicationDate.Format("2006-01-02"))
	if input.Contact != "" {
		fmt.Fprintf(&sb, "Recipient: %s.\n", input.Contact)
	}
	fmt.Fprintf(&sb, "Current status: %s. Follow-ups already sent: %d.\n", input.Status, input.RelanceCount)
	fmt.Fprintf(&sb, "Write in %s with a %s tone. Keep the body under 150 words.\n\n", language, tone)
	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n")
	sb.WriteString(`{"subject": string, "body": string}`)
	return sb.String()
}
