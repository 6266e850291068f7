package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Beviryon/BeCandidature-sub000/internal/candidature"
)

func TestFromText_ConfirmationEmail(t *testing.T) {
	text := "Bonjour,\n\nNous avons bien reçu votre candidature pour le poste de " +
		"Développeur Full Stack chez Google France. Nous reviendrons vers vous " +
		"sous deux semaines.\n\nCordialement,\nMarie Dupont"

	draft := FromText(text)
	assert.Equal(t, "Développeur Full Stack", draft.Title)
	assert.Equal(t, "Google France", draft.Company)
	assert.Equal(t, "Marie Dupont", draft.Contact)
	assert.Equal(t, candidature.StatusPending, draft.Status)
}

func TestFromText_CompanyStopsAtSentenceEnd(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		company string
	}{
		{"capitalized word after period", "Votre candidature chez Google France. Nous vous répondrons vite.", "Google France"},
		{"end of text", "Merci d'avoir postulé chez Société Générale", "Société Générale"},
		{"comma after company", "Nous vous remercions pour votre candidature chez Acme, et reviendrons vers vous.", "Acme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.company, FromText(tt.text).Company)
		})
	}
}

func TestFromText_StatusKeywords(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected candidature.Status
	}{
		{"interview keyword", "Nous souhaitons vous convier à un entretien lundi prochain.", candidature.StatusInterview},
		{"english interview", "We would like to schedule an interview with you.", candidature.StatusInterview},
		{"rejection keyword", "Malheureusement, votre profil n'a pas été retenu.", candidature.StatusRejected},
		{"english rejection", "Unfortunately, we have decided not to move forward.", candidature.StatusRejected},
		{"rejection beats interview", "Suite à votre entretien, nous avons malheureusement décidé de ne pas donner suite.", candidature.StatusRejected},
		{"no keyword defaults to pending", "Votre candidature a bien été transmise.", candidature.StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FromText(tt.text).Status)
		})
	}
}

func TestFromText_ContactAndEmail(t *testing.T) {
	text := "Merci pour votre message.\n\nBest regards,\nJohn Smith\njohn.smith@acme.io"
	draft := FromText(text)
	assert.Equal(t, "John Smith", draft.Contact)
	assert.Equal(t, "john.smith@acme.io", draft.Email)
}

func TestFromText_Link(t *testing.T) {
	text := "L'offre est disponible ici : https://example.com/jobs/42."
	assert.Equal(t, "https://example.com/jobs/42", FromText(text).Link)
}

func TestFromText_NeverFails(t *testing.T) {
	tests := []string{"", "   \n\t  ", "no recognizable structure here", "@@@@"}
	for _, input := range tests {
		draft := FromText(input)
		assert.Equal(t, candidature.StatusPending, draft.Status)
		assert.Empty(t, draft.Company)
		assert.Empty(t, draft.Title)
		assert.Empty(t, draft.Contact)
	}
}
