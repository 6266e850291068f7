package types

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Beviryon/BeCandidature-sub000/internal/importer"
)

// CreateCandidatureRequest represents the request to record a new candidature.
type CreateCandidatureRequest struct {
	Company         string `json:"company" validate:"required,min=1"`
	Title           string `json:"title" validate:"required,min=1"`
	ApplicationDate string `json:"application_date" validate:"required"` // YYYY-MM-DD
	Status          string `json:"status,omitempty"`
	ContractType    string `json:"contract_type,omitempty"`
	Contact         string `json:"contact,omitempty"`
	Email           string `json:"email,omitempty" validate:"omitempty,email"`
	Link            string `json:"link,omitempty" validate:"omitempty,url"`
	Notes           string `json:"notes,omitempty"`
}

// UpdateCandidatureRequest represents a partial candidature update. Nil fields
// are left untouched; a status change appends to the status history and
// recomputes the follow-up date.
type UpdateCandidatureRequest struct {
	Company         *string `json:"company,omitempty"`
	Title           *string `json:"title,omitempty"`
	ApplicationDate *string `json:"application_date,omitempty"`
	Status          *string `json:"status,omitempty"`
	StatusNote      string  `json:"status_note,omitempty"`
	ContractType    *string `json:"contract_type,omitempty"`
	Contact         *string `json:"contact,omitempty"`
	Email           *string `json:"email,omitempty"`
	Link            *string `json:"link,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// CreateRelanceRequest represents the request to log a follow-up action.
type CreateRelanceRequest struct {
	Date string `json:"date,omitempty"` // YYYY-MM-DD, defaults to today
	Type string `json:"type" validate:"required,oneof=email call linkedin"`
	Note string `json:"note,omitempty"`
}

// ExtractTextRequest carries a pasted email or message body to extract from.
type ExtractTextRequest struct {
	Text string `json:"text" validate:"required,min=1"`
}

// ExtractURLRequest carries a job posting URL to extract from. Hint is an
// optional page title captured by the caller (e.g. a browser extension).
type ExtractURLRequest struct {
	URL  string `json:"url" validate:"required,url"`
	Hint string `json:"hint,omitempty"`
}

// DraftRelanceRequest tunes the AI-drafted follow-up message.
type DraftRelanceRequest struct {
	Tone     string `json:"tone,omitempty" validate:"omitempty,oneof=formal neutral friendly"`
	Language string `json:"language,omitempty" validate:"omitempty,oneof=fr en"`
}

// DraftRelanceResponse is the AI-drafted follow-up message.
type DraftRelanceResponse struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// ImportReport summarizes a spreadsheet import: how many rows were persisted,
// how many failed, and the per-row degradation warnings.
type ImportReport struct {
	Created int               `json:"created"`
	Failed  int               `json:"failed"`
	Rows    []ImportRowReport `json:"rows,omitempty"`
}

// ImportRowReport is the outcome of one imported row.
type ImportRowReport struct {
	Row      int                `json:"row"`
	ID       string             `json:"id,omitempty"`
	Error    string             `json:"error,omitempty"`
	Warnings []importer.Warning `json:"warnings,omitempty"`
}

// Validate validates the CreateCandidatureRequest using the validator.
func (r *CreateCandidatureRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the CreateRelanceRequest using the validator.
func (r *CreateRelanceRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// ParsedDate parses the application date the same way spreadsheet imports do.
func (r *CreateCandidatureRequest) ParsedDate() (time.Time, bool) {
	return importer.ParseDate(r.ApplicationDate)
}
