package candidature

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// emailPattern is the permissive local@domain.tld shape used for inline form
// validation. It is deliberately loose: anything stricter rejects addresses
// that real mail servers accept.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether addr looks like local@domain.tld.
func ValidEmail(addr string) bool {
	return emailPattern.MatchString(addr)
}

// Draft is a best-effort partial candidature produced by the extraction and
// import paths. Every field may be empty; the user reviews and completes the
// draft before it is persisted.
type Draft struct {
	Company      string `json:"company,omitempty"`
	Title        string `json:"title,omitempty"`
	Contact      string `json:"contact,omitempty"`
	Email        string `json:"email,omitempty"`
	Link         string `json:"link,omitempty"`
	ContractType string `json:"contract_type,omitempty"`
	Notes        string `json:"notes,omitempty"`
	Status       Status `json:"status,omitempty"`

	// ApplicationDate is zero when the source carried no usable date.
	ApplicationDate time.Time `json:"application_date,omitempty"`
}

// Empty reports whether no field of the draft was filled.
func (d Draft) Empty() bool {
	return d.Company == "" && d.Title == "" && d.Contact == "" &&
		d.Email == "" && d.Link == "" && d.ContractType == "" &&
		d.Notes == "" && d.Status == "" && d.ApplicationDate.IsZero()
}

// RelanceType classifies a logged follow-up contact.
type RelanceType string

const (
	RelanceEmail    RelanceType = "email"
	RelanceCall     RelanceType = "call"
	RelanceLinkedIn RelanceType = "linkedin"
)

// Relance is one follow-up contact event logged against a candidature.
// Relances append to an ordered history; they are never rewritten.
type Relance struct {
	Date time.Time   `json:"date"`
	Type RelanceType `json:"type"`
	Note string      `json:"note,omitempty"`
}

// StatusChange is one entry of a candidature's status history.
type StatusChange struct {
	Status    Status    `json:"status"`
	Note      string    `json:"note,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ValidateRecord checks the invariants a candidature must satisfy before it
// is persisted: a known status, an application date no later than today, and
// a plausible email shape when an email is present.
func ValidateRecord(company, title string, applicationDate time.Time, status Status, email string, now time.Time) error {
	if strings.TrimSpace(company) == "" {
		return fmt.Errorf("company is required")
	}
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title is required")
	}
	if !status.Valid() {
		return fmt.Errorf("unknown status: %q", status)
	}
	// Compare calendar dates, not instants: an application dated today is
	// valid at any time of day.
	if dateOnly(applicationDate).After(dateOnly(now)) {
		return fmt.Errorf("application date %s is in the future", applicationDate.Format("2006-01-02"))
	}
	if email != "" && !ValidEmail(email) {
		return fmt.Errorf("invalid email: %q", email)
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
