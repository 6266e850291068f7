package db

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Beviryon/BeCandidature-sub000/internal/candidature"
)

// User represents a user account. Accounts start unapproved; login is
// refused until an admin sets the approved flag.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never serialize to JSON
	Approved     bool      `json:"approved"`
	Admin        bool      `json:"admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Candidature represents a stored job application.
type Candidature struct {
	ID              uuid.UUID          `json:"id"`
	UserID          uuid.UUID          `json:"user_id"`
	Company         string             `json:"company"`
	Title           string             `json:"title"`
	ApplicationDate Date               `json:"application_date"`
	Status          candidature.Status `json:"status"`
	ContractType    string             `json:"contract_type,omitempty"`
	Contact         string             `json:"contact,omitempty"`
	Email           string             `json:"email,omitempty"`
	Link            string             `json:"link,omitempty"`
	Notes           string             `json:"notes,omitempty"`
	FollowUpDate    *Date              `json:"follow_up_date,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// Relance represents one follow-up action logged against a candidature.
type Relance struct {
	ID            uuid.UUID `json:"id"`
	CandidatureID uuid.UUID `json:"candidature_id"`
	Date          Date      `json:"date"`
	Type          string    `json:"type"` // email, call, linkedin
	Note          string    `json:"note,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// StatusChange represents one entry of a candidature's status history.
type StatusChange struct {
	ID            uuid.UUID          `json:"id"`
	CandidatureID uuid.UUID          `json:"candidature_id"`
	Status        candidature.Status `json:"status"`
	Note          string             `json:"note,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

// Date is a custom type for handling SQL DATE (YYYY-MM-DD)
type Date struct {
	time.Time
}

// NewDate builds a Date from a time, dropping the clock component.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Scan implements the Scanner interface
func (d *Date) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	t, ok := value.(time.Time)
	if !ok {
		return errors.New("failed to scan Date")
	}
	d.Time = t
	return nil
}

// Value implements the Valuer interface
func (d *Date) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	return d.Time, nil
}

// MarshalJSON implements json.Marshaler
func (d *Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format("2006-01-02"))
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Date) UnmarshalJSON(data []byte) error {
	str := string(data)
	if str == "null" || str == `""` {
		return nil
	}
	// Trim quotes
	if len(str) > 2 && str[0] == '"' && str[len(str)-1] == '"' {
		str = str[1 : len(str)-1]
	}
	var err error
	d.Time, err = time.Parse("2006-01-02", str)
	return err
}
