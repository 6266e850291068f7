package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Beviryon/BeCandidature-sub000/internal/candidature"
)

// ErrNotFound marks writes against a candidature that does not exist or
// belongs to another user.
var ErrNotFound = errors.New("candidature not found")

const candidatureColumns = `id, user_id, company, title, application_date, status,
	contract_type, contact, email, link, notes, follow_up_date, created_at, updated_at`

func scanCandidature(row pgx.Row) (*Candidature, error) {
	var c Candidature
	err := row.Scan(&c.ID, &c.UserID, &c.Company, &c.Title, &c.ApplicationDate, &c.Status,
		&c.ContractType, &c.Contact, &c.Email, &c.Link, &c.Notes, &c.FollowUpDate,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateCandidature inserts a candidature and its initial status history
// entry in one transaction, returning the new ID.
func (db *DB) CreateCandidature(ctx context.Context, c *Candidature) (uuid.UUID, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var id uuid.UUID
	err = tx.QueryRow(ctx,
		`INSERT INTO candidatures (user_id, company, title, application_date, status,
		    contract_type, contact, email, link, notes, follow_up_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id`,
		c.UserID, c.Company, c.Title, c.ApplicationDate, c.Status,
		c.ContractType, c.Contact, c.Email, c.Link, c.Notes, c.FollowUpDate,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create candidature: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO status_history (candidature_id, status, note) VALUES ($1, $2, $3)`,
		id, c.Status, "",
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to record initial status: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit candidature: %w", err)
	}
	return id, nil
}

// GetCandidature retrieves one candidature owned by the user. Returns nil
// when not found or owned by someone else.
func (db *DB) GetCandidature(ctx context.Context, userID, id uuid.UUID) (*Candidature, error) {
	c, err := scanCandidature(db.pool.QueryRow(ctx,
		`SELECT `+candidatureColumns+` FROM candidatures WHERE id = $1 AND user_id = $2`,
		id, userID,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get candidature: %w", err)
	}
	return c, nil
}

// CandidatureFilters holds optional filters for listing candidatures
type CandidatureFilters struct {
	Status  candidature.Status
	Company string
	Limit   int
}

// ListCandidatures retrieves the user's candidatures, most recent
// application first, with optional status and company filters.
func (db *DB) ListCandidatures(ctx context.Context, userID uuid.UUID, filters CandidatureFilters) ([]Candidature, error) {
	if filters.Limit == 0 {
		filters.Limit = 200
	}

	query := `SELECT ` + candidatureColumns + ` FROM candidatures WHERE user_id = $1`
	args := []any{userID}
	argNum := 2

	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argNum)
		args = append(args, filters.Status)
		argNum++
	}
	if filters.Company != "" {
		query += fmt.Sprintf(" AND company ILIKE $%d", argNum)
		args = append(args, "%"+filters.Company+"%")
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY application_date DESC, created_at DESC LIMIT $%d", argNum)
	args = append(args, filters.Limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidatures: %w", err)
	}
	defer rows.Close()

	var candidatures []Candidature
	for rows.Next() {
		c, err := scanCandidature(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidature: %w", err)
		}
		candidatures = append(candidatures, *c)
	}
	return candidatures, nil
}

// UpdateCandidature saves the merged candidature. When statusChanged is true
// a status history entry is appended in the same transaction; history entries
// are never rewritten.
func (db *DB) UpdateCandidature(ctx context.Context, c *Candidature, statusChanged bool, statusNote string) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	result, err := tx.Exec(ctx,
		`UPDATE candidatures SET company = $1, title = $2, application_date = $3,
		    status = $4, contract_type = $5, contact = $6, email = $7, link = $8,
		    notes = $9, follow_up_date = $10, updated_at = NOW()
		 WHERE id = $11 AND user_id = $12`,
		c.Company, c.Title, c.ApplicationDate, c.Status, c.ContractType,
		c.Contact, c.Email, c.Link, c.Notes, c.FollowUpDate, c.ID, c.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update candidature: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, c.ID)
	}

	if statusChanged {
		_, err = tx.Exec(ctx,
			`INSERT INTO status_history (candidature_id, status, note) VALUES ($1, $2, $3)`,
			c.ID, c.Status, statusNote,
		)
		if err != nil {
			return fmt.Errorf("failed to append status history: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit update: %w", err)
	}
	return nil
}

// DeleteCandidature deletes a candidature and, via cascade, its relance and
// status history.
func (db *DB) DeleteCandidature(ctx context.Context, userID, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM candidatures WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete candidature: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// AddRelance appends a follow-up action to a candidature's relance history.
func (db *DB) AddRelance(ctx context.Context, r *Relance) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO relances (candidature_id, date, type, note)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		r.CandidatureID, r.Date, r.Type, r.Note,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to add relance: %w", err)
	}
	return id, nil
}

// ListRelances retrieves a candidature's relance history in insertion order.
func (db *DB) ListRelances(ctx context.Context, candidatureID uuid.UUID) ([]Relance, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, candidature_id, date, type, note, created_at
		 FROM relances WHERE candidature_id = $1 ORDER BY created_at ASC`,
		candidatureID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list relances: %w", err)
	}
	defer rows.Close()

	var relances []Relance
	for rows.Next() {
		var r Relance
		if err := rows.Scan(&r.ID, &r.CandidatureID, &r.Date, &r.Type, &r.Note, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan relance: %w", err)
		}
		relances = append(relances, r)
	}
	return relances, nil
}

// ListStatusHistory retrieves a candidature's status changes in insertion order.
func (db *DB) ListStatusHistory(ctx context.Context, candidatureID uuid.UUID) ([]StatusChange, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, candidature_id, status, note, created_at
		 FROM status_history WHERE candidature_id = $1 ORDER BY created_at ASC`,
		candidatureID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list status history: %w", err)
	}
	defer rows.Close()

	var changes []StatusChange
	for rows.Next() {
		var sc StatusChange
		if err := rows.Scan(&sc.ID, &sc.CandidatureID, &sc.Status, &sc.Note, &sc.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan status change: %w", err)
		}
		changes = append(changes, sc)
	}
	return changes, nil
}
