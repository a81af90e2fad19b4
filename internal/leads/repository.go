package leads

import (
	"context"
	"database/sql"
	"errors"
	"time"

	apperrors "readiness-service/internal/common/errors"

	"github.com/google/uuid"
)

// Repository persists leads in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository wraps an open database handle.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS leads (
	id            UUID PRIMARY KEY,
	name          TEXT NOT NULL,
	email         TEXT NOT NULL DEFAULT '',
	phone         TEXT NOT NULL DEFAULT '',
	overall_score INTEGER NOT NULL DEFAULT 0,
	band          TEXT NOT NULL DEFAULT '',
	source        TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMPTZ NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS leads_email_idx ON leads (email) WHERE email <> '';
CREATE INDEX IF NOT EXISTS leads_phone_idx ON leads (phone) WHERE phone <> '';
`

// EnsureSchema creates the leads table and contact indexes if absent.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schemaDDL); err != nil {
		return apperrors.NewPersistenceFailureError(err)
	}
	return nil
}

const findByContactQuery = `
SELECT id, name, email, phone, overall_score, band, source, created_at, updated_at
FROM leads
WHERE (email = $1 AND $1 <> '') OR (phone = $2 AND $2 <> '')
ORDER BY created_at
LIMIT 1`

// FindByContact returns the lead matching the email or phone, if any. Empty
// contact values never match.
func (r *Repository) FindByContact(ctx context.Context, email, phone string) (*Lead, error) {
	var lead Lead
	err := r.db.QueryRowContext(ctx, findByContactQuery, email, phone).Scan(
		&lead.ID, &lead.Name, &lead.Email, &lead.Phone,
		&lead.OverallScore, &lead.Band, &lead.Source,
		&lead.CreatedAt, &lead.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewPersistenceFailureError(err)
	}
	return &lead, nil
}

const insertQuery = `
INSERT INTO leads (id, name, email, phone, overall_score, band, source, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)`

const updateQuery = `
UPDATE leads
SET name = $2, email = $3, phone = $4, overall_score = $5, band = $6, source = $7, updated_at = $8
WHERE id = $1`

// Upsert stores the lead, matching existing records by email or phone. A
// match merges the incoming non-empty fields into the stored record, so a
// returning student adding a phone number converges on one lead instead of
// splitting into two.
func (r *Repository) Upsert(ctx context.Context, lead Lead) (UpsertResult, error) {
	existing, err := r.FindByContact(ctx, lead.Email, lead.Phone)
	if err != nil {
		return UpsertResult{}, err
	}

	now := time.Now().UTC()

	if existing == nil {
		lead.ID = uuid.NewString()
		_, err := r.db.ExecContext(ctx, insertQuery,
			lead.ID, lead.Name, lead.Email, lead.Phone,
			lead.OverallScore, lead.Band, lead.Source, now,
		)
		if err != nil {
			return UpsertResult{}, apperrors.NewPersistenceFailureError(err)
		}
		return UpsertResult{Created: true, ID: lead.ID}, nil
	}

	merged := mergeLead(*existing, lead)
	_, err = r.db.ExecContext(ctx, updateQuery,
		merged.ID, merged.Name, merged.Email, merged.Phone,
		merged.OverallScore, merged.Band, merged.Source, now,
	)
	if err != nil {
		return UpsertResult{}, apperrors.NewPersistenceFailureError(err)
	}
	return UpsertResult{Updated: true, ID: merged.ID}, nil
}

// mergeLead overlays incoming non-empty fields on the stored lead.
func mergeLead(existing, incoming Lead) Lead {
	merged := existing
	if incoming.Name != "" {
		merged.Name = incoming.Name
	}
	if incoming.Email != "" {
		merged.Email = incoming.Email
	}
	if incoming.Phone != "" {
		merged.Phone = incoming.Phone
	}
	if incoming.OverallScore != 0 {
		merged.OverallScore = incoming.OverallScore
	}
	if incoming.Band != "" {
		merged.Band = incoming.Band
	}
	if incoming.Source != "" {
		merged.Source = incoming.Source
	}
	return merged
}
