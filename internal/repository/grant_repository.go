package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/eaglebank/poa-service/shared/models"
	"github.com/eaglebank/poa-service/shared/utils"
)

// GrantStore is the document store contract for power of attorney grants.
type GrantStore interface {
	FindByGranteeName(ctx context.Context, granteeName string) ([]models.PowerOfAttorneyDocument, error)
	FindAll(ctx context.Context) ([]models.PowerOfAttorneyDocument, error)
	Save(ctx context.Context, doc models.PowerOfAttorneyDocument) (models.PowerOfAttorneyDocument, error)
}

// GrantDocumentRepository stores grant documents, with their embedded account
// snapshot, as JSONB in PostgreSQL. grantee_name is duplicated into its own
// indexed column for exact-match lookups.
type GrantDocumentRepository struct {
	db *sql.DB
}

func NewGrantDocumentRepository(db *sql.DB) *GrantDocumentRepository {
	return &GrantDocumentRepository{db: db}
}

// Save assigns an ID when doc has none and inserts it.
func (r *GrantDocumentRepository) Save(ctx context.Context, doc models.PowerOfAttorneyDocument) (models.PowerOfAttorneyDocument, error) {
	if doc.ID == "" {
		doc.ID = utils.GenerateID("poa")
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return models.PowerOfAttorneyDocument{}, fmt.Errorf("failed to encode grant: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO power_of_attorney_grants (id, grantee_name, account_number, document) VALUES ($1, $2, $3, $4)`,
		doc.ID, doc.GranteeName, doc.Account.AccountNumber, raw,
	)
	if err != nil {
		return models.PowerOfAttorneyDocument{}, fmt.Errorf("failed to create grant %s: %w", doc.ID, err)
	}
	return doc, nil
}

func (r *GrantDocumentRepository) FindByGranteeName(ctx context.Context, granteeName string) ([]models.PowerOfAttorneyDocument, error) {
	return r.query(ctx,
		`SELECT document FROM power_of_attorney_grants WHERE grantee_name = $1 ORDER BY created_at, id`, granteeName)
}

func (r *GrantDocumentRepository) FindAll(ctx context.Context) ([]models.PowerOfAttorneyDocument, error) {
	return r.query(ctx, `SELECT document FROM power_of_attorney_grants ORDER BY created_at, id`)
}

func (r *GrantDocumentRepository) query(ctx context.Context, query string, args ...any) ([]models.PowerOfAttorneyDocument, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list grants: %w", err)
	}
	defer rows.Close()

	docs := []models.PowerOfAttorneyDocument{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan grant: %w", err)
		}
		var doc models.PowerOfAttorneyDocument
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode grant: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list grants: %w", err)
	}
	return docs, nil
}
