package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/eaglebank/poa-service/shared/models"
	"github.com/lib/pq"
)

// AccountStore is the document store contract for accounts, keyed by account
// number.
type AccountStore interface {
	ExistsByID(ctx context.Context, accountNumber string) (bool, error)
	FindByID(ctx context.Context, accountNumber string) (*models.AccountDocument, error)
	Save(ctx context.Context, doc models.AccountDocument) (models.AccountDocument, error)
	FindAll(ctx context.Context) ([]models.AccountDocument, error)
}

// AccountDocumentRepository stores account documents as JSONB in PostgreSQL.
// The account number is the primary key.
type AccountDocumentRepository struct {
	db *sql.DB
}

func NewAccountDocumentRepository(db *sql.DB) *AccountDocumentRepository {
	return &AccountDocumentRepository{db: db}
}

func (r *AccountDocumentRepository) ExistsByID(ctx context.Context, accountNumber string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM accounts WHERE account_number = $1)`, accountNumber,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check account %s: %w", accountNumber, err)
	}
	return exists, nil
}

// FindByID returns nil without error when no account has that number.
func (r *AccountDocumentRepository) FindByID(ctx context.Context, accountNumber string) (*models.AccountDocument, error) {
	var raw []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT document FROM accounts WHERE account_number = $1`, accountNumber,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account %s: %w", accountNumber, err)
	}
	var doc models.AccountDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode account %s: %w", accountNumber, err)
	}
	return &doc, nil
}

// Save inserts doc. A second save for the same account number fails with
// ErrConflict; documents are never overwritten.
func (r *AccountDocumentRepository) Save(ctx context.Context, doc models.AccountDocument) (models.AccountDocument, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return models.AccountDocument{}, fmt.Errorf("failed to encode account %s: %w", doc.AccountNumber, err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO accounts (account_number, account_type, document) VALUES ($1, $2, $3)`,
		doc.AccountNumber, string(doc.AccountType), raw,
	)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.AccountDocument{}, fmt.Errorf("account %s: %w", doc.AccountNumber, ErrConflict)
		}
		return models.AccountDocument{}, fmt.Errorf("failed to create account %s: %w", doc.AccountNumber, err)
	}
	return doc, nil
}

func (r *AccountDocumentRepository) FindAll(ctx context.Context) ([]models.AccountDocument, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT document FROM accounts`)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	docs := []models.AccountDocument{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		var doc models.AccountDocument
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode account: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return docs, nil
}
