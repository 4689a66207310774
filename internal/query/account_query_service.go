package query

import (
	"context"
	"fmt"

	"github.com/eaglebank/poa-service/shared/cqrs"
	"github.com/eaglebank/poa-service/shared/models"
)

// AccountReader is the read side of the account document store.
type AccountReader interface {
	ExistsByID(ctx context.Context, accountNumber string) (bool, error)
	FindByID(ctx context.Context, accountNumber string) (*models.AccountDocument, error)
	FindAll(ctx context.Context) ([]models.AccountDocument, error)
}

type AccountQueryService struct {
	reader AccountReader
}

func NewAccountQueryService(reader AccountReader) *AccountQueryService {
	return &AccountQueryService{reader: reader}
}

// GetAccount fetches a single account.
func (s *AccountQueryService) GetAccount(ctx context.Context, q cqrs.GetAccountQuery) (models.Account, error) {
	doc, err := s.reader.FindByID(ctx, q.AccountNumber)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, &models.AccountNotFoundError{AccountNumber: q.AccountNumber}
	}
	return models.AccountFromDocument(*doc)
}

func (s *AccountQueryService) AccountExists(ctx context.Context, accountNumber string) (bool, error) {
	return s.reader.ExistsByID(ctx, accountNumber)
}

// ListAccounts returns every stored account in store order.
func (s *AccountQueryService) ListAccounts(ctx context.Context, _ cqrs.ListAccountsQuery) ([]models.Account, error) {
	docs, err := s.reader.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	accounts := make([]models.Account, 0, len(docs))
	for _, doc := range docs {
		account, err := models.AccountFromDocument(doc)
		if err != nil {
			return nil, fmt.Errorf("stored account %s: %w", doc.AccountNumber, err)
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}
