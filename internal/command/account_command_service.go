package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eaglebank/poa-service/internal/metrics"
	"github.com/eaglebank/poa-service/internal/repository"
	"github.com/eaglebank/poa-service/shared/cqrs"
	"github.com/eaglebank/poa-service/shared/events"
	"github.com/eaglebank/poa-service/shared/models"
	"go.uber.org/zap"
)

// AccountStore is the slice of the account document store the create path
// needs.
type AccountStore interface {
	ExistsByID(ctx context.Context, accountNumber string) (bool, error)
	Save(ctx context.Context, doc models.AccountDocument) (models.AccountDocument, error)
}

// EventPublisher appends domain events to a stream.
type EventPublisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

// AccountCommandService creates accounts.
type AccountCommandService struct {
	store     AccountStore
	publisher EventPublisher
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

func NewAccountCommandService(
	store AccountStore,
	publisher EventPublisher,
	m *metrics.Metrics,
	logger *zap.Logger,
) *AccountCommandService {
	return &AccountCommandService{
		store:     store,
		publisher: publisher,
		metrics:   m,
		logger:    logger.With(zap.String("component", "account_command")),
	}
}

// CreateAccount stores a new account unless one with the same number exists.
// The returned account is rebuilt from what the store kept.
func (s *AccountCommandService) CreateAccount(ctx context.Context, cmd cqrs.CreateAccountCommand) (models.Account, error) {
	defer s.metrics.ObserveCommand("create_account", time.Now())

	exists, err := s.store.ExistsByID(ctx, cmd.AccountNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		s.metrics.IncrementRejected("create_account", "duplicate")
		return nil, &models.DuplicateAccountError{AccountNumber: cmd.AccountNumber}
	}

	account, err := models.NewAccount(cmd.AccountNumber, cmd.AccountHolderName, cmd.AccountType, cmd.InitialBalance)
	if err != nil {
		s.metrics.IncrementRejected("create_account", "invalid_variant")
		return nil, err
	}
	doc, err := models.AccountToDocument(account)
	if err != nil {
		return nil, err
	}

	saved, err := s.store.Save(ctx, doc)
	if err != nil {
		// lost a race with a concurrent create of the same number
		if errors.Is(err, repository.ErrConflict) {
			s.metrics.IncrementRejected("create_account", "duplicate")
			return nil, &models.DuplicateAccountError{AccountNumber: cmd.AccountNumber}
		}
		return nil, fmt.Errorf("failed to save account %s: %w", cmd.AccountNumber, err)
	}

	created, err := models.AccountFromDocument(saved)
	if err != nil {
		return nil, err
	}
	s.metrics.IncrementAccountCreated()
	s.logger.Info("account created",
		zap.String("account_number", created.AccountNumber()),
		zap.String("account_type", string(created.Type())),
	)

	if err := s.publisher.Publish(ctx, events.AccountEventsStream, events.AccountCreated, events.AccountCreatedEvent{
		AccountNumber:     saved.AccountNumber,
		AccountHolderName: saved.AccountHolderName,
		AccountType:       string(saved.AccountType),
		Balance:           saved.Balance,
	}); err != nil {
		s.logger.Warn("failed to publish account.created event", zap.Error(err))
	}
	return created, nil
}
