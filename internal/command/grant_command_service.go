package command

import (
	"context"
	"fmt"
	"time"

	"github.com/eaglebank/poa-service/internal/metrics"
	"github.com/eaglebank/poa-service/shared/cqrs"
	"github.com/eaglebank/poa-service/shared/events"
	"github.com/eaglebank/poa-service/shared/models"
	"go.uber.org/zap"
)

// AccountFinder loads a stored account; nil means no such account.
type AccountFinder interface {
	FindByID(ctx context.Context, accountNumber string) (*models.AccountDocument, error)
}

// GrantStore persists grants and assigns their IDs.
type GrantStore interface {
	Save(ctx context.Context, doc models.PowerOfAttorneyDocument) (models.PowerOfAttorneyDocument, error)
}

type GrantOption func(*GrantCommandService)

// WithHolderCheck toggles the rule that only an account's holder may grant
// access to it. It is on unless disabled.
func WithHolderCheck(enabled bool) GrantOption {
	return func(s *GrantCommandService) { s.enforceHolder = enabled }
}

// GrantCommandService creates power of attorney grants against existing
// accounts.
type GrantCommandService struct {
	accounts      AccountFinder
	grants        GrantStore
	publisher     EventPublisher
	metrics       *metrics.Metrics
	logger        *zap.Logger
	enforceHolder bool
}

func NewGrantCommandService(
	accounts AccountFinder,
	grants GrantStore,
	publisher EventPublisher,
	m *metrics.Metrics,
	logger *zap.Logger,
	opts ...GrantOption,
) *GrantCommandService {
	s := &GrantCommandService{
		accounts:      accounts,
		grants:        grants,
		publisher:     publisher,
		metrics:       m,
		logger:        logger.With(zap.String("component", "grant_command")),
		enforceHolder: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GrantAccess records a grant on the stored account named by cmd. The grant
// embeds a snapshot of that account; the account type in cmd must be a known
// variant but the stored one wins.
func (s *GrantCommandService) GrantAccess(ctx context.Context, cmd cqrs.GrantAccessCommand) (models.PowerOfAttorney, error) {
	defer s.metrics.ObserveCommand("grant_access", time.Now())

	if _, err := models.ParseAccountType(cmd.AccountType); err != nil {
		s.metrics.IncrementRejected("grant_access", "invalid_variant")
		return models.PowerOfAttorney{}, err
	}
	if _, err := models.ParseAuthorization(cmd.Authorization); err != nil {
		s.metrics.IncrementRejected("grant_access", "invalid_authorization")
		return models.PowerOfAttorney{}, err
	}

	doc, err := s.accounts.FindByID(ctx, cmd.AccountNumber)
	if err != nil {
		return models.PowerOfAttorney{}, err
	}
	if doc == nil {
		s.metrics.IncrementRejected("grant_access", "account_not_found")
		return models.PowerOfAttorney{}, &models.AccountNotFoundError{AccountNumber: cmd.AccountNumber}
	}
	account, err := models.AccountFromDocument(*doc)
	if err != nil {
		return models.PowerOfAttorney{}, fmt.Errorf("stored account %s: %w", cmd.AccountNumber, err)
	}

	if s.enforceHolder && cmd.GrantorName != account.AccountHolderName() {
		s.metrics.IncrementRejected("grant_access", "not_holder")
		return models.PowerOfAttorney{}, &models.GrantNotAllowedError{
			GrantorName:   cmd.GrantorName,
			AccountNumber: cmd.AccountNumber,
		}
	}

	grant, err := models.NewPowerOfAttorney(cmd.GrantorName, cmd.GranteeName, cmd.Authorization, account)
	if err != nil {
		return models.PowerOfAttorney{}, err
	}
	grantDoc, err := models.GrantToDocument(grant)
	if err != nil {
		return models.PowerOfAttorney{}, err
	}
	saved, err := s.grants.Save(ctx, grantDoc)
	if err != nil {
		return models.PowerOfAttorney{}, fmt.Errorf("failed to save grant for account %s: %w", cmd.AccountNumber, err)
	}
	created, err := models.GrantFromDocument(saved)
	if err != nil {
		return models.PowerOfAttorney{}, err
	}

	s.metrics.IncrementGrantCreated(string(created.Authorization))
	s.logger.Info("power of attorney granted",
		zap.String("grant_id", created.ID),
		zap.String("account_number", cmd.AccountNumber),
		zap.String("authorization", string(created.Authorization)),
	)

	if err := s.publisher.Publish(ctx, events.GrantEventsStream, events.PowerGranted, events.PowerGrantedEvent{
		GrantID:       created.ID,
		GrantorName:   created.GrantorName,
		GranteeName:   created.GranteeName,
		Authorization: string(created.Authorization),
		AccountNumber: cmd.AccountNumber,
	}); err != nil {
		s.logger.Warn("failed to publish poa.granted event", zap.Error(err))
	}
	return created, nil
}
