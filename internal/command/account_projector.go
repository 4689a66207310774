package command

import (
	"context"

	"github.com/eaglebank/poa-service/shared/events"
	"github.com/eaglebank/poa-service/shared/models"
	"go.uber.org/zap"
)

// AccountCacheWarmer stores an account document in the read cache.
type AccountCacheWarmer interface {
	Warm(ctx context.Context, doc models.AccountDocument)
}

// AccountViewProjector keeps the account read cache populated from
// account.created events, so instances that did not serve the create still
// answer lookups from Redis.
type AccountViewProjector struct {
	cache  AccountCacheWarmer
	logger *zap.Logger
}

func NewAccountViewProjector(cache AccountCacheWarmer, logger *zap.Logger) *AccountViewProjector {
	return &AccountViewProjector{cache: cache, logger: logger.With(zap.String("component", "account_projector"))}
}

// HandleAccountEvent is an events.Handler. Events other than account.created
// are acknowledged and ignored.
func (p *AccountViewProjector) HandleAccountEvent(ctx context.Context, event events.Event) error {
	if event.Type != events.AccountCreated {
		return nil
	}
	var data events.AccountCreatedEvent
	if err := event.DecodeData(&data); err != nil {
		return err
	}
	accountType, err := models.ParseAccountType(data.AccountType)
	if err != nil {
		// redelivery cannot fix a bad payload
		p.logger.Error("dropping account.created event", zap.String("account_number", data.AccountNumber), zap.Error(err))
		return nil
	}
	p.cache.Warm(ctx, models.AccountDocument{
		AccountNumber:     data.AccountNumber,
		AccountHolderName: data.AccountHolderName,
		Balance:           data.Balance,
		AccountType:       accountType,
	})
	return nil
}
