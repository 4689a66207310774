package repository

import (
	"context"
	"time"

	"github.com/eaglebank/poa-service/shared/models"
	sharedredis "github.com/eaglebank/poa-service/shared/redis"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const accountDocKeyPrefix = "account:doc:"

// CachedAccountRepository puts Redis in front of an account store. Reads try
// the cache first and warm it on a miss; Redis failures fall through to the
// underlying store.
type CachedAccountRepository struct {
	store AccountStore
	cache *sharedredis.ViewCache[models.AccountDocument]
}

func NewCachedAccountRepository(store AccountStore, client goredis.Cmdable, ttl time.Duration, logger *zap.Logger) *CachedAccountRepository {
	return &CachedAccountRepository{
		store: store,
		cache: sharedredis.NewViewCache[models.AccountDocument](client, ttl, logger),
	}
}

func (r *CachedAccountRepository) ExistsByID(ctx context.Context, accountNumber string) (bool, error) {
	if _, ok := r.cache.Get(ctx, accountDocKeyPrefix+accountNumber); ok {
		return true, nil
	}
	return r.store.ExistsByID(ctx, accountNumber)
}

func (r *CachedAccountRepository) FindByID(ctx context.Context, accountNumber string) (*models.AccountDocument, error) {
	if doc, ok := r.cache.Get(ctx, accountDocKeyPrefix+accountNumber); ok {
		return doc, nil
	}
	doc, err := r.store.FindByID(ctx, accountNumber)
	if err != nil || doc == nil {
		return doc, err
	}
	r.Warm(ctx, *doc)
	return doc, nil
}

func (r *CachedAccountRepository) Save(ctx context.Context, doc models.AccountDocument) (models.AccountDocument, error) {
	saved, err := r.store.Save(ctx, doc)
	if err != nil {
		return models.AccountDocument{}, err
	}
	r.Warm(ctx, saved)
	return saved, nil
}

// FindAll always reads the underlying store; the cache only holds single
// documents.
func (r *CachedAccountRepository) FindAll(ctx context.Context) ([]models.AccountDocument, error) {
	return r.store.FindAll(ctx)
}

// Warm stores doc in the cache without touching the underlying store.
func (r *CachedAccountRepository) Warm(ctx context.Context, doc models.AccountDocument) {
	r.cache.Set(ctx, accountDocKeyPrefix+doc.AccountNumber, &doc)
}
