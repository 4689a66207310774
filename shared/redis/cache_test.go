package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eaglebank/poa-service/shared/models"
	"github.com/eaglebank/poa-service/shared/redis/redistest"
)

func TestViewCache(t *testing.T) {
	ctx := context.Background()
	fake := redistest.New()
	cache := NewViewCache[models.AccountDocument](fake, time.Minute, nil)

	_, ok := cache.Get(ctx, "account:doc:NL1")
	assert.False(t, ok)

	doc := &models.AccountDocument{AccountNumber: "NL1", AccountHolderName: "Alice", Balance: 10, AccountType: models.AccountTypeSavings}
	cache.Set(ctx, "account:doc:NL1", doc)
	assert.Equal(t, time.Minute, fake.TTLOf("account:doc:NL1"))

	got, ok := cache.Get(ctx, "account:doc:NL1")
	require.True(t, ok)
	assert.Equal(t, doc, got)

	cache.Delete(ctx, "account:doc:NL1")
	_, ok = cache.Get(ctx, "account:doc:NL1")
	assert.False(t, ok)
}

func TestViewCache_UndecodableAndUnavailable(t *testing.T) {
	ctx := context.Background()
	fake := redistest.New()
	cache := NewViewCache[models.AccountDocument](fake, 0, nil)

	fake.Set(ctx, "bad", "not json", 0)
	_, ok := cache.Get(ctx, "bad")
	assert.False(t, ok)

	fake.Fail = true
	cache.Set(ctx, "k", &models.AccountDocument{AccountNumber: "NL1"})
	_, ok = cache.Get(ctx, "k")
	assert.False(t, ok)
}
