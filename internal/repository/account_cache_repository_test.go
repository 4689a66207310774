package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eaglebank/poa-service/shared/models"
	"github.com/eaglebank/poa-service/shared/redis/redistest"
)

type countingStore struct {
	*InMemoryAccountStore
	finds int
}

func (s *countingStore) FindByID(ctx context.Context, id string) (*models.AccountDocument, error) {
	s.finds++
	return s.InMemoryAccountStore.FindByID(ctx, id)
}

func TestCachedAccountRepository_SaveWarmsCache(t *testing.T) {
	ctx := context.Background()
	fake := redistest.New()
	store := &countingStore{InMemoryAccountStore: NewInMemoryAccountStore()}
	repo := NewCachedAccountRepository(store, fake, time.Minute, nil)

	doc := accountDoc("NL123456", "John Doe", models.AccountTypePayment, 1000)
	_, err := repo.Save(ctx, doc)
	require.NoError(t, err)

	raw, ok := fake.Value("account:doc:NL123456")
	require.True(t, ok)
	var cached models.AccountDocument
	require.NoError(t, json.Unmarshal([]byte(raw), &cached))
	assert.Equal(t, doc, cached)
	assert.Equal(t, time.Minute, fake.TTLOf("account:doc:NL123456"))

	found, err := repo.FindByID(ctx, "NL123456")
	require.NoError(t, err)
	assert.Equal(t, doc, *found)
	assert.Zero(t, store.finds)
}

func TestCachedAccountRepository_MissReadsThrough(t *testing.T) {
	ctx := context.Background()
	fake := redistest.New()
	store := &countingStore{InMemoryAccountStore: NewInMemoryAccountStore()}
	doc := accountDoc("NL1", "Alice", models.AccountTypeSavings, -5)
	_, err := store.Save(ctx, doc)
	require.NoError(t, err)

	repo := NewCachedAccountRepository(store, fake, 0, nil)

	found, err := repo.FindByID(ctx, "NL1")
	require.NoError(t, err)
	assert.Equal(t, doc, *found)
	assert.Equal(t, 1, store.finds)

	_, err = repo.FindByID(ctx, "NL1")
	require.NoError(t, err)
	assert.Equal(t, 1, store.finds)

	missing, err := repo.FindByID(ctx, "NL000000")
	require.NoError(t, err)
	assert.Nil(t, missing)
	_, cached := fake.Value("account:doc:NL000000")
	assert.False(t, cached)
}

func TestCachedAccountRepository_RedisDown(t *testing.T) {
	ctx := context.Background()
	fake := redistest.New()
	fake.Fail = true
	repo := NewCachedAccountRepository(NewInMemoryAccountStore(), fake, 0, nil)

	doc := accountDoc("NL1", "Alice", models.AccountTypePayment, 1)
	_, err := repo.Save(ctx, doc)
	require.NoError(t, err)

	exists, err := repo.ExistsByID(ctx, "NL1")
	require.NoError(t, err)
	assert.True(t, exists)

	found, err := repo.FindByID(ctx, "NL1")
	require.NoError(t, err)
	assert.Equal(t, doc, *found)
}

func TestCachedAccountRepository_ConflictIsNotCached(t *testing.T) {
	ctx := context.Background()
	fake := redistest.New()
	repo := NewCachedAccountRepository(NewInMemoryAccountStore(), fake, 0, nil)

	_, err := repo.Save(ctx, accountDoc("NL1", "Alice", models.AccountTypePayment, 1))
	require.NoError(t, err)
	_, err = repo.Save(ctx, accountDoc("NL1", "Mallory", models.AccountTypePayment, 9))
	require.ErrorIs(t, err, ErrConflict)

	found, err := repo.FindByID(ctx, "NL1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", found.AccountHolderName)
}
