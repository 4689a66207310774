package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/eaglebank/poa-service/shared/models"
	"github.com/eaglebank/poa-service/shared/utils"
)

// InMemoryAccountStore keeps account documents in insertion order. It enforces
// the same primary key as the Postgres table.
type InMemoryAccountStore struct {
	mu    sync.RWMutex
	byID  map[string]int
	order []models.AccountDocument
}

func NewInMemoryAccountStore() *InMemoryAccountStore {
	return &InMemoryAccountStore{byID: make(map[string]int)}
}

func (s *InMemoryAccountStore) ExistsByID(_ context.Context, accountNumber string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byID[accountNumber]
	return ok, nil
}

func (s *InMemoryAccountStore) FindByID(_ context.Context, accountNumber string) (*models.AccountDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[accountNumber]
	if !ok {
		return nil, nil
	}
	doc := s.order[i]
	return &doc, nil
}

func (s *InMemoryAccountStore) Save(_ context.Context, doc models.AccountDocument) (models.AccountDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[doc.AccountNumber]; ok {
		return models.AccountDocument{}, fmt.Errorf("account %s: %w", doc.AccountNumber, ErrConflict)
	}
	s.byID[doc.AccountNumber] = len(s.order)
	s.order = append(s.order, doc)
	return doc, nil
}

func (s *InMemoryAccountStore) FindAll(context.Context) ([]models.AccountDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.AccountDocument{}, s.order...), nil
}

// InMemoryGrantStore keeps grant documents in insertion order.
type InMemoryGrantStore struct {
	mu     sync.RWMutex
	grants []models.PowerOfAttorneyDocument
}

func NewInMemoryGrantStore() *InMemoryGrantStore {
	return &InMemoryGrantStore{}
}

func (s *InMemoryGrantStore) Save(_ context.Context, doc models.PowerOfAttorneyDocument) (models.PowerOfAttorneyDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc.ID == "" {
		doc.ID = utils.GenerateID("poa")
	}
	s.grants = append(s.grants, doc)
	return doc, nil
}

func (s *InMemoryGrantStore) FindByGranteeName(_ context.Context, granteeName string) ([]models.PowerOfAttorneyDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := []models.PowerOfAttorneyDocument{}
	for _, g := range s.grants {
		if g.GranteeName == granteeName {
			docs = append(docs, g)
		}
	}
	return docs, nil
}

func (s *InMemoryGrantStore) FindAll(context.Context) ([]models.PowerOfAttorneyDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.PowerOfAttorneyDocument{}, s.grants...), nil
}
