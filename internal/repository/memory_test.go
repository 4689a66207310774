package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/eaglebank/poa-service/shared/models"
	"github.com/eaglebank/poa-service/shared/utils"
)

type InMemoryStoreSuite struct {
	suite.Suite
	accounts *InMemoryAccountStore
	grants   *InMemoryGrantStore
	ctx      context.Context
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.accounts = NewInMemoryAccountStore()
	s.grants = NewInMemoryGrantStore()
	s.ctx = context.Background()
}

func accountDoc(number, holder string, t models.AccountType, balance float64) models.AccountDocument {
	return models.AccountDocument{AccountNumber: number, AccountHolderName: holder, AccountType: t, Balance: balance}
}

func (s *InMemoryStoreSuite) TestAccountLookups() {
	doc := accountDoc("NL123456", "John Doe", models.AccountTypePayment, 1000)

	s.Run("absent account", func() {
		exists, err := s.accounts.ExistsByID(s.ctx, "NL123456")
		s.Require().NoError(err)
		s.False(exists)

		found, err := s.accounts.FindByID(s.ctx, "NL123456")
		s.Require().NoError(err)
		s.Nil(found)
	})

	s.Run("saved account", func() {
		saved, err := s.accounts.Save(s.ctx, doc)
		s.Require().NoError(err)
		s.Equal(doc, saved)

		exists, err := s.accounts.ExistsByID(s.ctx, "NL123456")
		s.Require().NoError(err)
		s.True(exists)

		found, err := s.accounts.FindByID(s.ctx, "NL123456")
		s.Require().NoError(err)
		s.Require().NotNil(found)
		s.Equal(doc, *found)
	})
}

func (s *InMemoryStoreSuite) TestAccountPrimaryKey() {
	_, err := s.accounts.Save(s.ctx, accountDoc("NL1", "Alice", models.AccountTypePayment, 1))
	s.Require().NoError(err)

	_, err = s.accounts.Save(s.ctx, accountDoc("NL1", "Mallory", models.AccountTypeSavings, 2))
	s.Require().ErrorIs(err, ErrConflict)

	all, err := s.accounts.FindAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 1)
	s.Equal("Alice", all[0].AccountHolderName)
}

func (s *InMemoryStoreSuite) TestFindAllAccountsIsACopy() {
	_, err := s.accounts.Save(s.ctx, accountDoc("NL1", "Alice", models.AccountTypePayment, 1))
	s.Require().NoError(err)

	all, err := s.accounts.FindAll(s.ctx)
	s.Require().NoError(err)
	all[0].AccountHolderName = "changed"

	found, err := s.accounts.FindByID(s.ctx, "NL1")
	s.Require().NoError(err)
	s.Equal("Alice", found.AccountHolderName)
}

func (s *InMemoryStoreSuite) TestGrantSaveAssignsID() {
	saved, err := s.grants.Save(s.ctx, models.PowerOfAttorneyDocument{
		GrantorName:   "Alice",
		GranteeName:   "Bob",
		Authorization: models.AuthorizationRead,
		Account:       accountDoc("NL1", "Alice", models.AccountTypePayment, 1),
	})
	s.Require().NoError(err)
	s.True(utils.ValidateGrantID(saved.ID), "id %q", saved.ID)

	kept, err := s.grants.Save(s.ctx, models.PowerOfAttorneyDocument{ID: "poa-fixed", GranteeName: "Bob"})
	s.Require().NoError(err)
	s.Equal("poa-fixed", kept.ID)
}

func (s *InMemoryStoreSuite) TestFindByGranteeName() {
	account := accountDoc("NL1", "Alice", models.AccountTypePayment, 1)
	for _, grantee := range []string{"Bob", "Carol", "Bob"} {
		_, err := s.grants.Save(s.ctx, models.PowerOfAttorneyDocument{
			GrantorName: "Alice", GranteeName: grantee, Authorization: models.AuthorizationWrite, Account: account,
		})
		s.Require().NoError(err)
	}

	s.Run("exact match", func() {
		docs, err := s.grants.FindByGranteeName(s.ctx, "Bob")
		s.Require().NoError(err)
		s.Len(docs, 2)
	})

	s.Run("case sensitive", func() {
		docs, err := s.grants.FindByGranteeName(s.ctx, "bob")
		s.Require().NoError(err)
		s.NotNil(docs)
		s.Empty(docs)
	})

	s.Run("all grants", func() {
		docs, err := s.grants.FindAll(s.ctx)
		s.Require().NoError(err)
		s.Len(docs, 3)
		s.Equal("Carol", docs[1].GranteeName)
	})
}
