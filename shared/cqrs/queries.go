package cqrs

// ---------- Account queries ----------

// GetAccountQuery fetches a single account by account number.
type GetAccountQuery struct {
	AccountNumber string
}

// ListAccountsQuery fetches every stored account.
type ListAccountsQuery struct{}

// ---------- Grant queries ----------

// FindGrantsQuery fetches grants whose grantee name matches exactly.
type FindGrantsQuery struct {
	GranteeName string
}

// ListGrantsQuery fetches every stored grant.
type ListGrantsQuery struct{}
