package cqrs

type CreateAccountCommand struct {
	AccountNumber     string
	AccountHolderName string
	AccountType       string
	InitialBalance    *float64
}

// GrantAccessCommand asks for a power of attorney over an existing account.
// AccountType is validated as a known variant; the stored account decides the
// variant that is embedded in the grant.
type GrantAccessCommand struct {
	GrantorName   string
	GranteeName   string
	AccountNumber string
	AccountType   string
	Authorization string
}
