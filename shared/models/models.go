package models

import "fmt"

// AccountType tags the variant of an Account.
type AccountType string

const (
	AccountTypePayment AccountType = "PAYMENT"
	AccountTypeSavings AccountType = "SAVINGS"
)

// ParseAccountType resolves an external tag against the closed variant set.
func ParseAccountType(s string) (AccountType, error) {
	switch AccountType(s) {
	case AccountTypePayment, AccountTypeSavings:
		return AccountType(s), nil
	default:
		return "", &InvalidVariantError{Field: "accountType", Value: s}
	}
}

// Account is the shared read-only shape of every account variant. The set of
// implementations is closed: only PaymentAccount and SavingsAccount satisfy it.
type Account interface {
	AccountNumber() string
	AccountHolderName() string
	Balance() float64
	Type() AccountType

	account()
}

type accountFields struct {
	Number string
	Holder string
	Amount float64
}

func (a accountFields) AccountNumber() string     { return a.Number }
func (a accountFields) AccountHolderName() string { return a.Holder }
func (a accountFields) Balance() float64          { return a.Amount }
func (a accountFields) account()                  {}

type PaymentAccount struct{ accountFields }

func (PaymentAccount) Type() AccountType { return AccountTypePayment }

type SavingsAccount struct{ accountFields }

func (SavingsAccount) Type() AccountType { return AccountTypeSavings }

func NewPaymentAccount(number, holder string, balance float64) PaymentAccount {
	return PaymentAccount{accountFields{Number: number, Holder: holder, Amount: balance}}
}

func NewSavingsAccount(number, holder string, balance float64) SavingsAccount {
	return SavingsAccount{accountFields{Number: number, Holder: holder, Amount: balance}}
}

// NewAccount builds an account from request input. A nil balance means the
// caller omitted it and the account opens at 0.0.
func NewAccount(number, holder, accountType string, balance *float64) (Account, error) {
	t, err := ParseAccountType(accountType)
	if err != nil {
		return nil, err
	}
	amount := 0.0
	if balance != nil {
		amount = *balance
	}
	return newAccountOfType(t, number, holder, amount)
}

func newAccountOfType(t AccountType, number, holder string, balance float64) (Account, error) {
	switch t {
	case AccountTypePayment:
		return NewPaymentAccount(number, holder, balance), nil
	case AccountTypeSavings:
		return NewSavingsAccount(number, holder, balance), nil
	default:
		return nil, &InvalidVariantError{Field: "accountType", Value: string(t)}
	}
}

// Authorization is the access level a grant confers.
type Authorization string

const (
	AuthorizationRead  Authorization = "READ"
	AuthorizationWrite Authorization = "WRITE"
)

func ParseAuthorization(s string) (Authorization, error) {
	switch Authorization(s) {
	case AuthorizationRead, AuthorizationWrite:
		return Authorization(s), nil
	default:
		return "", &InvalidAuthorizationError{Field: "authorization", Value: s}
	}
}

// PowerOfAttorney authorizes a grantee to access a grantor's account. Account
// is a snapshot taken when the grant was created.
type PowerOfAttorney struct {
	ID            string
	GrantorName   string
	GranteeName   string
	Authorization Authorization
	Account       Account
}

// NewPowerOfAttorney copies the request fields onto a grant for account.
func NewPowerOfAttorney(grantor, grantee, authorization string, account Account) (PowerOfAttorney, error) {
	auth, err := ParseAuthorization(authorization)
	if err != nil {
		return PowerOfAttorney{}, err
	}
	if account == nil {
		return PowerOfAttorney{}, fmt.Errorf("power of attorney requires an account")
	}
	return PowerOfAttorney{
		GrantorName:   grantor,
		GranteeName:   grantee,
		Authorization: auth,
		Account:       account,
	}, nil
}
