package models

import "fmt"

// AccountDocument is the stored form of an account. AccountType is kept
// explicitly because the store cannot discriminate variants by Go type.
type AccountDocument struct {
	AccountNumber     string      `json:"accountNumber"`
	AccountHolderName string      `json:"accountHolderName"`
	Balance           float64     `json:"balance"`
	AccountType       AccountType `json:"accountType"`
}

// PowerOfAttorneyDocument is the stored form of a grant. The account is
// embedded as a document, not referenced by number.
type PowerOfAttorneyDocument struct {
	ID            string          `json:"id,omitempty"`
	GrantorName   string          `json:"grantorName"`
	GranteeName   string          `json:"granteeName"`
	Authorization Authorization   `json:"authorization"`
	Account       AccountDocument `json:"account"`
}

func AccountToDocument(a Account) (AccountDocument, error) {
	switch acc := a.(type) {
	case PaymentAccount:
		return AccountDocument{
			AccountNumber:     acc.AccountNumber(),
			AccountHolderName: acc.AccountHolderName(),
			Balance:           acc.Balance(),
			AccountType:       AccountTypePayment,
		}, nil
	case SavingsAccount:
		return AccountDocument{
			AccountNumber:     acc.AccountNumber(),
			AccountHolderName: acc.AccountHolderName(),
			Balance:           acc.Balance(),
			AccountType:       AccountTypeSavings,
		}, nil
	default:
		return AccountDocument{}, fmt.Errorf("unknown account type %T", a)
	}
}

func AccountFromDocument(doc AccountDocument) (Account, error) {
	return newAccountOfType(doc.AccountType, doc.AccountNumber, doc.AccountHolderName, doc.Balance)
}

func GrantToDocument(p PowerOfAttorney) (PowerOfAttorneyDocument, error) {
	account, err := AccountToDocument(p.Account)
	if err != nil {
		return PowerOfAttorneyDocument{}, err
	}
	return PowerOfAttorneyDocument{
		ID:            p.ID,
		GrantorName:   p.GrantorName,
		GranteeName:   p.GranteeName,
		Authorization: p.Authorization,
		Account:       account,
	}, nil
}

func GrantFromDocument(doc PowerOfAttorneyDocument) (PowerOfAttorney, error) {
	account, err := AccountFromDocument(doc.Account)
	if err != nil {
		return PowerOfAttorney{}, fmt.Errorf("grant %s: %w", doc.ID, err)
	}
	auth, err := ParseAuthorization(string(doc.Authorization))
	if err != nil {
		return PowerOfAttorney{}, fmt.Errorf("grant %s: %w", doc.ID, err)
	}
	return PowerOfAttorney{
		ID:            doc.ID,
		GrantorName:   doc.GrantorName,
		GranteeName:   doc.GranteeName,
		Authorization: auth,
		Account:       account,
	}, nil
}
