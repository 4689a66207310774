package models

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// AccountView is the outbound projection of an account. Enums and the balance
// are rendered as strings.
type AccountView struct {
	AccountNumber     string `json:"accountNumber"`
	AccountHolderName string `json:"accountHolderName"`
	AccountType       string `json:"accountType"`
	Balance           string `json:"balance"`
}

// PowerOfAttorneyView is the outbound projection of a grant.
type PowerOfAttorneyView struct {
	ID            string      `json:"id"`
	GrantorName   string      `json:"grantorName"`
	GranteeName   string      `json:"granteeName"`
	Authorization string      `json:"authorization"`
	Account       AccountView `json:"account"`
}

func ToAccountView(a Account) AccountView {
	return AccountView{
		AccountNumber:     a.AccountNumber(),
		AccountHolderName: a.AccountHolderName(),
		AccountType:       string(a.Type()),
		Balance:           FormatBalance(a.Balance()),
	}
}

func ToPowerOfAttorneyView(p PowerOfAttorney) PowerOfAttorneyView {
	return PowerOfAttorneyView{
		ID:            p.ID,
		GrantorName:   p.GrantorName,
		GranteeName:   p.GranteeName,
		Authorization: string(p.Authorization),
		Account:       ToAccountView(p.Account),
	}
}

// FormatBalance renders the shortest decimal that round-trips to b, always
// with a fractional part: 1000 -> "1000.0", -0.5 -> "-0.5".
func FormatBalance(b float64) string {
	switch {
	case math.IsNaN(b):
		return "NaN"
	case math.IsInf(b, 1):
		return "Infinity"
	case math.IsInf(b, -1):
		return "-Infinity"
	}
	s := decimal.NewFromFloat(b).String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
