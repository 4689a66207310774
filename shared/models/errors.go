package models

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is. Each typed error below matches exactly one.
var (
	ErrDuplicateAccount     = errors.New("duplicate account")
	ErrAccountNotFound      = errors.New("account not found")
	ErrInvalidVariant       = errors.New("invalid account type")
	ErrInvalidAuthorization = errors.New("invalid authorization")
	ErrGrantNotAllowed      = errors.New("grant not allowed")
)

type DuplicateAccountError struct {
	AccountNumber string
}

func (e *DuplicateAccountError) Error() string {
	return "Account already exists with number: " + e.AccountNumber
}

func (e *DuplicateAccountError) Is(target error) bool { return target == ErrDuplicateAccount }

type AccountNotFoundError struct {
	AccountNumber string
}

func (e *AccountNotFoundError) Error() string {
	return "No account found with number: " + e.AccountNumber
}

func (e *AccountNotFoundError) Is(target error) bool { return target == ErrAccountNotFound }

type InvalidVariantError struct {
	Field string
	Value string
}

func (e *InvalidVariantError) Error() string {
	return fmt.Sprintf("%s must be one of PAYMENT, SAVINGS; got %q", e.Field, e.Value)
}

func (e *InvalidVariantError) Is(target error) bool { return target == ErrInvalidVariant }

type InvalidAuthorizationError struct {
	Field string
	Value string
}

func (e *InvalidAuthorizationError) Error() string {
	return fmt.Sprintf("%s must be one of READ, WRITE; got %q", e.Field, e.Value)
}

func (e *InvalidAuthorizationError) Is(target error) bool { return target == ErrInvalidAuthorization }

// GrantNotAllowedError rejects a grant whose grantor does not hold the account.
type GrantNotAllowedError struct {
	GrantorName   string
	AccountNumber string
}

func (e *GrantNotAllowedError) Error() string {
	return fmt.Sprintf("The grantor %s is not the accountHolder for account %s", e.GrantorName, e.AccountNumber)
}

func (e *GrantNotAllowedError) Is(target error) bool { return target == ErrGrantNotAllowed }
