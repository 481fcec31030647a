// Package validator turns raw form input into a TransactionRequest.
package validator

import (
	// Go Internal Packages
	"regexp"
	"strings"

	// Local Packages
	errors "cash-kiosk/errors"
	models "cash-kiosk/models"
	fees "cash-kiosk/services/fees"
	utils "cash-kiosk/utils"

	// External Packages
	"github.com/shopspring/decimal"
)

const (
	FieldKind          = "type"
	FieldAccountName   = "accountName"
	FieldAccountNumber = "accountNumber"
	FieldAmount        = "amount"
)

var (
	accountNumberPattern = regexp.MustCompile(`^09\d{9}$`)
	amountPattern        = regexp.MustCompile(`^\d+(\.\d+)?$`)
	minAmount            = decimal.RequireFromString("1.00")
)

// maxAmountLength bounds the input before it reaches the decimal parser.
const maxAmountLength = 32

// RawFields is the unparsed form input.
type RawFields struct {
	Kind          string
	AccountName   string
	AccountNumber string
	Amount        string
}

type Validator struct {
	provider models.Provider
}

// New returns a validator stamping provider on every request.
func New(provider models.Provider) *Validator {
	return &Validator{provider: provider}
}

func (v *Validator) Provider() models.Provider {
	return v.provider
}

// Validate checks every field independently. On failure the returned error
// is a *errors.ValidationErrors listing each invalid field.
func (v *Validator) Validate(raw RawFields) (models.TransactionRequest, error) {
	ve := errors.ValidationErrs()

	kind, ok := ParseKind(raw.Kind)
	if !ok {
		ve.AddKind(FieldKind, errors.InvalidFormat, "type must be Cash-In or Cash-Out")
	}

	name := strings.TrimSpace(raw.AccountName)
	if name == "" {
		ve.AddKind(FieldAccountName, errors.RequiredField, "Account Name is required")
	}

	number := utils.StripSeparators(raw.AccountNumber)
	if !accountNumberPattern.MatchString(number) {
		ve.AddKind(FieldAccountNumber, errors.InvalidFormat, "Must be 11 digits starting with 09")
	}

	amount, msg := parseAmount(raw.Amount)
	if msg != "" {
		ve.AddKind(FieldAmount, errors.InvalidAmount, msg)
	}

	if err := ve.Err(); err != nil {
		return models.TransactionRequest{}, err
	}

	amount = amount.Round(2)
	return models.TransactionRequest{
		Kind:          kind,
		AccountName:   name,
		AccountNumber: number,
		Amount:        amount,
		Fee:           fees.ComputeFee(amount),
		Total:         fees.ComputeTotal(amount),
		Provider:      v.provider,
	}, nil
}

// parseAmount accepts plain decimal notation only. Exponents are rejected
// so the parsed value stays as long as what the operator typed.
func parseAmount(s string) (decimal.Decimal, string) {
	s = strings.TrimSpace(s)
	if len(s) > maxAmountLength {
		return decimal.Decimal{}, "Amount is too long"
	}
	if !amountPattern.MatchString(s) {
		return decimal.Decimal{}, "Amount must be a number"
	}
	amount, err := decimal.NewFromString(s)
	switch {
	case err != nil:
		return decimal.Decimal{}, "Amount must be a number"
	case amount.LessThan(minAmount):
		return decimal.Decimal{}, "Amount must be at least 1.00"
	case !amount.Equal(amount.Round(2)):
		return decimal.Decimal{}, "Amount cannot have more than 2 decimal places"
	}
	return amount, ""
}

// ParseKind accepts the labels an operator is likely to type. Empty input
// defaults to Cash-In.
func ParseKind(s string) (models.TransactionKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cash-in", "cashin", "cash in", "in":
		return models.CashIn, true
	case "cash-out", "cashout", "cash out", "out":
		return models.CashOut, true
	}
	return "", false
}
