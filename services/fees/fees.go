// Package fees computes the kiosk service fee.
//
// The fee is 10.00 up to and including 1,000.00. Every started 500.00 above
// that adds 5.00, with no upper bound.
package fees

import (
	// Local Packages
	models "cash-kiosk/models"

	// External Packages
	"github.com/shopspring/decimal"
)

var (
	baseFee       = decimal.RequireFromString("10.00")
	baseThreshold = decimal.RequireFromString("1000.00")
	stepSize      = decimal.RequireFromString("500.00")
	stepFee       = decimal.RequireFromString("5.00")
)

// ComputeFee returns the service fee for amount.
func ComputeFee(amount decimal.Decimal) decimal.Decimal {
	if amount.LessThanOrEqual(baseThreshold) {
		return baseFee
	}
	// QuoRem at precision 0 is exact, unlike Div
	increments, rem := amount.Sub(baseThreshold).QuoRem(stepSize, 0)
	if rem.IsPositive() {
		increments = increments.Add(decimal.NewFromInt(1))
	}
	return baseFee.Add(stepFee.Mul(increments))
}

// ComputeTotal returns amount plus its fee.
func ComputeTotal(amount decimal.Decimal) decimal.Decimal {
	return amount.Add(ComputeFee(amount))
}

// Consistent reports whether req's fee and total are the ones derived from its amount.
func Consistent(req models.TransactionRequest) bool {
	return req.Fee.Equal(ComputeFee(req.Amount)) && req.Total.Equal(ComputeTotal(req.Amount))
}
