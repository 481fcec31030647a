package fees_test

import (
	"testing"

	models "cash-kiosk/models"
	"cash-kiosk/services/fees"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeFee(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{amount: "0.01", want: "10.00"},
		{amount: "1.00", want: "10.00"},
		{amount: "999.99", want: "10.00"},
		{amount: "1000.00", want: "10.00"},
		{amount: "1000.01", want: "15.00"},
		{amount: "1500.00", want: "15.00"},
		{amount: "1500.01", want: "20.00"},
		{amount: "2000.00", want: "20.00"},
		{amount: "2000.01", want: "25.00"},
		{amount: "2500.00", want: "25.00"},
		{amount: "2500.01", want: "30.00"},
		{amount: "50000.00", want: "500.00"},
		{amount: "123456789012345.67", want: "1234567890125.00"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			got := fees.ComputeFee(d(tt.amount))
			assert.True(t, d(tt.want).Equal(got), "fee for %s: want %s, got %s", tt.amount, tt.want, got)
		})
	}
}

func TestComputeFee_BeyondDivisionPrecision(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{amount: "1000.00000000000000000001", want: "15.00"},
		{amount: "1500.000000000000000000000000000001", want: "20.00"},
		{amount: "1499.99999999999999999999", want: "15.00"},
		{amount: "2000.00000000000000000000", want: "20.00"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			got := fees.ComputeFee(d(tt.amount))
			assert.True(t, d(tt.want).Equal(got), "fee for %s: want %s, got %s", tt.amount, tt.want, got)
		})
	}
}

func TestComputeFee_Monotonic(t *testing.T) {
	step := d("0.05")
	prev := fees.ComputeFee(d("1.00"))
	for amount := d("1.00"); amount.LessThan(d("3000.00")); amount = amount.Add(step) {
		fee := fees.ComputeFee(amount)
		assert.False(t, fee.LessThan(prev), "fee decreased at %s", amount)
		prev = fee
	}
}

func TestComputeTotal(t *testing.T) {
	for _, amount := range []string{"1.00", "1000.00", "1000.01", "2500.00", "0.10"} {
		a := d(amount)
		assert.True(t, a.Add(fees.ComputeFee(a)).Equal(fees.ComputeTotal(a)), amount)
	}
	assert.Equal(t, "2020.00", fees.ComputeTotal(d("2000.00")).StringFixed(2))
	assert.Equal(t, "2525.00", fees.ComputeTotal(d("2500.00")).StringFixed(2))
	assert.Equal(t, "10.30", fees.ComputeTotal(d("0.30")).StringFixed(2))
}

func TestConsistent(t *testing.T) {
	req := models.TransactionRequest{Amount: d("2000.00"), Fee: d("20.00"), Total: d("2020.00")}
	assert.True(t, fees.Consistent(req))

	req.Fee = d("0.00")
	assert.False(t, fees.Consistent(req))

	req.Fee = d("20.00")
	req.Total = d("2000.00")
	assert.False(t, fees.Consistent(req))
}
