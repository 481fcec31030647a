package models

import (
	// Go Internal Packages
	"encoding/json"
	"time"

	// Local Packages
	errors "cash-kiosk/errors"

	// External Packages
	"github.com/shopspring/decimal"
)

// TransactionKind is the direction of a kiosk transaction.
type TransactionKind string

const (
	CashIn  TransactionKind = "Cash-In"
	CashOut TransactionKind = "Cash-Out"
)

func (k TransactionKind) Valid() bool {
	return k == CashIn || k == CashOut
}

// Provider is the branded context a transaction is recorded under. It only
// affects display.
type Provider string

const (
	ProviderGCash Provider = "GCash"
	ProviderMaya  Provider = "Maya"
)

func (p Provider) Valid() bool {
	return p == ProviderGCash || p == ProviderMaya
}

// TransactionRequest is a validated form submission. Fee and Total are
// always derived from Amount.
type TransactionRequest struct {
	Kind          TransactionKind `json:"type"`
	AccountName   string          `json:"account_name"`
	AccountNumber string          `json:"account_number"`
	Amount        decimal.Decimal `json:"amount"`
	Fee           decimal.Decimal `json:"fee"`
	Total         decimal.Decimal `json:"total"`
	Provider      Provider        `json:"provider"`
}

// Submission is what the workflow hands to the record-keeping service.
type Submission struct {
	TransactionRequest
	ID              string    `json:"transaction_id"`
	ReferenceNumber string    `json:"reference_number"`
	Timestamp       time.Time `json:"timestamp"`
}

type OutcomeStatus string

const (
	OutcomeSucceeded OutcomeStatus = "succeeded"
	OutcomeFailed    OutcomeStatus = "failed"
	OutcomeSkipped   OutcomeStatus = "skipped"
)

// Outcome is the result of a submission attempt.
type Outcome struct {
	Status OutcomeStatus   `json:"status"`
	Reason string          `json:"reason,omitempty"`
	Ack    json.RawMessage `json:"ack,omitempty"`
}

func Succeeded(ack json.RawMessage) Outcome {
	return Outcome{Status: OutcomeSucceeded, Ack: ack}
}

func Failed(reason string) Outcome {
	return Outcome{Status: OutcomeFailed, Reason: reason}
}

func Skipped() Outcome {
	return Outcome{Status: OutcomeSkipped}
}

// Synced reports whether the record reached the record-keeping service.
func (o Outcome) Synced() bool {
	return o.Status == OutcomeSucceeded
}

// Err is nil for a synced outcome and a SubmissionFailed error otherwise.
func (o Outcome) Err() error {
	switch o.Status {
	case OutcomeSucceeded:
		return nil
	case OutcomeSkipped:
		return errors.SubmissionFailedErr("not submitted: gateway disabled")
	default:
		return errors.SubmissionFailedErr(o.Reason)
	}
}

// FinalizedTransaction is the terminal record of a workflow.
type FinalizedTransaction struct {
	Submission
	Outcome Outcome `json:"outcome"`
}
