package models

import "time"

// JournalTransaction is the stored form of a FinalizedTransaction. Money is
// kept as fixed two-decimal strings so no precision is lost in BSON.
type JournalTransaction struct {
	TxID            string    `json:"transaction_id" bson:"_id"`
	TransactionType string    `json:"transaction_type" bson:"transaction_type"`
	Provider        string    `json:"provider" bson:"provider"`
	AccountName     string    `json:"account_name" bson:"account_name"`
	AccountNumber   string    `json:"account_number" bson:"account_number"`
	Amount          string    `json:"amount" bson:"amount"`
	Fee             string    `json:"fee" bson:"fee"`
	Total           string    `json:"total" bson:"total"`
	ReferenceNumber string    `json:"reference_number" bson:"reference_number"`
	Timestamp       time.Time `json:"timestamp" bson:"timestamp"`
	Status          string    `json:"status" bson:"status"`
	Reason          string    `json:"reason,omitempty" bson:"reason,omitempty"`
	Synced          bool      `json:"synced" bson:"synced"`
	SyncedAt        time.Time `json:"synced_at,omitempty" bson:"synced_at,omitempty"`
}

func (t *FinalizedTransaction) Transform() JournalTransaction {
	return JournalTransaction{
		TxID:            t.ID,
		TransactionType: string(t.Kind),
		Provider:        string(t.Provider),
		AccountName:     t.AccountName,
		AccountNumber:   t.AccountNumber,
		Amount:          t.Amount.StringFixed(2),
		Fee:             t.Fee.StringFixed(2),
		Total:           t.Total.StringFixed(2),
		ReferenceNumber: t.ReferenceNumber,
		Timestamp:       t.Timestamp.UTC(),
		Status:          string(t.Outcome.Status),
		Reason:          t.Outcome.Reason,
		Synced:          t.Outcome.Synced(),
	}
}
