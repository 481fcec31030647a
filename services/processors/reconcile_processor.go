package processors

import (
	// Go Internal Packages
	"context"
	"encoding/json"
	"fmt"

	// Local Packages
	models "cash-kiosk/models"
	fees "cash-kiosk/services/fees"

	// External Packages
	"go.uber.org/zap"
)

// ReconcileProcessor resubmits completed transactions that never reached
// the record-keeping service. Each record gets one attempt per delivery;
// the ones that still fail are dead-lettered.
type ReconcileProcessor struct {
	Logger  *zap.Logger
	Gateway Gateway
	Journal Journal
	DLQ     DeadLetterQueue
}

func NewReconcileProcessor(logger *zap.Logger, gateway Gateway, journal Journal, dlq DeadLetterQueue) *ReconcileProcessor {
	return &ReconcileProcessor{Logger: logger, Gateway: gateway, Journal: journal, DLQ: dlq}
}

// ProcessRecords stops at the first record whose result could not be
// stored, so the batch is not committed and will be redelivered.
func (p *ReconcileProcessor) ProcessRecords(ctx context.Context, records []models.Record) error {
	for _, record := range records {
		if err := p.ProcessRecord(ctx, record); err != nil {
			return err
		}
	}
	return nil
}

func (p *ReconcileProcessor) ProcessRecord(ctx context.Context, record models.Record) error {
	var tx models.FinalizedTransaction
	if err := json.Unmarshal(record.Value, &tx); err != nil {
		p.Logger.Error("failed to unmarshal transaction", zap.ByteString("key", record.Key), zap.Error(err))
		return p.deadLetter(ctx, record, fmt.Sprintf("undecodable record: %v", err))
	}

	if tx.Outcome.Synced() {
		return nil
	}
	if !fees.Consistent(tx.TransactionRequest) {
		return p.deadLetter(ctx, record, "fee and total do not match amount")
	}

	outcome := p.Gateway.Submit(ctx, tx.Submission)
	if err := outcome.Err(); err != nil {
		return p.deadLetter(ctx, record, err.Error())
	}

	if err := p.Journal.MarkSynced(ctx, tx.ID, outcome); err != nil {
		return fmt.Errorf("failed to mark transaction %s synced: %w", tx.ID, err)
	}
	// An earlier delivery may have dead-lettered it
	if err := p.DLQ.Remove(ctx, tx.ID); err != nil {
		p.Logger.Warn("failed to clear dead letter", zap.String("transaction_id", tx.ID), zap.Error(err))
	}
	p.Logger.Info("reconciled transaction", zap.String("transaction_id", tx.ID))
	return nil
}

func (p *ReconcileProcessor) deadLetter(ctx context.Context, record models.Record, reason string) error {
	if err := p.DLQ.Send(ctx, record, reason); err != nil {
		return fmt.Errorf("failed to dead-letter record %s: %w", record.Key, err)
	}
	return nil
}
