// Package kiosk ties the workflow to its validator, receipt projector and
// the optional recorders that keep a copy of every completed transaction.
package kiosk

import (
	// Go Internal Packages
	"context"

	// Local Packages
	errors "cash-kiosk/errors"
	models "cash-kiosk/models"
	receipt "cash-kiosk/services/receipt"
	validator "cash-kiosk/services/validator"
	workflow "cash-kiosk/services/workflow"
	utils "cash-kiosk/utils"

	// External Packages
	"go.uber.org/zap"
)

type Option func(*Session)

func WithJournal(j Journal) Option {
	return func(s *Session) { s.journal = j }
}

func WithEventPublisher(p EventPublisher) Option {
	return func(s *Session) { s.events = p }
}

type Session struct {
	logger    *zap.Logger
	validator *validator.Validator
	machine   *workflow.Machine
	projector *receipt.Projector
	journal   Journal
	events    EventPublisher
}

func NewSession(logger *zap.Logger, v *validator.Validator, m *workflow.Machine, p *receipt.Projector, opts ...Option) *Session {
	s := &Session{logger: logger, validator: v, machine: m, projector: p}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) Step() workflow.Step {
	return s.machine.Step()
}

func (s *Session) Provider() models.Provider {
	return s.validator.Provider()
}

// Submit validates the form and moves to review. Field errors come back
// as *errors.ValidationErrors and leave the session at input.
func (s *Session) Submit(raw validator.RawFields) (receipt.Summary, error) {
	if step := s.machine.Step(); step != workflow.StepInput {
		return receipt.Summary{}, errors.IllegalTransitionErr("submit form", step.String())
	}
	req, err := s.validator.Validate(raw)
	if err != nil {
		return receipt.Summary{}, err
	}
	if err := s.machine.SubmitForm(req); err != nil {
		return receipt.Summary{}, err
	}
	return s.projector.Summarize(req), nil
}

// Summary formats the record under review or verification.
func (s *Session) Summary() (receipt.Summary, bool) {
	req, ok := s.machine.Request()
	if !ok {
		return receipt.Summary{}, false
	}
	return s.projector.Summarize(req), true
}

func (s *Session) Confirm() error {
	return s.machine.ConfirmReview()
}

func (s *Session) CancelReview() error {
	return s.machine.CancelReview()
}

func (s *Session) CancelVerification() error {
	return s.machine.CancelVerification()
}

// Finalize submits the record and returns its receipt. The receipt is
// produced even when the submission failed; its Status says so.
func (s *Session) Finalize(ctx context.Context, referenceNumber string) (receipt.Receipt, error) {
	if err := s.machine.Finalize(ctx, referenceNumber); err != nil {
		return receipt.Receipt{}, err
	}

	tx, ok := s.machine.Finalized()
	if !ok {
		return receipt.Receipt{}, errors.E(errors.Other, "finalized transaction missing", nil)
	}

	fields := []zap.Field{
		zap.String("transaction_id", tx.ID),
		zap.String("type", string(tx.Kind)),
		zap.String("provider", string(tx.Provider)),
		zap.String("account_number", utils.MaskAccountNumber(tx.AccountNumber)),
		zap.String("total", tx.Total.StringFixed(2)),
		zap.String("outcome", string(tx.Outcome.Status)),
	}
	if err := tx.Outcome.Err(); err != nil {
		s.logger.Warn("transaction finalized without sync", append(fields, zap.Error(err))...)
	} else {
		s.logger.Info("transaction finalized", fields...)
	}

	s.record(ctx, tx)
	return s.projector.Project(tx), nil
}

// Receipt re-projects the completed transaction, e.g. for a reprint.
func (s *Session) Receipt() (receipt.Receipt, bool) {
	tx, ok := s.machine.Finalized()
	if !ok {
		return receipt.Receipt{}, false
	}
	return s.projector.Project(tx), true
}

func (s *Session) NewTransaction() error {
	return s.machine.NewTransaction()
}

// record never changes the outcome of the workflow.
func (s *Session) record(ctx context.Context, tx models.FinalizedTransaction) {
	if s.journal != nil {
		if err := s.journal.InsertTransaction(ctx, tx); err != nil {
			s.logger.Error("failed to journal transaction", zap.String("transaction_id", tx.ID), zap.Error(err))
		}
	}
	if s.events != nil {
		if err := s.events.PublishCompleted(ctx, tx); err != nil {
			s.logger.Error("failed to publish transaction", zap.String("transaction_id", tx.ID), zap.Error(err))
		}
	}
}
