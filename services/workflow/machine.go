// Package workflow owns the kiosk transaction workflow: the current step,
// the in-flight record and the single submission made at finalize.
//
// Steps advance Input -> Review -> Verification -> Completed. Review may go
// back to Input (discarding the record) and Verification may go back to
// Review (keeping it). Completed only leaves through NewTransaction.
package workflow

import (
	// Go Internal Packages
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	// Local Packages
	errors "cash-kiosk/errors"
	models "cash-kiosk/models"
	fees "cash-kiosk/services/fees"

	// External Packages
	"github.com/google/uuid"
)

const (
	opSubmitForm         = "submit form"
	opConfirmReview      = "confirm review"
	opCancelReview       = "cancel review"
	opCancelVerification = "cancel verification"
	opFinalize           = "finalize"
	opNewTransaction     = "new transaction"
)

type Option func(*Machine)

// WithClock sets the source of submission timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) { m.now = now }
}

// WithIDGenerator sets the source of system transaction ids.
func WithIDGenerator(newID func() string) Option {
	return func(m *Machine) { m.newID = newID }
}

// Machine is safe for use from several goroutines, but every mutating call
// is rejected with OperationInProgress while a submission is outstanding.
type Machine struct {
	mu         sync.Mutex
	step       Step
	submitting bool
	request    *models.TransactionRequest
	finalized  *models.FinalizedTransaction

	gateway SubmissionGateway
	now     func() time.Time
	newID   func() string
}

// New returns a machine at StepInput. A nil gateway makes every finalize
// record a Skipped outcome.
func New(gateway SubmissionGateway, opts ...Option) *Machine {
	m := &Machine{
		step:    StepInput,
		gateway: gateway,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Machine) Step() Step {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.step
}

// Submitting reports whether finalize is waiting on the gateway.
func (m *Machine) Submitting() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.submitting
}

// Request returns the record held during Review and Verification.
func (m *Machine) Request() (models.TransactionRequest, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.request == nil {
		return models.TransactionRequest{}, false
	}
	return *m.request, true
}

// Finalized returns the terminal record once the machine is Completed.
func (m *Machine) Finalized() (models.FinalizedTransaction, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.finalized == nil {
		return models.FinalizedTransaction{}, false
	}
	return *m.finalized, true
}

// SubmitForm stores a validated request and moves to Review.
func (m *Machine) SubmitForm(req models.TransactionRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.guard(opSubmitForm, StepInput, StepReview); err != nil {
		return err
	}
	if !fees.Consistent(req) {
		return errors.InconsistentAmountsErr()
	}

	m.request = &req
	m.step = StepReview
	return nil
}

func (m *Machine) ConfirmReview() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.guard(opConfirmReview, StepReview, StepVerification); err != nil {
		return err
	}
	m.step = StepVerification
	return nil
}

// CancelReview returns to Input and discards the record.
func (m *Machine) CancelReview() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.guard(opCancelReview, StepReview, StepInput); err != nil {
		return err
	}
	m.request = nil
	m.step = StepInput
	return nil
}

// CancelVerification returns to Review with the record unchanged.
func (m *Machine) CancelVerification() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.guard(opCancelVerification, StepVerification, StepReview); err != nil {
		return err
	}
	m.step = StepReview
	return nil
}

// Finalize submits the record with referenceNumber exactly once and moves
// to Completed whatever the gateway reports. The lock is not held while the
// gateway runs; concurrent calls see the submitting flag instead.
func (m *Machine) Finalize(ctx context.Context, referenceNumber string) error {
	m.mu.Lock()
	if err := m.guard(opFinalize, StepVerification, StepCompleted); err != nil {
		m.mu.Unlock()
		return err
	}
	ref := strings.TrimSpace(referenceNumber)
	if ref == "" {
		m.mu.Unlock()
		return errors.MissingReferenceErr()
	}

	submission := models.Submission{
		TransactionRequest: *m.request,
		ID:                 m.newID(),
		ReferenceNumber:    ref,
		Timestamp:          m.now(),
	}
	m.submitting = true
	m.mu.Unlock()

	outcome := m.submit(ctx, submission)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.finalized = &models.FinalizedTransaction{Submission: submission, Outcome: outcome}
	m.request = nil
	m.step = StepCompleted
	m.submitting = false
	return nil
}

// NewTransaction clears everything and returns to Input.
func (m *Machine) NewTransaction() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.guard(opNewTransaction, StepCompleted, StepInput); err != nil {
		return err
	}
	m.request = nil
	m.finalized = nil
	m.step = StepInput
	return nil
}

// guard must be called with mu held.
func (m *Machine) guard(op string, from, to Step) error {
	if m.submitting {
		return errors.OperationInProgressErr(op)
	}
	if m.step != from || !CanTransition(from, to) {
		return errors.IllegalTransitionErr(op, m.step.String())
	}
	return nil
}

func (m *Machine) submit(ctx context.Context, submission models.Submission) (outcome models.Outcome) {
	if m.gateway == nil {
		return models.Skipped()
	}

	defer func() {
		if r := recover(); r != nil {
			outcome = models.Failed(fmt.Sprintf("gateway panic: %v", r))
		}
	}()

	outcome = m.gateway.Submit(ctx, submission)
	switch outcome.Status {
	case models.OutcomeSucceeded, models.OutcomeFailed:
		return outcome
	default:
		return models.Failed(fmt.Sprintf("gateway returned unexpected status %q", outcome.Status))
	}
}
