package errors

import (
	// Go Internal Packages
	stderrors "errors"
	"fmt"
)

// IllegalTransitionErr reports an operation invoked from a step that does not allow it.
func IllegalTransitionErr(op, from string) error {
	return E(IllegalTransition, fmt.Sprintf("%s is not allowed from %s", op, from), nil)
}

// OperationInProgressErr reports a call made while a submission is outstanding.
func OperationInProgressErr(op string) error {
	return E(OperationInProgress, fmt.Sprintf("%s rejected: submission in progress", op), nil)
}

func MissingReferenceErr() error {
	return E(MissingReference, "reference number is required", nil)
}

// SubmissionFailedErr reports a record that did not reach the record-keeping service.
func SubmissionFailedErr(reason string) error {
	if reason == "" {
		return E(SubmissionFailed, "submission failed", nil)
	}
	return E(SubmissionFailed, "submission failed", stderrors.New(reason))
}

// InconsistentAmountsErr reports a request whose fee or total was not derived from its amount.
func InconsistentAmountsErr() error {
	return E(InvalidAmount, "fee and total must be derived from amount", nil)
}
