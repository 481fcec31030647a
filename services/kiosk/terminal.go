package kiosk

import (
	// Go Internal Packages
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	// Local Packages
	errors "cash-kiosk/errors"
	validator "cash-kiosk/services/validator"
	workflow "cash-kiosk/services/workflow"
)

var fieldLabels = map[string]string{
	validator.FieldKind:          "Transaction Type",
	validator.FieldAccountName:   "Account Name",
	validator.FieldAccountNumber: "Account Number",
	validator.FieldAmount:        "Amount",
}

var fieldOrder = []string{
	validator.FieldKind,
	validator.FieldAccountName,
	validator.FieldAccountNumber,
	validator.FieldAmount,
}

type terminal struct {
	session *Session
	in      *bufio.Scanner
	out     io.Writer
}

// RunTerminal drives the session from a line-oriented terminal until the
// operator quits, the input is exhausted or ctx is canceled.
func RunTerminal(ctx context.Context, session *Session, in io.Reader, out io.Writer) error {
	t := &terminal{session: session, in: bufio.NewScanner(in), out: out}
	fmt.Fprintf(out, "%s Cash Kiosk\n", session.Provider())

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		var (
			more bool
			err  error
		)
		switch session.Step() {
		case workflow.StepInput:
			more, err = t.input()
		case workflow.StepReview:
			more, err = t.review()
		case workflow.StepVerification:
			more, err = t.verification(ctx)
		case workflow.StepCompleted:
			more, err = t.completed()
		}
		if err != nil {
			return err
		}
		if !more {
			return t.in.Err()
		}
	}
}

// prompt returns false once the input is exhausted.
func (t *terminal) prompt(label string) (string, bool) {
	fmt.Fprint(t.out, label)
	if !t.in.Scan() {
		fmt.Fprintln(t.out)
		return "", false
	}
	return strings.TrimSpace(t.in.Text()), true
}

func (t *terminal) input() (bool, error) {
	fmt.Fprintln(t.out, "\nNew Transaction")

	var raw validator.RawFields
	var ok bool
	if raw.Kind, ok = t.prompt("Transaction Type [Cash-In/Cash-Out] (Cash-In): "); !ok {
		return false, nil
	}
	if raw.AccountName, ok = t.prompt("Account Name: "); !ok {
		return false, nil
	}
	if raw.AccountNumber, ok = t.prompt("Account Number (09XXXXXXXXX): "); !ok {
		return false, nil
	}
	if raw.Amount, ok = t.prompt("Amount: "); !ok {
		return false, nil
	}

	_, err := t.session.Submit(raw)
	if err == nil {
		return true, nil
	}

	var ve *errors.ValidationErrors
	if !errors.As(err, &ve) {
		return false, err
	}
	for _, field := range fieldOrder {
		if fe, found := ve.Get(field); found {
			fmt.Fprintf(t.out, "  %s: %s\n", fieldLabels[field], fe.Message)
		}
	}
	return true, nil
}

func (t *terminal) review() (bool, error) {
	summary, _ := t.session.Summary()
	fmt.Fprintln(t.out, "\nReview Transaction")
	if err := summary.Render(t.out); err != nil {
		return false, err
	}

	answer, ok := t.prompt("[c] Confirm  [b] Back: ")
	if !ok {
		return false, nil
	}
	switch strings.ToLower(answer) {
	case "c", "confirm":
		return true, t.session.Confirm()
	case "b", "back":
		return true, t.session.CancelReview()
	}
	return true, nil
}

func (t *terminal) verification(ctx context.Context) (bool, error) {
	label := fmt.Sprintf("\n%s Reference No. (or 'back'): ", t.session.Provider())
	ref, ok := t.prompt(label)
	if !ok {
		return false, nil
	}
	if strings.EqualFold(ref, "back") {
		return true, t.session.CancelVerification()
	}

	fmt.Fprintln(t.out, "Submitting...")
	r, err := t.session.Finalize(ctx, ref)
	if errors.Is(errors.MissingReference, err) {
		fmt.Fprintln(t.out, "  Reference Number is required")
		return true, nil
	}
	if err != nil {
		return false, err
	}
	fmt.Fprintln(t.out)
	return true, r.Render(t.out)
}

func (t *terminal) completed() (bool, error) {
	answer, ok := t.prompt("\n[n] New transaction  [p] Print again  [q] Quit: ")
	if !ok {
		return false, nil
	}
	switch strings.ToLower(answer) {
	case "n", "new":
		return true, t.session.NewTransaction()
	case "p", "print":
		if r, found := t.session.Receipt(); found {
			fmt.Fprintln(t.out)
			return true, r.Render(t.out)
		}
	case "q", "quit":
		return false, nil
	}
	return true, nil
}
