package kiosk_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	models "cash-kiosk/models"
	"cash-kiosk/services/kiosk"
	"cash-kiosk/services/workflow"
	mock_workflow "cash-kiosk/services/workflow/mocks"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func script(lines ...string) *strings.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

func TestRunTerminal_FullTransaction(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gw := mock_workflow.NewMockSubmissionGateway(ctrl)
	gw.EXPECT().Submit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s models.Submission) models.Outcome {
			assert.Equal(t, "REF123", s.ReferenceNumber)
			assert.Equal(t, models.CashIn, s.Kind)
			return models.Succeeded(nil)
		})

	s := newSession(gw)
	in := script(
		"", "Juan Dela Cruz", "09171234567", "2000",
		"c",
		"REF123",
		"q",
	)
	var out bytes.Buffer

	require.NoError(t, kiosk.RunTerminal(context.Background(), s, in, &out))
	assert.Equal(t, workflow.StepCompleted, s.Step())

	text := out.String()
	assert.Contains(t, text, "GCash Cash Kiosk")
	assert.Contains(t, text, "Review Transaction")
	assert.Contains(t, text, "₱2,020.00")
	assert.Contains(t, text, "GCash Partner")
	assert.Contains(t, text, "REF123")
	assert.Contains(t, text, "Recorded")
}

func TestRunTerminal_ShowsFieldErrors(t *testing.T) {
	s := newSession(nil)
	in := script("", "", "12345", "abc")
	var out bytes.Buffer

	require.NoError(t, kiosk.RunTerminal(context.Background(), s, in, &out))
	assert.Equal(t, workflow.StepInput, s.Step())

	text := out.String()
	assert.Contains(t, text, "Account Name: Account Name is required")
	assert.Contains(t, text, "Account Number: Must be 11 digits starting with 09")
	assert.Contains(t, text, "Amount: Amount must be a number")
}

func TestRunTerminal_BackAndMissingReference(t *testing.T) {
	s := newSession(nil)
	in := script(
		"out", "Maria", "09181234567", "1000",
		"c",
		"back",
		"c",
		"",
	)
	var out bytes.Buffer

	require.NoError(t, kiosk.RunTerminal(context.Background(), s, in, &out))
	assert.Equal(t, workflow.StepVerification, s.Step())
	assert.Contains(t, out.String(), "Reference Number is required")
	assert.Contains(t, out.String(), "₱10.00")
}

func TestRunTerminal_NewTransactionAfterReceipt(t *testing.T) {
	s := newSession(nil)
	in := script(
		"", "Maria", "09181234567", "1000",
		"c",
		"REF1",
		"p",
		"n",
	)
	var out bytes.Buffer

	require.NoError(t, kiosk.RunTerminal(context.Background(), s, in, &out))
	assert.Equal(t, workflow.StepInput, s.Step())
	assert.Equal(t, 2, strings.Count(out.String(), "Official Receipt"))
	assert.Contains(t, out.String(), "Not submitted")
}

func TestRunTerminal_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	require.NoError(t, kiosk.RunTerminal(ctx, newSession(nil), script("x"), &out))
	assert.NotContains(t, out.String(), "New Transaction")
}
