package workflow

import (
	// Go Internal Packages
	"context"

	// Local Packages
	models "cash-kiosk/models"
)

// SubmissionGateway is the boundary to the external record-keeping service.
// Implementations never fail outright: every failure is reported as a
// Failed outcome.
//
//go:generate mockgen -destination=mocks/mock_gateway.go -source=interface.go SubmissionGateway
type SubmissionGateway interface {
	Submit(ctx context.Context, submission models.Submission) models.Outcome
}
