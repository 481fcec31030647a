package processors

import (
	// Go Internal Packages
	"context"

	// Local Packages
	models "cash-kiosk/models"
)

//go:generate mockgen -destination=mocks/mock_processors.go -source=interface.go

type Gateway interface {
	Submit(ctx context.Context, submission models.Submission) models.Outcome
}

type Journal interface {
	MarkSynced(ctx context.Context, id string, outcome models.Outcome) error
}

type DeadLetterQueue interface {
	Send(ctx context.Context, record models.Record, reason string) error
	Remove(ctx context.Context, id string) error
}
