package kiosk

import (
	// Go Internal Packages
	"context"

	// Local Packages
	models "cash-kiosk/models"
)

//go:generate mockgen -destination=mocks/mock_kiosk.go -source=interface.go

type Journal interface {
	InsertTransaction(ctx context.Context, tx models.FinalizedTransaction) error
}

type EventPublisher interface {
	PublishCompleted(ctx context.Context, tx models.FinalizedTransaction) error
}
