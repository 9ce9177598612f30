package interfaces

import (
	"context"

	domaintypes "wtime/internal/domain/types"
)

// Locator resolves the current device position.
type Locator interface {
	Locate(ctx context.Context) (domaintypes.Location, error)
}

// SMSSender hands a message to a platform SMS capability.
type SMSSender interface {
	Available(ctx context.Context) bool
	Send(ctx context.Context, to []string, body string) error
}

// AlertService composes and dispatches an emergency alert.
type AlertService interface {
	Dispatch(ctx context.Context) (domaintypes.AlertReport, error)
}
