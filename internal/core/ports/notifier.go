package ports

import (
	"context"

	"github.com/mikemajesty/admin-api/internal/core/domain"
)

// NotificationEmitter is the fire-and-forget side channel used by use cases.
// Emit never blocks on delivery and reports nothing back.
type NotificationEmitter interface {
	Emit(ctx context.Context, n domain.Notification)
}

// Notifier delivers one notification to its transport.
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification) error
}
