package appointment

import (
	"context"

	"github.com/navaro-app/navaro-api/internal/audit"
	"github.com/navaro-app/navaro-api/internal/notification"
)

// Portas estreitas dos serviços de apoio; os casos de uso não dependem das
// implementações concretas.

type Notifier interface {
	Notify(msg notification.Message)
}

type Auditor interface {
	Dispatch(ev audit.Event)
}

type SettingsReader interface {
	GetBool(ctx context.Context, key string, def bool) bool
	GetFloat(ctx context.Context, key string, def float64) float64
}
