package payment

import (
	"github.com/navaro-app/navaro-api/internal/audit"
	"github.com/navaro-app/navaro-api/internal/notification"
)

type Notifier interface {
	Notify(msg notification.Message)
}

type Auditor interface {
	Dispatch(ev audit.Event)
}
