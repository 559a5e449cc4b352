package booking

import (
	"github.com/fleetops/fleet-scheduler/internal/audit"
	"github.com/fleetops/fleet-scheduler/internal/dispatch"
)

// AuditSink and EventSink are the slices of the audit and side-effect
// dispatchers the usecases need. Both dispatchers are fire-and-forget;
// neither can fail a command.
type AuditSink interface {
	Dispatch(ev audit.Event)
}

type EventSink interface {
	Dispatch(ev dispatch.Event)
}
