package bootstrap

import "context"

// AuditLog is one operator-facing audit event (state transitions, run
// processing, shutdowns). Not a debug log.
type AuditLog struct {
	Action   string
	ActorID  string
	EntityID string
	Message  string
	Meta     map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
