package usecase

import (
	"context"
	"time"

	"github.com/oakline-studio/crm-backend/internal/ratelimit"
)

// EmailTransport delivers one rendered message to one recipient. Implemented
// by the SMTP adapter in infra/mail; tests swap in mocks.
type EmailTransport interface {
	Send(ctx context.Context, from, to, subject, html string) error
}

// AuditEvent is the fire-and-forget record of an operator action.
type AuditEvent struct {
	Actor        string            `json:"actor"`
	Action       string            `json:"action"`
	ResourceType string            `json:"resource_type"`
	ResourceID   string            `json:"resource_id"`
	Description  string            `json:"description"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	OccurredAt   time.Time         `json:"occurred_at"`
}

// AuditRecorder is best-effort: implementations must never propagate a failure
// back to the caller's primary operation.
type AuditRecorder interface {
	Record(ctx context.Context, event AuditEvent)
}

// RateLimiter is the sliding-window counter shared between the public form
// endpoints and the hourly outbound email budget.
type RateLimiter interface {
	Check(key, scope string, maxRequests int, window time.Duration) ratelimit.Result
	Remaining(key, scope string, maxRequests int, window time.Duration) int
}
