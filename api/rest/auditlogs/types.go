package auditlogs

import (
	"time"

	"codeberg.org/algopatterns/envelope/internal/audit"
)

// AuditLogResponse is the client view of an audit record; stack traces stay server-side
type AuditLogResponse struct {
	ID         string    `json:"id"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	ClientIP   string    `json:"client_ip,omitempty"`
	UserID     string    `json:"user_id,omitempty"`
	Message    string    `json:"message"`
	Status     string    `json:"status"`
	StatusCode int       `json:"status_code"`
	StartedAt  time.Time `json:"started_at"`
	DurationMS int64     `json:"duration_ms"`
}

func toResponse(r *audit.Record) AuditLogResponse {
	return AuditLogResponse{
		ID:         r.ID.String(),
		Method:     r.Method,
		Path:       r.Path,
		ClientIP:   r.ClientIP,
		UserID:     r.UserID,
		Message:    r.Message,
		Status:     string(r.Status),
		StatusCode: r.StatusCode,
		StartedAt:  r.StartedAt,
		DurationMS: r.DurationMS,
	}
}
