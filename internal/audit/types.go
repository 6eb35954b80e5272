package audit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of an audit record.
type Status string

const (
	StatusPending Status = "PENDING"
	StatusSuccess Status = "SUCCESS"
	StatusFailed  Status = "FAILED"
)

// parses a status name, case-sensitive
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusSuccess, StatusFailed:
		return Status(s), true
	default:
		return "", false
	}
}

var ErrRecordNotFound = errors.New("audit record not found")

// Record accumulates what happened while serving one request.
// Message and StackError are append-only: writers add to them, never replace.
type Record struct {
	ID         uuid.UUID `json:"id"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	ClientIP   string    `json:"client_ip,omitempty"`
	UserID     string    `json:"user_id,omitempty"`
	Message    string    `json:"message"`
	StackError string    `json:"stack_error,omitempty"`
	Status     Status    `json:"status"`
	StatusCode int       `json:"status_code"`
	StartedAt  time.Time `json:"started_at"`
	DurationMS int64     `json:"duration_ms"`
}

// creates a pending record stamped with a fresh id and the current time
func NewRecord(method, path, clientIP string) *Record {
	return &Record{
		ID:        uuid.New(),
		Method:    method,
		Path:      path,
		ClientIP:  clientIP,
		Status:    StatusPending,
		StartedAt: time.Now().UTC(),
	}
}

func (r *Record) AppendMessage(msg string) {
	r.Message += msg
}

func (r *Record) AppendStack(stack string) {
	r.StackError += stack
}

func (r *Record) MarkFailed() {
	r.Status = StatusFailed
}

// stamps the outcome; a record nobody failed is a success
func (r *Record) Finish(statusCode int, elapsed time.Duration) {
	r.StatusCode = statusCode
	r.DurationMS = elapsed.Milliseconds()

	if r.Status == StatusPending {
		r.Status = StatusSuccess
	}
}

// Query filters and pages a listing. Zero values mean "no filter";
// listings are ordered by start time, newest first unless Ascending.
type Query struct {
	Offset    int
	Limit     int
	Status    Status
	UserID    string
	Ascending bool
}

func (q Query) matches(r *Record) bool {
	if q.Status != "" && r.Status != q.Status {
		return false
	}

	if q.UserID != "" && r.UserID != q.UserID {
		return false
	}

	return true
}

// Store persists finished audit records.
type Store interface {
	Save(ctx context.Context, record *Record) error
	Get(ctx context.Context, id uuid.UUID) (*Record, error)
	// returns the requested page and the total matching count
	List(ctx context.Context, q Query) ([]*Record, int, error)
}

// pages an already filtered and ordered slice
func page(records []*Record, q Query) []*Record {
	offset := max(q.Offset, 0)
	if offset >= len(records) {
		return []*Record{}
	}

	end := len(records)
	if q.Limit > 0 && q.Limit < end-offset {
		end = offset + q.Limit
	}

	return records[offset:end]
}
