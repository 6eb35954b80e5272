package audit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	createTableSQL = `
		CREATE TABLE IF NOT EXISTS audit_logs (
			id TEXT PRIMARY KEY,
			method TEXT NOT NULL,
			path TEXT NOT NULL,
			client_ip TEXT,
			user_id TEXT,
			message TEXT NOT NULL DEFAULT '',
			stack_error TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			status_code INTEGER NOT NULL,
			started_at TIMESTAMP WITH TIME ZONE NOT NULL,
			duration_ms BIGINT NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_audit_logs_started_at ON audit_logs(started_at DESC);
		CREATE INDEX IF NOT EXISTS idx_audit_logs_user_id ON audit_logs(user_id);
	`

	upsertSQL = `
		INSERT INTO audit_logs (id, method, path, client_ip, user_id, message, stack_error, status, status_code, started_at, duration_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			message = EXCLUDED.message,
			stack_error = EXCLUDED.stack_error,
			status = EXCLUDED.status,
			status_code = EXCLUDED.status_code,
			duration_ms = EXCLUDED.duration_ms
	`

	selectColumns = `id, method, path, COALESCE(client_ip, ''), COALESCE(user_id, ''), message, stack_error, status, status_code, started_at, duration_ms`

	getByIDSQL = `SELECT ` + selectColumns + ` FROM audit_logs WHERE id = $1`
)

// implements Store using PostgreSQL
type PostgresStore struct {
	db *pgxpool.Pool
}

// creates a new PostgreSQL audit store
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// creates the required tables if they don't exist
func (s *PostgresStore) Initialize(ctx context.Context) error {
	_, err := s.db.Exec(ctx, createTableSQL)
	return err
}

func (s *PostgresStore) Save(ctx context.Context, record *Record) error {
	_, err := s.db.Exec(ctx, upsertSQL,
		record.ID.String(),
		record.Method,
		record.Path,
		nullable(record.ClientIP),
		nullable(record.UserID),
		record.Message,
		record.StackError,
		string(record.Status),
		record.StatusCode,
		record.StartedAt,
		record.DurationMS,
	)
	if err != nil {
		return fmt.Errorf("failed to save audit record: %w", err)
	}

	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id uuid.UUID) (*Record, error) {
	record, err := scanRecord(s.db.QueryRow(ctx, getByIDSQL, id.String()))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRecordNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get audit record: %w", err)
	}

	return record, nil
}

func (s *PostgresStore) List(ctx context.Context, q Query) ([]*Record, int, error) {
	where, whereArgs := buildWhere(q)

	var total int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM audit_logs`+where, whereArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count audit records: %w", err)
	}

	listSQL, args := buildList(q)

	rows, err := s.db.Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list audit records: %w", err)
	}
	defer rows.Close()

	records := []*Record{}

	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan audit record: %w", err)
		}

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate audit records: %w", err)
	}

	return records, total, nil
}

// builds the ordered, paged SELECT and its positional args for a query
func buildList(q Query) (string, []any) {
	where, args := buildWhere(q)

	order := " ORDER BY started_at DESC"
	if q.Ascending {
		order = " ORDER BY started_at ASC"
	}

	listSQL := `SELECT ` + selectColumns + ` FROM audit_logs` + where + order

	if q.Limit > 0 {
		args = append(args, q.Limit)
		listSQL += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	if q.Offset > 0 {
		args = append(args, q.Offset)
		listSQL += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	return listSQL, args
}

// builds the WHERE clause and its positional args for a query
func buildWhere(q Query) (string, []any) {
	var (
		conds []string
		args  []any
	)

	if q.Status != "" {
		args = append(args, string(q.Status))
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}

	if q.UserID != "" {
		args = append(args, q.UserID)
		conds = append(conds, fmt.Sprintf("user_id = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanRecord(row pgx.Row) (*Record, error) {
	var (
		record Record
		id     string
		status string
	)

	err := row.Scan(
		&id,
		&record.Method,
		&record.Path,
		&record.ClientIP,
		&record.UserID,
		&record.Message,
		&record.StackError,
		&status,
		&record.StatusCode,
		&record.StartedAt,
		&record.DurationMS,
	)
	if err != nil {
		return nil, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid audit id %q: %w", id, err)
	}

	record.ID = parsed
	record.Status = Status(status)

	return &record, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
