// Package sqlite provides a SQLite-backed evaluation history store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/bignumbers/internal/platform/grpc/pagination"
	"github.com/louisbranch/bignumbers/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/bignumbers/internal/services/calc/storage"
	"github.com/louisbranch/bignumbers/internal/services/calc/storage/filter"
	"github.com/louisbranch/bignumbers/internal/services/calc/storage/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Store persists evaluations in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite store at path and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// PutEvaluation inserts one evaluation. A second insert with the same ID
// fails with storage.ErrAlreadyExists.
func (s *Store) PutEvaluation(ctx context.Context, evaluation storage.Evaluation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	id := strings.TrimSpace(evaluation.ID)
	if id == "" {
		return fmt.Errorf("evaluation id is required")
	}
	if evaluation.Result == "" {
		return fmt.Errorf("evaluation result is required")
	}
	createdAt := evaluation.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO evaluations (id, expression, result, created_at) VALUES (?, ?, ?, ?)`,
		id, evaluation.Expression, evaluation.Result, toMillis(createdAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("put evaluation: %w", err)
	}
	return nil
}

// GetEvaluation returns one evaluation by ID.
func (s *Store) GetEvaluation(ctx context.Context, id string) (storage.Evaluation, error) {
	if err := ctx.Err(); err != nil {
		return storage.Evaluation{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Evaluation{}, fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return storage.Evaluation{}, fmt.Errorf("evaluation id is required")
	}

	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, expression, result, created_at FROM evaluations WHERE id = ?`, id)
	var evaluation storage.Evaluation
	var createdAt int64
	if err := row.Scan(&evaluation.ID, &evaluation.Expression, &evaluation.Result, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Evaluation{}, storage.ErrNotFound
		}
		return storage.Evaluation{}, fmt.Errorf("get evaluation: %w", err)
	}
	evaluation.CreatedAt = fromMillis(createdAt)
	return evaluation, nil
}

// ListEvaluations returns one page of evaluations matching cond in the
// requested order. Page tokens encode the insertion sequence of the last row
// returned.
func (s *Store) ListEvaluations(ctx context.Context, pageSize int, pageToken string, order storage.ListOrder, cond filter.SQLCondition) (storage.EvaluationPage, error) {
	if err := ctx.Err(); err != nil {
		return storage.EvaluationPage{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.EvaluationPage{}, fmt.Errorf("storage is not configured")
	}
	if pageSize <= 0 {
		return storage.EvaluationPage{}, fmt.Errorf("page size must be greater than zero")
	}
	cursor, err := pagination.DecodeCursor(pageToken)
	if err != nil {
		return storage.EvaluationPage{}, err
	}

	var where []string
	var args []any
	if !cond.Empty() {
		where = append(where, cond.Clause)
		args = append(args, cond.Params...)
	}
	direction := "DESC"
	if order == storage.OldestFirst {
		direction = "ASC"
		if cursor > 0 {
			where = append(where, "seq > ?")
			args = append(args, cursor)
		}
	} else if cursor > 0 {
		where = append(where, "seq < ?")
		args = append(args, cursor)
	}

	query := `SELECT seq, id, expression, result, created_at FROM evaluations`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY seq ` + direction
	query += ` LIMIT ?`
	args = append(args, pageSize+1)

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return storage.EvaluationPage{}, fmt.Errorf("list evaluations: %w", err)
	}
	defer rows.Close()

	page := storage.EvaluationPage{Evaluations: make([]storage.Evaluation, 0, pageSize)}
	var seqs []int64
	for rows.Next() {
		var evaluation storage.Evaluation
		var seq, createdAt int64
		if err := rows.Scan(&seq, &evaluation.ID, &evaluation.Expression, &evaluation.Result, &createdAt); err != nil {
			return storage.EvaluationPage{}, fmt.Errorf("list evaluations: %w", err)
		}
		evaluation.CreatedAt = fromMillis(createdAt)
		page.Evaluations = append(page.Evaluations, evaluation)
		seqs = append(seqs, seq)
	}
	if err := rows.Err(); err != nil {
		return storage.EvaluationPage{}, fmt.Errorf("list evaluations: %w", err)
	}
	if len(page.Evaluations) > pageSize {
		page.NextPageToken = pagination.EncodeCursor(seqs[pageSize-1])
		page.Evaluations = page.Evaluations[:pageSize]
	}
	return page, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

var _ storage.EvaluationStore = (*Store)(nil)
