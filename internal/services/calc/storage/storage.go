// Package storage defines persistence contracts for calculator state.
package storage

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/louisbranch/bignumbers/internal/platform/errors"
	"github.com/louisbranch/bignumbers/internal/services/calc/storage/filter"
)

var (
	// ErrNotFound indicates a requested evaluation is missing.
	ErrNotFound = apperrors.New(apperrors.CodeNotFound, "evaluation not found")
	// ErrAlreadyExists indicates an evaluation with the same ID is stored.
	ErrAlreadyExists = errors.New("evaluation already exists")
)

// Evaluation is one stored result of evaluating an expression.
//
// ID is derived from the whitespace-free expression, so equivalent inputs
// that differ only in spacing share a record.
type Evaluation struct {
	ID         string
	Expression string
	Result     string
	CreatedAt  time.Time
}

// EvaluationPage stores one page of evaluations.
type EvaluationPage struct {
	Evaluations   []Evaluation
	NextPageToken string
}

// ListOrder selects the direction evaluations are listed in.
type ListOrder int

const (
	// NewestFirst lists the most recently stored evaluations first.
	NewestFirst ListOrder = iota
	// OldestFirst lists evaluations in insertion order.
	OldestFirst
)

// EvaluationStore persists evaluation history.
type EvaluationStore interface {
	PutEvaluation(ctx context.Context, evaluation Evaluation) error
	GetEvaluation(ctx context.Context, id string) (Evaluation, error)
	// ListEvaluations returns the rows matching cond; an empty cond matches
	// every row.
	ListEvaluations(ctx context.Context, pageSize int, pageToken string, order ListOrder, cond filter.SQLCondition) (EvaluationPage, error)
}
