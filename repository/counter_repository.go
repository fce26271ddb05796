package repository

import (
	"context"

	"naija-tax/domain"
)

// CounterRepository is the running tally of delivered reports.
// Increment must be atomic with respect to concurrent callers.
type CounterRepository interface {
	GetCount(ctx context.Context) (int64, error)
	Increment(ctx context.Context) (int64, error)
}

type SubmissionRepository interface {
	Save(ctx context.Context, s domain.Submission) error
	// RecentSubmissions returns up to limit submissions, newest first.
	RecentSubmissions(ctx context.Context, limit int) ([]domain.Submission, error)
}
