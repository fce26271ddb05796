package repository

import (
	"context"
	"sync"

	"naija-tax/domain"
)

type CounterRepositoryMemory struct {
	mu    sync.Mutex
	count int64
}

func NewCounterRepositoryMemory() *CounterRepositoryMemory {
	return &CounterRepositoryMemory{}
}

func (c *CounterRepositoryMemory) GetCount(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count, nil
}

func (c *CounterRepositoryMemory) Increment(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count++
	return c.count, nil
}

type SubmissionRepositoryMemory struct {
	mu   sync.Mutex
	Data []domain.Submission
}

func NewSubmissionRepositoryMemory() *SubmissionRepositoryMemory {
	return &SubmissionRepositoryMemory{
		Data: []domain.Submission{},
	}
}

func (m *SubmissionRepositoryMemory) Save(ctx context.Context, s domain.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data = append(m.Data, s)
	return nil
}

func (m *SubmissionRepositoryMemory) RecentSubmissions(ctx context.Context, limit int) ([]domain.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := min(max(limit, 0), len(m.Data))
	out := make([]domain.Submission, 0, n)
	for i := len(m.Data) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, m.Data[i])
	}
	return out, nil
}
