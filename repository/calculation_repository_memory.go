package repository

import (
	"sync"

	"naija-tax/domain"
)

// DefaultCalculationHistory bounds the in-memory calculation log.
const DefaultCalculationHistory = 1000

type Calculation struct {
	Input  domain.TaxInput
	Result domain.TaxResult
}

// CalculationRepositoryMemory keeps the most recent calculations in memory.
type CalculationRepositoryMemory struct {
	mu    sync.Mutex
	limit int
	data  []Calculation
}

// NewCalculationRepositoryMemory creates a log holding at most limit entries.
// A non-positive limit uses DefaultCalculationHistory.
func NewCalculationRepositoryMemory(limit int) *CalculationRepositoryMemory {
	if limit <= 0 {
		limit = DefaultCalculationHistory
	}
	return &CalculationRepositoryMemory{
		limit: limit,
		data:  []Calculation{},
	}
}

// Save appends the calculation, dropping the oldest once the log is full.
func (r *CalculationRepositoryMemory) Save(
	input domain.TaxInput,
	result domain.TaxResult,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.data) >= r.limit {
		r.data = r.data[1:]
	}
	r.data = append(r.data, Calculation{Input: input, Result: result})
	return nil
}
