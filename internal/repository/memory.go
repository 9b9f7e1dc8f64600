package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/joseph-ayodele/landdoc-verifier/internal/common"
	"github.com/joseph-ayodele/landdoc-verifier/internal/entity"
)

// memoryHistory keeps records in process, newest first. Records are copied on
// the way in and out so callers cannot mutate history through shared slices.
type memoryHistory[T any] struct {
	mu    sync.RWMutex
	items []T
	ids   map[string]struct{}

	idOf     func(T) string
	clone    func(T) T
	validate func(T) error
}

// NewMemoryVerificationHistory returns an in-process VerificationHistory.
func NewMemoryVerificationHistory() VerificationHistory {
	return &memoryHistory[entity.VerificationResult]{
		ids:  map[string]struct{}{},
		idOf: func(v entity.VerificationResult) string { return v.ID },
		clone: func(v entity.VerificationResult) entity.VerificationResult {
			v.Discrepancies = append([]string{}, v.Discrepancies...)
			return v
		},
		validate: func(v entity.VerificationResult) error { return validateRecord(verificationValidator, v) },
	}
}

// NewMemoryContractHistory returns an in-process ContractHistory.
func NewMemoryContractHistory() ContractHistory {
	return &memoryHistory[entity.ContractAnalysis]{
		ids:  map[string]struct{}{},
		idOf: func(c entity.ContractAnalysis) string { return c.ID },
		clone: func(c entity.ContractAnalysis) entity.ContractAnalysis {
			c.KeyPoints = append([]string{}, c.KeyPoints...)
			sections := make([]entity.SectionAnalysis, len(c.Sections))
			for i, s := range c.Sections {
				s.Alerts = append([]entity.Alert{}, s.Alerts...)
				sections[i] = s
			}
			c.Sections = sections
			return c
		},
		validate: func(c entity.ContractAnalysis) error { return validateRecord(contractValidator, c) },
	}
}

func (m *memoryHistory[T]) Append(_ context.Context, rec T) error {
	if err := m.validate(rec); err != nil {
		return err
	}
	rec = m.clone(rec)
	id := m.idOf(rec)

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, dup := m.ids[id]; dup {
		return fmt.Errorf("%w: duplicate id %q", common.ErrInvalidInput, id)
	}
	m.items = append([]T{rec}, m.items...)
	m.ids[id] = struct{}{}
	return nil
}

func (m *memoryHistory[T]) Get(_ context.Context, id string) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, it := range m.items {
		if m.idOf(it) == id {
			return m.clone(it), nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%q: %w", id, common.ErrNotFound)
}

func (m *memoryHistory[T]) ListRecent(_ context.Context, n int) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if n <= 0 || n > len(m.items) {
		n = len(m.items)
	}
	out := make([]T, n)
	for i, it := range m.items[:n] {
		out[i] = m.clone(it)
	}
	return out, nil
}
