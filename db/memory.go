package db

import (
	"context"
	"sync"

	"github.com/jsphweid/rhythmdex/model"
)

type Memory struct {
	mu      sync.RWMutex
	results map[string]model.RoundResult
	order   []string
}

func NewMemory() *Memory {
	return &Memory{results: make(map[string]model.RoundResult)}
}

func (m *Memory) Save(_ context.Context, r model.RoundResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.results[r.ID]; !exists {
		m.order = append(m.order, r.ID)
	}
	m.results[r.ID] = r
	return nil
}

func (m *Memory) Get(_ context.Context, id string) (model.RoundResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, exists := m.results[id]
	if !exists {
		return model.RoundResult{}, ErrNotFound
	}
	return r, nil
}

func (m *Memory) List(_ context.Context) ([]model.RoundResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]model.RoundResult, 0, len(m.order))
	for _, id := range m.order {
		res = append(res, m.results[id])
	}
	return res, nil
}
