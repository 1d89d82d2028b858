// Package store provides Ledger implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/pulsehr/leave-engine/leave"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu   sync.RWMutex
	apps map[string]leave.Application
}

func NewMemory() *Memory {
	return &Memory{apps: make(map[string]leave.Application)}
}

var _ leave.Ledger = (*Memory)(nil)

// Append adds a new record. Existing ids are never overwritten.
func (m *Memory) Append(_ context.Context, app leave.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.apps[app.ID]; exists {
		return leave.ErrInvalidTransition
	}
	m.apps[app.ID] = app
	return nil
}

func (m *Memory) Find(_ context.Context, id string) (leave.Application, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	app, ok := m.apps[id]
	if !ok {
		return leave.Application{}, leave.ErrNotFound
	}
	return app, nil
}

func (m *Memory) ListByEmployee(_ context.Context, employeeID string) ([]leave.Application, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []leave.Application
	for _, app := range m.apps {
		if app.EmployeeID == employeeID {
			result = append(result, app)
		}
	}
	sortApplications(result)
	return result, nil
}

func (m *Memory) ListPending(_ context.Context) ([]leave.Application, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []leave.Application
	for _, app := range m.apps {
		if app.Status == leave.StatusPending {
			result = append(result, app)
		}
	}
	sortApplications(result)
	return result, nil
}

func (m *Memory) ListAll(_ context.Context) ([]leave.Application, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]leave.Application, 0, len(m.apps))
	for _, app := range m.apps {
		result = append(result, app)
	}
	sortApplications(result)
	return result, nil
}

// UpdateStatus applies a decision iff the current status matches from.
// The check and the write happen under one lock, which is the in-memory
// equivalent of the conditional UPDATE in the SQLite store.
func (m *Memory) UpdateStatus(_ context.Context, id string, from leave.Status, change leave.StatusChange) (leave.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	app, ok := m.apps[id]
	if !ok {
		return leave.Application{}, leave.ErrNotFound
	}
	if app.Status != from {
		return leave.Application{}, &leave.TransitionError{ID: id, Status: app.Status, Op: "decide"}
	}

	app.Status = change.To
	app.DecidedOn = change.DecidedOn
	app.DecidedBy = change.DecidedBy
	app.RejectionReason = change.RejectionReason
	m.apps[id] = app
	return app, nil
}

// Remove deletes a still-Pending record.
func (m *Memory) Remove(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	app, ok := m.apps[id]
	if !ok {
		return leave.ErrNotFound
	}
	if app.Status != leave.StatusPending {
		return &leave.TransitionError{ID: id, Status: app.Status, Op: "remove"}
	}
	delete(m.apps, id)
	return nil
}

// sortApplications orders by AppliedOn, then id for a stable tiebreak.
func sortApplications(apps []leave.Application) {
	sort.Slice(apps, func(i, j int) bool {
		if !apps[i].AppliedOn.Equal(apps[j].AppliedOn) {
			return apps[i].AppliedOn.Before(apps[j].AppliedOn)
		}
		return apps[i].ID < apps[j].ID
	})
}
