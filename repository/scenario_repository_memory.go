package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"proforma-tool/domain"
)

var ErrScenarioNotFound = errors.New("scenario not found")

// ScenarioRepositoryMemory is an in-memory implementation of ScenarioRepository.
type ScenarioRepositoryMemory struct {
	mu   sync.RWMutex
	data []domain.Scenario
}

// NewScenarioRepositoryMemory creates a new in-memory scenario repository.
func NewScenarioRepositoryMemory() *ScenarioRepositoryMemory {
	return &ScenarioRepositoryMemory{
		data: []domain.Scenario{},
	}
}

func (r *ScenarioRepositoryMemory) List(ctx context.Context) ([]domain.ScenarioSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.ScenarioSummary, 0, len(r.data))
	for _, s := range r.data {
		out = append(out, domain.ScenarioSummary{ID: s.ID, Title: s.Title})
	}
	return out, nil
}

// Create stores the scenario under a fresh id.
func (r *ScenarioRepositoryMemory) Create(
	ctx context.Context,
	title string,
	inputs domain.InputState,
	results domain.ResultSet,
) (domain.Scenario, error) {
	s := domain.Scenario{
		ID:      domain.ScenarioID(uuid.NewString()),
		Title:   title,
		Inputs:  inputs,
		Results: results,
	}

	r.mu.Lock()
	r.data = append(r.data, s)
	r.mu.Unlock()

	return s, nil
}

func (r *ScenarioRepositoryMemory) Get(ctx context.Context, id domain.ScenarioID) (domain.ScenarioDetail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.data {
		if s.ID == id {
			inputs, results := s.Inputs, s.Results
			return domain.ScenarioDetail{Inputs: &inputs, Results: &results}, nil
		}
	}
	return domain.ScenarioDetail{}, ErrScenarioNotFound
}
