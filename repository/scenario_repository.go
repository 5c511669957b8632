package repository

import (
	"context"

	"proforma-tool/domain"
)

// ScenarioRepository is the remote collection of saved scenarios.
type ScenarioRepository interface {
	List(ctx context.Context) ([]domain.ScenarioSummary, error)
	Create(ctx context.Context, title string, inputs domain.InputState, results domain.ResultSet) (domain.Scenario, error)
	Get(ctx context.Context, id domain.ScenarioID) (domain.ScenarioDetail, error)
}
