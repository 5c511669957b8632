package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"proforma-tool/domain"
	"proforma-tool/repository"
)

var (
	ErrSaveRejected       = errors.New("title and calculated results are required")
	ErrIncompleteScenario = errors.New("scenario is missing inputs or results")
)

// Notifier shows a message to the user.
type Notifier interface {
	Alert(message string)
}

// SessionState is a consistent copy of a session's state.
type SessionState struct {
	Inputs     domain.InputState        `json:"inputs"`
	Results    *domain.ResultSet        `json:"results"`
	Title      string                   `json:"title"`
	Scenarios  []domain.ScenarioSummary `json:"scenarios"`
	SelectedID domain.ScenarioID        `json:"selectedScenarioId,omitempty"`
}

// ProFormaSession owns the inputs, the last results and the scenario list
// for one user session.
//
// Network operations may overlap. Each one replaces state wholesale under mu
// when its response arrives, so the last response wins; nothing orders them.
type ProFormaSession struct {
	repo     repository.ScenarioRepository
	exporter Exporter
	notifier Notifier

	mu         sync.RWMutex
	inputs     domain.InputState
	results    *domain.ResultSet
	title      string
	scenarios  []domain.ScenarioSummary
	selectedID domain.ScenarioID
}

// NewProFormaSession creates a session with default inputs and no results.
func NewProFormaSession(
	repo repository.ScenarioRepository,
	exporter Exporter,
	notifier Notifier,
) *ProFormaSession {
	return &ProFormaSession{
		repo:      repo,
		exporter:  exporter,
		notifier:  notifier,
		inputs:    domain.DefaultInputState(),
		scenarios: []domain.ScenarioSummary{},
	}
}

// Snapshot returns a copy of the current state.
func (s *ProFormaSession) Snapshot() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := SessionState{
		Inputs:     s.inputs,
		Title:      s.title,
		Scenarios:  make([]domain.ScenarioSummary, len(s.scenarios)),
		SelectedID: s.selectedID,
	}
	copy(st.Scenarios, s.scenarios)
	if s.results != nil {
		r := *s.results
		st.Results = &r
	}
	return st
}

// Start fetches the scenario list. A failure leaves the list empty.
func (s *ProFormaSession) Start(ctx context.Context) error {
	list, err := s.repo.List(ctx)
	if err != nil {
		log.Printf("Error fetching scenarios: %v", err)
		return err
	}
	if list == nil {
		list = []domain.ScenarioSummary{}
	}

	s.mu.Lock()
	s.scenarios = list
	s.mu.Unlock()
	return nil
}

func (s *ProFormaSession) SetField(name, raw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := SetField(s.inputs, name, raw)
	if err != nil {
		log.Printf("Ignoring edit: %v", err)
		return err
	}
	s.inputs = next
	return nil
}

func (s *ProFormaSession) SetPeriodType(value string) {
	s.mu.Lock()
	s.inputs = SetPeriodType(s.inputs, value)
	s.mu.Unlock()
}

func (s *ProFormaSession) SetTitle(title string) {
	s.mu.Lock()
	s.title = title
	s.mu.Unlock()
}

// Calculate computes results from the current inputs and stores them.
func (s *ProFormaSession) Calculate() domain.ResultSet {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := Compute(s.inputs)
	s.results = &results
	return results
}

// Save persists the current title, inputs and results as a new scenario.
// Without a title or results the user is alerted and nothing is sent. The
// cached scenario list is left as it is.
func (s *ProFormaSession) Save(ctx context.Context) (domain.Scenario, error) {
	snap, err := s.takeSaveSnapshot()
	if err != nil {
		return domain.Scenario{}, err
	}
	return s.send(ctx, snap)
}

type saveSnapshot struct {
	title   string
	inputs  domain.InputState
	results domain.ResultSet
}

// takeSaveSnapshot copies what a save sends, or alerts and returns
// ErrSaveRejected when there is no title or no results yet.
func (s *ProFormaSession) takeSaveSnapshot() (saveSnapshot, error) {
	s.mu.RLock()
	title, inputs, results := s.title, s.inputs, s.results
	s.mu.RUnlock()

	if title == "" || results == nil {
		s.alert(AlertSaveRejected)
		return saveSnapshot{}, ErrSaveRejected
	}
	return saveSnapshot{title: title, inputs: inputs, results: *results}, nil
}

func (s *ProFormaSession) send(ctx context.Context, snap saveSnapshot) (domain.Scenario, error) {
	created, err := s.repo.Create(ctx, snap.title, snap.inputs, snap.results)
	if err != nil {
		log.Printf("Error saving scenario %q: %v", snap.title, err)
		return domain.Scenario{}, err
	}

	s.alert(AlertSaved)
	return created, nil
}

// Load fetches a scenario and swaps in its inputs and results together.
// On any failure the current state is kept.
func (s *ProFormaSession) Load(ctx context.Context, id domain.ScenarioID) error {
	detail, err := s.repo.Get(ctx, id)
	if err == nil && (detail.Inputs == nil || detail.Results == nil) {
		err = fmt.Errorf("get scenario %s: %w", id, ErrIncompleteScenario)
	}
	if err != nil {
		log.Printf("Error loading scenario: %v", err)
		return err
	}

	results := *detail.Results

	s.mu.Lock()
	s.inputs = *detail.Inputs
	s.results = &results
	s.selectedID = id
	s.mu.Unlock()
	return nil
}

// View renders the current results, or reports false before the first
// calculation.
func (s *ProFormaSession) View() (domain.ResultView, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.results == nil {
		return domain.ResultView{}, false
	}
	return BuildResultView(*s.results), true
}

// Export renders the result view into a document. Before any calculation,
// or when the exporter fails, it logs and returns false.
func (s *ProFormaSession) Export(filename string) (domain.Document, bool) {
	if s.exporter == nil {
		log.Printf("Warning: export skipped: no exporter configured")
		return domain.Document{}, false
	}

	view, ok := s.View()
	if !ok {
		log.Printf("Warning: export skipped: no results calculated yet")
		return domain.Document{}, false
	}

	if strings.TrimSpace(filename) == "" {
		filename = s.exporter.DefaultFilename()
	}

	doc, err := s.exporter.Export(view, filename)
	if err != nil {
		log.Printf("Error exporting %s: %v", filename, err)
		return domain.Document{}, false
	}
	return doc, true
}

func (s *ProFormaSession) alert(message string) {
	if s.notifier != nil {
		s.notifier.Alert(message)
	}
}
