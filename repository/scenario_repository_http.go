package repository

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	json "github.com/goccy/go-json"

	"proforma-tool/domain"
)

// DefaultAPIBase is the hosted scenario store.
const DefaultAPIBase = "https://proforma-backend.onrender.com/api/proforma"

// StatusError reports a non-2xx reply from the scenario store.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.URL, e.StatusCode)
}

// ScenarioRepositoryHTTP talks to the scenario store over JSON/HTTP.
// Every call is a single round trip: no retry and no client timeout.
type ScenarioRepositoryHTTP struct {
	baseURL    string
	httpClient *http.Client
}

// NewScenarioRepositoryHTTP creates a client for the collection at baseURL.
// A nil httpClient uses a client without a timeout.
func NewScenarioRepositoryHTTP(baseURL string, httpClient *http.Client) *ScenarioRepositoryHTTP {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &ScenarioRepositoryHTTP{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (r *ScenarioRepositoryHTTP) BaseURL() string {
	return r.baseURL
}

// List fetches the scenario summaries.
func (r *ScenarioRepositoryHTTP) List(ctx context.Context) ([]domain.ScenarioSummary, error) {
	var summaries []domain.ScenarioSummary
	if err := r.do(ctx, http.MethodGet, r.baseURL, nil, &summaries); err != nil {
		return nil, fmt.Errorf("list scenarios: %w", err)
	}
	return summaries, nil
}

// Create posts a new scenario and returns it with the store-assigned id.
func (r *ScenarioRepositoryHTTP) Create(
	ctx context.Context,
	title string,
	inputs domain.InputState,
	results domain.ResultSet,
) (domain.Scenario, error) {

	body, err := json.Marshal(domain.CreateScenarioRequest{
		Title:   title,
		Inputs:  inputs.Wire(),
		Results: results.Wire(),
	})
	if err != nil {
		return domain.Scenario{}, fmt.Errorf("encode scenario: %w", err)
	}

	var created domain.Scenario
	if err := r.do(ctx, http.MethodPost, r.baseURL, body, &created); err != nil {
		return domain.Scenario{}, fmt.Errorf("create scenario: %w", err)
	}
	return created, nil
}

// Get fetches the inputs and results saved under id.
func (r *ScenarioRepositoryHTTP) Get(ctx context.Context, id domain.ScenarioID) (domain.ScenarioDetail, error) {
	var detail domain.ScenarioDetail
	endpoint := r.baseURL + "/" + url.PathEscape(id.String())
	if err := r.do(ctx, http.MethodGet, endpoint, nil, &detail); err != nil {
		return domain.ScenarioDetail{}, fmt.Errorf("get scenario %s: %w", id, err)
	}
	return detail, nil
}

func (r *ScenarioRepositoryHTTP) do(ctx context.Context, method, endpoint string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			Method:     method,
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Body:       string(raw),
		}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
