package http

import (
	"bytes"
	"log"
	"net/http"

	json "github.com/goccy/go-json"

	"proforma-tool/domain"
	"proforma-tool/service"
)

type sessionResponse struct {
	Inputs     domain.InputsWire        `json:"inputs"`
	Results    *domain.ResultsWire      `json:"results"`
	View       *domain.ResultView       `json:"view,omitempty"`
	Title      string                   `json:"title"`
	Scenarios  []domain.ScenarioSummary `json:"scenarios"`
	SelectedID domain.ScenarioID        `json:"selectedScenarioId,omitempty"`
}

type errorResponse struct {
	Status  int      `json:"status"`
	Message string   `json:"message"`
	Alerts  []string `json:"alerts,omitempty"`
}

func newSessionResponse(st service.SessionState) sessionResponse {
	resp := sessionResponse{
		Inputs:     st.Inputs.Wire(),
		Title:      st.Title,
		Scenarios:  st.Scenarios,
		SelectedID: st.SelectedID,
	}
	if st.Results != nil {
		results := st.Results.Wire()
		resp.Results = &results
		view := service.BuildResultView(*st.Results)
		resp.View = &view
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	// encode first so a failure does not leave a half-written 200
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Status: status, Message: message})
}
