package http

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"

	"proforma-tool/domain"
	"proforma-tool/service"
)

// SessionHandler exposes one ProFormaSession to the browser.
type SessionHandler struct {
	session   *service.ProFormaSession
	alerts    *service.AlertQueue
	downloads *service.DownloadService

	// tasks outlive the request that started them
	taskCtx context.Context
}

func NewSessionHandler(
	ctx context.Context,
	session *service.ProFormaSession,
	alerts *service.AlertQueue,
	downloads *service.DownloadService,
) *SessionHandler {
	return &SessionHandler{
		session:   session,
		alerts:    alerts,
		downloads: downloads,
		taskCtx:   ctx,
	}
}

// Register mounts the session routes on mux. Export creation goes through
// limiter.
func (h *SessionHandler) Register(mux *http.ServeMux, limiter *RateLimiter) {
	mux.HandleFunc("/session", h.GetSession)
	mux.HandleFunc("/session/field", h.SetField)
	mux.HandleFunc("/session/period", h.SetPeriodType)
	mux.HandleFunc("/session/title", h.SetTitle)
	mux.HandleFunc("/session/calculate", h.Calculate)
	mux.HandleFunc("/session/scenarios", h.ListScenarios)
	mux.HandleFunc("/session/save", h.SaveScenario)
	mux.HandleFunc("/session/load", h.LoadScenario)
	mux.HandleFunc("/session/alerts", h.Alerts)
	mux.Handle("/session/export", RateLimitMiddleware(limiter, http.HandlerFunc(h.Export)))
	mux.HandleFunc("/export/", h.Download)
}

func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, newSessionResponse(h.session.Snapshot()))
}

type setFieldRequest struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (h *SessionHandler) SetField(w http.ResponseWriter, r *http.Request) {
	var req setFieldRequest
	if !decodePost(w, r, &req) {
		return
	}

	if err := h.session.SetField(req.Name, req.Value); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, newSessionResponse(h.session.Snapshot()))
}

type valueRequest struct {
	Value string `json:"value"`
}

func (h *SessionHandler) SetPeriodType(w http.ResponseWriter, r *http.Request) {
	var req valueRequest
	if !decodePost(w, r, &req) {
		return
	}

	h.session.SetPeriodType(req.Value)
	writeJSON(w, http.StatusOK, newSessionResponse(h.session.Snapshot()))
}

type titleRequest struct {
	Title string `json:"title"`
}

func (h *SessionHandler) SetTitle(w http.ResponseWriter, r *http.Request) {
	var req titleRequest
	if !decodePost(w, r, &req) {
		return
	}

	h.session.SetTitle(req.Title)
	writeJSON(w, http.StatusOK, newSessionResponse(h.session.Snapshot()))
}

func (h *SessionHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	h.session.Calculate()
	writeJSON(w, http.StatusOK, newSessionResponse(h.session.Snapshot()))
}

func (h *SessionHandler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, h.session.Snapshot().Scenarios)
}

// SaveScenario answers 422 with the alert when the save is rejected, and
// 202 once the save has been handed to a background task.
func (h *SessionHandler) SaveScenario(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if _, err := h.session.SaveAsync(h.taskCtx); err != nil {
		if errors.Is(err, service.ErrSaveRejected) {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
				Status:  http.StatusUnprocessableEntity,
				Message: err.Error(),
				Alerts:  h.alerts.Drain(),
			})
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

type loadRequest struct {
	ID domain.ScenarioID `json:"id"`
}

func (h *SessionHandler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req loadRequest
	if !decodePost(w, r, &req) {
		return
	}
	if req.ID == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	h.session.LoadAsync(h.taskCtx, req.ID)
	w.WriteHeader(http.StatusAccepted)
}

func (h *SessionHandler) Alerts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, h.alerts.Drain())
}

type exportRequest struct {
	Filename string `json:"filename"`
}

type exportResponse struct {
	Token    string `json:"token"`
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// Export renders the results and parks the document for download. With no
// results it does nothing and answers 204.
func (h *SessionHandler) Export(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if r.ContentLength != 0 {
		if !decodePost(w, r, &req) {
			return
		}
	} else if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	doc, ok := h.session.Export(req.Filename)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	token, err := h.downloads.Put(doc)
	if err != nil {
		log.Printf("Error storing export: %v", err)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusCreated, exportResponse{
		Token:    token,
		Filename: doc.Filename,
		URL:      "/export/" + token,
	})
}

func (h *SessionHandler) Download(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	token := strings.TrimPrefix(r.URL.Path, "/export/")
	doc, err := h.downloads.Take(token)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	if _, err := w.Write(doc.Data); err != nil {
		log.Printf("Error writing download: %v", err)
	}
}

// decodePost checks the method and decodes the JSON body into dst. It writes
// the error response itself and reports whether the caller should go on.
func decodePost(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log.Printf("Error decoding request body: %v", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
