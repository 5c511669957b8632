package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proforma-tool/repository"
	"proforma-tool/service"
)

type testServer struct {
	mux     *http.ServeMux
	session *service.ProFormaSession
	repo    *repository.ScenarioRepositoryMemory
	limiter *RateLimiter
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	repo := repository.NewScenarioRepositoryMemory()
	alerts := service.NewAlertQueue()
	session := service.NewProFormaSession(repo, service.NewHTMLExporter(), alerts)
	downloads := service.NewDownloadService(repository.NewMemoryCache(), time.Minute)

	limiter := NewRateLimiter(5, time.Minute)
	t.Cleanup(limiter.Stop)

	mux := http.NewServeMux()
	NewSessionHandler(context.Background(), session, alerts, downloads).Register(mux, limiter)

	return &testServer{mux: mux, session: session, repo: repo, limiter: limiter}
}

func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)
	return w
}

func TestGetSession_Defaults(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(http.MethodGet, "/session", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	inputs := body["inputs"].(map[string]any)
	assert.Equal(t, 6.5, inputs["interestRate"])
	assert.Equal(t, "yearly", inputs["periodType"])
	assert.Nil(t, body["results"])
}

func TestSetFieldAndCalculate(t *testing.T) {
	srv := newTestServer(t)

	for _, kv := range [][2]string{{"rent", "1000"}, {"unitCount", "10"}, {"loanAmount", "500000"}} {
		w := srv.do(http.MethodPost, "/session/field", `{"name":"`+kv[0]+`","value":"`+kv[1]+`"}`)
		require.Equal(t, http.StatusOK, w.Code, kv[0])
	}

	w := srv.do(http.MethodPost, "/session/calculate", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Results map[string]float64 `json:"results"`
		View    struct {
			Rows []struct {
				Label string `json:"label"`
				Text  string `json:"text"`
			} `json:"rows"`
		} `json:"view"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 120000.0, body.Results["grossRevenue"])
	assert.InDelta(t, 7471.21, body.Results["cashFlow"], 0.005)
	require.Len(t, body.View.Rows, 7)
	assert.Equal(t, "$7471.21", body.View.Rows[6].Text)
}

func TestCalculate_NaNResultsEncodeAsNull(t *testing.T) {
	srv := newTestServer(t)
	srv.do(http.MethodPost, "/session/field", `{"name":"rent","value":"abc"}`)

	w := srv.do(http.MethodPost, "/session/calculate", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Results map[string]*float64 `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Nil(t, body.Results["grossRevenue"])
	assert.Contains(t, w.Body.String(), "$NaN")
}

func TestSetField_UnknownName(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(http.MethodPost, "/session/field", `{"name":"capRate","value":"5"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSetField_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(http.MethodGet, "/session/field", "")

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestSetField_BadRequest(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(http.MethodPost, "/session/field", `{invalid-json}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaveScenario_RejectedWithoutTitle(t *testing.T) {
	srv := newTestServer(t)
	srv.do(http.MethodPost, "/session/calculate", "")

	w := srv.do(http.MethodPost, "/session/save", "")

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var body errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{service.AlertSaveRejected}, body.Alerts)

	list, _ := srv.repo.List(context.Background())
	assert.Empty(t, list)
}

func TestSaveScenario_Accepted(t *testing.T) {
	srv := newTestServer(t)
	srv.do(http.MethodPost, "/session/title", `{"title":"Base case"}`)
	srv.do(http.MethodPost, "/session/calculate", "")

	w := srv.do(http.MethodPost, "/session/save", "")
	require.Equal(t, http.StatusAccepted, w.Code)

	assert.Eventually(t, func() bool {
		list, _ := srv.repo.List(context.Background())
		return len(list) == 1
	}, time.Second, 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		var alerts []string
		w := srv.do(http.MethodGet, "/session/alerts", "")
		json.Unmarshal(w.Body.Bytes(), &alerts)
		return len(alerts) == 1 && alerts[0] == service.AlertSaved
	}, time.Second, 10*time.Millisecond)

	// the cached list is only fetched at start
	w = srv.do(http.MethodGet, "/session/scenarios", "")
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestLoadScenario(t *testing.T) {
	srv := newTestServer(t)

	srv.session.SetField("rent", "2000")
	srv.session.SetField("unitCount", "4")
	srv.session.SetTitle("Fourplex")
	saved := srv.session.Calculate()
	created, err := srv.session.Save(context.Background())
	require.NoError(t, err)

	srv.session.SetField("rent", "1")
	srv.session.Calculate()

	w := srv.do(http.MethodPost, "/session/load", `{"id":"`+created.ID.String()+`"}`)
	require.Equal(t, http.StatusAccepted, w.Code)

	assert.Eventually(t, func() bool {
		st := srv.session.Snapshot()
		return st.Results != nil && *st.Results == saved && st.Inputs.Rent == 2000
	}, time.Second, 10*time.Millisecond)
}

func TestLoadScenario_MissingID(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(http.MethodPost, "/session/load", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExport_BeforeCalculate(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(http.MethodPost, "/session/export", "")

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestExport_Download(t *testing.T) {
	srv := newTestServer(t)
	srv.do(http.MethodPost, "/session/calculate", "")

	w := srv.do(http.MethodPost, "/session/export", `{"filename":"deal.html"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created exportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "deal.html", created.Filename)

	w = srv.do(http.MethodGet, created.URL, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="deal.html"`, w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Body.String(), "Pro Forma Results")

	w = srv.do(http.MethodGet, created.URL, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExport_RateLimited(t *testing.T) {
	srv := newTestServer(t)
	srv.do(http.MethodPost, "/session/calculate", "")

	for i := 0; i < 5; i++ {
		w := srv.do(http.MethodPost, "/session/export", "")
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := srv.do(http.MethodPost, "/session/export", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
