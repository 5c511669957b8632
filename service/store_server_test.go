package service

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// fakeStore serves the scenario collection over HTTP and keeps the raw
// bodies it was sent. It uses encoding/json so the client codec is not
// checked against itself.
type fakeStore struct {
	mu     sync.Mutex
	posts  int
	bodies map[string]map[string]json.RawMessage
}

func newFakeStore(t *testing.T) (*fakeStore, *httptest.Server) {
	t.Helper()

	store := &fakeStore{bodies: make(map[string]map[string]json.RawMessage)}
	srv := httptest.NewServer(http.HandlerFunc(store.serve))
	t.Cleanup(srv.Close)
	return store, srv
}

func (f *fakeStore) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/proforma"), "/")

	switch {
	case r.Method == http.MethodPost && id == "":
		raw, _ := io.ReadAll(r.Body)
		var body map[string]json.RawMessage
		if err := json.Unmarshal(raw, &body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.posts++
		newID := strconv.Itoa(f.posts)
		f.bodies[newID] = body

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"id": newID})

	case r.Method == http.MethodGet && id != "":
		body, ok := f.bodies[id]
		if !ok {
			http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(map[string]json.RawMessage{
			"inputs":  body["inputs"],
			"results": body["results"],
		})

	default:
		http.Error(w, "unsupported", http.StatusMethodNotAllowed)
	}
}

func (f *fakeStore) postCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.posts
}

func (f *fakeStore) results(id string) map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out map[string]any
	json.Unmarshal(f.bodies[id]["results"], &out)
	return out
}
