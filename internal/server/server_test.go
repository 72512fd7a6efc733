package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"backend-greentransit/internal/auth"
	"backend-greentransit/internal/config"
	"backend-greentransit/internal/store"
)

func newServer(t *testing.T) *Server {
	t.Helper()
	s, err := NewServer(config.Config{JWTSecret: "secret", ServerPort: ":0", Timezone: "UTC"}, store.NewMemory(), nil, nil)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func TestHealthRoute(t *testing.T) {
	s := newServer(t)

	req := httptest.NewRequest("GET", "/health", nil)
	resp, err := s.App.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200 status")
	}
}

func TestTripFlowThroughServer(t *testing.T) {
	s := newServer(t)

	body := `{"mode":"cycling","distance":4,"start":"Dormitory","end":"Engineering"}`
	req := httptest.NewRequest(http.MethodPost, "/trips", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := s.App.Test(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized without token, got %d", resp.StatusCode)
	}
	var errBody map[string]string
	_ = json.NewDecoder(resp.Body).Decode(&errBody)
	if errBody["error"] == "" {
		t.Fatalf("errors should be json, got %v", errBody)
	}

	token, _ := auth.IssueToken("secret", "phone", time.Hour)
	req = httptest.NewRequest(http.MethodPost, "/trips", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := s.App.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("record trip: %v %d", err, resp.StatusCode)
	}

	resp, _ = s.App.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	raw, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(raw), `greentransit_trips_recorded_total{mode="cycling"} 1`) {
		t.Fatalf("metrics missing trip counter: %s", raw)
	}
}

func TestRouteAndCampusEndpoints(t *testing.T) {
	s := newServer(t)

	resp, _ := s.App.Test(httptest.NewRequest(http.MethodGet, "/routes/recommend?start=library&end=design", nil))
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected not found, got %d", resp.StatusCode)
	}
	var body map[string]string
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if body["error"] != "no route found" {
		t.Fatalf("unexpected body %v", body)
	}

	resp, _ = s.App.Test(httptest.NewRequest(http.MethodGet, "/campus/locations", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("campus locations status %d", resp.StatusCode)
	}
}
