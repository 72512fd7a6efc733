package route

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"backend-greentransit/internal/metrics"

	"github.com/gofiber/fiber/v2"
)

func newApp(t *testing.T) *fiber.App {
	app := fiber.New()
	cat := catalog(t)
	RegisterRoutes(app.Group("/routes"), cat, metrics.New())
	RegisterCampusRoutes(app.Group("/campus"), cat)
	return app
}

func TestRecommendHandler(t *testing.T) {
	app := newApp(t)

	req := httptest.NewRequest(http.MethodGet, "/routes/recommend?start=library&end=main_gate&safety=8", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("recommend status: %v", err)
	}
	var got Scored
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Route.ID != "main_to_library_walk_reverse" || got.Score <= 0 {
		t.Fatalf("unexpected body %+v", got)
	}
}

func TestRecommendHandlerNotFound(t *testing.T) {
	app := newApp(t)

	req := httptest.NewRequest(http.MethodGet, "/routes/recommend?start=library&end=design", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected not found: %v", err)
	}
	var body map[string]string
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if body["error"] != "no route found" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestRecommendHandlerBadRequest(t *testing.T) {
	app := newApp(t)
	for _, q := range []string{
		"/routes/recommend?start=library",
		"/routes/recommend?start=library&end=main_gate&eco=abc",
		"/routes/recommend?start=library&end=main_gate&time=0",
		"/routes/rank?start=library&end=main_gate&weather=snow",
	} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, q, nil))
		if err != nil || resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: expected bad request", q)
		}
	}
}

func TestRankHandler(t *testing.T) {
	app := newApp(t)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/routes/rank?start=station&end=main_gate&weather=rainy", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("rank status: %v", err)
	}
	var got []Scored
	_ = json.NewDecoder(resp.Body).Decode(&got)
	if len(got) != 1 || got[0].Route.Type != "bus" {
		t.Fatalf("unexpected ranking %+v", got)
	}
}

func TestCampusHandlers(t *testing.T) {
	app := newApp(t)
	for path, want := range map[string]int{
		"/campus/locations":    8,
		"/campus/routes":       5,
		"/campus/danger-zones": 1,
	} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		if err != nil || resp.StatusCode != http.StatusOK {
			t.Fatalf("%s status: %v", path, err)
		}
		var items []json.RawMessage
		_ = json.NewDecoder(resp.Body).Decode(&items)
		if len(items) != want {
			t.Fatalf("%s: expected %d items, got %d", path, want, len(items))
		}
	}
}
