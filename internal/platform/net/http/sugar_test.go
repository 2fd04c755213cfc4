package http

import (
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestSugarMountsVerbs(t *testing.T) {
	m := chi.NewRouter()
	r := AdaptChi(m)

	GetJSON(r, "/g", func(*stdhttp.Request) (any, error) { return "g", nil })
	PostJSONNoBody(r, "/t", func(*stdhttp.Request) (any, error) { return "t", nil })
	PostJSON(r, "/p", func(_ *stdhttp.Request, in analyzeIn) (any, error) { return in.URL, nil })

	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/g", nil))
	if rec.Code != 200 || !strings.Contains(rec.Body.String(), `"g"`) {
		t.Fatalf("GET /g: %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	m.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodPost, "/t", nil))
	if rec.Code != 200 {
		t.Fatalf("POST /t: %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(stdhttp.MethodPost, "/p", strings.NewReader(`{"url":"https://a.b"}`))
	req.Header.Set("Content-Type", "application/json")
	m.ServeHTTP(rec, req)
	if rec.Code != 200 || !strings.Contains(rec.Body.String(), "a.b") {
		t.Fatalf("POST /p: %d %s", rec.Code, rec.Body.String())
	}
}
