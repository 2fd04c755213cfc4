package http

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	perr "focusguard/internal/platform/errors"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func TestRespondOKWritesEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(stdhttp.MethodGet, "/x", nil)

	RespondOK(rec, req, map[string]string{"state": "focus"})

	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.StatusCode != 200 || env.Status != "OK" {
		t.Fatalf("envelope = %+v", env)
	}
	if env.Error != "" || env.Code != 0 {
		t.Fatalf("unexpected error fields: %+v", env)
	}
}

func TestRespondErrorMapsCode(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(stdhttp.MethodGet, "/x", nil)

	RespondError(rec, req, perr.NotFoundf("no session"))

	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Code != perr.ErrorCodeNotFound {
		t.Fatalf("code = %q, want %q", env.Code, perr.ErrorCodeNotFound)
	}
	if env.Error == "" {
		t.Fatalf("expected error message in envelope")
	}
}

func TestHandleReturnStyle(t *testing.T) {
	tests := []struct {
		name       string
		resp       Response
		wantStatus int
		wantErr    bool
	}{
		{"ok", OK(map[string]int{"n": 1}), 200, false},
		{"created", Created(nil), 201, false},
		{"no content", NoContent(), 204, false},
		{"error body", Error(perr.InvalidArgf("bad url")), 422, true},
		{"zero status defaults 200", Response{Body: "hi"}, 200, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Handle(func(r *stdhttp.Request) Response { return tt.resp })
			rec := httptest.NewRecorder()
			h(rec, httptest.NewRequest(stdhttp.MethodGet, "/", nil))
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == 204 {
				if rec.Body.Len() != 0 {
					t.Fatalf("204 must not carry a body")
				}
				return
			}
			env := decodeEnvelope(t, rec)
			if tt.wantErr && env.Error == "" {
				t.Fatalf("expected error in envelope, got %+v", env)
			}
			if !tt.wantErr && env.Error != "" {
				t.Fatalf("unexpected error in envelope: %+v", env)
			}
		})
	}
}

func TestResponseHeaderOverride(t *testing.T) {
	h := Handle(func(r *stdhttp.Request) Response {
		return Response{
			Status: stdhttp.StatusOK,
			Body:   "v",
			Header: stdhttp.Header{"X-Custom": []string{"yes"}},
		}
	})
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(stdhttp.MethodGet, "/", nil))
	if got := rec.Header().Get("X-Custom"); got != "yes" {
		t.Fatalf("X-Custom = %q", got)
	}
}
