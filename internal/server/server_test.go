package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/docgraph/docgraph/pkg/pipeline"
	"github.com/docgraph/docgraph/pkg/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(nil, nil, logger)
	return New(runner, store.NewMemoryStore(), logger)
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s.Handler(), http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestCreateGraph(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s.Handler(), http.MethodPost, "/v1/graphs", buildRequest{
		Kind:  "json",
		Input: `{"user": {"name": "alice", "age": 30}}`,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var resp buildResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID == "" {
		t.Error("response should carry an ID")
	}
	if resp.GraphHash == "" {
		t.Error("response should carry a graph hash")
	}
	if resp.NodeCount == 0 || resp.Graph == nil || len(resp.Graph.Nodes) != resp.NodeCount {
		t.Errorf("node counts inconsistent: %d vs %+v", resp.NodeCount, resp.Graph)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("response should carry a request ID")
	}
}

func TestCreateGraphXML(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s.Handler(), http.MethodPost, "/v1/graphs", buildRequest{
		Kind:  "xml",
		Input: `<user><name>alice</name></user>`,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateGraphErrors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name     string
		req      buildRequest
		wantCode int
		wantErr  string
	}{
		{
			name:     "unknown kind",
			req:      buildRequest{Kind: "yaml", Input: "{}"},
			wantCode: http.StatusBadRequest,
			wantErr:  "INVALID_KIND",
		},
		{
			name:     "malformed json input",
			req:      buildRequest{Kind: "json", Input: "{broken"},
			wantCode: http.StatusBadRequest,
			wantErr:  "PARSE_FAILED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, s.Handler(), http.MethodPost, "/v1/graphs", tt.req)
			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), tt.wantErr) {
				t.Errorf("body should carry code %s: %s", tt.wantErr, rec.Body.String())
			}
		})
	}
}

func TestCreateGraphBadBody(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/graphs", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGetGraph(t *testing.T) {
	s := newTestServer(t)

	created := doJSON(t, s.Handler(), http.MethodPost, "/v1/graphs", buildRequest{
		Kind:  "json",
		Input: `{"a": 1}`,
	})
	var resp buildResponse
	if err := json.Unmarshal(created.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}

	rec := doJSON(t, s.Handler(), http.MethodGet, "/v1/graphs/"+resp.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var stored store.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &stored); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if stored.ID != resp.ID || stored.Graph == nil {
		t.Errorf("stored record mismatch: %+v", stored)
	}
}

func TestGetGraphNotFound(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s.Handler(), http.MethodGet, "/v1/graphs/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "GRAPH_NOT_FOUND") {
		t.Errorf("body should carry code: %s", rec.Body.String())
	}
}

func TestGetGraphRenderDOT(t *testing.T) {
	s := newTestServer(t)

	created := doJSON(t, s.Handler(), http.MethodPost, "/v1/graphs", buildRequest{
		Kind:  "json",
		Input: `{"name": "alice"}`,
	})
	var resp buildResponse
	if err := json.Unmarshal(created.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}

	rec := doJSON(t, s.Handler(), http.MethodGet, "/v1/graphs/"+resp.ID+"?format=dot", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if !strings.HasPrefix(rec.Body.String(), "digraph G {") {
		t.Errorf("DOT artifact malformed: %s", rec.Body.String())
	}

	bad := doJSON(t, s.Handler(), http.MethodGet, "/v1/graphs/"+resp.ID+"?format=bmp", nil)
	if bad.Code != http.StatusBadRequest {
		t.Errorf("unknown format status = %d, want 400", bad.Code)
	}
}

func TestListGraphs(t *testing.T) {
	s := newTestServer(t)

	for _, input := range []string{`{"a": 1}`, `{"b": 2}`} {
		rec := doJSON(t, s.Handler(), http.MethodPost, "/v1/graphs", buildRequest{Kind: "json", Input: input})
		if rec.Code != http.StatusCreated {
			t.Fatalf("create failed: %s", rec.Body.String())
		}
	}

	rec := doJSON(t, s.Handler(), http.MethodGet, "/v1/graphs", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var out struct {
		Graphs []listedGraph `json:"graphs"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out.Graphs) != 2 {
		t.Errorf("listed %d graphs, want 2", len(out.Graphs))
	}

	limited := doJSON(t, s.Handler(), http.MethodGet, "/v1/graphs?limit=1", nil)
	if err := json.Unmarshal(limited.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out.Graphs) != 1 {
		t.Errorf("limited list returned %d graphs, want 1", len(out.Graphs))
	}

	bad := doJSON(t, s.Handler(), http.MethodGet, "/v1/graphs?limit=x", nil)
	if bad.Code != http.StatusBadRequest {
		t.Errorf("invalid limit status = %d, want 400", bad.Code)
	}
}

func TestDeleteGraph(t *testing.T) {
	s := newTestServer(t)

	created := doJSON(t, s.Handler(), http.MethodPost, "/v1/graphs", buildRequest{Kind: "json", Input: `{"a": 1}`})
	var resp buildResponse
	if err := json.Unmarshal(created.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}

	rec := doJSON(t, s.Handler(), http.MethodDelete, "/v1/graphs/"+resp.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}

	gone := doJSON(t, s.Handler(), http.MethodGet, "/v1/graphs/"+resp.ID, nil)
	if gone.Code != http.StatusNotFound {
		t.Errorf("status after delete = %d, want 404", gone.Code)
	}
}
