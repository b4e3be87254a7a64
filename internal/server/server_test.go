package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/autolayout/pkg/engine"
	autoerrors "github.com/matzehuels/autolayout/pkg/errors"
	"github.com/matzehuels/autolayout/pkg/layout"
	"github.com/matzehuels/autolayout/pkg/metrics"
	"github.com/matzehuels/autolayout/pkg/observability"
)

// stackEngine places nodes in one column in request order and routes nothing.
var stackEngine = engine.Func(func(_ context.Context, g engine.Graph) (*engine.Result, error) {
	res := &engine.Result{}
	for i, n := range g.Nodes {
		res.Nodes = append(res.Nodes, engine.NodePosition{ID: n.ID, X: 0, Y: float64(i) * 150})
	}
	return res, nil
})

func newTestServer(t *testing.T, eng engine.Engine) *httptest.Server {
	t.Helper()
	s := New(Options{
		Engine:        eng,
		EngineName:    "stack",
		EngineOptions: engine.DefaultOptions(),
		Logger:        log.New(io.Discard),
		Gatherer:      prometheus.NewRegistry(),
	})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, ts *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.URL+"/api/v1/layout", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

const twoNodes = `{
	"nodes": [
		{"id": "b", "position": {"x": 0, "y": 0}, "created_at": 2},
		{"id": "a", "position": {"x": 0, "y": 0}, "created_at": 1}
	],
	"edges": [{"id": "e1", "source": "a", "target": "b"}]
}`

func TestLayoutEndpoint(t *testing.T) {
	ts := newTestServer(t, stackEngine)

	resp := post(t, ts, twoNodes)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if resp.Header.Get(RequestIDHeader) == "" {
		t.Error("response should carry a request id")
	}

	var res layout.Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(res.Nodes) != 2 || res.Nodes[0].ID != "b" || res.Nodes[0].Position.Y != 150 {
		t.Errorf("nodes = %+v", res.Nodes)
	}
	if len(res.Edges) != 1 {
		t.Fatalf("edges = %+v", res.Edges)
	}
	e := res.Edges[0]
	if e.SourceHandle == nil || e.SourceHandle.ID() != "b-s" || e.TargetHandle.ID() != "t-t" {
		t.Errorf("edge handles = %v -> %v, want b-s -> t-t", e.SourceHandle, e.TargetHandle)
	}
	if res.Stats.EngineFailed || res.Stats.Fallback != 1 {
		t.Errorf("stats = %+v", res.Stats)
	}
}

func TestLayoutEndpointEngineFailure(t *testing.T) {
	failing := engine.Func(func(context.Context, engine.Graph) (*engine.Result, error) {
		return nil, errors.New("unavailable")
	})
	ts := newTestServer(t, failing)

	resp := post(t, ts, twoNodes)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("engine failure must not be an HTTP error, got %d", resp.StatusCode)
	}
	var res layout.Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if !res.Stats.EngineFailed || res.Edges[0].SourceHandle != nil {
		t.Errorf("want identity result, got %+v", res)
	}
}

func TestLayoutEndpointEngineTimeout(t *testing.T) {
	deadline := make(chan bool, 1)
	slow := engine.Func(func(ctx context.Context, _ engine.Graph) (*engine.Result, error) {
		_, ok := ctx.Deadline()
		select {
		case deadline <- ok:
		default:
		}
		<-ctx.Done()
		return nil, ctx.Err()
	})
	s := New(Options{
		Engine:         slow,
		EngineOptions:  engine.DefaultOptions(),
		RequestTimeout: 50 * time.Millisecond,
		Logger:         log.New(io.Discard),
		Gatherer:       prometheus.NewRegistry(),
	})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	resp := post(t, ts, twoNodes)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 with the identity result", resp.StatusCode)
	}
	if !<-deadline {
		t.Error("engine context carries no deadline")
	}
	var res layout.Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if !res.Stats.EngineFailed {
		t.Errorf("stats = %+v, want engine failure", res.Stats)
	}
	for _, n := range res.Nodes {
		if n.Position.X != 0 || n.Position.Y != 0 {
			t.Errorf("node %s moved to %+v", n.ID, n.Position)
		}
	}
}

func TestLayoutEndpointOptions(t *testing.T) {
	var got engine.Options
	eng := engine.Func(func(ctx context.Context, g engine.Graph) (*engine.Result, error) {
		got = g.Options
		return stackEngine(ctx, g)
	})
	ts := newTestServer(t, eng)

	resp := post(t, ts, `{"nodes": [], "edges": [], "options": {"direction": "LEFT"}}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if got.Direction != engine.DirectionLeft {
		t.Errorf("direction = %q, want LEFT", got.Direction)
	}
	if got.NodeSpacing != 80 {
		t.Errorf("unspecified options should keep server defaults, NodeSpacing = %v", got.NodeSpacing)
	}

	var res layout.Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if res.Nodes == nil || res.Edges == nil {
		t.Error("empty diagram should encode empty arrays")
	}
}

func TestLayoutEndpointBadRequests(t *testing.T) {
	ts := newTestServer(t, stackEngine)

	tests := []struct {
		name string
		body string
		code autoerrors.Code
	}{
		{"malformed", `{"nodes": [`, autoerrors.ErrCodeInvalidInput},
		{"bad handle", `{"nodes": [], "edges": [{"id": "e", "source": "a", "target": "b", "sourceHandle": "x-y"}]}`, autoerrors.ErrCodeInvalidInput},
		{"duplicate node", `{"nodes": [{"id": "a"}, {"id": "a"}], "edges": []}`, autoerrors.ErrCodeInvalidDiagram},
		{"empty edge id", `{"nodes": [], "edges": [{"id": "", "source": "a", "target": "b"}]}`, autoerrors.ErrCodeInvalidDiagram},
		{"bad options", `{"nodes": [], "edges": [], "options": {"direction": "SIDEWAYS"}}`, autoerrors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts, tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			var body errorResponse
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body.Code != tt.code {
				t.Errorf("code = %s, want %s (%s)", body.Code, tt.code, body.Message)
			}
			if body.RequestID == "" {
				t.Error("error body should carry the request id")
			}
		})
	}
}

func TestLayoutEndpointBodyLimit(t *testing.T) {
	s := New(Options{Engine: stackEngine, EngineOptions: engine.DefaultOptions(), MaxBodyBytes: 16, Logger: log.New(io.Discard)})
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp := post(t, ts, twoNodes)
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", resp.StatusCode)
	}
	var body errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if body.Code != autoerrors.ErrCodeTooLarge {
		t.Errorf("code = %q, want %q", body.Code, autoerrors.ErrCodeTooLarge)
	}
}

func TestRequestIDPropagation(t *testing.T) {
	ts := newTestServer(t, stackEngine)

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("request id = %q, want abc-123", got)
	}
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, stackEngine)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var body healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK || body.Status != "ok" || body.Build.Version == "" {
		t.Errorf("healthz = %d %+v", resp.StatusCode, body)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.NewHooks(reg).Install()
	defer observability.Reset()

	s := New(Options{Engine: stackEngine, EngineOptions: engine.DefaultOptions(), Logger: log.New(io.Discard), Gatherer: reg})
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	post(t, ts, twoNodes)

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	for _, want := range []string{
		"autolayout_layout_runs_total",
		`autolayout_http_requests_total{method="POST",route="/api/v1/layout",status="200"} 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t, stackEngine)
	resp, err := http.Get(ts.URL + "/api/v1/layout")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET /api/v1/layout = %d, want 405", resp.StatusCode)
	}
}
