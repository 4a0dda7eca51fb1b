package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flightmesh/pkg/mesh"
	"github.com/matzehuels/flightmesh/pkg/points"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.New(io.Discard)
	engine := mesh.New(mesh.Options{
		Store:  []points.Option{points.WithColorPicker(func(p []string) string { return p[0] })},
		Logger: logger,
	})
	ts := httptest.NewServer(New(engine, nil, logger).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, ts *httptest.Server, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, ts.URL+path, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return resp, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	return v
}

func TestAddListPoints(t *testing.T) {
	ts := newTestServer(t)

	resp, body := do(t, ts, "POST", "/points", `{"lat": 50.035, "lng": 22.001}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST /points status = %d, body %s", resp.StatusCode, body)
	}
	base := decode[points.Point](t, body)
	if base.Name != points.BaseName {
		t.Errorf("first point name = %q, want base", base.Name)
	}

	do(t, ts, "POST", "/points", `{"lat": 50.06, "lng": 22.05}`)

	resp, body = do(t, ts, "GET", "/points", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /points status = %d", resp.StatusCode)
	}
	list := decode[pointsResponse](t, body)
	if len(list.Points) != 2 || list.Points[1].Name != "A" {
		t.Errorf("GET /points = %+v", list)
	}
	if list.MaxRangeKm != 7.5 {
		t.Errorf("max_range_km = %v, want 7.5", list.MaxRangeKm)
	}
}

func TestEmptyPointsIsArray(t *testing.T) {
	ts := newTestServer(t)
	_, body := do(t, ts, "GET", "/points", "")
	if !strings.Contains(string(body), `"points": []`) {
		t.Errorf("GET /points on empty store = %s, want empty array", body)
	}
}

func TestOutOfRange(t *testing.T) {
	ts := newTestServer(t)
	do(t, ts, "POST", "/points", `{"lat": 50.035, "lng": 22.001}`)
	_, body := do(t, ts, "POST", "/points", `{"lat": 50.06, "lng": 22.05}`)
	a := decode[points.Point](t, body)

	resp, body := do(t, ts, "POST", "/points", `{"lat": 50.3, "lng": 22.5}`)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("far add status = %d, want 422", resp.StatusCode)
	}
	if e := decode[errorBody](t, body); e.Code != "OUT_OF_RANGE" {
		t.Errorf("far add code = %q", e.Code)
	}

	resp, body = do(t, ts, "PUT", "/points/"+strconv.Itoa(a.ID), `{"lat": 50.3, "lng": 22.5}`)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("far move status = %d, want 422", resp.StatusCode)
	}
	e := decode[errorBody](t, body)
	last, _ := e.Details["last"].(map[string]any)
	if last["lat"] != 50.06 || last["lng"] != 22.05 {
		t.Errorf("far move details.last = %v, want the last valid position", e.Details["last"])
	}
	if d, _ := e.Details["distance_km"].(float64); d < 40 {
		t.Errorf("distance_km = %v, want ~46", e.Details["distance_km"])
	}
}

func TestMoveRemove(t *testing.T) {
	ts := newTestServer(t)
	do(t, ts, "POST", "/points", `{"lat": 50.035, "lng": 22.001}`)
	_, body := do(t, ts, "POST", "/points", `{"lat": 50.06, "lng": 22.05}`)
	a := decode[points.Point](t, body)

	resp, body := do(t, ts, "PUT", "/points/"+strconv.Itoa(a.ID), `{"lat": 50.04, "lng": 22.03}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("move status = %d, body %s", resp.StatusCode, body)
	}
	if moved := decode[points.Point](t, body); moved.Lat != 50.04 {
		t.Errorf("moved lat = %v", moved.Lat)
	}

	resp, _ = do(t, ts, "DELETE", "/points/999", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("remove unknown status = %d, want 404", resp.StatusCode)
	}

	resp, _ = do(t, ts, "DELETE", "/points/index/0", "")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("remove index 0 status = %d", resp.StatusCode)
	}
	_, body = do(t, ts, "GET", "/points", "")
	list := decode[pointsResponse](t, body)
	if len(list.Points) != 1 || list.Points[0].ID != a.ID || list.Points[0].Name != points.BaseName {
		t.Errorf("after base removal = %+v", list.Points)
	}

	resp, _ = do(t, ts, "DELETE", "/points", "")
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("clear status = %d, want 204", resp.StatusCode)
	}
}

func TestBadRequests(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"bad json", "POST", "/points", `{"lat":`, http.StatusBadRequest},
		{"missing lng", "POST", "/points", `{"lat": 1}`, http.StatusBadRequest},
		{"unknown field", "POST", "/points", `{"lat": 1, "lng": 2, "alt": 3}`, http.StatusBadRequest},
		{"lat out of bounds", "POST", "/points", `{"lat": 100, "lng": 2}`, http.StatusBadRequest},
		{"non-integer id", "PUT", "/points/abc", `{"lat": 1, "lng": 2}`, http.StatusBadRequest},
		{"unknown route", "GET", "/nope", "", http.StatusNotFound},
		{"matrix with no points", "GET", "/matrix", "", http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, ts, tt.method, tt.path, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("%s %s status = %d, want %d (body %s)", tt.method, tt.path, resp.StatusCode, tt.status, body)
			}
			if e := decode[errorBody](t, body); e.Code == "" {
				t.Errorf("error body missing code: %s", body)
			}
		})
	}
}

func TestMatrix(t *testing.T) {
	ts := newTestServer(t)
	do(t, ts, "POST", "/points", `{"lat": 50.035, "lng": 22.001}`)
	do(t, ts, "POST", "/points", `{"lat": 50.06, "lng": 22.05}`)

	resp, body := do(t, ts, "GET", "/matrix", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /matrix status = %d", resp.StatusCode)
	}
	snap := decode[struct {
		Matrix [][]float64 `json:"matrix"`
	}](t, body)
	if len(snap.Matrix) != 2 || snap.Matrix[0][0] != 0 || snap.Matrix[0][1] != snap.Matrix[1][0] {
		t.Errorf("matrix = %v", snap.Matrix)
	}
}

func TestExportImport(t *testing.T) {
	src := newTestServer(t)
	do(t, src, "POST", "/points", `{"lat": 50.035, "lng": 22.001}`)
	do(t, src, "POST", "/points", `{"lat": 50.06, "lng": 22.05}`)

	resp, csv := do(t, src, "GET", "/export", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /export status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("export content type = %q", ct)
	}

	dst := newTestServer(t)
	resp, body := do(t, dst, "POST", "/import", string(csv))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /import status = %d, body %s", resp.StatusCode, body)
	}
	if list := decode[pointsResponse](t, body); len(list.Points) != 2 {
		t.Errorf("imported %d points, want 2", len(list.Points))
	}

	resp, body = do(t, dst, "POST", "/import", "garbage")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad import status = %d, want 400", resp.StatusCode)
	}
	if e := decode[errorBody](t, body); e.Code != "MALFORMED_RECORD" {
		t.Errorf("bad import code = %q", e.Code)
	}
}

func TestGraphDOT(t *testing.T) {
	ts := newTestServer(t)
	do(t, ts, "POST", "/points", `{"lat": 50.035, "lng": 22.001}`)
	do(t, ts, "POST", "/points", `{"lat": 50.06, "lng": 22.05}`)

	resp, body := do(t, ts, "GET", "/graph.dot?labels=true", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /graph.dot status = %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), "4.47 km") {
		t.Errorf("labelled dot missing distance:\n%s", body)
	}
	if resp.Header.Get("ETag") == "" {
		t.Error("graph response missing ETag")
	}
}

func TestRequestID(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := do(t, ts, "GET", "/healthz", "")
	if id := resp.Header.Get(RequestIDHeader); len(id) != 36 {
		t.Errorf("generated request id = %q, want a UUID", id)
	}

	req, _ := http.NewRequest("GET", ts.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if id := resp.Header.Get(RequestIDHeader); id != "abc-123" {
		t.Errorf("echoed request id = %q, want abc-123", id)
	}
}
