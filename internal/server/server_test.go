package server

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/rewired-gh/launchdash/internal/dashboard"
	"github.com/rewired-gh/launchdash/internal/models"
	"github.com/rewired-gh/launchdash/internal/render"
	"github.com/rewired-gh/launchdash/internal/storage"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store, err := storage.New([]models.LaunchRecord{
		{LaunchSite: "A", PayloadMassKg: 500, OutcomeClass: 1, BoosterVersionCategory: "v1.0"},
		{LaunchSite: "A", PayloadMassKg: 800, OutcomeClass: 0, BoosterVersionCategory: "v1.1"},
		{LaunchSite: "B", PayloadMassKg: 2000, OutcomeClass: 1, BoosterVersionCategory: "FT"},
	})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return New(dashboard.New(store), Options{
		Addr:      "127.0.0.1:0",
		ChartSize: render.Size{Width: 400, Height: 300},
	})
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestIndexPage(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := get(t, h, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		PageTitle,
		`<option value="ALL" selected>All sites</option>`,
		`<option value="A">A</option>`,
		`id="success-pie-chart"`,
		`id="success-payload-scatter-chart"`,
		`step="1000"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in index page", want)
		}
	}

	if rec := get(t, h, "/missing"); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown path, got %d", rec.Code)
	}
}

func TestControls(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := get(t, h, "/api/controls")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp controlsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Options) != 3 || resp.Options[0].Value != dashboard.AllSites {
		t.Errorf("unexpected options %+v", resp.Options)
	}
	if resp.Slider.Default != (models.PayloadRange{Lo: 500, Hi: 2000}) {
		t.Errorf("unexpected slider default %+v", resp.Slider.Default)
	}
	if resp.Selection.Site != dashboard.AllSites {
		t.Errorf("unexpected default site %q", resp.Selection.Site)
	}
}

func TestPieAPI(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := get(t, h, "/api/pie")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var fig models.PieFigure
	if err := json.Unmarshal(rec.Body.Bytes(), &fig); err != nil {
		t.Fatalf("failed to decode pie: %v", err)
	}
	want := []models.Slice{
		{Label: "A", Value: 1, LaunchSite: "A"},
		{Label: "B", Value: 1, LaunchSite: "B"},
	}
	if diff := cmp.Diff(want, fig.Slices); diff != "" {
		t.Errorf("slices mismatch (-want +got):\n%s", diff)
	}

	rec = get(t, h, "/api/pie?site=A")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for known site, got %d", rec.Code)
	}

	rec = get(t, h, "/api/pie?site=Nowhere")
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204 for unknown site, got %d", rec.Code)
	}
}

func TestScatterAPI(t *testing.T) {
	h := newTestServer(t).Handler()

	tests := []struct {
		target string
		points int
	}{
		{"/api/scatter", 3},
		{"/api/scatter?site=ALL&min=0&max=10000", 3},
		{"/api/scatter?site=A&min=600&max=10000", 1},
		{"/api/scatter?site=Nowhere&min=0&max=1000", 2},
		{"/api/scatter?site=B&max=1000", 0},
	}

	for _, tt := range tests {
		rec := get(t, h, tt.target)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", tt.target, rec.Code)
			continue
		}
		var fig models.ScatterFigure
		if err := json.Unmarshal(rec.Body.Bytes(), &fig); err != nil {
			t.Fatalf("%s: failed to decode scatter: %v", tt.target, err)
		}
		if len(fig.Points) != tt.points {
			t.Errorf("%s: expected %d points, got %d", tt.target, tt.points, len(fig.Points))
		}
	}
}

func TestScatterAPIRejectsBadRange(t *testing.T) {
	h := newTestServer(t).Handler()

	for _, target := range []string{
		"/api/scatter?min=5000&max=1000",
		"/api/scatter?min=abc",
		"/chart/scatter.png?max=NaNx",
		"/api/scatter?min=NaN",
		"/api/scatter?max=Inf",
		"/api/scatter?min=-Inf&max=1000",
		"/chart/scatter.png?min=NaN",
	} {
		rec := get(t, h, target)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, rec.Code)
			continue
		}
		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body["error"] == "" {
			t.Errorf("%s: expected a JSON error body, got %q", target, rec.Body.String())
		}
	}
}

func TestWriteJSONEncodeFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusOK, models.PayloadRange{Lo: math.NaN(), Hi: 1})

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 for an unencodable value, got %d", rec.Code)
	}
	if rec.Body.Len() == 0 {
		t.Error("expected an error body")
	}
}

func TestCharts(t *testing.T) {
	h := newTestServer(t).Handler()
	magic := []byte{0x89, 'P', 'N', 'G'}

	for _, target := range []string{
		"/chart/pie.png",
		"/chart/pie.png?site=A",
		"/chart/pie.png?site=Nowhere",
		"/chart/scatter.png?site=ALL&min=0&max=10000",
		"/chart/scatter.png?site=B&min=0&max=100",
	} {
		rec := get(t, h, target)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d: %s", target, rec.Code, rec.Body.String())
			continue
		}
		if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
			t.Errorf("%s: unexpected content type %q", target, ct)
		}
		if !bytes.HasPrefix(rec.Body.Bytes(), magic) {
			t.Errorf("%s: body is not a PNG", target)
		}
	}
}

func TestRequestID(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := get(t, h, "/healthz")
	id := rec.Header().Get(RequestIDHeader)
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("expected a generated UUID, got %q", id)
	}

	incoming := uuid.New().String()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, incoming)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != incoming {
		t.Errorf("expected incoming request ID to be kept, got %q", got)
	}
}

func TestListenAndServeShutsDownOnCancel(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to reserve port: %v", err)
	}
	addr := l.Addr().String()
	_ = l.Close()

	s := newTestServer(t)
	s.opts.Addr = addr
	s.httpServer.Addr = addr

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()

	// Wait for the listener
	deadline := time.Now().Add(2 * time.Second)
	for {
		resp, err := http.Get("http://" + addr + "/healthz")
		if err == nil {
			resp.Body.Close()
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("server did not start: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
