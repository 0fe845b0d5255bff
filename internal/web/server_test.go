package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sweeney/envirocontrol/internal/control"
	"github.com/sweeney/envirocontrol/internal/status"
	"github.com/sweeney/envirocontrol/internal/telemetry"
)

func testTracker() *status.Tracker {
	tr := status.NewTracker(time.Now(), status.Config{
		Device:   "/dev/ttyUSB0",
		Baud:     9600,
		Broker:   "tcp://localhost:1883",
		DBPath:   "envirocontrol.db",
		HTTPAddr: ":8080",
	})
	state := control.NewState(27.0, 0.5)
	sample := telemetry.Sample{Temperature: 23.5, Humidity: 45.0, Light: 300, ObservedAt: time.Now()}
	tr.Update(state.Snapshot(), sample, control.CommandCounts{FanOn: 2})
	tr.SetSerialConnected(true)
	return tr
}

func TestIndexPage(t *testing.T) {
	srv := New(":0", testTracker())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("unexpected content type %q", ct)
	}

	body, _ := io.ReadAll(rec.Body)
	page := string(body)
	for _, want := range []string{"AUTO", "23.5", "/dev/ttyUSB0", "connected"} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestIndexNotFound(t *testing.T) {
	srv := New(":0", testTracker())

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestJSONEndpoint(t *testing.T) {
	srv := New(":0", testTracker())

	req := httptest.NewRequest(http.MethodGet, "/index.json", nil)
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var parsed status.StatusJSON
	if err := json.Unmarshal(rec.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if parsed.Status.Mode != "AUTO" {
		t.Errorf("expected mode AUTO, got %q", parsed.Status.Mode)
	}
	if parsed.Status.Counts.FanOn != 2 {
		t.Errorf("expected FanOn count 2, got %d", parsed.Status.Counts.FanOn)
	}
	if !parsed.Status.Serial.Connected {
		t.Error("expected serial connected")
	}
}
