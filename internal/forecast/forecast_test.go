package forecast

import (
	"math"
	"testing"
	"time"

	"github.com/sweeney/envirocontrol/internal/telemetry"
)

func observeSeries(p *Predictor, start time.Time, step time.Duration, temps []float64) {
	for i, temp := range temps {
		p.Observe(telemetry.Sample{
			Temperature: temp,
			ObservedAt:  start.Add(time.Duration(i) * step),
		})
	}
}

func TestPredictNotReadyBeforeMinPoints(t *testing.T) {
	p := New(10, 30*time.Second)
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	observeSeries(p, start, 2*time.Second, []float64{25.0, 25.1})
	if _, ok := p.Predict(start.Add(4 * time.Second)); ok {
		t.Error("expected no prediction with 2 points")
	}
}

func TestPredictRisingTrend(t *testing.T) {
	p := New(10, 30*time.Second)
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	// +0.1 degrees per 2 seconds = +0.05/s; 30s horizon adds 1.5 degrees.
	observeSeries(p, start, 2*time.Second, []float64{25.0, 25.1, 25.2, 25.3, 25.4})
	at := start.Add(8 * time.Second)

	got, ok := p.Predict(at)
	if !ok {
		t.Fatal("expected a prediction")
	}
	want := 25.4 + 1.5
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("expected %.4f, got %.4f", want, got)
	}
}

func TestPredictFlatTrend(t *testing.T) {
	p := New(10, 30*time.Second)
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	observeSeries(p, start, 2*time.Second, []float64{26.0, 26.0, 26.0, 26.0})
	got, ok := p.Predict(start.Add(6 * time.Second))
	if !ok {
		t.Fatal("expected a prediction")
	}
	if math.Abs(got-26.0) > 1e-6 {
		t.Errorf("expected 26.0, got %.4f", got)
	}
}

func TestPredictDegenerateTimestamps(t *testing.T) {
	p := New(10, 30*time.Second)
	at := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	// All observations at the same instant: slope is undefined.
	for _, temp := range []float64{25.0, 26.0, 27.0} {
		p.Observe(telemetry.Sample{Temperature: temp, ObservedAt: at})
	}
	if _, ok := p.Predict(at); ok {
		t.Error("expected no prediction from degenerate fit")
	}
}

func TestWindowEvictsOldest(t *testing.T) {
	p := New(3, 30*time.Second)
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	// An old falling trend followed by a rising one; with window 3 only
	// the rising tail should survive.
	observeSeries(p, start, 2*time.Second, []float64{30.0, 29.0, 28.0, 25.0, 25.2, 25.4})
	got, ok := p.Predict(start.Add(10 * time.Second))
	if !ok {
		t.Fatal("expected a prediction")
	}
	if got <= 25.4 {
		t.Errorf("expected rising prediction above 25.4, got %.4f", got)
	}
}
